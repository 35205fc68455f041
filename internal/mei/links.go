package mei

// LinkCategory tags a useful link; the icon is derived from it.
type LinkCategory string

const (
	LinkPortal            LinkCategory = "portal"
	LinkTaxDocument       LinkCategory = "tax_document"
	LinkServiceInvoice    LinkCategory = "service_invoice"
	LinkInvoiceLookup     LinkCategory = "invoice_lookup"
	LinkTraining          LinkCategory = "training"
	LinkProductInvoice    LinkCategory = "product_invoice"
	LinkFederalRevenue    LinkCategory = "federal_revenue"
	LinkMailbox           LinkCategory = "mailbox"
	LinkAnnualDeclaration LinkCategory = "annual_declaration"
)

const defaultLinkIcon = "ExternalLink"

// Icon maps the category to the front-end icon name.
func (c LinkCategory) Icon() string {
	switch c {
	case LinkPortal:
		return "Building2"
	case LinkTaxDocument:
		return "FileText"
	case LinkServiceInvoice:
		return "Receipt"
	case LinkInvoiceLookup:
		return "Search"
	case LinkTraining:
		return "GraduationCap"
	case LinkProductInvoice:
		return "FileSpreadsheet"
	case LinkFederalRevenue:
		return "Shield"
	case LinkMailbox:
		return "Mail"
	case LinkAnnualDeclaration:
		return "ClipboardList"
	default:
		return defaultLinkIcon
	}
}

type Link struct {
	ID          int          `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	URL         string       `json:"url"`
	Category    LinkCategory `json:"category"`
	Icon        string       `json:"icon"`
}

const PGMEIURL = "https://www8.receita.fazenda.gov.br/SimplesNacional/Aplicacoes/ATSPO/pgmei.app/Identificacao"

var usefulLinks = []Link{
	{1, "Portal do Empreendedor", "Tudo sobre MEI", "https://www.gov.br/empresas-e-negocios/pt-br/empreendedor", LinkPortal, ""},
	{2, "PGMEI – Gerar DAS", "Boleto mensal", PGMEIURL, LinkTaxDocument, ""},
	{3, "Emissor Nacional NFS-e", "Emitir nota de serviço", "https://www.nfse.gov.br/EmissorNacional", LinkServiceInvoice, ""},
	{4, "Consultar NFS-e", "Ver notas emitidas", "https://www.nfse.gov.br/consultapublica", LinkInvoiceLookup, ""},
	{5, "Sebrae MEI", "Cursos, ajuda e emissor NF-e gratuito", "https://sebrae.com.br/sites/PortalSebrae/mei", LinkTraining, ""},
	{6, "Emissor NF-e Sebrae", "Nota de produto", "https://sebrae.com.br/sites/PortalSebrae/produtoseservicos/emissornfe", LinkProductInvoice, ""},
	{7, "e-CAC Receita Federal", "Declarações, certidões", "https://cav.receita.fazenda.gov.br", LinkFederalRevenue, ""},
	{8, "Domicílio Eletrônico", "Receber notificações do governo", "https://www.gov.br/empresas-e-negocios/pt-br/empreendedor/domicilio-eletronico", LinkMailbox, ""},
	{9, "Declaração Anual DASN-SIMEI", "Entregar até 31/05", "https://www.gov.br/empresas-e-negocios/pt-br/empreendedor/declaracao-anual", LinkAnnualDeclaration, ""},
}

// UsefulLinks returns a fresh copy of the portal list with icons resolved.
func UsefulLinks() []Link {
	out := make([]Link, len(usefulLinks))
	for i, l := range usefulLinks {
		l.Icon = l.Category.Icon()
		out[i] = l
	}
	return out
}
