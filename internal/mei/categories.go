package mei

import "github.com/valeriaulyamaeva/controle-mei/models"

var IncomeCategories = []string{
	"Venda de Produtos",
	"Prestação de Serviços",
	"Rendimento de Aplicação",
	"Outros",
}

var ExpenseCategories = []string{
	"Aluguel",
	"Energia",
	"Água",
	"Internet",
	"Telefone",
	"Material de Escritório",
	"Material de Venda",
	"Marketing",
	"Assinaturas",
	"Impostos",
	"Transporte",
	"Alimentação",
	"Manutenção",
	"Equipamentos",
	"Outros",
}

var RecurringCategories = []string{
	"Assinatura",
	"Aluguel",
	"Serviço Mensal",
	"Financiamento",
	"Outros",
}

// CategoriesFor returns the suggested categories for a transaction type.
func CategoriesFor(t models.TransactionType) []string {
	if t == models.TransactionIncome {
		return IncomeCategories
	}
	return ExpenseCategories
}
