package metrics_test

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valeriaulyamaeva/controle-mei/internal/metrics"
)

func TestMetrics(t *testing.T) {
	m := metrics.New()
	m.DasPayments.WithLabelValues("paid").Inc()
	m.OrphanedDocuments.Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.DasPayments.WithLabelValues("paid")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OrphanedDocuments))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "mei_das_payments_total")
	assert.Contains(t, string(body), "mei_orphaned_documents_total 1")
}

func TestNewIsIndependent(t *testing.T) {
	a, b := metrics.New(), metrics.New()
	a.OverdueMarked.Add(3)

	assert.Equal(t, 3.0, testutil.ToFloat64(a.OverdueMarked))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.OverdueMarked))
}
