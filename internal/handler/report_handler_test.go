package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoiceagent/internal/domain"
	"invoiceagent/internal/export"
	"invoiceagent/internal/handler"
	"invoiceagent/internal/service"
)

func newReportRouter(t *testing.T) (*gin.Engine, *service.ReportStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := service.NewReportStore()
	h := handler.NewReportHandler(store)

	r := gin.New()
	r.GET("/api/v1/reports/latest", h.Latest)
	r.GET("/api/v1/reports/latest/export", h.Export)
	return r, store
}

func storedReport() *domain.ReportData {
	return &domain.ReportData{
		TotalProcessed: 2,
		ValidInvoices:  1,
		Currency:       "CRC",
		DetailedResults: []domain.InvoiceResult{
			{SourceFilename: "a.pdf", IsValid: true, TotalAmount: 100},
			{SourceFilename: "b.pdf", IsValid: false, TotalAmount: 200, Violations: []string{"over limit"}},
		},
	}
}

func TestLatest_NoReport(t *testing.T) {
	r, _ := newReportRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/reports/latest", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NO_REPORT")
}

func TestLatest_ReturnsStoredReport(t *testing.T) {
	r, store := newReportRouter(t)
	store.Put(storedReport())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/reports/latest", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	data := resp.Data.(map[string]interface{})
	report := data["report"].(map[string]interface{})
	assert.Equal(t, float64(2), report["total_processed"])
	assert.NotEmpty(t, data["generated_at"])
}

func TestExport_CSVDefault(t *testing.T) {
	r, store := newReportRouter(t)
	store.Put(storedReport())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/reports/latest/export", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "invoice_report_")
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".csv")

	body := w.Body.Bytes()
	assert.True(t, bytes.HasPrefix(body, export.BOM))
	assert.Contains(t, string(body), "a.pdf")
	assert.Contains(t, string(body), "over limit")
}

func TestExport_XLSX(t *testing.T) {
	r, store := newReportRouter(t)
	store.Put(storedReport())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/reports/latest/export?format=xlsx", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "spreadsheetml")
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte{'P', 'K'}))
}

func TestExport_InvalidFormat(t *testing.T) {
	r, store := newReportRouter(t)
	store.Put(storedReport())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/reports/latest/export?format=pdf", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_FORMAT")
}

func TestExport_NoReport(t *testing.T) {
	r, _ := newReportRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/reports/latest/export", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
