package handler

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"invoiceagent/internal/export"
	"invoiceagent/internal/service"
)

// ReportHandler handles report display and export endpoints.
type ReportHandler struct {
	reportStore *service.ReportStore
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportStore *service.ReportStore) *ReportHandler {
	return &ReportHandler{reportStore: reportStore}
}

// Latest handles GET /api/v1/reports/latest.
func (h *ReportHandler) Latest(c *gin.Context) {
	stored, err := h.reportStore.Latest()
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, stored)
}

// Export handles GET /api/v1/reports/latest/export?format=csv|xlsx. The
// default format is csv.
func (h *ReportHandler) Export(c *gin.Context) {
	stored, err := h.reportStore.Latest()
	if err != nil {
		HandleError(c, err)
		return
	}

	format := c.DefaultQuery("format", "csv")
	filename := fmt.Sprintf("invoice_report_%s.%s", stored.GeneratedAt.Format("2006-01-02"), format)

	switch format {
	case "csv":
		c.Header("Content-Type", "text/csv; charset=utf-8")
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		c.Status(http.StatusOK)

		if _, err := c.Writer.Write(export.BOM); err != nil {
			log.Printf("reportHandler.Export: writing BOM: %v", err)
			return
		}
		w := export.NewCSVWriter(c.Writer)
		if err := w.WriteHeader(); err != nil {
			log.Printf("reportHandler.Export: writing header: %v", err)
			return
		}
		if err := w.WriteReport(stored.Report); err != nil {
			log.Printf("reportHandler.Export: writing rows: %v", err)
			return
		}
		w.Flush()
		if err := w.Error(); err != nil {
			log.Printf("reportHandler.Export: flushing csv: %v", err)
		}
	case "xlsx":
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		c.Status(http.StatusOK)

		if err := export.WriteXLSX(c.Writer, stored.Report, stored.GeneratedAt.Format(time.RFC3339)); err != nil {
			log.Printf("reportHandler.Export: writing workbook: %v", err)
		}
	default:
		RespondError(c, http.StatusBadRequest, "INVALID_FORMAT", "format must be csv or xlsx")
	}
}
