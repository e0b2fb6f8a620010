package handler

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"invoiceagent/internal/domain"
	"invoiceagent/internal/port"
	"invoiceagent/internal/service"
)

// ProcessHandler handles the invoice batch processing endpoint.
type ProcessHandler struct {
	fileService  service.FileService
	batchService service.BatchService
	reportStore  *service.ReportStore
	emailSender  port.EmailSender
}

// NewProcessHandler creates a new ProcessHandler.
func NewProcessHandler(
	fileService service.FileService,
	batchService service.BatchService,
	reportStore *service.ReportStore,
	emailSender port.EmailSender,
) *ProcessHandler {
	return &ProcessHandler{
		fileService:  fileService,
		batchService: batchService,
		reportStore:  reportStore,
		emailSender:  emailSender,
	}
}

// Process handles POST /api/v1/invoices/process. It accepts a multipart form
// with the limitations text, the recipient email, and one or more invoice
// files, runs the batch, stores the resulting report, and emails it. Report
// delivery failure is reported in the response, never as a request failure.
func (h *ProcessHandler) Process(c *gin.Context) {
	limitations := strings.TrimSpace(c.PostForm("limitations"))
	if limitations == "" {
		HandleError(c, domain.ErrMissingLimitations)
		return
	}
	recipient := strings.TrimSpace(c.PostForm("email"))
	if recipient == "" {
		HandleError(c, domain.ErrMissingRecipient)
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_FORM", "could not parse multipart form")
		return
	}
	headers := form.File["invoices"]
	if len(headers) == 0 {
		HandleError(c, domain.ErrNoFiles)
		return
	}

	var staged []domain.BatchFile
	defer func() { h.fileService.Cleanup(staged) }()

	for _, header := range headers {
		file, err := h.fileService.SaveUpload(header)
		if err != nil {
			if errors.Is(err, domain.ErrUnsupportedFormat) {
				log.Printf("processHandler: skipping %s: %v", header.Filename, err)
				continue
			}
			HandleError(c, err)
			return
		}
		staged = append(staged, *file)
	}
	if len(staged) == 0 {
		HandleError(c, domain.ErrNoFiles)
		return
	}

	report, err := h.batchService.Process(c.Request.Context(), staged, limitations)
	if err != nil {
		if notifyErr := h.emailSender.SendErrorNotification(c.Request.Context(), recipient, err.Error()); notifyErr != nil {
			log.Printf("processHandler: error notification failed: %v", notifyErr)
		}
		HandleError(c, err)
		return
	}

	stored := h.reportStore.Put(report)

	for _, file := range staged {
		h.fileService.Archive(c.Request.Context(), file)
	}

	emailSent := true
	if err := h.emailSender.SendReport(c.Request.Context(), recipient, report); err != nil {
		log.Printf("processHandler: report delivery failed for %s: %v", recipient, err)
		emailSent = false
	}

	RespondOK(c, gin.H{
		"report": report,
		"summary": gin.H{
			"total_processed":  report.TotalProcessed,
			"valid_invoices":   report.ValidInvoices,
			"invalid_invoices": report.InvalidInvoices,
			"accuracy":         report.AccuracyPercentage,
		},
		"report_url":   "/api/v1/reports/latest",
		"generated_at": stored.GeneratedAt,
		"email_sent":   emailSent,
	})
}
