package noop

import (
	"context"
	"log"

	"invoiceagent/internal/domain"
	"invoiceagent/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs report deliveries to stdout.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendReport(_ context.Context, toEmail string, report *domain.ReportData) error {
	log.Printf("[NOOP EMAIL] Report for %s: %d processed, %d valid, %d invalid",
		toEmail, report.TotalProcessed, report.ValidInvoices, report.InvalidInvoices)
	return nil
}

func (s *noopSender) SendErrorNotification(_ context.Context, toEmail, message string) error {
	log.Printf("[NOOP EMAIL] Error notification for %s: %s", toEmail, message)
	return nil
}
