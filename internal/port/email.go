package port

import (
	"context"

	"invoiceagent/internal/domain"
)

// EmailSender defines the contract for delivering reports by email.
type EmailSender interface {
	SendReport(ctx context.Context, toEmail string, report *domain.ReportData) error
	SendErrorNotification(ctx context.Context, toEmail, message string) error
}
