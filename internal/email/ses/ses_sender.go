package ses

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"invoiceagent/internal/domain"
	"invoiceagent/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(region, fromAddress, fromName string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	client := sesv2.NewFromConfig(cfg)
	return &sesSender{
		client:      client,
		fromAddress: fromAddress,
		fromName:    fromName,
	}, nil
}

func (s *sesSender) SendReport(ctx context.Context, toEmail string, report *domain.ReportData) error {
	subject := fmt.Sprintf("Invoice Processing Report - %d invoices processed", report.TotalProcessed)
	htmlBody, err := buildReportHTML(report)
	if err != nil {
		return fmt.Errorf("rendering report email: %w", err)
	}
	textBody := buildReportText(report)
	return s.send(ctx, toEmail, subject, htmlBody, textBody)
}

func (s *sesSender) SendErrorNotification(ctx context.Context, toEmail, message string) error {
	subject := "Invoice Processing Failed"
	htmlBody := fmt.Sprintf(`<html><body style="font-family: Arial, sans-serif;">
  <h2 style="color: #f44336;">Invoice Processing Failed</h2>
  <p>%s</p>
</body></html>`, message)
	textBody := fmt.Sprintf("Invoice processing failed.\n\n%s\n", message)
	return s.send(ctx, toEmail, subject, htmlBody, textBody)
}

func (s *sesSender) send(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}
