package main

import (
	"fmt"
	"log"

	"invoiceagent/internal/config"
	"invoiceagent/internal/email/noop"
	"invoiceagent/internal/email/ses"
	"invoiceagent/internal/extract"
	"invoiceagent/internal/handler"
	"invoiceagent/internal/llm"
	"invoiceagent/internal/llm/claude"
	"invoiceagent/internal/llm/gemini"
	"invoiceagent/internal/llm/openai"
	"invoiceagent/internal/policy"
	"invoiceagent/internal/port"
	"invoiceagent/internal/router"
	"invoiceagent/internal/service"
	s3storage "invoiceagent/internal/storage/s3"
	"invoiceagent/internal/validate"
)

func registerProviders() {
	llm.RegisterProvider("openai", func(cfg *config.LLMProviderConfig) (port.Completer, error) {
		return openai.NewClient(cfg), nil
	})
	llm.RegisterProvider("claude", func(cfg *config.LLMProviderConfig) (port.Completer, error) {
		return claude.NewClient(cfg), nil
	})
	llm.RegisterProvider("gemini", func(cfg *config.LLMProviderConfig) (port.Completer, error) {
		return gemini.NewClient(cfg), nil
	})
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	registerProviders()

	// Build the completion chain in configured fallback order
	providerCfgs := cfg.LLM.Providers()
	if len(providerCfgs) == 0 {
		return fmt.Errorf("no completion providers configured")
	}
	var completers []port.Completer
	var names []string
	for _, pc := range providerCfgs {
		completer, err := llm.NewCompleter(pc)
		if err != nil {
			return fmt.Errorf("failed to initialize provider %s: %w", pc.Provider, err)
		}
		completers = append(completers, completer)
		names = append(names, pc.Provider)
	}
	completer := llm.NewFallbackCompleter(completers, names)

	// Initialize the report sender
	var emailSender port.EmailSender
	switch cfg.Email.Provider {
	case "ses":
		emailSender, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	default:
		emailSender = noop.NewNoopSender()
	}

	// Initialize optional archive storage
	var storage port.ObjectStorage
	if cfg.Archive.Bucket != "" {
		storage, err = s3storage.NewS3Client(&cfg.Archive)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
	}

	// Initialize services
	interpreter := policy.NewInterpreter(completer)
	validator := validate.NewValidator(completer)
	extractor := extract.NewEngine()
	fileSvc := service.NewFileService(storage, &cfg.Upload, &cfg.Archive)
	batchSvc := service.NewBatchService(interpreter, extractor, validator, &cfg.Pipeline)
	reportStore := service.NewReportStore()

	// Initialize handlers
	processH := handler.NewProcessHandler(fileSvc, batchSvc, reportStore, emailSender)
	reportH := handler.NewReportHandler(reportStore)
	healthH := handler.NewHealthHandler()

	// Setup router
	r := router.Setup(cfg, processH, reportH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
