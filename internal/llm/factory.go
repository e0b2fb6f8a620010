package llm

import (
	"fmt"

	"invoiceagent/internal/config"
	"invoiceagent/internal/port"
)

// ProviderFactory is a function that creates a Completer from a provider config.
type ProviderFactory func(cfg *config.LLMProviderConfig) (port.Completer, error)

// registry of provider factories, populated explicitly via RegisterProvider.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers a completion provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// NewCompleter creates a Completer from a provider config using the
// registered factory.
func NewCompleter(cfg *config.LLMProviderConfig) (port.Completer, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown completion provider: %s", cfg.Provider)
	}
	return factory(cfg)
}
