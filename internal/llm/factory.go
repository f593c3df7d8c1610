package llm

import (
	"fmt"
	"sort"
	"strings"

	"joblocator/internal/config"
	"joblocator/internal/domain"
	"joblocator/internal/port"
)

// ProviderFactory creates a CompletionClient from the extractor config.
type ProviderFactory func(cfg *config.ExtractorConfig) (port.CompletionClient, error)

// registry of provider factories, populated by init() in each provider package
// or explicitly via RegisterProvider.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers a provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[strings.ToLower(name)] = factory
}

// Providers returns the registered provider names, sorted.
func Providers() []string {
	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewClient creates the configured CompletionClient using the registered factory.
func NewClient(cfg *config.ExtractorConfig) (port.CompletionClient, error) {
	factory, ok := providers[strings.ToLower(cfg.Provider)]
	if !ok {
		return nil, fmt.Errorf("%w: %q (registered: %s)", domain.ErrUnknownProvider, cfg.Provider, strings.Join(Providers(), ", "))
	}
	return factory(cfg)
}
