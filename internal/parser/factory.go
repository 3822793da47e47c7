package parser

import (
	"fmt"

	"billscan/internal/config"
	"billscan/internal/domain"
	"billscan/internal/port"
)

// ProviderFactory is a function that creates a VisionModel from parser config.
type ProviderFactory func(cfg *config.ParserConfig) (port.VisionModel, error)

// registry of vision model provider factories, populated by init() in each
// provider package or explicitly via RegisterProvider.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers a vision model provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// NewVisionModel creates a VisionModel using the registered factory for the
// configured provider.
func NewVisionModel(cfg *config.ParserConfig) (port.VisionModel, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedProvider, cfg.Provider)
	}
	return factory(cfg)
}
