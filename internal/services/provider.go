package services

import (
	"github.com/KirkDiggler/chargen/internal/catalog"
	"github.com/KirkDiggler/chargen/internal/config"
	"github.com/KirkDiggler/chargen/internal/repositories/drafts"
	"github.com/KirkDiggler/chargen/internal/services/chargen"
	"github.com/KirkDiggler/chargen/internal/uuid"
)

// Provider holds all service instances
type Provider struct {
	Catalog        catalog.Catalog
	ChargenService chargen.Service
}

// ProviderConfig holds configuration for creating services
type ProviderConfig struct {
	Catalog         catalog.Catalog
	DraftRepository drafts.Repository
	UUIDGenerator   uuid.Generator
	Budget          config.BudgetConfig
}

// NewProvider creates a new service provider with all services initialized
func NewProvider(cfg *ProviderConfig) *Provider {
	if cfg == nil {
		panic("ProviderConfig cannot be nil")
	}

	// Use in-memory repository if none provided
	draftRepo := cfg.DraftRepository
	if draftRepo == nil {
		draftRepo = drafts.NewInMemoryRepository()
	}

	return &Provider{
		Catalog: cfg.Catalog,
		ChargenService: chargen.NewService(&chargen.ServiceConfig{
			Catalog:       cfg.Catalog,
			Repository:    draftRepo,
			UUIDGenerator: cfg.UUIDGenerator,
			Budget:        cfg.Budget,
		}),
	}
}
