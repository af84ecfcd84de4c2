// Package chargen runs character generation sessions: it wires the budgets,
// the category selectors and pickers and the wizard around a stored draft.
package chargen

import (
	"context"
	"log"

	"github.com/KirkDiggler/chargen/internal/catalog"
	"github.com/KirkDiggler/chargen/internal/config"
	"github.com/KirkDiggler/chargen/internal/domain/choice"
	"github.com/KirkDiggler/chargen/internal/domain/draft"
	"github.com/KirkDiggler/chargen/internal/domain/sheet"
	dnderr "github.com/KirkDiggler/chargen/internal/errors"
	"github.com/KirkDiggler/chargen/internal/repositories/drafts"
	"github.com/KirkDiggler/chargen/internal/uuid"
)

// Steps is the wizard order. Discounts come before the abilities they apply to.
var Steps = []string{
	sheet.CategoryAdvantages,
	sheet.CategoryDisadvantages,
	sheet.CategoryCheaperAbilities,
	sheet.CategorySpecialAbilities,
}

// Service starts and resumes generation sessions
type Service interface {
	// Start creates a new draft for the owner and enters the first step
	Start(ctx context.Context, ownerID string) (*Session, error)

	// Resume loads a draft and re-enters the step it was saved at
	Resume(ctx context.Context, draftID string) (*Session, error)

	// ListDrafts returns the owner's drafts
	ListDrafts(ctx context.Context, ownerID string) ([]*draft.Draft, error)
}

// ServiceConfig holds the dependencies of the service
type ServiceConfig struct {
	Catalog       catalog.Catalog
	Repository    drafts.Repository
	UUIDGenerator uuid.Generator
	Budget        config.BudgetConfig
}

type service struct {
	catalog    catalog.Catalog
	repository drafts.Repository
	uuid       uuid.Generator
	budget     config.BudgetConfig
}

// NewService creates a session service
func NewService(cfg *ServiceConfig) Service {
	if cfg == nil {
		panic("ServiceConfig cannot be nil")
	}
	if cfg.Catalog == nil {
		panic("catalog is required")
	}
	if cfg.Repository == nil {
		panic("repository is required")
	}

	gen := cfg.UUIDGenerator
	if gen == nil {
		gen = uuid.NewRandomGenerator()
	}

	return &service{
		catalog:    cfg.Catalog,
		repository: cfg.Repository,
		uuid:       gen,
		budget:     cfg.Budget,
	}
}

func (s *service) Start(ctx context.Context, ownerID string) (*Session, error) {
	if ownerID == "" {
		return nil, dnderr.InvalidArgument("owner ID is required")
	}

	hero := sheet.NewHero()
	hero.Category(sheet.CategoryAdvantages).SetPool(s.budget.AdvantagePool)
	hero.Category(sheet.CategoryDisadvantages).SetPool(s.budget.DisadvantagePool)
	hero.Category(sheet.CategoryCheaperAbilities).SetPool(s.budget.CheaperPool)
	hero.Category(sheet.CategorySpecialAbilities).SetPool(s.budget.AbilityPool)

	d := &draft.Draft{
		ID:      s.uuid.New(),
		OwnerID: ownerID,
		Status:  draft.StatusInProgress,
		Hero:    hero,
		Budgets: draft.Budgets{Primary: s.budget.GP},
		Flow:    draft.NewFlowState(Steps),
	}

	sess := s.newSession(d)
	if err := sess.wizard.Start(); err != nil {
		return nil, dnderr.Wrap(err, "failed to enter the first step").
			WithMeta("draft_id", d.ID)
	}

	sess.snapshot()
	if err := s.repository.Create(ctx, d); err != nil {
		return nil, dnderr.Wrap(err, "failed to create draft").
			WithMeta("draft_id", d.ID)
	}

	log.Printf("Started draft %s for owner %s", d.ID, ownerID)
	return sess, nil
}

func (s *service) Resume(ctx context.Context, draftID string) (*Session, error) {
	d, err := s.repository.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if d.IsFinished() {
		return nil, dnderr.FailedPreconditionf("draft '%s' is already finished", draftID).
			WithMeta("draft_id", draftID)
	}
	if d.Hero == nil {
		return nil, dnderr.New(dnderr.CodeDataIntegrity, "draft has no hero").
			WithMeta("draft_id", draftID)
	}
	if d.Flow == nil {
		d.Flow = draft.NewFlowState(Steps)
	}
	if err := replayChoices(s.catalog, d.Hero); err != nil {
		return nil, dnderr.Wrap(err, "failed to restore choices").
			WithMeta("draft_id", draftID)
	}

	sess := s.newSession(d)
	if err := sess.wizard.Resume(); err != nil {
		return nil, dnderr.Wrap(err, "failed to resume draft").
			WithMeta("draft_id", draftID)
	}

	log.Printf("Resumed draft %s at %s", d.ID, d.Flow.CurrentStepID)
	return sess, nil
}

// replayChoices applies the features chosen in a stored hero again in
// bookkeeping mode. The sheet already carries their effects; the replay
// restores derived state such as the primary claim and checks every chosen
// feature against the rules. Discounts carry no grants and are skipped.
func replayChoices(cat catalog.Catalog, hero *sheet.Hero) error {
	var choices []choice.Choice
	for _, category := range Steps {
		if category == sheet.CategoryCheaperAbilities {
			continue
		}
		target, ok := hero.FindCategory(category)
		if !ok {
			continue
		}
		for _, name := range target.Names() {
			entry, _ := target.Entry(name)
			for _, record := range entry.Records() {
				if !record.Temporary.Chosen {
					continue
				}
				def, err := cat.Lookup(name)
				if err != nil {
					return dnderr.DataIntegrity(err, "unknown chosen feature").
						WithMeta("category", category)
				}
				f, err := choice.NewFeature(cat, def, record)
				if err != nil {
					return err
				}
				choices = append(choices, f)
			}
		}
	}

	choice.ApplyAll(hero, choices, true)
	return nil
}

func (s *service) ListDrafts(ctx context.Context, ownerID string) ([]*draft.Draft, error) {
	return s.repository.ListByOwner(ctx, ownerID)
}
