package chargen

import (
	"context"
	"fmt"
	"log"

	"github.com/KirkDiggler/chargen/internal/catalog"
	"github.com/KirkDiggler/chargen/internal/config"
	"github.com/KirkDiggler/chargen/internal/domain/choice"
	"github.com/KirkDiggler/chargen/internal/domain/draft"
	"github.com/KirkDiggler/chargen/internal/domain/points"
	"github.com/KirkDiggler/chargen/internal/domain/sheet"
	dnderr "github.com/KirkDiggler/chargen/internal/errors"
	"github.com/KirkDiggler/chargen/internal/repositories/drafts"
	"github.com/KirkDiggler/chargen/internal/services/picker"
	"github.com/KirkDiggler/chargen/internal/services/selector"
	"github.com/KirkDiggler/chargen/internal/services/wizard"
)

// Session is one live generation run over a draft. It is not safe for
// concurrent use.
type Session struct {
	draft      *draft.Draft
	repository drafts.Repository
	limits     config.BudgetConfig

	budget         *points.Counter
	secondary      *points.Counter
	negativeTraits *points.Counter

	selectors map[string]*selector.Selector
	pickers   map[string]*picker.GroupPicker
	wizard    *wizard.Wizard
}

func (s *service) newSession(d *draft.Draft) *Session {
	sess := &Session{
		draft:          d,
		repository:     s.repository,
		limits:         s.budget,
		budget:         points.NewCounter(draft.BudgetPrimary, d.Budgets.Primary),
		secondary:      points.NewCounter(draft.BudgetSecondary, d.Budgets.Secondary),
		negativeTraits: points.NewCounter(draft.BudgetNegativeTraits, d.Budgets.NegativeTraits),
		selectors:      make(map[string]*selector.Selector, len(Steps)),
		pickers:        make(map[string]*picker.GroupPicker, len(Steps)),
	}

	steps := make([]wizard.Step, 0, len(Steps))
	for _, category := range Steps {
		steps = append(steps, sess.addCategory(s.catalog, category))
	}
	sess.wizard = wizard.New(d.Flow, steps...)
	d.Flow = sess.wizard.Flow()

	return sess
}

func (s *Session) addCategory(cat catalog.Catalog, category string) *selector.Selector {
	p := picker.NewGroupPicker(cat, category)
	cfg := &selector.Config{
		Hero:     s.draft.Hero,
		Category: category,
		Catalog:  cat,
		Budget:   s.budget,
		Picker:   p,
	}
	if category == sheet.CategoryDisadvantages {
		cfg.Secondary = s.secondary
		cfg.NegativeTraits = s.negativeTraits
	}

	sel := selector.New(cfg)
	s.selectors[category] = sel
	s.pickers[category] = p
	return sel
}

// Draft returns the underlying draft
func (s *Session) Draft() *draft.Draft {
	return s.draft
}

// Hero returns the character being built
func (s *Session) Hero() *sheet.Hero {
	return s.draft.Hero
}

// Step returns the selector of the current step
func (s *Session) Step() *selector.Selector {
	return s.selectors[s.wizard.Current().Name()]
}

// Picker returns the picker of the current step
func (s *Session) Picker() *picker.GroupPicker {
	return s.pickers[s.wizard.Current().Name()]
}

// Flow returns the wizard position
func (s *Session) Flow() *draft.FlowState {
	return s.wizard.Flow()
}

// Counters returns the shared budgets in display order
func (s *Session) Counters() []*points.Counter {
	return []*points.Counter{s.budget, s.secondary, s.negativeTraits}
}

// Budgets returns the current budget values
func (s *Session) Budgets() draft.Budgets {
	return draft.Budgets{
		Primary:        s.budget.Get(),
		Secondary:      s.secondary.Get(),
		NegativeTraits: s.negativeTraits.Get(),
	}
}

// Warnings lists budget limits the draft currently exceeds
func (s *Session) Warnings() []string {
	var out []string
	if s.budget.Get() < 0 {
		out = append(out, fmt.Sprintf("%s overspent by %d", s.budget.Name(), -s.budget.Get()))
	}
	if s.secondary.Get() > s.limits.DisadvantageLimit {
		out = append(out, fmt.Sprintf("%s %d exceeds the limit of %d", s.secondary.Name(), s.secondary.Get(), s.limits.DisadvantageLimit))
	}
	if s.negativeTraits.Get() > s.limits.BadTraitLimit {
		out = append(out, fmt.Sprintf("%s %d exceeds the limit of %d", s.negativeTraits.Name(), s.negativeTraits.Get(), s.limits.BadTraitLimit))
	}
	return out
}

// Choose picks a feature in the current step
func (s *Session) Choose(sel picker.Selection) (choice.Choice, error) {
	return s.Picker().Choose(sel)
}

// Remove drops a chosen feature from the current step. detail selects the
// variant or free text of a repeatable feature.
func (s *Session) Remove(name, detail string) error {
	it, err := s.find(name, detail)
	if err != nil {
		return err
	}
	return s.Step().Remove(it)
}

// SetValue changes the level, or in the discount step the discount count, of
// a feature in the current step
func (s *Session) SetValue(name, detail string, value int) error {
	it, err := s.find(name, detail)
	if err != nil {
		return err
	}
	if it.DiscountCategory {
		return s.Step().SetNumCheaper(it, value)
	}
	return s.Step().SetValue(it, value)
}

func (s *Session) find(name, detail string) (*selector.Item, error) {
	it := s.Step().Find(name, detail)
	if it == nil {
		return nil, dnderr.NotFoundf("'%s' is not in %s", name, s.Step().Name()).
			WithMeta("category", s.Step().Name())
	}
	return it, nil
}

// Next moves to the following step
func (s *Session) Next() error {
	return s.wizard.Next()
}

// Back moves to the previous step, refunding the current one
func (s *Session) Back() error {
	return s.wizard.Back()
}

func (s *Session) snapshot() {
	s.draft.Budgets = s.Budgets()
	s.draft.Flow = s.wizard.Flow()
}

// Save stores the draft as it is now; it can be resumed at the current step
func (s *Session) Save(ctx context.Context) error {
	s.snapshot()
	if err := s.repository.Update(ctx, s.draft); err != nil {
		return dnderr.Wrap(err, "failed to save draft").
			WithMeta("draft_id", s.draft.ID)
	}
	log.Printf("Saved draft %s at %s", s.draft.ID, s.Flow().CurrentStepID)
	return nil
}

// Finish leaves the last step, drops session-only bookkeeping from the hero
// and stores the finished draft
func (s *Session) Finish(ctx context.Context) error {
	if !s.Flow().IsLastStep() {
		return dnderr.FailedPreconditionf("finish from the last step, currently at %s", s.Flow().CurrentStepID)
	}
	if err := s.wizard.Finish(); err != nil {
		return err
	}

	s.snapshot()
	s.draft.Hero.StripEphemeral()
	s.draft.Status = draft.StatusFinished

	if err := s.repository.Update(ctx, s.draft); err != nil {
		return dnderr.Wrap(err, "failed to save finished draft").
			WithMeta("draft_id", s.draft.ID)
	}
	log.Printf("Finished draft %s with %d GP left", s.draft.ID, s.budget.Get())
	return nil
}

// Close detaches the current step without refunding it
func (s *Session) Close() error {
	return s.wizard.Suspend()
}
