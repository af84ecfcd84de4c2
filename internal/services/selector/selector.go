// Package selector manages one feature category during character creation:
// it prices the chosen features and settles the price against the category's
// local pool and the shared generation-point budgets.
package selector

import (
	"fmt"
	"log"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/KirkDiggler/chargen/internal/catalog"
	"github.com/KirkDiggler/chargen/internal/domain/points"
	"github.com/KirkDiggler/chargen/internal/domain/sheet"
	dnderr "github.com/KirkDiggler/chargen/internal/errors"
	"github.com/KirkDiggler/chargen/internal/services/picker"
)

// Config holds the dependencies of a Selector
type Config struct {
	Hero     *sheet.Hero
	Category string
	Catalog  catalog.Catalog

	// Budget is the primary generation-point budget
	Budget *points.Counter

	// Secondary and NegativeTraits are set only for the disadvantage selector;
	// they track disadvantage points and the bad-trait share of them
	Secondary      *points.Counter
	NegativeTraits *points.Counter

	// Picker is optional
	Picker picker.Picker
}

// Selector is the cost and pool engine of one category. It is a wizard step:
// Activate and Deactivate must be strictly paired.
type Selector struct {
	hero           *sheet.Hero
	category       string
	catalog        catalog.Catalog
	budget         *points.Counter
	secondary      *points.Counter
	negativeTraits *points.Counter
	picker         picker.Picker

	pool     *points.Counter
	collator *collate.Collator

	items        []*Item
	cost         int
	negativeCost int
	active       bool
}

// New creates a selector. It panics on incomplete configuration.
func New(cfg *Config) *Selector {
	if cfg == nil {
		panic("selector config cannot be nil")
	}
	if cfg.Hero == nil || cfg.Catalog == nil || cfg.Budget == nil {
		panic("selector needs a hero, a catalog and a budget")
	}
	if (cfg.Secondary == nil) != (cfg.NegativeTraits == nil) {
		panic("secondary and negative-trait budgets must be configured together")
	}

	return &Selector{
		hero:           cfg.Hero,
		category:       cfg.Category,
		catalog:        cfg.Catalog,
		budget:         cfg.Budget,
		secondary:      cfg.Secondary,
		negativeTraits: cfg.NegativeTraits,
		picker:         cfg.Picker,
		pool:           points.NewCounter(cfg.Category+" pool", 0),
		collator:       collate.New(language.German),
	}
}

// Name returns the category name; it doubles as the wizard step name
func (s *Selector) Name() string {
	return s.category
}

// Pool is the local pool. It is reset from the category's stored maximum on
// every activation.
func (s *Selector) Pool() *points.Counter {
	return s.pool
}

// Active reports whether the selector is attached to the hero
func (s *Selector) Active() bool {
	return s.active
}

// Items returns the current items ordered by name
func (s *Selector) Items() []*Item {
	out := make([]*Item, len(s.items))
	copy(out, s.items)
	return out
}

// Find returns the first item with the given name and, if set, variant or text
func (s *Selector) Find(name, detail string) *Item {
	for _, it := range s.items {
		if it.Name != name {
			continue
		}
		if detail == "" || it.Record.Variant == detail || it.Record.Text == detail {
			return it
		}
	}
	return nil
}

// RecordedCost is the cost currently charged against the pool and budgets
func (s *Selector) RecordedCost() (cost, negativeTraits int) {
	return s.cost, s.negativeCost
}

func (s *Selector) discounted() bool {
	return s.category == sheet.CategoryCheaperAbilities
}

// companion is the extra category the special abilities selector watches
func (s *Selector) companion() (*sheet.Category, bool) {
	if s.category != sheet.CategorySpecialAbilities {
		return nil, false
	}
	return s.hero.Category(sheet.CategoryCheaperAbilities), true
}

// Activate attaches the selector. forward is false when the wizard re-enters
// the step backwards; the budgets already carry this category's cost then and
// only the local pool is rebuilt.
func (s *Selector) Activate(forward bool) error {
	if s.active {
		return dnderr.FailedPreconditionf("selector for %s is already active", s.category)
	}

	items, err := s.rebuild()
	if err != nil {
		return err
	}

	target := s.hero.Category(s.category)
	target.AddListener(s)
	if companion, ok := s.companion(); ok {
		companion.AddListener(s)
	}
	if s.picker != nil {
		s.picker.Activate(s.hero, target)
	}

	s.items = items
	s.active = true
	s.cost, s.negativeCost = s.Cost()
	s.pool.Set(target.Pool())
	s.incurCost(s.cost, s.negativeCost, false, forward)

	log.Printf("Activated %s (forward=%t): cost %d, pool %d", s.category, forward, s.cost, s.pool.Get())
	return nil
}

// Deactivate detaches the selector. Going backwards refunds the recorded cost.
func (s *Selector) Deactivate(forward bool) error {
	if !s.active {
		return dnderr.FailedPreconditionf("selector for %s is not active", s.category)
	}

	if !forward {
		s.incurCost(s.cost, s.negativeCost, true, true)
	}

	target := s.hero.Category(s.category)
	target.RemoveListener(s)
	if companion, ok := s.companion(); ok {
		companion.RemoveListener(s)
	}
	if s.picker != nil {
		s.picker.Deactivate(s.hero, target)
	}
	s.active = false

	log.Printf("Deactivated %s (forward=%t)", s.category, forward)
	return nil
}

// CategoryChanged rebuilds the items and settles the new cost. A catalog
// failure here means the sheet holds a feature the rules do not know; the
// accounting cannot continue, so it panics.
func (s *Selector) CategoryChanged(_ *sheet.Category) {
	if !s.active {
		return
	}
	items, err := s.rebuild()
	if err != nil {
		panic(err)
	}
	s.items = items
	s.setCost()
}

// SetCost refunds the recorded cost and charges the freshly computed one
func (s *Selector) SetCost() error {
	if !s.active {
		return dnderr.FailedPreconditionf("selector for %s is not active", s.category)
	}
	s.setCost()
	return nil
}

func (s *Selector) rebuild() ([]*Item, error) {
	target := s.hero.Category(s.category)

	var items []*Item
	for _, name := range target.Names() {
		def, err := s.catalog.Lookup(name)
		if err != nil {
			return nil, dnderr.DataIntegrity(err, fmt.Sprintf("failed to resolve %s", s.category)).
				WithMeta("category", s.category)
		}

		entry, _ := target.Entry(name)
		if !def.Multiple() && entry.IsMany() {
			return nil, dnderr.DataIntegrity(
				dnderr.InvalidArgumentf("'%s' is stored as a list but takes no variant", name),
				fmt.Sprintf("failed to resolve %s", s.category),
			).WithMeta("category", s.category)
		}

		for _, record := range entry.Records() {
			items = append(items, newItem(name, def, record, s.category))
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return s.collator.CompareString(items[i].Label(), items[j].Label()) < 0
	})
	return items, nil
}
