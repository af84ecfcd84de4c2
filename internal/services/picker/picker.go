// Package picker offers catalog features for a category and turns a user's
// pick into an applied choice.
package picker

//go:generate mockgen -destination=mock/mock.go -package=mockpicker -source=picker.go

import (
	"slices"

	"github.com/KirkDiggler/chargen/internal/catalog"
	"github.com/KirkDiggler/chargen/internal/domain/choice"
	"github.com/KirkDiggler/chargen/internal/domain/sheet"
	dnderr "github.com/KirkDiggler/chargen/internal/errors"
)

// Picker is attached to a category selector and follows its lifecycle
type Picker interface {
	Activate(hero *sheet.Hero, target *sheet.Category)
	Deactivate(hero *sheet.Hero, target *sheet.Category)
}

// Selection is a user's pick
type Selection struct {
	Name    string
	Variant string
	Text    string

	// Level is the purchased level for leveled features, or the discount
	// count when picking for the cheaper abilities category
	Level int
}

// GroupPicker offers the catalog features of one category
type GroupPicker struct {
	catalog  catalog.Catalog
	category string
	hero     *sheet.Hero
	target   *sheet.Category
}

// NewGroupPicker creates a picker for a category
func NewGroupPicker(cat catalog.Catalog, category string) *GroupPicker {
	return &GroupPicker{
		catalog:  cat,
		category: category,
	}
}

// Activate attaches the picker to the hero's category
func (p *GroupPicker) Activate(hero *sheet.Hero, target *sheet.Category) {
	p.hero = hero
	p.target = target
}

// Deactivate detaches the picker
func (p *GroupPicker) Deactivate(_ *sheet.Hero, _ *sheet.Category) {
	p.hero = nil
	p.target = nil
}

// Active reports whether the picker is attached
func (p *GroupPicker) Active() bool {
	return p.target != nil
}

// featureCategory is the catalog category the picker draws from. Cheaper
// abilities are discounts on special abilities.
func (p *GroupPicker) featureCategory() string {
	if p.category == sheet.CategoryCheaperAbilities {
		return sheet.CategorySpecialAbilities
	}
	return p.category
}

// Candidates lists the features that can still be picked
func (p *GroupPicker) Candidates() ([]*catalog.Definition, error) {
	if !p.Active() {
		return nil, dnderr.FailedPreconditionf("picker for %s is not active", p.category)
	}

	var out []*catalog.Definition
	for _, def := range p.catalog.Candidates(p.featureCategory()) {
		if !def.Multiple() && p.target.Has(def.Name) {
			continue
		}
		out = append(out, def)
	}
	return out, nil
}

// Choose validates a selection, applies it to the hero and returns the
// applied choice
func (p *GroupPicker) Choose(sel Selection) (choice.Choice, error) {
	if !p.Active() {
		return nil, dnderr.FailedPreconditionf("picker for %s is not active", p.category)
	}

	def, err := p.catalog.Lookup(sel.Name)
	if err != nil {
		return nil, err
	}
	if def.Category != p.featureCategory() {
		return nil, dnderr.InvalidArgumentf("'%s' is not in %s", def.Name, p.category).
			WithMeta("category", def.Category)
	}
	if !def.Multiple() && p.target.Has(def.Name) {
		return nil, dnderr.AlreadyExistsf("'%s' is already chosen", def.Name)
	}

	record := &sheet.Record{Temporary: sheet.Ephemeral{Chosen: true}}
	if def.HasVariants() {
		if !slices.Contains(def.Variants, sel.Variant) {
			return nil, dnderr.InvalidArgumentf("'%s' needs one of the variants %v", def.Name, def.Variants)
		}
		record.Variant = sel.Variant
	}
	if def.FreeText {
		if sel.Text == "" {
			return nil, dnderr.InvalidArgumentf("'%s' needs a description", def.Name)
		}
		record.Text = sel.Text
	}

	if p.category == sheet.CategoryCheaperAbilities {
		if sel.Level > 1 {
			record.Discounts = sel.Level
		}
		f := choice.Feature{Category: p.category, Name: def.Name, Record: record, Multiple: def.Multiple()}
		f.Apply(p.hero, false)
		return f, nil
	}

	if def.Leveled {
		if sel.Level < 1 {
			return nil, dnderr.InvalidArgumentf("'%s' needs a level of at least 1", def.Name)
		}
		record.Level = sel.Level
	}

	if p.category == sheet.CategorySpecialAbilities {
		// buying a discounted ability outright consumes the discount
		cheaper := p.hero.Category(sheet.CategoryCheaperAbilities)
		if discounted := cheaper.Record(def.Name); discounted != nil {
			record.Temporary.Cheaper = discounted.NumDiscounts()
			cheaper.Delete(def.Name)
		}
	}

	f, err := choice.NewFeature(p.catalog, def, record)
	if err != nil {
		return nil, err
	}
	f.Apply(p.hero, false)
	return f, nil
}
