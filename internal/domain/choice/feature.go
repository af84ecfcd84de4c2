package choice

import (
	"github.com/KirkDiggler/chargen/internal/catalog"
	"github.com/KirkDiggler/chargen/internal/domain/sheet"
	dnderr "github.com/KirkDiggler/chargen/internal/errors"
)

// Feature adds one instance of an advantage, disadvantage or special ability
// to its category together with the skill adjustments it grants
type Feature struct {
	Category string
	Name     string
	Record   *sheet.Record

	// Multiple features are stored in list form, one record per instance
	Multiple bool
	Grants   []Talent
}

// NewFeature resolves the feature's grants against the catalog. A grant that
// names an unknown skill is a data integrity error.
func NewFeature(cat catalog.Catalog, def *catalog.Definition, record *sheet.Record) (Feature, error) {
	f := Feature{
		Category: def.Category,
		Name:     def.Name,
		Record:   record,
		Multiple: def.Multiple(),
	}
	for _, g := range def.Grants {
		skill, err := cat.LookupSkill(g.Skill)
		if err != nil {
			return Feature{}, dnderr.DataIntegrity(err, "failed to resolve grant of "+def.Name)
		}
		f.Grants = append(f.Grants, NewTalent(skill, g.Value, g.Primary))
	}
	return f, nil
}

func (Feature) isChoice() {}

// Apply stores the record and applies the grants
func (f Feature) Apply(hero *sheet.Hero, alreadyApplied bool) {
	if !alreadyApplied {
		target := hero.Category(f.Category)
		if f.Multiple {
			target.Append(f.Name, f.Record)
		} else {
			target.Put(f.Name, f.Record)
		}
	}
	for _, g := range f.Grants {
		g.Apply(hero, alreadyApplied)
	}
}

// Unapply reverts the grants and removes the record
func (f Feature) Unapply(hero *sheet.Hero) {
	for i := len(f.Grants) - 1; i >= 0; i-- {
		f.Grants[i].Unapply(hero)
	}
	hero.Category(f.Category).Remove(f.Name, f.Record)
}
