// Package catalog resolves feature and skill names to their rule definitions.
package catalog

//go:generate mockgen -destination=mock/mock.go -package=mockcatalog -source=catalog.go

// SkillsCategory is the category recorded on skill definitions
const SkillsCategory = "Skills"

// Grant is a skill adjustment a feature brings with it
type Grant struct {
	Skill   string `yaml:"skill"`
	Value   int    `yaml:"value"`
	Primary bool   `yaml:"primary"`
}

// Definition is the static rule data of one feature or skill
type Definition struct {
	Name     string `yaml:"name"`
	Category string `yaml:"category"`

	// Cost is the purchase cost; for leveled features it is the cost per level.
	// Special abilities are priced in adventure points, everything else in
	// generation points.
	Cost    int  `yaml:"cost"`
	Leveled bool `yaml:"leveled"`

	Variants []string `yaml:"variants"`
	FreeText bool     `yaml:"free_text"`

	// NegativeTrait marks disadvantages that count against the bad-trait budget
	NegativeTrait bool `yaml:"negative_trait"`

	// Basis marks skills every hero has; they are never dropped back to unrated
	Basis bool `yaml:"basis"`

	Grants []Grant `yaml:"grants"`
}

// HasVariants reports whether the feature is chosen with a variant
func (d *Definition) HasVariants() bool {
	return len(d.Variants) > 0
}

// Multiple reports whether several instances of the feature can be held,
// which is the case when it takes a variant or free text
func (d *Definition) Multiple() bool {
	return d.HasVariants() || d.FreeText
}

// Catalog looks up rule definitions. Lookups for unknown names fail with a
// not found error.
type Catalog interface {
	// Lookup resolves an advantage, disadvantage or special ability
	Lookup(name string) (*Definition, error)

	// LookupSkill resolves a skill or spell
	LookupSkill(name string) (*Definition, error)

	// Candidates lists the features of a category in name order
	Candidates(category string) []*Definition
}
