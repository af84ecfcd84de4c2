package selector

import (
	"github.com/KirkDiggler/chargen/internal/catalog"
	"github.com/KirkDiggler/chargen/internal/domain/sheet"
)

// Item is one chosen feature instance as the selector sees it. Items are
// rebuilt from the hero on every change; the record is shared with the hero.
type Item struct {
	Name       string
	Record     *sheet.Record
	Definition *catalog.Definition

	// Fixed items were granted rather than chosen and cannot be removed
	Fixed bool

	// VariantEditable and TextEditable are set when the variant or free text
	// was not predetermined
	VariantEditable bool
	TextEditable    bool

	// SkillCategory items are priced in adventure points
	SkillCategory    bool
	DiscountCategory bool
}

func newItem(name string, def *catalog.Definition, record *sheet.Record, category string) *Item {
	return &Item{
		Name:             name,
		Record:           record,
		Definition:       def,
		Fixed:            !record.Temporary.Chosen,
		VariantEditable:  record.Variant != "" && !record.Temporary.SetVariant,
		TextEditable:     record.Text != "" && !record.Temporary.SetText,
		SkillCategory:    category == sheet.CategorySpecialAbilities,
		DiscountCategory: category == sheet.CategoryCheaperAbilities,
	}
}

// Chosen reports whether the instance was picked during this session
func (i *Item) Chosen() bool {
	return i.Record.Temporary.Chosen
}

// BaseCost is the catalog cost
func (i *Item) BaseCost() int {
	return i.Definition.Cost
}

// Value is the purchased level; features without levels count as one
func (i *Item) Value() int {
	if i.Definition.Leveled {
		return i.Record.Level
	}
	return 1
}

// Cost is the full price of the instance at its current level
func (i *Item) Cost() int {
	if i.Definition.Leveled {
		return i.Definition.Cost * i.Record.Level
	}
	return i.Definition.Cost
}

// NumCheaper is the discount count
func (i *Item) NumCheaper() int {
	return i.Record.NumDiscounts()
}

// Label is the name plus variant or free text
func (i *Item) Label() string {
	switch {
	case i.Record.Variant != "":
		return i.Name + " (" + i.Record.Variant + ")"
	case i.Record.Text != "":
		return i.Name + " (" + i.Record.Text + ")"
	}
	return i.Name
}
