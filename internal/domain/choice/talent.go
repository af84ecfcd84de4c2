package choice

import (
	"github.com/KirkDiggler/chargen/internal/catalog"
	"github.com/KirkDiggler/chargen/internal/domain/sheet"
)

// Talent raises or lowers a skill's rating and optionally makes it the
// hero's primary skill
type Talent struct {
	Skill string
	Basis bool
	Value int

	// Primary claims primary status for the skill. Only one skill can hold
	// the hero's primary back-reference; the first claimant keeps it.
	Primary bool
}

// NewTalent creates a talent choice for a skill definition
func NewTalent(def *catalog.Definition, value int, primary bool) Talent {
	return Talent{
		Skill:   def.Name,
		Basis:   def.Basis,
		Value:   value,
		Primary: primary,
	}
}

func (Talent) isChoice() {}

// Apply adds the value to the skill's rating
func (t Talent) Apply(hero *sheet.Hero, alreadyApplied bool) {
	t.apply(hero, t.Value, false, alreadyApplied)
}

// Unapply subtracts the value again
func (t Talent) Unapply(hero *sheet.Hero) {
	t.apply(hero, -t.Value, true, false)
}

func (t Talent) apply(hero *sheet.Hero, delta int, unapply, alreadyApplied bool) {
	skill := hero.Skill(t.Skill)

	// only a choice that moves the skill off unrated marks it choice-only
	if !skill.Rating.IsSet() && !unapply {
		skill.Temporary.ChoiceOnly = true
	}

	if !alreadyApplied {
		skill.Rating = sheet.RatingOf(skill.Rating.OrZero() + delta)
	}

	// a skill that only exists through choices goes back to unrated at zero
	if v, ok := skill.Rating.Get(); ok && v == 0 && skill.Temporary.ChoiceOnly && !t.Basis {
		skill.Rating = sheet.Unrated()
	}
	if !skill.Rating.IsSet() {
		skill.Temporary.ChoiceOnly = false
	}

	if t.Primary {
		if unapply {
			skill.Primary = false
			hero.ReleasePrimary(t.Skill)
		} else {
			skill.Primary = true
			hero.ClaimPrimary(t.Skill)
		}
	}

	if unapply {
		hero.PruneSkill(t.Skill)
	}
}
