// Package choice defines reversible changes to a hero. Applying a choice and
// then unapplying it restores the hero exactly, which is what lets the
// creation wizard move backwards.
package choice

import (
	"github.com/KirkDiggler/chargen/internal/domain/sheet"
)

// Choice is a reversible change. The set of implementations is closed:
// Talent and Feature.
type Choice interface {
	// Apply realizes the choice. With alreadyApplied the hero already carries
	// the effect (e.g. a reloaded draft), so only bookkeeping is refreshed.
	Apply(hero *sheet.Hero, alreadyApplied bool)

	// Unapply reverts a previous Apply(hero, false)
	Unapply(hero *sheet.Hero)

	isChoice()
}

// ApplyAll applies choices in order
func ApplyAll(hero *sheet.Hero, choices []Choice, alreadyApplied bool) {
	for _, c := range choices {
		c.Apply(hero, alreadyApplied)
	}
}

// UnapplyAll reverts choices in reverse order
func UnapplyAll(hero *sheet.Hero, choices []Choice) {
	for i := len(choices) - 1; i >= 0; i-- {
		choices[i].Unapply(hero)
	}
}
