package selector

import (
	"math"

	"github.com/KirkDiggler/chargen/internal/domain/sheet"
)

// Features involved in the balance cost rule
const (
	AdvantageBalance            = "Balance"
	AdvantageOutstandingBalance = "Outstanding Balance"
	AbilityStableFooting        = "Stable Footing"
)

// costRule lowers the price of a feature when the hero already has a special
// ability from a fixed source (neither chosen now nor granted by another feature)
type costRule struct {
	feature    string
	unlessHas  string
	ability    string
	adjustment int
}

var costRules = []costRule{
	{feature: AdvantageBalance, unlessHas: AdvantageOutstandingBalance, ability: AbilityStableFooting, adjustment: -4},
	{feature: AdvantageOutstandingBalance, ability: AbilityStableFooting, adjustment: -4},
}

// Cost sums the price of all items. The second value is the part owed to
// negative traits.
func (s *Selector) Cost() (cost, negativeTraits int) {
	for _, it := range s.items {
		current := int(s.itemCost(it))
		cost += current
		if it.Definition.NegativeTrait {
			negativeTraits += current
		}
	}
	return cost, negativeTraits
}

// Charge is what the item adds to the category cost
func (s *Selector) Charge(it *Item) int {
	return int(s.itemCost(it))
}

func (s *Selector) itemCost(it *Item) float64 {
	additional := it.Record.Temporary.AdditionalLevels

	if s.discounted() {
		return discountCost(it.BaseCost(), it.NumCheaper(), additional, it.Chosen())
	}

	if it.Chosen() {
		return float64(it.Cost() + s.adjustment(it))
	}

	value := it.Value()
	if value == 0 {
		return 0
	}
	return roundHalfUp(float64(it.Cost()) / float64(value) * float64(additional))
}

// discountCost prices n discounts on an ability. Each further discount costs
// half the previous one; a partial purchase pays only for the last additional
// discounts.
func discountCost(base, n, additional int, chosen bool) float64 {
	b := float64(base)
	if chosen {
		return b * (2 - math.Pow(2, -float64(n-1)))
	}
	return b * (math.Pow(2, -float64(n-additional-1)) - math.Pow(2, -float64(n-1)))
}

func (s *Selector) adjustment(it *Item) int {
	for _, rule := range costRules {
		if rule.feature != it.Name {
			continue
		}
		if rule.unlessHas != "" && s.hasFeature(sheet.CategoryAdvantages, rule.unlessHas) {
			return 0
		}
		abilities, ok := s.hero.FindCategory(sheet.CategorySpecialAbilities)
		if !ok {
			return 0
		}
		ability := abilities.Record(rule.ability)
		if ability == nil || ability.Temporary.Chosen || ability.GrantedBy != "" {
			return 0
		}
		return rule.adjustment
	}
	return 0
}

func (s *Selector) hasFeature(category, name string) bool {
	c, ok := s.hero.FindCategory(category)
	return ok && c.Has(name)
}

// roundHalfUp rounds .5 towards positive infinity
func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}
