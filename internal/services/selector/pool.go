package selector

import (
	"log"
	"math"

	"github.com/KirkDiggler/chargen/internal/domain/sheet"
)

// adventurePointsPerGP converts special-ability prices into generation points
const adventurePointsPerGP = 50.0

func (s *Selector) setCost() {
	s.incurCost(s.cost, s.negativeCost, true, true)
	s.cost, s.negativeCost = s.Cost()
	s.incurCost(s.cost, s.negativeCost, false, true)
}

// incurCost charges (or with refund, returns) cost to the local pool. A pool
// that runs dry borrows from the budgets; a pool that overflows its stored
// maximum pays the excess back. The cheaper abilities pool never touches the
// budgets.
func (s *Selector) incurCost(cost, negativeTraits int, refund, updateParent bool) {
	if refund {
		s.pool.Add(cost)
	} else {
		s.pool.Add(-cost)
	}

	if s.discounted() {
		return
	}

	scale := 1.0
	if s.category == sheet.CategorySpecialAbilities {
		scale = adventurePointsPerGP
	}
	// disadvantages earn points instead of spending them
	direction := 1
	if s.category == sheet.CategoryDisadvantages {
		direction = -1
	}

	pool := s.pool.Get()
	if pool < 0 {
		value := direction * int(math.Floor(float64(pool)/scale))
		if updateParent {
			s.budget.Add(value)
			if s.secondary != nil {
				s.secondary.Add(value)
				s.negativeTraits.Add(negativeTraits - (cost - value))
			}
			log.Printf("%s pool short by %d, %s %+d", s.category, -pool, s.budget.Name(), value)
		}
		s.pool.Set(0)
		return
	}

	max := s.hero.Category(s.category).Pool()
	if difference := max - pool; difference < 0 {
		value := direction * int(math.Floor(float64(difference)/scale))
		if updateParent {
			s.budget.Add(-value)
			if s.secondary != nil {
				s.secondary.Add(-value)
				s.negativeTraits.Add(-negativeTraits + cost - value)
			}
			log.Printf("%s pool over by %d, %s %+d", s.category, -difference, s.budget.Name(), -value)
		}
		s.pool.Set(max)
	}
}
