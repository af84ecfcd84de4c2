package selector

import (
	"github.com/KirkDiggler/chargen/internal/domain/choice"
	"github.com/KirkDiggler/chargen/internal/domain/sheet"
	dnderr "github.com/KirkDiggler/chargen/internal/errors"
)

// SetValue changes the purchased level of a leveled item. A fixed item can only
// be raised; the levels above its granted level are tracked as additional.
func (s *Selector) SetValue(it *Item, value int) error {
	if err := s.editable(it); err != nil {
		return err
	}
	if !it.Definition.Leveled {
		return dnderr.InvalidArgumentf("'%s' has no levels", it.Name)
	}

	record := it.Record
	if it.Fixed {
		granted := record.Level - record.Temporary.AdditionalLevels
		if value < granted {
			return dnderr.InvalidArgumentf("'%s' cannot go below its granted level %d", it.Name, granted)
		}
		record.Temporary.AdditionalLevels = value - granted
	} else if value < 1 {
		return dnderr.InvalidArgumentf("'%s' needs a level of at least 1", it.Name)
	}
	record.Level = value

	s.hero.Category(s.category).Notify()
	return nil
}

// SetNumCheaper changes the discount count of a cheaper-abilities item
func (s *Selector) SetNumCheaper(it *Item, n int) error {
	if err := s.editable(it); err != nil {
		return err
	}
	if !s.discounted() {
		return dnderr.InvalidArgumentf("%s has no discounts", s.category)
	}

	record := it.Record
	if it.Fixed {
		granted := record.NumDiscounts() - record.Temporary.AdditionalLevels
		if n < granted {
			return dnderr.InvalidArgumentf("'%s' cannot go below its granted %d discounts", it.Name, granted)
		}
		record.Temporary.AdditionalLevels = n - granted
	} else if n < 1 {
		return dnderr.InvalidArgumentf("'%s' needs at least one discount", it.Name)
	}
	record.Discounts = n

	s.hero.Category(s.category).Notify()
	return nil
}

// Remove takes a chosen item off the hero. A special ability bought on a
// discount hands the discount back to the cheaper abilities category.
func (s *Selector) Remove(it *Item) error {
	if err := s.editable(it); err != nil {
		return err
	}
	if it.Fixed {
		return dnderr.FailedPreconditionf("'%s' was not chosen here and cannot be removed", it.Label())
	}

	if s.discounted() {
		s.hero.Category(s.category).Remove(it.Name, it.Record)
		return nil
	}

	f, err := choice.NewFeature(s.catalog, it.Definition, it.Record)
	if err != nil {
		return err
	}
	f.Unapply(s.hero)

	if carried := it.Record.Temporary.Cheaper; carried > 0 {
		discount := &sheet.Record{}
		if carried > 1 {
			discount.Discounts = carried
		}
		s.hero.Category(sheet.CategoryCheaperAbilities).Put(it.Name, discount)
	}
	return nil
}

func (s *Selector) editable(it *Item) error {
	if !s.active {
		return dnderr.FailedPreconditionf("selector for %s is not active", s.category)
	}
	if it == nil || it.Record == nil {
		return dnderr.InvalidArgument("item is required")
	}
	return nil
}
