package selector

import (
	"bytes"
	"log"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/chargen/internal/catalog"
	mockcatalog "github.com/KirkDiggler/chargen/internal/catalog/mock"
	"github.com/KirkDiggler/chargen/internal/domain/points"
	"github.com/KirkDiggler/chargen/internal/domain/sheet"
	dnderr "github.com/KirkDiggler/chargen/internal/errors"
	"github.com/KirkDiggler/chargen/internal/services/picker"
	mockpicker "github.com/KirkDiggler/chargen/internal/services/picker/mock"
)

const testRules = `
features:
  - {name: Balance, category: Advantages, cost: 10}
  - name: Outstanding Balance
    category: Advantages
    cost: 20
    grants: [{skill: Body Control, value: 2}]
  - name: Arcane Talent
    category: Advantages
    cost: 12
    grants: [{skill: Fireball, value: 3, primary: true}]
  - {name: Tough, category: Advantages, cost: 6, leveled: true}
  - {name: Luck, category: Advantages, cost: 25}
  - {name: Greed, category: Disadvantages, cost: 1, leveled: true, negative_trait: true}
  - {name: Unpleasant Voice, category: Disadvantages, cost: 5}
  - {name: Ärger, category: Disadvantages, cost: 2}
  - {name: Stable Footing, category: Special Abilities, cost: 200}
  - {name: Dodge I, category: Special Abilities, cost: 300}
  - {name: Keen Eye, category: Special Abilities, cost: 10}
  - {name: Weapon Specialization, category: Special Abilities, cost: 80, variants: [Sword, Axe]}
skills:
  - {name: Body Control, basis: true}
  - {name: Fireball}
`

const testBudget = 110

func testCatalog(t *testing.T) *catalog.Static {
	t.Helper()
	cat, err := catalog.Load(strings.NewReader(testRules))
	require.NoError(t, err)
	return cat
}

func newTestSelector(t *testing.T, category string, poolMax int) *Selector {
	t.Helper()
	return newSelectorWith(t, sheet.NewHero(), testCatalog(t), category, poolMax, nil)
}

func newSelectorWith(t *testing.T, hero *sheet.Hero, cat catalog.Catalog, category string, poolMax int, p picker.Picker) *Selector {
	t.Helper()
	hero.Category(category).SetPool(poolMax)

	cfg := &Config{
		Hero:     hero,
		Category: category,
		Catalog:  cat,
		Budget:   points.NewCounter("GP", testBudget),
		Picker:   p,
	}
	if category == sheet.CategoryDisadvantages {
		cfg.Secondary = points.NewCounter("Disadvantage GP", 0)
		cfg.NegativeTraits = points.NewCounter("Bad Trait GP", 0)
	}
	return New(cfg)
}

func mustLookup(t *testing.T, s *Selector, name string) *catalog.Definition {
	t.Helper()
	def, err := s.catalog.Lookup(name)
	require.NoError(t, err)
	return def
}

func chosen() *sheet.Record {
	return &sheet.Record{Temporary: sheet.Ephemeral{Chosen: true}}
}

func TestIncurCost_BorrowsDeficit(t *testing.T) {
	s := newTestSelector(t, sheet.CategoryAdvantages, 20)
	s.pool.Set(20)

	s.incurCost(25, 0, false, true)

	assert.Equal(t, 0, s.pool.Get())
	assert.Equal(t, testBudget-5, s.budget.Get())
}

func TestIncurCost_ReturnsOverflow(t *testing.T) {
	s := newTestSelector(t, sheet.CategoryAdvantages, 20)
	s.pool.Set(18)

	s.incurCost(10, 0, true, true)

	assert.Equal(t, 20, s.pool.Get())
	assert.Equal(t, testBudget+8, s.budget.Get())
}

func TestIncurCost_WithoutParentUpdate(t *testing.T) {
	s := newTestSelector(t, sheet.CategoryDisadvantages, 0)

	s.incurCost(10, 4, false, false)

	assert.Equal(t, 0, s.pool.Get())
	assert.Equal(t, testBudget, s.budget.Get())
	assert.Equal(t, 0, s.secondary.Get())
	assert.Equal(t, 0, s.negativeTraits.Get())
}

func TestIncurCost_LogsSignedBudgetChange(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	s := newTestSelector(t, sheet.CategoryDisadvantages, 0)
	s.incurCost(4, 0, false, true)
	assert.Contains(t, buf.String(), "Disadvantages pool short by 4, GP +4")
	assert.Equal(t, testBudget+4, s.budget.Get())

	buf.Reset()
	s.incurCost(4, 0, true, true)
	assert.Contains(t, buf.String(), "Disadvantages pool over by 4, GP -4")
	assert.Equal(t, testBudget, s.budget.Get())

	buf.Reset()
	a := newTestSelector(t, sheet.CategoryAdvantages, 0)
	a.incurCost(6, 0, false, true)
	assert.Contains(t, buf.String(), "Advantages pool short by 6, GP -6")
}

func TestIncurCost_Transfers(t *testing.T) {
	tests := []struct {
		name          string
		category      string
		poolMax       int
		cost          int
		negative      int
		wantPool      int
		wantBudget    int
		wantSecondary int
		wantNegative  int
	}{
		{
			name:       "advantages within the pool",
			category:   sheet.CategoryAdvantages,
			poolMax:    20,
			cost:       15,
			wantPool:   5,
			wantBudget: testBudget,
		},
		{
			name:       "special abilities convert at fifty to one",
			category:   sheet.CategorySpecialAbilities,
			cost:       80,
			wantBudget: testBudget - 2,
		},
		{
			name:          "disadvantages earn points",
			category:      sheet.CategoryDisadvantages,
			cost:          10,
			negative:      4,
			wantBudget:    testBudget + 10,
			wantSecondary: 10,
			wantNegative:  4,
		},
		{
			name:          "disadvantages partly covered by the pool",
			category:      sheet.CategoryDisadvantages,
			poolMax:       5,
			cost:          10,
			negative:      10,
			wantBudget:    testBudget + 5,
			wantSecondary: 5,
			wantNegative:  5,
		},
		{
			name:       "discounts never reach the budget",
			category:   sheet.CategoryCheaperAbilities,
			poolMax:    30,
			cost:       45,
			wantPool:   -15,
			wantBudget: testBudget,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSelector(t, tt.category, tt.poolMax)
			s.pool.Set(tt.poolMax)

			s.incurCost(tt.cost, tt.negative, false, true)

			assert.Equal(t, tt.wantPool, s.pool.Get())
			assert.Equal(t, tt.wantBudget, s.budget.Get())
			if s.secondary != nil {
				assert.Equal(t, tt.wantSecondary, s.secondary.Get())
				assert.Equal(t, tt.wantNegative, s.negativeTraits.Get())
			}
		})
	}
}

func TestIncurCost_DebitThenRefundIsNeutral(t *testing.T) {
	categories := []string{
		sheet.CategoryAdvantages,
		sheet.CategoryDisadvantages,
		sheet.CategorySpecialAbilities,
		sheet.CategoryCheaperAbilities,
	}
	for _, category := range categories {
		for _, poolMax := range []int{0, 7, 20} {
			for _, cost := range []int{0, 3, 20, 25, 80, 333} {
				s := newTestSelector(t, category, poolMax)
				s.pool.Set(poolMax)

				s.incurCost(cost, cost/2, false, true)
				s.incurCost(cost, cost/2, true, true)

				assert.Equal(t, poolMax, s.pool.Get(), "%s pool %d cost %d", category, poolMax, cost)
				assert.Equal(t, testBudget, s.budget.Get(), "%s pool %d cost %d", category, poolMax, cost)
				if s.secondary != nil {
					assert.Equal(t, 0, s.secondary.Get())
					assert.Equal(t, 0, s.negativeTraits.Get())
				}
			}
		}
	}
}

type SelectorSuite struct {
	suite.Suite
	ctrl *gomock.Controller
	cat  *catalog.Static
	hero *sheet.Hero
}

func (s *SelectorSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.cat = testCatalog(s.T())
	s.hero = sheet.NewHero()
}

func (s *SelectorSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *SelectorSuite) TestActivate_SubscribesAndDebits() {
	p := mockpicker.NewMockPicker(s.ctrl)
	target := s.hero.Category(sheet.CategoryAdvantages)
	target.Put(AdvantageBalance, chosen())
	sel := newSelectorWith(s.T(), s.hero, s.cat, sheet.CategoryAdvantages, 0, p)

	p.EXPECT().Activate(s.hero, target)
	s.Require().NoError(sel.Activate(true))

	s.True(sel.Active())
	s.Equal(1, target.ListenerCount())
	s.Equal(testBudget-10, sel.budget.Get())
	s.Len(sel.Items(), 1)

	p.EXPECT().Deactivate(s.hero, target)
	s.Require().NoError(sel.Deactivate(true))

	s.False(sel.Active())
	s.Equal(0, target.ListenerCount())
	s.Equal(testBudget-10, sel.budget.Get())
}

func (s *SelectorSuite) TestActivate_Paired() {
	sel := newSelectorWith(s.T(), s.hero, s.cat, sheet.CategoryAdvantages, 0, nil)

	err := sel.Deactivate(true)
	s.True(dnderr.IsFailedPrecondition(err))

	s.Require().NoError(sel.Activate(true))
	err = sel.Activate(true)
	s.True(dnderr.IsFailedPrecondition(err))
}

func (s *SelectorSuite) TestSetCost_Inactive() {
	sel := newSelectorWith(s.T(), s.hero, s.cat, sheet.CategoryAdvantages, 0, nil)

	err := sel.SetCost()
	s.True(dnderr.IsFailedPrecondition(err))
}

func (s *SelectorSuite) TestSpecialAbilities_WatchCheaperCategory() {
	sel := newSelectorWith(s.T(), s.hero, s.cat, sheet.CategorySpecialAbilities, 0, nil)
	s.Require().NoError(sel.Activate(true))

	s.Equal(1, s.hero.Category(sheet.CategoryCheaperAbilities).ListenerCount())

	s.Require().NoError(sel.Deactivate(true))
	s.Equal(0, s.hero.Category(sheet.CategoryCheaperAbilities).ListenerCount())
}

func (s *SelectorSuite) TestRoundTrip_BackAndForward() {
	s.hero.Category(sheet.CategoryAdvantages).Put("Luck", chosen())
	sel := newSelectorWith(s.T(), s.hero, s.cat, sheet.CategoryAdvantages, 20, nil)

	s.Require().NoError(sel.Activate(true))
	budget, pool := sel.budget.Get(), sel.pool.Get()
	s.Equal(testBudget-5, budget)
	s.Equal(0, pool)

	s.Require().NoError(sel.Deactivate(false))
	s.Equal(testBudget, sel.budget.Get())

	s.Require().NoError(sel.Activate(true))
	s.Equal(budget, sel.budget.Get())
	s.Equal(pool, sel.pool.Get())
}

func (s *SelectorSuite) TestRoundTrip_Replay() {
	dis := s.hero.Category(sheet.CategoryDisadvantages)
	dis.Put("Greed", &sheet.Record{Level: 6, Temporary: sheet.Ephemeral{Chosen: true}})
	sel := newSelectorWith(s.T(), s.hero, s.cat, sheet.CategoryDisadvantages, 0, nil)

	s.Require().NoError(sel.Activate(true))
	s.Equal(testBudget+6, sel.budget.Get())
	s.Equal(6, sel.secondary.Get())
	s.Equal(6, sel.negativeTraits.Get())

	// leaving forward and coming back keeps every budget
	s.Require().NoError(sel.Deactivate(true))
	s.Require().NoError(sel.Activate(false))

	s.Equal(testBudget+6, sel.budget.Get())
	s.Equal(6, sel.secondary.Get())
	s.Equal(6, sel.negativeTraits.Get())
	s.Equal(0, sel.pool.Get())
}

func (s *SelectorSuite) TestDiscountScenario() {
	s.hero.Category(sheet.CategoryCheaperAbilities).Put("Keen Eye", &sheet.Record{
		Discounts: 2,
		Temporary: sheet.Ephemeral{Chosen: true},
	})
	sel := newSelectorWith(s.T(), s.hero, s.cat, sheet.CategoryCheaperAbilities, 30, nil)

	s.Require().NoError(sel.Activate(true))
	cost, _ := sel.RecordedCost()
	s.Equal(15, cost)
	s.Equal(15, sel.pool.Get())

	s.Require().NoError(sel.SetNumCheaper(sel.Find("Keen Eye", ""), 3))

	cost, _ = sel.RecordedCost()
	s.Equal(17, cost)
	s.Equal(13, sel.pool.Get())
	s.Equal(testBudget, sel.budget.Get())
}

func (s *SelectorSuite) TestSetNumCheaper_Fixed() {
	s.hero.Category(sheet.CategoryCheaperAbilities).Put("Keen Eye", &sheet.Record{Discounts: 2})
	sel := newSelectorWith(s.T(), s.hero, s.cat, sheet.CategoryCheaperAbilities, 30, nil)
	s.Require().NoError(sel.Activate(true))
	s.Equal(30, sel.pool.Get())

	err := sel.SetNumCheaper(sel.Find("Keen Eye", ""), 1)
	s.True(dnderr.IsInvalidArgument(err))

	s.Require().NoError(sel.SetNumCheaper(sel.Find("Keen Eye", ""), 3))

	it := sel.Find("Keen Eye", "")
	s.Equal(1, it.Record.Temporary.AdditionalLevels)
	s.Equal(28, sel.pool.Get())
}

func (s *SelectorSuite) TestSetValue() {
	adv := s.hero.Category(sheet.CategoryAdvantages)
	adv.Put("Tough", &sheet.Record{Level: 2})
	adv.Put(AdvantageBalance, chosen())
	sel := newSelectorWith(s.T(), s.hero, s.cat, sheet.CategoryAdvantages, 0, nil)
	s.Require().NoError(sel.Activate(true))
	s.Equal(testBudget-10, sel.budget.Get())

	tough := sel.Find("Tough", "")
	s.True(dnderr.IsInvalidArgument(sel.SetValue(tough, 1)))

	s.Require().NoError(sel.SetValue(tough, 4))
	s.Equal(2, sel.Find("Tough", "").Record.Temporary.AdditionalLevels)
	s.Equal(testBudget-10-12, sel.budget.Get())

	s.True(dnderr.IsInvalidArgument(sel.SetValue(sel.Find(AdvantageBalance, ""), 2)))
}

func (s *SelectorSuite) TestSetValue_Chosen() {
	s.hero.Category(sheet.CategoryAdvantages).Put("Tough", &sheet.Record{Level: 1, Temporary: sheet.Ephemeral{Chosen: true}})
	sel := newSelectorWith(s.T(), s.hero, s.cat, sheet.CategoryAdvantages, 0, nil)
	s.Require().NoError(sel.Activate(true))

	s.Require().NoError(sel.SetValue(sel.Find("Tough", ""), 3))
	s.Equal(testBudget-18, sel.budget.Get())

	s.True(dnderr.IsInvalidArgument(sel.SetValue(sel.Find("Tough", ""), 0)))
}

func (s *SelectorSuite) TestPickAndRemove_WithGrants() {
	p := picker.NewGroupPicker(s.cat, sheet.CategoryAdvantages)
	sel := newSelectorWith(s.T(), s.hero, s.cat, sheet.CategoryAdvantages, 0, p)
	s.Require().NoError(sel.Activate(true))

	_, err := p.Choose(picker.Selection{Name: "Arcane Talent"})
	s.Require().NoError(err)

	s.Equal(testBudget-12, sel.budget.Get())
	s.Equal(sheet.RatingOf(3), s.hero.Skill("Fireball").Rating)
	s.Equal("Fireball", s.hero.PrimaryThrough())

	s.Require().NoError(sel.Remove(sel.Find("Arcane Talent", "")))

	s.Equal(testBudget, sel.budget.Get())
	s.Empty(sel.Items())
	s.False(s.hero.Skill("Fireball").Rating.IsSet())
	s.Empty(s.hero.PrimaryThrough())
}

func (s *SelectorSuite) TestRemove_Fixed() {
	s.hero.Category(sheet.CategoryAdvantages).Put(AdvantageBalance, &sheet.Record{})
	sel := newSelectorWith(s.T(), s.hero, s.cat, sheet.CategoryAdvantages, 0, nil)
	s.Require().NoError(sel.Activate(true))

	err := sel.Remove(sel.Find(AdvantageBalance, ""))
	s.True(dnderr.IsFailedPrecondition(err))
	s.True(s.hero.Category(sheet.CategoryAdvantages).Has(AdvantageBalance))
}

func (s *SelectorSuite) TestRemove_OneVariant() {
	abilities := s.hero.Category(sheet.CategorySpecialAbilities)
	abilities.Append("Weapon Specialization", &sheet.Record{Variant: "Sword", Temporary: sheet.Ephemeral{Chosen: true}})
	abilities.Append("Weapon Specialization", &sheet.Record{Variant: "Axe", Temporary: sheet.Ephemeral{Chosen: true}})
	sel := newSelectorWith(s.T(), s.hero, s.cat, sheet.CategorySpecialAbilities, 0, nil)
	s.Require().NoError(sel.Activate(true))
	s.Equal(testBudget-4, sel.budget.Get())

	s.Require().NoError(sel.Remove(sel.Find("Weapon Specialization", "Sword")))

	s.Require().Len(sel.Items(), 1)
	s.Equal("Axe", sel.Items()[0].Record.Variant)
	s.Equal(testBudget-2, sel.budget.Get())
}

func (s *SelectorSuite) TestRemove_HandsDiscountBack() {
	s.hero.Category(sheet.CategoryCheaperAbilities).Put("Dodge I", &sheet.Record{Discounts: 2})
	p := picker.NewGroupPicker(s.cat, sheet.CategorySpecialAbilities)
	sel := newSelectorWith(s.T(), s.hero, s.cat, sheet.CategorySpecialAbilities, 0, p)
	s.Require().NoError(sel.Activate(true))

	_, err := p.Choose(picker.Selection{Name: "Dodge I"})
	s.Require().NoError(err)

	cheaper := s.hero.Category(sheet.CategoryCheaperAbilities)
	s.False(cheaper.Has("Dodge I"))
	s.Equal(2, sel.Find("Dodge I", "").Record.Temporary.Cheaper)
	s.Equal(testBudget-6, sel.budget.Get())

	s.Require().NoError(sel.Remove(sel.Find("Dodge I", "")))

	s.Require().NotNil(cheaper.Record("Dodge I"))
	s.Equal(2, cheaper.Record("Dodge I").NumDiscounts())
	s.Equal(testBudget, sel.budget.Get())
}

func (s *SelectorSuite) TestItems_CollatedOrder() {
	dis := s.hero.Category(sheet.CategoryDisadvantages)
	dis.Put("Unpleasant Voice", chosen())
	dis.Put("Ärger", chosen())
	dis.Put("Greed", &sheet.Record{Level: 1, Temporary: sheet.Ephemeral{Chosen: true}})
	sel := newSelectorWith(s.T(), s.hero, s.cat, sheet.CategoryDisadvantages, 0, nil)
	s.Require().NoError(sel.Activate(true))

	var names []string
	for _, it := range sel.Items() {
		names = append(names, it.Name)
	}
	s.Equal([]string{"Ärger", "Greed", "Unpleasant Voice"}, names)
}

func (s *SelectorSuite) TestActivate_ListFormForSingleFeature() {
	s.hero.Category(sheet.CategoryAdvantages).Append(AdvantageBalance, chosen())
	sel := newSelectorWith(s.T(), s.hero, s.cat, sheet.CategoryAdvantages, 0, nil)

	err := sel.Activate(true)
	s.True(dnderr.IsDataIntegrity(err))
	s.False(sel.Active())
	s.Equal(testBudget, sel.budget.Get())
}

func (s *SelectorSuite) TestCategoryChanged_UnknownFeaturePanics() {
	cat := mockcatalog.NewMockCatalog(s.ctrl)
	balance, err := s.cat.Lookup(AdvantageBalance)
	s.Require().NoError(err)

	cat.EXPECT().Lookup(AdvantageBalance).Return(balance, nil).AnyTimes()
	cat.EXPECT().Lookup("Mystery").Return(nil, dnderr.NotFound("unknown feature 'Mystery'"))

	target := s.hero.Category(sheet.CategoryAdvantages)
	target.Put(AdvantageBalance, chosen())
	sel := newSelectorWith(s.T(), s.hero, cat, sheet.CategoryAdvantages, 0, nil)
	s.Require().NoError(sel.Activate(true))

	defer func() {
		r := recover()
		s.Require().NotNil(r)
		err, ok := r.(error)
		s.Require().True(ok)
		s.True(dnderr.IsDataIntegrity(err))
	}()
	target.Put("Mystery", chosen())
	s.Fail("expected a panic")
}

func TestSelectorSuite(t *testing.T) {
	suite.Run(t, new(SelectorSuite))
}
