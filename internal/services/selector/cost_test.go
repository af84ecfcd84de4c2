package selector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/chargen/internal/catalog"
	"github.com/KirkDiggler/chargen/internal/domain/sheet"
)

func TestDiscountCost(t *testing.T) {
	tests := []struct {
		name       string
		base       int
		n          int
		additional int
		chosen     bool
		want       int
	}{
		{name: "one discount", base: 10, n: 1, chosen: true, want: 10},
		{name: "two discounts", base: 10, n: 2, chosen: true, want: 15},
		{name: "three discounts truncated", base: 10, n: 3, chosen: true, want: 17},
		{name: "four discounts truncated", base: 10, n: 4, chosen: true, want: 18},
		{name: "fixed without additional", base: 10, n: 2, chosen: false, want: 0},
		{name: "second discount on fixed", base: 10, n: 2, additional: 1, chosen: false, want: 5},
		{name: "third discount on fixed", base: 10, n: 3, additional: 1, chosen: false, want: 2},
		{name: "two on top of one", base: 80, n: 3, additional: 2, chosen: false, want: 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, int(discountCost(tt.base, tt.n, tt.additional, tt.chosen)))
		})
	}
}

func TestDiscountCost_MonotonicInCount(t *testing.T) {
	for _, base := range []int{1, 10, 80, 300} {
		last := 0
		for n := 1; n <= 12; n++ {
			cost := int(discountCost(base, n, 0, true))
			assert.GreaterOrEqual(t, cost, last, "base %d, n %d", base, n)
			last = cost
		}
	}
}

func TestRoundHalfUp(t *testing.T) {
	assert.Equal(t, 3.0, roundHalfUp(2.5))
	assert.Equal(t, 2.0, roundHalfUp(2.49))
	assert.Equal(t, -2.0, roundHalfUp(-2.5))
	assert.Equal(t, 0.0, roundHalfUp(0))
}

func TestItemCost_Standard(t *testing.T) {
	s := newTestSelector(t, sheet.CategoryAdvantages, 0)
	tough := mustLookup(t, s, "Tough")

	tests := []struct {
		name   string
		record *sheet.Record
		want   int
	}{
		{
			name:   "chosen pays the full price",
			record: &sheet.Record{Level: 3, Temporary: sheet.Ephemeral{Chosen: true}},
			want:   18,
		},
		{
			name:   "fixed without additional levels is free",
			record: &sheet.Record{Level: 3},
			want:   0,
		},
		{
			name:   "fixed pays for the additional levels",
			record: &sheet.Record{Level: 3, Temporary: sheet.Ephemeral{AdditionalLevels: 1}},
			want:   6,
		},
		{
			name:   "additional equal to value is the full price",
			record: &sheet.Record{Level: 3, Temporary: sheet.Ephemeral{AdditionalLevels: 3}},
			want:   18,
		},
		{
			name:   "zero value costs nothing",
			record: &sheet.Record{Level: 0, Temporary: sheet.Ephemeral{AdditionalLevels: 2}},
			want:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := newItem("Tough", tough, tt.record, sheet.CategoryAdvantages)
			assert.Equal(t, tt.want, int(s.itemCost(it)))
		})
	}
}

func TestItemCost_FixedWithoutLevels(t *testing.T) {
	s := newTestSelector(t, sheet.CategoryDisadvantages, 0)
	voice := mustLookup(t, s, "Unpleasant Voice")

	it := newItem("Unpleasant Voice", voice, &sheet.Record{}, sheet.CategoryDisadvantages)
	assert.Equal(t, 0, int(s.itemCost(it)))

	it = newItem("Unpleasant Voice", voice, &sheet.Record{Temporary: sheet.Ephemeral{AdditionalLevels: 1}}, sheet.CategoryDisadvantages)
	assert.Equal(t, 5, int(s.itemCost(it)))
}

func TestCost_BalanceAdjustment(t *testing.T) {
	tests := []struct {
		name      string
		chosen    []string
		footing   *sheet.Record
		wantTotal int
	}{
		{
			name:      "no stable footing",
			chosen:    []string{AdvantageBalance},
			wantTotal: 10,
		},
		{
			name:      "stable footing from the background",
			chosen:    []string{AdvantageBalance},
			footing:   &sheet.Record{},
			wantTotal: 6,
		},
		{
			name:      "stable footing chosen this session",
			chosen:    []string{AdvantageBalance},
			footing:   &sheet.Record{Temporary: sheet.Ephemeral{Chosen: true}},
			wantTotal: 10,
		},
		{
			name:      "stable footing granted by another feature",
			chosen:    []string{AdvantageBalance},
			footing:   &sheet.Record{GrantedBy: "Acrobat"},
			wantTotal: 10,
		},
		{
			name:      "outstanding balance alone",
			chosen:    []string{AdvantageOutstandingBalance},
			footing:   &sheet.Record{},
			wantTotal: 16,
		},
		{
			name:      "outstanding balance removes the balance discount",
			chosen:    []string{AdvantageBalance, AdvantageOutstandingBalance},
			footing:   &sheet.Record{},
			wantTotal: 26,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSelector(t, sheet.CategoryAdvantages, 0)
			if tt.footing != nil {
				s.hero.Category(sheet.CategorySpecialAbilities).Put(AbilityStableFooting, tt.footing)
			}
			for _, name := range tt.chosen {
				s.hero.Category(sheet.CategoryAdvantages).Put(name, &sheet.Record{Temporary: sheet.Ephemeral{Chosen: true}})
			}

			require.NoError(t, s.Activate(true))
			cost, negative := s.Cost()
			assert.Equal(t, tt.wantTotal, cost)
			assert.Zero(t, negative)
		})
	}
}

func TestCost_NegativeTraitShare(t *testing.T) {
	s := newTestSelector(t, sheet.CategoryDisadvantages, 0)
	dis := s.hero.Category(sheet.CategoryDisadvantages)
	dis.Put("Greed", &sheet.Record{Level: 6, Temporary: sheet.Ephemeral{Chosen: true}})
	dis.Put("Unpleasant Voice", &sheet.Record{Temporary: sheet.Ephemeral{Chosen: true}})

	require.NoError(t, s.Activate(true))
	cost, negative := s.Cost()
	assert.Equal(t, 11, cost)
	assert.Equal(t, 6, negative)
}

func TestCharge_MatchesCostSum(t *testing.T) {
	s := newTestSelector(t, sheet.CategoryDisadvantages, 0)
	dis := s.hero.Category(sheet.CategoryDisadvantages)
	dis.Put("Greed", &sheet.Record{Level: 6, Temporary: sheet.Ephemeral{Chosen: true}})
	dis.Put("Unpleasant Voice", &sheet.Record{Temporary: sheet.Ephemeral{Chosen: true}})
	require.NoError(t, s.Activate(true))

	total := 0
	for _, it := range s.Items() {
		total += s.Charge(it)
	}
	cost, _ := s.Cost()
	assert.Equal(t, cost, total)
}

func TestNewItem_Flags(t *testing.T) {
	def := &catalog.Definition{Name: "Weapon Specialization", Variants: []string{"Sword", "Axe"}}

	it := newItem("Weapon Specialization", def, &sheet.Record{Variant: "Sword", Temporary: sheet.Ephemeral{Chosen: true}}, sheet.CategorySpecialAbilities)
	assert.False(t, it.Fixed)
	assert.True(t, it.VariantEditable)
	assert.False(t, it.TextEditable)
	assert.True(t, it.SkillCategory)
	assert.False(t, it.DiscountCategory)

	it = newItem("Weapon Specialization", def, &sheet.Record{Variant: "Axe", Temporary: sheet.Ephemeral{SetVariant: true}}, sheet.CategoryCheaperAbilities)
	assert.True(t, it.Fixed)
	assert.False(t, it.VariantEditable)
	assert.False(t, it.SkillCategory)
	assert.True(t, it.DiscountCategory)

	it = newItem("Phobia", &catalog.Definition{Name: "Phobia", FreeText: true}, &sheet.Record{Text: "spiders"}, sheet.CategoryDisadvantages)
	assert.True(t, it.TextEditable)
	assert.False(t, it.VariantEditable)
}
