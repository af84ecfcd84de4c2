package sheet

// Ephemeral is session-only bookkeeping attached to a record. It is stripped
// when a draft is finished.
type Ephemeral struct {
	// Chosen marks an instance picked during this session (as opposed to one
	// granted by race, culture or profession and therefore fixed)
	Chosen bool `json:"chosen,omitempty"`

	// AdditionalLevels counts levels bought on top of a fixed instance
	AdditionalLevels int `json:"additional_levels,omitempty"`

	// Cheaper is the discount count an ability had before it was bought outright.
	// Removing the ability restores it to the cheaper list with this count.
	Cheaper int `json:"cheaper,omitempty"`

	// SetVariant and SetText lock a variant or free text that was predetermined
	SetVariant bool `json:"set_variant,omitempty"`
	SetText    bool `json:"set_text,omitempty"`

	// ChoiceOnly marks a skill that exists only because a choice added it
	ChoiceOnly bool `json:"choice_only,omitempty"`
}

// Record is one instance of a feature in a category
type Record struct {
	Variant   string    `json:"variant,omitempty"`
	Text      string    `json:"text,omitempty"`
	Level     int       `json:"level,omitempty"`
	Discounts int       `json:"discounts,omitempty"`
	GrantedBy string    `json:"granted_by,omitempty"`
	Temporary Ephemeral `json:"temporary,omitzero"`
}

// NumDiscounts returns the discount count; an unset count means one discount
func (r *Record) NumDiscounts() int {
	if r.Discounts < 1 {
		return 1
	}
	return r.Discounts
}

// Skill is a rated skill or spell on the hero
type Skill struct {
	Rating    Rating    `json:"rating"`
	Primary   bool      `json:"primary,omitempty"`
	Temporary Ephemeral `json:"temporary,omitzero"`
}
