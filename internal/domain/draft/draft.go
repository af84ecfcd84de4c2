// Package draft holds the persisted state of a character being generated
package draft

import (
	"time"

	"github.com/KirkDiggler/chargen/internal/domain/sheet"
)

// Budget counter names
const (
	BudgetPrimary        = "GP"
	BudgetSecondary      = "Disadvantage GP"
	BudgetNegativeTraits = "Bad Trait GP"
)

// Budgets is a snapshot of the shared point budgets
type Budgets struct {
	Primary        int `json:"primary"`
	Secondary      int `json:"secondary"`
	NegativeTraits int `json:"negative_traits"`
}

// Status of a draft
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusFinished   Status = "finished"
)

// Draft is a character under construction together with the budgets and
// wizard position needed to resume it
type Draft struct {
	ID        string      `json:"id"`
	OwnerID   string      `json:"owner_id"`
	Name      string      `json:"name,omitempty"`
	Status    Status      `json:"status"`
	Hero      *sheet.Hero `json:"hero"`
	Budgets   Budgets     `json:"budgets"`
	Flow      *FlowState  `json:"flow,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// IsFinished reports whether the draft has been finalized
func (d *Draft) IsFinished() bool {
	return d.Status == StatusFinished
}
