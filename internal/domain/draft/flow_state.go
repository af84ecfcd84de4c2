package draft

import (
	"slices"
	"time"
)

// FlowState tracks where a draft is in the creation wizard
type FlowState struct {
	CurrentStepID  string    `json:"current_step_id"`
	CompletedSteps []string  `json:"completed_steps"`
	AllSteps       []string  `json:"all_steps"`
	LastUpdated    time.Time `json:"last_updated"`
}

// NewFlowState starts a flow at the first step
func NewFlowState(steps []string) *FlowState {
	fs := &FlowState{
		AllSteps:    slices.Clone(steps),
		LastUpdated: time.Now().UTC(),
	}
	if len(steps) > 0 {
		fs.CurrentStepID = steps[0]
	}
	return fs
}

// IsStepCompleted checks if a step has been completed
func (fs *FlowState) IsStepCompleted(stepID string) bool {
	if fs == nil {
		return false
	}
	return slices.Contains(fs.CompletedSteps, stepID)
}

// StepIndex returns the index of a step in AllSteps, or -1 if not found
func (fs *FlowState) StepIndex(stepID string) int {
	if fs == nil {
		return -1
	}
	return slices.Index(fs.AllSteps, stepID)
}

// CurrentStepIndex returns the index of the current step
func (fs *FlowState) CurrentStepIndex() int {
	if fs == nil {
		return -1
	}
	return fs.StepIndex(fs.CurrentStepID)
}

// CanNavigateBack returns true if there is a previous step
func (fs *FlowState) CanNavigateBack() bool {
	return fs.CurrentStepIndex() > 0
}

// CanNavigateForward returns true if there is a next step
func (fs *FlowState) CanNavigateForward() bool {
	current := fs.CurrentStepIndex()
	return current >= 0 && current < len(fs.AllSteps)-1
}

// IsLastStep reports whether the current step is the final one
func (fs *FlowState) IsLastStep() bool {
	current := fs.CurrentStepIndex()
	return current >= 0 && current == len(fs.AllSteps)-1
}

// MoveTo records stepID as current. Moving forward completes the step being
// left; moving back reopens the step being entered.
func (fs *FlowState) MoveTo(stepID string) {
	from := fs.CurrentStepIndex()
	to := fs.StepIndex(stepID)

	if to > from && from >= 0 && !fs.IsStepCompleted(fs.CurrentStepID) {
		fs.CompletedSteps = append(fs.CompletedSteps, fs.CurrentStepID)
	}
	if to < from {
		fs.CompletedSteps = slices.DeleteFunc(fs.CompletedSteps, func(s string) bool {
			return s == stepID
		})
	}

	fs.CurrentStepID = stepID
	fs.LastUpdated = time.Now().UTC()
}

// Complete marks the current step done; used when the last step is finished
func (fs *FlowState) Complete() {
	if fs.CurrentStepID != "" && !fs.IsStepCompleted(fs.CurrentStepID) {
		fs.CompletedSteps = append(fs.CompletedSteps, fs.CurrentStepID)
	}
	fs.LastUpdated = time.Now().UTC()
}
