// Package wizard walks a draft through the creation steps. Each step is told
// whether it is entered or left in forward direction, which is what keeps the
// point budgets consistent across back and forth navigation.
package wizard

//go:generate mockgen -destination=mock/mock.go -package=mockwizard -source=wizard.go

import (
	"log"

	"github.com/KirkDiggler/chargen/internal/domain/draft"
	dnderr "github.com/KirkDiggler/chargen/internal/errors"
)

// Step is one page of the wizard
type Step interface {
	Name() string
	Activate(forward bool) error
	Deactivate(forward bool) error
}

// Wizard drives the steps in order. Only one step is active at a time.
type Wizard struct {
	steps   []Step
	current int
	active  bool
	flow    *draft.FlowState
}

// New creates a wizard over steps. flow may be nil; a fresh one is created.
func New(flow *draft.FlowState, steps ...Step) *Wizard {
	if len(steps) == 0 {
		panic("wizard needs at least one step")
	}

	names := make([]string, len(steps))
	for i, s := range steps {
		names[i] = s.Name()
	}
	if flow == nil {
		flow = draft.NewFlowState(names)
	}
	flow.AllSteps = names

	return &Wizard{
		steps: steps,
		flow:  flow,
	}
}

// Flow returns the navigation state
func (w *Wizard) Flow() *draft.FlowState {
	return w.flow
}

// Current returns the current step
func (w *Wizard) Current() Step {
	return w.steps[w.current]
}

// Active reports whether a step is currently active
func (w *Wizard) Active() bool {
	return w.active
}

// Start enters the first step for the first time
func (w *Wizard) Start() error {
	if w.active {
		return dnderr.FailedPrecondition("wizard already started")
	}
	if err := w.steps[0].Activate(true); err != nil {
		return err
	}
	w.current = 0
	w.active = true
	w.flow.CurrentStepID = w.steps[0].Name()
	return nil
}

// Resume re-enters the step recorded in the flow state. The budgets restored
// with the draft already carry that step's cost, so it is entered as a replay.
func (w *Wizard) Resume() error {
	if w.active {
		return dnderr.FailedPrecondition("wizard already started")
	}
	index := w.flow.CurrentStepIndex()
	if index < 0 {
		return dnderr.InvalidArgumentf("unknown step '%s'", w.flow.CurrentStepID).
			WithMeta("step", w.flow.CurrentStepID)
	}
	if err := w.steps[index].Activate(false); err != nil {
		return err
	}
	w.current = index
	w.active = true
	return nil
}

// Next leaves the current step forward and enters the following one
func (w *Wizard) Next() error {
	if !w.active {
		return dnderr.FailedPrecondition("wizard not started")
	}
	if w.current == len(w.steps)-1 {
		return dnderr.FailedPrecondition("already at the last step")
	}

	from, to := w.steps[w.current], w.steps[w.current+1]
	if err := from.Deactivate(true); err != nil {
		return err
	}
	if err := to.Activate(true); err != nil {
		// the cost of the step we left is still charged
		if reErr := from.Activate(false); reErr != nil {
			log.Printf("Failed to re-enter step %s: %v", from.Name(), reErr)
		}
		return err
	}

	w.current++
	w.flow.MoveTo(to.Name())
	log.Printf("Wizard moved forward to %s", to.Name())
	return nil
}

// Back leaves the current step backwards, which refunds its cost, and
// re-enters the previous step as a replay
func (w *Wizard) Back() error {
	if !w.active {
		return dnderr.FailedPrecondition("wizard not started")
	}
	if w.current == 0 {
		return dnderr.FailedPrecondition("already at the first step")
	}

	from, to := w.steps[w.current], w.steps[w.current-1]
	if err := from.Deactivate(false); err != nil {
		return err
	}
	if err := to.Activate(false); err != nil {
		if reErr := from.Activate(true); reErr != nil {
			log.Printf("Failed to re-enter step %s: %v", from.Name(), reErr)
		}
		return err
	}

	w.current--
	w.flow.MoveTo(to.Name())
	log.Printf("Wizard moved back to %s", to.Name())
	return nil
}

// Suspend leaves the current step without refunding it, e.g. before the
// session is closed. Resume picks up from the same step.
func (w *Wizard) Suspend() error {
	if !w.active {
		return nil
	}
	if err := w.steps[w.current].Deactivate(true); err != nil {
		return err
	}
	w.active = false
	return nil
}

// Finish leaves the last step forward and marks the flow complete
func (w *Wizard) Finish() error {
	if !w.active {
		return dnderr.FailedPrecondition("wizard not started")
	}
	if w.current != len(w.steps)-1 {
		return dnderr.FailedPreconditionf("step %s is not the last step", w.steps[w.current].Name())
	}
	if err := w.steps[w.current].Deactivate(true); err != nil {
		return err
	}
	w.active = false
	w.flow.Complete()
	return nil
}
