// Package view holds the client view state and renders it for the terminal.
package view

import "fitness-planner/internal/plan"

type Status int

const (
	Idle Status = iota
	LoadingPlan
	Ready
	Failed
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case LoadingPlan:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// State is everything the client shows. Transitions return a new State and
// never mutate the receiver. Plan is non-nil exactly when Status is Ready.
type State struct {
	Status Status
	Plan   *plan.FitnessPlan
	Err    string

	ImageLoading bool
	ImageURL     string
	ImageErr     string
}

// Restored is the initial state, showing a previously saved plan if any.
func Restored(saved *plan.FitnessPlan) State {
	if saved == nil {
		return State{Status: Idle}
	}
	return State{Status: Ready, Plan: saved}
}

// Submitted hides the current plan while a new one is generated.
func (s State) Submitted() State {
	return State{Status: LoadingPlan}
}

func (s State) Generated(p *plan.FitnessPlan) State {
	if p == nil {
		return s.Failed("empty plan")
	}
	return State{Status: Ready, Plan: p}
}

func (s State) Failed(reason string) State {
	return State{Status: Failed, Err: reason}
}

func (s State) Cleared() State {
	return State{Status: Idle}
}

func (s State) ImageRequested() State {
	s.ImageLoading = true
	s.ImageURL = ""
	s.ImageErr = ""
	return s
}

func (s State) ImageReady(url string) State {
	s.ImageLoading = false
	s.ImageURL = url
	s.ImageErr = ""
	return s
}

func (s State) ImageFailed(reason string) State {
	s.ImageLoading = false
	s.ImageURL = ""
	s.ImageErr = reason
	return s
}
