package plan

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ReasonMalformed is the user-facing reason for a response that does not
// decode into a FitnessPlan.
const ReasonMalformed = "invalid structured response"

// MalformedError reports a payload that failed strict decoding. Raw holds the
// candidate text for diagnostics and must not be shown to end users in full.
type MalformedError struct {
	Err error
	Raw string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("%s: %v", ReasonMalformed, e.Err)
}

func (e *MalformedError) Unwrap() error { return e.Err }

// IsMalformed reports whether err carries a *MalformedError.
func IsMalformed(err error) bool {
	var m *MalformedError
	return errors.As(err, &m)
}

// The wire shapes use pointers so that absent keys can be told apart from
// zero values.
type wireExercise struct {
	Name *string `json:"name"`
	Sets *int    `json:"sets"`
	Reps *string `json:"reps"`
	Desc *string `json:"desc"`
}

type wireDay struct {
	Day       *string        `json:"day"`
	Exercises []wireExercise `json:"exercises"`
}

type wireDiet struct {
	Breakfast []string `json:"breakfast"`
	Lunch     []string `json:"lunch"`
	Dinner    []string `json:"dinner"`
	Snacks    []string `json:"snacks"`
}

type wirePlan struct {
	WorkoutPlan []wireDay `json:"workout_plan"`
	DietPlan    *wireDiet `json:"diet_plan"`
	Tips        []string  `json:"tips"`
	Motivation  *string   `json:"motivation"`
}

// Parse strictly decodes candidate into a FitnessPlan. Unknown keys, trailing
// data and missing or empty required fields are all rejected; nothing is
// defaulted.
func Parse(candidate string) (*FitnessPlan, error) {
	p, err := decode(candidate)
	if err != nil {
		return nil, &MalformedError{Err: err, Raw: candidate}
	}
	return p, nil
}

func decode(candidate string) (*FitnessPlan, error) {
	dec := json.NewDecoder(strings.NewReader(candidate))
	dec.DisallowUnknownFields()

	var w wirePlan
	if err := dec.Decode(&w); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after plan object")
	}

	if len(w.WorkoutPlan) == 0 {
		return nil, errors.New("workout_plan is missing or empty")
	}
	out := &FitnessPlan{WorkoutPlan: make([]WorkoutDay, 0, len(w.WorkoutPlan))}
	for i, d := range w.WorkoutPlan {
		day, err := d.convert()
		if err != nil {
			return nil, fmt.Errorf("workout_plan[%d]: %w", i, err)
		}
		out.WorkoutPlan = append(out.WorkoutPlan, day)
	}

	if w.DietPlan == nil {
		return nil, errors.New("diet_plan is missing")
	}
	diet, err := w.DietPlan.convert()
	if err != nil {
		return nil, fmt.Errorf("diet_plan: %w", err)
	}
	out.DietPlan = diet

	if w.Tips == nil {
		return nil, errors.New("tips is missing")
	}
	if err := nonEmptyItems("tips", w.Tips); err != nil {
		return nil, err
	}
	out.Tips = w.Tips

	if w.Motivation == nil || strings.TrimSpace(*w.Motivation) == "" {
		return nil, errors.New("motivation is missing or empty")
	}
	out.Motivation = *w.Motivation
	return out, nil
}

func (d wireDay) convert() (WorkoutDay, error) {
	if d.Day == nil || strings.TrimSpace(*d.Day) == "" {
		return WorkoutDay{}, errors.New("day is missing or empty")
	}
	if len(d.Exercises) == 0 {
		return WorkoutDay{}, errors.New("exercises is missing or empty")
	}
	day := WorkoutDay{Day: *d.Day, Exercises: make([]Exercise, 0, len(d.Exercises))}
	for i, e := range d.Exercises {
		ex, err := e.convert()
		if err != nil {
			return WorkoutDay{}, fmt.Errorf("exercises[%d]: %w", i, err)
		}
		day.Exercises = append(day.Exercises, ex)
	}
	return day, nil
}

func (e wireExercise) convert() (Exercise, error) {
	switch {
	case e.Name == nil || strings.TrimSpace(*e.Name) == "":
		return Exercise{}, errors.New("name is missing or empty")
	case e.Sets == nil:
		return Exercise{}, errors.New("sets is missing")
	case *e.Sets <= 0:
		return Exercise{}, fmt.Errorf("sets must be positive, got %d", *e.Sets)
	case e.Reps == nil || strings.TrimSpace(*e.Reps) == "":
		return Exercise{}, errors.New("reps is missing or empty")
	case e.Desc == nil:
		return Exercise{}, errors.New("desc is missing")
	}
	return Exercise{Name: *e.Name, Sets: *e.Sets, Reps: *e.Reps, Description: *e.Desc}, nil
}

func (d wireDiet) convert() (DietPlan, error) {
	meals := []struct {
		name  string
		items []string
	}{
		{"breakfast", d.Breakfast},
		{"lunch", d.Lunch},
		{"dinner", d.Dinner},
		{"snacks", d.Snacks},
	}
	for _, m := range meals {
		if m.items == nil {
			return DietPlan{}, fmt.Errorf("%s is missing", m.name)
		}
		if err := nonEmptyItems(m.name, m.items); err != nil {
			return DietPlan{}, err
		}
	}
	return DietPlan{Breakfast: d.Breakfast, Lunch: d.Lunch, Dinner: d.Dinner, Snacks: d.Snacks}, nil
}

func nonEmptyItems(field string, items []string) error {
	for i, it := range items {
		if strings.TrimSpace(it) == "" {
			return fmt.Errorf("%s[%d] is empty", field, i)
		}
	}
	return nil
}
