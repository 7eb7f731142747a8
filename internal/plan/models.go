package plan

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Attr is a profile value as the form submits it. Browsers send numeric inputs
// either as JSON numbers or as strings, so both are accepted and kept verbatim.
type Attr string

func (a *Attr) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*a = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Attr(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", data)
	}
	*a = Attr(n.String())
	return nil
}

type UserProfile struct {
	Name     Attr `json:"name"`
	Age      Attr `json:"age"`
	Gender   Attr `json:"gender"`
	Height   Attr `json:"height"`
	Weight   Attr `json:"weight"`
	Goal     Attr `json:"goal"`
	Level    Attr `json:"level"`
	Diet     Attr `json:"diet"`
	Location Attr `json:"location"`
	Notes    Attr `json:"notes"`
}

// Missing lists the wire names of required profile fields that are empty.
// Notes are optional.
func (p UserProfile) Missing() []string {
	fields := []struct {
		name  string
		value Attr
	}{
		{"name", p.Name},
		{"age", p.Age},
		{"gender", p.Gender},
		{"height", p.Height},
		{"weight", p.Weight},
		{"goal", p.Goal},
		{"level", p.Level},
		{"diet", p.Diet},
		{"location", p.Location},
	}
	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(string(f.value)) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

type Exercise struct {
	Name        string `json:"name"`
	Sets        int    `json:"sets"`
	Reps        string `json:"reps"`
	Description string `json:"desc"`
}

type WorkoutDay struct {
	Day       string     `json:"day"`
	Exercises []Exercise `json:"exercises"`
}

type DietPlan struct {
	Breakfast []string `json:"breakfast"`
	Lunch     []string `json:"lunch"`
	Dinner    []string `json:"dinner"`
	Snacks    []string `json:"snacks"`
}

// Meal pairs a meal name with its food items.
type Meal struct {
	Name  string
	Items []string
}

// Meals returns the diet plan in breakfast, lunch, dinner, snacks order.
func (d DietPlan) Meals() []Meal {
	return []Meal{
		{Name: "breakfast", Items: d.Breakfast},
		{Name: "lunch", Items: d.Lunch},
		{Name: "dinner", Items: d.Dinner},
		{Name: "snacks", Items: d.Snacks},
	}
}

type FitnessPlan struct {
	WorkoutPlan []WorkoutDay `json:"workout_plan"`
	DietPlan    DietPlan     `json:"diet_plan"`
	Tips        []string     `json:"tips"`
	Motivation  string       `json:"motivation"`
}
