package view

import (
	"fmt"
	"strings"

	"fitness-planner/internal/plan"
)

type Section string

const (
	SectionWorkout Section = "workout"
	SectionDiet    Section = "diet"
	SectionTips    Section = "tips"
)

func ParseSection(s string) (Section, error) {
	switch Section(strings.ToLower(strings.TrimSpace(s))) {
	case SectionWorkout:
		return SectionWorkout, nil
	case SectionDiet:
		return SectionDiet, nil
	case SectionTips:
		return SectionTips, nil
	}
	return "", fmt.Errorf("unknown section %q (want workout, diet or tips)", s)
}

// SpeechText turns one section of the plan into sentences for reading aloud.
func SpeechText(p *plan.FitnessPlan, section Section) string {
	var sentences []string
	switch section {
	case SectionWorkout:
		for _, day := range p.WorkoutPlan {
			sentences = append(sentences, day.Day+".")
			for _, ex := range day.Exercises {
				s := fmt.Sprintf("%s, %d sets of %s.", ex.Name, ex.Sets, ex.Reps)
				if ex.Description != "" {
					s += " " + ex.Description
				}
				sentences = append(sentences, s)
			}
		}
	case SectionDiet:
		for _, meal := range p.DietPlan.Meals() {
			if len(meal.Items) == 0 {
				continue
			}
			sentences = append(sentences, fmt.Sprintf("For %s: %s.", meal.Name, strings.Join(meal.Items, ", ")))
		}
	case SectionTips:
		sentences = append(sentences, p.Tips...)
		sentences = append(sentences, p.Motivation)
	}
	return strings.Join(sentences, " ")
}
