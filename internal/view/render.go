package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"fitness-planner/internal/plan"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("166"))
	dayStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("130"))
	nameStyle    = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("160"))
	sectionStyle = lipgloss.NewStyle().MarginTop(1)
)

// Render draws the state. Raw diagnostics never reach this layer; Err is the
// short user-facing reason only.
func Render(s State) string {
	var parts []string
	switch s.Status {
	case Idle:
		parts = append(parts, dimStyle.Render("No plan yet. Run `fitplan generate` to create one."))
	case LoadingPlan:
		parts = append(parts, dimStyle.Render("Generating your plan..."))
	case Failed:
		parts = append(parts, errorStyle.Render("Error: "+s.Err))
	case Ready:
		parts = append(parts, RenderPlan(s.Plan))
	}

	switch {
	case s.ImageLoading:
		parts = append(parts, dimStyle.Render("Generating image..."))
	case s.ImageURL != "":
		parts = append(parts, sectionStyle.Render(titleStyle.Render("Image")+"\n"+s.ImageURL))
	case s.ImageErr != "":
		parts = append(parts, errorStyle.Render("Image error: "+s.ImageErr))
	}
	return strings.Join(parts, "\n")
}

func RenderPlan(p *plan.FitnessPlan) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Workout Plan"))
	b.WriteString("\n")
	for _, day := range p.WorkoutPlan {
		b.WriteString(dayStyle.Render(day.Day))
		b.WriteString("\n")
		for _, ex := range day.Exercises {
			fmt.Fprintf(&b, "  %s - %d sets x %s\n", nameStyle.Render(ex.Name), ex.Sets, ex.Reps)
			if ex.Description != "" {
				fmt.Fprintf(&b, "    %s\n", dimStyle.Render(ex.Description))
			}
		}
	}

	diet := titleStyle.Render("Diet Plan") + "\n"
	for _, meal := range p.DietPlan.Meals() {
		diet += fmt.Sprintf("  %s: %s\n", nameStyle.Render(strings.ToUpper(meal.Name)), strings.Join(meal.Items, ", "))
	}
	b.WriteString(sectionStyle.Render(diet))
	b.WriteString("\n")

	tips := titleStyle.Render("Tips") + "\n"
	for _, t := range p.Tips {
		tips += "  - " + t + "\n"
	}
	b.WriteString(sectionStyle.Render(tips))
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render(titleStyle.Render("Motivation") + "\n  " + p.Motivation))
	return b.String()
}
