package generator

import (
	"strings"
	"text/template"

	"fitness-planner/internal/plan"
)

var planPrompt = template.Must(template.New("plan").Parse(`
You are an advanced AI Fitness Coach.

Generate a complete fitness plan in STRICT JSON FORMAT only.

Input:
Name: {{.Name}}
Age: {{.Age}}
Gender: {{.Gender}}
Height: {{.Height}}
Weight: {{.Weight}}
Goal: {{.Goal}}
Level: {{.Level}}
Diet: {{.Diet}}
Location: {{.Location}}
Notes: {{.Notes}}

Return JSON in this exact structure:

{
  "workout_plan": [
    {
      "day": "Day 1",
      "exercises": [
        { "name": "Exercise Name", "sets": 3, "reps": "12-15", "desc": "Short description" }
      ]
    }
  ],
  "diet_plan": {
    "breakfast": ["item1", "item2"],
    "lunch": ["item1", "item2"],
    "dinner": ["item1", "item2"],
    "snacks": ["item1"]
  },
  "tips": ["tip 1", "tip 2"],
  "motivation": "1-2 motivational lines"
}

IMPORTANT:
- DO NOT add text outside JSON.
- DO NOT include markdown.
- ONLY return valid JSON.
`))

// BuildPrompt renders the plan instruction with every profile field embedded
// verbatim.
func BuildPrompt(p plan.UserProfile) (string, error) {
	var sb strings.Builder
	if err := planPrompt.Execute(&sb, p); err != nil {
		return "", err
	}
	return sb.String(), nil
}
