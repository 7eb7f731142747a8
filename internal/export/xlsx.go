package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"fitness-planner/internal/plan"
)

const (
	SheetWorkout = "Workout"
	SheetDiet    = "Diet"
	SheetNotes   = "Notes"
)

// WriteXLSX writes the plan as a workbook with one sheet each for workouts,
// diet, and tips with motivation.
func WriteXLSX(w io.Writer, p *plan.FitnessPlan, name string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetWorkout); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	for _, sheet := range []string{SheetDiet, SheetNotes} {
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("create sheet %s: %w", sheet, err)
		}
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}

	rows := map[string][][]any{
		SheetWorkout: {{"Day", "Exercise", "Sets", "Reps", "Description"}},
		SheetDiet:    {{"Meal", "Items"}},
		SheetNotes:   {{"Fitness Plan for " + name}},
	}
	for _, day := range p.WorkoutPlan {
		for _, ex := range day.Exercises {
			rows[SheetWorkout] = append(rows[SheetWorkout], []any{day.Day, ex.Name, ex.Sets, ex.Reps, ex.Description})
		}
	}
	for _, meal := range p.DietPlan.Meals() {
		rows[SheetDiet] = append(rows[SheetDiet], []any{strings.ToUpper(meal.Name), strings.Join(meal.Items, ", ")})
	}
	rows[SheetNotes] = append(rows[SheetNotes], []any{"Tips"})
	for _, tip := range p.Tips {
		rows[SheetNotes] = append(rows[SheetNotes], []any{tip})
	}
	rows[SheetNotes] = append(rows[SheetNotes], []any{"Motivation"}, []any{p.Motivation})

	for sheet, sheetRows := range rows {
		for i, row := range sheetRows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(sheet, cell, &row); err != nil {
				return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
			}
		}
		if err := f.SetRowStyle(sheet, 1, 1, header); err != nil {
			return fmt.Errorf("style %s header: %w", sheet, err)
		}
	}

	return f.Write(w)
}
