package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"fitness-planner/internal/plan"
	"fitness-planner/internal/view"
)

var (
	profile       plan.UserProfile
	generateLocal bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new plan from your profile and save it",
	Example: `  fitplan generate --name Alex --age 30 --gender Male --height 180 --weight 80 \
    --goal "Muscle Gain" --level Beginner --diet Non-Veg --location Gym`,
	RunE: runGenerate,
}

func init() {
	f := generateCmd.Flags()
	attr := func(p *plan.Attr, name, usage string) {
		f.StringVar((*string)(p), name, "", usage)
	}
	attr(&profile.Name, "name", "your name")
	attr(&profile.Age, "age", "age in years")
	attr(&profile.Gender, "gender", "Male, Female or Other")
	attr(&profile.Height, "height", "height in cm")
	attr(&profile.Weight, "weight", "weight in kg")
	attr(&profile.Goal, "goal", "Weight Loss, Muscle Gain, General Fitness or Strength")
	attr(&profile.Level, "level", "Beginner, Intermediate or Advanced")
	attr(&profile.Diet, "diet", "Veg, Non-Veg or Vegan")
	attr(&profile.Location, "location", "Home, Gym or Outdoor")
	attr(&profile.Notes, "notes", "optional notes for the coach")
	f.BoolVar(&generateLocal, "local", false, "call the model directly instead of the API (needs GEMINI_API_KEY)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if missing := profile.Missing(); len(missing) > 0 {
		return fmt.Errorf("missing profile fields: %v", missing)
	}

	generate := apiClient().GeneratePlan
	if generateLocal {
		requestor, err := newLocalPlanner(ctx)
		if err != nil {
			return err
		}
		generate = requestor.Generate
	}

	st, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	state := view.State{}.Submitted()
	fmt.Fprintln(cmd.ErrOrStderr(), view.Render(state))

	p, err := generate(ctx, profile)
	if err != nil {
		state = state.Failed(userMessage(err))
		fmt.Fprintln(cmd.OutOrStdout(), view.Render(state))
		return errors.New(state.Err)
	}

	if err := st.Set(ctx, p); err != nil {
		logger.Error("failed to save plan", zap.Error(err))
		state = state.Failed("the plan was generated but could not be saved")
		fmt.Fprintln(cmd.OutOrStdout(), view.Render(state))
		return errors.New(state.Err)
	}
	state = state.Generated(p)
	fmt.Fprintln(cmd.OutOrStdout(), view.Render(state))
	return nil
}
