package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"fitness-planner/internal/imagegen"
	"fitness-planner/internal/view"
)

var imageOpts struct {
	exercise string
	food     string
}

var imageCmd = &cobra.Command{
	Use:   "image [prompt]",
	Short: "Get an illustrative image URL for an exercise, a food item or a free prompt",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runImage,
}

func init() {
	imageCmd.Flags().StringVar(&imageOpts.exercise, "exercise", "", "exercise name from your plan")
	imageCmd.Flags().StringVar(&imageOpts.food, "food", "", "food item from your plan")
	imageCmd.MarkFlagsMutuallyExclusive("exercise", "food")
}

func runImage(cmd *cobra.Command, args []string) error {
	var prompt string
	switch {
	case imageOpts.exercise != "":
		prompt = imagegen.ExercisePrompt(imageOpts.exercise)
	case imageOpts.food != "":
		prompt = imagegen.FoodPrompt(imageOpts.food)
	case len(args) == 1:
		prompt = args[0]
	}

	// Rejected here so that no request is made.
	if strings.TrimSpace(prompt) == "" {
		return errors.New(userMessage(imagegen.ErrEmptyPrompt))
	}

	state := view.State{}.ImageRequested()
	url, err := apiClient().ImageURL(cmd.Context(), prompt)
	if err != nil {
		return errors.New(state.ImageFailed(userMessage(err)).ImageErr)
	}
	fmt.Fprintln(cmd.OutOrStdout(), state.ImageReady(url).ImageURL)
	return nil
}
