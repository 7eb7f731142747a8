package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"fitness-planner/internal/store"
	"fitness-planner/internal/view"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the saved plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		p, err := st.Get(cmd.Context())
		if err != nil && !errors.Is(err, store.ErrNoPlan) {
			return errors.New(userMessage(err))
		}
		fmt.Fprintln(cmd.OutOrStdout(), view.Render(view.Restored(p)))
		return nil
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the saved plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		if err := st.Clear(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), view.Render(view.State{}.Cleared()))
		return nil
	},
}
