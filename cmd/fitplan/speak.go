package main

import (
	"bufio"
	"errors"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"fitness-planner/internal/speech"
	"fitness-planner/internal/view"
)

var speakCmd = &cobra.Command{
	Use:   "speak [workout|diet|tips]",
	Short: "Read a section of the saved plan aloud",
	Long: `Reads a section of the saved plan with the local speech engine
(SPEECH_COMMAND, espeak by default). While it plays, type p to pause,
r to resume and s to stop, followed by Enter.`,
	Args: cobra.ExactArgs(1),
	RunE: runSpeak,
}

func runSpeak(cmd *cobra.Command, args []string) error {
	section, err := view.ParseSection(args[0])
	if err != nil {
		return err
	}

	st, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	p, err := st.Get(cmd.Context())
	if err != nil {
		return errors.New(userMessage(err))
	}

	engine, err := speech.NewExecEngine(cfg.SpeechCommand)
	if err != nil {
		return err
	}
	controller := speech.NewController(engine)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	u, err := controller.Speak(ctx, view.SpeechText(p, section))
	if err != nil {
		return err
	}

	commands := make(chan string)
	go func() {
		scanner := bufio.NewScanner(cmd.InOrStdin())
		for scanner.Scan() {
			commands <- strings.TrimSpace(strings.ToLower(scanner.Text()))
		}
	}()

	out := cmd.OutOrStdout()
	for {
		select {
		case <-u.Done():
			if err := u.Err(); err != nil && ctx.Err() == nil {
				return fmt.Errorf("speech engine failed: %w", err)
			}
			return nil
		case <-ctx.Done():
			controller.Stop()
			return nil
		case c := <-commands:
			var (
				err    error
				action string
			)
			switch c {
			case "p", "pause":
				err, action = controller.Pause(), "pause"
			case "r", "resume":
				err, action = controller.Resume(), "resume"
			case "s", "stop":
				if err := controller.Stop(); err != nil && !errors.Is(err, speech.ErrNotPlaying) {
					return err
				}
				fmt.Fprintln(out, "stopped")
				return nil
			default:
				fmt.Fprintln(out, "p = pause, r = resume, s = stop")
				continue
			}
			if err != nil {
				logger.Warn("speech control failed", zap.String("command", c), zap.Error(err))
				fmt.Fprintf(out, "cannot %s: %v\n", action, err)
				continue
			}
			fmt.Fprintln(out, action+"d")
		}
	}
}
