package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"fitness-planner/internal/generator"
	"fitness-planner/internal/imagegen"
	"fitness-planner/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the plan, image and export HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	planner, err := newLocalPlanner(ctx)
	if err != nil {
		return err
	}

	font, err := loadPDFFont()
	if err != nil {
		return err
	}

	s := server.New(server.Options{
		Planner:        planner,
		Images:         imagegen.NewRequestor(cfg.ImageBaseURL),
		AllowedOrigins: cfg.AllowedOrigins,
		Logger:         logger,
		PDFFont:        font,
	})
	return s.Run(ctx, ":"+cfg.Port)
}

// newLocalPlanner wires the Gemini-backed requestor. The API key never leaves
// this process.
func newLocalPlanner(ctx context.Context) (*generator.Requestor, error) {
	if err := cfg.RequireProviderKey(); err != nil {
		return nil, err
	}
	model, err := generator.NewGeminiModel(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, logger)
	if err != nil {
		return nil, err
	}
	return generator.NewRequestor(model, logger), nil
}
