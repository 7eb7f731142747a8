package main

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"fitness-planner/internal/client"
	"fitness-planner/internal/config"
	"fitness-planner/internal/export"
	"fitness-planner/internal/generator"
	"fitness-planner/internal/imagegen"
	"fitness-planner/internal/plan"
	"fitness-planner/internal/store"
)

func openStore() (store.Store, func(), error) {
	switch cfg.StoreBackend {
	case config.StoreGitHub:
		s, err := store.NewGitHubStore(cfg.GitHubAPIURL, cfg.GitHubRepo, cfg.GitHubToken, logger)
		if err != nil {
			return nil, nil, err
		}
		return s, func() {}, nil
	default:
		s, err := store.OpenSQLite(cfg.StorePath)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { s.Close() }, nil
	}
}

// loadPDFFont reads PDF_FONT when set.
func loadPDFFont() ([]byte, error) {
	if cfg.PDFFont == "" {
		return nil, nil
	}
	font, err := os.ReadFile(cfg.PDFFont)
	if err != nil {
		return nil, fmt.Errorf("read PDF_FONT: %w", err)
	}
	return font, nil
}

func newExporter() (*export.Exporter, error) {
	font, err := loadPDFFont()
	if err != nil || font == nil {
		return export.NewExporter(), err
	}
	return export.NewUTF8Exporter(font)
}

func apiClient() *client.Client {
	return client.New(cfg.ServerURL, nil)
}

// userMessage maps an error to the short reason shown to the user. Raw
// provider output is logged, never printed.
func userMessage(err error) string {
	var (
		apiErr    *client.APIError
		malformed *plan.MalformedError
	)
	switch {
	case errors.As(err, &apiErr):
		if apiErr.Raw != "" {
			logger.Warn("malformed plan from api", zap.String("raw", apiErr.Raw))
		}
		return apiErr.Message
	case errors.As(err, &malformed):
		logger.Warn("malformed plan", zap.Error(malformed.Err), zap.String("raw", malformed.Raw))
		return plan.ReasonMalformed
	case errors.Is(err, generator.ErrProvider):
		return "failed to generate plan"
	case errors.Is(err, imagegen.ErrEmptyPrompt):
		return "No prompt provided"
	case errors.Is(err, store.ErrNoPlan):
		return "no saved plan; run `fitplan generate` first"
	}
	return fmt.Sprintf("something went wrong: %v", err)
}
