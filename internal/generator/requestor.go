package generator

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"fitness-planner/internal/plan"
)

// ErrProvider wraps every failure of the generative-language provider itself,
// as opposed to a response that arrived but could not be parsed.
var ErrProvider = errors.New("plan provider failed")

// TextModel is the generative-language provider.
type TextModel interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Requestor turns a user profile into a FitnessPlan.
type Requestor struct {
	model  TextModel
	logger *zap.Logger
}

func NewRequestor(model TextModel, logger *zap.Logger) *Requestor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Requestor{model: model, logger: logger}
}

// Generate returns the parsed plan, an error wrapping ErrProvider, or a
// *plan.MalformedError carrying the sanitized text.
func (r *Requestor) Generate(ctx context.Context, profile plan.UserProfile) (*plan.FitnessPlan, error) {
	prompt, err := BuildPrompt(profile)
	if err != nil {
		return nil, fmt.Errorf("render prompt: %w", err)
	}

	text, err := r.model.GenerateText(ctx, prompt)
	if err != nil {
		r.logger.Error("provider call failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrProvider, err)
	}
	r.logger.Debug("raw provider text", zap.String("text", text))

	p, err := plan.Parse(plan.Sanitize(text))
	if err != nil {
		var m *plan.MalformedError
		if errors.As(err, &m) {
			r.logger.Warn("provider returned malformed plan", zap.Error(m.Err), zap.String("raw", m.Raw))
		}
		return nil, err
	}
	r.logger.Info("plan generated",
		zap.Int("workout_days", len(p.WorkoutPlan)),
		zap.Int("tips", len(p.Tips)))
	return p, nil
}
