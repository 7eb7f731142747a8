// Package store persists the last generated plan under a single fixed key.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"fitness-planner/internal/plan"
)

// Key identifies the persisted plan in every backend.
const Key = "fitnessPlan"

var ErrNoPlan = errors.New("no saved plan")

// Store holds at most one plan. Set overwrites, Clear removes, Get returns
// ErrNoPlan when nothing is saved.
type Store interface {
	Get(ctx context.Context) (*plan.FitnessPlan, error)
	Set(ctx context.Context, p *plan.FitnessPlan) error
	Clear(ctx context.Context) error
}

func encode(p *plan.FitnessPlan) ([]byte, error) {
	if p == nil {
		return nil, errors.New("nil plan")
	}
	return json.Marshal(p)
}

// decode runs stored bytes back through the strict parser so a corrupted
// value is never handed out as a plan.
func decode(data []byte) (*plan.FitnessPlan, error) {
	p, err := plan.Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("stored plan: %w", err)
	}
	return p, nil
}
