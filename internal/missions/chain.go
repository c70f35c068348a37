package missions

import (
	"context"
	"errors"
	"log"

	"github.com/toptiermen/platform/internal/model"
)

// Chain tries an ordered list of stores and answers from the first one
// that responds.  A store that fails with an infrastructure error is
// skipped and the next source is consulted; domain answers (including
// ErrNotFound) are returned as-is and stop the chain.  This replaces
// the per-endpoint nested try/fallback blocks with one declared
// precedence rule: earlier sources win.
type Chain struct {
	sources []Store
}

// NewChain builds a chain from highest to lowest precedence.
func NewChain(sources ...Store) *Chain {
	return &Chain{sources: sources}
}

var _ Store = (*Chain)(nil)

func (c *Chain) List(ctx context.Context, userID uint64) ([]model.Mission, error) {
	var lastErr error
	for i, s := range c.sources {
		out, err := s.List(ctx, userID)
		if err == nil {
			return out, nil
		}
		lastErr = err
		log.Printf("missions: source %d list failed, falling through: %v", i, err)
	}
	return nil, lastErr
}

func (c *Chain) Create(ctx context.Context, m model.Mission) (model.Mission, error) {
	var lastErr error
	for i, s := range c.sources {
		out, err := s.Create(ctx, m)
		if err == nil {
			return out, nil
		}
		lastErr = err
		log.Printf("missions: source %d create failed, falling through: %v", i, err)
	}
	return model.Mission{}, lastErr
}

func (c *Chain) Toggle(ctx context.Context, userID, missionID uint64) (ToggleResult, error) {
	var lastErr error
	for i, s := range c.sources {
		out, err := s.Toggle(ctx, userID, missionID)
		if err == nil {
			return out, nil
		}
		if errors.Is(err, ErrNotFound) {
			// The source answered; the mission genuinely is not there.
			return ToggleResult{}, err
		}
		lastErr = err
		log.Printf("missions: source %d toggle failed, falling through: %v", i, err)
	}
	return ToggleResult{}, lastErr
}

func (c *Chain) Delete(ctx context.Context, userID, missionID uint64) error {
	var lastErr error
	for i, s := range c.sources {
		err := s.Delete(ctx, userID, missionID)
		if err == nil {
			return nil
		}
		if errors.Is(err, ErrNotFound) {
			return err
		}
		lastErr = err
		log.Printf("missions: source %d delete failed, falling through: %v", i, err)
	}
	return lastErr
}
