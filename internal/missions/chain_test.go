package missions

import (
	"context"
	"errors"
	"testing"

	"github.com/toptiermen/platform/internal/model"
)

// stubStore answers with fixed values so chain precedence can be
// exercised without a database.
type stubStore struct {
	list      []model.Mission
	toggle    ToggleResult
	err       error
	toggleErr error
	calls     int
}

func (s *stubStore) List(ctx context.Context, userID uint64) ([]model.Mission, error) {
	s.calls++
	return s.list, s.err
}

func (s *stubStore) Create(ctx context.Context, m model.Mission) (model.Mission, error) {
	s.calls++
	return m, s.err
}

func (s *stubStore) Toggle(ctx context.Context, userID, missionID uint64) (ToggleResult, error) {
	s.calls++
	if s.toggleErr != nil {
		return ToggleResult{}, s.toggleErr
	}
	return s.toggle, s.err
}

func (s *stubStore) Delete(ctx context.Context, userID, missionID uint64) error {
	s.calls++
	return s.err
}

func TestChainFirstSourceWins(t *testing.T) {
	primary := &stubStore{list: []model.Mission{{ID: 1, Title: "primary"}}}
	fallback := &stubStore{list: []model.Mission{{ID: 2, Title: "fallback"}}}
	chain := NewChain(primary, fallback)

	list, err := chain.List(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].Title != "primary" {
		t.Errorf("list = %+v, want the primary's answer", list)
	}
	if fallback.calls != 0 {
		t.Error("fallback consulted although primary answered")
	}
}

func TestChainFallsThroughOnInfraError(t *testing.T) {
	primary := &stubStore{err: errors.New("connection refused")}
	fallback := &stubStore{list: []model.Mission{{ID: 2, Title: "fallback"}}}
	chain := NewChain(primary, fallback)

	list, err := chain.List(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].Title != "fallback" {
		t.Errorf("list = %+v, want the fallback's answer", list)
	}
}

func TestChainNotFoundStopsToggle(t *testing.T) {
	// ErrNotFound is an authoritative answer, not an outage: the
	// fallback must not be asked.
	primary := &stubStore{toggleErr: ErrNotFound}
	fallback := &stubStore{toggle: ToggleResult{Completed: true}}
	chain := NewChain(primary, fallback)

	_, err := chain.Toggle(context.Background(), 1, 42)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if fallback.calls != 0 {
		t.Error("fallback consulted after an authoritative not-found")
	}
}

func TestChainAllSourcesFail(t *testing.T) {
	first := &stubStore{err: errors.New("down")}
	second := &stubStore{err: errors.New("also down")}
	chain := NewChain(first, second)

	if _, err := chain.List(context.Background(), 1); err == nil {
		t.Fatal("expected an error when every source fails")
	}
}
