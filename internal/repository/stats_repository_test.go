package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// brokenDB opens a pool against a port nothing listens on.  sql.Open
// does not dial, so construction succeeds and every query errors.
func brokenDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("mysql", "stats:stats@tcp(127.0.0.1:1)/nope?timeout=200ms")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSnapshotSurvivesDatabaseOutage(t *testing.T) {
	repo := NewStatsRepo(brokenDB(t))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s := repo.Snapshot(ctx)

	if s.TotalUsers != 0 || s.ActiveUsers != 0 || s.ForumPosts != 0 {
		t.Errorf("expected zero defaults, got %+v", s)
	}
	// Onboarding estimate scales off TotalUsers, which is zero here.
	if s.OnboardingCompleted != 0 {
		t.Errorf("onboarding = %d, want 0", s.OnboardingCompleted)
	}
	if s.CommunityHealthScore != 0 {
		t.Errorf("health score = %v, want 0 with no users", s.CommunityHealthScore)
	}
}

func TestHealthScore(t *testing.T) {
	cases := []struct {
		name string
		s    DashboardStats
		want float64
	}{
		{"no users", DashboardStats{}, 0},
		{"everything perfect", DashboardStats{
			TotalUsers: 100, OnboardingCompleted: 100, ActiveUsers: 100, ForumPosts: 100,
		}, 100},
		{"half onboarded, half active, no posts", DashboardStats{
			TotalUsers: 100, OnboardingCompleted: 50, ActiveUsers: 50,
		}, 40},
		{"engagement rate clamps at 1", DashboardStats{
			TotalUsers: 10, OnboardingCompleted: 10, ActiveUsers: 10, ForumPosts: 500,
		}, 100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := healthScore(tc.s)
			if diff := got - tc.want; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("healthScore() = %v, want %v", got, tc.want)
			}
		})
	}
}
