package repository

import (
	"context"
	"database/sql"
	"log"
	"time"
)

// StatsRepo computes the admin dashboard snapshot.  Every sub-metric
// is an independent query with its own fallback default, so a failing
// table never turns the whole dashboard into a 500: the snapshot is
// always produced, with zeros (or the onboarding heuristic) standing
// in for whatever could not be counted.
type StatsRepo struct {
	DB    *sql.DB
	users *UserRepo
}

func NewStatsRepo(db *sql.DB) *StatsRepo {
	return &StatsRepo{DB: db, users: NewUserRepo(db)}
}

// Health score weights.  Product-chosen; no derivation beyond "sum to 1".
const (
	weightOnboarding = 0.4
	weightActivity   = 0.4
	weightEngagement = 0.2
)

// onboardingFallbackRate is assumed when the onboarding count query
// errors but the user count succeeded.
const onboardingFallbackRate = 0.8

// activeWindow bounds what counts as a recently active user.
const activeWindow = 30 * 24 * time.Hour

// DashboardStats is the admin dashboard payload.
type DashboardStats struct {
	TotalUsers           int     `json:"total_users"`
	ActiveUsers          int     `json:"active_users"`
	OnboardingCompleted  int     `json:"onboarding_completed"`
	ForumPosts           int     `json:"forum_posts"`
	AcademyLessons       int     `json:"academy_lessons"`
	TrainingProfiles     int     `json:"training_profiles"`
	NutritionPlans       int     `json:"nutrition_plans"`
	BookReviews          int     `json:"book_reviews"`
	BadgesGranted        int     `json:"badges_granted"`
	TotalXP              int     `json:"total_xp"`
	MissionsCompleted    int     `json:"missions_completed"`
	CommunityHealthScore float64 `json:"community_health_score"`
}

// countOr runs a single-value count query and substitutes def when the
// query fails.  Failures are logged, never propagated.
func (r *StatsRepo) countOr(ctx context.Context, def int, query string, args ...interface{}) int {
	var n int
	if err := r.DB.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		log.Printf("stats: %q failed, using default %d: %v", query, def, err)
		return def
	}
	return n
}

// Snapshot recomputes every metric from scratch.  No caching or
// incremental state; each call is a fresh set of count queries.
func (r *StatsRepo) Snapshot(ctx context.Context) DashboardStats {
	var s DashboardStats
	s.TotalUsers = r.countOr(ctx, 0, "SELECT COUNT(*) FROM users")
	if n, err := r.users.UpdatedWithin(ctx, activeWindow); err != nil {
		log.Printf("stats: active user count failed, using default 0: %v", err)
	} else {
		s.ActiveUsers = n
	}

	var onb int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM users WHERE onboarding_completed=1").Scan(&onb)
	if err != nil {
		// Heuristic: assume most of the user base finished onboarding.
		onb = int(float64(s.TotalUsers) * onboardingFallbackRate)
		log.Printf("stats: onboarding count failed, estimating %d of %d: %v", onb, s.TotalUsers, err)
	}
	s.OnboardingCompleted = onb

	s.ForumPosts = r.countOr(ctx, 0, "SELECT COUNT(*) FROM forum_posts")
	s.AcademyLessons = r.countOr(ctx, 0, "SELECT COUNT(*) FROM academy_lessons")
	s.TrainingProfiles = r.countOr(ctx, 0, "SELECT COUNT(*) FROM training_profiles")
	s.NutritionPlans = r.countOr(ctx, 0, "SELECT COUNT(*) FROM nutrition_plans")
	s.BadgesGranted = r.countOr(ctx, 0, "SELECT COUNT(*) FROM user_badges")
	s.BookReviews = r.countOr(ctx, 0, "SELECT COUNT(*) FROM book_reviews")
	s.TotalXP = r.countOr(ctx, 0, "SELECT COALESCE(SUM(total_xp),0) FROM xp_balances")
	s.MissionsCompleted = r.countOr(ctx, 0,
		"SELECT COUNT(*) FROM user_missions WHERE last_completion_date IS NOT NULL")

	s.CommunityHealthScore = healthScore(s)
	return s
}

// healthScore is the weighted blend of onboarding, activity and
// engagement rates, scaled to 0..100.
func healthScore(s DashboardStats) float64 {
	if s.TotalUsers == 0 {
		return 0
	}
	total := float64(s.TotalUsers)
	onboarding := clamp01(float64(s.OnboardingCompleted) / total)
	activity := clamp01(float64(s.ActiveUsers) / total)
	engagement := clamp01(float64(s.ForumPosts) / total)
	score := (weightOnboarding*onboarding + weightActivity*activity + weightEngagement*engagement) * 100
	if score > 100 {
		score = 100
	}
	return score
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
