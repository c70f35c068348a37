package repository

import (
	"context"
	"database/sql"
	"time"
)

// ReferralRepo derives referral data from the users table: a referral
// is simply a user whose referred_by column carries another member's
// referral code.  Numbers come from real rows, not synthesized
// placeholders.
type ReferralRepo struct{ DB *sql.DB }

func NewReferralRepo(db *sql.DB) *ReferralRepo { return &ReferralRepo{DB: db} }

// ReferredUser is one signup attributed to a referral code.
type ReferredUser struct {
	UserID    uint64    `json:"user_id"`
	Email     string    `json:"email"`
	Active    bool      `json:"active"`
	SignedUp  time.Time `json:"signed_up"`
	Completed bool      `json:"completed_onboarding"`
}

// ListByCode returns every user who signed up with the given code,
// newest first.
func (r *ReferralRepo) ListByCode(ctx context.Context, code string) ([]ReferredUser, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,email,is_active,onboarding_completed,created_at FROM users WHERE referred_by=? ORDER BY id DESC",
		code)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []ReferredUser
	for rows.Next() {
		var u ReferredUser
		if err := rows.Scan(&u.UserID, &u.Email, &u.Active, &u.Completed, &u.SignedUp); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// CountByCode counts total and onboarded signups for a code.
func (r *ReferralRepo) CountByCode(ctx context.Context, code string) (total, completed int, err error) {
	err = r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*), COALESCE(SUM(onboarding_completed),0) FROM users WHERE referred_by=?",
		code).Scan(&total, &completed)
	return
}
