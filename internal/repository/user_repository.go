package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/toptiermen/platform/internal/model"
	"github.com/toptiermen/platform/internal/utils"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

var ErrEmailExists = errors.New("email already exists")

const userColumns = "id,email,password_hash,role,referral_code,referred_by,onboarding_completed,is_active,created_at,updated_at"

// Create inserts a user and returns its ID.  The referral code is
// generated by the caller; referredBy may be empty.
func (r *UserRepo) Create(ctx context.Context, email, password, role, referralCode, referredBy string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	var refBy interface{}
	if referredBy != "" {
		refBy = referredBy
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (email, password_hash, role, referral_code, referred_by) VALUES (?,?,?,?,?)",
		email, hash, role, referralCode, refBy)
	if err != nil {
		// MySQL duplicate-key errors carry code 1062.
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func scanUser(row *sql.Row) (model.User, error) {
	var u model.User
	var referredBy sql.NullString
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.ReferralCode,
		&referredBy, &u.OnboardingCompleted, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return model.User{}, err
	}
	if referredBy.Valid {
		v := referredBy.String
		u.ReferredBy = &v
	}
	return u, nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", email))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id))
}

// GetByReferralCode fetches the user owning a referral code.
func (r *UserRepo) GetByReferralCode(ctx context.Context, code string) (model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE referral_code=? LIMIT 1", code))
}

// MarkOnboardingCompleted flips the onboarding flag for a user.
func (r *UserRepo) MarkOnboardingCompleted(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET onboarding_completed=1 WHERE id=?", id)
	return err
}

// UpdatedWithin is a convenience used by the stats aggregator: counts
// users whose last update falls within the window.
func (r *UserRepo) UpdatedWithin(ctx context.Context, window time.Duration) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM users WHERE updated_at >= ?", time.Now().UTC().Add(-window)).Scan(&n)
	return n, err
}
