package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/toptiermen/platform/internal/model"
)

type BadgeRepo struct{ DB *sql.DB }

func NewBadgeRepo(db *sql.DB) *BadgeRepo { return &BadgeRepo{DB: db} }

// Catalog returns every badge definition.
func (r *BadgeRepo) Catalog(ctx context.Context) ([]model.Badge, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,slug,title,description,COALESCE(icon_url,''),created_at FROM badges ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Badge
	for rows.Next() {
		var b model.Badge
		if err := rows.Scan(&b.ID, &b.Slug, &b.Title, &b.Description, &b.IconURL, &b.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// HeldBy returns the badge ids a member holds.
func (r *BadgeRepo) HeldBy(ctx context.Context, userID uint64) (map[uint64]bool, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT badge_id FROM user_badges WHERE user_id=?", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	held := map[uint64]bool{}
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		held[id] = true
	}
	return held, rows.Err()
}

// Grant gives a badge to a member.  Granting twice is a no-op thanks
// to the unique (user_id, badge_id) key.
func (r *BadgeRepo) Grant(ctx context.Context, userID, badgeID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO user_badges (user_id, badge_id) VALUES (?,?)", userID, badgeID)
	if err != nil && strings.Contains(strings.ToLower(err.Error()), "1062") {
		return ErrConflict
	}
	return err
}

// CountForUser counts a member's granted badges.
func (r *BadgeRepo) CountForUser(ctx context.Context, userID uint64) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM user_badges WHERE user_id=?", userID).Scan(&n)
	return n, err
}
