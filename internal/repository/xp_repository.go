package repository

import (
	"context"
	"database/sql"

	"github.com/toptiermen/platform/internal/model"
)

// XPRepo reads XP balances and transaction history.  Balance writes
// happen inside the mission toggle transaction; this repo only needs
// standalone reads plus a direct grant used by admin tooling.
type XPRepo struct{ DB *sql.DB }

func NewXPRepo(db *sql.DB) *XPRepo { return &XPRepo{DB: db} }

// Balance returns the member's XP total, zero when no row exists yet.
func (r *XPRepo) Balance(ctx context.Context, userID uint64) (int, error) {
	var total int
	err := r.DB.QueryRowContext(ctx,
		"SELECT total_xp FROM xp_balances WHERE user_id=? LIMIT 1", userID).Scan(&total)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	return total, err
}

// RecentTransactions returns the newest XP movements for a member.
func (r *XPRepo) RecentTransactions(ctx context.Context, userID uint64, limit int) ([]model.XPTransaction, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,user_id,amount,reason,reference,created_at FROM xp_transactions WHERE user_id=? ORDER BY id DESC LIMIT ?",
		userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.XPTransaction
	for rows.Next() {
		var t model.XPTransaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Amount, &t.Reason, &t.Reference, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Grant applies a signed XP delta outside the mission path, recording
// both the balance change and the transaction row in one transaction.
func (r *XPRepo) Grant(ctx context.Context, userID uint64, amount int, reason, reference string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO xp_balances (user_id, total_xp) VALUES (?,?) ON DUPLICATE KEY UPDATE total_xp = total_xp + VALUES(total_xp)",
		userID, amount); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO xp_transactions (user_id, amount, reason, reference) VALUES (?,?,?,?)",
		userID, amount, reason, reference); err != nil {
		return err
	}
	return tx.Commit()
}
