package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/toptiermen/platform/internal/model"
)

type EmailLogRepo struct{ DB *sql.DB }

func NewEmailLogRepo(db *sql.DB) *EmailLogRepo { return &EmailLogRepo{DB: db} }

// Record writes one per-send row.  SentAt is only set for sent rows.
func (r *EmailLogRepo) Record(ctx context.Context, l model.EmailLog) error {
	var sentAt interface{}
	if l.SentAt != nil {
		sentAt = l.SentAt.UTC()
	}
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO email_logs (message_id, recipient, email_type, status, provider, error_message, sent_at) VALUES (?,?,?,?,?,?,?)",
		l.MessageID, l.Recipient, l.EmailType, l.Status, l.Provider, l.ErrorMessage, sentAt)
	return err
}

// List returns log rows newest first, optionally filtered by status
// and/or a recipient substring.
func (r *EmailLogRepo) List(ctx context.Context, status, recipient string, limit int) ([]model.EmailLog, error) {
	if limit <= 0 {
		limit = 100
	}
	q := "SELECT id,message_id,recipient,email_type,status,provider,COALESCE(error_message,''),created_at,sent_at FROM email_logs"
	var (
		conds []string
		args  []interface{}
	)
	if status != "" {
		conds = append(conds, "status=?")
		args = append(args, status)
	}
	if recipient != "" {
		conds = append(conds, "recipient LIKE ?")
		args = append(args, "%"+recipient+"%")
	}
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.EmailLog
	for rows.Next() {
		var (
			l      model.EmailLog
			sentAt sql.NullTime
		)
		if err := rows.Scan(&l.ID, &l.MessageID, &l.Recipient, &l.EmailType,
			&l.Status, &l.Provider, &l.ErrorMessage, &l.CreatedAt, &sentAt); err != nil {
			return nil, err
		}
		if sentAt.Valid {
			t := sentAt.Time
			l.SentAt = &t
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// CountsByStatus aggregates rows per status since the given time
// (zero time means all history).
func (r *EmailLogRepo) CountsByStatus(ctx context.Context, since time.Time) (map[string]int, error) {
	q := "SELECT status, COUNT(*) FROM email_logs"
	var args []interface{}
	if !since.IsZero() {
		q += " WHERE created_at >= ?"
		args = append(args, since.UTC())
	}
	q += " GROUP BY status"
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[string]int{}
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		out[status] = n
	}
	return out, rows.Err()
}
