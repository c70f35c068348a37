package repository

import (
	"context"
	"database/sql"

	"github.com/toptiermen/platform/internal/model"
)

type BugNotificationRepo struct{ DB *sql.DB }

func NewBugNotificationRepo(db *sql.DB) *BugNotificationRepo {
	return &BugNotificationRepo{DB: db}
}

// Create inserts a notification row and returns its id.  Metadata is
// stored verbatim; an empty string becomes SQL NULL.
func (r *BugNotificationRepo) Create(ctx context.Context, n model.BugNotification) (uint64, error) {
	var meta interface{}
	if n.Metadata != "" {
		meta = n.Metadata
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO bug_notifications (user_id, bug_report_id, type, title, message, metadata) VALUES (?,?,?,?,?,?)",
		n.UserID, n.BugReportID, n.Type, n.Title, n.Message, meta)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// ListForUser returns a user's notifications, newest first.
func (r *BugNotificationRepo) ListForUser(ctx context.Context, userID uint64, limit int) ([]model.BugNotification, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,user_id,bug_report_id,type,title,message,COALESCE(metadata,''),is_read,created_at,updated_at FROM bug_notifications WHERE user_id=? ORDER BY id DESC LIMIT ?",
		userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.BugNotification
	for rows.Next() {
		var n model.BugNotification
		if err := rows.Scan(&n.ID, &n.UserID, &n.BugReportID, &n.Type, &n.Title,
			&n.Message, &n.Metadata, &n.IsRead, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// UnreadCount counts a user's unread notifications.
func (r *BugNotificationRepo) UnreadCount(ctx context.Context, userID uint64) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM bug_notifications WHERE user_id=? AND is_read=0", userID).Scan(&n)
	return n, err
}

// MarkRead flips the read flag.  Returns sql.ErrNoRows when the id
// does not exist.
func (r *BugNotificationRepo) MarkRead(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE bug_notifications SET is_read=1 WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
