package model

import "time"

// BugNotification informs a member that something happened to a bug
// report they filed (status change, admin reply, resolution).  The
// Metadata field is an opaque JSON blob stored verbatim so the client
// can render type-specific details without schema changes here.
//
// Fields:
//  ID          – primary key identifier.
//  UserID      – member the notification is addressed to.
//  BugReportID – the bug report this notification refers to.
//  Type        – notification kind (e.g. status_update, comment).
//  Title       – short headline shown in the inbox.
//  Message     – body text.
//  Metadata    – raw JSON blob with type-specific extras.
//  IsRead      – whether the member has opened the notification.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type BugNotification struct {
	ID          uint64    // bug_notifications.id
	UserID      uint64    // bug_notifications.user_id
	BugReportID uint64    // bug_notifications.bug_report_id
	Type        string    // bug_notifications.type
	Title       string    // bug_notifications.title
	Message     string    // bug_notifications.message
	Metadata    string    // bug_notifications.metadata (raw JSON, may be empty)
	IsRead      bool      // bug_notifications.is_read
	CreatedAt   time.Time // bug_notifications.created_at
	UpdatedAt   time.Time // bug_notifications.updated_at
}
