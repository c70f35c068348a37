package model

import "time"

// Email log statuses.
const (
	EmailStatusQueued = "queued"
	EmailStatusSent   = "sent"
	EmailStatusFailed = "failed"
)

// EmailLog is the per-send audit record written by the email
// consumer.  One row per dispatched message.
//
// Fields:
//  ID           – primary key identifier.
//  MessageID    – unique id assigned when the send was queued.
//  Recipient    – destination address.
//  EmailType    – template/category (welcome, password_reset, ...).
//  Status       – queued, sent or failed.
//  Provider     – delivery provider that handled the send.
//  ErrorMessage – provider error when Status is failed.
//  CreatedAt    – when the row was written.
//  SentAt       – when the provider accepted the message (nullable).
type EmailLog struct {
	ID           uint64     // email_logs.id
	MessageID    string     // email_logs.message_id
	Recipient    string     // email_logs.recipient
	EmailType    string     // email_logs.email_type
	Status       string     // email_logs.status
	Provider     string     // email_logs.provider
	ErrorMessage string     // email_logs.error_message
	CreatedAt    time.Time  // email_logs.created_at
	SentAt       *time.Time // email_logs.sent_at (nullable)
}
