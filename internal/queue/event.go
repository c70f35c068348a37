// Package queue defines message payloads exchanged over the message
// broker and the background consumer that records email sends.
package queue

// EmailQueuedEvent is published whenever the platform wants an email
// delivered.  The consumer records the send in email_logs; actual
// provider delivery is out of scope here.
type EmailQueuedEvent struct {
	MessageID string `json:"message_id"`
	Recipient string `json:"recipient"`
	EmailType string `json:"email_type"`
	Subject   string `json:"subject"`
	Provider  string `json:"provider"`
	QueuedAt  string `json:"queued_at"`
}
