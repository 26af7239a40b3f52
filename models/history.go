package models

import "time"

// ChangeRecord is one field-level entry of a repository's change sublog,
// appended whenever save diffs a mutable field against the stored version.
type ChangeRecord struct {
	EntityID  string    `json:"entityId"`
	Field     string    `json:"field"`
	OldValue  string    `json:"oldValue"`
	NewValue  string    `json:"newValue"`
	Actor     string    `json:"actor"`
	Timestamp time.Time `json:"timestamp"`
}

// NotificationLog records the outcome of every confirmation message handed to
// the notification collaborator. Booking never blocks on this.
type NotificationLog struct {
	ID            string    `json:"id"`
	ClientID      string    `json:"clientId"`
	AppointmentID string    `json:"appointmentId"`
	Channel       string    `json:"channel"`
	Message       string    `json:"message"`
	Status        string    `json:"status"`
	ErrorMessage  string    `json:"errorMessage,omitempty"`
	SentAt        time.Time `json:"sentAt"`
}
