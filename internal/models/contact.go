package models

import "time"

// ContactStatus tracks the handling of a contact submission.
type ContactStatus string

const (
	ContactStatusNew       ContactStatus = "new"
	ContactStatusRead      ContactStatus = "read"
	ContactStatusResponded ContactStatus = "responded"
	ContactStatusClosed    ContactStatus = "closed"
)

// ContactSubmission is a message sent through the public contact form.
type ContactSubmission struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Email       string        `json:"email"`
	Subject     string        `json:"subject"`
	Message     string        `json:"message"`
	Timestamp   time.Time     `json:"timestamp"`
	Status      ContactStatus `json:"status"`
	Response    string        `json:"response,omitempty"`
	RespondedBy string        `json:"respondedBy,omitempty"`
	RespondedAt *time.Time    `json:"respondedAt,omitempty"`
}
