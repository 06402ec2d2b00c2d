package models

import "time"

// LogbookStatus is the review lifecycle of a logbook entry.
type LogbookStatus string

const (
	LogbookStatusDraft     LogbookStatus = "draft"
	LogbookStatusSubmitted LogbookStatus = "submitted"
	LogbookStatusApproved  LogbookStatus = "approved"
	LogbookStatusRejected  LogbookStatus = "rejected"
)

// Finalized reports whether the entry has been reviewed. Finalized entries
// never transition back to submitted or draft.
func (s LogbookStatus) Finalized() bool {
	return s == LogbookStatusApproved || s == LogbookStatusRejected
}

// LogbookEntry is one day's logged internship work. Hours only count toward
// progress once the entry is approved.
type LogbookEntry struct {
	ID          string        `json:"id"`
	UserID      string        `json:"userId"`
	Date        time.Time     `json:"date"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Activities  []string      `json:"activities"`
	HoursWorked int           `json:"hoursWorked"`
	Attachments []string      `json:"attachments,omitempty"`
	Status      LogbookStatus `json:"status"`
	Feedback    string        `json:"feedback,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// LogbookUpdate carries shallow-merge fields for an entry.
type LogbookUpdate struct {
	Date        *time.Time     `json:"date,omitempty"`
	Title       *string        `json:"title,omitempty"`
	Description *string        `json:"description,omitempty"`
	Activities  *[]string      `json:"activities,omitempty"`
	HoursWorked *int           `json:"hoursWorked,omitempty"`
	Attachments *[]string      `json:"attachments,omitempty"`
	Status      *LogbookStatus `json:"status,omitempty"`
}
