package models

import "time"

// SystemStats is the flat snapshot of system-wide counters, computed by a full
// scan at call time. No caching, no incremental counters.
type SystemStats struct {
	TotalUsers             int `json:"totalUsers"`
	ActiveStudents         int `json:"activeStudents"`
	TotalCoordinators      int `json:"totalCoordinators"`
	TotalSupervisors       int `json:"totalSupervisors"`
	TotalLogbookEntries    int `json:"totalLogbookEntries"`
	PendingDocuments       int `json:"pendingDocuments"`
	CompletedEvaluations   int `json:"completedEvaluations"`
	RegistrationsThisMonth int `json:"registrationsThisMonth"`
}

// LogbookProgress breaks down a student's logbook entries by status.
type LogbookProgress struct {
	Total    int `json:"total"`
	Approved int `json:"approved"`
	Pending  int `json:"pending"`
	Rejected int `json:"rejected"`
}

// DocumentProgress tracks the required-document checklist.
type DocumentProgress struct {
	Required  int `json:"required"`
	Submitted int `json:"submitted"`
	Pending   int `json:"pending"`
}

// EvaluationProgress counts a student's evaluations.
type EvaluationProgress struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
}

// StudentProgress summarizes one student's standing against the required
// internship hours.
type StudentProgress struct {
	TotalHours           int                `json:"totalHours"`
	RequiredHours        int                `json:"requiredHours"`
	CompletionPercentage int                `json:"completionPercentage"`
	LogbookEntries       LogbookProgress    `json:"logbookEntries"`
	Documents            DocumentProgress   `json:"documents"`
	Evaluations          EvaluationProgress `json:"evaluations"`
	LastActivity         *time.Time         `json:"lastActivity,omitempty"`
}
