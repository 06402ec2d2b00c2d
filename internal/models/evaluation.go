package models

import "time"

// EvaluationType distinguishes scheduled evaluation rounds.
type EvaluationType string

const (
	EvaluationTypeMidterm EvaluationType = "midterm"
	EvaluationTypeFinal   EvaluationType = "final"
	EvaluationTypeMonthly EvaluationType = "monthly"
)

// EvaluationStatus is the evaluation lifecycle.
type EvaluationStatus string

const (
	EvaluationStatusDraft     EvaluationStatus = "draft"
	EvaluationStatusSubmitted EvaluationStatus = "submitted"
	EvaluationStatusApproved  EvaluationStatus = "approved"
)

// EvaluationScores holds the five named sub-scores in [0,100] plus the derived
// overall score (rounded arithmetic mean of the five).
type EvaluationScores struct {
	Technical     int `json:"technical"`
	Communication int `json:"communication"`
	Teamwork      int `json:"teamwork"`
	Initiative    int `json:"initiative"`
	Punctuality   int `json:"punctuality"`
	Overall       int `json:"overall"`
}

// Evaluation is a coordinator's or supervisor's assessment of a student.
type Evaluation struct {
	ID              string           `json:"id"`
	StudentID       string           `json:"studentId"`
	EvaluatorID     string           `json:"evaluatorId"`
	EvaluatorRole   UserRole         `json:"evaluatorRole"`
	Type            EvaluationType   `json:"type"`
	Scores          EvaluationScores `json:"scores"`
	Comments        string           `json:"comments"`
	Recommendations string           `json:"recommendations"`
	DateEvaluated   time.Time        `json:"dateEvaluated"`
	Status          EvaluationStatus `json:"status"`
}

// EvaluationUpdate carries shallow-merge fields for an evaluation.
type EvaluationUpdate struct {
	Type            *EvaluationType   `json:"type,omitempty"`
	Scores          *EvaluationScores `json:"scores,omitempty"`
	Comments        *string           `json:"comments,omitempty"`
	Recommendations *string           `json:"recommendations,omitempty"`
	Status          *EvaluationStatus `json:"status,omitempty"`
}
