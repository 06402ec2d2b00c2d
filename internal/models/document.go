package models

import "time"

// DocumentType categorizes uploaded documents.
type DocumentType string

const (
	DocumentTypeMOA         DocumentType = "moa"
	DocumentTypeWaiver      DocumentType = "waiver"
	DocumentTypeEvaluation  DocumentType = "evaluation"
	DocumentTypeCertificate DocumentType = "certificate"
	DocumentTypeOther       DocumentType = "other"
)

// Valid reports whether the type is known.
func (t DocumentType) Valid() bool {
	switch t {
	case DocumentTypeMOA, DocumentTypeWaiver, DocumentTypeEvaluation, DocumentTypeCertificate, DocumentTypeOther:
		return true
	}
	return false
}

// DocumentStatus is the review lifecycle of a document.
type DocumentStatus string

const (
	DocumentStatusPending  DocumentStatus = "pending"
	DocumentStatusApproved DocumentStatus = "approved"
	DocumentStatusRejected DocumentStatus = "rejected"
)

// Finalized reports whether the document has been reviewed.
func (s DocumentStatus) Finalized() bool {
	return s == DocumentStatusApproved || s == DocumentStatusRejected
}

// Document is an uploaded file reference. FileURL is opaque to the core and
// never interpreted.
type Document struct {
	ID           string         `json:"id"`
	UserID       string         `json:"userId"`
	Type         DocumentType   `json:"type"`
	Title        string         `json:"title"`
	FileName     string         `json:"fileName"`
	FileURL      string         `json:"fileUrl"`
	UploadDate   time.Time      `json:"uploadDate"`
	Status       DocumentStatus `json:"status"`
	ApprovedBy   string         `json:"approvedBy,omitempty"`
	ApprovalDate *time.Time     `json:"approvalDate,omitempty"`
	Comments     string         `json:"comments,omitempty"`
}
