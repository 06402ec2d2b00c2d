package models

import "time"

// TargetRoleAll is the sentinel making an announcement visible to every role.
const TargetRoleAll = "all"

// AnnouncementPriority orders announcements for display.
type AnnouncementPriority string

const (
	AnnouncementPriorityLow    AnnouncementPriority = "low"
	AnnouncementPriorityMedium AnnouncementPriority = "medium"
	AnnouncementPriorityHigh   AnnouncementPriority = "high"
	AnnouncementPriorityUrgent AnnouncementPriority = "urgent"
)

// Announcement is a role-targeted notice. AuthorName is snapshotted at
// creation time on purpose and never re-resolved against the user partition.
type Announcement struct {
	ID          string               `json:"id"`
	Title       string               `json:"title"`
	Content     string               `json:"content"`
	AuthorID    string               `json:"authorId"`
	AuthorName  string               `json:"authorName"`
	TargetRoles []string             `json:"targetRoles"`
	Priority    AnnouncementPriority `json:"priority"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
	IsActive    bool                 `json:"isActive"`
	Attachments []string             `json:"attachments,omitempty"`
}

// VisibleTo reports whether an active announcement targets the given role.
func (a Announcement) VisibleTo(role string) bool {
	for _, target := range a.TargetRoles {
		if target == role || target == TargetRoleAll {
			return true
		}
	}
	return false
}

// AnnouncementUpdate carries shallow-merge fields for an announcement.
type AnnouncementUpdate struct {
	Title       *string               `json:"title,omitempty"`
	Content     *string               `json:"content,omitempty"`
	TargetRoles *[]string             `json:"targetRoles,omitempty"`
	Priority    *AnnouncementPriority `json:"priority,omitempty"`
	IsActive    *bool                 `json:"isActive,omitempty"`
	Attachments *[]string             `json:"attachments,omitempty"`
}
