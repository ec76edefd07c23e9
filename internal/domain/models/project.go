package models

import "time"

// Project categories
const (
	CategoryDevelopment = "development"
	CategoryDesign      = "design"
	CategoryMarketing   = "marketing"
	CategorySales       = "sales"
	CategorySupport     = "support"
	CategoryOther       = "other"
)

// ProjectCategories lists every accepted project category.
var ProjectCategories = []string{
	CategoryDevelopment,
	CategoryDesign,
	CategoryMarketing,
	CategorySales,
	CategorySupport,
	CategoryOther,
}

// Project statuses
const (
	ProjectStatusPlanning  = "planning"
	ProjectStatusActive    = "active"
	ProjectStatusPaused    = "paused"
	ProjectStatusCompleted = "completed"
	ProjectStatusArchived  = "archived"
)

// Member roles within a project
const (
	MemberRoleViewer = "viewer"
	MemberRoleEditor = "editor"
	MemberRoleAdmin  = "admin"
)

// Member is a project membership entry. Stored inline on the project
// row as JSONB, mirroring the embedded array it replaced.
type Member struct {
	UserID   string    `json:"userId"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joinedAt"`
}

// Attachment is a file reference embedded on a project. Attachments have
// no identifier of their own; listings synthesize one from the project
// ID and the attachment name.
type Attachment struct {
	Name       string    `json:"name"`
	URL        string    `json:"url"`
	UploadedBy string    `json:"uploadedBy"`
	UploadedAt time.Time `json:"uploadedAt"`
}

type Project struct {
	ID          string       `json:"id" db:"id"`
	Name        string       `json:"name" db:"name"`
	Description string       `json:"description,omitempty" db:"description"`
	OwnerID     string       `json:"ownerId" db:"owner_id"`
	Members     []Member     `json:"members" db:"members"`
	Category    string       `json:"category" db:"category"`
	Status      string       `json:"status" db:"status"`
	Priority    string       `json:"priority" db:"priority"`
	StartDate   *time.Time   `json:"startDate,omitempty" db:"start_date"`
	DueDate     *time.Time   `json:"dueDate,omitempty" db:"due_date"`
	Progress    int          `json:"progress" db:"progress"`
	Tags        []string     `json:"tags" db:"tags"`
	Attachments []Attachment `json:"attachments" db:"attachments"`
	CreatedAt   time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time    `json:"updatedAt" db:"updated_at"`
}

// VisibleTo reports whether userID may read this project: the owner or
// any member, regardless of member role.
func (p *Project) VisibleTo(userID string) bool {
	if p.OwnerID == userID {
		return true
	}
	for _, m := range p.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

// HasMember reports whether userID already appears in the member list.
func (p *Project) HasMember(userID string) bool {
	for _, m := range p.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

// MemberRole returns the role userID holds in the member list, or ""
// when not a member.
func (p *Project) MemberRole(userID string) string {
	for _, m := range p.Members {
		if m.UserID == userID {
			return m.Role
		}
	}
	return ""
}

// ValidCategory reports whether c is an accepted project category.
func ValidCategory(c string) bool {
	for _, known := range ProjectCategories {
		if c == known {
			return true
		}
	}
	return false
}
