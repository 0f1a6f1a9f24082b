package issues

import (
	"time"

	"github.com/google/uuid"

	"github.com/rss-it/visitreport-backend/pkg/db/models"
)

// IssueDTO is the API view of one tracked finding.
type IssueDTO struct {
	ID          uuid.UUID `json:"id"`
	ReportID    uuid.UUID `json:"report_id"`
	Kind        string    `json:"kind"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Priority    string    `json:"priority"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateIssueInput carries the fields to log a new finding.
type CreateIssueInput struct {
	Kind        string `json:"kind" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

// UpdateIssueInput is a partial update of the editable fields. Status moves
// through the dedicated transition endpoint instead.
type UpdateIssueInput struct {
	Title       *string `json:"title" validate:"omitempty,min=1"`
	Description *string `json:"description"`
	Priority    *string `json:"priority"`
}

// ListFilter narrows the issue listing.
type ListFilter struct {
	Kind   string
	Status string
}

func dtoFromModel(issue models.Issue) IssueDTO {
	return IssueDTO{
		ID:          issue.ID,
		ReportID:    issue.ReportID,
		Kind:        issue.Kind.String(),
		Title:       issue.Title,
		Description: issue.Description,
		Priority:    issue.Priority.String(),
		Status:      issue.Status.String(),
		CreatedAt:   issue.CreatedAt,
		UpdatedAt:   issue.UpdatedAt,
	}
}
