package issues

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rss-it/visitreport-backend/pkg/db/models"
	"github.com/rss-it/visitreport-backend/pkg/enums"
	pkgerrors "github.com/rss-it/visitreport-backend/pkg/errors"
	"github.com/rss-it/visitreport-backend/pkg/logger"
)

// allowedTransitions is the status state machine. Resolved findings reopen to
// open, never straight back to in_progress.
var allowedTransitions = map[enums.IssueStatus][]enums.IssueStatus{
	enums.IssueStatusOpen:       {enums.IssueStatusInProgress, enums.IssueStatusResolved},
	enums.IssueStatusInProgress: {enums.IssueStatusResolved},
	enums.IssueStatusResolved:   {enums.IssueStatusOpen},
}

// CanTransition reports whether moving from one status to another is allowed.
func CanTransition(from, to enums.IssueStatus) bool {
	for _, candidate := range allowedTransitions[from] {
		if candidate == to {
			return true
		}
	}
	return false
}

// ReportChecker verifies a report exists before issues are touched.
type ReportChecker interface {
	Exists(ctx context.Context, reportID uuid.UUID) (bool, error)
}

// ServiceParams groups dependencies for the issue service.
type ServiceParams struct {
	Repo    *Repository
	Reports ReportChecker
	Logger  *logger.Logger
}

// Service exposes issue, repair, and recommendation tracking.
type Service interface {
	List(ctx context.Context, reportID uuid.UUID, filter ListFilter) ([]IssueDTO, error)
	Create(ctx context.Context, reportID uuid.UUID, input CreateIssueInput) (IssueDTO, error)
	Update(ctx context.Context, issueID uuid.UUID, input UpdateIssueInput) (IssueDTO, error)
	Delete(ctx context.Context, issueID uuid.UUID) error
	Transition(ctx context.Context, issueID uuid.UUID, status string) (IssueDTO, error)
}

type service struct {
	repo    *Repository
	reports ReportChecker
	logg    *logger.Logger
}

// NewService builds an issue service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "issue repo is required")
	}
	if params.Reports == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "report checker is required")
	}
	return &service{
		repo:    params.Repo,
		reports: params.Reports,
		logg:    params.Logger,
	}, nil
}

// List returns the report's findings, optionally narrowed by kind and status.
func (s *service) List(ctx context.Context, reportID uuid.UUID, filter ListFilter) ([]IssueDTO, error) {
	if err := s.ensureReport(ctx, reportID); err != nil {
		return nil, err
	}

	var kind enums.IssueKind
	if filter.Kind != "" {
		parsed, err := enums.ParseIssueKind(filter.Kind)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid issue kind").
				WithDetails(map[string]any{"kind": filter.Kind})
		}
		kind = parsed
	}
	var status enums.IssueStatus
	if filter.Status != "" {
		parsed, err := enums.ParseIssueStatus(filter.Status)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid issue status").
				WithDetails(map[string]any{"status": filter.Status})
		}
		status = parsed
	}

	records, err := s.repo.ListByReport(ctx, reportID, kind, status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list issues")
	}
	dtos := make([]IssueDTO, 0, len(records))
	for _, record := range records {
		dtos = append(dtos, dtoFromModel(record))
	}
	return dtos, nil
}

// Create logs a new finding. Priority defaults to medium, status to open.
func (s *service) Create(ctx context.Context, reportID uuid.UUID, input CreateIssueInput) (IssueDTO, error) {
	if err := s.ensureReport(ctx, reportID); err != nil {
		return IssueDTO{}, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return IssueDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "issue title is required")
	}
	kind, err := enums.ParseIssueKind(input.Kind)
	if err != nil {
		return IssueDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid issue kind").
			WithDetails(map[string]any{"kind": input.Kind})
	}

	priority := enums.IssuePriorityMedium
	if input.Priority != "" {
		parsed, err := enums.ParseIssuePriority(input.Priority)
		if err != nil {
			return IssueDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid issue priority").
				WithDetails(map[string]any{"priority": input.Priority})
		}
		priority = parsed
	}

	issue := models.Issue{
		ID:          uuid.New(),
		ReportID:    reportID,
		Kind:        kind,
		Title:       title,
		Description: input.Description,
		Priority:    priority,
		Status:      enums.IssueStatusOpen,
	}
	if err := s.repo.Create(ctx, &issue); err != nil {
		return IssueDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create issue")
	}
	return dtoFromModel(issue), nil
}

// Update edits title, description, or priority.
func (s *service) Update(ctx context.Context, issueID uuid.UUID, input UpdateIssueInput) (IssueDTO, error) {
	issue, err := s.load(ctx, issueID)
	if err != nil {
		return IssueDTO{}, err
	}

	if input.Title != nil {
		trimmed := strings.TrimSpace(*input.Title)
		if trimmed == "" {
			return IssueDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "issue title is required")
		}
		issue.Title = trimmed
	}
	if input.Description != nil {
		issue.Description = *input.Description
	}
	if input.Priority != nil {
		parsed, err := enums.ParseIssuePriority(*input.Priority)
		if err != nil {
			return IssueDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid issue priority").
				WithDetails(map[string]any{"priority": *input.Priority})
		}
		issue.Priority = parsed
	}

	if err := s.repo.Save(ctx, issue); err != nil {
		return IssueDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update issue")
	}
	return dtoFromModel(*issue), nil
}

// Delete removes one finding.
func (s *service) Delete(ctx context.Context, issueID uuid.UUID) error {
	if _, err := s.load(ctx, issueID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, issueID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete issue")
	}
	return nil
}

// Transition moves the finding through the status state machine. Disallowed
// moves are state conflicts, not validation failures, so clients can tell a
// stale board apart from a malformed request.
func (s *service) Transition(ctx context.Context, issueID uuid.UUID, status string) (IssueDTO, error) {
	issue, err := s.load(ctx, issueID)
	if err != nil {
		return IssueDTO{}, err
	}

	target, err := enums.ParseIssueStatus(status)
	if err != nil {
		return IssueDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid issue status").
			WithDetails(map[string]any{"status": status})
	}
	if !CanTransition(issue.Status, target) {
		return IssueDTO{}, pkgerrors.New(pkgerrors.CodeStateConflict, "status transition disallowed").
			WithDetails(map[string]any{"from": issue.Status.String(), "to": target.String()})
	}

	issue.Status = target
	if err := s.repo.Save(ctx, issue); err != nil {
		return IssueDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update issue status")
	}
	return dtoFromModel(*issue), nil
}

func (s *service) ensureReport(ctx context.Context, reportID uuid.UUID) error {
	if reportID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "report id is required")
	}
	exists, err := s.reports.Exists(ctx, reportID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load report")
	}
	if !exists {
		return pkgerrors.New(pkgerrors.CodeNotFound, "report not found")
	}
	return nil
}

func (s *service) load(ctx context.Context, issueID uuid.UUID) (*models.Issue, error) {
	if issueID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "issue id is required")
	}
	issue, err := s.repo.FindByID(ctx, issueID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "issue not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load issue")
	}
	return issue, nil
}
