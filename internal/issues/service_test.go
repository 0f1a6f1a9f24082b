package issues

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rss-it/visitreport-backend/pkg/db/models"
	"github.com/rss-it/visitreport-backend/pkg/enums"
	pkgerrors "github.com/rss-it/visitreport-backend/pkg/errors"
)

type stubReports struct {
	exists bool
}

func (s stubReports) Exists(ctx context.Context, reportID uuid.UUID) (bool, error) {
	return s.exists, nil
}

func newTestService(t *testing.T) Service {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.Issue{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	svc, err := NewService(ServiceParams{
		Repo:    NewRepository(conn),
		Reports: stubReports{exists: true},
	})
	require.NoError(t, err)
	return svc
}

func TestCreateDefaults(t *testing.T) {
	svc := newTestService(t)

	issue, err := svc.Create(context.Background(), uuid.New(), CreateIssueInput{
		Kind:  "repair",
		Title: " Replace patch cable on port 12 ",
	})
	require.NoError(t, err)
	assert.Equal(t, "repair", issue.Kind)
	assert.Equal(t, "Replace patch cable on port 12", issue.Title)
	assert.Equal(t, "medium", issue.Priority)
	assert.Equal(t, "open", issue.Status)
}

func TestCreateValidation(t *testing.T) {
	svc := newTestService(t)
	reportID := uuid.New()

	cases := []struct {
		name  string
		input CreateIssueInput
	}{
		{"missing title", CreateIssueInput{Kind: "issue"}},
		{"bad kind", CreateIssueInput{Kind: "complaint", Title: "x"}},
		{"bad priority", CreateIssueInput{Kind: "issue", Title: "x", Priority: "urgent"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), reportID, tc.input)
			typed := pkgerrors.As(err)
			require.NotNil(t, typed)
			assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
		})
	}
}

func TestTransitionTable(t *testing.T) {
	cases := []struct {
		from    enums.IssueStatus
		to      enums.IssueStatus
		allowed bool
	}{
		{enums.IssueStatusOpen, enums.IssueStatusInProgress, true},
		{enums.IssueStatusOpen, enums.IssueStatusResolved, true},
		{enums.IssueStatusInProgress, enums.IssueStatusResolved, true},
		{enums.IssueStatusResolved, enums.IssueStatusOpen, true},
		{enums.IssueStatusInProgress, enums.IssueStatusOpen, false},
		{enums.IssueStatusResolved, enums.IssueStatusInProgress, false},
		{enums.IssueStatusOpen, enums.IssueStatusOpen, false},
		{enums.IssueStatusResolved, enums.IssueStatusResolved, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.allowed, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestTransitionLifecycle(t *testing.T) {
	svc := newTestService(t)

	issue, err := svc.Create(context.Background(), uuid.New(), CreateIssueInput{
		Kind:  "issue",
		Title: "UPS battery warning",
	})
	require.NoError(t, err)

	moved, err := svc.Transition(context.Background(), issue.ID, "in_progress")
	require.NoError(t, err)
	assert.Equal(t, "in_progress", moved.Status)

	// going backwards is a state conflict
	_, err = svc.Transition(context.Background(), issue.ID, "open")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeStateConflict, typed.Code())

	resolved, err := svc.Transition(context.Background(), issue.ID, "resolved")
	require.NoError(t, err)
	assert.Equal(t, "resolved", resolved.Status)

	reopened, err := svc.Transition(context.Background(), issue.ID, "open")
	require.NoError(t, err)
	assert.Equal(t, "open", reopened.Status)
}

func TestTransitionUnknownStatus(t *testing.T) {
	svc := newTestService(t)

	issue, err := svc.Create(context.Background(), uuid.New(), CreateIssueInput{
		Kind:  "issue",
		Title: "Loose cable tray",
	})
	require.NoError(t, err)

	_, err = svc.Transition(context.Background(), issue.ID, "done")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestListFilters(t *testing.T) {
	svc := newTestService(t)
	reportID := uuid.New()

	_, err := svc.Create(context.Background(), reportID, CreateIssueInput{Kind: "issue", Title: "a"})
	require.NoError(t, err)
	repair, err := svc.Create(context.Background(), reportID, CreateIssueInput{Kind: "repair", Title: "b"})
	require.NoError(t, err)
	_, err = svc.Transition(context.Background(), repair.ID, "resolved")
	require.NoError(t, err)

	all, err := svc.List(context.Background(), reportID, ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	repairs, err := svc.List(context.Background(), reportID, ListFilter{Kind: "repair"})
	require.NoError(t, err)
	require.Len(t, repairs, 1)
	assert.Equal(t, "b", repairs[0].Title)

	open, err := svc.List(context.Background(), reportID, ListFilter{Status: "open"})
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, "a", open[0].Title)

	_, err = svc.List(context.Background(), reportID, ListFilter{Kind: "complaint"})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestUpdateAndDelete(t *testing.T) {
	svc := newTestService(t)

	issue, err := svc.Create(context.Background(), uuid.New(), CreateIssueInput{
		Kind:     "recommendation",
		Title:    "Add second UPS",
		Priority: "low",
	})
	require.NoError(t, err)

	high := "high"
	updated, err := svc.Update(context.Background(), issue.ID, UpdateIssueInput{Priority: &high})
	require.NoError(t, err)
	assert.Equal(t, "high", updated.Priority)
	assert.Equal(t, "Add second UPS", updated.Title)

	require.NoError(t, svc.Delete(context.Background(), issue.ID))

	err = svc.Delete(context.Background(), issue.ID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}
