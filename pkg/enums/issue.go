package enums

import "fmt"

// IssueKind maps to the issue_kind enum in Postgres.
type IssueKind string

const (
	IssueKindIssue          IssueKind = "issue"
	IssueKindRepair         IssueKind = "repair"
	IssueKindRecommendation IssueKind = "recommendation"
)

var validIssueKinds = []IssueKind{
	IssueKindIssue,
	IssueKindRepair,
	IssueKindRecommendation,
}

// String implements fmt.Stringer.
func (k IssueKind) String() string {
	return string(k)
}

// IsValid reports whether the value matches the canonical issue_kind enum.
func (k IssueKind) IsValid() bool {
	for _, candidate := range validIssueKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseIssueKind converts raw input into IssueKind.
func ParseIssueKind(value string) (IssueKind, error) {
	for _, candidate := range validIssueKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid issue kind %q", value)
}

// IssueStatus maps to the issue_status enum in Postgres.
type IssueStatus string

const (
	IssueStatusOpen       IssueStatus = "open"
	IssueStatusInProgress IssueStatus = "in_progress"
	IssueStatusResolved   IssueStatus = "resolved"
)

var validIssueStatuses = []IssueStatus{
	IssueStatusOpen,
	IssueStatusInProgress,
	IssueStatusResolved,
}

// String implements fmt.Stringer.
func (s IssueStatus) String() string {
	return string(s)
}

// IsValid reports whether the value matches the canonical issue_status enum.
func (s IssueStatus) IsValid() bool {
	for _, candidate := range validIssueStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseIssueStatus converts raw input into IssueStatus.
func ParseIssueStatus(value string) (IssueStatus, error) {
	for _, candidate := range validIssueStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid issue status %q", value)
}

// IssuePriority maps to the issue_priority enum in Postgres.
type IssuePriority string

const (
	IssuePriorityLow    IssuePriority = "low"
	IssuePriorityMedium IssuePriority = "medium"
	IssuePriorityHigh   IssuePriority = "high"
)

var validIssuePriorities = []IssuePriority{
	IssuePriorityLow,
	IssuePriorityMedium,
	IssuePriorityHigh,
}

// String implements fmt.Stringer.
func (p IssuePriority) String() string {
	return string(p)
}

// IsValid reports whether the value matches the canonical issue_priority enum.
func (p IssuePriority) IsValid() bool {
	for _, candidate := range validIssuePriorities {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseIssuePriority converts raw input into IssuePriority.
func ParseIssuePriority(value string) (IssuePriority, error) {
	for _, candidate := range validIssuePriorities {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid issue priority %q", value)
}
