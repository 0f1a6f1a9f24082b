package controllers

import (
	"net/http"
	"strings"

	"github.com/rss-it/visitreport-backend/api/responses"
	"github.com/rss-it/visitreport-backend/api/validators"
	"github.com/rss-it/visitreport-backend/internal/issues"
	pkgerrors "github.com/rss-it/visitreport-backend/pkg/errors"
	"github.com/rss-it/visitreport-backend/pkg/logger"
)

type issueStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// IssueList returns the report's findings, filterable by kind and status.
func IssueList(svc issues.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "issue service unavailable"))
			return
		}

		reportID, err := parseIDParam(r, "reportId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter := issues.ListFilter{
			Kind:   strings.TrimSpace(r.URL.Query().Get("kind")),
			Status: strings.TrimSpace(r.URL.Query().Get("status")),
		}

		listed, err := svc.List(r.Context(), reportID, filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, listed)
	}
}

// IssueCreate logs a new finding against the report.
func IssueCreate(svc issues.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "issue service unavailable"))
			return
		}

		reportID, err := parseIDParam(r, "reportId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload issues.CreateIssueInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		payload.Description = validators.SanitizeString(payload.Description, maxFreeTextLen)

		created, err := svc.Create(r.Context(), reportID, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// IssueUpdate edits title, description, or priority.
func IssueUpdate(svc issues.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "issue service unavailable"))
			return
		}

		issueID, err := parseIDParam(r, "issueId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload issues.UpdateIssueInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if payload.Description != nil {
			*payload.Description = validators.SanitizeString(*payload.Description, maxFreeTextLen)
		}

		updated, err := svc.Update(r.Context(), issueID, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, updated)
	}
}

// IssueDelete removes a finding.
func IssueDelete(svc issues.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "issue service unavailable"))
			return
		}

		issueID, err := parseIDParam(r, "issueId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), issueID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// IssueTransition moves a finding through the status state machine.
func IssueTransition(svc issues.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "issue service unavailable"))
			return
		}

		issueID, err := parseIDParam(r, "issueId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload issueStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		moved, err := svc.Transition(r.Context(), issueID, payload.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, moved)
	}
}
