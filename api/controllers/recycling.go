package controllers

import (
	"net/http"

	"github.com/rss-it/visitreport-backend/api/responses"
	"github.com/rss-it/visitreport-backend/api/validators"
	"github.com/rss-it/visitreport-backend/internal/recycling"
	pkgerrors "github.com/rss-it/visitreport-backend/pkg/errors"
	"github.com/rss-it/visitreport-backend/pkg/logger"
)

// RecyclingList returns the report's recycling log.
func RecyclingList(svc recycling.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "recycling service unavailable"))
			return
		}

		reportID, err := parseIDParam(r, "reportId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entries, err := svc.List(r.Context(), reportID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, entries)
	}
}

// RecyclingCreate logs recycled equipment.
func RecyclingCreate(svc recycling.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "recycling service unavailable"))
			return
		}

		reportID, err := parseIDParam(r, "reportId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload recycling.CreateEntryInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		payload.Notes = validators.SanitizeString(payload.Notes, maxFreeTextLen)

		created, err := svc.Create(r.Context(), reportID, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// RecyclingUpdate patches one entry.
func RecyclingUpdate(svc recycling.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "recycling service unavailable"))
			return
		}

		entryID, err := parseIDParam(r, "entryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload recycling.UpdateEntryInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if payload.Notes != nil {
			*payload.Notes = validators.SanitizeString(*payload.Notes, maxFreeTextLen)
		}

		updated, err := svc.Update(r.Context(), entryID, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, updated)
	}
}

// RecyclingDelete removes one entry.
func RecyclingDelete(svc recycling.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "recycling service unavailable"))
			return
		}

		entryID, err := parseIDParam(r, "entryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), entryID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// RecyclingTotals returns the per-material rollup.
func RecyclingTotals(svc recycling.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "recycling service unavailable"))
			return
		}

		reportID, err := parseIDParam(r, "reportId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		totals, err := svc.Totals(r.Context(), reportID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, totals)
	}
}
