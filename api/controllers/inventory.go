package controllers

import (
	"net/http"

	"github.com/rss-it/visitreport-backend/api/responses"
	"github.com/rss-it/visitreport-backend/api/validators"
	"github.com/rss-it/visitreport-backend/internal/inventory"
	pkgerrors "github.com/rss-it/visitreport-backend/pkg/errors"
	"github.com/rss-it/visitreport-backend/pkg/logger"
)

type inventoryAddRequest struct {
	Name string `json:"name" validate:"required"`
}

// inventoryPatchRequest mirrors the form's row editor. Counters arrive as
// numbers or strings and are sanitized server-side.
type inventoryPatchRequest struct {
	Name               *string `json:"name,omitempty" validate:"omitempty,min=1"`
	InUseByEmployees   any     `json:"in_use_by_employees,omitempty"`
	Training           any     `json:"training,omitempty"`
	ConferenceRoom     any     `json:"conference_room,omitempty"`
	GSMOffice          any     `json:"gsm_office,omitempty"`
	ProspectingStation any     `json:"prospecting_station,omitempty"`
	ApplicantStation   any     `json:"applicant_station,omitempty"`
	VisitorStation     any     `json:"visitor_station,omitempty"`
	Other              any     `json:"other,omitempty"`
	SparesOnFloor      any     `json:"spares_on_floor,omitempty"`
	SparesInStorage    any     `json:"spares_in_storage,omitempty"`
	Broken             any     `json:"broken,omitempty"`
}

func (r inventoryPatchRequest) toPatch() inventory.RowPatch {
	return inventory.RowPatch{
		Name:               r.Name,
		InUseByEmployees:   r.InUseByEmployees,
		Training:           r.Training,
		ConferenceRoom:     r.ConferenceRoom,
		GSMOffice:          r.GSMOffice,
		ProspectingStation: r.ProspectingStation,
		ApplicantStation:   r.ApplicantStation,
		VisitorStation:     r.VisitorStation,
		Other:              r.Other,
		SparesOnFloor:      r.SparesOnFloor,
		SparesInStorage:    r.SparesInStorage,
		Broken:             r.Broken,
	}
}

type inventoryImportRow struct {
	Name string `json:"name" validate:"required"`
	inventory.RawCounts
}

type inventoryImportRequest struct {
	Rows []inventoryImportRow `json:"rows" validate:"required,min=1,dive"`
}

// InventoryList returns the report's rows with derived totals and summary.
func InventoryList(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		reportID, err := parseIDParam(r, "reportId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.ListRows(r.Context(), reportID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}

// InventoryAdd appends a custom equipment row.
func InventoryAdd(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		reportID, err := parseIDParam(r, "reportId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload inventoryAddRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		row, err := svc.AddRow(r.Context(), reportID, payload.Name)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, row)
	}
}

// InventoryUpdate patches one row. The response echoes the stored values so
// the client can observe sanitizer coercion.
func InventoryUpdate(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		reportID, err := parseIDParam(r, "reportId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		rowID, err := parseIDParam(r, "rowId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload inventoryPatchRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		row, err := svc.UpdateRow(r.Context(), reportID, rowID, payload.toPatch())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, row)
	}
}

// InventoryDelete removes a custom row. Builtin rows are rejected.
func InventoryDelete(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		reportID, err := parseIDParam(r, "reportId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		rowID, err := parseIDParam(r, "rowId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteRow(r.Context(), reportID, rowID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// InventorySummary returns the report-level totals.
func InventorySummary(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		reportID, err := parseIDParam(r, "reportId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		summary, err := svc.ReportSummary(r.Context(), reportID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, summary)
	}
}

// InventoryImport bulk-appends rows from a legacy report export.
func InventoryImport(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		reportID, err := parseIDParam(r, "reportId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload inventoryImportRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows := make([]inventory.ImportRow, 0, len(payload.Rows))
		for _, imported := range payload.Rows {
			rows = append(rows, inventory.ImportRow{Name: imported.Name, Counts: imported.RawCounts})
		}

		page, err := svc.ImportRows(r.Context(), reportID, rows)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, page)
	}
}
