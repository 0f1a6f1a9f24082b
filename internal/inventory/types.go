package inventory

import (
	"time"

	"github.com/google/uuid"

	"github.com/rss-it/visitreport-backend/pkg/db/models"
)

// RowDTO is one inventory row plus its derived totals.
type RowDTO struct {
	ID        uuid.UUID `json:"id"`
	ReportID  uuid.UUID `json:"report_id"`
	Name      string    `json:"name"`
	Builtin   bool      `json:"builtin"`
	Position  int       `json:"position"`
	Counts    Counts    `json:"counts"`
	Totals    RowTotals `json:"totals"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RowsPageDTO is the full inventory view for one report.
type RowsPageDTO struct {
	Rows    []RowDTO `json:"rows"`
	Summary Summary  `json:"summary"`
}

// RowPatch carries a partial update. Nil fields are left untouched; counter
// values may be numbers or strings and are sanitized before storage.
type RowPatch struct {
	Name               *string
	InUseByEmployees   any
	Training           any
	ConferenceRoom     any
	GSMOffice          any
	ProspectingStation any
	ApplicantStation   any
	VisitorStation     any
	Other              any
	SparesOnFloor      any
	SparesInStorage    any
	Broken             any
}

// ImportRow is one row of a legacy report export.
type ImportRow struct {
	Name   string
	Counts RawCounts
}

func countsFromModel(row models.InventoryRow) Counts {
	return Counts{
		InUseByEmployees:   row.InUseByEmployees,
		Training:           row.Training,
		ConferenceRoom:     row.ConferenceRoom,
		GSMOffice:          row.GSMOffice,
		ProspectingStation: row.ProspectingStation,
		ApplicantStation:   row.ApplicantStation,
		VisitorStation:     row.VisitorStation,
		Other:              row.Other,
		SparesOnFloor:      row.SparesOnFloor,
		SparesInStorage:    row.SparesInStorage,
		Broken:             row.Broken,
	}
}

func applyCounts(row *models.InventoryRow, counts Counts) {
	row.InUseByEmployees = counts.InUseByEmployees
	row.Training = counts.Training
	row.ConferenceRoom = counts.ConferenceRoom
	row.GSMOffice = counts.GSMOffice
	row.ProspectingStation = counts.ProspectingStation
	row.ApplicantStation = counts.ApplicantStation
	row.VisitorStation = counts.VisitorStation
	row.Other = counts.Other
	row.SparesOnFloor = counts.SparesOnFloor
	row.SparesInStorage = counts.SparesInStorage
	row.Broken = counts.Broken
}

func rowDTOFromModel(row models.InventoryRow) RowDTO {
	counts := countsFromModel(row)
	return RowDTO{
		ID:        row.ID,
		ReportID:  row.ReportID,
		Name:      row.Name,
		Builtin:   row.Builtin,
		Position:  row.Position,
		Counts:    counts,
		Totals:    Totals(counts),
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
