package reports

import (
	"time"

	"github.com/google/uuid"

	"github.com/rss-it/visitreport-backend/pkg/db/models"
)

// ReportDTO is the API view of one visit report.
type ReportDTO struct {
	ID             uuid.UUID `json:"id"`
	SiteName       string    `json:"site_name"`
	OfficeLocation string    `json:"office_location"`
	TechnicianName string    `json:"technician_name"`
	VisitDate      string    `json:"visit_date"`
	Notes          string    `json:"notes"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CreateReportInput carries the fields required to open a new report.
type CreateReportInput struct {
	SiteName       string `json:"site_name" validate:"required"`
	OfficeLocation string `json:"office_location"`
	TechnicianName string `json:"technician_name" validate:"required"`
	VisitDate      string `json:"visit_date" validate:"required"`
	Notes          string `json:"notes"`
}

// UpdateReportInput is a partial update. Nil fields are left untouched.
type UpdateReportInput struct {
	SiteName       *string `json:"site_name" validate:"omitempty,min=1"`
	OfficeLocation *string `json:"office_location"`
	TechnicianName *string `json:"technician_name" validate:"omitempty,min=1"`
	VisitDate      *string `json:"visit_date"`
	Notes          *string `json:"notes"`
}

// visitDateLayout is the wire format for visit dates.
const visitDateLayout = "2006-01-02"

func dtoFromModel(report models.Report) ReportDTO {
	return ReportDTO{
		ID:             report.ID,
		SiteName:       report.SiteName,
		OfficeLocation: report.OfficeLocation,
		TechnicianName: report.TechnicianName,
		VisitDate:      report.VisitDate.Format(visitDateLayout),
		Notes:          report.Notes,
		CreatedAt:      report.CreatedAt,
		UpdatedAt:      report.UpdatedAt,
	}
}
