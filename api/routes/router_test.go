package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/rss-it/visitreport-backend/internal/inventory"
	"github.com/rss-it/visitreport-backend/internal/issues"
	"github.com/rss-it/visitreport-backend/internal/recycling"
	"github.com/rss-it/visitreport-backend/internal/reports"
	"github.com/rss-it/visitreport-backend/internal/storage"
	"github.com/rss-it/visitreport-backend/pkg/config"
	"github.com/rss-it/visitreport-backend/pkg/metrics"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubReportService struct{}

func (stubReportService) Create(context.Context, reports.CreateReportInput) (reports.ReportDTO, error) {
	return reports.ReportDTO{ID: uuid.New()}, nil
}

func (stubReportService) List(context.Context, int, int) ([]reports.ReportDTO, error) {
	return nil, nil
}

func (stubReportService) Get(context.Context, uuid.UUID) (reports.ReportDTO, error) {
	return reports.ReportDTO{}, nil
}

func (stubReportService) Update(context.Context, uuid.UUID, reports.UpdateReportInput) (reports.ReportDTO, error) {
	return reports.ReportDTO{}, nil
}

func (stubReportService) Delete(context.Context, uuid.UUID) error {
	return nil
}

func (stubReportService) Exists(context.Context, uuid.UUID) (bool, error) {
	return true, nil
}

type stubInventoryService struct{}

func (stubInventoryService) ListRows(context.Context, uuid.UUID) (inventory.RowsPageDTO, error) {
	return inventory.RowsPageDTO{}, nil
}

func (stubInventoryService) AddRow(context.Context, uuid.UUID, string) (inventory.RowDTO, error) {
	return inventory.RowDTO{}, nil
}

func (stubInventoryService) UpdateRow(context.Context, uuid.UUID, uuid.UUID, inventory.RowPatch) (inventory.RowDTO, error) {
	return inventory.RowDTO{}, nil
}

func (stubInventoryService) DeleteRow(context.Context, uuid.UUID, uuid.UUID) error {
	return nil
}

func (stubInventoryService) ReportSummary(context.Context, uuid.UUID) (inventory.Summary, error) {
	return inventory.Summary{}, nil
}

func (stubInventoryService) ImportRows(context.Context, uuid.UUID, []inventory.ImportRow) (inventory.RowsPageDTO, error) {
	return inventory.RowsPageDTO{}, nil
}

type stubStorageService struct{}

func (stubStorageService) ListRacks(context.Context, uuid.UUID) ([]storage.RackDTO, error) {
	return nil, nil
}

func (stubStorageService) CreateRack(context.Context, uuid.UUID, storage.CreateRackInput) (storage.RackDTO, error) {
	return storage.RackDTO{}, nil
}

func (stubStorageService) UpdateRack(context.Context, uuid.UUID, storage.UpdateRackInput) (storage.RackDTO, error) {
	return storage.RackDTO{}, nil
}

func (stubStorageService) DeleteRack(context.Context, uuid.UUID) error {
	return nil
}

func (stubStorageService) Layout(context.Context, uuid.UUID) (storage.LayoutDTO, error) {
	return storage.LayoutDTO{}, nil
}

func (stubStorageService) AddDevice(context.Context, uuid.UUID, storage.AddDeviceInput) (storage.DeviceDTO, error) {
	return storage.DeviceDTO{}, nil
}

func (stubStorageService) RemoveDevice(context.Context, uuid.UUID) error {
	return nil
}

type stubIssueService struct{}

func (stubIssueService) List(context.Context, uuid.UUID, issues.ListFilter) ([]issues.IssueDTO, error) {
	return nil, nil
}

func (stubIssueService) Create(context.Context, uuid.UUID, issues.CreateIssueInput) (issues.IssueDTO, error) {
	return issues.IssueDTO{}, nil
}

func (stubIssueService) Update(context.Context, uuid.UUID, issues.UpdateIssueInput) (issues.IssueDTO, error) {
	return issues.IssueDTO{}, nil
}

func (stubIssueService) Delete(context.Context, uuid.UUID) error {
	return nil
}

func (stubIssueService) Transition(context.Context, uuid.UUID, string) (issues.IssueDTO, error) {
	return issues.IssueDTO{}, nil
}

type stubRecyclingService struct{}

func (stubRecyclingService) List(context.Context, uuid.UUID) ([]recycling.EntryDTO, error) {
	return nil, nil
}

func (stubRecyclingService) Create(context.Context, uuid.UUID, recycling.CreateEntryInput) (recycling.EntryDTO, error) {
	return recycling.EntryDTO{}, nil
}

func (stubRecyclingService) Update(context.Context, uuid.UUID, recycling.UpdateEntryInput) (recycling.EntryDTO, error) {
	return recycling.EntryDTO{}, nil
}

func (stubRecyclingService) Delete(context.Context, uuid.UUID) error {
	return nil
}

func (stubRecyclingService) Totals(context.Context, uuid.UUID) (recycling.TotalsDTO, error) {
	return recycling.TotalsDTO{}, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := &config.Config{}
	cfg.App.Env = "test"

	return NewRouter(
		cfg,
		nil,
		metrics.NewHTTPMetrics(),
		stubPinger{},
		stubPinger{},
		stubReportService{},
		stubInventoryService{},
		stubStorageService{},
		stubIssueService{},
		stubRecyclingService{},
	)
}

func TestRouterRoutes(t *testing.T) {
	router := newTestRouter(t)
	reportID := uuid.New().String()
	rackID := uuid.New().String()
	issueID := uuid.New().String()
	entryID := uuid.New().String()

	cases := []struct {
		method string
		path   string
		body   string
		status int
	}{
		{http.MethodGet, "/health/live", "", http.StatusOK},
		{http.MethodGet, "/health/ready", "", http.StatusOK},
		{http.MethodGet, "/metrics", "", http.StatusOK},
		{http.MethodGet, "/api/v1/reports", "", http.StatusOK},
		{http.MethodPost, "/api/v1/reports", `{"site_name":"a","technician_name":"b","visit_date":"2026-03-14"}`, http.StatusCreated},
		{http.MethodGet, "/api/v1/reports/" + reportID, "", http.StatusOK},
		{http.MethodGet, "/api/v1/reports/" + reportID + "/inventory", "", http.StatusOK},
		{http.MethodGet, "/api/v1/reports/" + reportID + "/inventory/summary", "", http.StatusOK},
		{http.MethodGet, "/api/v1/reports/" + reportID + "/racks", "", http.StatusOK},
		{http.MethodGet, "/api/v1/reports/" + reportID + "/issues", "", http.StatusOK},
		{http.MethodGet, "/api/v1/reports/" + reportID + "/recycling/totals", "", http.StatusOK},
		{http.MethodGet, "/api/v1/racks/" + rackID + "/layout", "", http.StatusOK},
		{http.MethodPost, "/api/v1/issues/" + issueID + "/status", `{"status":"resolved"}`, http.StatusOK},
		{http.MethodDelete, "/api/v1/recycling/" + entryID, "", http.StatusOK},
		{http.MethodGet, "/api/v1/nowhere", "", http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			var req *http.Request
			if tc.body == "" {
				req = httptest.NewRequest(tc.method, tc.path, nil)
			} else {
				req = httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
				req.Header.Set("Content-Type", "application/json")
			}
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			if rec.Code != tc.status {
				t.Fatalf("expected %d got %d (body %s)", tc.status, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestRouterRequestIDHeader(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Header().Get("X-Request-Id") == "" {
		t.Fatal("expected request id header to be set")
	}
}

func TestRouterMetricsObserved(t *testing.T) {
	httpMetrics := metrics.NewHTTPMetrics()
	cfg := &config.Config{}
	cfg.App.Env = "test"
	router := NewRouter(cfg, nil, httpMetrics, stubPinger{}, stubPinger{},
		stubReportService{}, stubInventoryService{}, stubStorageService{},
		stubIssueService{}, stubRecyclingService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	families, err := httpMetrics.Registry().Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	found := false
	for _, family := range families {
		if family.GetName() == "http_requests_total" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected http_requests_total to be registered")
	}
}
