package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rss-it/visitreport-backend/internal/inventory"
	pkgerrors "github.com/rss-it/visitreport-backend/pkg/errors"
)

type stubInventoryService struct {
	page    inventory.RowsPageDTO
	row     inventory.RowDTO
	summary inventory.Summary
	err     error

	lastPatch inventory.RowPatch
	lastRows  []inventory.ImportRow
}

func (s *stubInventoryService) ListRows(ctx context.Context, reportID uuid.UUID) (inventory.RowsPageDTO, error) {
	return s.page, s.err
}

func (s *stubInventoryService) AddRow(ctx context.Context, reportID uuid.UUID, name string) (inventory.RowDTO, error) {
	return s.row, s.err
}

func (s *stubInventoryService) UpdateRow(ctx context.Context, reportID, rowID uuid.UUID, patch inventory.RowPatch) (inventory.RowDTO, error) {
	s.lastPatch = patch
	return s.row, s.err
}

func (s *stubInventoryService) DeleteRow(ctx context.Context, reportID, rowID uuid.UUID) error {
	return s.err
}

func (s *stubInventoryService) ReportSummary(ctx context.Context, reportID uuid.UUID) (inventory.Summary, error) {
	return s.summary, s.err
}

func (s *stubInventoryService) ImportRows(ctx context.Context, reportID uuid.UUID, rows []inventory.ImportRow) (inventory.RowsPageDTO, error) {
	s.lastRows = rows
	return s.page, s.err
}

func requestWithParams(method, target string, body []byte, params map[string]string) *http.Request {
	var req *http.Request
	if body == nil {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
	}
	routeCtx := chi.NewRouteContext()
	for key, value := range params {
		routeCtx.URLParams.Add(key, value)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func TestInventoryListSuccess(t *testing.T) {
	reportID := uuid.New()
	svc := &stubInventoryService{
		page: inventory.RowsPageDTO{
			Rows:    []inventory.RowDTO{{ID: uuid.New(), ReportID: reportID, Name: "PCs", Builtin: true}},
			Summary: inventory.Summary{GrandTotal: 12},
		},
	}
	handler := InventoryList(svc, nil)

	req := requestWithParams(http.MethodGet, "/api/v1/reports/"+reportID.String()+"/inventory", nil,
		map[string]string{"reportId": reportID.String()})
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}

	var envelope struct {
		Data inventory.RowsPageDTO `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Summary.GrandTotal != 12 {
		t.Fatalf("expected grand total 12 got %d", envelope.Data.Summary.GrandTotal)
	}
}

func TestInventoryListInvalidReportID(t *testing.T) {
	handler := InventoryList(&stubInventoryService{}, nil)

	req := requestWithParams(http.MethodGet, "/api/v1/reports/nope/inventory", nil,
		map[string]string{"reportId": "nope"})
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestInventoryUpdatePassesRawCounterValues(t *testing.T) {
	reportID := uuid.New()
	rowID := uuid.New()
	svc := &stubInventoryService{row: inventory.RowDTO{ID: rowID}}
	handler := InventoryUpdate(svc, nil)

	payload := []byte(`{"in_use_by_employees": "3,000", "broken": -4}`)
	req := requestWithParams(http.MethodPatch,
		"/api/v1/reports/"+reportID.String()+"/inventory/"+rowID.String(), payload,
		map[string]string{"reportId": reportID.String(), "rowId": rowID.String()})
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if svc.lastPatch.InUseByEmployees != "3,000" {
		t.Fatalf("string counter should reach the service untouched, got %v", svc.lastPatch.InUseByEmployees)
	}
	if svc.lastPatch.Training != nil {
		t.Fatalf("absent counters must stay nil, got %v", svc.lastPatch.Training)
	}
}

func TestInventoryUpdateRejectsUnknownField(t *testing.T) {
	reportID := uuid.New()
	rowID := uuid.New()
	handler := InventoryUpdate(&stubInventoryService{}, nil)

	payload := []byte(`{"in_use": 3}`)
	req := requestWithParams(http.MethodPatch,
		"/api/v1/reports/"+reportID.String()+"/inventory/"+rowID.String(), payload,
		map[string]string{"reportId": reportID.String(), "rowId": rowID.String()})
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestInventoryDeleteBuiltinForbidden(t *testing.T) {
	reportID := uuid.New()
	rowID := uuid.New()
	svc := &stubInventoryService{err: pkgerrors.New(pkgerrors.CodeForbidden, "built-in inventory rows cannot be deleted")}
	handler := InventoryDelete(svc, nil)

	req := requestWithParams(http.MethodDelete,
		"/api/v1/reports/"+reportID.String()+"/inventory/"+rowID.String(), nil,
		map[string]string{"reportId": reportID.String(), "rowId": rowID.String()})
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", rec.Code)
	}
}

func TestInventoryAddMissingName(t *testing.T) {
	reportID := uuid.New()
	handler := InventoryAdd(&stubInventoryService{}, nil)

	req := requestWithParams(http.MethodPost,
		"/api/v1/reports/"+reportID.String()+"/inventory", []byte(`{}`),
		map[string]string{"reportId": reportID.String()})
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestInventoryImportLegacyShape(t *testing.T) {
	reportID := uuid.New()
	svc := &stubInventoryService{}
	handler := InventoryImport(svc, nil)

	payload := []byte(`{"rows": [{
		"name": "CRT Monitors",
		"in_use_by_employees": "15",
		"other_use": {"training": "2.7", "conference_room": "3,000"}
	}]}`)
	req := requestWithParams(http.MethodPost,
		"/api/v1/reports/"+reportID.String()+"/inventory/import", payload,
		map[string]string{"reportId": reportID.String()})
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", rec.Code)
	}
	if len(svc.lastRows) != 1 {
		t.Fatalf("expected 1 import row got %d", len(svc.lastRows))
	}
	if svc.lastRows[0].Counts.OtherUse == nil {
		t.Fatalf("nested other_use shape should survive decoding")
	}
	if svc.lastRows[0].Counts.OtherUse.ConferenceRoom != "3,000" {
		t.Fatalf("unexpected nested value %v", svc.lastRows[0].Counts.OtherUse.ConferenceRoom)
	}
}

func TestInventorySummary(t *testing.T) {
	reportID := uuid.New()
	svc := &stubInventoryService{summary: inventory.Summary{TotalInUse: 25, GrandTotal: 55}}
	handler := InventorySummary(svc, nil)

	req := requestWithParams(http.MethodGet,
		"/api/v1/reports/"+reportID.String()+"/inventory/summary", nil,
		map[string]string{"reportId": reportID.String()})
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}

	var envelope struct {
		Data inventory.Summary `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.GrandTotal != 55 {
		t.Fatalf("expected grand total 55 got %d", envelope.Data.GrandTotal)
	}
}
