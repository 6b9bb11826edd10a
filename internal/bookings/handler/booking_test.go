package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	apperrors "campusbook/pkg/errors"
	"campusbook/pkg/logger"
	"campusbook/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type mockBookingService struct {
	createFunc         func(ctx context.Context, booking *model.Booking) error
	getByKeyFunc       func(ctx context.Context, id model.BookingID) (*model.Booking, error)
	getAllFunc         func(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error)
	updatePurposeFunc  func(ctx context.Context, id model.BookingID, purpose string) (*model.Booking, error)
	deleteFunc         func(ctx context.Context, id model.BookingID) error
	recordApprovalFunc func(ctx context.Context, id model.BookingID, record *model.ApprovalRecord) (*model.Booking, error)
}

func (m *mockBookingService) Create(ctx context.Context, booking *model.Booking) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, booking)
	}
	return nil
}

func (m *mockBookingService) GetByKey(ctx context.Context, id model.BookingID) (*model.Booking, error) {
	if m.getByKeyFunc != nil {
		return m.getByKeyFunc(ctx, id)
	}
	return nil, apperrors.NotFoundWithKey("Booking", id.Key())
}

func (m *mockBookingService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error) {
	if m.getAllFunc != nil {
		return m.getAllFunc(ctx, limit, offset)
	}
	return []*model.Booking{}, 0, nil
}

func (m *mockBookingService) UpdatePurpose(ctx context.Context, id model.BookingID, purpose string) (*model.Booking, error) {
	if m.updatePurposeFunc != nil {
		return m.updatePurposeFunc(ctx, id, purpose)
	}
	return nil, apperrors.NotFoundWithKey("Booking", id.Key())
}

func (m *mockBookingService) Delete(ctx context.Context, id model.BookingID) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockBookingService) RecordApproval(ctx context.Context, id model.BookingID, record *model.ApprovalRecord) (*model.Booking, error) {
	if m.recordApprovalFunc != nil {
		return m.recordApprovalFunc(ctx, id, record)
	}
	return nil, apperrors.NotFoundWithKey("Booking", id.Key())
}

func newTestRouter(svc *mockBookingService) *httprouter.Router {
	log := logger.New(logger.Config{
		Level:     "info",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
	router := httprouter.New()
	NewBookingHandler(svc, log).RegisterRoutes(router)
	return router
}

func bookingPath(block, roomNo string, start time.Time) string {
	return "/api/v1/bookings/" + block + "/" + roomNo + "/" + url.PathEscape(start.Format(time.RFC3339))
}

func TestCreateHandler(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	svc := &mockBookingService{
		createFunc: func(ctx context.Context, booking *model.Booking) error {
			if booking.Block != "A" || booking.RoomNo != "101" {
				t.Errorf("unexpected booking: %+v", booking)
			}
			return nil
		},
	}
	router := newTestRouter(svc)

	body, _ := json.Marshal(model.Booking{
		Block:        "A",
		RoomNo:       "101",
		StartTime:    start,
		EndTime:      start.Add(time.Hour),
		StudentEmail: "student@campus.edu",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCreateHandler_MalformedBody(t *testing.T) {
	router := newTestRouter(&mockBookingService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", bytes.NewReader([]byte("{nope")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestCreateHandler_ConflictMapsTo409(t *testing.T) {
	svc := &mockBookingService{
		createFunc: func(ctx context.Context, booking *model.Booking) error {
			return apperrors.Conflict("slot taken")
		},
	}
	router := newTestRouter(svc)

	body, _ := json.Marshal(model.Booking{Block: "A", RoomNo: "101"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", rec.Code)
	}
}

func TestGetByKeyHandler(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	id, _ := model.NewBookingID("A", "101", start)

	svc := &mockBookingService{
		getByKeyFunc: func(ctx context.Context, got model.BookingID) (*model.Booking, error) {
			if !got.Equal(id) {
				t.Errorf("unexpected id: %+v", got)
			}
			return &model.Booking{
				Key:    id.Key(),
				Block:  "A",
				RoomNo: "101",
				Status: model.StatusPending,
			}, nil
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, bookingPath("A", "101", start), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data model.Booking `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Data.Status != model.StatusPending {
		t.Errorf("unexpected status: %s", resp.Data.Status)
	}
}

func TestGetByKeyHandler_AbsentMapsTo404(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	router := newTestRouter(&mockBookingService{})

	req := httptest.NewRequest(http.MethodGet, bookingPath("A", "101", start), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestGetByKeyHandler_BadStartTime(t *testing.T) {
	router := newTestRouter(&mockBookingService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/A/101/march-10th", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestUpdatePurposeHandler(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	svc := &mockBookingService{
		updatePurposeFunc: func(ctx context.Context, id model.BookingID, purpose string) (*model.Booking, error) {
			if purpose != "new agenda" {
				t.Errorf("unexpected purpose: %q", purpose)
			}
			return &model.Booking{Key: id.Key(), Purpose: purpose}, nil
		},
	}
	router := newTestRouter(svc)

	body := []byte(`{"purpose":"new agenda"}`)
	req := httptest.NewRequest(http.MethodPut, bookingPath("A", "101", start)+"/purpose", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestDeleteHandler(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	svc := &mockBookingService{
		deleteFunc: func(ctx context.Context, id model.BookingID) error {
			return nil
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodDelete, bookingPath("A", "101", start), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}
}

func TestRecordApprovalHandler(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	svc := &mockBookingService{
		recordApprovalFunc: func(ctx context.Context, id model.BookingID, record *model.ApprovalRecord) (*model.Booking, error) {
			if record.Decision != "APPROVED" {
				t.Errorf("unexpected decision: %s", record.Decision)
			}
			return &model.Booking{Key: id.Key(), Status: model.StatusApproved}, nil
		},
	}
	router := newTestRouter(svc)

	body := []byte(`{"approver_email":"approver@campus.edu","decision":"APPROVED","comment":"ok"}`)
	req := httptest.NewRequest(http.MethodPost, bookingPath("A", "101", start)+"/approvals", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRecordApprovalHandler_ForbiddenMapsTo403(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	svc := &mockBookingService{
		recordApprovalFunc: func(ctx context.Context, id model.BookingID, record *model.ApprovalRecord) (*model.Booking, error) {
			return nil, apperrors.Forbidden("not an approver")
		},
	}
	router := newTestRouter(svc)

	body := []byte(`{"approver_email":"impostor@campus.edu","decision":"APPROVED"}`)
	req := httptest.NewRequest(http.MethodPost, bookingPath("A", "101", start)+"/approvals", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", rec.Code)
	}
}
