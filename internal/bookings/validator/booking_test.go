package validator

import (
	"testing"
	"time"

	"campusbook/pkg/logger"
	"campusbook/pkg/model"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{
		Level:     "info",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
}

func validBooking() *model.Booking {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	return &model.Booking{
		Block:        "A",
		RoomNo:       "101",
		StartTime:    start,
		EndTime:      start.Add(time.Hour),
		StudentEmail: "student@campus.edu",
		Purpose:      "seminar",
		Status:       model.StatusPending,
	}
}

func TestValidate_ValidBooking(t *testing.T) {
	v := NewBookingValidator(testLogger())

	if err := v.Validate(validBooking()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_InvalidBookings(t *testing.T) {
	v := NewBookingValidator(testLogger())

	tests := []struct {
		name   string
		mutate func(b *model.Booking)
	}{
		{"missing block", func(b *model.Booking) { b.Block = "" }},
		{"missing room", func(b *model.Booking) { b.RoomNo = "" }},
		{"missing student email", func(b *model.Booking) { b.StudentEmail = "" }},
		{"malformed student email", func(b *model.Booking) { b.StudentEmail = "not-an-email" }},
		{"end equals start", func(b *model.Booking) { b.EndTime = b.StartTime }},
		{"end before start", func(b *model.Booking) { b.EndTime = b.StartTime.Add(-time.Minute) }},
		{"unknown status", func(b *model.Booking) { b.Status = "MAYBE" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := validBooking()
			tt.mutate(b)
			if err := v.Validate(b); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestValidateApproval(t *testing.T) {
	v := NewBookingValidator(testLogger())

	valid := &model.ApprovalRecord{
		ApproverEmail: "approver@campus.edu",
		Decision:      model.StatusApproved,
	}
	if err := v.ValidateApproval(valid); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name   string
		record *model.ApprovalRecord
	}{
		{"missing email", &model.ApprovalRecord{Decision: model.StatusApproved}},
		{"malformed email", &model.ApprovalRecord{ApproverEmail: "nope", Decision: model.StatusRejected}},
		{"missing decision", &model.ApprovalRecord{ApproverEmail: "a@campus.edu"}},
		{"pending is not a decision", &model.ApprovalRecord{ApproverEmail: "a@campus.edu", Decision: model.StatusPending}},
		{"lowercase decision", &model.ApprovalRecord{ApproverEmail: "a@campus.edu", Decision: "approved"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := v.ValidateApproval(tt.record); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestValidatePurpose(t *testing.T) {
	v := NewBookingValidator(testLogger())

	if err := v.ValidatePurpose("updated agenda"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, purpose := range []string{"", "   ", "\t\n"} {
		if err := v.ValidatePurpose(purpose); err == nil {
			t.Errorf("expected error for purpose %q", purpose)
		}
	}
}

func TestValidationErrorsMessage(t *testing.T) {
	errs := ValidationErrors{
		{Field: "Block", Message: "Block is required"},
		{Field: "EndTime", Message: "EndTime must be after StartTime"},
	}

	msg := errs.Error()
	if msg == "" {
		t.Fatal("expected non-empty message")
	}
	if ValidationErrors(nil).Error() != "" {
		t.Error("empty error set should render as empty string")
	}
}
