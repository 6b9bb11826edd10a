package model

import (
	"errors"
	"testing"
	"time"
)

func TestNewBookingID_RequiresAllComponents(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		block  string
		roomNo string
		start  time.Time
	}{
		{"empty block", "", "101", start},
		{"empty room", "A", "", start},
		{"zero start time", "A", "101", time.Time{}},
		{"separator in block", "A|B", "101", start},
		{"separator in room", "A", "10|1", start},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBookingID(tt.block, tt.roomNo, tt.start)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, ErrInvalidIdentifier) {
				t.Errorf("expected ErrInvalidIdentifier, got %v", err)
			}
		})
	}
}

func TestNewBookingID_Valid(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	id, err := NewBookingID("A", "101", start)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id.Block != "A" || id.RoomNo != "101" || !id.StartTime.Equal(start) {
		t.Errorf("unexpected identifier: %+v", id)
	}
}

func TestBookingID_KeyIsCanonicalAcrossTimezones(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	utcStart := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	istStart := utcStart.In(loc)

	utcID, err := NewBookingID("A", "101", utcStart)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	istID, err := NewBookingID("A", "101", istStart)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !utcID.Equal(istID) {
		t.Error("identifiers for the same instant should be equal")
	}
	if utcID.Key() != istID.Key() {
		t.Errorf("keys differ: %q vs %q", utcID.Key(), istID.Key())
	}
}

func TestBookingID_EqualityIsExact(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	base, _ := NewBookingID("A", "101", start)

	differentBlock, _ := NewBookingID("B", "101", start)
	differentRoom, _ := NewBookingID("A", "102", start)
	differentCase, _ := NewBookingID("a", "101", start)
	differentTime, _ := NewBookingID("A", "101", start.Add(time.Nanosecond))

	for name, other := range map[string]BookingID{
		"different block": differentBlock,
		"different room":  differentRoom,
		"different case":  differentCase,
		"different time":  differentTime,
	} {
		if base.Equal(other) {
			t.Errorf("%s: identifiers should not be equal", name)
		}
	}

	same, _ := NewBookingID("A", "101", start)
	if !base.Equal(same) {
		t.Error("identical identifiers should be equal")
	}
}

func TestParseBookingKey_RoundTrip(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)
	id, _ := NewBookingID("A", "101", start)

	parsed, err := ParseBookingKey(id.Key())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !parsed.Equal(id) {
		t.Errorf("round trip mismatch: %+v vs %+v", parsed, id)
	}
}

func TestParseBookingKey_Invalid(t *testing.T) {
	tests := []string{
		"",
		"A",
		"A|101",
		"A|101|not-a-time",
		"A|101|2026-03-10T09:00:00Z|extra",
	}

	for _, key := range tests {
		if _, err := ParseBookingKey(key); err == nil {
			t.Errorf("expected error for key %q", key)
		}
	}
}
