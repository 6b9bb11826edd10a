package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidIdentifier = errors.New("invalid booking identifier")

const keySeparator = "|"

// BookingID is the composite key of a booking: location block, room number
// and slot start time. Immutable once constructed; equality is structural
// over all three components with no implicit timezone normalization.
type BookingID struct {
	Block     string    `json:"block"`
	RoomNo    string    `json:"room_no"`
	StartTime time.Time `json:"start_time"`
}

// NewBookingID validates and constructs a composite identifier.
func NewBookingID(block, roomNo string, startTime time.Time) (BookingID, error) {
	if block == "" {
		return BookingID{}, fmt.Errorf("%w: block is empty", ErrInvalidIdentifier)
	}
	if roomNo == "" {
		return BookingID{}, fmt.Errorf("%w: room number is empty", ErrInvalidIdentifier)
	}
	if strings.Contains(block, keySeparator) || strings.Contains(roomNo, keySeparator) {
		return BookingID{}, fmt.Errorf("%w: components must not contain %q", ErrInvalidIdentifier, keySeparator)
	}
	if startTime.IsZero() {
		return BookingID{}, fmt.Errorf("%w: start time is zero", ErrInvalidIdentifier)
	}
	return BookingID{Block: block, RoomNo: roomNo, StartTime: startTime}, nil
}

// Key renders the canonical string form used as the store key
// ("block|room|start"). The timestamp is rendered in UTC so that two ids
// that are Equal always produce the same key.
func (id BookingID) Key() string {
	return strings.Join([]string{
		id.Block,
		id.RoomNo,
		id.StartTime.UTC().Format(time.RFC3339Nano),
	}, keySeparator)
}

// Equal compares all three components. Timestamps compare by instant.
func (id BookingID) Equal(other BookingID) bool {
	return id.Block == other.Block &&
		id.RoomNo == other.RoomNo &&
		id.StartTime.Equal(other.StartTime)
}

func (id BookingID) IsZero() bool {
	return id.Block == "" && id.RoomNo == "" && id.StartTime.IsZero()
}

func (id BookingID) String() string {
	return id.Key()
}

// ParseBookingKey is the inverse of Key.
func ParseBookingKey(key string) (BookingID, error) {
	parts := strings.Split(key, keySeparator)
	if len(parts) != 3 {
		return BookingID{}, fmt.Errorf("%w: expected 3 components, got %d", ErrInvalidIdentifier, len(parts))
	}
	start, err := time.Parse(time.RFC3339Nano, parts[2])
	if err != nil {
		return BookingID{}, fmt.Errorf("%w: bad start time %q", ErrInvalidIdentifier, parts[2])
	}
	return NewBookingID(parts[0], parts[1], start)
}
