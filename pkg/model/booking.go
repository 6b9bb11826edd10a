package model

import (
	"time"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// Booking is a reservation of a room for a half-open time slot
// [start_time, end_time), created by a student and resolved by an approver.
type Booking struct {
	Key          string           `json:"key,omitempty" bson:"_id,omitempty"`
	Block        string           `json:"block" bson:"block" validate:"required,min=1,max=50"`
	RoomNo       string           `json:"room_no" bson:"room_no" validate:"required,min=1,max=50"`
	StartTime    time.Time        `json:"start_time" bson:"start_time" validate:"required"`
	EndTime      time.Time        `json:"end_time" bson:"end_time" validate:"omitempty,gtfield=StartTime"`
	StudentEmail string           `json:"student_email" bson:"student_email" validate:"required,email"`
	Purpose      string           `json:"purpose" bson:"purpose" validate:"omitempty,max=500"`
	ClubName     string           `json:"club_name,omitempty" bson:"club_name,omitempty" validate:"omitempty,min=2,max=100"`
	Status       string           `json:"status" bson:"status" validate:"omitempty,oneof=PENDING APPROVED REJECTED"`
	Approvals    []ApprovalRecord `json:"approvals" bson:"approvals"`
	CreatedAt    time.Time        `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at" bson:"updated_at"`
}

// ApprovalRecord captures a single approve/reject decision. A booking is
// resolved by its first record; the slice shape is kept for audit.
type ApprovalRecord struct {
	ApproverEmail string    `json:"approver_email" bson:"approver_email" validate:"required,email"`
	Decision      string    `json:"decision" bson:"decision" validate:"required,oneof=APPROVED REJECTED"`
	Comment       string    `json:"comment,omitempty" bson:"comment,omitempty" validate:"omitempty,max=500"`
	Timestamp     time.Time `json:"timestamp" bson:"timestamp"`
}

// ID reconstructs the composite identifier from the stored fields.
func (b *Booking) ID() BookingID {
	return BookingID{Block: b.Block, RoomNo: b.RoomNo, StartTime: b.StartTime}
}

// IsResolved reports whether the booking reached a terminal status.
func (b *Booking) IsResolved() bool {
	return b.Status == StatusApproved || b.Status == StatusRejected
}

// Overlaps reports whether two bookings occupy intersecting half-open slots
// on the same room. Status is not consulted here; callers filter the
// conflict set themselves.
func (b *Booking) Overlaps(other *Booking) bool {
	if b.Block != other.Block || b.RoomNo != other.RoomNo {
		return false
	}
	return other.StartTime.Before(b.EndTime) && b.StartTime.Before(other.EndTime)
}

// ValidDecision reports whether s is one of the two recognized decisions.
func ValidDecision(s string) bool {
	return s == StatusApproved || s == StatusRejected
}
