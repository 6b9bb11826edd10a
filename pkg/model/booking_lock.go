package model

import "time"

// BookingLock is an advisory lock document serializing mutations on a
// booking key (or on a whole room during create). Locks auto-expire so a
// crashed holder cannot wedge a slot.
type BookingLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
