package model

import "time"

// Room is reference data: a bookable room inside a location block.
// Approvers lists the emails allowed to resolve bookings for this room.
type Room struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty"`
	Block     string    `json:"block" bson:"block" validate:"required,min=1,max=50"`
	RoomNo    string    `json:"room_no" bson:"room_no" validate:"required,min=1,max=50"`
	Capacity  int       `json:"capacity" bson:"capacity" validate:"omitempty,min=1,max=1000"`
	Approvers []string  `json:"approvers" bson:"approvers" validate:"omitempty,dive,email"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Club is reference data: a student club with its own approver set, used
// when a booking is made on behalf of the club.
type Club struct {
	Name             string    `json:"name" bson:"_id" validate:"required,min=2,max=100"`
	FacultyHeadEmail string    `json:"faculty_head_email" bson:"faculty_head_email" validate:"required,email"`
	Approvers        []string  `json:"approvers" bson:"approvers" validate:"omitempty,dive,email"`
	CreatedAt        time.Time `json:"created_at" bson:"created_at"`
}

// ClubMembership links a student to a club.
type ClubMembership struct {
	StudentEmail string    `json:"student_email" bson:"student_email" validate:"required,email"`
	ClubName     string    `json:"club_name" bson:"club_name" validate:"required,min=2,max=100"`
	JoinedAt     time.Time `json:"joined_at" bson:"joined_at"`
}
