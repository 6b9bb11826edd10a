package errors

import "errors"

var (
	ErrRoomNotFound = errors.New("room not found")

	ErrClubNotFound = errors.New("club not found")

	ErrDuplicateRoom = errors.New("room already exists for this block and room number")

	ErrDuplicateClub = errors.New("club already exists")

	ErrDuplicateMembership = errors.New("student is already a member of this club")
)
