package service

import (
	"context"
	"errors"
	"fmt"

	roomserrors "campusbook/internal/rooms/errors"
	"campusbook/internal/rooms/repository"
	"campusbook/pkg/config"
	apperrors "campusbook/pkg/errors"
	"campusbook/pkg/model"
	"campusbook/pkg/sanitizer"

	"github.com/go-playground/validator/v10"
)

// RoomService manages the reference data bookings are checked against:
// rooms, clubs and club memberships.
type RoomService interface {
	CreateRoom(ctx context.Context, room *model.Room) error
	GetRoom(ctx context.Context, block, roomNo string) (*model.Room, error)
	GetAllRooms(ctx context.Context, limit int, offset int64) ([]*model.Room, int64, error)
	DeleteRoom(ctx context.Context, block, roomNo string) error

	CreateClub(ctx context.Context, club *model.Club) error
	GetClub(ctx context.Context, name string) (*model.Club, error)
	GetAllClubs(ctx context.Context, limit int, offset int64) ([]*model.Club, error)
	AddClubMember(ctx context.Context, membership *model.ClubMembership) error
	RemoveClubMember(ctx context.Context, clubName, studentEmail string) error

	RoomExists(ctx context.Context, block, roomNo string) (bool, error)
	AuthorizedApprovers(ctx context.Context, block, roomNo, clubName string) ([]string, error)
	IsClubMember(ctx context.Context, clubName, studentEmail string) (bool, error)
}

type roomService struct {
	rooms    repository.RoomRepository
	clubs    repository.ClubRepository
	validate *validator.Validate
	cfg      *config.Config
}

func NewRoomService(
	rooms repository.RoomRepository,
	clubs repository.ClubRepository,
	cfg *config.Config,
) RoomService {
	return &roomService{
		rooms:    rooms,
		clubs:    clubs,
		validate: validator.New(),
		cfg:      cfg,
	}
}

func (s *roomService) CreateRoom(ctx context.Context, room *model.Room) error {
	room.Block = sanitizer.TrimAndNormalize(room.Block)
	room.RoomNo = sanitizer.TrimAndNormalize(room.RoomNo)
	room.Approvers = sanitizer.NormalizeEmails(room.Approvers)

	if err := s.validate.Struct(room); err != nil {
		return apperrors.Validation("Room validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	if err := s.rooms.Create(ctx, room); err != nil {
		if errors.Is(err, roomserrors.ErrDuplicateRoom) {
			return apperrors.Conflict(fmt.Sprintf("Room %s/%s already exists", room.Block, room.RoomNo))
		}
		s.cfg.Log.Error("Failed to create room",
			"block", room.Block,
			"room_no", room.RoomNo,
			"error", err,
		)
		return apperrors.Internal("Failed to create room", err)
	}

	s.cfg.Log.Info("Room created",
		"id", room.ID,
		"block", room.Block,
		"room_no", room.RoomNo,
		"approvers", len(room.Approvers),
	)

	return nil
}

func (s *roomService) GetRoom(ctx context.Context, block, roomNo string) (*model.Room, error) {
	block = sanitizer.TrimAndNormalize(block)
	roomNo = sanitizer.TrimAndNormalize(roomNo)
	if block == "" || roomNo == "" {
		return nil, apperrors.InvalidInput("Block and room number cannot be empty")
	}

	room, err := s.rooms.FindByBlockRoom(ctx, block, roomNo)
	if err != nil {
		if errors.Is(err, roomserrors.ErrRoomNotFound) {
			return nil, apperrors.NotFoundWithKey("Room", block+"/"+roomNo)
		}
		s.cfg.Log.Error("Failed to get room",
			"block", block,
			"room_no", roomNo,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to get room", err)
	}

	return room, nil
}

func (s *roomService) GetAllRooms(ctx context.Context, limit int, offset int64) ([]*model.Room, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	rooms, err := s.rooms.FindAll(ctx, limit, offset)
	if err != nil {
		s.cfg.Log.Error("Failed to list rooms", "error", err)
		return nil, 0, apperrors.Internal("Failed to list rooms", err)
	}

	total, err := s.rooms.Count(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to count rooms", "error", err)
		return nil, 0, apperrors.Internal("Failed to count rooms", err)
	}

	return rooms, total, nil
}

func (s *roomService) DeleteRoom(ctx context.Context, block, roomNo string) error {
	block = sanitizer.TrimAndNormalize(block)
	roomNo = sanitizer.TrimAndNormalize(roomNo)
	if block == "" || roomNo == "" {
		return apperrors.InvalidInput("Block and room number cannot be empty")
	}

	if err := s.rooms.Delete(ctx, block, roomNo); err != nil {
		if errors.Is(err, roomserrors.ErrRoomNotFound) {
			return apperrors.NotFoundWithKey("Room", block+"/"+roomNo)
		}
		s.cfg.Log.Error("Failed to delete room",
			"block", block,
			"room_no", roomNo,
			"error", err,
		)
		return apperrors.Internal("Failed to delete room", err)
	}

	s.cfg.Log.Info("Room deleted", "block", block, "room_no", roomNo)

	return nil
}

func (s *roomService) CreateClub(ctx context.Context, club *model.Club) error {
	club.Name = sanitizer.TrimAndNormalize(club.Name)
	club.FacultyHeadEmail = sanitizer.NormalizeEmail(club.FacultyHeadEmail)
	club.Approvers = sanitizer.NormalizeEmails(club.Approvers)

	if err := s.validate.Struct(club); err != nil {
		return apperrors.Validation("Club validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	if err := s.clubs.Create(ctx, club); err != nil {
		if errors.Is(err, roomserrors.ErrDuplicateClub) {
			return apperrors.Conflict(fmt.Sprintf("Club %q already exists", club.Name))
		}
		s.cfg.Log.Error("Failed to create club", "name", club.Name, "error", err)
		return apperrors.Internal("Failed to create club", err)
	}

	s.cfg.Log.Info("Club created",
		"name", club.Name,
		"faculty_head", club.FacultyHeadEmail,
		"approvers", len(club.Approvers),
	)

	return nil
}

func (s *roomService) GetClub(ctx context.Context, name string) (*model.Club, error) {
	name = sanitizer.TrimAndNormalize(name)
	if name == "" {
		return nil, apperrors.InvalidInput("Club name cannot be empty")
	}

	club, err := s.clubs.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, roomserrors.ErrClubNotFound) {
			return nil, apperrors.NotFoundWithKey("Club", name)
		}
		s.cfg.Log.Error("Failed to get club", "name", name, "error", err)
		return nil, apperrors.Internal("Failed to get club", err)
	}

	return club, nil
}

func (s *roomService) GetAllClubs(ctx context.Context, limit int, offset int64) ([]*model.Club, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	clubs, err := s.clubs.FindAll(ctx, limit, offset)
	if err != nil {
		s.cfg.Log.Error("Failed to list clubs", "error", err)
		return nil, apperrors.Internal("Failed to list clubs", err)
	}

	return clubs, nil
}

func (s *roomService) AddClubMember(ctx context.Context, membership *model.ClubMembership) error {
	membership.ClubName = sanitizer.TrimAndNormalize(membership.ClubName)
	membership.StudentEmail = sanitizer.NormalizeEmail(membership.StudentEmail)

	if err := s.validate.Struct(membership); err != nil {
		return apperrors.Validation("Membership validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	// Membership has to reference an existing club.
	if _, err := s.GetClub(ctx, membership.ClubName); err != nil {
		return err
	}

	if err := s.clubs.AddMember(ctx, membership); err != nil {
		if errors.Is(err, roomserrors.ErrDuplicateMembership) {
			return apperrors.Conflict(fmt.Sprintf(
				"%s is already a member of %q",
				membership.StudentEmail, membership.ClubName,
			))
		}
		s.cfg.Log.Error("Failed to add club member",
			"club", membership.ClubName,
			"student", membership.StudentEmail,
			"error", err,
		)
		return apperrors.Internal("Failed to add club member", err)
	}

	s.cfg.Log.Info("Club member added",
		"club", membership.ClubName,
		"student", membership.StudentEmail,
	)

	return nil
}

func (s *roomService) RemoveClubMember(ctx context.Context, clubName, studentEmail string) error {
	clubName = sanitizer.TrimAndNormalize(clubName)
	studentEmail = sanitizer.NormalizeEmail(studentEmail)
	if clubName == "" || studentEmail == "" {
		return apperrors.InvalidInput("Club name and student email cannot be empty")
	}

	if err := s.clubs.RemoveMember(ctx, clubName, studentEmail); err != nil {
		s.cfg.Log.Error("Failed to remove club member",
			"club", clubName,
			"student", studentEmail,
			"error", err,
		)
		return apperrors.Internal("Failed to remove club member", err)
	}

	return nil
}

func (s *roomService) RoomExists(ctx context.Context, block, roomNo string) (bool, error) {
	_, err := s.rooms.FindByBlockRoom(ctx, block, roomNo)
	if err != nil {
		if errors.Is(err, roomserrors.ErrRoomNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check room existence: %w", err)
	}
	return true, nil
}

// AuthorizedApprovers returns the union of the room's approvers and, when
// the booking is on behalf of a club, that club's approvers and faculty
// head. Emails are normalized; duplicates collapse.
func (s *roomService) AuthorizedApprovers(ctx context.Context, block, roomNo, clubName string) ([]string, error) {
	room, err := s.rooms.FindByBlockRoom(ctx, block, roomNo)
	if err != nil {
		if errors.Is(err, roomserrors.ErrRoomNotFound) {
			return nil, apperrors.NotFoundWithKey("Room", block+"/"+roomNo)
		}
		return nil, fmt.Errorf("failed to load room approvers: %w", err)
	}

	approvers := append([]string(nil), room.Approvers...)

	if clubName != "" {
		club, err := s.clubs.FindByName(ctx, clubName)
		if err != nil {
			if !errors.Is(err, roomserrors.ErrClubNotFound) {
				return nil, fmt.Errorf("failed to load club approvers: %w", err)
			}
			// Unknown club on the booking: fall back to room approvers only.
		} else {
			approvers = append(approvers, club.Approvers...)
			approvers = append(approvers, club.FacultyHeadEmail)
		}
	}

	return sanitizer.NormalizeEmails(approvers), nil
}

func (s *roomService) IsClubMember(ctx context.Context, clubName, studentEmail string) (bool, error) {
	return s.clubs.IsMember(ctx, clubName, studentEmail)
}
