package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	bookingserrors "campusbook/internal/bookings/errors"
	"campusbook/internal/bookings/events"
	"campusbook/internal/bookings/repository"
	"campusbook/internal/bookings/validator"
	"campusbook/pkg/config"
	apperrors "campusbook/pkg/errors"
	"campusbook/pkg/model"
	"campusbook/pkg/sanitizer"

	"go.mongodb.org/mongo-driver/mongo"
)

// ReferenceData is the slice of the rooms domain the booking core consumes.
type ReferenceData interface {
	RoomExists(ctx context.Context, block, roomNo string) (bool, error)
	AuthorizedApprovers(ctx context.Context, block, roomNo, clubName string) ([]string, error)
}

type BookingService interface {
	Create(ctx context.Context, booking *model.Booking) error
	GetByKey(ctx context.Context, id model.BookingID) (*model.Booking, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error)
	UpdatePurpose(ctx context.Context, id model.BookingID, purpose string) (*model.Booking, error)
	Delete(ctx context.Context, id model.BookingID) error
	RecordApproval(ctx context.Context, id model.BookingID, record *model.ApprovalRecord) (*model.Booking, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	locks     repository.BookingLockRepository
	refdata   ReferenceData
	validator *validator.BookingValidator
	publisher events.Publisher
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	locks repository.BookingLockRepository,
	refdata ReferenceData,
	bookingValidator *validator.BookingValidator,
	publisher events.Publisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		locks:     locks,
		refdata:   refdata,
		validator: bookingValidator,
		publisher: publisher,
		cfg:       cfg,
	}
}

// HasConflict reports whether the candidate's slot intersects any existing
// booking on the same room. PENDING and APPROVED bookings both block;
// REJECTED ones free their slot.
func HasConflict(candidate *model.Booking, existing []*model.Booking) bool {
	for _, other := range existing {
		if other.Status == model.StatusRejected {
			continue
		}
		if other.Key == candidate.Key {
			continue
		}
		if candidate.Overlaps(other) {
			return true
		}
	}
	return false
}

func (s *bookingService) Create(ctx context.Context, booking *model.Booking) error {
	s.sanitize(booking)

	if booking.EndTime.IsZero() && !booking.StartTime.IsZero() {
		booking.EndTime = booking.StartTime.Add(s.cfg.DefaultBookingDuration)
	}
	booking.Status = model.StatusPending
	booking.Approvals = []model.ApprovalRecord{}

	id, err := model.NewBookingID(booking.Block, booking.RoomNo, booking.StartTime)
	if err != nil {
		return apperrors.InvalidInput("Block, room number and start time are required")
	}
	booking.Key = id.Key()

	if err := s.validator.Validate(booking); err != nil {
		s.cfg.Log.Warn("Booking validation failed",
			"key", booking.Key,
			"error", err,
		)
		return apperrors.Validation("Booking validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	exists, err := s.refdata.RoomExists(ctx, booking.Block, booking.RoomNo)
	if err != nil {
		s.cfg.Log.Error("Failed to check room existence",
			"block", booking.Block,
			"room_no", booking.RoomNo,
			"error", err,
		)
		return apperrors.Internal("Failed to verify room", err)
	}
	if !exists {
		return apperrors.NotFoundWithKey("Room", booking.Block+"/"+booking.RoomNo)
	}

	// Room-level lock serializes the conflict check against concurrent
	// creates for the same room. Cross-room creates proceed in parallel.
	unlock, err := s.acquireLock(ctx, roomLockID(booking.Block, booking.RoomNo))
	if err != nil {
		return err
	}
	defer unlock()

	// The conflict check and the insert commit or roll back together.
	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		overlapping, err := s.repo.FindByRoom(sessCtx, booking.Block, booking.RoomNo, booking.StartTime, booking.EndTime)
		if err != nil {
			s.cfg.Log.Error("Failed to query overlapping bookings",
				"key", booking.Key,
				"error", err,
			)
			return apperrors.Internal("Failed to check booking conflicts", err)
		}

		if HasConflict(booking, overlapping) {
			return apperrors.Conflict(fmt.Sprintf(
				"Room %s/%s is already booked for an overlapping time slot",
				booking.Block, booking.RoomNo,
			))
		}

		if err := s.repo.Create(sessCtx, booking); err != nil {
			if errors.Is(err, bookingserrors.ErrDuplicateKey) {
				return apperrors.Conflict(fmt.Sprintf(
					"Booking already exists for room %s/%s at %s",
					booking.Block, booking.RoomNo, booking.StartTime.UTC().Format(time.RFC3339),
				))
			}
			s.cfg.Log.Error("Failed to create booking",
				"key", booking.Key,
				"error", err,
			)
			return apperrors.Internal("Failed to create booking", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.cfg.Log.Info("Booking created",
		"key", booking.Key,
		"student", booking.StudentEmail,
		"club", booking.ClubName,
		"start_time", booking.StartTime,
		"end_time", booking.EndTime,
	)

	s.publisher.BookingCreated(ctx, booking)

	return nil
}

func (s *bookingService) GetByKey(ctx context.Context, id model.BookingID) (*model.Booking, error) {
	if id.IsZero() {
		return nil, apperrors.InvalidInput("Booking identifier is incomplete")
	}

	booking, err := s.repo.FindByKey(ctx, id.Key())
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithKey("Booking", id.Key())
		}
		s.cfg.Log.Error("Failed to get booking",
			"key", id.Key(),
			"error", err,
		)
		return nil, apperrors.Internal("Failed to get booking", err)
	}

	return booking, nil
}

func (s *bookingService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	bookings, err := s.repo.FindAll(ctx, limit, offset)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings", "error", err)
		return nil, 0, apperrors.Internal("Failed to list bookings", err)
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to count bookings", "error", err)
		return nil, 0, apperrors.Internal("Failed to count bookings", err)
	}

	return bookings, total, nil
}

func (s *bookingService) UpdatePurpose(ctx context.Context, id model.BookingID, purpose string) (*model.Booking, error) {
	if id.IsZero() {
		return nil, apperrors.InvalidInput("Booking identifier is incomplete")
	}

	purpose = sanitizer.NormalizeText(purpose)
	if err := s.validator.ValidatePurpose(purpose); err != nil {
		return nil, apperrors.Validation("Purpose validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	unlock, err := s.acquireLock(ctx, id.Key())
	if err != nil {
		return nil, err
	}
	defer unlock()

	booking, err := s.repo.UpdatePurpose(ctx, id.Key(), purpose)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithKey("Booking", id.Key())
		}
		s.cfg.Log.Error("Failed to update booking purpose",
			"key", id.Key(),
			"error", err,
		)
		return nil, apperrors.Internal("Failed to update booking purpose", err)
	}

	s.cfg.Log.Info("Booking purpose updated", "key", id.Key())

	return booking, nil
}

// Delete removes a booking in any status. It is an administrative override,
// not part of the approval state machine.
func (s *bookingService) Delete(ctx context.Context, id model.BookingID) error {
	if id.IsZero() {
		return apperrors.InvalidInput("Booking identifier is incomplete")
	}

	unlock, err := s.acquireLock(ctx, id.Key())
	if err != nil {
		return err
	}
	defer unlock()

	booking, err := s.repo.FindByKey(ctx, id.Key())
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return apperrors.NotFoundWithKey("Booking", id.Key())
		}
		s.cfg.Log.Error("Failed to load booking for deletion",
			"key", id.Key(),
			"error", err,
		)
		return apperrors.Internal("Failed to delete booking", err)
	}

	if err := s.repo.Delete(ctx, id.Key()); err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return apperrors.NotFoundWithKey("Booking", id.Key())
		}
		s.cfg.Log.Error("Failed to delete booking",
			"key", id.Key(),
			"error", err,
		)
		return apperrors.Internal("Failed to delete booking", err)
	}

	s.cfg.Log.Info("Booking deleted",
		"key", id.Key(),
		"status", booking.Status,
	)

	s.publisher.BookingDeleted(ctx, booking)

	return nil
}

func (s *bookingService) RecordApproval(ctx context.Context, id model.BookingID, record *model.ApprovalRecord) (*model.Booking, error) {
	if id.IsZero() {
		return nil, apperrors.InvalidInput("Booking identifier is incomplete")
	}

	record.ApproverEmail = sanitizer.NormalizeEmail(record.ApproverEmail)
	record.Decision = strings.ToUpper(strings.TrimSpace(record.Decision))
	record.Comment = sanitizer.NormalizeText(record.Comment)

	// Key-level lock serializes two concurrent decisions on the same booking.
	unlock, err := s.acquireLock(ctx, id.Key())
	if err != nil {
		return nil, err
	}
	defer unlock()

	booking, err := s.repo.FindByKey(ctx, id.Key())
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithKey("Booking", id.Key())
		}
		s.cfg.Log.Error("Failed to load booking for approval",
			"key", id.Key(),
			"error", err,
		)
		return nil, apperrors.Internal("Failed to record approval", err)
	}

	if booking.IsResolved() {
		return nil, apperrors.InvalidState(fmt.Sprintf(
			"Booking is already %s", booking.Status,
		))
	}

	if err := s.validator.ValidateApproval(record); err != nil {
		return nil, apperrors.Validation("Approval validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	approvers, err := s.refdata.AuthorizedApprovers(ctx, booking.Block, booking.RoomNo, booking.ClubName)
	if err != nil {
		s.cfg.Log.Error("Failed to load authorized approvers",
			"key", id.Key(),
			"error", err,
		)
		return nil, apperrors.Internal("Failed to record approval", err)
	}

	if !contains(approvers, record.ApproverEmail) {
		s.cfg.Log.Warn("Approval rejected: approver not authorized",
			"key", id.Key(),
			"approver", record.ApproverEmail,
		)
		return nil, apperrors.Forbidden(fmt.Sprintf(
			"%s is not authorized to approve bookings for room %s/%s",
			record.ApproverEmail, booking.Block, booking.RoomNo,
		))
	}

	record.Timestamp = time.Now().UTC().Truncate(time.Millisecond)

	updated, err := s.repo.Resolve(ctx, id.Key(), *record)
	if err != nil {
		switch {
		case errors.Is(err, bookingserrors.ErrNotFound):
			return nil, apperrors.NotFoundWithKey("Booking", id.Key())
		case errors.Is(err, bookingserrors.ErrAlreadyResolved):
			return nil, apperrors.InvalidState("Booking has already been resolved")
		default:
			s.cfg.Log.Error("Failed to resolve booking",
				"key", id.Key(),
				"decision", record.Decision,
				"error", err,
			)
			return nil, apperrors.Internal("Failed to record approval", err)
		}
	}

	s.cfg.Log.Info("Booking resolved",
		"key", id.Key(),
		"decision", record.Decision,
		"approver", record.ApproverEmail,
	)

	s.publisher.BookingResolved(ctx, updated)

	return updated, nil
}

func (s *bookingService) sanitize(booking *model.Booking) {
	booking.Block = sanitizer.TrimAndNormalize(booking.Block)
	booking.RoomNo = sanitizer.TrimAndNormalize(booking.RoomNo)
	booking.StudentEmail = sanitizer.NormalizeEmail(booking.StudentEmail)
	booking.Purpose = sanitizer.NormalizeText(booking.Purpose)
	booking.ClubName = sanitizer.TrimAndNormalize(booking.ClubName)
}

func (s *bookingService) acquireLock(ctx context.Context, lockID string) (func(), error) {
	if err := s.locks.Acquire(ctx, lockID); err != nil {
		if errors.Is(err, bookingserrors.ErrLockHeld) {
			return nil, apperrors.Conflict("Booking slot is being modified by another request")
		}
		s.cfg.Log.Error("Failed to acquire booking lock",
			"lock_id", lockID,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to acquire booking lock", err)
	}

	return func() {
		// Release on a fresh context so a cancelled request still unlocks.
		releaseCtx, cancel := context.WithTimeout(context.Background(), s.cfg.WriteTimeout)
		defer cancel()
		if err := s.locks.Release(releaseCtx, lockID); err != nil {
			s.cfg.Log.Warn("Failed to release booking lock; TTL will reap it",
				"lock_id", lockID,
				"error", err,
			)
		}
	}, nil
}

func roomLockID(block, roomNo string) string {
	return block + "|" + roomNo
}

func contains(set []string, value string) bool {
	for _, v := range set {
		if v == value {
			return true
		}
	}
	return false
}
