package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingserrors "campusbook/internal/bookings/errors"
	"campusbook/pkg/config"
	mongotx "campusbook/pkg/db/mongo"
	"campusbook/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Bookings"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) error
	FindByKey(ctx context.Context, key string) (*model.Booking, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, error)
	FindByRoom(ctx context.Context, block, roomNo string, startTime, endTime time.Time) ([]*model.Booking, error)
	UpdatePurpose(ctx context.Context, key, purpose string) (*model.Booking, error)
	Resolve(ctx context.Context, key string, record model.ApprovalRecord) (*model.Booking, error)
	Delete(ctx context.Context, key string) error
	Count(ctx context.Context) (int64, error)
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

type mongoBookingRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

func NewMongoBookingRepository(cfg *config.Config) BookingRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBookingRepository{
		cfg:        cfg,
		db:         db,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

// withTimeout wraps the context with a timeout if not already in a transaction.
// A SessionContext cannot be wrapped without breaking transaction semantics,
// so it is returned unchanged with a no-op cancel.
func (r *mongoBookingRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}

	remaining := time.Until(deadline)
	if remaining < timeout {
		return context.WithTimeout(ctx, remaining)
	}

	return context.WithTimeout(ctx, timeout)
}

// Create inserts the booking under its composite key. A rejected booking
// frees its slot, so a stale REJECTED document with the same key is replaced
// by the new booking; any other occupant surfaces as ErrDuplicateKey. The
// single upserted replace makes that takeover atomic: the filter only
// matches a REJECTED occupant, and the upsert's _id collision catches a
// non-rejected one.
func (r *mongoBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	booking.CreatedAt = now
	booking.UpdatedAt = now

	filter := bson.M{"_id": booking.Key, "status": model.StatusRejected}
	opts := options.Replace().SetUpsert(true)

	_, err := r.collection.ReplaceOne(ctx, filter, booking, opts)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return bookingserrors.ErrDuplicateKey
		}
		return fmt.Errorf("failed to create booking: %w", err)
	}

	return nil
}

func (r *mongoBookingRepository) FindByKey(ctx context.Context, key string) (*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var booking model.Booking
	err := r.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookingserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}

	return &booking, nil
}

func (r *mongoBookingRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "start_time", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*model.Booking
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}

	return bookings, nil
}

// FindByRoom returns every booking on the room whose slot intersects the
// half-open window [startTime, endTime), regardless of status. The caller
// decides which statuses block.
func (r *mongoBookingRepository) FindByRoom(ctx context.Context, block, roomNo string, startTime, endTime time.Time) ([]*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"block":      block,
		"room_no":    roomNo,
		"start_time": bson.M{"$lt": endTime},
		"end_time":   bson.M{"$gt": startTime},
	}

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "start_time", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings by room: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*model.Booking
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}

	return bookings, nil
}

func (r *mongoBookingRepository) UpdatePurpose(ctx context.Context, key, purpose string) (*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"purpose":    purpose,
			"updated_at": time.Now().UTC().Truncate(time.Millisecond),
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var booking model.Booking
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": key}, update, opts).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookingserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update booking purpose: %w", err)
	}

	return &booking, nil
}

// Resolve appends the approval record and moves the booking to the
// decision's terminal status in a single conditional write. The filter on
// PENDING guards the state machine at the store level: a booking that was
// resolved in the meantime does not match and ErrAlreadyResolved is
// returned (ErrNotFound when the booking does not exist at all).
func (r *mongoBookingRepository) Resolve(ctx context.Context, key string, record model.ApprovalRecord) (*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	filter := bson.M{"_id": key, "status": model.StatusPending}
	update := bson.M{
		"$set": bson.M{
			"status":     record.Decision,
			"updated_at": time.Now().UTC().Truncate(time.Millisecond),
		},
		"$push": bson.M{"approvals": record},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var booking model.Booking
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&booking)
	if err == nil {
		return &booking, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to resolve booking: %w", err)
	}

	// No match: either absent or already resolved.
	count, countErr := r.collection.CountDocuments(ctx, bson.M{"_id": key})
	if countErr != nil {
		return nil, fmt.Errorf("failed to resolve booking: %w", countErr)
	}
	if count == 0 {
		return nil, bookingserrors.ErrNotFound
	}
	return nil, bookingserrors.ErrAlreadyResolved
}

func (r *mongoBookingRepository) Delete(ctx context.Context, key string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": key})
	if err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}

	if result.DeletedCount == 0 {
		return bookingserrors.ErrNotFound
	}

	return nil
}

func (r *mongoBookingRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	return count, nil
}

func (r *mongoBookingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
