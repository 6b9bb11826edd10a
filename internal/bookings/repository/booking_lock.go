package repository

import (
	"context"
	"fmt"
	"time"

	bookingserrors "campusbook/internal/bookings/errors"
	"campusbook/pkg/config"
	"campusbook/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	LockCollectionName = "BookingLocks"
)

// BookingLockRepository provides advisory locks backed by a Mongo collection
// with a unique _id. Acquire fails fast when another request holds the lock;
// the expires_at TTL index reaps locks orphaned by a crashed process.
type BookingLockRepository interface {
	Acquire(ctx context.Context, lockID string) error
	Release(ctx context.Context, lockID string) error
}

type mongoBookingLockRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoBookingLockRepository(cfg *config.Config) BookingLockRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBookingLockRepository{
		cfg:        cfg,
		collection: db.Collection(LockCollectionName),
	}
}

func (r *mongoBookingLockRepository) Acquire(ctx context.Context, lockID string) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC()
	lock := model.BookingLock{
		ID:        lockID,
		ExpiresAt: now.Add(r.cfg.BookingLockTTL),
		CreatedAt: now,
	}

	_, err := r.collection.InsertOne(ctx, lock)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return bookingserrors.ErrLockHeld
		}
		return fmt.Errorf("failed to acquire booking lock: %w", err)
	}

	return nil
}

func (r *mongoBookingLockRepository) Release(ctx context.Context, lockID string) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": lockID})
	if err != nil {
		return fmt.Errorf("failed to release booking lock: %w", err)
	}

	return nil
}
