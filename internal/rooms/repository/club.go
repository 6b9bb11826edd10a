package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	roomserrors "campusbook/internal/rooms/errors"
	"campusbook/pkg/config"
	"campusbook/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	ClubCollectionName       = "Clubs"
	MembershipCollectionName = "ClubMemberships"
)

type ClubRepository interface {
	Create(ctx context.Context, club *model.Club) error
	FindByName(ctx context.Context, name string) (*model.Club, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.Club, error)
	Delete(ctx context.Context, name string) error

	AddMember(ctx context.Context, membership *model.ClubMembership) error
	RemoveMember(ctx context.Context, clubName, studentEmail string) error
	IsMember(ctx context.Context, clubName, studentEmail string) (bool, error)
}

type mongoClubRepository struct {
	cfg         *config.Config
	clubs       *mongo.Collection
	memberships *mongo.Collection
}

func NewMongoClubRepository(cfg *config.Config) ClubRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoClubRepository{
		cfg:         cfg,
		clubs:       db.Collection(ClubCollectionName),
		memberships: db.Collection(MembershipCollectionName),
	}
}

func (r *mongoClubRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
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

func (r *mongoClubRepository) Create(ctx context.Context, club *model.Club) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	club.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	_, err := r.clubs.InsertOne(ctx, club)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return roomserrors.ErrDuplicateClub
		}
		return fmt.Errorf("failed to create club: %w", err)
	}

	return nil
}

func (r *mongoClubRepository) FindByName(ctx context.Context, name string) (*model.Club, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var club model.Club
	err := r.clubs.FindOne(ctx, bson.M{"_id": name}).Decode(&club)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", roomserrors.ErrClubNotFound, name)
		}
		return nil, fmt.Errorf("failed to find club: %w", err)
	}

	return &club, nil
}

func (r *mongoClubRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Club, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.clubs.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query clubs: %w", err)
	}
	defer cursor.Close(ctx)

	var clubs []*model.Club
	if err = cursor.All(ctx, &clubs); err != nil {
		return nil, fmt.Errorf("failed to decode clubs: %w", err)
	}

	return clubs, nil
}

func (r *mongoClubRepository) Delete(ctx context.Context, name string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.clubs.DeleteOne(ctx, bson.M{"_id": name})
	if err != nil {
		return fmt.Errorf("failed to delete club: %w", err)
	}

	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", roomserrors.ErrClubNotFound, name)
	}

	return nil
}

func (r *mongoClubRepository) AddMember(ctx context.Context, membership *model.ClubMembership) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	membership.JoinedAt = time.Now().UTC().Truncate(time.Millisecond)

	_, err := r.memberships.InsertOne(ctx, membership)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return roomserrors.ErrDuplicateMembership
		}
		return fmt.Errorf("failed to add club member: %w", err)
	}

	return nil
}

func (r *mongoClubRepository) RemoveMember(ctx context.Context, clubName, studentEmail string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	_, err := r.memberships.DeleteOne(ctx, bson.M{"club_name": clubName, "student_email": studentEmail})
	if err != nil {
		return fmt.Errorf("failed to remove club member: %w", err)
	}

	return nil
}

func (r *mongoClubRepository) IsMember(ctx context.Context, clubName, studentEmail string) (bool, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.memberships.CountDocuments(ctx, bson.M{"club_name": clubName, "student_email": studentEmail})
	if err != nil {
		return false, fmt.Errorf("failed to check club membership: %w", err)
	}

	return count > 0, nil
}
