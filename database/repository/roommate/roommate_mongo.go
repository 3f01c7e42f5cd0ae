package roommateRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"roomhive/database"
	"roomhive/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when a user has no roommate profile.
var ErrNotFound = errors.New("roommate profile not found")

// RoommateRepository defines the interface for roommate profile data access.
type RoommateRepository interface {
	Upsert(ctx context.Context, profile *models.RoommateProfile) error
	GetByUserID(ctx context.Context, userID string) (*models.RoommateProfile, error)
	ListExcluding(ctx context.Context, userID string) ([]models.RoommateProfile, error)
}

// MongoRoommateRepo implements RoommateRepository using MongoDB.
type MongoRoommateRepo struct {
	coll *mongo.Collection
}

// NewMongoRoommateRepo creates a new instance of RoommateRepository using MongoDB.
func NewMongoRoommateRepo() RoommateRepository {
	coll := database.MongoClient.Database("roomhive").Collection("roommate_profiles")
	repo := &MongoRoommateRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create roommate indexes: %v\n", err)
	}
	return repo
}

// ensureIndexes enforces the one-profile-per-user invariant.
func (r *MongoRoommateRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Upsert creates or replaces the profile for its user.
func (r *MongoRoommateRepo) Upsert(ctx context.Context, profile *models.RoommateProfile) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	profile.UpdatedAt = now

	filter := bson.M{"user_id": profile.UserID}
	update := bson.M{
		"$set": bson.M{
			"age":        profile.Age,
			"budget":     profile.Budget,
			"habits":     profile.Habits,
			"vibe_score": profile.VibeScore,
			"bio":        profile.Bio,
			"updated_at": profile.UpdatedAt,
		},
		"$setOnInsert": bson.M{"created_at": now},
	}
	opts := options.Update().SetUpsert(true)

	if _, err := r.coll.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to upsert roommate profile for %s: %w", profile.UserID, err)
	}
	return nil
}

// GetByUserID retrieves the profile belonging to a user.
func (r *MongoRoommateRepo) GetByUserID(ctx context.Context, userID string) (*models.RoommateProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var profile models.RoommateProfile
	err := r.coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&profile)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch roommate profile for %s: %w", userID, err)
	}
	return &profile, nil
}

// ListExcluding returns every profile except the given user's own.
func (r *MongoRoommateRepo) ListExcluding(ctx context.Context, userID string) ([]models.RoommateProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"user_id": bson.M{"$ne": userID}}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list roommate profiles: %w", err)
	}
	defer cursor.Close(ctx)

	var profiles []models.RoommateProfile
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, fmt.Errorf("failed to decode roommate profiles: %w", err)
	}
	return profiles, nil
}
