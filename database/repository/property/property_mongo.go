package propertyRepo

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

// ErrNotFound is returned when no property matches the lookup.
var ErrNotFound = errors.New("property not found")

// PropertyRepository defines the interface for property data access.
type PropertyRepository interface {
	Create(ctx context.Context, property *models.Property) error
	GetByID(ctx context.Context, id string) (*models.Property, error)
	ListAvailable(ctx context.Context, city string) ([]models.Property, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Property, error)
	Update(ctx context.Context, property *models.Property) error
	SetAvailability(ctx context.Context, id, availability string) error
	AddPhoto(ctx context.Context, id, publicID string) error
}

// MongoPropertyRepo implements PropertyRepository using MongoDB.
type MongoPropertyRepo struct {
	coll *mongo.Collection
}

// NewMongoPropertyRepo creates a new instance of PropertyRepository using MongoDB.
func NewMongoPropertyRepo() PropertyRepository {
	coll := database.MongoClient.Database("roomhive").Collection("properties")
	repo := &MongoPropertyRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create property indexes: %v\n", err)
	}
	return repo
}

func (r *MongoPropertyRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
		{Keys: bson.D{{Key: "city", Value: 1}, {Key: "availability", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new property document.
func (r *MongoPropertyRepo) Create(ctx context.Context, property *models.Property) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	property.CreatedAt = now
	property.UpdatedAt = now
	if property.Availability == "" {
		property.Availability = models.PropertyAvailable
	}

	_, err := r.coll.InsertOne(ctx, property)
	if err != nil {
		return fmt.Errorf("failed to create property: %w", err)
	}
	return nil
}

// GetByID retrieves a property by its unique ID.
func (r *MongoPropertyRepo) GetByID(ctx context.Context, id string) (*models.Property, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var property models.Property
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&property)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch property %s: %w", id, err)
	}
	return &property, nil
}

// ListAvailable returns available properties, optionally filtered by city.
func (r *MongoPropertyRepo) ListAvailable(ctx context.Context, city string) ([]models.Property, error) {
	filter := bson.M{"availability": models.PropertyAvailable}
	if city != "" {
		filter["city"] = city
	}
	return r.list(ctx, filter)
}

// ListByOwner returns all of an owner's properties.
func (r *MongoPropertyRepo) ListByOwner(ctx context.Context, ownerID string) ([]models.Property, error) {
	return r.list(ctx, bson.M{"owner_id": ownerID})
}

func (r *MongoPropertyRepo) list(ctx context.Context, filter bson.M) ([]models.Property, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	defer cursor.Close(ctx)

	var properties []models.Property
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, fmt.Errorf("failed to decode properties: %w", err)
	}
	return properties, nil
}

// Update modifies an existing property document.
func (r *MongoPropertyRepo) Update(ctx context.Context, property *models.Property) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	property.UpdatedAt = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": property.ID}, bson.M{"$set": property})
	if err != nil {
		return fmt.Errorf("failed to update property %s: %w", property.ID, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetAvailability flips the availability flag on a property.
func (r *MongoPropertyRepo) SetAvailability(ctx context.Context, id, availability string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"availability": availability, "updated_at": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to set availability on property %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AddPhoto appends a storage public ID to the property's photo list.
func (r *MongoPropertyRepo) AddPhoto(ctx context.Context, id, publicID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{
		"$addToSet": bson.M{"photos": publicID},
		"$set":      bson.M{"updated_at": time.Now()},
	}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to add photo to property %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
