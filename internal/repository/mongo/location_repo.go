package mongo

import (
	"context"
	"errors"
	"time"

	"f3region/site-api/internal/domain"
	"f3region/site-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const locationCollectionName = "locations"

// locationDocument is the stored shape of a Location.
type locationDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	MapLink      string             `bson:"mapLink"`
	Address      string             `bson:"address"`
	Description  string             `bson:"description"`
	Q            string             `bson:"q"`
	EmbedMapLink string             `bson:"embedMapLink"`
	ImageURL     string             `bson:"imageUrl"`
	PaxImageURL  string             `bson:"paxImageUrl"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
}

func (d locationDocument) toDomain() domain.Location {
	return domain.Location{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		MapLink:      d.MapLink,
		Address:      d.Address,
		Description:  d.Description,
		Q:            d.Q,
		EmbedMapLink: d.EmbedMapLink,
		ImageURL:     d.ImageURL,
		PaxImageURL:  d.PaxImageURL,
	}
}

// mongoLocationRepository implements repository.LocationRepository
type mongoLocationRepository struct {
	collection *mongo.Collection
}

// NewMongoLocationRepository creates a new Location repository backed by MongoDB.
func NewMongoLocationRepository(db *mongo.Database) repository.LocationRepository {
	return &mongoLocationRepository{
		collection: db.Collection(locationCollectionName),
	}
}

// FindAll returns every location sorted by name.
func (r *mongoLocationRepository) FindAll(ctx context.Context) ([]domain.Location, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []locationDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	locations := make([]domain.Location, len(docs))
	for i, d := range docs {
		locations[i] = d.toDomain()
	}
	return locations, nil
}

// FindByID retrieves a location by its ID.
func (r *mongoLocationRepository) FindByID(ctx context.Context, id string) (*domain.Location, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

// FindByName retrieves a location by its unique name.
func (r *mongoLocationRepository) FindByName(ctx context.Context, name string) (*domain.Location, error) {
	return r.findOne(ctx, bson.M{"name": name})
}

func (r *mongoLocationRepository) findOne(ctx context.Context, filter bson.M) (*domain.Location, error) {
	var doc locationDocument
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	location := doc.toDomain()
	return &location, nil
}

// Create inserts a new location. The unique index on name turns a repeated
// name into ErrDuplicate.
func (r *mongoLocationRepository) Create(ctx context.Context, location *domain.Location) (string, error) {
	now := time.Now().UTC()
	doc := locationDocument{
		ID:           primitive.NewObjectID(),
		Name:         location.Name,
		MapLink:      location.MapLink,
		Address:      location.Address,
		Description:  location.Description,
		Q:            location.Q,
		EmbedMapLink: location.EmbedMapLink,
		ImageURL:     location.ImageURL,
		PaxImageURL:  location.PaxImageURL,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", repository.ErrDuplicate
		}
		return "", err
	}
	location.ID = doc.ID.Hex()
	return location.ID, nil
}

// UpdateByID applies the set fields of update and returns the stored result.
func (r *mongoLocationRepository) UpdateByID(ctx context.Context, id string, update domain.LocationUpdate) (*domain.Location, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, repository.ErrNotFound
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	putString(set, "name", update.Name)
	putString(set, "mapLink", update.MapLink)
	putString(set, "address", update.Address)
	putString(set, "description", update.Description)
	putString(set, "q", update.Q)
	putString(set, "embedMapLink", update.EmbedMapLink)
	putString(set, "imageUrl", update.ImageURL)
	putString(set, "paxImageUrl", update.PaxImageURL)

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc locationDocument
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, repository.ErrDuplicate
		}
		return nil, err
	}
	location := doc.toDomain()
	return &location, nil
}

// DeleteByID removes a location and returns what was removed.
func (r *mongoLocationRepository) DeleteByID(ctx context.Context, id string) (*domain.Location, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	var doc locationDocument
	if err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	location := doc.toDomain()
	return &location, nil
}

// EnsureLocationIndexes creates necessary indexes for the locations collection.
func EnsureLocationIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			// Name is the natural key; duplicates must fail on insert.
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("location_name_unique"),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}

func putString(set bson.M, key string, v *string) {
	if v != nil {
		set[key] = *v
	}
}
