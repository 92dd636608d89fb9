// internal/repository/mongo/workout_repo.go
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

const workoutCollectionName = "workouts"

// workoutDocument is the stored shape of a Workout. LocationID holds the
// owning location's id as text, the same form the API uses.
type workoutDocument struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	LocationID    string             `bson:"locationId"`
	Style         string             `bson:"style"`
	Day           string             `bson:"day"`
	Time          string             `bson:"time"`
	Q             string             `bson:"q"`
	AvgAttendance string             `bson:"avgAttendance"`
	UpdatedAt     time.Time          `bson:"updatedAt"`
}

func newWorkoutDocument(w domain.Workout, now time.Time) workoutDocument {
	oid, ok := objectID(w.ID)
	if !ok {
		oid = primitive.NewObjectID()
	}
	return workoutDocument{
		ID:            oid,
		LocationID:    w.LocationID,
		Style:         w.Style,
		Day:           w.Day,
		Time:          w.Time,
		Q:             w.Q,
		AvgAttendance: w.AvgAttendance,
		UpdatedAt:     now,
	}
}

func (d workoutDocument) toDomain() domain.Workout {
	return domain.Workout{
		ID:            d.ID.Hex(),
		LocationID:    d.LocationID,
		Style:         d.Style,
		Day:           d.Day,
		Time:          d.Time,
		Q:             d.Q,
		AvgAttendance: d.AvgAttendance,
	}
}

// mongoWorkoutRepository implements repository.WorkoutRepository
type mongoWorkoutRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutRepository creates a new Workout repository.
func NewMongoWorkoutRepository(db *mongo.Database) repository.WorkoutRepository {
	return &mongoWorkoutRepository{
		collection: db.Collection(workoutCollectionName),
	}
}

// FindAll returns every workout in insertion order.
func (r *mongoWorkoutRepository) FindAll(ctx context.Context) ([]domain.Workout, error) {
	return r.Find(ctx, domain.WorkoutFilter{})
}

// Find returns the workouts matching filter in insertion order.
func (r *mongoWorkoutRepository) Find(ctx context.Context, filter domain.WorkoutFilter) ([]domain.Workout, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, workoutFilter(filter), findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []workoutDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	workouts := make([]domain.Workout, len(docs))
	for i, d := range docs {
		workouts[i] = d.toDomain()
	}
	return workouts, nil
}

// FindByID retrieves a single workout by its ID.
func (r *mongoWorkoutRepository) FindByID(ctx context.Context, id string) (*domain.Workout, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	var doc workoutDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	workout := doc.toDomain()
	return &workout, nil
}

// Create inserts a new workout.
func (r *mongoWorkoutRepository) Create(ctx context.Context, workout *domain.Workout) (string, error) {
	doc := newWorkoutDocument(*workout, time.Now().UTC())
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", repository.ErrDuplicate
		}
		return "", err
	}
	workout.ID = doc.ID.Hex()
	return workout.ID, nil
}

// CreateMany inserts workouts in order, keeping any valid ids they carry.
func (r *mongoWorkoutRepository) CreateMany(ctx context.Context, workouts []domain.Workout) ([]string, error) {
	if len(workouts) == 0 {
		return []string{}, nil
	}
	now := time.Now().UTC()
	docs := make([]interface{}, len(workouts))
	ids := make([]string, len(workouts))
	for i, w := range workouts {
		doc := newWorkoutDocument(w, now)
		docs[i] = doc
		ids[i] = doc.ID.Hex()
	}
	if _, err := r.collection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, repository.ErrDuplicate
		}
		return nil, err
	}
	return ids, nil
}

// UpdateByID applies the set fields of update and returns the stored result.
func (r *mongoWorkoutRepository) UpdateByID(ctx context.Context, id string, update domain.WorkoutUpdate) (*domain.Workout, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, repository.ErrNotFound
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	putString(set, "locationId", update.LocationID)
	putString(set, "style", update.Style)
	putString(set, "day", update.Day)
	putString(set, "time", update.Time)
	putString(set, "q", update.Q)
	putString(set, "avgAttendance", update.AvgAttendance)

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc workoutDocument
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	workout := doc.toDomain()
	return &workout, nil
}

// DeleteByID removes a workout and returns what was removed.
func (r *mongoWorkoutRepository) DeleteByID(ctx context.Context, id string) (*domain.Workout, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	var doc workoutDocument
	if err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	workout := doc.toDomain()
	return &workout, nil
}

// DeleteMany removes every workout matching filter.
func (r *mongoWorkoutRepository) DeleteMany(ctx context.Context, filter domain.WorkoutFilter) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, workoutFilter(filter))
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

func workoutFilter(f domain.WorkoutFilter) bson.M {
	filter := bson.M{}
	if f.LocationID != "" {
		filter["locationId"] = f.LocationID
	}
	return filter
}

// EnsureWorkoutIndexes creates necessary indexes. Call during startup.
func EnsureWorkoutIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			// Cascade deletes and per-site listings filter on the owner.
			Keys:    bson.D{{Key: "locationId", Value: 1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
