package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"notesmanager/model"
	"notesmanager/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const NotesCollection = "notes"

var newestFirst = bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}

type NotesRepo struct {
	MongoCollection *mongo.Collection
	usersCollection string
}

func NewNotesRepo(db *mongo.Database) *NotesRepo {
	return &NotesRepo{
		MongoCollection: db.Collection(NotesCollection),
		usersCollection: UsersCollection,
	}
}

func (r *NotesRepo) CreateNote(ctx context.Context, note *model.Note) error {
	timer := utils.TrackDBOperation("insert", NotesCollection)
	defer timer.ObserveDuration()

	if note.UserID.IsZero() {
		return errors.New("note owner is required")
	}
	if note.ID.IsZero() {
		note.ID = primitive.NewObjectID()
	}

	if _, err := r.MongoCollection.InsertOne(ctx, note); err != nil {
		utils.TrackError("database", "note_creation_failed")
		return fmt.Errorf("insert note: %w", err)
	}
	return nil
}

func (r *NotesRepo) ListNotesByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]*model.Note, error) {
	timer := utils.TrackDBOperation("find", NotesCollection)
	defer timer.ObserveDuration()

	cursor, err := r.MongoCollection.Find(ctx, bson.M{"userId": ownerID}, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer cursor.Close(ctx)

	notes := make([]*model.Note, 0)
	if err := cursor.All(ctx, &notes); err != nil {
		return nil, fmt.Errorf("decode notes: %w", err)
	}
	return notes, nil
}

func (r *NotesRepo) FindOwnedNote(ctx context.Context, id, ownerID primitive.ObjectID) (*model.Note, error) {
	timer := utils.TrackDBOperation("find", NotesCollection)
	defer timer.ObserveDuration()

	var note model.Note
	err := r.MongoCollection.FindOne(ctx, bson.M{"_id": id, "userId": ownerID}).Decode(&note)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find note: %w", err)
	}
	return &note, nil
}

// UpdateOwnedNote rewrites title and description of a note owned by
// ownerID and returns the updated document.
func (r *NotesRepo) UpdateOwnedNote(ctx context.Context, id, ownerID primitive.ObjectID, title, description string, updatedAt time.Time) (*model.Note, error) {
	timer := utils.TrackDBOperation("update", NotesCollection)
	defer timer.ObserveDuration()

	update := bson.M{
		"$set": bson.M{
			"title":       title,
			"description": description,
			"updatedAt":   updatedAt,
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var note model.Note
	err := r.MongoCollection.FindOneAndUpdate(ctx, bson.M{"_id": id, "userId": ownerID}, update, opts).Decode(&note)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update note: %w", err)
	}
	return &note, nil
}

func (r *NotesRepo) DeleteOwnedNote(ctx context.Context, id, ownerID primitive.ObjectID) error {
	return r.deleteOne(ctx, bson.M{"_id": id, "userId": ownerID})
}

func (r *NotesRepo) DeleteNote(ctx context.Context, id primitive.ObjectID) error {
	return r.deleteOne(ctx, bson.M{"_id": id})
}

func (r *NotesRepo) deleteOne(ctx context.Context, filter bson.M) error {
	timer := utils.TrackDBOperation("delete", NotesCollection)
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.DeleteOne(ctx, filter)
	if err != nil {
		utils.TrackError("database", "note_deletion_failed")
		return fmt.Errorf("delete note: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *NotesRepo) DeleteNotesByOwner(ctx context.Context, ownerID primitive.ObjectID) (int64, error) {
	timer := utils.TrackDBOperation("delete", NotesCollection)
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.DeleteMany(ctx, bson.M{"userId": ownerID})
	if err != nil {
		utils.TrackError("database", "note_deletion_failed")
		return 0, fmt.Errorf("delete notes of %s: %w", ownerID.Hex(), err)
	}
	return result.DeletedCount, nil
}

// withOwnerStages joins the owning user's id, name and email into "owner".
// Notes whose owner no longer exists keep a missing owner.
func (r *NotesRepo) withOwnerStages() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: r.usersCollection},
			{Key: "localField", Value: "userId"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "owner"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$owner"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "title", Value: 1},
			{Key: "description", Value: 1},
			{Key: "userId", Value: 1},
			{Key: "createdAt", Value: 1},
			{Key: "updatedAt", Value: 1},
			{Key: "owner._id", Value: 1},
			{Key: "owner.name", Value: 1},
			{Key: "owner.email", Value: 1},
		}}},
	}
}

func (r *NotesRepo) aggregateWithOwners(ctx context.Context, head mongo.Pipeline) ([]*model.NoteWithOwner, error) {
	timer := utils.TrackDBOperation("aggregate", NotesCollection)
	defer timer.ObserveDuration()

	pipeline := append(head, r.withOwnerStages()...)
	cursor, err := r.MongoCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate notes: %w", err)
	}
	defer cursor.Close(ctx)

	notes := make([]*model.NoteWithOwner, 0)
	if err := cursor.All(ctx, &notes); err != nil {
		return nil, fmt.Errorf("decode notes: %w", err)
	}
	return notes, nil
}

// ListNotesWithOwners returns every note newest first with its owner joined.
func (r *NotesRepo) ListNotesWithOwners(ctx context.Context) ([]*model.NoteWithOwner, error) {
	return r.aggregateWithOwners(ctx, mongo.Pipeline{
		{{Key: "$sort", Value: newestFirst}},
	})
}

func (r *NotesRepo) FindNoteWithOwner(ctx context.Context, id primitive.ObjectID) (*model.NoteWithOwner, error) {
	notes, err := r.aggregateWithOwners(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "_id", Value: id}}}},
		{{Key: "$limit", Value: 1}},
	})
	if err != nil {
		return nil, err
	}
	if len(notes) == 0 {
		return nil, ErrNotFound
	}
	return notes[0], nil
}

// CountNotes counts all notes, or those created at or after since when
// it is non-zero.
func (r *NotesRepo) CountNotes(ctx context.Context, since time.Time) (int64, error) {
	timer := utils.TrackDBOperation("count", NotesCollection)
	defer timer.ObserveDuration()

	filter := bson.M{}
	if !since.IsZero() {
		filter["createdAt"] = bson.M{"$gte": since}
	}
	count, err := r.MongoCollection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count notes: %w", err)
	}
	return count, nil
}

// TopOwners ranks existing users by how many notes they own.
func (r *NotesRepo) TopOwners(ctx context.Context, limit int) ([]model.TopUser, error) {
	timer := utils.TrackDBOperation("aggregate", NotesCollection)
	defer timer.ObserveDuration()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$userId"},
			{Key: "noteCount", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: r.usersCollection},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "user"},
		}}},
		{{Key: "$unwind", Value: "$user"}},
		{{Key: "$project", Value: bson.D{
			{Key: "name", Value: "$user.name"},
			{Key: "email", Value: "$user.email"},
			{Key: "noteCount", Value: 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "noteCount", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
	}

	cursor, err := r.MongoCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("rank note owners: %w", err)
	}
	defer cursor.Close(ctx)

	top := make([]model.TopUser, 0, limit)
	if err := cursor.All(ctx, &top); err != nil {
		return nil, fmt.Errorf("decode top owners: %w", err)
	}
	return top, nil
}
