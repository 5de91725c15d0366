package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"notesmanager/model"
	"notesmanager/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const UsersCollection = "users"

type UserRepo struct {
	MongoCollection *mongo.Collection
}

func NewUserRepo(db *mongo.Database) *UserRepo {
	return &UserRepo{
		MongoCollection: db.Collection(UsersCollection),
	}
}

// NormalizeEmail lower-cases and trims an email the same way on every path.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// userRoleFilter matches role "user" as well as missing or null roles.
func userRoleFilter() bson.M {
	return bson.M{"$in": bson.A{string(model.RoleUser), nil}}
}

func (r *UserRepo) CreateUser(ctx context.Context, user *model.User) error {
	timer := utils.TrackDBOperation("insert", UsersCollection)
	defer timer.ObserveDuration()

	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	user.Email = NormalizeEmail(user.Email)

	if _, err := r.MongoCollection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		utils.TrackError("database", "user_creation_failed")
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepo) findOne(ctx context.Context, filter bson.M) (*model.User, error) {
	timer := utils.TrackDBOperation("find", UsersCollection)
	defer timer.ObserveDuration()

	var user model.User
	err := r.MongoCollection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		utils.TrackError("database", "user_lookup_error")
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

func (r *UserRepo) FindUserByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserRepo) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"email": NormalizeEmail(email)})
}

func (r *UserRepo) FindAdminByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"email": NormalizeEmail(email), "role": model.RoleAdmin})
}

// ListUsers returns every user newest first with the password hash
// projected out.
func (r *UserRepo) ListUsers(ctx context.Context) ([]*model.User, error) {
	timer := utils.TrackDBOperation("find", UsersCollection)
	defer timer.ObserveDuration()

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetProjection(bson.M{"password": 0})

	cursor, err := r.MongoCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cursor.Close(ctx)

	users := make([]*model.User, 0)
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

func (r *UserRepo) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	timer := utils.TrackDBOperation("delete", UsersCollection)
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		utils.TrackError("database", "user_deletion_failed")
		return fmt.Errorf("delete user: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// CountUsers counts users holding role. RoleUser also counts records
// with a missing or null role. A non-zero since restricts the count to
// users created at or after it.
func (r *UserRepo) CountUsers(ctx context.Context, role model.Role, since time.Time) (int64, error) {
	timer := utils.TrackDBOperation("count", UsersCollection)
	defer timer.ObserveDuration()

	filter := bson.M{"role": model.RoleAdmin}
	if role != model.RoleAdmin {
		filter["role"] = userRoleFilter()
	}
	if !since.IsZero() {
		filter["createdAt"] = bson.M{"$gte": since}
	}

	count, err := r.MongoCollection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}

// BackfillMissingRoles sets role "user" on records without a role field.
func (r *UserRepo) BackfillMissingRoles(ctx context.Context) (int64, error) {
	return r.setRole(ctx, bson.M{"role": bson.M{"$exists": false}}, model.RoleUser)
}

// BackfillNullRoles sets role "user" on records whose role is null.
func (r *UserRepo) BackfillNullRoles(ctx context.Context) (int64, error) {
	return r.setRole(ctx, bson.M{"role": bson.M{"$type": "null"}}, model.RoleUser)
}

// PromoteByEmail sets role "admin" on an existing user. It never creates one.
func (r *UserRepo) PromoteByEmail(ctx context.Context, email string) (int64, error) {
	timer := utils.TrackDBOperation("update", UsersCollection)
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"email": NormalizeEmail(email)},
		bson.M{"$set": bson.M{"role": model.RoleAdmin, "updatedAt": time.Now().UTC()}},
		options.Update().SetUpsert(false))
	if err != nil {
		return 0, fmt.Errorf("promote user: %w", err)
	}
	return result.ModifiedCount, nil
}

func (r *UserRepo) setRole(ctx context.Context, filter bson.M, role model.Role) (int64, error) {
	timer := utils.TrackDBOperation("update", UsersCollection)
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"role": role}})
	if err != nil {
		return 0, fmt.Errorf("set role %s: %w", role, err)
	}
	return result.ModifiedCount, nil
}

// CountByRole groups users by their raw role value.
func (r *UserRepo) CountByRole(ctx context.Context) ([]model.RoleCount, error) {
	timer := utils.TrackDBOperation("aggregate", UsersCollection)
	defer timer.ObserveDuration()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$role"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cursor, err := r.MongoCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("group users by role: %w", err)
	}
	defer cursor.Close(ctx)

	var counts []model.RoleCount
	if err := cursor.All(ctx, &counts); err != nil {
		return nil, fmt.Errorf("decode role counts: %w", err)
	}
	return counts, nil
}

func (r *UserRepo) Ping(ctx context.Context) error {
	return r.MongoCollection.Database().Client().Ping(ctx, readpref.Primary())
}
