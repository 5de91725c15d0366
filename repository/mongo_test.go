package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"notesmanager/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// newTestDatabase connects to MONGO_TEST_URI and returns a throwaway
// database dropped when the test ends.
func newTestDatabase(t *testing.T) *mongo.Database {
	t.Helper()
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	require.NoError(t, client.Ping(ctx, nil))

	db := client.Database("notesmanager_test_" + uuid.NewString()[:8])
	require.NoError(t, SetupIndexes(ctx, db))

	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})
	return db
}

func TestMongoUsers(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()
	users := NewUserRepo(db)

	u := &model.User{Name: "Ann", Email: "Ann@Example.com", Password: "hash", Role: model.RoleUser, CreatedAt: time.Now().UTC()}
	require.NoError(t, users.CreateUser(ctx, u))

	err := users.CreateUser(ctx, &model.User{Name: "Dup", Email: "ann@example.com"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	found, err := users.FindUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", found.Email)

	list, err := users.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Empty(t, list[0].Password)

	require.NoError(t, users.DeleteUser(ctx, u.ID))
	assert.ErrorIs(t, users.DeleteUser(ctx, u.ID), ErrNotFound)
}

func TestMongoLegacyRoles(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()
	users := NewUserRepo(db)
	now := time.Now().UTC()

	_, err := db.Collection(UsersCollection).InsertMany(ctx, []interface{}{
		bson.M{"name": "missing", "email": "missing@x.io", "createdAt": now},
		bson.M{"name": "null", "email": "null@x.io", "role": nil, "createdAt": now},
		bson.M{"name": "admin", "email": "admin@x.io", "role": "admin", "createdAt": now},
	})
	require.NoError(t, err)

	count, err := users.CountUsers(ctx, model.RoleUser, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	missing, err := users.BackfillMissingRoles(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), missing)

	null, err := users.BackfillNullRoles(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), null)

	promoted, err := users.PromoteByEmail(ctx, "null@x.io")
	require.NoError(t, err)
	assert.Equal(t, int64(1), promoted)

	admins, err := users.CountUsers(ctx, model.RoleAdmin, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), admins)
}

func TestMongoNotesWithOwners(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()
	users, notes := NewUserRepo(db), NewNotesRepo(db)
	now := time.Now().UTC().Truncate(time.Millisecond)

	owner := &model.User{Name: "Ann", Email: "ann@x.io", Role: model.RoleUser, CreatedAt: now}
	require.NoError(t, users.CreateUser(ctx, owner))

	for i := 0; i < 2; i++ {
		require.NoError(t, notes.CreateNote(ctx, &model.Note{
			Title: "t", Description: "d", UserID: owner.ID,
			CreatedAt: now.Add(time.Duration(i) * time.Second), UpdatedAt: now,
		}))
	}

	joined, err := notes.ListNotesWithOwners(ctx)
	require.NoError(t, err)
	require.Len(t, joined, 2)
	require.NotNil(t, joined[0].Owner)
	assert.Equal(t, "Ann", joined[0].Owner.Name)
	assert.True(t, joined[0].CreatedAt.After(joined[1].CreatedAt))

	top, err := notes.TopOwners(ctx, 5)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, int64(2), top[0].NoteCount)

	deleted, err := notes.DeleteNotesByOwner(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)
}
