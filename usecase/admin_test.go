package usecase

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"notesmanager/model"
	"notesmanager/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAdminService_DeleteUserCascades(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewAdminService(store.Users(), store.Notes())
	ctx := context.Background()
	now := time.Now().UTC()

	admin := seedUser(t, store, "admin", model.RoleAdmin, now)
	victim := seedUser(t, store, "victim", model.RoleUser, now)
	bystander := seedUser(t, store, "bystander", model.RoleUser, now)
	seedNote(t, store, victim, "a", now)
	seedNote(t, store, victim, "b", now)
	kept := seedNote(t, store, bystander, "c", now)

	deleted, err := svc.DeleteUser(ctx, admin, victim.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "victim", deleted.Name)

	_, err = store.Users().FindUserByID(ctx, victim.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	left, err := store.Notes().ListNotesByOwner(ctx, victim.ID)
	require.NoError(t, err)
	assert.Empty(t, left)

	_, err = store.Notes().FindOwnedNote(ctx, kept.ID, bystander.ID)
	assert.NoError(t, err)
}

func TestAdminService_DeleteUserErrors(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewAdminService(store.Users(), store.Notes())
	ctx := context.Background()

	admin := seedUser(t, store, "admin", model.RoleAdmin, time.Now())

	for _, ownID := range []string{admin.ID.Hex(), strings.ToUpper(admin.ID.Hex())} {
		_, err := svc.DeleteUser(ctx, admin, ownID)
		assert.ErrorIs(t, err, ErrSelfDelete, ownID)
	}

	_, err := store.Users().FindUserByID(ctx, admin.ID)
	assert.NoError(t, err, "self delete must leave the account in place")

	_, err = svc.DeleteUser(ctx, admin, primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.DeleteUser(ctx, admin, "zzz")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAdminService_ListNotesJoinsOwner(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewAdminService(store.Users(), store.Notes())
	ctx := context.Background()
	now := time.Now().UTC()

	alice := seedUser(t, store, "alice", model.RoleUser, now)
	older := seedNote(t, store, alice, "older", now.Add(-time.Hour))
	newer := seedNote(t, store, alice, "newer", now)

	orphan := &model.Note{Title: "orphan", Description: "d", UserID: primitive.NewObjectID(), CreatedAt: now.Add(-2 * time.Hour)}
	require.NoError(t, store.Notes().CreateNote(ctx, orphan))

	notes, err := svc.ListNotes(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 3)

	assert.Equal(t, newer.ID, notes[0].ID)
	assert.Equal(t, older.ID, notes[1].ID)
	require.NotNil(t, notes[0].Owner)
	assert.Equal(t, "alice", notes[0].Owner.Name)
	assert.Equal(t, "alice@example.com", notes[0].Owner.Email)
	assert.Nil(t, notes[2].Owner)
}

func TestAdminService_DeleteNote(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewAdminService(store.Users(), store.Notes())
	ctx := context.Background()

	bob := seedUser(t, store, "bob", model.RoleUser, time.Now())
	note := seedNote(t, store, bob, "shopping", time.Now())

	deleted, err := svc.DeleteNote(ctx, note.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "shopping", deleted.Title)
	require.NotNil(t, deleted.Owner)
	assert.Equal(t, "bob", deleted.Owner.Name)

	_, err = svc.DeleteNote(ctx, note.ID.Hex())
	assert.ErrorIs(t, err, ErrNoteNotFound)

	_, err = svc.DeleteNote(ctx, "bogus")
	assert.ErrorIs(t, err, ErrNoteNotFound)
}

func TestAdminService_Stats(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewAdminService(store.Users(), store.Notes())
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	old := now.Add(-30 * 24 * time.Hour)

	seedUser(t, store, "root", model.RoleAdmin, now)
	a := seedUser(t, store, "a", model.RoleUser, old)
	b := seedUser(t, store, "b", model.RoleUser, now.Add(-time.Hour))
	legacy := seedUser(t, store, "legacy", "", old)

	for i := 0; i < 3; i++ {
		seedNote(t, store, a, fmt.Sprintf("a-%d", i), old)
	}
	seedNote(t, store, b, "b-0", now.Add(-time.Minute))
	seedNote(t, store, legacy, "l-0", now.Add(-6*24*time.Hour))
	seedNote(t, store, legacy, "l-1", old)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.TotalUsers, "missing role counts as user")
	assert.Equal(t, int64(1), stats.TotalAdmins)
	assert.Equal(t, int64(6), stats.TotalNotes)
	assert.Equal(t, int64(1), stats.RecentUsers)
	assert.Equal(t, int64(2), stats.RecentNotes)

	all, err := store.Users().ListUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(len(all)), stats.TotalUsers+stats.TotalAdmins)

	require.Len(t, stats.TopUsers, 3)
	assert.Equal(t, a.ID, stats.TopUsers[0].ID)
	assert.Equal(t, int64(3), stats.TopUsers[0].NoteCount)
	assert.Equal(t, legacy.ID, stats.TopUsers[1].ID)
	assert.Equal(t, int64(2), stats.TopUsers[1].NoteCount)
	assert.Equal(t, int64(1), stats.TopUsers[2].NoteCount)
}

func TestAdminService_StatsTopUsersCapped(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewAdminService(store.Users(), store.Notes())
	now := time.Now().UTC()

	for i := 0; i < TopUsersLimit+2; i++ {
		u := seedUser(t, store, fmt.Sprintf("u%d", i), model.RoleUser, now)
		for j := 0; j <= i; j++ {
			seedNote(t, store, u, fmt.Sprintf("n%d-%d", i, j), now)
		}
	}

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	require.Len(t, stats.TopUsers, TopUsersLimit)
	for i := 1; i < len(stats.TopUsers); i++ {
		assert.GreaterOrEqual(t, stats.TopUsers[i-1].NoteCount, stats.TopUsers[i].NoteCount)
	}
	assert.Equal(t, int64(TopUsersLimit+2), stats.TopUsers[0].NoteCount)
}

func TestAdminService_StatsEmpty(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewAdminService(store.Users(), store.Notes())

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.TotalUsers)
	assert.Zero(t, stats.TotalNotes)
	assert.NotNil(t, stats.TopUsers)
	assert.Empty(t, stats.TopUsers)
}
