package usecase

import (
	"context"
	"testing"
	"time"

	"notesmanager/model"
	"notesmanager/repository"

	"github.com/stretchr/testify/require"
)

type stepClock struct {
	t    time.Time
	step time.Duration
}

func (c *stepClock) now() time.Time {
	c.t = c.t.Add(c.step)
	return c.t
}

func newStepClock() *stepClock {
	return &stepClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC), step: time.Second}
}

func seedUser(t *testing.T, store *repository.MemoryStore, name string, role model.Role, createdAt time.Time) *model.User {
	t.Helper()
	user := &model.User{
		Name:      name,
		Email:     name + "@example.com",
		Password:  "hash",
		Role:      role,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	require.NoError(t, store.Users().CreateUser(context.Background(), user))
	return user
}

func seedNote(t *testing.T, store *repository.MemoryStore, owner *model.User, title string, createdAt time.Time) *model.Note {
	t.Helper()
	note := &model.Note{
		Title:       title,
		Description: "body of " + title,
		UserID:      owner.ID,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
	require.NoError(t, store.Notes().CreateNote(context.Background(), note))
	return note
}
