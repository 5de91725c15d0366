package usecase

import (
	"context"
	"time"

	"notesmanager/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserStore is satisfied by repository.UserRepo and repository.MemoryUserRepo.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	FindUserByID(ctx context.Context, id primitive.ObjectID) (*model.User, error)
	FindUserByEmail(ctx context.Context, email string) (*model.User, error)
	FindAdminByEmail(ctx context.Context, email string) (*model.User, error)
	ListUsers(ctx context.Context) ([]*model.User, error)
	DeleteUser(ctx context.Context, id primitive.ObjectID) error
	CountUsers(ctx context.Context, role model.Role, since time.Time) (int64, error)
}

// NoteStore is satisfied by repository.NotesRepo and repository.MemoryNotesRepo.
type NoteStore interface {
	CreateNote(ctx context.Context, note *model.Note) error
	ListNotesByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]*model.Note, error)
	FindOwnedNote(ctx context.Context, id, ownerID primitive.ObjectID) (*model.Note, error)
	UpdateOwnedNote(ctx context.Context, id, ownerID primitive.ObjectID, title, description string, updatedAt time.Time) (*model.Note, error)
	DeleteOwnedNote(ctx context.Context, id, ownerID primitive.ObjectID) error
	DeleteNote(ctx context.Context, id primitive.ObjectID) error
	DeleteNotesByOwner(ctx context.Context, ownerID primitive.ObjectID) (int64, error)
	ListNotesWithOwners(ctx context.Context) ([]*model.NoteWithOwner, error)
	FindNoteWithOwner(ctx context.Context, id primitive.ObjectID) (*model.NoteWithOwner, error)
	CountNotes(ctx context.Context, since time.Time) (int64, error)
	TopOwners(ctx context.Context, limit int) ([]model.TopUser, error)
}

// Clock returns the current time. Stored timestamps are truncated to
// milliseconds, the precision MongoDB keeps.
type Clock func() time.Time

func systemClock() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
