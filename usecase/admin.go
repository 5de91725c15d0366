package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"notesmanager/model"
	"notesmanager/repository"
	"notesmanager/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"
)

const (
	StatsWindow   = 7 * 24 * time.Hour
	TopUsersLimit = 5
)

type AdminService struct {
	Users UserStore
	Notes NoteStore
	now   Clock
}

func NewAdminService(users UserStore, notes NoteStore) *AdminService {
	return &AdminService{Users: users, Notes: notes, now: systemClock}
}

func (s *AdminService) ListUsers(ctx context.Context) ([]*model.User, error) {
	users, err := s.Users.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// DeleteUser removes target and every note it owns. Notes go first, so an
// interrupted call leaves a user without notes rather than orphaned notes.
// The two steps are not atomic.
func (s *AdminService) DeleteUser(ctx context.Context, actor *model.User, targetID string) (*model.User, error) {
	id, err := primitive.ObjectIDFromHex(targetID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if id == actor.ID {
		return nil, ErrSelfDelete
	}

	target, err := s.Users.FindUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	deleted, err := s.Notes.DeleteNotesByOwner(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("delete notes of user: %w", err)
	}

	if err := s.Users.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("delete user: %w", err)
	}

	slog.InfoContext(ctx, "user deleted by admin",
		slog.String("admin_id", actor.ID.Hex()),
		slog.String("user_id", targetID),
		slog.Int64("notes_deleted", deleted),
	)
	return target, nil
}

func (s *AdminService) ListNotes(ctx context.Context) ([]*model.NoteWithOwner, error) {
	notes, err := s.Notes.ListNotesWithOwners(ctx)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}

// DeleteNote removes any note regardless of owner and returns it.
func (s *AdminService) DeleteNote(ctx context.Context, noteID string) (*model.NoteWithOwner, error) {
	id, err := parseNoteID(noteID)
	if err != nil {
		return nil, err
	}

	note, err := s.Notes.FindNoteWithOwner(ctx, id)
	if err != nil {
		return nil, noteErr("find", err)
	}
	if err := s.Notes.DeleteNote(ctx, id); err != nil {
		return nil, noteErr("delete", err)
	}
	utils.TrackNoteOperation("admin_delete")
	return note, nil
}

// Stats computes usage counts as of now. The trailing window is rolling
// from the moment of the call.
func (s *AdminService) Stats(ctx context.Context) (*model.AdminStats, error) {
	since := s.now().Add(-StatsWindow)
	stats := &model.AdminStats{}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.TotalUsers, err = s.Users.CountUsers(ctx, model.RoleUser, time.Time{})
		return err
	})
	g.Go(func() (err error) {
		stats.TotalAdmins, err = s.Users.CountUsers(ctx, model.RoleAdmin, time.Time{})
		return err
	})
	g.Go(func() (err error) {
		stats.TotalNotes, err = s.Notes.CountNotes(ctx, time.Time{})
		return err
	})
	g.Go(func() (err error) {
		stats.RecentUsers, err = s.Users.CountUsers(ctx, model.RoleUser, since)
		return err
	})
	g.Go(func() (err error) {
		stats.RecentNotes, err = s.Notes.CountNotes(ctx, since)
		return err
	})
	g.Go(func() (err error) {
		stats.TopUsers, err = s.Notes.TopOwners(ctx, TopUsersLimit)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("compute stats: %w", err)
	}
	return stats, nil
}
