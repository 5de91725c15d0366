package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"notesmanager/model"
	"notesmanager/repository"
	"notesmanager/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const MaxTitleLength = 100

// NoteInput is the writable part of a note. Fields are trimmed before
// validation.
type NoteInput struct {
	Title       string `json:"title" validate:"required,max=100"`
	Description string `json:"description" validate:"required"`
}

func (in NoteInput) normalize() (NoteInput, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)

	if err := utils.Validate.Struct(in); err != nil {
		fields := utils.FieldErrors(err)
		if fields == nil {
			return in, fmt.Errorf("validate note: %w", err)
		}
		if fields["title"] == "required" || fields["description"] == "required" {
			return in, invalid("Title and description are required")
		}
		return in, invalid(fmt.Sprintf("Title cannot be more than %d characters", MaxTitleLength))
	}
	return in, nil
}

type NotesService struct {
	Notes NoteStore
	now   Clock
}

func NewNotesService(notes NoteStore) *NotesService {
	return &NotesService{Notes: notes, now: systemClock}
}

// parseNoteID maps malformed ids to ErrNoteNotFound so they fail exactly
// like ids that do not exist.
func parseNoteID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrNoteNotFound
	}
	return oid, nil
}

func noteErr(op string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNoteNotFound
	}
	return fmt.Errorf("%s note: %w", op, err)
}

// List returns the owner's notes, newest first.
func (s *NotesService) List(ctx context.Context, ownerID primitive.ObjectID) ([]*model.Note, error) {
	notes, err := s.Notes.ListNotesByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}

func (s *NotesService) Create(ctx context.Context, ownerID primitive.ObjectID, in NoteInput) (*model.Note, error) {
	in, err := in.normalize()
	if err != nil {
		return nil, err
	}

	now := s.now()
	note := &model.Note{
		Title:       in.Title,
		Description: in.Description,
		UserID:      ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Notes.CreateNote(ctx, note); err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}
	utils.TrackNoteOperation("create")
	return note, nil
}

func (s *NotesService) Get(ctx context.Context, ownerID primitive.ObjectID, noteID string) (*model.Note, error) {
	id, err := parseNoteID(noteID)
	if err != nil {
		return nil, err
	}
	note, err := s.Notes.FindOwnedNote(ctx, id, ownerID)
	if err != nil {
		return nil, noteErr("find", err)
	}
	return note, nil
}

func (s *NotesService) Update(ctx context.Context, ownerID primitive.ObjectID, noteID string, in NoteInput) (*model.Note, error) {
	in, err := in.normalize()
	if err != nil {
		return nil, err
	}
	id, err := parseNoteID(noteID)
	if err != nil {
		return nil, err
	}

	note, err := s.Notes.UpdateOwnedNote(ctx, id, ownerID, in.Title, in.Description, s.now())
	if err != nil {
		return nil, noteErr("update", err)
	}
	utils.TrackNoteOperation("update")
	return note, nil
}

func (s *NotesService) Delete(ctx context.Context, ownerID primitive.ObjectID, noteID string) error {
	id, err := parseNoteID(noteID)
	if err != nil {
		return err
	}
	if err := s.Notes.DeleteOwnedNote(ctx, id, ownerID); err != nil {
		return noteErr("delete", err)
	}
	utils.TrackNoteOperation("delete")
	return nil
}
