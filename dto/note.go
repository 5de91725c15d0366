package dto

import (
	"time"

	"notesmanager/model"
)

type NoteRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type NoteResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	UserID      string    `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func ToNoteResponse(note *model.Note) NoteResponse {
	return NoteResponse{
		ID:          note.ID.Hex(),
		Title:       note.Title,
		Description: note.Description,
		UserID:      note.UserID.Hex(),
		CreatedAt:   note.CreatedAt,
		UpdatedAt:   note.UpdatedAt,
	}
}

type SingleNoteResponse struct {
	Note NoteResponse `json:"note"`
}

type NoteOwnerResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AdminNoteResponse is a note with its owner; User is null when the
// owner no longer exists.
type AdminNoteResponse struct {
	NoteResponse
	User *NoteOwnerResponse `json:"user"`
}

func ToAdminNoteResponse(note *model.NoteWithOwner) AdminNoteResponse {
	resp := AdminNoteResponse{NoteResponse: ToNoteResponse(&note.Note)}
	if note.Owner != nil {
		resp.User = &NoteOwnerResponse{
			ID:    note.Owner.ID.Hex(),
			Name:  note.Owner.Name,
			Email: note.Owner.Email,
		}
	}
	return resp
}
