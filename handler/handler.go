package handler

import (
	"context"
	"errors"
	"log/slog"

	"notesmanager/middleware"
	"notesmanager/model"
	"notesmanager/usecase"
	"notesmanager/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotesUsecase interface {
	List(ctx context.Context, ownerID primitive.ObjectID) ([]*model.Note, error)
	Create(ctx context.Context, ownerID primitive.ObjectID, in usecase.NoteInput) (*model.Note, error)
	Get(ctx context.Context, ownerID primitive.ObjectID, noteID string) (*model.Note, error)
	Update(ctx context.Context, ownerID primitive.ObjectID, noteID string, in usecase.NoteInput) (*model.Note, error)
	Delete(ctx context.Context, ownerID primitive.ObjectID, noteID string) error
}

type AdminUsecase interface {
	ListUsers(ctx context.Context) ([]*model.User, error)
	DeleteUser(ctx context.Context, actor *model.User, targetID string) (*model.User, error)
	ListNotes(ctx context.Context) ([]*model.NoteWithOwner, error)
	DeleteNote(ctx context.Context, noteID string) (*model.NoteWithOwner, error)
	Stats(ctx context.Context) (*model.AdminStats, error)
}

type AuthUsecase interface {
	Register(ctx context.Context, in usecase.RegisterInput) (*usecase.AuthResult, error)
	Login(ctx context.Context, email, password string) (*usecase.AuthResult, error)
	AdminLogin(ctx context.Context, email, password string) (*usecase.AuthResult, error)
}

// respondError maps usecase errors onto the HTTP taxonomy. Anything
// unrecognised is logged and reported as a bare 500.
func respondError(c *gin.Context, op string, err error) {
	var verr *usecase.ValidationError
	switch {
	case errors.As(err, &verr):
		utils.TrackError(op, "validation")
		utils.BadRequest(c, verr.Message)
	case errors.Is(err, usecase.ErrNoteNotFound):
		utils.NotFound(c, "Note not found")
	case errors.Is(err, usecase.ErrUserNotFound):
		utils.NotFound(c, "User not found")
	case errors.Is(err, usecase.ErrSelfDelete):
		utils.BadRequest(c, "Cannot delete your own admin account")
	case errors.Is(err, usecase.ErrEmailTaken):
		utils.Conflict(c, "User already exists with this email")
	case errors.Is(err, usecase.ErrInvalidCredentials):
		utils.Unauthorized(c, "Invalid email or password")
	case errors.Is(err, usecase.ErrInvalidAdminCredentials):
		utils.Unauthorized(c, "Invalid admin credentials")
	default:
		utils.TrackError(op, "internal")
		slog.ErrorContext(c.Request.Context(), op+" failed",
			slog.Any("error", err),
			slog.String("request_id", middleware.RequestID(c)),
		)
		utils.InternalError(c, "Internal server error")
	}
}

// bindJSON reports a malformed body the same way for every endpoint.
func bindJSON(c *gin.Context, op string, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		utils.TrackError(op, "invalid_request")
		utils.BadRequest(c, "Invalid request body")
		return false
	}
	return true
}
