package middleware

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"notesmanager/model"
	"notesmanager/repository"
	"notesmanager/services"
	"notesmanager/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const currentUserKey = "current_user"

type TokenVerifier interface {
	Verify(token string) (*services.Claims, error)
}

type UserLoader interface {
	FindUserByID(ctx context.Context, id primitive.ObjectID) (*model.User, error)
}

// RequireUser admits requests carrying a valid bearer token whose user
// still exists. The loaded user is available through CurrentUser.
func RequireUser(tokens TokenVerifier, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := authenticate(c, tokens, users); !ok {
			return
		}
		c.Next()
	}
}

// RequireAdmin is RequireUser plus a role check against the stored
// record, so a demoted admin loses access before the token expires.
func RequireAdmin(tokens TokenVerifier, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := authenticate(c, tokens, users)
		if !ok {
			return
		}
		if !user.IsAdmin() {
			utils.TrackError("auth", "forbidden")
			utils.Forbidden(c, "Admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user loaded by the auth gate, or nil outside it.
func CurrentUser(c *gin.Context) *model.User {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*model.User)
	return user
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

func authenticate(c *gin.Context, tokens TokenVerifier, users UserLoader) (*model.User, bool) {
	tokenString := bearerToken(c)
	if tokenString == "" {
		utils.Unauthorized(c, "Access token is required")
		c.Abort()
		return nil, false
	}

	claims, err := tokens.Verify(tokenString)
	if err != nil {
		utils.TrackError("auth", "invalid_token")
		utils.Unauthorized(c, "Invalid or expired token")
		c.Abort()
		return nil, false
	}

	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		utils.Unauthorized(c, "Invalid or expired token")
		c.Abort()
		return nil, false
	}

	user, err := users.FindUserByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.Unauthorized(c, "User not found")
			c.Abort()
			return nil, false
		}
		slog.ErrorContext(c.Request.Context(), "load token user",
			slog.String("user_id", claims.UserID),
			slog.Any("error", err),
		)
		utils.InternalError(c, "Authentication failed")
		c.Abort()
		return nil, false
	}

	c.Set(currentUserKey, user)
	return user, true
}
