package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"notesmanager/config"
	"notesmanager/model"
	"notesmanager/repository"
	"notesmanager/services"
	"notesmanager/utils"
)

type TokenIssuer interface {
	Issue(identity services.IdentityClaims) (string, error)
}

type RegisterInput struct {
	Name     string `json:"name" validate:"required,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type AuthResult struct {
	User  *model.User
	Token string
}

type AuthService struct {
	Users  UserStore
	Tokens TokenIssuer
	admin  config.AdminConfig
	now    Clock
}

func NewAuthService(users UserStore, tokens TokenIssuer, admin config.AdminConfig) *AuthService {
	return &AuthService{Users: users, Tokens: tokens, admin: admin, now: systemClock}
}

func (s *AuthService) issue(user *model.User) (*AuthResult, error) {
	token, err := s.Tokens.Issue(services.IdentityClaims{
		UserID: user.ID.Hex(),
		Email:  user.Email,
		Name:   user.Name,
		Role:   string(user.EffectiveRole()),
	})
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &AuthResult{User: user, Token: token}, nil
}

func (s *AuthService) createUser(ctx context.Context, name, email, password string, role model.Role) (*model.User, error) {
	hash, err := services.HashPassword(password)
	if err != nil {
		return nil, err
	}
	now := s.now()
	user := &model.User{
		Name:      name,
		Email:     email,
		Password:  hash,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Users.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = repository.NormalizeEmail(in.Email)

	if err := utils.Validate.Struct(in); err != nil {
		fields := utils.FieldErrors(err)
		switch {
		case fields == nil:
			return nil, fmt.Errorf("validate registration: %w", err)
		case fields["name"] == "required" || fields["email"] == "required" || fields["password"] == "required":
			return nil, invalid("Name, email and password are required")
		case fields["name"] != "":
			return nil, invalid("Name cannot be more than 50 characters")
		case fields["email"] != "":
			return nil, invalid("Please enter a valid email")
		default:
			return nil, invalid("Password must be at least 6 characters")
		}
	}

	_, err := s.Users.FindUserByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return nil, ErrEmailTaken
	case !errors.Is(err, repository.ErrNotFound):
		return nil, fmt.Errorf("find user: %w", err)
	}

	user, err := s.createUser(ctx, in.Name, in.Email, in.Password, model.RoleUser)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return s.issue(user)
}

// Login authenticates any user against the stored hash.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, invalid("Email and password are required")
	}

	user, err := s.Users.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if !services.VerifyPassword(user.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return s.issue(user)
}

// AdminLogin has two separate branches. Credentials equal
// to the configured admin pair are compared in plaintext against
// configuration and the matching user record is created on first use.
// Any other email must belong to a stored admin whose hash matches.
// Every failure is ErrInvalidAdminCredentials.
func (s *AuthService) AdminLogin(ctx context.Context, email, password string) (*AuthResult, error) {
	if email == "" || password == "" {
		return nil, invalid("Email and password are required")
	}

	if s.isConfiguredAdmin(email, password) {
		user, err := s.ensureConfiguredAdmin(ctx)
		if err != nil {
			return nil, err
		}
		return s.issue(user)
	}

	user, err := s.Users.FindAdminByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidAdminCredentials
		}
		return nil, fmt.Errorf("find admin: %w", err)
	}
	if !services.VerifyPassword(user.Password, password) {
		return nil, ErrInvalidAdminCredentials
	}
	return s.issue(user)
}

func (s *AuthService) isConfiguredAdmin(email, password string) bool {
	return s.admin.Email != "" && s.admin.Password != "" &&
		email == s.admin.Email && password == s.admin.Password
}

func (s *AuthService) ensureConfiguredAdmin(ctx context.Context) (*model.User, error) {
	user, err := s.Users.FindUserByEmail(ctx, s.admin.Email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("find admin: %w", err)
	}

	user, err = s.createUser(ctx, s.admin.Name, s.admin.Email, s.admin.Password, model.RoleAdmin)
	if errors.Is(err, repository.ErrDuplicateEmail) {
		// Lost a race with a concurrent first login.
		return s.Users.FindUserByEmail(ctx, s.admin.Email)
	}
	if err != nil {
		return nil, fmt.Errorf("create admin: %w", err)
	}

	slog.InfoContext(ctx, "bootstrap admin created", slog.String("user_id", user.ID.Hex()))
	return user, nil
}
