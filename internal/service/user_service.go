// Package service contains the resolvers for every feed operation.
package service

import (
	"context"
	"log/slog"
	"strings"

	"feedgraph/internal/auth"
	"feedgraph/internal/middleware"
	"feedgraph/internal/models"
	"feedgraph/internal/repository"
)

const notAuthenticatedMessage = "Not authenticated"

// TokenIssuer signs session tokens for authenticated users.
type TokenIssuer interface {
	Issue(userID uint, email string) (string, error)
}

type UserService struct {
	userRepo repository.UserRepository
	tokens   TokenIssuer
	hash     func(string) (string, error)
}

type CreateUserInput struct {
	Name     string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

// AuthPayload is the result of a successful login.
type AuthPayload struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func NewUserService(userRepo repository.UserRepository, tokens TokenIssuer) *UserService {
	return &UserService{
		userRepo: userRepo,
		tokens:   tokens,
		hash:     auth.HashPassword,
	}
}

func (s *UserService) ListUsers(ctx context.Context, id auth.Identity) ([]*models.User, error) {
	if !id.IsAuthenticated() {
		return nil, models.NewUnauthorizedError(notAuthenticatedMessage)
	}
	return s.userRepo.List(ctx)
}

func (s *UserService) CreateUser(ctx context.Context, _ auth.Identity, in CreateUserInput) (*models.User, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if name == "" || email == "" || strings.TrimSpace(in.Password) == "" {
		return nil, models.NewValidationError("name, email and password are required")
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("Email already in use")
	}

	hashed, err := s.hash(in.Password)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{Name: name, Email: email, Password: hashed}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	middleware.Logger.InfoContext(ctx, "user created", slog.Uint64("user_id", uint64(user.ID)))
	return user, nil
}

// Login never reveals whether the email exists: both failure paths return
// the same InvalidCredentials error.
func (s *UserService) Login(ctx context.Context, _ auth.Identity, in LoginInput) (*AuthPayload, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || strings.TrimSpace(in.Password) == "" {
		return nil, models.NewValidationError("Email and password are required")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !auth.VerifyPassword(in.Password, user.Password) {
		return nil, models.NewInvalidCredentialsError()
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	return &AuthPayload{Token: token, User: user}, nil
}
