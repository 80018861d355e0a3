// services/user_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gewnthar/flightops/auth"
	"github.com/gewnthar/flightops/database"
	"github.com/gewnthar/flightops/models"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrIncorrectPassword = errors.New("incorrect password")
)

const (
	bootstrapUsername = "admin"
	bootstrapPassword = "admin"
)

// NewUser is the admin form for creating a profile.
type NewUser struct {
	FirstName string
	LastName  string
	Username  string
	Password  string
	Role      string
}

// UserService manages user profiles and logins.
type UserService struct {
	db         *database.DB
	iterations int
	log        *slog.Logger
}

// NewUserService builds the service; iterations <= 0 uses the hashing default.
func NewUserService(db *database.DB, iterations int, logger *slog.Logger) *UserService {
	return &UserService{db: db, iterations: iterations, log: logger}
}

// EnsureBootstrapAdmin creates admin/admin when no profile exists yet.
func (s *UserService) EnsureBootstrapAdmin(ctx context.Context) error {
	n, err := s.db.CountUsers(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	hash, err := auth.HashPassword(bootstrapPassword, s.iterations)
	if err != nil {
		return err
	}
	u := &models.UserProfile{
		FirstName:    "Crypto",
		LastName:     "Ciphers Unltd.",
		Username:     bootstrapUsername,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	}
	if err := s.db.CreateUser(ctx, u); err != nil {
		if errors.Is(err, database.ErrDuplicateUsername) {
			return nil
		}
		return err
	}
	s.log.Warn("Service: bootstrap admin account created; change its password", slog.String("username", bootstrapUsername))
	return nil
}

// Authenticate checks a login. The bootstrap account is created first when
// the table is empty.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.UserProfile, error) {
	if err := s.EnsureBootstrapAdmin(ctx); err != nil {
		return nil, fmt.Errorf("failed to prepare user table: %w", err)
	}
	u, err := s.db.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	if !auth.CheckPassword(u.PasswordHash, password) {
		return nil, ErrIncorrectPassword
	}
	return u, nil
}

// CreateUser validates and inserts a new profile. Existing usernames are rejected.
func (s *UserService) CreateUser(ctx context.Context, in NewUser) (*models.UserProfile, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrInvalidInput)
	}
	role, err := models.ParseRole(in.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	hash, err := auth.HashPassword(in.Password, s.iterations)
	if err != nil {
		return nil, err
	}
	u := &models.UserProfile{
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Username:     username,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.db.CreateUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// List returns every profile.
func (s *UserService) List(ctx context.Context) ([]models.UserProfile, error) {
	return s.db.ListUsers(ctx)
}

// GetUserByUsername implements auth.UserLookup.
func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*models.UserProfile, error) {
	return s.db.GetUserByUsername(ctx, username)
}
