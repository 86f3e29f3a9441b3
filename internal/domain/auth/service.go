// Package auth implements registration and login: bcrypt password hashing,
// user persistence, and JWT issuance.
package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mgarrido/chatforge/internal/domain/activity"
	"github.com/mgarrido/chatforge/internal/infra/eventbus"
	pkgauth "github.com/mgarrido/chatforge/pkg/auth"
	"github.com/mgarrido/chatforge/pkg/uuid"
)

// ErrInvalidCredentials is returned by Login for both unknown email and
// wrong password, so responses cannot reveal whether an email is registered.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrEmailAlreadyExists is returned by Register when the email is taken.
var ErrEmailAlreadyExists = errors.New("email already registered")

// RegisterInput holds the data needed to create a user.
type RegisterInput struct {
	Email    string
	Password string
}

// LoginInput holds login credentials.
type LoginInput struct {
	Email    string
	Password string
}

// AuthResult is returned after a successful Register or Login.
//
//nolint:revive // stable public name across the module
type AuthResult struct {
	Token  string
	UserID string
}

// User is the persisted account, minus the credential hash.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthService defines the authentication operations.
//
//nolint:revive // stable public name across the module
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, input LoginInput) (*AuthResult, error)
	GetUser(ctx context.Context, userID string) (*User, error)
}

type authService struct {
	db  *sql.DB
	bus eventbus.EventBus
}

// NewService creates an AuthService backed by the provided DB.
func NewService(db *sql.DB) AuthService {
	return &authService{db: db}
}

// NewServiceWithBus additionally publishes activity entries on the bus.
func NewServiceWithBus(db *sql.DB, bus eventbus.EventBus) AuthService {
	return &authService{db: db, bus: bus}
}

// Register creates a user and returns a JWT. Plaintext passwords are never
// stored.
func (s *authService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	hash, err := pkgauth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	userID := uuid.NewV7().String()
	now := time.Now().UTC().Format(time.RFC3339Nano)

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO user_account (id, email, password_hash, created_at)
		VALUES (?, ?, ?, ?)
	`, userID, input.Email, hash, now)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := pkgauth.GenerateJWT(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate JWT: %w", err)
	}

	s.publish(userID, "register")
	return &AuthResult{Token: token, UserID: userID}, nil
}

// Login verifies credentials and returns a JWT. Any lookup or verification
// failure yields ErrInvalidCredentials.
func (s *authService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	var userID, passwordHash string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, password_hash
		FROM user_account
		WHERE email = ?
		LIMIT 1
	`, input.Email).Scan(&userID, &passwordHash)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !pkgauth.VerifyPassword(passwordHash, input.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := pkgauth.GenerateJWT(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate JWT: %w", err)
	}

	s.publish(userID, "login")
	return &AuthResult{Token: token, UserID: userID}, nil
}

// GetUser returns the account for an authenticated user id.
func (s *authService) GetUser(ctx context.Context, userID string) (*User, error) {
	var (
		u         User
		createdAt string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, created_at
		FROM user_account
		WHERE id = ?
	`, userID).Scan(&u.ID, &u.Email, &createdAt)
	if err != nil {
		return nil, err
	}
	u.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	return &u, nil
}

func (s *authService) publish(userID, action string) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(activity.TopicAuth, activity.Entry{UserID: userID, Action: action})
}

// isUniqueViolation checks for a sqlite UNIQUE constraint failure; the
// driver surfaces it only through the error message.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
