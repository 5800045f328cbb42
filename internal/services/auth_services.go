package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"KobbyWearsAPI/internal/model"
	"KobbyWearsAPI/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

const (
	MinPasswordLen = 6
	MaxUsernameLen = 40
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already taken")
)

type AuthService struct {
	Users *repository.UserRepository
}

func NewAuthService(u *repository.UserRepository) *AuthService {
	return &AuthService{Users: u}
}

func (s *AuthService) validateUsername(username string) error {
	if strings.TrimSpace(username) == "" {
		return errors.New("username is required")
	}
	if len(username) > MaxUsernameLen {
		return fmt.Errorf("username too long: must be at most %d characters", MaxUsernameLen)
	}
	return nil
}

func (s *AuthService) validatePassword(pw string) error {
	if len(pw) < MinPasswordLen {
		return fmt.Errorf("password too short: must be at least %d characters", MinPasswordLen)
	}
	return nil
}

// Register creates a user with a bcrypt-hashed password and returns the id.
func (s *AuthService) Register(ctx context.Context, username, password string) (int64, error) {
	if err := s.validateUsername(username); err != nil {
		return 0, err
	}
	if err := s.validatePassword(password); err != nil {
		return 0, err
	}
	exists, err := s.Users.UsernameExists(ctx, username)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, ErrUsernameTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}
	return s.Users.CreateUser(ctx, username, string(hash))
}

// Login authenticates username + password and returns the user (without passwordhash).
func (s *AuthService) Login(ctx context.Context, username, password string) (*model.User, error) {
	u, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		// do not reveal whether the username exists
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	// zero out password before returning
	u.PasswordHash = ""
	return u, nil
}

// Profile returns the user row for an authenticated id
func (s *AuthService) Profile(ctx context.Context, userID int64) (*model.User, error) {
	return s.Users.GetByID(ctx, userID)
}

// Rename changes the username, the only mutable profile field.
func (s *AuthService) Rename(ctx context.Context, userID int64, username string) error {
	if err := s.validateUsername(username); err != nil {
		return err
	}
	exists, err := s.Users.UsernameExists(ctx, username)
	if err != nil {
		return err
	}
	if exists {
		return ErrUsernameTaken
	}
	return s.Users.UpdateUsername(ctx, userID, username)
}
