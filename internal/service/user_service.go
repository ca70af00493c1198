package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"blog_api/internal/models"
	"blog_api/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// Domain errors for account flows.
var (
	ErrEmailRegistered = errors.New("email already registered")
	ErrInvalidPassword = errors.New("invalid password")
)

// UserService handles account creation.
type UserService struct {
	users repository.Users
}

func NewUserService(repo repository.Users) *UserService {
	return &UserService{users: repo}
}

// CreateUser rejects known e-mails up front, hashes the password and stores the user.
func (s *UserService) CreateUser(ctx context.Context, email, password string) (models.User, error) {
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return models.User{}, err
	}
	if existing != nil {
		return models.User{}, ErrEmailRegistered
	}

	hash, err := hashPassword(password)
	if err != nil {
		return models.User{}, err
	}

	u, err := s.users.Create(ctx, email, hash)
	if err != nil {
		// lost a race with a concurrent sign-up after the pre-check
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return models.User{}, ErrEmailRegistered
		}
		return models.User{}, err
	}
	return u, nil
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", fmt.Errorf("%w: password is empty", ErrInvalidPassword)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", fmt.Errorf("%w: %v", ErrInvalidPassword, err)
		}
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
