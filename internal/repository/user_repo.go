package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"blog_api/internal/models"
	"blog_api/internal/repository/db"
)

type UserRepository struct {
	q Querier
	d db.Dialect
}

func NewUserRepository(q Querier, d db.Dialect) *UserRepository {
	return &UserRepository{q: q, d: d}
}

// Ensure implementation of Users interface at compile time.
var _ Users = (*UserRepository)(nil)

const (
	insertUserSQL        = `INSERT INTO users (email, hashed_password, is_active) VALUES (?, ?, ?)`
	selectUserByEmailSQL = `SELECT id, email, hashed_password, is_active FROM users WHERE email = ? LIMIT 1`
)

// Create inserts a new active user and returns the stored row.
func (r *UserRepository) Create(ctx context.Context, email, hashedPassword string) (models.User, error) {
	id, err := insertID(ctx, r.q, r.d, insertUserSQL, email, hashedPassword, true)
	if err != nil {
		if r.d.IsUniqueViolation(err) {
			return models.User{}, fmt.Errorf("insert user %q: %w", email, ErrDuplicateEmail)
		}
		return models.User{}, fmt.Errorf("insert user %q: %w", email, err)
	}
	return models.User{
		ID:             id,
		Email:          email,
		HashedPassword: hashedPassword,
		IsActive:       true,
		Posts:          []models.Post{},
	}, nil
}

// FindByEmail fetches a user by e-mail. Returns (nil, nil) if not found.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.q.QueryRowContext(ctx, r.d.Rebind(selectUserByEmailSQL), email).
		Scan(&u.ID, &u.Email, &u.HashedPassword, &u.IsActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user %q: %w", email, err)
	}
	u.Posts = []models.Post{}
	return &u, nil
}
