package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"blog_api/internal/models"
	"blog_api/internal/repository/db"
)

// ErrDuplicateEmail is returned when an insert hits the unique e-mail constraint.
var ErrDuplicateEmail = errors.New("email already exists")

// Querier is a storage session. *sql.DB, *sql.Conn and *sql.Tx all satisfy it.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Users interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, email, hashedPassword string) (models.User, error)
}

type Posts interface {
	List(ctx context.Context, skip, limit int) ([]models.Post, error)
	ListByOwner(ctx context.Context, ownerID, skip, limit int) ([]models.Post, error)
	Find(ctx context.Context, postID, ownerID int) (*models.Post, error)
	Create(ctx context.Context, ownerID int, title, content string) (models.Post, error)
	Update(ctx context.Context, ownerID, postID int, patch models.PostPatch) (*models.Post, error)
	Delete(ctx context.Context, ownerID, postID int) (*models.Post, error)
}

type Repository struct {
	Users Users
	Posts Posts
}

// NewRepository binds all repositories to one session.
func NewRepository(q Querier, d db.Dialect) *Repository {
	return &Repository{
		Users: NewUserRepository(q, d),
		Posts: NewPostRepository(q, d),
	}
}

// insertID runs an INSERT and returns the generated primary key.
func insertID(ctx context.Context, q Querier, d db.Dialect, query string, args ...any) (int, error) {
	if d.UseReturning() {
		var id int
		if err := q.QueryRowContext(ctx, d.Rebind(query)+" RETURNING id", args...).Scan(&id); err != nil {
			return 0, err
		}
		return id, nil
	}

	res, err := q.ExecContext(ctx, d.Rebind(query), args...)
	if err != nil {
		return 0, err
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id: %w", err)
	}
	return int(lastID), nil
}
