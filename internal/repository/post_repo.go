package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"blog_api/internal/models"
	"blog_api/internal/repository/db"
)

type PostRepository struct {
	q Querier
	d db.Dialect
}

func NewPostRepository(q Querier, d db.Dialect) *PostRepository {
	return &PostRepository{q: q, d: d}
}

var _ Posts = (*PostRepository)(nil)

// Rows are returned in insertion order.
const (
	selectPostsSQL        = `SELECT id, title, content, published, owner_id FROM posts ORDER BY id LIMIT ? OFFSET ?`
	selectPostsByOwnerSQL = `SELECT id, title, content, published, owner_id FROM posts WHERE owner_id = ? ORDER BY id LIMIT ? OFFSET ?`
	selectPostSQL         = `SELECT id, title, content, published, owner_id FROM posts WHERE id = ? AND owner_id = ? LIMIT 1`
	insertPostSQL         = `INSERT INTO posts (title, content, published, owner_id) VALUES (?, ?, ?, ?)`
	deletePostSQL         = `DELETE FROM posts WHERE id = ? AND owner_id = ?`
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(s rowScanner) (models.Post, error) {
	var p models.Post
	err := s.Scan(&p.ID, &p.Title, &p.Content, &p.Published, &p.OwnerID)
	return p, err
}

// List returns a window of all posts.
func (r *PostRepository) List(ctx context.Context, skip, limit int) ([]models.Post, error) {
	return r.list(ctx, selectPostsSQL, limit, skip)
}

// ListByOwner returns a window of the posts owned by ownerID.
func (r *PostRepository) ListByOwner(ctx context.Context, ownerID, skip, limit int) ([]models.Post, error) {
	return r.list(ctx, selectPostsByOwnerSQL, ownerID, limit, skip)
}

func (r *PostRepository) list(ctx context.Context, query string, args ...any) ([]models.Post, error) {
	rows, err := r.q.QueryContext(ctx, r.d.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("select posts: %w", err)
	}
	defer rows.Close()

	out := make([]models.Post, 0)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}
	return out, nil
}

// Find returns the post only when both id and owner match. Returns (nil, nil) otherwise.
func (r *PostRepository) Find(ctx context.Context, postID, ownerID int) (*models.Post, error) {
	p, err := scanPost(r.q.QueryRowContext(ctx, r.d.Rebind(selectPostSQL), postID, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select post %d of user %d: %w", postID, ownerID, err)
	}
	return &p, nil
}

// Create inserts an unpublished post for ownerID.
func (r *PostRepository) Create(ctx context.Context, ownerID int, title, content string) (models.Post, error) {
	id, err := insertID(ctx, r.q, r.d, insertPostSQL, title, content, false, ownerID)
	if err != nil {
		return models.Post{}, fmt.Errorf("insert post for user %d: %w", ownerID, err)
	}
	return models.Post{
		ID:      id,
		Title:   title,
		Content: content,
		OwnerID: ownerID,
	}, nil
}

// Update applies the non-nil fields of patch. Returns (nil, nil) when the
// post does not exist for this owner. An empty patch issues no statement.
func (r *PostRepository) Update(ctx context.Context, ownerID, postID int, patch models.PostPatch) (*models.Post, error) {
	post, err := r.Find(ctx, postID, ownerID)
	if err != nil || post == nil {
		return nil, err
	}
	if patch.Empty() {
		return post, nil
	}

	var (
		sets []string
		args []any
	)
	if patch.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.Content != nil {
		sets = append(sets, "content = ?")
		args = append(args, *patch.Content)
	}
	args = append(args, postID, ownerID)
	q := "UPDATE posts SET " + strings.Join(sets, ", ") + " WHERE id = ? AND owner_id = ?"

	res, err := r.q.ExecContext(ctx, r.d.Rebind(q), args...)
	if err != nil {
		return nil, fmt.Errorf("update post %d of user %d: %w", postID, ownerID, err)
	}
	gone, err := noRowsAffected(res)
	if err != nil {
		return nil, fmt.Errorf("update post %d of user %d: %w", postID, ownerID, err)
	}
	if gone {
		return nil, nil
	}

	patch.ApplyTo(post)
	return post, nil
}

// Delete removes the post and returns it as it was before deletion.
// Returns (nil, nil) when there is nothing to delete.
func (r *PostRepository) Delete(ctx context.Context, ownerID, postID int) (*models.Post, error) {
	post, err := r.Find(ctx, postID, ownerID)
	if err != nil || post == nil {
		return nil, err
	}

	res, err := r.q.ExecContext(ctx, r.d.Rebind(deletePostSQL), postID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("delete post %d of user %d: %w", postID, ownerID, err)
	}
	gone, err := noRowsAffected(res)
	if err != nil {
		return nil, fmt.Errorf("delete post %d of user %d: %w", postID, ownerID, err)
	}
	if gone {
		return nil, nil
	}
	return post, nil
}

// noRowsAffected reports a row removed by a concurrent request between Find and the write.
func noRowsAffected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n == 0, nil
}
