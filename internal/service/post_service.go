package service

import (
	"context"
	"errors"

	"blog_api/internal/models"
	"blog_api/internal/repository"
)

// ErrPostNotFound means no post matches both the id and the owner.
var ErrPostNotFound = errors.New("post not found")

type PostService struct {
	posts repository.Posts
}

func NewPostService(repo repository.Posts) *PostService {
	return &PostService{posts: repo}
}

// CreatePost stores an unpublished post. Owner existence is left to storage.
func (s *PostService) CreatePost(ctx context.Context, ownerID int, in PostInput) (models.Post, error) {
	return s.posts.Create(ctx, ownerID, in.Title, in.Content)
}

func (s *PostService) ListPosts(ctx context.Context, w Window) ([]models.Post, error) {
	return s.posts.List(ctx, w.Skip, w.Limit)
}

func (s *PostService) ListUserPosts(ctx context.Context, ownerID int, w Window) ([]models.Post, error) {
	return s.posts.ListByOwner(ctx, ownerID, w.Skip, w.Limit)
}

// UpdatePost applies a partial update; absent posts yield ErrPostNotFound.
func (s *PostService) UpdatePost(ctx context.Context, ownerID, postID int, patch models.PostPatch) (models.Post, error) {
	p, err := s.posts.Update(ctx, ownerID, postID, patch)
	if err != nil {
		return models.Post{}, err
	}
	if p == nil {
		return models.Post{}, ErrPostNotFound
	}
	return *p, nil
}

// DeletePost removes a post and returns its last state.
func (s *PostService) DeletePost(ctx context.Context, ownerID, postID int) (models.Post, error) {
	p, err := s.posts.Delete(ctx, ownerID, postID)
	if err != nil {
		return models.Post{}, err
	}
	if p == nil {
		return models.Post{}, ErrPostNotFound
	}
	return *p, nil
}
