package service

import (
	"context"

	"blog_api/internal/models"
	"blog_api/internal/repository"
)

// Users exposes account creation.
type Users interface {
	CreateUser(ctx context.Context, email, password string) (models.User, error)
}

// Posts exposes owner-scoped post management and windowed listings.
type Posts interface {
	CreatePost(ctx context.Context, ownerID int, in PostInput) (models.Post, error)
	ListPosts(ctx context.Context, w Window) ([]models.Post, error)
	ListUserPosts(ctx context.Context, ownerID int, w Window) ([]models.Post, error)
	UpdatePost(ctx context.Context, ownerID, postID int, patch models.PostPatch) (models.Post, error)
	DeletePost(ctx context.Context, ownerID, postID int) (models.Post, error)
}

// Service aggregates all sub-services for one storage session.
type Service struct {
	Users
	Posts
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository) *Service {
	return &Service{
		Users: NewUserService(repos.Users),
		Posts: NewPostService(repos.Posts),
	}
}
