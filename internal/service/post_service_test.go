package service

import (
	"context"
	"errors"
	"testing"

	"blog_api/internal/models"
)

// fakePostRepo records inputs and returns canned outputs.
type fakePostRepo struct {
	post  *models.Post
	posts []models.Post
	err   error

	gotOwner int
	gotPost  int
	gotSkip  int
	gotLimit int
	gotPatch models.PostPatch
	gotTitle string
	calls    []string
}

func (f *fakePostRepo) List(_ context.Context, skip, limit int) ([]models.Post, error) {
	f.calls = append(f.calls, "List")
	f.gotSkip, f.gotLimit = skip, limit
	return f.posts, f.err
}

func (f *fakePostRepo) ListByOwner(_ context.Context, ownerID, skip, limit int) ([]models.Post, error) {
	f.calls = append(f.calls, "ListByOwner")
	f.gotOwner, f.gotSkip, f.gotLimit = ownerID, skip, limit
	return f.posts, f.err
}

func (f *fakePostRepo) Find(_ context.Context, postID, ownerID int) (*models.Post, error) {
	f.calls = append(f.calls, "Find")
	f.gotPost, f.gotOwner = postID, ownerID
	return f.post, f.err
}

func (f *fakePostRepo) Create(_ context.Context, ownerID int, title, content string) (models.Post, error) {
	f.calls = append(f.calls, "Create")
	f.gotOwner, f.gotTitle = ownerID, title
	if f.err != nil {
		return models.Post{}, f.err
	}
	return models.Post{ID: 1, Title: title, Content: content, OwnerID: ownerID}, nil
}

func (f *fakePostRepo) Update(_ context.Context, ownerID, postID int, patch models.PostPatch) (*models.Post, error) {
	f.calls = append(f.calls, "Update")
	f.gotOwner, f.gotPost, f.gotPatch = ownerID, postID, patch
	return f.post, f.err
}

func (f *fakePostRepo) Delete(_ context.Context, ownerID, postID int) (*models.Post, error) {
	f.calls = append(f.calls, "Delete")
	f.gotOwner, f.gotPost = ownerID, postID
	return f.post, f.err
}

func TestPostService_CreatePost(t *testing.T) {
	repo := &fakePostRepo{}
	svc := NewPostService(repo)

	p, err := svc.CreatePost(context.Background(), 7, PostInput{Title: "t", Content: "c"})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	if p.OwnerID != 7 || p.Title != "t" || p.Content != "c" {
		t.Fatalf("unexpected post: %+v", p)
	}
}

func TestPostService_ListsPassWindow(t *testing.T) {
	repo := &fakePostRepo{posts: []models.Post{{ID: 1}, {ID: 2}}}
	svc := NewPostService(repo)

	posts, err := svc.ListPosts(context.Background(), Window{Skip: 5, Limit: 10})
	if err != nil || len(posts) != 2 {
		t.Fatalf("ListPosts: got (%v, %v)", posts, err)
	}
	if repo.gotSkip != 5 || repo.gotLimit != 10 {
		t.Fatalf("window not forwarded: skip=%d limit=%d", repo.gotSkip, repo.gotLimit)
	}

	if _, err := svc.ListUserPosts(context.Background(), 3, DefaultWindow()); err != nil {
		t.Fatalf("ListUserPosts: %v", err)
	}
	if repo.gotOwner != 3 || repo.gotSkip != DefaultSkip || repo.gotLimit != DefaultLimit {
		t.Fatalf("unexpected forwarded args: owner=%d skip=%d limit=%d", repo.gotOwner, repo.gotSkip, repo.gotLimit)
	}
}

func TestPostService_UpdateAndDelete_NotFound(t *testing.T) {
	repo := &fakePostRepo{}
	svc := NewPostService(repo)
	title := "T2"

	if _, err := svc.UpdatePost(context.Background(), 1, 2, models.PostPatch{Title: &title}); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("UpdatePost: expected ErrPostNotFound, got %v", err)
	}
	if repo.gotOwner != 1 || repo.gotPost != 2 || repo.gotPatch.Title == nil || *repo.gotPatch.Title != "T2" {
		t.Fatalf("update args not forwarded: %+v", repo)
	}
	if _, err := svc.DeletePost(context.Background(), 1, 2); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("DeletePost: expected ErrPostNotFound, got %v", err)
	}
}

func TestPostService_UpdateAndDelete_Found(t *testing.T) {
	repo := &fakePostRepo{post: &models.Post{ID: 2, Title: "t", Content: "c", OwnerID: 1}}
	svc := NewPostService(repo)

	up, err := svc.UpdatePost(context.Background(), 1, 2, models.PostPatch{})
	if err != nil || up.ID != 2 {
		t.Fatalf("UpdatePost: got (%+v, %v)", up, err)
	}
	del, err := svc.DeletePost(context.Background(), 1, 2)
	if err != nil || del.ID != 2 || del.Title != "t" {
		t.Fatalf("DeletePost: got (%+v, %v)", del, err)
	}
}

func TestPostService_StorageErrorsPropagate(t *testing.T) {
	boom := errors.New("boom")
	svc := NewPostService(&fakePostRepo{err: boom})
	ctx := context.Background()

	if _, err := svc.CreatePost(ctx, 1, PostInput{Title: "t", Content: "c"}); !errors.Is(err, boom) {
		t.Errorf("CreatePost: %v", err)
	}
	if _, err := svc.ListPosts(ctx, DefaultWindow()); !errors.Is(err, boom) {
		t.Errorf("ListPosts: %v", err)
	}
	if _, err := svc.UpdatePost(ctx, 1, 1, models.PostPatch{}); !errors.Is(err, boom) || errors.Is(err, ErrPostNotFound) {
		t.Errorf("UpdatePost: %v", err)
	}
	if _, err := svc.DeletePost(ctx, 1, 1); !errors.Is(err, boom) || errors.Is(err, ErrPostNotFound) {
		t.Errorf("DeletePost: %v", err)
	}
}
