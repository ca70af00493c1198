package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"blog_api/internal/models"
	"blog_api/internal/repository"
	"blog_api/internal/service"
	"blog_api/internal/session"

	"github.com/gin-gonic/gin"
)

// ---- Session fakes ----

var errNoSQL = errors.New("fake session runs no SQL")

type fakeSession struct {
	pingErr  error
	closeErr error
	closed   atomic.Int32
}

func (s *fakeSession) ExecContext(context.Context, string, ...any) (sql.Result, error) {
	return nil, errNoSQL
}
func (s *fakeSession) QueryContext(context.Context, string, ...any) (*sql.Rows, error) {
	return nil, errNoSQL
}
func (s *fakeSession) QueryRowContext(context.Context, string, ...any) *sql.Row { return nil }
func (s *fakeSession) PingContext(context.Context) error                        { return s.pingErr }
func (s *fakeSession) Close() error {
	s.closed.Add(1)
	return s.closeErr
}

type fakeAcquirer struct {
	sess     *fakeSession
	err      error
	acquired atomic.Int32
}

func (a *fakeAcquirer) Acquire(context.Context) (session.Session, error) {
	if a.err != nil {
		return nil, a.err
	}
	a.acquired.Add(1)
	return a.sess, nil
}

// ---- Service mocks ----

type mockUsers struct {
	user models.User
	err  error

	lastEmail    string
	lastPassword string
	calls        int
}

func (m *mockUsers) CreateUser(_ context.Context, email, password string) (models.User, error) {
	m.calls++
	m.lastEmail, m.lastPassword = email, password
	return m.user, m.err
}

type mockPosts struct {
	mu sync.Mutex

	post    models.Post
	posts   []models.Post
	err     error
	panicOn string

	lastOwner  int
	lastPost   int
	lastWindow service.Window
	lastInput  service.PostInput
	lastPatch  models.PostPatch
	listCalls  int
}

func (m *mockPosts) maybePanic(op string) {
	if m.panicOn == op {
		panic("boom in " + op)
	}
}

func (m *mockPosts) CreatePost(_ context.Context, ownerID int, in service.PostInput) (models.Post, error) {
	m.lastOwner, m.lastInput = ownerID, in
	return m.post, m.err
}

func (m *mockPosts) ListPosts(_ context.Context, w service.Window) ([]models.Post, error) {
	m.maybePanic("ListPosts")
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls++
	m.lastWindow = w
	return m.posts, m.err
}

func (m *mockPosts) ListUserPosts(_ context.Context, ownerID int, w service.Window) ([]models.Post, error) {
	m.lastOwner, m.lastWindow = ownerID, w
	return m.posts, m.err
}

func (m *mockPosts) UpdatePost(_ context.Context, ownerID, postID int, patch models.PostPatch) (models.Post, error) {
	m.lastOwner, m.lastPost, m.lastPatch = ownerID, postID, patch
	return m.post, m.err
}

func (m *mockPosts) DeletePost(_ context.Context, ownerID, postID int) (models.Post, error) {
	m.lastOwner, m.lastPost = ownerID, postID
	return m.post, m.err
}

func (m *mockPosts) listCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listCalls
}

// ---- Shared Test Helpers ----

func newTestHandler(s *service.Service, acq *fakeAcquirer) *Handler {
	gin.SetMode(gin.TestMode)
	return NewHandler(acq, func(repository.Querier) *service.Service { return s }, nil)
}

func newTestRouter(s *service.Service) (*gin.Engine, *fakeAcquirer) {
	acq := &fakeAcquirer{sess: &fakeSession{}}
	return newTestHandler(s, acq).InitRoutes(), acq
}

func doRequest(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		_ = json.NewEncoder(&buf).Encode(b)
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeDetail(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp errorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal error body %q: %v", w.Body.String(), err)
	}
	return resp.Detail
}
