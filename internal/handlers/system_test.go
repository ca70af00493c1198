package handlers

import (
	"compress/gzip"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"blog_api/internal/models"
	"blog_api/internal/service"
)

func TestRoot(t *testing.T) {
	r, _ := newTestRouter(&service.Service{})

	w := doRequest(r, http.MethodGet, "/", nil)
	if w.Code != http.StatusOK || w.Body.String() != `{"message":"Hello World"}` {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
}

func TestHealth(t *testing.T) {
	cases := []struct {
		name       string
		acq        *fakeAcquirer
		wantStatus int
		wantBody   string
	}{
		{"ok", &fakeAcquirer{sess: &fakeSession{}}, http.StatusOK, "ok"},
		{"ping fails", &fakeAcquirer{sess: &fakeSession{pingErr: errors.New("db gone")}}, http.StatusServiceUnavailable, "unavailable"},
		{"acquire fails", &fakeAcquirer{err: errors.New("pool closed")}, http.StatusServiceUnavailable, "unavailable"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestHandler(&service.Service{}, tc.acq).InitRoutes()

			w := doRequest(r, http.MethodGet, "/health", nil)
			if w.Code != tc.wantStatus {
				t.Fatalf("status=%d want %d", w.Code, tc.wantStatus)
			}
			var body map[string]string
			_ = json.Unmarshal(w.Body.Bytes(), &body)
			if body["status"] != tc.wantBody {
				t.Fatalf("status field=%q want %q", body["status"], tc.wantBody)
			}
			if tc.acq.sess != nil && tc.acq.sess.closed.Load() != 1 {
				t.Fatalf("health session not released")
			}
		})
	}
}

func TestWithSession_AcquireFailure(t *testing.T) {
	users := &mockUsers{}
	acq := &fakeAcquirer{err: errors.New("too many connections")}
	r := newTestHandler(&service.Service{Users: users}, acq).InitRoutes()

	w := doRequest(r, http.MethodPost, "/users/", map[string]string{"email": "a@x.com", "password": "p"})
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if d := decodeDetail(t, w); d != "storage unavailable" {
		t.Fatalf("detail=%q", d)
	}
	if users.calls != 0 {
		t.Fatalf("handler must not run without a session")
	}
}

func TestWithSession_ReleasedOnPanic(t *testing.T) {
	posts := &mockPosts{panicOn: "ListPosts"}
	r, acq := newTestRouter(&service.Service{Posts: posts})

	w := doRequest(r, http.MethodGet, "/posts/", nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected recovery to answer 500, got %d", w.Code)
	}
	if acq.acquired.Load() != 1 || acq.sess.closed.Load() != 1 {
		t.Fatalf("acquired=%d closed=%d, want 1/1", acq.acquired.Load(), acq.sess.closed.Load())
	}
}

func TestWithSession_ReleaseErrorDoesNotChangeResponse(t *testing.T) {
	acq := &fakeAcquirer{sess: &fakeSession{closeErr: errors.New("conn busy")}}
	r := newTestHandler(&service.Service{Posts: &mockPosts{posts: []models.Post{}}}, acq).InitRoutes()

	w := doRequest(r, http.MethodGet, "/posts/", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestRequestID(t *testing.T) {
	r, _ := newTestRouter(&service.Service{})

	w := doRequest(r, http.MethodGet, "/", nil)
	if w.Header().Get(requestIDHeader) == "" {
		t.Fatalf("expected a generated request id")
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get(requestIDHeader); got != "abc-123" {
		t.Fatalf("request id not propagated, got %q", got)
	}
}

func TestGzipResponses(t *testing.T) {
	posts := make([]models.Post, 0, 50)
	for i := 1; i <= 50; i++ {
		posts = append(posts, models.Post{ID: i, Title: "title", Content: "some repeated content", OwnerID: 1})
	}
	r, _ := newTestRouter(&service.Service{Posts: &mockPosts{posts: posts}})

	req := httptest.NewRequest(http.MethodGet, "/posts/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Header().Get("Content-Encoding") != "gzip" {
		t.Fatalf("expected gzip encoding, headers=%v", w.Header())
	}
	zr, err := gzip.NewReader(w.Body)
	if err != nil {
		t.Fatalf("gzip reader: %v", err)
	}
	raw, _ := io.ReadAll(zr)
	var got []models.Post
	if err := json.Unmarshal(raw, &got); err != nil || len(got) != 50 {
		t.Fatalf("unexpected decompressed body (%v): %d posts", err, len(got))
	}
}

func TestWithSession_InvalidInputAcquiresNothing(t *testing.T) {
	cases := []struct {
		name   string
		method string
		path   string
		body   any
	}{
		{"malformed user body", http.MethodPost, "/users/", "{not json"},
		{"missing post fields", http.MethodPost, "/users/1/post/", map[string]string{"title": "t"}},
		{"bad user id", http.MethodGet, "/users/abc/posts/", nil},
		{"negative window", http.MethodGet, "/posts/?limit=-1", nil},
		{"bad post id", http.MethodDelete, "/users/1/posts/x", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, acq := newTestRouter(&service.Service{Users: &mockUsers{}, Posts: &mockPosts{}})

			w := doRequest(r, tc.method, tc.path, tc.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
			}
			if n := acq.acquired.Load(); n != 0 {
				t.Fatalf("session acquired %d times for rejected input", n)
			}
			if n := acq.sess.closed.Load(); n != 0 {
				t.Fatalf("session closed %d times without being acquired", n)
			}
		})
	}
}
