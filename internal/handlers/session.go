package handlers

import (
	"net/http"

	"blog_api/internal/service"
	"blog_api/internal/session"

	"github.com/gin-gonic/gin"
)

// gin context keys
const (
	ctxSessionKey   = "storage_session"
	ctxRequestIDKey = "request_id"
)

const errStorageUnavailable = "storage unavailable"

// requestSession holds the storage session of one request once it is acquired.
type requestSession struct {
	sess     session.Session
	services *service.Service
}

// withSession scopes a storage session to the request. The session is only
// acquired by svc, after the handler has read its input, and is released when
// the handler chain unwinds, panics included.
func (h *Handler) withSession(c *gin.Context) {
	rs := &requestSession{}
	defer func() {
		if rs.sess == nil {
			return
		}
		if cerr := rs.sess.Close(); cerr != nil {
			h.log.Errorw("session_release_failed", "err", cerr, "request_id", c.GetString(ctxRequestIDKey))
		}
	}()

	c.Set(ctxSessionKey, rs)
	c.Next()
}

// svc acquires the request's session on first use and returns the services
// bound to it. On failure it answers 503 and reports false.
func (h *Handler) svc(c *gin.Context) (*service.Service, bool) {
	rs := c.MustGet(ctxSessionKey).(*requestSession)
	if rs.services != nil {
		return rs.services, true
	}

	s, err := h.sessions.Acquire(c.Request.Context())
	if err != nil {
		h.log.Errorw("session_acquire_failed", "err", err, "request_id", c.GetString(ctxRequestIDKey))
		abortDetail(c, http.StatusServiceUnavailable, errStorageUnavailable)
		return nil, false
	}
	rs.sess = s
	rs.services = h.services(s)
	return rs.services, true
}
