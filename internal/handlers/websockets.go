package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"blog_api/internal/models"
	"blog_api/internal/service"
	"blog_api/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Send/receive timing configuration and message size limits.
const (
	writeWait        = 10 * time.Second
	pongWait         = 60 * time.Second
	pingPeriod       = (pongWait * 9) / 10
	maxMsgSize       = 1 << 12 // 4 KB
	defaultInterval  = 1 * time.Second
	maxInterval      = 10 * time.Second
	maxIntervalMilli = 10_000 // 10s in ms

	msgTypePosts = "posts"
)

// Envelope used for WebSocket messages.
type wsEnvelope struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data"`
	Error string      `json:"error,omitempty"`
}

// originChecker allows requests without an Origin header (non-browser
// clients) and those whose Origin is listed. A nil result keeps gorilla's
// same-origin check.
func originChecker(allowed []string) func(*http.Request) bool {
	if len(allowed) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		set[strings.ToLower(o)] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[strings.ToLower(origin)]
		return ok
	}
}

// @Summary      Live post feed
// @Description  WebSocket stream of the latest posts window, pushed on connect and on every tick.
// @Tags         posts
// @Param        interval     query  string  false  "tick as Go duration, max 10s"  default(1s)
// @Param        interval_ms  query  int     false  "tick in milliseconds, max 10000"
// @Param        skip         query  int     false  "rows to skip"  default(0)
// @Param        limit        query  int     false  "max rows"      default(100)
// @Success      101  {string}  string  "switching protocols"
// @Failure      400  {object}  errorResponse
// @Router       /ws/posts [get]
func (h *Handler) postFeed(c *gin.Context) {
	var q windowQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.badRequest(c, "ws_bad_request_query", err)
		return
	}
	interval := h.parseInterval(c)

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Errorw("ws_upgrade_failed", "err", err)
		return
	}
	defer func() { _ = conn.Close() }()

	// Configure read limits and pong handler to extend read deadline.
	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// Reader goroutine to handle control frames and detect disconnects.
	done := make(chan struct{})
	go h.startReader(conn, done)

	ticker := time.NewTicker(interval)
	ping := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		ping.Stop()
	}()

	ctx := c.Request.Context()
	w := q.window()

	if err := h.sendPosts(ctx, conn, w); err != nil {
		h.log.Infow("ws_write_failed_initial", "err", err)
		return
	}

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.log.Infow("ws_ping_failed", "err", err)
				return
			}
		case <-ticker.C:
			if err := h.sendPosts(ctx, conn, w); err != nil {
				h.log.Infow("ws_write_failed", "err", err)
				return
			}
		}
	}
}

// parseInterval reads ?interval=2s or ?interval_ms=2000 with bounds.
func (h *Handler) parseInterval(c *gin.Context) time.Duration {
	if s := c.Query("interval"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 && d <= maxInterval {
			return d
		}
	}

	if ms := c.Query("interval_ms"); ms != "" {
		if v, err := strconv.Atoi(ms); err == nil && v > 0 && v <= maxIntervalMilli {
			return time.Duration(v) * time.Millisecond
		}
	}

	return defaultInterval
}

// startReader drains incoming messages to handle control frames and detect closure.
func (h *Handler) startReader(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.log.Infow("ws_read_closed", "err", err)
			return
		}
	}
}

// sendPosts reads the window in its own session and writes it with a deadline.
// A failed read is reported to the client and keeps the stream open.
func (h *Handler) sendPosts(ctx context.Context, conn *websocket.Conn, w service.Window) error {
	var posts []models.Post
	err := session.Do(ctx, h.sessions, func(s session.Session) error {
		var err error
		posts, err = h.services(s).ListPosts(ctx, w)
		return err
	})

	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err != nil {
		h.log.Errorw("ws_list_posts_failed", "err", err)
		return conn.WriteJSON(wsEnvelope{Type: msgTypePosts, Error: errInternal})
	}
	return conn.WriteJSON(wsEnvelope{Type: msgTypePosts, Data: posts})
}
