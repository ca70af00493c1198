package handlers

import (
	"blog_api/internal/logger"
	"blog_api/internal/repository"
	"blog_api/internal/service"
	"blog_api/internal/session"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// ServiceFactory builds the service graph bound to one storage session.
type ServiceFactory func(q repository.Querier) *service.Service

// Handler wires HTTP layer to services and logging.
type Handler struct {
	sessions session.Acquirer
	services ServiceFactory
	log      *logger.Logger
	upgrader websocket.Upgrader
}

// Option tweaks a Handler at construction.
type Option func(*Handler)

// WithAllowedOrigins restricts which browser origins may open the post feed.
// Without it only same-origin requests are upgraded; "*" allows any origin.
func WithAllowedOrigins(origins ...string) Option {
	return func(h *Handler) {
		h.upgrader.CheckOrigin = originChecker(origins)
	}
}

// NewHandler constructs a new HTTP handler with dependencies.
// A nil logger is replaced by a no-op one.
func NewHandler(sessions session.Acquirer, services ServiceFactory, log *logger.Logger, opts ...Option) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	h := &Handler{sessions: sessions, services: services, log: log}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestID,
		h.accessLog,
		gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/ws/"})),
	)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/", h.root)
	router.GET("/health", h.health)

	h.registerUserRoutes(router)
	h.registerPostRoutes(router)

	// Live feed of the latest posts; every tick opens its own session.
	router.GET("/ws/posts", h.postFeed)

	return router
}

func (h *Handler) registerUserRoutes(r *gin.Engine) {
	users := r.Group("/users", h.withSession)
	{
		users.POST("/", h.createUser)
		users.POST("/:user_id/post/", h.createPost)
		users.GET("/:user_id/posts/", h.listUserPosts)
		users.PUT("/:user_id/posts/:post_id", h.updatePost)
		users.DELETE("/:user_id/posts/:post_id", h.deletePost)
	}
}

func (h *Handler) registerPostRoutes(r *gin.Engine) {
	posts := r.Group("/posts", h.withSession)
	{
		posts.GET("/", h.listPosts)
	}
}
