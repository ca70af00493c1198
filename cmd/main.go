package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"

	_ "blog_api/docs"
	"blog_api/internal/config"
	"blog_api/internal/handlers"
	"blog_api/internal/logger"
	"blog_api/internal/repository"
	"blog_api/internal/repository/db"
	"blog_api/internal/server"
	"blog_api/internal/service"
	"blog_api/internal/session"
)

// @title        Blog API
// @version      1.0
// @description  Users and owner-scoped posts.
// @BasePath     /
func main() {
	// load configs/config.yml, .env and BLOG_* overrides
	cfg, err := config.Load(config.DefaultOptions())
	if err != nil {
		logger.New(logger.InfoLevel, logger.ConsoleFormat).Fatalw("error reading config", "err", err)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	defer func() { _ = log.Sync() }()

	dialect, err := db.DialectFor(cfg.DB.Driver)
	if err != nil {
		log.Fatalw("unsupported database driver", "driver", cfg.DB.Driver, "err", err)
	}

	sqlDB, err := db.InitDB(dialect, cfg.DB.DSN)
	if err != nil {
		log.Fatalw("failed to init database", "driver", dialect.Name(), "err", err)
	}
	defer closeDB(sqlDB, log)
	log.Infow("database ready", "driver", dialect.Name())

	// wire dependencies: one service graph per storage session
	sessions := session.NewProvider(sqlDB)
	factory := func(q repository.Querier) *service.Service {
		return service.NewService(repository.NewRepository(q, dialect))
	}
	apiHandler := handlers.NewHandler(sessions, factory, log,
		handlers.WithAllowedOrigins(cfg.HTTP.AllowedOrigins...),
	)

	srv := server.New(server.Timeouts{
		ReadHeader: cfg.HTTP.ReadHeaderTimeout,
		Read:       cfg.HTTP.ReadTimeout,
		Write:      cfg.HTTP.WriteTimeout,
		Idle:       cfg.HTTP.IdleTimeout,
	})
	runHTTPServer(srv, cfg.Port, apiHandler, log)

	waitForShutdown(srv, cfg, log)
}

func closeDB(sqlDB *sql.DB, log *logger.Logger) {
	if err := sqlDB.Close(); err != nil {
		log.Errorw("failed to close database", "err", err)
	}
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8000"
		}
		log.Infow("http server starting", "port", port)
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, cfg *config.Config, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
