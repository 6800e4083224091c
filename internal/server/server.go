package server

import (
	"context"
	"net/http"
	"time"

	"github.com/agrifield/agridir-be/internal/auth"
	"github.com/agrifield/agridir-be/internal/config"
	"github.com/agrifield/agridir-be/internal/http/handlers"
	"github.com/agrifield/agridir-be/internal/media"
	"github.com/agrifield/agridir-be/internal/middleware"
	"github.com/agrifield/agridir-be/internal/storage"
)

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, store storage.Store) *Server {
	mux := http.NewServeMux()
	handlers.NewHealthHandler(time.Now()).Register(mux)

	tokenManager := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	session := middleware.NewSession(tokenManager, store)

	handlers.NewAuthHandler(store, store, tokenManager, cfg.CookieSecure).Register(mux, session)
	handlers.NewSoilHandler(store, store).Register(mux, session)
	handlers.NewDistributorHandler(store, store).Register(mux, session)
	handlers.NewLogsHandler(store).Register(mux, session)

	var presigner *media.Presigner
	if cfg.MediaEnabled() {
		presigner = media.NewPresigner(media.Options{
			Bucket:        cfg.S3Bucket,
			Region:        cfg.S3Region,
			Endpoint:      cfg.S3Endpoint,
			AccessKey:     cfg.S3AccessKey,
			SecretKey:     cfg.S3SecretKey,
			PublicBaseURL: cfg.S3PublicBaseURL,
		})
	}
	handlers.NewMediaHandler(presigner).Register(mux, session)

	handler := middleware.CORS(cfg.CORSOrigins, middleware.Logging(mux))

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
