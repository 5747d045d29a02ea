package httpserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"profile-app-go/internal/config"
	"profile-app-go/internal/transport/httpserver/handler"
	authmw "profile-app-go/internal/transport/httpserver/middleware"
	"profile-app-go/pkg/logger"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(authmw.NewCORS(cfg.CORS.AllowedOrigins))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)
		r.Post("/auth/login", handlers.Login)

		auth := authmw.NewJWTAuth(cfg.Auth, log)
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)

			r.Get("/users/profile", handlers.GetProfile)
			r.Put("/users/profile", handlers.UpdateProfile)
			r.Post("/users/profile/avatar", handlers.UploadAvatar)
		})
	})

	// serve stored avatars back under their public path
	prefix := strings.TrimSuffix(cfg.Uploads.PublicPrefix, "/")
	r.Handle(prefix+"/*", http.StripPrefix(prefix+"/", http.FileServer(http.Dir(cfg.Uploads.Dir))))

	return r
}
