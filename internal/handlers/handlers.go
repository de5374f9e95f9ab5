package handlers

import (
	"Watchlist/internal/auth"
	"Watchlist/internal/config"
	"Watchlist/internal/middleware"
	"Watchlist/internal/service"
	"Watchlist/internal/storage"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	userService *service.UserService,
	entryService *service.EntryService,
	issuer *auth.Issuer,
	store storage.Storage,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.WithRecovery)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithGzip)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{config.CORSOrigin},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Handlers
	userHandler := NewUserHandler(userService, issuer, logger)
	entryHandler := NewEntryHandler(entryService, logger)
	uploadHandler := NewUploadHandler(store, logger, config)

	r.Get("/health", Health)

	// Auth routes
	r.Post("/api/auth/register", userHandler.Register)
	r.Post("/api/auth/login", userHandler.Login)

	// остальное API только с токеном
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(issuer))

		r.Route("/api/entries", func(r chi.Router) {
			r.Get("/", entryHandler.List)
			r.Post("/", entryHandler.Create)
			r.Get("/{id}", entryHandler.Get)
			r.Put("/{id}", entryHandler.Update)
			r.Delete("/{id}", entryHandler.Delete)
		})

		r.Get("/api/profile/profile", userHandler.GetProfile)
		r.Put("/api/profile/profile", userHandler.UpdateProfile)

		r.Post("/api/upload/image", uploadHandler.UploadImage)
	})

	// локально сохранённые файлы раздаём сами, S3 отдаёт их по своему URL
	if local, ok := store.(*storage.LocalStorage); ok {
		fs := http.StripPrefix(storage.LocalURLPrefix+"/", http.FileServer(http.Dir(local.Dir())))
		r.Handle(storage.LocalURLPrefix+"/*", fs)
	}

	return &Handler{Router: r}
}

// Health проверка живости сервера
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
