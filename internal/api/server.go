// Package api provides the HTTP API server and handlers for the BookClub application.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/bookclubapp/bookclub-server/internal/catalog"
	"github.com/bookclubapp/bookclub-server/internal/service"
	"github.com/bookclubapp/bookclub-server/internal/store"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store          *store.Store
	authService    *service.AuthService
	bookService    *service.BookService
	summaryService *service.SummaryService
	catalogClient  *catalog.Client
	router         *chi.Mux
	logger         *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(
	store *store.Store,
	authService *service.AuthService,
	bookService *service.BookService,
	summaryService *service.SummaryService,
	catalogClient *catalog.Client,
	logger *slog.Logger,
) *Server {
	s := &Server{
		store:          store,
		authService:    authService,
		bookService:    bookService,
		summaryService: summaryService,
		catalogClient:  catalogClient,
		router:         chi.NewRouter(),
		logger:         logger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
}

// setupRoutes configures all HTTP routes. Reads are public, writes require
// authentication.
func (s *Server) setupRoutes() {
	// Health check.
	s.router.Get("/health", s.handleHealthCheck)

	// API v1.
	s.router.Route("/api/v1", func(r chi.Router) {
		// Auth endpoints (public, rate limited per IP).
		r.Route("/auth", func(r chi.Router) {
			r.Use(s.rateLimitByIP(newAuthRateLimiter()))
			r.Post("/register", s.handleRegister)
			r.Post("/login", s.handleLogin)
		})

		// Books.
		r.Route("/books", func(r chi.Router) {
			r.Get("/", s.handleListBooks)
			r.Get("/recent", s.handleListRecentBooks)
			r.Get("/search", s.handleTextSearch)
			r.Post("/filter", s.handleFilteredSearch)
			r.Post("/lookup", s.handleLookup)

			r.With(s.requireAuth).Post("/", s.handleUpsertBook)

			r.Route("/{bookID}", func(r chi.Router) {
				r.With(s.requireAuth).Post("/favorite", s.handleAddToFavorites)

				r.Route("/threads", func(r chi.Router) {
					r.Get("/", s.handleListThreads)
					r.With(s.requireAuth).Post("/", s.handleCreateThread)

					r.Route("/{threadID}", func(r chi.Router) {
						r.Get("/", s.handleGetThread)
						r.Post("/views", s.handleRecordView)
						r.With(s.requireAuth).Post("/replies", s.handleReplyToThread)
					})
				})

				r.Route("/summaries", func(r chi.Router) {
					r.With(s.optionalAuth).Get("/", s.handleListTopRatedSummaries)
					r.With(s.requireAuth).Post("/", s.handleAddSummary)
				})
			})
		})

		// Summary ratings.
		r.Route("/summaries", func(r chi.Router) {
			r.With(s.requireAuth).Post("/{summaryID}/rating", s.handleRateSummary)
		})

		// External catalog lookup.
		r.Get("/catalog/search", s.handleCatalogSearch)
	})
}
