package rest

import (
	"context"
	"net/http"
	"rental-search-service/internal/core/port"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Server struct {
	httpServer *http.Server
	logger     port.LoggerPort
}

func NewServer(listenPort string,
	allowedOrigins []string,
	listingsHandler *ListingsHandler,
	dictionariesHandler *DictionariesHandler,
	baseLogger port.LoggerPort,
	extra ...func(http.Handler) http.Handler) *Server {

	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + listenPort,
			Handler:           NewRouter(allowedOrigins, listingsHandler, dictionariesHandler, baseLogger, extra...),
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: baseLogger,
	}
}

// NewRouter mounts every route under /api/v1. extra middleware runs after CORS.
func NewRouter(allowedOrigins []string,
	listingsHandler *ListingsHandler,
	dictionariesHandler *DictionariesHandler,
	baseLogger port.LoggerPort,
	extra ...func(http.Handler) http.Handler) http.Handler {

	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(LoggerMiddleware(baseLogger), middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Trace-ID"},
		ExposedHeaders:   []string{"X-Trace-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(extra...)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/listings", listingsHandler.SearchListings)
		r.Get("/listings/{listingID}", listingsHandler.GetListingDetails)
		r.Get("/dictionaries", dictionariesHandler.GetDictionaries)
	})

	return r
}

func (s *Server) Start() error {
	s.logger.Info("Starting REST server", port.Fields{"address": s.httpServer.Addr})
	return s.httpServer.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST server...", nil)
	return s.httpServer.Shutdown(ctx)
}
