package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"vadimgribanov.com/holomentor/internal/middleware"
)

type routeRegistrar interface {
	RegisterRoutes(r chi.Router)
}

func newRouter() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimiddleware.Recoverer)
	return r
}

func mount(r *chi.Mux, handler routeRegistrar) http.Handler {
	handler.RegisterRoutes(r)
	return r
}

func NewMemoryRouter(handler *MemoryHandler) http.Handler {
	return mount(newRouter(), handler)
}

func NewAnswerRouter(handler *AnswerHandler) http.Handler {
	return mount(newRouter(), handler)
}

// NewMasterRouter enables CORS so browser frontends can call /process directly.
func NewMasterRouter(handler *MasterHandler, allowedOrigins []string) http.Handler {
	r := newRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         300,
	}))
	return mount(r, handler)
}
