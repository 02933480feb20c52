package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"github.com/vr33ni-dev/mystic-cards-api/deck"
	"github.com/vr33ni-dev/mystic-cards-api/diag"
)

const ServiceName = "mystic-cards-api"

// corsMethods is every method a preflight may ask for.
var corsMethods = []string{
	http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut,
	http.MethodPatch, http.MethodDelete, http.MethodConnect, http.MethodOptions,
	http.MethodTrace,
	// WebDAV and friends
	"PROPFIND", "PROPPATCH", "MKCOL", "COPY", "MOVE", "LOCK", "UNLOCK",
	"REPORT", "SEARCH", "PURGE",
}

type Handler struct {
	Deck   deck.Deck
	Prober *diag.Prober
	Log    logrus.FieldLogger
}

func NewRouter(h *Handler) *chi.Mux {
	if h.Log == nil {
		h.Log = logrus.StandardLogger()
	}
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(h.Log))
	r.Use(middleware.Recoverer)

	// Public API, any origin may call it with credentials. The origin is
	// echoed back because browsers reject "*" on credentialed requests.
	r.Use(cors.Handler(cors.Options{
		AllowOriginFunc:  func(*http.Request, string) bool { return true },
		AllowedMethods:   corsMethods,
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", h.status)
	r.Get("/health", h.health)
	r.Get("/reading/one", h.drawOne)
	r.Get("/test", h.diagnostics)

	return r
}
