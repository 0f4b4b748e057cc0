// Package rest exposes the simulation engine over HTTP and a websocket
// log feed.
package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/aimarketsim/backend/internal/usecase/simulation"
)

// Server routes HTTP requests to the engine.
type Server struct {
	engine *simulation.Engine
	hub    *Hub
	logger *slog.Logger

	apiToken   string
	corsOrigin string
}

// NewServer creates a REST server. apiToken may be empty to disable
// authentication.
func NewServer(engine *simulation.Engine, hub *Hub, logger *slog.Logger, apiToken, corsOrigin string) *Server {
	return &Server{
		engine:     engine,
		hub:        hub,
		logger:     logger,
		apiToken:   apiToken,
		corsOrigin: corsOrigin,
	}
}

// Router builds the HTTP handler tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(s.cors)

	r.Get("/healthz", s.handleHealth)
	r.Get("/ws", s.handleWebsocket)

	r.Group(func(r chi.Router) {
		r.Use(s.auth)

		r.Route("/companies", func(r chi.Router) {
			r.Post("/", s.handleRegisterCompany)
			r.Get("/", s.handleListCompanies)
			r.Get("/{id}", s.handleGetCompany)
			r.Patch("/{id}/price", s.handleUpdatePrice)
			r.Get("/{id}/investments", s.handleCompanyInvestments)
			r.Get("/{id}/history", s.handlePriceHistory)
		})

		r.Route("/investments", func(r chi.Router) {
			r.Post("/", s.handleMakeInvestment)
			r.Get("/", s.handleListInvestments)
		})

		r.Route("/negotiations", func(r chi.Router) {
			r.Post("/", s.handleInitiateNegotiation)
			r.Get("/pending", s.handlePendingNegotiations)
			r.Post("/{id}/respond", s.handleRespondNegotiation)
		})

		r.Route("/log", func(r chi.Router) {
			r.Get("/", s.handleTransactionLog)
			r.Post("/", s.handleLogTransaction)
		})

		r.Route("/analytics", func(r chi.Router) {
			r.Get("/market-cap", s.handleMarketCap)
			r.Get("/timeline", s.handleTimeline)
			r.Get("/holdings", s.handleHoldings)
		})

		r.Get("/portfolio", s.handlePortfolio)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.corsOrigin != "" {
			w.Header().Set("Access-Control-Allow-Origin", s.corsOrigin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, X-API-Key")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
