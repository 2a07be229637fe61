// Package api exposes the battle engine and pokedex over HTTP: species
// lookups, matchup analysis, battle simulation, prediction, round-robin
// tournaments, a websocket battle stream and a small admin surface.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"pokebattle/arena"
	"pokebattle/internal/config"
	"pokebattle/internal/pokeapi"
)

// Dex is the slice of the pokedex service the handlers consume.
type Dex interface {
	Pokemon(ctx context.Context, name string) (pokeapi.Pokemon, error)
	ListPokemon(ctx context.Context, limit int, offset int) ([]string, error)
	Species(ctx context.Context, name string) (*arena.Species, error)
	BattleSet(ctx context.Context, name string, moveNames []string) (arena.CombatantSpec, error)
}

// CacheAdmin is what the admin endpoints need from the cache layer.
type CacheAdmin interface {
	Cleanup(ctx context.Context) (int64, error)
	Size(ctx context.Context) (int, error)
}

type Server struct {
	dex      Dex
	cache    CacheAdmin
	cfg      config.Config
	logger   zerolog.Logger
	upgrader websocket.Upgrader
}

func NewServer(dex Dex, cacheAdmin CacheAdmin, cfg config.Config, logger zerolog.Logger) *Server {
	return &Server{
		dex:    dex,
		cache:  cacheAdmin,
		cfg:    cfg,
		logger: logger.With().Str("component", "api").Logger(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()
	router.Use(s.loggingMiddleware)
	router.Use(corsMiddleware)

	v1 := router.PathPrefix("/api/v1").Subrouter()

	v1.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	v1.HandleFunc("/pokemon", s.handleListPokemon).Methods(http.MethodGet)
	v1.HandleFunc("/pokemon/{name}", s.handleGetPokemon).Methods(http.MethodGet)
	v1.HandleFunc("/pokemon/{name}/stats", s.handleGetStats).Methods(http.MethodGet)
	v1.HandleFunc("/types", s.handleListTypes).Methods(http.MethodGet)
	v1.HandleFunc("/matchup", s.handleMatchup).Methods(http.MethodGet)

	v1.HandleFunc("/battle", s.handleBattle).Methods(http.MethodPost)
	v1.HandleFunc("/battle/predict", s.handlePredict).Methods(http.MethodPost)
	v1.HandleFunc("/battle/tournament", s.handleTournament).Methods(http.MethodPost)
	v1.HandleFunc("/battle/stream", s.handleBattleStream).Methods(http.MethodGet)

	v1.HandleFunc("/admin/cache/cleanup", s.requireAdmin(s.handleCacheCleanup)).Methods(http.MethodPost)

	return router
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error().Err(err).Msg("response encoding failed")
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, errorResponse{Error: message})
}

// respondDexError maps service failures onto HTTP statuses: missing
// resources are the client's problem, anything else is ours.
func (s *Server) respondDexError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, pokeapi.ErrNotFound):
		s.respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, arena.ErrInvalidInput):
		s.respondError(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error().Err(err).Msg("request failed")
		s.respondError(w, http.StatusBadGateway, "upstream data fetch failed")
	}
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)

		s.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Admin-Key")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
