package api

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"pokebattle/arena"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

func (s *Server) handleListPokemon(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", defaultListLimit)
	offset := queryInt(r, "offset", 0)

	if limit < 1 || limit > maxListLimit {
		s.respondError(w, http.StatusBadRequest, "limit must be between 1 and 100")
		return
	}
	if offset < 0 {
		s.respondError(w, http.StatusBadRequest, "offset must not be negative")
		return
	}

	names, err := s.dex.ListPokemon(r.Context(), limit, offset)
	if err != nil {
		s.respondDexError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"count":   len(names),
		"offset":  offset,
		"results": names,
	})
}

func (s *Server) handleGetPokemon(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	pokemon, err := s.dex.Pokemon(r.Context(), name)
	if err != nil {
		s.respondDexError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, pokemon)
}

type statsResponse struct {
	Name   string          `json:"name"`
	Level  uint            `json:"level"`
	Types  []string        `json:"types"`
	Base   arena.StatBlock `json:"base_stats"`
	Scaled arena.StatBlock `json:"scaled_stats"`
	MaxHp  uint            `json:"max_hp"`
}

func (s *Server) handleGetStats(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	level := uint(queryInt(r, "level", int(s.cfg.Battle.DefaultLevel)))
	if level < arena.MIN_LEVEL || level > arena.MAX_LEVEL {
		s.respondError(w, http.StatusBadRequest, "level must be between 1 and 100")
		return
	}

	species, err := s.dex.Species(r.Context(), name)
	if err != nil {
		s.respondDexError(w, err)
		return
	}

	scaled := arena.ScaleStats(species.Stats, level)
	types := make([]string, 0, 2)
	for _, t := range species.Types() {
		types = append(types, t.Name)
	}

	s.respondJSON(w, http.StatusOK, statsResponse{
		Name:   species.Name,
		Level:  level,
		Types:  types,
		Base:   species.Stats,
		Scaled: scaled,
		MaxHp:  scaled.Hp,
	})
}

func (s *Server) handleListTypes(w http.ResponseWriter, _ *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]any{"types": arena.TypeNames()})
}

type matchupResponse struct {
	Attacker      string             `json:"attacker"`
	Defender      string             `json:"defender"`
	DefenderTypes []string           `json:"defender_types"`
	PerType       map[string]float64 `json:"effectiveness_by_attacking_type"`
	Best          float64            `json:"best_multiplier"`
	BestLabel     string             `json:"best_label"`
}

// handleMatchup reports how well each of the attacker's types fares against
// the defender's typing.
func (s *Server) handleMatchup(w http.ResponseWriter, r *http.Request) {
	attackerName := r.URL.Query().Get("attacker")
	defenderName := r.URL.Query().Get("defender")
	if attackerName == "" || defenderName == "" {
		s.respondError(w, http.StatusBadRequest, "attacker and defender query parameters are required")
		return
	}

	attacker, err := s.dex.Species(r.Context(), attackerName)
	if err != nil {
		s.respondDexError(w, err)
		return
	}
	defender, err := s.dex.Species(r.Context(), defenderName)
	if err != nil {
		s.respondDexError(w, err)
		return
	}

	response := matchupResponse{
		Attacker: attacker.Name,
		Defender: defender.Name,
		PerType:  make(map[string]float64, 2),
	}
	for _, t := range defender.Types() {
		response.DefenderTypes = append(response.DefenderTypes, t.Name)
	}

	for _, attackType := range attacker.Types() {
		multiplier := arena.Effectiveness(attackType, defender.Types())
		response.PerType[attackType.Name] = multiplier
		if multiplier > response.Best {
			response.Best = multiplier
		}
	}
	response.BestLabel = arena.EffectivenessLabel(response.Best)

	s.respondJSON(w, http.StatusOK, response)
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return value
}
