package api

import (
	"net/http"

	"golang.org/x/crypto/bcrypt"
)

const adminKeyHeader = "X-Admin-Key"

// requireAdmin gates a handler behind the configured admin key. With no
// hash configured the admin surface doesn't exist, and bad keys get the
// same 404 so the endpoints can't be probed.
func (s *Server) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hash := s.cfg.Server.AdminKeyHash
		if hash == "" {
			http.NotFound(w, r)
			return
		}

		key := r.Header.Get(adminKeyHeader)
		if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)); err != nil {
			s.logger.Warn().Str("path", r.URL.Path).Msg("admin auth rejected")
			http.NotFound(w, r)
			return
		}

		next(w, r)
	}
}

func (s *Server) handleCacheCleanup(w http.ResponseWriter, r *http.Request) {
	removed, err := s.cache.Cleanup(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("cache cleanup failed")
		s.respondError(w, http.StatusInternalServerError, "cache cleanup failed")
		return
	}

	size, err := s.cache.Size(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("cache size lookup failed")
		s.respondError(w, http.StatusInternalServerError, "cache size lookup failed")
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"removed":   removed,
		"remaining": size,
	})
}
