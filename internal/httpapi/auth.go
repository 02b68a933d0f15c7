package httpapi

import (
	"context"
	"errors"
	"net/http"

	"daytrip/internal/auth"
	"daytrip/internal/logging"
	"daytrip/internal/models"
	"daytrip/internal/store"
)

type contextKey string

const (
	userKey  contextKey = "user"
	tokenKey contextKey = "token"
)

// authenticated rejects requests without a live bearer token and stores the
// resolved user in the request context.
func (s *Server) authenticated(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := parseBearerToken(r.Header.Get("Authorization"))
		if token == "" {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
			return
		}

		user, err := s.users.Authenticate(r.Context(), token)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidToken) || errors.Is(err, store.ErrUnauthorized) {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid or expired token"})
				return
			}
			logging.WithContext(r.Context()).Error().Err(err).Msg("authenticate request")
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
			return
		}

		ctx := logging.WithUserID(r.Context(), user.ID)
		ctx = context.WithValue(ctx, userKey, user)
		ctx = context.WithValue(ctx, tokenKey, token)
		next(w, r.WithContext(ctx))
	}
}

// staffOnly is authenticated plus an is_staff check.
func (s *Server) staffOnly(next http.HandlerFunc) http.HandlerFunc {
	return s.authenticated(func(w http.ResponseWriter, r *http.Request) {
		if user, _ := currentUser(r.Context()); !user.IsStaff {
			writeJSON(w, http.StatusForbidden, errorResponse{Error: "staff access required"})
			return
		}
		next(w, r)
	})
}

func currentUser(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(userKey).(models.User)
	return user, ok
}

func currentToken(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey).(string)
	return token
}
