package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"daytrip/internal/app/users"
	"daytrip/internal/logging"
	"daytrip/internal/models"
	"daytrip/internal/quota"
	"daytrip/internal/store"
)

// envelope wraps every /api/users response.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

type userResponse struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func toUserResponse(u models.User) userResponse {
	return userResponse{ID: u.ID, Username: u.Email, Email: u.Email, FirstName: u.Name}
}

type searchInfo struct {
	DailyLimit      int `json:"daily_limit"`
	Remaining       int `json:"remaining_searches"`
	CooldownSeconds int `json:"cooldown_seconds"`
}

func toSearchInfo(s quota.Status) searchInfo {
	return searchInfo{DailyLimit: s.DailyLimit, Remaining: s.Remaining, CooldownSeconds: s.CooldownSeconds}
}

type registerRequest struct {
	Name                 string `json:"name" validate:"max=150"`
	Email                string `json:"email" validate:"required,email"`
	Password             string `json:"password" validate:"required,min=6"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
	AgreeToMarketing     bool   `json:"agree_to_marketing"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type profileRequest struct {
	Name             *string `json:"name" validate:"omitempty,max=150"`
	FirstName        *string `json:"first_name" validate:"omitempty,max=150"`
	AgreeToMarketing *bool   `json:"agree_to_marketing"`
}

type emailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, envelope{Message: err.Error()})
		return
	}

	session, err := s.users.Register(r.Context(), models.Registration{
		Email:            req.Email,
		Name:             req.Name,
		Password:         req.Password,
		AgreeToMarketing: req.AgreeToMarketing,
	})
	if err != nil {
		if errors.Is(err, store.ErrUserExists) {
			writeJSON(w, http.StatusBadRequest, envelope{Message: "email is already registered"})
			return
		}
		s.writeUserError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, envelope{
		Success: true,
		Message: "registration complete",
		Data: map[string]any{
			"user":         toUserResponse(session.User),
			"access_token": session.Token.Value,
		},
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		writeJSON(w, http.StatusUnauthorized, envelope{Message: err.Error()})
		return
	}

	session, status, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, store.ErrInvalidCredentials) {
			writeJSON(w, http.StatusUnauthorized, envelope{Message: "invalid email or password"})
			return
		}
		s.writeUserError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Message: "logged in",
		Data: map[string]any{
			"user":          toUserResponse(session.User),
			"access_token":  session.Token.Value,
			"refresh_token": session.Token.Value,
			"expires_at":    session.Token.ExpiresAt.UTC().Format(time.RFC3339),
			"search_info":   toSearchInfo(status),
		},
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.users.Logout(r.Context(), currentToken(r.Context())); err != nil {
		logging.WithContext(r.Context()).Warn().Err(err).Msg("logout failed")
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: "logged out"})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user, _ := currentUser(r.Context())
	status, err := s.users.SearchStatus(r.Context(), user.ID)
	if err != nil {
		s.writeUserError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Data: map[string]any{
			"user":        toUserResponse(user),
			"search_info": toSearchInfo(status),
		},
	})
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, envelope{Message: err.Error()})
		return
	}

	update := models.ProfileUpdate{Name: req.Name, AgreeToMarketing: req.AgreeToMarketing}
	if update.Name == nil {
		update.Name = req.FirstName
	}

	user, _ := currentUser(r.Context())
	updated, err := s.users.UpdateProfile(r.Context(), user.ID, update)
	if err != nil {
		s.writeUserError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Message: "profile updated",
		Data:    map[string]any{"user": toUserResponse(updated)},
	})
}

func (s *Server) handleCheckEmail(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.URL.Query().Get("email"))
	if email == "" {
		writeJSON(w, http.StatusBadRequest, envelope{Message: "email is required"})
		return
	}
	exists, err := s.users.EmailExists(r.Context(), email)
	if err != nil {
		s.writeUserError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Success bool `json:"success"`
		Exists  bool `json:"exists"`
	}{Success: true, Exists: exists})
}

func (s *Server) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, envelope{Message: err.Error()})
		return
	}
	if err := s.users.ForgotPassword(r.Context(), req.Email); err != nil {
		if errors.Is(err, users.ErrEmailNotFound) {
			writeJSON(w, http.StatusNotFound, envelope{Message: "email is not registered"})
			return
		}
		s.writeUserError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: "password reset email sent"})
}

func (s *Server) handleSearchCount(w http.ResponseWriter, r *http.Request) {
	user, _ := currentUser(r.Context())
	status, err := s.users.SearchStatus(r.Context(), user.ID)
	if err != nil {
		s.writeUserError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: status})
}

func (s *Server) handleUseSearch(w http.ResponseWriter, r *http.Request) {
	user, _ := currentUser(r.Context())
	status, err := s.users.UseSearch(r.Context(), user.ID)
	data := map[string]int{
		"remaining_searches": status.Remaining,
		"cooldown_seconds":   status.CooldownSeconds,
	}
	if err != nil {
		if errors.Is(err, quota.ErrQuotaExceeded) {
			writeJSON(w, http.StatusTooManyRequests, envelope{
				Message: fmt.Sprintf("search limit reached. remaining searches: %d, cooldown: %ds",
					status.Remaining, status.CooldownSeconds),
				Data: data,
			})
			return
		}
		s.writeUserError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: "search started", Data: data})
}

func (s *Server) handleResetSearchCount(w http.ResponseWriter, r *http.Request) {
	user, _ := currentUser(r.Context())
	status, err := s.users.ResetSearch(r.Context(), user.ID)
	if err != nil {
		s.writeUserError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Message: "search count reset",
		Data:    map[string]int{"remaining_searches": status.Remaining},
	})
}

func (s *Server) writeUserError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrUserNotFound):
		writeJSON(w, http.StatusNotFound, envelope{Message: err.Error()})
	case errors.Is(err, quota.ErrConflict):
		writeJSON(w, http.StatusConflict, envelope{Message: "search counter is busy, try again"})
	default:
		logging.WithContext(r.Context()).Error().Err(err).Msg("user request failed")
		writeJSON(w, http.StatusInternalServerError, envelope{Message: "internal server error"})
	}
}
