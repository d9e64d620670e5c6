package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrymomot/sessionkit/pkg/logger"
	"github.com/dmitrymomot/sessionkit/pkg/validator"

	pwd "github.com/dmitrymomot/sessionkit/pkg/auth"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

// handleRegister creates the user, starts a session and sets both cookies.
func (s *Service) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := s.users.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		s.writeAuthError(w, r, err)
		return
	}

	if !s.startSession(w, r, user.ID) {
		return
	}

	s.writeJSON(w, http.StatusCreated, Identity{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
	})
}

// handleLogin verifies credentials, starts a session and sets both cookies.
func (s *Service) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := s.users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeAuthError(w, r, err)
		return
	}

	if !s.startSession(w, r, user.ID) {
		return
	}

	s.writeJSON(w, http.StatusOK, Identity{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
	})
}

// handleMe returns the identity attached by the session guard.
func (s *Service) handleMe(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		s.unauthenticated(w)
		return
	}

	s.writeJSON(w, http.StatusOK, identity)
}

// handleRefresh rotates the presented session: the old identifier is
// revoked and fresh session and CSRF cookies are issued.
func (s *Service) handleRefresh(w http.ResponseWriter, r *http.Request) {
	info, ok := SessionInfoFromContext(r.Context())
	if !ok {
		s.unauthenticated(w)
		return
	}

	sid, _, err := s.sessions.Rotate(r.Context(), info.SID, info.UserID)
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	csrfToken, err := s.csrf.Issue()
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	s.issueCookies(w, sid, csrfToken)
	s.writeJSON(w, http.StatusOK, okResponse{OK: true})
}

// handleLogout revokes the presented session and clears both cookies.
func (s *Service) handleLogout(w http.ResponseWriter, r *http.Request) {
	info, ok := SessionInfoFromContext(r.Context())
	if !ok {
		s.unauthenticated(w)
		return
	}

	if err := s.sessions.End(r.Context(), info.SID); err != nil {
		s.internalError(w, r, err)
		return
	}

	s.clearCookies(w)
	s.writeJSON(w, http.StatusOK, okResponse{OK: true})
}

// startSession issues a fresh session and CSRF token pair and sets both
// cookies. Reports false after writing an error response.
func (s *Service) startSession(w http.ResponseWriter, r *http.Request, userID int64) bool {
	sid, _, err := s.sessions.Start(r.Context(), userID)
	if err != nil {
		s.internalError(w, r, err)
		return false
	}

	csrfToken, err := s.csrf.Issue()
	if err != nil {
		s.internalError(w, r, err)
		return false
	}

	s.issueCookies(w, sid, csrfToken)
	return true
}

// writeAuthError maps credential-service failures onto the response
// taxonomy: validation problems are 400, duplicate registration and bad
// credentials are generic 403 bodies that leak nothing further.
func (s *Service) writeAuthError(w http.ResponseWriter, r *http.Request, err error) {
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		s.writeError(w, http.StatusBadRequest, verrs.Error())
	case errors.Is(err, pwd.ErrEmailAlreadyExists):
		s.writeError(w, http.StatusForbidden, "email already in use")
	case errors.Is(err, pwd.ErrInvalidCredentials):
		s.writeError(w, http.StatusForbidden, "invalid credentials")
	default:
		s.internalError(w, r, err)
	}
}

func (s *Service) unauthenticated(w http.ResponseWriter) {
	s.writeError(w, http.StatusUnauthorized, "not authenticated")
}

func (s *Service) internalError(w http.ResponseWriter, r *http.Request, err error) {
	s.log.ErrorContext(r.Context(), "auth request failed",
		logger.Error(err),
		logger.Component("auth-module"),
	)
	s.writeError(w, http.StatusInternalServerError, "internal error")
}

func (s *Service) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

func (s *Service) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
