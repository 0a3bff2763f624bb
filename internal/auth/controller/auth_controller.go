package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"grillhouse/internal/auth/service"
	"grillhouse/internal/dto"
)

const sessionCookieName = "session_token"

type AuthController struct {
	auth   *service.AuthService
	logger *zap.Logger
}

func NewAuthController(auth *service.AuthService, logger *zap.Logger) *AuthController {
	return &AuthController{
		auth:   auth,
		logger: logger,
	}
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	logger := c.logger.With(zap.String("traceId", uuid.New().String()))

	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}

	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password required")
		return
	}

	session, err := c.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		logger.Error("login failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "an unexpected error occurred")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, dto.LoginResponse{
		Success: true,
		User: dto.UserResponse{
			ID:       session.UserID,
			Username: session.Username,
			Role:     session.Role,
		},
	})
}

func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		c.auth.Logout(cookie.Value)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (c *AuthController) Session(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		writeJSON(w, http.StatusOK, dto.SessionResponse{Authenticated: false})
		return
	}

	session, ok := c.auth.SessionFor(cookie.Value)
	if !ok {
		writeJSON(w, http.StatusOK, dto.SessionResponse{Authenticated: false})
		return
	}

	writeJSON(w, http.StatusOK, dto.SessionResponse{
		Authenticated: true,
		User: &dto.UserResponse{
			ID:       session.UserID,
			Username: session.Username,
			Role:     session.Role,
		},
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
