package authhandlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	authservice "github.com/stonecove-rowing/crewbot/app/modules/auth/application"
)

// AuthHandlers handles login requests.
type AuthHandlers struct {
	service *authservice.AuthService
	logger  *slog.Logger
}

// NewAuthHandlers creates a new AuthHandlers instance.
func NewAuthHandlers(service *authservice.AuthService, logger *slog.Logger) *AuthHandlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandlers{service: service, logger: logger}
}

// Routes sets up the routes for the auth module.
func (h *AuthHandlers) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/login", h.Login)
	return r
}

// Login exchanges a name/PIN pair for a session token.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
		PIN  string `json:"pin"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" || req.PIN == "" {
		http.Error(w, "name and pin are required", http.StatusBadRequest)
		return
	}

	result, err := h.service.Login(r.Context(), req.Name, req.PIN)
	if err != nil {
		switch {
		case errors.Is(err, authservice.ErrTooManyAttempts):
			http.Error(w, "too many attempts, slow down", http.StatusTooManyRequests)
		case errors.Is(err, authservice.ErrInvalidCredentials):
			http.Error(w, "invalid name or PIN", http.StatusUnauthorized)
		default:
			http.Error(w, "login failed", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		h.logger.Error("Failed to encode response", slog.Any("error", err))
	}
}
