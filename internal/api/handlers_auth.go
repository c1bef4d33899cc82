package api

import (
	"encoding/json"
	"net/http"

	"github.com/DaisaLuiseMonteiro/banking-api/internal/app"
	"github.com/DaisaLuiseMonteiro/banking-api/internal/domain"
)

// AuthHandlers holds the auth service used by the authentication endpoints.
type AuthHandlers struct {
	auth *app.AuthService
}

// NewAuthHandlers creates a new AuthHandlers.
func NewAuthHandlers(auth *app.AuthService) *AuthHandlers {
	return &AuthHandlers{auth: auth}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

// RegisterHandler handles POST /auth/register.
func (h *AuthHandlers) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	user, token, err := h.auth.Register(r.Context(), app.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondSuccess(w, http.StatusCreated, authResponse{User: user, Token: token}, "Registration successful")
}

// LoginHandler handles POST /auth/login.
func (h *AuthHandlers) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	user, token, err := h.auth.Login(r.Context(), app.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, authResponse{User: user, Token: token}, "Login successful")
}

// CurrentUserHandler handles GET /user for the authenticated identity.
func (h *AuthHandlers) CurrentUserHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}
	user, err := h.auth.GetUser(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, user, "")
}
