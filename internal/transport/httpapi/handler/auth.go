package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/tallybook/tallybook/internal/platform/user"
)

// UserServiceInterface defines the user operations needed by AuthHandler.
type UserServiceInterface interface {
	Register(ctx context.Context, email, password string) (*user.User, error)
	Login(ctx context.Context, email, password string) (*user.User, error)
}

// JWTServiceInterface defines the JWT operations needed by AuthHandler.
type JWTServiceInterface interface {
	GenerateToken(userID uuid.UUID, email string) (string, error)
}

// AuthHandler handles authentication requests.
type AuthHandler struct {
	userService UserServiceInterface
	jwtService  JWTServiceInterface
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(userService UserServiceInterface, jwtService JWTServiceInterface) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		jwtService:  jwtService,
	}
}

// CredentialsRequest represents a register or login request body.
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse represents the authentication response.
type AuthResponse struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}

// UserInfo represents user information without sensitive data.
type UserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	registered, err := h.userService.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		switch err {
		case user.ErrUserAlreadyExists:
			respondError(w, err.Error(), http.StatusConflict)
		case user.ErrInvalidEmail, user.ErrPasswordTooShort:
			respondError(w, err.Error(), http.StatusBadRequest)
		default:
			respondError(w, "failed to register user", http.StatusInternalServerError)
		}
		return
	}

	h.respondWithToken(w, registered, http.StatusCreated)
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	authenticated, err := h.userService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if err == user.ErrInvalidPassword {
			respondError(w, "invalid email or password", http.StatusUnauthorized)
			return
		}
		respondError(w, "failed to log in", http.StatusInternalServerError)
		return
	}

	h.respondWithToken(w, authenticated, http.StatusOK)
}

func (h *AuthHandler) respondWithToken(w http.ResponseWriter, u *user.User, status int) {
	token, err := h.jwtService.GenerateToken(u.ID, u.Email)
	if err != nil {
		respondError(w, "failed to generate token", http.StatusInternalServerError)
		return
	}

	respondJSON(w, AuthResponse{
		Token: token,
		User: UserInfo{
			ID:    u.ID.String(),
			Email: u.Email,
		},
	}, status)
}
