package api

import (
	"errors"
	"net/http"

	"github.com/skillswap/skillswap/internal/models"
	"github.com/skillswap/skillswap/internal/session"
	"github.com/skillswap/skillswap/pkg/repository"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

type AuthHandler struct {
	userRepo repository.UserRepo
	sessions *session.Manager
}

// NewAuthHandler creates a new AuthHandler with required dependencies.
func NewAuthHandler(ur repository.UserRepo, sm *session.Manager) *AuthHandler {
	return &AuthHandler{userRepo: ur, sessions: sm}
}

type signupRequest struct {
	Email      string  `json:"email"`
	Password   string  `json:"password"`
	Name       string  `json:"name"`
	Occupation *string `json:"occupation"`
	Gender     *string `json:"gender"`
	BirthDate  *string `json:"birthDate"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionUserResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if msg, err := decodeValid(r.Context(), r, signupSchema, &req); err != nil {
		writeError(w, msg, http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	existing, err := h.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		serverError(w, r, "signup lookup", err)
		return
	}
	if existing != nil {
		writeError(w, "User with this email already exists", http.StatusConflict)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		serverError(w, r, "hash password", err)
		return
	}

	user := models.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		Name:         req.Name,
		Occupation:   req.Occupation,
		Gender:       req.Gender,
		BirthDate:    req.BirthDate,
	}
	id, err := h.userRepo.CreateUser(ctx, &user)
	if err != nil {
		// A concurrent signup can slip past the lookup and land on the
		// unique email column.
		if errors.Is(err, repository.ErrDuplicate) {
			writeError(w, "User with this email already exists", http.StatusConflict)
			return
		}
		serverError(w, r, "create user", err)
		return
	}

	token, err := h.sessions.Create(session.User{ID: id, Email: req.Email, Name: req.Name})
	if err != nil {
		serverError(w, r, "create session", err)
		return
	}
	h.sessions.SetCookie(w, token)

	writeJSON(w, map[string]any{"user": sessionUserResponse{ID: id, Email: req.Email, Name: req.Name}}, http.StatusOK)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if msg, err := decodeValid(r.Context(), r, loginSchema, &req); err != nil {
		writeError(w, msg, http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	user, err := h.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		serverError(w, r, "login lookup", err)
		return
	}
	// Unknown email and wrong password are indistinguishable to the caller.
	if user == nil {
		writeError(w, "Invalid email or password", http.StatusUnauthorized)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		writeError(w, "Invalid email or password", http.StatusUnauthorized)
		return
	}

	if err := h.userRepo.TouchLastLogin(ctx, user.ID); err != nil {
		serverError(w, r, "touch last login", err)
		return
	}

	token, err := h.sessions.Create(session.User{ID: user.ID, Email: user.Email, Name: user.Name})
	if err != nil {
		serverError(w, r, "create session", err)
		return
	}
	h.sessions.SetCookie(w, token)

	writeJSON(w, map[string]any{"user": sessionUserResponse{ID: user.ID, Email: user.Email, Name: user.Name}}, http.StatusOK)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.ClearCookie(w)
	writeJSON(w, map[string]string{"message": "Logged out successfully"}, http.StatusOK)
}

// Me reports the current identity; an absent or invalid session is not an
// error here, it just yields a null user.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	su := h.sessions.FromRequest(r)
	if su == nil {
		writeJSON(w, map[string]any{"user": nil}, http.StatusOK)
		return
	}

	user, err := h.userRepo.GetByID(r.Context(), su.ID)
	if err != nil {
		serverError(w, r, "load current user", err)
		return
	}
	if user == nil {
		writeJSON(w, map[string]any{"user": nil}, http.StatusOK)
		return
	}

	writeJSON(w, map[string]any{"user": user}, http.StatusOK)
}
