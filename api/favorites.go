package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/skillswap/skillswap/internal/models"
	"github.com/skillswap/skillswap/pkg/repository"
)

type FavoritesHandler struct {
	favoriteRepo repository.FavoriteRepo
	userRepo     repository.UserRepo
	notifyRepo   repository.NotificationRepo
}

func NewFavoritesHandler(fr repository.FavoriteRepo, ur repository.UserRepo, nr repository.NotificationRepo) *FavoritesHandler {
	return &FavoritesHandler{favoriteRepo: fr, userRepo: ur, notifyRepo: nr}
}

func (h *FavoritesHandler) List(w http.ResponseWriter, r *http.Request) {
	su := SessionFromContext(r.Context())

	favorites, err := h.favoriteRepo.ListFavorites(r.Context(), su.ID)
	if err != nil {
		serverError(w, r, "list favorites", err)
		return
	}
	if favorites == nil {
		favorites = []models.UserCard{}
	}

	writeJSON(w, map[string]any{"favorites": favorites}, http.StatusOK)
}

type addFavoriteRequest struct {
	UserID int64 `json:"userId"`
}

// Create favorites another user. Adding an existing favorite succeeds
// without effect, and only a fresh insert notifies the favorited user.
func (h *FavoritesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req addFavoriteRequest
	if msg, err := decodeValid(r.Context(), r, favoriteSchema, &req); err != nil {
		writeError(w, msg, http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	su := SessionFromContext(ctx)

	if req.UserID == su.ID {
		writeError(w, "You cannot favorite yourself", http.StatusBadRequest)
		return
	}

	target, err := h.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		serverError(w, r, "load favorite target", err)
		return
	}
	if target == nil {
		writeError(w, "User not found", http.StatusNotFound)
		return
	}

	added, err := h.favoriteRepo.AddFavorite(ctx, su.ID, req.UserID)
	if err != nil {
		serverError(w, r, "add favorite", err)
		return
	}

	if added {
		notify(r, h.notifyRepo, req.UserID, models.NotifyFavorite,
			"New favorite",
			fmt.Sprintf("%s added you to their favorites", su.Name),
			fmt.Sprintf("/users/%d", su.ID))
	}

	writeJSON(w, map[string]bool{"success": true}, http.StatusOK)
}

func (h *FavoritesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		writeError(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	su := SessionFromContext(r.Context())

	if _, err := h.favoriteRepo.RemoveFavorite(r.Context(), su.ID, id); err != nil {
		serverError(w, r, "remove favorite", err)
		return
	}

	writeJSON(w, map[string]bool{"success": true}, http.StatusOK)
}
