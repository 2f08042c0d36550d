package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/skillswap/skillswap/internal/models"
	"github.com/skillswap/skillswap/pkg/repository"
)

type ReviewsHandler struct {
	reviewRepo repository.ReviewRepo
	userRepo   repository.UserRepo
	notifyRepo repository.NotificationRepo
}

func NewReviewsHandler(rr repository.ReviewRepo, ur repository.UserRepo, nr repository.NotificationRepo) *ReviewsHandler {
	return &ReviewsHandler{reviewRepo: rr, userRepo: ur, notifyRepo: nr}
}

type createReviewRequest struct {
	RevieweeID int64   `json:"revieweeId"`
	Rating     int     `json:"rating"`
	Text       *string `json:"reviewText"`
	RequestID  *int64  `json:"requestId"`
}

// Create records a one-per-pair review and notifies the reviewee.
func (h *ReviewsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createReviewRequest
	if msg, err := decodeValid(r.Context(), r, reviewSchema, &req); err != nil {
		writeError(w, msg, http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	su := SessionFromContext(ctx)

	if req.RevieweeID == su.ID {
		writeError(w, "You cannot review yourself", http.StatusBadRequest)
		return
	}

	reviewee, err := h.userRepo.GetByID(ctx, req.RevieweeID)
	if err != nil {
		serverError(w, r, "load reviewee", err)
		return
	}
	if reviewee == nil {
		writeError(w, "User not found", http.StatusNotFound)
		return
	}

	reviewed, err := h.reviewRepo.HasReviewed(ctx, su.ID, req.RevieweeID)
	if err != nil {
		serverError(w, r, "check existing review", err)
		return
	}
	if reviewed {
		writeError(w, "You have already reviewed this user", http.StatusConflict)
		return
	}

	review := models.Review{
		ReviewerID: su.ID,
		RevieweeID: req.RevieweeID,
		RequestID:  req.RequestID,
		Rating:     req.Rating,
		Text:       req.Text,
	}
	id, err := h.reviewRepo.CreateReview(ctx, &review)
	if err != nil {
		// A concurrent duplicate can slip past HasReviewed and land on
		// the unique (reviewer, reviewee) pair.
		if errors.Is(err, repository.ErrDuplicate) {
			writeError(w, "You have already reviewed this user", http.StatusConflict)
			return
		}
		serverError(w, r, "create review", err)
		return
	}
	review.ID = id

	notify(r, h.notifyRepo, req.RevieweeID, models.NotifyReview,
		"New review",
		fmt.Sprintf("%s left you a review", su.Name),
		fmt.Sprintf("/users/%d", req.RevieweeID))

	writeJSON(w, map[string]any{"review": review}, http.StatusCreated)
}

// ListForUser returns a user's reviews with the aggregate rating rounded to
// one decimal.
func (h *ReviewsHandler) ListForUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.URL.Query().Get("userId"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	reviews, err := h.reviewRepo.ListForUser(ctx, id)
	if err != nil {
		serverError(w, r, "list reviews", err)
		return
	}
	if reviews == nil {
		reviews = []models.ReviewEntry{}
	}

	average, count, err := h.reviewRepo.RatingSummary(ctx, id)
	if err != nil {
		serverError(w, r, "rating summary", err)
		return
	}

	writeJSON(w, map[string]any{
		"reviews":       reviews,
		"averageRating": average,
		"reviewCount":   count,
	}, http.StatusOK)
}
