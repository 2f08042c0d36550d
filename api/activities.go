package api

import (
	"net/http"

	"github.com/skillswap/skillswap/internal/models"
	"github.com/skillswap/skillswap/pkg/repository"
)

const (
	openActivitiesLimit = 20
	pastActivitiesLimit = 30
)

// ActivitiesHandler serves the activity feed views built over skill
// requests: open requests to browse, the caller's in-flight exchanges, and
// their finished history.
type ActivitiesHandler struct {
	requestRepo repository.SkillRequestRepo
}

func NewActivitiesHandler(rr repository.SkillRequestRepo) *ActivitiesHandler {
	return &ActivitiesHandler{requestRepo: rr}
}

// ListOpen returns pending requests opened by other users.
func (h *ActivitiesHandler) ListOpen(w http.ResponseWriter, r *http.Request) {
	su := SessionFromContext(r.Context())

	activities, err := h.requestRepo.ListOpen(r.Context(), su.ID, openActivitiesLimit)
	if err != nil {
		serverError(w, r, "list open activities", err)
		return
	}
	if activities == nil {
		activities = []models.RequestEntry{}
	}

	writeJSON(w, map[string]any{"activities": activities}, http.StatusOK)
}

// ListActive returns the caller's pending and accepted exchanges.
func (h *ActivitiesHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	su := SessionFromContext(r.Context())

	activities, err := h.requestRepo.ListActive(r.Context(), su.ID)
	if err != nil {
		serverError(w, r, "list active activities", err)
		return
	}
	if activities == nil {
		activities = []models.RequestEntry{}
	}

	writeJSON(w, map[string]any{"activities": activities}, http.StatusOK)
}

// ListPast returns the caller's finished exchanges, newest first.
func (h *ActivitiesHandler) ListPast(w http.ResponseWriter, r *http.Request) {
	su := SessionFromContext(r.Context())

	activities, err := h.requestRepo.ListPast(r.Context(), su.ID, pastActivitiesLimit)
	if err != nil {
		serverError(w, r, "list past activities", err)
		return
	}
	if activities == nil {
		activities = []models.RequestEntry{}
	}

	writeJSON(w, map[string]any{"activities": activities}, http.StatusOK)
}
