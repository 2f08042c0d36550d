package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/skillswap/skillswap/internal/models"
	"github.com/skillswap/skillswap/pkg/repository"
)

type SkillRequestsHandler struct {
	requestRepo repository.SkillRequestRepo
	skillRepo   repository.SkillRepo
	userRepo    repository.UserRepo
	notifyRepo  repository.NotificationRepo
}

func NewSkillRequestsHandler(rr repository.SkillRequestRepo, sr repository.SkillRepo, ur repository.UserRepo, nr repository.NotificationRepo) *SkillRequestsHandler {
	return &SkillRequestsHandler{requestRepo: rr, skillRepo: sr, userRepo: ur, notifyRepo: nr}
}

// List returns the caller's skill requests from both sides: the ones they
// made and the ones made to them.
func (h *SkillRequestsHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	su := SessionFromContext(ctx)

	made, err := h.requestRepo.ListByRequester(ctx, su.ID)
	if err != nil {
		serverError(w, r, "list requests made", err)
		return
	}
	received, err := h.requestRepo.ListByProvider(ctx, su.ID)
	if err != nil {
		serverError(w, r, "list requests received", err)
		return
	}

	if made == nil {
		made = []models.RequestEntry{}
	}
	if received == nil {
		received = []models.RequestEntry{}
	}

	writeJSON(w, map[string]any{
		"requestsMade":     made,
		"requestsReceived": received,
	}, http.StatusOK)
}

type createSkillRequestRequest struct {
	ProviderID int64   `json:"providerId"`
	SkillID    int64   `json:"skillId"`
	Message    *string `json:"message"`
}

// Create opens a pending request against another user's offered skill.
func (h *SkillRequestsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createSkillRequestRequest
	if msg, err := decodeValid(r.Context(), r, skillRequestSchema, &req); err != nil {
		writeError(w, msg, http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	su := SessionFromContext(ctx)

	if req.ProviderID == su.ID {
		writeError(w, "You cannot request your own skill", http.StatusBadRequest)
		return
	}

	skill, err := h.skillRepo.GetSkillByID(ctx, req.SkillID)
	if err != nil {
		serverError(w, r, "load requested skill", err)
		return
	}
	if skill == nil || skill.UserID != req.ProviderID {
		writeError(w, "Skill not found", http.StatusNotFound)
		return
	}

	request := models.SkillRequest{
		RequesterID: su.ID,
		ProviderID:  req.ProviderID,
		SkillID:     req.SkillID,
		Message:     req.Message,
	}
	id, err := h.requestRepo.CreateRequest(ctx, &request)
	if err != nil {
		serverError(w, r, "create skill request", err)
		return
	}
	request.ID = id
	request.Status = models.StatusPending

	notify(r, h.notifyRepo, req.ProviderID, models.NotifySkillRequest,
		"New skill request",
		fmt.Sprintf("%s requested your skill %q", su.Name, skill.Name),
		"/requests")

	writeJSON(w, map[string]any{"request": request}, http.StatusCreated)
}

// transitionFrom maps each target status to the only status it may leave.
var transitionFrom = map[string]string{
	models.StatusAccepted:  models.StatusPending,
	models.StatusRejected:  models.StatusPending,
	models.StatusCompleted: models.StatusAccepted,
	models.StatusCancelled: models.StatusAccepted,
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus advances a request through its lifecycle. Only the provider
// may act, and each target status is reachable from exactly one prior
// status; anything else is a conflict.
func (h *SkillRequestsHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		writeError(w, "Invalid request ID", http.StatusBadRequest)
		return
	}

	var req updateStatusRequest
	if msg, err := decodeValid(r.Context(), r, statusSchema, &req); err != nil {
		writeError(w, msg, http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	su := SessionFromContext(ctx)

	request, err := h.requestRepo.GetRequestByID(ctx, id)
	if err != nil {
		serverError(w, r, "load skill request", err)
		return
	}
	if request == nil {
		writeError(w, "Request not found", http.StatusNotFound)
		return
	}
	if request.ProviderID != su.ID {
		writeError(w, "Only the provider can update this request", http.StatusForbidden)
		return
	}

	from := transitionFrom[req.Status]
	if request.Status != from {
		writeError(w, fmt.Sprintf("Cannot mark a %s request as %s", request.Status, req.Status), http.StatusConflict)
		return
	}

	// The update re-checks the prior status so two concurrent transitions
	// cannot both win.
	updated, err := h.requestRepo.UpdateStatus(ctx, id, su.ID, from, req.Status)
	if err != nil {
		serverError(w, r, "update request status", err)
		return
	}
	if !updated {
		writeError(w, fmt.Sprintf("Cannot mark a %s request as %s", request.Status, req.Status), http.StatusConflict)
		return
	}

	notify(r, h.notifyRepo, request.RequesterID, models.NotifyRequestUpdate,
		"Request update",
		fmt.Sprintf("%s marked your skill request as %s", su.Name, req.Status),
		"/requests")

	writeJSON(w, map[string]bool{"success": true}, http.StatusOK)
}
