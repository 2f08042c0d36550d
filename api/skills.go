package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/skillswap/skillswap/internal/models"
	"github.com/skillswap/skillswap/pkg/repository"
)

type SkillsHandler struct {
	skillRepo repository.SkillRepo
}

func NewSkillsHandler(sr repository.SkillRepo) *SkillsHandler {
	return &SkillsHandler{skillRepo: sr}
}

func (h *SkillsHandler) List(w http.ResponseWriter, r *http.Request) {
	su := SessionFromContext(r.Context())

	skills, err := h.skillRepo.ListSkillsByUser(r.Context(), su.ID)
	if err != nil {
		serverError(w, r, "list skills", err)
		return
	}
	if skills == nil {
		skills = []models.Skill{}
	}

	writeJSON(w, map[string]any{"skills": skills}, http.StatusOK)
}

type createSkillRequest struct {
	Name        string  `json:"skillName"`
	Category    string  `json:"skillCategory"`
	Level       string  `json:"skillLevel"`
	Description *string `json:"description"`
	Offering    *bool   `json:"isOffering"`
}

func (h *SkillsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createSkillRequest
	if msg, err := decodeValid(r.Context(), r, skillSchema, &req); err != nil {
		writeError(w, msg, http.StatusBadRequest)
		return
	}

	su := SessionFromContext(r.Context())

	offering := true
	if req.Offering != nil {
		offering = *req.Offering
	}
	skill := models.Skill{
		UserID:      su.ID,
		Name:        strings.TrimSpace(req.Name),
		Category:    req.Category,
		Level:       req.Level,
		Description: req.Description,
		Offering:    offering,
	}
	if skill.Name == "" {
		writeError(w, "Missing required fields", http.StatusBadRequest)
		return
	}

	id, err := h.skillRepo.CreateSkill(r.Context(), &skill)
	if err != nil {
		serverError(w, r, "create skill", err)
		return
	}
	skill.ID = id

	writeJSON(w, map[string]any{"skill": skill}, http.StatusCreated)
}

// Delete removes a skill. Ownership is enforced in the delete statement
// itself, so another user's skill simply reads as not found.
func (h *SkillsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		writeError(w, "Invalid skill ID", http.StatusBadRequest)
		return
	}

	su := SessionFromContext(r.Context())

	removed, err := h.skillRepo.DeleteOwned(r.Context(), id, su.ID)
	if err != nil {
		serverError(w, r, "delete skill", err)
		return
	}
	if !removed {
		writeError(w, "Skill not found", http.StatusNotFound)
		return
	}

	writeJSON(w, map[string]bool{"success": true}, http.StatusOK)
}
