package api

import (
	"net/http"

	"github.com/skillswap/skillswap/internal/models"
	"github.com/skillswap/skillswap/pkg/repository"
)

type ProfileHandler struct {
	userRepo     repository.UserRepo
	skillRepo    repository.SkillRepo
	interestRepo repository.InterestRepo
}

func NewProfileHandler(ur repository.UserRepo, sr repository.SkillRepo, ir repository.InterestRepo) *ProfileHandler {
	return &ProfileHandler{userRepo: ur, skillRepo: sr, interestRepo: ir}
}

type profileResponse struct {
	models.User
	Skills    []models.Skill    `json:"skills"`
	Interests []models.Interest `json:"interests"`
}

// Get returns the caller's profile with joined skills and interests.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	su := SessionFromContext(ctx)

	user, err := h.userRepo.GetByID(ctx, su.ID)
	if err != nil {
		serverError(w, r, "load profile", err)
		return
	}
	if user == nil {
		writeError(w, "User not found", http.StatusNotFound)
		return
	}

	skills, err := h.skillRepo.ListSkillsByUser(ctx, su.ID)
	if err != nil {
		serverError(w, r, "load profile skills", err)
		return
	}
	interests, err := h.interestRepo.ListInterestsByUser(ctx, su.ID)
	if err != nil {
		serverError(w, r, "load profile interests", err)
		return
	}

	if skills == nil {
		skills = []models.Skill{}
	}
	if interests == nil {
		interests = []models.Interest{}
	}

	writeJSON(w, map[string]any{"user": profileResponse{User: *user, Skills: skills, Interests: interests}}, http.StatusOK)
}

type profileUpdateRequest struct {
	Occupation      *string  `json:"occupation"`
	Gender          *string  `json:"gender"`
	BirthDate       *string  `json:"birthDate"`
	Bio             *string  `json:"bio"`
	Location        *string  `json:"location"`
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`
	Radius          *float64 `json:"radius"`
	ProfileImageURL *string  `json:"profileImageUrl"`
	Interests       []string `json:"interests"`
}

// Update applies a partial profile edit; omitted fields keep their stored
// values, and the interest set is replaced only when provided.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req profileUpdateRequest
	if msg, err := decodeValid(r.Context(), r, profileSchema, &req); err != nil {
		writeError(w, msg, http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	su := SessionFromContext(ctx)

	update := repository.ProfileUpdate{
		Occupation:      req.Occupation,
		Gender:          req.Gender,
		BirthDate:       req.BirthDate,
		Bio:             req.Bio,
		Location:        req.Location,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		RadiusKm:        req.Radius,
		ProfileImageURL: req.ProfileImageURL,
	}
	if err := h.userRepo.UpdateProfile(ctx, su.ID, &update); err != nil {
		serverError(w, r, "update profile", err)
		return
	}

	if req.Interests != nil {
		if err := h.interestRepo.ReplaceUserInterests(ctx, su.ID, req.Interests); err != nil {
			serverError(w, r, "replace interests", err)
			return
		}
	}

	writeJSON(w, map[string]bool{"success": true}, http.StatusOK)
}
