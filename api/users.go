package api

import (
	"fmt"
	"math"
	"net/http"
	"sort"
	"strconv"

	"github.com/gorilla/mux"
	gocache "github.com/patrickmn/go-cache"
	"github.com/skillswap/skillswap/internal/models"
	"github.com/skillswap/skillswap/pkg/repository"
)

const (
	exploreLimit = 50
	nearbyLimit  = 20
)

type UsersHandler struct {
	userRepo     repository.UserRepo
	skillRepo    repository.SkillRepo
	interestRepo repository.InterestRepo
	favoriteRepo repository.FavoriteRepo
	cache        *gocache.Cache
}

func NewUsersHandler(ur repository.UserRepo, sr repository.SkillRepo, ir repository.InterestRepo, fr repository.FavoriteRepo, cache *gocache.Cache) *UsersHandler {
	return &UsersHandler{userRepo: ur, skillRepo: sr, interestRepo: ir, favoriteRepo: fr, cache: cache}
}

type publicUserResponse struct {
	ID              int64             `json:"id"`
	Name            string            `json:"name"`
	Occupation      *string           `json:"occupation,omitempty"`
	Bio             *string           `json:"bio,omitempty"`
	Location        *string           `json:"location,omitempty"`
	ProfileImageURL *string           `json:"profileImageUrl,omitempty"`
	Skills          []models.Skill    `json:"skills"`
	Interests       []models.Interest `json:"interests"`
}

// Get returns another user's public card plus whether the caller has
// favorited them.
func (h *UsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		writeError(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	su := SessionFromContext(ctx)

	user, err := h.userRepo.GetByID(ctx, id)
	if err != nil {
		serverError(w, r, "load user", err)
		return
	}
	if user == nil {
		writeError(w, "User not found", http.StatusNotFound)
		return
	}

	skills, err := h.skillRepo.ListSkillsByUser(ctx, id)
	if err != nil {
		serverError(w, r, "load user skills", err)
		return
	}
	interests, err := h.interestRepo.ListInterestsByUser(ctx, id)
	if err != nil {
		serverError(w, r, "load user interests", err)
		return
	}
	isFavorite, err := h.favoriteRepo.IsFavorite(ctx, su.ID, id)
	if err != nil {
		serverError(w, r, "check favorite", err)
		return
	}

	if skills == nil {
		skills = []models.Skill{}
	}
	if interests == nil {
		interests = []models.Interest{}
	}

	resp := publicUserResponse{
		ID:              user.ID,
		Name:            user.Name,
		Occupation:      user.Occupation,
		Bio:             user.Bio,
		Location:        user.Location,
		ProfileImageURL: user.ProfileImageURL,
		Skills:          skills,
		Interests:       interests,
	}
	writeJSON(w, map[string]any{"user": resp, "isFavorite": isFavorite}, http.StatusOK)
}

// Explore returns a random sample of other users with their skills. The
// sample is cached per caller for a short TTL to keep browse pages cheap.
func (h *UsersHandler) Explore(w http.ResponseWriter, r *http.Request) {
	su := SessionFromContext(r.Context())

	key := fmt.Sprintf("explore:%d", su.ID)
	if cached, found := h.cache.Get(key); found {
		writeJSON(w, map[string]any{"users": cached}, http.StatusOK)
		return
	}

	users, err := h.userRepo.ListExplore(r.Context(), su.ID, exploreLimit)
	if err != nil {
		serverError(w, r, "list explore users", err)
		return
	}
	if users == nil {
		users = []models.UserCard{}
	}

	h.cache.Set(key, users, gocache.DefaultExpiration)
	writeJSON(w, map[string]any{"users": users}, http.StatusOK)
}

// Nearby filters other users by haversine distance within the caller's
// radius. Callers without coordinates get the plain random sample instead.
func (h *UsersHandler) Nearby(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	su := SessionFromContext(ctx)

	me, err := h.userRepo.GetByID(ctx, su.ID)
	if err != nil {
		serverError(w, r, "load caller", err)
		return
	}
	if me == nil {
		writeJSON(w, map[string]any{"users": []models.UserCard{}}, http.StatusOK)
		return
	}

	if me.Latitude == nil || me.Longitude == nil {
		users, err := h.userRepo.ListExplore(ctx, su.ID, nearbyLimit)
		if err != nil {
			serverError(w, r, "list nearby fallback", err)
			return
		}
		if users == nil {
			users = []models.UserCard{}
		}
		writeJSON(w, map[string]any{"users": users}, http.StatusOK)
		return
	}

	radius := 25.0
	if me.RadiusKm != nil && *me.RadiusKm > 0 {
		radius = *me.RadiusKm
	}

	candidates, err := h.userRepo.ListWithCoordinates(ctx, su.ID)
	if err != nil {
		serverError(w, r, "list users with coordinates", err)
		return
	}

	type scored struct {
		card models.UserCard
		km   float64
	}
	within := make([]scored, 0, len(candidates))
	for _, u := range candidates {
		d := haversineKm(*me.Latitude, *me.Longitude, *u.Latitude, *u.Longitude)
		if d > radius {
			continue
		}
		within = append(within, scored{
			card: models.UserCard{
				ID:              u.ID,
				Name:            u.Name,
				Occupation:      u.Occupation,
				Bio:             u.Bio,
				Location:        u.Location,
				ProfileImageURL: u.ProfileImageURL,
			},
			km: d,
		})
	}
	sort.Slice(within, func(i, j int) bool { return within[i].km < within[j].km })
	if len(within) > nearbyLimit {
		within = within[:nearbyLimit]
	}

	users := make([]models.UserCard, len(within))
	for i, s := range within {
		users[i] = s.card
	}

	writeJSON(w, map[string]any{"users": users}, http.StatusOK)
}

const earthRadiusKm = 6371.0

// haversineKm is the great-circle distance between two coordinates.
func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * earthRadiusKm * math.Asin(math.Sqrt(a))
}
