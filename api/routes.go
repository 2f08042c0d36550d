package api

import (
	"log/slog"

	"github.com/gorilla/mux"
	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/cors"
	"github.com/skillswap/skillswap/internal/config"
	"github.com/skillswap/skillswap/internal/db"
	"github.com/skillswap/skillswap/internal/repository/sqlite"
	"github.com/skillswap/skillswap/internal/session"
)

func SetupRoutes(cfg *config.Config, version, buildTime string, conn *db.DB, log *slog.Logger) *mux.Router {
	SetLogger(log)

	r := mux.NewRouter()

	// Middleware chain
	r.Use(LoggingMiddleware)
	r.Use(RecoveryMiddleware)
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "X-Request-ID"},
		AllowCredentials: true,
	}).Handler)

	// Repository and session manager
	repo := sqlite.New(conn, log)
	sessions := session.NewManager(cfg.JWTSecret, cfg.SessionTTL, cfg.SecureCookies)
	exploreCache := gocache.New(cfg.ExploreCacheTTL, 2*cfg.ExploreCacheTTL)

	// Create handlers
	systemHandler := &SystemHandler{}
	authHandler := NewAuthHandler(repo, sessions)
	profileHandler := NewProfileHandler(repo, repo, repo)
	usersHandler := NewUsersHandler(repo, repo, repo, repo, exploreCache)
	skillsHandler := NewSkillsHandler(repo)
	favoritesHandler := NewFavoritesHandler(repo, repo, repo)
	messagesHandler := NewMessagesHandler(repo, repo, repo)
	notificationsHandler := NewNotificationsHandler(repo)
	reviewsHandler := NewReviewsHandler(repo, repo, repo)
	requestsHandler := NewSkillRequestsHandler(repo, repo, repo, repo)
	activitiesHandler := NewActivitiesHandler(repo)

	// Open endpoints
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods("GET")
	r.HandleFunc("/api/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/api/auth/logout", authHandler.Logout).Methods("POST")
	r.HandleFunc("/api/auth/me", authHandler.Me).Methods("GET")

	// Protected API routes
	apiR := r.PathPrefix("/api").Subrouter()
	apiR.Use(RequireSession(sessions))

	apiR.HandleFunc("/user/profile", profileHandler.Get).Methods("GET")
	apiR.HandleFunc("/user/profile", profileHandler.Update).Methods("PUT")

	apiR.HandleFunc("/users/explore", usersHandler.Explore).Methods("GET")
	apiR.HandleFunc("/users/nearby", usersHandler.Nearby).Methods("GET")
	apiR.HandleFunc("/users/{id:[0-9]+}", usersHandler.Get).Methods("GET")

	apiR.HandleFunc("/skills", skillsHandler.List).Methods("GET")
	apiR.HandleFunc("/skills", skillsHandler.Create).Methods("POST")
	apiR.HandleFunc("/skills/{id:[0-9]+}", skillsHandler.Delete).Methods("DELETE")

	apiR.HandleFunc("/favorites", favoritesHandler.List).Methods("GET")
	apiR.HandleFunc("/favorites", favoritesHandler.Create).Methods("POST")
	apiR.HandleFunc("/favorites/{id:[0-9]+}", favoritesHandler.Delete).Methods("DELETE")

	apiR.HandleFunc("/messages", messagesHandler.Send).Methods("POST")
	apiR.HandleFunc("/messages/conversations", messagesHandler.Conversations).Methods("GET")
	apiR.HandleFunc("/messages/{userId:[0-9]+}", messagesHandler.Thread).Methods("GET")

	apiR.HandleFunc("/notifications", notificationsHandler.List).Methods("GET")

	apiR.HandleFunc("/reviews", reviewsHandler.Create).Methods("POST")
	apiR.HandleFunc("/reviews", reviewsHandler.ListForUser).Methods("GET")

	apiR.HandleFunc("/skill-requests", requestsHandler.List).Methods("GET")
	apiR.HandleFunc("/skill-requests", requestsHandler.Create).Methods("POST")
	apiR.HandleFunc("/skill-requests/{id:[0-9]+}", requestsHandler.UpdateStatus).Methods("PATCH")

	apiR.HandleFunc("/activities", activitiesHandler.ListOpen).Methods("GET")
	apiR.HandleFunc("/activities/mine", activitiesHandler.ListActive).Methods("GET")
	apiR.HandleFunc("/activities/past", activitiesHandler.ListPast).Methods("GET")

	// Static frontend with the page gateway, when a web dir is configured
	if cfg.WebDir != "" {
		r.PathPrefix("/").Handler(NewPageGateway(sessions, cfg.WebDir))
	}

	return r
}
