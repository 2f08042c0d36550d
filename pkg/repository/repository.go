package repository

import (
	"context"
	"errors"

	"github.com/skillswap/skillswap/internal/models"
)

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.

// ErrDuplicate reports an insert that lost to an existing row on a unique
// column, such as a taken email or a repeated review pair.
var ErrDuplicate = errors.New("duplicate row")

// ProfileUpdate carries the optional fields of a profile edit. Nil fields are
// left unchanged.
type ProfileUpdate struct {
	Occupation      *string
	Gender          *string
	BirthDate       *string
	Bio             *string
	Location        *string
	Latitude        *float64
	Longitude       *float64
	RadiusKm        *float64
	ProfileImageURL *string
}

type UserRepo interface {
	CreateUser(ctx context.Context, u *models.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateProfile(ctx context.Context, id int64, p *ProfileUpdate) error
	TouchLastLogin(ctx context.Context, id int64) error
	// ListExplore returns a random sample of other users with their skills.
	ListExplore(ctx context.Context, excludeID int64, limit int) ([]models.UserCard, error)
	// ListWithCoordinates returns other users that have a latitude/longitude set.
	ListWithCoordinates(ctx context.Context, excludeID int64) ([]models.User, error)
}

type SkillRepo interface {
	CreateSkill(ctx context.Context, s *models.Skill) (int64, error)
	GetSkillByID(ctx context.Context, id int64) (*models.Skill, error)
	ListSkillsByUser(ctx context.Context, userID int64) ([]models.Skill, error)
	// DeleteOwned removes the skill only when ownerID matches; reports whether
	// a row was removed.
	DeleteOwned(ctx context.Context, id, ownerID int64) (bool, error)
}

type InterestRepo interface {
	GetInterestByName(ctx context.Context, name string) (*models.Interest, error)
	ListInterestsByUser(ctx context.Context, userID int64) ([]models.Interest, error)
	// ReplaceUserInterests swaps the user's interest set for the named ones;
	// names with no catalog entry are skipped.
	ReplaceUserInterests(ctx context.Context, userID int64, names []string) error
}

type FavoriteRepo interface {
	// AddFavorite inserts the directed edge; reports whether a new row was
	// created (duplicates are a no-op).
	AddFavorite(ctx context.Context, userID, favoritedUserID int64) (bool, error)
	RemoveFavorite(ctx context.Context, userID, favoritedUserID int64) (bool, error)
	IsFavorite(ctx context.Context, userID, favoritedUserID int64) (bool, error)
	ListFavorites(ctx context.Context, userID int64) ([]models.UserCard, error)
}

type MessageRepo interface {
	CreateMessage(ctx context.Context, m *models.Message) (int64, error)
	// ListThread returns all messages between the two users, oldest first.
	ListThread(ctx context.Context, userID, otherUserID int64) ([]models.Message, error)
	// MarkThreadRead flips unread messages from sender to receiver and
	// returns how many were flipped.
	MarkThreadRead(ctx context.Context, senderID, receiverID int64) (int64, error)
	ListConversations(ctx context.Context, userID int64) ([]models.Conversation, error)
}

type NotificationRepo interface {
	CreateNotification(ctx context.Context, n *models.Notification) (int64, error)
	ListNotificationsByUser(ctx context.Context, userID int64, limit int) ([]models.Notification, error)
	MarkAllRead(ctx context.Context, userID int64) (int64, error)
}

type SkillRequestRepo interface {
	CreateRequest(ctx context.Context, r *models.SkillRequest) (int64, error)
	GetRequestByID(ctx context.Context, id int64) (*models.SkillRequest, error)
	ListByRequester(ctx context.Context, requesterID int64) ([]models.RequestEntry, error)
	ListByProvider(ctx context.Context, providerID int64) ([]models.RequestEntry, error)
	// UpdateStatus transitions the request only when it still belongs to the
	// provider and still has fromStatus; reports whether a row changed.
	UpdateStatus(ctx context.Context, id, providerID int64, fromStatus, toStatus string) (bool, error)
	// ListOpen returns pending requests from other users, newest first.
	ListOpen(ctx context.Context, excludeRequesterID int64, limit int) ([]models.RequestEntry, error)
	// ListActive returns pending/accepted requests involving the user.
	ListActive(ctx context.Context, userID int64) ([]models.RequestEntry, error)
	// ListPast returns completed/rejected/cancelled requests involving the user.
	ListPast(ctx context.Context, userID int64, limit int) ([]models.RequestEntry, error)
}

type ReviewRepo interface {
	CreateReview(ctx context.Context, r *models.Review) (int64, error)
	HasReviewed(ctx context.Context, reviewerID, revieweeID int64) (bool, error)
	ListForUser(ctx context.Context, revieweeID int64) ([]models.ReviewEntry, error)
	// RatingSummary returns the 1-decimal average (0 when unrated) and count.
	RatingSummary(ctx context.Context, revieweeID int64) (float64, int64, error)
}
