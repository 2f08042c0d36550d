package models

// Entity structs mirror the sqlite schema. Timestamps are unix milliseconds.

type User struct {
	ID              int64    `json:"id" db:"id"`
	Email           string   `json:"email" db:"email"`
	PasswordHash    string   `json:"-" db:"password_hash"`
	Name            string   `json:"name" db:"name"`
	Bio             *string  `json:"bio,omitempty" db:"bio"`
	Occupation      *string  `json:"occupation,omitempty" db:"occupation"`
	Gender          *string  `json:"gender,omitempty" db:"gender"`
	BirthDate       *string  `json:"birthDate,omitempty" db:"birth_date"`
	Location        *string  `json:"location,omitempty" db:"location"`
	Latitude        *float64 `json:"latitude,omitempty" db:"latitude"`
	Longitude       *float64 `json:"longitude,omitempty" db:"longitude"`
	RadiusKm        *float64 `json:"radiusKm,omitempty" db:"radius_km"`
	ProfileImageURL *string  `json:"profileImageUrl,omitempty" db:"profile_image_url"`
	Created         int64    `json:"createdAt" db:"created"`
	Updated         int64    `json:"updatedAt" db:"updated"`
	LastLogin       *int64   `json:"lastLogin,omitempty" db:"last_login"`
}

type Skill struct {
	ID          int64   `json:"id" db:"id"`
	UserID      int64   `json:"userId" db:"user_id"`
	Name        string  `json:"skillName" db:"skill_name"`
	Category    string  `json:"skillCategory" db:"skill_category"`
	Level       string  `json:"skillLevel" db:"skill_level"`
	Description *string `json:"description,omitempty" db:"description"`
	Offering    bool    `json:"isOffering" db:"is_offering"`
	Created     int64   `json:"createdAt" db:"created"`
}

// SkillLevels are the levels accepted on skill creation.
var SkillLevels = []string{"Beginner", "Intermediate", "Advanced", "Expert"}

type Interest struct {
	ID       int64  `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	Category string `json:"category" db:"category"`
}

type Favorite struct {
	ID              int64 `json:"id" db:"id"`
	UserID          int64 `json:"userId" db:"user_id"`
	FavoritedUserID int64 `json:"favoritedUserId" db:"favorited_user_id"`
	Created         int64 `json:"createdAt" db:"created"`
}

type Message struct {
	ID         int64  `json:"id" db:"id"`
	SenderID   int64  `json:"senderId" db:"sender_id"`
	ReceiverID int64  `json:"receiverId" db:"receiver_id"`
	Text       string `json:"messageText" db:"message_text"`
	RequestID  *int64 `json:"requestId,omitempty" db:"request_id"`
	Read       bool   `json:"isRead" db:"is_read"`
	Created    int64  `json:"createdAt" db:"created"`
}

// Notification type tags.
const (
	NotifyFavorite      = "favorite"
	NotifyMessage       = "message"
	NotifyReview        = "review"
	NotifySkillRequest  = "skill_request"
	NotifyRequestUpdate = "request_update"
)

type Notification struct {
	ID      int64   `json:"id" db:"id"`
	UserID  int64   `json:"userId" db:"user_id"`
	Type    string  `json:"type" db:"type"`
	Title   string  `json:"title" db:"title"`
	Message string  `json:"message" db:"message"`
	Link    *string `json:"link,omitempty" db:"link"`
	Read    bool    `json:"isRead" db:"is_read"`
	Created int64   `json:"createdAt" db:"created"`
}

// Skill request statuses. Transitions are provider-only: pending may move to
// accepted or rejected, accepted may move to completed or cancelled.
const (
	StatusPending   = "pending"
	StatusAccepted  = "accepted"
	StatusRejected  = "rejected"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

type SkillRequest struct {
	ID          int64   `json:"id" db:"id"`
	RequesterID int64   `json:"requesterId" db:"requester_id"`
	ProviderID  int64   `json:"providerId" db:"provider_id"`
	SkillID     int64   `json:"skillId" db:"skill_id"`
	Message     *string `json:"message,omitempty" db:"message"`
	Status      string  `json:"status" db:"status"`
	Created     int64   `json:"createdAt" db:"created"`
	Updated     int64   `json:"updatedAt" db:"updated"`
}

type Review struct {
	ID         int64   `json:"id" db:"id"`
	ReviewerID int64   `json:"reviewerId" db:"reviewer_id"`
	RevieweeID int64   `json:"revieweeId" db:"reviewee_id"`
	RequestID  *int64  `json:"requestId,omitempty" db:"request_id"`
	Rating     int     `json:"rating" db:"rating"`
	Text       *string `json:"reviewText,omitempty" db:"review_text"`
	Created    int64   `json:"createdAt" db:"created"`
}

// View structs returned by listing queries that join across tables.

// UserCard is the public slice of a user shown on browse pages.
type UserCard struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Occupation      *string `json:"occupation,omitempty"`
	Bio             *string `json:"bio,omitempty"`
	Location        *string `json:"location,omitempty"`
	ProfileImageURL *string `json:"profileImageUrl,omitempty"`
	Skills          []Skill `json:"skills,omitempty"`
}

// Conversation is the latest message per counterparty plus the unread count.
type Conversation struct {
	UserID           int64   `json:"userId"`
	UserName         string  `json:"userName"`
	UserProfileImage *string `json:"userProfileImage,omitempty"`
	LastMessage      string  `json:"lastMessage"`
	LastMessageTime  int64   `json:"lastMessageTime"`
	UnreadCount      int64   `json:"unreadCount"`
}

// UserRef is the minimal identity embedded in joined rows.
type UserRef struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	ProfileImageURL *string `json:"profileImageUrl,omitempty"`
}

// SkillRef is the skill slice embedded in request listings.
type SkillRef struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

// ReviewEntry is a review joined with its reviewer's public identity.
type ReviewEntry struct {
	ID       int64   `json:"id"`
	Rating   int     `json:"rating"`
	Text     *string `json:"reviewText,omitempty"`
	Created  int64   `json:"createdAt"`
	Reviewer UserRef `json:"reviewer"`
}

// RequestEntry is a skill request joined with its counterparty and skill.
type RequestEntry struct {
	ID        int64    `json:"id"`
	Status    string   `json:"status"`
	Message   *string  `json:"message,omitempty"`
	Created   int64    `json:"createdAt"`
	Requester *UserRef `json:"requester,omitempty"`
	Provider  *UserRef `json:"provider,omitempty"`
	Skill     SkillRef `json:"skill"`
}
