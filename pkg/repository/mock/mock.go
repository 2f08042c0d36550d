package mock

import (
	"context"
	"math"

	"github.com/skillswap/skillswap/internal/models"
	"github.com/skillswap/skillswap/pkg/repository"
)

// Test helpers and mocks
type Mocks struct {
	UserRepo     *UserRepo
	SkillRepo    *SkillRepo
	InterestRepo *InterestRepo
	FavoriteRepo *FavoriteRepo
	MessageRepo  *MessageRepo
	NotifyRepo   *NotificationRepo
	RequestRepo  *SkillRequestRepo
	ReviewRepo   *ReviewRepo
}

func NewMocks() *Mocks {
	return &Mocks{
		UserRepo:     &UserRepo{},
		SkillRepo:    &SkillRepo{},
		InterestRepo: &InterestRepo{Catalog: map[string]int64{}},
		FavoriteRepo: &FavoriteRepo{Edges: map[[2]int64]bool{}},
		MessageRepo:  &MessageRepo{},
		NotifyRepo:   &NotificationRepo{},
		RequestRepo:  &SkillRequestRepo{},
		ReviewRepo:   &ReviewRepo{},
	}
}

type UserRepo struct {
	Users     []*models.User
	CreateErr error
	nextID    int64
}

func (m *UserRepo) CreateUser(ctx context.Context, u *models.User) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	m.nextID++
	stored := *u
	stored.ID = m.nextID
	m.Users = append(m.Users, &stored)
	return stored.ID, nil
}

func (m *UserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	for _, u := range m.Users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (m *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range m.Users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *UserRepo) UpdateProfile(ctx context.Context, id int64, p *repository.ProfileUpdate) error {
	u, _ := m.GetByID(ctx, id)
	if u == nil {
		return nil
	}
	if p.Occupation != nil {
		u.Occupation = p.Occupation
	}
	if p.Gender != nil {
		u.Gender = p.Gender
	}
	if p.BirthDate != nil {
		u.BirthDate = p.BirthDate
	}
	if p.Bio != nil {
		u.Bio = p.Bio
	}
	if p.Location != nil {
		u.Location = p.Location
	}
	if p.Latitude != nil {
		u.Latitude = p.Latitude
	}
	if p.Longitude != nil {
		u.Longitude = p.Longitude
	}
	if p.RadiusKm != nil {
		u.RadiusKm = p.RadiusKm
	}
	if p.ProfileImageURL != nil {
		u.ProfileImageURL = p.ProfileImageURL
	}
	return nil
}

func (m *UserRepo) TouchLastLogin(ctx context.Context, id int64) error { return nil }

func (m *UserRepo) ListExplore(ctx context.Context, excludeID int64, limit int) ([]models.UserCard, error) {
	var cards []models.UserCard
	for _, u := range m.Users {
		if u.ID == excludeID {
			continue
		}
		cards = append(cards, models.UserCard{
			ID:              u.ID,
			Name:            u.Name,
			Occupation:      u.Occupation,
			Bio:             u.Bio,
			Location:        u.Location,
			ProfileImageURL: u.ProfileImageURL,
		})
		if len(cards) == limit {
			break
		}
	}
	return cards, nil
}

func (m *UserRepo) ListWithCoordinates(ctx context.Context, excludeID int64) ([]models.User, error) {
	var out []models.User
	for _, u := range m.Users {
		if u.ID == excludeID || u.Latitude == nil || u.Longitude == nil {
			continue
		}
		out = append(out, *u)
	}
	return out, nil
}

type SkillRepo struct {
	Skills    []models.Skill
	CreateErr error
	nextID    int64
}

func (m *SkillRepo) CreateSkill(ctx context.Context, s *models.Skill) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	m.nextID++
	stored := *s
	stored.ID = m.nextID
	m.Skills = append(m.Skills, stored)
	return stored.ID, nil
}

func (m *SkillRepo) GetSkillByID(ctx context.Context, id int64) (*models.Skill, error) {
	for i := range m.Skills {
		if m.Skills[i].ID == id {
			return &m.Skills[i], nil
		}
	}
	return nil, nil
}

func (m *SkillRepo) ListSkillsByUser(ctx context.Context, userID int64) ([]models.Skill, error) {
	var out []models.Skill
	for _, s := range m.Skills {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *SkillRepo) DeleteOwned(ctx context.Context, id, ownerID int64) (bool, error) {
	for i, s := range m.Skills {
		if s.ID == id && s.UserID == ownerID {
			m.Skills = append(m.Skills[:i], m.Skills[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type InterestRepo struct {
	Catalog map[string]int64
	ByUser  map[int64][]models.Interest
}

func (m *InterestRepo) GetInterestByName(ctx context.Context, name string) (*models.Interest, error) {
	if id, ok := m.Catalog[name]; ok {
		return &models.Interest{ID: id, Name: name}, nil
	}
	return nil, nil
}

func (m *InterestRepo) ListInterestsByUser(ctx context.Context, userID int64) ([]models.Interest, error) {
	if m.ByUser == nil {
		return nil, nil
	}
	return m.ByUser[userID], nil
}

func (m *InterestRepo) ReplaceUserInterests(ctx context.Context, userID int64, names []string) error {
	if m.ByUser == nil {
		m.ByUser = map[int64][]models.Interest{}
	}
	var set []models.Interest
	for _, name := range names {
		if id, ok := m.Catalog[name]; ok {
			set = append(set, models.Interest{ID: id, Name: name})
		}
	}
	m.ByUser[userID] = set
	return nil
}

type FavoriteRepo struct {
	Edges map[[2]int64]bool
	Cards []models.UserCard
}

func (m *FavoriteRepo) AddFavorite(ctx context.Context, userID, favoritedUserID int64) (bool, error) {
	key := [2]int64{userID, favoritedUserID}
	if m.Edges[key] {
		return false, nil
	}
	m.Edges[key] = true
	return true, nil
}

func (m *FavoriteRepo) RemoveFavorite(ctx context.Context, userID, favoritedUserID int64) (bool, error) {
	key := [2]int64{userID, favoritedUserID}
	if !m.Edges[key] {
		return false, nil
	}
	delete(m.Edges, key)
	return true, nil
}

func (m *FavoriteRepo) IsFavorite(ctx context.Context, userID, favoritedUserID int64) (bool, error) {
	return m.Edges[[2]int64{userID, favoritedUserID}], nil
}

func (m *FavoriteRepo) ListFavorites(ctx context.Context, userID int64) ([]models.UserCard, error) {
	return m.Cards, nil
}

type MessageRepo struct {
	Messages      []models.Message
	Conversations []models.Conversation
	nextID        int64
}

func (m *MessageRepo) CreateMessage(ctx context.Context, msg *models.Message) (int64, error) {
	m.nextID++
	stored := *msg
	stored.ID = m.nextID
	m.Messages = append(m.Messages, stored)
	return stored.ID, nil
}

func (m *MessageRepo) ListThread(ctx context.Context, userID, otherUserID int64) ([]models.Message, error) {
	var out []models.Message
	for _, msg := range m.Messages {
		if (msg.SenderID == userID && msg.ReceiverID == otherUserID) ||
			(msg.SenderID == otherUserID && msg.ReceiverID == userID) {
			out = append(out, msg)
		}
	}
	return out, nil
}

func (m *MessageRepo) MarkThreadRead(ctx context.Context, senderID, receiverID int64) (int64, error) {
	var n int64
	for i := range m.Messages {
		msg := &m.Messages[i]
		if msg.SenderID == senderID && msg.ReceiverID == receiverID && !msg.Read {
			msg.Read = true
			n++
		}
	}
	return n, nil
}

func (m *MessageRepo) ListConversations(ctx context.Context, userID int64) ([]models.Conversation, error) {
	return m.Conversations, nil
}

type NotificationRepo struct {
	Notifications []models.Notification
	CreateErr     error
	nextID        int64
}

func (m *NotificationRepo) CreateNotification(ctx context.Context, n *models.Notification) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	m.nextID++
	stored := *n
	stored.ID = m.nextID
	m.Notifications = append(m.Notifications, stored)
	return stored.ID, nil
}

func (m *NotificationRepo) ListNotificationsByUser(ctx context.Context, userID int64, limit int) ([]models.Notification, error) {
	var out []models.Notification
	for _, n := range m.Notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *NotificationRepo) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	var n int64
	for i := range m.Notifications {
		if m.Notifications[i].UserID == userID && !m.Notifications[i].Read {
			m.Notifications[i].Read = true
			n++
		}
	}
	return n, nil
}

type SkillRequestRepo struct {
	Requests []*models.SkillRequest
	Made     []models.RequestEntry
	Received []models.RequestEntry
	Open     []models.RequestEntry
	Active   []models.RequestEntry
	Past     []models.RequestEntry
	nextID   int64
}

func (m *SkillRequestRepo) CreateRequest(ctx context.Context, r *models.SkillRequest) (int64, error) {
	m.nextID++
	stored := *r
	stored.ID = m.nextID
	stored.Status = models.StatusPending
	m.Requests = append(m.Requests, &stored)
	return stored.ID, nil
}

func (m *SkillRequestRepo) GetRequestByID(ctx context.Context, id int64) (*models.SkillRequest, error) {
	for _, r := range m.Requests {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}

func (m *SkillRequestRepo) ListByRequester(ctx context.Context, requesterID int64) ([]models.RequestEntry, error) {
	return m.Made, nil
}

func (m *SkillRequestRepo) ListByProvider(ctx context.Context, providerID int64) ([]models.RequestEntry, error) {
	return m.Received, nil
}

func (m *SkillRequestRepo) UpdateStatus(ctx context.Context, id, providerID int64, fromStatus, toStatus string) (bool, error) {
	for _, r := range m.Requests {
		if r.ID == id && r.ProviderID == providerID && r.Status == fromStatus {
			r.Status = toStatus
			return true, nil
		}
	}
	return false, nil
}

func (m *SkillRequestRepo) ListOpen(ctx context.Context, excludeRequesterID int64, limit int) ([]models.RequestEntry, error) {
	return m.Open, nil
}

func (m *SkillRequestRepo) ListActive(ctx context.Context, userID int64) ([]models.RequestEntry, error) {
	return m.Active, nil
}

func (m *SkillRequestRepo) ListPast(ctx context.Context, userID int64, limit int) ([]models.RequestEntry, error) {
	return m.Past, nil
}

type ReviewRepo struct {
	Reviews   []models.Review
	Entries   []models.ReviewEntry
	CreateErr error
	nextID    int64
}

func (m *ReviewRepo) CreateReview(ctx context.Context, r *models.Review) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	m.nextID++
	stored := *r
	stored.ID = m.nextID
	m.Reviews = append(m.Reviews, stored)
	return stored.ID, nil
}

func (m *ReviewRepo) HasReviewed(ctx context.Context, reviewerID, revieweeID int64) (bool, error) {
	for _, r := range m.Reviews {
		if r.ReviewerID == reviewerID && r.RevieweeID == revieweeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *ReviewRepo) ListForUser(ctx context.Context, revieweeID int64) ([]models.ReviewEntry, error) {
	return m.Entries, nil
}

func (m *ReviewRepo) RatingSummary(ctx context.Context, revieweeID int64) (float64, int64, error) {
	var sum, count int64
	for _, r := range m.Reviews {
		if r.RevieweeID == revieweeID {
			sum += int64(r.Rating)
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	avg := math.Round(float64(sum)/float64(count)*10) / 10
	return avg, count, nil
}
