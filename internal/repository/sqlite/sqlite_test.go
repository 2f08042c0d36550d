package sqlite_test

import (
	"context"
	"errors"
	"testing"

	dbfs "github.com/skillswap/skillswap/db"
	dbpkg "github.com/skillswap/skillswap/internal/db"
	"github.com/skillswap/skillswap/internal/models"
	sqlite "github.com/skillswap/skillswap/internal/repository/sqlite"
	"github.com/skillswap/skillswap/pkg/repository"
)

func setupRepo(t *testing.T) *sqlite.Repo {
	t.Helper()
	ctx := context.Background()

	// unique shared-memory DSN per test so parallel tests do not collide
	d, err := dbpkg.New(ctx, "file:"+t.Name()+"?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	t.Cleanup(func() { d.Close() })

	if err := dbpkg.Migrate(ctx, d, dbfs.Migrations); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return sqlite.New(d, nil)
}

func createUser(t *testing.T, repo *sqlite.Repo, name, email string) int64 {
	t.Helper()
	id, err := repo.CreateUser(context.Background(), &models.User{Name: name, Email: email, PasswordHash: "hash"})
	if err != nil {
		t.Fatalf("CreateUser(%s) error: %v", name, err)
	}
	return id
}

func strp(s string) *string   { return &s }
func f64p(f float64) *float64 { return &f }

func TestUserCRUD(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	if _, err := repo.CreateUser(ctx, nil); err == nil {
		t.Fatalf("expected error when creating nil user")
	}

	got, err := repo.GetByID(ctx, 9999)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for missing ID, got %#v", got)
	}

	got, err = repo.GetByEmail(ctx, "missing@example.com")
	if err != nil {
		t.Fatalf("GetByEmail error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for missing email, got %#v", got)
	}

	id := createUser(t, repo, "Alice", "alice@example.com")
	if id == 0 {
		t.Fatalf("expected non-zero id")
	}

	got, err = repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got == nil || got.Email != "alice@example.com" || got.Created == 0 {
		t.Fatalf("GetByID wrong result: %#v", got)
	}

	// duplicate email surfaces as ErrDuplicate
	if _, err := repo.CreateUser(ctx, &models.User{Name: "Clone", Email: "alice@example.com", PasswordHash: "h"}); !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate for duplicate email, got %v", err)
	}

	if err := repo.TouchLastLogin(ctx, id); err != nil {
		t.Fatalf("TouchLastLogin error: %v", err)
	}
	got, _ = repo.GetByID(ctx, id)
	if got.LastLogin == nil {
		t.Fatalf("expected last_login set")
	}
}

func TestUpdateProfilePartial(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	id := createUser(t, repo, "Alice", "alice@example.com")
	if err := repo.UpdateProfile(ctx, id, &repository.ProfileUpdate{Bio: strp("first bio"), Location: strp("Berlin")}); err != nil {
		t.Fatalf("UpdateProfile error: %v", err)
	}

	// a second partial update must not wipe the earlier fields
	if err := repo.UpdateProfile(ctx, id, &repository.ProfileUpdate{Occupation: strp("Teacher"), Latitude: f64p(52.52), Longitude: f64p(13.405)}); err != nil {
		t.Fatalf("UpdateProfile error: %v", err)
	}

	got, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got.Bio == nil || *got.Bio != "first bio" {
		t.Fatalf("bio lost by partial update: %#v", got.Bio)
	}
	if got.Location == nil || *got.Location != "Berlin" {
		t.Fatalf("location lost by partial update: %#v", got.Location)
	}
	if got.Occupation == nil || *got.Occupation != "Teacher" {
		t.Fatalf("occupation not set: %#v", got.Occupation)
	}
	if got.Latitude == nil || got.Longitude == nil {
		t.Fatalf("coordinates not set: %#v", got)
	}

	if err := repo.UpdateProfile(ctx, id, nil); err == nil {
		t.Fatalf("expected error for nil update")
	}
}

func TestListExploreAndCoordinates(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	alice := createUser(t, repo, "Alice", "alice@example.com")
	bob := createUser(t, repo, "Bob", "bob@example.com")
	carol := createUser(t, repo, "Carol", "carol@example.com")

	if _, err := repo.CreateSkill(ctx, &models.Skill{UserID: bob, Name: "Guitar", Category: "Music", Level: "Advanced", Offering: true}); err != nil {
		t.Fatalf("CreateSkill error: %v", err)
	}

	cards, err := repo.ListExplore(ctx, alice, 50)
	if err != nil {
		t.Fatalf("ListExplore error: %v", err)
	}
	if len(cards) != 2 {
		t.Fatalf("expected 2 cards got %d", len(cards))
	}
	for _, c := range cards {
		if c.ID == alice {
			t.Fatalf("explore must exclude the caller")
		}
		if c.ID == bob && len(c.Skills) != 1 {
			t.Fatalf("expected bob's card to carry his skill, got %+v", c)
		}
	}

	// only carol gets coordinates
	if err := repo.UpdateProfile(ctx, carol, &repository.ProfileUpdate{Latitude: f64p(48.1), Longitude: f64p(11.6)}); err != nil {
		t.Fatalf("UpdateProfile error: %v", err)
	}
	located, err := repo.ListWithCoordinates(ctx, alice)
	if err != nil {
		t.Fatalf("ListWithCoordinates error: %v", err)
	}
	if len(located) != 1 || located[0].ID != carol {
		t.Fatalf("expected only carol, got %+v", located)
	}
}

func TestSkillOwnership(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	alice := createUser(t, repo, "Alice", "alice@example.com")
	bob := createUser(t, repo, "Bob", "bob@example.com")

	id, err := repo.CreateSkill(ctx, &models.Skill{UserID: bob, Name: "Guitar", Category: "Music", Level: "Advanced", Offering: true})
	if err != nil {
		t.Fatalf("CreateSkill error: %v", err)
	}

	got, err := repo.GetSkillByID(ctx, id)
	if err != nil {
		t.Fatalf("GetSkillByID error: %v", err)
	}
	if got == nil || got.UserID != bob {
		t.Fatalf("unexpected skill: %#v", got)
	}

	// non-owner delete is a no-op
	removed, err := repo.DeleteOwned(ctx, id, alice)
	if err != nil {
		t.Fatalf("DeleteOwned error: %v", err)
	}
	if removed {
		t.Fatalf("non-owner must not remove the skill")
	}
	if got, _ := repo.GetSkillByID(ctx, id); got == nil {
		t.Fatalf("skill must survive a non-owner delete")
	}

	removed, err = repo.DeleteOwned(ctx, id, bob)
	if err != nil {
		t.Fatalf("DeleteOwned error: %v", err)
	}
	if !removed {
		t.Fatalf("owner delete must remove the skill")
	}

	skills, err := repo.ListSkillsByUser(ctx, bob)
	if err != nil {
		t.Fatalf("ListSkillsByUser error: %v", err)
	}
	if len(skills) != 0 {
		t.Fatalf("expected no skills left, got %d", len(skills))
	}
}

func TestInterests(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	alice := createUser(t, repo, "Alice", "alice@example.com")

	// the catalog is seeded by migration 0002
	music, err := repo.GetInterestByName(ctx, "Music")
	if err != nil {
		t.Fatalf("GetInterestByName error: %v", err)
	}
	if music == nil {
		t.Fatalf("expected seeded interest Music")
	}

	missing, err := repo.GetInterestByName(ctx, "No Such Interest")
	if err != nil {
		t.Fatalf("GetInterestByName error: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for unknown interest, got %#v", missing)
	}

	// unknown names are skipped, known ones linked
	if err := repo.ReplaceUserInterests(ctx, alice, []string{"Music", "Cooking", "No Such Interest"}); err != nil {
		t.Fatalf("ReplaceUserInterests error: %v", err)
	}
	set, err := repo.ListInterestsByUser(ctx, alice)
	if err != nil {
		t.Fatalf("ListInterestsByUser error: %v", err)
	}
	if len(set) != 2 {
		t.Fatalf("expected 2 interests got %+v", set)
	}

	// replacement swaps the whole set
	if err := repo.ReplaceUserInterests(ctx, alice, []string{"Cooking"}); err != nil {
		t.Fatalf("ReplaceUserInterests error: %v", err)
	}
	set, _ = repo.ListInterestsByUser(ctx, alice)
	if len(set) != 1 || set[0].Name != "Cooking" {
		t.Fatalf("expected only Cooking, got %+v", set)
	}
}

func TestFavorites(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	alice := createUser(t, repo, "Alice", "alice@example.com")
	bob := createUser(t, repo, "Bob", "bob@example.com")

	added, err := repo.AddFavorite(ctx, alice, bob)
	if err != nil {
		t.Fatalf("AddFavorite error: %v", err)
	}
	if !added {
		t.Fatalf("expected first add to report true")
	}

	// duplicate add is a silent no-op
	added, err = repo.AddFavorite(ctx, alice, bob)
	if err != nil {
		t.Fatalf("AddFavorite duplicate error: %v", err)
	}
	if added {
		t.Fatalf("duplicate add must report false")
	}

	is, err := repo.IsFavorite(ctx, alice, bob)
	if err != nil {
		t.Fatalf("IsFavorite error: %v", err)
	}
	if !is {
		t.Fatalf("expected favorite edge")
	}
	// the edge is directed
	if is, _ := repo.IsFavorite(ctx, bob, alice); is {
		t.Fatalf("favorite edge must be directed")
	}

	cards, err := repo.ListFavorites(ctx, alice)
	if err != nil {
		t.Fatalf("ListFavorites error: %v", err)
	}
	if len(cards) != 1 || cards[0].ID != bob {
		t.Fatalf("unexpected favorites: %+v", cards)
	}

	removed, err := repo.RemoveFavorite(ctx, alice, bob)
	if err != nil {
		t.Fatalf("RemoveFavorite error: %v", err)
	}
	if !removed {
		t.Fatalf("expected removal")
	}
	if is, _ := repo.IsFavorite(ctx, alice, bob); is {
		t.Fatalf("expected edge gone")
	}
}

func TestMessagesThread(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	alice := createUser(t, repo, "Alice", "alice@example.com")
	bob := createUser(t, repo, "Bob", "bob@example.com")
	carol := createUser(t, repo, "Carol", "carol@example.com")

	for _, m := range []models.Message{
		{SenderID: alice, ReceiverID: bob, Text: "hi"},
		{SenderID: bob, ReceiverID: alice, Text: "hello"},
		{SenderID: alice, ReceiverID: bob, Text: "lesson tomorrow?"},
		{SenderID: alice, ReceiverID: carol, Text: "unrelated"},
	} {
		if _, err := repo.CreateMessage(ctx, &m); err != nil {
			t.Fatalf("CreateMessage error: %v", err)
		}
	}

	thread, err := repo.ListThread(ctx, alice, bob)
	if err != nil {
		t.Fatalf("ListThread error: %v", err)
	}
	if len(thread) != 3 {
		t.Fatalf("expected 3 messages got %d", len(thread))
	}
	if thread[0].Text != "hi" || thread[2].Text != "lesson tomorrow?" {
		t.Fatalf("thread must be oldest first: %+v", thread)
	}
	for _, m := range thread {
		if m.Read {
			t.Fatalf("messages must start unread")
		}
	}

	// bob reads the thread: alice's two messages flip
	n, err := repo.MarkThreadRead(ctx, alice, bob)
	if err != nil {
		t.Fatalf("MarkThreadRead error: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 flips got %d", n)
	}

	// a second mark is a no-op
	n, _ = repo.MarkThreadRead(ctx, alice, bob)
	if n != 0 {
		t.Fatalf("expected 0 flips got %d", n)
	}

	thread, _ = repo.ListThread(ctx, alice, bob)
	for _, m := range thread {
		if m.SenderID == alice && !m.Read {
			t.Fatalf("expected alice's messages read: %+v", m)
		}
		if m.SenderID == bob && m.Read {
			t.Fatalf("bob's message must stay unread: %+v", m)
		}
	}
}

func TestListConversations(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	alice := createUser(t, repo, "Alice", "alice@example.com")
	bob := createUser(t, repo, "Bob", "bob@example.com")
	carol := createUser(t, repo, "Carol", "carol@example.com")

	for _, m := range []models.Message{
		{SenderID: bob, ReceiverID: alice, Text: "first from bob"},
		{SenderID: bob, ReceiverID: alice, Text: "second from bob"},
		{SenderID: alice, ReceiverID: carol, Text: "hi carol"},
	} {
		if _, err := repo.CreateMessage(ctx, &m); err != nil {
			t.Fatalf("CreateMessage error: %v", err)
		}
	}

	convs, err := repo.ListConversations(ctx, alice)
	if err != nil {
		t.Fatalf("ListConversations error: %v", err)
	}
	if len(convs) != 2 {
		t.Fatalf("expected 2 conversations got %d", len(convs))
	}

	byUser := map[int64]models.Conversation{}
	for _, c := range convs {
		byUser[c.UserID] = c
	}
	bc, ok := byUser[bob]
	if !ok {
		t.Fatalf("missing conversation with bob: %+v", convs)
	}
	if bc.LastMessage != "second from bob" {
		t.Fatalf("expected latest message per partner, got %q", bc.LastMessage)
	}
	if bc.UnreadCount != 2 {
		t.Fatalf("expected 2 unread from bob got %d", bc.UnreadCount)
	}
	cc := byUser[carol]
	if cc.UnreadCount != 0 {
		t.Fatalf("own outgoing messages are not unread, got %d", cc.UnreadCount)
	}
}

func TestNotifications(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	alice := createUser(t, repo, "Alice", "alice@example.com")
	bob := createUser(t, repo, "Bob", "bob@example.com")

	for i := 0; i < 3; i++ {
		if _, err := repo.CreateNotification(ctx, &models.Notification{UserID: alice, Type: models.NotifyMessage, Title: "New message"}); err != nil {
			t.Fatalf("CreateNotification error: %v", err)
		}
	}
	if _, err := repo.CreateNotification(ctx, &models.Notification{UserID: bob, Type: models.NotifyFavorite, Title: "New favorite"}); err != nil {
		t.Fatalf("CreateNotification error: %v", err)
	}

	list, err := repo.ListNotificationsByUser(ctx, alice, 2)
	if err != nil {
		t.Fatalf("ListNotificationsByUser error: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected limit to apply, got %d", len(list))
	}

	n, err := repo.MarkAllRead(ctx, alice)
	if err != nil {
		t.Fatalf("MarkAllRead error: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 marked got %d", n)
	}

	list, _ = repo.ListNotificationsByUser(ctx, alice, 10)
	for _, item := range list {
		if !item.Read {
			t.Fatalf("expected all read: %+v", item)
		}
	}
	// bob's notification stays unread
	blist, _ := repo.ListNotificationsByUser(ctx, bob, 10)
	if len(blist) != 1 || blist[0].Read {
		t.Fatalf("other users unaffected, got %+v", blist)
	}
}

func TestSkillRequestLifecycle(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	alice := createUser(t, repo, "Alice", "alice@example.com")
	bob := createUser(t, repo, "Bob", "bob@example.com")

	skillID, err := repo.CreateSkill(ctx, &models.Skill{UserID: bob, Name: "Guitar", Category: "Music", Level: "Advanced", Offering: true})
	if err != nil {
		t.Fatalf("CreateSkill error: %v", err)
	}

	id, err := repo.CreateRequest(ctx, &models.SkillRequest{RequesterID: alice, ProviderID: bob, SkillID: skillID})
	if err != nil {
		t.Fatalf("CreateRequest error: %v", err)
	}

	got, err := repo.GetRequestByID(ctx, id)
	if err != nil {
		t.Fatalf("GetRequestByID error: %v", err)
	}
	if got == nil || got.Status != models.StatusPending {
		t.Fatalf("expected pending request, got %#v", got)
	}

	// wrong provider cannot transition
	ok, err := repo.UpdateStatus(ctx, id, alice, models.StatusPending, models.StatusAccepted)
	if err != nil {
		t.Fatalf("UpdateStatus error: %v", err)
	}
	if ok {
		t.Fatalf("requester must not be able to transition")
	}

	// wrong from-status loses
	ok, _ = repo.UpdateStatus(ctx, id, bob, models.StatusAccepted, models.StatusCompleted)
	if ok {
		t.Fatalf("transition from wrong status must fail")
	}

	ok, err = repo.UpdateStatus(ctx, id, bob, models.StatusPending, models.StatusAccepted)
	if err != nil {
		t.Fatalf("UpdateStatus error: %v", err)
	}
	if !ok {
		t.Fatalf("expected accept to win")
	}

	// replaying the same transition loses now
	ok, _ = repo.UpdateStatus(ctx, id, bob, models.StatusPending, models.StatusAccepted)
	if ok {
		t.Fatalf("replayed transition must fail")
	}

	got, _ = repo.GetRequestByID(ctx, id)
	if got.Status != models.StatusAccepted {
		t.Fatalf("expected accepted got %q", got.Status)
	}
}

func TestSkillRequestViews(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	alice := createUser(t, repo, "Alice", "alice@example.com")
	bob := createUser(t, repo, "Bob", "bob@example.com")
	carol := createUser(t, repo, "Carol", "carol@example.com")

	guitar, _ := repo.CreateSkill(ctx, &models.Skill{UserID: bob, Name: "Guitar", Category: "Music", Level: "Advanced", Offering: true})
	chess, _ := repo.CreateSkill(ctx, &models.Skill{UserID: carol, Name: "Chess", Category: "Games", Level: "Expert", Offering: true})

	r1, err := repo.CreateRequest(ctx, &models.SkillRequest{RequesterID: alice, ProviderID: bob, SkillID: guitar, Message: strp("teach me")})
	if err != nil {
		t.Fatalf("CreateRequest error: %v", err)
	}
	r2, err := repo.CreateRequest(ctx, &models.SkillRequest{RequesterID: carol, ProviderID: bob, SkillID: guitar})
	if err != nil {
		t.Fatalf("CreateRequest error: %v", err)
	}
	r3, err := repo.CreateRequest(ctx, &models.SkillRequest{RequesterID: alice, ProviderID: carol, SkillID: chess})
	if err != nil {
		t.Fatalf("CreateRequest error: %v", err)
	}

	// finish r3
	if ok, _ := repo.UpdateStatus(ctx, r3, carol, models.StatusPending, models.StatusAccepted); !ok {
		t.Fatalf("accept r3 failed")
	}
	if ok, _ := repo.UpdateStatus(ctx, r3, carol, models.StatusAccepted, models.StatusCompleted); !ok {
		t.Fatalf("complete r3 failed")
	}

	made, err := repo.ListByRequester(ctx, alice)
	if err != nil {
		t.Fatalf("ListByRequester error: %v", err)
	}
	if len(made) != 2 {
		t.Fatalf("expected 2 made got %d", len(made))
	}
	for _, e := range made {
		if e.Provider == nil || e.Requester != nil {
			t.Fatalf("made entries carry the provider: %+v", e)
		}
	}

	received, err := repo.ListByProvider(ctx, bob)
	if err != nil {
		t.Fatalf("ListByProvider error: %v", err)
	}
	if len(received) != 2 {
		t.Fatalf("expected 2 received got %d", len(received))
	}
	for _, e := range received {
		if e.Requester == nil || e.Provider != nil {
			t.Fatalf("received entries carry the requester: %+v", e)
		}
	}

	// open requests exclude the caller's own
	open, err := repo.ListOpen(ctx, alice, 10)
	if err != nil {
		t.Fatalf("ListOpen error: %v", err)
	}
	if len(open) != 1 || open[0].ID != r2 {
		t.Fatalf("expected only carol's pending request, got %+v", open)
	}

	active, err := repo.ListActive(ctx, alice)
	if err != nil {
		t.Fatalf("ListActive error: %v", err)
	}
	if len(active) != 1 || active[0].ID != r1 {
		t.Fatalf("expected only the pending guitar request, got %+v", active)
	}
	if active[0].Requester == nil || active[0].Provider == nil {
		t.Fatalf("active entries carry both sides: %+v", active[0])
	}

	past, err := repo.ListPast(ctx, alice, 10)
	if err != nil {
		t.Fatalf("ListPast error: %v", err)
	}
	if len(past) != 1 || past[0].ID != r3 || past[0].Status != models.StatusCompleted {
		t.Fatalf("expected the completed chess request, got %+v", past)
	}
}

func TestReviews(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	alice := createUser(t, repo, "Alice", "alice@example.com")
	bob := createUser(t, repo, "Bob", "bob@example.com")
	carol := createUser(t, repo, "Carol", "carol@example.com")

	// unrated user reports a zero summary
	avg, count, err := repo.RatingSummary(ctx, bob)
	if err != nil {
		t.Fatalf("RatingSummary error: %v", err)
	}
	if avg != 0 || count != 0 {
		t.Fatalf("expected zero summary, got avg=%v count=%d", avg, count)
	}

	if _, err := repo.CreateReview(ctx, &models.Review{ReviewerID: alice, RevieweeID: bob, Rating: 5, Text: strp("great")}); err != nil {
		t.Fatalf("CreateReview error: %v", err)
	}
	if _, err := repo.CreateReview(ctx, &models.Review{ReviewerID: carol, RevieweeID: bob, Rating: 4}); err != nil {
		t.Fatalf("CreateReview error: %v", err)
	}

	// second review for the same pair surfaces as ErrDuplicate
	if _, err := repo.CreateReview(ctx, &models.Review{ReviewerID: alice, RevieweeID: bob, Rating: 1}); !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate for duplicate review, got %v", err)
	}

	// out-of-range rating violates the check constraint, not ErrDuplicate
	_, err = repo.CreateReview(ctx, &models.Review{ReviewerID: bob, RevieweeID: alice, Rating: 6})
	if err == nil {
		t.Fatalf("expected check violation for rating 6")
	}
	if errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("check violation must not map to ErrDuplicate")
	}

	has, err := repo.HasReviewed(ctx, alice, bob)
	if err != nil {
		t.Fatalf("HasReviewed error: %v", err)
	}
	if !has {
		t.Fatalf("expected HasReviewed true")
	}
	if has, _ := repo.HasReviewed(ctx, bob, alice); has {
		t.Fatalf("expected HasReviewed false the other way")
	}

	entries, err := repo.ListForUser(ctx, bob)
	if err != nil {
		t.Fatalf("ListForUser error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries got %d", len(entries))
	}
	for _, e := range entries {
		if e.Reviewer.Name == "" {
			t.Fatalf("entries must join the reviewer: %+v", e)
		}
	}

	avg, count, err = repo.RatingSummary(ctx, bob)
	if err != nil {
		t.Fatalf("RatingSummary error: %v", err)
	}
	if avg != 4.5 || count != 2 {
		t.Fatalf("expected avg 4.5 count 2, got avg=%v count=%d", avg, count)
	}
}
