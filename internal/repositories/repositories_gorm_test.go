package repositories_test

import (
	"fmt"
	"testing"
	"time"

	"unimarket/internal/models"
	"unimarket/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestDB opens a fresh in-memory SQLite database named after the test so
// tests stay isolated from each other.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Listing{}, &models.Message{}, &models.Rating{}))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, id, name, email string) {
	t.Helper()
	repo := repositories.NewGORMUserRepository(db)
	require.NoError(t, repo.Create(&models.User{
		ID:       id,
		Name:     name,
		Email:    email,
		Password: "hashed",
		Verified: true,
	}))
}

func TestGORMUserRepository_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewGORMUserRepository(db)

	require.NoError(t, repo.Create(&models.User{Name: "Alice", Email: "alice@kongu.edu", Password: "x"}))

	err := repo.Create(&models.User{Name: "Alice Again", Email: "alice@kongu.edu", Password: "y"})
	assert.ErrorIs(t, err, repositories.ErrDuplicate)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Where("email = ?", "alice@kongu.edu").Count(&count).Error)
	assert.Equal(t, int64(1), count, "exactly one user row must exist")
}

func TestGORMUserRepository_GetByEmail(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewGORMUserRepository(db)
	seedUser(t, db, "u-1", "Alice", "alice@kongu.edu")

	user, err := repo.GetByEmail("alice@kongu.edu")
	assert.NoError(t, err)
	assert.Equal(t, "u-1", user.ID)

	_, err = repo.GetByEmail("ghost@kongu.edu")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestGORMListingRepository_BrowseFilters(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewGORMListingRepository(db)
	seedUser(t, db, "seller-1", "Alice", "alice@kongu.edu")

	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	listings := []models.Listing{
		{ID: "l-1", Title: "Calculus Textbook", Description: "third edition", Price: 20, Category: "Books", SellerID: "seller-1", Status: models.StatusAvailable, Model: gorm.Model{CreatedAt: base}},
		{ID: "l-2", Title: "Desk Lamp", Description: "bright LED lamp", Price: 12, Category: "Furniture", SellerID: "seller-1", Status: models.StatusAvailable, Model: gorm.Model{CreatedAt: base.Add(time.Minute)}},
		{ID: "l-3", Title: "Physics Notes", Description: "handwritten textbook summaries", Price: 5, Category: "Books", SellerID: "seller-1", Status: models.StatusAvailable, Model: gorm.Model{CreatedAt: base.Add(2 * time.Minute)}},
		{ID: "l-4", Title: "Old Bicycle", Description: "needs repair", Price: 40, Category: "Sports", SellerID: "seller-1", Status: models.StatusSold, Model: gorm.Model{CreatedAt: base.Add(3 * time.Minute)}},
	}
	for i := range listings {
		require.NoError(t, db.Create(&listings[i]).Error)
	}

	// No filters: newest available first, sold rows excluded
	all, err := repo.Browse("", "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "l-3", all[0].ID)
	assert.Equal(t, "l-2", all[1].ID)
	assert.Equal(t, "l-1", all[2].ID)
	assert.Equal(t, "Alice", all[0].SellerName)
	assert.Equal(t, "alice@kongu.edu", all[0].SellerEmail)

	// Case-insensitive substring over title OR description
	matched, err := repo.Browse("TEXTBOOK", "")
	require.NoError(t, err)
	require.Len(t, matched, 2)
	assert.Equal(t, "l-3", matched[0].ID) // matched via description
	assert.Equal(t, "l-1", matched[1].ID) // matched via title

	// Category filter
	books, err := repo.Browse("", "Books")
	require.NoError(t, err)
	require.Len(t, books, 2)

	// Both filters must hold
	both, err := repo.Browse("calculus", "Books")
	require.NoError(t, err)
	require.Len(t, both, 1)
	assert.Equal(t, "l-1", both[0].ID)

	none, err := repo.Browse("calculus", "Furniture")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGORMListingRepository_Categories(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewGORMListingRepository(db)
	seedUser(t, db, "seller-1", "Alice", "alice@kongu.edu")

	rows := []models.Listing{
		{ID: "l-1", Title: "Book A", Price: 1, Category: "Books", SellerID: "seller-1", Status: models.StatusAvailable},
		{ID: "l-2", Title: "Book B", Price: 2, Category: "Books", SellerID: "seller-1", Status: models.StatusAvailable},
		{ID: "l-3", Title: "Lamp", Price: 3, Category: "Furniture", SellerID: "seller-1", Status: models.StatusAvailable},
		{ID: "l-4", Title: "Ball", Price: 4, Category: "Sports", SellerID: "seller-1", Status: models.StatusSold},
	}
	for i := range rows {
		require.NoError(t, db.Create(&rows[i]).Error)
	}

	categories, err := repo.Categories()
	require.NoError(t, err)
	assert.Equal(t, []string{"Books", "Furniture"}, categories, "sold-only categories are excluded")
}

func TestGORMListingRepository_MarkSold(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewGORMListingRepository(db)
	seedUser(t, db, "seller-1", "Alice", "alice@kongu.edu")

	require.NoError(t, repo.Create(&models.Listing{ID: "l-1", Title: "Desk Lamp", Price: 12, Category: "Furniture", SellerID: "seller-1"}))

	require.NoError(t, repo.MarkSold("l-1"))
	listing, err := repo.GetByID("l-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusSold, listing.Status)

	// Idempotent: marking again still succeeds
	assert.NoError(t, repo.MarkSold("l-1"))

	// After the transition the listing leaves the browse feed
	available, err := repo.Browse("", "")
	require.NoError(t, err)
	assert.Empty(t, available)

	assert.ErrorIs(t, repo.MarkSold("l-404"), repositories.ErrNotFound)
}

func TestGORMMessageRepository_Conversations(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewGORMMessageRepository(db)
	seedUser(t, db, "u-a", "Alice", "alice@kongu.edu")
	seedUser(t, db, "u-b", "Bob", "bob@kongu.edu")
	seedUser(t, db, "u-c", "Cara", "cara@kongu.edu")

	t1 := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Minute)
	t3 := t1.Add(2 * time.Minute)
	t4 := t1.Add(3 * time.Minute)

	msgs := []models.Message{
		{ID: "m-1", SenderID: "u-a", ReceiverID: "u-b", Body: "hi bob", Timestamp: t1},
		{ID: "m-2", SenderID: "u-b", ReceiverID: "u-a", Body: "hey alice", Timestamp: t2},
		{ID: "m-3", SenderID: "u-a", ReceiverID: "u-b", Body: "see you at 5", Timestamp: t3},
		{ID: "m-4", SenderID: "u-c", ReceiverID: "u-a", Body: "is the lamp available?", Timestamp: t4},
	}
	for i := range msgs {
		require.NoError(t, repo.Create(&msgs[i]))
	}

	conversations, err := repo.Conversations("u-a")
	require.NoError(t, err)
	require.Len(t, conversations, 2, "one entry per counterparty")

	// Ordered by latest message, so Cara (t4) before Bob (t3)
	assert.Equal(t, "u-c", conversations[0].CounterpartyID)
	assert.Equal(t, "Cara", conversations[0].CounterpartyName)
	assert.Equal(t, "is the lamp available?", conversations[0].Body)

	assert.Equal(t, "u-b", conversations[1].CounterpartyID)
	assert.Equal(t, "see you at 5", conversations[1].Body, "latest message with Bob wins")

	// Bob's view only contains the Alice conversation
	bobs, err := repo.Conversations("u-b")
	require.NoError(t, err)
	require.Len(t, bobs, 1)
	assert.Equal(t, "u-a", bobs[0].CounterpartyID)
	assert.Equal(t, "see you at 5", bobs[0].Body)
}

func TestGORMMessageRepository_Thread(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewGORMMessageRepository(db)
	seedUser(t, db, "u-a", "Alice", "alice@kongu.edu")
	seedUser(t, db, "u-b", "Bob", "bob@kongu.edu")
	seedUser(t, db, "u-c", "Cara", "cara@kongu.edu")

	t1 := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	msgs := []models.Message{
		{ID: "m-2", SenderID: "u-b", ReceiverID: "u-a", Body: "second", Timestamp: t1.Add(time.Minute)},
		{ID: "m-1", SenderID: "u-a", ReceiverID: "u-b", Body: "first", Timestamp: t1},
		{ID: "m-3", SenderID: "u-a", ReceiverID: "u-c", Body: "other thread", Timestamp: t1.Add(2 * time.Minute)},
	}
	for i := range msgs {
		require.NoError(t, repo.Create(&msgs[i]))
	}

	thread, err := repo.Thread("u-a", "u-b")
	require.NoError(t, err)
	require.Len(t, thread, 2, "messages with other users are excluded")
	assert.Equal(t, "first", thread[0].Body)
	assert.Equal(t, "second", thread[1].Body)
	assert.Equal(t, "Alice", thread[0].SenderName)
	assert.Equal(t, "Bob", thread[1].SenderName)

	// Symmetric: the thread reads the same from either side
	mirrored, err := repo.Thread("u-b", "u-a")
	require.NoError(t, err)
	assert.Equal(t, thread, mirrored)
}

func TestGORMRatingRepository_UniquePair(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewGORMRatingRepository(db)
	seedUser(t, db, "buyer-1", "Bob", "bob@kongu.edu")
	seedUser(t, db, "seller-1", "Alice", "alice@kongu.edu")

	require.NoError(t, repo.Create(&models.Rating{ReviewerID: "buyer-1", SellerID: "seller-1", Rating: 5, ReviewText: "great"}))

	// The unique index stops a second rating for the same pair
	err := repo.Create(&models.Rating{ReviewerID: "buyer-1", SellerID: "seller-1", Rating: 1, ReviewText: "duplicate"})
	assert.ErrorIs(t, err, repositories.ErrDuplicate)

	var count int64
	require.NoError(t, db.Model(&models.Rating{}).Count(&count).Error)
	assert.Equal(t, int64(1), count, "exactly one rating row must persist")

	// A different reviewer may still rate the same seller
	seedUser(t, db, "buyer-2", "Cara", "cara@kongu.edu")
	assert.NoError(t, repo.Create(&models.Rating{ReviewerID: "buyer-2", SellerID: "seller-1", Rating: 4}))

	exists, err := repo.ExistsForPair("buyer-1", "seller-1")
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = repo.ExistsForPair("buyer-1", "seller-2")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGORMRatingRepository_Reputation(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewGORMRatingRepository(db)
	seedUser(t, db, "seller-1", "Alice", "alice@kongu.edu")
	seedUser(t, db, "buyer-1", "Bob", "bob@kongu.edu")
	seedUser(t, db, "buyer-2", "Cara", "cara@kongu.edu")

	// Unrated seller: average 0, count 0
	avg, count, err := repo.Reputation("seller-1")
	require.NoError(t, err)
	assert.Equal(t, 0.0, avg)
	assert.Equal(t, int64(0), count)

	require.NoError(t, repo.Create(&models.Rating{ReviewerID: "buyer-1", SellerID: "seller-1", Rating: 4}))
	require.NoError(t, repo.Create(&models.Rating{ReviewerID: "buyer-2", SellerID: "seller-1", Rating: 5}))

	avg, count, err = repo.Reputation("seller-1")
	require.NoError(t, err)
	assert.Equal(t, 4.5, avg)
	assert.Equal(t, int64(2), count)
}

func TestGORMRatingRepository_RecentBySeller(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewGORMRatingRepository(db)
	seedUser(t, db, "seller-1", "Alice", "alice@kongu.edu")

	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		reviewer := fmt.Sprintf("buyer-%d", i)
		seedUser(t, db, reviewer, fmt.Sprintf("Buyer %d", i), fmt.Sprintf("buyer%d@kongu.edu", i))
		rating := models.Rating{
			ID:         fmt.Sprintf("r-%d", i),
			ReviewerID: reviewer,
			SellerID:   "seller-1",
			Rating:     (i % 5) + 1,
			Model:      gorm.Model{CreatedAt: base.Add(time.Duration(i) * time.Minute)},
		}
		require.NoError(t, db.Create(&rating).Error)
	}

	recent, err := repo.RecentBySeller("seller-1", 5)
	require.NoError(t, err)
	require.Len(t, recent, 5)
	assert.Equal(t, "r-6", recent[0].ID, "newest rating first")
	assert.Equal(t, "r-2", recent[4].ID)
	assert.Equal(t, "Buyer 6", recent[0].ReviewerName)
}
