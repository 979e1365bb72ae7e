package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestThread_EngagementScore(t *testing.T) {
	tests := []struct {
		name    string
		replies int
		views   int
		want    int
	}{
		{"empty thread", 0, 0, 0},
		{"one reply beats one view", 1, 0, 2},
		{"views only", 0, 3, 3},
		{"mixed", 2, 5, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			thread := Thread{Views: tt.views, Replies: make([]Reply, tt.replies)}
			assert.Equal(t, tt.want, thread.EngagementScore())
		})
	}
}

func TestReply_Equal(t *testing.T) {
	now := time.Now()
	base := Reply{Text: "great book", RepliedBy: "user-1", CreatedAt: now}

	assert.True(t, base.Equal(Reply{Text: "great book", RepliedBy: "user-1", CreatedAt: now}))
	assert.False(t, base.Equal(Reply{Text: "great book!", RepliedBy: "user-1", CreatedAt: now}))
	assert.False(t, base.Equal(Reply{Text: "great book", RepliedBy: "user-2", CreatedAt: now}))
	assert.False(t, base.Equal(Reply{Text: "great book", RepliedBy: "user-1", CreatedAt: now.Add(time.Millisecond)}))
}

func TestBook_MatchesText(t *testing.T) {
	book := &Book{
		Title:   "The Left Hand of Darkness",
		Authors: []string{"Ursula K. Le Guin"},
		Genre:   "Science Fiction",
		ISBN10:  "0441478123",
		ISBN13:  "9780441478125",
	}

	tests := []struct {
		query string
		want  bool
	}{
		{"left hand", true},
		{"LEFT HAND", true},
		{"le guin", true},
		{"science", true},
		{"0441478123", true},
		{"9780441478125", true},
		{"044147812", false}, // ISBN match is exact, not substring
		{"dune", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, book.MatchesText(tt.query), "query %q", tt.query)
	}
}

func TestBook_FindThread(t *testing.T) {
	book := &Book{Threads: []Thread{{ID: "thread-a"}, {ID: "thread-b"}}}

	assert.Equal(t, 0, book.FindThread("thread-a"))
	assert.Equal(t, 1, book.FindThread("thread-b"))
	assert.Equal(t, -1, book.FindThread("thread-missing"))
}

func TestBook_SameEdition(t *testing.T) {
	a := &Book{
		Title:     "Dune",
		Authors:   []string{"Frank Herbert"},
		Genre:     "Science Fiction",
		Publisher: "Chilton Books",
	}
	b := &Book{
		Title:     "Dune",
		Authors:   []string{"Frank Herbert"},
		Genre:     "Science Fiction",
		Publisher: "Chilton Books",
		Favorites: 12, // counters are not part of the match key
	}

	assert.True(t, a.SameEdition(b))

	b.Publisher = "Ace"
	assert.False(t, a.SameEdition(b))
}

func TestSummary_AddRating(t *testing.T) {
	s := &Summary{}

	s.AddRating(4)
	assert.Equal(t, 1, s.TimesEvaluated)
	assert.InDelta(t, 4.0, s.Rating, 1e-9)

	s.AddRating(2)
	assert.Equal(t, 2, s.TimesEvaluated)
	assert.InDelta(t, 3.0, s.Rating, 1e-9)
}

func TestSummary_VisibleTo(t *testing.T) {
	public := &Summary{Author: "user-1", Private: false}
	private := &Summary{Author: "user-1", Private: true}

	assert.True(t, public.VisibleTo("user-2"))
	assert.True(t, private.VisibleTo("user-1"))
	assert.False(t, private.VisibleTo("user-2"))
}

func TestUser_HasFavorite(t *testing.T) {
	u := &User{FavoriteBookIDs: []string{"book-1", "book-2"}}

	assert.True(t, u.HasFavorite("book-1"))
	assert.False(t, u.HasFavorite("book-3"))
}

func TestUser_Ref_OmitsCredentials(t *testing.T) {
	u := &User{
		ID:           "user-1",
		DisplayName:  "Reader",
		PhotoURL:     DefaultPhotoURL,
		Email:        "reader@example.com",
		PasswordHash: "$argon2id$...",
	}

	ref := u.Ref()
	assert.Equal(t, "user-1", ref.ID)
	assert.Equal(t, "Reader", ref.DisplayName)
	assert.Equal(t, DefaultPhotoURL, ref.PhotoURL)
}
