package domain

import "slices"

// Default profile values applied at registration.
const (
	DefaultPhotoURL    = "https://i.ibb.co/ZmgsTPF/Person-placeholder.jpg"
	DefaultDescription = "Introduce yourself, describe what genre of books you love"
)

// User represents a registered account.
type User struct {
	ID          string `json:"id"`
	PhotoURL    string `json:"photo_url,omitempty"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Description string `json:"description,omitempty"`

	// PasswordHash is the argon2id encoded hash. Filter from API responses.
	PasswordHash string `json:"password_hash,omitempty"`

	FavoriteBookIDs []string `json:"favorite_book_ids,omitempty"`
	SummaryIDs      []string `json:"summary_ids,omitempty"`
}

// HasFavorite reports whether the user already favorited the given book.
func (u *User) HasFavorite(bookID string) bool {
	return slices.Contains(u.FavoriteBookIDs, bookID)
}

// Ref returns the public subset of the user for embedding in resolved views.
func (u *User) Ref() UserRef {
	return UserRef{
		ID:          u.ID,
		DisplayName: u.DisplayName,
		PhotoURL:    u.PhotoURL,
	}
}

// UserRef is the public identity of a user, safe to embed in responses.
type UserRef struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	PhotoURL    string `json:"photo_url,omitempty"`
}
