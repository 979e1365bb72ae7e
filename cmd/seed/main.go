// Package main provides a tool to seed the database with sample library data.
//
// It creates a handful of books, users, discussion threads, and summaries so
// the API has something to serve during development.
//
// Usage:
//
//	DATA_PATH=~/BookClub/data go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/bookclubapp/bookclub-server/internal/auth"
	"github.com/bookclubapp/bookclub-server/internal/domain"
	"github.com/bookclubapp/bookclub-server/internal/id"
	"github.com/bookclubapp/bookclub-server/internal/store"
)

func main() {
	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		dataPath = os.ExpandEnv("$HOME/BookClub/data")
	}
	dbPath := filepath.Join(dataPath, "db")

	fmt.Printf("Opening database at: %s\n", dbPath)

	s, err := store.New(dbPath, nil)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()

	users := seedUsers(ctx, s)
	books := seedBooks(ctx, s)
	seedDiscussions(ctx, s, books, users)

	fmt.Println("Done.")
}

func seedUsers(ctx context.Context, s *store.Store) []*domain.User {
	seeds := []struct {
		displayName string
		email       string
	}{
		{"Alice Reader", "alice@example.com"},
		{"Bob Bookworm", "bob@example.com"},
		{"Carol Critic", "carol@example.com"},
	}

	users := make([]*domain.User, 0, len(seeds))
	for _, seed := range seeds {
		hash, err := auth.HashPassword("password123")
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}

		user := &domain.User{
			ID:           id.MustGenerate(id.PrefixUser),
			Email:        seed.email,
			DisplayName:  seed.displayName,
			PhotoURL:     domain.DefaultPhotoURL,
			Description:  domain.DefaultDescription,
			PasswordHash: hash,
		}
		if err := s.CreateUser(ctx, user); err != nil {
			fmt.Printf("Skipping user %s: %v\n", seed.email, err)
			continue
		}
		fmt.Printf("Created user %s (%s)\n", user.DisplayName, user.ID)
		users = append(users, user)
	}
	return users
}

func seedBooks(ctx context.Context, s *store.Store) []*domain.Book {
	seeds := []domain.Book{
		{
			Title:     "Dune",
			Authors:   []string{"Frank Herbert"},
			Genre:     "scifi",
			Publisher: "Chilton",
			ISBN13:    "9780441172719",
		},
		{
			Title:     "The Left Hand of Darkness",
			Authors:   []string{"Ursula K. Le Guin"},
			Genre:     "scifi",
			Publisher: "Ace",
			ISBN10:    "0441478123",
		},
		{
			Title:     "One Hundred Years of Solitude",
			Authors:   []string{"Gabriel García Márquez"},
			Genre:     "magical realism",
			Publisher: "Harper",
		},
	}

	books := make([]*domain.Book, 0, len(seeds))
	for i := range seeds {
		book := seeds[i]
		book.ID = id.MustGenerate(id.PrefixBook)
		book.DateAdded = time.Now().Add(-time.Duration(i) * 24 * time.Hour)

		stored, err := s.UpsertBook(ctx, &book)
		if err != nil {
			log.Fatalf("Failed to upsert book %q: %v", book.Title, err)
		}
		if stored.ID == book.ID {
			fmt.Printf("Created book %q (%s)\n", stored.Title, stored.ID)
		} else {
			fmt.Printf("Book %q already present (%s)\n", stored.Title, stored.ID)
		}
		books = append(books, stored)
	}
	return books
}

func seedDiscussions(ctx context.Context, s *store.Store, books []*domain.Book, users []*domain.User) {
	if len(books) == 0 || len(users) == 0 {
		fmt.Println("Nothing to discuss, skipping threads and summaries")
		return
	}

	thread := domain.Thread{
		ID:          id.MustGenerate(id.PrefixThread),
		CreatedBy:   users[0].ID,
		Title:       "First impressions",
		Description: "No spoilers past chapter three, please.",
		CreatedAt:   time.Now(),
		Replies:     []domain.Reply{},
	}
	if err := s.AppendThread(ctx, books[0].ID, thread); err != nil {
		log.Fatalf("Failed to create thread: %v", err)
	}
	fmt.Printf("Created thread %q on %q\n", thread.Title, books[0].Title)

	reply := domain.Reply{
		Text:      "The opening chapter hooked me immediately.",
		RepliedBy: users[1%len(users)].ID,
		CreatedAt: time.Now(),
	}
	if err := s.AppendReply(ctx, books[0].ID, thread.ID, reply); err != nil {
		log.Fatalf("Failed to create reply: %v", err)
	}

	summary := &domain.Summary{
		ID:        id.MustGenerate(id.PrefixSummary),
		BookID:    books[0].ID,
		Author:    users[0].ID,
		Text:      "A sweeping story of politics, ecology, and destiny on a desert world.",
		CreatedAt: time.Now(),
	}
	if err := s.CreateSummary(ctx, summary); err != nil {
		log.Fatalf("Failed to create summary: %v", err)
	}
	fmt.Printf("Created summary %s\n", summary.ID)
}
