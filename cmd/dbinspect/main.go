// Package main provides a read-only inspection tool for the BookClub database.
//
// Usage:
//
//	DATA_PATH=~/BookClub/data go run ./cmd/dbinspect
package main

import (
	"fmt"
	"github.com/go-json-experiment/json"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/bookclubapp/bookclub-server/internal/domain"
)

func main() {
	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		dataPath = os.ExpandEnv("$HOME/BookClub/data")
	}
	dbPath := filepath.Join(dataPath, "db")

	opts := badger.DefaultOptions(dbPath).
		WithReadOnly(true).
		WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	fmt.Println("=== Database Inspection ===")
	fmt.Println()

	inspectBooks(db)
	fmt.Println()
	fmt.Printf("Users:     %d\n", countPrefix(db, "user:"))
	fmt.Printf("Summaries: %d\n", countPrefix(db, "summary:"))
	fmt.Printf("Email idx: %d\n", countPrefix(db, "idx:users:email:"))
}

func inspectBooks(db *badger.DB) {
	bookCount := 0
	threadCount := 0
	replyCount := 0
	viewCount := 0

	err := db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte("book:")
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var book domain.Book
				if err := json.Unmarshal(val, &book); err != nil {
					return err
				}

				bookCount++
				threadCount += len(book.Threads)
				for i := range book.Threads {
					replyCount += len(book.Threads[i].Replies)
					viewCount += book.Threads[i].Views
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Fatalf("Failed to scan books: %v", err)
	}

	fmt.Printf("Books:     %d\n", bookCount)
	fmt.Printf("Threads:   %d (%d replies, %d views)\n", threadCount, replyCount, viewCount)
}

func countPrefix(db *badger.DB, prefix string) int {
	count := 0
	_ = db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefix)
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if strings.HasPrefix(string(it.Item().Key()), prefix) {
				count++
			}
		}
		return nil
	})
	return count
}
