package store

import (
	"context"
	"errors"
	"fmt"
	"github.com/go-json-experiment/json"
	"log/slog"

	"github.com/dgraph-io/badger/v4"

	"github.com/bookclubapp/bookclub-server/internal/domain"
)

// Book Operations

// CreateBook creates a new book.
func (s *Store) CreateBook(ctx context.Context, book *domain.Book) error {
	key := []byte(bookPrefix + book.ID)

	exists, err := s.exists(key)
	if err != nil {
		return fmt.Errorf("check book exists: %w", err)
	}
	if exists {
		return ErrBookExists
	}

	if err := s.set(key, book); err != nil {
		return fmt.Errorf("create book: %w", err)
	}

	if s.logger != nil {
		s.logger.LogAttrs(ctx, slog.LevelInfo, "book created",
			slog.String("id", book.ID),
			slog.String("title", book.Title),
		)
	}
	return nil
}

// GetBook retrieves a book by ID.
func (s *Store) GetBook(ctx context.Context, id string) (*domain.Book, error) {
	key := []byte(bookPrefix + id)

	var book domain.Book
	err := s.get(key, &book)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("get book: %w", err)
	}
	return &book, nil
}

// UpdateBook overwrites an existing book document.
func (s *Store) UpdateBook(ctx context.Context, book *domain.Book) error {
	key := []byte(bookPrefix + book.ID)

	exists, err := s.exists(key)
	if err != nil {
		return fmt.Errorf("check book exists: %w", err)
	}
	if !exists {
		return ErrBookNotFound
	}

	if err := s.set(key, book); err != nil {
		return fmt.Errorf("update book: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("book updated", "id", book.ID, "title", book.Title)
	}
	return nil
}

// UpsertBook inserts the book if no stored book describes the same edition,
// otherwise returns the stored document unchanged. The match key is the full
// set of descriptive fields, not the ID (find-or-create on document equality).
func (s *Store) UpsertBook(ctx context.Context, book *domain.Book) (*domain.Book, error) {
	var result *domain.Book

	err := s.db.Update(func(txn *badger.Txn) error {
		prefix := []byte(bookPrefix)
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var existing domain.Book
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &existing)
			})
			if err != nil {
				return err
			}
			if existing.SameEdition(book) {
				result = &existing
				return nil
			}
		}

		// Not found, insert as-is.
		result = book
		return setInTxn(txn, []byte(bookPrefix+book.ID), book)
	})
	if err != nil {
		return nil, fmt.Errorf("upsert book: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("book upserted", "id", result.ID, "title", result.Title)
	}
	return result, nil
}

// ListAllBooks returns all books (non-paginated). The library is the unit the
// query layer filters and ranks in memory, matching single-collection scans.
func (s *Store) ListAllBooks(ctx context.Context) ([]*domain.Book, error) {
	var books []*domain.Book

	prefix := []byte(bookPrefix)

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()

			err := item.Value(func(val []byte) error {
				var book domain.Book
				if err := json.Unmarshal(val, &book); err != nil {
					return err
				}
				books = append(books, &book)
				return nil
			})
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list all books: %w", err)
	}

	return books, nil
}

// Thread Operations
//
// Threads are embedded in the book document, so each mutation below is a
// read-modify-write of one document inside a single Badger transaction.

// AppendThread adds a thread to the book's thread sequence.
func (s *Store) AppendThread(ctx context.Context, bookID string, thread domain.Thread) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		key := []byte(bookPrefix + bookID)

		var book domain.Book
		if err := getInTxn(txn, key, &book); err != nil {
			return err
		}

		book.Threads = append(book.Threads, thread)
		return setInTxn(txn, key, &book)
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrBookNotFound
		}
		return fmt.Errorf("append thread: %w", err)
	}

	if s.logger != nil {
		s.logger.LogAttrs(ctx, slog.LevelInfo, "thread created",
			slog.String("book_id", bookID),
			slog.String("thread_id", thread.ID),
			slog.String("title", thread.Title),
		)
	}
	return nil
}

// IncrementThreadViews atomically adds one to the thread's view counter.
// Returns ErrBookNotFound or ErrThreadNotFound if the pair does not exist.
func (s *Store) IncrementThreadViews(ctx context.Context, bookID, threadID string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		key := []byte(bookPrefix + bookID)

		var book domain.Book
		if err := getInTxn(txn, key, &book); err != nil {
			return err
		}

		idx := book.FindThread(threadID)
		if idx < 0 {
			return ErrThreadNotFound
		}

		book.Threads[idx].Views++
		return setInTxn(txn, key, &book)
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrBookNotFound
		}
		return err
	}
	return nil
}

// AppendReply adds a reply to the addressed thread, suppressing structurally
// identical duplicates (add-to-set semantics).
func (s *Store) AppendReply(ctx context.Context, bookID, threadID string, reply domain.Reply) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		key := []byte(bookPrefix + bookID)

		var book domain.Book
		if err := getInTxn(txn, key, &book); err != nil {
			return err
		}

		idx := book.FindThread(threadID)
		if idx < 0 {
			return ErrThreadNotFound
		}

		for _, existing := range book.Threads[idx].Replies {
			if existing.Equal(reply) {
				// Duplicate within the same instant, nothing to store.
				return nil
			}
		}

		book.Threads[idx].Replies = append(book.Threads[idx].Replies, reply)
		return setInTxn(txn, key, &book)
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrBookNotFound
		}
		return err
	}
	return nil
}

// Favorites

// AddFavorite records the book in the user's favorites and bumps the book's
// favorites counter. Both documents are written in one transaction, so the
// counter cannot drift from the favorites lists on partial failure. The
// counter increment is gated on the user-side insert: if the user already
// favorited the book, nothing is written and added is false.
func (s *Store) AddFavorite(ctx context.Context, bookID, userID string) (added bool, err error) {
	err = s.db.Update(func(txn *badger.Txn) error {
		bookKey := []byte(bookPrefix + bookID)
		userKey := []byte(userPrefix + userID)

		var user domain.User
		if err := getInTxn(txn, userKey, &user); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		if user.HasFavorite(bookID) {
			added = false
			return nil
		}

		var book domain.Book
		if err := getInTxn(txn, bookKey, &book); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrBookNotFound
			}
			return err
		}

		user.FavoriteBookIDs = append(user.FavoriteBookIDs, bookID)
		book.Favorites++

		if err := setInTxn(txn, userKey, &user); err != nil {
			return err
		}
		if err := setInTxn(txn, bookKey, &book); err != nil {
			return err
		}

		added = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if added && s.logger != nil {
		s.logger.Info("book favorited", "book_id", bookID, "user_id", userID)
	}
	return added, nil
}
