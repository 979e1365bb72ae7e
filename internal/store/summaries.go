package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/bookclubapp/bookclub-server/internal/domain"
)

// CreateSummary stores the summary and links it into both the owning book's
// and the author's summary sequences, all in one transaction. An orphaned
// summary record (stored but unreferenced) therefore cannot occur.
func (s *Store) CreateSummary(ctx context.Context, summary *domain.Summary) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		bookKey := []byte(bookPrefix + summary.BookID)
		userKey := []byte(userPrefix + summary.Author)

		var book domain.Book
		if err := getInTxn(txn, bookKey, &book); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrBookNotFound
			}
			return err
		}

		var user domain.User
		if err := getInTxn(txn, userKey, &user); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		if err := setInTxn(txn, []byte(summaryPrefix+summary.ID), summary); err != nil {
			return err
		}

		book.SummaryIDs = append(book.SummaryIDs, summary.ID)
		user.SummaryIDs = append(user.SummaryIDs, summary.ID)

		if err := setInTxn(txn, bookKey, &book); err != nil {
			return err
		}
		return setInTxn(txn, userKey, &user)
	})
	if err != nil {
		return err
	}

	if s.logger != nil {
		s.logger.Info("summary created",
			"id", summary.ID,
			"book_id", summary.BookID,
			"author", summary.Author,
		)
	}
	return nil
}

// GetSummary retrieves a summary by ID.
func (s *Store) GetSummary(ctx context.Context, id string) (*domain.Summary, error) {
	var summary domain.Summary
	err := s.get([]byte(summaryPrefix+id), &summary)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrSummaryNotFound
		}
		return nil, fmt.Errorf("get summary: %w", err)
	}
	return &summary, nil
}

// GetSummariesByIDs fetches summaries in bulk, preserving the input order.
// IDs with no backing document are skipped.
func (s *Store) GetSummariesByIDs(ctx context.Context, ids []string) ([]*domain.Summary, error) {
	summaries := make([]*domain.Summary, 0, len(ids))

	err := s.db.View(func(txn *badger.Txn) error {
		for _, id := range ids {
			var summary domain.Summary
			err := getInTxn(txn, []byte(summaryPrefix+id), &summary)
			if errors.Is(err, badger.ErrKeyNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			summaries = append(summaries, &summary)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get summaries by ids: %w", err)
	}

	return summaries, nil
}

// UpdateSummary overwrites an existing summary document.
// Used by rating updates; the read-modify-write happens in one transaction.
func (s *Store) UpdateSummary(ctx context.Context, update func(*domain.Summary) error, id string) (*domain.Summary, error) {
	var result *domain.Summary

	err := s.db.Update(func(txn *badger.Txn) error {
		key := []byte(summaryPrefix + id)

		var summary domain.Summary
		if err := getInTxn(txn, key, &summary); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrSummaryNotFound
			}
			return err
		}

		if err := update(&summary); err != nil {
			return err
		}

		if err := setInTxn(txn, key, &summary); err != nil {
			return err
		}
		result = &summary
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
