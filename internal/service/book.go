package service

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/bookclubapp/bookclub-server/internal/domain"
	"github.com/bookclubapp/bookclub-server/internal/errors"
	"github.com/bookclubapp/bookclub-server/internal/id"
	"github.com/bookclubapp/bookclub-server/internal/store"
)

// recentlyAddedCap bounds how many books a recently-added listing returns.
const recentlyAddedCap = 20

// BookService handles book queries, discussion threads, and favorites.
type BookService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewBookService creates a new book service.
func NewBookService(store *store.Store, logger *slog.Logger) *BookService {
	return &BookService{
		store:  store,
		logger: logger,
	}
}

// FilteredSearch returns books matching at least one of each non-empty
// criterion: (genre in genres) AND (author in authors) AND (publisher in
// publishers). An empty criterion list is unsatisfiable, so any empty list
// yields no results.
func (s *BookService) FilteredSearch(ctx context.Context, genres, authors, publishers []string) ([]*domain.Book, error) {
	if len(genres) == 0 || len(authors) == 0 || len(publishers) == 0 {
		return []*domain.Book{}, nil
	}

	books, err := s.store.ListAllBooks(ctx)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}

	matched := make([]*domain.Book, 0, len(books))
	for _, book := range books {
		if !slices.Contains(genres, book.Genre) {
			continue
		}
		if !slices.Contains(publishers, book.Publisher) {
			continue
		}
		hasAuthor := slices.ContainsFunc(authors, book.HasAuthor)
		if !hasAuthor {
			continue
		}
		matched = append(matched, book)
	}

	return matched, nil
}

// ListAll returns every book in the library.
func (s *BookService) ListAll(ctx context.Context) ([]*domain.Book, error) {
	return s.store.ListAllBooks(ctx)
}

// ListRecentlyAdded returns the most recently added books, newest first.
// Limit defaults to 20 and is capped at 20.
func (s *BookService) ListRecentlyAdded(ctx context.Context, limit int) ([]*domain.Book, error) {
	if limit <= 0 || limit > recentlyAddedCap {
		limit = recentlyAddedCap
	}

	books, err := s.store.ListAllBooks(ctx)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}

	slices.SortFunc(books, func(a, b *domain.Book) int {
		return b.DateAdded.Compare(a.DateAdded)
	})

	if len(books) > limit {
		books = books[:limit]
	}
	return books, nil
}

// TextSearch returns books whose title, authors, or genre contain the query
// (case- and accent-insensitive), or whose ISBN equals it exactly.
func (s *BookService) TextSearch(ctx context.Context, query string) ([]*domain.Book, error) {
	if query == "" {
		return []*domain.Book{}, nil
	}

	books, err := s.store.ListAllBooks(ctx)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}

	matched := make([]*domain.Book, 0)
	for _, book := range books {
		if book.MatchesText(query) {
			matched = append(matched, book)
		}
	}
	return matched, nil
}

// BookFilter selects books by exact field values. Zero-valued fields are
// ignored; Author matches any of the book's authors.
type BookFilter struct {
	ID        string `json:"id,omitempty"`
	Title     string `json:"title,omitempty"`
	Genre     string `json:"genre,omitempty"`
	Author    string `json:"author,omitempty"`
	Publisher string `json:"publisher,omitempty"`
	ISBN10    string `json:"isbn10,omitempty"`
	ISBN13    string `json:"isbn13,omitempty"`
}

func (f BookFilter) matches(b *domain.Book) bool {
	if f.ID != "" && b.ID != f.ID {
		return false
	}
	if f.Title != "" && b.Title != f.Title {
		return false
	}
	if f.Genre != "" && b.Genre != f.Genre {
		return false
	}
	if f.Author != "" && !b.HasAuthor(f.Author) {
		return false
	}
	if f.Publisher != "" && b.Publisher != f.Publisher {
		return false
	}
	if f.ISBN10 != "" && b.ISBN10 != f.ISBN10 {
		return false
	}
	if f.ISBN13 != "" && b.ISBN13 != f.ISBN13 {
		return false
	}
	return true
}

// Lookup returns books matching the filter, with thread creators and reply
// authors resolved to public identities.
func (s *BookService) Lookup(ctx context.Context, filter BookFilter) ([]domain.BookView, error) {
	books, err := s.store.ListAllBooks(ctx)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}

	views := make([]domain.BookView, 0)
	for _, book := range books {
		if !filter.matches(book) {
			continue
		}
		threadViews, err := s.resolveThreads(ctx, book.Threads)
		if err != nil {
			return nil, err
		}
		views = append(views, domain.BookView{
			Book:        *book,
			ThreadViews: threadViews,
		})
	}
	return views, nil
}

// UpsertBookRequest carries the descriptive fields of a book to store.
type UpsertBookRequest struct {
	Title       string   `json:"title" validate:"required"`
	Authors     []string `json:"authors"`
	Genre       string   `json:"genre"`
	ISBN10      string   `json:"isbn10"`
	ISBN13      string   `json:"isbn13"`
	Publisher   string   `json:"publisher"`
	Description string   `json:"description"`
	CoverURL    string   `json:"cover_url"`
}

// Upsert stores the book unless an identical edition already exists, in which
// case the stored document is returned unchanged.
func (s *BookService) Upsert(ctx context.Context, req UpsertBookRequest) (*domain.Book, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	bookID, err := id.Generate(id.PrefixBook)
	if err != nil {
		return nil, errors.Internal("failed to generate book ID").WithCause(err)
	}

	book := &domain.Book{
		ID:          bookID,
		Title:       req.Title,
		Authors:     req.Authors,
		Genre:       req.Genre,
		ISBN10:      req.ISBN10,
		ISBN13:      req.ISBN13,
		Publisher:   req.Publisher,
		Description: req.Description,
		CoverURL:    req.CoverURL,
		DateAdded:   time.Now(),
	}

	stored, err := s.store.UpsertBook(ctx, book)
	if err != nil {
		return nil, fmt.Errorf("upsert book: %w", err)
	}

	if stored.ID == bookID {
		s.logger.Info("book added", "book_id", bookID, "title", req.Title)
	}
	return stored, nil
}

// CreateThreadRequest carries the data for a new discussion thread.
type CreateThreadRequest struct {
	BookID      string `json:"book_id" validate:"required"`
	CreatedBy   string `json:"-"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
}

// CreateThread opens a new discussion thread on a book.
func (s *BookService) CreateThread(ctx context.Context, req CreateThreadRequest) (*domain.Thread, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	threadID, err := id.Generate(id.PrefixThread)
	if err != nil {
		return nil, errors.Internal("failed to generate thread ID").WithCause(err)
	}

	thread := domain.Thread{
		ID:          threadID,
		CreatedBy:   req.CreatedBy,
		Title:       req.Title,
		Description: req.Description,
		CreatedAt:   time.Now(),
		Views:       0,
		Replies:     []domain.Reply{},
	}

	if err := s.store.AppendThread(ctx, req.BookID, thread); err != nil {
		return nil, err
	}

	s.logger.Info("thread created", "book_id", req.BookID, "thread_id", threadID)
	return &thread, nil
}

// ListThreadsByRecency returns a book's threads, newest first.
func (s *BookService) ListThreadsByRecency(ctx context.Context, bookID string, limit int) ([]domain.ThreadView, error) {
	return s.listThreads(ctx, bookID, limit, func(a, b *domain.Thread) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
}

// ListUnansweredThreads returns a book's threads with the fewest replies first.
func (s *BookService) ListUnansweredThreads(ctx context.Context, bookID string, limit int) ([]domain.ThreadView, error) {
	return s.listThreads(ctx, bookID, limit, func(a, b *domain.Thread) int {
		return cmp.Compare(len(a.Replies), len(b.Replies))
	})
}

// ListTopThreads returns a book's threads by descending engagement, where
// engagement weighs a reply twice as heavily as a view.
func (s *BookService) ListTopThreads(ctx context.Context, bookID string, limit int) ([]domain.ThreadView, error) {
	return s.listThreads(ctx, bookID, limit, func(a, b *domain.Thread) int {
		return cmp.Compare(b.EngagementScore(), a.EngagementScore())
	})
}

func (s *BookService) listThreads(ctx context.Context, bookID string, limit int, order func(a, b *domain.Thread) int) ([]domain.ThreadView, error) {
	book, err := s.store.GetBook(ctx, bookID)
	if err != nil {
		return nil, err
	}

	threads := slices.Clone(book.Threads)
	slices.SortStableFunc(threads, func(a, b domain.Thread) int {
		return order(&a, &b)
	})

	if limit > 0 && len(threads) > limit {
		threads = threads[:limit]
	}

	return s.resolveThreads(ctx, threads)
}

// RecordView atomically increments a thread's view counter.
func (s *BookService) RecordView(ctx context.Context, bookID, threadID string) error {
	return s.store.IncrementThreadViews(ctx, bookID, threadID)
}

// ReplyRequest carries a new reply to a thread.
type ReplyRequest struct {
	BookID    string `json:"book_id" validate:"required"`
	ThreadID  string `json:"thread_id" validate:"required"`
	RepliedBy string `json:"-"`
	Text      string `json:"text" validate:"required"`
}

// ReplyToThread appends a reply to a thread. A reply identical in text,
// author, and instant to an existing one is silently dropped.
func (s *BookService) ReplyToThread(ctx context.Context, req ReplyRequest) error {
	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}

	reply := domain.Reply{
		Text:      req.Text,
		RepliedBy: req.RepliedBy,
		CreatedAt: time.Now(),
	}

	return s.store.AppendReply(ctx, req.BookID, req.ThreadID, reply)
}

// GetThread returns a single thread with creator and reply authors resolved.
func (s *BookService) GetThread(ctx context.Context, bookID, threadID string) (*domain.ThreadView, error) {
	book, err := s.store.GetBook(ctx, bookID)
	if err != nil {
		return nil, err
	}

	idx := book.FindThread(threadID)
	if idx < 0 {
		return nil, store.ErrThreadNotFound
	}

	views, err := s.resolveThreads(ctx, book.Threads[idx:idx+1])
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// AddToFavorites marks the book as a favorite of the user. The user's list
// and the book's counter move together in one transaction; repeating the call
// changes nothing.
func (s *BookService) AddToFavorites(ctx context.Context, bookID, userID string) error {
	added, err := s.store.AddFavorite(ctx, bookID, userID)
	if err != nil {
		return err
	}
	if added {
		s.logger.Info("book favorited", "book_id", bookID, "user_id", userID)
	}
	return nil
}

// resolveThreads converts threads into views with user references resolved.
// Unknown user IDs resolve to a bare reference carrying only the ID.
func (s *BookService) resolveThreads(ctx context.Context, threads []domain.Thread) ([]domain.ThreadView, error) {
	userIDs := make([]string, 0, len(threads))
	for i := range threads {
		userIDs = append(userIDs, threads[i].CreatedBy)
		for j := range threads[i].Replies {
			userIDs = append(userIDs, threads[i].Replies[j].RepliedBy)
		}
	}

	users, err := s.store.GetUsersByIDs(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve users: %w", err)
	}

	ref := func(userID string) domain.UserRef {
		if user, ok := users[userID]; ok {
			return user.Ref()
		}
		return domain.UserRef{ID: userID}
	}

	views := make([]domain.ThreadView, 0, len(threads))
	for i := range threads {
		t := &threads[i]
		replies := make([]domain.ReplyView, 0, len(t.Replies))
		for j := range t.Replies {
			r := &t.Replies[j]
			replies = append(replies, domain.ReplyView{
				Text:      r.Text,
				RepliedBy: ref(r.RepliedBy),
				CreatedAt: r.CreatedAt,
			})
		}
		views = append(views, domain.ThreadView{
			ID:          t.ID,
			CreatedBy:   ref(t.CreatedBy),
			Title:       t.Title,
			Description: t.Description,
			CreatedAt:   t.CreatedAt,
			Views:       t.Views,
			Replies:     replies,
		})
	}
	return views, nil
}
