package store

import "github.com/bookclubapp/bookclub-server/internal/errors"

// Sentinel errors. These carry the unified error codes so callers can
// discriminate with errors.Is without inspecting messages.
var (
	ErrBookNotFound    = errors.NotFound("book not found")
	ErrThreadNotFound  = errors.NotFound("thread not found")
	ErrUserNotFound    = errors.NotFound("user not found")
	ErrSummaryNotFound = errors.NotFound("summary not found")
	ErrBookExists      = errors.AlreadyExists("book already exists")
	ErrUserExists      = errors.AlreadyExists("user already exists")
	ErrEmailTaken      = errors.AlreadyExists("email already registered")
)
