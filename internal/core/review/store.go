package review

import (
	"context"
	"errors"

	"github.com/tandemhq/tandem/internal/core/align"
)

// Sentinel errors for review operations.
var (
	ErrNotFound = errors.New("review record not found")
)

// Store defines persistence operations for review data. Implementations
// live in internal/data/stores; the engine only consumes read-mostly
// projections refreshed on explicit mutation.
type Store interface {
	// ListComments returns all comments for a diff identity, sorted by
	// path then span start.
	ListComments(ctx context.Context, id align.DiffID) ([]Comment, error)

	// SaveComment inserts a new comment.
	SaveComment(ctx context.Context, comment Comment) error

	// UpdateComment replaces the content of an existing comment.
	// Returns ErrNotFound if the comment does not exist.
	UpdateComment(ctx context.Context, commentID, content string) error

	// DeleteComment removes a comment. Returns ErrNotFound if the comment
	// does not exist.
	DeleteComment(ctx context.Context, commentID string) error

	// MarkReviewed records that a file has been reviewed for a diff.
	MarkReviewed(ctx context.Context, id align.DiffID, path string) error

	// UnmarkReviewed removes a file's reviewed mark.
	UnmarkReviewed(ctx context.Context, id align.DiffID, path string) error

	// ListReviewed returns the paths marked reviewed for a diff.
	ListReviewed(ctx context.Context, id align.DiffID) ([]string, error)
}
