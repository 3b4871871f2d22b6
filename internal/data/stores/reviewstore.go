// Package stores provides SQLite-backed implementations of the domain
// store interfaces.
package stores

import (
	"context"
	"fmt"
	"time"

	"github.com/tandemhq/tandem/internal/core/align"
	"github.com/tandemhq/tandem/internal/core/review"
	"github.com/tandemhq/tandem/internal/data/db"
)

// ReviewStore implements review.Store using SQLite.
type ReviewStore struct {
	db *db.DB
}

var _ review.Store = (*ReviewStore)(nil)

// NewReviewStore creates a new SQLite-backed review store.
func NewReviewStore(db *db.DB) *ReviewStore {
	return &ReviewStore{db: db}
}

// ListComments returns all comments for a diff identity, sorted by path
// then span start.
func (s *ReviewStore) ListComments(ctx context.Context, id align.DiffID) ([]review.Comment, error) {
	rows, err := s.db.Conn().QueryContext(ctx,
		`SELECT id, path, span_start, span_end, content, created_at, updated_at
		 FROM comments WHERE before_ref = ? AND after_ref = ?
		 ORDER BY path, span_start, id`,
		id.Before, id.After,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	var comments []review.Comment
	for rows.Next() {
		var (
			c                    review.Comment
			createdAt, updatedAt int64
		)
		c.Diff = id
		if err := rows.Scan(&c.ID, &c.Path, &c.Span.Start, &c.Span.End, &c.Content, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		c.CreatedAt = time.Unix(0, createdAt)
		c.UpdatedAt = time.Unix(0, updatedAt)
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read comments: %w", err)
	}

	return comments, nil
}

// SaveComment inserts a new comment.
func (s *ReviewStore) SaveComment(ctx context.Context, c review.Comment) error {
	_, err := s.db.Conn().ExecContext(ctx,
		`INSERT INTO comments (id, before_ref, after_ref, path, span_start, span_end, content, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Diff.Before, c.Diff.After, c.Path, c.Span.Start, c.Span.End,
		c.Content, c.CreatedAt.UnixNano(), c.UpdatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to save comment: %w", err)
	}
	return nil
}

// UpdateComment replaces the content of an existing comment.
func (s *ReviewStore) UpdateComment(ctx context.Context, commentID, content string) error {
	res, err := s.db.Conn().ExecContext(ctx,
		`UPDATE comments SET content = ?, updated_at = ? WHERE id = ?`,
		content, time.Now().UnixNano(), commentID,
	)
	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if n == 0 {
		return review.ErrNotFound
	}
	return nil
}

// DeleteComment removes a comment.
func (s *ReviewStore) DeleteComment(ctx context.Context, commentID string) error {
	res, err := s.db.Conn().ExecContext(ctx,
		`DELETE FROM comments WHERE id = ?`, commentID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if n == 0 {
		return review.ErrNotFound
	}
	return nil
}

// MarkReviewed records that a file has been reviewed for a diff.
func (s *ReviewStore) MarkReviewed(ctx context.Context, id align.DiffID, path string) error {
	_, err := s.db.Conn().ExecContext(ctx,
		`INSERT OR IGNORE INTO reviewed_files (before_ref, after_ref, path) VALUES (?, ?, ?)`,
		id.Before, id.After, path,
	)
	if err != nil {
		return fmt.Errorf("failed to mark reviewed: %w", err)
	}
	return nil
}

// UnmarkReviewed removes a file's reviewed mark.
func (s *ReviewStore) UnmarkReviewed(ctx context.Context, id align.DiffID, path string) error {
	_, err := s.db.Conn().ExecContext(ctx,
		`DELETE FROM reviewed_files WHERE before_ref = ? AND after_ref = ? AND path = ?`,
		id.Before, id.After, path,
	)
	if err != nil {
		return fmt.Errorf("failed to unmark reviewed: %w", err)
	}
	return nil
}

// ListReviewed returns the paths marked reviewed for a diff.
func (s *ReviewStore) ListReviewed(ctx context.Context, id align.DiffID) ([]string, error) {
	rows, err := s.db.Conn().QueryContext(ctx,
		`SELECT path FROM reviewed_files WHERE before_ref = ? AND after_ref = ? ORDER BY path`,
		id.Before, id.After,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviewed files: %w", err)
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("failed to scan reviewed path: %w", err)
		}
		paths = append(paths, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read reviewed files: %w", err)
	}

	return paths, nil
}
