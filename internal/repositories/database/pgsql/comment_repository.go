package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/boardhub/board_backend/internal/apperrors"
	"github.com/boardhub/board_backend/internal/core/domain"
	portsrepo "github.com/boardhub/board_backend/internal/core/ports/repositories"
	"github.com/boardhub/board_backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Foreign key names from the comments migration.
const (
	commentsParentFKey = "comments_parent_id_fkey"
	commentsPostFKey   = "comments_post_id_fkey"
)

const commentColumns = `comment_id, post_id, author_id, parent_id, content, depth, created_at, updated_at`

type PgxCommentRepository struct {
	BaseRepository
}

func newPgxCommentRepository(db *pgxpool.Pool) portsrepo.CommentRepositoryFacade {
	return &PgxCommentRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.CommentRepositoryFacade = (*PgxCommentRepository)(nil)

func toDomainComment(m models.Comment) domain.Comment {
	c := domain.Comment{
		CommentID: m.CommentID,
		PostID:    m.PostID,
		AuthorID:  m.AuthorID,
		Content:   m.Content,
		Depth:     m.Depth,
		Timestamps: domain.Timestamps{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
	if m.ParentID.Valid {
		parentID := m.ParentID.Int64
		c.ParentID = &parentID
	}
	return c
}

func scanComment(row pgx.Row) (*domain.Comment, error) {
	var m models.Comment
	err := row.Scan(&m.CommentID, &m.PostID, &m.AuthorID, &m.ParentID, &m.Content, &m.Depth, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c := toDomainComment(m)
	return &c, nil
}

func (r *PgxCommentRepository) FindCommentByID(ctx context.Context, commentID int64) (*domain.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE comment_id = $1;`
	c, err := scanComment(r.Pool.QueryRow(ctx, query, commentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find comment %d: %w", commentID, err)
	}
	return c, nil
}

func (r *PgxCommentRepository) ListCommentsByPost(ctx context.Context, postID int64) ([]domain.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE post_id = $1 ORDER BY created_at, comment_id;`
	rows, err := r.Pool.Query(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments for post %d: %w", postID, err)
	}
	defer rows.Close()

	comments := []domain.Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment row: %w", err)
		}
		comments = append(comments, *c)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating comment rows: %w", rows.Err())
	}
	return comments, nil
}

// WithinTx runs fn against a transaction-bound store.
func (r *PgxCommentRepository) WithinTx(ctx context.Context, fn func(ctx context.Context, store portsrepo.CommentTxStore) error) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := fn(ctx, &pgxCommentTxStore{tx: tx}); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func (r *PgxCommentRepository) UpdateCommentContent(ctx context.Context, commentID int64, content string, updatedAt time.Time) error {
	cmdTag, err := r.Pool.Exec(ctx, `UPDATE comments SET content = $1, updated_at = $2 WHERE comment_id = $3;`, content, updatedAt, commentID)
	if err != nil {
		return fmt.Errorf("failed to update comment %d: %w", commentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("comment %d not found: %w", commentID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxCommentRepository) DeleteComment(ctx context.Context, commentID int64) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM comments WHERE comment_id = $1;`, commentID)
	if err != nil {
		return fmt.Errorf("failed to delete comment %d: %w", commentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("comment %d not found: %w", commentID, apperrors.ErrNotFound)
	}
	return nil
}

// pgxCommentTxStore implements portsrepo.CommentTxStore on an open transaction.
type pgxCommentTxStore struct {
	tx pgx.Tx
}

func (s *pgxCommentTxStore) FindParentForReply(ctx context.Context, commentID int64) (*domain.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE comment_id = $1 FOR SHARE;`
	c, err := scanComment(s.tx.QueryRow(ctx, query, commentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInvalidParent
		}
		return nil, fmt.Errorf("failed to lock parent comment %d: %w", commentID, err)
	}
	return c, nil
}

func (s *pgxCommentTxStore) InsertComment(ctx context.Context, comment *domain.Comment) error {
	var parentID sql.NullInt64
	if comment.ParentID != nil {
		parentID = sql.NullInt64{Int64: *comment.ParentID, Valid: true}
	}

	query := `
        INSERT INTO comments (post_id, author_id, parent_id, content, depth, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING comment_id;
    `
	err := s.tx.QueryRow(ctx, query,
		comment.PostID,
		comment.AuthorID,
		parentID,
		comment.Content,
		comment.Depth,
		comment.CreatedAt,
		comment.UpdatedAt,
	).Scan(&comment.CommentID)
	if err != nil {
		if code, constraint, ok := pgErrorCode(err); ok && code == pgForeignKeyViolation {
			switch constraint {
			case commentsParentFKey:
				return apperrors.ErrInvalidParent
			case commentsPostFKey:
				return fmt.Errorf("post %d: %w", comment.PostID, apperrors.ErrNotFound)
			}
			return fmt.Errorf("comment references a missing row: %w", apperrors.ErrNotFound)
		}
		return fmt.Errorf("failed to insert comment: %w", err)
	}
	return nil
}
