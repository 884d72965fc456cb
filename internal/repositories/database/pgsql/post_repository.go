package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/boardhub/board_backend/internal/apperrors"
	"github.com/boardhub/board_backend/internal/core/domain"
	portsrepo "github.com/boardhub/board_backend/internal/core/ports/repositories"
	"github.com/boardhub/board_backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxPostRepository struct {
	BaseRepository
}

func newPgxPostRepository(db *pgxpool.Pool) portsrepo.PostRepositoryFacade {
	return &PgxPostRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.PostRepositoryFacade = (*PgxPostRepository)(nil)

const postColumns = `post_id, board_id, author_id, title, content, created_at, updated_at`

func toDomainPost(m models.Post) domain.Post {
	return domain.Post{
		PostID:      m.PostID,
		BoardID:     m.BoardID,
		AuthorID:    m.AuthorID,
		Title:       m.Title,
		Content:     m.Content,
		Attachments: []domain.Attachment{},
		Timestamps: domain.Timestamps{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}

func toDomainAttachment(m models.Attachment) domain.Attachment {
	return domain.Attachment{
		AttachmentID: m.AttachmentID,
		PostID:       m.PostID,
		URL:          m.URL,
		ObjectKey:    m.ObjectKey,
	}
}

func scanPost(row pgx.Row) (domain.Post, error) {
	var m models.Post
	err := row.Scan(&m.PostID, &m.BoardID, &m.AuthorID, &m.Title, &m.Content, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return domain.Post{}, err
	}
	return toDomainPost(m), nil
}

func (r *PgxPostRepository) FindPostByID(ctx context.Context, postID int64) (*domain.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE post_id = $1;`
	post, err := scanPost(r.Pool.QueryRow(ctx, query, postID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find post %d: %w", postID, err)
	}

	attachments, err := r.findAttachments(ctx, []int64{postID})
	if err != nil {
		return nil, err
	}
	post.Attachments = append(post.Attachments, attachments[postID]...)
	return &post, nil
}

func (r *PgxPostRepository) ListPosts(ctx context.Context, boardID *int64) ([]domain.Post, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if boardID != nil {
		rows, err = r.Pool.Query(ctx, `SELECT `+postColumns+` FROM posts WHERE board_id = $1 ORDER BY created_at DESC, post_id DESC;`, *boardID)
	} else {
		rows, err = r.Pool.Query(ctx, `SELECT `+postColumns+` FROM posts ORDER BY created_at DESC, post_id DESC;`)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	return r.collectPosts(ctx, rows)
}

func (r *PgxPostRepository) ListPostsByAuthor(ctx context.Context, authorID int64) ([]domain.Post, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+postColumns+` FROM posts WHERE author_id = $1 ORDER BY created_at DESC, post_id DESC;`, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts of author %d: %w", authorID, err)
	}
	return r.collectPosts(ctx, rows)
}

// collectPosts scans rows, closes them and loads the attachments of every post.
func (r *PgxPostRepository) collectPosts(ctx context.Context, rows pgx.Rows) ([]domain.Post, error) {
	defer rows.Close()

	posts := []domain.Post{}
	ids := []int64{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post row: %w", err)
		}
		posts = append(posts, post)
		ids = append(ids, post.PostID)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating post rows: %w", rows.Err())
	}
	rows.Close()

	if len(ids) == 0 {
		return posts, nil
	}
	attachments, err := r.findAttachments(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		posts[i].Attachments = append(posts[i].Attachments, attachments[posts[i].PostID]...)
	}
	return posts, nil
}

func (r *PgxPostRepository) findAttachments(ctx context.Context, postIDs []int64) (map[int64][]domain.Attachment, error) {
	query := `
        SELECT attachment_id, post_id, url, object_key
        FROM attachments
        WHERE post_id = ANY($1)
        ORDER BY attachment_id;
    `
	rows, err := r.Pool.Query(ctx, query, postIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query attachments: %w", err)
	}
	defer rows.Close()

	byPost := make(map[int64][]domain.Attachment, len(postIDs))
	for rows.Next() {
		var m models.Attachment
		if err := rows.Scan(&m.AttachmentID, &m.PostID, &m.URL, &m.ObjectKey); err != nil {
			return nil, fmt.Errorf("failed to scan attachment row: %w", err)
		}
		byPost[m.PostID] = append(byPost[m.PostID], toDomainAttachment(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating attachment rows: %w", rows.Err())
	}
	return byPost, nil
}

func (r *PgxPostRepository) SavePost(ctx context.Context, post *domain.Post) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
        INSERT INTO posts (board_id, author_id, title, content, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING post_id;
    `
	err = tx.QueryRow(ctx, query,
		post.BoardID,
		post.AuthorID,
		post.Title,
		post.Content,
		post.CreatedAt,
		post.UpdatedAt,
	).Scan(&post.PostID)
	if err != nil {
		if code, _, ok := pgErrorCode(err); ok && code == pgForeignKeyViolation {
			return fmt.Errorf("board %d or author %d does not exist: %w", post.BoardID, post.AuthorID, apperrors.ErrNotFound)
		}
		return fmt.Errorf("failed to insert post: %w", err)
	}

	for i := range post.Attachments {
		a := &post.Attachments[i]
		a.PostID = post.PostID
		err = tx.QueryRow(ctx, `
            INSERT INTO attachments (post_id, url, object_key)
            VALUES ($1, $2, $3)
            RETURNING attachment_id;
        `, a.PostID, a.URL, a.ObjectKey).Scan(&a.AttachmentID)
		if err != nil {
			return fmt.Errorf("failed to insert attachment for post %d: %w", post.PostID, err)
		}
	}

	return r.Commit(ctx, tx)
}

func (r *PgxPostRepository) UpdatePost(ctx context.Context, post domain.Post) error {
	query := `UPDATE posts SET title = $1, content = $2, updated_at = $3 WHERE post_id = $4;`
	cmdTag, err := r.Pool.Exec(ctx, query, post.Title, post.Content, post.UpdatedAt, post.PostID)
	if err != nil {
		return fmt.Errorf("failed to update post %d: %w", post.PostID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("post %d not found: %w", post.PostID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxPostRepository) DeletePost(ctx context.Context, postID int64) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM posts WHERE post_id = $1;`, postID)
	if err != nil {
		return fmt.Errorf("failed to delete post %d: %w", postID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("post %d not found: %w", postID, apperrors.ErrNotFound)
	}
	return nil
}
