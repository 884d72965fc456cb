package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/boardhub/board_backend/internal/apperrors"
	"github.com/boardhub/board_backend/internal/core/domain"
	portsrepo "github.com/boardhub/board_backend/internal/core/ports/repositories"
	portssvc "github.com/boardhub/board_backend/internal/core/ports/services"
	"github.com/boardhub/board_backend/internal/dto"
)

type commentService struct {
	BaseService
	commentRepo portsrepo.CommentRepositoryFacade
	maxDepth    int
	now         func() time.Time
}

// NewCommentService creates a comment service enforcing maxDepth on replies.
func NewCommentService(commentRepo portsrepo.CommentRepositoryFacade, maxDepth int) portssvc.CommentSvcFacade {
	return &commentService{
		commentRepo: commentRepo,
		maxDepth:    maxDepth,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

var _ portssvc.CommentSvcFacade = (*commentService)(nil)

// CreateComment computes the depth from the parent and stores the comment.
// The parent read and the insert share one transaction; nothing is written
// when validation fails.
func (s *commentService) CreateComment(ctx context.Context, req dto.CreateCommentRequest, authorID int64) (*domain.Comment, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, fmt.Errorf("comment content is required: %w", apperrors.ErrValidation)
	}

	now := s.now()
	comment := &domain.Comment{
		PostID:     req.PostID,
		AuthorID:   authorID,
		ParentID:   req.ParentID,
		Content:    content,
		Timestamps: domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}

	err := s.commentRepo.WithinTx(ctx, func(ctx context.Context, store portsrepo.CommentTxStore) error {
		if req.ParentID != nil {
			parent, err := store.FindParentForReply(ctx, *req.ParentID)
			if err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					return apperrors.ErrInvalidParent
				}
				return err
			}
			if parent.PostID != req.PostID {
				return fmt.Errorf("parent %d belongs to post %d: %w", parent.CommentID, parent.PostID, apperrors.ErrInvalidParent)
			}
			comment.Depth = parent.Depth + 1
		}

		if comment.Depth > s.maxDepth {
			return apperrors.ErrDepthExceeded
		}

		return store.InsertComment(ctx, comment)
	})
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidParent),
			errors.Is(err, apperrors.ErrDepthExceeded),
			errors.Is(err, apperrors.ErrNotFound):
			s.LogDebug(ctx, "Comment rejected", slog.String("reason", err.Error()), slog.Int64("post_id", req.PostID))
		default:
			s.LogError(ctx, err, "Failed to create comment", slog.Int64("post_id", req.PostID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Comment created", slog.Int64("comment_id", comment.CommentID), slog.Int("depth", comment.Depth))
	return comment, nil
}

func (s *commentService) ListComments(ctx context.Context, postID int64) ([]domain.Comment, error) {
	comments, err := s.commentRepo.ListCommentsByPost(ctx, postID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list comments", slog.Int64("post_id", postID))
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// loadOwned returns the comment if actorID authored it.
func (s *commentService) loadOwned(ctx context.Context, commentID, actorID int64) (*domain.Comment, error) {
	comment, err := s.commentRepo.FindCommentByID(ctx, commentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load comment %d: %w", commentID, err)
	}
	if comment.AuthorID != actorID {
		s.LogWarn(ctx, "Comment access denied", slog.Int64("comment_id", commentID), slog.Int64("actor_id", actorID))
		return nil, apperrors.ErrForbidden
	}
	return comment, nil
}

func (s *commentService) UpdateComment(ctx context.Context, commentID int64, req dto.UpdateCommentRequest, actorID int64) (*domain.Comment, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, fmt.Errorf("comment content is required: %w", apperrors.ErrValidation)
	}

	comment, err := s.loadOwned(ctx, commentID, actorID)
	if err != nil {
		return nil, err
	}

	comment.Content = content
	comment.UpdatedAt = s.now()
	if err := s.commentRepo.UpdateCommentContent(ctx, commentID, comment.Content, comment.UpdatedAt); err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}
	return comment, nil
}

func (s *commentService) DeleteComment(ctx context.Context, commentID int64, actorID int64) error {
	if _, err := s.loadOwned(ctx, commentID, actorID); err != nil {
		return err
	}
	if err := s.commentRepo.DeleteComment(ctx, commentID); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	s.LogInfo(ctx, "Comment deleted", slog.Int64("comment_id", commentID))
	return nil
}
