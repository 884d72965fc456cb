package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/boardhub/board_backend/internal/apperrors"
	"github.com/boardhub/board_backend/internal/core/domain"
	portsrepo "github.com/boardhub/board_backend/internal/core/ports/repositories"
	portssvc "github.com/boardhub/board_backend/internal/core/ports/services"
	"github.com/boardhub/board_backend/internal/dto"
	"github.com/boardhub/board_backend/internal/platform/config"
	"github.com/google/uuid"
)

type postService struct {
	BaseService
	cfg       *config.Config
	postRepo  portsrepo.PostRepositoryFacade
	boardRepo portsrepo.BoardReader
	userRepo  portsrepo.UserReader
	storage   portsrepo.AttachmentStorage
	indexer   portssvc.PostIndexer
}

// PostServiceOption is a functional option for configuring the post service.
type PostServiceOption func(*postService)

// WithAttachmentStorage enables file attachments.
func WithAttachmentStorage(storage portsrepo.AttachmentStorage) PostServiceOption {
	return func(s *postService) {
		s.storage = storage
	}
}

// WithPostIndexer keeps the search index in sync with post writes.
func WithPostIndexer(indexer portssvc.PostIndexer) PostServiceOption {
	return func(s *postService) {
		s.indexer = indexer
	}
}

// NewPostService creates a new post service.
func NewPostService(cfg *config.Config, postRepo portsrepo.PostRepositoryFacade, boardRepo portsrepo.BoardReader, userRepo portsrepo.UserReader, opts ...PostServiceOption) portssvc.PostSvcFacade {
	s := &postService{
		cfg:       cfg,
		postRepo:  postRepo,
		boardRepo: boardRepo,
		userRepo:  userRepo,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.PostSvcFacade = (*postService)(nil)

// attachmentKey names the blob of an uploaded file.
func attachmentKey(authorID int64, filename string) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	name = strings.ReplaceAll(name, " ", "_")
	if name == "." || name == "/" || name == "" {
		name = "file"
	}
	return fmt.Sprintf("posts/%d/%s_%s", authorID, uuid.NewString(), name)
}

// checkAdminBoardPermission rejects non-admin actors on admin-only boards.
func (s *postService) checkAdminBoardPermission(ctx context.Context, boardID, actorID int64) error {
	if !s.cfg.IsAdminBoard(boardID) {
		return nil
	}
	actor, err := s.userRepo.FindUserByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrForbidden
		}
		return fmt.Errorf("failed to load actor %d: %w", actorID, err)
	}
	if !actor.IsAdmin() {
		s.LogWarn(ctx, "Admin board requires admin role", slog.Int64("board_id", boardID), slog.Int64("actor_id", actorID))
		return fmt.Errorf("board %d is restricted to admins: %w", boardID, apperrors.ErrForbidden)
	}
	return nil
}

func (s *postService) CreatePost(ctx context.Context, req dto.CreatePostRequest, files []domain.UploadFile, authorID int64) (*domain.Post, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("post title is required: %w", apperrors.ErrValidation)
	}
	if len(files) > domain.MaxAttachmentsPerPost {
		return nil, fmt.Errorf("at most %d attachments are allowed: %w", domain.MaxAttachmentsPerPost, apperrors.ErrValidation)
	}
	if len(files) > 0 && s.storage == nil {
		return nil, fmt.Errorf("attachment storage is not configured: %w", apperrors.ErrUnavailable)
	}

	if _, err := s.boardRepo.FindBoardByID(ctx, req.BoardID); err != nil {
		return nil, fmt.Errorf("failed to load board %d: %w", req.BoardID, err)
	}
	if err := s.checkAdminBoardPermission(ctx, req.BoardID, authorID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	post := &domain.Post{
		BoardID:     req.BoardID,
		AuthorID:    authorID,
		Title:       title,
		Content:     req.Content,
		Attachments: make([]domain.Attachment, 0, len(files)),
		Timestamps:  domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}

	for _, f := range files {
		key := attachmentKey(authorID, f.Filename)
		url, err := s.storage.Upload(ctx, key, f)
		if err != nil {
			s.LogError(ctx, err, "Failed to upload attachment", slog.String("key", key))
			s.deleteObjects(ctx, post.Attachments)
			return nil, fmt.Errorf("failed to upload attachment %s: %w", f.Filename, err)
		}
		post.Attachments = append(post.Attachments, domain.Attachment{URL: url, ObjectKey: key})
	}

	if err := s.postRepo.SavePost(ctx, post); err != nil {
		s.LogError(ctx, err, "Failed to save post")
		s.deleteObjects(ctx, post.Attachments)
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	s.index(ctx, *post)
	s.LogInfo(ctx, "Post created", slog.Int64("post_id", post.PostID), slog.Int("attachments", len(post.Attachments)))
	return post, nil
}

func (s *postService) GetPostByID(ctx context.Context, postID int64) (*domain.Post, error) {
	post, err := s.postRepo.FindPostByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to get post %d: %w", postID, err)
	}
	return post, nil
}

func (s *postService) ListPosts(ctx context.Context, params dto.ListPostsParams) ([]domain.Post, error) {
	posts, err := s.postRepo.ListPosts(ctx, params.BoardID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list posts")
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

// loadForWrite loads the post and, unless asAdmin, checks ownership and board permission.
func (s *postService) loadForWrite(ctx context.Context, postID, actorID int64, asAdmin bool) (*domain.Post, error) {
	post, err := s.postRepo.FindPostByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to load post %d: %w", postID, err)
	}
	if asAdmin {
		return post, nil
	}
	if post.AuthorID != actorID {
		s.LogWarn(ctx, "Post access denied", slog.Int64("post_id", postID), slog.Int64("actor_id", actorID))
		return nil, apperrors.ErrForbidden
	}
	if err := s.checkAdminBoardPermission(ctx, post.BoardID, actorID); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postService) UpdatePost(ctx context.Context, postID int64, req dto.UpdatePostRequest, actorID int64) (*domain.Post, error) {
	post, err := s.loadForWrite(ctx, postID, actorID, false)
	if err != nil {
		return nil, err
	}
	return s.applyUpdate(ctx, post, req)
}

func (s *postService) AdminUpdatePost(ctx context.Context, postID int64, req dto.UpdatePostRequest) (*domain.Post, error) {
	post, err := s.loadForWrite(ctx, postID, 0, true)
	if err != nil {
		return nil, err
	}
	return s.applyUpdate(ctx, post, req)
}

func (s *postService) applyUpdate(ctx context.Context, post *domain.Post, req dto.UpdatePostRequest) (*domain.Post, error) {
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, fmt.Errorf("post title is required: %w", apperrors.ErrValidation)
		}
		post.Title = title
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	post.UpdatedAt = time.Now().UTC()

	if err := s.postRepo.UpdatePost(ctx, *post); err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	s.index(ctx, *post)
	return post, nil
}

func (s *postService) DeletePost(ctx context.Context, postID int64, actorID int64) error {
	post, err := s.loadForWrite(ctx, postID, actorID, false)
	if err != nil {
		return err
	}
	return s.remove(ctx, post)
}

func (s *postService) AdminDeletePost(ctx context.Context, postID int64) error {
	post, err := s.loadForWrite(ctx, postID, 0, true)
	if err != nil {
		return err
	}
	return s.remove(ctx, post)
}

func (s *postService) remove(ctx context.Context, post *domain.Post) error {
	if err := s.postRepo.DeletePost(ctx, post.PostID); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	s.deleteObjects(ctx, post.Attachments)
	if s.indexer != nil {
		s.indexer.RemovePost(ctx, post.PostID)
	}
	s.LogInfo(ctx, "Post deleted", slog.Int64("post_id", post.PostID))
	return nil
}

func (s *postService) index(ctx context.Context, post domain.Post) {
	if s.indexer != nil {
		s.indexer.IndexPost(ctx, post)
	}
}

// deleteObjects removes stored attachment blobs. Failures are logged only.
func (s *postService) deleteObjects(ctx context.Context, attachments []domain.Attachment) {
	if s.storage == nil {
		return
	}
	for _, a := range attachments {
		if a.ObjectKey == "" {
			continue
		}
		if err := s.storage.Delete(ctx, a.ObjectKey); err != nil {
			s.LogError(ctx, err, "Failed to delete attachment object", slog.String("key", a.ObjectKey))
		}
	}
}
