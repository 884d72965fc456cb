package services

import (
	"context"

	"github.com/boardhub/board_backend/internal/core/domain"
	"github.com/boardhub/board_backend/internal/dto"
)

// PostReaderSvc defines read operations for posts
type PostReaderSvc interface {
	GetPostByID(ctx context.Context, postID int64) (*domain.Post, error)
	ListPosts(ctx context.Context, params dto.ListPostsParams) ([]domain.Post, error)
}

// PostWriterSvc defines author-facing write operations for posts
type PostWriterSvc interface {
	// CreatePost uploads the files and stores the post with its attachments.
	CreatePost(ctx context.Context, req dto.CreatePostRequest, files []domain.UploadFile, authorID int64) (*domain.Post, error)

	// UpdatePost changes title and content. Only the author may update.
	UpdatePost(ctx context.Context, postID int64, req dto.UpdatePostRequest, actorID int64) (*domain.Post, error)

	// DeletePost removes the post. Only the author may delete.
	DeletePost(ctx context.Context, postID int64, actorID int64) error
}

// PostAdminSvc defines admin overrides that skip the author check.
type PostAdminSvc interface {
	AdminUpdatePost(ctx context.Context, postID int64, req dto.UpdatePostRequest) (*domain.Post, error)
	AdminDeletePost(ctx context.Context, postID int64) error
}

// PostSvcFacade combines all post-related service interfaces
type PostSvcFacade interface {
	PostReaderSvc
	PostWriterSvc
	PostAdminSvc
}
