package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/boardhub/board_backend/internal/apperrors"
	"github.com/boardhub/board_backend/internal/core/domain"
	"github.com/boardhub/board_backend/internal/core/services"
	"github.com/boardhub/board_backend/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBoardService_InitializeStaticData(t *testing.T) {
	ctx := context.Background()
	repo := new(MockBoardRepository)
	for _, b := range domain.DefaultBoards {
		id, name := b.BoardID, b.Name
		repo.On("EnsureBoard", ctx, mock.MatchedBy(func(board domain.Board) bool {
			return board.BoardID == id && board.Name == name && !board.CreatedAt.IsZero()
		})).Return(nil).Once()
	}

	require.NoError(t, services.NewBoardService(repo).InitializeStaticData(ctx))
	repo.AssertExpectations(t)
}

func TestBoardService_InitializeStaticDataFailure(t *testing.T) {
	ctx := context.Background()
	repo := new(MockBoardRepository)
	repo.On("EnsureBoard", ctx, mock.Anything).Return(errors.New("db down")).Once()

	assert.Error(t, services.NewBoardService(repo).InitializeStaticData(ctx))
}

func TestBoardService_CreateBoard(t *testing.T) {
	ctx := context.Background()
	repo := new(MockBoardRepository)
	service := services.NewBoardService(repo)

	_, err := service.CreateBoard(ctx, dto.CreateBoardRequest{Name: "  "})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	repo.On("SaveBoard", ctx, mock.AnythingOfType("*domain.Board")).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Board).BoardID = 3
	}).Return(nil).Once()

	board, err := service.CreateBoard(ctx, dto.CreateBoardRequest{Name: "Q&A"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), board.BoardID)
	assert.Equal(t, "Q&A", board.Name)
}

func TestBoardService_UpdateBoardNotFound(t *testing.T) {
	ctx := context.Background()
	repo := new(MockBoardRepository)
	repo.On("FindBoardByID", ctx, int64(9)).Return(nil, apperrors.ErrNotFound).Once()

	_, err := services.NewBoardService(repo).UpdateBoard(ctx, 9, dto.UpdateBoardRequest{Name: "x"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestBoardService_DeleteBoardReleasesCascadedPosts(t *testing.T) {
	ctx := context.Background()
	boardRepo := new(MockBoardRepository)
	postRepo := new(MockPostRepository)
	cache := new(MockSearchCache)
	storage := new(MockAttachmentStorage)
	cleaner := services.NewPostCleaner(postRepo, services.NewSearchService(cache, time.Hour), storage)
	service := services.NewBoardService(boardRepo, services.WithBoardPostCleaner(cleaner))

	posts := []domain.Post{
		{PostID: 9, BoardID: 5, AuthorID: 3, Title: "hello world", Attachments: []domain.Attachment{{ObjectKey: "posts/3/a_photo.png"}}},
		{PostID: 10, BoardID: 5, AuthorID: 4, Title: "no files", Attachments: []domain.Attachment{}},
	}
	postRepo.On("ListPosts", ctx, mock.MatchedBy(func(id *int64) bool { return id != nil && *id == 5 })).Return(posts, nil).Once()
	boardRepo.On("DeleteBoard", ctx, int64(5)).Return(nil).Once()
	cache.On("RemovePost", ctx, int64(9)).Return(nil).Once()
	cache.On("RemovePost", ctx, int64(10)).Return(nil).Once()
	storage.On("Delete", ctx, "posts/3/a_photo.png").Return(errors.New("s3 down")).Once()

	require.NoError(t, service.DeleteBoard(ctx, 5))

	boardRepo.AssertExpectations(t)
	postRepo.AssertExpectations(t)
	cache.AssertExpectations(t)
	storage.AssertExpectations(t)
}

func TestBoardService_DeleteBoardKeepsIndexWhenDeleteFails(t *testing.T) {
	ctx := context.Background()
	boardRepo := new(MockBoardRepository)
	postRepo := new(MockPostRepository)
	indexer := new(MockPostIndexer)
	service := services.NewBoardService(boardRepo, services.WithBoardPostCleaner(services.NewPostCleaner(postRepo, indexer, nil)))

	postRepo.On("ListPosts", ctx, mock.Anything).Return([]domain.Post{{PostID: 9, BoardID: 5}}, nil).Once()
	boardRepo.On("DeleteBoard", ctx, int64(5)).Return(apperrors.ErrNotFound).Once()

	assert.ErrorIs(t, service.DeleteBoard(ctx, 5), apperrors.ErrNotFound)
	indexer.AssertNotCalled(t, "RemovePost", mock.Anything, mock.Anything)
}

func TestBoardService_DeleteBoardListFailure(t *testing.T) {
	ctx := context.Background()
	boardRepo := new(MockBoardRepository)
	postRepo := new(MockPostRepository)
	service := services.NewBoardService(boardRepo, services.WithBoardPostCleaner(services.NewPostCleaner(postRepo, nil, nil)))

	postRepo.On("ListPosts", ctx, mock.Anything).Return(nil, errors.New("db down")).Once()

	assert.Error(t, service.DeleteBoard(ctx, 5))
	boardRepo.AssertNotCalled(t, "DeleteBoard", mock.Anything, mock.Anything)
}
