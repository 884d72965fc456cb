package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/boardhub/board_backend/internal/apperrors"
	"github.com/boardhub/board_backend/internal/core/domain"
	portssvc "github.com/boardhub/board_backend/internal/core/ports/services"
	"github.com/boardhub/board_backend/internal/core/services"
	"github.com/boardhub/board_backend/internal/dto"
	"github.com/boardhub/board_backend/internal/platform/config"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const (
	noticeBoardID  int64 = 1
	generalBoardID int64 = 2
	authorID       int64 = 5
	adminID        int64 = 9
)

type PostServiceTestSuite struct {
	suite.Suite
	ctx       context.Context
	postRepo  *MockPostRepository
	boardRepo *MockBoardRepository
	userRepo  *MockUserRepository
	storage   *MockAttachmentStorage
	indexer   *MockPostIndexer
	service   portssvc.PostSvcFacade
}

func (suite *PostServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.postRepo = new(MockPostRepository)
	suite.boardRepo = new(MockBoardRepository)
	suite.userRepo = new(MockUserRepository)
	suite.storage = new(MockAttachmentStorage)
	suite.indexer = new(MockPostIndexer)

	suite.userRepo.FindUserByIDFn = func(ctx context.Context, userID int64) (*domain.User, error) {
		switch userID {
		case authorID:
			return &domain.User{UserID: authorID, Role: domain.RoleUser}, nil
		case adminID:
			return &domain.User{UserID: adminID, Role: domain.RoleAdmin}, nil
		}
		return nil, apperrors.ErrNotFound
	}

	cfg := &config.Config{AdminBoardIDs: []int64{noticeBoardID}}
	suite.service = services.NewPostService(cfg, suite.postRepo, suite.boardRepo, suite.userRepo,
		services.WithAttachmentStorage(suite.storage),
		services.WithPostIndexer(suite.indexer),
	)
}

func (suite *PostServiceTestSuite) files(n int) []domain.UploadFile {
	files := make([]domain.UploadFile, n)
	for i := range files {
		files[i] = domain.UploadFile{Filename: "photo.png", ContentType: "image/png", Data: []byte("png")}
	}
	return files
}

func (suite *PostServiceTestSuite) TestCreatePost_WithAttachments() {
	req := dto.CreatePostRequest{Title: "Hello", Content: "body", BoardID: generalBoardID}
	suite.boardRepo.On("FindBoardByID", suite.ctx, generalBoardID).Return(&domain.Board{BoardID: generalBoardID}, nil).Once()
	suite.storage.On("Upload", suite.ctx, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "posts/5/") && strings.HasSuffix(key, "_photo.png")
	}), mock.Anything).Return("https://cdn/x", nil).Twice()
	suite.postRepo.SavePostFn = func(ctx context.Context, post *domain.Post) error {
		post.PostID = 77
		return nil
	}
	suite.indexer.On("IndexPost", suite.ctx, mock.MatchedBy(func(p domain.Post) bool { return p.PostID == 77 })).Once()

	post, err := suite.service.CreatePost(suite.ctx, req, suite.files(2), authorID)

	suite.Require().NoError(err)
	suite.Equal(int64(77), post.PostID)
	suite.Len(post.Attachments, 2)
	suite.Equal("https://cdn/x", post.Attachments[0].URL)
	suite.storage.AssertExpectations(suite.T())
	suite.indexer.AssertExpectations(suite.T())
}

func (suite *PostServiceTestSuite) TestCreatePost_TooManyAttachments() {
	req := dto.CreatePostRequest{Title: "Hello", Content: "body", BoardID: generalBoardID}

	_, err := suite.service.CreatePost(suite.ctx, req, suite.files(domain.MaxAttachmentsPerPost+1), authorID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.storage.AssertNotCalled(suite.T(), "Upload", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostServiceTestSuite) TestCreatePost_AdminBoardRequiresAdmin() {
	req := dto.CreatePostRequest{Title: "Notice", Content: "body", BoardID: noticeBoardID}
	suite.boardRepo.On("FindBoardByID", suite.ctx, noticeBoardID).Return(&domain.Board{BoardID: noticeBoardID}, nil)

	_, err := suite.service.CreatePost(suite.ctx, req, nil, authorID)
	suite.ErrorIs(err, apperrors.ErrForbidden)

	suite.postRepo.SavePostFn = func(ctx context.Context, post *domain.Post) error {
		post.PostID = 1
		return nil
	}
	suite.indexer.On("IndexPost", suite.ctx, mock.Anything).Once()
	post, err := suite.service.CreatePost(suite.ctx, req, nil, adminID)
	suite.Require().NoError(err)
	suite.Equal(noticeBoardID, post.BoardID)
}

func (suite *PostServiceTestSuite) TestCreatePost_UnknownBoard() {
	suite.boardRepo.On("FindBoardByID", suite.ctx, int64(99)).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreatePost(suite.ctx, dto.CreatePostRequest{Title: "t", Content: "c", BoardID: 99}, nil, authorID)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *PostServiceTestSuite) TestCreatePost_SaveFailureRemovesUploads() {
	suite.boardRepo.On("FindBoardByID", suite.ctx, generalBoardID).Return(&domain.Board{BoardID: generalBoardID}, nil).Once()
	suite.storage.On("Upload", suite.ctx, mock.Anything, mock.Anything).Return("https://cdn/x", nil).Once()
	suite.storage.On("Delete", suite.ctx, mock.MatchedBy(func(key string) bool { return strings.HasPrefix(key, "posts/5/") })).Return(nil).Once()
	suite.postRepo.SavePostFn = func(ctx context.Context, post *domain.Post) error {
		return errors.New("insert failed")
	}

	_, err := suite.service.CreatePost(suite.ctx, dto.CreatePostRequest{Title: "t", Content: "c", BoardID: generalBoardID}, suite.files(1), authorID)

	suite.Error(err)
	suite.storage.AssertExpectations(suite.T())
	suite.indexer.AssertNotCalled(suite.T(), "IndexPost", mock.Anything, mock.Anything)
}

func (suite *PostServiceTestSuite) TestUpdatePost_OwnerOnly() {
	title := "changed"
	suite.postRepo.On("FindPostByID", suite.ctx, int64(3)).
		Return(&domain.Post{PostID: 3, BoardID: generalBoardID, AuthorID: authorID, Title: "t"}, nil)

	_, err := suite.service.UpdatePost(suite.ctx, 3, dto.UpdatePostRequest{Title: &title}, adminID)
	suite.ErrorIs(err, apperrors.ErrForbidden)

	suite.postRepo.On("UpdatePost", suite.ctx, mock.MatchedBy(func(p domain.Post) bool { return p.Title == "changed" })).Return(nil).Once()
	suite.indexer.On("IndexPost", suite.ctx, mock.Anything).Once()
	post, err := suite.service.UpdatePost(suite.ctx, 3, dto.UpdatePostRequest{Title: &title}, authorID)
	suite.Require().NoError(err)
	suite.Equal("changed", post.Title)
}

func (suite *PostServiceTestSuite) TestCreatePost_BlankTitle() {
	_, err := suite.service.CreatePost(suite.ctx, dto.CreatePostRequest{Title: " \t ", Content: "c", BoardID: generalBoardID}, nil, authorID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.boardRepo.AssertNotCalled(suite.T(), "FindBoardByID", mock.Anything, mock.Anything)
}

func (suite *PostServiceTestSuite) TestUpdatePost_BlankTitle() {
	title := "   "
	suite.postRepo.On("FindPostByID", suite.ctx, int64(3)).
		Return(&domain.Post{PostID: 3, BoardID: generalBoardID, AuthorID: authorID, Title: "t"}, nil).Once()

	_, err := suite.service.UpdatePost(suite.ctx, 3, dto.UpdatePostRequest{Title: &title}, authorID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.postRepo.AssertNotCalled(suite.T(), "UpdatePost", mock.Anything, mock.Anything)
}

func (suite *PostServiceTestSuite) TestAdminDeletePost() {
	post := &domain.Post{
		PostID:      4,
		BoardID:     generalBoardID,
		AuthorID:    authorID,
		Attachments: []domain.Attachment{{ObjectKey: "posts/5/a_photo.png"}},
	}
	suite.postRepo.On("FindPostByID", suite.ctx, int64(4)).Return(post, nil).Once()
	suite.postRepo.On("DeletePost", suite.ctx, int64(4)).Return(nil).Once()
	suite.storage.On("Delete", suite.ctx, "posts/5/a_photo.png").Return(errors.New("s3 down")).Once()
	suite.indexer.On("RemovePost", suite.ctx, int64(4)).Once()

	suite.NoError(suite.service.AdminDeletePost(suite.ctx, 4))
	suite.postRepo.AssertExpectations(suite.T())
	suite.indexer.AssertExpectations(suite.T())
}

func (suite *PostServiceTestSuite) TestCreatePost_AttachmentsWithoutStorage() {
	service := services.NewPostService(&config.Config{}, suite.postRepo, suite.boardRepo, suite.userRepo)

	_, err := service.CreatePost(suite.ctx, dto.CreatePostRequest{Title: "t", Content: "c", BoardID: generalBoardID}, suite.files(1), authorID)
	suite.ErrorIs(err, apperrors.ErrUnavailable)
}

func TestPostServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PostServiceTestSuite))
}
