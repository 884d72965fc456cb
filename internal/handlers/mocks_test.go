package handlers_test

import (
	"context"
	"sync"
	"time"

	"github.com/boardhub/board_backend/internal/apperrors"
	"github.com/boardhub/board_backend/internal/core/domain"
	portsrepo "github.com/boardhub/board_backend/internal/core/ports/repositories"
	portssvc "github.com/boardhub/board_backend/internal/core/ports/services"
	"github.com/boardhub/board_backend/internal/dto"
	"github.com/stretchr/testify/mock"
)

const (
	userToken         = "user-token"
	adminToken        = "admin-token"
	testUserID  int64 = 5
	testAdminID int64 = 9
)

// --- Mock TokenService ---
type MockTokenService struct {
	mock.Mock
}

var _ portssvc.TokenSvcFacade = (*MockTokenService)(nil)

func (m *MockTokenService) IssueAccessToken(ctx context.Context, userID int64) (string, time.Time, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockTokenService) IssueRefreshToken(ctx context.Context, userID int64) (string, time.Time, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

// VerifyToken accepts the two fixed test tokens.
func (m *MockTokenService) VerifyToken(ctx context.Context, token string, kind domain.TokenKind) (*domain.TokenClaims, error) {
	switch token {
	case userToken:
		return &domain.TokenClaims{UserID: testUserID, Kind: kind}, nil
	case adminToken:
		return &domain.TokenClaims{UserID: testAdminID, Kind: kind}, nil
	}
	return nil, apperrors.ErrInvalidToken
}

func (m *MockTokenService) RotateIfNearExpiry(ctx context.Context, currentRefreshToken string, userID int64) (string, time.Time, error) {
	args := m.Called(ctx, currentRefreshToken, userID)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockTokenService) Revoke(ctx context.Context, userID int64) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockTokenService) Login(ctx context.Context, email, password string) (*domain.TokenPair, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TokenPair), args.Error(1)
}

func (m *MockTokenService) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TokenPair), args.Error(1)
}

func (m *MockTokenService) Logout(ctx context.Context, userID int64) error {
	return m.Called(ctx, userID).Error(0)
}

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// GetUserByID serves the admin check: testAdminID is an admin, testUserID a plain user.
func (m *MockUserService) GetUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	switch userID {
	case testUserID:
		return &domain.User{UserID: testUserID, Email: "user@example.com", Role: domain.RoleUser}, nil
	case testAdminID:
		return &domain.User{UserID: testAdminID, Email: "admin@example.com", Role: domain.RoleAdmin}, nil
	}
	return nil, apperrors.ErrNotFound
}

func (m *MockUserService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) UpdateUser(ctx context.Context, userID int64, req dto.UpdateUserRequest, requestingUserID int64) (*domain.User, error) {
	args := m.Called(ctx, userID, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) DeleteUser(ctx context.Context, userID int64, requestingUserID int64) error {
	return m.Called(ctx, userID, requestingUserID).Error(0)
}

func (m *MockUserService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) AdminUpdateUser(ctx context.Context, userID int64, req dto.AdminUpdateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) AdminDeleteUser(ctx context.Context, userID int64) error {
	return m.Called(ctx, userID).Error(0)
}

// --- Mock BoardService ---
type MockBoardService struct {
	mock.Mock
}

var _ portssvc.BoardSvcFacade = (*MockBoardService)(nil)

func (m *MockBoardService) GetBoardByID(ctx context.Context, boardID int64) (*domain.Board, error) {
	args := m.Called(ctx, boardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Board), args.Error(1)
}

func (m *MockBoardService) ListBoards(ctx context.Context) ([]domain.Board, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Board), args.Error(1)
}

func (m *MockBoardService) CreateBoard(ctx context.Context, req dto.CreateBoardRequest) (*domain.Board, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Board), args.Error(1)
}

func (m *MockBoardService) UpdateBoard(ctx context.Context, boardID int64, req dto.UpdateBoardRequest) (*domain.Board, error) {
	args := m.Called(ctx, boardID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Board), args.Error(1)
}

func (m *MockBoardService) DeleteBoard(ctx context.Context, boardID int64) error {
	return m.Called(ctx, boardID).Error(0)
}

func (m *MockBoardService) InitializeStaticData(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// --- Mock PostService ---
type MockPostService struct {
	mock.Mock
}

var _ portssvc.PostSvcFacade = (*MockPostService)(nil)

func (m *MockPostService) GetPostByID(ctx context.Context, postID int64) (*domain.Post, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}

func (m *MockPostService) ListPosts(ctx context.Context, params dto.ListPostsParams) ([]domain.Post, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Post), args.Error(1)
}

func (m *MockPostService) CreatePost(ctx context.Context, req dto.CreatePostRequest, files []domain.UploadFile, authorID int64) (*domain.Post, error) {
	args := m.Called(ctx, req, files, authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}

func (m *MockPostService) UpdatePost(ctx context.Context, postID int64, req dto.UpdatePostRequest, actorID int64) (*domain.Post, error) {
	args := m.Called(ctx, postID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}

func (m *MockPostService) DeletePost(ctx context.Context, postID int64, actorID int64) error {
	return m.Called(ctx, postID, actorID).Error(0)
}

func (m *MockPostService) AdminUpdatePost(ctx context.Context, postID int64, req dto.UpdatePostRequest) (*domain.Post, error) {
	args := m.Called(ctx, postID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}

func (m *MockPostService) AdminDeletePost(ctx context.Context, postID int64) error {
	return m.Called(ctx, postID).Error(0)
}

// --- Mock CommentService ---
type MockCommentService struct {
	mock.Mock
}

var _ portssvc.CommentSvcFacade = (*MockCommentService)(nil)

func (m *MockCommentService) ListComments(ctx context.Context, postID int64) ([]domain.Comment, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Comment), args.Error(1)
}

func (m *MockCommentService) CreateComment(ctx context.Context, req dto.CreateCommentRequest, authorID int64) (*domain.Comment, error) {
	args := m.Called(ctx, req, authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *MockCommentService) UpdateComment(ctx context.Context, commentID int64, req dto.UpdateCommentRequest, actorID int64) (*domain.Comment, error) {
	args := m.Called(ctx, commentID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *MockCommentService) DeleteComment(ctx context.Context, commentID int64, actorID int64) error {
	return m.Called(ctx, commentID, actorID).Error(0)
}

// --- Mock SearchService ---
type MockSearchService struct {
	mock.Mock
}

var _ portssvc.SearchSvcFacade = (*MockSearchService)(nil)

func (m *MockSearchService) IndexPost(ctx context.Context, post domain.Post) {
	m.Called(ctx, post)
}

func (m *MockSearchService) RemovePost(ctx context.Context, postID int64) {
	m.Called(ctx, postID)
}

func (m *MockSearchService) SearchPosts(ctx context.Context, params dto.SearchPostsParams) ([]domain.Post, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Post), args.Error(1)
}

func (m *MockSearchService) TopSearches(ctx context.Context) ([]domain.SearchCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SearchCount), args.Error(1)
}

// memoryChatRepository keeps chat history in memory.
type memoryChatRepository struct {
	mu       sync.Mutex
	messages []domain.ChatMessage
}

var _ portsrepo.ChatMessageRepository = (*memoryChatRepository)(nil)

func (r *memoryChatRepository) SaveMessage(ctx context.Context, msg domain.ChatMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, msg)
	return nil
}

func (r *memoryChatRepository) ListRoomMessages(ctx context.Context, room string) ([]domain.ChatMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.ChatMessage
	for _, m := range r.messages {
		if m.Room == room {
			out = append(out, m)
		}
	}
	return out, nil
}
