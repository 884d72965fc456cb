package services_test

import (
	"context"
	"time"

	"github.com/boardhub/board_backend/internal/core/domain"
	portsrepo "github.com/boardhub/board_backend/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
	FindUserByIDFn       func(ctx context.Context, userID int64) (*domain.User, error)
	FindUserByEmailFn    func(ctx context.Context, email string) (*domain.User, error)
	UpdateRefreshTokenFn func(ctx context.Context, userID int64, refreshTokenHash string, refreshTokenExpiryTime time.Time) error
	ClearRefreshTokenFn  func(ctx context.Context, userID int64) error
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) SaveUser(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	if m.FindUserByIDFn != nil {
		return m.FindUserByIDFn(ctx, userID)
	}
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindUserByEmailFn != nil {
		return m.FindUserByEmailFn(ctx, email)
	}
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID int64, refreshTokenHash string, refreshTokenExpiryTime time.Time) error {
	if m.UpdateRefreshTokenFn != nil {
		return m.UpdateRefreshTokenFn(ctx, userID, refreshTokenHash, refreshTokenExpiryTime)
	}
	args := m.Called(ctx, userID, refreshTokenHash, refreshTokenExpiryTime)
	return args.Error(0)
}

func (m *MockUserRepository) ClearRefreshToken(ctx context.Context, userID int64) error {
	if m.ClearRefreshTokenFn != nil {
		return m.ClearRefreshTokenFn(ctx, userID)
	}
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteUser(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// --- Mock BoardRepository ---
type MockBoardRepository struct {
	mock.Mock
}

var _ portsrepo.BoardRepositoryFacade = (*MockBoardRepository)(nil)

func (m *MockBoardRepository) FindBoardByID(ctx context.Context, boardID int64) (*domain.Board, error) {
	args := m.Called(ctx, boardID)
	var board *domain.Board
	if args.Get(0) != nil {
		board = args.Get(0).(*domain.Board)
	}
	return board, args.Error(1)
}

func (m *MockBoardRepository) ListBoards(ctx context.Context) ([]domain.Board, error) {
	args := m.Called(ctx)
	var boards []domain.Board
	if args.Get(0) != nil {
		boards = args.Get(0).([]domain.Board)
	}
	return boards, args.Error(1)
}

func (m *MockBoardRepository) SaveBoard(ctx context.Context, board *domain.Board) error {
	args := m.Called(ctx, board)
	return args.Error(0)
}

func (m *MockBoardRepository) UpdateBoard(ctx context.Context, board domain.Board) error {
	args := m.Called(ctx, board)
	return args.Error(0)
}

func (m *MockBoardRepository) DeleteBoard(ctx context.Context, boardID int64) error {
	args := m.Called(ctx, boardID)
	return args.Error(0)
}

func (m *MockBoardRepository) EnsureBoard(ctx context.Context, board domain.Board) error {
	args := m.Called(ctx, board)
	return args.Error(0)
}

// --- Mock PostRepository ---
type MockPostRepository struct {
	mock.Mock
	SavePostFn func(ctx context.Context, post *domain.Post) error
}

var _ portsrepo.PostRepositoryFacade = (*MockPostRepository)(nil)

func (m *MockPostRepository) FindPostByID(ctx context.Context, postID int64) (*domain.Post, error) {
	args := m.Called(ctx, postID)
	var post *domain.Post
	if args.Get(0) != nil {
		post = args.Get(0).(*domain.Post)
	}
	return post, args.Error(1)
}

func (m *MockPostRepository) ListPosts(ctx context.Context, boardID *int64) ([]domain.Post, error) {
	args := m.Called(ctx, boardID)
	var posts []domain.Post
	if args.Get(0) != nil {
		posts = args.Get(0).([]domain.Post)
	}
	return posts, args.Error(1)
}

func (m *MockPostRepository) ListPostsByAuthor(ctx context.Context, authorID int64) ([]domain.Post, error) {
	args := m.Called(ctx, authorID)
	var posts []domain.Post
	if args.Get(0) != nil {
		posts = args.Get(0).([]domain.Post)
	}
	return posts, args.Error(1)
}

func (m *MockPostRepository) SavePost(ctx context.Context, post *domain.Post) error {
	if m.SavePostFn != nil {
		return m.SavePostFn(ctx, post)
	}
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) UpdatePost(ctx context.Context, post domain.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) DeletePost(ctx context.Context, postID int64) error {
	args := m.Called(ctx, postID)
	return args.Error(0)
}

// --- Mock CommentRepository ---

// MockCommentTxStore records what happens inside a comment transaction.
type MockCommentTxStore struct {
	mock.Mock
	InsertCommentFn func(ctx context.Context, comment *domain.Comment) error
}

func (m *MockCommentTxStore) FindParentForReply(ctx context.Context, commentID int64) (*domain.Comment, error) {
	args := m.Called(ctx, commentID)
	var comment *domain.Comment
	if args.Get(0) != nil {
		comment = args.Get(0).(*domain.Comment)
	}
	return comment, args.Error(1)
}

func (m *MockCommentTxStore) InsertComment(ctx context.Context, comment *domain.Comment) error {
	if m.InsertCommentFn != nil {
		return m.InsertCommentFn(ctx, comment)
	}
	args := m.Called(ctx, comment)
	return args.Error(0)
}

type MockCommentRepository struct {
	mock.Mock
	TxStore *MockCommentTxStore
}

var _ portsrepo.CommentRepositoryFacade = (*MockCommentRepository)(nil)

func (m *MockCommentRepository) FindCommentByID(ctx context.Context, commentID int64) (*domain.Comment, error) {
	args := m.Called(ctx, commentID)
	var comment *domain.Comment
	if args.Get(0) != nil {
		comment = args.Get(0).(*domain.Comment)
	}
	return comment, args.Error(1)
}

func (m *MockCommentRepository) ListCommentsByPost(ctx context.Context, postID int64) ([]domain.Comment, error) {
	args := m.Called(ctx, postID)
	var comments []domain.Comment
	if args.Get(0) != nil {
		comments = args.Get(0).([]domain.Comment)
	}
	return comments, args.Error(1)
}

// WithinTx runs fn directly against TxStore.
func (m *MockCommentRepository) WithinTx(ctx context.Context, fn func(ctx context.Context, store portsrepo.CommentTxStore) error) error {
	return fn(ctx, m.TxStore)
}

func (m *MockCommentRepository) UpdateCommentContent(ctx context.Context, commentID int64, content string, updatedAt time.Time) error {
	args := m.Called(ctx, commentID, content, updatedAt)
	return args.Error(0)
}

func (m *MockCommentRepository) DeleteComment(ctx context.Context, commentID int64) error {
	args := m.Called(ctx, commentID)
	return args.Error(0)
}

// --- Mock SearchCache ---
type MockSearchCache struct {
	mock.Mock
}

var _ portsrepo.SearchCache = (*MockSearchCache)(nil)

func (m *MockSearchCache) IndexPost(ctx context.Context, post domain.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockSearchCache) RemovePost(ctx context.Context, postID int64) error {
	args := m.Called(ctx, postID)
	return args.Error(0)
}

func (m *MockSearchCache) ScanPosts(ctx context.Context) ([]domain.Post, error) {
	args := m.Called(ctx)
	var posts []domain.Post
	if args.Get(0) != nil {
		posts = args.Get(0).([]domain.Post)
	}
	return posts, args.Error(1)
}

func (m *MockSearchCache) GetSearch(ctx context.Context, key string) ([]domain.Post, bool, error) {
	args := m.Called(ctx, key)
	var posts []domain.Post
	if args.Get(0) != nil {
		posts = args.Get(0).([]domain.Post)
	}
	return posts, args.Bool(1), args.Error(2)
}

func (m *MockSearchCache) SetSearch(ctx context.Context, key string, posts []domain.Post, ttl time.Duration) error {
	args := m.Called(ctx, key, posts, ttl)
	return args.Error(0)
}

func (m *MockSearchCache) IncrementSearchCount(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockSearchCache) TopSearches(ctx context.Context, limit int64) ([]domain.SearchCount, error) {
	args := m.Called(ctx, limit)
	var top []domain.SearchCount
	if args.Get(0) != nil {
		top = args.Get(0).([]domain.SearchCount)
	}
	return top, args.Error(1)
}

// --- Mock AttachmentStorage ---
type MockAttachmentStorage struct {
	mock.Mock
}

var _ portsrepo.AttachmentStorage = (*MockAttachmentStorage)(nil)

func (m *MockAttachmentStorage) Upload(ctx context.Context, key string, file domain.UploadFile) (string, error) {
	args := m.Called(ctx, key, file)
	return args.String(0), args.Error(1)
}

func (m *MockAttachmentStorage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// --- Mock PostIndexer ---
type MockPostIndexer struct {
	mock.Mock
}

func (m *MockPostIndexer) IndexPost(ctx context.Context, post domain.Post) {
	m.Called(ctx, post)
}

func (m *MockPostIndexer) RemovePost(ctx context.Context, postID int64) {
	m.Called(ctx, postID)
}

// --- Mock ChatMessageRepository ---
type MockChatMessageRepository struct {
	mock.Mock
}

var _ portsrepo.ChatMessageRepository = (*MockChatMessageRepository)(nil)

func (m *MockChatMessageRepository) SaveMessage(ctx context.Context, msg domain.ChatMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockChatMessageRepository) ListRoomMessages(ctx context.Context, room string) ([]domain.ChatMessage, error) {
	args := m.Called(ctx, room)
	var msgs []domain.ChatMessage
	if args.Get(0) != nil {
		msgs = args.Get(0).([]domain.ChatMessage)
	}
	return msgs, args.Error(1)
}
