package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/boardhub/board_backend/internal/apperrors"
	"github.com/boardhub/board_backend/internal/core/domain"
	portssvc "github.com/boardhub/board_backend/internal/core/ports/services"
	"github.com/boardhub/board_backend/internal/core/services"
	"github.com/boardhub/board_backend/internal/dto"
	"github.com/boardhub/board_backend/internal/handlers"
	"github.com/boardhub/board_backend/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type HandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	tokenSvc    *MockTokenService
	userSvc     *MockUserService
	boardSvc    *MockBoardService
	postSvc     *MockPostService
	commentSvc  *MockCommentService
	searchSvc   *MockSearchService
	chatHistory *memoryChatRepository
}

func (suite *HandlerTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	v, ok := binding.Validator.Engine().(*validator.Validate)
	suite.Require().True(ok)
	suite.Require().NoError(dto.RegisterValidators(v))
}

func (suite *HandlerTestSuite) SetupTest() {
	suite.tokenSvc = new(MockTokenService)
	suite.userSvc = new(MockUserService)
	suite.boardSvc = new(MockBoardService)
	suite.postSvc = new(MockPostService)
	suite.commentSvc = new(MockCommentService)
	suite.searchSvc = new(MockSearchService)
	suite.chatHistory = &memoryChatRepository{}

	container := &portssvc.ServiceContainer{
		Token:   suite.tokenSvc,
		User:    suite.userSvc,
		Board:   suite.boardSvc,
		Post:    suite.postSvc,
		Comment: suite.commentSvc,
		Search:  suite.searchSvc,
		Chat:    services.NewChatService(suite.chatHistory),
	}

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, &config.Config{IsProduction: true}, container, nil)
}

func (suite *HandlerTestSuite) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) decode(w *httptest.ResponseRecorder, v any) {
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func (suite *HandlerTestSuite) TestHealth() {
	w := suite.do(http.MethodGet, "/health", "", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

func (suite *HandlerTestSuite) TestSignup() {
	req := dto.CreateUserRequest{Email: "new@example.com", Password: "secret1", Nickname: "newbie"}
	suite.userSvc.On("CreateUser", mock.Anything, req).
		Return(&domain.User{UserID: 11, Email: req.Email, Nickname: req.Nickname, Role: domain.RoleUser}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/auth/signup", "", req)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.SignupResponse
	suite.decode(w, &resp)
	suite.Equal(int64(11), resp.User.UserID)
	suite.Equal(domain.RoleUser, resp.User.Role)
}

func (suite *HandlerTestSuite) TestSignup_WeakPassword() {
	w := suite.do(http.MethodPost, "/api/v1/auth/signup", "", dto.CreateUserRequest{Email: "new@example.com", Password: "letters", Nickname: "n"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.userSvc.AssertNotCalled(suite.T(), "CreateUser", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestSignup_DuplicateEmail() {
	req := dto.CreateUserRequest{Email: "taken@example.com", Password: "secret1", Nickname: "dup"}
	suite.userSvc.On("CreateUser", mock.Anything, req).Return(nil, fmt.Errorf("email taken: %w", apperrors.ErrDuplicate)).Once()

	w := suite.do(http.MethodPost, "/api/v1/auth/signup", "", req)
	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestLogin() {
	expiry := time.Date(2025, 3, 1, 13, 0, 0, 0, time.UTC)
	suite.tokenSvc.On("Login", mock.Anything, "user@example.com", "secret1").
		Return(&domain.TokenPair{AccessToken: "a", AccessTokenExpiry: expiry, RefreshToken: "r", RefreshTokenExpiry: expiry}, nil).Once()
	suite.tokenSvc.On("Login", mock.Anything, "user@example.com", "wrong1").
		Return(nil, apperrors.ErrInvalidCredentials).Once()

	w := suite.do(http.MethodPost, "/api/v1/auth/login", "", dto.LoginRequest{Email: "user@example.com", Password: "secret1"})
	suite.Equal(http.StatusOK, w.Code)
	var resp dto.LoginResponse
	suite.decode(w, &resp)
	suite.Equal("a", resp.AccessToken)
	suite.Equal("r", resp.RefreshToken)

	w = suite.do(http.MethodPost, "/api/v1/auth/login", "", dto.LoginRequest{Email: "user@example.com", Password: "wrong1"})
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlerTestSuite) TestRefresh_OmitsRefreshTokenWhenNotRotated() {
	suite.tokenSvc.On("Refresh", mock.Anything, "still-valid").
		Return(&domain.TokenPair{AccessToken: "fresh", AccessTokenExpiry: time.Now()}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/auth/refresh", "", dto.RefreshTokenRequest{RefreshToken: "still-valid"})

	suite.Equal(http.StatusOK, w.Code)
	var raw map[string]any
	suite.decode(w, &raw)
	suite.Equal("fresh", raw["accessToken"])
	suite.NotContains(raw, "refreshToken")
	suite.NotContains(raw, "refreshTokenExpiresAt")
}

func (suite *HandlerTestSuite) TestRefresh_Rotated() {
	suite.tokenSvc.On("Refresh", mock.Anything, "near-expiry").
		Return(&domain.TokenPair{AccessToken: "fresh", RefreshToken: "rotated", RefreshTokenExpiry: time.Now().Add(time.Hour)}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/auth/refresh", "", dto.RefreshTokenRequest{RefreshToken: "near-expiry"})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.RefreshTokenResponse
	suite.decode(w, &resp)
	suite.Equal("rotated", resp.RefreshToken)
	suite.NotNil(resp.RefreshTokenExpiry)
}

func (suite *HandlerTestSuite) TestRefresh_StaleToken() {
	suite.tokenSvc.On("Refresh", mock.Anything, "replayed").Return(nil, apperrors.ErrInvalidToken).Once()

	w := suite.do(http.MethodPost, "/api/v1/auth/refresh", "", dto.RefreshTokenRequest{RefreshToken: "replayed"})
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlerTestSuite) TestLogout() {
	suite.Equal(http.StatusUnauthorized, suite.do(http.MethodPost, "/api/v1/auth/logout", "", nil).Code)

	suite.tokenSvc.On("Logout", mock.Anything, testUserID).Return(nil).Once()
	w := suite.do(http.MethodPost, "/api/v1/auth/logout", userToken, nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.tokenSvc.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestAccount_OwnerOnly() {
	w := suite.do(http.MethodGet, fmt.Sprintf("/api/v1/account/%d", testAdminID), userToken, nil)
	suite.Equal(http.StatusForbidden, w.Code)

	w = suite.do(http.MethodGet, fmt.Sprintf("/api/v1/account/%d", testUserID), userToken, nil)
	suite.Equal(http.StatusOK, w.Code)
	var resp dto.UserResponse
	suite.decode(w, &resp)
	suite.Equal(testUserID, resp.UserID)

	w = suite.do(http.MethodGet, "/api/v1/account/abc", userToken, nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestAccount_DeleteOther() {
	suite.userSvc.On("DeleteUser", mock.Anything, testAdminID, testUserID).Return(apperrors.ErrForbidden).Once()

	w := suite.do(http.MethodDelete, fmt.Sprintf("/api/v1/account/%d", testAdminID), userToken, nil)
	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *HandlerTestSuite) TestAdmin_RequiresAdminRole() {
	role := domain.RoleAdmin
	req := dto.AdminUpdateUserRequest{Role: &role}

	w := suite.do(http.MethodPut, fmt.Sprintf("/api/v1/admin/account/%d", testUserID), userToken, req)
	suite.Equal(http.StatusForbidden, w.Code)
	suite.userSvc.AssertNotCalled(suite.T(), "AdminUpdateUser", mock.Anything, mock.Anything, mock.Anything)

	suite.userSvc.On("AdminUpdateUser", mock.Anything, testUserID, req).
		Return(&domain.User{UserID: testUserID, Role: domain.RoleAdmin}, nil).Once()
	w = suite.do(http.MethodPut, fmt.Sprintf("/api/v1/admin/account/%d", testUserID), adminToken, req)
	suite.Equal(http.StatusOK, w.Code)
	var resp dto.UserResponse
	suite.decode(w, &resp)
	suite.Equal(domain.RoleAdmin, resp.Role)
}

func (suite *HandlerTestSuite) TestAdmin_DeletePost() {
	suite.postSvc.On("AdminDeletePost", mock.Anything, int64(4)).Return(nil).Once()

	w := suite.do(http.MethodDelete, "/api/v1/admin/post/4", adminToken, nil)
	suite.Equal(http.StatusNoContent, w.Code)
}

func (suite *HandlerTestSuite) TestBoards() {
	suite.boardSvc.On("ListBoards", mock.Anything).Return(domain.DefaultBoards, nil).Once()
	w := suite.do(http.MethodGet, "/api/v1/boards", "", nil)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.do(http.MethodPost, "/api/v1/boards", userToken, dto.CreateBoardRequest{Name: "Q&A"})
	suite.Equal(http.StatusForbidden, w.Code)

	suite.boardSvc.On("CreateBoard", mock.Anything, dto.CreateBoardRequest{Name: "Q&A"}).
		Return(&domain.Board{BoardID: 3, Name: "Q&A"}, nil).Once()
	w = suite.do(http.MethodPost, "/api/v1/boards", adminToken, dto.CreateBoardRequest{Name: "Q&A"})
	suite.Equal(http.StatusCreated, w.Code)
	var raw map[string]any
	suite.decode(w, &raw)
	suite.EqualValues(3, raw["id"])
	suite.Equal("Q&A", raw["name"])
	suite.NotContains(raw, "boardID")
}

func (suite *HandlerTestSuite) multipartPost(fields map[string]string, files int) *http.Request {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		suite.Require().NoError(mw.WriteField(k, v))
	}
	for i := 0; i < files; i++ {
		fw, err := mw.CreateFormFile("attachments", fmt.Sprintf("file%d.txt", i))
		suite.Require().NoError(err)
		_, err = fw.Write([]byte("content"))
		suite.Require().NoError(err)
	}
	suite.Require().NoError(mw.Close())

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/posts", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+userToken)
	return req
}

func (suite *HandlerTestSuite) TestCreatePost_Multipart() {
	fields := map[string]string{"title": "Hello", "content": "body", "boardId": "2"}
	suite.postSvc.On("CreatePost", mock.Anything,
		dto.CreatePostRequest{Title: "Hello", Content: "body", BoardID: 2},
		mock.MatchedBy(func(files []domain.UploadFile) bool {
			return len(files) == 2 && files[0].Filename == "file0.txt" && string(files[0].Data) == "content"
		}),
		testUserID,
	).Return(&domain.Post{PostID: 8, BoardID: 2, AuthorID: testUserID, Title: "Hello"}, nil).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.multipartPost(fields, 2))

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	var post dto.PostResponse
	suite.decode(w, &post)
	suite.Equal(int64(8), post.PostID)
	suite.NotNil(post.Attachments)

	var raw map[string]any
	suite.decode(w, &raw)
	suite.EqualValues(8, raw["id"])
	suite.EqualValues(2, raw["boardId"])
	suite.EqualValues(testUserID, raw["authorId"])
	suite.NotContains(raw, "postID")
	suite.NotContains(raw, "postId")
}

func (suite *HandlerTestSuite) TestCreatePost_Rejections() {
	fields := map[string]string{"title": "Hello", "content": "body", "boardId": "2"}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.multipartPost(fields, domain.MaxAttachmentsPerPost+1))
	suite.Equal(http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.multipartPost(map[string]string{"title": "Hello", "content": "body"}, 0))
	suite.Equal(http.StatusBadRequest, w.Code)

	suite.postSvc.On("CreatePost", mock.Anything, mock.Anything, mock.Anything, testUserID).
		Return(nil, fmt.Errorf("board 1 is restricted to admins: %w", apperrors.ErrForbidden)).Once()
	w = httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.multipartPost(map[string]string{"title": "Hello", "content": "body", "boardId": "1"}, 0))
	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *HandlerTestSuite) TestSearch() {
	suite.searchSvc.On("SearchPosts", mock.Anything, dto.SearchPostsParams{Title: "go"}).
		Return([]domain.Post{{PostID: 1, Title: "go"}}, nil).Once()
	w := suite.do(http.MethodGet, "/api/v1/posts/search?title=go", "", nil)
	suite.Equal(http.StatusOK, w.Code)
	var resp dto.SearchPostsResponse
	suite.decode(w, &resp)
	suite.Require().Len(resp.Posts, 1)
	suite.Equal(int64(1), resp.Posts[0].PostID)

	suite.searchSvc.On("TopSearches", mock.Anything).Return(nil, apperrors.ErrUnavailable).Once()
	w = suite.do(http.MethodGet, "/api/v1/posts/search/top", "", nil)
	suite.Equal(http.StatusServiceUnavailable, w.Code)

	suite.searchSvc.On("SearchPosts", mock.Anything, dto.SearchPostsParams{}).
		Return(nil, fmt.Errorf("title or authorId is required: %w", apperrors.ErrValidation)).Once()
	w = suite.do(http.MethodGet, "/api/v1/posts/search", "", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestCreateComment_ErrorMapping() {
	parent := int64(3)
	req := dto.CreateCommentRequest{Content: "reply", PostID: 1, ParentID: &parent}
	cases := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("depth 4 exceeds 3: %w", apperrors.ErrDepthExceeded), http.StatusBadRequest},
		{apperrors.ErrInvalidParent, http.StatusBadRequest},
		{fmt.Errorf("post 1: %w", apperrors.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		suite.commentSvc.On("CreateComment", mock.Anything, req, testUserID).Return(nil, tc.err).Once()
		w := suite.do(http.MethodPost, "/api/v1/comments", userToken, req)
		suite.Equal(tc.status, w.Code, tc.err.Error())
	}

	suite.commentSvc.On("CreateComment", mock.Anything, req, testUserID).
		Return(&domain.Comment{CommentID: 10, PostID: 1, ParentID: &parent, Depth: 2, AuthorID: testUserID, Content: "reply"}, nil).Once()
	w := suite.do(http.MethodPost, "/api/v1/comments", userToken, req)
	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.CommentResponse
	suite.decode(w, &resp)
	suite.Equal(2, resp.Depth)
}

func (suite *HandlerTestSuite) TestListComments_Tree() {
	root := int64(1)
	suite.commentSvc.On("ListComments", mock.Anything, int64(7)).Return([]domain.Comment{
		{CommentID: 1, PostID: 7},
		{CommentID: 2, PostID: 7, ParentID: &root, Depth: 1},
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/comments/post/7", "", nil)

	suite.Equal(http.StatusOK, w.Code)
	var tree []dto.CommentResponse
	suite.decode(w, &tree)
	suite.Require().Len(tree, 1)
	suite.Require().Len(tree[0].Children, 1)
	suite.Equal(int64(2), tree[0].Children[0].CommentID)
}

func (suite *HandlerTestSuite) TestChat_JoinAndSend() {
	server := httptest.NewServer(suite.router)
	defer server.Close()
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/chat"

	alice, _, err := websocket.DefaultDialer.Dial(url, nil)
	suite.Require().NoError(err)
	defer alice.Close()
	bob, _, err := websocket.DefaultDialer.Dial(url, nil)
	suite.Require().NoError(err)
	defer bob.Close()

	read := func(conn *websocket.Conn) dto.ChatServerEvent {
		var ev dto.ChatServerEvent
		suite.Require().NoError(conn.SetReadDeadline(time.Now().Add(2 * time.Second)))
		suite.Require().NoError(conn.ReadJSON(&ev))
		return ev
	}

	suite.Require().NoError(alice.WriteJSON(dto.ChatClientEvent{Type: dto.ChatEventJoinRoom, Room: "lobby"}))
	welcome := read(alice)
	suite.Equal(domain.ChatBotSender, welcome.Message.Sender)
	suite.Contains(welcome.Message.Content, "has joined")

	suite.Require().NoError(bob.WriteJSON(dto.ChatClientEvent{Type: dto.ChatEventJoinRoom, Room: "lobby"}))
	// Bob first receives the history, i.e. alice's welcome, then his own.
	suite.Equal(welcome.Message.ID, read(bob).Message.ID)
	bobWelcome := read(bob)
	suite.Contains(bobWelcome.Message.Content, "has joined")
	suite.Equal(bobWelcome.Message.ID, read(alice).Message.ID)

	suite.Require().NoError(alice.WriteJSON(dto.ChatClientEvent{Type: dto.ChatEventSendMessage, Room: "lobby", Message: "hi bob"}))
	got := read(bob)
	suite.Equal(dto.ChatEventSendMessage, got.Type)
	suite.Equal("hi bob", got.Message.Content)
	suite.Equal("lobby", got.Room)
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
