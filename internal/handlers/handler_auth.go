package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/boardhub/board_backend/internal/core/ports/services"
	"github.com/boardhub/board_backend/internal/dto"
	"github.com/boardhub/board_backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// authHandler handles signup and the login/refresh/logout protocol.
type authHandler struct {
	tokenService portssvc.TokenSvcFacade
	userService  portssvc.UserSvcFacade
}

func newAuthHandler(ts portssvc.TokenSvcFacade, us portssvc.UserSvcFacade) *authHandler {
	return &authHandler{
		tokenService: ts,
		userService:  us,
	}
}

// registerAuthRoutes sets up the routes for authentication.
func registerAuthRoutes(rg *gin.RouterGroup, ts portssvc.TokenSvcFacade, us portssvc.UserSvcFacade, authRequired gin.HandlerFunc, authLimiter *limiter.Limiter) {
	h := newAuthHandler(ts, us)

	limited := func(handler gin.HandlerFunc) []gin.HandlerFunc {
		if authLimiter == nil {
			return []gin.HandlerFunc{handler}
		}
		return []gin.HandlerFunc{middleware.RateLimit(authLimiter), handler}
	}

	auth := rg.Group("/auth")
	{
		auth.POST("/signup", limited(h.signup)...)
		auth.POST("/login", limited(h.login)...)
		auth.POST("/refresh", limited(h.refresh)...)
		auth.POST("/logout", authRequired, h.logout)
	}
}

// signup godoc
// @Summary Register new user
// @Description Creates a new user account with the user role.
// @Tags auth
// @Accept json
// @Produce json
// @Param signup body dto.CreateUserRequest true "User Registration Info"
// @Success 201 {object} dto.SignupResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Email already registered"
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/signup [post]
func (h *authHandler) signup(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind signup request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, err, "Failed to register user")
		return
	}

	logger.Info("User registered", slog.Int64("new_user_id", user.UserID))
	c.JSON(http.StatusCreated, dto.SignupResponse{Message: "Signup successful", User: dto.ToUserResponse(user)})
}

// login godoc
// @Summary User login
// @Description Authenticates a user and returns an access token and a refresh token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	pair, err := h.tokenService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondWithError(c, err, "Failed to log in")
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Message:            "Login successful",
		AccessToken:        pair.AccessToken,
		AccessTokenExpiry:  pair.AccessTokenExpiry,
		RefreshToken:       pair.RefreshToken,
		RefreshTokenExpiry: pair.RefreshTokenExpiry,
	})
}

// refresh godoc
// @Summary Refresh access token
// @Description Exchanges a refresh token for a new access token. A new refresh token is
// @Description included only when the presented one is close to expiry.
// @Tags auth
// @Accept json
// @Produce json
// @Param refresh body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.RefreshTokenResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/refresh [post]
func (h *authHandler) refresh(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	pair, err := h.tokenService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondWithError(c, err, "Failed to refresh token")
		return
	}

	resp := dto.RefreshTokenResponse{
		AccessToken:       pair.AccessToken,
		AccessTokenExpiry: pair.AccessTokenExpiry,
	}
	if pair.RefreshToken != "" {
		expiry := pair.RefreshTokenExpiry
		resp.RefreshToken = pair.RefreshToken
		resp.RefreshTokenExpiry = &expiry
	}
	c.JSON(http.StatusOK, resp)
}

// logout godoc
// @Summary Log out
// @Description Revokes the current session's refresh token.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /auth/logout [post]
func (h *authHandler) logout(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.tokenService.Logout(c.Request.Context(), userID); err != nil {
		respondWithError(c, err, "Failed to log out")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("User logged out")
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Logged out"})
}
