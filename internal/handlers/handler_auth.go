package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/openlibro/library_management_app/internal/core/ports/services"
	"github.com/openlibro/library_management_app/internal/dto"
	"github.com/openlibro/library_management_app/internal/middleware"
	"github.com/openlibro/library_management_app/internal/platform/config"
)

// authHandler handles registration, login, logout, and token refresh.
type authHandler struct {
	authSvc portssvc.AuthSvcFacade
	cfg     *config.Config
}

// newAuthHandler creates a new authHandler.
func newAuthHandler(authSvc portssvc.AuthSvcFacade, cfg *config.Config) *authHandler {
	return &authHandler{
		authSvc: authSvc,
		cfg:     cfg,
	}
}

// registerPublicAuthRoutes registers the routes that do not require an
// access token.
func registerPublicAuthRoutes(rg *gin.RouterGroup, authSvc portssvc.AuthSvcFacade, cfg *config.Config) {
	h := newAuthHandler(authSvc, cfg)
	rg.POST("/register", h.register)
	rg.POST("/login", h.login)
	rg.POST("/refresh", h.refresh)
}

// registerProtectedAuthRoutes registers the auth routes behind AuthMiddleware.
func registerProtectedAuthRoutes(rg *gin.RouterGroup, authSvc portssvc.AuthSvcFacade, cfg *config.Config) {
	h := newAuthHandler(authSvc, cfg)
	rg.POST("/logout", h.logout)
}

// setAuthCookies delivers both tokens as httpOnly, secure cookies.
func (h *authHandler) setAuthCookies(c *gin.Context, pair *dto.RefreshResponse) {
	accessMaxAge := int(h.cfg.AccessTokenExpiryDuration.Seconds())
	refreshMaxAge := int(h.cfg.RefreshTokenExpiryDuration.Seconds())
	c.SetCookie(middleware.AccessTokenCookieName, pair.AccessToken, accessMaxAge, "/", "", true, true)
	c.SetCookie(middleware.RefreshTokenCookieName, pair.RefreshToken, refreshMaxAge, "/", "", true, true)
}

// clearAuthCookies expires both auth cookies.
func (h *authHandler) clearAuthCookies(c *gin.Context) {
	c.SetCookie(middleware.AccessTokenCookieName, "", -1, "/", "", true, true)
	c.SetCookie(middleware.RefreshTokenCookieName, "", -1, "/", "", true, true)
}

// register godoc
// @Summary Register a new user
// @Description Creates a new user with a unique username and email.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "User registration info"
// @Success 201 {object} dto.APIResponse{data=dto.UserResponse}
// @Failure 400 {object} dto.APIResponse
// @Failure 409 {object} dto.APIResponse
// @Router /users/register [post]
func (h *authHandler) register(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	user, err := h.authSvc.Register(c.Request.Context(), req)
	if err != nil {
		logger.Warn("Registration failed", slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	logger.Info("User registered", slog.String("user_id", user.UserID))
	respondSuccess(c, http.StatusCreated, dto.ToUserResponse(user), "User registered successfully")
}

// login godoc
// @Summary Log a user in
// @Description Verifies credentials and issues an access/refresh token pair.
// @Description Tokens are set as httpOnly cookies and returned in the body
// @Description for non-cookie clients.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.APIResponse{data=dto.LoginResponse}
// @Failure 401 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Router /users/login [post]
func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	user, pair, err := h.authSvc.Login(c.Request.Context(), req)
	if err != nil {
		logger.Warn("Login failed", slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	h.setAuthCookies(c, &dto.RefreshResponse{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken})

	logger.Info("User logged in", slog.String("user_id", user.UserID))
	respondSuccess(c, http.StatusOK, dto.LoginResponse{
		User:         dto.ToUserResponse(user),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, "User logged in successfully")
}

// refresh godoc
// @Summary Refresh the token pair
// @Description Validates the refresh token (cookie or body) against the
// @Description stored one and rotates the pair.
// @Tags auth
// @Accept json
// @Produce json
// @Param refresh body dto.RefreshRequest false "Refresh token for non-cookie clients"
// @Success 200 {object} dto.APIResponse{data=dto.RefreshResponse}
// @Failure 401 {object} dto.APIResponse
// @Router /users/refresh [post]
func (h *authHandler) refresh(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RefreshRequest
	// The body is optional; cookie clients send no payload at all.
	_ = c.ShouldBindJSON(&req)
	refreshToken := req.RefreshToken
	if refreshToken == "" {
		if cookie, err := c.Cookie(middleware.RefreshTokenCookieName); err == nil {
			refreshToken = cookie
		}
	}
	if refreshToken == "" {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "unauthorized request", nil))
		return
	}

	user, pair, err := h.authSvc.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		logger.Warn("Token refresh failed", slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	resp := dto.RefreshResponse{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken}
	h.setAuthCookies(c, &resp)

	logger.Info("Token pair rotated", slog.String("user_id", user.UserID))
	respondSuccess(c, http.StatusOK, resp, "Access token refreshed successfully")
}

// logout godoc
// @Summary Log the current user out
// @Description Clears the stored refresh token and both auth cookies. Idempotent.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Failure 401 {object} dto.APIResponse
// @Security BearerAuth
// @Router /users/logout [post]
func (h *authHandler) logout(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "unauthorized request", nil))
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), userID); err != nil {
		logger.Error("Logout failed", slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	h.clearAuthCookies(c)

	logger.Info("User logged out")
	respondSuccess(c, http.StatusOK, gin.H{}, "User logged out successfully")
}
