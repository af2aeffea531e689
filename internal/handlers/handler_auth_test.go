package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/openlibro/library_management_app/internal/apperrors"
	"github.com/openlibro/library_management_app/internal/core/domain"
	portssvc "github.com/openlibro/library_management_app/internal/core/ports/services"
	"github.com/openlibro/library_management_app/internal/dto"
	"github.com/openlibro/library_management_app/internal/handlers"
	"github.com/openlibro/library_management_app/internal/middleware"
	"github.com/openlibro/library_management_app/internal/platform/config"
)

// --- Mock AuthService ---
type MockAuthService struct {
	mock.Mock
	AuthorizeFn func(ctx context.Context, accessToken string) (*domain.User, error)
}

var _ portssvc.AuthSvcFacade = (*MockAuthService)(nil)

func (m *MockAuthService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, req dto.LoginRequest) (*domain.User, *domain.TokenPair, error) {
	args := m.Called(ctx, req)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	var pair *domain.TokenPair
	if args.Get(1) != nil {
		pair = args.Get(1).(*domain.TokenPair)
	}
	return user, pair, args.Error(2)
}

func (m *MockAuthService) Logout(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (*domain.User, *domain.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	var pair *domain.TokenPair
	if args.Get(1) != nil {
		pair = args.Get(1).(*domain.TokenPair)
	}
	return user, pair, args.Error(2)
}

func (m *MockAuthService) Authorize(ctx context.Context, accessToken string) (*domain.User, error) {
	if m.AuthorizeFn != nil {
		return m.AuthorizeFn(ctx, accessToken)
	}
	args := m.Called(ctx, accessToken)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

// --- Mock LibraryService ---
type MockLibraryService struct {
	mock.Mock
}

var _ portssvc.LibrarySvcFacade = (*MockLibraryService)(nil)

func (m *MockLibraryService) AddBook(ctx context.Context, requesterID string, req dto.AddBookRequest) (*domain.Book, error) {
	args := m.Called(ctx, requesterID, req)
	var book *domain.Book
	if args.Get(0) != nil {
		book = args.Get(0).(*domain.Book)
	}
	return book, args.Error(1)
}

func (m *MockLibraryService) BorrowBook(ctx context.Context, requesterID, bookID string) (*domain.Book, error) {
	args := m.Called(ctx, requesterID, bookID)
	var book *domain.Book
	if args.Get(0) != nil {
		book = args.Get(0).(*domain.Book)
	}
	return book, args.Error(1)
}

func (m *MockLibraryService) ReturnBook(ctx context.Context, requesterID, bookID string) (*domain.Book, error) {
	args := m.Called(ctx, requesterID, bookID)
	var book *domain.Book
	if args.Get(0) != nil {
		book = args.Get(0).(*domain.Book)
	}
	return book, args.Error(1)
}

func (m *MockLibraryService) ListAvailableBooks(ctx context.Context) ([]domain.Book, error) {
	args := m.Called(ctx)
	var books []domain.Book
	if args.Get(0) != nil {
		books = args.Get(0).([]domain.Book)
	}
	return books, args.Error(1)
}

// --- Test helpers ---

type testEnv struct {
	router     *gin.Engine
	authSvc    *MockAuthService
	librarySvc *MockLibraryService
}

func setupTestRouter(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		IsProduction:               true, // no swagger routes in tests
		AccessTokenExpiryDuration:  15 * time.Minute,
		RefreshTokenExpiryDuration: 168 * time.Hour,
	}
	authSvc := new(MockAuthService)
	librarySvc := new(MockLibraryService)

	r := gin.New()
	handlers.RegisterRoutes(r, cfg, &portssvc.ServiceContainer{
		Auth:    authSvc,
		Library: librarySvc,
	})
	return &testEnv{router: r, authSvc: authSvc, librarySvc: librarySvc}
}

func performJSON(t *testing.T, r *gin.Engine, method, path string, body any, mutate func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if mutate != nil {
		mutate(req)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) dto.APIResponse {
	t.Helper()
	var resp dto.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func findCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func testUser() *domain.User {
	return &domain.User{
		UserID:   "user-1",
		Username: "u1",
		Email:    "a@x.com",
		Fullname: "User One",
	}
}

// authorizeAs makes the auth middleware accept the given bearer token.
func (env *testEnv) authorizeAs(user *domain.User, token string) {
	env.authSvc.AuthorizeFn = func(ctx context.Context, accessToken string) (*domain.User, error) {
		if accessToken == token {
			return user, nil
		}
		return nil, apperrors.NewUnauthorized("invalid access token")
	}
}

// --- Register ---

func TestRegisterHandler_Success(t *testing.T) {
	env := setupTestRouter(t)

	created := testUser()
	env.authSvc.On("Register", mock.Anything, dto.RegisterRequest{
		Email: "a@x.com", Username: "u1", Fullname: "User One", Password: "password123",
	}).Return(created, nil).Once()

	w := performJSON(t, env.router, http.MethodPost, "/api/v1/users/register", gin.H{
		"email": "a@x.com", "username": "u1", "fullname": "User One", "password": "password123",
	}, nil)

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := decodeEnvelope(t, w)
	assert.True(t, resp.Success)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "User registered successfully", resp.Message)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "u1", data["username"])
	assert.NotContains(t, data, "password", "Password hash must never serialize")
	assert.NotContains(t, data, "refreshToken")
	env.authSvc.AssertExpectations(t)
}

func TestRegisterHandler_MissingFieldFails(t *testing.T) {
	env := setupTestRouter(t)

	w := performJSON(t, env.router, http.MethodPost, "/api/v1/users/register", gin.H{
		"email": "a@x.com", "username": "u1", "fullname": "User One",
	}, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeEnvelope(t, w)
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Errors, "Binding errors should name the offending fields")
	env.authSvc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestRegisterHandler_DuplicateFails(t *testing.T) {
	env := setupTestRouter(t)

	env.authSvc.On("Register", mock.Anything, mock.AnythingOfType("dto.RegisterRequest")).
		Return(nil, apperrors.NewDuplicate("user already exists")).Once()

	w := performJSON(t, env.router, http.MethodPost, "/api/v1/users/register", gin.H{
		"email": "a@x.com", "username": "u1", "fullname": "User One", "password": "p1",
	}, nil)

	assert.Equal(t, http.StatusConflict, w.Code)
	resp := decodeEnvelope(t, w)
	assert.False(t, resp.Success)
	assert.Equal(t, "user already exists", resp.Message)
}

// --- Login ---

func TestLoginHandler_SetsCookiesAndBodyTokens(t *testing.T) {
	env := setupTestRouter(t)

	pair := &domain.TokenPair{AccessToken: "access-jwt", RefreshToken: "refresh-jwt"}
	env.authSvc.On("Login", mock.Anything, dto.LoginRequest{Username: "u1", Password: "password123"}).
		Return(testUser(), pair, nil).Once()

	w := performJSON(t, env.router, http.MethodPost, "/api/v1/users/login", gin.H{
		"username": "u1", "password": "password123",
	}, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeEnvelope(t, w)
	assert.True(t, resp.Success)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "access-jwt", data["accessToken"])
	assert.Equal(t, "refresh-jwt", data["refreshToken"])

	cookies := w.Result().Cookies()
	access := findCookie(cookies, middleware.AccessTokenCookieName)
	require.NotNil(t, access, "accessToken cookie must be set")
	assert.Equal(t, "access-jwt", access.Value)
	assert.True(t, access.HttpOnly)
	assert.True(t, access.Secure)

	refresh := findCookie(cookies, middleware.RefreshTokenCookieName)
	require.NotNil(t, refresh, "refreshToken cookie must be set")
	assert.Equal(t, "refresh-jwt", refresh.Value)
	assert.True(t, refresh.HttpOnly)
}

func TestLoginHandler_WrongPasswordFails(t *testing.T) {
	env := setupTestRouter(t)

	env.authSvc.On("Login", mock.Anything, mock.AnythingOfType("dto.LoginRequest")).
		Return(nil, nil, apperrors.NewUnauthorized("password entered is incorrect")).Once()

	w := performJSON(t, env.router, http.MethodPost, "/api/v1/users/login", gin.H{
		"username": "u1", "password": "wrong",
	}, nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	resp := decodeEnvelope(t, w)
	assert.False(t, resp.Success)
	assert.Equal(t, "password entered is incorrect", resp.Message)
	assert.Empty(t, w.Result().Cookies(), "No cookies on a failed login")
}

func TestLoginHandler_UnknownUserFails(t *testing.T) {
	env := setupTestRouter(t)

	env.authSvc.On("Login", mock.Anything, mock.AnythingOfType("dto.LoginRequest")).
		Return(nil, nil, apperrors.NewNotFound("user with the username or email not found")).Once()

	w := performJSON(t, env.router, http.MethodPost, "/api/v1/users/login", gin.H{
		"email": "nobody@x.com", "password": "p1",
	}, nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// --- Refresh ---

func TestRefreshHandler_CookieClient(t *testing.T) {
	env := setupTestRouter(t)

	pair := &domain.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"}
	env.authSvc.On("Refresh", mock.Anything, "old-refresh").Return(testUser(), pair, nil).Once()

	w := performJSON(t, env.router, http.MethodPost, "/api/v1/users/refresh", nil, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: middleware.RefreshTokenCookieName, Value: "old-refresh"})
	})

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeEnvelope(t, w)
	assert.True(t, resp.Success)

	cookies := w.Result().Cookies()
	refresh := findCookie(cookies, middleware.RefreshTokenCookieName)
	require.NotNil(t, refresh)
	assert.Equal(t, "new-refresh", refresh.Value, "Rotated refresh token replaces the cookie")
	env.authSvc.AssertExpectations(t)
}

func TestRefreshHandler_BodyClient(t *testing.T) {
	env := setupTestRouter(t)

	pair := &domain.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"}
	env.authSvc.On("Refresh", mock.Anything, "old-refresh").Return(testUser(), pair, nil).Once()

	w := performJSON(t, env.router, http.MethodPost, "/api/v1/users/refresh", gin.H{
		"refreshToken": "old-refresh",
	}, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	data, ok := decodeEnvelope(t, w).Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "new-access", data["accessToken"])
	assert.Equal(t, "new-refresh", data["refreshToken"])
}

func TestRefreshHandler_NoTokenFails(t *testing.T) {
	env := setupTestRouter(t)

	w := performJSON(t, env.router, http.MethodPost, "/api/v1/users/refresh", nil, nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	env.authSvc.AssertNotCalled(t, "Refresh", mock.Anything, mock.Anything)
}

func TestRefreshHandler_StaleTokenFails(t *testing.T) {
	env := setupTestRouter(t)

	env.authSvc.On("Refresh", mock.Anything, "stale-refresh").
		Return(nil, nil, apperrors.NewUnauthorized("invalid refresh token")).Once()

	w := performJSON(t, env.router, http.MethodPost, "/api/v1/users/refresh", gin.H{
		"refreshToken": "stale-refresh",
	}, nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// --- Logout ---

func TestLogoutHandler_ClearsCookies(t *testing.T) {
	env := setupTestRouter(t)
	env.authorizeAs(testUser(), "valid-access")
	env.authSvc.On("Logout", mock.Anything, "user-1").Return(nil).Once()

	w := performJSON(t, env.router, http.MethodPost, "/api/v1/users/logout", nil, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: middleware.AccessTokenCookieName, Value: "valid-access"})
	})

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeEnvelope(t, w)
	assert.True(t, resp.Success)
	assert.Equal(t, "User logged out successfully", resp.Message)

	cookies := w.Result().Cookies()
	access := findCookie(cookies, middleware.AccessTokenCookieName)
	require.NotNil(t, access)
	assert.Empty(t, access.Value)
	assert.Negative(t, access.MaxAge, "Cookie must be expired")

	refresh := findCookie(cookies, middleware.RefreshTokenCookieName)
	require.NotNil(t, refresh)
	assert.Empty(t, refresh.Value)
	env.authSvc.AssertExpectations(t)
}

func TestLogoutHandler_NoTokenFails(t *testing.T) {
	env := setupTestRouter(t)

	w := performJSON(t, env.router, http.MethodPost, "/api/v1/users/logout", nil, nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	resp := decodeEnvelope(t, w)
	assert.False(t, resp.Success)
	assert.Equal(t, "unauthorized request", resp.Message)
	env.authSvc.AssertNotCalled(t, "Logout", mock.Anything, mock.Anything)
}

func TestLogoutHandler_BearerHeaderAccepted(t *testing.T) {
	env := setupTestRouter(t)
	env.authorizeAs(testUser(), "valid-access")
	env.authSvc.On("Logout", mock.Anything, "user-1").Return(nil).Once()

	w := performJSON(t, env.router, http.MethodPost, "/api/v1/users/logout", nil, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer valid-access")
	})

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddleware_CookieTakesPrecedenceOverHeader(t *testing.T) {
	env := setupTestRouter(t)
	env.authorizeAs(testUser(), "valid-access")

	// A revoked cookie must not be rescued by a valid header token.
	w := performJSON(t, env.router, http.MethodPost, "/api/v1/users/logout", nil, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: middleware.AccessTokenCookieName, Value: "revoked-access"})
		req.Header.Set("Authorization", "Bearer valid-access")
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	resp := decodeEnvelope(t, w)
	assert.Equal(t, "invalid access token", resp.Message)
}
