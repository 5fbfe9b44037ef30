package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/user_service/internal/models"
	"github.com/Skotchmaster/user_service/internal/repo"
	"github.com/Skotchmaster/user_service/internal/service"
	"github.com/Skotchmaster/user_service/internal/transport"
	"github.com/Skotchmaster/user_service/pkg/tokens"
)

type testEnv struct {
	E     *echo.Echo
	Auth  *AuthHTTP
	Users *UserHTTP
	Repo  *repo.GormRepo
	Svc   *service.AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	gormRepo := &repo.GormRepo{DB: db}
	tokenHandler := &tokens.Handler{
		Secret:     []byte("test-jwt-secret"),
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
	}
	authSvc := &service.AuthService{Repo: gormRepo, Tokens: tokenHandler}
	userSvc := &service.UserService{Repo: gormRepo}

	return &testEnv{
		E:     echo.New(),
		Auth:  &AuthHTTP{Svc: authSvc},
		Users: NewUserHTTP(userSvc, nil, nil),
		Repo:  gormRepo,
		Svc:   authSvc,
	}
}

func (env *testEnv) jsonRequest(method, target string, payload interface{}) (*http.Request, *httptest.ResponseRecorder) {
	bodyBytes, _ := json.Marshal(payload)
	req := httptest.NewRequest(method, target, bytes.NewReader(bodyBytes))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req, httptest.NewRecorder()
}

func TestRegisterHandler(t *testing.T) {
	env := newTestEnv(t)

	payload := map[string]string{
		"email":    "a@x.com",
		"username": "alice",
		"password": "Abc12345!",
	}

	req, rec := env.jsonRequest(http.MethodPost, "/register", payload)
	c := env.E.NewContext(req, rec)

	require.NoError(t, env.Auth.Register(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp transport.UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "a@x.com", resp.Email)
	assert.Equal(t, "alice", resp.Username)
	assert.NotEmpty(t, resp.UUID)
	assert.NotContains(t, rec.Body.String(), "password")

	req2, rec2 := env.jsonRequest(http.MethodPost, "/register", map[string]string{
		"email":    "a@x.com",
		"username": "bob",
		"password": "Zzz98765!",
	})
	c2 := env.E.NewContext(req2, rec2)

	err := env.Auth.Register(c2)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestRegisterHandler_Validation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name    string
		payload map[string]string
	}{
		{name: "bad email", payload: map[string]string{"email": "nope", "username": "alice", "password": "Abc12345!"}},
		{name: "short username", payload: map[string]string{"email": "a@x.com", "username": "al", "password": "Abc12345!"}},
		{name: "username with specials", payload: map[string]string{"email": "a@x.com", "username": "ali.ce", "password": "Abc12345!"}},
		{name: "password without digits", payload: map[string]string{"email": "a@x.com", "username": "alice", "password": "Abcdefgh!"}},
		{name: "password without uppercase", payload: map[string]string{"email": "a@x.com", "username": "alice", "password": "abc12345!"}},
		{name: "password without specials", payload: map[string]string{"email": "a@x.com", "username": "alice", "password": "Abc123456"}},
		{name: "short password", payload: map[string]string{"email": "a@x.com", "username": "alice", "password": "Ab1!"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			req, rec := env.jsonRequest(http.MethodPost, "/register", tt.payload)
			c := env.E.NewContext(req, rec)

			err := env.Auth.Register(c)
			he, ok := err.(*echo.HTTPError)
			require.True(t, ok, "expected HTTPError")
			assert.Equal(t, http.StatusUnprocessableEntity, he.Code)
		})
	}
}

func TestLoginHandler(t *testing.T) {
	env := newTestEnv(t)
	registerTestUser(t, env, "a@x.com", "alice", "Abc12345!")

	req, rec := env.jsonRequest(http.MethodPost, "/login", map[string]string{
		"email":    "a@x.com",
		"password": "Abc12345!",
	})
	c := env.E.NewContext(req, rec)

	require.NoError(t, env.Auth.Login(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp transport.TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)
	require.NotEmpty(t, resp.RefreshToken)

	claims, err := env.Svc.Tokens.DecodeAccess(resp.AccessToken)
	require.NoError(t, err)
	assert.NotZero(t, claims.UserID)
}

func TestLoginHandler_WrongPassword(t *testing.T) {
	env := newTestEnv(t)
	registerTestUser(t, env, "a@x.com", "alice", "Abc12345!")

	req, rec := env.jsonRequest(http.MethodPost, "/login", map[string]string{
		"email":    "a@x.com",
		"password": "wrong",
	})
	c := env.E.NewContext(req, rec)

	err := env.Auth.Login(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestRefreshHandler(t *testing.T) {
	env := newTestEnv(t)
	registerTestUser(t, env, "a@x.com", "alice", "Abc12345!")

	pair, _, err := env.Svc.Login(tCtx(), "a@x.com", "Abc12345!")
	require.NoError(t, err)

	req, rec := env.jsonRequest(http.MethodPost, "/refresh", map[string]string{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	})
	c := env.E.NewContext(req, rec)

	require.NoError(t, env.Auth.Refresh(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp transport.TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)
	require.NotEmpty(t, resp.RefreshToken)
}

func TestRefreshHandler_AccessTokenAsRefresh(t *testing.T) {
	env := newTestEnv(t)
	registerTestUser(t, env, "a@x.com", "alice", "Abc12345!")

	pair, _, err := env.Svc.Login(tCtx(), "a@x.com", "Abc12345!")
	require.NoError(t, err)

	req, rec := env.jsonRequest(http.MethodPost, "/refresh", map[string]string{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.AccessToken,
	})
	c := env.E.NewContext(req, rec)

	err = env.Auth.Refresh(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestChangePasswordHandler(t *testing.T) {
	env := newTestEnv(t)
	registerTestUser(t, env, "a@x.com", "alice", "Abc12345!")

	req, rec := env.jsonRequest(http.MethodPost, "/change-password", map[string]string{
		"username":     "alice",
		"old_password": "Abc12345!",
		"new_password": "Zzz98765!",
	})
	c := env.E.NewContext(req, rec)

	require.NoError(t, env.Auth.ChangePassword(c))
	require.Equal(t, http.StatusOK, rec.Code)

	_, _, err := env.Svc.Login(tCtx(), "a@x.com", "Zzz98765!")
	require.NoError(t, err)
}
