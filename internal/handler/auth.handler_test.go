package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/duccv/auth-service/internal/auth"
	"github.com/duccv/auth-service/internal/middleware"
	"github.com/duccv/auth-service/internal/model"
	"github.com/duccv/auth-service/internal/user"
	"github.com/duccv/auth-service/internal/validation"
)

type memoryStore struct {
	users map[string]*user.User
}

func (s *memoryStore) Create(_ context.Context, u *user.User) error {
	if _, ok := s.users[u.Email]; ok {
		return user.ErrDuplicateEmail
	}
	cp := *u
	s.users[u.Email] = &cp
	return nil
}

func (s *memoryStore) GetByEmail(_ context.Context, email string) (*user.User, error) {
	u, ok := s.users[email]
	if !ok {
		return nil, user.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

// newAuthRouter mirrors the route wiring in pkg/server/http.
func newAuthRouter(tokens *auth.TokenManager) *gin.Engine {
	gin.SetMode(gin.TestMode)

	store := &memoryStore{users: make(map[string]*user.User)}
	h := NewAuthHandler(auth.NewService(store, tokens))

	r := gin.New()
	authGroup := r.Group("/api/v1/auth")
	{
		authGroup.POST("/register", validation.ValidateBody[model.RegisterRequest](), h.Register)
		authGroup.POST("/login", validation.ValidateBody[model.LoginRequest](), h.Login)
		authGroup.GET("/me", middleware.VerifyBearerToken(tokens), h.Me)
	}
	return r
}

func postJSON(r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Ec   int             `json:"ec"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestAuthFlow_RegisterThenLogin(t *testing.T) {
	tokens := auth.NewTokenManager([]byte("secret"), time.Hour)
	r := newAuthRouter(tokens)

	w := postJSON(r, "/api/v1/auth/register", gin.H{"email": "a@x.com", "password": "secret1"})
	require.Equal(t, http.StatusCreated, w.Code)

	var reg model.RegisterResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &reg))
	require.NotEmpty(t, reg.ID)

	// login with differing case and whitespace
	w = postJSON(r, "/api/v1/auth/login", gin.H{"email": " A@x.com ", "password": "secret1"})
	require.Equal(t, http.StatusOK, w.Code)

	var login model.LoginResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &login))
	require.NotEmpty(t, login.AccessToken)

	claims, err := tokens.Verify(login.AccessToken)
	require.NoError(t, err)
	require.Equal(t, reg.ID.String(), claims.Subject)
	require.Equal(t, "a@x.com", claims.Email)
}

func TestAuthFlow_DuplicateRegistration(t *testing.T) {
	r := newAuthRouter(auth.NewTokenManager([]byte("secret"), time.Hour))

	w := postJSON(r, "/api/v1/auth/register", gin.H{"email": "a@x.com", "password": "secret1"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(r, "/api/v1/auth/register", gin.H{"email": "A@X.com ", "password": "secret2"})
	require.Equal(t, http.StatusConflict, w.Code)
	require.Equal(t, "email already exists", decodeEnvelope(t, w).Msg)
}

func TestAuthFlow_WrongPassword(t *testing.T) {
	r := newAuthRouter(auth.NewTokenManager([]byte("secret"), time.Hour))

	w := postJSON(r, "/api/v1/auth/register", gin.H{"email": "b@x.com", "password": "correctpw"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(r, "/api/v1/auth/login", gin.H{"email": "b@x.com", "password": "wrongpw"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "invalid email or password", decodeEnvelope(t, w).Msg)
}

func TestAuthFlow_UnknownEmailIndistinguishable(t *testing.T) {
	r := newAuthRouter(auth.NewTokenManager([]byte("secret"), time.Hour))

	w := postJSON(r, "/api/v1/auth/register", gin.H{"email": "b@x.com", "password": "correctpw"})
	require.Equal(t, http.StatusCreated, w.Code)

	wrongPassword := postJSON(r, "/api/v1/auth/login", gin.H{"email": "b@x.com", "password": "wrongpw"})
	unknownEmail := postJSON(r, "/api/v1/auth/login", gin.H{"email": "nobody@x.com", "password": "wrongpw"})

	// identical status and body, no account enumeration
	require.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	require.Equal(t, wrongPassword.Code, unknownEmail.Code)
	require.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
}

func TestAuthFlow_RegisterValidation(t *testing.T) {
	r := newAuthRouter(auth.NewTokenManager([]byte("secret"), time.Hour))

	tests := []struct {
		name string
		body gin.H
	}{
		{"missing email", gin.H{"password": "secret1"}},
		{"short password", gin.H{"email": "a@x.com", "password": "short"}},
		{"whitespace email", gin.H{"email": "   ", "password": "secret1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(r, "/api/v1/auth/register", tt.body)
			require.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestMe_ReturnsTokenIdentity(t *testing.T) {
	tokens := auth.NewTokenManager([]byte("secret"), time.Hour)
	r := newAuthRouter(tokens)

	w := postJSON(r, "/api/v1/auth/register", gin.H{"email": "a@x.com", "password": "secret1"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(r, "/api/v1/auth/login", gin.H{"email": "a@x.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, w.Code)
	var login model.LoginResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &login))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+login.AccessToken)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, rec.Header().Get("ETag"))

	var identity model.IdentityResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &identity))
	require.Equal(t, "a@x.com", identity.Email)
	require.NotEmpty(t, identity.Subject)
}

func TestMe_WithoutToken(t *testing.T) {
	r := newAuthRouter(auth.NewTokenManager([]byte("secret"), time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
