package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/duccv/auth-service/internal/auth"
)

func newGateRouter(t *testing.T, tokens *auth.TokenManager) (*gin.Engine, *bool) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	reached := false
	r := gin.New()
	r.GET("/protected", VerifyBearerToken(tokens), func(c *gin.Context) {
		reached = true
		claims, ok := IdentityFromContext(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"subject": claims.Subject, "email": claims.Email})
	})
	return r, &reached
}

func doRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestVerifyBearerToken_ValidToken(t *testing.T) {
	tokens := auth.NewTokenManager([]byte("secret"), time.Hour)
	r, reached := newGateRouter(t, tokens)

	token, err := tokens.Issue(uuid.New(), "a@x.com")
	require.NoError(t, err)

	w := doRequest(r, "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, *reached)
	require.Contains(t, w.Body.String(), "a@x.com")
}

func TestVerifyBearerToken_MissingHeader(t *testing.T) {
	tokens := auth.NewTokenManager([]byte("secret"), time.Hour)
	r, reached := newGateRouter(t, tokens)

	w := doRequest(r, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.False(t, *reached)
}

func TestVerifyBearerToken_InvalidScheme(t *testing.T) {
	tokens := auth.NewTokenManager([]byte("secret"), time.Hour)
	token, err := tokens.Issue(uuid.New(), "a@x.com")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"basic scheme", "Basic " + token},
		{"lowercase bearer", "bearer " + token},
		{"no space", "Bearer" + token},
		{"token only", token},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, reached := newGateRouter(t, tokens)
			w := doRequest(r, tt.header)
			require.Equal(t, http.StatusUnauthorized, w.Code)
			require.False(t, *reached)
		})
	}
}

func TestVerifyBearerToken_ExpiredToken(t *testing.T) {
	issuedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	issuer := auth.NewTokenManager([]byte("secret"), time.Hour,
		auth.WithClock(func() time.Time { return issuedAt }))
	verifier := auth.NewTokenManager([]byte("secret"), time.Hour)

	token, err := issuer.Issue(uuid.New(), "a@x.com")
	require.NoError(t, err)

	r, reached := newGateRouter(t, verifier)
	w := doRequest(r, "Bearer "+token)
	// expiry collapses to the same body as every other failure
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.False(t, *reached)
}

func TestVerifyBearerToken_ForgedToken(t *testing.T) {
	issuer := auth.NewTokenManager([]byte("attacker-secret"), time.Hour)
	verifier := auth.NewTokenManager([]byte("secret"), time.Hour)

	token, err := issuer.Issue(uuid.New(), "a@x.com")
	require.NoError(t, err)

	r, reached := newGateRouter(t, verifier)
	w := doRequest(r, "Bearer "+token)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.False(t, *reached)
}
