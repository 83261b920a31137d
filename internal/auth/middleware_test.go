package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVersions struct {
	version int
	err     error
}

func (f *fakeVersions) GetTokenVersion(_ context.Context, _ string) (int, error) {
	return f.version, f.err
}

func protectedRouter(ts TokenService, versions VersionSource) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", AuthMiddleware(ts, versions), func(c *gin.Context) {
		claims := MustGetClaims(c)
		c.JSON(http.StatusOK, gin.H{"user_id": claims.UserID})
	})
	return r
}

func signedToken(t *testing.T, ts TokenService, version int) string {
	t.Helper()
	tok, _, err := ts.Sign(&User{ID: "u1", Username: "maya", Email: "m@x.dev", TokenVersion: version})
	require.NoError(t, err)
	return tok
}

func TestAuthMiddlewareAcceptsCurrentToken(t *testing.T) {
	ts := TokenService{Secret: []byte("s"), Issuer: "portfoliohub", Duration: time.Hour}
	r := protectedRouter(ts, &fakeVersions{version: 2})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, ts, 2))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "u1")
}

func TestAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	ts := TokenService{Secret: []byte("s"), Issuer: "portfoliohub", Duration: time.Hour}
	r := protectedRouter(ts, &fakeVersions{version: 1})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejectsStaleTokenVersion(t *testing.T) {
	ts := TokenService{Secret: []byte("s"), Issuer: "portfoliohub", Duration: time.Hour}
	r := protectedRouter(ts, &fakeVersions{version: 5})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, ts, 4))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
