package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func protectedEcho(t *testing.T, secret string, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	var handler http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(GetUserID(r.Context())))
	})
	handler = JWTAuth(secret)(handler)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestJWTAuth_AcceptsMintedToken(t *testing.T) {
	token, err := MintJWT(testSecret, "ada-uid", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rec := protectedEcho(t, testSecret, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ada-uid", rec.Body.String(), "uid flows through the request context")
}

func TestJWTAuth_RejectsMissingHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := protectedEcho(t, testSecret, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuth_RejectsMalformedHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := protectedEcho(t, testSecret, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuth_RejectsWrongSecret(t *testing.T) {
	token, err := MintJWT("other-secret", "ada-uid", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rec := protectedEcho(t, testSecret, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuth_RejectsExpiredToken(t *testing.T) {
	token, err := MintJWT(testSecret, "ada-uid", -time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rec := protectedEcho(t, testSecret, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetUserID_EmptyWithoutMiddleware(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, GetUserID(req.Context()))
}
