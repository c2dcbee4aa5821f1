package gateway

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	ti := NewTokenIssuer("secret", time.Hour)

	token, expires, err := ti.Issue("guest-1")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, 5*time.Second)

	claims, err := ti.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "guest-1", claims.PlayerID)
	assert.Equal(t, "guest-1", claims.Subject)
	assert.Equal(t, tokenIssuer, claims.Issuer)
}

func TestParseRejects(t *testing.T) {
	ti := NewTokenIssuer("secret", time.Hour)
	other := NewTokenIssuer("other", time.Hour)
	foreign, _, err := other.Issue("guest-1")
	require.NoError(t, err)

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		PlayerID: "guest-1",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	noPlayer, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Issuer: tokenIssuer},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = ti.Parse("")
	assert.ErrorIs(t, err, ErrMissingToken)

	for name, token := range map[string]string{
		"garbage":   "not-a-token",
		"signature": foreign,
		"expired":   expired,
		"no_player": noPlayer,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ti.Parse(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestTokenFromRequest(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/ws?token=query", nil)
	assert.Equal(t, "query", TokenFromRequest(r))

	r.Header.Set("Authorization", "Bearer header")
	assert.Equal(t, "header", TokenFromRequest(r))
}

func TestGuestLogin(t *testing.T) {
	ti := NewTokenIssuer("secret", time.Hour)
	mux := http.NewServeMux()
	NewAuthHandler(ti, nil).RegisterHandlers(mux)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/guest", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp AuthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.True(t, strings.HasPrefix(resp.PlayerID, "guest-"))

	claims, err := ti.Parse(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.PlayerID, claims.PlayerID)

	req := httptest.NewRequest(http.MethodGet, "/auth/validate", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Token)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGuestLoginMethod(t *testing.T) {
	mux := http.NewServeMux()
	NewAuthHandler(NewTokenIssuer("secret", time.Hour), nil).RegisterHandlers(mux)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/guest", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/validate?token=bad", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
