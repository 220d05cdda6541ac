package oauth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedTestJWT(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return token
}

func TestProcessTokens(t *testing.T) {
	t.Parallel()

	t.Run("prefers claims from the ID token", func(t *testing.T) {
		t.Parallel()
		idToken := signedTestJWT(t, jwt.MapClaims{"sub": "user-1", "email": "user@example.com"})
		accessToken := signedTestJWT(t, jwt.MapClaims{"sub": "other"})

		result := ProcessTokens(&Tokens{
			AccessToken: accessToken,
			TokenType:   "Bearer",
			ExpiresIn:   3600,
			IDToken:     idToken,
		})

		require.NotNil(t, result.Claims)
		assert.Equal(t, "user-1", result.Claims["sub"])
		assert.Equal(t, "user@example.com", result.Claims["email"])
		assert.Equal(t, idToken, result.IDToken)
		assert.WithinDuration(t, time.Now().Add(time.Hour), result.Expiry, 5*time.Second)
	})

	t.Run("falls back to access token claims", func(t *testing.T) {
		t.Parallel()
		accessToken := signedTestJWT(t, jwt.MapClaims{"sub": "user-2"})

		result := ProcessTokens(&Tokens{AccessToken: accessToken, TokenType: "Bearer"})
		require.NotNil(t, result.Claims)
		assert.Equal(t, "user-2", result.Claims["sub"])
	})

	t.Run("opaque tokens yield nil claims, not an error", func(t *testing.T) {
		t.Parallel()
		result := ProcessTokens(&Tokens{AccessToken: "opaque-token", TokenType: "Bearer"})
		assert.Nil(t, result.Claims)
		assert.Equal(t, "opaque-token", result.AccessToken)
		assert.True(t, result.Expiry.IsZero())
	})
}

func TestOAuth2Token(t *testing.T) {
	t.Parallel()

	tokens := &Tokens{
		AccessToken:  "at-abc",
		TokenType:    "Bearer",
		RefreshToken: "rt-def",
		ExpiresIn:    120,
	}

	converted := tokens.OAuth2Token()
	assert.Equal(t, "at-abc", converted.AccessToken)
	assert.Equal(t, "Bearer", converted.TokenType)
	assert.Equal(t, "rt-def", converted.RefreshToken)
	assert.WithinDuration(t, time.Now().Add(2*time.Minute), converted.Expiry, 5*time.Second)
}

func TestNewTokenSource(t *testing.T) {
	t.Parallel()

	t.Run("returns the seeded token while it is valid", func(t *testing.T) {
		t.Parallel()
		source, err := NewTokenSource(
			context.Background(),
			"https://auth.example.com",
			nil,
			"client-123",
			"",
			&Tokens{AccessToken: "at-abc", TokenType: "Bearer", ExpiresIn: 3600},
		)
		require.NoError(t, err)

		token, err := source.Token()
		require.NoError(t, err)
		assert.Equal(t, "at-abc", token.AccessToken)
	})

	t.Run("refreshes an expired token against the token endpoint", func(t *testing.T) {
		t.Parallel()
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/token", r.URL.Path)
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "refresh_token", r.PostForm.Get("grant_type"))
			assert.Equal(t, "rt-def", r.PostForm.Get("refresh_token"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"access_token":"at-new","token_type":"Bearer","expires_in":3600}`))
		}))
		defer server.Close()

		source, err := NewTokenSource(
			context.Background(),
			server.URL,
			nil,
			"client-123",
			"",
			&Tokens{AccessToken: "at-old", TokenType: "Bearer", RefreshToken: "rt-def", ExpiresIn: 1},
		)
		require.NoError(t, err)

		// Let the seeded token expire so the source refreshes.
		time.Sleep(1100 * time.Millisecond)

		token, err := source.Token()
		require.NoError(t, err)
		assert.Equal(t, "at-new", token.AccessToken)
	})

	t.Run("requires client ID and tokens", func(t *testing.T) {
		t.Parallel()
		_, err := NewTokenSource(context.Background(), "https://auth.example.com", nil, "", "", &Tokens{})
		assert.ErrorContains(t, err, "client ID is required")

		_, err = NewTokenSource(context.Background(), "https://auth.example.com", nil, "client-123", "", nil)
		assert.ErrorContains(t, err, "tokens are required")
	})
}
