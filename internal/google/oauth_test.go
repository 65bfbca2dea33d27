package google

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestOAuthConfig(t *testing.T) {
	conf, err := OAuthConfig("id", "secret")
	require.NoError(t, err)
	assert.Equal(t, DefaultOAuthScopes, conf.Scopes)
	assert.Contains(t, conf.Endpoint.TokenURL, "google")

	conf, err = OAuthConfig("id", "secret", "scope-a")
	require.NoError(t, err)
	assert.Equal(t, []string{"scope-a"}, conf.Scopes)

	_, err = OAuthConfig("", "secret")
	assert.Error(t, err)
	_, err = OAuthConfig("id", "")
	assert.Error(t, err)
}

func TestHTTPClientForAccount_RefreshesAndPersists(t *testing.T) {
	var refreshes atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/token":
			refreshes.Add(1)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"access_token":"fresh","token_type":"Bearer","expires_in":3600}`))
		case "/api":
			if r.Header.Get("Authorization") != "Bearer fresh" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	provider := NewFileTokenProvider(t.TempDir())
	require.NoError(t, provider.SaveTokenForAccount("work", &oauth2.Token{
		AccessToken:  "stale",
		RefreshToken: "refresh",
		Expiry:       time.Now().Add(-time.Hour),
	}))

	conf := &oauth2.Config{
		ClientID:     "id",
		ClientSecret: "secret",
		Endpoint:     oauth2.Endpoint{TokenURL: srv.URL + "/token"},
	}
	client, err := HTTPClientForAccount(context.Background(), conf, provider, "work", ClientOptions{})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		resp, err := client.Get(srv.URL + "/api")
		require.NoError(t, err)
		_ = resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}
	assert.Equal(t, int32(1), refreshes.Load())

	stored, err := provider.GetTokenForAccount(context.Background(), "work")
	require.NoError(t, err)
	assert.Equal(t, "fresh", stored.AccessToken)
	assert.Equal(t, "refresh", stored.RefreshToken, "refresh token is kept when the server omits it")
}

func TestHTTPClientForAccount_Errors(t *testing.T) {
	conf, err := OAuthConfig("id", "secret")
	require.NoError(t, err)
	provider := NewFileTokenProvider(t.TempDir())

	_, err = HTTPClientForAccount(context.Background(), nil, provider, "work", ClientOptions{})
	assert.Error(t, err)
	_, err = HTTPClientForAccount(context.Background(), conf, nil, "work", ClientOptions{})
	assert.Error(t, err)
	_, err = HTTPClientForAccount(context.Background(), conf, provider, "work", ClientOptions{})
	assert.ErrorIs(t, err, ErrNoToken)
}
