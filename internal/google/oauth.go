package google

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/teemow/gapikit/internal/instrumentation"
	"github.com/teemow/gapikit/internal/logging"
)

// OAuthConfig returns the OAuth2 client configuration for the Google
// endpoint. Without scopes, DefaultOAuthScopes are used.
func OAuthConfig(clientID, clientSecret string, scopes ...string) (*oauth2.Config, error) {
	if clientID == "" {
		return nil, fmt.Errorf("client ID is required")
	}
	if clientSecret == "" {
		return nil, fmt.Errorf("client secret is required")
	}
	if len(scopes) == 0 {
		scopes = DefaultOAuthScopes
	}
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       scopes,
	}, nil
}

// ClientOptions tunes the HTTP client built by HTTPClientForAccount.
type ClientOptions struct {
	// Metrics records outgoing requests and token refreshes. May be nil.
	Metrics *instrumentation.Metrics

	// Logger receives refresh and persistence messages. Defaults to slog.Default().
	Logger logging.Logger

	// Base is the underlying transport. Defaults to an HTTP/1.1-only clone of
	// http.DefaultTransport.
	Base http.RoundTripper
}

// HTTPClientForAccount returns an authenticated HTTP client for account.
// Tokens refreshed by the client are written back through provider when it
// implements TokenSaver.
func HTTPClientForAccount(ctx context.Context, conf *oauth2.Config, provider TokenProvider, account string, opts ClientOptions) (*http.Client, error) {
	if conf == nil {
		return nil, fmt.Errorf("OAuth config is required")
	}
	if provider == nil {
		return nil, fmt.Errorf("token provider is required")
	}

	token, err := provider.GetTokenForAccount(ctx, account)
	if err != nil {
		return nil, err
	}

	if opts.Logger == nil {
		opts.Logger = logging.NewSlogAdapter(slog.Default())
	}
	base := opts.Base
	if base == nil {
		base = http1Transport()
	}
	base = instrumentation.NewTransport(base, opts.Metrics)

	// Token refresh requests go through the same transport.
	refreshCtx := context.WithValue(context.WithoutCancel(ctx), oauth2.HTTPClient, &http.Client{Transport: base})
	source := &persistingTokenSource{
		base:    conf.TokenSource(refreshCtx, token),
		last:    token.AccessToken,
		account: account,
		opts:    opts,
	}
	if saver, ok := provider.(TokenSaver); ok {
		source.saver = saver
	}

	return &http.Client{
		Transport: &oauth2.Transport{
			Source: oauth2.ReuseTokenSource(token, source),
			Base:   base,
		},
	}, nil
}

// http1Transport avoids HTTP/2 stream errors seen with long-lived Google API
// connections.
func http1Transport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.ForceAttemptHTTP2 = false
	return t
}

// persistingTokenSource saves every token whose access token differs from the
// last one seen.
type persistingTokenSource struct {
	base    oauth2.TokenSource
	saver   TokenSaver
	account string
	opts    ClientOptions

	mu   sync.Mutex
	last string
}

func (s *persistingTokenSource) Token() (*oauth2.Token, error) {
	token, err := s.base.Token()
	if err != nil {
		s.opts.Metrics.RecordTokenRefresh(context.Background(), instrumentation.RefreshResultFailure)
		return nil, fmt.Errorf("failed to refresh token for account %q: %w", s.account, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if token.AccessToken == s.last {
		return token, nil
	}
	s.last = token.AccessToken
	s.opts.Metrics.RecordTokenRefresh(context.Background(), instrumentation.RefreshResultSuccess)
	s.opts.Logger.Debug("access token refreshed",
		logging.KeyAccount, s.account,
		"token", logging.SanitizeToken(token.AccessToken),
	)

	if s.saver != nil {
		if err := s.saver.SaveTokenForAccount(s.account, token); err != nil {
			s.opts.Logger.Warn("failed to persist refreshed token", logging.KeyAccount, s.account, logging.KeyError, err)
		}
	}
	return token, nil
}
