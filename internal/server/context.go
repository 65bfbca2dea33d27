package server

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/oauth2"

	"github.com/teemow/gapikit/internal/calendar"
	"github.com/teemow/gapikit/internal/config"
	"github.com/teemow/gapikit/internal/gmail"
	"github.com/teemow/gapikit/internal/google"
	"github.com/teemow/gapikit/internal/instrumentation"
	"github.com/teemow/gapikit/internal/logging"
)

// ServerContext holds the context for the MCP server
type ServerContext struct {
	ctx             context.Context
	cancel          context.CancelFunc
	cfg             config.Config
	tokenProvider   google.TokenProvider
	oauthConfig     *oauth2.Config
	provider        *instrumentation.Provider
	auditLogger     *instrumentation.AuditLogger
	logger          *slog.Logger
	calendarClients map[string]*calendar.Client // Maps account name to Calendar client
	gmailClients    map[string]*gmail.Client    // Maps account name to Gmail client
	mu              sync.RWMutex
	shutdown        bool
}

// Option configures a ServerContext.
type Option func(*ServerContext)

// WithTokenProvider overrides the file token provider derived from the config.
func WithTokenProvider(p google.TokenProvider) Option {
	return func(sc *ServerContext) { sc.tokenProvider = p }
}

// WithInstrumentationProvider enables tool metrics and the audit log.
func WithInstrumentationProvider(p *instrumentation.Provider) Option {
	return func(sc *ServerContext) { sc.provider = p }
}

func WithLogger(logger *slog.Logger) Option {
	return func(sc *ServerContext) {
		if logger != nil {
			sc.logger = logger
		}
	}
}

// NewServerContext creates a new server context. Clients are created lazily
// on first use, so a missing token only fails the tools that need it.
func NewServerContext(ctx context.Context, cfg config.Config, opts ...Option) (*ServerContext, error) {
	shutdownCtx, cancel := context.WithCancel(ctx)

	sc := &ServerContext{
		ctx:             shutdownCtx,
		cancel:          cancel,
		cfg:             cfg,
		logger:          slog.Default(),
		calendarClients: make(map[string]*calendar.Client),
		gmailClients:    make(map[string]*gmail.Client),
	}
	for _, opt := range opts {
		opt(sc)
	}

	if sc.tokenProvider == nil {
		dir := cfg.TokenDir
		if dir == "" {
			dir = google.DefaultTokenDir()
		}
		sc.tokenProvider = google.NewFileTokenProvider(dir)
	}
	if sc.provider != nil {
		sc.auditLogger = instrumentation.NewAuditLogger(sc.logger, cfg.Instrumentation.AuditLogging)
	}

	return sc, nil
}

// Context returns the server context
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Config returns the configuration the server was started with.
func (sc *ServerContext) Config() config.Config {
	return sc.cfg
}

func (sc *ServerContext) Logger() *slog.Logger {
	return sc.logger
}

// DefaultAccount returns the account used when a tool call names none.
func (sc *ServerContext) DefaultAccount() string {
	if sc.cfg.Account == "" {
		return config.DefaultAccount
	}
	return sc.cfg.Account
}

// HasToken reports whether a token is stored for account.
func (sc *ServerContext) HasToken(account string) bool {
	return sc.tokenProvider.HasTokenForAccount(account)
}

// Metrics returns the metrics recorder, or nil when instrumentation is off.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	if sc.provider == nil {
		return nil
	}
	return sc.provider.Metrics()
}

// AuditLogger returns the tool audit logger, or nil when instrumentation is off.
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger {
	return sc.auditLogger
}

// oauth builds the OAuth client configuration on first use. Caller holds sc.mu.
func (sc *ServerContext) oauth() (*oauth2.Config, error) {
	if sc.oauthConfig != nil {
		return sc.oauthConfig, nil
	}
	if err := sc.cfg.ValidateCredentials(); err != nil {
		return nil, err
	}
	conf, err := google.OAuthConfig(sc.cfg.ClientID, sc.cfg.ClientSecret)
	if err != nil {
		return nil, err
	}
	sc.oauthConfig = conf
	return conf, nil
}

func (sc *ServerContext) checkAccount(account string) error {
	if sc.shutdown {
		return fmt.Errorf("server is shutting down")
	}
	if err := google.ValidateAccountName(account); err != nil {
		return err
	}
	if !sc.tokenProvider.HasTokenForAccount(account) {
		return fmt.Errorf("no Google token for account %q, run 'gapikit auth import --account %s' first", account, account)
	}
	return nil
}

// CalendarClientForAccount returns the Calendar client for a specific account.
// Creates and caches the client if it doesn't exist yet.
func (sc *ServerContext) CalendarClientForAccount(account string) (*calendar.Client, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if client, ok := sc.calendarClients[account]; ok {
		return client, nil
	}
	if err := sc.checkAccount(account); err != nil {
		return nil, err
	}
	conf, err := sc.oauth()
	if err != nil {
		return nil, err
	}

	client, err := calendar.NewClientForAccount(sc.ctx, conf, sc.tokenProvider, account,
		calendar.WithTimeZone(sc.cfg.DefaultTimeZone),
		calendar.WithMaxPages(sc.cfg.MaxPages),
		calendar.WithMetrics(sc.Metrics()),
		calendar.WithLogger(logging.WithAccount(sc.logger, account)),
	)
	if err != nil {
		sc.logger.Warn("failed to create Calendar client", logging.Account(account), logging.Err(err))
		return nil, err
	}

	sc.calendarClients[account] = client
	return client, nil
}

// SetCalendarClientForAccount sets the Calendar client for a specific account
func (sc *ServerContext) SetCalendarClientForAccount(account string, client *calendar.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.calendarClients[account] = client
}

// GmailClientForAccount returns the Gmail client for a specific account.
// Creates and caches the client if it doesn't exist yet.
func (sc *ServerContext) GmailClientForAccount(account string) (*gmail.Client, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if client, ok := sc.gmailClients[account]; ok {
		return client, nil
	}
	if err := sc.checkAccount(account); err != nil {
		return nil, err
	}
	conf, err := sc.oauth()
	if err != nil {
		return nil, err
	}

	client, err := gmail.NewClientForAccount(sc.ctx, conf, sc.tokenProvider, account,
		gmail.WithUserID(sc.cfg.UserID),
		gmail.WithMaxPages(sc.cfg.MaxPages),
		gmail.WithMetrics(sc.Metrics()),
		gmail.WithLogger(logging.WithAccount(sc.logger, account)),
	)
	if err != nil {
		sc.logger.Warn("failed to create Gmail client", logging.Account(account), logging.Err(err))
		return nil, err
	}

	sc.gmailClients[account] = client
	return client, nil
}

// SetGmailClientForAccount sets the Gmail client for a specific account
func (sc *ServerContext) SetGmailClientForAccount(account string, client *gmail.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.gmailClients[account] = client
}

// IsShutdown returns whether the server has been shutdown
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown cancels the server context and drops all cached clients.
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	clear(sc.calendarClients)
	clear(sc.gmailClients)
	return nil
}
