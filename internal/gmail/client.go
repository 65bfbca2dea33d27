package gmail

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"
	"golang.org/x/oauth2"
	gmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/teemow/gapikit/internal/google"
	"github.com/teemow/gapikit/internal/instrumentation"
	"github.com/teemow/gapikit/internal/logging"
	"github.com/teemow/gapikit/internal/paginate"
)

// DefaultUserID addresses the authenticated user.
const DefaultUserID = "me"

// Resource names used in span names and metric labels.
const (
	resourceDrafts      = "drafts"
	resourceMessages    = "messages"
	resourceAttachments = "attachments"
	resourceLabels      = "labels"
)

// Client wraps the Gmail users service.
type Client struct {
	svc      *gmail.Service
	account  string
	userID   string
	maxPages int
	metrics  *instrumentation.Metrics
	logger   *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithAccount records the account name the client acts for.
func WithAccount(account string) Option {
	return func(c *Client) { c.account = account }
}

// WithUserID sets the mailbox used when a method is called with an empty
// user ID. Defaults to "me".
func WithUserID(userID string) Option {
	return func(c *Client) {
		if userID != "" {
			c.userID = userID
		}
	}
}

// WithMaxPages bounds every paginated list call. Zero means unlimited.
func WithMaxPages(n int) Option {
	return func(c *Client) { c.maxPages = n }
}

// WithMetrics records Google API calls and pages on m. A nil m disables metrics.
func WithMetrics(m *instrumentation.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithLogger sets the logger for per-call debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func newClient(opts []Option) *Client {
	c := &Client{
		account: "default",
		userID:  DefaultUserID,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = logging.WithService(c.logger, instrumentation.ServiceGmail)
	return c
}

// NewClient creates a Client around an existing service.
func NewClient(svc *gmail.Service, opts ...Option) (*Client, error) {
	if svc == nil {
		return nil, fmt.Errorf("gmail service is required")
	}
	c := newClient(opts)
	c.svc = svc
	return c, nil
}

// NewClientForAccount creates a Client authenticated with the stored token of
// account.
func NewClientForAccount(ctx context.Context, conf *oauth2.Config, provider google.TokenProvider, account string, opts ...Option) (*Client, error) {
	c := newClient(append(opts, WithAccount(account)))

	httpClient, err := google.HTTPClientForAccount(ctx, conf, provider, account, google.ClientOptions{
		Metrics: c.metrics,
		Logger:  logging.NewSlogAdapter(c.logger),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get Google OAuth client for account %s: %w", account, err)
	}

	c.svc, err = gmail.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gmail service: %w", err)
	}
	return c, nil
}

// Account returns the account name this client is associated with.
func (c *Client) Account() string {
	return c.account
}

// UserID returns the default mailbox of this client.
func (c *Client) UserID() string {
	return c.userID
}

// Service returns the underlying API service for calls not covered here.
func (c *Client) Service() *gmail.Service {
	return c.svc
}

func (c *Client) user(userID string) string {
	if userID == "" {
		return c.userID
	}
	return userID
}

// call runs fn inside a span and records the outcome.
func (c *Client) call(ctx context.Context, resource, operation string, fn func(context.Context) error) error {
	start := time.Now()
	ctx, span := instrumentation.StartGoogleAPISpan(ctx, instrumentation.ServiceGmail, resource, operation)
	defer span.End()

	err := fn(ctx)

	status := instrumentation.StatusSuccess
	if err != nil {
		status = instrumentation.StatusError
		instrumentation.SetSpanError(span, err)
	} else {
		instrumentation.SetSpanSuccess(span)
	}
	op := resource + "." + operation
	c.metrics.RecordGoogleAPIOperation(ctx, instrumentation.ServiceGmail, op, status, time.Since(start))
	c.logger.Debug("gmail API call",
		logging.Operation(op),
		logging.Status(status),
		slog.Duration(logging.KeyDuration, time.Since(start)),
		logging.Err(err),
	)
	return err
}

// list fetches every page of a collection inside a single instrumented call.
func list[T any](ctx context.Context, c *Client, resource, operation string, fetch paginate.FetchFunc[T]) ([]T, error) {
	var items []T
	err := c.call(ctx, resource, operation, func(ctx context.Context) error {
		var err error
		items, err = paginate.All(ctx, fetch, c.pageOptions(ctx, resource+"."+operation)...)
		return err
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) pageOptions(ctx context.Context, op string) []paginate.Option {
	span := trace.SpanFromContext(ctx)
	return []paginate.Option{
		paginate.WithMaxPages(c.maxPages),
		paginate.WithPageHook(func(page, items int) {
			instrumentation.AddPageEvent(span, page, items)
			c.metrics.RecordPage(ctx, instrumentation.ServiceGmail, op, items)
			c.logger.Debug("page received", logging.Operation(op), logging.Page(page), logging.Items(items))
		}),
	}
}

func required(name, value string) error {
	if value == "" {
		return fmt.Errorf("%s is required", name)
	}
	return nil
}
