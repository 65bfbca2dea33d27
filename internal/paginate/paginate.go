package paginate

import (
	"context"
	"errors"
	"fmt"
)

// ErrTooManyPages is returned when a fetch exceeds the limit set with WithMaxPages.
var ErrTooManyPages = errors.New("page limit exceeded")

// Page is one unit of data returned by a single list request.
type Page[T any] struct {
	// Items in the order the remote service returned them. May be nil.
	Items []T

	// NextPageToken is empty on the last page.
	NextPageToken string
}

// FetchFunc issues a single page request. pageToken is empty for the first page.
// Fixed query parameters (collection identifier, filters) are captured by the closure.
type FetchFunc[T any] func(ctx context.Context, pageToken string) (Page[T], error)

// Result carries the outcome of an asynchronous fetch started with Go.
type Result[T any] struct {
	Items []T
	Err   error
}

type options struct {
	maxPages int
	onPage   func(page, items int)
}

// Option configures a fetch.
type Option func(*options)

// WithMaxPages limits the number of page requests. Zero means unlimited.
func WithMaxPages(n int) Option {
	return func(o *options) {
		o.maxPages = n
	}
}

// WithPageHook registers fn to be called after every page is received, with the
// 1-based page number and the number of items on that page.
func WithPageHook(fn func(page, items int)) Option {
	return func(o *options) {
		o.onPage = fn
	}
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// All retrieves every item of a paged collection by following the continuation
// token until it is absent. Pages are requested strictly one after another and
// items are concatenated in page-then-intra-page order.
//
// The returned slice is never nil on success. If any page request fails, the
// error is returned and the partially accumulated items are discarded.
func All[T any](ctx context.Context, fetch FetchFunc[T], opts ...Option) ([]T, error) {
	result := make([]T, 0)
	err := walk(ctx, fetch, buildOptions(opts), func(items []T) error {
		result = append(result, items...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Each calls fn for every item of a paged collection, in order, fetching the
// next page only after all items of the current page were handled. It stops at
// the first error returned by fn or by a page request.
func Each[T any](ctx context.Context, fetch FetchFunc[T], fn func(T) error, opts ...Option) error {
	return walk(ctx, fetch, buildOptions(opts), func(items []T) error {
		for _, item := range items {
			if err := fn(item); err != nil {
				return err
			}
		}
		return nil
	})
}

// Go starts All in a new goroutine. The returned channel receives exactly one
// Result and is then closed.
func Go[T any](ctx context.Context, fetch FetchFunc[T], opts ...Option) <-chan Result[T] {
	ch := make(chan Result[T], 1)
	go func() {
		defer close(ch)
		items, err := All(ctx, fetch, opts...)
		ch <- Result[T]{Items: items, Err: err}
	}()
	return ch
}

func walk[T any](ctx context.Context, fetch FetchFunc[T], o options, sink func([]T) error) error {
	if fetch == nil {
		return errors.New("fetch function is required")
	}

	token := ""
	for page := 1; ; page++ {
		if o.maxPages > 0 && page > o.maxPages {
			return fmt.Errorf("%w: more than %d pages", ErrTooManyPages, o.maxPages)
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		resp, err := fetch(ctx, token)
		if err != nil {
			return fmt.Errorf("failed to fetch page %d: %w", page, err)
		}
		if o.onPage != nil {
			o.onPage(page, len(resp.Items))
		}
		if err := sink(resp.Items); err != nil {
			return err
		}

		if resp.NextPageToken == "" {
			return nil
		}
		token = resp.NextPageToken
	}
}
