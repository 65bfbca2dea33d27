package paginate

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource serves a fixed sequence of pages and records the tokens it saw.
type fakeSource struct {
	pages  []Page[string]
	failAt int // 1-based page number that fails, 0 for never
	tokens []string
}

func (f *fakeSource) fetch(_ context.Context, token string) (Page[string], error) {
	f.tokens = append(f.tokens, token)
	n := len(f.tokens)
	if f.failAt == n {
		return Page[string]{}, errors.New("backend unavailable")
	}
	return f.pages[n-1], nil
}

func TestAll(t *testing.T) {
	tests := []struct {
		name         string
		pages        []Page[string]
		want         []string
		wantRequests int
		wantTokens   []string
	}{
		{
			name: "three pages with trailing empty page",
			pages: []Page[string]{
				{Items: []string{"a", "b"}, NextPageToken: "t1"},
				{Items: []string{"c"}, NextPageToken: "t2"},
				{Items: []string{}},
			},
			want:         []string{"a", "b", "c"},
			wantRequests: 3,
			wantTokens:   []string{"", "t1", "t2"},
		},
		{
			name: "single page without token",
			pages: []Page[string]{
				{Items: []string{"x"}},
			},
			want:         []string{"x"},
			wantRequests: 1,
			wantTokens:   []string{""},
		},
		{
			name: "missing items in the middle do not stop the fetch",
			pages: []Page[string]{
				{Items: []string{"a"}, NextPageToken: "t1"},
				{Items: nil, NextPageToken: "t2"},
				{Items: []string{"b", "c"}},
			},
			want:         []string{"a", "b", "c"},
			wantRequests: 3,
			wantTokens:   []string{"", "t1", "t2"},
		},
		{
			name: "empty collection",
			pages: []Page[string]{
				{},
			},
			want:         []string{},
			wantRequests: 1,
			wantTokens:   []string{""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &fakeSource{pages: tt.pages}

			got, err := All(context.Background(), src.fetch)
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got)
			assert.Len(t, src.tokens, tt.wantRequests)
			assert.Equal(t, tt.wantTokens, src.tokens)
		})
	}
}

func TestAll_PreservesOrderAcrossManyPages(t *testing.T) {
	sizes := []int{3, 0, 5, 1, 4}
	var pages []Page[int]
	next := 0
	for i, k := range sizes {
		var items []int
		for j := 0; j < k; j++ {
			items = append(items, next)
			next++
		}
		p := Page[int]{Items: items}
		if i < len(sizes)-1 {
			p.NextPageToken = string(rune('a' + i))
		}
		pages = append(pages, p)
	}

	requests := 0
	fetch := func(_ context.Context, _ string) (Page[int], error) {
		p := pages[requests]
		requests++
		return p, nil
	}

	got, err := All(context.Background(), fetch)
	require.NoError(t, err)
	assert.Equal(t, len(sizes), requests)
	require.Len(t, got, next)
	for i, v := range got {
		assert.Equal(t, i, v)
	}
}

func TestAll_FailureDiscardsPartialResult(t *testing.T) {
	src := &fakeSource{
		pages: []Page[string]{
			{Items: []string{"a"}, NextPageToken: "t1"},
			{Items: []string{"b"}, NextPageToken: "t2"},
		},
		failAt: 2,
	}

	got, err := All(context.Background(), src.fetch)
	require.Error(t, err)
	assert.Nil(t, got)
	assert.Contains(t, err.Error(), "failed to fetch page 2")
	assert.Contains(t, err.Error(), "backend unavailable")
	assert.Len(t, src.tokens, 2)
}

func TestAll_ErrorIsUnwrappable(t *testing.T) {
	sentinel := errors.New("quota")
	fetch := func(_ context.Context, _ string) (Page[string], error) {
		return Page[string]{}, sentinel
	}

	_, err := All(context.Background(), fetch)
	assert.ErrorIs(t, err, sentinel)
}

func TestAll_MaxPages(t *testing.T) {
	calls := 0
	fetch := func(_ context.Context, _ string) (Page[string], error) {
		calls++
		return Page[string]{Items: []string{"loop"}, NextPageToken: "same"}, nil
	}

	got, err := All(context.Background(), fetch, WithMaxPages(3))
	assert.ErrorIs(t, err, ErrTooManyPages)
	assert.Nil(t, got)
	assert.Equal(t, 3, calls)
}

func TestAll_ContextCancelledBetweenPages(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	calls := 0
	fetch := func(_ context.Context, _ string) (Page[string], error) {
		calls++
		cancel()
		return Page[string]{Items: []string{"a"}, NextPageToken: "t1"}, nil
	}

	got, err := All(ctx, fetch)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, got)
	assert.Equal(t, 1, calls)
}

func TestAll_NilFetch(t *testing.T) {
	_, err := All[string](context.Background(), nil)
	assert.Error(t, err)
}

func TestAll_PageHook(t *testing.T) {
	src := &fakeSource{
		pages: []Page[string]{
			{Items: []string{"a", "b"}, NextPageToken: "t1"},
			{Items: []string{"c"}},
		},
	}

	type call struct{ page, items int }
	var calls []call
	_, err := All(context.Background(), src.fetch, WithPageHook(func(page, items int) {
		calls = append(calls, call{page, items})
	}))
	require.NoError(t, err)
	assert.Equal(t, []call{{1, 2}, {2, 1}}, calls)
}

func TestEach(t *testing.T) {
	src := &fakeSource{
		pages: []Page[string]{
			{Items: []string{"a", "b"}, NextPageToken: "t1"},
			{Items: []string{"c"}},
		},
	}

	var seen []string
	err := Each(context.Background(), src.fetch, func(s string) error {
		seen = append(seen, s)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, seen)
}

func TestEach_StopsOnCallbackError(t *testing.T) {
	src := &fakeSource{
		pages: []Page[string]{
			{Items: []string{"a", "b"}, NextPageToken: "t1"},
			{Items: []string{"c"}},
		},
	}

	stop := errors.New("stop")
	err := Each(context.Background(), src.fetch, func(s string) error {
		if s == "b" {
			return stop
		}
		return nil
	})
	assert.ErrorIs(t, err, stop)
	assert.Len(t, src.tokens, 1, "second page must not be requested")
}

func TestGo_DeliversExactlyOnce(t *testing.T) {
	src := &fakeSource{
		pages: []Page[string]{
			{Items: []string{"a"}, NextPageToken: "t1"},
			{Items: []string{"b"}},
		},
	}

	ch := Go(context.Background(), src.fetch)

	res, ok := <-ch
	require.True(t, ok)
	require.NoError(t, res.Err)
	assert.Equal(t, []string{"a", "b"}, res.Items)

	_, ok = <-ch
	assert.False(t, ok, "channel must be closed after the single result")
}

func TestGo_DeliversFailure(t *testing.T) {
	src := &fakeSource{
		pages:  []Page[string]{{Items: []string{"a"}}},
		failAt: 1,
	}

	res := <-Go(context.Background(), src.fetch)
	assert.Error(t, res.Err)
	assert.Nil(t, res.Items)
}

func TestAll_IndependentFetchesAreIsolated(t *testing.T) {
	makeFetch := func(prefix string, pages int) FetchFunc[string] {
		return func(_ context.Context, token string) (Page[string], error) {
			n := 0
			if token != "" {
				n = int(token[0] - '0')
			}
			p := Page[string]{Items: []string{prefix + string(rune('0'+n))}}
			if n+1 < pages {
				p.NextPageToken = string(rune('0' + n + 1))
			}
			return p, nil
		}
	}

	var wg sync.WaitGroup
	results := make([][]string, 2)
	for i, prefix := range []string{"cal-", "mail-"} {
		wg.Add(1)
		go func(i int, prefix string) {
			defer wg.Done()
			items, err := All(context.Background(), makeFetch(prefix, 3+i))
			assert.NoError(t, err)
			results[i] = items
		}(i, prefix)
	}
	wg.Wait()

	assert.Equal(t, []string{"cal-0", "cal-1", "cal-2"}, results[0])
	assert.Equal(t, []string{"mail-0", "mail-1", "mail-2", "mail-3"}, results[1])
}
