package paging

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"moviehub/internal/domain"
)

const (
	// FirstPage is the cursor loaded when none is given.
	FirstPage = 1
	// DefaultPageSize is what the remote API returns per page; used as a
	// display hint only, the cursor arithmetic never depends on it.
	DefaultPageSize = 20
)

// FetchFunc loads the raw items of one upstream page.
type FetchFunc[T any] func(ctx context.Context, page int) ([]T, error)

// KeyFunc returns the identity key used to drop repeated items within a
// session. An empty key means the item has no identity and is never
// treated as a duplicate.
type KeyFunc[T any] func(item T) string

// Paginator turns a page-numbered upstream listing into a cursor-linked
// session of pages. Loads are serialized: at most one fetch per instance is
// in flight. Identical cursors are not coalesced.
type Paginator[T any] struct {
	fetch FetchFunc[T]
	key   KeyFunc[T]

	loadMu sync.Mutex

	mu     sync.RWMutex
	pages  []domain.Page[T]
	seen   map[string]struct{}
	failed *int
	// failedRefresh is set when the load behind failed was a Refresh, so
	// Retry invalidates the session again instead of appending.
	failedRefresh bool
	closed        bool
}

func New[T any](fetch FetchFunc[T], key KeyFunc[T]) *Paginator[T] {
	if key == nil {
		key = func(T) string { return "" }
	}
	return &Paginator[T]{
		fetch: fetch,
		key:   key,
		seen:  make(map[string]struct{}),
	}
}

// LoadPage fetches the page at cursor (nil = first page) and appends its
// new items to the session. On failure the session is left untouched and
// the cursor is remembered for Retry.
func (p *Paginator[T]) LoadPage(ctx context.Context, cursor *int) (domain.Page[T], error) {
	page := FirstPage
	if cursor != nil {
		page = *cursor
	}
	if page < FirstPage {
		return domain.Page[T]{}, fmt.Errorf("%w: %d", ErrInvalidCursor, page)
	}

	p.loadMu.Lock()
	defer p.loadMu.Unlock()

	if p.isClosed() {
		return domain.Page[T]{}, ErrSessionClosed
	}

	raw, err := p.fetch(ctx, page)

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return domain.Page[T]{}, ErrSessionClosed
	}
	if err != nil {
		p.fail(page, false)
		return domain.Page[T]{}, err
	}
	if p.failed != nil && *p.failed == page && !p.failedRefresh {
		p.failed = nil
	}

	result := buildPage(page, raw, p.key, p.seen)
	p.store(result)
	return result, nil
}

// Retry re-runs the last load that failed. A failed Refresh is retried as
// a refresh of the same page.
func (p *Paginator[T]) Retry(ctx context.Context) (domain.Page[T], error) {
	p.mu.RLock()
	if p.failed == nil {
		p.mu.RUnlock()
		return domain.Page[T]{}, ErrNothingToRetry
	}
	cursor, refresh := *p.failed, p.failedRefresh
	p.mu.RUnlock()

	if refresh {
		return p.reload(ctx, cursor)
	}
	return p.LoadPage(ctx, &cursor)
}

// Refresh invalidates the session and reloads starting at the page closest
// to anchor (an index into Items). A nil anchor restarts at the first page.
// The previous pages stay visible until the reload succeeds.
func (p *Paginator[T]) Refresh(ctx context.Context, anchor *int) (domain.Page[T], error) {
	var key *int
	if anchor != nil {
		key = p.RefreshKey(*anchor)
	}
	page := FirstPage
	if key != nil {
		page = *key
	}
	return p.reload(ctx, page)
}

// reload replaces every loaded page with the one fetched at page.
func (p *Paginator[T]) reload(ctx context.Context, page int) (domain.Page[T], error) {
	p.loadMu.Lock()
	defer p.loadMu.Unlock()

	if p.isClosed() {
		return domain.Page[T]{}, ErrSessionClosed
	}

	raw, err := p.fetch(ctx, page)

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return domain.Page[T]{}, ErrSessionClosed
	}
	if err != nil {
		p.fail(page, true)
		return domain.Page[T]{}, err
	}

	seen := make(map[string]struct{})
	result := buildPage(page, raw, p.key, seen)
	p.seen = seen
	p.pages = []domain.Page[T]{result}
	p.failed = nil
	p.failedRefresh = false
	return result, nil
}

// fail records page for Retry. Callers hold mu.
func (p *Paginator[T]) fail(page int, refresh bool) {
	p.failed = &page
	p.failedRefresh = refresh
}

// RefreshKey picks the cursor of the loaded page nearest to the item at
// position anchor. It returns nil when nothing is loaded yet.
func (p *Paginator[T]) RefreshKey(anchor int) *int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if len(p.pages) == 0 {
		return nil
	}
	if anchor < 0 {
		anchor = 0
	}

	closest := p.pages[len(p.pages)-1]
	offset := 0
	for _, pg := range p.pages {
		if anchor < offset+len(pg.Items) {
			closest = pg
			break
		}
		offset += len(pg.Items)
	}

	switch {
	case closest.PrevCursor != nil:
		key := *closest.PrevCursor + 1
		return &key
	case closest.NextCursor != nil:
		key := *closest.NextCursor - 1
		return &key
	default:
		return nil
	}
}

// Close ends the session. Loads still in flight complete but their
// results are discarded.
func (p *Paginator[T]) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	p.pages = nil
	p.seen = nil
	p.failed = nil
	p.failedRefresh = false
}

func (p *Paginator[T]) Closed() bool {
	return p.isClosed()
}

func (p *Paginator[T]) FailedCursor() (int, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.failed == nil {
		return 0, false
	}
	return *p.failed, true
}

// Pages returns a snapshot of the loaded pages in cursor order.
func (p *Paginator[T]) Pages() []domain.Page[T] {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]domain.Page[T], len(p.pages))
	for i, pg := range p.pages {
		pg.Items = append([]T(nil), pg.Items...)
		out[i] = pg
	}
	return out
}

// Items returns the visible, de-duplicated items of all loaded pages.
func (p *Paginator[T]) Items() []T {
	p.mu.RLock()
	defer p.mu.RUnlock()

	var out []T
	for _, pg := range p.pages {
		out = append(out, pg.Items...)
	}
	return out
}

func (p *Paginator[T]) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	n := 0
	for _, pg := range p.pages {
		n += len(pg.Items)
	}
	return n
}

func (p *Paginator[T]) isClosed() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.closed
}

// store inserts pg in cursor order. Reloading an already present cursor
// appends whatever new items it produced to that page.
func (p *Paginator[T]) store(pg domain.Page[T]) {
	i := sort.Search(len(p.pages), func(i int) bool { return p.pages[i].Cursor >= pg.Cursor })
	if i < len(p.pages) && p.pages[i].Cursor == pg.Cursor {
		existing := &p.pages[i]
		existing.Items = append(existing.Items, pg.Items...)
		existing.NextCursor = pg.NextCursor
		return
	}
	p.pages = append(p.pages, domain.Page[T]{})
	copy(p.pages[i+1:], p.pages[i:])
	p.pages[i] = pg
}

// buildPage applies the cursor arithmetic to the raw upstream response and
// drops items whose key was already seen. The cursors only look at raw.
func buildPage[T any](page int, raw []T, key KeyFunc[T], seen map[string]struct{}) domain.Page[T] {
	result := domain.Page[T]{
		Cursor:     page,
		Items:      make([]T, 0, len(raw)),
		PrevCursor: prevCursor(page),
		NextCursor: nextCursor(page, len(raw)),
	}
	for _, item := range raw {
		k := key(item)
		if k != "" {
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
		}
		result.Items = append(result.Items, item)
	}
	return result
}

func prevCursor(page int) *int {
	if page <= FirstPage {
		return nil
	}
	prev := page - 1
	return &prev
}

func nextCursor(page, rawCount int) *int {
	if rawCount == 0 {
		return nil
	}
	next := page + 1
	return &next
}
