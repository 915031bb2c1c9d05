package catalog

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"moviehub/internal/domain"
	"moviehub/internal/paging"
)

// Session ids as used by the registry and the sessions endpoints.
func ListingSessionID(kind domain.ListingKind) string { return "listing:" + string(kind) }
func SearchSessionID(query string) string             { return "search:" + query }
func ImagesSessionID(movieID int) string              { return "images:" + strconv.Itoa(movieID) }
func CreditsSessionID(movieID int) string             { return "credits:" + strconv.Itoa(movieID) }

type session interface {
	Close()
	Closed() bool
	FailedCursor() (int, bool)
}

type entry struct {
	s     session
	retry func(ctx context.Context) (any, error)
}

// registry holds the open paging sessions. A session is created on first
// use and lives until it is closed explicitly.
type registry struct {
	mu       sync.Mutex
	sessions map[string]entry
	shutdown bool
}

func newRegistry() *registry {
	return &registry{sessions: make(map[string]entry)}
}

// open returns the live session for id, creating it with fetch and key
// when it does not exist yet or was closed.
func open[T any](r *registry, id string, fetch paging.FetchFunc[T], key paging.KeyFunc[T]) (*paging.Paginator[T], error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.shutdown {
		return nil, ErrServiceShutdown
	}
	if e, ok := r.sessions[id]; ok && !e.s.Closed() {
		if p, ok := e.s.(*paging.Paginator[T]); ok {
			return p, nil
		}
		return nil, fmt.Errorf("session %s holds another item type", id)
	}

	p := paging.New(fetch, key)
	r.sessions[id] = entry{
		s: p,
		retry: func(ctx context.Context) (any, error) {
			return p.Retry(ctx)
		},
	}
	return p, nil
}

func (r *registry) get(id string) (entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[id]
	return e, ok
}

func (r *registry) close(id string) bool {
	r.mu.Lock()
	e, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()

	if ok {
		e.s.Close()
	}
	return ok
}

// closeMatching closes every session whose id starts with prefix except
// keep.
func (r *registry) closeMatching(prefix, keep string) {
	r.mu.Lock()
	var victims []session
	for id, e := range r.sessions {
		if strings.HasPrefix(id, prefix) && id != keep {
			victims = append(victims, e.s)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, s := range victims {
		s.Close()
	}
}

func (r *registry) ids() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.sessions))
	for id := range r.sessions {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func (r *registry) closeAll() {
	r.mu.Lock()
	r.shutdown = true
	all := r.sessions
	r.sessions = make(map[string]entry)
	r.mu.Unlock()

	for _, e := range all {
		e.s.Close()
	}
}
