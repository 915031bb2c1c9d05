package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"moviehub/internal/domain"
	"moviehub/internal/logger"
	"moviehub/internal/paging"
	"moviehub/internal/pkg/state"
)

// HomeSection is one row of the home screen. Exactly one of Page and Err
// is set.
type HomeSection struct {
	Kind domain.ListingKind
	Page domain.Page[domain.ListingItem]
	Err  error
}

// SearchState is what the search screen shows about the current query.
type SearchState struct {
	Query     string `json:"query"`
	Loaded    int    `json:"loaded"`
	Exhausted bool   `json:"exhausted"`
}

type Service struct {
	remote    Remote
	favorites FavoriteChecker
	sessions  *registry
	search    *state.Holder[SearchState]
	log       *slog.Logger

	// searchMu makes switching the current query and opening its session
	// one step.
	searchMu sync.Mutex
}

func NewService(remote Remote, favorites FavoriteChecker) *Service {
	return &Service{
		remote:    remote,
		favorites: favorites,
		sessions:  newRegistry(),
		search:    state.NewHolder(SearchState{}),
		log:       logger.With("component", "catalog"),
	}
}

func (s *Service) listingSession(kind domain.ListingKind) (*paging.Paginator[domain.ListingItem], error) {
	fetch := func(ctx context.Context, page int) ([]domain.ListingItem, error) {
		return s.remote.Listing(ctx, kind, page)
	}
	return open(s.sessions, ListingSessionID(kind), fetch, paging.ListingKey)
}

// Home reloads the first page of every listing concurrently. A failing
// listing is reported in its own section and does not fail the others.
func (s *Service) Home(ctx context.Context) []HomeSection {
	sections := make([]HomeSection, len(domain.ListingKinds))

	g, gctx := errgroup.WithContext(ctx)
	for i, kind := range domain.ListingKinds {
		sections[i].Kind = kind
		g.Go(func() error {
			p, err := s.listingSession(kind)
			if err != nil {
				sections[i].Err = err
				return nil
			}
			page, err := p.Refresh(gctx, nil)
			if err != nil {
				s.log.Warn("home listing failed", "kind", kind, "error", err)
				sections[i].Err = err
				return nil
			}
			sections[i].Page = page
			return nil
		})
	}
	_ = g.Wait()

	return sections
}

// Listing loads the page at cursor of the given listing (nil = first).
func (s *Service) Listing(ctx context.Context, kind domain.ListingKind, cursor *int) (domain.Page[domain.ListingItem], error) {
	p, err := s.listingSession(kind)
	if err != nil {
		return domain.Page[domain.ListingItem]{}, err
	}
	return p.LoadPage(ctx, cursor)
}

// RefreshListing drops what was loaded for kind and reloads around the
// item position anchor.
func (s *Service) RefreshListing(ctx context.Context, kind domain.ListingKind, anchor *int) (domain.Page[domain.ListingItem], error) {
	p, err := s.listingSession(kind)
	if err != nil {
		return domain.Page[domain.ListingItem]{}, err
	}
	return p.Refresh(ctx, anchor)
}

// Search pages through results for query. Starting a new query closes the
// session of the previous one.
func (s *Service) Search(ctx context.Context, query string, cursor *int) (domain.Page[domain.SearchResult], error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return domain.Page[domain.SearchResult]{}, ErrEmptyQuery
	}

	id := SearchSessionID(query)
	fetch := func(ctx context.Context, page int) ([]domain.SearchResult, error) {
		return s.remote.Search(ctx, query, page)
	}

	s.searchMu.Lock()
	if s.search.Get().Query != query {
		s.sessions.closeMatching("search:", id)
		s.search.Set(SearchState{Query: query})
	}
	p, err := open(s.sessions, id, fetch, paging.SearchKey)
	s.searchMu.Unlock()
	if err != nil {
		return domain.Page[domain.SearchResult]{}, err
	}

	page, err := p.LoadPage(ctx, cursor)
	if err != nil {
		return page, err
	}
	s.search.Update(func(st SearchState) SearchState {
		if st.Query != query {
			return st
		}
		st.Loaded = p.Len()
		st.Exhausted = page.NextCursor == nil
		return st
	})
	return page, nil
}

func (s *Service) SearchState() SearchState {
	return s.search.Get()
}

// WatchSearch streams the search screen state until ctx is done.
func (s *Service) WatchSearch(ctx context.Context) <-chan SearchState {
	return s.search.Subscribe(ctx)
}

// Images pages through the backdrops of a movie. The upstream returns
// them all at once, so the second page is always empty.
func (s *Service) Images(ctx context.Context, movieID int, cursor *int) (domain.Page[domain.BackdropImage], error) {
	if movieID <= 0 {
		return domain.Page[domain.BackdropImage]{}, fmt.Errorf("%w: %d", ErrInvalidID, movieID)
	}
	fetch := singlePage(func(ctx context.Context) ([]domain.BackdropImage, error) {
		return s.remote.Images(ctx, movieID)
	})
	p, err := open(s.sessions, ImagesSessionID(movieID), fetch, paging.ImageKey)
	if err != nil {
		return domain.Page[domain.BackdropImage]{}, err
	}
	return p.LoadPage(ctx, cursor)
}

func (s *Service) Credits(ctx context.Context, movieID int, cursor *int) (domain.Page[domain.CastMember], error) {
	if movieID <= 0 {
		return domain.Page[domain.CastMember]{}, fmt.Errorf("%w: %d", ErrInvalidID, movieID)
	}
	fetch := singlePage(func(ctx context.Context) ([]domain.CastMember, error) {
		return s.remote.Credits(ctx, movieID)
	})
	p, err := open(s.sessions, CreditsSessionID(movieID), fetch, paging.CastKey)
	if err != nil {
		return domain.Page[domain.CastMember]{}, err
	}
	return p.LoadPage(ctx, cursor)
}

// Detail loads a movie and fills in whether it is a local favorite. A
// failing favorites lookup is logged and treated as not favorite.
func (s *Service) Detail(ctx context.Context, movieID int) (*domain.MovieDetail, error) {
	if movieID <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidID, movieID)
	}
	d, err := s.remote.Detail(ctx, movieID)
	if err != nil {
		return nil, err
	}

	fav, err := s.favorites.Check(ctx, movieID)
	if err != nil {
		s.log.Warn("favorite lookup failed", "movie_id", movieID, "error", err)
		fav = false
	}
	d.Favorite = fav
	return d, nil
}

func (s *Service) Genres(ctx context.Context) ([]domain.Genre, error) {
	return s.remote.Genres(ctx)
}

func (s *Service) Collection(ctx context.Context, collectionID int) (*domain.Collection, error) {
	if collectionID <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidID, collectionID)
	}
	return s.remote.Collection(ctx, collectionID)
}

// Retry reloads the page that last failed in the given session.
func (s *Service) Retry(ctx context.Context, sessionID string) (any, error) {
	e, ok := s.sessions.get(sessionID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSession, sessionID)
	}
	return e.retry(ctx)
}

// CloseSession tears down a paging session; loads still running for it
// are discarded.
func (s *Service) CloseSession(sessionID string) error {
	if !s.sessions.close(sessionID) {
		return fmt.Errorf("%w: %s", ErrUnknownSession, sessionID)
	}
	if strings.HasPrefix(sessionID, "search:") {
		s.search.Update(func(st SearchState) SearchState {
			if SearchSessionID(st.Query) == sessionID {
				return SearchState{}
			}
			return st
		})
	}
	return nil
}

func (s *Service) Sessions() []string {
	return s.sessions.ids()
}

// Shutdown closes every session. Later calls that need a session fail
// with ErrServiceShutdown.
func (s *Service) Shutdown() {
	s.sessions.closeAll()
	s.log.Info("catalog sessions closed")
}

// singlePage adapts an unpaged upstream call to the paginator: page one
// carries everything, later pages are empty.
func singlePage[T any](load func(ctx context.Context) ([]T, error)) paging.FetchFunc[T] {
	return func(ctx context.Context, page int) ([]T, error) {
		if page > paging.FirstPage {
			return nil, nil
		}
		return load(ctx)
	}
}
