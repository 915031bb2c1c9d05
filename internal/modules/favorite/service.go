package favorite

import (
	"context"
	"fmt"
	"log/slog"

	"moviehub/internal/domain"
	"moviehub/internal/logger"
)

// Service keeps the local favorites mirror in step with what the user
// marks on movie details. A movie is either stored (favorite) or absent.
type Service struct {
	store  Store
	remote DetailFetcher
	log    *slog.Logger
}

func NewService(store Store, remote DetailFetcher) *Service {
	return &Service{
		store:  store,
		remote: remote,
		log:    logger.With("component", "favorites"),
	}
}

// MarkFavorite stores d; marking twice leaves one row.
func (s *Service) MarkFavorite(ctx context.Context, d domain.MovieDetail) error {
	if d.ID <= 0 {
		return fmt.Errorf("%w: id %d", ErrInvalidMovie, d.ID)
	}
	d.Favorite = true
	if err := s.store.Upsert(ctx, ToRecord(d)); err != nil {
		return err
	}
	s.log.Debug("favorite marked", "movie_id", d.ID)
	return nil
}

// UnmarkFavorite removes d by id; unmarking a missing movie is a no-op.
func (s *Service) UnmarkFavorite(ctx context.Context, d domain.MovieDetail) error {
	return s.unmark(ctx, d.ID)
}

func (s *Service) UnmarkByID(ctx context.Context, id int) error {
	return s.unmark(ctx, id)
}

func (s *Service) unmark(ctx context.Context, id int) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Debug("favorite unmarked", "movie_id", id)
	return nil
}

// MarkByID fetches the detail from the remote catalog and stores it.
func (s *Service) MarkByID(ctx context.Context, id int) (*domain.MovieDetail, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: id %d", ErrInvalidMovie, id)
	}
	d, err := s.remote.Detail(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.MarkFavorite(ctx, *d); err != nil {
		return nil, err
	}
	d.Favorite = true
	return d, nil
}

// Toggle flips the stored state of d and returns the new one. The check
// and the write happen in one store call, so concurrent toggles of the
// same movie alternate.
func (s *Service) Toggle(ctx context.Context, d domain.MovieDetail) (bool, error) {
	if d.ID <= 0 {
		return false, fmt.Errorf("%w: id %d", ErrInvalidMovie, d.ID)
	}
	d.Favorite = true
	stored, err := s.store.Toggle(ctx, ToRecord(d))
	if err != nil {
		return false, err
	}
	s.log.Debug("favorite toggled", "movie_id", d.ID, "favorite", stored)
	return stored, nil
}

func (s *Service) ClearAll(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return err
	}
	s.log.Info("favorites cleared")
	return nil
}

func (s *Service) List(ctx context.Context) ([]domain.MovieDetail, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return ToDetails(records), nil
}

func (s *Service) Get(ctx context.Context, id int) (*domain.MovieDetail, error) {
	record, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	d := ToDetail(*record)
	return &d, nil
}

func (s *Service) Check(ctx context.Context, id int) (bool, error) {
	return s.store.Exists(ctx, id)
}

// IsFavorite streams whether id is stored. Read failures are logged and
// reported as false; the stream keeps going.
func (s *Service) IsFavorite(ctx context.Context, id int) <-chan bool {
	out := make(chan bool, 1)
	go func() {
		defer close(out)
		for r := range s.store.WatchIsFavorite(ctx, id) {
			v := r.Value
			if r.Err != nil {
				s.log.Warn("favorite lookup failed", "movie_id", id, "error", r.Err)
				v = false
			}
			if !send(ctx, out, v) {
				return
			}
		}
	}()
	return out
}

// AllFavorites streams the stored favorites; a failed read yields an
// empty list.
func (s *Service) AllFavorites(ctx context.Context) <-chan []domain.MovieDetail {
	out := make(chan []domain.MovieDetail, 1)
	go func() {
		defer close(out)
		for r := range s.store.WatchAll(ctx) {
			v := []domain.MovieDetail{}
			if r.Err != nil {
				s.log.Warn("favorites read failed", "error", r.Err)
			} else {
				v = ToDetails(r.Value)
			}
			if !send(ctx, out, v) {
				return
			}
		}
	}()
	return out
}

// Favorite streams the stored detail for id, or nil when it is absent or
// the read failed.
func (s *Service) Favorite(ctx context.Context, id int) <-chan *domain.MovieDetail {
	out := make(chan *domain.MovieDetail, 1)
	go func() {
		defer close(out)
		for r := range s.store.WatchByID(ctx, id) {
			var v *domain.MovieDetail
			switch {
			case r.Err != nil:
				s.log.Warn("favorite read failed", "movie_id", id, "error", r.Err)
			case r.Value.Found:
				d := ToDetail(r.Value.Record)
				v = &d
			}
			if !send(ctx, out, v) {
				return
			}
		}
	}()
	return out
}

func send[T any](ctx context.Context, ch chan<- T, v T) bool {
	select {
	case ch <- v:
		return true
	case <-ctx.Done():
		return false
	}
}
