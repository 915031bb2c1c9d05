package favorite

import (
	"context"

	"moviehub/internal/domain"
	"moviehub/internal/repository"
)

// Store is the subset of the favorites repository the synchronizer uses.
type Store interface {
	Upsert(ctx context.Context, record domain.FavoriteRecord) error
	Delete(ctx context.Context, id int) error
	Clear(ctx context.Context) error
	Toggle(ctx context.Context, record domain.FavoriteRecord) (bool, error)
	List(ctx context.Context) ([]domain.FavoriteRecord, error)
	GetByID(ctx context.Context, id int) (*domain.FavoriteRecord, error)
	Exists(ctx context.Context, id int) (bool, error)
	WatchAll(ctx context.Context) <-chan repository.Result[[]domain.FavoriteRecord]
	WatchByID(ctx context.Context, id int) <-chan repository.Result[repository.FavoriteLookup]
	WatchIsFavorite(ctx context.Context, id int) <-chan repository.Result[bool]
}

// DetailFetcher loads a movie detail from the remote catalog.
type DetailFetcher interface {
	Detail(ctx context.Context, id int) (*domain.MovieDetail, error)
}
