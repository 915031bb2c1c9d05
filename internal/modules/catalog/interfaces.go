package catalog

import (
	"context"

	"moviehub/internal/domain"
)

// Remote is the remote movie catalog.
type Remote interface {
	Listing(ctx context.Context, kind domain.ListingKind, page int) ([]domain.ListingItem, error)
	Search(ctx context.Context, query string, page int) ([]domain.SearchResult, error)
	Detail(ctx context.Context, movieID int) (*domain.MovieDetail, error)
	Images(ctx context.Context, movieID int) ([]domain.BackdropImage, error)
	Credits(ctx context.Context, movieID int) ([]domain.CastMember, error)
	Genres(ctx context.Context) ([]domain.Genre, error)
	Collection(ctx context.Context, collectionID int) (*domain.Collection, error)
}

// FavoriteChecker answers whether a movie is in the local favorites.
type FavoriteChecker interface {
	Check(ctx context.Context, id int) (bool, error)
}
