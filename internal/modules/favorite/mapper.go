package favorite

import "moviehub/internal/domain"

// ToRecord converts a movie detail into its stored form. Every field is
// carried over; the store may still force the favorite flag.
func ToRecord(d domain.MovieDetail) domain.FavoriteRecord {
	return domain.FavoriteRecord{
		ID:                  d.ID,
		Title:               d.Title,
		PosterPath:          d.PosterPath,
		BackdropPath:        d.BackdropPath,
		Overview:            d.Overview,
		VoteAverage:         d.VoteAverage,
		Tagline:             d.Tagline,
		ReleaseDate:         d.ReleaseDate,
		Status:              d.Status,
		Runtime:             d.Runtime,
		Genres:              cloneStrings(d.Genres),
		ProductionCompanies: cloneStrings(d.ProductionCompanies),
		BelongsToCollection: domain.CollectionEmbedding{
			ID:         d.BelongsToCollection.ID,
			Name:       d.BelongsToCollection.Name,
			PosterPath: d.BelongsToCollection.PosterPath,
		},
		Favorite: d.Favorite,
		HomePage: d.HomePage,
	}
}

func ToDetail(r domain.FavoriteRecord) domain.MovieDetail {
	return domain.MovieDetail{
		ID:                  r.ID,
		Title:               r.Title,
		PosterPath:          r.PosterPath,
		BackdropPath:        r.BackdropPath,
		Overview:            r.Overview,
		VoteAverage:         r.VoteAverage,
		Tagline:             r.Tagline,
		ReleaseDate:         r.ReleaseDate,
		Status:              r.Status,
		Runtime:             r.Runtime,
		Genres:              cloneStrings(r.Genres),
		ProductionCompanies: cloneStrings(r.ProductionCompanies),
		BelongsToCollection: domain.CollectionRef{
			ID:         r.BelongsToCollection.ID,
			Name:       r.BelongsToCollection.Name,
			PosterPath: r.BelongsToCollection.PosterPath,
		},
		Favorite: r.Favorite,
		HomePage: r.HomePage,
	}
}

func ToDetails(records []domain.FavoriteRecord) []domain.MovieDetail {
	out := make([]domain.MovieDetail, 0, len(records))
	for _, r := range records {
		out = append(out, ToDetail(r))
	}
	return out
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string{}, s...)
}
