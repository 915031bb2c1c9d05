package tmdb

import "moviehub/internal/domain"

const defaultKnownForDepartment = "Acting"

func orDefault[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}

func (d *movieResultDTO) toDomain() domain.ListingItem {
	if d == nil {
		return domain.ListingItem{}
	}
	return domain.ListingItem{
		ID:           orDefault(d.ID, 0),
		PosterPath:   orDefault(d.PosterPath, ""),
		BackdropPath: orDefault(d.BackdropPath, ""),
		Title:        orDefault(d.Title, ""),
	}
}

func (d *searchResultDTO) toDomain() domain.SearchResult {
	if d == nil {
		return domain.SearchResult{}
	}
	return domain.SearchResult{
		ID:          orDefault(d.ID, 0),
		Title:       orDefault(d.Title, ""),
		Overview:    orDefault(d.Overview, ""),
		PosterPath:  orDefault(d.PosterPath, ""),
		VoteAverage: orDefault(d.VoteAverage, 0),
	}
}

func (d *movieDetailDTO) toDomain() domain.MovieDetail {
	if d == nil {
		return domain.MovieDetail{Genres: []string{}, ProductionCompanies: []string{}}
	}
	detail := domain.MovieDetail{
		ID:                  orDefault(d.ID, 0),
		Title:               orDefault(d.Title, ""),
		PosterPath:          orDefault(d.PosterPath, ""),
		BackdropPath:        orDefault(d.BackdropPath, ""),
		Overview:            orDefault(d.Overview, ""),
		VoteAverage:         orDefault(d.VoteAverage, 0),
		Tagline:             orDefault(d.Tagline, ""),
		ReleaseDate:         orDefault(d.ReleaseDate, ""),
		Status:              orDefault(d.Status, ""),
		Runtime:             orDefault(d.Runtime, 0),
		Genres:              names(d.Genres),
		ProductionCompanies: names(d.ProductionCompanies),
		Favorite:            orDefault(d.Favorite, false),
		HomePage:            orDefault(d.HomePage, ""),
	}
	if c := d.BelongsToCollection; c != nil {
		detail.BelongsToCollection = domain.CollectionRef{
			ID:         orDefault(c.ID, 0),
			Name:       orDefault(c.Name, ""),
			PosterPath: orDefault(c.PosterPath, ""),
		}
	}
	return detail
}

func names(in []*namedDTO) []string {
	out := make([]string, 0, len(in))
	for _, n := range in {
		if n == nil {
			out = append(out, "")
			continue
		}
		out = append(out, orDefault(n.Name, ""))
	}
	return out
}

func (d *castDTO) toDomain() domain.CastMember {
	if d == nil {
		return domain.CastMember{KnownForDepartment: defaultKnownForDepartment}
	}
	return domain.CastMember{
		ID:                 orDefault(d.ID, 0),
		Name:               orDefault(d.Name, ""),
		ProfilePath:        orDefault(d.ProfilePath, ""),
		Character:          orDefault(d.Character, ""),
		KnownForDepartment: orDefault(d.KnownForDepartment, defaultKnownForDepartment),
	}
}

func (d *backdropDTO) toDomain() domain.BackdropImage {
	if d == nil {
		return domain.BackdropImage{}
	}
	return domain.BackdropImage{Path: orDefault(d.FilePath, "")}
}

func (d *namedDTO) toGenre() domain.Genre {
	if d == nil {
		return domain.Genre{}
	}
	return domain.Genre{ID: orDefault(d.ID, 0), Name: orDefault(d.Name, "")}
}

func (d *collectionDTO) toDomain() domain.Collection {
	c := domain.Collection{
		Name:       orDefault(d.Name, ""),
		Overview:   orDefault(d.Overview, ""),
		PosterPath: orDefault(d.PosterPath, ""),
		Parts:      make([]domain.CollectionPart, 0, len(d.Parts)),
	}
	for _, p := range d.Parts {
		if p == nil {
			c.Parts = append(c.Parts, domain.CollectionPart{})
			continue
		}
		c.Parts = append(c.Parts, domain.CollectionPart{
			ID:          orDefault(p.ID, 0),
			PosterPath:  orDefault(p.PosterPath, ""),
			Title:       orDefault(p.Title, ""),
			Overview:    orDefault(p.Overview, ""),
			ReleaseDate: orDefault(p.ReleaseDate, ""),
			VoteAverage: orDefault(p.VoteAverage, 0),
		})
	}
	return c
}

func mapAll[D any, T any](in []D, f func(D) T) []T {
	out := make([]T, 0, len(in))
	for _, d := range in {
		out = append(out, f(d))
	}
	return out
}
