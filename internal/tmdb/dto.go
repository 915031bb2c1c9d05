package tmdb

// Wire shapes of the TMDB v3 responses. Every field is a pointer so that
// absent and null values can be told apart from real zero values and get
// their fallback in mapper.go.

type moviesDTO struct {
	Page       *int              `json:"page"`
	TotalPages *int              `json:"total_pages"`
	Results    []*movieResultDTO `json:"results"`
}

type movieResultDTO struct {
	ID           *int    `json:"id"`
	PosterPath   *string `json:"poster_path"`
	BackdropPath *string `json:"backdrop_path"`
	Title        *string `json:"title"`
}

type searchDTO struct {
	Page       *int               `json:"page"`
	TotalPages *int               `json:"total_pages"`
	Results    []*searchResultDTO `json:"results"`
}

type searchResultDTO struct {
	ID          *int     `json:"id"`
	Title       *string  `json:"title"`
	Overview    *string  `json:"overview"`
	PosterPath  *string  `json:"poster_path"`
	VoteAverage *float64 `json:"vote_average"`
}

type movieDetailDTO struct {
	ID                  *int                    `json:"id"`
	Title               *string                 `json:"title"`
	PosterPath          *string                 `json:"poster_path"`
	BackdropPath        *string                 `json:"backdrop_path"`
	BelongsToCollection *belongsToCollectionDTO `json:"belongs_to_collection"`
	Genres              []*namedDTO             `json:"genres"`
	Overview            *string                 `json:"overview"`
	ProductionCompanies []*namedDTO             `json:"production_companies"`
	ReleaseDate         *string                 `json:"release_date"`
	Runtime             *int                    `json:"runtime"`
	Status              *string                 `json:"status"`
	Tagline             *string                 `json:"tagline"`
	VoteAverage         *float64                `json:"vote_average"`
	Favorite            *bool                   `json:"favorite"`
	HomePage            *string                 `json:"homepage"`
}

type belongsToCollectionDTO struct {
	ID         *int    `json:"id"`
	Name       *string `json:"name"`
	PosterPath *string `json:"poster_path"`
}

type namedDTO struct {
	ID   *int    `json:"id"`
	Name *string `json:"name"`
}

type imagesDTO struct {
	Backdrops []*backdropDTO `json:"backdrops"`
}

type backdropDTO struct {
	FilePath *string `json:"file_path"`
}

type creditsDTO struct {
	Cast []*castDTO `json:"cast"`
}

type castDTO struct {
	ID                 *int    `json:"id"`
	KnownForDepartment *string `json:"known_for_department"`
	Name               *string `json:"name"`
	ProfilePath        *string `json:"profile_path"`
	Character          *string `json:"character"`
}

type genresDTO struct {
	Genres []*namedDTO `json:"genres"`
}

type collectionDTO struct {
	Name       *string              `json:"name"`
	Overview   *string              `json:"overview"`
	PosterPath *string              `json:"poster_path"`
	Parts      []*collectionPartDTO `json:"parts"`
}

type collectionPartDTO struct {
	ID          *int     `json:"id"`
	Title       *string  `json:"title"`
	Overview    *string  `json:"overview"`
	PosterPath  *string  `json:"poster_path"`
	ReleaseDate *string  `json:"release_date"`
	VoteAverage *float64 `json:"vote_average"`
}

type statusDTO struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}
