package domain

import (
	"fmt"
	"strings"
)

type ListingKind string

const (
	ListingNowPlaying ListingKind = "now_playing"
	ListingPopular    ListingKind = "popular"
	ListingTopRated   ListingKind = "top_rated"
	ListingUpcoming   ListingKind = "upcoming"
	ListingTrending   ListingKind = "trending"
)

// ListingKinds is the home feed order.
var ListingKinds = []ListingKind{
	ListingTrending,
	ListingNowPlaying,
	ListingPopular,
	ListingTopRated,
	ListingUpcoming,
}

func ParseListingKind(s string) (ListingKind, error) {
	k := ListingKind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range ListingKinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown listing kind %q", s)
}

// ListingItem is one entry of a remote movie listing (home feed rows).
type ListingItem struct {
	ID           int    `json:"id"`
	PosterPath   string `json:"poster_path"`
	BackdropPath string `json:"backdrop_path"`
	Title        string `json:"title"`
}

type SearchResult struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	PosterPath  string  `json:"poster_path"`
	VoteAverage float64 `json:"vote_average"`
}

type CollectionRef struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	PosterPath string `json:"poster_path"`
}

// MovieDetail is the full movie shape shown on the detail screen and
// the unit that gets mirrored into the favorites store.
type MovieDetail struct {
	ID                  int           `json:"id" validate:"required,gt=0"`
	Title               string        `json:"title"`
	PosterPath          string        `json:"poster_path"`
	BackdropPath        string        `json:"backdrop_path"`
	Overview            string        `json:"overview"`
	VoteAverage         float64       `json:"vote_average" validate:"gte=0,lte=10"`
	Tagline             string        `json:"tagline"`
	ReleaseDate         string        `json:"release_date"`
	Status              string        `json:"status"`
	Runtime             int           `json:"runtime" validate:"gte=0"`
	Genres              []string      `json:"genres"`
	ProductionCompanies []string      `json:"production_companies"`
	BelongsToCollection CollectionRef `json:"belongs_to_collection"`
	Favorite            bool          `json:"favorite"`
	HomePage            string        `json:"homepage"`
}

type CastMember struct {
	ID                 int    `json:"id"`
	Name               string `json:"name"`
	ProfilePath        string `json:"profile_path"`
	Character          string `json:"character"`
	KnownForDepartment string `json:"known_for_department"`
}

type BackdropImage struct {
	Path string `json:"path"`
}

type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Collection struct {
	Name       string           `json:"name"`
	Overview   string           `json:"overview"`
	PosterPath string           `json:"poster_path"`
	Parts      []CollectionPart `json:"parts"`
}

type CollectionPart struct {
	ID          int     `json:"id"`
	PosterPath  string  `json:"poster_path"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	ReleaseDate string  `json:"release_date"`
	VoteAverage float64 `json:"vote_average"`
}
