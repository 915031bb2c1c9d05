package domain

import (
	"time"
)

// FavoriteRecord is the persisted projection of MovieDetail.
// One row per movie, keyed by the remote movie id.
type FavoriteRecord struct {
	ID                  int                 `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Title               string              `json:"title" gorm:"not null"`
	PosterPath          string              `json:"poster_path" gorm:"not null"`
	BackdropPath        string              `json:"backdrop_path" gorm:"not null"`
	Overview            string              `json:"overview" gorm:"not null"`
	VoteAverage         float64             `json:"vote_average" gorm:"not null"`
	Tagline             string              `json:"tagline" gorm:"not null"`
	ReleaseDate         string              `json:"release_date" gorm:"not null"`
	Status              string              `json:"status" gorm:"not null"`
	Runtime             int                 `json:"runtime" gorm:"not null"`
	Genres              []string            `json:"genres" gorm:"serializer:json"`
	ProductionCompanies []string            `json:"production_companies" gorm:"serializer:json"`
	BelongsToCollection CollectionEmbedding `json:"belongs_to_collection" gorm:"embedded;embeddedPrefix:collection_"`
	Favorite            bool                `json:"favorite" gorm:"not null"`
	HomePage            string              `json:"homepage" gorm:"not null"`
	SavedAt             time.Time           `json:"saved_at" gorm:"not null;index;autoCreateTime"`
}

type CollectionEmbedding struct {
	ID         int    `json:"id" gorm:"column:id"`
	Name       string `json:"name" gorm:"column:name"`
	PosterPath string `json:"poster_path" gorm:"column:poster_path"`
}

func (FavoriteRecord) TableName() string {
	return "favorites"
}
