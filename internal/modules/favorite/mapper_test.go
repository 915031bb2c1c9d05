package favorite

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"moviehub/internal/domain"
)

func sampleDetail(id int) domain.MovieDetail {
	return domain.MovieDetail{
		ID:                  id,
		Title:               "errem",
		PosterPath:          "/p.jpg",
		BackdropPath:        "/b.jpg",
		Overview:            "overview",
		VoteAverage:         6.4,
		Tagline:             "tag",
		ReleaseDate:         "2019-05-01",
		Status:              "Released",
		Runtime:             98,
		Genres:              []string{"Action", "Drama"},
		ProductionCompanies: []string{"Lucasfilm, Ltd.", "Other"},
		BelongsToCollection: domain.CollectionRef{ID: 10, Name: "Saga", PosterPath: "/s.jpg"},
		Favorite:            true,
		HomePage:            "https://example.com",
	}
}

func TestRecordRoundTrip(t *testing.T) {
	cases := []domain.MovieDetail{
		sampleDetail(4036),
		{ID: 1},
		{ID: 2, Genres: []string{}, Favorite: false},
	}
	for _, d := range cases {
		assert.Equal(t, d, ToDetail(ToRecord(d)))
	}
}

func TestToRecordDoesNotAliasSlices(t *testing.T) {
	d := sampleDetail(1)
	r := ToRecord(d)
	r.Genres[0] = "changed"
	assert.Equal(t, "Action", d.Genres[0])
}

func TestToDetailsKeepsOrder(t *testing.T) {
	records := []domain.FavoriteRecord{ToRecord(sampleDetail(2)), ToRecord(sampleDetail(1))}
	out := ToDetails(records)
	assert.Equal(t, []int{2, 1}, []int{out[0].ID, out[1].ID})
	assert.NotNil(t, ToDetails(nil))
}
