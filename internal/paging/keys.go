package paging

import (
	"strconv"

	"moviehub/internal/domain"
)

func idKey(id int) string {
	if id == 0 {
		return ""
	}
	return "id:" + strconv.Itoa(id)
}

// ListingKey identifies home feed items by movie id, falling back to the
// poster path when the upstream sent no id.
func ListingKey(item domain.ListingItem) string {
	if k := idKey(item.ID); k != "" {
		return k
	}
	if item.PosterPath != "" {
		return "poster:" + item.PosterPath
	}
	return ""
}

func SearchKey(r domain.SearchResult) string {
	if k := idKey(r.ID); k != "" {
		return k
	}
	if r.PosterPath != "" {
		return "poster:" + r.PosterPath
	}
	return ""
}

func ImageKey(img domain.BackdropImage) string {
	return img.Path
}

// CastKey keys cast members by profile picture, so the same person billed
// twice shows up once, and by id when there is no picture.
func CastKey(c domain.CastMember) string {
	if c.ProfilePath != "" {
		return "profile:" + c.ProfilePath
	}
	return idKey(c.ID)
}
