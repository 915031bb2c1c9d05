package favorite

import "moviehub/internal/domain"

type FavoriteListResponse struct {
	Favorites []domain.MovieDetail `json:"favorites"`
	Total     int                  `json:"total"`
}

type CheckFavoriteResponse struct {
	MovieID    int  `json:"movie_id"`
	IsFavorite bool `json:"is_favorite"`
}

type ToggleFavoriteResponse struct {
	MovieID  int  `json:"movie_id"`
	Favorite bool `json:"favorite"`
}

type FavoriteDetailResponse struct {
	MovieID int                 `json:"movie_id"`
	Movie   *domain.MovieDetail `json:"movie"`
}

// Websocket event types.
const (
	EventFavorites      = "favorites"
	EventFavoriteStatus = "favorite_status"
	EventFavoriteDetail = "favorite_detail"
)

func ToFavoriteListResponse(items []domain.MovieDetail) FavoriteListResponse {
	if items == nil {
		items = []domain.MovieDetail{}
	}
	return FavoriteListResponse{Favorites: items, Total: len(items)}
}
