package favorite

import (
	"context"

	"github.com/gin-gonic/gin"

	"moviehub/internal/domain"
	"moviehub/internal/pkg/wsstream"
)

// ServeWS pushes the full favorites list after every change.
//
// @Summary Favorites stream
// @Description Upgrades to a websocket; the first event carries the current value
// @Tags Favorite
// @Produce json
// @Success 101 "Switching protocols"
// @Router /ws/favorites [get]
func (h *Handler) ServeWS(c *gin.Context) {
	wsstream.Serve(c, EventFavorites, h.service.AllFavorites, func(items []domain.MovieDetail) any {
		return ToFavoriteListResponse(items)
	})
}

// ServeStatusWS pushes whether a movie is stored every time that changes.
//
// @Summary Favorite status stream
// @Description Upgrades to a websocket; the first event carries the current value
// @Tags Favorite
// @Produce json
// @Param id path int true "Movie ID"
// @Success 101 "Switching protocols"
// @Failure 400 {object} response.ErrorResponse "Invalid ID"
// @Router /ws/favorites/{id} [get]
func (h *Handler) ServeStatusWS(c *gin.Context) {
	id, ok := movieID(c)
	if !ok {
		return
	}
	stream := func(ctx context.Context) <-chan bool {
		return h.service.IsFavorite(ctx, id)
	}
	wsstream.Serve(c, EventFavoriteStatus, stream, func(fav bool) any {
		return CheckFavoriteResponse{MovieID: id, IsFavorite: fav}
	})
}

// ServeDetailWS pushes the stored movie, or a null movie once it is removed.
//
// @Summary Favorite detail stream
// @Description Upgrades to a websocket; the first event carries the current value
// @Tags Favorite
// @Produce json
// @Param id path int true "Movie ID"
// @Success 101 "Switching protocols"
// @Failure 400 {object} response.ErrorResponse "Invalid ID"
// @Router /ws/favorites/{id}/detail [get]
func (h *Handler) ServeDetailWS(c *gin.Context) {
	id, ok := movieID(c)
	if !ok {
		return
	}
	stream := func(ctx context.Context) <-chan *domain.MovieDetail {
		return h.service.Favorite(ctx, id)
	}
	wsstream.Serve(c, EventFavoriteDetail, stream, func(d *domain.MovieDetail) any {
		return FavoriteDetailResponse{MovieID: id, Movie: d}
	})
}
