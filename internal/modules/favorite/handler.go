package favorite

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"moviehub/internal/domain"
	"moviehub/internal/pkg/response"
	"moviehub/internal/pkg/validator"
	"moviehub/internal/repository"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	favorites := rg.Group("/favorites")
	{
		favorites.GET("", h.GetFavorites)
		favorites.POST("", h.MarkFavorite)
		favorites.DELETE("", h.ClearFavorites)
		favorites.GET("/:id", h.GetFavorite)
		favorites.POST("/:id", h.MarkByID)
		favorites.DELETE("/:id", h.UnmarkFavorite)
		favorites.GET("/:id/check", h.CheckFavorite)
		favorites.POST("/:id/toggle", h.ToggleFavorite)
	}
}

// GetFavorites returns every stored favorite, oldest first.
//
// @Summary List favorites
// @Tags Favorite
// @Accept json
// @Produce json
// @Success 200 {object} FavoriteListResponse "Favorites"
// @Failure 500 {object} response.ErrorResponse "Failed to read favorites"
// @Router /favorites [get]
func (h *Handler) GetFavorites(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ToFavoriteListResponse(items))
}

// GetFavorite returns the stored copy of a favorite movie.
//
// @Summary Get favorite
// @Tags Favorite
// @Accept json
// @Produce json
// @Param id path int true "Movie ID"
// @Success 200 {object} domain.MovieDetail "Stored movie"
// @Failure 400 {object} response.ErrorResponse "Invalid movie ID"
// @Failure 404 {object} response.ErrorResponse "Movie is not a favorite"
// @Router /favorites/{id} [get]
func (h *Handler) GetFavorite(c *gin.Context) {
	id, ok := movieID(c)
	if !ok {
		return
	}
	d, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, d)
}

// MarkFavorite stores the movie detail in the request body.
//
// @Summary Mark favorite
// @Description Inserts the movie or replaces the stored copy; marking twice leaves one row
// @Tags Favorite
// @Accept json
// @Produce json
// @Param movie body domain.MovieDetail true "Movie detail"
// @Success 201 {object} domain.MovieDetail "Stored movie"
// @Failure 400 {object} response.ErrorResponse "Invalid movie"
// @Failure 500 {object} response.ErrorResponse "Failed to store favorite"
// @Router /favorites [post]
func (h *Handler) MarkFavorite(c *gin.Context) {
	var d domain.MovieDetail
	if err := c.ShouldBindJSON(&d); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body", err.Error())
		return
	}
	if errs := validator.Validate(d); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid movie", errs)
		return
	}

	if err := h.service.MarkFavorite(c.Request.Context(), d); err != nil {
		handleError(c, err)
		return
	}
	d.Favorite = true
	response.Success(c, http.StatusCreated, d)
}

// MarkByID fetches the detail remotely and stores it.
//
// @Summary Mark favorite by ID
// @Tags Favorite
// @Accept json
// @Produce json
// @Param id path int true "Movie ID"
// @Success 201 {object} domain.MovieDetail "Stored movie"
// @Failure 400 {object} response.ErrorResponse "Invalid movie ID"
// @Failure 404 {object} response.ErrorResponse "Movie not found"
// @Failure 502 {object} response.ErrorResponse "Remote catalog returned an error"
// @Failure 503 {object} response.ErrorResponse "Remote catalog unreachable"
// @Router /favorites/{id} [post]
func (h *Handler) MarkByID(c *gin.Context) {
	id, ok := movieID(c)
	if !ok {
		return
	}
	d, err := h.service.MarkByID(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, d)
}

// UnmarkFavorite removes a favorite; removing a missing movie is a no-op.
//
// @Summary Unmark favorite
// @Tags Favorite
// @Accept json
// @Produce json
// @Param id path int true "Movie ID"
// @Success 204 "Removed"
// @Failure 400 {object} response.ErrorResponse "Invalid movie ID"
// @Failure 500 {object} response.ErrorResponse "Failed to remove favorite"
// @Router /favorites/{id} [delete]
func (h *Handler) UnmarkFavorite(c *gin.Context) {
	id, ok := movieID(c)
	if !ok {
		return
	}
	if err := h.service.UnmarkByID(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ClearFavorites removes every favorite.
//
// @Summary Clear favorites
// @Tags Favorite
// @Accept json
// @Produce json
// @Success 204 "Cleared"
// @Failure 500 {object} response.ErrorResponse "Failed to clear favorites"
// @Router /favorites [delete]
func (h *Handler) ClearFavorites(c *gin.Context) {
	if err := h.service.ClearAll(c.Request.Context()); err != nil {
		handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CheckFavorite reports whether a movie is stored.
//
// @Summary Check favorite
// @Tags Favorite
// @Accept json
// @Produce json
// @Param id path int true "Movie ID"
// @Success 200 {object} CheckFavoriteResponse "Favorite status"
// @Failure 400 {object} response.ErrorResponse "Invalid movie ID"
// @Failure 500 {object} response.ErrorResponse "Failed to read favorites"
// @Router /favorites/{id}/check [get]
func (h *Handler) CheckFavorite(c *gin.Context) {
	id, ok := movieID(c)
	if !ok {
		return
	}
	fav, err := h.service.Check(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, CheckFavoriteResponse{MovieID: id, IsFavorite: fav})
}

// ToggleFavorite marks the movie in the body when it is not stored and unmarks it otherwise.
//
// @Summary Toggle favorite
// @Tags Favorite
// @Accept json
// @Produce json
// @Param id path int true "Movie ID"
// @Param movie body domain.MovieDetail true "Movie detail"
// @Success 200 {object} ToggleFavoriteResponse "New favorite status"
// @Failure 400 {object} response.ErrorResponse "Invalid body or ID mismatch"
// @Failure 500 {object} response.ErrorResponse "Failed to store favorite"
// @Router /favorites/{id}/toggle [post]
func (h *Handler) ToggleFavorite(c *gin.Context) {
	id, ok := movieID(c)
	if !ok {
		return
	}
	var d domain.MovieDetail
	if err := c.ShouldBindJSON(&d); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body", err.Error())
		return
	}
	if d.ID != id {
		response.Error(c, http.StatusBadRequest, "ID_MISMATCH", "Body id does not match path id")
		return
	}

	fav, err := h.service.Toggle(c.Request.Context(), d)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ToggleFavoriteResponse{MovieID: id, Favorite: fav})
}

func movieID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || validator.Var(id, "gt=0") != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid movie ID")
		return 0, false
	}
	return id, true
}

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidMovie), errors.Is(err, repository.ErrInvalidFavorite):
		response.Error(c, http.StatusBadRequest, "INVALID_MOVIE", err.Error())
	case errors.Is(err, repository.ErrFavoriteNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Movie is not a favorite")
	case response.FetchFailure(c, err):
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
