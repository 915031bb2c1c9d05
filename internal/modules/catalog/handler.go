package catalog

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"moviehub/internal/domain"
	"moviehub/internal/paging"
	"moviehub/internal/pkg/response"
	"moviehub/internal/pkg/wsstream"
)

// EventSearchState is the websocket event type pushed by ServeSearchWS.
const EventSearchState = "search_state"

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/home", h.GetHome)

	listings := rg.Group("/listings")
	{
		listings.GET("/:kind", h.GetListing)
		listings.POST("/:kind/refresh", h.RefreshListing)
	}

	search := rg.Group("/search")
	{
		search.GET("", h.Search)
		search.GET("/state", h.GetSearchState)
	}

	movies := rg.Group("/movies")
	{
		movies.GET("/:id", h.GetMovie)
		movies.GET("/:id/images", h.GetImages)
		movies.GET("/:id/credits", h.GetCredits)
	}

	rg.GET("/genres", h.GetGenres)
	rg.GET("/collections/:id", h.GetCollection)

	sessions := rg.Group("/sessions")
	{
		sessions.GET("", h.ListSessions)
		sessions.DELETE("/:id", h.CloseSession)
		sessions.POST("/:id/retry", h.RetrySession)
	}
}

// GetHome returns the first page of every listing.
//
// @Summary Home screen listings
// @Description Reloads the first page of every listing concurrently; a failing listing carries its own error
// @Tags Catalog
// @Accept json
// @Produce json
// @Success 200 {object} HomeResponse "One section per listing kind"
// @Router /home [get]
func (h *Handler) GetHome(c *gin.Context) {
	sections := h.service.Home(c.Request.Context())
	response.Success(c, http.StatusOK, HomeResponse{Sections: ToHomeResponse(sections)})
}

// GetListing returns one page of a listing session.
//
// @Summary Listing page
// @Tags Catalog
// @Accept json
// @Produce json
// @Param kind path string true "Listing kind" Enums(now_playing, popular, top_rated, upcoming, trending)
// @Param cursor query int false "Page cursor" default(1)
// @Success 200 {object} PageResponse[domain.ListingItem] "Page of movies"
// @Failure 400 {object} response.ErrorResponse "Unknown kind or invalid cursor"
// @Failure 502 {object} response.ErrorResponse "Remote catalog returned an error"
// @Failure 503 {object} response.ErrorResponse "Remote catalog unreachable"
// @Router /listings/{kind} [get]
func (h *Handler) GetListing(c *gin.Context) {
	kind, ok := listingKind(c)
	if !ok {
		return
	}
	cursor, ok := optionalInt(c, "cursor")
	if !ok {
		return
	}

	page, err := h.service.Listing(c.Request.Context(), kind, cursor)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ToPageResponse(page))
}

// RefreshListing drops the listing session and reloads around anchor.
//
// @Summary Refresh listing
// @Description Invalidates loaded pages and reloads starting at the page closest to the anchor item
// @Tags Catalog
// @Accept json
// @Produce json
// @Param kind path string true "Listing kind"
// @Param anchor query int false "Index of the last viewed item"
// @Success 200 {object} PageResponse[domain.ListingItem] "Reloaded page"
// @Failure 400 {object} response.ErrorResponse "Unknown kind or invalid anchor"
// @Failure 502 {object} response.ErrorResponse "Remote catalog returned an error"
// @Failure 503 {object} response.ErrorResponse "Remote catalog unreachable"
// @Router /listings/{kind}/refresh [post]
func (h *Handler) RefreshListing(c *gin.Context) {
	kind, ok := listingKind(c)
	if !ok {
		return
	}
	anchor, ok := optionalInt(c, "anchor")
	if !ok {
		return
	}

	page, err := h.service.RefreshListing(c.Request.Context(), kind, anchor)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ToPageResponse(page))
}

// Search pages through search results for a query.
//
// @Summary Search movies
// @Description Starting a new query closes the session of the previous one
// @Tags Catalog
// @Accept json
// @Produce json
// @Param query query string true "Search text"
// @Param cursor query int false "Page cursor" default(1)
// @Success 200 {object} PageResponse[domain.SearchResult] "Page of results"
// @Failure 400 {object} response.ErrorResponse "Empty query or invalid cursor"
// @Failure 502 {object} response.ErrorResponse "Remote catalog returned an error"
// @Failure 503 {object} response.ErrorResponse "Remote catalog unreachable"
// @Router /search [get]
func (h *Handler) Search(c *gin.Context) {
	cursor, ok := optionalInt(c, "cursor")
	if !ok {
		return
	}

	page, err := h.service.Search(c.Request.Context(), c.Query("query"), cursor)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ToPageResponse(page))
}

// GetSearchState returns the state of the current search.
//
// @Summary Search state
// @Tags Catalog
// @Accept json
// @Produce json
// @Success 200 {object} SearchState "Current query, loaded count and exhausted flag"
// @Router /search/state [get]
func (h *Handler) GetSearchState(c *gin.Context) {
	response.Success(c, http.StatusOK, h.service.SearchState())
}

// GetMovie returns a movie with its local favorite flag.
//
// @Summary Movie detail
// @Tags Catalog
// @Accept json
// @Produce json
// @Param id path int true "Movie ID"
// @Success 200 {object} domain.MovieDetail "Movie detail"
// @Failure 400 {object} response.ErrorResponse "Invalid movie ID"
// @Failure 404 {object} response.ErrorResponse "Movie not found"
// @Failure 502 {object} response.ErrorResponse "Remote catalog returned an error"
// @Failure 503 {object} response.ErrorResponse "Remote catalog unreachable"
// @Router /movies/{id} [get]
func (h *Handler) GetMovie(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	d, err := h.service.Detail(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, d)
}

// GetImages pages through the backdrops of a movie.
//
// @Summary Movie backdrops
// @Tags Catalog
// @Accept json
// @Produce json
// @Param id path int true "Movie ID"
// @Param cursor query int false "Page cursor" default(1)
// @Success 200 {object} PageResponse[domain.BackdropImage] "Page of backdrops"
// @Failure 400 {object} response.ErrorResponse "Invalid movie ID or cursor"
// @Failure 502 {object} response.ErrorResponse "Remote catalog returned an error"
// @Failure 503 {object} response.ErrorResponse "Remote catalog unreachable"
// @Router /movies/{id}/images [get]
func (h *Handler) GetImages(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	cursor, ok := optionalInt(c, "cursor")
	if !ok {
		return
	}
	page, err := h.service.Images(c.Request.Context(), id, cursor)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ToPageResponse(page))
}

// GetCredits pages through the cast of a movie.
//
// @Summary Movie cast
// @Tags Catalog
// @Accept json
// @Produce json
// @Param id path int true "Movie ID"
// @Param cursor query int false "Page cursor" default(1)
// @Success 200 {object} PageResponse[domain.CastMember] "Page of cast members"
// @Failure 400 {object} response.ErrorResponse "Invalid movie ID or cursor"
// @Failure 502 {object} response.ErrorResponse "Remote catalog returned an error"
// @Failure 503 {object} response.ErrorResponse "Remote catalog unreachable"
// @Router /movies/{id}/credits [get]
func (h *Handler) GetCredits(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	cursor, ok := optionalInt(c, "cursor")
	if !ok {
		return
	}
	page, err := h.service.Credits(c.Request.Context(), id, cursor)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ToPageResponse(page))
}

// GetGenres returns the genre catalog.
//
// @Summary Genres
// @Tags Catalog
// @Accept json
// @Produce json
// @Success 200 {object} GenreListResponse "Genres"
// @Failure 502 {object} response.ErrorResponse "Remote catalog returned an error"
// @Failure 503 {object} response.ErrorResponse "Remote catalog unreachable"
// @Router /genres [get]
func (h *Handler) GetGenres(c *gin.Context) {
	genres, err := h.service.Genres(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	if genres == nil {
		genres = []domain.Genre{}
	}
	response.Success(c, http.StatusOK, GenreListResponse{Genres: genres})
}

// GetCollection returns a collection and its parts.
//
// @Summary Collection
// @Tags Catalog
// @Accept json
// @Produce json
// @Param id path int true "Collection ID"
// @Success 200 {object} domain.Collection "Collection"
// @Failure 400 {object} response.ErrorResponse "Invalid collection ID"
// @Failure 404 {object} response.ErrorResponse "Collection not found"
// @Failure 502 {object} response.ErrorResponse "Remote catalog returned an error"
// @Failure 503 {object} response.ErrorResponse "Remote catalog unreachable"
// @Router /collections/{id} [get]
func (h *Handler) GetCollection(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	col, err := h.service.Collection(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, col)
}

// ListSessions returns the ids of the open paging sessions.
//
// @Summary Open sessions
// @Tags Catalog
// @Accept json
// @Produce json
// @Success 200 {object} SessionListResponse "Session ids"
// @Router /sessions [get]
func (h *Handler) ListSessions(c *gin.Context) {
	response.Success(c, http.StatusOK, SessionListResponse{Sessions: h.service.Sessions()})
}

// CloseSession tears down a paging session, e.g. /sessions/listing:popular.
//
// @Summary Close session
// @Description Loads still running for the session are discarded
// @Tags Catalog
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Success 204 "Session closed"
// @Failure 404 {object} response.ErrorResponse "Unknown session"
// @Router /sessions/{id} [delete]
func (h *Handler) CloseSession(c *gin.Context) {
	if err := h.service.CloseSession(c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RetrySession re-runs the last failed load of a session.
//
// @Summary Retry session
// @Description A failed refresh is retried as a refresh
// @Tags Catalog
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} map[string]interface{} "Reloaded page"
// @Failure 404 {object} response.ErrorResponse "Unknown session"
// @Failure 409 {object} response.ErrorResponse "Nothing to retry"
// @Failure 502 {object} response.ErrorResponse "Remote catalog returned an error"
// @Failure 503 {object} response.ErrorResponse "Remote catalog unreachable"
// @Router /sessions/{id}/retry [post]
func (h *Handler) RetrySession(c *gin.Context) {
	page, err := h.service.Retry(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, page)
}

func listingKind(c *gin.Context) (domain.ListingKind, bool) {
	kind, err := domain.ParseListingKind(c.Param("kind"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_KIND", err.Error())
		return "", false
	}
	return kind, true
}

func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid ID")
		return 0, false
	}
	return id, true
}

// optionalInt parses an optional integer query parameter; a missing
// parameter yields nil.
func optionalInt(c *gin.Context, name string) (*int, bool) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return nil, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_"+strings.ToUpper(name), "Invalid "+name)
		return nil, false
	}
	return &v, true
}


func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrEmptyQuery):
		response.Error(c, http.StatusBadRequest, "EMPTY_QUERY", "Search query is required")
	case errors.Is(err, ErrInvalidID):
		response.Error(c, http.StatusBadRequest, "INVALID_ID", err.Error())
	case errors.Is(err, paging.ErrInvalidCursor):
		response.Error(c, http.StatusBadRequest, "INVALID_CURSOR", err.Error())
	case errors.Is(err, ErrUnknownSession):
		response.Error(c, http.StatusNotFound, "SESSION_NOT_FOUND", err.Error())
	case errors.Is(err, paging.ErrNothingToRetry):
		response.Error(c, http.StatusConflict, "NOTHING_TO_RETRY", "No failed page to retry")
	case errors.Is(err, paging.ErrSessionClosed):
		response.Error(c, http.StatusConflict, "SESSION_CLOSED", "Session was closed")
	case errors.Is(err, ErrServiceShutdown):
		response.Error(c, http.StatusServiceUnavailable, "SHUTTING_DOWN", "Server is shutting down")
	case response.FetchFailure(c, err):
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}

// ServeSearchWS pushes the search state after every query change or loaded page.
//
// @Summary Search state stream
// @Description Upgrades to a websocket; the first event carries the current value
// @Tags Catalog
// @Produce json
// @Success 101 "Switching protocols"
// @Router /ws/search [get]
func (h *Handler) ServeSearchWS(c *gin.Context) {
	wsstream.Serve(c, EventSearchState, h.service.WatchSearch, func(st SearchState) any {
		return st
	})
}
