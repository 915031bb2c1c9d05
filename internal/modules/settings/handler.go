package settings

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"moviehub/internal/domain"
	"moviehub/internal/pkg/response"
	"moviehub/internal/pkg/validator"
	"moviehub/internal/pkg/wsstream"
)

// EventSettings is the websocket event type pushed by ServeWS.
const EventSettings = "settings"

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/settings", h.GetSettings)
	rg.PUT("/settings", h.UpdateSettings)
}

// GetSettings returns the theme settings.
//
// @Summary Get settings
// @Tags Settings
// @Accept json
// @Produce json
// @Success 200 {object} SettingsResponse "Settings"
// @Router /settings [get]
func (h *Handler) GetSettings(c *gin.Context) {
	response.Success(c, http.StatusOK, ToSettingsResponse(h.service.Get()))
}

// UpdateSettings changes the theme settings; absent fields are left unchanged.
//
// @Summary Update settings
// @Tags Settings
// @Accept json
// @Produce json
// @Param settings body UpdateSettingsRequest true "Fields to change"
// @Success 200 {object} SettingsResponse "Updated settings"
// @Failure 400 {object} response.ErrorResponse "Invalid body or theme type"
// @Failure 500 {object} response.ErrorResponse "Failed to save settings"
// @Router /settings [put]
func (h *Handler) UpdateSettings(c *gin.Context) {
	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body", err.Error())
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid settings", errs)
		return
	}

	st, err := h.service.Update(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidTheme) {
			response.Error(c, http.StatusBadRequest, "INVALID_THEME", err.Error())
			return
		}
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to save settings")
		return
	}
	response.Success(c, http.StatusOK, ToSettingsResponse(st))
}

// ServeWS pushes the settings after every change.
//
// @Summary Settings stream
// @Description Upgrades to a websocket; the first event carries the current value
// @Tags Settings
// @Produce json
// @Success 101 "Switching protocols"
// @Router /ws/settings [get]
func (h *Handler) ServeWS(c *gin.Context) {
	wsstream.Serve(c, EventSettings, h.service.Watch, func(st domain.Settings) any {
		return ToSettingsResponse(st)
	})
}
