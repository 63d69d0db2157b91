package settings

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/Catskill909/radio-sub001/api/types"
	settingsService "github.com/Catskill909/radio-sub001/internal/services/settings"
)

// UpdateSettingsRequest represents a station settings update
// @Description Request body for updating station settings; omitted fields are unchanged
type UpdateSettingsRequest struct {
	Name        *string `json:"name" example:"WXYZ Community Radio"`
	Description *string `json:"description" example:"Independent community radio"`
	Timezone    *string `json:"timezone" example:"America/New_York"`
}

// GetSettings returns the station settings
// @Summary Get station settings
// @Description Returns the singleton station settings row, creating it with UTC defaults on first access
// @Tags settings
// @Produce json
// @Success 200 {object} models.StationSettings
// @Failure 500 {object} types.ErrorResponse
// @Router /api/v1/settings [get]
func GetSettings(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		settings, err := deps.SettingsService.Get(c.Request.Context())
		if err != nil {
			types.SendInternalError(c, fmt.Sprintf("Failed to load settings: %v", err))
			return
		}
		types.SendSuccess(c, settings)
	}
}

// UpdateSettings updates the station settings
// @Summary Update station settings
// @Description Applies a partial update. Timezone changes are validated against the IANA database before anything is written.
// @Tags settings
// @Accept json
// @Produce json
// @Param request body UpdateSettingsRequest true "Fields to update"
// @Success 200 {object} models.StationSettings
// @Failure 400 {object} types.ErrorResponse "Invalid body or unknown timezone"
// @Failure 500 {object} types.ErrorResponse
// @Router /api/v1/settings [put]
func UpdateSettings(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateSettingsRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		settings, err := deps.SettingsService.Update(c.Request.Context(), settingsService.UpdateParams{
			Name:        req.Name,
			Description: req.Description,
			Timezone:    req.Timezone,
		})
		if err != nil {
			if errors.Is(err, settingsService.ErrInvalidTimezone) {
				types.SendBadRequest(c, err.Error())
				return
			}
			types.SendInternalError(c, fmt.Sprintf("Failed to update settings: %v", err))
			return
		}
		types.SendSuccess(c, settings)
	}
}
