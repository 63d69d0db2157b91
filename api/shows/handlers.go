package shows

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/Catskill909/radio-sub001/api/types"
	showsService "github.com/Catskill909/radio-sub001/internal/services/shows"
)

// CreateShowRequest represents a new show definition
// @Description Request body for creating a show
type CreateShowRequest struct {
	Title            string `json:"title" binding:"required,min=1" example:"Morning Drive"`
	Host             string `json:"host" example:"Alex Rivera"`
	Description      string `json:"description" example:"Weekday morning news and music"`
	RecordingEnabled bool   `json:"recording_enabled" example:"true"`
	StreamURL        string `json:"stream_url" example:"https://stream.example.com/live"`
}

// UpdateShowRequest represents a partial show update
type UpdateShowRequest struct {
	Title            *string `json:"title"`
	Host             *string `json:"host"`
	Description      *string `json:"description"`
	RecordingEnabled *bool   `json:"recording_enabled"`
	StreamURL        *string `json:"stream_url"`
}

// CreateShow creates a show definition
// @Summary Create a show
// @Tags shows
// @Accept json
// @Produce json
// @Param request body CreateShowRequest true "Show definition"
// @Success 201 {object} models.Show
// @Failure 400 {object} types.ErrorResponse
// @Router /api/v1/shows [post]
func CreateShow(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateShowRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		show, err := deps.ShowService.Create(c.Request.Context(), showsService.CreateParams{
			Title:            req.Title,
			Host:             req.Host,
			Description:      req.Description,
			RecordingEnabled: req.RecordingEnabled,
			StreamURL:        req.StreamURL,
		})
		if err != nil {
			types.SendBadRequest(c, err.Error())
			return
		}
		types.SendCreated(c, show)
	}
}

// ListShows lists all shows
// @Summary List shows
// @Tags shows
// @Produce json
// @Success 200 {array} models.Show
// @Router /api/v1/shows [get]
func ListShows(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		shows, err := deps.ShowService.List(c.Request.Context())
		if err != nil {
			types.SendInternalError(c, fmt.Sprintf("Failed to list shows: %v", err))
			return
		}
		types.SendSuccess(c, shows)
	}
}

// GetShow returns a show with its schedule slots
// @Summary Get a show
// @Tags shows
// @Produce json
// @Param id path int true "Show ID"
// @Success 200 {object} models.Show
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/shows/{id} [get]
func GetShow(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := types.ParseUintParam(c, "id")
		if !ok {
			return
		}

		show, err := deps.ShowService.Get(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, showsService.ErrShowNotFound) {
				types.SendNotFound(c, "Show not found")
				return
			}
			types.SendInternalError(c, fmt.Sprintf("Failed to load show: %v", err))
			return
		}
		types.SendSuccess(c, show)
	}
}

// UpdateShow applies a partial update to a show
// @Summary Update a show
// @Tags shows
// @Accept json
// @Produce json
// @Param id path int true "Show ID"
// @Param request body UpdateShowRequest true "Fields to update"
// @Success 200 {object} models.Show
// @Failure 400 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/shows/{id} [put]
func UpdateShow(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := types.ParseUintParam(c, "id")
		if !ok {
			return
		}

		var req UpdateShowRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		show, err := deps.ShowService.Update(c.Request.Context(), id, showsService.UpdateParams{
			Title:            req.Title,
			Host:             req.Host,
			Description:      req.Description,
			RecordingEnabled: req.RecordingEnabled,
			StreamURL:        req.StreamURL,
		})
		if err != nil {
			if errors.Is(err, showsService.ErrShowNotFound) {
				types.SendNotFound(c, "Show not found")
				return
			}
			types.SendBadRequest(c, err.Error())
			return
		}
		types.SendSuccess(c, show)
	}
}

// DeleteShow removes a show and its schedule slots
// @Summary Delete a show
// @Description Deletes the show and all of its schedule slots in one transaction. Recordings are kept.
// @Tags shows
// @Produce json
// @Param id path int true "Show ID"
// @Success 200 {object} types.DeletedResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/shows/{id} [delete]
func DeleteShow(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := types.ParseUintParam(c, "id")
		if !ok {
			return
		}

		if err := deps.ShowService.Delete(c.Request.Context(), id); err != nil {
			if errors.Is(err, showsService.ErrShowNotFound) {
				types.SendNotFound(c, "Show not found")
				return
			}
			types.SendInternalError(c, fmt.Sprintf("Failed to delete show: %v", err))
			return
		}
		types.SendSuccess(c, types.DeletedResponse{Status: types.StatusOK, ID: id})
	}
}
