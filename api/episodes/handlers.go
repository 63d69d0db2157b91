package episodes

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/Catskill909/radio-sub001/api/types"
	episodesService "github.com/Catskill909/radio-sub001/internal/services/episodes"
	recordingsService "github.com/Catskill909/radio-sub001/internal/services/recordings"
)

// PublishEpisodeRequest represents a publish request
// @Description Request body for publishing a completed recording as a feed episode
type PublishEpisodeRequest struct {
	RecordingID uint   `json:"recording_id" binding:"required,min=1" example:"42"`
	Title       string `json:"title" binding:"required,min=1" example:"Morning Drive - Sep 7"`
	Description string `json:"description" example:"Guest interview with the city council"`
	Tags        string `json:"tags" example:"news,interview"`
}

// UpdateEpisodeRequest represents a metadata update
type UpdateEpisodeRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Tags        *string `json:"tags"`
}

// PublishEpisode publishes a completed recording
// @Summary Publish an episode
// @Description Creates a feed episode over a completed recording. Each recording can be
// @Description published at most once.
// @Tags episodes
// @Accept json
// @Produce json
// @Param request body PublishEpisodeRequest true "Episode metadata"
// @Success 201 {object} models.Episode
// @Failure 400 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse "Recording not found"
// @Failure 409 {object} types.ErrorResponse "Already published"
// @Failure 422 {object} types.ErrorResponse "Recording not completed"
// @Router /api/v1/episodes [post]
func PublishEpisode(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PublishEpisodeRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		episode, err := deps.EpisodeService.Publish(c.Request.Context(), episodesService.PublishParams{
			RecordingID: req.RecordingID,
			Title:       req.Title,
			Description: req.Description,
			Tags:        req.Tags,
		})
		if err != nil {
			sendEpisodeError(c, err)
			return
		}
		types.SendCreated(c, episode)
	}
}

// ListEpisodes lists published episodes newest-first
// @Summary List episodes
// @Tags episodes
// @Produce json
// @Success 200 {array} models.Episode
// @Router /api/v1/episodes [get]
func ListEpisodes(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		episodes, err := deps.EpisodeService.List(c.Request.Context())
		if err != nil {
			types.SendInternalError(c, fmt.Sprintf("Failed to list episodes: %v", err))
			return
		}
		types.SendSuccess(c, episodes)
	}
}

// GetEpisode returns one episode with its recording
// @Summary Get an episode
// @Tags episodes
// @Produce json
// @Param id path int true "Episode ID"
// @Success 200 {object} models.Episode
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/episodes/{id} [get]
func GetEpisode(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := types.ParseUintParam(c, "id")
		if !ok {
			return
		}

		episode, err := deps.EpisodeService.Get(c.Request.Context(), id)
		if err != nil {
			sendEpisodeError(c, err)
			return
		}
		types.SendSuccess(c, episode)
	}
}

// UpdateEpisode updates episode metadata
// @Summary Update an episode
// @Tags episodes
// @Accept json
// @Produce json
// @Param id path int true "Episode ID"
// @Param request body UpdateEpisodeRequest true "Fields to update"
// @Success 200 {object} models.Episode
// @Failure 400 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/episodes/{id} [put]
func UpdateEpisode(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := types.ParseUintParam(c, "id")
		if !ok {
			return
		}

		var req UpdateEpisodeRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		episode, err := deps.EpisodeService.Update(c.Request.Context(), id, episodesService.UpdateParams{
			Title:       req.Title,
			Description: req.Description,
			Tags:        req.Tags,
		})
		if err != nil {
			if errors.Is(err, episodesService.ErrEpisodeNotFound) {
				types.SendNotFound(c, "Episode not found")
				return
			}
			types.SendBadRequest(c, err.Error())
			return
		}
		types.SendSuccess(c, episode)
	}
}

// UnpublishEpisode removes an episode from the feed
// @Summary Unpublish an episode
// @Description Removes the episode row only; the recording and its audio file are untouched.
// @Tags episodes
// @Produce json
// @Param id path int true "Episode ID"
// @Success 200 {object} types.DeletedResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/episodes/{id} [delete]
func UnpublishEpisode(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := types.ParseUintParam(c, "id")
		if !ok {
			return
		}

		if err := deps.EpisodeService.Unpublish(c.Request.Context(), id); err != nil {
			sendEpisodeError(c, err)
			return
		}
		types.SendSuccess(c, types.DeletedResponse{Status: types.StatusOK, ID: id})
	}
}

func sendEpisodeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, episodesService.ErrEpisodeNotFound):
		types.SendNotFound(c, "Episode not found")
	case errors.Is(err, recordingsService.ErrRecordingNotFound):
		types.SendNotFound(c, "Recording not found")
	case errors.Is(err, episodesService.ErrAlreadyPublished):
		types.SendConflict(c, err.Error(), nil)
	case errors.Is(err, episodesService.ErrRecordingNotCompleted):
		types.SendUnprocessable(c, err.Error())
	default:
		types.SendInternalError(c, fmt.Sprintf("Episode operation failed: %v", err))
	}
}
