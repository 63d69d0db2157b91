package recordings

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Catskill909/radio-sub001/api/types"
	"github.com/Catskill909/radio-sub001/internal/models"
	"github.com/Catskill909/radio-sub001/internal/services/mutation"
	recordingsService "github.com/Catskill909/radio-sub001/internal/services/recordings"
	apperrors "github.com/Catskill909/radio-sub001/pkg/errors"
)

// TrimRequest represents a trim edit
// @Description Request body for trimming a recording to [start_seconds, end_seconds)
type TrimRequest struct {
	StartSeconds float64 `json:"start_seconds" binding:"min=0" example:"12.5"`
	EndSeconds   float64 `json:"end_seconds" binding:"required,gt=0" example:"3590"`
}

// FadeRequest represents a fade edit
// @Description Request body for adding fade ramps; a zero length skips that side
type FadeRequest struct {
	FadeInSeconds  float64 `json:"fade_in_seconds" binding:"min=0" example:"3"`
	FadeOutSeconds float64 `json:"fade_out_seconds" binding:"min=0" example:"5"`
}

// NormalizeRequest represents a loudness normalization edit
type NormalizeRequest struct {
	TargetLoudness float64 `json:"target_loudness" binding:"required" example:"-16"`
}

// ListRecordings lists recordings with optional filters
// @Summary List recordings
// @Tags recordings
// @Produce json
// @Param status query string false "Filter by status (recording, completed, error)"
// @Param show_id query int false "Filter by show"
// @Param limit query int false "Page size (default 50)"
// @Param offset query int false "Page offset"
// @Success 200 {array} models.Recording
// @Router /api/v1/recordings [get]
func ListRecordings(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		filters := recordingsService.ListFilters{
			Status: models.RecordingStatus(c.Query("status")),
		}
		if raw := c.Query("show_id"); raw != "" {
			showID, err := strconv.ParseUint(raw, 10, 32)
			if err != nil {
				types.SendBadRequest(c, "Invalid show_id")
				return
			}
			filters.ShowID = uint(showID)
		}
		filters.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
		filters.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

		recordings, err := deps.RecordingService.List(c.Request.Context(), filters)
		if err != nil {
			types.SendInternalError(c, fmt.Sprintf("Failed to list recordings: %v", err))
			return
		}
		types.SendSuccess(c, recordings)
	}
}

// GetRecording returns a single recording
// @Summary Get a recording
// @Tags recordings
// @Produce json
// @Param id path int true "Recording ID"
// @Success 200 {object} models.Recording
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/recordings/{id} [get]
func GetRecording(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := types.ParseUintParam(c, "id")
		if !ok {
			return
		}

		recording, err := deps.RecordingService.Get(c.Request.Context(), id)
		if err != nil {
			sendRecordingError(c, err)
			return
		}
		types.SendSuccess(c, recording)
	}
}

// DeleteRecording removes a terminal recording row
// @Summary Delete a recording
// @Description Removes the database row only; the audio file on disk is left for external cleanup.
// @Description In-progress recordings cannot be deleted.
// @Tags recordings
// @Produce json
// @Param id path int true "Recording ID"
// @Success 200 {object} types.DeletedResponse
// @Failure 404 {object} types.ErrorResponse
// @Failure 409 {object} types.ErrorResponse "Recording is still in progress"
// @Router /api/v1/recordings/{id} [delete]
func DeleteRecording(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := types.ParseUintParam(c, "id")
		if !ok {
			return
		}

		if err := deps.RecordingService.Delete(c.Request.Context(), id); err != nil {
			if errors.Is(err, recordingsService.ErrNotTerminal) {
				types.SendConflict(c, err.Error(), nil)
				return
			}
			sendRecordingError(c, err)
			return
		}
		types.SendSuccess(c, types.DeletedResponse{Status: types.StatusOK, ID: id})
	}
}

// DownloadRecording streams the audio file
// @Summary Download a recording's audio file
// @Tags recordings
// @Produce audio/mpeg
// @Param id path int true "Recording ID"
// @Success 200 {file} binary
// @Failure 404 {object} types.ErrorResponse
// @Failure 409 {object} types.ErrorResponse "Recording is still in progress"
// @Router /api/v1/recordings/{id}/download [get]
func DownloadRecording(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := types.ParseUintParam(c, "id")
		if !ok {
			return
		}

		recording, err := deps.RecordingService.Get(c.Request.Context(), id)
		if err != nil {
			sendRecordingError(c, err)
			return
		}
		if recording.Status == models.RecordingStatusRecording {
			types.SendConflict(c, "Recording is still in progress", nil)
			return
		}

		c.Header("Content-Disposition",
			fmt.Sprintf("attachment; filename=%q", filepath.Base(recording.FilePath)))
		c.Header("Content-Type", "audio/mpeg")
		c.File(recording.FilePath)
	}
}

// TrimRecording cuts the audio file to a time range
// @Summary Trim a recording
// @Description Destructively trims the audio file to [start_seconds, end_seconds). The original
// @Description is backed up before the edit and restored if the edit fails.
// @Tags recordings
// @Accept json
// @Produce json
// @Param id path int true "Recording ID"
// @Param request body TrimRequest true "Trim range in seconds"
// @Success 200 {object} models.Recording "Updated recording with refreshed size and duration"
// @Failure 400 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Failure 409 {object} types.ErrorResponse "Another edit is in progress for this file"
// @Failure 502 {object} types.ErrorResponse "Audio engine failed; original restored"
// @Router /api/v1/recordings/{id}/trim [post]
func TrimRecording(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := types.ParseUintParam(c, "id")
		if !ok {
			return
		}

		var req TrimRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}
		if req.EndSeconds <= req.StartSeconds {
			types.SendBadRequest(c, "end_seconds must be greater than start_seconds")
			return
		}

		recording, err := deps.MutationService.Trim(c.Request.Context(), id, req.StartSeconds, req.EndSeconds)
		if err != nil {
			sendMutationError(c, err)
			return
		}
		types.SendSuccess(c, recording)
	}
}

// FadeRecording adds fade-in/fade-out ramps
// @Summary Apply fades to a recording
// @Tags recordings
// @Accept json
// @Produce json
// @Param id path int true "Recording ID"
// @Param request body FadeRequest true "Fade lengths in seconds"
// @Success 200 {object} models.Recording
// @Failure 400 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Failure 409 {object} types.ErrorResponse
// @Failure 502 {object} types.ErrorResponse
// @Router /api/v1/recordings/{id}/fade [post]
func FadeRecording(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := types.ParseUintParam(c, "id")
		if !ok {
			return
		}

		var req FadeRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}
		if req.FadeInSeconds == 0 && req.FadeOutSeconds == 0 {
			types.SendBadRequest(c, "at least one fade length must be positive")
			return
		}

		recording, err := deps.MutationService.ApplyFade(c.Request.Context(), id, req.FadeInSeconds, req.FadeOutSeconds)
		if err != nil {
			sendMutationError(c, err)
			return
		}
		types.SendSuccess(c, recording)
	}
}

// NormalizeRecording normalizes loudness
// @Summary Normalize a recording's loudness
// @Tags recordings
// @Accept json
// @Produce json
// @Param id path int true "Recording ID"
// @Param request body NormalizeRequest true "Target integrated loudness in LUFS"
// @Success 200 {object} models.Recording
// @Failure 400 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Failure 409 {object} types.ErrorResponse
// @Failure 502 {object} types.ErrorResponse
// @Router /api/v1/recordings/{id}/normalize [post]
func NormalizeRecording(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := types.ParseUintParam(c, "id")
		if !ok {
			return
		}

		var req NormalizeRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}
		if req.TargetLoudness > -5 || req.TargetLoudness < -70 {
			types.SendBadRequest(c, "target_loudness must be between -70 and -5 LUFS")
			return
		}

		recording, err := deps.MutationService.Normalize(c.Request.Context(), id, req.TargetLoudness)
		if err != nil {
			sendMutationError(c, err)
			return
		}
		types.SendSuccess(c, recording)
	}
}

func sendRecordingError(c *gin.Context, err error) {
	if errors.Is(err, recordingsService.ErrRecordingNotFound) {
		types.SendNotFound(c, "Recording not found")
		return
	}
	types.SendInternalError(c, fmt.Sprintf("Recording operation failed: %v", err))
}

func sendMutationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, recordingsService.ErrRecordingNotFound):
		types.SendNotFound(c, "Recording not found")
	case errors.Is(err, mutation.ErrMutationInProgress):
		types.SendAppError(c, apperrors.New(apperrors.ErrCodeMutationBusy, err.Error()))
	case errors.Is(err, mutation.ErrNotCompleted),
		errors.Is(err, mutation.ErrInvalidFilename):
		appErr := apperrors.New(apperrors.ErrCodeValidation, err.Error())
		appErr.HTTPCode = http.StatusUnprocessableEntity
		types.SendAppError(c, appErr)
	case errors.Is(err, mutation.ErrBackupFailed):
		types.SendAppError(c, apperrors.New(apperrors.ErrCodeBackupFailed, err.Error()))
	case errors.Is(err, mutation.ErrRestoreFailed):
		types.SendAppError(c, apperrors.New(apperrors.ErrCodeRestoreFailed, err.Error()))
	default:
		// Everything else is a transform failure surfaced by the audio
		// engine.
		types.SendAppError(c, apperrors.New(apperrors.ErrCodeEngineFailed, err.Error()))
	}
}
