package schedule

import (
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Catskill909/radio-sub001/api/types"
	scheduleService "github.com/Catskill909/radio-sub001/internal/services/schedule"
	apperrors "github.com/Catskill909/radio-sub001/pkg/errors"
)

// CreateSlotRequest represents a single slot request
// @Description Request body for creating one schedule slot. Times are RFC3339 instants.
type CreateSlotRequest struct {
	ShowID    uint      `json:"show_id" binding:"required,min=1" example:"3"`
	StartTime time.Time `json:"start_time" binding:"required" example:"2026-09-07T14:00:00Z"`
	EndTime   time.Time `json:"end_time" binding:"required" example:"2026-09-07T16:00:00Z"`
}

// CreateRecurringRequest represents a weekly recurring slot request
// @Description Request body for materializing weekly occurrences. local_start is a wall-clock
// @Description time interpreted in timezone for every week, so occurrences stay at the same
// @Description local hour across DST transitions.
type CreateRecurringRequest struct {
	ShowID       uint      `json:"show_id" binding:"required,min=1" example:"3"`
	LocalStart   time.Time `json:"local_start" binding:"required" example:"2026-09-08T09:00:00Z"`
	DurationMins int       `json:"duration_minutes" binding:"required,min=1" example:"120"`
	Timezone     string    `json:"timezone" binding:"required" example:"America/New_York"`
	Occurrences  int       `json:"occurrences" binding:"required,min=1" example:"12"`
}

// ConflictDetails is the structured payload of a 409 response
type ConflictDetails struct {
	OccurrenceIndex int       `json:"occurrence_index"`
	CandidateStart  time.Time `json:"candidate_start"`
	CandidateEnd    time.Time `json:"candidate_end"`
	Self            bool      `json:"self"`
	ExistingSlotID  uint      `json:"existing_slot_id,omitempty"`
	ExistingShow    string    `json:"existing_show,omitempty"`
	ExistingStart   time.Time `json:"existing_start"`
	ExistingEnd     time.Time `json:"existing_end"`
}

// CreateSlot creates one schedule slot
// @Summary Create a schedule slot
// @Description Persists one slot if it overlaps nothing. Intervals are half-open, so a slot
// @Description starting exactly when another ends is accepted.
// @Tags schedule
// @Accept json
// @Produce json
// @Param request body CreateSlotRequest true "Slot interval"
// @Success 201 {object} models.ScheduleSlot
// @Failure 400 {object} types.ErrorResponse "Invalid or too-short interval"
// @Failure 409 {object} types.ErrorResponse "Overlaps an existing slot"
// @Router /api/v1/schedule/slots [post]
func CreateSlot(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateSlotRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		slot, err := deps.ScheduleService.CreateSlot(c.Request.Context(), scheduleService.CreateSlotParams{
			ShowID: req.ShowID,
			Start:  req.StartTime,
			End:    req.EndTime,
		})
		if err != nil {
			sendScheduleError(c, err)
			return
		}
		types.SendCreated(c, slot)
	}
}

// CreateRecurringSlots creates weekly occurrences
// @Summary Create weekly recurring slots
// @Description Expands the request into concrete occurrence rows and persists them all-or-nothing:
// @Description if any occurrence conflicts, nothing is created and the 409 names the first conflict.
// @Tags schedule
// @Accept json
// @Produce json
// @Param request body CreateRecurringRequest true "Recurrence parameters"
// @Success 201 {array} models.ScheduleSlot
// @Failure 400 {object} types.ErrorResponse "Invalid range, timezone, or occurrence count"
// @Failure 409 {object} types.ErrorResponse "An occurrence overlaps an existing slot"
// @Router /api/v1/schedule/slots/recurring [post]
func CreateRecurringSlots(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateRecurringRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		slots, err := deps.ScheduleService.CreateRecurringSlots(c.Request.Context(), scheduleService.RecurringSlotParams{
			ShowID:      req.ShowID,
			LocalStart:  req.LocalStart,
			Duration:    time.Duration(req.DurationMins) * time.Minute,
			Timezone:    req.Timezone,
			Occurrences: req.Occurrences,
		})
		if err != nil {
			sendScheduleError(c, err)
			return
		}
		types.SendCreated(c, slots)
	}
}

// ListSlots lists slots intersecting a time range
// @Summary List schedule slots
// @Description Returns slots intersecting the half-open [from, to) window, ordered by start time.
// @Tags schedule
// @Produce json
// @Param from query string true "Range start (RFC3339)"
// @Param to query string true "Range end (RFC3339)"
// @Success 200 {array} models.ScheduleSlot
// @Failure 400 {object} types.ErrorResponse
// @Router /api/v1/schedule/slots [get]
func ListSlots(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		from, ok := parseTimeQuery(c, "from")
		if !ok {
			return
		}
		to, ok := parseTimeQuery(c, "to")
		if !ok {
			return
		}
		if !to.After(from) {
			types.SendBadRequest(c, "'to' must be after 'from'")
			return
		}

		slots, err := deps.ScheduleService.ListSlots(c.Request.Context(), from, to)
		if err != nil {
			types.SendInternalError(c, fmt.Sprintf("Failed to list slots: %v", err))
			return
		}
		types.SendSuccess(c, slots)
	}
}

// GetSlot returns a single slot
// @Summary Get a schedule slot
// @Tags schedule
// @Produce json
// @Param id path int true "Slot ID"
// @Success 200 {object} models.ScheduleSlot
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/schedule/slots/{id} [get]
func GetSlot(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := types.ParseUintParam(c, "id")
		if !ok {
			return
		}

		slot, err := deps.ScheduleService.GetSlot(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, scheduleService.ErrSlotNotFound) {
				types.SendNotFound(c, "Slot not found")
				return
			}
			types.SendInternalError(c, fmt.Sprintf("Failed to load slot: %v", err))
			return
		}
		types.SendSuccess(c, slot)
	}
}

// DeleteSlot removes a slot
// @Summary Delete a schedule slot
// @Description Removes the slot. Recordings already made from it are untouched.
// @Tags schedule
// @Produce json
// @Param id path int true "Slot ID"
// @Success 200 {object} types.DeletedResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/schedule/slots/{id} [delete]
func DeleteSlot(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := types.ParseUintParam(c, "id")
		if !ok {
			return
		}

		if err := deps.ScheduleService.DeleteSlot(c.Request.Context(), id); err != nil {
			if errors.Is(err, scheduleService.ErrSlotNotFound) {
				types.SendNotFound(c, "Slot not found")
				return
			}
			types.SendInternalError(c, fmt.Sprintf("Failed to delete slot: %v", err))
			return
		}
		types.SendSuccess(c, types.DeletedResponse{Status: types.StatusOK, ID: id})
	}
}

// OnAir returns the slots currently on air
// @Summary Slots on air now
// @Tags schedule
// @Produce json
// @Success 200 {array} models.ScheduleSlot
// @Router /api/v1/schedule/on-air [get]
func OnAir(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		slots, err := deps.ScheduleService.SlotsOnAir(c.Request.Context(), time.Now().UTC())
		if err != nil {
			types.SendInternalError(c, fmt.Sprintf("Failed to query on-air slots: %v", err))
			return
		}
		types.SendSuccess(c, slots)
	}
}

// PurgeCorrupt deletes zero-or-negative-duration slot rows
// @Summary Purge corrupt slots
// @Description Removes rows whose end time is not after their start time. Such rows are
// @Description already excluded from overlap checks and recorder matching.
// @Tags schedule
// @Produce json
// @Success 200 {object} map[string]int64
// @Router /api/v1/schedule/purge-corrupt [post]
func PurgeCorrupt(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		purged, err := deps.ScheduleService.PurgeCorruptSlots(c.Request.Context())
		if err != nil {
			types.SendInternalError(c, fmt.Sprintf("Failed to purge corrupt slots: %v", err))
			return
		}
		types.SendSuccess(c, gin.H{"purged": purged})
	}
}

func sendScheduleError(c *gin.Context, err error) {
	var conflict *scheduleService.ConflictError
	if errors.As(err, &conflict) {
		types.SendAppError(c, apperrors.New(apperrors.ErrCodeScheduleConflict, conflict.Error()).
			WithDetail("conflict", ConflictDetails{
				OccurrenceIndex: conflict.OccurrenceIndex,
				CandidateStart:  conflict.CandidateStart,
				CandidateEnd:    conflict.CandidateEnd,
				Self:            conflict.Self,
				ExistingSlotID:  conflict.Existing.ID,
				ExistingShow:    conflict.ShowTitle,
				ExistingStart:   conflict.Existing.StartTime,
				ExistingEnd:     conflict.Existing.EndTime,
			}))
		return
	}
	switch {
	case errors.Is(err, scheduleService.ErrInvalidRange):
		types.SendAppError(c, apperrors.New(apperrors.ErrCodeInvalidRange, err.Error()))
	case errors.Is(err, scheduleService.ErrInvalidTimezone):
		types.SendAppError(c, apperrors.New(apperrors.ErrCodeInvalidTimezone, err.Error()))
	case errors.Is(err, scheduleService.ErrNoOccurrences):
		types.SendAppError(c, apperrors.New(apperrors.ErrCodeInvalidInput, err.Error()))
	case errors.Is(err, scheduleService.ErrTooManyOccurrences):
		types.SendAppError(c, apperrors.New(apperrors.ErrCodeInvalidInput, err.Error()))
	default:
		types.SendInternalError(c, fmt.Sprintf("Schedule operation failed: %v", err))
	}
}

func parseTimeQuery(c *gin.Context, name string) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		types.SendBadRequest(c, "Missing required query parameter: "+name)
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		types.SendBadRequest(c, "Invalid "+name+": expected RFC3339 timestamp")
		return time.Time{}, false
	}
	return t.UTC(), true
}
