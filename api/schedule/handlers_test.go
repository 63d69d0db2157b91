package schedule

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Catskill909/radio-sub001/api/types"
	"github.com/Catskill909/radio-sub001/internal/models"
	scheduleService "github.com/Catskill909/radio-sub001/internal/services/schedule"
)

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Show{}, &models.ScheduleSlot{}))

	deps := &types.Dependencies{
		ScheduleService: scheduleService.NewService(scheduleService.NewRepository(db), 15*time.Minute, 0),
	}

	router := gin.New()
	RegisterRoutes(router.Group("/api/v1/schedule"), deps)
	return router, db
}

func createShow(t *testing.T, db *gorm.DB) *models.Show {
	show := &models.Show{Title: "Evening Jazz"}
	require.NoError(t, db.Create(show).Error)
	return show
}

func postJSON(t *testing.T, router *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestCreateSlot(t *testing.T) {
	router, db := setupRouter(t)
	show := createShow(t, db)

	w := postJSON(t, router, "/api/v1/schedule/slots", CreateSlotRequest{
		ShowID:    show.ID,
		StartTime: time.Date(2026, 9, 7, 14, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 9, 7, 16, 0, 0, 0, time.UTC),
	})

	require.Equal(t, http.StatusCreated, w.Code)
	var slot models.ScheduleSlot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &slot))
	assert.NotZero(t, slot.ID)
	assert.Equal(t, show.ID, slot.ShowID)
}

func TestCreateSlot_ConflictShape(t *testing.T) {
	router, db := setupRouter(t)
	show := createShow(t, db)

	first := CreateSlotRequest{
		ShowID:    show.ID,
		StartTime: time.Date(2026, 9, 7, 14, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 9, 7, 16, 0, 0, 0, time.UTC),
	}
	require.Equal(t, http.StatusCreated, postJSON(t, router, "/api/v1/schedule/slots", first).Code)

	// Overlaps the tail of the first slot.
	w := postJSON(t, router, "/api/v1/schedule/slots", CreateSlotRequest{
		ShowID:    show.ID,
		StartTime: time.Date(2026, 9, 7, 15, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 9, 7, 17, 0, 0, 0, time.UTC),
	})
	require.Equal(t, http.StatusConflict, w.Code)

	var resp struct {
		Error   string `json:"error"`
		Details struct {
			Conflict ConflictDetails `json:"conflict"`
		} `json:"details"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Error)
	assert.Equal(t, "Evening Jazz", resp.Details.Conflict.ExistingShow)
	assert.True(t, resp.Details.Conflict.ExistingStart.Equal(first.StartTime))
}

func TestCreateSlot_AdjacentAccepted(t *testing.T) {
	router, db := setupRouter(t)
	show := createShow(t, db)

	require.Equal(t, http.StatusCreated, postJSON(t, router, "/api/v1/schedule/slots", CreateSlotRequest{
		ShowID:    show.ID,
		StartTime: time.Date(2026, 9, 7, 14, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 9, 7, 16, 0, 0, 0, time.UTC),
	}).Code)

	w := postJSON(t, router, "/api/v1/schedule/slots", CreateSlotRequest{
		ShowID:    show.ID,
		StartTime: time.Date(2026, 9, 7, 16, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 9, 7, 18, 0, 0, 0, time.UTC),
	})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateSlot_TooShortRejected(t *testing.T) {
	router, db := setupRouter(t)
	show := createShow(t, db)

	w := postJSON(t, router, "/api/v1/schedule/slots", CreateSlotRequest{
		ShowID:    show.ID,
		StartTime: time.Date(2026, 9, 7, 14, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 9, 7, 14, 5, 0, 0, time.UTC),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateRecurringSlots_InvalidTimezone(t *testing.T) {
	router, db := setupRouter(t)
	show := createShow(t, db)

	w := postJSON(t, router, "/api/v1/schedule/slots/recurring", CreateRecurringRequest{
		ShowID:       show.ID,
		LocalStart:   time.Date(2026, 9, 8, 9, 0, 0, 0, time.UTC),
		DurationMins: 60,
		Timezone:     "Atlantis/Sunken_City",
		Occurrences:  4,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateRecurringSlots(t *testing.T) {
	router, db := setupRouter(t)
	show := createShow(t, db)

	w := postJSON(t, router, "/api/v1/schedule/slots/recurring", CreateRecurringRequest{
		ShowID:       show.ID,
		LocalStart:   time.Date(2026, 9, 8, 9, 0, 0, 0, time.UTC),
		DurationMins: 120,
		Timezone:     "UTC",
		Occurrences:  3,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var slots []models.ScheduleSlot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &slots))
	assert.Len(t, slots, 3)
}

func TestListSlots_RequiresRange(t *testing.T) {
	router, _ := setupRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/schedule/slots", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/schedule/slots?from=not-a-time&to=2026-09-08T00:00:00Z", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetAndDeleteSlot(t *testing.T) {
	router, db := setupRouter(t)
	show := createShow(t, db)

	w := postJSON(t, router, "/api/v1/schedule/slots", CreateSlotRequest{
		ShowID:    show.ID,
		StartTime: time.Date(2026, 9, 7, 14, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 9, 7, 16, 0, 0, 0, time.UTC),
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var slot models.ScheduleSlot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &slot))

	get := httptest.NewRecorder()
	router.ServeHTTP(get, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/schedule/slots/%d", slot.ID), nil))
	assert.Equal(t, http.StatusOK, get.Code)

	del := httptest.NewRecorder()
	router.ServeHTTP(del, httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/v1/schedule/slots/%d", slot.ID), nil))
	assert.Equal(t, http.StatusOK, del.Code)

	missing := httptest.NewRecorder()
	router.ServeHTTP(missing, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/schedule/slots/%d", slot.ID), nil))
	assert.Equal(t, http.StatusNotFound, missing.Code)
}
