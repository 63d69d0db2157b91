package episodes

import (
	"bytes"
	"context"
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
	episodesService "github.com/Catskill909/radio-sub001/internal/services/episodes"
	recordingsService "github.com/Catskill909/radio-sub001/internal/services/recordings"
)

type episodeFixture struct {
	router     *gin.Engine
	recordings recordingsService.Service
}

func setupAPI(t *testing.T) *episodeFixture {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Recording{}, &models.Episode{}))

	recordingSvc := recordingsService.NewService(recordingsService.NewRepository(db))
	deps := &types.Dependencies{
		RecordingService: recordingSvc,
		EpisodeService:   episodesService.NewService(db, recordingSvc),
	}

	router := gin.New()
	RegisterRoutes(router.Group("/api/v1/episodes"), deps)
	return &episodeFixture{router: router, recordings: recordingSvc}
}

func (f *episodeFixture) completedRecording(t *testing.T) *models.Recording {
	ctx := context.Background()
	rec, err := f.recordings.Begin(ctx, recordingsService.BeginParams{
		SourceURL: "https://stream.example.com/live",
		FilePath:  "/recordings/show.mp3",
		StartTime: time.Now().UTC().Add(-time.Hour),
	})
	require.NoError(t, err)
	require.NoError(t, f.recordings.Complete(ctx, rec.ID, time.Now().UTC(), 1024, 3600))
	return rec
}

func (f *episodeFixture) post(t *testing.T, payload any) *httptest.ResponseRecorder {
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/episodes", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	f.router.ServeHTTP(w, req)
	return w
}

func TestPublishEpisode(t *testing.T) {
	f := setupAPI(t)
	rec := f.completedRecording(t)

	w := f.post(t, PublishEpisodeRequest{
		RecordingID: rec.ID,
		Title:       "Morning Drive - Sep 7",
		Tags:        "news",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var episode models.Episode
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &episode))
	assert.Equal(t, rec.ID, episode.RecordingID)
}

func TestPublishEpisode_RecordingNotCompleted(t *testing.T) {
	f := setupAPI(t)
	rec, err := f.recordings.Begin(context.Background(), recordingsService.BeginParams{
		SourceURL: "https://stream.example.com/live",
		FilePath:  "/recordings/live.mp3",
		StartTime: time.Now().UTC(),
	})
	require.NoError(t, err)

	w := f.post(t, PublishEpisodeRequest{RecordingID: rec.ID, Title: "Too Early"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestPublishEpisode_DuplicateConflicts(t *testing.T) {
	f := setupAPI(t)
	rec := f.completedRecording(t)

	require.Equal(t, http.StatusCreated, f.post(t, PublishEpisodeRequest{RecordingID: rec.ID, Title: "First"}).Code)
	assert.Equal(t, http.StatusConflict, f.post(t, PublishEpisodeRequest{RecordingID: rec.ID, Title: "Again"}).Code)
}

func TestPublishEpisode_UnknownRecording(t *testing.T) {
	f := setupAPI(t)

	w := f.post(t, PublishEpisodeRequest{RecordingID: 404, Title: "Ghost"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUnpublishEpisode(t *testing.T) {
	f := setupAPI(t)
	rec := f.completedRecording(t)

	w := f.post(t, PublishEpisodeRequest{RecordingID: rec.ID, Title: "Short Lived"})
	require.Equal(t, http.StatusCreated, w.Code)
	var episode models.Episode
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &episode))

	del := httptest.NewRecorder()
	f.router.ServeHTTP(del, httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/v1/episodes/%d", episode.ID), nil))
	assert.Equal(t, http.StatusOK, del.Code)

	missing := httptest.NewRecorder()
	f.router.ServeHTTP(missing, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/episodes/%d", episode.ID), nil))
	assert.Equal(t, http.StatusNotFound, missing.Code)
}
