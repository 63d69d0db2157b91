package episodes

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Catskill909/radio-sub001/internal/models"
	"github.com/Catskill909/radio-sub001/internal/services/recordings"
)

func setupTestService(t *testing.T) (*ServiceImpl, recordings.Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Recording{}, &models.Episode{}))

	recordingSvc := recordings.NewService(recordings.NewRepository(db))
	return NewService(db, recordingSvc), recordingSvc, db
}

func strPtr(s string) *string { return &s }

func completedRecording(t *testing.T, svc recordings.Service) *models.Recording {
	ctx := context.Background()
	rec, err := svc.Begin(ctx, recordings.BeginParams{
		SourceURL: "https://stream.example.com/live",
		FilePath:  "/recordings/episode-source.mp3",
		StartTime: time.Now().UTC().Add(-time.Hour),
	})
	require.NoError(t, err)
	require.NoError(t, svc.Complete(ctx, rec.ID, time.Now().UTC(), 1024, 3600))
	rec, err = svc.Get(ctx, rec.ID)
	require.NoError(t, err)
	return rec
}

func TestPublish(t *testing.T) {
	svc, recordingSvc, _ := setupTestService(t)
	rec := completedRecording(t, recordingSvc)

	episode, err := svc.Publish(context.Background(), PublishParams{
		RecordingID: rec.ID,
		Title:       "Pilot Episode",
		Description: "The first broadcast",
		Tags:        "music,debut",
	})
	require.NoError(t, err)
	assert.NotZero(t, episode.ID)
	assert.Equal(t, rec.ID, episode.RecordingID)
	assert.False(t, episode.PublishedAt.IsZero())
	assert.Equal(t, rec.FilePath, episode.Recording.FilePath)
}

func TestPublish_RequiresTitle(t *testing.T) {
	svc, recordingSvc, _ := setupTestService(t)
	rec := completedRecording(t, recordingSvc)

	_, err := svc.Publish(context.Background(), PublishParams{RecordingID: rec.ID})
	assert.Error(t, err)
}

func TestPublish_RequiresCompletedRecording(t *testing.T) {
	svc, recordingSvc, _ := setupTestService(t)
	ctx := context.Background()

	rec, err := recordingSvc.Begin(ctx, recordings.BeginParams{
		SourceURL: "https://stream.example.com/live",
		FilePath:  "/recordings/in-progress.mp3",
		StartTime: time.Now().UTC(),
	})
	require.NoError(t, err)

	_, err = svc.Publish(ctx, PublishParams{RecordingID: rec.ID, Title: "Too Soon"})
	assert.ErrorIs(t, err, ErrRecordingNotCompleted)

	require.NoError(t, recordingSvc.Fail(ctx, rec.ID, time.Now().UTC(), "stream dropped"))
	_, err = svc.Publish(ctx, PublishParams{RecordingID: rec.ID, Title: "Still No"})
	assert.ErrorIs(t, err, ErrRecordingNotCompleted)
}

func TestPublish_RejectsDuplicate(t *testing.T) {
	svc, recordingSvc, _ := setupTestService(t)
	rec := completedRecording(t, recordingSvc)
	ctx := context.Background()

	_, err := svc.Publish(ctx, PublishParams{RecordingID: rec.ID, Title: "First"})
	require.NoError(t, err)

	_, err = svc.Publish(ctx, PublishParams{RecordingID: rec.ID, Title: "Second"})
	assert.ErrorIs(t, err, ErrAlreadyPublished)
}

func TestList_NewestFirstWithRecordings(t *testing.T) {
	svc, recordingSvc, db := setupTestService(t)
	ctx := context.Background()

	first := completedRecording(t, recordingSvc)
	second := completedRecording(t, recordingSvc)

	ep1, err := svc.Publish(ctx, PublishParams{RecordingID: first.ID, Title: "Older"})
	require.NoError(t, err)
	_, err = svc.Publish(ctx, PublishParams{RecordingID: second.ID, Title: "Newer"})
	require.NoError(t, err)

	// Push the first episode into the past to make the ordering
	// deterministic.
	require.NoError(t, db.Model(&models.Episode{}).Where("id = ?", ep1.ID).
		Update("published_at", time.Now().UTC().Add(-24*time.Hour)).Error)

	episodes, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, episodes, 2)
	assert.Equal(t, "Newer", episodes[0].Title)
	assert.Equal(t, "Older", episodes[1].Title)
	assert.NotZero(t, episodes[0].Recording.ID)
}

func TestUpdate_PartialFields(t *testing.T) {
	svc, recordingSvc, _ := setupTestService(t)
	rec := completedRecording(t, recordingSvc)
	ctx := context.Background()

	episode, err := svc.Publish(ctx, PublishParams{RecordingID: rec.ID, Title: "Draft Title", Tags: "a"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, episode.ID, UpdateParams{Description: strPtr("Show notes")})
	require.NoError(t, err)
	assert.Equal(t, "Draft Title", updated.Title)
	assert.Equal(t, "Show notes", updated.Description)
	assert.Equal(t, "a", updated.Tags)

	_, err = svc.Update(ctx, episode.ID, UpdateParams{Title: strPtr("")})
	assert.Error(t, err)
}

func TestUnpublish_KeepsRecording(t *testing.T) {
	svc, recordingSvc, _ := setupTestService(t)
	rec := completedRecording(t, recordingSvc)
	ctx := context.Background()

	episode, err := svc.Publish(ctx, PublishParams{RecordingID: rec.ID, Title: "Ephemeral"})
	require.NoError(t, err)

	require.NoError(t, svc.Unpublish(ctx, episode.ID))

	_, err = svc.Get(ctx, episode.ID)
	assert.ErrorIs(t, err, ErrEpisodeNotFound)

	// The recording survives and can be republished.
	got, err := recordingSvc.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RecordingStatusCompleted, got.Status)

	_, err = svc.Publish(ctx, PublishParams{RecordingID: rec.ID, Title: "Republished"})
	assert.NoError(t, err)
}

func TestUnpublish_NotFound(t *testing.T) {
	svc, _, _ := setupTestService(t)
	assert.ErrorIs(t, svc.Unpublish(context.Background(), 77), ErrEpisodeNotFound)
}
