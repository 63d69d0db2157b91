package recorder

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Catskill909/radio-sub001/internal/models"
	"github.com/Catskill909/radio-sub001/internal/services/recordings"
	"github.com/Catskill909/radio-sub001/internal/services/schedule"
	"github.com/Catskill909/radio-sub001/pkg/audio"
	"github.com/Catskill909/radio-sub001/pkg/capture"
)

type fakeSession struct {
	stopErr error
	stopped bool
	done    chan struct{}
}

func (s *fakeSession) Stop() error {
	s.stopped = true
	return s.stopErr
}

func (s *fakeSession) Done() <-chan struct{} { return s.done }

// fakeAdapter records Start calls and creates the output file so the
// finish pass has something to stat.
type fakeAdapter struct {
	mu       sync.Mutex
	sessions []*fakeSession
	startErr map[string]error // per source URL
	started  []string
}

func (a *fakeAdapter) Start(ctx context.Context, sourceURL, outputPath string) (capture.Session, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.startErr[sourceURL]; err != nil {
		return nil, err
	}
	if err := os.WriteFile(outputPath, []byte("audio-bytes"), 0644); err != nil {
		return nil, err
	}
	session := &fakeSession{done: make(chan struct{})}
	a.sessions = append(a.sessions, session)
	a.started = append(a.started, sourceURL)
	return session, nil
}

type fakeProber struct {
	err      error
	duration float64
}

func (p *fakeProber) Probe(ctx context.Context, filePath string) (*audio.Metadata, error) {
	if p.err != nil {
		return nil, p.err
	}
	return &audio.Metadata{Duration: p.duration}, nil
}

type fixture struct {
	recorder   *Recorder
	schedule   schedule.Service
	recordings recordings.Service
	adapter    *fakeAdapter
	prober     *fakeProber
	db         *gorm.DB
	now        time.Time
	mu         sync.Mutex
}

func (f *fixture) setNow(t time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = t
}

func (f *fixture) clock() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func setupFixture(t *testing.T) *fixture {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Show{}, &models.ScheduleSlot{}, &models.Recording{}))

	f := &fixture{
		schedule:   schedule.NewService(schedule.NewRepository(db), 0, 0),
		recordings: recordings.NewService(recordings.NewRepository(db)),
		adapter:    &fakeAdapter{startErr: map[string]error{}},
		prober:     &fakeProber{duration: 3600},
		db:         db,
		now:        time.Date(2026, 9, 7, 10, 30, 0, 0, time.UTC),
	}
	f.recorder = New(f.schedule, f.recordings, f.adapter, f.prober,
		t.TempDir(), time.Second, WithClock(f.clock))
	return f
}

func (f *fixture) addShow(t *testing.T, title, streamURL string, recordingEnabled bool) *models.Show {
	show := &models.Show{Title: title, StreamURL: streamURL, RecordingEnabled: recordingEnabled}
	require.NoError(t, f.db.Create(show).Error)
	return show
}

func (f *fixture) addSlot(t *testing.T, showID uint, start, end time.Time) *models.ScheduleSlot {
	slot, err := f.schedule.CreateSlot(context.Background(), schedule.CreateSlotParams{
		ShowID: showID,
		Start:  start,
		End:    end,
	})
	require.NoError(t, err)
	return slot
}

func TestTick_StartsCaptureForOnAirSlot(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	show := f.addShow(t, "Morning Drive", "https://stream.example.com/live", true)
	slot := f.addSlot(t, show.ID,
		time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC),
		time.Date(2026, 9, 7, 11, 0, 0, 0, time.UTC))

	f.recorder.Tick(ctx)

	require.Len(t, f.adapter.started, 1)

	status := f.recorder.Status()
	require.Len(t, status.ActiveCaptures, 1)
	assert.Equal(t, "Morning Drive", status.ActiveCaptures[0].ShowTitle)

	// The row exists in recording state and the slot points at it.
	recs, err := f.recordings.List(ctx, recordings.ListFilters{})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, models.RecordingStatusRecording, recs[0].Status)

	got, err := f.schedule.GetSlot(ctx, slot.ID)
	require.NoError(t, err)
	require.NotNil(t, got.RecordingID)
	assert.Equal(t, recs[0].ID, *got.RecordingID)
}

func TestTick_DoesNotStartTwice(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	show := f.addShow(t, "Morning Drive", "https://stream.example.com/live", true)
	f.addSlot(t, show.ID,
		time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC),
		time.Date(2026, 9, 7, 11, 0, 0, 0, time.UTC))

	f.recorder.Tick(ctx)
	f.recorder.Tick(ctx)
	f.recorder.Tick(ctx)

	assert.Len(t, f.adapter.started, 1)

	recs, err := f.recordings.List(ctx, recordings.ListFilters{})
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}

func TestTick_SkipsDisabledShow(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	disabled := f.addShow(t, "No Recording", "https://stream.example.com/a", false)
	f.addSlot(t, disabled.ID, time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC), time.Date(2026, 9, 7, 11, 0, 0, 0, time.UTC))

	f.recorder.Tick(ctx)

	assert.Empty(t, f.adapter.started)
}

func TestTick_SkipsShowWithoutStreamURL(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	sourceless := f.addShow(t, "No Stream", "", true)
	f.addSlot(t, sourceless.ID, time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC), time.Date(2026, 9, 7, 11, 0, 0, 0, time.UTC))

	f.recorder.Tick(ctx)

	assert.Empty(t, f.adapter.started)
}

func TestTick_CompletesCaptureWhenSlotEnds(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	show := f.addShow(t, "Morning Drive", "https://stream.example.com/live", true)
	f.addSlot(t, show.ID,
		time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC),
		time.Date(2026, 9, 7, 11, 0, 0, 0, time.UTC))

	f.recorder.Tick(ctx)
	require.Len(t, f.adapter.sessions, 1)

	f.setNow(time.Date(2026, 9, 7, 11, 0, 1, 0, time.UTC))
	f.recorder.Tick(ctx)

	assert.True(t, f.adapter.sessions[0].stopped)
	assert.Empty(t, f.recorder.Status().ActiveCaptures)

	recs, err := f.recordings.List(ctx, recordings.ListFilters{})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, models.RecordingStatusCompleted, recs[0].Status)
	assert.EqualValues(t, len("audio-bytes"), recs[0].SizeBytes)
	assert.InDelta(t, 3600, recs[0].DurationSeconds, 0.001)
	require.NotNil(t, recs[0].EndTime)
}

func TestTick_FinishesCaptureWhenSlotDeleted(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	show := f.addShow(t, "Morning Drive", "https://stream.example.com/live", true)
	slot := f.addSlot(t, show.ID,
		time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC),
		time.Date(2026, 9, 7, 11, 0, 0, 0, time.UTC))

	f.recorder.Tick(ctx)
	require.Len(t, f.adapter.sessions, 1)

	require.NoError(t, f.schedule.DeleteSlot(ctx, slot.ID))
	f.recorder.Tick(ctx)

	assert.True(t, f.adapter.sessions[0].stopped)
	assert.Empty(t, f.recorder.Status().ActiveCaptures)
}

func TestTick_StartFailureMarksErrorAndLoopContinues(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	broken := f.addShow(t, "Broken", "https://stream.example.com/broken", true)
	healthy := f.addShow(t, "Healthy", "https://stream.example.com/ok", true)
	f.addSlot(t, broken.ID, time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC), time.Date(2026, 9, 7, 11, 0, 0, 0, time.UTC))
	f.addSlot(t, healthy.ID, time.Date(2026, 9, 7, 11, 0, 0, 0, time.UTC), time.Date(2026, 9, 7, 12, 0, 0, 0, time.UTC))

	f.adapter.startErr["https://stream.example.com/broken"] = errors.New("connection refused")

	f.recorder.Tick(ctx)
	assert.Empty(t, f.adapter.started)

	failed, err := f.recordings.List(ctx, recordings.ListFilters{Status: models.RecordingStatusError})
	require.NoError(t, err)
	require.Len(t, failed, 1)
	assert.Contains(t, failed[0].ErrorMessage, "connection refused")

	// The loop keeps going: the next show's capture starts normally.
	f.setNow(time.Date(2026, 9, 7, 11, 30, 0, 0, time.UTC))
	f.recorder.Tick(ctx)
	assert.Equal(t, []string{"https://stream.example.com/ok"}, f.adapter.started)
}

func TestSourceRegistry_OneClaimPerSource(t *testing.T) {
	reg := newSourceRegistry()

	require.True(t, reg.claim("https://stream.example.com/live"))
	assert.False(t, reg.claim("https://stream.example.com/live"))
	assert.True(t, reg.claim("https://stream.example.com/other"))

	reg.release("https://stream.example.com/live")
	assert.True(t, reg.claim("https://stream.example.com/live"))
}

func TestSourceRegistry_SnapshotSkipsPendingClaims(t *testing.T) {
	reg := newSourceRegistry()

	// A claimed-but-not-attached source is mid-startup and must not
	// appear in status output.
	require.True(t, reg.claim("https://stream.example.com/live"))
	assert.Empty(t, reg.snapshot())

	reg.attach("https://stream.example.com/live", &activeCapture{showTitle: "Live"})
	snap := reg.snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, "Live", snap[0].showTitle)
}

func TestReconcile_CompletesStaleRowWithFile(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	show := f.addShow(t, "Crashed", "https://stream.example.com/live", true)
	slot := f.addSlot(t, show.ID,
		time.Date(2026, 9, 7, 8, 0, 0, 0, time.UTC),
		time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC))

	filePath := filepath.Join(t.TempDir(), "crashed.mp3")
	require.NoError(t, os.WriteFile(filePath, []byte("partial-capture"), 0644))

	slotID := slot.ID
	rec, err := f.recordings.Begin(ctx, recordings.BeginParams{
		SlotID:    &slotID,
		SourceURL: show.StreamURL,
		FilePath:  filePath,
		StartTime: slot.StartTime,
	})
	require.NoError(t, err)

	require.NoError(t, f.recorder.Reconcile(ctx))

	got, err := f.recordings.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RecordingStatusCompleted, got.Status)
	require.NotNil(t, got.EndTime)
	// End time comes from the slot, not from the reconcile instant.
	assert.True(t, got.EndTime.Equal(slot.EndTime))
	assert.EqualValues(t, len("partial-capture"), got.SizeBytes)
}

func TestReconcile_FailsStaleRowWithoutFile(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	rec, err := f.recordings.Begin(ctx, recordings.BeginParams{
		SourceURL: "https://stream.example.com/live",
		FilePath:  "/nonexistent/file.mp3",
		StartTime: f.clock().Add(-time.Hour),
	})
	require.NoError(t, err)

	require.NoError(t, f.recorder.Reconcile(ctx))

	got, err := f.recordings.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RecordingStatusError, got.Status)
	assert.NotEmpty(t, got.ErrorMessage)
}

func TestReconcile_NoStaleRowsIsNoop(t *testing.T) {
	f := setupFixture(t)
	require.NoError(t, f.recorder.Reconcile(context.Background()))
}
