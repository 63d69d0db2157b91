package recorder

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Catskill909/radio-sub001/internal/models"
	"github.com/Catskill909/radio-sub001/internal/services/recordings"
	"github.com/Catskill909/radio-sub001/internal/services/schedule"
	"github.com/Catskill909/radio-sub001/pkg/audio"
	"github.com/Catskill909/radio-sub001/pkg/capture"
)

// Prober extracts duration metadata from a finished capture file.
// Satisfied by *audio.Engine.
type Prober interface {
	Probe(ctx context.Context, filePath string) (*audio.Metadata, error)
}

// Recorder is the long-running loop that turns schedule state into
// recording lifecycle actions. Each tick matches "now" against the
// schedule, starts captures for on-air slots with recording enabled,
// and finishes captures whose slot has ended or vanished. Captures for
// different sources run concurrently; a failure in one never stops the
// loop or touches another.
type Recorder struct {
	schedule   schedule.Service
	recordings recordings.Service
	adapter    capture.Adapter
	prober     Prober

	recordingsDir string
	pollInterval  time.Duration
	clock         func() time.Time

	registry *sourceRegistry
	stopChan chan struct{}
	wg       sync.WaitGroup
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithClock overrides the time source (used by tests).
func WithClock(clock func() time.Time) Option {
	return func(r *Recorder) {
		r.clock = clock
	}
}

// New creates a recorder loop.
func New(scheduleSvc schedule.Service, recordingSvc recordings.Service, adapter capture.Adapter, prober Prober, recordingsDir string, pollInterval time.Duration, opts ...Option) *Recorder {
	if pollInterval <= 0 {
		pollInterval = 5 * time.Second
	}
	r := &Recorder{
		schedule:      scheduleSvc,
		recordings:    recordingSvc,
		adapter:       adapter,
		prober:        prober,
		recordingsDir: recordingsDir,
		pollInterval:  pollInterval,
		clock:         func() time.Time { return time.Now().UTC() },
		registry:      newSourceRegistry(),
		stopChan:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Start reconciles leftover state and launches the polling loop.
func (r *Recorder) Start(ctx context.Context) error {
	if err := os.MkdirAll(r.recordingsDir, 0755); err != nil {
		return fmt.Errorf("creating recordings directory: %w", err)
	}

	// Crash recovery runs before the first tick so stale rows can never
	// shadow a fresh capture.
	if err := r.Reconcile(ctx); err != nil {
		return fmt.Errorf("reconciling stale recordings: %w", err)
	}

	r.wg.Add(1)
	go r.run(ctx)
	return nil
}

// Stop terminates the loop and finalizes in-flight captures.
func (r *Recorder) Stop() {
	close(r.stopChan)
	r.wg.Wait()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	for _, c := range r.registry.snapshot() {
		r.finishCapture(ctx, c)
	}
}

func (r *Recorder) run(ctx context.Context) {
	defer r.wg.Done()

	log.Printf("Recorder loop starting (poll interval %s)", r.pollInterval)
	defer log.Printf("Recorder loop stopped")

	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-r.stopChan:
			return
		case <-ticker.C:
			r.Tick(ctx)
		}
	}
}

// Tick performs one full schedule-check pass. Exported so tests can
// drive the loop without the ticker.
func (r *Recorder) Tick(ctx context.Context) {
	now := r.clock()

	onAir, err := r.schedule.SlotsOnAir(ctx, now)
	if err != nil {
		log.Printf("Recorder: schedule query failed: %v", err)
		return
	}

	onAirSlots := make(map[uint]models.ScheduleSlot, len(onAir))
	for _, slot := range onAir {
		onAirSlots[slot.ID] = slot
	}

	// Finish pass: captures whose slot has ended, or whose slot was
	// deleted or moved out from under them.
	for _, c := range r.registry.snapshot() {
		slot, stillOnAir := onAirSlots[c.slotID]
		if stillOnAir && slot.EndTime.After(now) {
			continue
		}
		r.finishCapture(ctx, c)
	}

	// Start pass: one capture per eligible on-air slot.
	for _, slot := range onAir {
		if !slot.Show.RecordingEnabled || slot.Show.StreamURL == "" {
			continue
		}
		// One attempt per slot; a slot that already spawned a recording
		// is never captured again, so polling twice inside the same
		// interval cannot create a second row.
		if slot.RecordingID != nil {
			continue
		}
		if !r.registry.claim(slot.Show.StreamURL) {
			continue
		}
		r.startCapture(ctx, slot, now)
	}
}

func (r *Recorder) startCapture(ctx context.Context, slot models.ScheduleSlot, now time.Time) {
	source := slot.Show.StreamURL
	filePath := r.captureFilePath(slot)

	slotID := slot.ID
	showID := slot.ShowID
	recording, err := r.recordings.Begin(ctx, recordings.BeginParams{
		SlotID:    &slotID,
		ShowID:    &showID,
		SourceURL: source,
		FilePath:  filePath,
		StartTime: now,
	})
	if err != nil {
		r.registry.release(source)
		log.Printf("Recorder: could not create recording row for slot %d: %v", slot.ID, err)
		return
	}

	if err := r.schedule.AttachRecording(ctx, slot.ID, recording.ID); err != nil {
		// The slot may have been deleted between the query and here;
		// the capture still proceeds and the row keeps its own slot id.
		log.Printf("Recorder: could not attach recording %d to slot %d: %v", recording.ID, slot.ID, err)
	}

	session, err := r.adapter.Start(ctx, source, filePath)
	if err != nil {
		r.registry.release(source)
		if failErr := r.recordings.Fail(ctx, recording.ID, r.clock(), err.Error()); failErr != nil {
			log.Printf("Recorder: could not mark recording %d failed: %v", recording.ID, failErr)
		}
		log.Printf("Recorder: capture start failed for %q: %v", slot.Show.Title, err)
		return
	}

	r.registry.attach(source, &activeCapture{
		session:     session,
		recordingID: recording.ID,
		slotID:      slot.ID,
		showTitle:   slot.Show.Title,
		source:      source,
		filePath:    filePath,
		startedAt:   now,
		endTime:     slot.EndTime,
	})
	log.Printf("Recorder: capture started for %q -> %s", slot.Show.Title, filePath)
}

// finishCapture stops the session and resolves the row to a terminal
// state. The source claim is always released, even on failure.
func (r *Recorder) finishCapture(ctx context.Context, c *activeCapture) {
	defer r.registry.release(c.source)

	now := r.clock()

	if err := c.session.Stop(); err != nil {
		if failErr := r.recordings.Fail(ctx, c.recordingID, now, err.Error()); failErr != nil {
			log.Printf("Recorder: could not mark recording %d failed: %v", c.recordingID, failErr)
		}
		log.Printf("Recorder: capture stop failed for %q: %v", c.showTitle, err)
		return
	}

	sizeBytes, durationSeconds, err := r.statAndProbe(ctx, c.filePath)
	if err != nil {
		if failErr := r.recordings.Fail(ctx, c.recordingID, now, err.Error()); failErr != nil {
			log.Printf("Recorder: could not mark recording %d failed: %v", c.recordingID, failErr)
		}
		log.Printf("Recorder: finalize failed for %q: %v", c.showTitle, err)
		return
	}

	if err := r.recordings.Complete(ctx, c.recordingID, now, sizeBytes, durationSeconds); err != nil {
		log.Printf("Recorder: could not mark recording %d completed: %v", c.recordingID, err)
		return
	}
	log.Printf("Recorder: capture completed for %q (%d bytes, %.1fs)", c.showTitle, sizeBytes, durationSeconds)
}

// Reconcile resolves rows left in the recording state by an unclean
// process restart: verify-and-complete when the file exists and the
// slot has already ended, error otherwise. Nothing is ever left in the
// recording state without a live capture behind it.
func (r *Recorder) Reconcile(ctx context.Context) error {
	stale, err := r.recordings.Stale(ctx)
	if err != nil {
		return err
	}

	now := r.clock()
	for _, rec := range stale {
		slotEnded := true
		var slotEnd time.Time
		if rec.SlotID != nil {
			if slot, err := r.schedule.GetSlot(ctx, *rec.SlotID); err == nil {
				slotEnd = slot.EndTime
				slotEnded = !slot.EndTime.After(now)
			}
		}

		if slotEnded {
			if sizeBytes, durationSeconds, err := r.statAndProbe(ctx, rec.FilePath); err == nil {
				end := slotEnd
				if end.IsZero() {
					end = now
				}
				if err := r.recordings.Complete(ctx, rec.ID, end, sizeBytes, durationSeconds); err != nil {
					return err
				}
				log.Printf("Recorder: reconciled recording %d to completed", rec.ID)
				continue
			}
		}

		msg := "capture interrupted by recorder restart"
		if err := r.recordings.Fail(ctx, rec.ID, now, msg); err != nil {
			return err
		}
		log.Printf("Recorder: reconciled recording %d to error", rec.ID)
	}
	return nil
}

// Status describes the loop's current captures for the operator surface.
type Status struct {
	ActiveCaptures []CaptureStatus `json:"active_captures"`
}

// CaptureStatus is one in-flight capture.
type CaptureStatus struct {
	RecordingID uint      `json:"recording_id"`
	SlotID      uint      `json:"slot_id"`
	ShowTitle   string    `json:"show_title"`
	Source      string    `json:"source"`
	FilePath    string    `json:"file_path"`
	StartedAt   time.Time `json:"started_at"`
	EndsAt      time.Time `json:"ends_at"`
}

// Status reports the in-flight captures.
func (r *Recorder) Status() Status {
	captures := r.registry.snapshot()
	status := Status{ActiveCaptures: make([]CaptureStatus, 0, len(captures))}
	for _, c := range captures {
		status.ActiveCaptures = append(status.ActiveCaptures, CaptureStatus{
			RecordingID: c.recordingID,
			SlotID:      c.slotID,
			ShowTitle:   c.showTitle,
			Source:      c.source,
			FilePath:    c.filePath,
			StartedAt:   c.startedAt,
			EndsAt:      c.endTime,
		})
	}
	return status
}

func (r *Recorder) statAndProbe(ctx context.Context, filePath string) (int64, float64, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return 0, 0, fmt.Errorf("stat capture file: %w", err)
	}

	meta, err := r.prober.Probe(ctx, filePath)
	if err != nil {
		return 0, 0, fmt.Errorf("probe capture file: %w", err)
	}
	return info.Size(), meta.Duration, nil
}

// captureFilePath derives a unique target path from the slot identity.
func (r *Recorder) captureFilePath(slot models.ScheduleSlot) string {
	name := fmt.Sprintf("%s_%s_%s.mp3",
		sanitizeName(slot.Show.Title),
		slot.StartTime.UTC().Format("20060102-1504"),
		uuid.New().String()[:8],
	)
	return filepath.Join(r.recordingsDir, name)
}

// sanitizeName reduces a show title to a safe filename fragment.
func sanitizeName(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteRune('-')
		}
	}
	if b.Len() == 0 {
		return "show"
	}
	return b.String()
}
