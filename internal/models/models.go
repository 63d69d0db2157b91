package models

import (
	"time"

	"gorm.io/gorm"
)

// StationSettings is the singleton station configuration row.
// It is created on first access with a UTC default and never deleted.
type StationSettings struct {
	gorm.Model
	Name        string `json:"name"`
	Description string `json:"description" gorm:"type:text"`
	Timezone    string `json:"timezone" gorm:"not null;default:UTC"` // IANA zone id
}

// Show is a program definition. A show exclusively owns its schedule
// slots; deleting a show deletes them.
type Show struct {
	gorm.Model
	Title            string         `json:"title" gorm:"not null"`
	Host             string         `json:"host"`
	Description      string         `json:"description" gorm:"type:text"`
	RecordingEnabled bool           `json:"recording_enabled" gorm:"default:false"`
	StreamURL        string         `json:"stream_url"` // recording source
	Slots            []ScheduleSlot `json:"slots,omitempty" gorm:"foreignKey:ShowID;constraint:OnDelete:CASCADE"`
}

// ScheduleSlot is one concrete broadcast interval. Start and end are
// absolute UTC instants; recurring requests are materialized as one row
// per weekly occurrence at creation time. Intervals are half-open
// [StartTime, EndTime): a slot ending exactly when another starts does
// not overlap it.
type ScheduleSlot struct {
	gorm.Model
	ShowID      uint      `json:"show_id" gorm:"not null;index"`
	StartTime   time.Time `json:"start_time" gorm:"not null;index"`
	EndTime     time.Time `json:"end_time" gorm:"not null;index"`
	IsRecurring bool      `json:"is_recurring" gorm:"default:false"`

	// Lookup-only back-reference to the recording this slot spawned.
	// Recordings outlive slot deletion.
	RecordingID *uint `json:"recording_id,omitempty" gorm:"index"`

	Show Show `json:"show,omitempty" gorm:"foreignKey:ShowID"`
}

// Valid reports whether the slot has a strictly positive duration.
// Zero-or-negative-duration rows are corrupt and are excluded from
// overlap checks and recorder matching.
func (s *ScheduleSlot) Valid() bool {
	return s.EndTime.After(s.StartTime)
}

// Contains reports whether t falls inside the slot's half-open interval.
func (s *ScheduleSlot) Contains(t time.Time) bool {
	return !t.Before(s.StartTime) && t.Before(s.EndTime)
}

// RecordingStatus is the capture lifecycle state.
type RecordingStatus string

const (
	// RecordingStatusRecording means capture is in progress; EndTime is nil.
	RecordingStatusRecording RecordingStatus = "recording"
	// RecordingStatusCompleted means capture finished normally.
	RecordingStatusCompleted RecordingStatus = "completed"
	// RecordingStatusError means capture failed or was forcibly terminated.
	RecordingStatusError RecordingStatus = "error"
)

// Terminal reports whether the status is an at-rest state that needs no
// further monitoring.
func (s RecordingStatus) Terminal() bool {
	return s == RecordingStatusCompleted || s == RecordingStatusError
}

// Recording is one capture attempt and its resulting audio file.
// Rows are created when capture starts and mutated only by the recorder
// loop, or by the mutation pipeline updating size/duration afterwards.
type Recording struct {
	gorm.Model
	SlotID          *uint           `json:"slot_id,omitempty" gorm:"index"` // nil for ad hoc captures
	ShowID          *uint           `json:"show_id,omitempty" gorm:"index"`
	FilePath        string          `json:"file_path" gorm:"not null"`
	SourceURL       string          `json:"source_url"`
	StartTime       time.Time       `json:"start_time"`
	EndTime         *time.Time      `json:"end_time,omitempty"` // nil until finished
	Status          RecordingStatus `json:"status" gorm:"not null;index"`
	SizeBytes       int64           `json:"size_bytes"`
	DurationSeconds float64         `json:"duration_seconds"`
	ErrorMessage    string          `json:"error_message,omitempty" gorm:"type:text"`
}

// Episode is published metadata layered 1:1 onto a completed recording.
// Its lifecycle is independent of the recording's.
type Episode struct {
	gorm.Model
	RecordingID uint      `json:"recording_id" gorm:"uniqueIndex;not null"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description" gorm:"type:text"`
	Tags        string    `json:"tags"`
	PublishedAt time.Time `json:"published_at"`

	Recording Recording `json:"recording,omitempty" gorm:"foreignKey:RecordingID"`
}

// All returns every model for auto migration.
func All() []any {
	return []any{
		&StationSettings{},
		&Show{},
		&ScheduleSlot{},
		&Recording{},
		&Episode{},
	}
}
