package types

import (
	"github.com/Catskill909/radio-sub001/internal/database"
	"github.com/Catskill909/radio-sub001/internal/feed"
	"github.com/Catskill909/radio-sub001/internal/services/episodes"
	"github.com/Catskill909/radio-sub001/internal/services/mutation"
	"github.com/Catskill909/radio-sub001/internal/services/recorder"
	"github.com/Catskill909/radio-sub001/internal/services/recordings"
	"github.com/Catskill909/radio-sub001/internal/services/schedule"
	"github.com/Catskill909/radio-sub001/internal/services/settings"
	"github.com/Catskill909/radio-sub001/internal/services/shows"
)

// Dependencies holds all the dependencies needed by handlers
type Dependencies struct {
	DB               *database.DB
	SettingsService  settings.Service
	ShowService      shows.Service
	ScheduleService  schedule.Service
	RecordingService recordings.Service
	MutationService  mutation.Service
	EpisodeService   episodes.Service
	FeedGenerator    *feed.Generator
	Recorder         *recorder.Recorder
}
