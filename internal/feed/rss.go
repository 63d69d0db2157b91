package feed

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/eduncan911/podcast"

	"github.com/Catskill909/radio-sub001/internal/models"
	"github.com/Catskill909/radio-sub001/internal/services/episodes"
	"github.com/Catskill909/radio-sub001/internal/services/settings"
)

// Options tunes feed rendering.
type Options struct {
	// MaxEpisodes caps the number of items in the feed; at or below
	// zero means no cap. Episodes are newest-first, so the cap keeps
	// the most recent ones.
	MaxEpisodes int
	// Language is the RFC 5646 channel language, e.g. "en".
	Language string
}

// Generator renders the station's published episodes as an RSS feed.
type Generator struct {
	episodes episodes.Service
	settings settings.Service
	baseURL  string
	opts     Options
}

// NewGenerator creates a feed generator. baseURL is the externally
// reachable root used for enclosure links, e.g. "https://radio.example".
func NewGenerator(episodeSvc episodes.Service, settingsSvc settings.Service, baseURL string, opts Options) *Generator {
	return &Generator{
		episodes: episodeSvc,
		settings: settingsSvc,
		baseURL:  strings.TrimRight(baseURL, "/"),
		opts:     opts,
	}
}

// Generate renders the current feed XML. Only episodes over completed
// recordings appear; the episodes service guarantees that at publish
// time, but a recording later marked error is filtered out here too.
func (g *Generator) Generate(ctx context.Context) (string, error) {
	station, err := g.settings.Get(ctx)
	if err != nil {
		return "", err
	}

	eps, err := g.episodes.List(ctx)
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	title := station.Name
	if title == "" {
		title = "Station Archive"
	}
	p := podcast.New(title, g.baseURL+"/api/v1/feed", station.Description, &now, &now)
	if g.opts.Language != "" {
		p.Language = g.opts.Language
	}

	added := 0
	for i := range eps {
		ep := eps[i]
		if ep.Recording.Status != models.RecordingStatusCompleted {
			continue
		}
		if g.opts.MaxEpisodes > 0 && added >= g.opts.MaxEpisodes {
			break
		}
		pubDate := ep.PublishedAt
		item := podcast.Item{
			Title:       ep.Title,
			Description: itemDescription(ep),
			PubDate:     &pubDate,
		}
		item.AddEnclosure(g.enclosureURL(ep.RecordingID), podcast.MP3, ep.Recording.SizeBytes)
		item.AddDuration(int64(ep.Recording.DurationSeconds))
		if _, err := p.AddItem(item); err != nil {
			return "", fmt.Errorf("adding feed item for episode %d: %w", ep.ID, err)
		}
		added++
	}

	return p.String(), nil
}

func (g *Generator) enclosureURL(recordingID uint) string {
	return fmt.Sprintf("%s/api/v1/recordings/%d/download", g.baseURL, recordingID)
}

func itemDescription(ep models.Episode) string {
	if ep.Description != "" {
		return ep.Description
	}
	// The podcast library rejects empty descriptions.
	return filepath.Base(ep.Recording.FilePath)
}
