package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Catskill909/radio-sub001/api"
	"github.com/Catskill909/radio-sub001/api/types"
	"github.com/Catskill909/radio-sub001/internal/database"
	"github.com/Catskill909/radio-sub001/internal/feed"
	"github.com/Catskill909/radio-sub001/internal/models"
	"github.com/Catskill909/radio-sub001/internal/services/episodes"
	"github.com/Catskill909/radio-sub001/internal/services/mutation"
	"github.com/Catskill909/radio-sub001/internal/services/recorder"
	"github.com/Catskill909/radio-sub001/internal/services/recordings"
	"github.com/Catskill909/radio-sub001/internal/services/schedule"
	"github.com/Catskill909/radio-sub001/internal/services/settings"
	"github.com/Catskill909/radio-sub001/internal/services/shows"
	"github.com/Catskill909/radio-sub001/pkg/audio"
	"github.com/Catskill909/radio-sub001/pkg/capture"
	"github.com/Catskill909/radio-sub001/pkg/config"
)

var (
	serverHost string
	serverPort int
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server and recorder loop",
	Long: `Start the Radio Calendar API server with the configured settings.

The server exposes the schedule, recording, and episode endpoints, and
runs the recorder loop that captures live streams according to the
calendar.

Example:
  radio-api serve
  radio-api serve --port 9090
  radio-api serve --host 0.0.0.0 --port 8080`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverHost, "host", "", "server host (overrides config)")
	serveCmd.Flags().IntVar(&serverPort, "port", 0, "server port (overrides config)")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if serverHost == "" {
		serverHost = cfg.Server.Host
	}
	if serverPort == 0 {
		serverPort = cfg.Server.Port
	}

	db, err := database.Open(cfg.Database.Path, database.Options{
		Verbose:         cfg.Database.Verbose,
		MaxOpenConns:    cfg.Database.MaxConnections,
		MaxIdleConns:    cfg.Database.MaxIdleConnections,
		ConnMaxLifetime: cfg.Database.ConnectionMaxLifetime,
	})
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer db.Close()

	if err := db.AutoMigrate(models.All()...); err != nil {
		return err
	}

	deps, rec, err := buildDependencies(db, cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if rec != nil {
		if err := rec.Start(ctx); err != nil {
			return fmt.Errorf("starting recorder: %w", err)
		}
		defer rec.Stop()
	}

	server := api.NewServer(fmt.Sprintf("%s:%d", serverHost, serverPort))
	server.SetDatabase(db)
	server.SetDependencies(deps)
	if err := server.Initialize(); err != nil {
		return fmt.Errorf("initializing server: %w", err)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			serverErr <- fmt.Errorf("server error: %w", err)
		}
	}()

	log.Printf("Server is ready to handle requests at %s:%d", serverHost, serverPort)

	select {
	case <-stop:
		log.Println("Shutting down server...")
	case err := <-serverErr:
		fmt.Fprintf(os.Stderr, "%v\n", err)
		log.Println("Shutting down server...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Server forced to shutdown: %v\n", err)
		return err
	}

	log.Println("Server gracefully stopped")
	return nil
}

// buildDependencies wires the service graph. The recorder and feed
// generator are nil when disabled in config; every other HTTP surface
// still works without them.
func buildDependencies(db *database.DB, cfg *config.Config) (*types.Dependencies, *recorder.Recorder, error) {
	engine := audio.New(cfg.Processing.FFmpegPath, cfg.Processing.FFprobePath, cfg.Processing.FFmpegTimeout)

	scheduleSvc := schedule.NewService(schedule.NewRepository(db.DB),
		cfg.Schedule.MinSlotDuration, cfg.Schedule.MaxOccurrences)
	recordingSvc := recordings.NewService(recordings.NewRepository(db.DB))
	settingsSvc := settings.NewService(db.DB, settings.Defaults{
		Name:        cfg.Station.Name,
		Description: cfg.Station.Description,
		Timezone:    cfg.Station.Timezone,
	})
	showSvc := shows.NewService(db.DB)
	episodeSvc := episodes.NewService(db.DB, recordingSvc)
	mutationSvc := mutation.NewService(recordingSvc, engine, cfg.Storage.RecordingsDir, cfg.Storage.BackupsDir)

	var feedGen *feed.Generator
	if cfg.Feed.Enabled {
		feedGen = feed.NewGenerator(episodeSvc, settingsSvc, cfg.Server.BaseURL, feed.Options{
			MaxEpisodes: cfg.Feed.MaxEpisodes,
			Language:    cfg.Feed.Language,
		})
	}

	var rec *recorder.Recorder
	if cfg.Recorder.Enabled {
		adapter, err := capture.NewFFmpegAdapter(cfg.Processing.FFmpegPath, cfg.Recorder.StopGrace)
		if err != nil {
			return nil, nil, fmt.Errorf("initializing capture adapter: %w", err)
		}
		rec = recorder.New(scheduleSvc, recordingSvc, adapter, engine,
			cfg.Storage.RecordingsDir, cfg.Recorder.PollInterval)
	}

	return &types.Dependencies{
		DB:               db,
		SettingsService:  settingsSvc,
		ShowService:      showSvc,
		ScheduleService:  scheduleSvc,
		RecordingService: recordingSvc,
		MutationService:  mutationSvc,
		EpisodeService:   episodeSvc,
		FeedGenerator:    feedGen,
		Recorder:         rec,
	}, rec, nil
}
