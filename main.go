package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clipcomp/internal/assemble"
	"clipcomp/internal/cfg"
	"clipcomp/internal/database"
	"clipcomp/internal/downloads"
	"clipcomp/internal/models"
	"clipcomp/internal/process"
	"clipcomp/internal/repo"
	"clipcomp/internal/store"
	"clipcomp/internal/twitch"
	"clipcomp/internal/utils/logging"
	"clipcomp/internal/youtube"

	"github.com/spf13/viper"
)

var startTime time.Time

func init() {
	startTime = time.Now()
}

func main() {
	if err := cfg.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if !viper.GetBool("execute") {
		return // Exit early if not meant to execute
	}

	settings, err := cfg.LoadSettings()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Configuration error:", err)
		os.Exit(1)
	}

	logging.SetLevel(settings.General.LogLevel)
	if err := logging.SetupLogging(settings.Video.OutputDir); err != nil {
		fmt.Printf("Notice: log file was not created: %v\n", err)
	}

	logging.I("clipcomp started at: %v", startTime.Format("2006-01-02 15:04:05.00 MST"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pipeline, closeFn, err := buildPipeline(settings)
	if err != nil {
		logging.E("%v", err)
		os.Exit(1)
	}
	defer closeFn()

	if err := pipeline.Run(ctx); err != nil {
		logging.E("%v", err)
		os.Exit(1)
	}

	endTime := time.Now()
	logging.I("clipcomp finished at: %v", endTime.Format("2006-01-02 15:04:05.00 MST"))
	logging.I("Time elapsed: %.2f seconds", endTime.Sub(startTime).Seconds())
}

// buildPipeline wires concrete adapters into a run pipeline. The returned
// close function releases the history database if one was opened.
func buildPipeline(settings *models.Settings) (*process.Pipeline, func(), error) {
	source := twitch.New(settings.Twitch.ClientID, settings.Twitch.ClientSecret)
	downloader := downloads.New()
	assembler := assemble.New(&settings.Video)
	counter := store.NewFileCounter(settings.General.CounterFile)

	publisher := youtube.NewPublisher(&youtube.OAuthAuthenticator{
		ClientSecretFile: settings.YouTube.ClientSecretFile,
		TokenFile:        settings.YouTube.TokenFile,
	})

	closeFn := func() {}
	var history process.RunRecorder
	if settings.General.DBFile != "" {
		db, err := database.InitDB(settings.General.DBFile)
		if err != nil {
			return nil, nil, fmt.Errorf("opening run history database: %w", err)
		}
		closeFn = func() { db.Close() }
		history = repo.NewRunStore(db.DB)
	}

	return process.New(settings, source, downloader, assembler, publisher, counter, history), closeFn, nil
}
