package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/dtg01100/vacation-calendar-updater/config"
	"github.com/dtg01100/vacation-calendar-updater/internal/history"
	"github.com/dtg01100/vacation-calendar-updater/internal/httpserver"
	"github.com/dtg01100/vacation-calendar-updater/internal/schedule"
	"github.com/dtg01100/vacation-calendar-updater/internal/vacation"
	"github.com/dtg01100/vacation-calendar-updater/internal/vacation/usecase"
	"github.com/dtg01100/vacation-calendar-updater/pkg/gcalendar"
	"github.com/dtg01100/vacation-calendar-updater/pkg/gmailer"
	"github.com/dtg01100/vacation-calendar-updater/pkg/log"
)

// @title       Vacation Calendar API
// @description Creates, groups and manages recurring vacation events in Google Calendar with undo/redo history.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Vacation Calendar Updater...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)
	logger.Infof(ctx, "Default calendar: %s", cfg.Google.CalendarID)

	// 3. Google Calendar client
	if cfg.Google.CredentialsPath == "" {
		logger.Error(ctx, "google.credentials_path is required")
		return
	}
	calendarClient, err := gcalendar.NewClientFromCredentialsFile(ctx, cfg.Google.CredentialsPath)
	if err != nil {
		logger.Error(ctx, "Google Calendar not available: ", err)
		logger.Error(ctx, "→ Run `go run scripts/gcal-auth/main.go` to generate token.json")
		return
	}
	logger.Info(ctx, "Google Calendar initialized")

	// 4. Gmail notifications (optional)
	var mailer vacation.Mailer
	if cfg.Notification.SendEmail {
		gm, mErr := gmailer.NewMailerFromCredentialsFile(ctx, cfg.Google.CredentialsPath)
		if mErr != nil {
			logger.Warnf(ctx, "Gmail notifications disabled: %v", mErr)
		} else {
			mailer = gm
			if addr, pErr := gm.Profile(ctx); pErr != nil {
				logger.Warnf(ctx, "Gmail profile check failed: %v", pErr)
			} else {
				logger.Infof(ctx, "Gmail notifications enabled for %s", addr)
			}
		}
	}

	// 5. History store
	store := history.NewStore(cfg.History.Path, cfg.History.MaxEntries)
	if loaded := store.Load(); loaded > 0 {
		logger.Infof(ctx, "Loaded %d history operations from %s", loaded, cfg.History.Path)
	}

	// 6. Vacation UseCase
	startClock, err := schedule.ParseClock(cfg.Vacation.StartTime)
	if err != nil {
		logger.Warnf(ctx, "Invalid vacation.start_time %q, using 09:00: %v", cfg.Vacation.StartTime, err)
		startClock = schedule.Clock{Hour: 9}
	}
	vacationUC := usecase.New(
		logger,
		calendarClient,
		mailer,
		store,
		vacation.Defaults{
			CalendarID:        cfg.Google.CalendarID,
			Timezone:          cfg.Google.Timezone,
			GapDays:           cfg.Batch.GapDays,
			NotificationEmail: cfg.Notification.Email,
			StartClock:        startClock,
			DayLengthHours:    cfg.Vacation.DayLengthHours,
			Weekdays:          cfg.Vacation.Weekdays,
		},
	)

	// 7. Periodic refresh re-imports the calendar so externally created
	// events show up as batches.
	if cfg.Refresh.Enabled {
		c := cron.New()
		_, cronErr := c.AddFunc(cfg.Refresh.CronSpec, func() {
			window := cfg.Refresh.Window
			if window <= 0 {
				window = 90
			}
			now := time.Now()
			_, impErr := vacationUC.Import(ctx, vacation.ImportInput{
				CalendarID: cfg.Google.CalendarID,
				From:       now.AddDate(0, 0, -window),
				To:         now.AddDate(0, 0, window),
			})
			if impErr != nil {
				logger.Errorf(ctx, "Periodic refresh failed: %v", impErr)
			}
			if removed := store.Prune(365 * 24 * time.Hour); removed > 0 {
				logger.Infof(ctx, "Pruned %d history operations older than a year", removed)
			}
		})
		if cronErr != nil {
			logger.Errorf(ctx, "Invalid refresh cron spec %q: %v", cfg.Refresh.CronSpec, cronErr)
		} else {
			c.Start()
			defer c.Stop()
			logger.Infof(ctx, "Periodic refresh scheduled: %s", cfg.Refresh.CronSpec)
		}
	}

	// 8. HTTP Server
	httpServer, err := httpserver.New(httpserver.Config{
		Logger:          logger,
		Port:            cfg.HTTPServer.Port,
		Mode:            cfg.HTTPServer.Mode,
		Environment:     cfg.Environment.Name,
		VacationUC:      vacationUC,
		RateLimitPerMin: cfg.RateLimit.RequestsPerMin,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 9. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
