package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Vacation calendar specifics
	Google       GoogleConfig
	Notification NotificationConfig
	Vacation     VacationConfig
	History      HistoryConfig
	Batch        BatchConfig
	Refresh      RefreshConfig
	RateLimit    RateLimitConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type GoogleConfig struct {
	CredentialsPath string
	CalendarID      string
	Timezone        string
}

type NotificationConfig struct {
	Email     string
	SendEmail bool
}

// VacationConfig holds the defaults prefilled into schedule requests.
type VacationConfig struct {
	Weekdays       map[string]bool
	DayLengthHours float64
	StartTime      string
}

type HistoryConfig struct {
	Path       string
	MaxEntries int
}

type BatchConfig struct {
	GapDays int
}

// RefreshConfig controls the periodic re-import of calendar events.
type RefreshConfig struct {
	Enabled  bool
	CronSpec string
	Window   int // days to look back and ahead
}

type RateLimitConfig struct {
	RequestsPerMin int
}

// Load loads configuration using Viper.
// Config file name: config.yaml — searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Google APIs
	cfg.Google.CredentialsPath = viper.GetString("google.credentials_path")
	cfg.Google.CalendarID = viper.GetString("google.calendar_id")
	cfg.Google.Timezone = viper.GetString("google.timezone")
	if googleCreds := viper.GetString("google_credentials"); googleCreds != "" {
		cfg.Google.CredentialsPath = googleCreds
	}

	// Notifications
	cfg.Notification.Email = viper.GetString("notification.email")
	cfg.Notification.SendEmail = viper.GetBool("notification.send_email")

	// Schedule request defaults
	cfg.Vacation.DayLengthHours = viper.GetFloat64("vacation.day_length_hours")
	cfg.Vacation.StartTime = viper.GetString("vacation.start_time")
	cfg.Vacation.Weekdays = map[string]bool{
		"monday":    viper.GetBool("vacation.weekdays.monday"),
		"tuesday":   viper.GetBool("vacation.weekdays.tuesday"),
		"wednesday": viper.GetBool("vacation.weekdays.wednesday"),
		"thursday":  viper.GetBool("vacation.weekdays.thursday"),
		"friday":    viper.GetBool("vacation.weekdays.friday"),
		"saturday":  viper.GetBool("vacation.weekdays.saturday"),
		"sunday":    viper.GetBool("vacation.weekdays.sunday"),
	}

	// History persistence
	cfg.History.Path = viper.GetString("history.path")
	cfg.History.MaxEntries = viper.GetInt("history.max_entries")

	// Batch grouping
	cfg.Batch.GapDays = viper.GetInt("batch.gap_days")

	// Periodic refresh
	cfg.Refresh.Enabled = viper.GetBool("refresh.enabled")
	cfg.Refresh.CronSpec = viper.GetString("refresh.cron_spec")
	cfg.Refresh.Window = viper.GetInt("refresh.window_days")

	// Rate limiting
	cfg.RateLimit.RequestsPerMin = viper.GetInt("rate_limit.requests_per_min")

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	viper.SetDefault("google.calendar_id", "primary")
	viper.SetDefault("google.timezone", "UTC")

	viper.SetDefault("vacation.day_length_hours", 8)
	viper.SetDefault("vacation.start_time", "09:00")
	viper.SetDefault("vacation.weekdays.monday", true)
	viper.SetDefault("vacation.weekdays.tuesday", true)
	viper.SetDefault("vacation.weekdays.wednesday", true)
	viper.SetDefault("vacation.weekdays.thursday", true)
	viper.SetDefault("vacation.weekdays.friday", true)
	viper.SetDefault("vacation.weekdays.saturday", false)
	viper.SetDefault("vacation.weekdays.sunday", false)

	viper.SetDefault("history.path", "data/history.json")
	viper.SetDefault("history.max_entries", 50)

	viper.SetDefault("batch.gap_days", 3)

	viper.SetDefault("refresh.enabled", false)
	viper.SetDefault("refresh.cron_spec", "0 */6 * * *")
	viper.SetDefault("refresh.window_days", 90)

	viper.SetDefault("rate_limit.requests_per_min", 120)
}
