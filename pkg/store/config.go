package store

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Backend names accepted by the "backend" setting.
const (
	BackendDiskv  = "diskv"
	BackendSQLite = "sqlite"
	BackendNATS   = "nats"
	BackendMemory = "memory"
)

// Config holds the settings shared by every command.
type Config struct {
	Path          string
	Backend       string
	NATSURL       string
	NATSBucket    string
	NATSSubject   string
	Location      *time.Location
	Listen        string
	TimerDuration time.Duration
	Debug         bool
}

// LoadConfig reads .focus.yaml from $FOCUS_CONFIG_PATH or the working
// directory, then FOCUS_* environment variables. A .env file in the working
// directory is loaded first when present.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Debug("config: .env not loaded", "error", err)
	}

	viper.SetDefault("path", "~/.focus.db")
	viper.SetDefault("backend", BackendDiskv)
	viper.SetDefault("nats.url", "nats://127.0.0.1:4222")
	viper.SetDefault("nats.bucket", "focus")
	viper.SetDefault("nats.subject", "focus.tasks")
	viper.SetDefault("location", "Local")
	viper.SetDefault("listen", "127.0.0.1:8787")
	viper.SetDefault("timer.duration", "25m")
	viper.SetDefault("debug", false)
	viper.SetConfigName(".focus") // .yaml is implicit
	viper.SetEnvPrefix("FOCUS")
	viper.AutomaticEnv()

	if override := os.Getenv("FOCUS_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}

	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: read config file: %w", err)
		}
	}

	path, err := homedir.Expand(viper.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}

	loc, err := time.LoadLocation(viper.GetString("location"))
	if err != nil {
		return nil, fmt.Errorf("store: location: %w", err)
	}

	duration := viper.GetDuration("timer.duration")
	if duration <= 0 {
		duration = 25 * time.Minute
	}

	return &Config{
		Path:          path,
		Backend:       viper.GetString("backend"),
		NATSURL:       viper.GetString("nats.url"),
		NATSBucket:    viper.GetString("nats.bucket"),
		NATSSubject:   viper.GetString("nats.subject"),
		Location:      loc,
		Listen:        viper.GetString("listen"),
		TimerDuration: duration,
		Debug:         viper.GetBool("debug"),
	}, nil
}
