package config

import "github.com/caarlos0/env/v6"

type Config struct {
	// Server configuration
	Server struct {
		// Port the HTTP API listens on
		Port int `env:"SERVER_PORT" envDefault:"5250"`

		// Comma-separated list of allowed CORS origins
		CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	}

	// Database configuration
	Database struct {
		// Path to the SQLite database file
		Path string `env:"DATABASE_PATH" envDefault:"database/homeledger.db"`
	}

	// Auth configuration
	Auth struct {
		// Secret used to sign JWT tokens
		JWTSecret string `env:"JWT_SECRET" envDefault:"homeledger-dev-secret"`

		// Token lifetime in hours
		TokenTTLHours int `env:"JWT_TTL_HOURS" envDefault:"24"`
	}

	// Attachment limits enforced before anything is stored
	Attachments struct {
		// Maximum number of attachments per appliance
		MaxPerAppliance int `env:"ATTACHMENT_MAX_COUNT" envDefault:"10"`

		// Maximum decoded size of a single attachment in bytes
		MaxFileSize int64 `env:"ATTACHMENT_MAX_BYTES" envDefault:"5242880"`
	}

	// Geocoding configuration
	Geocoding struct {
		// Whether house addresses are geocoded on create/update
		Enabled bool `env:"GEOCODING_ENABLED" envDefault:"true"`

		// Directory for the on-disk geocode cache; empty uses a temp dir
		CacheDir string `env:"GEOCODING_CACHE_DIR"`
	}

	// ActivityBatch configuration for the activity feed writer
	ActivityBatch struct {
		// Queue buffer size in batches
		QueueSize int `env:"ACTIVITY_QUEUE_SIZE" envDefault:"64"`

		// Number of concurrent batch processors
		ProcessorCount int `env:"ACTIVITY_PROCESSOR_COUNT" envDefault:"1"`

		// Maximum number of retries for failed batches
		MaxRetries int `env:"ACTIVITY_MAX_RETRIES" envDefault:"3"`

		// Delay between retries in seconds
		RetryDelay int `env:"ACTIVITY_RETRY_DELAY" envDefault:"5"`
	}

	// Reminders configuration
	Reminders struct {
		// Whether the daily maintenance reminder sweep runs
		Enabled bool `env:"REMINDERS_ENABLED" envDefault:"true"`

		// Months without exterior maintenance before a reminder is raised
		StaleMonths int `env:"REMINDER_STALE_MONTHS" envDefault:"12"`
	}
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
