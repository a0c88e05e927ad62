package app

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config holds application configuration
type Config struct {
	ClientID     string
	ClientSecret string
	APIURL       string
	AuthURL      string
	GuildID      int

	// Optional output targets
	SpreadsheetID   string
	CredentialsFile string
	BigQueryProject string
	BigQueryDataset string
	BigQueryTable   string
	PublishURL      string

	// Timezone used to assign raids to calendar dates
	ReportLocation *time.Location
}

const (
	defaultAPIURL  = "https://fresh.warcraftlogs.com/api/v2"
	defaultAuthURL = "https://fresh.warcraftlogs.com/oauth/token"
)

// SetupEnvironment loads .env file and configures zerolog output and log level.
func SetupEnvironment() {
	// Load .env file if it exists
	err := godotenv.Load()

	// Configure logging
	if os.Getenv("ENV") == "production" {
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
		log.Logger = log.Output(os.Stderr)
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	levelStr := strings.ToLower(os.Getenv("LOGLEVEL"))
	switch levelStr {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn", "warning":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "fatal":
		zerolog.SetGlobalLevel(zerolog.FatalLevel)
	case "panic":
		zerolog.SetGlobalLevel(zerolog.PanicLevel)
	case "disabled":
		zerolog.SetGlobalLevel(zerolog.Disabled)
	case "":
		// Default based on environment
		if os.Getenv("ENV") == "production" {
			zerolog.SetGlobalLevel(zerolog.WarnLevel)
		} else {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
		}
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		log.Warn().Msgf("Unknown LOGLEVEL '%s', defaulting to info.", levelStr)
	}

	// wait until now to report on the .env file so we have the chance to set up logging first
	if err == nil {
		log.Debug().Msg("Loaded environment variables from .env file.")
	} else {
		log.Debug().Msg("No .env file found or error loading .env file; proceeding with existing environment variables.")
	}
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	clientID := os.Getenv("WCL_CLIENT_ID")
	if clientID == "" {
		return nil, fmt.Errorf("WCL_CLIENT_ID environment variable is required")
	}

	clientSecret := os.Getenv("WCL_CLIENT_SECRET")
	if clientSecret == "" {
		return nil, fmt.Errorf("WCL_CLIENT_SECRET environment variable is required")
	}

	apiURL := os.Getenv("WCL_API_URL")
	if apiURL == "" {
		apiURL = defaultAPIURL
	}

	authURL := os.Getenv("WCL_AUTH_URL")
	if authURL == "" {
		authURL = defaultAuthURL
	}

	credentialsFile := os.Getenv("GOOGLE_CREDENTIALS_FILE")
	if credentialsFile == "" {
		credentialsFile = "credentials.json"
	}

	guildID := 0
	if raw := os.Getenv("GUILD_ID"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid GUILD_ID %q: %w", raw, err)
		}
		guildID = parsed
	}

	loc := time.Local
	if tz := os.Getenv("REPORT_TIMEZONE"); tz != "" {
		parsed, err := time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("invalid REPORT_TIMEZONE %q: %w", tz, err)
		}
		loc = parsed
	}

	return &Config{
		ClientID:        clientID,
		ClientSecret:    clientSecret,
		APIURL:          apiURL,
		AuthURL:         authURL,
		GuildID:         guildID,
		SpreadsheetID:   os.Getenv("SPREADSHEET_ID"),
		CredentialsFile: credentialsFile,
		BigQueryProject: os.Getenv("BIGQUERY_PROJECT"),
		BigQueryDataset: os.Getenv("BIGQUERY_DATASET"),
		BigQueryTable:   os.Getenv("BIGQUERY_TABLE"),
		PublishURL:      os.Getenv("PUBLISH_URL"),
		ReportLocation:  loc,
	}, nil
}

// GetRequiredEnv gets an environment variable or panics if not found
func GetRequiredEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Fatal().Str("key", key).Msg("Required environment variable not set")
	}
	return value
}
