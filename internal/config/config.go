package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Airtable  AirtableConfig
	Email     EmailConfig
	Export    ExportConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

type AirtableConfig struct {
	BaseURL string
	Token   string
	BaseID  string
	Timeout time.Duration
}

type EmailConfig struct {
	Host               string
	Port               int
	Username           string
	Password           string
	From               string
	FromName           string
	Recipients         []string
	OperatorRecipients []string
}

type ExportConfig struct {
	// Enabled turns the nightly export job on.
	Enabled bool
	// Schedule is the local time of day the job runs, HH:MM.
	Schedule string
	// Timezone the schedule is interpreted in.
	Timezone string
	// FilePrefix names the attachment: <prefix>_<date>.iif.
	FilePrefix string
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "scalehouse-api")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("AIRTABLE_BASE_URL", "https://api.airtable.com/v0")
	viper.SetDefault("AIRTABLE_TOKEN", "")
	viper.SetDefault("AIRTABLE_BASE_ID", "")
	viper.SetDefault("AIRTABLE_TIMEOUT_SECONDS", 30)
	viper.SetDefault("SMTP_HOST", "localhost")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("SMTP_USERNAME", "")
	viper.SetDefault("SMTP_PASSWORD", "")
	viper.SetDefault("EMAIL_FROM", "scale@beaverpumice.example")
	viper.SetDefault("EMAIL_FROM_NAME", "Scale House")
	viper.SetDefault("EXPORT_RECIPIENTS", []string{})
	viper.SetDefault("EXPORT_OPERATOR_RECIPIENTS", []string{})
	viper.SetDefault("EXPORT_ENABLED", true)
	// 07:00 UTC is overnight on the scale yard's west-coast clock.
	viper.SetDefault("EXPORT_SCHEDULE", "07:00")
	viper.SetDefault("EXPORT_TIMEZONE", "UTC")
	viper.SetDefault("EXPORT_FILE_PREFIX", "qb_export")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)

	return &Config{
		App: AppConfig{
			Name:  viper.GetString("APP_NAME"),
			Env:   viper.GetString("APP_ENV"),
			Port:  viper.GetString("APP_PORT"),
			Debug: viper.GetBool("APP_DEBUG"),
		},
		Airtable: AirtableConfig{
			BaseURL: viper.GetString("AIRTABLE_BASE_URL"),
			Token:   viper.GetString("AIRTABLE_TOKEN"),
			BaseID:  viper.GetString("AIRTABLE_BASE_ID"),
			Timeout: time.Duration(viper.GetInt("AIRTABLE_TIMEOUT_SECONDS")) * time.Second,
		},
		Email: EmailConfig{
			Host:               viper.GetString("SMTP_HOST"),
			Port:               viper.GetInt("SMTP_PORT"),
			Username:           viper.GetString("SMTP_USERNAME"),
			Password:           viper.GetString("SMTP_PASSWORD"),
			From:               viper.GetString("EMAIL_FROM"),
			FromName:           viper.GetString("EMAIL_FROM_NAME"),
			Recipients:         viper.GetStringSlice("EXPORT_RECIPIENTS"),
			OperatorRecipients: viper.GetStringSlice("EXPORT_OPERATOR_RECIPIENTS"),
		},
		Export: ExportConfig{
			Enabled:    viper.GetBool("EXPORT_ENABLED"),
			Schedule:   viper.GetString("EXPORT_SCHEDULE"),
			Timezone:   viper.GetString("EXPORT_TIMEZONE"),
			FilePrefix: viper.GetString("EXPORT_FILE_PREFIX"),
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
	}
}
