// File: /config/config.go
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string

	// Moderation passwords are stored as bcrypt hashes, never plaintext.
	ModeratorPasswordHash  string
	SuperAdminPasswordHash string

	// Feed day windows are computed in one pinned timezone so "today"
	// means the same thing on every instance.
	FeedTimezone string

	StoreTimeout time.Duration

	// Media store (S3-compatible)
	MediaEndpoint  string
	MediaAccessKey string
	MediaSecretKey string
	MediaBucket    string
	MediaBaseURL   string
	MediaUseSSL    bool

	// Optional NATS relay for multi-instance broadcast
	NATSURL     string
	NATSSubject string

	// Email Configuration
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromEmail    string
	FromName     string
	AuditEmail   string

	MediaSweepInterval time.Duration
	MediaSweepMinAge   time.Duration
}

func Load() *Config {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not load .env file: %v", err)
	}

	smtpPort, _ := strconv.Atoi(getEnv("SMTP_PORT", "2525"))
	storeTimeout, _ := strconv.Atoi(getEnv("STORE_TIMEOUT_SECONDS", "5"))
	sweepInterval, _ := strconv.Atoi(getEnv("MEDIA_SWEEP_INTERVAL_MINUTES", "60"))
	sweepMinAge, _ := strconv.Atoi(getEnv("MEDIA_SWEEP_MIN_AGE_MINUTES", "120"))

	return &Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: getEnv("DATABASE_URL", "user:password@tcp(localhost:3306)/livewall?charset=utf8mb4&parseTime=True&loc=Local"),
		JWTSecret:   getEnv("JWT_SECRET", "your-secret-key"),

		// No defaults here: with the hashes unset, moderation login
		// simply fails closed.
		ModeratorPasswordHash:  getEnv("MODERATOR_PASSWORD_HASH", ""),
		SuperAdminPasswordHash: getEnv("SUPERADMIN_PASSWORD_HASH", ""),

		FeedTimezone: getEnv("FEED_TIMEZONE", "UTC"),

		StoreTimeout: time.Duration(storeTimeout) * time.Second,

		MediaEndpoint:  getEnv("MEDIA_ENDPOINT", "localhost:9000"),
		MediaAccessKey: getEnv("MEDIA_ACCESS_KEY", "minioadmin"),
		MediaSecretKey: getEnv("MEDIA_SECRET_KEY", "minioadmin"),
		MediaBucket:    getEnv("MEDIA_BUCKET", "livewall-uploads"),
		MediaBaseURL:   getEnv("MEDIA_BASE_URL", "http://localhost:9000"),
		MediaUseSSL:    getEnv("MEDIA_USE_SSL", "false") == "true",

		NATSURL:     getEnv("NATS_URL", ""),
		NATSSubject: getEnv("NATS_SUBJECT", "livewall.posts"),

		// Email settings
		SMTPHost:     getEnv("SMTP_HOST", "sandbox.smtp.mailtrap.io"),
		SMTPPort:     smtpPort,
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		FromEmail:    getEnv("FROM_EMAIL", "noreply@livewall.app"),
		FromName:     getEnv("FROM_NAME", "LiveWall"),
		AuditEmail:   getEnv("AUDIT_EMAIL", ""),

		MediaSweepInterval: time.Duration(sweepInterval) * time.Minute,
		MediaSweepMinAge:   time.Duration(sweepMinAge) * time.Minute,
	}
}

// FeedLocation resolves the configured feed timezone, falling back to UTC
// on a bad name rather than refusing to boot.
func (c *Config) FeedLocation() *time.Location {
	loc, err := time.LoadLocation(c.FeedTimezone)
	if err != nil {
		log.Printf("Warning: invalid FEED_TIMEZONE %q, using UTC: %v", c.FeedTimezone, err)
		return time.UTC
	}
	return loc
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
