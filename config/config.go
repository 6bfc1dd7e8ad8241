package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds the environment-driven settings for the server.
type Config struct {
	AppPort            string
	Env                string
	DBHost             string
	DBPort             string
	DBName             string
	MongoURI           string
	JWTSecret          string
	JWTExpirationHours int
	StreamAPIKey       string
	StreamAPISecret    string
	StorageProvider    string
	PublicBaseURL      string
	CloudinaryURL      string
	CORSOrigins        []string
}

// UsesLocalStorage reports whether uploads are kept on the local disk and
// must therefore be served by this process.
func (c Config) UsesLocalStorage() bool {
	return c.StorageProvider == "local"
}

// LoadEnv loads variables from .env if present. A missing file is fine: in
// production everything comes from the real environment.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		logrus.WithError(err).Debug("no .env file loaded")
	}
}

// LoadConfig reads and validates the configuration from the environment.
func LoadConfig() Config {
	LoadEnv()

	config := Config{
		AppPort:         os.Getenv("APP_PORT"),
		Env:             os.Getenv("APP_ENV"),
		DBHost:          os.Getenv("DB_HOST"),
		DBPort:          os.Getenv("DB_PORT"),
		DBName:          os.Getenv("DB_NAME"),
		MongoURI:        os.Getenv("MONGODB_URI"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		StreamAPIKey:    os.Getenv("STREAM_API_KEY"),
		StreamAPISecret: os.Getenv("STREAM_API_SECRET"),
		StorageProvider: os.Getenv("STORAGE_PROVIDER"),
		PublicBaseURL:   os.Getenv("PUBLIC_BASE_URL"),
		CloudinaryURL:   os.Getenv("CLOUDINARY_URL"),
	}

	if config.AppPort == "" {
		config.AppPort = "8080"
	}
	if config.Env == "" {
		config.Env = "development"
	}
	if config.DBName == "" {
		config.DBName = "language_exchange"
	}
	if config.JWTSecret == "" {
		logrus.Fatal("configuration error: JWT_SECRET must not be empty")
	}
	if config.StorageProvider == "" {
		config.StorageProvider = "local"
	}
	if config.StorageProvider == "cloudinary" && config.CloudinaryURL == "" {
		logrus.Fatal("configuration error: CLOUDINARY_URL is required with STORAGE_PROVIDER=cloudinary")
	}

	// Session lifetime defaults to 7 days, matching the cookie.
	config.JWTExpirationHours = 7 * 24
	if raw := os.Getenv("JWT_EXPIRATION_HOURS"); raw != "" {
		hours, err := strconv.Atoi(raw)
		if err != nil || hours <= 0 {
			logrus.Fatalf("configuration error: invalid JWT_EXPIRATION_HOURS %q", raw)
		}
		config.JWTExpirationHours = hours
	}

	// Either a full MONGODB_URI or host/port pieces must be present.
	if config.MongoURI == "" {
		if config.DBHost == "" || config.DBPort == "" {
			logrus.Fatal("configuration error: set MONGODB_URI or DB_HOST and DB_PORT")
		}
		config.MongoURI = fmt.Sprintf("mongodb://%s:%s/%s", config.DBHost, config.DBPort, config.DBName)
	}

	if raw := os.Getenv("CORS_ORIGINS"); raw != "" {
		for _, origin := range strings.Split(raw, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				config.CORSOrigins = append(config.CORSOrigins, origin)
			}
		}
	}
	if len(config.CORSOrigins) == 0 {
		config.CORSOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173"}
	}

	return config
}
