package config

import (
	"os"
	"time"

	"github.com/saaaathvik/consultansease/internal/utils"
)

// Config holds all application configuration.
type Config struct {
	AppName               string
	AppPort               string
	MongoURL              string
	MongoDatabase         string
	SendGridAPIKey        string
	SendGridFromEmail     string
	SendGridFromName      string
	SpreadsheetID         string
	GoogleCredentialsFile string
	UploadDir             string
	OTPLength             int
	OTPExpiry             time.Duration
}

const (
	AppName = "consultansease"

	DefaultAppPort       = "5050"
	DefaultMongoDatabase = "consultansease"
	DefaultUploadDir     = "uploads"
	DefaultFromName      = "ConsultansEase"

	UsersCollection = "users"

	OTPLength        = 6
	DefaultOTPExpiry = 5 * time.Minute

	SheetName  = "Sheet1"
	SheetRange = "Sheet1!A:M"
)

// LoadConfig reads configuration from the environment. Missing required
// values are fatal at startup rather than surfacing mid-request.
func LoadConfig() *Config {
	mongoURL := os.Getenv("MONGO_URL")
	if mongoURL == "" {
		utils.Logger.Fatal("MONGO_URL env var is missing")
	}
	sendGridAPIKey := os.Getenv("SENDGRID_API_KEY")
	if sendGridAPIKey == "" {
		utils.Logger.Fatal("SENDGRID_API_KEY env var is missing")
	}
	sendGridFromEmail := os.Getenv("SENDGRID_FROM_EMAIL")
	if sendGridFromEmail == "" {
		utils.Logger.Fatal("SENDGRID_FROM_EMAIL env var is missing")
	}
	spreadsheetID := os.Getenv("SPREADSHEET_ID")
	if spreadsheetID == "" {
		utils.Logger.Fatal("SPREADSHEET_ID env var is missing")
	}
	credentialsFile := os.Getenv("GOOGLE_CREDENTIALS_FILE")
	if credentialsFile == "" {
		credentialsFile = "credentials.json"
	}

	appPort := os.Getenv("APP_PORT")
	if appPort == "" {
		appPort = DefaultAppPort
	}
	mongoDatabase := os.Getenv("MONGO_DATABASE")
	if mongoDatabase == "" {
		mongoDatabase = DefaultMongoDatabase
	}
	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = DefaultUploadDir
	}
	fromName := os.Getenv("SENDGRID_FROM_NAME")
	if fromName == "" {
		fromName = DefaultFromName
	}

	return &Config{
		AppName:               AppName,
		AppPort:               appPort,
		MongoURL:              mongoURL,
		MongoDatabase:         mongoDatabase,
		SendGridAPIKey:        sendGridAPIKey,
		SendGridFromEmail:     sendGridFromEmail,
		SendGridFromName:      fromName,
		SpreadsheetID:         spreadsheetID,
		GoogleCredentialsFile: credentialsFile,
		UploadDir:             uploadDir,
		OTPLength:             OTPLength,
		OTPExpiry:             DefaultOTPExpiry,
	}
}
