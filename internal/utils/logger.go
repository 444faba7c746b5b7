package utils

import (
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Logger is the process-wide logger. Controllers, services and the
// datastore bring-up all log through it; InitLogger must run before
// anything else in main.
var Logger = logrus.New()

// servicePrefixHook tags every entry with the service name so lines
// from this process are distinguishable when logs from the sheet
// backend and the API are interleaved.
type servicePrefixHook struct {
	service string
}

func (h *servicePrefixHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *servicePrefixHook) Fire(entry *logrus.Entry) error {
	entry.Message = "[" + h.service + "] " + entry.Message
	return nil
}

// InitLogger configures Logger from the LOG_LEVEL environment variable,
// defaulting to info when unset or unparsable.
func InitLogger(service string) {
	Logger.SetOutput(os.Stdout)

	logLevelStr := strings.ToLower(os.Getenv("LOG_LEVEL"))
	if logLevelStr == "" {
		logLevelStr = "info"
	}
	level, err := logrus.ParseLevel(logLevelStr)
	if err != nil {
		Logger.Warnf("Invalid LOG_LEVEL '%s', defaulting to INFO", logLevelStr)
		level = logrus.InfoLevel
	}
	Logger.SetLevel(level)

	Logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	Logger.AddHook(&servicePrefixHook{service})
}
