// internal/infra/logger/logger.go
package logger

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// SeverityCritical marks entries for failures the operator must act on.
// logrus has no level above Error that does not exit or panic.
const SeverityCritical = "critical"

// New builds a logger for the given level and environment.
// Production and staging get JSON output, everything else human-readable text.
func New(level, environment string, out io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)

	if level == "" {
		level = "info"
	}
	parsed, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		log.Warnf("Invalid log level '%s', defaulting to 'info'. Error: %v", level, err)
		parsed = logrus.InfoLevel
	}
	log.SetLevel(parsed)

	env := strings.ToLower(environment)
	if env == "production" || env == "staging" {
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00", // ISO8601
		})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	log.Debugf("Log level set to: %s", log.GetLevel().String())
	log.Debugf("Log format set for environment: %s", env)
	return log
}

// Critical logs msg at error level tagged with severity=critical.
func Critical(entry *logrus.Entry, msg string) {
	entry.WithField("severity", SeverityCritical).Error(msg)
}
