/*
Package config reads the process configuration from the environment once at startup.
*/
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	DefaultSMTPServer = "smtp.gmail.com"
	DefaultSMTPPort   = 587
	DefaultLogLevel   = "info"
)

var ErrMissingSetting = errors.New("missing required setting")

// SMTP holds mail submission settings.
type SMTP struct {
	Server     string
	Port       int
	Sender     string
	Password   string
	Recipients []string
}

type Config struct {
	SMTP     SMTP
	LogLevel string
}

// Load reads envFile (if set, otherwise an optional .env in the working
// directory) and then the process environment.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return Config{}, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	} else if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found, using system environment variables")
	}

	port, err := strconv.Atoi(getEnv("SMTP_PORT", strconv.Itoa(DefaultSMTPPort)))
	if err != nil {
		return Config{}, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}

	return Config{
		SMTP: SMTP{
			Server:     getEnv("SMTP_SERVER", DefaultSMTPServer),
			Port:       port,
			Sender:     getEnv("SENDER_EMAIL", ""),
			Password:   getEnv("GMAIL_APP_PASS", ""),
			Recipients: ParseRecipients(getEnv("RECIPIENTS", "")),
		},
		LogLevel: getEnv("LOG_LEVEL", DefaultLogLevel),
	}, nil
}

// Validate reports the first setting needed for sending that is missing.
func (c Config) Validate() error {
	switch {
	case c.SMTP.Server == "":
		return fmt.Errorf("%w: SMTP_SERVER", ErrMissingSetting)
	case c.SMTP.Sender == "":
		return fmt.Errorf("%w: SENDER_EMAIL", ErrMissingSetting)
	case c.SMTP.Password == "":
		return fmt.Errorf("%w: GMAIL_APP_PASS", ErrMissingSetting)
	case len(c.SMTP.Recipients) == 0:
		return fmt.Errorf("%w: RECIPIENTS", ErrMissingSetting)
	}
	return nil
}

// Level returns the configured logrus level, defaulting to info.
func (c Config) Level() logrus.Level {
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		logrus.Warnf("Invalid LOG_LEVEL value: %s, using %s", c.LogLevel, DefaultLogLevel)
		return logrus.InfoLevel
	}
	return lvl
}

// ParseRecipients splits a comma-separated list, dropping blanks.
func ParseRecipients(s string) []string {
	var recipients []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			recipients = append(recipients, trimmed)
		}
	}
	return recipients
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
