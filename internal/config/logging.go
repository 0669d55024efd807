package config

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// ConfigureLogging sets the logrus level and formatter. JSON is used on cloud
// platforms unless LOG_FORMAT says otherwise.
func ConfigureLogging(logger *logrus.Logger, cfg *Config) error {
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.Log.Level, err)
	}
	logger.SetLevel(level)

	switch cfg.Log.Format {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	case "text":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "auto", "":
		if cfg.Serverless.IsServerless() {
			logger.SetFormatter(&logrus.JSONFormatter{})
		} else {
			logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		}
	default:
		return fmt.Errorf("invalid log format %q", cfg.Log.Format)
	}
	return nil
}
