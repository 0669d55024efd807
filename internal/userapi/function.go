package userapi

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"fnbridge/internal/config"
	"fnbridge/pkg/adapter"
)

// NewFunction binds the router to its declared metadata
func NewFunction(cfg *config.Config, logger logrus.FieldLogger, output io.Writer) (*adapter.Function, error) {
	info, err := Info()
	if err != nil {
		return nil, fmt.Errorf("failed to load function declaration: %w", err)
	}

	return adapter.New(Router(), adapter.Config{
		Info:       info,
		Version:    config.GetEnv("FUNCTION_VERSION", info.Metadata["version"]),
		Platforms:  []string{cfg.Serverless.Platform},
		Introspect: cfg.Introspect,
		Output:     output,
		Logger:     logger,
	})
}
