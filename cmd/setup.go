package main

import (
	"context"
	"fmt"
	"os"

	"github.com/subform-dev/subform/internal/shared"
	"github.com/urfave/cli/v3"
)

// Setup creates a config.toml from the embedded template and validates it.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if _, err := os.Stat(configPath); err == nil {
		r.logger.Info("config file already exists", "path", configPath)

		config, err := shared.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("%w: %v", shared.ErrInvalidConfig, err)
		}

		r.writePlain("✓ Config valid at %s\n", configPath)
		r.writePlain("Backend: %s\n", config.Backend.BaseURL)
		r.writePlain("Output directory: %s\n", config.Output.Dir)
		return nil
	}

	r.logger.Info("creating config file from template", "path", configPath)
	if err := shared.CreateConfigFile(configPath); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	r.writePlain("✓ Config created at %s\n", configPath)
	r.writePlainln("Next steps:")
	r.writePlain("1. Point backend.base_url at your captioning backend\n")
	r.writePlain("2. Run 'subform run <video url>' to formalize captions\n")

	return nil
}
