package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"strings"

	"github.com/subform-dev/subform/internal/pipeline"
	"github.com/subform-dev/subform/internal/shared"
	"github.com/urfave/cli/v3"
)

func isDownloadLink(path string) bool {
	return strings.HasPrefix(path, "/download/")
}

func resolveFetchPath(path string) (string, bool) {
	return pipeline.ResolveDownload("", path)
}

// Fetch streams a produced file from the backend to disk.
//
// Accepts either a /download/<session>/<filename> link or a raw server-side
// file path, which is resolved the same way the pipeline resolves the
// download link.
func (r *Runner) Fetch(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: download path", shared.ErrMissingArgument)
	}

	// Full URLs against the configured backend collapse to their path.
	path = strings.TrimPrefix(path, r.client.BaseURL())

	urlPath := path
	if !isDownloadLink(path) {
		resolved, ok := resolveFetchPath(path)
		if !ok {
			return fmt.Errorf("%w: cannot derive a download link from %q", shared.ErrInvalidArgument, path)
		}
		urlPath = resolved
	}

	dest := cmd.String("output")
	if dest == "" {
		if err := os.MkdirAll(r.config.Output.Dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		name := shared.SanitizeFilename(filepath.Base(shared.NormalizePath(urlPath)))
		dest = filepath.Join(r.config.Output.Dir, name)
	}

	r.logger.Info("fetching file", "path", urlPath, "dest", dest)

	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if err := r.client.Download(ctx, urlPath, f); err != nil {
		os.Remove(dest)
		return err
	}

	r.writePlain("✓ Saved to %s\n", dest)
	return nil
}
