package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/subform-dev/subform/internal/formatter"
	"github.com/subform-dev/subform/internal/models"
	"github.com/subform-dev/subform/internal/pipeline"
	"github.com/subform-dev/subform/internal/shared"
	"github.com/subform-dev/subform/internal/view"
	"github.com/urfave/cli/v3"
)

// Run executes the full captioning pipeline for a single video URL.
func (r *Runner) Run(ctx context.Context, cmd *cli.Command) error {
	videoURL := cmd.StringArg("url")
	if videoURL == "" {
		return fmt.Errorf("%w: video URL", shared.ErrMissingArgument)
	}

	runID := shared.GenerateID()
	logger := shared.WithLogger(r.logger, "run_id", runID)

	logger.Info("starting pipeline", "url", videoURL)
	r.writePlain("Processing %s\n\n", videoURL)

	// A Ctrl-C cancels the in-flight backend call through the context.
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	// Create progress channel and goroutine to handle updates
	progressCh := make(chan pipeline.ProgressUpdate, 50)
	done := r.drainProgress(progressCh)

	result, err := r.engine.Run(ctx, videoURL, progressCh)
	close(progressCh)
	<-done

	// Interrupted or failed runs still release their backend session.
	if result != nil && !cmd.Bool("keep") {
		defer r.cleanupSession(result.SessionID)
	}

	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(result, true)
	}

	r.writePlain("\n")
	r.writePlainHeader("Formalization Complete!")
	if result.UsedCaptions {
		r.writePlain("Source: manual captions\n")
	} else {
		r.writePlain("Source: transcribed audio\n")
	}
	r.writePlain("Session: %s\n", result.SessionID)
	if result.DownloadURL != "" {
		r.writePlain("Download: %s%s\n", r.client.BaseURL(), result.DownloadURL)
	} else {
		r.writePlain("No download link available\n")
	}

	r.renderVocab(result.Vocabulary, result.SoftFailure)

	if reportPath := cmd.String("report"); reportPath != "" {
		if err := r.writeReport(result, reportPath, cmd.String("format")); err != nil {
			return err
		}
	}

	if cmd.Bool("fetch") && result.DownloadURL != "" {
		if err := r.fetchArtifact(ctx, result.DownloadURL); err != nil {
			logger.Warn("failed to fetch formalized file", "error", err)
			r.writePlain("✗ Fetch failed: %v\n", err)
		}
	}

	logger.Info("pipeline complete", "session", result.SessionID)
	return nil
}

// drainProgress prints progress updates until the channel closes. The returned
// channel closes after the final update has been written, so the summary never
// interleaves with a late progress line.
func (r *Runner) drainProgress(progressCh <-chan pipeline.ProgressUpdate) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			switch update.Phase {
			case pipeline.Checking:
				r.writePlain("🔎 %s\n", update.Message)
			case pipeline.Downloading:
				r.writePlain("🎧 %s\n", update.Message)
			case pipeline.Transcribing:
				r.writePlain("📝 %s\n", update.Message)
			case pipeline.Formalizing:
				r.writePlain("✒️  %s\n", update.Message)
			case pipeline.Extracting:
				r.writePlain("📖 %s\n", update.Message)
			}
		}
	}()
	return done
}

// renderVocab prints the categorized vocabulary tables, or the explicit empty
// state when extraction produced nothing.
func (r *Runner) renderVocab(report *models.VocabularyReport, softFailure string) {
	if softFailure != "" {
		r.writePlainln("⚠ Vocabulary extraction failed: %s", softFailure)
		return
	}

	vocab := view.BuildVocab(report)
	if vocab.Empty {
		r.writePlainln("No vocabulary matches.")
		return
	}

	if len(vocab.PresentRows) > 0 {
		r.writePlainln("In vocabulary (%d):", len(vocab.PresentRows))
		r.writeRows(view.TableHeaders(), vocab.PresentRows)
	}
	if len(vocab.AbsentRows) > 0 {
		r.writePlainln("Not in vocabulary (%d):", len(vocab.AbsentRows))
		r.writeRows(view.TableHeaders(), vocab.AbsentRows)
	}
}

func (r *Runner) writeRows(headers []string, rows [][]string) {
	r.writePlain("  %-20s %-8s %s\n", headers[0], headers[1], headers[2])
	for _, row := range rows {
		r.writePlain("  %-20s %-8s %s\n", row[0], row[1], row[2])
	}
}

func (r *Runner) writeReport(result *models.RunResult, path, format string) error {
	if format == "" {
		format = r.config.Output.Format
	}

	written, err := formatter.WriteReport(result.Vocabulary, format, path)
	if err != nil {
		return err
	}

	r.logger.Info("report written", "file", written)
	r.writePlain("✓ Report saved to %s\n", written)
	return nil
}

// fetchArtifact streams the formalized caption file into the output directory.
func (r *Runner) fetchArtifact(ctx context.Context, urlPath string) error {
	if err := os.MkdirAll(r.config.Output.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	name := shared.SanitizeFilename(filepath.Base(shared.NormalizePath(urlPath)))
	dest := filepath.Join(r.config.Output.Dir, name)

	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if err := r.client.Download(ctx, urlPath, f); err != nil {
		return err
	}

	r.writePlain("✓ Saved to %s\n", dest)
	return nil
}

// cleanupSession discards the backend session, best-effort. Cleanup failures
// are logged, never surfaced as command errors.
func (r *Runner) cleanupSession(sessionID string) {
	if sessionID == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := r.client.Cleanup(ctx, sessionID); err != nil {
		r.logger.Warn("session cleanup failed", "session", sessionID, "error", err)
		return
	}
	r.logger.Debug("session cleaned up", "session", sessionID)
}
