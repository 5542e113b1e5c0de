package main

import (
	"context"
	"fmt"

	"github.com/subform-dev/subform/internal/shared"
	"github.com/urfave/cli/v3"
)

// StepProcess checks whether a video already has manual captions.
func (r *Runner) StepProcess(ctx context.Context, cmd *cli.Command) error {
	videoURL := cmd.StringArg("url")
	if videoURL == "" {
		return fmt.Errorf("%w: video URL", shared.ErrMissingArgument)
	}

	r.logger.Info("process request", "url", videoURL)

	env, err := r.client.Process(ctx, videoURL)
	if err != nil {
		return err
	}

	return r.writeJSON(env, cmd.Bool("pretty"))
}

// StepAudio downloads the audio track for a video.
func (r *Runner) StepAudio(ctx context.Context, cmd *cli.Command) error {
	videoURL := cmd.StringArg("url")
	sessionID := cmd.String("session")
	if videoURL == "" {
		return fmt.Errorf("%w: video URL", shared.ErrMissingArgument)
	}

	r.logger.Info("audio download request", "url", videoURL, "session", sessionID)

	env, err := r.client.DownloadAudio(ctx, videoURL, sessionID)
	if err != nil {
		return err
	}

	return r.writeJSON(env, cmd.Bool("pretty"))
}

// StepTranscribe transcribes a downloaded audio file.
func (r *Runner) StepTranscribe(ctx context.Context, cmd *cli.Command) error {
	audioPath := cmd.String("audio")
	sessionID := cmd.String("session")

	r.logger.Info("transcription request", "audio", audioPath, "session", sessionID)

	env, err := r.client.Transcribe(ctx, audioPath, sessionID)
	if err != nil {
		return err
	}

	return r.writeJSON(env, cmd.Bool("pretty"))
}

// StepFormalize formalizes a caption file.
func (r *Runner) StepFormalize(ctx context.Context, cmd *cli.Command) error {
	sessionID := cmd.String("session")
	filePath := cmd.String("file")

	r.logger.Info("formalization request", "session", sessionID, "file", filePath)

	env, err := r.client.Formalize(ctx, sessionID, filePath)
	if err != nil {
		return err
	}

	return r.writeJSON(env, cmd.Bool("pretty"))
}

// StepExtract extracts affected vocabulary for a session.
func (r *Runner) StepExtract(ctx context.Context, cmd *cli.Command) error {
	sessionID := cmd.String("session")
	filePath := cmd.String("file")

	r.logger.Info("extraction request", "session", sessionID, "file", filePath)

	res, err := r.client.Extract(ctx, sessionID, filePath)
	if err != nil {
		return err
	}

	return r.writeJSON(res, cmd.Bool("pretty"))
}

// StepCleanup discards a backend session and its working files.
func (r *Runner) StepCleanup(ctx context.Context, cmd *cli.Command) error {
	sessionID := cmd.String("session")

	r.logger.Info("cleanup request", "session", sessionID)

	if err := r.client.Cleanup(ctx, sessionID); err != nil {
		return err
	}

	r.writePlain("✓ Session %s cleaned up\n", sessionID)
	return nil
}
