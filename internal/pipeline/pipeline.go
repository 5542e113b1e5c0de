package pipeline

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/subform-dev/subform/internal/client"
	"github.com/subform-dev/subform/internal/models"
	"github.com/subform-dev/subform/internal/shared"
)

// Backend defines the interface for the captioning service calls the engine
// sequences. This abstraction allows for easier testing and decoupling from
// the concrete client implementation.
type Backend interface {
	Process(ctx context.Context, videoURL string) (*client.Envelope, error)
	DownloadAudio(ctx context.Context, videoURL, sessionID string) (*client.Envelope, error)
	Transcribe(ctx context.Context, audioPath, sessionID string) (*client.Envelope, error)
	Formalize(ctx context.Context, sessionID, filePath string) (*client.Envelope, error)
	Extract(ctx context.Context, sessionID, filePath string) (*client.ExtractResponse, error)
}

var _ Backend = (*client.Client)(nil)

// Engine orchestrates a captioning pipeline run against a Backend.
type Engine struct {
	backend Backend
}

// NewEngine creates a new Engine with the provided backend.
func NewEngine(backend Backend) *Engine {
	return &Engine{backend: backend}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *Engine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}

// Run executes the full pipeline for a single video URL.
//
// Phases: checking → (formalizing | downloading → transcribing → formalizing)
// → extracting → done. The first failing backend call aborts the run, except
// for vocabulary extraction which is best-effort: its failure is recorded in
// RunResult.SoftFailure and the run still completes.
//
// On a hard failure the partial result is returned alongside the error so
// callers can clean up an already established session.
func (e *Engine) Run(ctx context.Context, videoURL string, progress chan<- ProgressUpdate) (*models.RunResult, error) {
	if e.backend == nil {
		return nil, fmt.Errorf("%w: backend client not initialized", shared.ErrServiceUnavailable)
	}

	videoURL = strings.TrimSpace(videoURL)
	if videoURL == "" {
		// Validation failure: no backend contact at all.
		return nil, fmt.Errorf("%w: enter a video URL", shared.ErrInvalidInput)
	}

	result := &models.RunResult{SourceURL: videoURL}

	e.sendProgress(progress, checkingUpdate(videoURL))

	env, err := e.backend.Process(ctx, videoURL)
	if err != nil {
		return result, err
	}

	switch {
	case env.Status == client.StatusSuccess && env.FilePath != "":
		// Manual captions already exist: skip straight to formalizing.
		result.UsedCaptions = true
		result.SessionID = env.SessionID
		result.CaptionPath = env.FilePath

	case env.Status == client.StatusInfo:
		result.SessionID = env.SessionID
		if result.SessionID == "" {
			return result, fmt.Errorf("%w: session_id", shared.ErrMissingField)
		}

		e.sendProgress(progress, downloadingUpdate(env.Message))

		audio, err := e.backend.DownloadAudio(ctx, videoURL, result.SessionID)
		if err != nil {
			return result, err
		}
		if audio.AudioPath == "" {
			return result, fmt.Errorf("%w: audio_path", shared.ErrMissingField)
		}
		result.AudioPath = audio.AudioPath

		e.sendProgress(progress, transcribingUpdate(audio.Message))

		transcript, err := e.backend.Transcribe(ctx, result.AudioPath, result.SessionID)
		if err != nil {
			return result, err
		}
		if transcript.FilePath == "" {
			return result, fmt.Errorf("%w: file_path", shared.ErrMissingField)
		}
		result.CaptionPath = transcript.FilePath

	default:
		return result, unexpectedResponse(env)
	}

	if result.SessionID == "" {
		return result, fmt.Errorf("%w: session_id", shared.ErrMissingField)
	}

	e.sendProgress(progress, formalizingUpdate())

	formal, err := e.backend.Formalize(ctx, result.SessionID, result.CaptionPath)
	if err != nil {
		return result, err
	}
	if formal.FilePath == "" {
		return result, fmt.Errorf("%w: file_path", shared.ErrMissingField)
	}
	result.FormalPath = formal.FilePath
	if formal.SessionID != "" {
		result.SessionID = formal.SessionID
	}
	result.Message = formal.Message

	e.sendProgress(progress, formalizedUpdate())

	if link, ok := ResolveDownload(formal.DownloadURL, formal.FilePath); ok {
		result.DownloadURL = link
	}

	e.sendProgress(progress, extractingUpdate())
	e.extract(ctx, result, progress)

	e.sendProgress(progress, doneUpdate(result.Message))
	return result, nil
}

// extract runs the best-effort vocabulary step. Failures are folded into the
// result so the grid renders an explicit empty state instead of stale data.
func (e *Engine) extract(ctx context.Context, result *models.RunResult, progress chan<- ProgressUpdate) {
	res, err := e.backend.Extract(ctx, result.SessionID, result.FormalPath)
	if err != nil {
		result.SoftFailure = err.Error()
		e.sendProgress(progress, extractionFailedUpdate(result.SoftFailure))
		return
	}

	if res.Status == client.StatusError {
		result.SoftFailure = res.Message
		if result.SoftFailure == "" {
			result.SoftFailure = "extraction reported an error"
		}
		e.sendProgress(progress, extractionFailedUpdate(result.SoftFailure))
		return
	}

	result.Vocabulary = buildReport(res)
}

// buildReport assembles the categorized report from the raw extraction payload,
// grouping surface forms under their lemma.
func buildReport(res *client.ExtractResponse) *models.VocabularyReport {
	forms := make(map[string][]string, len(res.AffectedLemmas))
	for original, lemma := range res.AffectedLemmas {
		forms[lemma] = append(forms[lemma], original)
	}
	for _, list := range forms {
		sort.Strings(list)
	}

	affected := func(lemmas []string) []models.AffectedWord {
		words := make([]models.AffectedWord, 0, len(lemmas))
		for _, lemma := range lemmas {
			words = append(words, models.AffectedWord{
				Lemma: lemma,
				Count: res.Counts[lemma],
				Forms: forms[lemma],
			})
		}
		return words
	}

	return &models.VocabularyReport{
		UniqueMatches: res.UniqueMatches,
		Present:       affected(res.AffectedPresent),
		Absent:        affected(res.AffectedAbsent),
		Lemmas:        res.AffectedLemmas,
	}
}

func unexpectedResponse(env *client.Envelope) error {
	if env.Message != "" {
		return fmt.Errorf("%w: %s", shared.ErrUnexpectedResponse, env.Message)
	}
	return fmt.Errorf("%w: status %q", shared.ErrUnexpectedResponse, env.Status)
}
