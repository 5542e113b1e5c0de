package pipeline

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/subform-dev/subform/internal/client"
	"github.com/subform-dev/subform/internal/shared"
	tu "github.com/subform-dev/subform/internal/testing"
)

func captionsBackend() *tu.MockBackend {
	return &tu.MockBackend{
		ProcessFn: func(ctx context.Context, videoURL string) (*client.Envelope, error) {
			return &client.Envelope{
				Status:    client.StatusSuccess,
				Message:   "Captions found and converted to SRT",
				SessionID: "s1",
				FilePath:  "temp/s1/out.srt",
			}, nil
		},
		FormalizeFn: func(ctx context.Context, sessionID, filePath string) (*client.Envelope, error) {
			return &client.Envelope{
				Status:    client.StatusSuccess,
				Message:   "Formal captions ready",
				SessionID: sessionID,
				FilePath:  "temp/s1/out.formal.srt",
			}, nil
		},
	}
}

func transcriptionBackend() *tu.MockBackend {
	backend := captionsBackend()
	backend.ProcessFn = func(ctx context.Context, videoURL string) (*client.Envelope, error) {
		return &client.Envelope{
			Status:    client.StatusInfo,
			Message:   "no captions",
			SessionID: "s1",
		}, nil
	}
	backend.DownloadAudioFn = func(ctx context.Context, videoURL, sessionID string) (*client.Envelope, error) {
		return &client.Envelope{Status: client.StatusSuccess, Message: "ok", AudioPath: "/tmp/s1/a.wav"}, nil
	}
	backend.TranscribeFn = func(ctx context.Context, audioPath, sessionID string) (*client.Envelope, error) {
		return &client.Envelope{Status: client.StatusSuccess, Message: "ok", FilePath: "temp/s1/out.srt"}, nil
	}
	return backend
}

func TestEngineRun(t *testing.T) {
	ctx := context.Background()

	t.Run("empty URL never contacts the backend", func(t *testing.T) {
		backend := &tu.MockBackend{}
		engine := NewEngine(backend)

		for _, raw := range []string{"", "   ", "\t\n"} {
			_, err := engine.Run(ctx, raw, nil)
			if !errors.Is(err, shared.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput for %q, got %v", raw, err)
			}
		}

		if len(backend.Calls) != 0 {
			t.Errorf("expected no backend calls, got %v", backend.Calls)
		}
	})

	t.Run("manual captions skip download and transcribe", func(t *testing.T) {
		backend := captionsBackend()
		engine := NewEngine(backend)

		result, err := engine.Run(ctx, "https://youtu.be/XYZ", nil)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		want := []string{"process", "formalize", "extract"}
		if !reflect.DeepEqual(backend.Calls, want) {
			t.Errorf("expected calls %v, got %v", want, backend.Calls)
		}

		if !result.UsedCaptions {
			t.Error("expected UsedCaptions to be set")
		}
		if result.FormalPath != "temp/s1/out.formal.srt" {
			t.Errorf("unexpected formal path %s", result.FormalPath)
		}
	})

	t.Run("info status runs download then transcribe before formalize", func(t *testing.T) {
		backend := transcriptionBackend()
		engine := NewEngine(backend)

		result, err := engine.Run(ctx, "https://youtu.be/XYZ", nil)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		want := []string{"process", "download-audio", "transcribe", "formalize", "extract"}
		if !reflect.DeepEqual(backend.Calls, want) {
			t.Errorf("expected calls %v, got %v", want, backend.Calls)
		}

		if result.UsedCaptions {
			t.Error("expected transcription path")
		}
		if result.AudioPath != "/tmp/s1/a.wav" {
			t.Errorf("unexpected audio path %s", result.AudioPath)
		}
		if result.DownloadURL != "/download/s1/out.formal.srt" {
			t.Errorf("unexpected download URL %s", result.DownloadURL)
		}
	})

	t.Run("unexpected process status surfaces response message", func(t *testing.T) {
		backend := &tu.MockBackend{
			ProcessFn: func(ctx context.Context, videoURL string) (*client.Envelope, error) {
				return &client.Envelope{Status: client.StatusError, Message: "Invalid YouTube URL"}, nil
			},
		}
		engine := NewEngine(backend)

		_, err := engine.Run(ctx, "https://youtu.be/XYZ", nil)
		if !errors.Is(err, shared.ErrUnexpectedResponse) {
			t.Fatalf("expected ErrUnexpectedResponse, got %v", err)
		}
		if got := err.Error(); got != "unexpected response: Invalid YouTube URL" {
			t.Errorf("unexpected error message %q", got)
		}

		if len(backend.Calls) != 1 {
			t.Errorf("expected pipeline to stop after process, got %v", backend.Calls)
		}
	})

	t.Run("unexpected status without message uses generic fallback", func(t *testing.T) {
		backend := &tu.MockBackend{
			ProcessFn: func(ctx context.Context, videoURL string) (*client.Envelope, error) {
				return &client.Envelope{Status: "weird"}, nil
			},
		}
		engine := NewEngine(backend)

		_, err := engine.Run(ctx, "https://youtu.be/XYZ", nil)
		if !errors.Is(err, shared.ErrUnexpectedResponse) {
			t.Fatalf("expected ErrUnexpectedResponse, got %v", err)
		}
	})

	t.Run("missing audio path aborts the run", func(t *testing.T) {
		backend := transcriptionBackend()
		backend.DownloadAudioFn = func(ctx context.Context, videoURL, sessionID string) (*client.Envelope, error) {
			return &client.Envelope{Status: client.StatusSuccess, Message: "ok"}, nil
		}
		engine := NewEngine(backend)

		_, err := engine.Run(ctx, "https://youtu.be/XYZ", nil)
		if !errors.Is(err, shared.ErrMissingField) {
			t.Fatalf("expected ErrMissingField, got %v", err)
		}
	})

	t.Run("hard failure mid-pipeline stops later steps", func(t *testing.T) {
		backend := transcriptionBackend()
		backend.TranscribeFn = func(ctx context.Context, audioPath, sessionID string) (*client.Envelope, error) {
			return nil, &client.RequestError{Endpoint: "/transcribe", StatusCode: 500, Message: "whisper crashed"}
		}
		engine := NewEngine(backend)

		result, err := engine.Run(ctx, "https://youtu.be/XYZ", nil)
		if err == nil || err.Error() != "whisper crashed" {
			t.Fatalf("expected transcribe error to propagate, got %v", err)
		}
		if result == nil || result.SessionID != "s1" {
			t.Error("expected partial result to retain the session for cleanup")
		}

		for _, call := range backend.Calls {
			if call == "formalize" || call == "extract" {
				t.Errorf("expected no %s call after failure, got %v", call, backend.Calls)
			}
		}
	})

	t.Run("extraction failure is soft", func(t *testing.T) {
		backend := transcriptionBackend()
		backend.ExtractFn = func(ctx context.Context, sessionID, filePath string) (*client.ExtractResponse, error) {
			return nil, fmt.Errorf("extraction service down")
		}
		engine := NewEngine(backend)

		result, err := engine.Run(ctx, "https://youtu.be/XYZ", nil)
		if err != nil {
			t.Fatalf("expected run to succeed despite extraction failure, got %v", err)
		}

		if result.SoftFailure != "extraction service down" {
			t.Errorf("expected soft failure detail, got %q", result.SoftFailure)
		}
		if !result.Vocabulary.Empty() {
			t.Error("expected empty vocabulary report")
		}
		if result.DownloadURL != "/download/s1/out.formal.srt" {
			t.Errorf("expected download link despite extraction failure, got %s", result.DownloadURL)
		}
	})

	t.Run("extraction error status is soft", func(t *testing.T) {
		backend := captionsBackend()
		backend.ExtractFn = func(ctx context.Context, sessionID, filePath string) (*client.ExtractResponse, error) {
			return &client.ExtractResponse{Status: client.StatusError, Message: "no vocabulary list configured"}, nil
		}
		engine := NewEngine(backend)

		result, err := engine.Run(ctx, "https://youtu.be/XYZ", nil)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result.SoftFailure != "no vocabulary list configured" {
			t.Errorf("unexpected soft failure %q", result.SoftFailure)
		}
	})

	t.Run("successful extraction builds categorized report", func(t *testing.T) {
		backend := captionsBackend()
		backend.ExtractFn = func(ctx context.Context, sessionID, filePath string) (*client.ExtractResponse, error) {
			return &client.ExtractResponse{
				Status:          client.StatusSuccess,
				UniqueMatches:   []string{"go", "run"},
				Counts:          map[string]int{"go": 3, "run": 1},
				AffectedPresent: []string{"go"},
				AffectedAbsent:  []string{"run"},
				AffectedLemmas:  map[string]string{"went": "go", "goes": "go", "running": "run"},
			}, nil
		}
		engine := NewEngine(backend)

		result, err := engine.Run(ctx, "https://youtu.be/XYZ", nil)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		report := result.Vocabulary
		if report.Empty() {
			t.Fatal("expected populated report")
		}

		if len(report.Present) != 1 || report.Present[0].Lemma != "go" {
			t.Fatalf("unexpected present partition %v", report.Present)
		}
		if report.Present[0].Count != 3 {
			t.Errorf("expected count 3, got %d", report.Present[0].Count)
		}
		if !reflect.DeepEqual(report.Present[0].Forms, []string{"goes", "went"}) {
			t.Errorf("expected sorted forms, got %v", report.Present[0].Forms)
		}
		if len(report.Absent) != 1 || report.Absent[0].Lemma != "run" {
			t.Errorf("unexpected absent partition %v", report.Absent)
		}
	})

	t.Run("progress updates carry step percentages", func(t *testing.T) {
		backend := transcriptionBackend()
		engine := NewEngine(backend)

		progress := make(chan ProgressUpdate, 16)
		if _, err := engine.Run(ctx, "https://youtu.be/XYZ", progress); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		close(progress)

		var percents []int
		for update := range progress {
			percents = append(percents, update.Percent)
		}

		want := []int{10, 40, 60, 70, 80, 90, 100}
		if !reflect.DeepEqual(percents, want) {
			t.Errorf("expected percentages %v, got %v", want, percents)
		}
	})

	t.Run("full progress never blocks", func(t *testing.T) {
		backend := transcriptionBackend()
		engine := NewEngine(backend)

		// Unbuffered channel with no reader: sendProgress must drop updates.
		progress := make(chan ProgressUpdate)
		if _, err := engine.Run(ctx, "https://youtu.be/XYZ", progress); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("nil backend", func(t *testing.T) {
		engine := NewEngine(nil)
		_, err := engine.Run(ctx, "https://youtu.be/XYZ", nil)
		if !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})
}

func TestPhase(t *testing.T) {
	t.Run("String", func(t *testing.T) {
		names := map[Phase]string{
			Checking:     "checking",
			Downloading:  "downloading",
			Transcribing: "transcribing",
			Formalizing:  "formalizing",
			Extracting:   "extracting",
			Done:         "done",
			Phase(99):    "",
		}
		for phase, want := range names {
			if got := phase.String(); got != want {
				t.Errorf("Phase(%d).String() = %q, want %q", phase, got, want)
			}
		}
	})

	t.Run("Percent is monotonic", func(t *testing.T) {
		order := []Phase{Checking, Downloading, Transcribing, Formalizing, Extracting, Done}
		prev := 0
		for _, phase := range order {
			if phase.Percent() <= prev {
				t.Errorf("expected %s percent above %d, got %d", phase, prev, phase.Percent())
			}
			prev = phase.Percent()
		}
	})
}
