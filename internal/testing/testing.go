// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/subform-dev/subform/internal/client"
)

// MockBackend is a configurable test double for [pipeline.Backend]. Each field
// overrides one endpoint; unset endpoints return a generic success envelope.
// Calls records endpoint names in invocation order.
type MockBackend struct {
	Calls []string

	ProcessFn       func(ctx context.Context, videoURL string) (*client.Envelope, error)
	DownloadAudioFn func(ctx context.Context, videoURL, sessionID string) (*client.Envelope, error)
	TranscribeFn    func(ctx context.Context, audioPath, sessionID string) (*client.Envelope, error)
	FormalizeFn     func(ctx context.Context, sessionID, filePath string) (*client.Envelope, error)
	ExtractFn       func(ctx context.Context, sessionID, filePath string) (*client.ExtractResponse, error)
}

func okEnvelope() *client.Envelope {
	return &client.Envelope{Status: client.StatusSuccess, Message: "ok"}
}

func (m *MockBackend) Process(ctx context.Context, videoURL string) (*client.Envelope, error) {
	m.Calls = append(m.Calls, "process")
	if m.ProcessFn != nil {
		return m.ProcessFn(ctx, videoURL)
	}
	return okEnvelope(), nil
}

func (m *MockBackend) DownloadAudio(ctx context.Context, videoURL, sessionID string) (*client.Envelope, error) {
	m.Calls = append(m.Calls, "download-audio")
	if m.DownloadAudioFn != nil {
		return m.DownloadAudioFn(ctx, videoURL, sessionID)
	}
	return okEnvelope(), nil
}

func (m *MockBackend) Transcribe(ctx context.Context, audioPath, sessionID string) (*client.Envelope, error) {
	m.Calls = append(m.Calls, "transcribe")
	if m.TranscribeFn != nil {
		return m.TranscribeFn(ctx, audioPath, sessionID)
	}
	return okEnvelope(), nil
}

func (m *MockBackend) Formalize(ctx context.Context, sessionID, filePath string) (*client.Envelope, error) {
	m.Calls = append(m.Calls, "formalize")
	if m.FormalizeFn != nil {
		return m.FormalizeFn(ctx, sessionID, filePath)
	}
	return okEnvelope(), nil
}

func (m *MockBackend) Extract(ctx context.Context, sessionID, filePath string) (*client.ExtractResponse, error) {
	m.Calls = append(m.Calls, "extract")
	if m.ExtractFn != nil {
		return m.ExtractFn(ctx, sessionID, filePath)
	}
	return &client.ExtractResponse{Status: client.StatusSuccess}, nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
