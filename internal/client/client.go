// HTTP client for the captioning backend's form-encoded JSON API.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/subform-dev/subform/internal/shared"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "http://127.0.0.1:5000"

// RequestError represents a failed backend request: a non-2xx HTTP status or a
// body that could not be parsed as JSON. Message carries the backend's message
// field when the body included one.
type RequestError struct {
	Endpoint   string
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request to %s failed with status %d", e.Endpoint, e.StatusCode)
}

// Unwrap makes errors.Is(err, shared.ErrAPIRequest) hold for all request errors.
func (e *RequestError) Unwrap() error {
	return shared.ErrAPIRequest
}

// Client provides methods for each captioning backend endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// Options contains optional settings for creating a Client.
type Options struct {
	HTTPClient *http.Client
	RateLimit  float64 // Requests per second, defaults to 5
}

// NewClient creates a client for the captioning backend.
func NewClient(baseURL string, opts Options) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: opts.HTTPClient,
		limiter:    rate.NewLimiter(rate.Limit(opts.RateLimit), 1),
	}
}

// BaseURL returns the backend base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// postForm issues a form-encoded POST and returns the raw body and status.
// Transport failures are wrapped; HTTP status interpretation is left to callers.
func (c *Client) postForm(ctx context.Context, path string, fields map[string]string) ([]byte, int, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, 0, fmt.Errorf("rate limiter: %w", err)
	}

	form := url.Values{}
	for k, v := range fields {
		form.Set(k, v)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response: %w", err)
	}

	return body, resp.StatusCode, nil
}

// decode parses body into target, normalizing non-2xx statuses and malformed
// JSON into a *RequestError. The body is parsed regardless of status so error
// responses can contribute their message field.
func decode(path string, body []byte, status int, target any) error {
	parseErr := json.Unmarshal(body, target)

	if status < 200 || status >= 300 {
		reqErr := &RequestError{Endpoint: path, StatusCode: status}
		if parseErr == nil {
			reqErr.Message = messageField(body)
		}
		return reqErr
	}

	if parseErr != nil {
		return &RequestError{
			Endpoint:   path,
			StatusCode: status,
			Message:    fmt.Sprintf("malformed JSON response from %s", path),
		}
	}

	return nil
}

func messageField(body []byte) string {
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return ""
	}
	return env.Message
}

func (c *Client) postEnvelope(ctx context.Context, path string, fields map[string]string) (*Envelope, error) {
	body, status, err := c.postForm(ctx, path, fields)
	if err != nil {
		return nil, err
	}

	var env Envelope
	if err := decode(path, body, status, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

// Process asks the backend whether manual captions exist for the video.
//
// A "success" status with a file path means captions were found and converted;
// "info" means none exist and the audio pipeline should run. Either way the
// envelope carries the session id scoping the rest of the run.
func (c *Client) Process(ctx context.Context, videoURL string) (*Envelope, error) {
	return c.postEnvelope(ctx, "/process", map[string]string{"url": videoURL})
}

// DownloadAudio asks the backend to download the video's audio track into the
// session workspace, returning the server-side audio path.
func (c *Client) DownloadAudio(ctx context.Context, videoURL, sessionID string) (*Envelope, error) {
	return c.postEnvelope(ctx, "/download-audio", map[string]string{
		"url":        videoURL,
		"session_id": sessionID,
	})
}

// Transcribe runs speech-to-text over a previously downloaded audio file and
// returns the server-side subtitle path.
func (c *Client) Transcribe(ctx context.Context, audioPath, sessionID string) (*Envelope, error) {
	return c.postEnvelope(ctx, "/transcribe", map[string]string{
		"audio_path": audioPath,
		"session_id": sessionID,
	})
}

// Formalize converts spoken-style subtitle text into a written-style variant.
func (c *Client) Formalize(ctx context.Context, sessionID, filePath string) (*Envelope, error) {
	return c.postEnvelope(ctx, "/formalize", map[string]string{
		"session_id": sessionID,
		"file_path":  filePath,
	})
}

// Extract runs vocabulary extraction against the formalized subtitle file. The
// file path is optional; when empty the backend uses the session's latest file.
func (c *Client) Extract(ctx context.Context, sessionID, filePath string) (*ExtractResponse, error) {
	fields := map[string]string{"session_id": sessionID}
	if filePath != "" {
		fields["file_path"] = filePath
	}

	body, status, err := c.postForm(ctx, "/extract", fields)
	if err != nil {
		return nil, err
	}

	var res ExtractResponse
	if err := decode("/extract", body, status, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Cleanup removes the session workspace on the backend. Best-effort: callers
// log failures instead of propagating them.
func (c *Client) Cleanup(ctx context.Context, sessionID string) error {
	_, err := c.postEnvelope(ctx, "/cleanup", map[string]string{"session_id": sessionID})
	return err
}

// Download streams the artifact at urlPath (a base-relative path such as
// /download/<session>/<file>) into w.
func (c *Client) Download(ctx context.Context, urlPath string, w io.Writer) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+urlPath, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		reqErr := &RequestError{Endpoint: urlPath, StatusCode: resp.StatusCode, Message: messageField(body)}
		return reqErr
	}

	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("failed to write file data: %w", err)
	}

	return nil
}
