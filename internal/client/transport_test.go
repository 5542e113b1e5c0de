package client_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/subform-dev/subform/internal/client"
	tu "github.com/subform-dev/subform/internal/testing"
)

func TestTransportFailure(t *testing.T) {
	t.Run("round trip error propagates", func(t *testing.T) {
		rt := tu.NewMockRoundTripper(nil, errors.New("connection refused"))
		c := client.NewClient("http://backend:5000", client.Options{
			RateLimit:  1000,
			HTTPClient: &http.Client{Transport: rt},
		})

		_, err := c.Process(context.Background(), "https://youtu.be/XYZ")
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.Contains(err.Error(), "connection refused") {
			t.Errorf("expected transport error to propagate, got %v", err)
		}
	})

	t.Run("download round trip error propagates", func(t *testing.T) {
		rt := tu.NewMockRoundTripper(nil, errors.New("connection refused"))
		c := client.NewClient("http://backend:5000", client.Options{
			RateLimit:  1000,
			HTTPClient: &http.Client{Transport: rt},
		})

		err := c.Download(context.Background(), "/download/s1/out.srt", &strings.Builder{})
		if err == nil || !strings.Contains(err.Error(), "connection refused") {
			t.Errorf("expected transport error to propagate, got %v", err)
		}
	})
}
