package pipeline

import (
	"net/url"
	"strings"

	"github.com/subform-dev/subform/internal/shared"
)

// ResolveDownload determines the downloadable artifact's base-relative URL for
// a completed run.
//
// An explicit download URL from the backend wins verbatim. Otherwise the
// server-side path is expected to look like <root>/<session>/<filename>;
// backslashes are normalized first and both the session and filename segments
// are percent-encoded. A path that doesn't match the shape yields ("", false):
// the run still succeeded, there is just no working link.
func ResolveDownload(explicitURL, filePath string) (string, bool) {
	if explicitURL != "" {
		return explicitURL, true
	}

	segments := strings.Split(shared.NormalizePath(filePath), "/")
	if len(segments) < 3 {
		return "", false
	}

	session := segments[1]
	if session == "" {
		return "", false
	}

	rest := segments[2:]
	for _, seg := range rest {
		if seg == "" {
			return "", false
		}
	}

	escaped := make([]string, 0, len(rest))
	for _, seg := range rest {
		escaped = append(escaped, url.PathEscape(seg))
	}

	return "/download/" + url.PathEscape(session) + "/" + strings.Join(escaped, "/"), true
}
