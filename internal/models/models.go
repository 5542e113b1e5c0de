// package models defines the data model for the captioning pipeline client
package models

// AffectedWord represents a lemma flagged by the extraction step, with its usage
// count and the original surface forms that collapse to it.
type AffectedWord struct {
	Lemma string   `json:"lemma"`
	Count int      `json:"count"`
	Forms []string `json:"forms,omitempty"`
}

// VocabularyReport holds categorized vocabulary extraction results.
//
// Present and Absent are disjoint by lemma. Lemmas maps every original surface
// form back to its lemma for the debug grid.
type VocabularyReport struct {
	UniqueMatches []string          `json:"unique_matches"`
	Present       []AffectedWord    `json:"affected_present"`
	Absent        []AffectedWord    `json:"affected_absent"`
	Lemmas        map[string]string `json:"affected_lemmas"`
}

// Empty reports whether the extraction produced no usable data. A failed or
// skipped extraction step yields an empty report rather than a failed run.
func (r *VocabularyReport) Empty() bool {
	return r == nil || (len(r.UniqueMatches) == 0 && len(r.Present) == 0 && len(r.Absent) == 0)
}

// RunResult contains all data from a completed pipeline run.
type RunResult struct {
	SessionID    string            // Backend session scoping this run
	SourceURL    string            // Video URL as submitted
	UsedCaptions bool              // Manual captions existed, transcription skipped
	AudioPath    string            // Server-side audio path (transcription path only)
	CaptionPath  string            // Server-side subtitle path before formalizing
	FormalPath   string            // Server-side path of the formalized subtitle file
	DownloadURL  string            // Resolved artifact URL, empty when unresolvable
	Message      string            // Final human-readable status from the backend
	Vocabulary   *VocabularyReport // Extraction results, nil when the step failed
	SoftFailure  string            // Extraction failure detail, empty when it succeeded
}
