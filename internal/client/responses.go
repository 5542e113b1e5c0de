package client

// Response status discriminator values used by every backend endpoint.
const (
	StatusSuccess = "success"
	StatusInfo    = "info"
	StatusError   = "error"
)

// Envelope represents the common JSON payload returned by the pipeline
// endpoints. Fields beyond Status and Message are step-specific and may be
// empty; callers decide which ones the next step requires.
type Envelope struct {
	Status      string `json:"status"`
	Message     string `json:"message"`
	SessionID   string `json:"session_id"`
	FilePath    string `json:"file_path"`
	AudioPath   string `json:"audio_path"`
	DownloadURL string `json:"download_url"`
}

// ExtractResponse represents the vocabulary extraction payload.
//
// AffectedPresent and AffectedAbsent partition matched lemmas by membership in
// the target vocabulary list; AffectedLemmas maps original surface forms to
// their lemma.
type ExtractResponse struct {
	Status          string            `json:"status"`
	Message         string            `json:"message"`
	UniqueMatches   []string          `json:"unique_matches"`
	Counts          map[string]int    `json:"counts"`
	AffectedPresent []string          `json:"affected_present"`
	AffectedAbsent  []string          `json:"affected_absent"`
	AffectedLemmas  map[string]string `json:"affected_lemmas"`
}
