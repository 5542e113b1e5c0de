package pipeline

import "fmt"

// ProgressUpdate represents a progress event during a pipeline run.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Pipeline phase
	Percent int    // Overall completion percentage for display
	Message string // Human-readable message for display
}

// Pipeline phase enumeration
type Phase int

const (
	Checking Phase = iota
	Downloading
	Transcribing
	Formalizing
	Extracting
	Done
)

func (p Phase) String() string {
	switch p {
	case Checking:
		return "checking"
	case Downloading:
		return "downloading"
	case Transcribing:
		return "transcribing"
	case Formalizing:
		return "formalizing"
	case Extracting:
		return "extracting"
	case Done:
		return "done"
	default:
		return ""
	}
}

// Percent returns the completion percentage shown when the phase begins.
func (p Phase) Percent() int {
	switch p {
	case Checking:
		return 10
	case Downloading:
		return 40
	case Transcribing:
		return 60
	case Formalizing:
		return 70
	case Extracting:
		return 90
	case Done:
		return 100
	default:
		return 0
	}
}

func checkingUpdate(videoURL string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Checking,
		Percent: Checking.Percent(),
		Message: fmt.Sprintf("Checking for captions: %s", videoURL),
	}
}

func downloadingUpdate(message string) ProgressUpdate {
	if message == "" {
		message = "No captions available, downloading audio..."
	}
	return ProgressUpdate{Phase: Downloading, Percent: Downloading.Percent(), Message: message}
}

func transcribingUpdate(message string) ProgressUpdate {
	if message == "" {
		message = "Transcribing audio..."
	}
	return ProgressUpdate{Phase: Transcribing, Percent: Transcribing.Percent(), Message: message}
}

func formalizingUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   Formalizing,
		Percent: Formalizing.Percent(),
		Message: "Converting to written style...",
	}
}

func formalizedUpdate() ProgressUpdate {
	// Formalizing spans 70–80: the extra tick keeps the bar moving during the
	// longest backend step.
	return ProgressUpdate{Phase: Formalizing, Percent: 80, Message: "Written-style captions ready"}
}

func extractingUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   Extracting,
		Percent: Extracting.Percent(),
		Message: "Extracting vocabulary matches...",
	}
}

func extractionFailedUpdate(detail string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Extracting,
		Percent: Extracting.Percent(),
		Message: fmt.Sprintf("Vocabulary extraction failed (%s), continuing", detail),
	}
}

func doneUpdate(message string) ProgressUpdate {
	if message == "" {
		message = "Formal captions ready"
	}
	return ProgressUpdate{Phase: Done, Percent: Done.Percent(), Message: message}
}
