package view

import (
	"github.com/subform-dev/subform/internal/models"
	"github.com/subform-dev/subform/internal/pipeline"
)

// StatusView models the transient progress panel.
type StatusView struct {
	Visible bool
	Message string
	Percent int // Always within [0,100]
}

// ResultView models the terminal result panel shown after a run ends.
type ResultView struct {
	Visible     bool
	Success     bool
	Message     string
	DownloadURL string // Empty hides the download affordance
}

// Clamp bounds a progress percentage to [0,100]. Out-of-range values are
// clamped, not rejected.
func Clamp(percent int) int {
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}

// ShowStatus returns a visible status panel for a progress update.
func ShowStatus(update pipeline.ProgressUpdate) StatusView {
	return StatusView{
		Visible: true,
		Message: update.Message,
		Percent: Clamp(update.Percent),
	}
}

// HideStatus returns the reset status panel: invisible, empty message, zero
// progress.
func HideStatus() StatusView {
	return StatusView{}
}

// ShowResult models the result panel for a completed run.
func ShowResult(result *models.RunResult) ResultView {
	message := result.Message
	if message == "" {
		message = "Formal captions ready"
	}
	return ResultView{
		Visible:     true,
		Success:     true,
		Message:     message,
		DownloadURL: result.DownloadURL,
	}
}

// ShowError models the result panel for a failed run.
func ShowError(err error) ResultView {
	return ResultView{
		Visible: true,
		Message: err.Error(),
	}
}

// HideResult returns the reset result panel, clearing any download affordance.
func HideResult() ResultView {
	return ResultView{}
}
