package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/subform-dev/subform/internal/models"
)

var _ list.Item = wordItem{}

// wordItem wraps [models.AffectedWord] to implement [list.Item].
type wordItem struct {
	word    models.AffectedWord
	present bool
}

func (i wordItem) FilterValue() string { return i.word.Lemma }
func (i wordItem) Title() string       { return i.word.Lemma }
func (i wordItem) Description() string {
	category := "not in vocabulary"
	if i.present {
		category = "in vocabulary"
	}
	desc := fmt.Sprintf("×%d • %s", i.word.Count, category)
	if len(i.word.Forms) > 0 {
		desc = fmt.Sprintf("%s • %s", desc, strings.Join(i.word.Forms, ", "))
	}
	return desc
}

// wordItems flattens a report into list items, present partition first.
func wordItems(report *models.VocabularyReport) []list.Item {
	if report.Empty() {
		return nil
	}

	items := make([]list.Item, 0, len(report.Present)+len(report.Absent))
	for _, w := range report.Present {
		items = append(items, wordItem{word: w, present: true})
	}
	for _, w := range report.Absent {
		items = append(items, wordItem{word: w})
	}
	return items
}
