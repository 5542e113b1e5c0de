package view

import (
	"sort"
	"strconv"
	"strings"

	"github.com/subform-dev/subform/internal/models"
)

// VocabView models the categorized vocabulary tables and the original→lemma
// debug grid. Empty is set explicitly so surfaces can render "no matches"
// instead of leaving stale rows around.
type VocabView struct {
	Empty       bool
	PresentRows [][]string // lemma, count, surface forms
	AbsentRows  [][]string
	MappingRows [][]string // original, lemma
}

// TableHeaders returns the column headers for the present/absent tables.
func TableHeaders() []string {
	return []string{"Lemma", "Count", "Surface forms"}
}

// MappingHeaders returns the column headers for the debug grid.
func MappingHeaders() []string {
	return []string{"Original", "Lemma"}
}

// BuildVocab flattens a report into displayable rows. A nil or empty report
// yields the explicit empty state.
func BuildVocab(report *models.VocabularyReport) VocabView {
	if report.Empty() {
		return VocabView{Empty: true}
	}

	rows := func(words []models.AffectedWord) [][]string {
		out := make([][]string, 0, len(words))
		for _, w := range words {
			out = append(out, []string{w.Lemma, strconv.Itoa(w.Count), strings.Join(w.Forms, ", ")})
		}
		return out
	}

	// Map iteration order is random; sort by original for stable display.
	originals := make([]string, 0, len(report.Lemmas))
	for original := range report.Lemmas {
		originals = append(originals, original)
	}
	sort.Strings(originals)

	mapping := make([][]string, 0, len(originals))
	for _, original := range originals {
		mapping = append(mapping, []string{original, report.Lemmas[original]})
	}

	return VocabView{
		PresentRows: rows(report.Present),
		AbsentRows:  rows(report.Absent),
		MappingRows: mapping,
	}
}
