// Package models defines the domain entities shared across the subform client.
//
// The package contains Data Transfer Objects only:
//   - [AffectedWord] : a lemma with its usage count and surface forms
//   - [VocabularyReport] : categorized extraction results (present/absent partitions)
//   - [RunResult] : everything a completed pipeline run produced
//
// Types live here rather than in the pipeline package so the view, formatter,
// and ui packages can consume them without importing the orchestrator.
package models
