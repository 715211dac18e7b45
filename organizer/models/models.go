package models

import "time"

// Confidence is the coarse quality tier attached to a suggested path.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Source records which stage of the pipeline produced the final path.
type Source string

const (
	SourceFirstPass Source = "first-pass"
	SourceRefined   Source = "refined"
	SourceFallback  Source = "fallback"
	SourceCached    Source = "cached"
)

// NamingConvention is the dominant folder naming style of a project.
type NamingConvention string

const (
	ConventionKebab   NamingConvention = "kebab-case"
	ConventionSnake   NamingConvention = "snake_case"
	ConventionPascal  NamingConvention = "PascalCase"
	ConventionUnknown NamingConvention = "unknown"
)

// FileRecord is a read-only snapshot of one scanned file.
type FileRecord struct {
	Path         string
	RelativePath string
	Name         string
	Extension    string
	Size         int64
	ModTime      time.Time
	Category     string
	ParentDir    string
	Siblings     []string
	Depth        int
}

// ProjectContext describes the scanned root: its detected project type, the
// organization guidelines attached to that type, and the structure signals
// extracted from existing folders.
type ProjectContext struct {
	RootName   string
	Type       string
	Guidelines string
	Structure  ProjectStructure
}

// ProjectStructure holds the structure analyzer's read-only findings.
type ProjectStructure struct {
	Convention      NamingConvention
	CategoryFolders map[string][]string
	FolderNames     []string
}

// SuggestionResult is a validated destination for one file.
type SuggestionResult struct {
	Path       string
	Confidence Confidence
	Source     Source
}

// FileOutcome pairs a scanned file with its final suggestion. Err carries a
// per-file backend failure that was absorbed by the fallback path; the file
// is never dropped from the batch.
type FileOutcome struct {
	Record     FileRecord
	Suggestion SuggestionResult
	Accepted   bool
	Err        error
}

// MoveResult reports one applied (or failed) move.
type MoveResult struct {
	Source string
	Target string
	Err    error
}
