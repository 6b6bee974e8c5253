package domain

import "iter"

// FileEnumerator yields the candidate source files of a tree for a profile.
type FileEnumerator interface {
	Enumerate(root string, profile LanguageProfile) (iter.Seq[SourceFile], error)
	CountDescriptors(root string, profile LanguageProfile) (DescriptorCounts, error)
}

// ConfigLoader loads project-level configuration.
type ConfigLoader interface {
	Load(projectPath string) (ProjectConfig, error)
}

// GitInfo provides git repository information.
type GitInfo interface {
	IsGitRepo(projectPath string) bool
	CommitHash(projectPath string) (string, error)
}

// ProgressReporter receives extraction progress events.
type ProgressReporter interface {
	OnExtractionStart(root string, lang Language)
	OnFileProcessed(relPath string)
	OnExtractionComplete(files, skipped int)
}

// FilterableEnumerator is a FileEnumerator that can layer config-level
// ignore rules on top of a profile's exclude set.
type FilterableEnumerator interface {
	FileEnumerator
	WithFilters(ignore []string, respectGitignore bool) (FileEnumerator, error)
}
