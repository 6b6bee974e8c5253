package domain

import (
	"path/filepath"
	"slices"
	"strings"
)

// Language tags a language profile.
type Language string

const (
	LanguageDotNet  Language = "dotnet"
	LanguageAngular Language = "angular"
	LanguageHTML    Language = "html"
)

// ValidLanguages enumerates the supported profiles.
var ValidLanguages = []Language{LanguageDotNet, LanguageAngular, LanguageHTML}

// LanguageProfile is the fixed set of extensions, excluded directory names and
// build descriptors for one language family.
type LanguageProfile struct {
	Language            Language `json:"language"`
	Extensions          []string `json:"extensions"`
	ExcludeDirs         []string `json:"exclude_dirs"`
	SolutionDescriptors []string `json:"solution_descriptors,omitempty"`
	ProjectDescriptors  []string `json:"project_descriptors,omitempty"`
}

// ParseLanguage resolves a profile tag. The empty tag selects dotnet.
func ParseLanguage(s string) (Language, error) {
	if s == "" {
		return LanguageDotNet, nil
	}
	lang := Language(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(ValidLanguages, lang) {
		return "", &UnknownLanguageError{Name: s}
	}
	return lang, nil
}

// ProfileFor returns a fresh copy of the built-in profile for lang.
func ProfileFor(lang Language) (LanguageProfile, error) {
	switch lang {
	case LanguageDotNet, "":
		return LanguageProfile{
			Language:   LanguageDotNet,
			Extensions: []string{".cs"},
			ExcludeDirs: []string{
				"bin", "obj", "node_modules", ".git", ".vs",
				"packages", "TestResults", ".idea", ".vscode",
				"docs", "Documentation",
			},
			SolutionDescriptors: []string{".sln"},
			ProjectDescriptors:  []string{".csproj", ".vbproj", ".fsproj"},
		}, nil
	case LanguageAngular:
		return LanguageProfile{
			Language:   LanguageAngular,
			Extensions: []string{".ts", ".html", ".css", ".scss"},
			ExcludeDirs: []string{
				"node_modules", ".git", ".angular", "dist", "build",
				"coverage", ".idea", ".vscode", "docs",
			},
			SolutionDescriptors: []string{"angular.json"},
			ProjectDescriptors:  []string{"package.json"},
		}, nil
	case LanguageHTML:
		return LanguageProfile{
			Language:    LanguageHTML,
			Extensions:  []string{".html", ".css", ".js"},
			ExcludeDirs: []string{"node_modules", ".git", "dist", "build", ".idea", ".vscode"},
		}, nil
	}
	return LanguageProfile{}, &UnknownLanguageError{Name: string(lang)}
}

// WithExcludes returns a copy of p whose exclude set also holds extra.
func (p LanguageProfile) WithExcludes(extra ...string) LanguageProfile {
	out := p
	out.ExcludeDirs = slices.Clone(p.ExcludeDirs)
	for _, d := range extra {
		d = strings.Trim(strings.TrimSpace(d), "/")
		if d != "" && !slices.Contains(out.ExcludeDirs, d) {
			out.ExcludeDirs = append(out.ExcludeDirs, d)
		}
	}
	return out
}

// Excludes reports whether a directory with the given base name is pruned.
func (p LanguageProfile) Excludes(dirName string) bool {
	return slices.Contains(p.ExcludeDirs, dirName)
}

// Accepts reports whether a file name has an allowed extension.
// Extension matching is case-insensitive.
func (p LanguageProfile) Accepts(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext != "" && slices.Contains(p.Extensions, ext)
}

// DescriptorKind classifies a file name as a solution or project descriptor.
func (p LanguageProfile) DescriptorKind(name string) (solution, project bool) {
	lower := strings.ToLower(name)
	for _, s := range p.SolutionDescriptors {
		if strings.HasSuffix(lower, s) {
			return true, false
		}
	}
	for _, s := range p.ProjectDescriptors {
		if strings.HasSuffix(lower, s) {
			return false, true
		}
	}
	return false, false
}

// KindOf returns the kind tag for a file name: its extension without the dot.
func KindOf(name string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
}
