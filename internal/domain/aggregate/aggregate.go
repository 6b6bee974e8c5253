// Package aggregate folds per-file structural records into the tree-wide
// summary used to build an overview prompt.
package aggregate

import (
	"sort"
	"strings"
	"unicode"

	"github.com/fatih/camelcase"

	"github.com/docscan/docscan/internal/domain"
)

// VocabularySize is the number of terms kept in the vocabulary.
const VocabularySize = 15

// Aggregate is a pure fold over records. Only the first limit records are
// listed; limit <= 0 selects domain.DefaultListingLimit. The cap bounds prompt
// size and does not affect the totals.
func Aggregate(root string, lang domain.Language, records []domain.StructuralRecord, counts domain.DescriptorCounts, limit int) domain.AggregateProjectStructure {
	if limit <= 0 {
		limit = domain.DefaultListingLimit
	}

	out := domain.AggregateProjectStructure{
		RootPath:      root,
		Language:      lang,
		SolutionFiles: counts.Solutions,
		ProjectFiles:  counts.Projects,
		TotalFiles:    len(records),
		Files:         make([]domain.FileSummary, 0, min(limit, len(records))),
	}

	for _, rec := range records {
		if len(rec.Types) > 0 {
			out.FilesWithTypes++
		}
		if len(rec.Interfaces) > 0 {
			out.FilesWithInterfaces++
		}
		if len(rec.Enums) > 0 {
			out.FilesWithEnums++
		}
		out.TotalTypes += len(rec.Types)
		out.TotalMethods += rec.MethodCount()

		if len(out.Files) < limit {
			out.Files = append(out.Files, Summarize(rec))
		}
	}
	out.Truncated = len(records) > limit
	out.Vocabulary = Vocabulary(records, VocabularySize)

	return out
}

// Summarize reduces a record to its listing line.
func Summarize(rec domain.StructuralRecord) domain.FileSummary {
	return domain.FileSummary{
		RelativePath: rec.File.RelativePath,
		Namespace:    rec.Namespace,
		Types:        len(rec.Types),
		Interfaces:   len(rec.Interfaces),
		Enums:        len(rec.Enums),
		Methods:      rec.MethodCount(),
	}
}

// Vocabulary counts the words of declared type, interface and enum names,
// split on case changes, and returns the n most frequent. Ties are ordered
// alphabetically. Single letters and digits are ignored.
func Vocabulary(records []domain.StructuralRecord, n int) []domain.Term {
	counts := make(map[string]int)
	add := func(name string) {
		for _, w := range camelcase.Split(name) {
			w = strings.ToLower(w)
			if len(w) < 2 || !isWord(w) {
				continue
			}
			counts[w]++
		}
	}

	for _, rec := range records {
		for _, t := range rec.Types {
			add(t.Name)
		}
		for _, i := range rec.Interfaces {
			add(i.Name)
		}
		for _, e := range rec.Enums {
			add(e.Name)
		}
	}

	terms := make([]domain.Term, 0, len(counts))
	for w, c := range counts {
		terms = append(terms, domain.Term{Word: w, Count: c})
	}
	sort.Slice(terms, func(i, j int) bool {
		if terms[i].Count != terms[j].Count {
			return terms[i].Count > terms[j].Count
		}
		return terms[i].Word < terms[j].Word
	})
	if len(terms) > n {
		terms = terms[:n]
	}
	return terms
}

func isWord(w string) bool {
	for _, r := range w {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
