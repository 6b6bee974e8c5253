// Package extract holds the pattern-based structural extractors, one per
// language profile. Extraction is a best-effort textual heuristic: no
// tokenizer, no grammar. Declarations inside strings and comments are matched
// like real ones.
package extract

import (
	"regexp"
	"strings"

	"github.com/docscan/docscan/internal/domain"
)

// Extractor turns the text of one file into a structural record.
// Implementations hold no state; Extract is pure.
type Extractor interface {
	Language() domain.Language
	Extract(file domain.SourceFile, text string) domain.StructuralRecord
}

var extractors = map[domain.Language]Extractor{
	domain.LanguageDotNet:  dotnetExtractor{},
	domain.LanguageAngular: angularExtractor{},
	domain.LanguageHTML:    markupExtractor{},
}

// For returns the extractor registered for lang.
func For(lang domain.Language) (Extractor, error) {
	if lang == "" {
		lang = domain.LanguageDotNet
	}
	e, ok := extractors[lang]
	if !ok {
		return nil, &domain.UnknownLanguageError{Name: string(lang)}
	}
	return e, nil
}

// declaration is a type-like match that owns a closed block.
type declaration struct {
	name  string
	kind  string
	start int
	block Block
}

// declPattern describes how to read a type declaration match.
type declPattern struct {
	re        *regexp.Regexp
	nameGroup int
	kindGroup int // 0 means the kind is fixed
	kind      string
	reserved  map[string]bool
}

// scanDeclarations returns the non-overlapping matches of p, left to right,
// that are followed by a closable block. Matches without one are dropped.
func scanDeclarations(text string, p declPattern) []declaration {
	var decls []declaration
	for _, m := range p.re.FindAllStringSubmatchIndex(text, -1) {
		name := text[m[2*p.nameGroup]:m[2*p.nameGroup+1]]
		if p.reserved[name] {
			continue
		}
		block, ok := FindBlock(text, m[1])
		if !ok {
			continue
		}
		kind := p.kind
		if p.kindGroup > 0 {
			kind = strings.Join(strings.Fields(text[m[2*p.kindGroup]:m[2*p.kindGroup+1]]), " ")
		}
		decls = append(decls, declaration{name: name, kind: kind, start: m[0], block: block})
	}
	return decls
}

// methodFinder scans block b for method signatures, ignoring any match for
// which skip returns true.
type methodFinder func(text string, lines lineIndex, b Block, skip func(offset int) bool) []domain.MethodSignature

// buildTypes turns declarations into type entities. A method belongs only to
// the innermost type whose block contains it: matches inside a nested type's
// block are skipped for every enclosing type.
func buildTypes(text string, lines lineIndex, decls []declaration, find methodFinder) []domain.TypeEntity {
	types := make([]domain.TypeEntity, 0, len(decls))
	for i, d := range decls {
		var nested []Block
		for j, o := range decls {
			if j != i && d.block.Encloses(o.block) {
				nested = append(nested, o.block)
			}
		}
		inNested := func(offset int) bool {
			for _, nb := range nested {
				if nb.Contains(offset) {
					return true
				}
			}
			return false
		}

		methods := []domain.MethodSignature{}
		if find != nil {
			methods = find(text, lines, d.block, inNested)
		}

		types = append(types, domain.TypeEntity{
			Name:    d.name,
			Kind:    d.kind,
			Methods: methods,
			Snippet: snippet(text, d),
			Line:    lines.line(d.start),
			Start:   d.start,
			End:     d.block.Close + 1,
		})
	}
	return types
}

const maxSnippetLen = 200

// snippet is the declaration header with the body elided.
func snippet(text string, d declaration) string {
	header := strings.Join(strings.Fields(text[d.start:d.block.Open]), " ")
	if len(header) > maxSnippetLen {
		header = header[:maxSnippetLen]
	}
	return header + " { ... }"
}

type nameMatch struct {
	name string
	line int
}

// scanNames returns group 1 of every non-overlapping match of re.
func scanNames(text string, lines lineIndex, re *regexp.Regexp, reserved map[string]bool) []nameMatch {
	var out []nameMatch
	for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
		name := text[m[2]:m[3]]
		if reserved[name] {
			continue
		}
		out = append(out, nameMatch{name: name, line: lines.line(m[0])})
	}
	return out
}

func interfaces(matches []nameMatch) []domain.InterfaceEntity {
	out := make([]domain.InterfaceEntity, 0, len(matches))
	for _, m := range matches {
		out = append(out, domain.InterfaceEntity{Name: m.name, Line: m.line})
	}
	return out
}

func enums(matches []nameMatch) []domain.EnumEntity {
	out := make([]domain.EnumEntity, 0, len(matches))
	for _, m := range matches {
		out = append(out, domain.EnumEntity{Name: m.name, Line: m.line})
	}
	return out
}

func set(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}
