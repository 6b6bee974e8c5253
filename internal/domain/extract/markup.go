package extract

import (
	"regexp"
	"strings"

	"github.com/docscan/docscan/internal/domain"
)

var (
	jsFunction = regexp.MustCompile(`\bfunction\s+(\w+)`)
	jsClass    = regexp.MustCompile(`\bclass\s+(\w+)`)
)

// markupExtractor handles the plain HTML/CSS/JS profile with marker tests
// and name-only scans.
type markupExtractor struct{}

func (markupExtractor) Language() domain.Language { return domain.LanguageHTML }

func (markupExtractor) Extract(file domain.SourceFile, text string) domain.StructuralRecord {
	rec := domain.NewRecord(file)

	switch file.Kind {
	case "html":
		rec.Markers.Scripts = strings.Contains(text, "<script")
		rec.Markers.Styles = strings.Contains(text, "<style") || strings.Contains(text, "<link")
		rec.Markers.Elements = len(htmlTag.FindAllStringIndex(text, -1))
	case "css":
		stylesheetMarkers(&rec, text)
	case "js":
		lines := newLineIndex(text)
		for _, m := range scanNames(text, lines, jsFunction, nil) {
			rec.Functions = append(rec.Functions, m.name)
		}
		decls := scanDeclarations(text, declPattern{
			re:        jsClass,
			nameGroup: 1,
			kind:      "class",
			reserved:  tsReserved,
		})
		rec.Types = buildTypes(text, lines, decls, nil)
	}

	return rec
}
