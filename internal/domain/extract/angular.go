package extract

import (
	"regexp"
	"strings"

	"github.com/docscan/docscan/internal/domain"
)

var (
	tsClass = regexp.MustCompile(`(?:\bexport\s+)?(?:\bdefault\s+)?(?:\babstract\s+)?\bclass\s+(\w+)`)

	tsInterface = regexp.MustCompile(`(?:\bexport\s+)?\binterface\s+(\w+)`)

	tsEnum = regexp.MustCompile(`(?:\bexport\s+)?(?:\bconst\s+)?\benum\s+(\w+)`)

	tsMethod = regexp.MustCompile(
		`(?m)^[ \t]*(?:(?:public|private|protected)\s+)?(?:static\s+)?(?:async\s+)?(\w+)\s*\(((?:[^()]|\([^()]*\))*)\)\s*(?::\s*([^{;=]+?))?\s*\{`)

	tsReserved = set("extends", "implements")

	// Statements that look like "name(...) {" at the start of a line.
	tsControl = set("if", "for", "while", "switch", "catch", "with", "return", "function", "else")

	htmlTag = regexp.MustCompile(`<[\w-]+`)
	cssRule = regexp.MustCompile(`\{[^}]+\}`)
)

// angularExtractor handles the component-framework profile: TypeScript
// classes get block extraction, templates and stylesheets get marker tests.
type angularExtractor struct{}

func (angularExtractor) Language() domain.Language { return domain.LanguageAngular }

func (angularExtractor) Extract(file domain.SourceFile, text string) domain.StructuralRecord {
	rec := domain.NewRecord(file)

	switch file.Kind {
	case "ts":
		lines := newLineIndex(text)
		decls := scanDeclarations(text, declPattern{
			re:        tsClass,
			nameGroup: 1,
			kind:      "class",
			reserved:  tsReserved,
		})
		rec.Types = buildTypes(text, lines, decls, tsMethods)
		rec.Interfaces = interfaces(scanNames(text, lines, tsInterface, tsReserved))
		rec.Enums = enums(scanNames(text, lines, tsEnum, tsReserved))
		rec.Markers.Component = strings.Contains(text, "@Component")
		rec.Markers.Injectable = strings.Contains(text, "@Injectable")
		rec.Markers.NgModule = strings.Contains(text, "@NgModule")
	case "html":
		rec.Markers.Template = true
		rec.Markers.Elements = len(htmlTag.FindAllStringIndex(text, -1))
	case "css", "scss":
		stylesheetMarkers(&rec, text)
	}

	return rec
}

// tsMethods finds line-leading "name(params): Type {" signatures. Parameter
// lists may hold one level of parentheses, as in decorator arguments.
func tsMethods(text string, lines lineIndex, b Block, skip func(int) bool) []domain.MethodSignature {
	body := b.Body(text)
	base := b.Open + 1

	methods := []domain.MethodSignature{}
	for _, m := range tsMethod.FindAllStringSubmatchIndex(body, -1) {
		name := body[m[2]:m[3]]
		offset := base + m[2]
		if tsControl[name] || skip(offset) {
			continue
		}
		ret := ""
		if m[6] >= 0 {
			ret = strings.TrimSpace(body[m[6]:m[7]])
		}
		methods = append(methods, domain.MethodSignature{
			Name:       name,
			ReturnType: ret,
			Parameters: splitTypedParams(body[m[4]:m[5]]),
			Line:       lines.line(offset),
		})
	}
	return methods
}

func stylesheetMarkers(rec *domain.StructuralRecord, text string) {
	rec.Markers.Rules = len(cssRule.FindAllStringIndex(text, -1))
	rec.Markers.MediaQueries = strings.Contains(text, "@media")
}
