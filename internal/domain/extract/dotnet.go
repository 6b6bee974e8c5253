package extract

import (
	"regexp"
	"strings"

	"github.com/docscan/docscan/internal/domain"
)

var (
	csNamespace = regexp.MustCompile(`\bnamespace\s+([\w.]+)`)

	csType = regexp.MustCompile(
		`(?:\b(?:public|private|internal|protected|static|abstract|sealed|partial|readonly|unsafe|new|file)\s+)*` +
			`\b(record\s+class|record\s+struct|class|struct|record)\s+(\w+)`)

	csInterface = regexp.MustCompile(
		`(?:\b(?:public|private|internal|protected|partial|new)\s+)*\binterface\s+(\w+)`)

	csEnum = regexp.MustCompile(
		`(?:\b(?:public|private|internal|protected|new)\s+)*\benum\s+(\w+)`)

	csMethod = regexp.MustCompile(
		`\b(?:public|private|internal|protected|static)\s+(?:static\s+)?(?:async\s+)?([\w<>\[\],\s]+\??)\s+(\w+)\s*\(([^)]*)\)`)

	// Words that can follow a type keyword without naming a type, e.g.
	// "where T : class where U : struct", or a variable named record as in
	// "foreach (var record in items)" and "record with { Id = 1 }".
	csReserved = set(
		"where", "new", "class", "struct", "record", "interface", "enum",
		"in", "with", "is", "as", "switch", "and", "or", "not", "when", "by", "equals",
	)

	// A "return type" ending in one of these is a type header, such as a
	// nested positional record, not a method.
	csTypeKeywords = set("class", "struct", "record", "interface", "enum")
)

// dotnetExtractor handles the managed-runtime profile (C#).
type dotnetExtractor struct{}

func (dotnetExtractor) Language() domain.Language { return domain.LanguageDotNet }

func (dotnetExtractor) Extract(file domain.SourceFile, text string) domain.StructuralRecord {
	rec := domain.NewRecord(file)
	lines := newLineIndex(text)

	if m := csNamespace.FindStringSubmatch(text); m != nil {
		rec.Namespace = m[1]
	}

	decls := scanDeclarations(text, declPattern{
		re:        csType,
		nameGroup: 2,
		kindGroup: 1,
		reserved:  csReserved,
	})
	rec.Types = buildTypes(text, lines, decls, csMethods)
	rec.Interfaces = interfaces(scanNames(text, lines, csInterface, csReserved))
	rec.Enums = enums(scanNames(text, lines, csEnum, csReserved))

	return rec
}

// csMethods finds signatures that start with an access or static keyword,
// then an optional static/async, a return type, a name and a parameter list.
func csMethods(text string, lines lineIndex, b Block, skip func(int) bool) []domain.MethodSignature {
	body := b.Body(text)
	base := b.Open + 1

	methods := []domain.MethodSignature{}
	for _, m := range csMethod.FindAllStringSubmatchIndex(body, -1) {
		offset := base + m[0]
		if skip(offset) {
			continue
		}
		ret := strings.Fields(body[m[2]:m[3]])
		if len(ret) > 0 && csTypeKeywords[ret[len(ret)-1]] {
			continue
		}
		methods = append(methods, domain.MethodSignature{
			Name:       body[m[4]:m[5]],
			ReturnType: strings.Join(ret, " "),
			Parameters: splitParams(body[m[6]:m[7]]),
			Line:       lines.line(offset),
		})
	}
	return methods
}
