package extract_test

import (
	"testing"

	"github.com/docscan/docscan/internal/domain"
	"github.com/docscan/docscan/internal/domain/extract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func extractMarkup(t *testing.T, kind, text string) domain.StructuralRecord {
	t.Helper()
	ex, err := extract.For(domain.LanguageHTML)
	require.NoError(t, err)
	return ex.Extract(domain.SourceFile{RelativePath: "site/index." + kind, Kind: kind}, text)
}

func TestMarkup_HTMLMarkers(t *testing.T) {
	rec := extractMarkup(t, "html", `<!DOCTYPE html>
<html>
<head><link rel="stylesheet" href="main.css"></head>
<body><p>Hi</p><script src="app.js"></script></body>
</html>`)

	assert.True(t, rec.Markers.Scripts)
	assert.True(t, rec.Markers.Styles)
	assert.False(t, rec.Markers.Template)
	assert.Equal(t, 6, rec.Markers.Elements)
}

func TestMarkup_HTMLWithoutScriptsOrStyles(t *testing.T) {
	rec := extractMarkup(t, "html", "<p>plain</p>")
	assert.False(t, rec.Markers.Scripts)
	assert.False(t, rec.Markers.Styles)
	assert.Equal(t, 1, rec.Markers.Elements)
}

func TestMarkup_CSS(t *testing.T) {
	rec := extractMarkup(t, "css", "body { margin: 0 }\nh1 { font-size: 2em }\n")
	assert.Equal(t, 2, rec.Markers.Rules)
	assert.False(t, rec.Markers.MediaQueries)
}

func TestMarkup_JavaScript(t *testing.T) {
	rec := extractMarkup(t, "js", `function init() { render(); }
class Widget {
  render() { return 1; }
}
const f = function named() {};
`)
	assert.Equal(t, []string{"init", "named"}, rec.Functions)
	require.Len(t, rec.Types, 1)
	assert.Equal(t, "Widget", rec.Types[0].Name)
	assert.Empty(t, rec.Types[0].Methods)
	assert.NotNil(t, rec.Types[0].Methods)
}

func TestMarkup_UnknownKindYieldsEmptyRecord(t *testing.T) {
	rec := extractMarkup(t, "txt", "class Foo { }")
	assert.Empty(t, rec.Types)
	assert.NotNil(t, rec.Functions)
	assert.Equal(t, domain.Markers{}, rec.Markers)
}
