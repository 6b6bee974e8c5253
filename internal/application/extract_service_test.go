package application_test

import (
	"context"
	"errors"
	"iter"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/docscan/docscan/internal/adapters/outbound/config"
	"github.com/docscan/docscan/internal/adapters/outbound/scanner"
	"github.com/docscan/docscan/internal/application"
	"github.com/docscan/docscan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const shopFixture = "../../testdata/dotnet/shop"

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func newExtractService() *application.ExtractService {
	return application.NewExtractService(scanner.New(), config.New(), nil)
}

type fakeEnumerator struct {
	files  []domain.SourceFile
	counts domain.DescriptorCounts
}

func (f fakeEnumerator) Enumerate(string, domain.LanguageProfile) (iter.Seq[domain.SourceFile], error) {
	return slices.Values(f.files), nil
}

func (f fakeEnumerator) CountDescriptors(string, domain.LanguageProfile) (domain.DescriptorCounts, error) {
	return f.counts, nil
}

type fakeGit struct{ hash string }

func (g fakeGit) IsGitRepo(string) bool { return true }

func (g fakeGit) CommitHash(string) (string, error) { return g.hash, nil }

type recordingProgress struct {
	started   domain.Language
	processed []string
	files     int
	skipped   int
}

func (p *recordingProgress) OnExtractionStart(_ string, lang domain.Language) { p.started = lang }

func (p *recordingProgress) OnFileProcessed(rel string) { p.processed = append(p.processed, rel) }

func (p *recordingProgress) OnExtractionComplete(files, skipped int) {
	p.files, p.skipped = files, skipped
}

func TestExtractService_ShopFixture(t *testing.T) {
	ext, err := newExtractService().Extract(context.Background(), shopFixture, application.ExtractOptions{})
	require.NoError(t, err)

	s := ext.Structure
	assert.Equal(t, domain.LanguageDotNet, s.Language)
	assert.Equal(t, 1, s.SolutionFiles)
	assert.Equal(t, 2, s.ProjectFiles)
	assert.Equal(t, len(ext.Records), s.TotalFiles)
	assert.Empty(t, ext.Skipped)

	byPath := map[string]domain.StructuralRecord{}
	for _, rec := range ext.Records {
		byPath[rec.File.RelativePath] = rec
	}
	assert.NotContains(t, byPath, "src/Shop.Api/bin/Debug/Generated.cs")

	order, ok := byPath["src/Shop.Core/Models/Order.cs"]
	require.True(t, ok)
	assert.Equal(t, "Shop.Core.Models", order.Namespace)
	require.Len(t, order.Types, 1)
	assert.Equal(t, "Order", order.Types[0].Name)
}

func TestExtractService_MissingRoot(t *testing.T) {
	_, err := newExtractService().Extract(context.Background(), filepath.Join(t.TempDir(), "gone"), application.ExtractOptions{})
	var nf *domain.NotFoundError
	require.True(t, errors.As(err, &nf))
}

func TestExtractService_RootIsAFile(t *testing.T) {
	root := writeTree(t, map[string]string{"Order.cs": "public class Order { }"})
	enum := fakeEnumerator{files: []domain.SourceFile{}}
	svc := application.NewExtractService(enum, config.New(), nil)

	_, err := svc.Extract(context.Background(), filepath.Join(root, "Order.cs"), application.ExtractOptions{})
	var nf *domain.NotFoundError
	require.True(t, errors.As(err, &nf))

	_, err = svc.ExtractFile(context.Background(), filepath.Join(root, "Order.cs"), "Order.cs", application.ExtractOptions{})
	assert.True(t, errors.As(err, &nf))
}

func TestExtractService_SymlinkedRoot(t *testing.T) {
	target := writeTree(t, map[string]string{"src/Order.cs": "public class Order { }"})
	link := filepath.Join(t.TempDir(), "checkout")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	ext, err := newExtractService().Extract(context.Background(), link, application.ExtractOptions{})
	require.NoError(t, err)
	require.Len(t, ext.Records, 1)
	assert.Equal(t, "src/Order.cs", ext.Records[0].File.RelativePath)
	assert.Equal(t, 1, ext.Structure.TotalTypes)
}

func TestExtractService_EmptyTree(t *testing.T) {
	ext, err := newExtractService().Extract(context.Background(), t.TempDir(), application.ExtractOptions{})
	require.NoError(t, err)
	assert.NotNil(t, ext.Records)
	assert.Empty(t, ext.Records)
	assert.Equal(t, 0, ext.Structure.TotalFiles)
	assert.NotNil(t, ext.Structure.Files)
}

func TestExtractService_UnreadableFileIsSkipped(t *testing.T) {
	root := writeTree(t, map[string]string{"Good.cs": "public class Good { }"})
	enum := fakeEnumerator{files: []domain.SourceFile{
		{Path: filepath.Join(root, "Missing.cs"), RelativePath: "Missing.cs", Kind: "cs"},
		{Path: filepath.Join(root, "Good.cs"), RelativePath: "Good.cs", Kind: "cs"},
	}}
	progress := &recordingProgress{}
	svc := application.NewExtractService(enum, config.New(), nil).WithProgress(progress)

	ext, err := svc.Extract(context.Background(), root, application.ExtractOptions{})
	require.NoError(t, err)

	require.Len(t, ext.Records, 1)
	assert.Equal(t, "Good.cs", ext.Records[0].File.RelativePath)
	require.Len(t, ext.Skipped, 1)
	assert.Equal(t, "Missing.cs", ext.Skipped[0].RelativePath)
	assert.Contains(t, ext.Skipped[0].Reason, "reading Missing.cs")

	assert.Equal(t, domain.LanguageDotNet, progress.started)
	assert.Equal(t, []string{"Missing.cs", "Good.cs"}, progress.processed)
	assert.Equal(t, 1, progress.files)
	assert.Equal(t, 1, progress.skipped)
}

func TestExtractService_InvalidUTF8IsDecodedLossily(t *testing.T) {
	root := writeTree(t, map[string]string{
		"Order.cs": "// caf\xe9 \xff\xfe\nnamespace Shop { public class Order { public void Pay(int amount) { } } }",
	})

	ext, err := newExtractService().Extract(context.Background(), root, application.ExtractOptions{})
	require.NoError(t, err)
	require.Len(t, ext.Records, 1)
	rec := ext.Records[0]
	assert.Equal(t, "Shop", rec.Namespace)
	require.Len(t, rec.Types, 1)
	assert.Equal(t, []string{"Pay"}, []string{rec.Types[0].Methods[0].Name})
}

func TestExtractService_LanguageOverrideAndConfig(t *testing.T) {
	root := writeTree(t, map[string]string{
		".docscan.yaml":          "language: angular\nexclude_dirs: [legacy]\nlisting_limit: 1\n",
		"src/app/a.component.ts": "export class AComponent {}",
		"src/app/b.component.ts": "export class BComponent {}",
		"src/legacy/old.ts":      "export class Old {}",
		"src/Program.cs":         "public class Program { }",
	})

	ext, err := newExtractService().Extract(context.Background(), root, application.ExtractOptions{})
	require.NoError(t, err)
	assert.Equal(t, domain.LanguageAngular, ext.Structure.Language)
	assert.Equal(t, 2, ext.Structure.TotalFiles)
	assert.Len(t, ext.Structure.Files, 1)
	assert.True(t, ext.Structure.Truncated)

	ext, err = newExtractService().Extract(context.Background(), root, application.ExtractOptions{
		Language:     "dotnet",
		ListingLimit: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.LanguageDotNet, ext.Structure.Language)
	require.Len(t, ext.Records, 1)
	assert.Equal(t, "src/Program.cs", ext.Records[0].File.RelativePath)
	assert.False(t, ext.Structure.Truncated)
}

func TestExtractService_ConfigIgnorePatterns(t *testing.T) {
	root := writeTree(t, map[string]string{
		".docscan.yaml":          "ignore:\n  - \"**/*.Designer.cs\"\n",
		"Forms/Main.Designer.cs": "public class MainDesigner { }",
		"Forms/Main.cs":          "public class Main { }",
	})

	ext, err := newExtractService().Extract(context.Background(), root, application.ExtractOptions{})
	require.NoError(t, err)
	require.Len(t, ext.Records, 1)
	assert.Equal(t, "Forms/Main.cs", ext.Records[0].File.RelativePath)
}

func TestExtractService_InvalidConfig(t *testing.T) {
	root := writeTree(t, map[string]string{".docscan.yaml": "language: cobol\n"})

	_, err := newExtractService().Extract(context.Background(), root, application.ExtractOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading config")
}

func TestExtractService_UnknownLanguageOverride(t *testing.T) {
	_, err := newExtractService().Extract(context.Background(), t.TempDir(), application.ExtractOptions{Language: "cobol"})
	assert.ErrorIs(t, err, domain.ErrUnknownLanguage)
}

func TestExtractService_CancelledContext(t *testing.T) {
	root := writeTree(t, map[string]string{"A.cs": "", "B.cs": ""})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newExtractService().Extract(ctx, root, application.ExtractOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExtractService_AttachesCommitHash(t *testing.T) {
	root := writeTree(t, map[string]string{"A.cs": "public class A { }"})
	svc := application.NewExtractService(scanner.New(), config.New(), fakeGit{hash: "abc123"})

	ext, err := svc.Extract(context.Background(), root, application.ExtractOptions{})
	require.NoError(t, err)
	assert.Equal(t, "abc123", ext.Structure.CommitHash)
}

func TestExtractService_ExtractFile(t *testing.T) {
	svc := newExtractService()
	ctx := context.Background()

	rec, err := svc.ExtractFile(ctx, shopFixture, "src/Shop.Core/Models/Order.cs", application.ExtractOptions{})
	require.NoError(t, err)
	assert.Equal(t, "src/Shop.Core/Models/Order.cs", rec.File.RelativePath)
	require.Len(t, rec.Types, 1)

	_, err = svc.ExtractFile(ctx, shopFixture, "../outside.cs", application.ExtractOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "escapes the root")

	_, err = svc.ExtractFile(ctx, shopFixture, "Shop.sln", application.ExtractOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a dotnet source file")

	_, err = svc.ExtractFile(ctx, shopFixture, "src/Nope.cs", application.ExtractOptions{})
	assert.ErrorIs(t, err, os.ErrNotExist)
}
