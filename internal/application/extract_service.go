package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"

	"github.com/docscan/docscan/internal/domain"
	"github.com/docscan/docscan/internal/domain/aggregate"
	"github.com/docscan/docscan/internal/domain/extract"
)

// ExtractOptions carries per-run overrides. Zero values defer to the
// project's .docscan.yaml and then to built-in defaults.
type ExtractOptions struct {
	Language     string
	ListingLimit int
	ExcludeDirs  []string
}

// ExtractService orchestrates one extraction run:
// load config → resolve profile → enumerate → read → extract → aggregate.
type ExtractService struct {
	enumerator   domain.FileEnumerator
	configLoader domain.ConfigLoader
	gitInfo      domain.GitInfo
	progress     domain.ProgressReporter
	logger       *slog.Logger
}

func NewExtractService(
	enumerator domain.FileEnumerator,
	configLoader domain.ConfigLoader,
	gitInfo domain.GitInfo,
) *ExtractService {
	return &ExtractService{
		enumerator:   enumerator,
		configLoader: configLoader,
		gitInfo:      gitInfo,
		logger:       slog.Default(),
	}
}

// WithProgress attaches a reporter for start/file/done events.
func (s *ExtractService) WithProgress(p domain.ProgressReporter) *ExtractService {
	s.progress = p
	return s
}

func (s *ExtractService) WithLogger(logger *slog.Logger) *ExtractService {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// run is the resolved state shared by Extract and ExtractFile.
type run struct {
	lang       domain.Language
	profile    domain.LanguageProfile
	extractor  extract.Extractor
	enumerator domain.FileEnumerator
	limit      int
}

func (s *ExtractService) prepare(root string, opts ExtractOptions) (*run, error) {
	cfg, err := s.configLoader.Load(root)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	lang, err := cfg.EffectiveLanguage(opts.Language)
	if err != nil {
		return nil, err
	}
	profile, err := domain.ProfileFor(lang)
	if err != nil {
		return nil, err
	}
	profile = profile.WithExcludes(cfg.ExcludeDirs...).WithExcludes(opts.ExcludeDirs...)

	ex, err := extract.For(lang)
	if err != nil {
		return nil, err
	}

	enumerator := s.enumerator
	if f, ok := enumerator.(domain.FilterableEnumerator); ok && (len(cfg.Ignore) > 0 || cfg.RespectGitignore) {
		enumerator, err = f.WithFilters(cfg.Ignore, cfg.RespectGitignore)
		if err != nil {
			return nil, fmt.Errorf("applying ignore rules: %w", err)
		}
	}

	limit := cfg.EffectiveListingLimit()
	if opts.ListingLimit > 0 {
		limit = opts.ListingLimit
	}

	return &run{lang: lang, profile: profile, extractor: ex, enumerator: enumerator, limit: limit}, nil
}

// Extract runs the full pipeline over root. Only a missing root, an invalid
// config or a cancelled ctx fail the run; unreadable files are skipped and
// listed in the result.
func (s *ExtractService) Extract(ctx context.Context, root string, opts ExtractOptions) (*domain.Extraction, error) {
	absRoot, err := domain.ResolveRoot(root)
	if err != nil {
		return nil, err
	}

	r, err := s.prepare(absRoot, opts)
	if err != nil {
		return nil, err
	}

	files, err := r.enumerator.Enumerate(absRoot, r.profile)
	if err != nil {
		return nil, err
	}

	if s.progress != nil {
		s.progress.OnExtractionStart(absRoot, r.lang)
	}

	records := make([]domain.StructuralRecord, 0)
	var skipped []domain.SkippedFile
	for f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rec, err := s.extractOne(r.extractor, f)
		if err != nil {
			s.logger.Warn("skipping file", "path", f.RelativePath, "err", err)
			skipped = append(skipped, domain.SkippedFile{RelativePath: f.RelativePath, Reason: err.Error()})
		} else {
			records = append(records, rec)
		}

		if s.progress != nil {
			s.progress.OnFileProcessed(f.RelativePath)
		}
	}

	counts, err := r.enumerator.CountDescriptors(absRoot, r.profile)
	if err != nil {
		return nil, fmt.Errorf("counting descriptors: %w", err)
	}

	structure := aggregate.Aggregate(absRoot, r.lang, records, counts, r.limit)
	if s.gitInfo != nil && s.gitInfo.IsGitRepo(absRoot) {
		if hash, err := s.gitInfo.CommitHash(absRoot); err == nil {
			structure.CommitHash = hash
		} else {
			s.logger.Debug("no commit hash", "root", absRoot, "err", err)
		}
	}

	if s.progress != nil {
		s.progress.OnExtractionComplete(len(records), len(skipped))
	}

	return &domain.Extraction{
		Records:   records,
		Skipped:   skipped,
		Structure: structure,
	}, nil
}

// ExtractFile extracts a single file given by its root-relative path. The
// file must be one the profile accepts; exclusions do not apply.
func (s *ExtractService) ExtractFile(ctx context.Context, root, rel string, opts ExtractOptions) (*domain.StructuralRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	absRoot, err := domain.ResolveRoot(root)
	if err != nil {
		return nil, err
	}

	r, err := s.prepare(absRoot, opts)
	if err != nil {
		return nil, err
	}

	clean := filepath.Clean(filepath.FromSlash(rel))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return nil, fmt.Errorf("path %q escapes the root", rel)
	}
	name := filepath.Base(clean)
	if !r.profile.Accepts(name) {
		return nil, fmt.Errorf("%s is not a %s source file", rel, r.lang)
	}

	f := domain.SourceFile{
		Path:         filepath.Join(absRoot, clean),
		RelativePath: filepath.ToSlash(clean),
		Kind:         domain.KindOf(name),
	}
	rec, err := s.extractOne(r.extractor, f)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// extractOne reads and extracts a single file. A panic inside an extractor
// is reported as an error for that file only.
func (s *ExtractService) extractOne(ex extract.Extractor, f domain.SourceFile) (rec domain.StructuralRecord, err error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return domain.StructuralRecord{}, fmt.Errorf("reading %s: %w", f.RelativePath, err)
	}

	if len(data) > 0 && !isText(data) {
		s.logger.Warn("file does not look like text", "path", f.RelativePath, "mime", mimetype.Detect(data).String())
	}

	defer func() {
		if p := recover(); p != nil {
			rec = domain.StructuralRecord{}
			err = fmt.Errorf("extracting %s: %v", f.RelativePath, p)
		}
	}()

	return ex.Extract(f, decode(data)), nil
}

// decode converts file bytes to text, replacing invalid UTF-8 with U+FFFD.
func decode(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	return strings.ToValidUTF8(string(data), "\uFFFD")
}

func isText(data []byte) bool {
	for m := mimetype.Detect(data); m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return false
}
