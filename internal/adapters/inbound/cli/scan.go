package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/docscan/docscan/internal/adapters/outbound/config"
	"github.com/docscan/docscan/internal/adapters/outbound/gitinfo"
	"github.com/docscan/docscan/internal/adapters/outbound/repo"
	"github.com/docscan/docscan/internal/adapters/outbound/scanner"
	"github.com/docscan/docscan/internal/adapters/outbound/tui"
	"github.com/docscan/docscan/internal/application"
	"github.com/docscan/docscan/internal/domain"
	"github.com/spf13/cobra"
)

// scanOutput is the --json payload.
type scanOutput struct {
	Structure domain.AggregateProjectStructure `json:"structure"`
	Skipped   []domain.SkippedFile             `json:"skipped,omitempty"`
	Records   []domain.StructuralRecord        `json:"records,omitempty"`
}

func newScanCmd() *cobra.Command {
	var (
		language    string
		jsonOutput  bool
		withRecords bool
		limit       int
		excludeDirs []string
		file        string
		repoURL     string
		branch      string
		token       string
		quiet       bool
	)

	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Extract the structure of a source tree",
		Long: "Walk a source tree, extract a structural record per file and print the aggregate " +
			"structure. With --repo the tree is shallow-cloned first and removed afterwards.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}
			if limit < 0 {
				return fmt.Errorf("--limit must be >= 0 (got %d)", limit)
			}

			logger := newLogger(cmd)
			if quiet {
				logger = discardLogger()
			}

			if repoURL != "" {
				if token == "" {
					token = os.Getenv("GITHUB_TOKEN")
				}
				co, err := repo.NewFetcher().WithToken(token).WithLogger(logger).Fetch(cmd.Context(), repoURL, branch)
				if err != nil {
					return err
				}
				defer co.Close()
				logger.Debug("cloned repository", "url", co.URL, "branch", co.Branch, "dir", co.Dir)
				path = co.Dir
			}

			svc := application.NewExtractService(
				scanner.New().WithLogger(logger),
				config.New(),
				gitinfo.New(),
			).WithLogger(logger)

			opts := application.ExtractOptions{
				Language:     language,
				ListingLimit: limit,
				ExcludeDirs:  excludeDirs,
			}

			if file != "" {
				rec, err := svc.ExtractFile(cmd.Context(), path, file, opts)
				if err != nil {
					return fmt.Errorf("extraction failed: %w", err)
				}
				if jsonOutput {
					return renderJSON(cmd, rec)
				}
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderRecord(*rec))
				return nil
			}

			if !quiet && !jsonOutput {
				svc.WithProgress(newProgressReporter(cmd.ErrOrStderr()))
			}

			ext, err := svc.Extract(cmd.Context(), path, opts)
			if err != nil {
				return fmt.Errorf("extraction failed: %w", err)
			}

			if jsonOutput {
				out := scanOutput{Structure: ext.Structure, Skipped: ext.Skipped}
				if withRecords {
					out.Records = ext.Records
				}
				return renderJSON(cmd, out)
			}

			fmt.Fprint(cmd.OutOrStdout(), tui.RenderExtraction(ext))
			if withRecords {
				for _, rec := range ext.Records {
					fmt.Fprintln(cmd.OutOrStdout(), tui.RenderRecord(rec))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&language, "language", "l", "", "Language profile: dotnet, angular or html (default from .docscan.yaml, else dotnet)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&withRecords, "records", false, "Include every per-file structural record")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum files in the listing (default 20)")
	cmd.Flags().StringSliceVar(&excludeDirs, "exclude", nil, "Additional directory names to skip")
	cmd.Flags().StringVar(&file, "file", "", "Extract a single file (path relative to the root)")
	cmd.Flags().StringVar(&repoURL, "repo", "", "Clone this repository (URL or owner/name) instead of reading a local path")
	cmd.Flags().StringVar(&branch, "branch", repo.FallbackBranch, "Branch to clone with --repo")
	cmd.Flags().StringVar(&token, "token", "", "Access token for private repositories (default $GITHUB_TOKEN)")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Suppress progress and warnings")

	return cmd
}

func renderJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
