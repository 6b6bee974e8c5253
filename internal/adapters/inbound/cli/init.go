package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/docscan/docscan/internal/adapters/outbound/config"
	"github.com/docscan/docscan/internal/domain"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newInitCmd() *cobra.Command {
	var (
		language string
		force    bool
	)

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Generate a .docscan.yaml configuration file",
		Long:  "Create a .docscan.yaml with the defaults for the given language profile.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			dest := filepath.Join(absPath, config.FileName)

			if !force {
				if _, err := os.Stat(dest); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", config.FileName)
				}
			}

			lang, err := domain.ParseLanguage(language)
			if err != nil {
				return err
			}

			content, err := generateConfig(lang)
			if err != nil {
				return err
			}

			if err := os.WriteFile(dest, []byte(content), 0644); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", config.FileName)
			return nil
		},
	}

	cmd.Flags().StringVarP(&language, "language", "l", string(domain.LanguageDotNet), "Language profile (dotnet, angular, html)")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing .docscan.yaml")

	return cmd
}

func generateConfig(lang domain.Language) (string, error) {
	body, err := yaml.Marshal(domain.ProjectConfig{
		Language:     string(lang),
		ListingLimit: domain.DefaultListingLimit,
	})
	if err != nil {
		return "", fmt.Errorf("encoding config: %w", err)
	}

	profile, err := domain.ProfileFor(lang)
	if err != nil {
		return "", err
	}

	header := "# docscan configuration\n" +
		fmt.Sprintf("# Built-in excludes for %s: %s\n", lang, strings.Join(profile.ExcludeDirs, " ")) +
		"#\n" +
		"# exclude_dirs:      directory names skipped at any depth\n" +
		"# ignore:            glob patterns matched against root-relative paths, e.g. \"**/*.Designer.cs\"\n" +
		"# respect_gitignore: also skip what .gitignore files exclude\n" +
		"# listing_limit:     files shown in the aggregate listing\n\n"
	return header + string(body), nil
}
