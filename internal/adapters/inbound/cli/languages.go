package cli

import (
	"fmt"
	"strings"

	"github.com/docscan/docscan/internal/domain"
	"github.com/spf13/cobra"
)

func newLanguagesCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "languages",
		Short: "List supported language profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			profiles := make([]domain.LanguageProfile, 0, len(domain.ValidLanguages))
			for _, lang := range domain.ValidLanguages {
				p, err := domain.ProfileFor(lang)
				if err != nil {
					return err
				}
				profiles = append(profiles, p)
			}

			if jsonOutput {
				return renderJSON(cmd, profiles)
			}

			out := cmd.OutOrStdout()
			for _, p := range profiles {
				fmt.Fprintf(out, "%s\n", p.Language)
				fmt.Fprintf(out, "  extensions:  %s\n", strings.Join(p.Extensions, " "))
				fmt.Fprintf(out, "  excludes:    %s\n", strings.Join(p.ExcludeDirs, " "))
				if len(p.SolutionDescriptors) > 0 || len(p.ProjectDescriptors) > 0 {
					fmt.Fprintf(out, "  descriptors: %s\n",
						strings.Join(append(append([]string{}, p.SolutionDescriptors...), p.ProjectDescriptors...), " "))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
