package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/trisolve/pkg/errors"
	tio "github.com/matzehuels/trisolve/pkg/io"
	"github.com/matzehuels/trisolve/pkg/triangle"
)

// newCommand creates the new command that writes a starter input document.
func (c *CLI) newCommand() *cobra.Command {
	var (
		output string
		force  bool
	)

	cmd := &cobra.Command{
		Use:       "new [mode]",
		Short:     "Write a starter input document",
		Long:      `Write a TOML input document for the given mode (SAS by default) with the default measures filled in.`,
		Example:   "  trisolve new asa -o asa.toml\n  trisolve new sss > sss.toml",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"sas", "sss", "asa", "aas"},
		RunE: func(cmd *cobra.Command, args []string) error {
			m := triangle.DefaultMode
			if len(args) == 1 {
				parsed, err := triangle.ParseMode(args[0])
				if err != nil {
					return err
				}
				m = parsed
			}

			doc := tio.Template(m)
			if output == "" {
				fmt.Fprint(cmd.OutOrStdout(), doc)
				return nil
			}
			if !force {
				if _, err := os.Stat(output); err == nil {
					return errors.New(errors.ErrCodeInvalidInput, "%s already exists (use --force to overwrite)", output)
				}
			}
			if err := os.WriteFile(output, []byte(doc), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			printSuccess("Wrote %s document", m)
			printFile(output)
			printNextStep("Render it", "trisolve render "+output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	return cmd
}
