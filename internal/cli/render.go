package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/trisolve/pkg/config"
	tio "github.com/matzehuels/trisolve/pkg/io"
	"github.com/matzehuels/trisolve/pkg/pipeline"
)

// renderCommand creates the render command for rendering an input document.
func (c *CLI) renderCommand() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "render [input.toml]",
		Short: "Render an input document",
		Long: `Render an input document (TOML, or JSON for a .json file) to one or
more output formats.

The document names the mode, the given measures and optionally a viewport:

  mode = "SAS"

  [inputs]
  a = 150
  b = 180
  C = 60

Outputs default to the input path with the format's extension. Results are
cached locally for faster subsequent runs.`,
		Example: `  trisolve render sas.toml
  trisolve render sas.toml -f svg,png,json -o out/sas
  trisolve render sas.toml --width 400 --height 300 -o small.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			runner, err := c.newRunner(flags.noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			_, err = c.renderDocument(cmd.Context(), runner, args[0], &flags, cmd, cfg)
			return err
		},
	}

	flags.register(cmd)

	return cmd
}

// renderDocument imports input, renders it and writes the artifacts.
// The returned paths are the files written.
func (c *CLI) renderDocument(ctx context.Context, runner *pipeline.Runner, input string, flags *renderFlags, cmd *cobra.Command, cfg config.Config) ([]string, error) {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	doc, err := tio.ImportFile(input)
	if err != nil {
		return nil, err
	}
	if missing := doc.Missing(); len(missing) > 0 {
		names := make([]string, len(missing))
		for i, k := range missing {
			names[i] = string(k)
		}
		logger.Warn("document leaves given measures unset; using defaults",
			"mode", doc.Mode, "missing", strings.Join(names, ","))
	}

	opts := flags.options(cmd, cfg, doc.Viewport)
	opts.Mode = doc.Mode
	opts.Inputs = doc.Inputs

	spinner := newRenderSpinner(ctx, opts.Formats)
	spinner.Start()

	res, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return nil, err
	}
	spinner.Stop()

	if !res.Solve.Valid {
		printWarning("No triangle: %s", res.Solve.Error)
	}

	written, err := writeArtifacts(res.Artifacts, opts.Formats, flags.output, input)
	if err != nil {
		return written, err
	}
	prog.done(fmt.Sprintf("Rendered %d artifacts", len(written)))
	printStats(res)
	for _, path := range written {
		printFile(path)
	}
	return written, nil
}
