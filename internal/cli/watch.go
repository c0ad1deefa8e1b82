package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/trisolve/pkg/errors"
	"github.com/matzehuels/trisolve/pkg/watcher"
)

// watchCommand creates the watch command for live re-rendering.
func (c *CLI) watchCommand() *cobra.Command {
	var (
		flags    renderFlags
		debounce = watcher.DefaultDebounce
	)

	cmd := &cobra.Command{
		Use:   "watch [input.toml]",
		Short: "Re-render an input document whenever it changes",
		Long: `Render an input document, then keep watching it and the config file
and render again after every save. A document that fails to parse is
reported and the previous outputs are left in place.

Press Ctrl+C to stop.`,
		Example: `  trisolve watch sas.toml -o sas.svg
  trisolve watch sas.toml -f svg,png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			input := args[0]
			logger := loggerFromContext(ctx)

			runner, err := c.newRunner(flags.noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			w, err := watcher.New(debounce, logger)
			if err != nil {
				return err
			}
			defer w.Close()

			if err := w.Add(input); err != nil {
				return err
			}
			cfgPath, _ := c.configFile()
			if cfgPath != "" {
				if err := w.Add(cfgPath); err != nil {
					logger.Debug("not watching config", "path", cfgPath, "err", err)
				}
			}

			render := func() {
				cfg, err := c.loadConfig()
				if err != nil {
					printError("Config: %s", errors.UserMessage(err))
					return
				}
				if _, err := c.renderDocument(ctx, runner, input, &flags, cmd, cfg); err != nil {
					printError("%s", errors.UserMessage(err))
				}
			}

			render()
			printInfo("Watching %s (Ctrl+C to stop)", filepath.Clean(input))

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return w.Run(gctx, func(path string) {
					logger.Debug("re-rendering", "changed", path)
					render()
				})
			})
			g.Go(func() error {
				<-gctx.Done()
				return w.Close()
			})
			return g.Wait()
		},
	}

	flags.register(cmd)
	cmd.Flags().DurationVar(&debounce, "debounce", debounce, "quiet period before re-rendering")

	return cmd
}
