package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/trisolve/pkg/pipeline"
	"github.com/matzehuels/trisolve/pkg/session"
	"github.com/matzehuels/trisolve/pkg/triangle"
)

// measureFlags maps each measure to its flag name and shorthand.
var measureFlags = []struct {
	key       triangle.Key
	name      string
	shorthand string
}{
	{triangle.SideA, "side-a", "a"},
	{triangle.SideB, "side-b", "b"},
	{triangle.SideC, "side-c", "c"},
	{triangle.AngleA, "angle-a", "A"},
	{triangle.AngleB, "angle-b", "B"},
	{triangle.AngleC, "angle-c", "C"},
}

// solveCommand creates the solve command for solving from flags.
func (c *CLI) solveCommand() *cobra.Command {
	var (
		mode  string
		flags renderFlags
	)
	raw := make(map[triangle.Key]*string, len(measureFlags))

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve a triangle from three measures",
		Long: `Solve a triangle from three known measures and print every measure
together with the formulas used to derive it.

Measures the mode does not take as given are ignored. Given measures that are
left out keep their defaults (a=150, b=180, c=150, 60° angles).

With -o or -f the triangle is also rendered and written to disk.`,
		Example: `  trisolve solve --mode sas -a 150 -b 180 --angle-c 60
  trisolve solve --mode sss -a 3 -b 4 -c 5 -o right.svg
  trisolve solve --mode asa -A 40 -c 10 -B 60 -f svg,png -o out/asa`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := triangle.ParseMode(mode)
			if err != nil {
				return err
			}
			given := make(map[triangle.Key]string)
			for k, v := range raw {
				if cmd.Flags().Changed(flagName(k)) {
					given[k] = *v
				}
			}
			in, ignored, err := measuresFromFlags(m, given)
			if err != nil {
				return err
			}
			for _, k := range ignored {
				c.Logger.Warn("ignoring measure not given in this mode", "mode", m, "measure", k)
			}
			return c.runSolve(cmd, m, in, &flags)
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", triangle.DefaultMode.String(), "solving mode: SAS, SSS, ASA, AAS")
	_ = cmd.RegisterFlagCompletionFunc("mode", completeModes)
	for _, f := range measureFlags {
		raw[f.key] = cmd.Flags().StringP(f.name, f.shorthand, "", f.key.Label())
	}
	flags.register(cmd)

	return cmd
}

// flagName returns the long flag name for the measure k.
func flagName(k triangle.Key) string {
	for _, f := range measureFlags {
		if f.key == k {
			return f.name
		}
	}
	return ""
}

// measuresFromFlags parses the given raw values over the default measures.
// Keys the mode derives are returned as ignored rather than applied.
func measuresFromFlags(m triangle.Mode, raw map[triangle.Key]string) (triangle.Measures, []triangle.Key, error) {
	in := triangle.Defaults()
	var ignored []triangle.Key
	for _, k := range triangle.Keys {
		v, ok := raw[k]
		if !ok {
			continue
		}
		if !m.IsGiven(k) {
			ignored = append(ignored, k)
			continue
		}
		parsed, err := triangle.ParseMeasure(k, v)
		if err != nil {
			return triangle.Measures{}, nil, err
		}
		in = in.Set(k, parsed)
	}
	return in, ignored, nil
}

// runSolve solves, prints the result and writes artifacts when asked to.
func (c *CLI) runSolve(cmd *cobra.Command, m triangle.Mode, in triangle.Measures, flags *renderFlags) error {
	ctx := cmd.Context()
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	runner, err := c.newRunner(flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := flags.options(cmd, cfg, nil)
	opts.Mode = m
	opts.Inputs = in

	render := flags.output != "" || cmd.Flags().Changed("format")
	var res *pipeline.Result
	if render {
		if res, err = runner.Execute(ctx, opts); err != nil {
			return err
		}
	} else {
		start := time.Now()
		res = &pipeline.Result{Solve: runner.Solve(ctx, m, in)}
		res.Stats.SolveTime = time.Since(start)
	}

	state := session.State{Mode: m, Inputs: in, Result: res.Solve}
	fmt.Println(StyleTitle.Render(m.String()) + " " + StyleDim.Render(m.Description()))
	printNewline()
	printReadouts(state.Readouts())
	printNewline()
	printSteps(res.Solve.Steps)
	printNewline()
	printStats(res)

	if !res.Solve.Valid {
		return res.Solve.Err
	}
	if !render {
		return nil
	}

	written, err := writeArtifacts(res.Artifacts, opts.Formats, flags.output, "triangle")
	if err != nil {
		return err
	}
	for _, path := range written {
		printFile(path)
	}
	return nil
}
