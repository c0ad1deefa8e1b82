package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/trisolve/pkg/pipeline"
	"github.com/matzehuels/trisolve/pkg/triangle"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for trisolve.

Besides subcommands, the scripts complete --mode with the four solving modes
and --format with the output formats, including after a comma.

  bash:        source <(trisolve completion bash)
  zsh:         trisolve completion zsh > "${fpath[1]}/_trisolve"
  fish:        trisolve completion fish > ~/.config/fish/completions/trisolve.fish
  powershell:  trisolve completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

// completeModes offers the solving modes with their descriptions.
func completeModes(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	modes := triangle.Modes()
	out := make([]string, len(modes))
	for i, m := range modes {
		out[i] = m.String() + "\t" + m.Description()
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

// completeFormats offers the formats not yet listed in a comma-separated value.
func completeFormats(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	head, done := "", map[string]bool{}
	if i := strings.LastIndex(toComplete, ","); i >= 0 {
		head = toComplete[:i+1]
		for _, f := range strings.Split(toComplete[:i], ",") {
			done[strings.TrimSpace(f)] = true
		}
	}
	var out []string
	for _, f := range pipeline.FormatNames() {
		if !done[f] {
			out = append(out, head+f)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}
