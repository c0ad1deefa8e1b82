package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/trisolve/pkg/triangle"
)

// modesCommand creates the modes command listing the solving modes.
func (c *CLI) modesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "modes",
		Short: "List the solving modes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), modesTable())
			return nil
		},
	}
}

func modesTable() string {
	rows := make([][]string, 0, len(triangle.Modes()))
	for _, m := range triangle.Modes() {
		rows = append(rows, []string{m.String(), m.Description(), joinKeys(m.Given()), joinKeys(m.Derived())})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	cell := lipgloss.NewStyle().Padding(0, 1)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Mode", "Description", "Given", "Derived").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle.Padding(0, 1)
			case col == 0:
				return cell.Foreground(colorCyan).Bold(true)
			case col == 3:
				return cell.Foreground(colorGray)
			}
			return cell.Foreground(colorWhite)
		}).
		Render()
}

func joinKeys(keys [3]triangle.Key) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = string(k)
	}
	return strings.Join(parts, ", ")
}
