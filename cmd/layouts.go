package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/kiesman99/collage/pkg/collage"
)

var layoutsCmd = &cobra.Command{
	Use:   "layouts",
	Short: "List the available layouts and anchor positions",
	Long: `List every grid layout with its shape and panel capacity.

With --captions the layout that --suggest would pick for that many captions
is marked.

Examples:
  collage layouts
  collage layouts --captions 4`,
	Args: cobra.NoArgs,
	RunE: runLayouts,
}

func init() {
	rootCmd.AddCommand(layoutsCmd)

	layoutsCmd.Flags().Int("captions", -1, "mark the layout suggested for this many captions")
}

func runLayouts(cmd *cobra.Command, args []string) error {
	captions, _ := cmd.Flags().GetInt("captions")

	suggested := collage.LayoutType("")
	if cmd.Flags().Changed("captions") {
		if captions < 0 {
			return fmt.Errorf("--captions must not be negative")
		}
		suggested = collage.SuggestLayout(captions)
	}

	highlight := lipgloss.NewStyle().Bold(true)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("LAYOUT", "GRID", "PANELS", "DESCRIPTION")

	layouts := collage.Layouts()
	for _, l := range layouts {
		rows, cols := collage.GridShape(l)
		name := string(l)
		if l == suggested {
			name += " *"
		}
		t.Row(name, fmt.Sprintf("%d x %d", rows, cols), strconv.Itoa(collage.RequiredPanelCount(l)), l.Description())
	}
	t.StyleFunc(func(row, col int) lipgloss.Style {
		if row >= 0 && row < len(layouts) && layouts[row] == suggested {
			return highlight
		}
		return lipgloss.NewStyle()
	})

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, t.Render())

	positions := make([]string, 0, len(collage.AnchorPositions()))
	for _, p := range collage.AnchorPositions() {
		positions = append(positions, string(p))
	}
	fmt.Fprintf(out, "Anchor positions: %s\n", strings.Join(positions, ", "))
	if suggested != "" {
		fmt.Fprintf(out, "Suggested for %d captions: %s\n", captions, suggested)
	}
	return nil
}
