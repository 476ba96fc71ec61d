package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ufmtooling/shapecanvas/pkg/layout"
	"github.com/ufmtooling/shapecanvas/pkg/scene"
)

// overlapsCommand creates the overlaps command for checking arranged scenes.
func (c *CLI) overlapsCommand() *cobra.Command {
	var (
		padding float64
		strict  bool
	)

	cmd := &cobra.Command{
		Use:   "overlaps [scene.json|scene.yaml]",
		Short: "Count overlapping box pairs in an arranged scene",
		Long: `Count overlapping box pairs in an arranged scene.

Two boxes overlap when their padded bounding rectangles intersect. The
padding inflates each box on its right and bottom edges, so boxes closer
together than the padding distance also count as overlapping.

With --strict, a non-zero overlap count makes the command fail, which is
useful in CI pipelines validating generated diagrams.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runOverlaps(args[0], padding, strict)
		},
	}

	cmd.Flags().Float64Var(&padding, "padding", layout.DefaultPadding, "padding distance counted as overlap")
	cmd.Flags().BoolVar(&strict, "strict", false, "exit with an error when overlaps remain")

	return cmd
}

// runOverlaps loads the scene and reports its overlap count.
func (c *CLI) runOverlaps(input string, padding float64, strict bool) error {
	sc, err := scene.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load scene %s: %w", input, err)
	}

	elements, err := sc.Elements()
	if err != nil {
		return fmt.Errorf("convert scene: %w", err)
	}

	count := layout.CountOverlaps(elements, padding)
	boxes := len(sc.Nodes)

	if count == 0 {
		printSuccess("No overlaps among %d boxes", boxes)
		return nil
	}

	printWarning("%d overlapping box pairs among %d boxes", count, boxes)
	printDetail("padding: %g", padding)
	if strict {
		return fmt.Errorf("%d overlapping box pairs", count)
	}
	return nil
}
