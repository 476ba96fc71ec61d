package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ufmtooling/shapecanvas/pkg/layout"
	"github.com/ufmtooling/shapecanvas/pkg/pipeline"
	"github.com/ufmtooling/shapecanvas/pkg/render"
	"github.com/ufmtooling/shapecanvas/pkg/scene"
)

// arrangeCommand creates the arrange command for computing scene layouts.
func (c *CLI) arrangeCommand() *cobra.Command {
	var (
		formatsStr  string
		output      string
		margin      float64
		noCache     bool
		interactive bool
	)
	opts := pipeline.Options{}
	c.Config.applyDefaults(&opts)

	cmd := &cobra.Command{
		Use:   "arrange [scene.json|scene.yaml]",
		Short: "Compute box positions for a scene and render outputs",
		Long: `Compute box positions for a scene and render outputs.

The arrange command reads a scene file (JSON or YAML), places its boxes on
the canvas using the selected layout strategy, and writes the requested
output formats. The positioned scene itself is available as the json format;
the preview format renders a Graphviz node-link view of the connectivity
instead of the computed positions.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if formatsStr != "" || len(opts.Formats) == 0 {
				opts.Formats = parseFormats(formatsStr)
			}
			if err := render.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			if margin > 0 {
				opts.MarginTop = margin
				opts.MarginBottom = margin
				opts.MarginLeft = margin
				opts.MarginRight = margin
			}
			sc, err := scene.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("load scene %s: %w", args[0], err)
			}
			if interactive {
				chosen, err := pickStrategy(opts.Strategy, strategyChoicesFor(sc, opts.LayoutConfig()))
				if err != nil {
					return fmt.Errorf("strategy picker: %w", err)
				}
				if chosen == "" {
					printInfo("Aborted")
					return nil
				}
				opts.Strategy = chosen
			}
			return c.runArrange(cmd.Context(), sc, args[0], opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even when a cached layout exists")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "pick the layout strategy interactively")

	// Arrange flags
	cmd.Flags().StringVarP(&opts.Strategy, "strategy", "s", opts.Strategy, "layout strategy: grid (default), hierarchical, force, circular")
	cmd.Flags().Float64Var(&opts.Padding, "padding", opts.Padding, "minimum spacing between boxes")
	cmd.Flags().Float64Var(&margin, "margin", 0, "canvas margin on all four sides")
	cmd.Flags().Float64Var(&opts.CanvasWidth, "canvas-width", opts.CanvasWidth, "canvas width (overrides the scene's canvas)")
	cmd.Flags().Float64Var(&opts.CanvasHeight, "canvas-height", opts.CanvasHeight, "canvas height (overrides the scene's canvas)")
	cmd.Flags().BoolVar(&opts.SkipConnections, "skip-connections", opts.SkipConnections, "ignore connectors when placing boxes")

	// Render flags
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, dot, json, preview (comma-separated)")

	return cmd
}

// runArrange arranges the loaded scene and writes the rendered outputs.
func (c *CLI) runArrange(ctx context.Context, sc *scene.Scene, input string, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	strategy := opts.Strategy
	if strategy == "" {
		strategy = pipeline.DefaultStrategy
	}

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Arranging with %s strategy...", strategy))
	spinner.Start()

	result, err := runner.Execute(ctx, sc, opts)
	if err != nil {
		spinner.StopWithError("Arrange failed")
		return fmt.Errorf("arrange: %w", err)
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Arranged %d boxes", result.Layout.ElementsArranged))

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if err := writeArtifacts(result.Artifacts, opts.Formats, input, output); err != nil {
		return err
	}

	printSuccess("Arrange complete")
	printStats(result.Stats.NodeCount, result.Stats.ConnectorCount, result.CacheInfo.ArrangeHit)
	reportOverlaps(result.Scene, opts.LayoutConfig().Padding)

	if _, ok := result.Artifacts[render.FormatJSON]; ok {
		printNewline()
		printNextStep("Check overlaps", appName+" overlaps "+basePath(output, input)+".json")
	}

	return nil
}

// reportOverlaps counts overlapping box pairs in the positioned scene and
// warns when any remain.
func reportOverlaps(positioned *scene.Scene, padding float64) {
	elements, err := positioned.Elements()
	if err != nil {
		return
	}
	if n := layout.CountOverlaps(elements, padding); n > 0 {
		printWarning("%d overlapping box pairs remain", n)
	}
}

// writeArtifacts writes each rendered format to its own file.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) error {
	base := basePath(output, input)

	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		path := base + "." + render.FileExt(format)
		if err := writeFile(path, data); err != nil {
			return fmt.Errorf("write output %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}

// writeFile writes data to path, overwriting an existing file.
func writeFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .png, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if render.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
