package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/transferflow/transferflow/internal/config"
	"github.com/transferflow/transferflow/pkg/network"
	"github.com/transferflow/transferflow/pkg/render"
)

// Supported render output formats.
const (
	formatDOT = "dot"
	formatSVG = "svg"
	formatPNG = "png"
)

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		level    string
		flowType string
		metric   string
		formats  string
		output   string
		detailed bool
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "render <network.json>",
		Short: "Transform a network and render the flow graph as a diagram",
		Long: `Render runs the transform and writes the resulting flow graph as a
Graphviz diagram. Formats: dot, svg, png (comma-separated for multiple).

Output files take the base path from --output, defaulting to the input
file name with the format extension.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadDefault()
			if err != nil {
				return err
			}

			opts, err := c.buildOptions(cfg, level, flowType, metric)
			if err != nil {
				return err
			}

			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read network: %w", err)
			}
			net, err := network.Unmarshal(raw)
			if err != nil {
				return fmt.Errorf("parse network: %w", err)
			}

			prog := newProgress(c.Logger)
			result, cached, err := c.runTransform(cmd.Context(), cfg, raw, net, opts, noCache, false)
			if err != nil {
				return err
			}

			base := output
			if base == "" {
				base = strings.TrimSuffix(args[0], filepath.Ext(args[0]))
			}
			dot := render.ToDOT(result, render.Options{Detailed: detailed})

			var written []string
			for _, format := range parseFormats(formats) {
				path := base + "." + format
				var data []byte
				switch format {
				case formatDOT:
					data = []byte(dot)
				case formatSVG:
					if data, err = render.RenderSVG(dot); err != nil {
						return fmt.Errorf("render svg: %w", err)
					}
				case formatPNG:
					if data, err = render.RenderPNG(dot); err != nil {
						return fmt.Errorf("render png: %w", err)
					}
				default:
					return fmt.Errorf("unknown format %q (want dot, svg, or png)", format)
				}
				if err := os.WriteFile(path, data, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", path, err)
				}
				written = append(written, path)
			}
			prog.done(fmt.Sprintf("Rendered %d format(s)", len(written)))

			printSuccess("Wrote diagram")
			for _, path := range written {
				printFile(path)
			}
			printStats(result.Stats.Nodes, result.Stats.Links, cached)
			if result.Stats.HasCycles {
				printWarning("Circular flows were broken to keep the graph acyclic")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&level, "level", "l", "", "aggregation level: club, league, country, continent")
	cmd.Flags().StringVarP(&flowType, "flow", "f", "", "flow type: bidirectional, net")
	cmd.Flags().StringVarP(&metric, "metric", "m", "", "edge metric: sum, count")
	cmd.Flags().StringVar(&formats, "formats", formatSVG, "output formats: dot, svg, png (comma-separated)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output base path (default: input name)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include node values in labels")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the result cache")

	return cmd
}
