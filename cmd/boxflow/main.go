// Command boxflow is the CLI harness around the layout engine: compute
// a layout from a JSON node tree, rasterize it, or benchmark the
// incremental cache.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"boxflow/pkg/geom"
	"boxflow/pkg/incremental"
	"boxflow/pkg/layout"
	"boxflow/pkg/render"
	"boxflow/pkg/treejson"
)

var (
	flagViewport   string
	flagRootSizing string
	flagTrace      bool
)

func main() {
	root := &cobra.Command{
		Use:           "boxflow",
		Short:         "CSS block/flex/grid layout engine",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flagViewport, "viewport", "800x600", "viewport size WxH")
	root.PersistentFlags().StringVar(&flagRootSizing, "root-sizing", "fill", "auto-width container sizing: fill or shrink")
	root.PersistentFlags().BoolVar(&flagTrace, "trace", false, "debug-trace layout passes to stderr")

	root.AddCommand(computeCmd(), renderCmd(), benchCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "boxflow:", err)
		os.Exit(1)
	}
}

func parseViewport() (geom.Size, error) {
	if !strings.Contains(flagViewport, "x") {
		return geom.Size{}, fmt.Errorf("viewport %q: want WxH", flagViewport)
	}
	var w, h float64
	if _, err := fmt.Sscanf(flagViewport, "%gx%g", &w, &h); err != nil {
		return geom.Size{}, fmt.Errorf("viewport %q: %w", flagViewport, err)
	}
	return geom.Size{Width: w, Height: h}, nil
}

func newEngine() (*layout.Engine, error) {
	var opts []layout.Option
	switch flagRootSizing {
	case "fill":
	case "shrink":
		opts = append(opts, layout.WithRootSizing(layout.RootShrink))
	default:
		return nil, fmt.Errorf("root-sizing %q: want fill or shrink", flagRootSizing)
	}
	if flagTrace {
		log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.DebugLevel)
		opts = append(opts, layout.WithLogger(log))
	}
	return layout.New(opts...), nil
}

func loadTree(path string) (*layout.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return treejson.DecodeTree(data)
}

func computeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compute <tree.json>",
		Short: "Lay out a node tree and print the result as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			node, err := loadTree(args[0])
			if err != nil {
				return err
			}
			vp, err := parseViewport()
			if err != nil {
				return err
			}
			engine, err := newEngine()
			if err != nil {
				return err
			}
			result := engine.Compute(node, layout.Context{
				AvailableWidth:  geom.Some(vp.Width),
				AvailableHeight: geom.Some(vp.Height),
				ViewportWidth:   vp.Width,
				ViewportHeight:  vp.Height,
			})
			out, err := treejson.EncodeLayout(result)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}

func renderCmd() *cobra.Command {
	var output string
	var fontPath string
	cmd := &cobra.Command{
		Use:   "render <tree.json>",
		Short: "Lay out a node tree and rasterize the boxes to a PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			node, err := loadTree(args[0])
			if err != nil {
				return err
			}
			vp, err := parseViewport()
			if err != nil {
				return err
			}
			engine, err := newEngine()
			if err != nil {
				return err
			}
			result := engine.Compute(node, layout.Context{
				AvailableWidth:  geom.Some(vp.Width),
				AvailableHeight: geom.Some(vp.Height),
				ViewportWidth:   vp.Width,
				ViewportHeight:  vp.Height,
			})
			if err := render.SavePNG(result, output, render.Options{FontPath: fontPath}); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "layout.png", "output PNG path")
	cmd.Flags().StringVar(&fontPath, "font", "", "TTF for box labels")
	return cmd
}

func benchCmd() *cobra.Command {
	var runs int
	cmd := &cobra.Command{
		Use:   "bench <tree.json>",
		Short: "Run repeated incremental recomputes and print cache stats",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			node, err := loadTree(args[0])
			if err != nil {
				return err
			}
			vp, err := parseViewport()
			if err != nil {
				return err
			}
			engine, err := newEngine()
			if err != nil {
				return err
			}
			tree := incremental.New(toLayoutNode(node), vp, incremental.WithEngine(engine))
			for i := 0; i < runs; i++ {
				tree.ComputeIncremental()
			}
			stats := tree.CacheStats()
			fmt.Fprintf(cmd.OutOrStdout(), "runs=%d hits=%d misses=%d hit_rate=%.2f%%\n",
				runs, stats.Hits, stats.Misses, stats.HitRate()*100)
			return nil
		},
	}
	cmd.Flags().IntVarP(&runs, "runs", "n", 10, "number of compute passes")
	return cmd
}

// toLayoutNode copies an immutable Node tree into incremental nodes.
func toLayoutNode(n *layout.Node) *incremental.LayoutNode {
	ln := &incremental.LayoutNode{
		Uid:     n.Uid,
		ID:      n.ID,
		Style:   n.Style,
		Measure: n.Measure,
		Text:    n.Text,
	}
	for _, c := range n.Children {
		ln.Children = append(ln.Children, toLayoutNode(c))
	}
	return ln
}
