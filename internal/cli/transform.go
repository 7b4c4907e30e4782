package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/transferflow/transferflow/internal/config"
	"github.com/transferflow/transferflow/pkg/cache"
	"github.com/transferflow/transferflow/pkg/flow"
	"github.com/transferflow/transferflow/pkg/network"
)

// cacheTTL is how long CLI transform results stay cached. Keys are
// content-addressed, so the TTL only bounds cache growth.
const cacheTTL = 24 * time.Hour

// transformCommand creates the transform command.
func (c *CLI) transformCommand() *cobra.Command {
	var (
		level    string
		flowType string
		metric   string
		output   string
		pretty   bool
		noCache  bool
		refresh  bool
	)

	cmd := &cobra.Command{
		Use:   "transform <network.json>",
		Short: "Aggregate a transfer network into a category flow graph",
		Long: `Transform reads a club-level transfer network from a JSON file,
aggregates it to the requested category level, and writes the resulting
flow graph as JSON.

The flow type controls how opposing transfer directions are handled:
"bidirectional" keeps both directions via split In/Out nodes, "net"
cancels opposing flows pairwise and breaks any remaining cycles.`,
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
			result, cached, err := c.runTransform(cmd.Context(), cfg, raw, net, opts, noCache, refresh)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Transformed %d clubs into %d %s nodes",
				result.Stats.OriginalNodes, result.Stats.Nodes, opts.Level))

			data, err := marshalResult(result, pretty)
			if err != nil {
				return err
			}

			if output == "" {
				fmt.Println(string(data))
				return nil
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write result: %w", err)
			}

			printSuccess("Wrote flow graph")
			printFile(output)
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
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "indent the JSON output")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the result cache")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute and overwrite any cached result")

	return cmd
}

// buildOptions resolves the transform options from flags, falling back to
// the config file defaults where a flag is unset.
func (c *CLI) buildOptions(cfg *config.Config, level, flowType, metric string) (flow.Options, error) {
	opts := flow.Options{Logger: c.Logger}
	var err error

	if level == "" {
		level = cfg.Defaults.Level
	}
	if opts.Level, err = flow.ParseLevel(level); err != nil {
		return opts, err
	}

	if flowType == "" {
		flowType = cfg.Defaults.FlowType
	}
	if opts.FlowType, err = flow.ParseFlowType(flowType); err != nil {
		return opts, err
	}

	if metric == "" {
		metric = cfg.Defaults.Metric
	}
	if opts.Metric, err = flow.ParseMetric(metric); err != nil {
		return opts, err
	}

	return opts, opts.ValidateAndSetDefaults()
}

// runTransform runs the engine with result caching. The second return
// reports whether the result came from the cache.
func (c *CLI) runTransform(ctx context.Context, cfg *config.Config, raw []byte, net *network.Network, opts flow.Options, noCache, refresh bool) (*flow.Result, bool, error) {
	store := cache.Instrument(newCache(cfg, noCache), "transform")
	defer store.Close()

	key := cache.TransformKey(cache.Hash(raw),
		string(opts.Level), string(opts.FlowType), string(opts.Metric))

	if !refresh {
		if data, ok, err := store.Get(ctx, key); err == nil && ok {
			var result flow.Result
			if err := json.Unmarshal(data, &result); err == nil {
				c.Logger.Debug("cache hit", "key", key)
				return &result, true, nil
			}
		}
	}

	result := flow.Transform(net, opts)

	if data, err := json.Marshal(result); err == nil {
		if err := store.Set(ctx, key, data, cacheTTL); err != nil {
			c.Logger.Warn("cache write failed", "err", err)
		}
	}
	return result, false, nil
}

func marshalResult(result *flow.Result, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(result, "", "  ")
	}
	return json.Marshal(result)
}
