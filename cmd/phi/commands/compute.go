package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/phi/am"
	"github.com/teranos/phi/cache"
	"github.com/teranos/phi/compute"
	"github.com/teranos/phi/connectivity"
	"github.com/teranos/phi/display"
	"github.com/teranos/phi/errors"
	"github.com/teranos/phi/logger"
	"github.com/teranos/phi/system"
)

// ComputeCmd runs the concept-style search over a network file
var ComputeCmd = &cobra.Command{
	Use:   "compute <network-file>",
	Short: "Compute Φ for a network file",
	Long: `Compute the concept-style Φ of a subsystem described in a TOML or YAML
network file, using the built-in connectivity evaluator.

--nodes and --state override the values in the file.

Examples:
  phi compute basic.toml
  phi compute basic.toml --nodes 0,2 --state 1,0,0
  phi compute ring.yaml --parallel --partition-type BI --json`,
	Args: cobra.ExactArgs(1),
	RunE: runCompute,
}

func init() {
	ComputeCmd.Flags().IntSlice("nodes", nil, "Subsystem node indices (default: every node)")
	ComputeCmd.Flags().IntSlice("state", nil, "Network state, one 0/1 value per node")
	ComputeCmd.Flags().Bool("parallel", false, "Evaluate cuts on a worker pool")
	ComputeCmd.Flags().Int("workers", 0, "Worker pool size (0 = number of CPUs)")
	ComputeCmd.Flags().String("partition-type", "", "Partition strategy: ALL, BI or TRI")
	ComputeCmd.Flags().Bool("no-cache", false, "Skip the result cache")
	ComputeCmd.Flags().BoolP("json", "j", false, "Output the result as JSON")
}

// mipView is the printable form of one directional MIP.
type mipView struct {
	Direction string  `json:"direction"`
	Phi       float64 `json:"phi"`
	Cut       string  `json:"cut"`
	ElapsedMS int64   `json:"elapsed_ms"`
}

// resultView is the printable form of a concept-style result.
type resultView struct {
	Subsystem string  `json:"subsystem"`
	Network   string  `json:"network"`
	Phi       float64 `json:"phi"`
	Past      mipView `json:"past"`
	Future    mipView `json:"future"`
}

func newResultView(r *compute.BigMipConceptStyle) resultView {
	view := func(m *compute.BigMip, direction string) mipView {
		return mipView{
			Direction: direction,
			Phi:       m.Phi,
			Cut:       m.Cut.String(),
			ElapsedMS: m.Elapsed.Milliseconds(),
		}
	}
	return resultView{
		Subsystem: r.Subsystem.String(),
		Network:   r.Subsystem.Network().Key(),
		Phi:       r.Phi(),
		Past:      view(r.MipPast, "past"),
		Future:    view(r.MipFuture, "future"),
	}
}

// computeOverrides collects the config keys set by explicit flags.
func computeOverrides(cmd *cobra.Command) map[string]any {
	overrides := map[string]any{}
	flags := cmd.Flags()
	if flags.Changed("parallel") {
		v, _ := flags.GetBool("parallel")
		overrides["compute.parallel_cut_evaluation"] = v
	}
	if flags.Changed("workers") {
		v, _ := flags.GetInt("workers")
		overrides["compute.workers"] = v
	}
	if flags.Changed("partition-type") {
		v, _ := flags.GetString("partition-type")
		overrides["compute.partition_type"] = v
	}
	if flags.Changed("no-cache") {
		v, _ := flags.GetBool("no-cache")
		overrides["cache.enabled"] = !v
	}
	return overrides
}

// computeFile loads the network at path and searches the subsystem it
// describes under cfg.
func computeFile(ctx context.Context, cfg *am.Config, path string, nodes, state []int) (*compute.BigMipConceptStyle, error) {
	file, err := system.LoadNetworkFile(path)
	if err != nil {
		return nil, err
	}
	if nodes != nil {
		file.Nodes = nodes
	}
	if state != nil {
		file.State = state
	}
	sub, err := file.Subsystem()
	if err != nil {
		return nil, errors.Wrapf(err, "build subsystem from %s", path)
	}

	log := logger.ComponentLogger("compute")
	c, closeCache, err := cache.Open(cfg.Cache, log.Named("cache"))
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := closeCache(); err != nil {
			log.Warnw("Failed to close cache", logger.FieldError, err)
		}
	}()

	search, err := compute.NewSearch(cfg, connectivity.New(),
		compute.WithCache(c),
		compute.WithLogger(log),
	)
	if err != nil {
		return nil, err
	}
	return search.BigMip(ctx, sub)
}

func runCompute(cmd *cobra.Command, args []string) error {
	cfg, err := LoadConfig(cmd)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg, err = cfg.Override(computeOverrides(cmd))
	if err != nil {
		return err
	}

	var nodes, state []int
	if cmd.Flags().Changed("nodes") {
		nodes, _ = cmd.Flags().GetIntSlice("nodes")
	}
	if cmd.Flags().Changed("state") {
		state, _ = cmd.Flags().GetIntSlice("state")
	}

	start := time.Now()
	result, err := computeFile(cmd.Context(), cfg, args[0], nodes, state)
	if err != nil {
		return err
	}
	view := newResultView(result)

	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(cmd.OutOrStdout(), view)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, pterm.DefaultHeader.WithFullWidth().Sprintf("Φ = %g", view.Phi))
	fmt.Fprintf(out, "Subsystem: %s\n", view.Subsystem)
	fmt.Fprintf(out, "Partition: %s\n\n", cfg.Compute.PartitionType)

	data := pterm.TableData{{"Direction", "Φ", "Cut", "Elapsed"}}
	for _, m := range []mipView{view.Past, view.Future} {
		data = append(data, []string{
			m.Direction,
			fmt.Sprintf("%g", m.Phi),
			m.Cut,
			(time.Duration(m.ElapsedMS) * time.Millisecond).String(),
		})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(out, table)
	fmt.Fprintf(out, "\nTotal time: %s\n", time.Since(start).Round(time.Millisecond))
	return nil
}
