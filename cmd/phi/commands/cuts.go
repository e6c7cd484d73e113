package commands

import (
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/phi/compute"
	"github.com/teranos/phi/errors"
	"github.com/teranos/phi/models"
	"github.com/teranos/phi/partition"
)

// CutsCmd lists the concept cuts the search would evaluate
var CutsCmd = &cobra.Command{
	Use:   "cuts <indices...>",
	Short: "List the concept cuts of a set of nodes",
	Long: `List every concept cut of the given node indices in one direction, in the
order the search evaluates them.

Examples:
  phi cuts --direction past 0 1 2
  phi cuts --direction future --partition-type BI 0 1`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCuts,
}

func init() {
	CutsCmd.Flags().StringP("direction", "d", "past", "Cut direction: past or future")
	CutsCmd.Flags().String("partition-type", "", "Partition strategy: ALL, BI or TRI (default from config)")
}

func parseIndices(args []string) ([]int, error) {
	indices := make([]int, len(args))
	for i, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil || n < 0 {
			return nil, errors.NewInvalidRequestError("invalid node index %q", arg)
		}
		indices[i] = n
	}
	return indices, nil
}

// cutRows renders each cut as a table row: ordinal, cut, severed mechanisms.
func cutRows(direction models.Direction, nodes []int, gen partition.Generator) [][]string {
	var rows [][]string
	for cut := range compute.ConceptCuts(direction, nodes, gen) {
		rows = append(rows, []string{
			strconv.Itoa(len(rows)),
			cut.Partition().String(),
			strconv.Itoa(len(cut.AllCutMechanisms())),
		})
	}
	return rows
}

func runCuts(cmd *cobra.Command, args []string) error {
	nodes, err := parseIndices(args)
	if err != nil {
		return err
	}
	dirFlag, _ := cmd.Flags().GetString("direction")
	direction, err := models.ParseDirection(dirFlag)
	if err != nil {
		return err
	}

	partitionType, _ := cmd.Flags().GetString("partition-type")
	if partitionType == "" {
		cfg, err := LoadConfig(cmd)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		partitionType = cfg.Compute.PartitionType
	}
	gen, err := partition.Get(partitionType)
	if err != nil {
		return err
	}

	rows := cutRows(direction, nodes, gen)
	out := cmd.OutOrStdout()
	data := append(pterm.TableData{{"#", "Partition", "Cut mechanisms"}}, rows...)
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(out, table)
	fmt.Fprintf(out, "%d %s cuts (%s)\n", len(rows), direction, partitionType)
	return nil
}
