package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piwi3910/PipeLoad/internal/model"
)

// containersCmd lists the built-in container presets
var containersCmd = &cobra.Command{
	Use:   "containers",
	Short: "List built-in container presets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if IsJSONOutput() {
			return writeJSON(cmd.OutOrStdout(), model.ContainerPresets)
		}
		return formatContainersHuman(cmd.OutOrStdout(), model.ContainerPresets)
	},
}

func formatContainersHuman(w io.Writer, presets []model.ContainerPreset) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tWIDTH\tHEIGHT\tLENGTH\tPAYLOAD")
	for _, p := range presets {
		fmt.Fprintf(tw, "%s\t%.0f cm\t%.0f cm\t%.0f cm\t%.0f kg\n", p.Name, p.Width, p.Height, p.Length, p.WeightCapacity)
	}
	return tw.Flush()
}
