package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evcraddock/estate/internal/geo"
)

func newMarkersCmd() *cobra.Command {
	var (
		filters       filterFlags
		width, height float64
		selected      string
	)

	cmd := &cobra.Command{
		Use:   "markers",
		Short: "Show map markers",
		Long:  "Project the matching listings onto a map viewport and print their pixel positions.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMarkers(cmd, &filters, geo.Viewport{Width: width, Height: height}, selected)
		},
	}

	filters.register(cmd)
	cmd.Flags().Float64Var(&width, "width", 0, "viewport width in pixels (default: server setting)")
	cmd.Flags().Float64Var(&height, "height", 0, "viewport height in pixels (default: server setting)")
	cmd.Flags().StringVar(&selected, "selected", "", "listing ID to mark as selected")

	return cmd
}

func runMarkers(cmd *cobra.Command, filters *filterFlags, vp geo.Viewport, selected string) error {
	if vp.Width < 0 || vp.Height < 0 {
		return fmt.Errorf("viewport size must not be negative")
	}

	criteria, err := filters.criteria()
	if err != nil {
		return err
	}

	resp, err := newAPIClient().Markers(cmd.Context(), criteria, vp, selected)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), resp)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Viewport %gx%g\n", resp.Viewport.Width, resp.Viewport.Height)
	return printMarkerTable(out, resp.Markers)
}
