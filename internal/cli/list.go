package cli

import (
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	var filters filterFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List listings",
		Long:  "List the listings on the server that match every given filter.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, &filters)
		},
	}

	filters.register(cmd)

	return cmd
}

func runList(cmd *cobra.Command, filters *filterFlags) error {
	criteria, err := filters.criteria()
	if err != nil {
		return err
	}

	resp, err := newAPIClient().ListListings(cmd.Context(), criteria)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), resp)
	}

	return printListingTable(cmd.OutOrStdout(), resp.Listings)
}
