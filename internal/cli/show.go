package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evcraddock/estate/internal/client"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show listing details",
		Long:  "Show full details for a listing, followed by similar listings of the same type.",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}
}

func runShow(cmd *cobra.Command, args []string) error {
	id := args[0]
	if id == "" {
		return fmt.Errorf("invalid listing ID: %q", id)
	}

	resp, err := newAPIClient().GetListing(cmd.Context(), id)
	if errors.Is(err, client.ErrNotFound) {
		return fmt.Errorf("listing %s not found", id)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if isJSON() {
		return printJSON(out, resp)
	}

	printListingSummary(out, resp.Listing)
	fmt.Fprintln(out)
	if len(resp.Similar) == 0 {
		fmt.Fprintln(out, "No similar listings.")
		return nil
	}
	fmt.Fprintf(out, "Similar listings (%d):\n", len(resp.Similar))
	return printListingTable(out, resp.Similar)
}
