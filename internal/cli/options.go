package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newOptionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "Show filter values",
		Long:  "Show the property types, statuses and amenities the server accepts as filters.",
		Args:  cobra.NoArgs,
		RunE:  runOptions,
	}
}

func runOptions(cmd *cobra.Command, args []string) error {
	opts, err := newAPIClient().Options(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if isJSON() {
		return printJSON(out, opts)
	}

	types := make([]string, 0, len(opts.PropertyTypes))
	for _, t := range opts.PropertyTypes {
		types = append(types, string(t))
	}
	statuses := make([]string, 0, len(opts.Statuses))
	for _, s := range opts.Statuses {
		statuses = append(statuses, string(s))
	}

	fmt.Fprintf(out, "Types:     %s\n", strings.Join(types, ", "))
	fmt.Fprintf(out, "Statuses:  %s\n", strings.Join(statuses, ", "))
	fmt.Fprintf(out, "Amenities: %s\n", strings.Join(opts.Amenities, ", "))
	return nil
}
