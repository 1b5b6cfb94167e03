package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/evcraddock/estate/internal/db"
	"github.com/evcraddock/estate/internal/listing"
)

func newImportCmd() *cobra.Command {
	var dbPath, file string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Load a catalog into SQLite",
		Long:  "Validate a JSON listing catalog and replace the contents of a SQLite catalog with it. Imports the embedded catalog when no file is given.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd.OutOrStdout(), dbPath, file)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite catalog path (default: ~/.config/estate/catalog.db)")
	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON catalog to import (default: the embedded catalog)")

	return cmd
}

// importResult is the JSON output of the import command.
type importResult struct {
	Imported int    `json:"imported"`
	DB       string `json:"db"`
}

func runImport(out io.Writer, dbPath, file string) error {
	if dbPath == "" {
		var err error
		if dbPath, err = db.DefaultPath(); err != nil {
			return err
		}
	}

	var src io.Reader = bytes.NewReader(listing.EmbeddedJSON())
	if file != "" {
		f, err := os.Open(file)
		if err != nil {
			return fmt.Errorf("opening catalog file: %w", err)
		}
		defer func() { _ = f.Close() }()
		src = f
	}

	listings, err := listing.Decode(src)
	if err != nil {
		return err
	}
	// Reject duplicate ids before touching the database.
	if _, err := listing.NewCatalog(listings); err != nil {
		return err
	}

	database, err := db.Open(dbPath)
	if err != nil {
		return err
	}
	defer closeDB(database)

	repo := listing.NewRepository(database)
	if err := repo.ReplaceAll(listings); err != nil {
		return err
	}

	n, err := repo.Count()
	if err != nil {
		return err
	}
	if n != len(listings) {
		return fmt.Errorf("catalog %s holds %d listings after import, want %d", dbPath, n, len(listings))
	}

	if isJSON() {
		return printJSON(out, importResult{Imported: n, DB: dbPath})
	}

	fmt.Fprintf(out, "Imported %d listings into %s\n", n, dbPath)
	return nil
}
