package main

import (
	"fmt"
	"io"
	"os"

	"github.com/janekbaraniewski/daytrend/internal/store"
	"github.com/spf13/cobra"
)

func newImportCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.yaml|->",
		Short: "Import daily ratings from a YAML file",
		Long: `Import a YAML list of days. Each entry replaces the stored day:

  - date: 2026-10-01
    nutrition: 7
    energy: 5
  - date: 2026-10-02
    energy: ~      # null means not recorded`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("opening %s: %w", args[0], err)
				}
				defer f.Close()
				r = f
			}

			samples, err := store.DecodeYAML(r, a.now().Location())
			if err != nil {
				return err
			}

			st, err := a.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			n, err := st.Import(cmd.Context(), samples)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d days\n", n)
			return nil
		},
	}
}
