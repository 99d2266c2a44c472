package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"web3stack-api/internal/stack"
)

func newCheckCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report technology ids the rules reference but the catalog lacks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := root.loadCatalog()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, w := range catalog.Warnings() {
				fmt.Fprintf(out, "warning: %s\n", w)
			}
			missing := stack.NewResolver(catalog).CheckReferences()
			for _, id := range missing {
				fmt.Fprintf(out, "missing: %s\n", id)
			}
			if len(missing) > 0 {
				return fmt.Errorf("catalog is missing %d referenced technologies", len(missing))
			}
			fmt.Fprintf(out, "ok: %d technologies, %d resources\n", len(catalog.Technologies()), len(catalog.Resources()))
			return nil
		},
	}
}
