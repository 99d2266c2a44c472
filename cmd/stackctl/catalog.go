package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"web3stack-api/internal/stack"
)

func newCatalogCmd(root *rootOptions) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List catalog technologies and resources",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := root.loadCatalog()
			if err != nil {
				return err
			}
			if output != "table" {
				return writeOutput(cmd.OutOrStdout(), output, map[string]any{
					"technologies": catalog.Technologies(),
					"resources":    catalog.Resources(),
				})
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tDIFFICULTY")
			for _, t := range catalog.Technologies() {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", t.ID, t.Name, stack.CategoryName(t.Category), t.Difficulty)
			}
			fmt.Fprintln(tw)
			fmt.Fprintln(tw, "RESOURCE\tTYPE\tTECHNOLOGIES\t")
			for _, r := range catalog.Resources() {
				fmt.Fprintf(tw, "%s\t%s\t%s\t\n", r.ID, r.Type, strings.Join(r.Technologies, ","))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "table", "output format: table, json or yaml")
	return cmd
}
