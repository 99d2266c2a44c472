package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"web3stack-api/internal/stack"
)

type rootOptions struct {
	catalogPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "stackctl",
		Short:         "Resolve Web3 stack recommendations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.catalogPath, "catalog", "", "catalog YAML file (defaults to the embedded catalog)")

	cmd.AddCommand(
		newResolveCmd(opts),
		newCatalogCmd(opts),
		newCheckCmd(opts),
	)
	return cmd
}

func (o *rootOptions) loadCatalog() (*stack.Catalog, error) {
	if strings.TrimSpace(o.catalogPath) == "" {
		return stack.DefaultCatalog(), nil
	}
	return stack.LoadCatalogFile(o.catalogPath)
}

func writeOutput(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q (want json or yaml)", format)
	}
}
