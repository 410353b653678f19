package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reoring/blockkit/internal/openapi"
	"github.com/reoring/blockkit/internal/wire"
	"github.com/reoring/blockkit/schema"
)

func newSchemaCmd(a *app) *cobra.Command {
	var (
		root      string
		asOpenAPI bool
	)
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema (or OpenAPI components) of every definition",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				out []byte
				err error
			)
			if asOpenAPI {
				doc, berr := openapi.Build(cmd.Context(), openapi.Options{Version: cmd.Root().Version})
				if berr != nil {
					return berr
				}
				out, err = openapi.Marshal(doc)
			} else {
				if root != "" && !defined(root) {
					return &ExitError{Code: 2, Err: fmt.Errorf("--root: no definition named %q", root)}
				}
				out, err = wire.MarshalIndent(schema.Document(root))
			}
			if err != nil {
				return err
			}
			a.logger.Debug("exported schema", "bytes", len(out), "openapi", asOpenAPI)
			_, err = fmt.Fprintf(a.stdout, "%s\n", out)
			return err
		},
	}
	cmd.Flags().StringVar(&root, "root", "surface", "definition the JSON Schema document validates (empty for none)")
	cmd.Flags().BoolVar(&asOpenAPI, "openapi", false, "emit an OpenAPI 3 document with one component per definition")
	return cmd
}

func defined(name string) bool {
	if _, ok := schema.Lookup(name); ok {
		return true
	}
	for _, u := range schema.Unions() {
		if u.Name == name {
			return true
		}
	}
	return false
}
