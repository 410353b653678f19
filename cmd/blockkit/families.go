package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/reoring/blockkit/internal/config"
	"github.com/reoring/blockkit/internal/report"
	"github.com/reoring/blockkit/internal/wire"
	"github.com/reoring/blockkit/schema"
)

func newFamiliesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "families",
		Short: "List each family and the definitions it accepts",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			unions := schema.Unions()
			if a.cfg.Format == config.FormatJSON {
				type family struct {
					Name    string   `json:"name"`
					Members []string `json:"members"`
				}
				out := make([]family, len(unions))
				for i, u := range unions {
					out[i] = family{Name: u.Name, Members: u.Members}
				}
				b, err := wire.MarshalIndent(out)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(a.stdout, "%s\n", b)
				return err
			}
			st := report.NewStyles(a.stdout, a.cfg.Color)
			b := &strings.Builder{}
			for _, u := range unions {
				fmt.Fprintf(b, "%s: %s\n", st.File.Render(u.Name), strings.Join(u.Members, ", "))
			}
			_, err := fmt.Fprint(a.stdout, b.String())
			return err
		},
	}
}
