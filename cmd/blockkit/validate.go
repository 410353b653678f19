package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/reoring/blockkit"
	"github.com/reoring/blockkit/codec"
	"github.com/reoring/blockkit/internal/report"
)

// decoder decodes one document of the kind selected with --as.
type decoder func([]byte, codec.DecodeOpt) (blockkit.Node, error)

var decoders = map[string]decoder{
	"surface": func(b []byte, o codec.DecodeOpt) (blockkit.Node, error) { return node(codec.DecodeSurface(b, o)) },
	"block":   func(b []byte, o codec.DecodeOpt) (blockkit.Node, error) { return node(codec.DecodeBlock(b, o)) },
	"element": func(b []byte, o codec.DecodeOpt) (blockkit.Node, error) { return node(codec.DecodeElement(b, o)) },
}

// node drops typed nil interfaces so callers can test the result against nil.
func node[G blockkit.Node](g G, err error) (blockkit.Node, error) {
	if any(g) == nil {
		return nil, err
	}
	return g, err
}

func newValidateCmd(a *app) *cobra.Command {
	var as string
	cmd := &cobra.Command{
		Use:   "validate [files...]",
		Short: "Validate documents and report every violation",
		Long: `Validate decodes each file and checks it. A file named "-" is read from
standard input. Files ending in .yaml or .yml are read as YAML.

The command exits with status 1 when any file fails to decode or validate.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dec, ok := decoders[as]
			if !ok {
				return &ExitError{Code: 2, Err: fmt.Errorf("--as: unknown document type %q (want surface, block or element)", as)}
			}
			return a.validate(cmd.InOrStdin(), args, dec)
		},
	}
	cmd.Flags().StringVar(&as, "as", "surface", "document type (surface, block, element)")
	cmd.Flags().Bool("strict", false, "report duplicate object keys as violations instead of warnings")
	cmd.Flags().Int64("max-bytes", 1<<20, "maximum size of one document in bytes (0 disables the limit)")
	return cmd
}

func (a *app) validate(stdin io.Reader, files []string, dec decoder) error {
	results := make([]report.Result, 0, len(files))
	for _, f := range files {
		results = append(results, a.check(stdin, f, dec))
	}
	if err := a.writeResults(results); err != nil {
		return err
	}
	if s := report.Summarize(results); s.Failed > 0 {
		a.logger.Debug("validation failed", "files", s.Files, "failed", s.Failed)
		return &ExitError{Code: 1}
	}
	return nil
}

func (a *app) check(stdin io.Reader, name string, dec decoder) report.Result {
	var warnings blockkit.Report
	opt := codec.DecodeOpt{
		MaxBytes:   a.cfg.MaxBytes,
		Validate:   true,
		Strictness: codec.Strictness{OnDuplicateKey: codec.Warn},
		OnWarning: func(v blockkit.Violation) {
			warnings = append(warnings, v)
		},
	}
	if a.cfg.Strict {
		opt.Strictness.OnDuplicateKey = codec.Error
	}

	data, err := a.read(stdin, name, opt)
	if err != nil {
		a.logger.Warn("cannot read document", "file", name, "err", err)
		return report.NewResult(name, "", err, nil)
	}
	// the size limit applied while reading
	opt.MaxBytes = 0
	n, err := dec(data, opt)
	var kind blockkit.Kind
	if n != nil {
		kind = n.Kind()
	}
	a.logger.Debug("checked document", "file", name, "kind", kind, "warnings", len(warnings))
	return report.NewResult(name, kind, err, warnings)
}

func (a *app) read(stdin io.Reader, name string, opt codec.DecodeOpt) ([]byte, error) {
	var r io.Reader = stdin
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	data, err := codec.ReadAll(r, opt)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return codec.FromYAML(data)
	}
	return data, nil
}
