// Package report renders validation results for the blockkit CLI as styled
// text or as JSON.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/reoring/blockkit"
	"github.com/reoring/blockkit/internal/wire"
)

// Entry is the output form of one violation.
type Entry struct {
	Path    string         `json:"path"`
	Kind    string         `json:"kind"`
	Message string         `json:"message,omitempty"`
	Rule    string         `json:"rule,omitempty"`
	Params  map[string]any `json:"params,omitempty"`
}

// Result is the outcome of checking one input document.
type Result struct {
	File       string  `json:"file"`
	Kind       string  `json:"kind,omitempty"`
	Error      string  `json:"error,omitempty"`
	Violations []Entry `json:"violations"`
	Warnings   []Entry `json:"warnings,omitempty"`
}

// NewResult classifies err: a Report becomes violations, anything else a
// decode error.
func NewResult(file string, kind blockkit.Kind, err error, warnings blockkit.Report) Result {
	res := Result{File: file, Kind: string(kind), Violations: []Entry{}, Warnings: entries(warnings)}
	if err == nil {
		return res
	}
	if r, ok := blockkit.AsReport(err); ok {
		res.Violations = entries(r)
		return res
	}
	res.Error = err.Error()
	return res
}

// Failed reports whether the document did not decode or did not validate.
func (r Result) Failed() bool { return r.Error != "" || len(r.Violations) > 0 }

func entries(r blockkit.Report) []Entry {
	if len(r) == 0 {
		return nil
	}
	out := make([]Entry, len(r))
	for i, v := range r {
		out[i] = Entry{Path: v.Path.Pointer(), Kind: v.Kind, Message: v.Message, Rule: v.Rule, Params: v.Params}
	}
	return out
}

// Summary counts results.
type Summary struct {
	Files      int `json:"files"`
	Failed     int `json:"failed"`
	Violations int `json:"violations"`
	Warnings   int `json:"warnings"`
}

// Summarize totals results.
func Summarize(results []Result) Summary {
	s := Summary{Files: len(results)}
	for _, r := range results {
		if r.Failed() {
			s.Failed++
		}
		s.Violations += len(r.Violations)
		s.Warnings += len(r.Warnings)
	}
	return s
}

// WriteJSON writes results and their summary as one indented JSON object.
func WriteJSON(w io.Writer, results []Result) error {
	out := struct {
		Results []Result `json:"results"`
		Summary Summary  `json:"summary"`
	}{Results: results, Summary: Summarize(results)}
	if out.Results == nil {
		out.Results = []Result{}
	}
	b, err := wire.MarshalIndent(out)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", b)
	return err
}

// WriteText writes one block per file followed by a summary line.
func WriteText(w io.Writer, st Styles, results []Result) error {
	b := &strings.Builder{}
	for _, r := range results {
		head := r.File
		if r.Kind != "" {
			head += " " + st.Muted.Render("("+r.Kind+")")
		}
		switch {
		case r.Error != "":
			fmt.Fprintf(b, "%s\n  %s %s\n", st.File.Render(head), st.Kind.Render("error"), r.Error)
		case len(r.Violations) == 0:
			fmt.Fprintf(b, "%s %s\n", st.File.Render(head), st.OK.Render("ok"))
		default:
			fmt.Fprintf(b, "%s\n", st.File.Render(head))
			for _, e := range r.Violations {
				writeEntry(b, st, st.Kind, e)
			}
		}
		for _, e := range r.Warnings {
			writeEntry(b, st, st.Warning, e)
		}
	}
	s := Summarize(results)
	fmt.Fprintf(b, "%s\n", st.Muted.Render(fmt.Sprintf("%d file(s), %d failed, %d violation(s), %d warning(s)",
		s.Files, s.Failed, s.Violations, s.Warnings)))
	_, err := io.WriteString(w, b.String())
	return err
}

func writeEntry(b *strings.Builder, st Styles, kind lipgloss.Style, e Entry) {
	fmt.Fprintf(b, "  %s %s", st.Path.Render(e.Path), kind.Render(e.Kind))
	if e.Message != "" {
		fmt.Fprintf(b, ": %s", e.Message)
	}
	if e.Rule != "" {
		fmt.Fprintf(b, " %s", st.Muted.Render("["+e.Rule+"]"))
	}
	b.WriteByte('\n')
}
