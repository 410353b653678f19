package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/blockkit/i18n"
	"github.com/reoring/blockkit/internal/report"
)

const (
	validModal = `{
  "type": "modal",
  "title": {"type": "plain_text", "text": "Signup"},
  "submit": {"type": "plain_text", "text": "Go"},
  "blocks": [
    {"type": "input", "label": {"type": "plain_text", "text": "Name"},
     "element": {"type": "plain_text_input", "action_id": "name"}}
  ]
}`
	mrkdwnHeader = `{"blocks":[{"type":"header","text":{"type":"mrkdwn","text":"*hi*"}}]}`
)

// run executes the CLI in an isolated home and working directory so no user
// config file is picked up.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() { i18n.SetLanguage("en") })
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(home)

	var out, stderr bytes.Buffer
	cmd := newRootCmd(&out, &stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--color=never"}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr), "expected ExitError, got %v", err)
	return exitErr.Code
}

func TestValidate_OK(t *testing.T) {
	p := writeFile(t, "modal.json", validModal)
	out, err := run(t, "", "validate", p)
	require.NoError(t, err)
	assert.Contains(t, out, p+" (modal) ok")
	assert.Contains(t, out, "1 file(s), 0 failed")
}

func TestValidate_ReportsViolations(t *testing.T) {
	p := writeFile(t, "msg.json", mrkdwnHeader)
	out, err := run(t, "", "validate", p)
	assert.Equal(t, 1, exitCode(t, err))
	assert.Contains(t, out, "/blocks/0/text required_variant")
}

func TestValidate_JSONOutput(t *testing.T) {
	good := writeFile(t, "modal.json", validModal)
	bad := writeFile(t, "msg.json", mrkdwnHeader)
	broken := writeFile(t, "broken.json", `{"type":"modal",`)
	out, err := run(t, "", "validate", "--format=json", good, bad, broken)
	assert.Equal(t, 1, exitCode(t, err))

	var got struct {
		Results []report.Result `json:"results"`
		Summary report.Summary  `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, report.Summary{Files: 3, Failed: 2, Violations: 1}, got.Summary)
	assert.Equal(t, "message", got.Results[1].Kind)
	assert.NotEmpty(t, got.Results[2].Error)
}

func TestValidate_YAMLAndStdin(t *testing.T) {
	p := writeFile(t, "msg.yaml", "text: hi\nblocks:\n  - type: divider\n")
	_, err := run(t, "", "validate", p)
	require.NoError(t, err)

	out, err := run(t, `{"type":"button","text":{"type":"plain_text","text":"Go"},"action_id":"go"}`, "validate", "--as=element", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "- (button) ok")

	_, err = run(t, "{}", "validate", "--as=view", "-")
	assert.Equal(t, 2, exitCode(t, err))
}

func TestValidate_DuplicateKeys(t *testing.T) {
	doc := `{"text":"a","text":"b"}`
	out, err := run(t, doc, "validate", "-")
	require.NoError(t, err, "duplicates are warnings by default")
	assert.Contains(t, out, "/text duplicate_key")
	assert.Contains(t, out, "1 warning(s)")

	out, err = run(t, doc, "validate", "--strict", "-")
	assert.Equal(t, 1, exitCode(t, err))
	assert.Contains(t, out, "1 violation(s)")
}

func TestValidate_MaxBytes(t *testing.T) {
	p := writeFile(t, "modal.json", validModal)
	out, err := run(t, "", "validate", "--max-bytes=10", p)
	assert.Equal(t, 1, exitCode(t, err))
	assert.Contains(t, out, "exceeds size limit")
}

func TestValidate_Language(t *testing.T) {
	p := writeFile(t, "msg.json", `{}`)
	out, err := run(t, "", "--lang=ja", "validate", p)
	assert.Equal(t, 1, exitCode(t, err))
	assert.Contains(t, out, "のいずれかが必要です")
}

func TestValidate_ConfigFile(t *testing.T) {
	cfg := writeFile(t, "blockkit.yaml", "format: json\n")
	p := writeFile(t, "modal.json", validModal)
	out, err := run(t, "", "--config", cfg, "validate", p)
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(out)), "config selects JSON output: %s", out)

	_, err = run(t, "", "--config", filepath.Join(t.TempDir(), "none.yaml"), "validate", p)
	assert.Equal(t, 2, exitCode(t, err))
}

func TestSchema(t *testing.T) {
	out, err := run(t, "", "schema", "--root=actions")
	require.NoError(t, err)
	var doc struct {
		Ref  string                     `json:"$ref"`
		Defs map[string]json.RawMessage `json:"$defs"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "#/$defs/actions", doc.Ref)
	assert.Contains(t, doc.Defs, "actions_element")

	for _, args := range [][]string{{"schema"}, {"schema", "--root="}} {
		out, err = run(t, "", args...)
		require.NoError(t, err, "%v", args)
		assert.True(t, strings.HasPrefix(out, "{\n  \""), "indented output for %v", args)
		assert.Contains(t, out, `"surface"`)
	}

	out, err = run(t, "", "schema", "--openapi")
	require.NoError(t, err)
	assert.Contains(t, out, `"openapi": "3.0.3"`)

	_, err = run(t, "", "schema", "--root=carousel")
	assert.Equal(t, 2, exitCode(t, err))
}

func TestFamilies(t *testing.T) {
	out, err := run(t, "", "families")
	require.NoError(t, err)
	assert.Contains(t, out, "context_element: text, image\n")
	assert.Contains(t, out, "surface: message, modal\n")
}
