package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runSettled(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errBuf bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errBuf.String(), err
}

func writeEvents(t *testing.T, rows ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "events.csv")
	content := "type,client,tx,amount\n" + strings.Join(rows, "\n") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestProcess(t *testing.T) {
	input := writeEvents(t,
		"deposit,1,1,10.0",
		"withdrawal,1,2,3.0",
		"dispute,1,2",
		"chargeback,1,2",
		"deposit,2,10,5.0",
	)

	stdout, stderr, err := runSettled(t, "process", input)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "client,available,held,total,locked", lines[0])
	assert.Equal(t, "1,4.0000,0.0000,4.0000,true", lines[1])
	assert.Equal(t, "2,5.0000,0.0000,5.0000,false", lines[2])

	assert.Contains(t, stderr, "applied 5, rejected 0, malformed 0")
}

func TestProcess_OutputFile(t *testing.T) {
	input := writeEvents(t, "deposit,1,1,2.5")
	outPath := filepath.Join(t.TempDir(), "report.csv")

	_, _, err := runSettled(t, "process", input, "-o", outPath, "--quiet")
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "1,2.5000,0.0000,2.5000,false")
}

func TestProcess_AuditLogFlag(t *testing.T) {
	input := writeEvents(t,
		"deposit,1,1,1.0",
		"withdrawal,1,2,50.0",
	)
	auditPath := filepath.Join(t.TempDir(), "rejections.csv")

	_, stderr, err := runSettled(t, "process", input, "--audit-log", auditPath)
	require.NoError(t, err)
	assert.Contains(t, stderr, "rejected 1")

	data, err := os.ReadFile(auditPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "insufficient_funds")
}

func TestProcess_ConfigFile(t *testing.T) {
	input := writeEvents(t, "deposit,1,1,2.0")
	cfgPath := filepath.Join(t.TempDir(), "settled.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("precision: 2\non_reject: silent\n"), 0o644))

	stdout, stderr, err := runSettled(t, "process", input, "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "1,2.00,0.00,2.00,false")
	assert.Empty(t, stderr)
}

func TestProcess_UnknownFormat(t *testing.T) {
	input := writeEvents(t, "deposit,1,1,1.0")
	_, _, err := runSettled(t, "process", input, "--format", "exotic")
	require.Error(t, err)
}

func TestProcess_MissingInput(t *testing.T) {
	_, _, err := runSettled(t, "process", filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	good := writeEvents(t, "deposit,1,1,1.0", "dispute,1,1")
	stdout, _, err := runSettled(t, "validate", good)
	require.NoError(t, err)
	assert.Contains(t, stdout, "2 events, 0 malformed rows")

	bad := writeEvents(t, "deposit,1,1,1.0", "transfer,1,2,1.0")
	stdout, stderr, err := runSettled(t, "validate", bad)
	require.Error(t, err)
	assert.Contains(t, stdout, "1 events, 1 malformed rows")
	assert.Contains(t, stderr, "row 3")
}
