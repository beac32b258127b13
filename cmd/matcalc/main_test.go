package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/matcalc/internal/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestAddFromStdin(t *testing.T) {
	out, err := execute(t, "2 2\n1 1\n1 1\n2 2\n2 2\n2 2\n", "add", "--no-history")
	require.NoError(t, err)
	assert.Equal(t, "3.0 3.0\n3.0 3.0\n", out)
}

func TestMultiplyPresets(t *testing.T) {
	out, err := execute(t, "", "multiply", "--preset", "wide,tall", "--no-history")
	require.NoError(t, err)
	assert.Equal(t, "58.0 64.0\n139.0 154.0\n", out)
}

func TestMultiplyShapeMismatch(t *testing.T) {
	_, err := execute(t, "", "multiply", "--preset", "wide,wide", "--no-history")
	assert.ErrorIs(t, err, matrix.ErrShape)
}

func TestScale(t *testing.T) {
	out, err := execute(t, "", "scale", "2", "--preset", "identity2", "--no-history")
	require.NoError(t, err)
	assert.Equal(t, "2.0 0.0\n0.0 2.0\n", out)

	_, err = execute(t, "", "scale", "x", "--preset", "identity2", "--no-history")
	assert.ErrorIs(t, err, matrix.ErrParse)
}

func TestTransposeByName(t *testing.T) {
	out, err := execute(t, "", "transpose", "side", "--preset", "small", "--no-history")
	require.NoError(t, err)
	assert.Equal(t, "4.0 2.0\n3.0 1.0\n", out)

	_, err = execute(t, "", "transpose", "diagonal", "--preset", "small", "--no-history")
	assert.ErrorIs(t, err, matrix.ErrInvalidChoice)
}

func TestDeterminantWithCheck(t *testing.T) {
	out, err := execute(t, "", "det", "--check", "--preset", "invertible3", "--no-history")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "49.0\nlu: "), out)
}

func TestInverseSingular(t *testing.T) {
	_, err := execute(t, "", "inverse", "--preset", "singular", "--no-history")
	assert.ErrorIs(t, err, matrix.ErrSingular)
}

func TestPresetCountMismatch(t *testing.T) {
	_, err := execute(t, "", "add", "--preset", "small", "--no-history")
	assert.Error(t, err)
}

func TestHistoryRoundTrip(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, "", "add", "--preset", "small,small", "--data", dir)
	require.NoError(t, err)
	_, err = execute(t, "", "det", "--preset", "small", "--data", dir)
	require.NoError(t, err)

	out, err := execute(t, "", "history", "list", "--data", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "add")
	assert.Contains(t, out, "determinant")
	assert.Contains(t, out, "-2.0")

	entries, err := historyStore().List()
	require.NoError(t, err)
	require.Len(t, entries, 2)

	var addID string
	for _, e := range entries {
		if e.Operation == "add" {
			addID = e.ID
		}
	}
	require.NotEmpty(t, addID)

	out, err = execute(t, "", "history", "show", addID, "--data", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "The result is:\n2.0 4.0\n6.0 8.0")

	out, err = execute(t, "", "history", "export", addID, "--format", "csv", "--data", dir)
	require.NoError(t, err)
	assert.Equal(t, "2.0,4.0\n6.0,8.0\n", out)

	out, err = execute(t, "", "history", "export", addID, "--format", "svg", "--data", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "<svg")
}

func TestSessionReadsMenu(t *testing.T) {
	out, err := execute(t, "4\n1\n2 2\n1 2\n3 4\n0\n", "session", "--no-history")
	require.NoError(t, err)
	assert.Contains(t, out, "The result is:\n1.0 3.0\n2.0 4.0\n")
}

func TestPresetsList(t *testing.T) {
	out, err := execute(t, "", "presets", "--no-history")
	require.NoError(t, err)
	assert.Contains(t, out, "invertible3")
	assert.Contains(t, out, "2x3")
}

func TestRunScenario(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chain.yaml")
	script := `name: chain
steps:
  - op: multiply
    inputs: [wide, tall]
    save_as: p
  - op: det
    inputs: [p]
`
	require.NoError(t, os.WriteFile(path, []byte(script), 0644))

	out, err := execute(t, "", "run", path, "--data", filepath.Join(dir, "history"))
	require.NoError(t, err)
	assert.Equal(t, "[1] multiply\n58.0 64.0\n139.0 154.0\n[2] determinant\n36.0\n", out)

	entries, err := historyStore().List()
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}
