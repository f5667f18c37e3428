package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(append(args, "--log-level", "error"))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestLimitCommand(t *testing.T) {
	out, err := execute(t, "limit", "sin(x)/x", "0")
	require.NoError(t, err)
	assert.Equal(t, "1\n", out)

	out, err = execute(t, "limit", "1/x", "0", "--direction", "right")
	require.NoError(t, err)
	assert.Equal(t, "does not exist\n", out)
}

func TestEvalCommand(t *testing.T) {
	out, err := execute(t, "eval", "2^10 - 24")
	require.NoError(t, err)
	assert.Equal(t, "1000\n", out)

	out, err = execute(t, "eval", "x^2 + 1", "--x", "3")
	require.NoError(t, err)
	assert.Equal(t, "10\n", out)

	_, err = execute(t, "eval", "sqrt(-1)")
	assert.Error(t, err)
}

func TestDefiniteCommand(t *testing.T) {
	out, err := execute(t, "definite", "x*sin(x)", "0", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "(approximate, simpson)")
}

func TestPolyAndMatrixCommands(t *testing.T) {
	out, err := execute(t, "poly", "evaluate", "--a", "1,2,3", "--x", "2")
	require.NoError(t, err)
	assert.Equal(t, "17\n", out)

	out, err = execute(t, "matrix", "determinant", "--a", "2,0;0,3")
	require.NoError(t, err)
	det, err := strconv.ParseFloat(strings.TrimSpace(out), 64)
	require.NoError(t, err)
	assert.InDelta(t, 6, det, 1e-12)
}

func TestBatchCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.yaml")
	doc := "- operation: gcd\n  a: 12\n  b: 18\n- operation: complex.magnitude\n  realA: 3\n  imagA: 4\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	out, err := execute(t, "batch", path, "--workers", "2")
	require.NoError(t, err)
	lines := strings.Split(out, "\n")
	assert.Contains(t, lines[0], "gcd")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(lines[0]), " 6"))
	assert.True(t, strings.HasSuffix(strings.TrimSpace(lines[1]), " 5"))
	assert.Contains(t, out, "Failed:    0")
}

func TestParseMatrix(t *testing.T) {
	m, err := parseMatrix("1, 2; 3, 4;")
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1, 2}, {3, 4}}, m)

	_, err = parseMatrix("1,x")
	assert.Error(t, err)
}
