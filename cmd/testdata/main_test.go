package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pkg.jsn.cam/lorem/pkg/lorem"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
}

func TestRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	out := filepath.Join(dir, "nested", "corpus.txt")

	stdout, err := execute(t, "--kind", "words", "--lines", "3000", "--seed", "9", "--output", out, "-q")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Wrote 3,000 lines")
	assert.Len(t, readLines(t, out), 3000)

	again := filepath.Join(dir, "again.txt")
	_, err = execute(t, "--kind", "words", "--lines", "3000", "--seed", "9", "--output", again, "-q")
	require.NoError(t, err)
	assert.Equal(t, readLines(t, out), readLines(t, again))
}

func TestRun_PoolFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	pool := filepath.Join(dir, "pool.txt")
	require.NoError(t, os.WriteFile(pool, []byte("# one word\nquux\n"), 0644))
	out := filepath.Join(dir, "out.txt")

	_, err := execute(t, "-k", "sentences", "-n", "5", "--pool", pool, "-o", out, "-q")
	require.NoError(t, err)
	for _, line := range readLines(t, out) {
		assert.True(t, strings.HasPrefix(line, "Quux"), "line %q", line)
	}
}

func TestRun_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, err := execute(t, "--kind", "limericks", "-o", filepath.Join(dir, "x.txt"))
	assert.ErrorContains(t, err, "unknown generator")

	_, err = execute(t, "--pool", filepath.Join(dir, "missing.txt"), "-o", filepath.Join(dir, "y.txt"))
	assert.Error(t, err)

	empty := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(empty, []byte("# nothing\n"), 0644))
	_, err = execute(t, "--pool", empty, "-o", filepath.Join(dir, "z.txt"))
	assert.ErrorIs(t, err, lorem.ErrInvalidPool)
}

func TestLongHelpListsGenerators(t *testing.T) {
	t.Parallel()

	long := newRootCmd().Long
	for _, name := range []string{"words", "sentences", "paragraphs"} {
		assert.Contains(t, long, name)
	}
}
