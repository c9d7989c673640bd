package main

import (
	"bytes"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"pkg.jsn.cam/lorem/internal/server"
	"pkg.jsn.cam/lorem/internal/store"
	"pkg.jsn.cam/lorem/pkg/lorem"
	"pkg.jsn.cam/lorem/pkg/protocol"
	"pkg.jsn.cam/lorem/pkg/storage"
)

// These tests change lorem.Global() through the config and must not run in parallel.

func nopLogger(zapcore.Level) (*zap.Logger, error) { return zap.NewNop(), nil }

type cli struct {
	t      *testing.T
	config string
	db     string
}

func newCLI(t *testing.T, configYAML string) *cli {
	t.Helper()
	t.Cleanup(lorem.Global().Reset)

	dir := t.TempDir()
	c := &cli{t: t, config: filepath.Join(dir, "lorem.yaml"), db: filepath.Join(dir, "vocab.db")}
	if configYAML != "" {
		require.NoError(t, os.WriteFile(c.config, []byte(configYAML), 0644))
	}
	return c
}

func (c *cli) runStdin(stdin string, args ...string) (string, error) {
	c.t.Helper()
	cmd := (&app{newLogger: nopLogger}).rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", c.config, "--db", c.db}, args...))
	err := cmd.Execute()
	return strings.TrimSuffix(out.String(), "\n"), err
}

func (c *cli) run(args ...string) (string, error) {
	c.t.Helper()
	return c.runStdin("", args...)
}

func (c *cli) mustRun(args ...string) string {
	c.t.Helper()
	out, err := c.run(args...)
	require.NoError(c.t, err, "lorem %v: %s", args, out)
	return out
}

const alphaConfig = `
generation:
  pool: [alpha]
`

func TestWordCmd(t *testing.T) {
	c := newCLI(t, "")

	out := c.mustRun("word", "-n", "5", "--seed", "7")
	assert.Equal(t, out, c.mustRun("word", "-n", "5", "--seed", "7"), "same seed, same words")

	words := strings.Fields(out)
	require.Len(t, words, 5)
	for _, w := range words {
		assert.Contains(t, lorem.DefaultPool, w)
	}
}

func TestGenerateCmds_ConfiguredPool(t *testing.T) {
	c := newCLI(t, alphaConfig)

	assert.Equal(t, "alpha alpha", c.mustRun("word", "-n", "2"))
	assert.Equal(t, "ALPHA-ALPHA", c.mustRun("word", "-n", "2", "-t", "upper", "--sep", "-"))
	assert.Equal(t, "alpha\nalpha", c.mustRun("words", "-n", "2", "--list"))
	assert.Equal(t, "alpha\talpha", c.mustRun("word", "-n", "2", "--sep", `\t`))

	assert.Equal(t, "Alpha alpha. Alpha alpha.", c.mustRun("sentence", "-n", "2", "--words", "2", "--comma", "0"))
	assert.Equal(t, "Alpha.|Alpha.", c.mustRun("paragraph", "-n", "2", "--sentences", "1", "--words", "1", "--comma", "0", "--sep", "|"))
	assert.Equal(t, "Alpha. Alpha.", c.mustRun("paragraph", "--sentences", "2", "--words", "1", "--comma", "0"))

	out := c.mustRun("word", "--count-min", "2", "--count-max", "4", "--list")
	n := len(strings.Split(out, "\n"))
	assert.True(t, n >= 2 && n <= 4, "got %d lines", n)
}

func TestGenerateCmds_Errors(t *testing.T) {
	c := newCLI(t, "")

	tests := []struct {
		args []string
		want error
	}{
		{[]string{"word", "-n", "0"}, lorem.ErrInvalidRange},
		{[]string{"word", "-n", "-2"}, lorem.ErrInvalidRange},
		{[]string{"sentence", "--words", "5,1"}, lorem.ErrInvalidRange},
		{[]string{"sentence", "--comma", "x"}, lorem.ErrInvalidRange},
		{[]string{"word", "-t", "zfill"}, lorem.ErrUnknownOperation},
		{[]string{"word", "-t", "repeat:many"}, lorem.ErrInvalidArgument},
		{[]string{"word", "--vocab", "missing"}, store.ErrNotFound},
	}
	for _, tt := range tests {
		_, err := c.run(tt.args...)
		assert.ErrorIs(t, err, tt.want, "%v", tt.args)
	}

	_, err := c.run("sentence", "--transform", "upper")
	assert.Error(t, err, "sentences have no --transform flag")
}

func TestInvalidConfig(t *testing.T) {
	c := newCLI(t, "generation:\n  word_range: {min: 3, max: 1}\n")
	_, err := c.run("word")
	assert.ErrorContains(t, err, "invalid config")
}

func TestVocabCmds(t *testing.T) {
	c := newCLI(t, "")

	out := c.mustRun("vocab", "add", "greek", "--words", "alpha,beta")
	assert.Contains(t, out, "Stored vocabulary greek (2 words")

	file := filepath.Join(t.TempDir(), "latin.txt")
	require.NoError(t, os.WriteFile(file, []byte("# latin\nlorem ipsum\ndolor\n"), 0644))
	c.mustRun("vocab", "add", "latin", file)

	out, err := c.runStdin("uno dos\ntres", "vocab", "add", "spanish", "-")
	require.NoError(t, err, out)
	assert.Contains(t, out, "3 words")

	out = c.mustRun("vocab", "list")
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "NAME"))
	assert.True(t, strings.HasPrefix(lines[1], "greek"))
	assert.True(t, strings.HasPrefix(lines[2], "latin"))
	assert.True(t, strings.HasPrefix(lines[3], "spanish"))

	assert.Contains(t, c.mustRun("vocab", "show", "latin"), "lorem ipsum dolor")

	for _, w := range strings.Fields(c.mustRun("word", "-n", "6", "--vocab", "greek")) {
		assert.Contains(t, []string{"alpha", "beta"}, w)
	}

	c.mustRun("vocab", "rm", "greek")
	_, err = c.run("vocab", "show", "greek")
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = c.run("vocab", "add", "Bad Name", "--words", "x")
	assert.ErrorIs(t, err, store.ErrInvalidName)
	_, err = c.run("vocab", "add", "empty")
	assert.ErrorIs(t, err, lorem.ErrInvalidPool)
}

func TestVocabList_Empty(t *testing.T) {
	c := newCLI(t, "")
	assert.Equal(t, "No vocabularies stored.", c.mustRun("vocab", "list"))
}

func TestVersionCmd(t *testing.T) {
	c := newCLI(t, "")

	assert.Equal(t, protocol.Version, c.mustRun("version"))

	next, err := protocol.BumpVersion(protocol.Version, "minor")
	require.NoError(t, err)
	assert.Equal(t, next, c.mustRun("version", "--bump", "minor"))

	_, err = c.run("version", "--bump", "sideways")
	assert.Error(t, err)

	ops := strings.Split(c.mustRun("version", "--ops"), "\n")
	assert.Len(t, ops, len(lorem.Operations()))
	assert.Contains(t, ops, "capitalize")
}

func TestRemote(t *testing.T) {
	c := newCLI(t, "")

	st, err := store.New(storage.NewMemoryBackend(), nil)
	require.NoError(t, err)
	defer st.Close()
	d := lorem.NewDefaults()
	require.NoError(t, d.SetPool([]string{"omega"}))

	ts := httptest.NewServer(server.New(server.Config{MaxCount: 20}, st, d, nil).Handler())
	defer ts.Close()

	assert.Equal(t, "omega omega", c.mustRun("--remote", ts.URL, "word", "-n", "2"))
	assert.Equal(t, "Omega.\nOmega.", c.mustRun("--remote", ts.URL, "sentence", "-n", "2", "--words", "1", "--comma", "0", "--list"))

	_, err = c.run("--remote", ts.URL, "word", "-n", "21")
	assert.ErrorContains(t, err, "exceeds limit")

	c.mustRun("--remote", ts.URL, "vocab", "add", "greek", "--words", "alpha")
	assert.Contains(t, c.mustRun("--remote", ts.URL, "vocab", "list"), "greek")
	assert.Equal(t, "alpha", c.mustRun("--remote", ts.URL, "word", "--vocab", "greek"))
	c.mustRun("--remote", ts.URL, "vocab", "rm", "greek")

	assert.Contains(t, c.mustRun("--remote", ts.URL, "version"), "compatible")

	// Nothing was written to the local store.
	assert.Equal(t, "No vocabularies stored.", c.mustRun("vocab", "list"))
}
