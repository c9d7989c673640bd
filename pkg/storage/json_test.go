package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	Name  string   `json:"name"`
	Words []string `json:"words"`
}

func TestTable(t *testing.T) {
	t.Parallel()

	tbl, err := NewTable[entry](NewMemoryBackend(), "entries")
	require.NoError(t, err)

	_, ok, err := tbl.Get("latin")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, tbl.Put("latin", entry{Name: "latin", Words: []string{"lorem", "ipsum"}}))
	require.NoError(t, tbl.Put("greek", entry{Name: "greek", Words: []string{"alpha"}}))

	got, ok, err := tbl.Get("latin")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"lorem", "ipsum"}, got.Words)

	all, err := tbl.All()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "greek", all[0].Name)
	assert.Equal(t, "latin", all[1].Name)

	n, err := tbl.Len()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.NoError(t, tbl.Delete("greek"))
	n, _ = tbl.Len()
	assert.Equal(t, 1, n)
}

func TestTable_CorruptValue(t *testing.T) {
	t.Parallel()

	b := NewMemoryBackend()
	tbl, err := NewTable[entry](b, "entries")
	require.NoError(t, err)
	require.NoError(t, b.Put("entries", "bad", []byte("{not json")))

	_, _, err = tbl.Get("bad")
	assert.ErrorContains(t, err, "failed to decode entries/bad")

	_, err = tbl.All()
	assert.Error(t, err)
}
