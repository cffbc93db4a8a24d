package quotes

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltin(t *testing.T) {
	src := Builtin()
	require.Equal(t, 10, src.Len())

	q, err := src.PickRandom()
	require.NoError(t, err)
	assert.NotEmpty(t, q.Text)
	assert.Contains(t, q.Reference, "Quran")
}

func TestPickRandomEmpty(t *testing.T) {
	_, err := New(nil).PickRandom()
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = New([]Quote{{Text: "   ", Reference: "blank"}}).PickRandom()
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestPickRandomCoversAll(t *testing.T) {
	src := New([]Quote{{Text: "a"}, {Text: "b"}, {Text: "c"}})

	seen := map[string]bool{}
	for i := 0; i < 500 && len(seen) < 3; i++ {
		q, err := src.PickRandom()
		require.NoError(t, err)
		seen[q.Text] = true
	}
	assert.Len(t, seen, 3)
}

func TestLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/quotes.json",
		[]byte(`[{"text":" Be patient. ","reference":"Quran 103:3"},{"text":""}]`), 0o644))

	src, err := Load(fs, "/quotes.json")
	require.NoError(t, err)
	require.Equal(t, 1, src.Len())

	q, err := src.PickRandom()
	require.NoError(t, err)
	assert.Equal(t, "Be patient. (Quran 103:3)", q.String())
}

func TestLoadFallsBackToBuiltin(t *testing.T) {
	fs := afero.NewMemMapFs()

	src, err := Load(fs, "")
	require.NoError(t, err)
	assert.Equal(t, Builtin().Len(), src.Len())

	src, err = Load(fs, "/missing.json")
	require.NoError(t, err)
	assert.Equal(t, Builtin().Len(), src.Len())
}

func TestLoadMalformed(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/quotes.json", []byte(`{"text":"not a list"}`), 0o644))

	_, err := Load(fs, "/quotes.json")
	assert.Error(t, err)
}
