package jsonstorage

import (
	"context"
	"github.com/gissleh/poet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"path/filepath"
	"testing"
)

var testPoems = []poet.Poem{
	{ID: "a", Title: "Old Pond", Author: "Basho", Text: "an old pond\na frog", Stanzas: 1, Forms: []string{"haiku"}},
	{ID: "b", Title: "Sonnet 18", Author: "Shakespeare", Text: "shall i\ncompare thee", Stanzas: 1, Forms: []string{"shakespearean_sonnet"}},
	{ID: "c", Title: "Autumn", Author: "Basho", Text: "autumn\nmoonlight", Stanzas: 1},
}

func poemIDs(poems []poet.Poem) []string {
	res := make([]string, 0, len(poems))
	for _, poem := range poems {
		res = append(res, poem.ID)
	}

	return res
}

func TestStorage(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "poems.json")

	storage, err := Open(path, false)
	require.NoError(t, err)

	for _, poem := range testPoems {
		require.NoError(t, storage.SavePoem(ctx, poem))
	}

	poem, err := storage.FindPoem(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, testPoems[1], *poem)

	_, err = storage.FindPoem(ctx, "x")
	assert.ErrorIs(t, err, poet.ErrPoemNotFound)

	poems, err := storage.ListPoems(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b"}, poemIDs(poems))

	poems, err = storage.ListPoemsByAuthor(ctx, "Basho")
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a"}, poemIDs(poems))

	poems, err = storage.ListPoemsByForm(ctx, "haiku")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, poemIDs(poems))

	t.Run("reopen", func(t *testing.T) {
		reopened, err := Open(path, true)
		require.NoError(t, err)

		poems, err := reopened.ListPoemsByAuthor(ctx, "Shakespeare")
		require.NoError(t, err)
		assert.Equal(t, []string{"b"}, poemIDs(poems))

		assert.ErrorIs(t, reopened.SavePoem(ctx, testPoems[0]), poet.ErrReadOnly)
		assert.ErrorIs(t, reopened.DeletePoem(ctx, testPoems[0]), poet.ErrReadOnly)
	})

	t.Run("update_reindexes", func(t *testing.T) {
		updated := testPoems[0].Copy()
		updated.Author = "Matsuo Basho"
		updated.Forms = nil
		require.NoError(t, storage.SavePoem(ctx, updated))

		poems, err := storage.ListPoemsByForm(ctx, "haiku")
		require.NoError(t, err)
		assert.Empty(t, poems)

		poems, err = storage.ListPoemsByAuthor(ctx, "Basho")
		require.NoError(t, err)
		assert.Equal(t, []string{"c"}, poemIDs(poems))
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, storage.DeletePoem(ctx, testPoems[2]))
		assert.ErrorIs(t, storage.DeletePoem(ctx, testPoems[2]), poet.ErrPoemNotFound)

		reopened, err := Open(path, true)
		require.NoError(t, err)
		poems, err := reopened.ListPoems(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, poemIDs(poems))
	})
}
