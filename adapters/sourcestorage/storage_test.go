package sourcestorage

import (
	"context"
	"github.com/gissleh/poet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
)

func TestFileName(t *testing.T) {
	table := []struct {
		author string
		file   string
	}{
		{"Basho", "basho.yaml"},
		{"Matsuo Bashō", "matsuo-bashō.yaml"},
		{"  William  Shakespeare ", "william-shakespeare.yaml"},
		{"e. e. cummings", "e-e-cummings.yaml"},
		{"...", "unknown.yaml"},
	}

	for _, row := range table {
		t.Run(row.author, func(t *testing.T) {
			assert.Equal(t, row.file, FileName(row.author))
		})
	}
}

func TestStorage(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "poems")
	dict := poet.NewDictionary()

	storage, err := Open(ctx, dir, dict, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, storage.PoemCount())

	inputs := []poet.PoemInput{
		{ID: "a", Title: "Old Pond", Author: "Basho", Text: "an old pond\na frog jumps in"},
		{ID: "b", Title: "Autumn", Author: "Basho", Text: "autumn moonlight\na worm digs silently"},
		{ID: "c", Author: "Anonymous", Text: "Roses\n\nroses are red\nviolets are blue"},
	}
	for _, input := range inputs {
		poem, err := poet.NewPoem(input, dict)
		require.NoError(t, err)
		require.NoError(t, storage.SavePoem(ctx, *poem))
	}

	assert.FileExists(t, filepath.Join(dir, "basho.yaml"))
	assert.FileExists(t, filepath.Join(dir, "anonymous.yaml"))

	reopened, err := Open(ctx, dir, dict, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, reopened.PoemCount())

	poem, err := reopened.FindPoem(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, "Roses", poem.Title)
	assert.Equal(t, "Anonymous", poem.Author)
	assert.Equal(t, 1, poem.Stanzas)

	_, err = reopened.FindPoem(ctx, "d")
	assert.ErrorIs(t, err, poet.ErrPoemNotFound)

	poems, err := reopened.ListPoemsByAuthor(ctx, "Basho")
	require.NoError(t, err)
	require.Len(t, poems, 2)
	assert.Equal(t, "Autumn", poems[0].Title)
	assert.Equal(t, "Old Pond", poems[1].Title)

	t.Run("move_author", func(t *testing.T) {
		moved := poems[0].Copy()
		moved.Author = "Anonymous"
		require.NoError(t, reopened.SavePoem(ctx, moved))

		list, err := reopened.ListPoems(ctx)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, "Anonymous", list[0].Author)
		assert.Equal(t, "Anonymous", list[1].Author)
		assert.Equal(t, "Basho", list[2].Author)
	})

	t.Run("delete_last_removes_file", func(t *testing.T) {
		poem, err := reopened.FindPoem(ctx, "a")
		require.NoError(t, err)
		require.NoError(t, reopened.DeletePoem(ctx, *poem))

		_, err = os.Stat(filepath.Join(dir, "basho.yaml"))
		assert.True(t, os.IsNotExist(err))
		assert.ErrorIs(t, reopened.DeletePoem(ctx, *poem), poet.ErrPoemNotFound)
	})

	t.Run("not_a_directory", func(t *testing.T) {
		_, err := Open(ctx, filepath.Join(dir, "anonymous.yaml"), dict, nil)
		assert.Error(t, err)
	})
}
