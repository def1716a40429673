package sqlitestorage

import (
	"context"
	"github.com/gissleh/poet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"path/filepath"
	"testing"
)

func TestStorage(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "poems.db")

	storage, err := Open(ctx, dbPath, false)
	require.NoError(t, err)
	defer storage.Close()

	poems := []poet.Poem{
		{
			ID: "a", Title: "Old Pond", Author: "Basho", Text: "an old pond\na frog", Stanzas: 1,
			Forms:    []string{"haiku"},
			Unknowns: []string{"ribbit"},
			Source:   poet.Source{Title: "Haiku Anthology", URL: "https://example.com/haiku"},
		},
		{
			ID: "b", Title: "Sonnet 18", Author: "Shakespeare", Text: "shall i\ncompare thee", Stanzas: 1,
			Forms: []string{"shakespearean_sonnet", "haiku"},
		},
		{ID: "c", Title: "Autumn", Author: "Basho", Text: "autumn\nmoonlight", Stanzas: 1},
	}
	for _, poem := range poems {
		require.NoError(t, storage.SavePoem(ctx, poem))
	}

	t.Run("find", func(t *testing.T) {
		for _, poem := range poems {
			found, err := storage.FindPoem(ctx, poem.ID)
			require.NoError(t, err)
			assert.Equal(t, poem, *found)
		}

		_, err := storage.FindPoem(ctx, "x")
		assert.ErrorIs(t, err, poet.ErrPoemNotFound)
	})

	t.Run("list", func(t *testing.T) {
		table := []struct {
			name string
			list func() ([]poet.Poem, error)
			ids  []string
		}{
			{"all", func() ([]poet.Poem, error) { return storage.ListPoems(ctx) }, []string{"c", "a", "b"}},
			{"author", func() ([]poet.Poem, error) { return storage.ListPoemsByAuthor(ctx, "Basho") }, []string{"c", "a"}},
			{"form", func() ([]poet.Poem, error) { return storage.ListPoemsByForm(ctx, "haiku") }, []string{"a", "b"}},
			{"no_match", func() ([]poet.Poem, error) { return storage.ListPoemsByForm(ctx, "limerick") }, []string{}},
		}

		for _, row := range table {
			t.Run(row.name, func(t *testing.T) {
				list, err := row.list()
				require.NoError(t, err)

				ids := make([]string, 0, len(list))
				for _, poem := range list {
					ids = append(ids, poem.ID)
				}
				assert.Equal(t, row.ids, ids)
			})
		}
	})

	t.Run("update", func(t *testing.T) {
		updated := poems[1].Copy()
		updated.Forms = []string{"shakespearean_sonnet"}
		require.NoError(t, storage.SavePoem(ctx, updated))

		list, err := storage.ListPoemsByForm(ctx, "haiku")
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "a", list[0].ID)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, storage.DeletePoem(ctx, poems[0]))
		assert.ErrorIs(t, storage.DeletePoem(ctx, poems[0]), poet.ErrPoemNotFound)

		list, err := storage.ListPoemsByForm(ctx, "haiku")
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("read_only", func(t *testing.T) {
		reopened, err := Open(ctx, dbPath, true)
		require.NoError(t, err)
		defer reopened.Close()

		list, err := reopened.ListPoems(ctx)
		require.NoError(t, err)
		assert.Len(t, list, 2)

		assert.ErrorIs(t, reopened.SavePoem(ctx, poems[0]), poet.ErrReadOnly)
		assert.ErrorIs(t, reopened.DeletePoem(ctx, poems[1]), poet.ErrReadOnly)
	})
}
