package cmudict

import (
	"errors"
	"github.com/gissleh/poet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testLexicon = `;;; # CMUdict  --  Major Version: 0.07
;;; a sample of the real thing

a AH0
a(2) EY1
a.m. EY2 EH1 M
'frisco F R IH1 S K OW0
amounted AH0 M AW1 N T IH0 D
amounted(2) AH0 M AW1 N IH0 D
gdp G IY1 D IY1 P IY1 # abbrev
`

func TestLoad(t *testing.T) {
	dict := poet.NewDictionary()

	stats, err := Load(strings.NewReader(testLexicon), dict, Options{})
	require.NoError(t, err)

	assert.Equal(t, Stats{TotalLines: 10, CommentLines: 2, ParsedLines: 7}, stats)
	assert.Equal(t, 7, dict.Len())
	assert.Equal(t, 5, dict.Words())

	entry, ok := dict.LookupVariant("amounted", 2)
	require.True(t, ok)
	assert.Equal(t, 3, entry.Syllables())

	assert.Len(t, dict.Lookup("A.M."), 1)
	assert.Len(t, dict.Lookup("'Frisco"), 1)
}

func TestLoad_Malformed(t *testing.T) {
	text := testLexicon + "broken(0) B R OW1 K AH0 N\nflower f l aw1 er0\n"

	t.Run("strict", func(t *testing.T) {
		dict := poet.NewDictionary()
		_, err := Load(strings.NewReader(text), dict, Options{})

		var lineErr *LineError
		require.True(t, errors.As(err, &lineErr))
		assert.Equal(t, 11, lineErr.Line)
		assert.ErrorIs(t, err, poet.ErrMalformedEntry)
		assert.Equal(t, 0, dict.Len())
	})

	t.Run("skip", func(t *testing.T) {
		dict := poet.NewDictionary()
		stats, err := Load(strings.NewReader(text), dict, Options{SkipMalformed: true})
		require.NoError(t, err)
		assert.Equal(t, 2, stats.SkippedLines)
		assert.Equal(t, 7, stats.ParsedLines)
		assert.Equal(t, 7, dict.Len())
	})
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cmudict.dict")
	require.NoError(t, os.WriteFile(path, []byte(testLexicon), 0o644))

	dict := poet.NewDictionary()
	stats, err := LoadFile(path, dict, Options{})
	require.NoError(t, err)
	assert.Equal(t, 7, stats.ParsedLines)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.dict"), dict, Options{})
	assert.ErrorIs(t, err, os.ErrNotExist)
}
