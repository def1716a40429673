package poet

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

var fruitLexicon = []string{
	"bayous B AY1 UW0 Z",
	"fondues F AA1 N D UW0 Z",
	"virtues V ER1 CH UW0 Z",
	"diagram D AY1 AH0 G R AE2 M",
	"polygram P AA1 L IY2 G R AE2 M",
	"program P R OW1 G R AE2 M",
	"programme P R OW1 G R AE2 M",
	"telegram T EH1 L AH0 G R AE2 M",
	"apple AE1 P AH0 L",
	"apple's AE1 P AH0 L Z",
	"apples AE1 P AH0 L Z",
	"applesauce AE1 P AH0 L S AO2 S",
	"avocado AE2 V AH0 K AA1 D OW0",
	"avocados AE2 V AH0 K AA1 D OW0 Z",
	"cranberry K R AE1 N B EH2 R IY0",
	"guava G W AA1 V AH0",
	"guavas G W AA1 V AH0 Z",
	"mango M AE1 NG G OW0",
	"mangoes M AE1 NG G OW0 Z",
	"mangold M AE1 N G OW2 L D",
}

func testDictionary(t *testing.T, lines ...string) *Dictionary {
	t.Helper()

	entries := make([]Entry, 0, len(lines))
	for _, line := range lines {
		entry, err := ParseEntry(line)
		require.NoError(t, err)

		entries = append(entries, entry)
	}

	dict := NewDictionary()
	dict.InsertAll(entries)
	return dict
}

func similarWords(res []SimilarWord) []string {
	words := make([]string, 0, len(res))
	for _, sw := range res {
		words = append(words, sw.Word)
	}

	return words
}

func TestDictionary_Lookup(t *testing.T) {
	dict := NewDictionary()
	require.NoError(t, dict.InsertLine("a AH0"))
	require.NoError(t, dict.InsertLine("a(2) EY1"))
	require.NoError(t, dict.InsertLine("aardvark AA1 R D V AA2 R K"))
	require.NoError(t, dict.InsertLine("aardvarks AA1 R D V AA2 R K S"))
	assert.Error(t, dict.InsertLine("aardvark(0) AA1"))

	entries := dict.Lookup("Aardvark,")
	require.Len(t, entries, 1)
	assert.Equal(t, "aardvark", entries[0].Word)
	assert.Equal(t, 7, entries[0].Phonemes.Len())

	entries = dict.Lookup("a")
	require.Len(t, entries, 2)
	assert.Equal(t, "AH0", entries[0].Phonemes.String())
	assert.Equal(t, "EY1", entries[1].Phonemes.String())

	entry, ok := dict.LookupVariant("a", 2)
	assert.True(t, ok)
	assert.Equal(t, "a(2)", entry.DictKey())

	_, ok = dict.LookupVariant("a", 3)
	assert.False(t, ok)

	assert.Nil(t, dict.Lookup("unknown"))
	assert.Equal(t, 4, dict.Len())
	assert.Equal(t, 3, dict.Words())
}

func TestDictionary_Lookup_Nil(t *testing.T) {
	var dict *Dictionary
	assert.Nil(t, dict.Lookup("flower"))
}

func TestDictionary_Similar(t *testing.T) {
	dict := testDictionary(t, fruitLexicon...)

	table := []struct {
		Word string
		Res  []string
	}{
		{"bayous", []string{"fondues", "virtues"}},
		{"program", []string{"programme", "diagram", "polygram", "telegram"}},
		{"guava", []string{}},
		{"apples", []string{"apple's"}},
		{"Apples!", []string{"apple's"}},
		{"unknown", []string{}},
	}

	for _, row := range table {
		t.Run(row.Word, func(t *testing.T) {
			assert.Equal(t, row.Res, similarWords(dict.Similar(row.Word)))
		})
	}

	res := dict.Similar("program")
	require.Len(t, res, 4)
	assert.Equal(t, SimilarWord{Word: "programme", Variant: 1, Syllables: 2, Score: 7}, res[0])
	assert.Equal(t, 4, res[1].Score)
}

func TestDictionary_Similar_Homonyms(t *testing.T) {
	dict := testDictionary(t,
		"read R EH1 D",
		"reade R EH1 D",
		"red R EH1 D",
		"redd R EH1 D",
	)

	assert.Equal(t, []string{"read", "reade", "redd"}, similarWords(dict.Similar("red")))
}

func TestDictionary_Similar_Variants(t *testing.T) {
	dict := testDictionary(t,
		"read R EH1 D",
		"read(2) R IY1 D",
		"bed B EH1 D",
		"seed S IY1 D",
	)

	assert.Equal(t, []string{"bed", "seed"}, similarWords(dict.Similar("read")))
}

func TestDictionary_Similar_SharedRhymeKey(t *testing.T) {
	dict := testDictionary(t,
		"either IY1 DH ER0",
		"either(2) AY1 DH ER0",
		"neither N IY1 DH ER0",
		"neither(2) N AY1 DH ER0",
	)

	assert.Equal(t, []SimilarWord{
		{Word: "neither", Variant: 1, Syllables: 2, Score: 3},
		{Word: "neither", Variant: 2, Syllables: 2, Score: 3},
	}, dict.Similar("either"))
}

func TestDictionary_LookupVariant_Spelling(t *testing.T) {
	dict := testDictionary(t,
		"a. EY1",
		"a AH0",
	)

	require.Len(t, dict.Lookup("a"), 2)

	table := []struct {
		Word string
		Res  string
	}{
		{"a", "a AH0"},
		{"A", "a AH0"},
		{"a,", "a AH0"},
		{"a.", "a. EY1"},
	}

	for _, row := range table {
		t.Run(row.Word, func(t *testing.T) {
			entry, ok := dict.LookupVariant(row.Word, 1)
			require.True(t, ok)
			assert.Equal(t, row.Res, entry.String())
		})
	}
}

func TestDictionary_Insert(t *testing.T) {
	batch := testDictionary(t, fruitLexicon...)

	single := NewDictionary()
	for i := len(fruitLexicon) - 1; i >= 0; i-- {
		require.NoError(t, single.InsertLine(fruitLexicon[i]))
	}

	assert.Equal(t, batch.Len(), single.Len())
	for i := range batch.index {
		assert.Equal(t, batch.index[i].key, single.index[i].key)
	}

	for _, word := range []string{"bayous", "program", "apples", "mango"} {
		assert.Equal(t, batch.Similar(word), single.Similar(word))
	}
}

func TestDictionary_IndexRows(t *testing.T) {
	dict := testDictionary(t, fruitLexicon...)
	require.NoError(t, dict.InsertLine("apple(2) AE1 P L"))

	assert.Equal(t, dict.Len(), len(dict.index))
	for i, row := range dict.index {
		if i > 0 {
			assert.LessOrEqual(t, dict.index[i-1].key, row.key)
		}

		entry := dict.entries[row.word][row.pos]
		assert.Equal(t, row.variant, entry.Variant)
		assert.Equal(t, entry.similarityKey(), row.key)
	}
}
