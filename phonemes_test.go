package poet

import (
	"encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func mustPhonemes(s string) Phonemes {
	phonemes, err := ParsePhonemes(s)
	if err != nil {
		panic(err)
	}

	return phonemes
}

func TestSimilarityScore(t *testing.T) {
	table := []struct {
		A, B  string
		Score int
	}{
		{"B AY1 UW0 Z", "F AA1 N D UW0 Z", 2},
		{"F AA1 N D UW0 Z", "V ER1 CH UW0 Z", 2},
		{"D AY1 AH0 G R AE2 M", "P AA1 L IY2 G R AE2 M", 4},
		{"D AY1 AH0 G R AE2 M", "P R OW1 G R AE2 M", 4},
		{"P R OW1 G R AE2 M", "P R OW1 G R AE2 M", 7},
		{"AE1 P AH0 L", "AE1 P AH0 L Z", 0},
		{"AE1 P AH0 L Z", "AE1 P AH0 L Z", 5},
		{"M AE1 NG G OW0", "M AE1 NG G OW0 Z", 0},
		{"M AE1 NG G OW0", "M AE1 N G OW2 L D", 0},
		{"", "M AE1 N G OW2 L D", 0},
	}

	for _, row := range table {
		t.Run(row.A+"|"+row.B, func(t *testing.T) {
			a, b := mustPhonemes(row.A), mustPhonemes(row.B)
			assert.Equal(t, row.Score, SimilarityScore(a, b))
			assert.Equal(t, row.Score, SimilarityScore(b, a))
		})
	}
}

func TestPhonemes_RhymeKey(t *testing.T) {
	assert.Equal(t, "Z UW0 ", mustPhonemes("B AY1 UW0 Z").RhymeKey())
	assert.Equal(t, "M AE2 ", mustPhonemes("D AY1 AH0 G R AE2 M").RhymeKey())
	assert.Equal(t, "AH0 ", mustPhonemes("G W AA1 V AH0").RhymeKey())
	assert.Equal(t, "M HH ", mustPhonemes("HH M").RhymeKey())
	assert.Equal(t, "", Phonemes{}.RhymeKey())
}

func TestPhonemes_Syllables(t *testing.T) {
	assert.Equal(t, 3, mustPhonemes("AE1 M P ER0 S AE2 N D").Syllables())
	assert.Equal(t, 0, mustPhonemes("SH").Syllables())
	assert.Equal(t, 0, Phonemes{}.Syllables())
}

func TestPhonemes_IPA(t *testing.T) {
	assert.Equal(t, "/haʊs/", mustPhonemes("HH AW1 S").IPA())
	assert.Equal(t, "/flaʊɝz/", mustPhonemes("F L AW1 ER0 Z").IPA())
}

func TestPhonemes_JSON(t *testing.T) {
	data, err := json.Marshal(mustPhonemes("F L AW1 ER0"))
	require.NoError(t, err)
	assert.Equal(t, `"F L AW1 ER0"`, string(data))

	var phonemes Phonemes
	require.NoError(t, json.Unmarshal(data, &phonemes))
	assert.Equal(t, 2, phonemes.Syllables())
	assert.True(t, phonemes.Equal(mustPhonemes("F L AW1 ER0")))

	assert.Error(t, json.Unmarshal([]byte(`"f l"`), &phonemes))
}
