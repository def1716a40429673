package poet

import (
	"encoding/json"
	"regexp"
	"strings"
)

// phonemeRegex matches symbols like "AA1", "N" and "AH0". A trailing stress digit marks a
// vowel sound.
var phonemeRegex = regexp.MustCompile(`^[A-Z]+([0-9]+)?$`)

// Phonemes is one pronunciation of a word as a list of ARPAbet symbols. It is immutable once
// constructed, and the syllable count is derived from the symbols.
type Phonemes struct {
	symbols   []string
	syllables int
}

func ParsePhonemes(s string) (Phonemes, error) {
	return NewPhonemes(strings.Fields(s))
}

func NewPhonemes(symbols []string) (Phonemes, error) {
	res := Phonemes{symbols: make([]string, 0, len(symbols))}

	for _, symbol := range symbols {
		match := phonemeRegex.FindStringSubmatch(symbol)
		if match == nil {
			return Phonemes{}, &EntryParseError{Field: "phoneme", Value: symbol}
		}
		if match[1] != "" {
			res.syllables += 1
		}

		res.symbols = append(res.symbols, symbol)
	}

	return res, nil
}

func (p Phonemes) Len() int {
	return len(p.symbols)
}

func (p Phonemes) At(i int) string {
	return p.symbols[i]
}

// Symbols returns a copy of the phoneme symbols.
func (p Phonemes) Symbols() []string {
	return append(p.symbols[:0:0], p.symbols...)
}

func (p Phonemes) Syllables() int {
	return p.syllables
}

func (p Phonemes) String() string {
	return strings.Join(p.symbols, " ")
}

func (p Phonemes) Equal(other Phonemes) bool {
	if len(p.symbols) != len(other.symbols) {
		return false
	}

	for i := range p.symbols {
		if p.symbols[i] != other.symbols[i] {
			return false
		}
	}

	return true
}

// RhymeKey returns the phonemes of the last syllable in reverse order, each followed by a space,
// e.g. "Z UW0 " for "B AY1 UW0 Z". Two pronunciations rhyme when their keys are equal.
func (p Phonemes) RhymeKey() string {
	return p.suffixKey(1)
}

func (p Phonemes) RhymesWith(other Phonemes) bool {
	return p.RhymeKey() == other.RhymeKey()
}

// suffixKey collects reversed phonemes until the given number of vowels have been included. If
// there are fewer vowels than that, the whole pronunciation is used.
func (p Phonemes) suffixKey(syllables int) string {
	sb := strings.Builder{}
	sb.Grow(len(p.symbols) * 4)

	vowels := 0
	for i := len(p.symbols) - 1; i >= 0; i-- {
		sb.WriteString(p.symbols[i])
		sb.WriteByte(' ')

		if isVowel(p.symbols[i]) {
			vowels += 1
			if vowels >= syllables {
				break
			}
		}
	}

	return sb.String()
}

// reverseKey is the full pronunciation reversed, in the same format as suffixKey.
func (p Phonemes) reverseKey() string {
	return p.suffixKey(len(p.symbols) + 1)
}

// IPA renders the pronunciation in IPA between slashes, e.g. "/haʊs/". Stress is not marked.
func (p Phonemes) IPA() string {
	sb := strings.Builder{}
	sb.WriteByte('/')
	for _, symbol := range p.symbols {
		if ipa, ok := arpabetIPA[strings.TrimRight(symbol, "0123456789")]; ok {
			sb.WriteString(ipa)
		}
	}
	sb.WriteByte('/')

	return sb.String()
}

func (p Phonemes) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *Phonemes) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	parsed, err := ParsePhonemes(s)
	if err != nil {
		return err
	}

	*p = parsed
	return nil
}

func (p Phonemes) MarshalYAML() (interface{}, error) {
	return p.String(), nil
}

// SimilarityScore counts how many phonemes the two pronunciations share at the end before the
// first difference. Higher is more similar.
func SimilarityScore(a, b Phonemes) int {
	score := 0
	for i, j := len(a.symbols)-1, len(b.symbols)-1; i >= 0 && j >= 0; i, j = i-1, j-1 {
		if a.symbols[i] != b.symbols[j] {
			break
		}

		score += 1
	}

	return score
}

func isVowel(symbol string) bool {
	last := symbol[len(symbol)-1]
	return last >= '0' && last <= '9'
}

var arpabetIPA = map[string]string{
	"AA": "ɑ",
	"AE": "æ",
	"AH": "ʌ",
	"AO": "ɔ",
	"AW": "aʊ",
	"AY": "aɪ",
	"B":  "b",
	"CH": "tʃ",
	"D":  "d",
	"DH": "ð",
	"EH": "ɛ",
	"ER": "ɝ",
	"EY": "eɪ",
	"F":  "f",
	"G":  "ɡ",
	"HH": "h",
	"IH": "ɪ",
	"IY": "i",
	"JH": "dʒ",
	"K":  "k",
	"L":  "l",
	"M":  "m",
	"N":  "n",
	"NG": "ŋ",
	"OW": "oʊ",
	"OY": "ɔɪ",
	"P":  "p",
	"R":  "ɹ",
	"S":  "s",
	"SH": "ʃ",
	"T":  "t",
	"TH": "θ",
	"UH": "ʊ",
	"UW": "u",
	"V":  "v",
	"W":  "w",
	"Y":  "j",
	"Z":  "z",
	"ZH": "ʒ",
}
