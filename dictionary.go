package poet

import (
	"slices"
	"strings"
)

// Dictionary maps normalized words to their pronunciations, and keeps an index of reversed
// pronunciations sorted so that words ending in the same sounds are next to one another.
//
// A Dictionary is not safe for concurrent writes. Once populated, any number of readers may use
// it at the same time.
type Dictionary struct {
	entries map[string][]Entry
	index   []indexRow
}

type indexRow struct {
	key     string
	word    string
	variant int
	pos     int
}

type SimilarWord struct {
	Word      string `json:"word" yaml:"word"`
	Variant   int    `json:"variant" yaml:"variant"`
	Syllables int    `json:"syllables" yaml:"syllables"`
	Score     int    `json:"score" yaml:"score"`
}

func NewDictionary() *Dictionary {
	return &Dictionary{
		entries: make(map[string][]Entry, 1024),
		index:   make([]indexRow, 0, 1024),
	}
}

func (d *Dictionary) Insert(entry Entry) {
	row := d.add(entry)

	pos, _ := slices.BinarySearchFunc(d.index, row, compareRows)
	d.index = slices.Insert(d.index, pos, row)
}

// InsertAll adds many entries at once, sorting the index only once at the end.
func (d *Dictionary) InsertAll(entries []Entry) {
	d.index = slices.Grow(d.index, len(entries))
	for _, entry := range entries {
		d.index = append(d.index, d.add(entry))
	}

	slices.SortFunc(d.index, compareRows)
}

func (d *Dictionary) InsertLine(line string) error {
	entry, err := ParseEntry(line)
	if err != nil {
		return err
	}

	d.Insert(entry)
	return nil
}

// Lookup returns every pronunciation of the word in the order they were inserted. The returned
// slice belongs to the dictionary and must not be modified.
func (d *Dictionary) Lookup(word string) []Entry {
	if d == nil {
		return nil
	}

	entries := d.entries[Normalize(word)]
	if len(entries) == 0 {
		return nil
	}

	return entries[:len(entries):len(entries)]
}

// LookupVariant finds one pronunciation of the word. Spellings that normalize to the same key
// share a list, so an entry spelled like the query is preferred over one that only normalizes
// like it, e.g. "a" over "a." when looking up "a".
func (d *Dictionary) LookupVariant(word string, variant int) (Entry, bool) {
	entries := d.Lookup(word)

	for _, spelling := range []string{strings.ToLower(word), Normalize(word)} {
		for _, entry := range entries {
			if entry.Variant == variant && strings.ToLower(entry.Word) == spelling {
				return entry, true
			}
		}
	}

	for _, entry := range entries {
		if entry.Variant == variant {
			return entry, true
		}
	}

	return Entry{}, false
}

// Similar lists the words whose last syllable sounds the same as one of the pronunciations of
// the given word. The most similar words come first. Unknown words have no similar words.
//
// A word is listed once for each of its variants that matches. When several variants of the
// given word match the same one, the best score is kept.
func (d *Dictionary) Similar(word string) []SimilarWord {
	word = Normalize(word)
	variants := d.Lookup(word)
	if len(variants) == 0 {
		return []SimilarWord{}
	}

	res := make([]SimilarWord, 0, 16)
	seen := make(map[indexRow]int, 16)
	for _, variant := range variants {
		prefix := variant.Phonemes.RhymeKey()
		if prefix == "" {
			continue
		}

		start, _ := slices.BinarySearchFunc(d.index, prefix, func(row indexRow, prefix string) int {
			return strings.Compare(row.key, prefix)
		})

		for _, row := range d.index[start:] {
			if !strings.HasPrefix(row.key, prefix) {
				break
			}
			if row.word == word {
				continue
			}

			other := &d.entries[row.word][row.pos]
			score := SimilarityScore(variant.Phonemes, other.Phonemes)

			seenKey := indexRow{word: row.word, pos: row.pos}
			if i, ok := seen[seenKey]; ok {
				res[i].Score = max(res[i].Score, score)
				continue
			}

			seen[seenKey] = len(res)
			res = append(res, SimilarWord{
				Word:      row.word,
				Variant:   row.variant,
				Syllables: other.Syllables(),
				Score:     score,
			})
		}
	}

	slices.SortStableFunc(res, func(a, b SimilarWord) int {
		if a.Score != b.Score {
			return b.Score - a.Score
		}
		if c := strings.Compare(a.Word, b.Word); c != 0 {
			return c
		}

		return a.Variant - b.Variant
	})

	return res
}

// Len is the number of entries, counting every variant.
func (d *Dictionary) Len() int {
	return len(d.index)
}

// Words is the number of distinct words.
func (d *Dictionary) Words() int {
	return len(d.entries)
}

func (d *Dictionary) add(entry Entry) indexRow {
	word := Normalize(entry.Word)
	if word == "" {
		word = strings.ToLower(entry.Word)
	}

	d.entries[word] = append(d.entries[word], entry)

	return indexRow{
		key:     entry.similarityKey(),
		word:    word,
		variant: entry.Variant,
		pos:     len(d.entries[word]) - 1,
	}
}

func compareRows(a, b indexRow) int {
	if c := strings.Compare(a.key, b.key); c != 0 {
		return c
	}
	if c := strings.Compare(a.word, b.word); c != 0 {
		return c
	}

	return a.pos - b.pos
}
