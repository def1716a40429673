package poet

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// entryWordRegex matches the term and its optional variant suffix, e.g. "aalborg(2)".
var entryWordRegex = regexp.MustCompile(`^([^ ()#]+)(?:\(([0-9]+)\))?$`)

// Entry is a single pronunciation of a word, as found on one line of a cmudict-style lexicon:
//
//	a AH0
//	a(2) EY1
//	a.m. EY2 EH1 M
//	achill AE1 K IH0 L # place, irish
type Entry struct {
	Word     string   `json:"word" yaml:"word"`
	Variant  int      `json:"variant" yaml:"variant"`
	Phonemes Phonemes `json:"phonemes" yaml:"phonemes"`
}

func NewEntry(word string, variant int, phonemes Phonemes) Entry {
	if variant < 1 {
		variant = 1
	}

	return Entry{Word: word, Variant: variant, Phonemes: phonemes}
}

// ParseEntry parses one line of lexicon text. Everything after a '#' is ignored.
func ParseEntry(line string) (Entry, error) {
	if commentStart := strings.IndexByte(line, '#'); commentStart != -1 {
		line = line[:commentStart]
	}

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Entry{}, &EntryParseError{Input: line, Field: "word"}
	}

	word, variant, err := ParseDictKey(fields[0])
	if err != nil {
		return Entry{}, withInput(err, line)
	}

	phonemes, err := NewPhonemes(fields[1:])
	if err != nil {
		return Entry{}, withInput(err, line)
	}

	return Entry{Word: word, Variant: variant, Phonemes: phonemes}, nil
}

// NewEntryFromParts builds a first-variant entry from a word and a space-separated pronunciation,
// such as the ones returned by remote pronunciation services.
func NewEntryFromParts(word, pronunciation string) (Entry, error) {
	word = strings.TrimSpace(word)
	if word == "" || strings.ContainsAny(word, " ()#") {
		return Entry{}, &EntryParseError{Input: word + " " + pronunciation, Field: "word", Value: word}
	}

	phonemes, err := ParsePhonemes(pronunciation)
	if err != nil {
		return Entry{}, withInput(err, word+" "+pronunciation)
	}

	return Entry{Word: word, Variant: 1, Phonemes: phonemes}, nil
}

// ParseDictKey splits a key like "amounted(2)" into its word and variant. Keys without a
// suffix are variant 1.
func ParseDictKey(key string) (string, int, error) {
	match := entryWordRegex.FindStringSubmatch(key)
	if match == nil {
		return "", 0, &EntryParseError{Field: "word", Value: key}
	}

	if match[2] == "" {
		return match[1], 1, nil
	}

	variant, err := strconv.Atoi(match[2])
	if err != nil || variant < 1 {
		return "", 0, &EntryParseError{Field: "variant", Value: match[2]}
	}

	return match[1], variant, nil
}

// DictKey is the term as it is written in the lexicon, e.g. "flower" or "aluminium(2)".
func (e *Entry) DictKey() string {
	if e.Variant <= 1 {
		return e.Word
	}

	return e.Word + "(" + strconv.Itoa(e.Variant) + ")"
}

func (e *Entry) Syllables() int {
	return e.Phonemes.Syllables()
}

func (e *Entry) RhymesWith(other *Entry) bool {
	return e.Phonemes.RhymesWith(other.Phonemes)
}

// String formats the entry back into a lexicon line.
func (e *Entry) String() string {
	if e.Phonemes.Len() == 0 {
		return e.DictKey()
	}

	return e.DictKey() + " " + e.Phonemes.String()
}

// similarityKey is the reversed pronunciation followed by the dict key, which keeps homophones
// apart in the dictionary's rhyme index.
func (e *Entry) similarityKey() string {
	return e.Phonemes.reverseKey() + e.DictKey()
}

type EntryParseError struct {
	Input string
	Field string
	Value string
}

func (e *EntryParseError) Error() string {
	if e.Input == "" {
		return fmt.Sprintf("%s: invalid %s %q", ErrMalformedEntry, e.Field, e.Value)
	}

	return fmt.Sprintf("%s %q: invalid %s %q", ErrMalformedEntry, strings.TrimSpace(e.Input), e.Field, e.Value)
}

func (e *EntryParseError) Unwrap() error {
	return ErrMalformedEntry
}

func withInput(err error, input string) error {
	if parseErr, ok := err.(*EntryParseError); ok {
		parseErr.Input = input
	}

	return err
}
