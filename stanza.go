package poet

import (
	"strings"
)

// Token is one word of a line, with every pronunciation the dictionary knows for it. Entries is
// nil for unknown words.
type Token struct {
	Text    string  `json:"text"`
	Entries []Entry `json:"entries,omitempty"`
}

func (t *Token) Known() bool {
	return len(t.Entries) > 0
}

// Word is the normalized text, as it is looked up in the dictionary.
func (t *Token) Word() string {
	return Normalize(t.Text)
}

// uniformSyllables is true when all variants have the same syllable count, which means that
// picking another variant can not change the syllable count of the line.
func (t *Token) uniformSyllables() bool {
	for _, entry := range t.Entries[1:] {
		if entry.Syllables() != t.Entries[0].Syllables() {
			return false
		}
	}

	return true
}

type Line struct {
	Text   string  `json:"text"`
	Number int     `json:"number"`
	Index  int     `json:"index"`
	Tokens []Token `json:"tokens"`
}

func (l *Line) UnknownWords() []string {
	res := make([]string, 0, 2)
	for _, token := range l.Tokens {
		if !token.Known() {
			res = append(res, token.Word())
		}
	}

	return res
}

type Stanza struct {
	Title string `json:"title,omitempty"`
	Lines []Line `json:"lines"`
}

// UnknownWords lists the normalized words not found in the dictionary, without duplicates and in
// the order they first appear.
func (s *Stanza) UnknownWords() []string {
	seen := make(map[string]bool)
	res := make([]string, 0, 4)
	for _, line := range s.Lines {
		for _, word := range line.UnknownWords() {
			if !seen[word] {
				seen[word] = true
				res = append(res, word)
			}
		}
	}

	return res
}

func (s *Stanza) Text() string {
	sb := strings.Builder{}
	for i, line := range s.Lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(line.Text)
	}

	return sb.String()
}

// ParseStanzas splits the text into stanzas and looks up every word in the dictionary.
//
// Blank lines separate blocks, and lines starting with '#' are ignored. Only blocks of two or more
// lines are stanzas. A block of one line right before a stanza is used as its title.
func ParseStanzas(text string, dictionary *Dictionary) []Stanza {
	res := make([]Stanza, 0, 4)
	block := make([]Line, 0, 16)
	title := ""

	flush := func() {
		switch len(block) {
		case 0:
			return
		case 1:
			title = block[0].Text
		default:
			res = append(res, Stanza{Title: title, Lines: block})
			title = ""
			block = make([]Line, 0, 16)
		}

		block = block[:0]
	}

	for i, rawLine := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(rawLine)
		if strings.HasPrefix(trimmed, "#") {
			continue
		}
		if trimmed == "" {
			flush()
			continue
		}

		block = append(block, parseLine(trimmed, i+1, len(block), dictionary))
	}
	flush()

	return res
}

func parseLine(text string, number, index int, dictionary *Dictionary) Line {
	fields := strings.Fields(text)
	line := Line{
		Text:   text,
		Number: number,
		Index:  index,
		Tokens: make([]Token, 0, len(fields)),
	}

	for _, field := range fields {
		word := Normalize(field)
		if word == "" {
			continue
		}

		line.Tokens = append(line.Tokens, Token{
			Text:    field,
			Entries: dictionary.Lookup(word),
		})
	}

	return line
}
