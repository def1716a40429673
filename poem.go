package poet

import (
	"fmt"
	"slices"
	"strings"
)

// DefaultInterpretationLimit caps how many readings of a stanza are checked against each form
// when nothing else is configured.
const DefaultInterpretationLimit = 10000

type Source struct {
	ID    string `json:"id,omitempty" yaml:"id,omitempty"`
	Date  string `json:"date,omitempty" yaml:"date,omitempty"`
	URL   string `json:"url,omitempty" yaml:"url,omitempty"`
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
}

type PoemInput struct {
	ID     string `json:"id,omitempty" yaml:"id,omitempty"`
	Title  string `json:"title,omitempty" yaml:"title,omitempty"`
	Author string `json:"author,omitempty" yaml:"author,omitempty"`
	Text   string `json:"text" yaml:"text"`
	Source Source `json:"source" yaml:"source,omitempty"`
}

// Poem is a text in the poem library, along with what was found when it was last saved.
type Poem struct {
	ID       string   `json:"id" yaml:"id"`
	Title    string   `json:"title,omitempty" yaml:"title,omitempty"`
	Author   string   `json:"author,omitempty" yaml:"author,omitempty"`
	Text     string   `json:"text" yaml:"text"`
	Source   Source   `json:"source" yaml:"source,omitempty"`
	Stanzas  int      `json:"stanzas" yaml:"stanzas"`
	Forms    []string `json:"forms,omitempty" yaml:"forms,omitempty"`
	Unknowns []string `json:"unknowns,omitempty" yaml:"unknowns,omitempty"`
}

func NewPoem(input PoemInput, dictionary *Dictionary) (*Poem, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, PoemError{Field: "text", Message: "Text cannot be left blank."}
	}
	if strings.TrimSpace(input.Author) == "" {
		return nil, PoemError{Field: "author", Message: "Author cannot be left blank."}
	}

	stanzas := ParseStanzas(text, dictionary)
	if len(stanzas) == 0 {
		return nil, PoemError{Field: "text", Message: "No stanza of two or more lines was found."}
	}

	res := &Poem{
		ID:       input.ID,
		Title:    strings.TrimSpace(input.Title),
		Author:   strings.TrimSpace(input.Author),
		Text:     text,
		Source:   input.Source,
		Stanzas:  len(stanzas),
		Forms:    make([]string, 0, len(Forms)),
		Unknowns: make([]string, 0, 4),
	}
	if res.Title == "" {
		res.Title = stanzas[0].Title
	}

	for _, form := range Forms {
		for i := range stanzas {
			classification := BestInterpretation(&stanzas[i], form, DefaultInterpretationLimit)
			if classification.Valid() {
				res.Forms = append(res.Forms, form.Name)
				break
			}
		}
	}

	for i := range stanzas {
		for _, word := range stanzas[i].UnknownWords() {
			if !slices.Contains(res.Unknowns, word) {
				res.Unknowns = append(res.Unknowns, word)
			}
		}
	}

	return res, nil
}

type PoemError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e PoemError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ListBefore sorts poems by author, then title, then ID.
//
// Usage: `sort.Slice(list, func(i, j int) bool { return list[i].ListBefore(&list[j]) })`
func (p *Poem) ListBefore(another *Poem) bool {
	if p.Author == another.Author {
		if p.Title == another.Title {
			return p.ID < another.ID
		}

		return p.Title < another.Title
	}

	return p.Author < another.Author
}

func (p *Poem) Input() PoemInput {
	return PoemInput{
		ID:     p.ID,
		Title:  p.Title,
		Author: p.Author,
		Text:   p.Text,
		Source: p.Source,
	}
}

func (p *Poem) Copy() Poem {
	p2 := *p
	p2.Forms = append(p.Forms[:0:0], p.Forms...)
	p2.Unknowns = append(p.Unknowns[:0:0], p.Unknowns...)

	return p2
}

func (p *Poem) HasForm(form string) bool {
	return slices.Contains(p.Forms, form)
}

// ParseStanzas parses the text of the poem again with the given dictionary.
func (p *Poem) ParseStanzas(dictionary *Dictionary) []Stanza {
	return ParseStanzas(p.Text, dictionary)
}
