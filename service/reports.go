package service

import "github.com/gissleh/poet"

type WordReport struct {
	Word    string             `json:"word" yaml:"word"`
	Entries []EntryReport      `json:"entries" yaml:"entries"`
	Similar []poet.SimilarWord `json:"similar" yaml:"similar"`
	Remote  bool               `json:"remote,omitempty" yaml:"remote,omitempty"`
}

type EntryReport struct {
	DictKey   string `json:"dictKey" yaml:"dict_key"`
	Phonemes  string `json:"phonemes" yaml:"phonemes"`
	IPA       string `json:"ipa" yaml:"ipa"`
	Syllables int    `json:"syllables" yaml:"syllables"`
}

func newEntryReport(entry poet.Entry) EntryReport {
	return EntryReport{
		DictKey:   entry.DictKey(),
		Phonemes:  entry.Phonemes.String(),
		IPA:       entry.Phonemes.IPA(),
		Syllables: entry.Syllables(),
	}
}

type Analysis struct {
	Stanzas []StanzaReport `json:"stanzas" yaml:"stanzas"`
	Unknown []string       `json:"unknown,omitempty" yaml:"unknown,omitempty"`
}

type StanzaReport struct {
	Title           string       `json:"title,omitempty" yaml:"title,omitempty"`
	Lines           []LineReport `json:"lines" yaml:"lines"`
	Interpretations uint64       `json:"interpretations" yaml:"interpretations"`
	Unpruned        uint64       `json:"unprunedInterpretations" yaml:"unpruned_interpretations"`
	Forms           []FormReport `json:"forms" yaml:"forms"`
}

type LineReport struct {
	Number  int      `json:"number" yaml:"number"`
	Text    string   `json:"text" yaml:"text"`
	Unknown []string `json:"unknown,omitempty" yaml:"unknown,omitempty"`
}

// FormReport is the best reading of a stanza for one form. Words and Syllables have one item per
// line of that reading.
type FormReport struct {
	Form      string              `json:"form" yaml:"form"`
	Valid     bool                `json:"valid" yaml:"valid"`
	Words     [][]string          `json:"words" yaml:"words"`
	Syllables []int               `json:"syllables" yaml:"syllables"`
	Errors    poet.ClassifyErrors `json:"errors,omitempty" yaml:"errors,omitempty"`
	Examined  int                 `json:"examined" yaml:"examined"`
	Total     uint64              `json:"total" yaml:"total"`
	Truncated bool                `json:"truncated,omitempty" yaml:"truncated,omitempty"`
}

func newFormReport(classification poet.Classification) FormReport {
	res := FormReport{
		Form:      classification.Form,
		Valid:     classification.Valid(),
		Words:     make([][]string, 0, classification.View.Len()),
		Syllables: make([]int, 0, classification.View.Len()),
		Errors:    classification.Errors,
		Examined:  classification.Examined,
		Total:     classification.Total,
		Truncated: classification.Truncated,
	}

	for _, line := range classification.View.Lines() {
		known, _ := line.Syllables()
		res.Words = append(res.Words, line.Words())
		res.Syllables = append(res.Syllables, known)
	}

	return res
}

// ErrorsForLine returns the errors reported on the line with the given index in the stanza.
func (r *FormReport) ErrorsForLine(index int) []string {
	res := make([]string, 0, 1)
	for _, err := range r.Errors {
		if err.Scope == poet.ScopeLine && err.Line == index {
			res = append(res, err.Message)
		}
	}

	return res
}

// StanzaErrors returns the errors that are not about a single line.
func (r *FormReport) StanzaErrors() []string {
	res := make([]string, 0, 1)
	for _, err := range r.Errors {
		if err.Scope == poet.ScopeStanza {
			res = append(res, err.Message)
		}
	}

	return res
}
