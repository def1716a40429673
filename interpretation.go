package poet

import (
	"math"
	"math/bits"
)

// LineView is one reading of a line, with a pronunciation picked for every known word.
type LineView struct {
	line    *Line
	choices []int
}

func (v LineView) Line() *Line {
	return v.line
}

// Choice is the index of the selected entry for the token.
func (v LineView) Choice(token int) int {
	return v.choices[token]
}

// Entry returns the selected pronunciation for the token, or false if the word is unknown.
func (v LineView) Entry(token int) (Entry, bool) {
	entries := v.line.Tokens[token].Entries
	if len(entries) == 0 {
		return Entry{}, false
	}

	return entries[v.choices[token]], true
}

func (v LineView) LastEntry() (Entry, bool) {
	if len(v.line.Tokens) == 0 {
		return Entry{}, false
	}

	return v.Entry(len(v.line.Tokens) - 1)
}

// Syllables counts the syllables of the selected pronunciations, and how many words could not be
// counted.
func (v LineView) Syllables() (known, unknown int) {
	for i := range v.line.Tokens {
		if entry, ok := v.Entry(i); ok {
			known += entry.Syllables()
		} else {
			unknown += 1
		}
	}

	return
}

// Words lists the dict keys of the selected pronunciations. Unknown words are prefixed with "?".
func (v LineView) Words() []string {
	res := make([]string, 0, len(v.line.Tokens))
	for i, token := range v.line.Tokens {
		if entry, ok := v.Entry(i); ok {
			res = append(res, entry.DictKey())
		} else {
			res = append(res, "?"+token.Word())
		}
	}

	return res
}

// StanzaView is one reading of a whole stanza.
type StanzaView struct {
	stanza *Stanza
	lines  []LineView
}

func (v StanzaView) Stanza() *Stanza {
	return v.stanza
}

func (v StanzaView) Len() int {
	return len(v.lines)
}

func (v StanzaView) Line(i int) LineView {
	return v.lines[i]
}

func (v StanzaView) Lines() []LineView {
	return v.lines
}

// View returns the reading where the first pronunciation is picked for every word.
func (s *Stanza) View() StanzaView {
	choices := make([][]int, len(s.Lines))
	for i, line := range s.Lines {
		choices[i] = make([]int, len(line.Tokens))
	}

	return s.view(choices)
}

func (s *Stanza) view(choices [][]int) StanzaView {
	lines := make([]LineView, len(s.Lines))
	for i := range s.Lines {
		lines[i] = LineView{
			line:    &s.Lines[i],
			choices: append([]int(nil), choices[i]...),
		}
	}

	return StanzaView{stanza: s, lines: lines}
}

type InterpretationOption func(opts *interpretationOptions)

type interpretationOptions struct {
	pruned bool
}

// WithoutPruning makes the iterator go through all combinations, including the ones that only
// differ by words whose pronunciations all have the same syllable count.
func WithoutPruning() InterpretationOption {
	return func(opts *interpretationOptions) {
		opts.pruned = false
	}
}

// Interpretations goes through every reading of a stanza, one pronunciation combination at a
// time. The combinations are counted like an odometer, where the last word of the last line is
// the fastest moving digit.
//
//	it := stanza.Interpretations()
//	for it.Next() {
//		view := it.View()
//	}
type Interpretations struct {
	stanza  *Stanza
	limits  [][]int
	current [][]int
	started bool
	done    bool
}

func (s *Stanza) Interpretations(opts ...InterpretationOption) *Interpretations {
	options := interpretationOptions{pruned: true}
	for _, opt := range opts {
		opt(&options)
	}

	it := &Interpretations{
		stanza:  s,
		limits:  s.limits(options.pruned),
		current: make([][]int, len(s.Lines)),
	}
	for i, line := range s.Lines {
		it.current[i] = make([]int, len(line.Tokens))
	}

	return it
}

// InterpretationCount is the number of readings the iterator will produce.
func (s *Stanza) InterpretationCount(pruned bool) uint64 {
	return countCombinations(s.limits(pruned))
}

func (it *Interpretations) Next() bool {
	if it.done {
		return false
	}
	if !it.started {
		it.started = true
		return true
	}

	for i := len(it.current) - 1; i >= 0; i-- {
		if !advance(it.current[i], it.limits[i]) {
			return true
		}
	}

	it.done = true
	return false
}

// View returns the current reading. It remains valid after Next is called again.
func (it *Interpretations) View() StanzaView {
	return it.stanza.view(it.current)
}

func (it *Interpretations) Size() uint64 {
	return countCombinations(it.limits)
}

func (s *Stanza) limits(pruned bool) [][]int {
	res := make([][]int, len(s.Lines))
	for i, line := range s.Lines {
		res[i] = make([]int, len(line.Tokens))
		for j := range line.Tokens {
			res[i][j] = tokenRange(&line.Tokens[j], pruned && j < len(line.Tokens)-1)
		}
	}

	return res
}

func tokenRange(token *Token, prune bool) int {
	if len(token.Entries) <= 1 {
		return 1
	}
	if prune && token.uniformSyllables() {
		return 1
	}

	return len(token.Entries)
}

// advance moves to the next combination of the line, and returns true when it rolled over back
// to the first one.
func advance(choices, limits []int) bool {
	for i := len(choices) - 1; i >= 0; i-- {
		choices[i] += 1
		if choices[i] < limits[i] {
			return false
		}

		choices[i] = 0
	}

	return true
}

func countCombinations(limits [][]int) uint64 {
	res := uint64(1)
	for _, line := range limits {
		for _, limit := range line {
			hi, lo := bits.Mul64(res, uint64(limit))
			if hi != 0 {
				return math.MaxUint64
			}

			res = lo
		}
	}

	return res
}
