package poet

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

type ErrorScope int

const (
	ScopeStanza ErrorScope = iota
	ScopeLine
)

func (s ErrorScope) String() string {
	if s == ScopeLine {
		return "line"
	}

	return "stanza"
}

func (s ErrorScope) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *ErrorScope) UnmarshalText(text []byte) error {
	switch string(text) {
	case "stanza":
		*s = ScopeStanza
	case "line":
		*s = ScopeLine
	default:
		return fmt.Errorf("unknown error scope %q", text)
	}

	return nil
}

// ClassifyError explains why a stanza does not fit a verse form. Line is the 0-based index of the
// line within the stanza, and is only meaningful for line errors.
type ClassifyError struct {
	Scope   ErrorScope `json:"scope" yaml:"scope"`
	Line    int        `json:"line" yaml:"line"`
	Message string     `json:"message" yaml:"message"`
}

func StanzaError(message string) ClassifyError {
	return ClassifyError{Scope: ScopeStanza, Message: message}
}

func LineError(line int, message string) ClassifyError {
	return ClassifyError{Scope: ScopeLine, Line: line, Message: message}
}

func (e ClassifyError) Error() string {
	if e.Scope == ScopeLine {
		return fmt.Sprintf("line %d: %s", e.Line+1, e.Message)
	}

	return e.Message
}

// Compare puts stanza errors before line errors, and line errors in line order.
func (e ClassifyError) Compare(other ClassifyError) int {
	if e.Scope != other.Scope {
		return int(e.Scope) - int(other.Scope)
	}
	if e.Scope == ScopeLine && e.Line != other.Line {
		return e.Line - other.Line
	}

	return strings.Compare(e.Message, other.Message)
}

type ClassifyErrors []ClassifyError

func (e ClassifyErrors) Error() string {
	messages := make([]string, 0, len(e))
	for _, err := range e {
		messages = append(messages, err.Error())
	}

	return strings.Join(messages, "; ")
}

func (e ClassifyErrors) Sort() {
	slices.SortFunc(e, ClassifyError.Compare)
}

// AsClassifyErrors turns the result of a form check into a list of errors. A nil error gives an
// empty list, and errors that are not ClassifyErrors become a single stanza error.
func AsClassifyErrors(err error) ClassifyErrors {
	if err == nil {
		return nil
	}

	var errs ClassifyErrors
	if errors.As(err, &errs) {
		return errs
	}
	var single ClassifyError
	if errors.As(err, &single) {
		return ClassifyErrors{single}
	}

	return ClassifyErrors{StanzaError(err.Error())}
}

// Form is a verse form that a stanza reading can be checked against. Check returns nil when the
// reading fits.
type Form struct {
	Name  string
	Check func(view StanzaView) error
}

var Forms = []Form{
	{Name: "haiku", Check: IsHaiku},
	{Name: "shakespearean_sonnet", Check: IsShakespeareanSonnet},
}

func FormByName(name string) (Form, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, form := range Forms {
		if form.Name == name {
			return form, nil
		}
	}

	return Form{}, fmt.Errorf("%w: %q", ErrUnknownForm, name)
}

func FormNames() []string {
	res := make([]string, 0, len(Forms))
	for _, form := range Forms {
		res = append(res, form.Name)
	}

	return res
}

var haikuRules = verseRules{
	name:      "haiku",
	syllables: []int{5, 7, 5},
}

var shakespeareanSonnetRules = verseRules{
	name:      "Shakespearean sonnet",
	syllables: []int{10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10},
	rhymes:    [][2]int{{0, 2}, {1, 3}, {4, 6}, {5, 7}, {8, 10}, {9, 11}, {12, 13}},
}

// IsHaiku checks for three lines of five, seven and five syllables.
func IsHaiku(view StanzaView) error {
	return haikuRules.check(view)
}

// IsShakespeareanSonnet checks for fourteen lines of ten syllables rhyming ABAB CDCD EFEF GG.
func IsShakespeareanSonnet(view StanzaView) error {
	return shakespeareanSonnetRules.check(view)
}

type verseRules struct {
	name      string
	syllables []int
	rhymes    [][2]int
}

func (r verseRules) check(view StanzaView) error {
	if view.Len() != len(r.syllables) {
		return ClassifyErrors{StanzaError(fmt.Sprintf(
			"a %s has %d lines, but the stanza has %d", r.name, len(r.syllables), view.Len(),
		))}
	}

	var errs ClassifyErrors
	for i, expected := range r.syllables {
		known, unknown := view.Line(i).Syllables()
		if unknown == 0 && known != expected {
			errs = append(errs, LineError(i, fmt.Sprintf(
				"expected %d syllables, found %d", expected, known,
			)))
		} else if unknown > 0 && known >= expected {
			errs = append(errs, LineError(i, fmt.Sprintf(
				"expected %d syllables, found %d and %d unknown words", expected, known, unknown,
			)))
		}
	}

	for _, pair := range r.rhymes {
		first, ok := view.Line(pair[0]).LastEntry()
		if !ok {
			continue
		}
		second, ok := view.Line(pair[1]).LastEntry()
		if !ok {
			continue
		}

		if !first.RhymesWith(&second) {
			errs = append(errs, LineError(pair[1], fmt.Sprintf(
				"%q does not rhyme with %q on line %d", second.DictKey(), first.DictKey(), pair[0]+1,
			)))
		}
	}

	if len(errs) == 0 {
		return nil
	}

	errs.Sort()
	return errs
}

// Classification is the best reading of a stanza for a verse form.
type Classification struct {
	Form      string         `json:"form" yaml:"form"`
	View      StanzaView     `json:"-" yaml:"-"`
	Errors    ClassifyErrors `json:"errors,omitempty" yaml:"errors,omitempty"`
	Examined  int            `json:"examined" yaml:"examined"`
	Total     uint64         `json:"total" yaml:"total"`
	Truncated bool           `json:"truncated,omitempty" yaml:"truncated,omitempty"`
}

func (c *Classification) Valid() bool {
	return len(c.Errors) == 0
}

// BestInterpretation checks the readings of the stanza against the form, and keeps the one with
// the fewest errors. It stops at the first reading without errors, or after limit readings if
// limit is above zero.
func BestInterpretation(stanza *Stanza, form Form, limit int) Classification {
	it := stanza.Interpretations()
	res := Classification{Form: form.Name, Total: it.Size()}

	found := false
	for it.Next() {
		if limit > 0 && res.Examined >= limit {
			res.Truncated = true
			break
		}

		res.Examined += 1
		view := it.View()
		errs := AsClassifyErrors(form.Check(view))
		if !found || len(errs) < len(res.Errors) {
			res.View = view
			res.Errors = errs
			found = true
		}
		if len(errs) == 0 {
			break
		}
	}

	return res
}
