package templfrontend

import (
	"github.com/a-h/templ"
	"github.com/gissleh/poet"
	"github.com/gissleh/poet/service"
	"net/url"
	"slices"
	"strconv"
	"strings"
)

type lineWord struct {
	Text    string
	Unknown bool
}

// markUnknown splits the line into words, flagging the ones missing from the dictionary.
func markUnknown(text string, unknown []string) []lineWord {
	fields := strings.Fields(text)
	words := make([]lineWord, 0, len(fields))
	for _, field := range fields {
		words = append(words, lineWord{
			Text:    field,
			Unknown: len(unknown) > 0 && slices.Contains(unknown, poet.Normalize(field)),
		})
	}

	return words
}

// bestForm is the first form the stanza fits, if any.
func bestForm(stanza service.StanzaReport) *service.FormReport {
	for i := range stanza.Forms {
		if stanza.Forms[i].Valid {
			return &stanza.Forms[i]
		}
	}

	return nil
}

func lineSyllables(best *service.FormReport, index int) string {
	if best == nil || index >= len(best.Syllables) {
		return ""
	}

	return strconv.Itoa(best.Syllables[index])
}

func formChecked(selected []string, name string) bool {
	return len(selected) == 0 || slices.Contains(selected, name)
}

func wordURL(word string) templ.SafeURL {
	return templ.URL("/word/" + url.PathEscape(word))
}

func formTitle(name string) string {
	words := strings.Split(name, "_")
	for i, word := range words {
		if word != "" {
			words[i] = strings.ToUpper(word[:1]) + word[1:]
		}
	}

	return strings.Join(words, " ")
}
