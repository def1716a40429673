package datamuse

import (
	"net/url"
	"strconv"
	"strings"
)

const DefaultBaseURL = "https://api.datamuse.com"

// URLBuilder builds requests for the /words endpoint. At least one of SpelledLike and SoundsLike
// should be set.
//
//	NewURLBuilder().SoundsLike("chicken").Max(10).Build()
type URLBuilder struct {
	baseURL       string
	soundsLike    *string
	spelledLike   *string
	queryEcho     bool
	max           int
	wantSyllables bool
	wantPhonemes  bool
}

func NewURLBuilder() *URLBuilder {
	return &URLBuilder{baseURL: DefaultBaseURL, wantPhonemes: true}
}

func (b *URLBuilder) BaseURL(baseURL string) *URLBuilder {
	b.baseURL = strings.TrimRight(baseURL, "/")
	return b
}

// SpelledLike sets the sp= parameter. The term may contain * and ? wildcards.
func (b *URLBuilder) SpelledLike(term string) *URLBuilder {
	b.spelledLike = &term
	return b
}

// SoundsLike sets the sl= parameter.
func (b *URLBuilder) SoundsLike(term string) *URLBuilder {
	b.soundsLike = &term
	return b
}

// QueryEcho asks the service to describe the query term itself as the first result, which makes
// it an exact lookup by spelling or sound. It also sets the max to 1, which can be overridden by
// calling Max afterwards.
func (b *URLBuilder) QueryEcho() *URLBuilder {
	b.queryEcho = true
	b.max = 1
	return b
}

// Max limits the number of results. The service allows up to 1000.
func (b *URLBuilder) Max(max int) *URLBuilder {
	b.max = min(max, 1000)
	return b
}

// WantSyllables adds syllable count estimates to the results.
func (b *URLBuilder) WantSyllables() *URLBuilder {
	b.wantSyllables = true
	return b
}

func (b *URLBuilder) Build() string {
	sb := strings.Builder{}
	sb.WriteString(b.baseURL)
	sb.WriteString("/words?")

	first := true
	add := func(key, value string) {
		if !first {
			sb.WriteByte('&')
		}
		first = false

		sb.WriteString(key)
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(value))
	}

	if b.soundsLike != nil {
		add("sl", *b.soundsLike)
	}
	if b.spelledLike != nil {
		add("sp", *b.spelledLike)
	}
	if b.queryEcho {
		if b.spelledLike != nil {
			add("qe", "sp")
		} else {
			add("qe", "sl")
		}
	}
	if b.max > 0 {
		add("max", strconv.Itoa(b.max))
	}

	flags := ""
	if b.wantSyllables {
		flags += "s"
	}
	if b.wantPhonemes {
		flags += "r"
	}
	if flags != "" {
		add("md", flags)
	}

	return sb.String()
}
