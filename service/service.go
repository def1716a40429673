package service

import (
	"context"
	"encoding/base64"
	"github.com/gissleh/poet"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"sort"
	"sync"
	"time"
)

// Service is shared by the web API, the HTML front end and the CLI. The dictionary may grow when
// a fallback is configured, so all access to it goes through the service's lock.
type Service struct {
	Dictionary *poet.Dictionary
	Fallback   Fallback
	Storage    PoemStorage
	Logger     *zap.Logger
	// MaxInterpretations limits the readings checked per stanza and form. Zero means no limit.
	MaxInterpretations int
	ReadOnly           bool

	mu sync.RWMutex
}

func (s *Service) LookupWord(ctx context.Context, word string) (*WordReport, error) {
	word = poet.Normalize(word)
	if word == "" {
		return nil, poet.ErrWordNotFound
	}

	remote := false
	if !s.isKnown(word) {
		if s.resolveUnknown(ctx, []string{word}) == 0 {
			wordLookupsTotal.WithLabelValues("missing").Inc()
			return nil, poet.ErrWordNotFound
		}

		remote = true
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := s.Dictionary.Lookup(word)
	if len(entries) == 0 {
		wordLookupsTotal.WithLabelValues("missing").Inc()
		return nil, poet.ErrWordNotFound
	}

	res := &WordReport{
		Word:    word,
		Entries: make([]EntryReport, 0, len(entries)),
		Similar: s.Dictionary.Similar(word),
		Remote:  remote,
	}
	for _, entry := range entries {
		res.Entries = append(res.Entries, newEntryReport(entry))
	}

	if remote {
		wordLookupsTotal.WithLabelValues("remote").Inc()
	} else {
		wordLookupsTotal.WithLabelValues("found").Inc()
	}

	return res, nil
}

// Analyze finds the stanzas of the text and checks each of them against the forms. All forms are
// checked if none are given.
func (s *Service) Analyze(ctx context.Context, text string, formNames []string) (*Analysis, error) {
	startTime := time.Now()
	defer func() {
		analysisDuration.Observe(time.Since(startTime).Seconds())
	}()

	forms, err := resolveForms(formNames)
	if err != nil {
		return nil, err
	}

	if s.Fallback != nil {
		s.mu.RLock()
		unknown := unknownWords(poet.ParseStanzas(text, s.Dictionary))
		s.mu.RUnlock()

		if len(unknown) > 0 {
			s.resolveUnknown(ctx, unknown)
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	stanzas := poet.ParseStanzas(text, s.Dictionary)
	res := &Analysis{
		Stanzas: make([]StanzaReport, len(stanzas)),
		Unknown: unknownWords(stanzas),
	}

	eg, ctx := errgroup.WithContext(ctx)
	for i := range stanzas {
		i := i
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			res.Stanzas[i] = s.analyzeStanza(&stanzas[i], forms)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return res, nil
}

func (s *Service) analyzeStanza(stanza *poet.Stanza, forms []poet.Form) StanzaReport {
	res := StanzaReport{
		Title:           stanza.Title,
		Lines:           make([]LineReport, 0, len(stanza.Lines)),
		Interpretations: stanza.InterpretationCount(true),
		Unpruned:        stanza.InterpretationCount(false),
		Forms:           make([]FormReport, 0, len(forms)),
	}

	for _, line := range stanza.Lines {
		res.Lines = append(res.Lines, LineReport{
			Number:  line.Number,
			Text:    line.Text,
			Unknown: line.UnknownWords(),
		})
	}

	for _, form := range forms {
		classification := poet.BestInterpretation(stanza, form, s.MaxInterpretations)

		result := "invalid"
		if classification.Valid() {
			result = "valid"
		}
		classificationsTotal.WithLabelValues(form.Name, result).Inc()
		interpretationsExamined.WithLabelValues(form.Name).Observe(float64(classification.Examined))

		res.Forms = append(res.Forms, newFormReport(classification))
	}

	return res
}

func (s *Service) FindPoem(ctx context.Context, id string) (*poet.Poem, error) {
	if s.Storage == nil {
		return nil, poet.ErrPoemNotFound
	}

	return s.Storage.FindPoem(ctx, id)
}

// ListPoems lists the library, optionally narrowed to one author or one verse form.
func (s *Service) ListPoems(ctx context.Context, author, form string) ([]poet.Poem, error) {
	if s.Storage == nil {
		return []poet.Poem{}, nil
	}

	var poems []poet.Poem
	var err error
	switch {
	case author != "":
		poems, err = s.Storage.ListPoemsByAuthor(ctx, author)
	case form != "":
		poems, err = s.Storage.ListPoemsByForm(ctx, form)
	default:
		poems, err = s.Storage.ListPoems(ctx)
	}
	if err != nil {
		return nil, err
	}

	if author != "" && form != "" {
		filtered := poems[:0]
		for _, poem := range poems {
			if poem.HasForm(form) {
				filtered = append(filtered, poem)
			}
		}
		poems = filtered
	}

	sort.Slice(poems, func(i, j int) bool {
		return poems[i].ListBefore(&poems[j])
	})

	return poems, nil
}

func (s *Service) SavePoem(ctx context.Context, input poet.PoemInput, dry bool) (*poet.Poem, error) {
	if s.ReadOnly || s.Storage == nil {
		return nil, poet.ErrReadOnly
	}

	s.mu.RLock()
	poem, err := poet.NewPoem(input, s.Dictionary)
	s.mu.RUnlock()
	if err != nil {
		return nil, err
	}

	if !dry {
		if poem.ID == "" {
			id := uuid.New()
			poem.ID = base64.RawURLEncoding.EncodeToString(id[:])
		}

		err = s.Storage.SavePoem(ctx, *poem)
		if err != nil {
			return nil, err
		}

		s.logger().Info("poem saved", zap.String("id", poem.ID), zap.Strings("forms", poem.Forms))
	}

	return poem, nil
}

func (s *Service) DeletePoem(ctx context.Context, id string) (*poet.Poem, error) {
	if s.ReadOnly || s.Storage == nil {
		return nil, poet.ErrReadOnly
	}

	poem, err := s.Storage.FindPoem(ctx, id)
	if err != nil {
		return nil, err
	}

	err = s.Storage.DeletePoem(ctx, *poem)
	if err != nil {
		return nil, err
	}

	return poem, nil
}

func (s *Service) isKnown(word string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.Dictionary.Lookup(word)) > 0
}

// resolveUnknown asks the fallback for the words, and inserts what it finds. Failures are logged
// and the word stays unknown. It returns the number of words added.
func (s *Service) resolveUnknown(ctx context.Context, words []string) int {
	if s.Fallback == nil {
		return 0
	}

	found := make([]*poet.Entry, len(words))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(4)
	for i, word := range words {
		i, word := i, word
		eg.Go(func() error {
			entry, err := s.Fallback.FetchEntry(ctx, word)
			if err != nil {
				fallbackLookupsTotal.WithLabelValues("error").Inc()
				s.logger().Warn("fallback lookup failed", zap.String("word", word), zap.Error(err))
				return nil
			}
			if entry == nil {
				fallbackLookupsTotal.WithLabelValues("missing").Inc()
				return nil
			}

			fallbackLookupsTotal.WithLabelValues("found").Inc()
			found[i] = entry
			return nil
		})
	}
	_ = eg.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()

	added := 0
	for i, entry := range found {
		if entry == nil {
			continue
		}

		// The service may spell it differently, but it should be found under the word asked for.
		entry.Word = words[i]
		if len(s.Dictionary.Lookup(entry.Word)) > 0 {
			continue
		}

		s.Dictionary.Insert(*entry)
		s.logger().Debug("word added from fallback", zap.String("entry", entry.String()))
		added += 1
	}

	return added
}

func (s *Service) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}

	return s.Logger
}

func resolveForms(names []string) ([]poet.Form, error) {
	if len(names) == 0 {
		return poet.Forms, nil
	}

	res := make([]poet.Form, 0, len(names))
	for _, name := range names {
		form, err := poet.FormByName(name)
		if err != nil {
			return nil, err
		}

		res = append(res, form)
	}

	return res, nil
}

func unknownWords(stanzas []poet.Stanza) []string {
	seen := make(map[string]bool)
	res := make([]string, 0, 4)
	for i := range stanzas {
		for _, word := range stanzas[i].UnknownWords() {
			if !seen[word] {
				seen[word] = true
				res = append(res, word)
			}
		}
	}

	return res
}
