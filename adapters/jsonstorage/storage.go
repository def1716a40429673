package jsonstorage

import (
	"context"
	"encoding/json"
	"github.com/gissleh/poet"
	"os"
	"slices"
	"sort"
	"sync"
)

func New(path string) *Storage {
	return &Storage{
		path:     path,
		readOnly: false,
		poems:    make(map[string]poet.Poem, 128),
		index:    make(map[string][]string, 128),
	}
}

func FromData(path string, readOnly bool, data Data) *Storage {
	s := &Storage{
		path:     path,
		readOnly: readOnly,
		poems:    data.Poems,
		index:    make(map[string][]string, 128),
	}
	if s.poems == nil {
		s.poems = make(map[string]poet.Poem, 128)
	}
	for _, poem := range s.poems {
		s.indexPoem(poem)
	}

	return s
}

// Open loads the snapshot at path. A missing file gives an empty storage, which creates the file
// on the first write.
func Open(path string, readOnly bool) (*Storage, error) {
	file, err := os.Open(path)
	if os.IsNotExist(err) {
		s := New(path)
		s.readOnly = readOnly
		return s, nil
	} else if err != nil {
		return nil, err
	}
	defer file.Close()

	var data Data
	if err := json.NewDecoder(file).Decode(&data); err != nil {
		return nil, err
	}

	return FromData(path, readOnly, data), nil
}

// Storage keeps every poem in memory, and writes all of them to a single JSON file on changes.
type Storage struct {
	mu       sync.Mutex
	path     string
	readOnly bool
	poems    map[string]poet.Poem
	index    map[string][]string
}

type Data struct {
	Poems map[string]poet.Poem `json:"poems"`
}

func (s *Storage) FindPoem(ctx context.Context, id string) (*poet.Poem, error) {
	if !s.readOnly {
		s.mu.Lock()
		defer s.mu.Unlock()
	}

	poem, ok := s.poems[id]
	if !ok {
		return nil, poet.ErrPoemNotFound
	}

	poem = poem.Copy()
	return &poem, nil
}

func (s *Storage) ListPoems(ctx context.Context) ([]poet.Poem, error) {
	if !s.readOnly {
		s.mu.Lock()
		defer s.mu.Unlock()
	}

	res := make([]poet.Poem, 0, len(s.poems))
	for _, poem := range s.poems {
		res = append(res, poem.Copy())
	}

	sort.Slice(res, func(i, j int) bool {
		return res[i].ListBefore(&res[j])
	})

	return res, nil
}

func (s *Storage) ListPoemsByAuthor(ctx context.Context, author string) ([]poet.Poem, error) {
	return s.listIndexed("author:" + author)
}

func (s *Storage) ListPoemsByForm(ctx context.Context, form string) ([]poet.Poem, error) {
	return s.listIndexed("form:" + form)
}

func (s *Storage) SavePoem(ctx context.Context, poem poet.Poem) error {
	if s.readOnly {
		return poet.ErrReadOnly
	}

	s.mu.Lock()
	if existing, ok := s.poems[poem.ID]; ok {
		s.unIndexPoem(existing)
	}
	s.poems[poem.ID] = poem.Copy()
	s.indexPoem(poem)
	s.mu.Unlock()

	return s.WriteToFile()
}

func (s *Storage) DeletePoem(ctx context.Context, poem poet.Poem) error {
	if s.readOnly {
		return poet.ErrReadOnly
	}

	s.mu.Lock()
	existing, ok := s.poems[poem.ID]
	if !ok {
		s.mu.Unlock()
		return poet.ErrPoemNotFound
	}
	s.unIndexPoem(existing)
	delete(s.poems, poem.ID)
	s.mu.Unlock()

	return s.WriteToFile()
}

func (s *Storage) WriteToFile() error {
	data := Data{
		Poems: make(map[string]poet.Poem, len(s.poems)),
	}

	s.mu.Lock()
	for _, poem := range s.poems {
		data.Poems[poem.ID] = poem
	}
	s.mu.Unlock()

	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0666)
	if err != nil {
		return err
	}
	defer file.Close()
	enc := json.NewEncoder(file)

	return enc.Encode(data)
}

func (s *Storage) listIndexed(key string) ([]poet.Poem, error) {
	if !s.readOnly {
		s.mu.Lock()
		defer s.mu.Unlock()
	}

	res := make([]poet.Poem, 0, len(s.index[key]))
	for _, poemID := range s.index[key] {
		poem := s.poems[poemID]
		res = append(res, poem.Copy())
	}

	sort.Slice(res, func(i, j int) bool {
		return res[i].ListBefore(&res[j])
	})

	return res, nil
}

func (s *Storage) indexPoem(poem poet.Poem) {
	for _, key := range indexKeys(poem) {
		s.index[key] = append(s.index[key], poem.ID)
	}
}

func (s *Storage) unIndexPoem(poem poet.Poem) {
	for _, key := range indexKeys(poem) {
		s.index[key] = slices.DeleteFunc(s.index[key], func(id string) bool {
			return id == poem.ID
		})
	}
}

func indexKeys(poem poet.Poem) []string {
	keys := make([]string, 0, len(poem.Forms)+1)
	keys = append(keys, "author:"+poem.Author)
	for _, form := range poem.Forms {
		keys = append(keys, "form:"+form)
	}

	return keys
}
