package sourcestorage

import (
	"context"
	"fmt"
	"github.com/gissleh/poet"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
	"os"
	"path"
	"sort"
	"strings"
	"sync"
	"unicode"
)

// Storage keeps the library as hand-editable YAML, one file per author. Only the inputs are
// stored, and the poems are analyzed again when the directory is opened.
type Storage struct {
	mu     sync.Mutex
	path   string
	poems  []poet.Poem
	logger *zap.Logger
}

func (s *Storage) FindPoem(ctx context.Context, id string) (*poet.Poem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, poem := range s.poems {
		if poem.ID == id {
			poemCopy := poem.Copy()
			return &poemCopy, nil
		}
	}

	return nil, poet.ErrPoemNotFound
}

func (s *Storage) ListPoems(ctx context.Context) ([]poet.Poem, error) {
	return s.list(ctx, func(poem *poet.Poem) bool { return true })
}

func (s *Storage) ListPoemsByAuthor(ctx context.Context, author string) ([]poet.Poem, error) {
	return s.list(ctx, func(poem *poet.Poem) bool { return poem.Author == author })
}

func (s *Storage) ListPoemsByForm(ctx context.Context, form string) ([]poet.Poem, error) {
	return s.list(ctx, func(poem *poet.Poem) bool { return poem.HasForm(form) })
}

func (s *Storage) SavePoem(ctx context.Context, poem poet.Poem) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.poems {
		if existing.ID == poem.ID {
			prevAuthor := existing.Author
			s.poems[i] = poem.Copy()

			err := s.save(poem.Author)
			if err != nil {
				return err
			}

			if prevAuthor != poem.Author {
				err := s.save(prevAuthor)
				if err != nil {
					return err
				}
			}

			return nil
		}
	}

	s.poems = append(s.poems, poem.Copy())

	return s.save(poem.Author)
}

func (s *Storage) DeletePoem(ctx context.Context, poem poet.Poem) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.poems {
		if existing.ID == poem.ID {
			s.poems = append(s.poems[:i], s.poems[i+1:]...)
			return s.save(existing.Author)
		}
	}

	return poet.ErrPoemNotFound
}

// WriteAllFiles rewrites the file of every author, which also normalizes their formatting.
func (s *Storage) WriteAllFiles() error {
	authorSeen := make(map[string]bool)
	authors := make([]string, 0, len(s.poems))

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, poem := range s.poems {
		if !authorSeen[poem.Author] {
			authorSeen[poem.Author] = true
			authors = append(authors, poem.Author)
		}
	}

	for _, author := range authors {
		s.logger.Debug("writing author file", zap.String("author", author))
		err := s.save(author)
		if err != nil {
			return err
		}
	}

	return nil
}

func (s *Storage) PoemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.poems)
}

func (s *Storage) list(ctx context.Context, pred func(poem *poet.Poem) bool) ([]poet.Poem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	res := make([]poet.Poem, 0, 16)
	for i := range s.poems {
		if pred(&s.poems[i]) {
			res = append(res, s.poems[i].Copy())
		}
	}
	s.mu.Unlock()

	sort.Slice(res, func(i, j int) bool { return res[i].ListBefore(&res[j]) })

	return res, nil
}

// save writes the file of one author. An author without poems left gets the file removed.
func (s *Storage) save(author string) error {
	filePath := path.Join(s.path, FileName(author))

	savedData := new(authorFileData)
	savedData.Author = author
	for _, poem := range s.poems {
		if poem.Author == author {
			input := poem.Input()
			input.Author = ""
			savedData.Poems = append(savedData.Poems, input)
		}
	}

	if len(savedData.Poems) == 0 {
		err := os.Remove(filePath)
		if err != nil && !os.IsNotExist(err) {
			return err
		}

		return nil
	}

	f, err := os.OpenFile(filePath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	return yaml.NewEncoder(f).Encode(savedData)
}

// Open reads every .yaml file in the directory, creating it if needed.
func Open(ctx context.Context, storagePath string, dictionary *poet.Dictionary, logger *zap.Logger) (*Storage, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	stat, err := os.Stat(storagePath)
	if os.IsNotExist(err) {
		err := os.MkdirAll(storagePath, 0755)
		if err != nil {
			return nil, err
		}

		return &Storage{path: storagePath, poems: []poet.Poem{}, logger: logger}, nil
	} else if err != nil {
		return nil, err
	}

	if !stat.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", storagePath)
	}

	entries, err := os.ReadDir(storagePath)
	if err != nil {
		return nil, err
	}

	poems := make([]poet.Poem, 0, len(entries)*4)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		f, err := os.Open(path.Join(storagePath, entry.Name()))
		if err != nil {
			return nil, err
		}

		loadedData := new(authorFileData)
		err = yaml.NewDecoder(f).Decode(loadedData)
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("could not read %s: %w", entry.Name(), err)
		}

		for _, input := range loadedData.Poems {
			input.Author = loadedData.Author
			poem, err := poet.NewPoem(input, dictionary)
			if err != nil {
				return nil, fmt.Errorf("could not load poem %s/%s: %w", entry.Name(), input.ID, err)
			}

			poems = append(poems, *poem)
		}

		logger.Debug("author file loaded",
			zap.String("file", entry.Name()),
			zap.Int("poems", len(loadedData.Poems)),
		)
	}

	return &Storage{path: storagePath, poems: poems, logger: logger}, nil
}

// FileName turns an author into the name of their file, e.g. "Matsuo Bashō" into "matsuo-bashō.yaml".
func FileName(author string) string {
	sb := strings.Builder{}
	dash := false
	for _, ch := range strings.ToLower(author) {
		if unicode.IsLetter(ch) || unicode.IsDigit(ch) {
			if dash && sb.Len() > 0 {
				sb.WriteByte('-')
			}
			sb.WriteRune(ch)
			dash = false
		} else {
			dash = true
		}
	}

	if sb.Len() == 0 {
		return "unknown.yaml"
	}

	return sb.String() + ".yaml"
}

type authorFileData struct {
	Author string           `yaml:"author"`
	Poems  []poet.PoemInput `yaml:"poems"`
}
