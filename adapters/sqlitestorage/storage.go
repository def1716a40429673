package sqlitestorage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"github.com/gissleh/poet"
	_ "modernc.org/sqlite"
)

// Storage keeps the poem library in a SQLite database. The forms are kept in their own table so
// the library can be listed by form.
type Storage struct {
	db       *sql.DB
	readOnly bool
}

// Open opens or creates the database at path with WAL mode enabled.
func Open(ctx context.Context, path string, readOnly bool) (*Storage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// The pragmas are per connection.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &Storage{db: db, readOnly: readOnly}, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS poems (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL DEFAULT '',
	author TEXT NOT NULL DEFAULT '',
	text TEXT NOT NULL,
	source_json TEXT NOT NULL DEFAULT '{}',
	stanzas INTEGER NOT NULL DEFAULT 0,
	unknowns_json TEXT NOT NULL DEFAULT '[]'
);

CREATE INDEX IF NOT EXISTS poems_author ON poems(author);

CREATE TABLE IF NOT EXISTS poem_forms (
	poem_id TEXT NOT NULL,
	form TEXT NOT NULL,
	position INTEGER NOT NULL,
	UNIQUE(poem_id, form),
	FOREIGN KEY(poem_id) REFERENCES poems(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS poem_forms_form ON poem_forms(form);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

const selectPoems = `SELECT id, title, author, text, source_json, stanzas, unknowns_json FROM poems`

func (s *Storage) FindPoem(ctx context.Context, id string) (*poet.Poem, error) {
	poems, err := s.queryPoems(ctx, selectPoems+` WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(poems) == 0 {
		return nil, poet.ErrPoemNotFound
	}

	return &poems[0], nil
}

func (s *Storage) ListPoems(ctx context.Context) ([]poet.Poem, error) {
	return s.queryPoems(ctx, selectPoems+` ORDER BY author, title, id`)
}

func (s *Storage) ListPoemsByAuthor(ctx context.Context, author string) ([]poet.Poem, error) {
	return s.queryPoems(ctx, selectPoems+` WHERE author = ? ORDER BY author, title, id`, author)
}

func (s *Storage) ListPoemsByForm(ctx context.Context, form string) ([]poet.Poem, error) {
	return s.queryPoems(ctx,
		selectPoems+` WHERE id IN (SELECT poem_id FROM poem_forms WHERE form = ?) ORDER BY author, title, id`,
		form,
	)
}

func (s *Storage) SavePoem(ctx context.Context, poem poet.Poem) error {
	if s.readOnly {
		return poet.ErrReadOnly
	}

	sourceJSON, err := json.Marshal(poem.Source)
	if err != nil {
		return err
	}
	unknownsJSON, err := json.Marshal(nonNil(poem.Unknowns))
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const stmt = `
INSERT INTO poems (id, title, author, text, source_json, stanzas, unknowns_json)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	title=excluded.title,
	author=excluded.author,
	text=excluded.text,
	source_json=excluded.source_json,
	stanzas=excluded.stanzas,
	unknowns_json=excluded.unknowns_json;
`

	_, err = tx.ExecContext(ctx, stmt,
		poem.ID,
		poem.Title,
		poem.Author,
		poem.Text,
		string(sourceJSON),
		poem.Stanzas,
		string(unknownsJSON),
	)
	if err != nil {
		return err
	}

	if err := replacePoemForms(ctx, tx, poem.ID, poem.Forms); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *Storage) DeletePoem(ctx context.Context, poem poet.Poem) error {
	if s.readOnly {
		return poet.ErrReadOnly
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM poems WHERE id = ?`, poem.ID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return poet.ErrPoemNotFound
	}

	return nil
}

func replacePoemForms(ctx context.Context, tx *sql.Tx, poemID string, forms []string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM poem_forms WHERE poem_id=?`, poemID); err != nil {
		return err
	}
	if len(forms) == 0 {
		return nil
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO poem_forms (poem_id, form, position) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, form := range forms {
		if _, err := stmt.ExecContext(ctx, poemID, form, i); err != nil {
			return err
		}
	}

	return nil
}

func (s *Storage) queryPoems(ctx context.Context, query string, args ...interface{}) ([]poet.Poem, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := make([]poet.Poem, 0, 16)
	for rows.Next() {
		var poem poet.Poem
		var sourceJSON, unknownsJSON string
		err := rows.Scan(&poem.ID, &poem.Title, &poem.Author, &poem.Text, &sourceJSON, &poem.Stanzas, &unknownsJSON)
		if err != nil {
			return nil, err
		}

		if err := json.Unmarshal([]byte(sourceJSON), &poem.Source); err != nil {
			return nil, fmt.Errorf("decode poem %s: %w", poem.ID, err)
		}
		if err := json.Unmarshal([]byte(unknownsJSON), &poem.Unknowns); err != nil {
			return nil, fmt.Errorf("decode poem %s: %w", poem.ID, err)
		}
		if len(poem.Unknowns) == 0 {
			poem.Unknowns = nil
		}

		res = append(res, poem)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	for i := range res {
		forms, err := s.loadForms(ctx, res[i].ID)
		if err != nil {
			return nil, err
		}

		res[i].Forms = forms
	}

	return res, nil
}

func (s *Storage) loadForms(ctx context.Context, poemID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT form FROM poem_forms WHERE poem_id = ? ORDER BY position`, poemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []string
	for rows.Next() {
		var form string
		if err := rows.Scan(&form); err != nil {
			return nil, err
		}

		res = append(res, form)
	}

	return res, rows.Err()
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}

	return list
}
