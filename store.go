package paradigma

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// ErrNoTransducer is returned by LoadTransducer on a store that never
// saved one.
var ErrNoTransducer = errors.New("paradigma: no transducer stored")

// ModelStore persists models and the compiled transducer in SQLite.
type ModelStore struct {
	mu sync.RWMutex
	db *sql.DB
}

const storeSchema = `
CREATE TABLE IF NOT EXISTS models (
    position INTEGER PRIMARY KEY,
    name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS stems (
    model INTEGER NOT NULL,
    position INTEGER NOT NULL,
    form TEXT NOT NULL,
    tags TEXT NOT NULL,
    PRIMARY KEY (model, position)
);

CREATE TABLE IF NOT EXISTS affixes (
    model INTEGER NOT NULL,
    position INTEGER NOT NULL,
    form TEXT NOT NULL,
    tags TEXT NOT NULL,
    PRIMARY KEY (model, position)
);

CREATE TABLE IF NOT EXISTS transducers (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    data BLOB NOT NULL
);
`

// OpenModelStore opens the store at dsn, ":memory:" for a private
// in-memory database, and creates the schema.
func OpenModelStore(dsn string) (*ModelStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open model store: %w", err)
	}
	// Every connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(storeSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create model store schema: %w", err)
	}
	return &ModelStore{db: db}, nil
}

// Close closes the database.
func (s *ModelStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save replaces the stored models with models, keeping their order. Stems
// and affixes are keyed by model position, so names need not be unique.
func (s *ModelStore) Save(ctx context.Context, models []*Model) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"models", "stems", "affixes"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	for i, m := range models {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO models (name, position) VALUES (?, ?)`, m.Name, i); err != nil {
			return fmt.Errorf("save model %q: %w", m.Name, err)
		}
		for j, st := range m.Stems {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO stems (model, position, form, tags) VALUES (?, ?, ?, ?)`,
				i, j, st.Form, st.Grammeme.String()); err != nil {
				return fmt.Errorf("save stem of %q: %w", m.Name, err)
			}
		}
		// The lemma affix is stored first, as in the text layout.
		for j, a := range lemmaFirst(m) {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO affixes (model, position, form, tags) VALUES (?, ?, ?, ?)`,
				i, j, a.Form, a.Grammeme.String()); err != nil {
				return fmt.Errorf("save affix of %q: %w", m.Name, err)
			}
		}
	}
	return tx.Commit()
}

// Load reads back the stored models and infers their slot patterns with
// threshold.
func (s *ModelStore) Load(ctx context.Context, threshold float64) ([]*Model, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT position, name FROM models ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("load models: %w", err)
	}
	type header struct {
		position int64
		name     string
	}
	var headers []header
	for rows.Next() {
		var h header
		if err := rows.Scan(&h.position, &h.name); err != nil {
			rows.Close()
			return nil, err
		}
		headers = append(headers, h)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	models := make([]*Model, 0, len(headers))
	for _, h := range headers {
		stems, err := s.morphemes(ctx, "stems", h.position, true)
		if err != nil {
			return nil, fmt.Errorf("model %q: %w", h.name, err)
		}
		affixes, err := s.morphemes(ctx, "affixes", h.position, false)
		if err != nil {
			return nil, fmt.Errorf("model %q: %w", h.name, err)
		}
		models = append(models, NewModel(h.name, stems, affixes, threshold))
	}
	return models, nil
}

func (s *ModelStore) morphemes(ctx context.Context, table string, model int64, root bool) ([]Morpheme, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT form, tags FROM "+table+" WHERE model = ? ORDER BY position", model)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", table, err)
	}
	defer rows.Close()

	var out []Morpheme
	for rows.Next() {
		var form, tags string
		if err := rows.Scan(&form, &tags); err != nil {
			return nil, err
		}
		m := NewAffix(form, ParseGrammeme(tags))
		m.IsRoot = root
		out = append(out, m)
	}
	return out, rows.Err()
}

// SaveTransducer stores the encoded transducer of a, replacing any previous
// one.
func (s *ModelStore) SaveTransducer(ctx context.Context, a *Analyzer) error {
	data, err := a.MarshalBinary()
	if err != nil {
		return fmt.Errorf("encode transducer: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO transducers (id, data) VALUES (1, ?)
		 ON CONFLICT(id) DO UPDATE SET data = excluded.data`, data)
	return err
}

// LoadTransducer returns the encoded transducer, or ErrNoTransducer.
func (s *ModelStore) LoadTransducer(ctx context.Context) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT data FROM transducers WHERE id = 1`).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoTransducer
	}
	return data, err
}
