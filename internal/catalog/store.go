// Package catalog persists the award catalog. The matching engine only reads
// snapshots from it; writes happen through seeding.
package catalog

import (
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Tjindl/HackTheCoast-sub000/internal/award"
)

//go:embed awards.json
var seedFS embed.FS

// ErrNotFound is returned when an award id is not present in the catalog.
var ErrNotFound = errors.New("award not found")

// Store is a SQLite-backed award catalog. Each award is kept as one JSON
// document; the amount field is schema-mixed (number or text), so documents
// are stored whole instead of being split into columns.
type Store struct {
	db *sql.DB
}

// Open opens (and if needed bootstraps) the catalog database at path. Use
// ":memory:" for an ephemeral catalog.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open catalog database: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func migrate(db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS awards (
	id   TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	doc  TEXT NOT NULL
);`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("migrate catalog schema: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Seed upserts the given awards, keeping insertion order for new rows.
func (s *Store) Seed(awards []*award.Award) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	const upsert = `
INSERT INTO awards (id, name, doc) VALUES (?, ?, ?)
ON CONFLICT(id) DO UPDATE SET name = excluded.name, doc = excluded.doc;`

	for _, a := range awards {
		if a.ID == "" {
			return fmt.Errorf("award %q has no id", a.Name)
		}
		doc, err := json.Marshal(a)
		if err != nil {
			return fmt.Errorf("marshal award %s: %w", a.ID, err)
		}
		if _, err := tx.Exec(upsert, a.ID, a.Name, string(doc)); err != nil {
			return fmt.Errorf("upsert award %s: %w", a.ID, err)
		}
	}

	return tx.Commit()
}

// List returns the full award set in catalog order.
func (s *Store) List() (*award.Awards, error) {
	rows, err := s.db.Query(`SELECT doc FROM awards ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("list awards: %w", err)
	}
	defer rows.Close()

	awards := &award.Awards{}
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan award row: %w", err)
		}
		var a award.Award
		if err := json.Unmarshal([]byte(doc), &a); err != nil {
			return nil, fmt.Errorf("decode award document: %w", err)
		}
		awards.Items = append(awards.Items, &a)
	}

	return awards, rows.Err()
}

// Get returns one award by id, or ErrNotFound.
func (s *Store) Get(id string) (*award.Award, error) {
	var doc string
	err := s.db.QueryRow(`SELECT doc FROM awards WHERE id = ?`, id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get award %s: %w", id, err)
	}

	var a award.Award
	if err := json.Unmarshal([]byte(doc), &a); err != nil {
		return nil, fmt.Errorf("decode award document: %w", err)
	}
	return &a, nil
}

// DefaultAwards parses the embedded seed catalog.
func DefaultAwards() ([]*award.Award, error) {
	data, err := seedFS.ReadFile("awards.json")
	if err != nil {
		return nil, fmt.Errorf("read embedded seed: %w", err)
	}
	return decodeAwards(data)
}

// LoadFile parses an external award catalog file.
func LoadFile(path string) ([]*award.Award, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read awards file: %w", err)
	}
	return decodeAwards(data)
}

func decodeAwards(data []byte) ([]*award.Award, error) {
	var awards []*award.Award
	if err := json.Unmarshal(data, &awards); err != nil {
		return nil, fmt.Errorf("decode awards: %w", err)
	}
	return awards, nil
}
