package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Scramble is a generated scramble as stored.
type Scramble struct {
	ScrambleID   string
	CreatedAt    time.Time
	ScrambleText string
	Length       int
	Seed         *uint64
}

// ScrambleRepository stores generated scrambles.
type ScrambleRepository struct {
	db querier
}

// NewScrambleRepository creates a new scramble repository.
func NewScrambleRepository(db *DB) *ScrambleRepository {
	return &ScrambleRepository{db: db}
}

// WithTx returns a repository that runs its statements in tx.
func (r *ScrambleRepository) WithTx(tx *sql.Tx) *ScrambleRepository {
	return &ScrambleRepository{db: tx}
}

// Create stores a scramble and returns its ID. A zero seed is stored as NULL.
func (r *ScrambleRepository) Create(text string, length int, seed uint64) (string, error) {
	id := uuid.New().String()
	createdAt := time.Now().UTC()

	var seedPtr *int64
	if seed != 0 {
		s := int64(seed)
		seedPtr = &s
	}

	_, err := r.db.Exec(`
		INSERT INTO scrambles (scramble_id, created_at, scramble_text, length, seed)
		VALUES (?, ?, ?, ?, ?)
	`, id, createdAt.Format(timeLayout), text, length, seedPtr)
	if err != nil {
		return "", fmt.Errorf("failed to create scramble: %w", err)
	}

	return id, nil
}

// Get retrieves a scramble by ID. It returns nil when none exists.
func (r *ScrambleRepository) Get(id string) (*Scramble, error) {
	row := r.db.QueryRow(`
		SELECT scramble_id, created_at, scramble_text, length, seed
		FROM scrambles
		WHERE scramble_id = ?
	`, id)
	return scanScramble(row)
}

// Latest retrieves the most recent scramble. It returns nil when none exists.
func (r *ScrambleRepository) Latest() (*Scramble, error) {
	row := r.db.QueryRow(`
		SELECT scramble_id, created_at, scramble_text, length, seed
		FROM scrambles
		ORDER BY created_at DESC, rowid DESC
		LIMIT 1
	`)
	return scanScramble(row)
}

// List returns up to limit scrambles, newest first.
func (r *ScrambleRepository) List(limit int) ([]Scramble, error) {
	rows, err := r.db.Query(`
		SELECT scramble_id, created_at, scramble_text, length, seed
		FROM scrambles
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list scrambles: %w", err)
	}
	defer rows.Close()

	var out []Scramble
	for rows.Next() {
		s, err := scanScramble(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanScramble(row scanner) (*Scramble, error) {
	var s Scramble
	var createdAt string
	var seed sql.NullInt64

	err := row.Scan(&s.ScrambleID, &createdAt, &s.ScrambleText, &s.Length, &seed)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get scramble: %w", err)
	}

	s.CreatedAt, _ = time.Parse(timeLayout, createdAt)
	if seed.Valid {
		v := uint64(seed.Int64)
		s.Seed = &v
	}
	return &s, nil
}
