package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Solution is a reconstructed solution as stored.
type Solution struct {
	SolutionID string
	ScrambleID *string
	CreatedAt  time.Time
	Moves      string
	MoveCount  int
	BestEffort bool
}

// SolutionRepository stores reconstructed solutions.
type SolutionRepository struct {
	db querier
}

// NewSolutionRepository creates a new solution repository.
func NewSolutionRepository(db *DB) *SolutionRepository {
	return &SolutionRepository{db: db}
}

// WithTx returns a repository that runs its statements in tx.
func (r *SolutionRepository) WithTx(tx *sql.Tx) *SolutionRepository {
	return &SolutionRepository{db: tx}
}

// Create stores a solution. scrambleID may be empty for a best-effort
// solution that has no scramble behind it.
func (r *SolutionRepository) Create(scrambleID, moves string, moveCount int, bestEffort bool) (string, error) {
	id := uuid.New().String()
	createdAt := time.Now().UTC()

	var scramblePtr *string
	if scrambleID != "" {
		scramblePtr = &scrambleID
	}

	_, err := r.db.Exec(`
		INSERT INTO solutions (solution_id, scramble_id, created_at, moves, move_count, best_effort)
		VALUES (?, ?, ?, ?, ?, ?)
	`, id, scramblePtr, createdAt.Format(timeLayout), moves, moveCount, bestEffort)
	if err != nil {
		return "", fmt.Errorf("failed to create solution: %w", err)
	}

	return id, nil
}

// ListForScramble returns the solutions stored for a scramble, oldest first.
func (r *SolutionRepository) ListForScramble(scrambleID string) ([]Solution, error) {
	rows, err := r.db.Query(`
		SELECT solution_id, scramble_id, created_at, moves, move_count, best_effort
		FROM solutions
		WHERE scramble_id = ?
		ORDER BY created_at, rowid
	`, scrambleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list solutions: %w", err)
	}
	defer rows.Close()

	var out []Solution
	for rows.Next() {
		var s Solution
		var createdAt string
		var scrambleIDCol sql.NullString
		if err := rows.Scan(&s.SolutionID, &scrambleIDCol, &createdAt, &s.Moves, &s.MoveCount, &s.BestEffort); err != nil {
			return nil, fmt.Errorf("failed to scan solution: %w", err)
		}
		if scrambleIDCol.Valid {
			v := scrambleIDCol.String
			s.ScrambleID = &v
		}
		s.CreatedAt, _ = time.Parse(timeLayout, createdAt)
		out = append(out, s)
	}
	return out, rows.Err()
}

// Count returns the number of stored solutions.
func (r *SolutionRepository) Count() (int, error) {
	var n int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM solutions").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count solutions: %w", err)
	}
	return n, nil
}
