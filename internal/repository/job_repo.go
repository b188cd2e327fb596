package repository

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/lib/pq"
)

type JobRepository struct {
	DB *sql.DB
}

func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{DB: db}
}

// GetNoteIDsExpiredBefore returns the ids of supporter notes whose expiry is older than cutoff.
func (r *JobRepository) GetNoteIDsExpiredBefore(cutoff time.Time) ([]int, error) {
	query := `SELECT id FROM supporter_availability_notes WHERE expires_at < $1 ORDER BY id`
	rows, err := r.DB.Query(query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("error querying expired notes: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning note ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating rows: %w", err)
	}
	return ids, nil
}

func (r *JobRepository) DeleteNotes(ids []int) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result, err := r.DB.Exec(`DELETE FROM supporter_availability_notes WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return 0, fmt.Errorf("error deleting notes: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Printf("Could not get rows affected: %v", err)
		return 0, nil
	}
	return rowsAffected, nil
}
