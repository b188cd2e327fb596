package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetNoteIDsExpiredBefore(t *testing.T) {
	conn, mock := newMock(t)
	repo := NewJobRepository(conn)
	cutoff := time.Now()

	mock.ExpectQuery(`SELECT id FROM supporter_availability_notes WHERE expires_at < \$1`).
		WithArgs(cutoff).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3).AddRow(8))

	ids, err := repo.GetNoteIDsExpiredBefore(cutoff)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 8}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteNotes(t *testing.T) {
	conn, mock := newMock(t)
	repo := NewJobRepository(conn)

	mock.ExpectExec(`DELETE FROM supporter_availability_notes WHERE id = ANY\(\$1\)`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 2))

	n, err := repo.DeleteNotes([]int{3, 8})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteNotes_EmptyIsNoop(t *testing.T) {
	conn, mock := newMock(t)
	repo := NewJobRepository(conn)

	n, err := repo.DeleteNotes(nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
