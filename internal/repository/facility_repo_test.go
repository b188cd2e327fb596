package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carebridge/internal/entities"
)

var facilityCols = []string{"id", "name", "service_types", "prefecture", "city", "address", "phone", "email",
	"capacity", "created_at", "updated_at"}

func TestSearchFacilities_WithFilters(t *testing.T) {
	conn, mock := newMock(t)
	repo := NewFacilityRepository(conn)
	now := time.Now()

	dayCare := pq.Array([]string{"day_care", "day-care", "day_service", "daycare", "dayservice"})

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM facilities f WHERE 1=1 AND f.service_types && \$1 AND f.prefecture = \$2`).
		WithArgs(dayCare, "Osaka").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
	mock.ExpectQuery(`ORDER BY f.name, f.id LIMIT \$3 OFFSET \$4`).
		WithArgs(dayCare, "Osaka", 2, 10).
		WillReturnRows(sqlmock.NewRows(facilityCols).
			AddRow(1, "Aoba", "{daycare,short_stay,day_care}", "Osaka", "Sakai", "1-2-3", "", "", 20, now, now).
			AddRow(2, "Hikari", "{day_care}", "Osaka", "Suita", "4-5-6", "", "", 15, now, now))

	got, total, err := repo.SearchFacilities(entities.FacilitySearchFilter{
		ServiceType: "Day Care",
		Prefecture:  "Osaka",
		Limit:       2,
		Offset:      10,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(12), total)
	require.Len(t, got, 2)
	assert.Equal(t, []string{"day_care", "short_stay"}, got[0].ServiceTypes)
	assert.Equal(t, "Hikari", got[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchFacilities_NoFilters(t *testing.T) {
	conn, mock := newMock(t)
	repo := NewFacilityRepository(conn)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM facilities f WHERE 1=1$`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`LIMIT \$1 OFFSET \$2`).
		WithArgs(20, 0).
		WillReturnRows(sqlmock.NewRows(facilityCols))

	got, total, err := repo.SearchFacilities(entities.FacilitySearchFilter{Limit: 20})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetFacilityByID_NotFound(t *testing.T) {
	conn, mock := newMock(t)
	repo := NewFacilityRepository(conn)

	mock.ExpectQuery(`FROM facilities f WHERE f.id = \$1`).
		WithArgs(404).
		WillReturnRows(sqlmock.NewRows(facilityCols))

	_, err := repo.GetFacilityByID(404)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}
