package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/lib/pq"

	"carebridge/internal/db"
	"carebridge/internal/entities"
	"carebridge/internal/utils"
)

type FacilityRepository interface {
	GetFacilityByID(id int) (*db.Facility, error)
	SearchFacilities(filter entities.FacilitySearchFilter) ([]db.Facility, int64, error)
}

type facilityRepository struct {
	db *sql.DB
}

func NewFacilityRepository(db *sql.DB) FacilityRepository {
	return &facilityRepository{db: db}
}

const facilityColumns = `f.id, f.name, f.service_types, f.prefecture, f.city, f.address, f.phone, f.email,
	f.capacity, f.created_at, f.updated_at`

func scanFacility(row rowScanner) (*db.Facility, error) {
	var (
		f     db.Facility
		types pq.StringArray
	)
	err := row.Scan(&f.ID, &f.Name, &types, &f.Prefecture, &f.City, &f.Address, &f.Phone, &f.Email,
		&f.Capacity, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	f.ServiceTypes = utils.NormalizeServiceTypes(types)
	return &f, nil
}

func (r *facilityRepository) GetFacilityByID(id int) (*db.Facility, error) {
	query := `SELECT ` + facilityColumns + ` FROM facilities f WHERE f.id = $1`
	f, err := scanFacility(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("facility %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("error querying facility %d: %w", id, err)
	}
	return f, nil
}

// SearchFacilities returns one page of facilities ordered by name together with
// the total number of matches.
func (r *facilityRepository) SearchFacilities(filter entities.FacilitySearchFilter) ([]db.Facility, int64, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	idx := 1

	if filter.ServiceType != "" {
		where += " AND f.service_types && $" + strconv.Itoa(idx)
		args = append(args, pq.Array(utils.ServiceTypeSpellings(filter.ServiceType)))
		idx++
	}
	if filter.Prefecture != "" {
		where += " AND f.prefecture = $" + strconv.Itoa(idx)
		args = append(args, filter.Prefecture)
		idx++
	}

	var total int64
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM facilities f`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting facilities: %w", err)
	}

	query := `SELECT ` + facilityColumns + ` FROM facilities f` + where +
		" ORDER BY f.name, f.id LIMIT $" + strconv.Itoa(idx) + " OFFSET $" + strconv.Itoa(idx+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error searching facilities: %w", err)
	}
	defer rows.Close()

	facilities := []db.Facility{}
	for rows.Next() {
		f, err := scanFacility(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning facility: %w", err)
		}
		facilities = append(facilities, *f)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error after iterating facility rows: %w", err)
	}
	return facilities, total, nil
}
