package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"carebridge/internal/db"
	"carebridge/internal/entities"
)

// ErrNotFound is returned when a lookup by id matches no row.
var ErrNotFound = errors.New("not found")

type AvailabilityRepository interface {
	CreateReport(report *db.FacilityAvailabilityReport) error
	GetLatestReport(facilityID int, now time.Time) (*db.FacilityAvailabilityReport, error)
	GetLatestReports(facilityIDs []int, now time.Time) (map[int]*db.FacilityAvailabilityReport, error)
	CreateNote(note *db.SupporterAvailabilityNote) error
	ListActiveNotes(facilityID int, now time.Time, limit int) ([]db.SupporterAvailabilityNote, error)
	ListActiveNotesForFacilities(facilityIDs []int, now time.Time, limit int) (map[int][]db.SupporterAvailabilityNote, error)
}

type availabilityRepository struct {
	db *sql.DB
}

func NewAvailabilityRepository(db *sql.DB) AvailabilityRepository {
	return &availabilityRepository{db: db}
}

const reportColumns = `id, facility_id, status, valid_from, valid_until, note, context_summary,
	context_items, confidence, reported_by, created_at, updated_at`

const noteColumns = `id, facility_id, supporter_id, status, intent, note, context_summary,
	context_items, plan_id, client_id, expires_at, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReport(row rowScanner) (*db.FacilityAvailabilityReport, error) {
	var (
		r          db.FacilityAvailabilityReport
		status     string
		validUntil sql.NullTime
		confidence sql.NullFloat64
		items      pq.StringArray
	)
	err := row.Scan(
		&r.ID, &r.FacilityID, &status, &r.ValidFrom, &validUntil, &r.Note, &r.ContextSummary,
		&items, &confidence, &r.ReportedBy, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	r.Status = entities.ParseAvailabilityStatus(status)
	r.ContextItems = []string(items)
	if validUntil.Valid {
		t := validUntil.Time
		r.ValidUntil = &t
	}
	if confidence.Valid {
		c := confidence.Float64
		r.Confidence = &c
	}
	return &r, nil
}

func scanNote(row rowScanner) (*db.SupporterAvailabilityNote, error) {
	var (
		n        db.SupporterAvailabilityNote
		status   string
		planID   sql.NullInt64
		clientID sql.NullInt64
		items    pq.StringArray
	)
	err := row.Scan(
		&n.ID, &n.FacilityID, &n.SupporterID, &status, &n.Intent, &n.Note, &n.ContextSummary,
		&items, &planID, &clientID, &n.ExpiresAt, &n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	n.Status = entities.ParseAvailabilityStatus(status)
	n.ContextItems = []string(items)
	n.PlanID = nullIntPtr(planID)
	n.ClientID = nullIntPtr(clientID)
	return &n, nil
}

func nullIntPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

func nonNilItems(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}

func (r *availabilityRepository) CreateReport(report *db.FacilityAvailabilityReport) error {
	query := `
		INSERT INTO facility_availability_reports
		(facility_id, status, valid_from, valid_until, note, context_summary, context_items, confidence, reported_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(query,
		report.FacilityID,
		string(report.Status),
		report.ValidFrom,
		report.ValidUntil,
		report.Note,
		report.ContextSummary,
		pq.Array(nonNilItems(report.ContextItems)),
		report.Confidence,
		report.ReportedBy,
		report.CreatedAt,
		report.UpdatedAt,
	).Scan(&report.ID, &report.CreatedAt, &report.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error inserting availability report for facility %d: %w", report.FacilityID, err)
	}
	return nil
}

// GetLatestReport returns nil without error when the facility has no current report.
func (r *availabilityRepository) GetLatestReport(facilityID int, now time.Time) (*db.FacilityAvailabilityReport, error) {
	query := `
		SELECT ` + reportColumns + `
		FROM facility_availability_reports
		WHERE facility_id = $1 AND (valid_until IS NULL OR valid_until >= $2)
		ORDER BY valid_from DESC, created_at DESC
		LIMIT 1`
	report, err := scanReport(r.db.QueryRow(query, facilityID, now))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying latest report for facility %d: %w", facilityID, err)
	}
	return report, nil
}

func (r *availabilityRepository) GetLatestReports(facilityIDs []int, now time.Time) (map[int]*db.FacilityAvailabilityReport, error) {
	reports := make(map[int]*db.FacilityAvailabilityReport, len(facilityIDs))
	if len(facilityIDs) == 0 {
		return reports, nil
	}
	query := `
		SELECT DISTINCT ON (facility_id) ` + reportColumns + `
		FROM facility_availability_reports
		WHERE facility_id = ANY($1) AND (valid_until IS NULL OR valid_until >= $2)
		ORDER BY facility_id, valid_from DESC, created_at DESC`
	rows, err := r.db.Query(query, pq.Array(facilityIDs), now)
	if err != nil {
		return nil, fmt.Errorf("error querying latest reports: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning availability report: %w", err)
		}
		reports[report.FacilityID] = report
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating report rows: %w", err)
	}
	return reports, nil
}

func (r *availabilityRepository) CreateNote(note *db.SupporterAvailabilityNote) error {
	query := `
		INSERT INTO supporter_availability_notes
		(facility_id, supporter_id, status, intent, note, context_summary, context_items, plan_id, client_id, expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(query,
		note.FacilityID,
		note.SupporterID,
		string(note.Status),
		note.Intent,
		note.Note,
		note.ContextSummary,
		pq.Array(nonNilItems(note.ContextItems)),
		note.PlanID,
		note.ClientID,
		note.ExpiresAt,
		note.CreatedAt,
		note.UpdatedAt,
	).Scan(&note.ID, &note.CreatedAt, &note.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error inserting availability note for facility %d: %w", note.FacilityID, err)
	}
	return nil
}

func (r *availabilityRepository) ListActiveNotes(facilityID int, now time.Time, limit int) ([]db.SupporterAvailabilityNote, error) {
	query := `
		SELECT ` + noteColumns + `
		FROM supporter_availability_notes
		WHERE facility_id = $1 AND expires_at >= $2
		ORDER BY created_at DESC
		LIMIT $3`
	rows, err := r.db.Query(query, facilityID, now, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying active notes for facility %d: %w", facilityID, err)
	}
	defer rows.Close()

	notes := []db.SupporterAvailabilityNote{}
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning availability note: %w", err)
		}
		notes = append(notes, *n)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating note rows: %w", err)
	}
	return notes, nil
}

// ListActiveNotesForFacilities returns at most limit active notes per facility, newest first.
func (r *availabilityRepository) ListActiveNotesForFacilities(facilityIDs []int, now time.Time, limit int) (map[int][]db.SupporterAvailabilityNote, error) {
	notes := make(map[int][]db.SupporterAvailabilityNote, len(facilityIDs))
	if len(facilityIDs) == 0 {
		return notes, nil
	}
	query := `
		WITH ranked AS (
			SELECT ` + noteColumns + `,
				row_number() OVER (PARTITION BY facility_id ORDER BY created_at DESC) AS rn
			FROM supporter_availability_notes
			WHERE facility_id = ANY($1) AND expires_at >= $2
		)
		SELECT ` + noteColumns + `
		FROM ranked
		WHERE rn <= $3
		ORDER BY facility_id, created_at DESC`
	rows, err := r.db.Query(query, pq.Array(facilityIDs), now, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying active notes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning availability note: %w", err)
		}
		notes[n.FacilityID] = append(notes[n.FacilityID], *n)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating note rows: %w", err)
	}
	return notes, nil
}
