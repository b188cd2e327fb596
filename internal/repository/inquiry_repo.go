package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"carebridge/internal/db"
)

// InquiryFilter restricts ListInquiries; zero values match everything.
type InquiryFilter struct {
	FacilityID int
	SenderID   int
}

type InquiryRepository interface {
	CreateInquiry(inquiry *db.Inquiry) error
	GetInquiryByID(id int) (*db.Inquiry, error)
	ListInquiries(filter InquiryFilter) ([]db.Inquiry, error)
	UpdateInquiryStatus(id int, status string, updatedAt time.Time) error
}

type inquiryRepository struct {
	db *sql.DB
}

func NewInquiryRepository(db *sql.DB) InquiryRepository {
	return &inquiryRepository{db: db}
}

const inquiryColumns = `id, code, facility_id, sender_id, subject, body, status, created_at, updated_at`

func scanInquiry(row rowScanner) (*db.Inquiry, error) {
	var i db.Inquiry
	err := row.Scan(&i.ID, &i.Code, &i.FacilityID, &i.SenderID, &i.Subject, &i.Body, &i.Status, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *inquiryRepository) CreateInquiry(inquiry *db.Inquiry) error {
	query := `
		INSERT INTO inquiries (code, facility_id, sender_id, subject, body, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := r.db.QueryRow(query,
		inquiry.Code,
		inquiry.FacilityID,
		inquiry.SenderID,
		inquiry.Subject,
		inquiry.Body,
		inquiry.Status,
		inquiry.CreatedAt,
		inquiry.UpdatedAt,
	).Scan(&inquiry.ID)
	if err != nil {
		return fmt.Errorf("error inserting inquiry %s: %w", inquiry.Code, err)
	}
	return nil
}

func (r *inquiryRepository) GetInquiryByID(id int) (*db.Inquiry, error) {
	inquiry, err := scanInquiry(r.db.QueryRow(`SELECT `+inquiryColumns+` FROM inquiries WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("inquiry %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("error querying inquiry %d: %w", id, err)
	}
	return inquiry, nil
}

func (r *inquiryRepository) ListInquiries(filter InquiryFilter) ([]db.Inquiry, error) {
	query := `SELECT ` + inquiryColumns + ` FROM inquiries WHERE 1=1`
	args := []interface{}{}
	idx := 1

	if filter.FacilityID != 0 {
		query += " AND facility_id = $" + strconv.Itoa(idx)
		args = append(args, filter.FacilityID)
		idx++
	}
	if filter.SenderID != 0 {
		query += " AND sender_id = $" + strconv.Itoa(idx)
		args = append(args, filter.SenderID)
		idx++
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing inquiries: %w", err)
	}
	defer rows.Close()

	inquiries := []db.Inquiry{}
	for rows.Next() {
		i, err := scanInquiry(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning inquiry: %w", err)
		}
		inquiries = append(inquiries, *i)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating inquiry rows: %w", err)
	}
	return inquiries, nil
}

func (r *inquiryRepository) UpdateInquiryStatus(id int, status string, updatedAt time.Time) error {
	result, err := r.db.Exec(`UPDATE inquiries SET status = $1, updated_at = $2 WHERE id = $3`, status, updatedAt, id)
	if err != nil {
		return fmt.Errorf("error updating inquiry %d: %w", id, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading rows affected for inquiry %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("inquiry %d: %w", id, ErrNotFound)
	}
	return nil
}
