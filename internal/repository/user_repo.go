package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"carebridge/internal/db"
)

// ErrEmailTaken is returned by CreateUser when the email is already registered.
var ErrEmailTaken = errors.New("email already registered")

type UserRepository interface {
	GetByEmail(email string) (*db.User, error)
	CreateUser(user *db.User, password string) error
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

// GetByEmail returns nil without error when no user has that email.
func (r *userRepository) GetByEmail(email string) (*db.User, error) {
	var (
		user       db.User
		facilityID sql.NullInt64
	)
	err := r.db.QueryRow(`
		SELECT id, email, password_hash, role, display_name, facility_id, created_at
		FROM users WHERE email = $1`, email).
		Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Role, &user.DisplayName, &facilityID, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	user.FacilityID = nullIntPtr(facilityID)
	return &user, nil
}

func (r *userRepository) CreateUser(user *db.User, password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hashedPassword)

	query := `
		INSERT INTO users (email, password_hash, role, display_name, facility_id)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO NOTHING
		RETURNING id, created_at`
	err = r.db.QueryRow(query, user.Email, user.PasswordHash, user.Role, user.DisplayName, user.FacilityID).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrEmailTaken
		}
		return fmt.Errorf("error inserting user %s: %w", user.Email, err)
	}
	return nil
}
