package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"carebridge/internal/auth"
	"carebridge/internal/db"
	"carebridge/internal/entities"
	apperrors "carebridge/internal/errors"
	"carebridge/internal/repository"
)

type AuthService interface {
	Login(req entities.LoginRequest) (string, error)
	Register(req entities.RegisterRequest) (*entities.UserResponse, error)
}

type authService struct {
	users      repository.UserRepository
	facilities repository.FacilityRepository
	secret     string
	ttl        time.Duration
	now        func() time.Time
}

func NewAuthService(users repository.UserRepository, facilities repository.FacilityRepository, secret string, ttl time.Duration) AuthService {
	return &authService{
		users:      users,
		facilities: facilities,
		secret:     secret,
		ttl:        ttl,
		now:        time.Now,
	}
}

func (s *authService) Login(req entities.LoginRequest) (string, error) {
	if err := validateRequest(req); err != nil {
		return "", err
	}
	user, err := s.users.GetByEmail(strings.ToLower(req.Email))
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", apperrors.ErrUnauthorized("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return "", apperrors.ErrUnauthorized("invalid credentials")
	}

	return auth.IssueToken(s.secret, auth.Claims{
		UserID:     user.ID,
		Email:      user.Email,
		Name:       user.DisplayName,
		Role:       user.Role,
		FacilityID: user.FacilityID,
	}, s.ttl, s.now())
}

// Register creates a supporter, client or facility staff account. Staff
// accounts are bound to an existing facility.
func (s *authService) Register(req entities.RegisterRequest) (*entities.UserResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	user := &db.User{
		Email:       strings.ToLower(req.Email),
		Role:        req.Role,
		DisplayName: strings.TrimSpace(req.DisplayName),
	}

	if req.Role == auth.RoleFacilityStaff {
		if req.FacilityID == nil {
			return nil, apperrors.ErrBadRequest("facility_id is required for facility staff")
		}
		if _, err := s.facilities.GetFacilityByID(*req.FacilityID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, apperrors.ErrBadRequest(fmt.Sprintf("facility %d does not exist", *req.FacilityID))
			}
			return nil, err
		}
		user.FacilityID = req.FacilityID
	}

	if err := s.users.CreateUser(user, req.Password); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, apperrors.ErrConflict("email already registered")
		}
		return nil, err
	}

	return &entities.UserResponse{
		ID:          user.ID,
		Email:       user.Email,
		Role:        user.Role,
		DisplayName: user.DisplayName,
		FacilityID:  user.FacilityID,
	}, nil
}
