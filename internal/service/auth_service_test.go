package service

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"carebridge/internal/auth"
	"carebridge/internal/db"
	"carebridge/internal/entities"
)

const testJWTSecret = "unit-test-secret"

func newAuthService(users *fakeUsers) *authService {
	svc := NewAuthService(users, newFakeFacilities(db.Facility{ID: 7, Name: "Aoba"}), testJWTSecret, time.Hour).(*authService)
	svc.now = time.Now
	return svc
}

func seedUser(t *testing.T, users *fakeUsers, email, password, role string, facilityID *int) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	users.byEmail[email] = &db.User{ID: 5, Email: email, PasswordHash: string(hash), Role: role, FacilityID: facilityID, DisplayName: "Tanaka"}
}

func TestLogin_IssuesTokenWithRole(t *testing.T) {
	users := newFakeUsers()
	seedUser(t, users, "staff@example.com", "correct horse", auth.RoleFacilityStaff, intPtr(7))
	svc := newAuthService(users)

	token, err := svc.Login(entities.LoginRequest{Email: "Staff@Example.com", Password: "correct horse"})
	require.NoError(t, err)

	claims, err := auth.ParseToken(testJWTSecret, token)
	require.NoError(t, err)
	assert.Equal(t, 5, claims.UserID)
	assert.Equal(t, auth.RoleFacilityStaff, claims.Role)
	assert.Equal(t, "Tanaka", claims.Name)
	require.NotNil(t, claims.FacilityID)
	assert.Equal(t, 7, *claims.FacilityID)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	users := newFakeUsers()
	seedUser(t, users, "s@example.com", "correct horse", auth.RoleSupporter, nil)
	svc := newAuthService(users)

	_, err := svc.Login(entities.LoginRequest{Email: "s@example.com", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, statusCode(t, err))

	_, err = svc.Login(entities.LoginRequest{Email: "nobody@example.com", Password: "whatever"})
	assert.Equal(t, http.StatusUnauthorized, statusCode(t, err))

	_, err = svc.Login(entities.LoginRequest{Email: "not-an-email", Password: "x"})
	assert.Equal(t, http.StatusBadRequest, statusCode(t, err))
}

func TestRegister(t *testing.T) {
	users := newFakeUsers()
	svc := newAuthService(users)

	user, err := svc.Register(entities.RegisterRequest{
		Email:       "New@Example.com",
		Password:    "long enough",
		Role:        auth.RoleSupporter,
		DisplayName: " Sato ",
		FacilityID:  intPtr(7),
	})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", user.Email)
	assert.Equal(t, "Sato", user.DisplayName)
	assert.Nil(t, user.FacilityID, "only staff accounts are bound to a facility")

	_, err = svc.Register(entities.RegisterRequest{
		Email: "new@example.com", Password: "long enough", Role: auth.RoleClient, DisplayName: "Dup",
	})
	assert.Equal(t, http.StatusConflict, statusCode(t, err))
}

func TestRegister_FacilityStaff(t *testing.T) {
	svc := newAuthService(newFakeUsers())

	_, err := svc.Register(entities.RegisterRequest{
		Email: "a@example.com", Password: "long enough", Role: auth.RoleFacilityStaff, DisplayName: "A",
	})
	assert.Equal(t, http.StatusBadRequest, statusCode(t, err))

	_, err = svc.Register(entities.RegisterRequest{
		Email: "a@example.com", Password: "long enough", Role: auth.RoleFacilityStaff, DisplayName: "A", FacilityID: intPtr(99),
	})
	assert.Equal(t, http.StatusBadRequest, statusCode(t, err))

	user, err := svc.Register(entities.RegisterRequest{
		Email: "a@example.com", Password: "long enough", Role: auth.RoleFacilityStaff, DisplayName: "A", FacilityID: intPtr(7),
	})
	require.NoError(t, err)
	require.NotNil(t, user.FacilityID)
	assert.Equal(t, 7, *user.FacilityID)
}

func TestRegister_AdminNotSelfService(t *testing.T) {
	svc := newAuthService(newFakeUsers())

	_, err := svc.Register(entities.RegisterRequest{
		Email: "root@example.com", Password: "long enough", Role: auth.RoleAdmin, DisplayName: "Root",
	})
	assert.Equal(t, http.StatusBadRequest, statusCode(t, err))
}
