package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func okHandler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		require.True(t, ok)
		w.Header().Set("X-Role", claims.Role)
		w.WriteHeader(http.StatusOK)
	})
}

func tokenFor(t *testing.T, role string, ttl time.Duration) string {
	t.Helper()
	token, err := IssueToken(testSecret, Claims{UserID: 1, Email: "a@example.com", Role: role}, ttl, time.Now())
	require.NoError(t, err)
	return token
}

func serve(h http.Handler, authHeader string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	h.ServeHTTP(rr, req)
	return rr
}

func TestAuthenticate(t *testing.T) {
	h := Authenticate(testSecret)(okHandler(t))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"expired token", "Bearer " + tokenFor(t, RoleSupporter, -time.Minute), http.StatusUnauthorized},
		{"valid token", "Bearer " + tokenFor(t, RoleSupporter, time.Hour), http.StatusOK},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := serve(h, tc.header)
			assert.Equal(t, tc.want, rr.Code)
		})
	}
}

func TestAuthenticate_WrongSecret(t *testing.T) {
	token, err := IssueToken("other-secret", Claims{UserID: 1, Role: RoleClient}, time.Hour, time.Now())
	require.NoError(t, err)

	rr := serve(Authenticate(testSecret)(okHandler(t)), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRequireRole(t *testing.T) {
	h := Authenticate(testSecret)(RequireRole(RoleSupporter, RoleAdmin)(okHandler(t)))

	rr := serve(h, "Bearer "+tokenFor(t, RoleSupporter, time.Hour))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, RoleSupporter, rr.Header().Get("X-Role"))

	rr = serve(h, "Bearer "+tokenFor(t, RoleClient, time.Hour))
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestRequireRole_WithoutClaims(t *testing.T) {
	rr := serve(RequireRole(RoleAdmin)(okHandler(t)), "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestClaimsManagesFacility(t *testing.T) {
	seven := 7
	staff := &Claims{Role: RoleFacilityStaff, FacilityID: &seven}
	assert.True(t, staff.ManagesFacility(7))
	assert.False(t, staff.ManagesFacility(8))

	assert.True(t, (&Claims{Role: RoleAdmin}).ManagesFacility(8))
	assert.False(t, (&Claims{Role: RoleSupporter}).ManagesFacility(7))
	assert.False(t, (&Claims{Role: RoleFacilityStaff}).ManagesFacility(7))
}

func TestParseToken_RoundTripsClaims(t *testing.T) {
	seven := 7
	token, err := IssueToken(testSecret, Claims{UserID: 42, Email: "s@example.com", Role: RoleFacilityStaff, FacilityID: &seven}, time.Hour, time.Now())
	require.NoError(t, err)

	claims, err := ParseToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, RoleFacilityStaff, claims.Role)
	require.NotNil(t, claims.FacilityID)
	assert.Equal(t, 7, *claims.FacilityID)
}

func TestIssueToken_EmptySecret(t *testing.T) {
	_, err := IssueToken("", Claims{}, time.Hour, time.Now())
	assert.Error(t, err)
}
