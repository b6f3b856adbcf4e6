package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/lumaclean/wfm-backend-go/internal/domain/auth"
	"github.com/lumaclean/wfm-backend-go/internal/domain/employee"
	"github.com/lumaclean/wfm-backend-go/internal/pkg/jwt"
)

const (
	testSecret    = "test-secret-key-for-jwt"
	testAccessExp = "1h"
)

type fakeEmployees struct {
	employee.Service
	byID map[string]employee.Employee
}

func (f *fakeEmployees) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	e, ok := f.byID[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func testRoster(t *testing.T) *fakeEmployees {
	hash, err := bcrypt.GenerateFromPassword([]byte("segreto123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	return &fakeEmployees{byID: map[string]employee.Employee{
		"Maria_Rossi": {ID: "Maria_Rossi", Name: "Maria Rossi", Password: string(hash)},
		"Anna_Bianchi": {
			ID:       "Anna_Bianchi",
			Name:     "Anna Bianchi",
			Password: "vecchia-password", // legacy record, never migrated
		},
		"Nessuna_Password": {ID: "Nessuna_Password", Name: "Nessuna Password"},
	}}
}

func newTestService(t *testing.T, adminIDs []string) auth.AuthService {
	jwtSvc := jwt.NewJWTService(testSecret, testAccessExp)
	return NewAuthService(testRoster(t), jwtSvc, adminIDs)
}

func TestLoginWithBcryptPassword(t *testing.T) {
	svc := newTestService(t, nil)

	resp, err := svc.Login(context.Background(), auth.LoginRequest{Name: "Maria Rossi", Password: "segreto123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "Maria_Rossi", resp.EmployeeID)
	assert.Equal(t, "Maria Rossi", resp.Name)
	assert.Equal(t, auth.RoleEmployee, resp.Role)
	assert.Greater(t, resp.AccessTokenExpiresAt, int64(0))
}

func TestLoginWithLegacyPlaintextPassword(t *testing.T) {
	svc := newTestService(t, nil)

	resp, err := svc.Login(context.Background(), auth.LoginRequest{Name: "Anna Bianchi", Password: "vecchia-password"})
	require.NoError(t, err)
	assert.Equal(t, "Anna_Bianchi", resp.EmployeeID)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	svc := newTestService(t, nil)

	_, err := svc.Login(context.Background(), auth.LoginRequest{Name: "Maria Rossi", Password: "sbagliata"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), auth.LoginRequest{Name: "Anna Bianchi", Password: "sbagliata"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginRejectsUnknownAndPasswordlessEmployees(t *testing.T) {
	svc := newTestService(t, nil)

	_, err := svc.Login(context.Background(), auth.LoginRequest{Name: "Sconosciuta", Password: "x"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	// An empty stored password never matches anything.
	_, err = svc.Login(context.Background(), auth.LoginRequest{Name: "Nessuna Password", Password: "x"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginGrantsAdminRole(t *testing.T) {
	// Admin ids are configured by display name; normalization matches.
	svc := newTestService(t, []string{"Maria Rossi"})

	resp, err := svc.Login(context.Background(), auth.LoginRequest{Name: "Maria Rossi", Password: "segreto123"})
	require.NoError(t, err)
	assert.Equal(t, auth.RoleAdmin, resp.Role)

	other, err := svc.Login(context.Background(), auth.LoginRequest{Name: "Anna Bianchi", Password: "vecchia-password"})
	require.NoError(t, err)
	assert.Equal(t, auth.RoleEmployee, other.Role)
}

func TestLoginValidatesRequest(t *testing.T) {
	svc := newTestService(t, nil)

	_, err := svc.Login(context.Background(), auth.LoginRequest{Name: "", Password: "x"})
	assert.Error(t, err)

	_, err = svc.Login(context.Background(), auth.LoginRequest{Name: "Maria Rossi", Password: ""})
	assert.Error(t, err)
}

func TestPasswordMatches(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	require.NoError(t, err)

	assert.True(t, passwordMatches(string(hash), "pw"))
	assert.False(t, passwordMatches(string(hash), "other"))
	assert.True(t, passwordMatches("plain", "plain"))
	assert.False(t, passwordMatches("plain", "Plain"))
	assert.False(t, passwordMatches("", ""))
}
