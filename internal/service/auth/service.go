package auth

import (
	"context"
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/lumaclean/wfm-backend-go/internal/domain/auth"
	"github.com/lumaclean/wfm-backend-go/internal/domain/employee"
	"github.com/lumaclean/wfm-backend-go/internal/pkg/jwt"
	"github.com/lumaclean/wfm-backend-go/internal/pkg/slug"
)

type AuthServiceImpl struct {
	employees employee.Service
	jwtSvc    jwt.Service
	adminIDs  map[string]bool
}

// NewAuthService authenticates against the roster. adminIDs holds the
// normalized ids granted the admin role.
func NewAuthService(employees employee.Service, jwtSvc jwt.Service, adminIDs []string) auth.AuthService {
	admins := make(map[string]bool, len(adminIDs))
	for _, id := range adminIDs {
		admins[slug.EmployeeID(id)] = true
	}
	return &AuthServiceImpl{
		employees: employees,
		jwtSvc:    jwtSvc,
		adminIDs:  admins,
	}
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	emp, err := a.employees.GetByID(ctx, slug.EmployeeID(req.Name))
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	if !passwordMatches(emp.Password, req.Password) {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	role := auth.RoleEmployee
	if a.adminIDs[emp.ID] {
		role = auth.RoleAdmin
	}

	token, expiresAt, err := a.jwtSvc.GenerateAccessToken(emp.ID, emp.Name, role)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return auth.TokenResponse{
		AccessToken:          token,
		AccessTokenExpiresAt: expiresAt,
		EmployeeID:           emp.ID,
		Name:                 emp.Name,
		Role:                 role,
	}, nil
}

// passwordMatches accepts bcrypt hashes and, for roster records predating
// the hash migration, the stored plaintext via a constant-time compare.
func passwordMatches(stored, supplied string) bool {
	if stored == "" {
		return false
	}
	if strings.HasPrefix(stored, "$2a$") || strings.HasPrefix(stored, "$2b$") || strings.HasPrefix(stored, "$2y$") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(supplied)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(supplied)) == 1
}
