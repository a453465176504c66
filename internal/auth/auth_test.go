package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/hr-docs/internal/domain"
	apperrors "github.com/spec-kit/hr-docs/pkg/util/errorutil"
)

type stubUsers map[string]*domain.User

func (s stubUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := s[id]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func (s stubUsers) GetByUsername(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrNotFound
}

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", 0)

	token, meta, err := tm.GenerateToken(&domain.User{ID: "u1", Username: "ana", Role: domain.UserRoleOperator})
	require.NoError(t, err)
	assert.Equal(t, time.Hour, meta.ExpiresAt.Sub(meta.IssuedAt))

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.SubjectID)
	assert.Equal(t, domain.UserRoleOperator, claims.Role)

	_, err = NewTokenManager("other", 60).ParseToken(token)
	assert.Error(t, err)
}

func TestTokenExpires(t *testing.T) {
	tm := NewTokenManager("secret", 1)
	issued := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)
	tm.now = func() time.Time { return issued }

	token, _, err := tm.GenerateToken(&domain.User{ID: "u1"})
	require.NoError(t, err)

	tm.now = func() time.Time { return issued.Add(2 * time.Minute) }
	_, err = tm.ParseToken(token)
	assert.Error(t, err)
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("s3cret", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NoError(t, ComparePassword(hash, "s3cret"))
	assert.Error(t, ComparePassword(hash, "other"))

	hash, err = HashPassword("s3cret", 99)
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

func newProtectedApp(tm *TokenManager, users stubUsers, roles ...domain.UserRole) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.SendStatus(apperrors.ToDomainError(err).HTTPStatus)
		},
	})
	mw := NewAuthMiddleware(tm, users)
	app.Get("/private", mw.Handle, RequireRole(roles...), func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return c.SendStatus(http.StatusTeapot)
		}
		return c.SendString(principal.User.Username)
	})
	return app
}

func TestMiddleware(t *testing.T) {
	tm := NewTokenManager("secret", 60)
	users := stubUsers{
		"u1": {ID: "u1", Username: "admin", Role: domain.UserRoleAdmin, Active: true},
		"u2": {ID: "u2", Username: "op", Role: domain.UserRoleOperator, Active: true},
		"u3": {ID: "u3", Username: "gone", Role: domain.UserRoleAdmin, Active: false},
	}
	tokenFor := func(id string) string {
		token, _, err := tm.GenerateToken(users[id])
		require.NoError(t, err)
		return "Bearer " + token
	}
	ghost, _, err := tm.GenerateToken(&domain.User{ID: "u9"})
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		roles  []domain.UserRole
		status int
	}{
		{"missing header", "", nil, http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", nil, http.StatusUnauthorized},
		{"garbage token", "Bearer abc", nil, http.StatusUnauthorized},
		{"unknown user", "Bearer " + ghost, nil, http.StatusUnauthorized},
		{"inactive user", tokenFor("u3"), nil, http.StatusUnauthorized},
		{"any role", tokenFor("u2"), nil, http.StatusOK},
		{"role allowed", tokenFor("u1"), []domain.UserRole{domain.UserRoleAdmin}, http.StatusOK},
		{"role denied", tokenFor("u2"), []domain.UserRole{domain.UserRoleAdmin}, http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := newProtectedApp(tm, users, tc.roles...).Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}
