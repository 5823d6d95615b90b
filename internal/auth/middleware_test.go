package auth_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/menu-service/internal/auth"
	"github.com/spec-kit/menu-service/internal/domain"
	apperrors "github.com/spec-kit/menu-service/pkg/util"
)

// stubUserRepo satisfies repository.UserRepository with an in-memory map.
type stubUserRepo struct {
	users  map[string]*domain.User
	getErr error
	lookups int
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	repo := &stubUserRepo{users: make(map[string]*domain.User)}
	for _, user := range users {
		repo.users[user.ID] = user
	}
	return repo
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.users[user.ID] = user
	return nil
}

func (r *stubUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.lookups++
	if r.getErr != nil {
		return nil, r.getErr
	}
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (r *stubUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *stubUserRepo) List(_ context.Context, _, _ int) ([]domain.User, error) {
	users := make([]domain.User, 0, len(r.users))
	for _, user := range r.users {
		users = append(users, *user)
	}
	return users, nil
}

func (r *stubUserRepo) SetActive(_ context.Context, id string, active bool) error {
	user, ok := r.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.Active = active
	return nil
}

// newTestApp mirrors the service's central error translation so middleware
// failures surface with the production status and body shape.
func newTestApp() *fiber.App {
	return fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{
				"success": false,
				"message": domainErr.Message,
			})
		},
	})
}

type identityEcho struct {
	Authenticated bool   `json:"authenticated"`
	ID            string `json:"id,omitempty"`
	Role          string `json:"role,omitempty"`
	Email         string `json:"email,omitempty"`
}

func echoIdentity(c *fiber.Ctx) error {
	if identity, ok := auth.IdentityFromContext(c); ok {
		return c.JSON(identityEcho{Authenticated: true, ID: identity.ID, Role: string(identity.Role), Email: identity.Email})
	}
	return c.JSON(identityEcho{Authenticated: false})
}

type errorBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func doRequest(t *testing.T, app *fiber.App, authorization string) (*http.Response, []byte) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/resource", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func decodeError(t *testing.T, body []byte) errorBody {
	t.Helper()
	var parsed errorBody
	require.NoError(t, json.Unmarshal(body, &parsed))
	return parsed
}

func TestAuthenticationAttachesFreshIdentity(t *testing.T) {
	user := &domain.User{ID: "u1", Email: "u1@example.com", Role: domain.RoleCustomer, Active: true}
	repo := newStubUserRepo(user)
	tm := auth.NewTokenManager(testSecret, time.Hour)
	mw := auth.NewMiddleware(tm, repo)

	app := newTestApp()
	app.Get("/resource", mw.Handle, echoIdentity)

	token, _, err := tm.IssueSession(user)
	require.NoError(t, err)

	resp, body := doRequest(t, app, "Bearer "+token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var echo identityEcho
	require.NoError(t, json.Unmarshal(body, &echo))
	assert.True(t, echo.Authenticated)
	assert.Equal(t, "u1", echo.ID)
	assert.Equal(t, "customer", echo.Role)
	assert.Equal(t, "u1@example.com", echo.Email)
	assert.Equal(t, 1, repo.lookups, "identity must be resolved per request")
}

func TestAuthenticationMissingOrMalformedHeader(t *testing.T) {
	repo := newStubUserRepo()
	tm := auth.NewTokenManager(testSecret, time.Hour)
	mw := auth.NewMiddleware(tm, repo)

	app := newTestApp()
	app.Get("/resource", mw.Handle, echoIdentity)

	cases := []string{
		"",
		"Bearer",
		"bearer sometoken",
		"Token sometoken",
		"Bearer ",
	}
	for _, header := range cases {
		resp, body := doRequest(t, app, header)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "header %q", header)
		assert.Equal(t, "No token provided", decodeError(t, body).Message, "header %q", header)
	}
	assert.Zero(t, repo.lookups, "no lookup may happen before a token decodes")
}

func TestAuthenticationInvalidToken(t *testing.T) {
	repo := newStubUserRepo()
	tm := auth.NewTokenManager(testSecret, time.Hour)
	mw := auth.NewMiddleware(tm, repo)

	app := newTestApp()
	app.Get("/resource", mw.Handle, echoIdentity)

	resp, body := doRequest(t, app, "Bearer not-a-real-token")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid token", decodeError(t, body).Message)
}

func TestAuthenticationExpiredToken(t *testing.T) {
	user := &domain.User{ID: "u1", Role: domain.RoleCustomer, Active: true}
	repo := newStubUserRepo(user)
	tm := auth.NewTokenManager(testSecret, time.Hour)
	mw := auth.NewMiddleware(tm, repo)

	app := newTestApp()
	app.Get("/resource", mw.Handle, echoIdentity)

	token := signRaw(t, testSecret, expiredSessionClaims("u1"))

	resp, body := doRequest(t, app, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Token expired", decodeError(t, body).Message)
	assert.Zero(t, repo.lookups)
}

func TestAuthenticationRejectsResetTokenKind(t *testing.T) {
	user := &domain.User{ID: "u1", Email: "u1@example.com", Role: domain.RoleCustomer, Active: true}
	repo := newStubUserRepo(user)
	tm := auth.NewTokenManager(testSecret, time.Hour)
	mw := auth.NewMiddleware(tm, repo)

	app := newTestApp()
	app.Get("/resource", mw.Handle, echoIdentity)

	token, _, err := tm.IssueReset(user)
	require.NoError(t, err)

	resp, body := doRequest(t, app, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid token", decodeError(t, body).Message)
	assert.Zero(t, repo.lookups, "kind check happens before any lookup")
}

func TestAuthenticationUserNoLongerExists(t *testing.T) {
	user := &domain.User{ID: "ghost", Role: domain.RoleCustomer, Active: true}
	repo := newStubUserRepo()
	tm := auth.NewTokenManager(testSecret, time.Hour)
	mw := auth.NewMiddleware(tm, repo)

	app := newTestApp()
	app.Get("/resource", mw.Handle, echoIdentity)

	token, _, err := tm.IssueSession(user)
	require.NoError(t, err)

	resp, body := doRequest(t, app, "Bearer "+token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "User not found", decodeError(t, body).Message)
}

func TestAuthenticationDeactivatedAccount(t *testing.T) {
	user := &domain.User{ID: "u1", Role: domain.RoleCustomer, Active: false}
	repo := newStubUserRepo(user)
	tm := auth.NewTokenManager(testSecret, time.Hour)
	mw := auth.NewMiddleware(tm, repo)

	app := newTestApp()
	app.Get("/resource", mw.Handle, echoIdentity)

	token, _, err := tm.IssueSession(&domain.User{ID: "u1", Role: domain.RoleCustomer})
	require.NoError(t, err)

	resp, body := doRequest(t, app, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Account is deactivated", decodeError(t, body).Message)
}

func TestAuthenticationStoreFailureIsNotMasked(t *testing.T) {
	repo := newStubUserRepo()
	repo.getErr = errors.New("connection refused")
	tm := auth.NewTokenManager(testSecret, time.Hour)
	mw := auth.NewMiddleware(tm, repo)

	app := newTestApp()
	app.Get("/resource", mw.Handle, echoIdentity)

	token, _, err := tm.IssueSession(&domain.User{ID: "u1", Role: domain.RoleCustomer})
	require.NoError(t, err)

	resp, _ := doRequest(t, app, "Bearer "+token)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestOptionalAuthenticationNeverFails(t *testing.T) {
	inactive := &domain.User{ID: "off", Role: domain.RoleCustomer, Active: false}
	repo := newStubUserRepo(inactive)
	tm := auth.NewTokenManager(testSecret, time.Hour)
	mw := auth.NewMiddleware(tm, repo)

	app := newTestApp()
	app.Get("/resource", mw.Optional, echoIdentity)

	inactiveToken, _, err := tm.IssueSession(&domain.User{ID: "off", Role: domain.RoleCustomer})
	require.NoError(t, err)

	cases := []string{
		"",
		"Bearer garbage",
		"Bearer " + signRaw(t, testSecret, expiredSessionClaims("off")),
		"Bearer " + inactiveToken,
	}
	for _, header := range cases {
		resp, body := doRequest(t, app, header)
		require.Equal(t, http.StatusOK, resp.StatusCode, "header %q", header)

		var echo identityEcho
		require.NoError(t, json.Unmarshal(body, &echo))
		assert.False(t, echo.Authenticated, "header %q", header)
	}
}

func TestOptionalAuthenticationAttachesValidIdentity(t *testing.T) {
	user := &domain.User{ID: "u2", Email: "u2@example.com", Role: domain.RoleRestaurantOwner, Active: true}
	repo := newStubUserRepo(user)
	tm := auth.NewTokenManager(testSecret, time.Hour)
	mw := auth.NewMiddleware(tm, repo)

	app := newTestApp()
	app.Get("/resource", mw.Optional, echoIdentity)

	token, _, err := tm.IssueSession(user)
	require.NoError(t, err)

	resp, body := doRequest(t, app, "Bearer "+token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var echo identityEcho
	require.NoError(t, json.Unmarshal(body, &echo))
	assert.True(t, echo.Authenticated)
	assert.Equal(t, "u2", echo.ID)
	assert.Equal(t, "restaurant_owner", echo.Role)
}
