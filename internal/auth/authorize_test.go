package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/menu-service/internal/auth"
	"github.com/spec-kit/menu-service/internal/domain"
)

func okHandler(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true})
}

// guardedApp wires the real authentication middleware in front of the guard
// under test, the same composition the router uses.
func guardedApp(t *testing.T, users *stubUserRepo, path string, guard fiber.Handler) (*fiber.App, *auth.TokenManager) {
	t.Helper()
	tm := auth.NewTokenManager(testSecret, time.Hour)
	mw := auth.NewMiddleware(tm, users)

	app := newTestApp()
	app.Get(path, mw.Handle, guard, okHandler)
	return app, tm
}

func bearerFor(t *testing.T, tm *auth.TokenManager, user *domain.User) string {
	t.Helper()
	token, _, err := tm.IssueSession(user)
	require.NoError(t, err)
	return "Bearer " + token
}

func get(t *testing.T, app *fiber.App, path, authorization string) (*http.Response, errorBody) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var body errorBody
	_ = json.NewDecoder(resp.Body).Decode(&body)
	return resp, body
}

func TestRequireRolesAllowsListedRole(t *testing.T) {
	admin := &domain.User{ID: "a1", Role: domain.RoleAdmin, Active: true}
	app, tm := guardedApp(t, newStubUserRepo(admin), "/admin", auth.RequireRoles(domain.RoleAdmin))

	resp, _ := get(t, app, "/admin", bearerFor(t, tm, admin))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRolesRejectsUnlistedRole(t *testing.T) {
	customer := &domain.User{ID: "c1", Role: domain.RoleCustomer, Active: true}
	app, tm := guardedApp(t, newStubUserRepo(customer), "/admin", auth.RequireRoles(domain.RoleAdmin))

	resp, body := get(t, app, "/admin", bearerFor(t, tm, customer))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Access denied. Insufficient permissions.", body.Message)
}

func TestRequireRolesWithoutIdentity(t *testing.T) {
	app := newTestApp()
	app.Get("/admin", auth.RequireRoles(domain.RoleAdmin), okHandler)

	resp, body := get(t, app, "/admin", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Authentication required", body.Message)
}

func TestRequireOwnershipCustomerSelfAccess(t *testing.T) {
	customer := &domain.User{ID: "c1", Role: domain.RoleCustomer, Active: true}
	app, tm := guardedApp(t, newStubUserRepo(customer), "/users/:userId", auth.RequireOwnership("userId"))

	resp, _ := get(t, app, "/users/c1", bearerFor(t, tm, customer))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireOwnershipCustomerForeignAccess(t *testing.T) {
	customer := &domain.User{ID: "c1", Role: domain.RoleCustomer, Active: true}
	app, tm := guardedApp(t, newStubUserRepo(customer), "/users/:userId", auth.RequireOwnership("userId"))

	resp, body := get(t, app, "/users/c2", bearerFor(t, tm, customer))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "You can only access your own resources.", body.Message)
}

func TestRequireOwnershipAdminBypass(t *testing.T) {
	admin := &domain.User{ID: "a1", Role: domain.RoleAdmin, Active: true}
	app, tm := guardedApp(t, newStubUserRepo(admin), "/users/:userId", auth.RequireOwnership("userId"))

	resp, _ := get(t, app, "/users/anyone-else", bearerFor(t, tm, admin))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireOwnershipOwnerNeedsResourceID(t *testing.T) {
	owner := &domain.User{ID: "o1", Role: domain.RoleRestaurantOwner, Active: true}
	repo := newStubUserRepo(owner)

	// Route without the expected parameter: owners must address a concrete
	// resource, so the guard rejects before the handler runs.
	app, tm := guardedApp(t, repo, "/restaurants", auth.RequireOwnership("id"))
	resp, body := get(t, app, "/restaurants", bearerFor(t, tm, owner))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Resource ID required", body.Message)

	appWithID, tmWithID := guardedApp(t, repo, "/restaurants/:id", auth.RequireOwnership("id"))
	respWithID, _ := get(t, appWithID, "/restaurants/r1", bearerFor(t, tmWithID, owner))
	assert.Equal(t, http.StatusOK, respWithID.StatusCode)
}

func TestRequireOwnershipWithoutIdentity(t *testing.T) {
	app := newTestApp()
	app.Get("/users/:userId", auth.RequireOwnership("userId"), okHandler)

	resp, body := get(t, app, "/users/c1", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Authentication required", body.Message)
}
