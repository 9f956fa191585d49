package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atolyeos/atolye-api/internal/domain/entity"
	apphttp "github.com/atolyeos/atolye-api/internal/interfaces/http"
	pkgjwt "github.com/atolyeos/atolye-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Test helpers
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "atolyeos-test"
	testExpMin    = 60
)

// buildTestApp wires a minimal Fiber app with AuthMiddleware + RequireRole in
// front of a dummy handler returning the locals it sees.
func buildTestApp(allowedRoles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"user_id": apphttp.GetUserID(c),
				"role":    apphttp.GetRole(c),
			})
		},
	)
	return app
}

func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, role, testIssuer, testExpMin)
	require.NoError(t, err, "token generation must succeed")
	return "Bearer " + tok
}

func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

// ──────────────────────────────────────────────────────────────────────────────
// RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_AdminOnAdminRoute(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)
	resp := doRequest(t, app, tokenForRole(t, entity.RoleAdmin))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireRole_WorkerOnAdminRoute(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)
	resp := doRequest(t, app, tokenForRole(t, entity.RoleWorker))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "FORBIDDEN", body["code"])
}

func TestRequireRole_MultipleAllowedRoles(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin, entity.RoleWorker)
	resp := doRequest(t, app, tokenForRole(t, entity.RoleWorker))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)
	resp := doRequest(t, app, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "MISSING_TOKEN", body["code"])
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)
	resp := doRequest(t, app, "Token abc.def.ghi")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "INVALID_TOKEN", body["code"])
}

func TestAuthMiddleware_GarbageToken(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)
	resp := doRequest(t, app, "Bearer not-a-jwt")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	tok, err := pkgjwt.Generate("some-other-secret", testUserID, entity.RoleAdmin, testIssuer, testExpMin)
	require.NoError(t, err)

	app := buildTestApp(entity.RoleAdmin)
	resp := doRequest(t, app, "Bearer "+tok)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, entity.RoleAdmin, testIssuer, -5)
	require.NoError(t, err)

	app := buildTestApp(entity.RoleAdmin)
	resp := doRequest(t, app, "Bearer "+tok)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_LoadsClaimsIntoLocals(t *testing.T) {
	app := buildTestApp(entity.RoleWorker)
	resp := doRequest(t, app, tokenForRole(t, entity.RoleWorker))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, entity.RoleWorker, body["role"])
}

// ──────────────────────────────────────────────────────────────────────────────
// pkg/jwt round trip
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_GenerateParseRoundTrip(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, entity.RoleAdmin, testIssuer, testExpMin)
	require.NoError(t, err)

	userID, role, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, testUserID, userID)
	assert.Equal(t, entity.RoleAdmin, role)
}

func TestJWT_EmptySecretRejected(t *testing.T) {
	_, err := pkgjwt.Generate("", testUserID, entity.RoleAdmin, testIssuer, testExpMin)
	assert.Error(t, err)

	_, _, err = pkgjwt.Parse("", "whatever")
	assert.Error(t, err)
}
