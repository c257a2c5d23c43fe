package middleware

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"mcacrm/internal/models"
	"mcacrm/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func protectedApp(auth *AuthMiddleware) *fiber.App {
	app := fiber.New()
	app.Use(auth.Handler)
	app.Get("/read", auth.HasPermission(models.PermissionRead), func(c *fiber.Ctx) error {
		return c.SendString(utils.Actor(c))
	})
	app.Post("/fund", auth.HasPermission(models.PermissionFunding), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	return app
}

func token(t *testing.T, role string) string {
	t.Helper()
	tok, err := utils.GenerateOperatorToken(secret, "ops@example.com", "Ops", role, time.Hour)
	require.NoError(t, err)
	return "Bearer " + tok
}

func TestAuthMiddleware(t *testing.T) {
	app := protectedApp(NewAuthMiddleware(secret))

	tests := []struct {
		name   string
		method string
		path   string
		header string
		status int
	}{
		{"missing header", "GET", "/read", "", fiber.StatusUnauthorized},
		{"not bearer", "GET", "/read", "Basic abc", fiber.StatusUnauthorized},
		{"garbage token", "GET", "/read", "Bearer abc", fiber.StatusUnauthorized},
		{"viewer reads", "GET", "/read", token(t, models.RoleReadOnly), fiber.StatusOK},
		{"viewer cannot fund", "POST", "/fund", token(t, models.RoleReadOnly), fiber.StatusForbidden},
		{"collections cannot fund", "POST", "/fund", token(t, models.RoleCollections), fiber.StatusForbidden},
		{"underwriter funds", "POST", "/fund", token(t, models.RoleUnderwriter), fiber.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}

	req := httptest.NewRequest("GET", "/read", nil)
	req.Header.Set("Authorization", token(t, models.RoleAdmin))
	resp, err := app.Test(req)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "ops@example.com", string(body))
}

func TestAuthMiddleware_DisabledWithoutSecret(t *testing.T) {
	app := protectedApp(NewAuthMiddleware(""))

	resp, err := app.Test(httptest.NewRequest("POST", "/fund", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/read", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, utils.SystemActor, string(body))
}

func TestHTTPMetricsAndRecovery(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	app := fiber.New()
	app.Use(RequestID(), Recovery(), m.Handler)
	app.Get("/deals/:id", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/boom", func(c *fiber.Ctx) error { panic("boom") })
	app.Get("/metrics", PrometheusHandler(reg))

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest("GET", "/deals/7", nil))
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))
	}
	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/deals/:id", "200")))

	resp, err = app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.True(t, strings.Contains(string(body), "mcacrm_http_requests_total"))
}
