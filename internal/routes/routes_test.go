package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mcacrm/internal/config"
	"mcacrm/internal/models"
	"mcacrm/internal/testutil"
	"mcacrm/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "routes-test-secret"

type apiResponse struct {
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

func newApp(t *testing.T) *fiber.App {
	t.Helper()
	app := fiber.New()
	err := SetupRoutes(app, Dependencies{
		DB:     testutil.NewDB(t),
		Config: &config.Config{JWTSecret: testSecret},
	})
	require.NoError(t, err)
	return app
}

func token(t *testing.T, role string) string {
	t.Helper()
	tok, err := utils.GenerateOperatorToken(testSecret, role+"@example.com", role, role, time.Hour)
	require.NoError(t, err)
	return tok
}

func call(t *testing.T, app *fiber.App, method, path, tok string, body interface{}) (int, apiResponse) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out apiResponse
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &out)
	}
	return resp.StatusCode, out
}

func decodeData(t *testing.T, r apiResponse, dest interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.Data, dest), "body: %s", r.Data)
}

func TestHealthAndMetrics(t *testing.T) {
	app := newApp(t)

	status, _ := call(t, app, http.MethodGet, "/health", "", nil)
	assert.Equal(t, fiber.StatusOK, status)

	status, _ = call(t, app, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, fiber.StatusOK, status)
}

func TestPermissions(t *testing.T) {
	app := newApp(t)
	merchant := map[string]interface{}{"company_name": "Acme Bakery"}

	tests := []struct {
		name   string
		method string
		path   string
		role   string
		body   interface{}
		want   int
	}{
		{"no token", http.MethodGet, "/api/v1/merchants", "", nil, fiber.StatusUnauthorized},
		{"viewer reads", http.MethodGet, "/api/v1/merchants", models.RoleReadOnly, nil, fiber.StatusOK},
		{"viewer cannot write", http.MethodPost, "/api/v1/merchants", models.RoleReadOnly, merchant, fiber.StatusForbidden},
		{"collections writes", http.MethodPost, "/api/v1/merchants", models.RoleCollections, merchant, fiber.StatusCreated},
		{"collections cannot fund", http.MethodPost, "/api/v1/deals", models.RoleCollections, map[string]interface{}{}, fiber.StatusForbidden},
		{"underwriter recomputes", http.MethodPost, "/api/v1/deals/recompute", models.RoleUnderwriter, nil, fiber.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := ""
			if tt.role != "" {
				tok = token(t, tt.role)
			}
			status, _ := call(t, app, tt.method, tt.path, tok, tt.body)
			assert.Equal(t, tt.want, status)
		})
	}
}

func TestFundingFlow(t *testing.T) {
	app := newApp(t)
	tok := token(t, models.RoleAdmin)

	status, res := call(t, app, http.MethodPost, "/api/v1/merchants", tok,
		map[string]interface{}{"company_name": "Acme Bakery"})
	require.Equal(t, fiber.StatusCreated, status, res.Error)
	var merchant models.Merchant
	decodeData(t, res, &merchant)

	status, res = call(t, app, http.MethodPost, fmt.Sprintf("/api/v1/merchants/%d/offers", merchant.ID), tok,
		map[string]interface{}{
			"advance":           "10000",
			"factor":            "1.3",
			"upfront_fees":      "500",
			"payment_frequency": "daily",
			"number_of_periods": 20,
		})
	require.Equal(t, fiber.StatusCreated, status, res.Error)
	var offer models.Offer
	decodeData(t, res, &offer)
	assert.Equal(t, "13000.00", offer.RTR.StringFixed(2))

	status, res = call(t, app, http.MethodPost, fmt.Sprintf("/api/v1/offers/%d/status", offer.ID), tok,
		map[string]string{"status": models.OfferStatusSelected})
	require.Equal(t, fiber.StatusOK, status, res.Error)

	status, res = call(t, app, http.MethodPost, "/api/v1/deals", tok,
		map[string]interface{}{"merchant_id": merchant.ID, "offer_id": offer.ID})
	require.Equal(t, fiber.StatusCreated, status, res.Error)
	var deal models.Deal
	decodeData(t, res, &deal)
	assert.Equal(t, "13000.00", deal.BalanceRemaining.StringFixed(2))

	status, res = call(t, app, http.MethodPost, "/api/v1/payments", tok,
		map[string]interface{}{
			"deal_id": deal.ID,
			"date":    time.Now().UTC().Format("2006-01-02"),
			"amount":  "650",
			"type":    models.PaymentTypeACH,
		})
	require.Equal(t, fiber.StatusCreated, status, res.Error)

	status, res = call(t, app, http.MethodGet, fmt.Sprintf("/api/v1/deals/%d", deal.ID), tok, nil)
	require.Equal(t, fiber.StatusOK, status, res.Error)
	decodeData(t, res, &deal)
	assert.Equal(t, "12350.00", deal.BalanceRemaining.StringFixed(2))
	assert.Equal(t, 19, deal.PaymentsRemaining)

	status, res = call(t, app, http.MethodGet, "/api/v1/deals/summary", tok, nil)
	require.Equal(t, fiber.StatusOK, status, res.Error)
	var summary struct {
		TotalDeals       int64           `json:"total_deals"`
		TotalOutstanding decimal.Decimal `json:"total_outstanding"`
	}
	decodeData(t, res, &summary)
	assert.EqualValues(t, 1, summary.TotalDeals)
	assert.Equal(t, "12350.00", summary.TotalOutstanding.StringFixed(2))

	// a second deal from the now funded offer is rejected
	status, _ = call(t, app, http.MethodPost, "/api/v1/deals", tok,
		map[string]interface{}{"merchant_id": merchant.ID, "offer_id": offer.ID})
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestErrorMapping(t *testing.T) {
	app := newApp(t)
	tok := token(t, models.RoleAdmin)

	status, _ := call(t, app, http.MethodGet, "/api/v1/merchants/abc", tok, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = call(t, app, http.MethodGet, "/api/v1/merchants/999", tok, nil)
	assert.Equal(t, fiber.StatusNotFound, status)

	status, res := call(t, app, http.MethodPost, "/api/v1/merchants", tok, map[string]interface{}{})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.NotEmpty(t, res.Error)
}
