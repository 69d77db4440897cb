package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/fieldstack/isp-ops-service/internal/access"
	"github.com/fieldstack/isp-ops-service/internal/api/http/handlers"
	"github.com/fieldstack/isp-ops-service/internal/auth"
	"github.com/fieldstack/isp-ops-service/internal/cloudsync"
	"github.com/fieldstack/isp-ops-service/internal/config"
	"github.com/fieldstack/isp-ops-service/internal/events"
	"github.com/fieldstack/isp-ops-service/internal/kvstore"
	"github.com/fieldstack/isp-ops-service/internal/service"
	"github.com/fieldstack/isp-ops-service/internal/store"
)

type testServer struct {
	app   *fiber.App
	store *store.Store
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := zap.NewNop()
	kv := kvstore.NewMemoryStore()
	st := store.New(kv, logger, store.Options{})
	t.Cleanup(st.Flush)

	allowed := access.NewList(kv, logger, access.Config{FailOpen: true, BcryptCost: bcrypt.MinCost})
	t.Cleanup(allowed.Flush)
	tokens := auth.NewTokenManager("test-secret", 60)
	dispatcher := events.NewInMemoryDispatcher()
	syncer := cloudsync.New(kv, nil, logger, dispatcher, 0)
	t.Cleanup(syncer.Close)

	cfg := &config.Config{}
	cfg.App.Name = "isp-ops-test"

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	RegisterMiddlewares(app, logger, nil, 0)
	RegisterRoutes(app, RouteConfig{
		Auth:      auth.NewMiddleware(tokens, allowed),
		AuthH:     handlers.NewAuthHandler(tokens, allowed),
		Clients:   handlers.NewClientHandler(service.NewClientService(st, dispatcher), st),
		Tickets:   handlers.NewTicketHandler(service.NewTicketService(st, dispatcher), st),
		Equipment: handlers.NewEquipmentHandler(service.NewEquipmentService(st, dispatcher), st),
		Fieldwork: handlers.NewFieldworkHandler(service.NewFieldOpsService(st, dispatcher), st),
		System:    handlers.NewSystemHandler(cfg, kv, syncer),
	})
	return &testServer{app: app, store: st}
}

func (ts *testServer) login(t *testing.T) string {
	t.Helper()
	status, body := ts.request(t, "POST", "/api/v1/auth/login", map[string]any{"email": "ops@example.com"}, "")
	require.Equal(t, fiber.StatusOK, status, string(body))

	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &resp))
	require.NotEmpty(t, resp.Data.Token)
	return resp.Data.Token
}

func (ts *testServer) request(t *testing.T, method, path string, payload any, token string) (int, []byte) {
	t.Helper()
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(encoded)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := ts.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func TestHealthEndpointsAreOpen(t *testing.T) {
	ts := newTestServer(t)
	status, _ := ts.request(t, "GET", "/health/live", nil, "")
	assert.Equal(t, fiber.StatusOK, status)
	status, _ = ts.request(t, "GET", "/health/ready", nil, "")
	assert.Equal(t, fiber.StatusOK, status)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	ts := newTestServer(t)
	status, body := ts.request(t, "GET", "/api/v1/clients/", nil, "")
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Contains(t, string(body), "UNAUTHORIZED")
}

func TestClientLifecycleOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t)

	status, body := ts.request(t, "POST", "/api/v1/clients/", map[string]any{
		"name":     "Ana",
		"document": "12345678",
		"address":  "Main St 1",
	}, token)
	require.Equal(t, fiber.StatusCreated, status, string(body))

	var created struct {
		Data struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &created))
	assert.Equal(t, "CLI-001", created.Data.ID)
	assert.Equal(t, "ACTIVE", created.Data.Status)

	status, body = ts.request(t, "PUT", "/api/v1/clients/CLI-001/status", map[string]any{
		"status": "SUSPENDED",
		"reason": "non-payment",
	}, token)
	require.Equal(t, fiber.StatusOK, status, string(body))

	status, body = ts.request(t, "GET", "/api/v1/clients/CLI-001/history", nil, token)
	require.Equal(t, fiber.StatusOK, status)
	var history struct {
		Data []struct {
			From   string `json:"from"`
			To     string `json:"to"`
			Reason string `json:"reason"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &history))
	require.Len(t, history.Data, 1)
	assert.Equal(t, "SUSPENDED", history.Data[0].To)
	assert.Equal(t, "non-payment", history.Data[0].Reason)
}

func TestClientCreateRejectsMissingFields(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t)

	status, body := ts.request(t, "POST", "/api/v1/clients/", map[string]any{"name": "Ana"}, token)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, string(body), "VALIDATION_FAILED")
}

func TestClientListSearchAndPaging(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t)

	for _, name := range []string{"Ana", "Bob", "Andrea"} {
		status, _ := ts.request(t, "POST", "/api/v1/clients/", map[string]any{
			"name": name, "document": name + "-doc", "address": "x",
		}, token)
		require.Equal(t, fiber.StatusCreated, status)
	}

	status, body := ts.request(t, "GET", "/api/v1/clients/?q=an", nil, token)
	require.Equal(t, fiber.StatusOK, status)
	var list struct {
		Items    []struct{ Name string } `json:"items"`
		Total    int                     `json:"total"`
		Filtered int                     `json:"filtered"`
	}
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Equal(t, 3, list.Total)
	assert.Equal(t, 2, list.Filtered)

	status, body = ts.request(t, "GET", "/api/v1/clients/?page_size=2&page=1", nil, token)
	require.Equal(t, fiber.StatusOK, status)
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Len(t, list.Items, 1, "second page holds the remainder")
}

func TestUnknownIDsReturnNotFound(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t)

	status, body := ts.request(t, "GET", "/api/v1/tickets/TKT-404", nil, token)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Contains(t, string(body), "NOT_FOUND")
}

func TestTicketEscalationOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t)

	status, _ := ts.request(t, "POST", "/api/v1/clients/", map[string]any{
		"name": "Ana", "document": "123", "address": "x",
	}, token)
	require.Equal(t, fiber.StatusCreated, status)

	status, body := ts.request(t, "POST", "/api/v1/tickets/", map[string]any{
		"client_id":   "CLI-001",
		"category":    "connectivity",
		"description": "no signal since last night",
	}, token)
	require.Equal(t, fiber.StatusCreated, status, string(body))

	status, body = ts.request(t, "POST", "/api/v1/tickets/TKT-001/escalate", map[string]any{
		"zone": "north-12", "detail": "fiber cut",
	}, token)
	require.Equal(t, fiber.StatusCreated, status, string(body))

	var derivation struct {
		Data struct {
			ID       string `json:"id"`
			TicketID string `json:"ticket_id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &derivation))
	assert.Equal(t, "DRV-001", derivation.Data.ID)
	assert.Equal(t, "TKT-001", derivation.Data.TicketID)

	ticket, ok := ts.store.Tickets.Get("TKT-001")
	require.True(t, ok)
	assert.Equal(t, "ESCALATED", string(ticket.Status))
}

func TestOperatorRemovalRevokesAccess(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t)

	// Adding operators ends fail-open; the token principal must be on the
	// list to keep operating.
	status, body := ts.request(t, "POST", "/api/v1/operators/", map[string]any{"email": "ops@example.com"}, token)
	require.Equal(t, fiber.StatusCreated, status, string(body))
	status, _ = ts.request(t, "POST", "/api/v1/operators/", map[string]any{"email": "admin@example.com"}, token)
	require.Equal(t, fiber.StatusCreated, status)

	status, _ = ts.request(t, "GET", "/api/v1/clients/", nil, token)
	assert.Equal(t, fiber.StatusOK, status)

	status, _ = ts.request(t, "DELETE", "/api/v1/operators/ops@example.com", nil, token)
	require.Equal(t, fiber.StatusNoContent, status)

	status, body = ts.request(t, "GET", "/api/v1/clients/", nil, token)
	assert.Equal(t, fiber.StatusForbidden, status, string(body))
}

func TestSyncEndpointWithoutRemoteConflicts(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t)

	status, body := ts.request(t, "POST", "/api/v1/system/sync", nil, token)
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Contains(t, string(body), "remote sync not configured")
}
