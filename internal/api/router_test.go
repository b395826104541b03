package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/realty-intake-service/internal/infra/storage/intake"
	"github.com/m04kA/realty-intake-service/internal/infra/storage/memory"
	"github.com/m04kA/realty-intake-service/internal/service/bookings"
	"github.com/m04kA/realty-intake-service/internal/service/leads"
	"github.com/m04kA/realty-intake-service/internal/service/stats"
	"github.com/m04kA/realty-intake-service/pkg/logger"
	"github.com/m04kA/realty-intake-service/pkg/metrics"
)

type testEnv struct {
	handler http.Handler
	store   *memory.Store
	metrics *metrics.Metrics
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	log := logger.Nop()
	store := memory.NewStore()
	m := metrics.New("realty-intake")
	repo := intake.NewRepository(store, log)

	h := NewRouter(Services{
		Bookings: bookings.NewService(repo, m, log, true),
		Leads:    leads.NewService(repo, m, log, true),
		Stats:    stats.NewService(repo, log),
	}, Options{
		APIPrefix:   "/api/v1",
		CORSOrigins: []string{"*"},
		Metrics:     m,
		MetricsPath: "/metrics",
		Logger:      log,
	})

	return &testEnv{handler: h, store: store, metrics: m}
}

func (e *testEnv) do(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)

	var out map[string]interface{}
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	}
	return rec, out
}

const anaBooking = `{"firstName":"Ana","email":"ana@x.com","serviceType":"buy","selectedDate":"2025-03-10","selectedTime":"10:00 AM"}`

func TestAPI_BookingRoundTrip(t *testing.T) {
	env := newTestEnv(t)

	rec, body := env.do(t, http.MethodPost, "/api/v1/bookings", anaBooking)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Booking stored successfully", body["message"])
	bookingID, _ := body["bookingId"].(string)
	require.NotEmpty(t, bookingID)

	rec, body = env.do(t, http.MethodGet, "/api/v1/bookings", "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := body["bookings"].([]interface{})
	require.Len(t, list, 1)

	record := list[0].(map[string]interface{})
	assert.Equal(t, bookingID, record["id"])
	assert.Equal(t, "Ana", record["firstName"])
	assert.Equal(t, "ana@x.com", record["email"])
	assert.Equal(t, "buy", record["serviceType"])
	assert.Equal(t, "2025-03-10", record["selectedDate"])
	assert.Equal(t, "10:00 AM", record["selectedTime"])
	assert.Equal(t, "pending", record["status"])
	assert.NotEmpty(t, record["createdAt"])
}

func TestAPI_UpdateMissingBooking(t *testing.T) {
	env := newTestEnv(t)

	rec, body := env.do(t, http.MethodPut, "/api/v1/bookings/booking_999/status", `{"status":"confirmed"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, map[string]interface{}{"success": false, "error": "Booking not found"}, body)
	assert.Equal(t, 0, env.store.Len())
}

func TestAPI_UpdateMissingLead(t *testing.T) {
	env := newTestEnv(t)

	rec, body := env.do(t, http.MethodPut, "/api/v1/leads/lead_1/status", `{"status":"contacted"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Lead not found", body["error"])
}

func TestAPI_UpdateBookingStatus(t *testing.T) {
	env := newTestEnv(t)

	_, body := env.do(t, http.MethodPost, "/api/v1/bookings", anaBooking)
	id := body["bookingId"].(string)

	rec, body := env.do(t, http.MethodPut, "/api/v1/bookings/"+id+"/status", `{"status":"confirmed"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	booking := body["booking"].(map[string]interface{})
	assert.Equal(t, "confirmed", booking["status"])
	assert.NotEmpty(t, booking["updatedAt"])

	_, body = env.do(t, http.MethodGet, "/api/v1/bookings", "")
	record := body["bookings"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "confirmed", record["status"])

	rec, body = env.do(t, http.MethodPut, "/api/v1/bookings/"+id+"/status", `{"status":"pending"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Invalid status transition", body["error"])

	rec, body = env.do(t, http.MethodPut, "/api/v1/bookings/"+id+"/status", `{"status":"archived"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid status", body["error"])
}

func TestAPI_LeadRoundTrip(t *testing.T) {
	env := newTestEnv(t)

	history := []map[string]interface{}{
		{"text": "Hello! How can I help?", "sender": "bot", "timestamp": "2025-03-01T09:00:00Z"},
		{"text": "Selling a Property", "sender": "user", "timestamp": "2025-03-01T09:00:03Z"},
		{"text": "Home Valuation", "sender": "user", "timestamp": "2025-03-01T09:00:09Z"},
	}
	payload, err := json.Marshal(map[string]interface{}{
		"name":                "Bo",
		"email":               "bo@x.com",
		"interest":            "Home Valuation",
		"conversationHistory": history,
	})
	require.NoError(t, err)

	rec, body := env.do(t, http.MethodPost, "/api/v1/leads", string(payload))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Lead stored successfully", body["message"])
	leadID := body["leadId"].(string)

	_, body = env.do(t, http.MethodGet, "/api/v1/leads", "")
	list := body["leads"].([]interface{})
	require.Len(t, list, 1)

	lead := list[0].(map[string]interface{})
	assert.Equal(t, leadID, lead["id"])
	assert.Equal(t, "new", lead["status"])

	got := lead["conversationHistory"].([]interface{})
	require.Len(t, got, len(history))
	for i, msg := range got {
		m := msg.(map[string]interface{})
		assert.Equal(t, history[i]["text"], m["text"])
		assert.Equal(t, history[i]["sender"], m["sender"])
		assert.Equal(t, history[i]["timestamp"], m["timestamp"])
	}
}

func TestAPI_ListNewestFirst(t *testing.T) {
	env := newTestEnv(t)

	for _, name := range []string{"one", "two", "three"} {
		rec, _ := env.do(t, http.MethodPost, "/api/v1/leads", `{"name":"`+name+`","email":"x@x.com"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		time.Sleep(2 * time.Millisecond)
	}

	_, body := env.do(t, http.MethodGet, "/api/v1/leads", "")
	list := body["leads"].([]interface{})
	require.Len(t, list, 3)
	assert.Equal(t, "three", list[0].(map[string]interface{})["name"])
	assert.Equal(t, "one", list[2].(map[string]interface{})["name"])
}

func TestAPI_InvalidBody(t *testing.T) {
	env := newTestEnv(t)

	rec, body := env.do(t, http.MethodPost, "/api/v1/bookings", `{"firstName":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid request body", body["error"])
	assert.Equal(t, false, body["success"])
}

func TestAPI_StoreFailure(t *testing.T) {
	env := newTestEnv(t)

	env.store.FailNext(1)
	rec, body := env.do(t, http.MethodPost, "/api/v1/bookings", anaBooking)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to store booking", body["error"])

	env.store.FailNext(1)
	rec, body = env.do(t, http.MethodPost, "/api/v1/leads", `{"name":"Bo","email":"bo@x.com"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to store lead", body["error"])

	env.store.FailNext(1)
	rec, body = env.do(t, http.MethodGet, "/api/v1/bookings", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to fetch bookings", body["error"])

	env.store.FailNext(1)
	rec, body = env.do(t, http.MethodGet, "/api/v1/leads", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to fetch leads", body["error"])
}

func TestAPI_StatsAndHealth(t *testing.T) {
	env := newTestEnv(t)

	env.do(t, http.MethodPost, "/api/v1/bookings", anaBooking)
	env.do(t, http.MethodPost, "/api/v1/leads", `{"name":"Bo","email":"bo@x.com"}`)

	rec, body := env.do(t, http.MethodGet, "/api/v1/admin/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]interface{}{
		"totalBookings":   float64(1),
		"pendingBookings": float64(1),
		"totalLeads":      float64(1),
		"newLeads":        float64(1),
	}, body["stats"])

	rec, body = env.do(t, http.MethodGet, "/api/v1/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", body["status"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestAPI_MetricsEndpoint(t *testing.T) {
	env := newTestEnv(t)

	env.do(t, http.MethodPost, "/api/v1/bookings", anaBooking)

	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `realty_intake_intake_records_created_total{kind="booking"} 1`)
	assert.Contains(t, rec.Body.String(), `route="/api/v1/bookings"`)
}

func TestAPI_CORSPreflight(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/leads", bytes.NewReader(nil))
	req.Header.Set("Origin", "https://realty.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
