package intakeapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/realty-intake-service/internal/api"
	"github.com/m04kA/realty-intake-service/internal/domain"
	"github.com/m04kA/realty-intake-service/internal/infra/storage/intake"
	"github.com/m04kA/realty-intake-service/internal/infra/storage/memory"
	"github.com/m04kA/realty-intake-service/internal/service/bookings"
	"github.com/m04kA/realty-intake-service/internal/service/leads"
	"github.com/m04kA/realty-intake-service/internal/service/stats"
	"github.com/m04kA/realty-intake-service/pkg/logger"
)

// newTestServer поднимает настоящий API поверх in-memory хранилища
func newTestServer(t *testing.T) (*Client, *memory.Store) {
	t.Helper()
	log := logger.Nop()
	store := memory.NewStore()
	repo := intake.NewRepository(store, log)

	srv := httptest.NewServer(api.NewRouter(api.Services{
		Bookings: bookings.NewService(repo, nil, log, true),
		Leads:    leads.NewService(repo, nil, log, true),
		Stats:    stats.NewService(repo, log),
	}, api.Options{APIPrefix: "/api/v1", Logger: log}))
	t.Cleanup(srv.Close)

	return NewClient(srv.URL+"/api/v1/", 5*time.Second, log), store
}

func TestClient_BookingFlow(t *testing.T) {
	client, _ := newTestServer(t)
	ctx := context.Background()

	id, err := client.CreateBooking(ctx, domain.BookingInput{
		FirstName:    "Ana",
		Email:        "ana@x.com",
		ServiceType:  domain.ServiceBuy,
		SelectedDate: "2025-03-10",
		SelectedTime: "10:00 AM",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	list, err := client.ListBookings(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, domain.StatusPending, list[0].Status)

	updated, err := client.UpdateBookingStatus(ctx, id, "confirmed")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, updated.Status)

	_, err = client.UpdateBookingStatus(ctx, id, "pending")
	assert.True(t, errors.Is(err, ErrInvalidTransition))

	_, err = client.UpdateBookingStatus(ctx, id, "archived")
	assert.True(t, errors.Is(err, ErrBadRequest))

	_, err = client.UpdateBookingStatus(ctx, "booking_999", "confirmed")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "Booking not found")
}

func TestClient_LeadFlow(t *testing.T) {
	client, _ := newTestServer(t)
	ctx := context.Background()

	history := []domain.ChatMessage{
		{Text: "hi", Sender: domain.SenderUser, Timestamp: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)},
	}
	id, err := client.CreateLead(ctx, domain.LeadInput{Name: "Bo", Email: "bo@x.com", Interest: "Venice", ConversationHistory: history})
	require.NoError(t, err)

	leads, err := client.ListLeads(ctx)
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, id, leads[0].ID)
	assert.Equal(t, history, leads[0].ConversationHistory)

	lead, err := client.UpdateLeadStatus(ctx, id, "qualified")
	require.NoError(t, err)
	assert.Equal(t, domain.LeadStatusQualified, lead.Status)

	s, err := client.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, &Stats{TotalLeads: 1}, s)

	h, err := client.Health(ctx)
	require.NoError(t, err)
	assert.Equal(t, "healthy", h.Status)
}

func TestClient_PersistenceFailure(t *testing.T) {
	client, store := newTestServer(t)

	store.FailNext(1)
	_, err := client.CreateLead(context.Background(), domain.LeadInput{Name: "Bo", Email: "bo@x.com"})
	assert.True(t, errors.Is(err, ErrPersistence))
	assert.Contains(t, err.Error(), "Failed to store lead")
}

func TestClient_InvalidResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/bookings":
			_, _ = w.Write([]byte(`{"success":true}`))
		case "/leads":
			_, _ = w.Write([]byte(`not json`))
		default:
			w.WriteHeader(http.StatusBadGateway)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, logger.Nop())
	ctx := context.Background()

	_, err := client.CreateBooking(ctx, domain.BookingInput{})
	assert.True(t, errors.Is(err, ErrInvalidResponse))

	_, err = client.ListLeads(ctx)
	assert.True(t, errors.Is(err, ErrInvalidResponse))

	_, err = client.Stats(ctx)
	assert.True(t, errors.Is(err, ErrInvalidResponse))
}

func TestClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewClient(url, time.Second, logger.Nop())
	_, err := client.ListBookings(context.Background())
	assert.True(t, errors.Is(err, ErrInternal))
}
