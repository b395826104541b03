package leads

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/realty-intake-service/internal/infra/storage/intake"
	"github.com/m04kA/realty-intake-service/internal/infra/storage/memory"
	"github.com/m04kA/realty-intake-service/internal/service/leads/models"
	"github.com/m04kA/realty-intake-service/pkg/logger"
)

// nopMetrics проверяет, что сервис работает с любым Metrics, а не только с prometheus
type nopMetrics struct {
	created int
	updated int
	failed  int
}

func (m *nopMetrics) RecordCreated(string)         { m.created++ }
func (m *nopMetrics) StatusUpdated(string, string) { m.updated++ }
func (m *nopMetrics) StoreFailed(string, string)   { m.failed++ }

func newTestService(strict bool) (*Service, *memory.Store, *nopMetrics) {
	store := memory.NewStore()
	m := &nopMetrics{}
	repo := intake.NewRepository(store, logger.Nop())
	return NewService(repo, m, logger.Nop(), strict), store, m
}

func boRequest() *models.CreateLeadRequest {
	return &models.CreateLeadRequest{
		Name:     "Bo",
		Email:    "bo@x.com",
		Interest: "Condos",
		ConversationHistory: []models.ChatMessage{
			{Text: "Hello! How can I help?", Sender: "bot", Timestamp: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)},
			{Text: "Buying a Home", Sender: "user", Timestamp: time.Date(2025, 3, 1, 9, 0, 5, 0, time.UTC)},
		},
	}
}

func TestService_CreateAndList(t *testing.T) {
	svc, _, m := newTestService(true)
	ctx := context.Background()

	id, err := svc.Create(ctx, boRequest())
	require.NoError(t, err)
	assert.Regexp(t, `^lead_`, id)
	assert.Equal(t, 1, m.created)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list.Leads, 1)

	lead := list.Leads[0]
	assert.Equal(t, "new", lead.Status)
	assert.Equal(t, "chatbot", lead.Source)
	assert.Equal(t, "Condos", lead.Interest)
	require.Len(t, lead.ConversationHistory, 2)
	assert.Equal(t, "user", lead.ConversationHistory[1].Sender)
}

func TestService_UpdateStatus(t *testing.T) {
	svc, _, m := newTestService(true)
	ctx := context.Background()

	id, err := svc.Create(ctx, boRequest())
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(ctx, id, &models.UpdateStatusRequest{Status: "contacted"})
	require.NoError(t, err)
	assert.Equal(t, "contacted", updated.Status)
	assert.Equal(t, 1, m.updated)

	_, err = svc.UpdateStatus(ctx, id, &models.UpdateStatusRequest{Status: "new"})
	assert.True(t, errors.Is(err, ErrInvalidTransition))
}

func TestService_UpdateStatus_NotFound(t *testing.T) {
	svc, store, _ := newTestService(true)

	_, err := svc.UpdateStatus(context.Background(), "lead_404", &models.UpdateStatusRequest{Status: "contacted"})
	assert.True(t, errors.Is(err, ErrLeadNotFound))
	assert.Equal(t, 0, store.Len())
}

func TestService_UpdateStatus_InvalidStatus(t *testing.T) {
	svc, _, _ := newTestService(true)

	_, err := svc.UpdateStatus(context.Background(), "lead_1", &models.UpdateStatusRequest{Status: ""})
	assert.True(t, errors.Is(err, ErrInvalidStatus))
}

func TestService_List_StoreFailure(t *testing.T) {
	svc, store, m := newTestService(true)

	store.FailNext(1)
	_, err := svc.List(context.Background())
	assert.True(t, errors.Is(err, ErrInternal))
	assert.Equal(t, 1, m.failed)
}
