package stats

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/realty-intake-service/internal/domain"
	"github.com/m04kA/realty-intake-service/internal/infra/storage/intake"
	"github.com/m04kA/realty-intake-service/internal/infra/storage/memory"
	"github.com/m04kA/realty-intake-service/pkg/logger"
)

func TestService_Get(t *testing.T) {
	store := memory.NewStore()
	repo := intake.NewRepository(store, logger.Nop())
	ctx := context.Background()

	b1, err := repo.CreateBooking(ctx, domain.BookingInput{FirstName: "Ana", Email: "ana@x.com"})
	require.NoError(t, err)
	_, err = repo.CreateBooking(ctx, domain.BookingInput{FirstName: "Cy", Email: "cy@x.com"})
	require.NoError(t, err)
	_, err = repo.UpdateBookingStatus(ctx, b1.ID, domain.StatusConfirmed, nil)
	require.NoError(t, err)

	_, err = repo.CreateLead(ctx, domain.LeadInput{Name: "Bo", Email: "bo@x.com"})
	require.NoError(t, err)

	got, err := NewService(repo, logger.Nop()).Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, &Stats{TotalBookings: 2, PendingBookings: 1, TotalLeads: 1, NewLeads: 1}, got)
}

func TestService_Get_Empty(t *testing.T) {
	repo := intake.NewRepository(memory.NewStore(), logger.Nop())

	got, err := NewService(repo, logger.Nop()).Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &Stats{}, got)
}

func TestService_Get_StoreFailure(t *testing.T) {
	store := memory.NewStore()
	repo := intake.NewRepository(store, logger.Nop())

	store.FailNext(2)
	_, err := NewService(repo, logger.Nop()).Get(context.Background())
	assert.True(t, errors.Is(err, ErrInternal))
	assert.True(t, errors.Is(err, intake.ErrPersistence))
}
