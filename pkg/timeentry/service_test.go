package timeentry

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/klokku/utilization/internal/event_bus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*ServiceImpl, *RepositoryStub, *[]event_bus.InputsChanged) {
	repo := NewRepositoryStub()
	bus := event_bus.NewEventBus()
	published := &[]event_bus.InputsChanged{}
	event_bus.SubscribeTyped(bus, event_bus.InputsChangedType, func(e event_bus.EventT[event_bus.InputsChanged]) error {
		*published = append(*published, e.Data)
		return nil
	})
	t.Cleanup(repo.Cleanup)
	return NewService(repo, bus), repo, published
}

func TestServiceImpl_Import(t *testing.T) {
	service, repo, published := setup(t)
	ctx := context.Background()

	// when
	result, err := service.Import(ctx, strings.NewReader(dailyReport), "upload")

	// then
	require.NoError(t, err)
	assert.Equal(t, 3, result.Entries)
	assert.Equal(t, 2, result.Users)
	_, err = uuid.Parse(result.Batch)
	assert.NoError(t, err)

	stored, _ := repo.ListAll(ctx)
	require.Len(t, stored, 3)
	for _, e := range stored {
		assert.Equal(t, result.Batch, e.ImportBatch)
	}

	require.Len(t, *published, 1)
	assert.Equal(t, "time_entry", (*published)[0].Table)
	assert.Equal(t, result.Batch, (*published)[0].Batch)
}

func TestServiceImpl_Import_ReplacesPreviousEntries(t *testing.T) {
	service, _, _ := setup(t)
	ctx := context.Background()
	_, err := service.Import(ctx, strings.NewReader(dailyReport), "upload")
	require.NoError(t, err)

	_, err = service.Import(ctx, strings.NewReader("User Name,Entry Date,Activity Name,Hours Worked\nAnn Poe,2024-05-01,A,2\n"), "upload")
	require.NoError(t, err)

	people, err := service.People(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ann Poe"}, people)
}

func TestServiceImpl_Import_RejectsMalformedReport(t *testing.T) {
	service, repo, published := setup(t)
	ctx := context.Background()
	_, err := service.Import(ctx, strings.NewReader(dailyReport), "upload")
	require.NoError(t, err)

	_, err = service.Import(ctx, strings.NewReader("User Name,Entry Date,Activity Name,Hours Worked\nJane,2024-04-01,A,x\n"), "upload")

	assert.ErrorIs(t, err, ErrMalformedEntry)
	stored, _ := repo.ListAll(ctx)
	assert.Len(t, stored, 3, "a rejected import keeps the previous entries")
	assert.Len(t, *published, 1)
}

func TestServiceImpl_People_IncludesRoster(t *testing.T) {
	service, _, _ := setup(t)
	ctx := context.Background()
	_, err := service.Import(ctx, strings.NewReader(dailyReport), "upload")
	require.NoError(t, err)
	require.NoError(t, service.ReplaceRoster(ctx, []string{"Zed New", "Jane Doe"}))

	people, err := service.People(ctx)

	require.NoError(t, err)
	assert.Equal(t, []string{"Jane Doe", "John Roe", "Zed New"}, people)
}
