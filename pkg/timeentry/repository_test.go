package timeentry

import (
	"context"
	"errors"
	"flag"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/klokku/utilization/internal/test_utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDB *test_utils.TestDB

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		testDB = &test_utils.TestDB{Err: errors.New("repository tests need a postgres container")}
	} else {
		testDB = test_utils.StartPostgres()
	}
	code := m.Run()
	testDB.Terminate()
	os.Exit(code)
}

func setupTestRepository(t *testing.T) (context.Context, Repository) {
	db := testDB.Open(t)
	return context.Background(), NewRepository(db)
}

func TestRepositoryImpl_ReplaceAllAndList(t *testing.T) {
	ctx, repo := setupTestRepository(t)
	batch := uuid.NewString()
	entries := []Entry{
		{UserName: "Jane Doe", EntryDate: time.Date(2024, time.April, 2, 0, 0, 0, 0, time.UTC), ActivityName: "Client Alpha", HoursWorked: 7.5, ImportBatch: batch},
		{UserName: "Jane Doe", EntryDate: time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC), ActivityName: "Holiday", HoursWorked: 8, ImportBatch: batch},
		{UserName: "John Roe", EntryDate: time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC), ActivityName: "Internal R&D", HoursWorked: 4, ImportBatch: batch},
	}

	// when
	err := repo.ReplaceAll(ctx, entries)
	require.NoError(t, err)

	// then
	jane, err := repo.ListByUser(ctx, "Jane Doe")
	require.NoError(t, err)
	require.Len(t, jane, 2)
	assert.Equal(t, "Holiday", jane[0].ActivityName, "entries are ordered by date")
	assert.Equal(t, batch, jane[0].ImportBatch)
	assert.True(t, jane[1].EntryDate.Equal(entries[0].EntryDate))

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestRepositoryImpl_ReplaceAll_RemovesPrevious(t *testing.T) {
	ctx, repo := setupTestRepository(t)
	first := []Entry{{UserName: "Jane Doe", EntryDate: time.Date(2024, time.April, 2, 0, 0, 0, 0, time.UTC), ActivityName: "A", HoursWorked: 1, ImportBatch: uuid.NewString()}}
	second := []Entry{{UserName: "Ann Poe", EntryDate: time.Date(2024, time.May, 2, 0, 0, 0, 0, time.UTC), ActivityName: "B", HoursWorked: 2, ImportBatch: uuid.NewString()}}
	require.NoError(t, repo.ReplaceAll(ctx, first))

	require.NoError(t, repo.ReplaceAll(ctx, second))

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Ann Poe", all[0].UserName)
}

func TestRepositoryImpl_ListUsers(t *testing.T) {
	ctx, repo := setupTestRepository(t)
	require.NoError(t, repo.ReplaceAll(ctx, []Entry{
		{UserName: "Jane Doe", EntryDate: time.Date(2024, time.April, 2, 0, 0, 0, 0, time.UTC), ActivityName: "A", HoursWorked: 1, ImportBatch: uuid.NewString()},
	}))
	require.NoError(t, repo.ReplaceRoster(ctx, []string{"Zed New", "Jane Doe"}))

	users, err := repo.ListUsers(ctx)

	require.NoError(t, err)
	assert.Equal(t, []string{"Jane Doe", "Zed New"}, users)
}

