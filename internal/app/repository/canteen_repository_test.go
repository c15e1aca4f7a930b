package repository

import (
	"errors"
	"testing"

	"github.com/boranno/University-Canteen-Management-System/internal/app/model"
	"github.com/boranno/University-Canteen-Management-System/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCanteenRepoTest(t *testing.T) (CanteenRepository, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	return NewCanteenRepository(testDB), testDB
}

func seedCanteens(t *testing.T, repo CanteenRepository) []model.Canteen {
	canteens := []model.Canteen{
		{Name: "North Hall", Description: "Korean dishes", Location: "Building A", OpenTime: "08:00", CloseTime: "20:00", IsOpen: true},
		{Name: "South Court", Description: "Halal options", Location: "Building B", OpenTime: "09:00", CloseTime: "21:00", IsOpen: true},
		{Name: "Cafe Corner", Description: "Coffee and snacks", Location: "Library", OpenTime: "07:00", CloseTime: "18:00", IsOpen: true},
	}
	for i := range canteens {
		require.NoError(t, repo.Create(&canteens[i]))
	}
	return canteens
}

func TestCanteenRepository_FindAll_OrderedByRating(t *testing.T) {
	repo, _ := setupCanteenRepoTest(t)
	canteens := seedCanteens(t, repo)

	require.NoError(t, repo.UpdateRating(canteens[0].ID, 3.5, 4))
	require.NoError(t, repo.UpdateRating(canteens[1].ID, 4.8, 10))
	require.NoError(t, repo.UpdateRating(canteens[2].ID, 1.0, 1))

	found, err := repo.FindAll()
	require.NoError(t, err)
	require.Len(t, found, 3)
	assert.Equal(t, "South Court", found[0].Name)
	assert.Equal(t, "North Hall", found[1].Name)
	assert.Equal(t, "Cafe Corner", found[2].Name)
}

func TestCanteenRepository_Search(t *testing.T) {
	repo, _ := setupCanteenRepoTest(t)
	seedCanteens(t, repo)

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{name: "matches name", query: "North", want: 1},
		{name: "matches description", query: "Halal", want: 1},
		{name: "matches location", query: "Library", want: 1},
		{name: "no match", query: "sushi", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found, err := repo.Search(tt.query)
			require.NoError(t, err)
			assert.Len(t, found, tt.want)
		})
	}
}

func TestCanteenRepository_UpdateRating_MissingRow(t *testing.T) {
	repo, _ := setupCanteenRepoTest(t)

	err := repo.UpdateRating(9999, 4.0, 2)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCanteenRepository_Delete_RemovesMenuItems(t *testing.T) {
	repo, testDB := setupCanteenRepoTest(t)
	canteens := seedCanteens(t, repo)

	menuRepo := NewMenuItemRepository(testDB)
	item := &model.MenuItem{CanteenID: canteens[0].ID, Name: "Kimbap", Price: 3.0, IsAvailable: true}
	require.NoError(t, menuRepo.Create(item))

	require.NoError(t, repo.Delete(canteens[0].ID))

	_, err := repo.FindByID(canteens[0].ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	items, err := menuRepo.FindByCanteen(canteens[0].ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCanteenRepository_AllIDs(t *testing.T) {
	repo, _ := setupCanteenRepoTest(t)
	canteens := seedCanteens(t, repo)

	ids, err := repo.AllIDs()
	require.NoError(t, err)
	assert.Len(t, ids, len(canteens))
}

func TestCanteenRepository_BulkCreate(t *testing.T) {
	repo, _ := setupCanteenRepoTest(t)

	batch := make([]model.Canteen, 25)
	for i := range batch {
		batch[i] = model.Canteen{
			Name:      "Canteen",
			Location:  "Campus",
			OpenTime:  "08:00",
			CloseTime: "20:00",
		}
	}

	require.NoError(t, repo.BulkCreate(batch, 10))

	found, err := repo.FindAll()
	require.NoError(t, err)
	assert.Len(t, found, 25)
}
