package service

import (
	"testing"

	"github.com/boranno/University-Canteen-Management-System/internal/app/model"
	"github.com/boranno/University-Canteen-Management-System/internal/app/repository"
	"github.com/boranno/University-Canteen-Management-System/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupMenuItemServiceTest(t *testing.T) (MenuItemService, *model.Canteen, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	canteenRepo := repository.NewCanteenRepository(testDB)
	menuItemRepo := repository.NewMenuItemRepository(testDB)

	canteen := &model.Canteen{
		Name:      "Main Hall",
		Location:  "Building A",
		OpenTime:  "08:00",
		CloseTime: "20:00",
		IsOpen:    true,
	}
	require.NoError(t, canteenRepo.Create(canteen))

	return NewMenuItemService(menuItemRepo, canteenRepo), canteen, testDB
}

func TestMenuItemService_Create(t *testing.T) {
	service, canteen, _ := setupMenuItemServiceTest(t)

	item, err := service.CreateMenuItem(MenuItemInput{
		CanteenID: canteen.ID,
		Name:      "Fried Rice",
		Price:     5.50,
		Category:  "rice",
	})
	require.NoError(t, err)
	assert.NotZero(t, item.ID)
	assert.True(t, item.IsAvailable)

	_, err = service.CreateMenuItem(MenuItemInput{CanteenID: 9999, Name: "Ghost Dish", Price: 1})
	assert.ErrorIs(t, err, ErrCanteenNotFound)

	_, err = service.CreateMenuItem(MenuItemInput{CanteenID: canteen.ID, Name: "Free Lunch", Price: -1})
	assert.ErrorIs(t, err, ErrInvalidPrice)
}

func TestMenuItemService_GetPopularMenuItems(t *testing.T) {
	service, canteen, testDB := setupMenuItemServiceTest(t)
	menuItemRepo := repository.NewMenuItemRepository(testDB)

	// Ten items with ascending ratings; one top rated item is unavailable.
	for i := 1; i <= 10; i++ {
		item := &model.MenuItem{
			CanteenID:   canteen.ID,
			Name:        "Dish",
			Price:       3.0,
			IsAvailable: i != 10,
		}
		require.NoError(t, menuItemRepo.Create(item))
		require.NoError(t, menuItemRepo.UpdateRating(item.ID, float64(i)/2, int64(i)))
	}

	// Default limit caps the list at eight entries.
	items, err := service.GetPopularMenuItems(0)
	require.NoError(t, err)
	require.Len(t, items, 8)

	// Sorted by rating, and the unavailable item never shows up.
	for i := 1; i < len(items); i++ {
		assert.GreaterOrEqual(t, items[i-1].Rating, items[i].Rating)
	}
	for _, item := range items {
		assert.True(t, item.IsAvailable)
	}

	items, err = service.GetPopularMenuItems(3)
	require.NoError(t, err)
	assert.Len(t, items, 3)
}

func TestMenuItemService_GetCanteenMenu_MissingCanteen(t *testing.T) {
	service, _, _ := setupMenuItemServiceTest(t)

	_, err := service.GetCanteenMenu(9999)
	assert.ErrorIs(t, err, ErrCanteenNotFound)
}

func TestMenuItemService_Update(t *testing.T) {
	service, canteen, _ := setupMenuItemServiceTest(t)

	item, err := service.CreateMenuItem(MenuItemInput{
		CanteenID: canteen.ID,
		Name:      "Noodles",
		Price:     4.0,
	})
	require.NoError(t, err)

	unavailable := false
	updated, err := service.UpdateMenuItem(item.ID, MenuItemInput{
		CanteenID:   canteen.ID,
		Name:        "Spicy Noodles",
		Price:       4.5,
		IsAvailable: &unavailable,
	})
	require.NoError(t, err)
	assert.Equal(t, "Spicy Noodles", updated.Name)
	assert.InDelta(t, 4.5, updated.Price, 1e-9)
	assert.False(t, updated.IsAvailable)

	_, err = service.UpdateMenuItem(9999, MenuItemInput{CanteenID: canteen.ID, Name: "X", Price: 1})
	assert.ErrorIs(t, err, ErrMenuItemNotFound)
}
