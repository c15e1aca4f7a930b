package repository

import (
	"testing"

	"github.com/boranno/University-Canteen-Management-System/internal/app/model"
	"github.com/boranno/University-Canteen-Management-System/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type reviewRepoFixture struct {
	repo     ReviewRepository
	db       *gorm.DB
	user     model.User
	canteen  model.Canteen
	menuItem model.MenuItem
}

func setupReviewRepoTest(t *testing.T) *reviewRepoFixture {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	f := &reviewRepoFixture{
		repo: NewReviewRepository(testDB),
		db:   testDB,
		user: model.User{Email: "student@campus.edu", PasswordHash: "hashed", Name: "Student"},
		canteen: model.Canteen{
			Name: "North Hall", Location: "Building A",
			OpenTime: "08:00", CloseTime: "20:00", IsOpen: true,
		},
	}
	require.NoError(t, testDB.Create(&f.user).Error)
	require.NoError(t, testDB.Create(&f.canteen).Error)

	f.menuItem = model.MenuItem{CanteenID: f.canteen.ID, Name: "Udon", Price: 5.0, IsAvailable: true}
	require.NoError(t, testDB.Create(&f.menuItem).Error)

	return f
}

func (f *reviewRepoFixture) addCanteenReview(t *testing.T, rating int) {
	review := model.Review{UserID: f.user.ID, CanteenID: &f.canteen.ID, Rating: rating}
	require.NoError(t, f.repo.Create(&review))
}

func (f *reviewRepoFixture) addMenuItemReview(t *testing.T, rating int) {
	review := model.Review{UserID: f.user.ID, MenuItemID: &f.menuItem.ID, Rating: rating}
	require.NoError(t, f.repo.Create(&review))
}

func TestReviewRepository_AggregateForSubject(t *testing.T) {
	f := setupReviewRepoTest(t)

	for _, r := range []int{5, 4, 3} {
		f.addCanteenReview(t, r)
	}
	// Menu item rows must not leak into the canteen aggregate.
	f.addMenuItemReview(t, 1)

	agg, err := f.repo.AggregateForSubject(model.CanteenSubject(f.canteen.ID))
	require.NoError(t, err)
	assert.EqualValues(t, 3, agg.Count)
	assert.InDelta(t, 4.0, agg.Rating, 1e-9)

	agg, err = f.repo.AggregateForSubject(model.MenuItemSubject(f.menuItem.ID))
	require.NoError(t, err)
	assert.EqualValues(t, 1, agg.Count)
	assert.InDelta(t, 1.0, agg.Rating, 1e-9)
}

func TestReviewRepository_AggregateForSubject_Empty(t *testing.T) {
	f := setupReviewRepoTest(t)

	agg, err := f.repo.AggregateForSubject(model.CanteenSubject(f.canteen.ID))
	require.NoError(t, err)
	assert.Zero(t, agg.Count)
	assert.Zero(t, agg.Rating)
}

func TestReviewRepository_AggregateForSubject_InvalidSubject(t *testing.T) {
	f := setupReviewRepoTest(t)

	_, err := f.repo.AggregateForSubject(model.ReviewSubject{})
	assert.ErrorIs(t, err, model.ErrInvalidSubject)
}

func TestReviewRepository_FindByCanteen_PreloadsUser(t *testing.T) {
	f := setupReviewRepoTest(t)
	f.addCanteenReview(t, 4)

	reviews, err := f.repo.FindByCanteen(f.canteen.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, f.user.Name, reviews[0].User.Name)
}

func TestReviewRepository_FindRecent_Limit(t *testing.T) {
	f := setupReviewRepoTest(t)

	for i := 0; i < 5; i++ {
		f.addCanteenReview(t, 3)
	}

	reviews, err := f.repo.FindRecent(2)
	require.NoError(t, err)
	assert.Len(t, reviews, 2)
}
