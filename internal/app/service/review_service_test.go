package service

import (
	"errors"
	"testing"

	"github.com/boranno/University-Canteen-Management-System/internal/app/model"
	"github.com/boranno/University-Canteen-Management-System/internal/app/repository"
	"github.com/boranno/University-Canteen-Management-System/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// brokenRatingCanteenRepo delegates everything to a real repository but fails
// every rating overwrite, simulating the database going away between the
// review insert and the aggregate update.
type brokenRatingCanteenRepo struct {
	repository.CanteenRepository
}

func (r *brokenRatingCanteenRepo) UpdateRating(id uint, rating float64, reviewCount int64) error {
	return errors.New("connection reset during rating update")
}

type reviewTestEnv struct {
	db           *gorm.DB
	service      ReviewService
	canteenRepo  repository.CanteenRepository
	menuItemRepo repository.MenuItemRepository
	user         *model.User
	canteen      *model.Canteen
	menuItem     *model.MenuItem
}

func setupReviewServiceTest(t *testing.T) *reviewTestEnv {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	userRepo := repository.NewUserRepository(testDB)
	canteenRepo := repository.NewCanteenRepository(testDB)
	menuItemRepo := repository.NewMenuItemRepository(testDB)
	reviewRepo := repository.NewReviewRepository(testDB)

	user := &model.User{Email: "student@campus.edu", PasswordHash: "hashed", Name: "Student"}
	require.NoError(t, userRepo.Create(user))

	canteen := &model.Canteen{
		Name:      "North Hall",
		Location:  "Building A",
		OpenTime:  "08:00",
		CloseTime: "20:00",
		IsOpen:    true,
	}
	require.NoError(t, canteenRepo.Create(canteen))

	menuItem := &model.MenuItem{
		CanteenID:   canteen.ID,
		Name:        "Bibimbap",
		Price:       6.50,
		IsAvailable: true,
	}
	require.NoError(t, menuItemRepo.Create(menuItem))

	return &reviewTestEnv{
		db:           testDB,
		service:      NewReviewService(reviewRepo, userRepo, canteenRepo, menuItemRepo),
		canteenRepo:  canteenRepo,
		menuItemRepo: menuItemRepo,
		user:         user,
		canteen:      canteen,
		menuItem:     menuItem,
	}
}

func TestReviewService_CreateReview_UpdatesCanteenAggregate(t *testing.T) {
	env := setupReviewServiceTest(t)
	subject := model.CanteenSubject(env.canteen.ID)

	ratings := []int{5, 4, 3}
	for _, r := range ratings {
		review, err := env.service.CreateReview(env.user.ID, subject, r, "tasty")
		require.NoError(t, err)
		require.NotZero(t, review.ID)
	}

	canteen, err := env.canteenRepo.FindByID(env.canteen.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, canteen.ReviewCount)
	assert.InDelta(t, 4.0, canteen.Rating, 1e-9)

	// A fourth review moves the mean to (5+4+3+5)/4.
	_, err = env.service.CreateReview(env.user.ID, subject, 5, "")
	require.NoError(t, err)

	canteen, err = env.canteenRepo.FindByID(env.canteen.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, canteen.ReviewCount)
	assert.InDelta(t, 4.25, canteen.Rating, 1e-9)
}

func TestReviewService_CreateReview_UpdatesMenuItemAggregate(t *testing.T) {
	env := setupReviewServiceTest(t)

	_, err := env.service.CreateReview(env.user.ID, model.MenuItemSubject(env.menuItem.ID), 2, "cold")
	require.NoError(t, err)

	item, err := env.menuItemRepo.FindByID(env.menuItem.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, item.ReviewCount)
	assert.InDelta(t, 2.0, item.Rating, 1e-9)

	// The parent canteen's own aggregate is untouched by menu item reviews.
	canteen, err := env.canteenRepo.FindByID(env.canteen.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, canteen.ReviewCount)
	assert.Zero(t, canteen.Rating)
}

func TestReviewService_CreateReview_InvalidRating(t *testing.T) {
	env := setupReviewServiceTest(t)
	subject := model.CanteenSubject(env.canteen.ID)

	for _, rating := range []int{0, -1, 6} {
		review, err := env.service.CreateReview(env.user.ID, subject, rating, "")
		assert.ErrorIs(t, err, ErrInvalidRating)
		assert.Nil(t, review)
	}

	var count int64
	require.NoError(t, env.db.Model(&model.Review{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestReviewService_CreateReview_InvalidSubject(t *testing.T) {
	env := setupReviewServiceTest(t)

	tests := []struct {
		name       string
		canteenID  *uint
		menuItemID *uint
	}{
		{name: "neither reference set"},
		{name: "both references set", canteenID: &env.canteen.ID, menuItemID: &env.menuItem.ID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := model.SubjectFromRefs(tt.canteenID, tt.menuItemID)
			assert.ErrorIs(t, err, model.ErrInvalidSubject)
		})
	}

	var count int64
	require.NoError(t, env.db.Model(&model.Review{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestReviewService_CreateReview_MissingSubject(t *testing.T) {
	env := setupReviewServiceTest(t)

	_, err := env.service.CreateReview(env.user.ID, model.CanteenSubject(9999), 4, "")
	assert.ErrorIs(t, err, ErrCanteenNotFound)

	_, err = env.service.CreateReview(env.user.ID, model.MenuItemSubject(9999), 4, "")
	assert.ErrorIs(t, err, ErrMenuItemNotFound)

	_, err = env.service.CreateReview(9999, model.CanteenSubject(env.canteen.ID), 4, "")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestReviewService_CreateReview_RecomputeFailureKeepsReview(t *testing.T) {
	env := setupReviewServiceTest(t)
	subject := model.CanteenSubject(env.canteen.ID)

	broken := NewReviewService(
		repository.NewReviewRepository(env.db),
		repository.NewUserRepository(env.db),
		&brokenRatingCanteenRepo{CanteenRepository: env.canteenRepo},
		env.menuItemRepo,
	)

	review, err := broken.CreateReview(env.user.ID, subject, 5, "great")

	// The insert is durable; only the aggregate update failed, and the error
	// says so distinctly so callers retry the recompute, never the insert.
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRecomputeFailed)
	require.NotNil(t, review)
	assert.NotZero(t, review.ID)

	var count int64
	require.NoError(t, env.db.Model(&model.Review{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	// The aggregate is stale, not wrong in a new way.
	canteen, err := env.canteenRepo.FindByID(env.canteen.ID)
	require.NoError(t, err)
	assert.Zero(t, canteen.ReviewCount)
	assert.Zero(t, canteen.Rating)

	// A recompute against the healthy repository heals it without touching
	// the review row.
	require.NoError(t, env.service.RecomputeRating(subject))

	canteen, err = env.canteenRepo.FindByID(env.canteen.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, canteen.ReviewCount)
	assert.InDelta(t, 5.0, canteen.Rating, 1e-9)

	require.NoError(t, env.db.Model(&model.Review{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestReviewService_RecomputeRating_Idempotent(t *testing.T) {
	env := setupReviewServiceTest(t)
	subject := model.CanteenSubject(env.canteen.ID)

	for _, r := range []int{1, 5} {
		_, err := env.service.CreateReview(env.user.ID, subject, r, "")
		require.NoError(t, err)
	}

	for i := 0; i < 3; i++ {
		require.NoError(t, env.service.RecomputeRating(subject))
	}

	canteen, err := env.canteenRepo.FindByID(env.canteen.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, canteen.ReviewCount)
	assert.InDelta(t, 3.0, canteen.Rating, 1e-9)
}

func TestReviewService_RecomputeRating_ZeroReviews(t *testing.T) {
	env := setupReviewServiceTest(t)

	// Stale values left behind by an out-of-band write must be reset.
	require.NoError(t, env.db.Model(&model.Canteen{}).
		Where("id = ?", env.canteen.ID).
		Updates(map[string]interface{}{"rating": 4.9, "review_count": 12}).Error)

	require.NoError(t, env.service.RecomputeRating(model.CanteenSubject(env.canteen.ID)))

	canteen, err := env.canteenRepo.FindByID(env.canteen.ID)
	require.NoError(t, err)
	assert.Zero(t, canteen.ReviewCount)
	assert.Zero(t, canteen.Rating)
}

func TestReviewService_RecomputeAllRatings(t *testing.T) {
	env := setupReviewServiceTest(t)

	_, err := env.service.CreateReview(env.user.ID, model.CanteenSubject(env.canteen.ID), 4, "")
	require.NoError(t, err)
	_, err = env.service.CreateReview(env.user.ID, model.MenuItemSubject(env.menuItem.ID), 3, "")
	require.NoError(t, err)

	// Corrupt both aggregates, then run the repair pass.
	require.NoError(t, env.db.Model(&model.Canteen{}).
		Where("id = ?", env.canteen.ID).
		Updates(map[string]interface{}{"rating": 0, "review_count": 0}).Error)
	require.NoError(t, env.db.Model(&model.MenuItem{}).
		Where("id = ?", env.menuItem.ID).
		Updates(map[string]interface{}{"rating": 0, "review_count": 0}).Error)

	repaired, err := env.service.RecomputeAllRatings()
	require.NoError(t, err)
	assert.Equal(t, 2, repaired)

	canteen, err := env.canteenRepo.FindByID(env.canteen.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, canteen.ReviewCount)
	assert.InDelta(t, 4.0, canteen.Rating, 1e-9)

	item, err := env.menuItemRepo.FindByID(env.menuItem.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, item.ReviewCount)
	assert.InDelta(t, 3.0, item.Rating, 1e-9)
}

func TestReviewService_GetRecentReviews_DefaultLimit(t *testing.T) {
	env := setupReviewServiceTest(t)
	subject := model.CanteenSubject(env.canteen.ID)

	for i := 0; i < 8; i++ {
		_, err := env.service.CreateReview(env.user.ID, subject, 4, "")
		require.NoError(t, err)
	}

	reviews, err := env.service.GetRecentReviews(0)
	require.NoError(t, err)
	assert.Len(t, reviews, 6)

	reviews, err = env.service.GetRecentReviews(3)
	require.NoError(t, err)
	assert.Len(t, reviews, 3)
}

func TestReviewService_GetReviews_MissingSubject(t *testing.T) {
	env := setupReviewServiceTest(t)

	_, err := env.service.GetCanteenReviews(9999)
	assert.ErrorIs(t, err, ErrCanteenNotFound)

	_, err = env.service.GetMenuItemReviews(9999)
	assert.ErrorIs(t, err, ErrMenuItemNotFound)
}
