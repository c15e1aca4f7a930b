package repository

import (
	"github.com/boranno/University-Canteen-Management-System/internal/app/model"
	"github.com/boranno/University-Canteen-Management-System/pkg/logger"
	"gorm.io/gorm"
)

type FavoriteRepository interface {
	Create(favorite *model.Favorite) error
	FindByUser(userID uint) ([]model.Favorite, error)
	// Exists reports whether any favorite of the user matches the filter.
	Exists(userID uint, filter model.FavoriteFilter) (bool, error)
	// Delete removes matching favorites and returns how many rows went away.
	// Deleting zero rows is not an error.
	Delete(userID uint, filter model.FavoriteFilter) (int64, error)
}

type favoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) Create(favorite *model.Favorite) error {
	if err := r.db.Create(favorite).Error; err != nil {
		logger.Debug("Failed to create favorite in database", map[string]interface{}{
			"user_id": favorite.UserID,
			"error":   err.Error(),
		})
		return err
	}
	return nil
}

func (r *favoriteRepository) FindByUser(userID uint) ([]model.Favorite, error) {
	var favorites []model.Favorite
	err := r.db.
		Where("user_id = ?", userID).
		Preload("Canteen").
		Preload("MenuItem").
		Order("created_at DESC").
		Find(&favorites).Error
	if err != nil {
		return nil, err
	}
	return favorites, nil
}

func (r *favoriteRepository) filterScope(userID uint, filter model.FavoriteFilter) *gorm.DB {
	q := r.db.Where("user_id = ?", userID)
	if filter.CanteenID != nil {
		q = q.Where("canteen_id = ?", *filter.CanteenID)
	}
	if filter.MenuItemID != nil {
		q = q.Where("menu_item_id = ?", *filter.MenuItemID)
	}
	return q
}

func (r *favoriteRepository) Exists(userID uint, filter model.FavoriteFilter) (bool, error) {
	var count int64
	err := r.filterScope(userID, filter).
		Model(&model.Favorite{}).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *favoriteRepository) Delete(userID uint, filter model.FavoriteFilter) (int64, error) {
	result := r.filterScope(userID, filter).Delete(&model.Favorite{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
