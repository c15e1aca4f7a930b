package repository

import (
	"github.com/boranno/University-Canteen-Management-System/internal/app/model"
	"gorm.io/gorm"
)

type MenuItemRepository interface {
	Create(item *model.MenuItem) error
	FindByID(id uint) (*model.MenuItem, error)
	FindByCanteen(canteenID uint) ([]model.MenuItem, error)
	FindPopular(limit int) ([]model.MenuItem, error)
	AllIDs() ([]uint, error)
	Search(query string) ([]model.MenuItem, error)
	Update(item *model.MenuItem) error
	// UpdateRating overwrites the derived rating columns. Only the review
	// service calls this.
	UpdateRating(id uint, rating float64, reviewCount int64) error
	Delete(id uint) error
	BulkCreate(items []model.MenuItem, batchSize int) error
}

type menuItemRepository struct {
	db *gorm.DB
}

func NewMenuItemRepository(db *gorm.DB) MenuItemRepository {
	return &menuItemRepository{db: db}
}

func (r *menuItemRepository) Create(item *model.MenuItem) error {
	return r.db.Create(item).Error
}

func (r *menuItemRepository) FindByID(id uint) (*model.MenuItem, error) {
	var item model.MenuItem
	if err := r.db.First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *menuItemRepository) FindByCanteen(canteenID uint) ([]model.MenuItem, error) {
	var items []model.MenuItem
	err := r.db.
		Where("canteen_id = ?", canteenID).
		Order("rating DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *menuItemRepository) FindPopular(limit int) ([]model.MenuItem, error) {
	var items []model.MenuItem
	err := r.db.
		Where("is_available = ?", true).
		Order("rating DESC").
		Order("review_count DESC").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *menuItemRepository) AllIDs() ([]uint, error) {
	var ids []uint
	err := r.db.Model(&model.MenuItem{}).Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *menuItemRepository) Search(query string) ([]model.MenuItem, error) {
	var items []model.MenuItem
	pattern := "%" + query + "%"
	err := r.db.
		Where("name LIKE ? OR description LIKE ? OR category LIKE ?", pattern, pattern, pattern).
		Order("rating DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *menuItemRepository) Update(item *model.MenuItem) error {
	return r.db.Save(item).Error
}

func (r *menuItemRepository) UpdateRating(id uint, rating float64, reviewCount int64) error {
	result := r.db.Model(&model.MenuItem{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"rating":       rating,
			"review_count": reviewCount,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *menuItemRepository) Delete(id uint) error {
	return r.db.Delete(&model.MenuItem{}, id).Error
}

func (r *menuItemRepository) BulkCreate(items []model.MenuItem, batchSize int) error {
	return r.db.CreateInBatches(items, batchSize).Error
}
