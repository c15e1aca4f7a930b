package repository

import (
	"github.com/boranno/University-Canteen-Management-System/internal/app/model"
	"gorm.io/gorm"
)

type CanteenRepository interface {
	Create(canteen *model.Canteen) error
	FindAll() ([]model.Canteen, error)
	FindByID(id uint) (*model.Canteen, error)
	AllIDs() ([]uint, error)
	Search(query string) ([]model.Canteen, error)
	Update(canteen *model.Canteen) error
	// UpdateRating overwrites the derived rating columns. Only the review
	// service calls this.
	UpdateRating(id uint, rating float64, reviewCount int64) error
	Delete(id uint) error
	BulkCreate(canteens []model.Canteen, batchSize int) error
}

type canteenRepository struct {
	db *gorm.DB
}

func NewCanteenRepository(db *gorm.DB) CanteenRepository {
	return &canteenRepository{db: db}
}

func (r *canteenRepository) Create(canteen *model.Canteen) error {
	return r.db.Create(canteen).Error
}

func (r *canteenRepository) FindAll() ([]model.Canteen, error) {
	var canteens []model.Canteen
	err := r.db.Order("rating DESC").Find(&canteens).Error
	if err != nil {
		return nil, err
	}
	return canteens, nil
}

func (r *canteenRepository) FindByID(id uint) (*model.Canteen, error) {
	var canteen model.Canteen
	if err := r.db.First(&canteen, id).Error; err != nil {
		return nil, err
	}
	return &canteen, nil
}

func (r *canteenRepository) AllIDs() ([]uint, error) {
	var ids []uint
	err := r.db.Model(&model.Canteen{}).Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *canteenRepository) Search(query string) ([]model.Canteen, error) {
	var canteens []model.Canteen
	pattern := "%" + query + "%"
	err := r.db.
		Where("name LIKE ? OR description LIKE ? OR location LIKE ?", pattern, pattern, pattern).
		Order("rating DESC").
		Find(&canteens).Error
	if err != nil {
		return nil, err
	}
	return canteens, nil
}

func (r *canteenRepository) Update(canteen *model.Canteen) error {
	return r.db.Save(canteen).Error
}

func (r *canteenRepository) UpdateRating(id uint, rating float64, reviewCount int64) error {
	result := r.db.Model(&model.Canteen{}).
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

// Delete removes a canteen and its menu items in one transaction.
func (r *canteenRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("canteen_id = ?", id).Delete(&model.MenuItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Canteen{}, id).Error
	})
}

func (r *canteenRepository) BulkCreate(canteens []model.Canteen, batchSize int) error {
	return r.db.CreateInBatches(canteens, batchSize).Error
}
