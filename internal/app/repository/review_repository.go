package repository

import (
	"github.com/boranno/University-Canteen-Management-System/internal/app/model"
	"gorm.io/gorm"
)

// SubjectAggregate is the re-derived state of a subject's reviews.
type SubjectAggregate struct {
	Count  int64
	Rating float64 // mean of all ratings, 0 when Count is 0
}

type ReviewRepository interface {
	Create(review *model.Review) error
	FindByID(id uint) (*model.Review, error)
	FindByCanteen(canteenID uint) ([]model.Review, error)
	FindByMenuItem(menuItemID uint) ([]model.Review, error)
	FindByUser(userID uint) ([]model.Review, error)
	FindRecent(limit int) ([]model.Review, error)
	// AggregateForSubject scans all current review rows for the subject and
	// returns their count and mean rating. This is the single source the
	// derived columns are computed from.
	AggregateForSubject(subject model.ReviewSubject) (SubjectAggregate, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(review *model.Review) error {
	return r.db.Create(review).Error
}

func (r *reviewRepository) FindByID(id uint) (*model.Review, error) {
	var review model.Review
	err := r.db.Preload("User").First(&review, id).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) FindByCanteen(canteenID uint) ([]model.Review, error) {
	var reviews []model.Review
	err := r.db.
		Where("canteen_id = ?", canteenID).
		Preload("User").
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) FindByMenuItem(menuItemID uint) ([]model.Review, error) {
	var reviews []model.Review
	err := r.db.
		Where("menu_item_id = ?", menuItemID).
		Preload("User").
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) FindByUser(userID uint) ([]model.Review, error) {
	var reviews []model.Review
	err := r.db.
		Where("user_id = ?", userID).
		Preload("Canteen").
		Preload("MenuItem").
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) FindRecent(limit int) ([]model.Review, error) {
	var reviews []model.Review
	err := r.db.
		Preload("User").
		Preload("Canteen").
		Preload("MenuItem").
		Order("created_at DESC").
		Limit(limit).
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) subjectScope(subject model.ReviewSubject) *gorm.DB {
	q := r.db.Model(&model.Review{})
	if subject.Kind == model.SubjectCanteen {
		return q.Where("canteen_id = ?", subject.ID)
	}
	return q.Where("menu_item_id = ?", subject.ID)
}

func (r *reviewRepository) AggregateForSubject(subject model.ReviewSubject) (SubjectAggregate, error) {
	var agg SubjectAggregate

	if err := subject.Validate(); err != nil {
		return SubjectAggregate{}, err
	}
	if err := r.subjectScope(subject).Count(&agg.Count).Error; err != nil {
		return SubjectAggregate{}, err
	}
	if agg.Count == 0 {
		return agg, nil
	}

	err := r.subjectScope(subject).
		Select("AVG(rating)").
		Scan(&agg.Rating).Error
	if err != nil {
		return SubjectAggregate{}, err
	}
	return agg, nil
}
