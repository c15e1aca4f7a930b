package service

import (
	"errors"
	"fmt"

	"github.com/boranno/University-Canteen-Management-System/internal/app/model"
	"github.com/boranno/University-Canteen-Management-System/internal/app/repository"
	"github.com/boranno/University-Canteen-Management-System/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrInvalidRating = errors.New("rating must be between 1 and 5")

	// ErrRecomputeFailed signals that the review row was persisted but the
	// subsequent rating recompute did not go through. Callers must not retry
	// the whole recordReview (that would duplicate the review); retrying
	// RecomputeRating alone, or waiting for the nightly repair run, heals it.
	ErrRecomputeFailed = errors.New("rating recompute failed after review insert")
)

// ReviewService keeps the rating and review_count columns of canteens and
// menu items equal to the mean and count of their current review rows.
type ReviewService interface {
	// CreateReview persists a review and recomputes the subject's aggregate.
	// When the recompute step fails the already-created review is returned
	// together with an error wrapping ErrRecomputeFailed.
	CreateReview(userID uint, subject model.ReviewSubject, rating int, comment string) (*model.Review, error)
	// RecomputeRating re-derives rating/review_count for one subject from its
	// review rows. Idempotent; safe to call repeatedly or concurrently.
	RecomputeRating(subject model.ReviewSubject) error
	// RecomputeAllRatings re-derives every canteen and menu item aggregate.
	// Repair tooling for aggregates left stale by a failed recompute.
	RecomputeAllRatings() (int, error)
	GetCanteenReviews(canteenID uint) ([]model.Review, error)
	GetMenuItemReviews(menuItemID uint) ([]model.Review, error)
	GetUserReviews(userID uint) ([]model.Review, error)
	GetRecentReviews(limit int) ([]model.Review, error)
}

type reviewService struct {
	reviewRepo   repository.ReviewRepository
	userRepo     repository.UserRepository
	canteenRepo  repository.CanteenRepository
	menuItemRepo repository.MenuItemRepository
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	userRepo repository.UserRepository,
	canteenRepo repository.CanteenRepository,
	menuItemRepo repository.MenuItemRepository,
) ReviewService {
	return &reviewService{
		reviewRepo:   reviewRepo,
		userRepo:     userRepo,
		canteenRepo:  canteenRepo,
		menuItemRepo: menuItemRepo,
	}
}

func (s *reviewService) CreateReview(userID uint, subject model.ReviewSubject, rating int, comment string) (*model.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}
	if err := subject.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if err := s.checkSubjectExists(subject); err != nil {
		return nil, err
	}

	canteenID, menuItemID := subject.Refs()
	review := &model.Review{
		UserID:     userID,
		CanteenID:  canteenID,
		MenuItemID: menuItemID,
		Rating:     rating,
		Comment:    comment,
	}

	if err := s.reviewRepo.Create(review); err != nil {
		logger.Error("Failed to create review", err, map[string]interface{}{
			"user_id": userID,
			"subject": subject,
		})
		return nil, err
	}

	// The insert is durable at this point; a recompute failure leaves a
	// stale aggregate, never a lost review.
	if err := s.RecomputeRating(subject); err != nil {
		logger.Error("Rating recompute failed after review insert", err, map[string]interface{}{
			"review_id": review.ID,
			"subject":   subject,
		})
		return review, fmt.Errorf("%w: %v", ErrRecomputeFailed, err)
	}

	logger.Info("Review created", map[string]interface{}{
		"review_id": review.ID,
		"user_id":   userID,
		"subject":   subject,
		"rating":    rating,
	})
	return review, nil
}

func (s *reviewService) RecomputeRating(subject model.ReviewSubject) error {
	if err := subject.Validate(); err != nil {
		return err
	}

	// Full re-derivation: count and mean over the current rows, then
	// overwrite both columns. Zero reviews resets the rating to 0 instead of
	// leaving it stale. Concurrent recomputes for the same subject are
	// commutative — review rows are append-only, so the last writer's value
	// is as correct as any.
	agg, err := s.reviewRepo.AggregateForSubject(subject)
	if err != nil {
		return err
	}

	switch subject.Kind {
	case model.SubjectCanteen:
		return s.canteenRepo.UpdateRating(subject.ID, agg.Rating, agg.Count)
	case model.SubjectMenuItem:
		return s.menuItemRepo.UpdateRating(subject.ID, agg.Rating, agg.Count)
	}
	return model.ErrInvalidSubject
}

func (s *reviewService) RecomputeAllRatings() (int, error) {
	recomputed := 0

	canteenIDs, err := s.canteenRepo.AllIDs()
	if err != nil {
		return recomputed, err
	}
	for _, id := range canteenIDs {
		if err := s.RecomputeRating(model.CanteenSubject(id)); err != nil {
			logger.Error("Failed to recompute canteen rating", err, map[string]interface{}{
				"canteen_id": id,
			})
			continue
		}
		recomputed++
	}

	menuItemIDs, err := s.menuItemRepo.AllIDs()
	if err != nil {
		return recomputed, err
	}
	for _, id := range menuItemIDs {
		if err := s.RecomputeRating(model.MenuItemSubject(id)); err != nil {
			logger.Error("Failed to recompute menu item rating", err, map[string]interface{}{
				"menu_item_id": id,
			})
			continue
		}
		recomputed++
	}

	logger.Info("Rating recompute pass completed", map[string]interface{}{
		"subjects_recomputed": recomputed,
	})
	return recomputed, nil
}

func (s *reviewService) checkSubjectExists(subject model.ReviewSubject) error {
	switch subject.Kind {
	case model.SubjectCanteen:
		if _, err := s.canteenRepo.FindByID(subject.ID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCanteenNotFound
			}
			return err
		}
	case model.SubjectMenuItem:
		if _, err := s.menuItemRepo.FindByID(subject.ID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMenuItemNotFound
			}
			return err
		}
	}
	return nil
}

func (s *reviewService) GetCanteenReviews(canteenID uint) ([]model.Review, error) {
	if _, err := s.canteenRepo.FindByID(canteenID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCanteenNotFound
		}
		return nil, err
	}
	return s.reviewRepo.FindByCanteen(canteenID)
}

func (s *reviewService) GetMenuItemReviews(menuItemID uint) ([]model.Review, error) {
	if _, err := s.menuItemRepo.FindByID(menuItemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMenuItemNotFound
		}
		return nil, err
	}
	return s.reviewRepo.FindByMenuItem(menuItemID)
}

func (s *reviewService) GetUserReviews(userID uint) ([]model.Review, error) {
	return s.reviewRepo.FindByUser(userID)
}

func (s *reviewService) GetRecentReviews(limit int) ([]model.Review, error) {
	if limit <= 0 {
		limit = 6
	}
	return s.reviewRepo.FindRecent(limit)
}
