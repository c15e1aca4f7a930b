package service

import (
	"errors"

	apperrors "github.com/boranno/University-Canteen-Management-System/internal/errors"

	"github.com/boranno/University-Canteen-Management-System/internal/app/model"
	"github.com/boranno/University-Canteen-Management-System/internal/app/repository"
	"github.com/boranno/University-Canteen-Management-System/pkg/logger"
	"gorm.io/gorm"
)

// ErrFavoriteAlreadyExists is the chosen duplicate policy: a second add for
// the same (user, subject) pair is a conflict, not a silent no-op.
var ErrFavoriteAlreadyExists = errors.New("already marked as favorite")

// FavoriteService maintains the uniqueness invariant on (user, subject)
// favorite pairs. The invariant lives in composite unique indexes on the
// favorites table, so concurrent double submits are resolved by the database
// and surface here as ErrFavoriteAlreadyExists.
type FavoriteService interface {
	AddFavorite(userID uint, subject model.ReviewSubject) (*model.Favorite, error)
	RemoveFavorite(userID uint, filter model.FavoriteFilter) (bool, error)
	IsFavorite(userID uint, filter model.FavoriteFilter) (bool, error)
	GetUserFavorites(userID uint) ([]model.Favorite, error)
}

type favoriteService struct {
	favoriteRepo repository.FavoriteRepository
	canteenRepo  repository.CanteenRepository
	menuItemRepo repository.MenuItemRepository
}

func NewFavoriteService(
	favoriteRepo repository.FavoriteRepository,
	canteenRepo repository.CanteenRepository,
	menuItemRepo repository.MenuItemRepository,
) FavoriteService {
	return &favoriteService{
		favoriteRepo: favoriteRepo,
		canteenRepo:  canteenRepo,
		menuItemRepo: menuItemRepo,
	}
}

func (s *favoriteService) AddFavorite(userID uint, subject model.ReviewSubject) (*model.Favorite, error) {
	if err := subject.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkSubjectExists(subject); err != nil {
		return nil, err
	}

	canteenID, menuItemID := subject.Refs()
	favorite := &model.Favorite{
		UserID:     userID,
		CanteenID:  canteenID,
		MenuItemID: menuItemID,
	}

	if err := s.favoriteRepo.Create(favorite); err != nil {
		if apperrors.IsDuplicateKey(err) {
			logger.Warn("Duplicate favorite rejected", map[string]interface{}{
				"user_id": userID,
				"subject": subject,
			})
			return nil, ErrFavoriteAlreadyExists
		}
		logger.Error("Failed to create favorite", err, map[string]interface{}{
			"user_id": userID,
			"subject": subject,
		})
		return nil, err
	}

	logger.Info("Favorite added", map[string]interface{}{
		"favorite_id": favorite.ID,
		"user_id":     userID,
		"subject":     subject,
	})
	return favorite, nil
}

func (s *favoriteService) RemoveFavorite(userID uint, filter model.FavoriteFilter) (bool, error) {
	if err := filter.Validate(); err != nil {
		return false, err
	}

	removed, err := s.favoriteRepo.Delete(userID, filter)
	if err != nil {
		logger.Error("Failed to remove favorite", err, map[string]interface{}{
			"user_id": userID,
		})
		return false, err
	}

	logger.Info("Favorite removal processed", map[string]interface{}{
		"user_id":      userID,
		"rows_removed": removed,
	})
	return removed > 0, nil
}

func (s *favoriteService) IsFavorite(userID uint, filter model.FavoriteFilter) (bool, error) {
	if err := filter.Validate(); err != nil {
		return false, err
	}
	return s.favoriteRepo.Exists(userID, filter)
}

func (s *favoriteService) GetUserFavorites(userID uint) ([]model.Favorite, error) {
	return s.favoriteRepo.FindByUser(userID)
}

func (s *favoriteService) checkSubjectExists(subject model.ReviewSubject) error {
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
