package service

import (
	"errors"

	"github.com/boranno/University-Canteen-Management-System/internal/app/model"
	"github.com/boranno/University-Canteen-Management-System/internal/app/repository"
	"github.com/boranno/University-Canteen-Management-System/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrMenuItemNotFound = errors.New("menu item not found")
	ErrInvalidPrice     = errors.New("price must not be negative")
)

const defaultPopularLimit = 8

// MenuItemInput is the client-writable part of a menu item; derived rating
// columns are excluded on purpose.
type MenuItemInput struct {
	CanteenID   uint    `json:"canteen_id" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url"`
	Category    string  `json:"category"`
	IsAvailable *bool   `json:"is_available"`
}

type MenuItemService interface {
	GetMenuItem(id uint) (*model.MenuItem, error)
	GetCanteenMenu(canteenID uint) ([]model.MenuItem, error)
	GetPopularMenuItems(limit int) ([]model.MenuItem, error)
	SearchMenuItems(query string) ([]model.MenuItem, error)
	CreateMenuItem(input MenuItemInput) (*model.MenuItem, error)
	UpdateMenuItem(id uint, input MenuItemInput) (*model.MenuItem, error)
	DeleteMenuItem(id uint) error
}

type menuItemService struct {
	menuItemRepo repository.MenuItemRepository
	canteenRepo  repository.CanteenRepository
}

func NewMenuItemService(menuItemRepo repository.MenuItemRepository, canteenRepo repository.CanteenRepository) MenuItemService {
	return &menuItemService{
		menuItemRepo: menuItemRepo,
		canteenRepo:  canteenRepo,
	}
}

func (s *menuItemService) GetMenuItem(id uint) (*model.MenuItem, error) {
	item, err := s.menuItemRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMenuItemNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *menuItemService) GetCanteenMenu(canteenID uint) ([]model.MenuItem, error) {
	if _, err := s.canteenRepo.FindByID(canteenID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCanteenNotFound
		}
		return nil, err
	}
	return s.menuItemRepo.FindByCanteen(canteenID)
}

func (s *menuItemService) GetPopularMenuItems(limit int) ([]model.MenuItem, error) {
	if limit <= 0 {
		limit = defaultPopularLimit
	}
	return s.menuItemRepo.FindPopular(limit)
}

func (s *menuItemService) SearchMenuItems(query string) ([]model.MenuItem, error) {
	return s.menuItemRepo.Search(query)
}

func (s *menuItemService) CreateMenuItem(input MenuItemInput) (*model.MenuItem, error) {
	if input.Price < 0 {
		return nil, ErrInvalidPrice
	}
	if _, err := s.canteenRepo.FindByID(input.CanteenID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCanteenNotFound
		}
		return nil, err
	}

	item := &model.MenuItem{
		CanteenID:   input.CanteenID,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		ImageURL:    input.ImageURL,
		Category:    input.Category,
		IsAvailable: true,
	}
	if input.IsAvailable != nil {
		item.IsAvailable = *input.IsAvailable
	}

	if err := s.menuItemRepo.Create(item); err != nil {
		logger.Error("Failed to create menu item", err, map[string]interface{}{
			"canteen_id": input.CanteenID,
			"name":       input.Name,
		})
		return nil, err
	}

	logger.Info("Menu item created", map[string]interface{}{
		"menu_item_id": item.ID,
		"canteen_id":   item.CanteenID,
	})
	return item, nil
}

func (s *menuItemService) UpdateMenuItem(id uint, input MenuItemInput) (*model.MenuItem, error) {
	if input.Price < 0 {
		return nil, ErrInvalidPrice
	}
	item, err := s.GetMenuItem(id)
	if err != nil {
		return nil, err
	}

	item.Name = input.Name
	item.Description = input.Description
	item.Price = input.Price
	item.ImageURL = input.ImageURL
	item.Category = input.Category
	if input.IsAvailable != nil {
		item.IsAvailable = *input.IsAvailable
	}

	if err := s.menuItemRepo.Update(item); err != nil {
		logger.Error("Failed to update menu item", err, map[string]interface{}{
			"menu_item_id": id,
		})
		return nil, err
	}
	return item, nil
}

func (s *menuItemService) DeleteMenuItem(id uint) error {
	if _, err := s.GetMenuItem(id); err != nil {
		return err
	}
	return s.menuItemRepo.Delete(id)
}
