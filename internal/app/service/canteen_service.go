package service

import (
	"errors"

	"github.com/boranno/University-Canteen-Management-System/internal/app/model"
	"github.com/boranno/University-Canteen-Management-System/internal/app/repository"
	"github.com/boranno/University-Canteen-Management-System/pkg/logger"
	"gorm.io/gorm"
)

var ErrCanteenNotFound = errors.New("canteen not found")

// CanteenInput is the client-writable part of a canteen. Rating and
// review_count are deliberately absent: those columns belong to the review
// service.
type CanteenInput struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Location    string   `json:"location" binding:"required"`
	ImageURL    string   `json:"image_url"`
	OpenTime    string   `json:"open_time" binding:"required"`
	CloseTime   string   `json:"close_time" binding:"required"`
	IsOpen      *bool    `json:"is_open"`
	Tags        []string `json:"tags"`
}

type CanteenService interface {
	ListCanteens(search string) ([]model.Canteen, error)
	GetCanteen(id uint) (*model.Canteen, error)
	CreateCanteen(input CanteenInput) (*model.Canteen, error)
	UpdateCanteen(id uint, input CanteenInput) (*model.Canteen, error)
	DeleteCanteen(id uint) error
}

type canteenService struct {
	canteenRepo repository.CanteenRepository
}

func NewCanteenService(canteenRepo repository.CanteenRepository) CanteenService {
	return &canteenService{canteenRepo: canteenRepo}
}

func (s *canteenService) ListCanteens(search string) ([]model.Canteen, error) {
	if search != "" {
		return s.canteenRepo.Search(search)
	}
	return s.canteenRepo.FindAll()
}

func (s *canteenService) GetCanteen(id uint) (*model.Canteen, error) {
	canteen, err := s.canteenRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCanteenNotFound
		}
		return nil, err
	}
	return canteen, nil
}

func (s *canteenService) CreateCanteen(input CanteenInput) (*model.Canteen, error) {
	canteen := &model.Canteen{
		Name:        input.Name,
		Description: input.Description,
		Location:    input.Location,
		ImageURL:    input.ImageURL,
		OpenTime:    input.OpenTime,
		CloseTime:   input.CloseTime,
		IsOpen:      true,
		Tags:        input.Tags,
	}
	if input.IsOpen != nil {
		canteen.IsOpen = *input.IsOpen
	}

	if err := s.canteenRepo.Create(canteen); err != nil {
		logger.Error("Failed to create canteen", err, map[string]interface{}{
			"name": input.Name,
		})
		return nil, err
	}

	logger.Info("Canteen created", map[string]interface{}{
		"canteen_id": canteen.ID,
		"name":       canteen.Name,
	})
	return canteen, nil
}

func (s *canteenService) UpdateCanteen(id uint, input CanteenInput) (*model.Canteen, error) {
	canteen, err := s.GetCanteen(id)
	if err != nil {
		return nil, err
	}

	canteen.Name = input.Name
	canteen.Description = input.Description
	canteen.Location = input.Location
	canteen.ImageURL = input.ImageURL
	canteen.OpenTime = input.OpenTime
	canteen.CloseTime = input.CloseTime
	canteen.Tags = input.Tags
	if input.IsOpen != nil {
		canteen.IsOpen = *input.IsOpen
	}

	if err := s.canteenRepo.Update(canteen); err != nil {
		logger.Error("Failed to update canteen", err, map[string]interface{}{
			"canteen_id": id,
		})
		return nil, err
	}
	return canteen, nil
}

func (s *canteenService) DeleteCanteen(id uint) error {
	if _, err := s.GetCanteen(id); err != nil {
		return err
	}

	// Menu items go with their canteen; the repository handles both in one
	// transaction.
	if err := s.canteenRepo.Delete(id); err != nil {
		logger.Error("Failed to delete canteen", err, map[string]interface{}{
			"canteen_id": id,
		})
		return err
	}

	logger.Info("Canteen deleted", map[string]interface{}{
		"canteen_id": id,
	})
	return nil
}
