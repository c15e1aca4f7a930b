package controller

import (
	"errors"
	"net/http"

	apperrors "github.com/boranno/University-Canteen-Management-System/internal/errors"

	"github.com/boranno/University-Canteen-Management-System/internal/app/model"
	"github.com/boranno/University-Canteen-Management-System/internal/app/service"
	"github.com/boranno/University-Canteen-Management-System/internal/middleware"
	"github.com/gin-gonic/gin"
)

type FavoriteController struct {
	favoriteService service.FavoriteService
}

func NewFavoriteController(favoriteService service.FavoriteService) *FavoriteController {
	return &FavoriteController{favoriteService: favoriteService}
}

type AddFavoriteRequest struct {
	CanteenID  *uint `json:"canteen_id"`
	MenuItemID *uint `json:"menu_item_id"`
}

// ListFavorites returns the user's favorites with their subjects preloaded.
// GET /api/v1/favorites
func (ctrl *FavoriteController) ListFavorites(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	favorites, err := ctrl.favoriteService.GetUserFavorites(userID)
	if err != nil {
		log.Error("Failed to fetch favorites", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "Failed to fetch favorites")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"favorites": favorites,
		"count":     len(favorites),
	})
}

// AddFavorite marks a canteen or a menu item as favorite.
// POST /api/v1/favorites
func (ctrl *FavoriteController) AddFavorite(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	var req AddFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	subject, err := model.SubjectFromRefs(req.CanteenID, req.MenuItemID)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidSubject, err.Error())
		return
	}

	favorite, err := ctrl.favoriteService.AddFavorite(userID, subject)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFavoriteAlreadyExists):
			apperrors.Conflict(c, apperrors.FavoriteAlreadyExists, "Already marked as favorite")
		case errors.Is(err, service.ErrCanteenNotFound):
			apperrors.NotFound(c, apperrors.CanteenNotFound, "Canteen not found")
		case errors.Is(err, service.ErrMenuItemNotFound):
			apperrors.NotFound(c, apperrors.MenuItemNotFound, "Menu item not found")
		case errors.Is(err, model.ErrInvalidSubject):
			apperrors.BadRequest(c, apperrors.ValidationInvalidSubject, err.Error())
		default:
			log.Error("Failed to add favorite", err, map[string]interface{}{
				"user_id": userID,
			})
			apperrors.InternalError(c, "Failed to add favorite")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"favorite": favorite})
}

// RemoveFavorite deletes favorites matching the query constraints.
// DELETE /api/v1/favorites?canteen_id=&menu_item_id=
func (ctrl *FavoriteController) RemoveFavorite(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	filter, err := favoriteFilterFromQuery(c)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidSubject, err.Error())
		return
	}

	removed, err := ctrl.favoriteService.RemoveFavorite(userID, filter)
	if err != nil {
		if errors.Is(err, model.ErrEmptyFavoriteFilter) {
			apperrors.BadRequest(c, apperrors.ValidationInvalidSubject, err.Error())
			return
		}
		log.Error("Failed to remove favorite", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "Failed to remove favorite")
		return
	}

	if !removed {
		apperrors.NotFound(c, apperrors.FavoriteNotFound, "Favorite not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Favorite removed"})
}

// CheckFavorite reports whether a matching favorite exists.
// GET /api/v1/favorites/check?canteen_id=&menu_item_id=
func (ctrl *FavoriteController) CheckFavorite(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	filter, err := favoriteFilterFromQuery(c)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidSubject, err.Error())
		return
	}

	isFavorite, err := ctrl.favoriteService.IsFavorite(userID, filter)
	if err != nil {
		if errors.Is(err, model.ErrEmptyFavoriteFilter) {
			apperrors.BadRequest(c, apperrors.ValidationInvalidSubject, err.Error())
			return
		}
		apperrors.InternalError(c, "Failed to check favorite")
		return
	}

	c.JSON(http.StatusOK, gin.H{"is_favorite": isFavorite})
}

func favoriteFilterFromQuery(c *gin.Context) (model.FavoriteFilter, error) {
	var filter model.FavoriteFilter

	if raw := c.Query("canteen_id"); raw != "" {
		id, err := parseUint(raw)
		if err != nil {
			return filter, model.ErrInvalidSubject
		}
		filter.CanteenID = &id
	}
	if raw := c.Query("menu_item_id"); raw != "" {
		id, err := parseUint(raw)
		if err != nil {
			return filter, model.ErrInvalidSubject
		}
		filter.MenuItemID = &id
	}

	return filter, filter.Validate()
}
