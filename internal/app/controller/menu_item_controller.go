package controller

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	apperrors "github.com/boranno/University-Canteen-Management-System/internal/errors"

	"github.com/boranno/University-Canteen-Management-System/internal/app/service"
	"github.com/boranno/University-Canteen-Management-System/internal/middleware"
	"github.com/gin-gonic/gin"
)

type MenuItemController struct {
	menuItemService service.MenuItemService
}

func NewMenuItemController(menuItemService service.MenuItemService) *MenuItemController {
	return &MenuItemController{menuItemService: menuItemService}
}

// ListMenuItems serves ?popular=true (available items by rating, then review
// count) and ?search= lookups.
// GET /api/v1/menu-items
func (ctrl *MenuItemController) ListMenuItems(c *gin.Context) {
	if strings.EqualFold(c.DefaultQuery("popular", "false"), "true") {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

		items, err := ctrl.menuItemService.GetPopularMenuItems(limit)
		if err != nil {
			apperrors.InternalError(c, "Failed to fetch popular menu items")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"menu_items": items,
			"count":      len(items),
		})
		return
	}

	items, err := ctrl.menuItemService.SearchMenuItems(c.Query("search"))
	if err != nil {
		apperrors.InternalError(c, "Failed to fetch menu items")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"menu_items": items,
		"count":      len(items),
	})
}

// GetMenuItem returns a single menu item.
// GET /api/v1/menu-items/:id
func (ctrl *MenuItemController) GetMenuItem(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	item, err := ctrl.menuItemService.GetMenuItem(id)
	if err != nil {
		if errors.Is(err, service.ErrMenuItemNotFound) {
			apperrors.NotFound(c, apperrors.MenuItemNotFound, "Menu item not found")
			return
		}
		apperrors.InternalError(c, "Failed to fetch menu item")
		return
	}

	c.JSON(http.StatusOK, gin.H{"menu_item": item})
}

// ListCanteenMenu returns a canteen's menu ordered by rating.
// GET /api/v1/canteens/:id/menu-items
func (ctrl *MenuItemController) ListCanteenMenu(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	items, err := ctrl.menuItemService.GetCanteenMenu(id)
	if err != nil {
		if errors.Is(err, service.ErrCanteenNotFound) {
			apperrors.NotFound(c, apperrors.CanteenNotFound, "Canteen not found")
			return
		}
		apperrors.InternalError(c, "Failed to fetch menu")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"menu_items": items,
		"count":      len(items),
	})
}

// CreateMenuItem adds a dish to a canteen's menu. Admin only.
// POST /api/v1/menu-items
func (ctrl *MenuItemController) CreateMenuItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var input service.MenuItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	item, err := ctrl.menuItemService.CreateMenuItem(input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCanteenNotFound):
			apperrors.NotFound(c, apperrors.CanteenNotFound, "Canteen not found")
		case errors.Is(err, service.ErrInvalidPrice):
			apperrors.BadRequest(c, apperrors.ValidationInvalidRange, err.Error())
		default:
			log.Error("Failed to create menu item", err, map[string]interface{}{
				"canteen_id": input.CanteenID,
				"name":       input.Name,
			})
			apperrors.InternalError(c, "Failed to create menu item")
		}
		return
	}

	log.Info("Menu item created", map[string]interface{}{
		"menu_item_id": item.ID,
		"canteen_id":   item.CanteenID,
	})

	c.JSON(http.StatusCreated, gin.H{"menu_item": item})
}

// UpdateMenuItem replaces the client-writable fields of a menu item. Admin only.
// PUT /api/v1/menu-items/:id
func (ctrl *MenuItemController) UpdateMenuItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	var input service.MenuItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	item, err := ctrl.menuItemService.UpdateMenuItem(id, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMenuItemNotFound):
			apperrors.NotFound(c, apperrors.MenuItemNotFound, "Menu item not found")
		case errors.Is(err, service.ErrCanteenNotFound):
			apperrors.NotFound(c, apperrors.CanteenNotFound, "Canteen not found")
		case errors.Is(err, service.ErrInvalidPrice):
			apperrors.BadRequest(c, apperrors.ValidationInvalidRange, err.Error())
		default:
			log.Error("Failed to update menu item", err, map[string]interface{}{
				"menu_item_id": id,
			})
			apperrors.InternalError(c, "Failed to update menu item")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"menu_item": item})
}

// DeleteMenuItem removes a dish. Admin only.
// DELETE /api/v1/menu-items/:id
func (ctrl *MenuItemController) DeleteMenuItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	if err := ctrl.menuItemService.DeleteMenuItem(id); err != nil {
		if errors.Is(err, service.ErrMenuItemNotFound) {
			apperrors.NotFound(c, apperrors.MenuItemNotFound, "Menu item not found")
			return
		}
		log.Error("Failed to delete menu item", err, map[string]interface{}{
			"menu_item_id": id,
		})
		apperrors.InternalError(c, "Failed to delete menu item")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted"})
}
