package controller

import (
	"errors"
	"net/http"

	apperrors "github.com/boranno/University-Canteen-Management-System/internal/errors"

	"github.com/boranno/University-Canteen-Management-System/internal/app/service"
	"github.com/boranno/University-Canteen-Management-System/internal/middleware"
	"github.com/gin-gonic/gin"
)

type CanteenController struct {
	canteenService service.CanteenService
}

func NewCanteenController(canteenService service.CanteenService) *CanteenController {
	return &CanteenController{canteenService: canteenService}
}

// ListCanteens returns all canteens ordered by rating, optionally filtered
// by ?search= against name, description and location.
// GET /api/v1/canteens
func (ctrl *CanteenController) ListCanteens(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	canteens, err := ctrl.canteenService.ListCanteens(c.Query("search"))
	if err != nil {
		log.Error("Failed to list canteens", err, nil)
		apperrors.InternalError(c, "Failed to fetch canteens")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"canteens": canteens,
		"count":    len(canteens),
	})
}

// GetCanteen returns a single canteen.
// GET /api/v1/canteens/:id
func (ctrl *CanteenController) GetCanteen(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	canteen, err := ctrl.canteenService.GetCanteen(id)
	if err != nil {
		if errors.Is(err, service.ErrCanteenNotFound) {
			apperrors.NotFound(c, apperrors.CanteenNotFound, "Canteen not found")
			return
		}
		apperrors.InternalError(c, "Failed to fetch canteen")
		return
	}

	c.JSON(http.StatusOK, gin.H{"canteen": canteen})
}

// CreateCanteen registers a new canteen. Admin only.
// POST /api/v1/canteens
func (ctrl *CanteenController) CreateCanteen(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var input service.CanteenInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	canteen, err := ctrl.canteenService.CreateCanteen(input)
	if err != nil {
		log.Error("Failed to create canteen", err, map[string]interface{}{
			"name": input.Name,
		})
		apperrors.InternalError(c, "Failed to create canteen")
		return
	}

	log.Info("Canteen created", map[string]interface{}{
		"canteen_id": canteen.ID,
		"name":       canteen.Name,
	})

	c.JSON(http.StatusCreated, gin.H{"canteen": canteen})
}

// UpdateCanteen replaces the client-writable fields of a canteen. Admin only.
// PUT /api/v1/canteens/:id
func (ctrl *CanteenController) UpdateCanteen(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	var input service.CanteenInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	canteen, err := ctrl.canteenService.UpdateCanteen(id, input)
	if err != nil {
		if errors.Is(err, service.ErrCanteenNotFound) {
			apperrors.NotFound(c, apperrors.CanteenNotFound, "Canteen not found")
			return
		}
		log.Error("Failed to update canteen", err, map[string]interface{}{
			"canteen_id": id,
		})
		apperrors.InternalError(c, "Failed to update canteen")
		return
	}

	c.JSON(http.StatusOK, gin.H{"canteen": canteen})
}

// DeleteCanteen removes a canteen together with its menu items. Admin only.
// DELETE /api/v1/canteens/:id
func (ctrl *CanteenController) DeleteCanteen(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	if err := ctrl.canteenService.DeleteCanteen(id); err != nil {
		if errors.Is(err, service.ErrCanteenNotFound) {
			apperrors.NotFound(c, apperrors.CanteenNotFound, "Canteen not found")
			return
		}
		log.Error("Failed to delete canteen", err, map[string]interface{}{
			"canteen_id": id,
		})
		apperrors.InternalError(c, "Failed to delete canteen")
		return
	}

	log.Info("Canteen deleted", map[string]interface{}{
		"canteen_id": id,
	})

	c.JSON(http.StatusOK, gin.H{"message": "Canteen deleted"})
}
