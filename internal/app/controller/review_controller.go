package controller

import (
	"errors"
	"net/http"
	"strconv"

	apperrors "github.com/boranno/University-Canteen-Management-System/internal/errors"

	"github.com/boranno/University-Canteen-Management-System/internal/app/model"
	"github.com/boranno/University-Canteen-Management-System/internal/app/service"
	"github.com/boranno/University-Canteen-Management-System/internal/middleware"
	"github.com/gin-gonic/gin"
)

type ReviewController struct {
	reviewService service.ReviewService
}

func NewReviewController(reviewService service.ReviewService) *ReviewController {
	return &ReviewController{reviewService: reviewService}
}

type CreateReviewRequest struct {
	CanteenID  *uint  `json:"canteen_id"`
	MenuItemID *uint  `json:"menu_item_id"`
	Rating     int    `json:"rating" binding:"required,min=1,max=5"`
	Comment    string `json:"comment"`
}

type RecomputeRequest struct {
	CanteenID  *uint `json:"canteen_id"`
	MenuItemID *uint `json:"menu_item_id"`
}

// CreateReview records a review and refreshes the subject's aggregate.
// POST /api/v1/reviews
func (ctrl *ReviewController) CreateReview(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	subject, err := model.SubjectFromRefs(req.CanteenID, req.MenuItemID)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidSubject, err.Error())
		return
	}

	review, err := ctrl.reviewService.CreateReview(userID, subject, req.Rating, req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecomputeFailed):
			// The review itself is persisted; only the denormalized rating is
			// stale. Report success for the review and flag the aggregate.
			log.Error("Review stored but rating recompute failed", err, map[string]interface{}{
				"review_id": review.ID,
			})
			c.JSON(http.StatusCreated, gin.H{
				"review":  review,
				"warning": apperrors.ReviewRecomputeFail,
			})
		case errors.Is(err, service.ErrInvalidRating):
			apperrors.BadRequest(c, apperrors.ReviewInvalidRating, err.Error())
		case errors.Is(err, model.ErrInvalidSubject):
			apperrors.BadRequest(c, apperrors.ValidationInvalidSubject, err.Error())
		case errors.Is(err, service.ErrUserNotFound):
			apperrors.NotFound(c, apperrors.ResourceNotFound, "User not found")
		case errors.Is(err, service.ErrCanteenNotFound):
			apperrors.NotFound(c, apperrors.CanteenNotFound, "Canteen not found")
		case errors.Is(err, service.ErrMenuItemNotFound):
			apperrors.NotFound(c, apperrors.MenuItemNotFound, "Menu item not found")
		default:
			log.Error("Failed to create review", err, map[string]interface{}{
				"user_id": userID,
			})
			apperrors.InternalError(c, "Failed to create review")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"review": review})
}

// ListReviews returns recent reviews; with ?recent=true and optional limit.
// GET /api/v1/reviews
func (ctrl *ReviewController) ListReviews(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "6"))

	reviews, err := ctrl.reviewService.GetRecentReviews(limit)
	if err != nil {
		apperrors.InternalError(c, "Failed to fetch reviews")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reviews": reviews,
		"count":   len(reviews),
	})
}

// ListCanteenReviews returns a canteen's reviews, newest first.
// GET /api/v1/canteens/:id/reviews
func (ctrl *ReviewController) ListCanteenReviews(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	reviews, err := ctrl.reviewService.GetCanteenReviews(id)
	if err != nil {
		if errors.Is(err, service.ErrCanteenNotFound) {
			apperrors.NotFound(c, apperrors.CanteenNotFound, "Canteen not found")
			return
		}
		apperrors.InternalError(c, "Failed to fetch reviews")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reviews": reviews,
		"count":   len(reviews),
	})
}

// ListMenuItemReviews returns a menu item's reviews, newest first.
// GET /api/v1/menu-items/:id/reviews
func (ctrl *ReviewController) ListMenuItemReviews(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	reviews, err := ctrl.reviewService.GetMenuItemReviews(id)
	if err != nil {
		if errors.Is(err, service.ErrMenuItemNotFound) {
			apperrors.NotFound(c, apperrors.MenuItemNotFound, "Menu item not found")
			return
		}
		apperrors.InternalError(c, "Failed to fetch reviews")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reviews": reviews,
		"count":   len(reviews),
	})
}

// ListUserReviews returns the authenticated user's reviews.
// GET /api/v1/reviews/user
func (ctrl *ReviewController) ListUserReviews(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	reviews, err := ctrl.reviewService.GetUserReviews(userID)
	if err != nil {
		apperrors.InternalError(c, "Failed to fetch reviews")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reviews": reviews,
		"count":   len(reviews),
	})
}

// Recompute re-derives aggregates: for one subject when a reference is given,
// for every canteen and menu item when the body is empty. Repair tooling.
// POST /api/v1/reviews/recompute
func (ctrl *ReviewController) Recompute(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req RecomputeRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	if req.CanteenID == nil && req.MenuItemID == nil {
		recomputed, err := ctrl.reviewService.RecomputeAllRatings()
		if err != nil {
			log.Error("Full rating recompute failed", err)
			apperrors.InternalError(c, "Recompute failed")
			return
		}
		c.JSON(http.StatusOK, gin.H{"subjects_recomputed": recomputed})
		return
	}

	subject, err := model.SubjectFromRefs(req.CanteenID, req.MenuItemID)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidSubject, err.Error())
		return
	}

	if err := ctrl.reviewService.RecomputeRating(subject); err != nil {
		log.Error("Rating recompute failed", err, map[string]interface{}{
			"subject": subject,
		})
		apperrors.InternalError(c, "Recompute failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"subjects_recomputed": 1})
}
