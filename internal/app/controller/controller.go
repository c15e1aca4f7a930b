package controller

import (
	"strconv"

	apperrors "github.com/boranno/University-Canteen-Management-System/internal/errors"
	"github.com/gin-gonic/gin"
)

func parseUint(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// parseIDParam reads a numeric path parameter and answers 400 on garbage.
func parseIDParam(c *gin.Context, name string) (uint, error) {
	id, err := parseUint(c.Param(name))
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid id")
		return 0, err
	}
	return id, nil
}
