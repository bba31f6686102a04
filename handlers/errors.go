package handlers

import (
	"errors"
	"net/http"

	"freightadmin/database"
	"freightadmin/models"
	"freightadmin/services/catalog"
	"freightadmin/services/location"
	"freightadmin/services/pricelist"
	"freightadmin/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, database.ErrNotFound),
		errors.Is(err, pricelist.ErrPriceListNotFound),
		errors.Is(err, pricelist.ErrEntryNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrInvalidPricingMethod),
		errors.Is(err, models.ErrCrossShapePayload),
		errors.Is(err, models.ErrMissingPricing),
		errors.Is(err, catalog.ErrIDMismatch),
		errors.Is(err, location.ErrIDMismatch):
		return http.StatusBadRequest
	case errors.Is(err, catalog.ErrUnknownActivity),
		errors.Is(err, pricelist.ErrUnknownOwner),
		errors.Is(err, pricelist.ErrUnknownSubActivity),
		errors.Is(err, pricelist.ErrSubActivityNotEligible),
		errors.Is(err, pricelist.ErrUnknownLocation):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// respondError writes err as a JSON error body. Internal failures are logged
// and reported with message only.
func respondError(c *gin.Context, err error, message string) {
	if utils.JSONValidationError(c, err) {
		return
	}
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		getLogger(c).Error(message, zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(status, utils.ErrorResponse{Message: message})
		return
	}
	utils.JSONError(c, status, message, err.Error())
}

// bindJSON decodes the body into dst and answers 400 on failure.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if utils.JSONValidationError(c, err) {
			return false
		}
		if errors.Is(err, models.ErrCrossShapePayload) || errors.Is(err, models.ErrInvalidPricingMethod) {
			utils.JSONError(c, http.StatusBadRequest, "Invalid pricing payload", err.Error())
			return false
		}
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return false
	}
	return true
}
