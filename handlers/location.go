// File: handlers/location.go
package handlers

import (
	"net/http"
	"strconv"

	"freightadmin/models"
	"freightadmin/services/location"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type LocationHandler struct {
	Service location.LocationService
}

func NewLocationHandler(svc location.LocationService) *LocationHandler {
	return &LocationHandler{Service: svc}
}

func (h *LocationHandler) Routes() CrudRoutes {
	return CrudRoutes{
		List:   h.PageHandler,
		Get:    h.GetHandler,
		Create: h.CreateHandler,
		Update: h.UpdateHandler,
		Delete: h.DeleteHandler,
	}
}

// PageHandler handles GET /api/locations?page=&limit=&search=&city=&activeOnly=.
func (h *LocationHandler) PageHandler(c *gin.Context) {
	var filter models.LocationFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid filter: " + err.Error()})
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(location.DefaultPageSize)))

	result, err := h.Service.Page(c.Request.Context(), filter, page, limit)
	if err != nil {
		respondError(c, err, "Failed to list locations")
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *LocationHandler) GetHandler(c *gin.Context) {
	loc, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to fetch location")
		return
	}
	c.JSON(http.StatusOK, loc)
}

func (h *LocationHandler) CreateHandler(c *gin.Context) {
	var loc models.Location
	if !bindJSON(c, &loc) {
		return
	}
	created, err := h.Service.Create(c.Request.Context(), &loc)
	if err != nil {
		respondError(c, err, "Failed to create location")
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *LocationHandler) UpdateHandler(c *gin.Context) {
	var loc models.Location
	if !bindJSON(c, &loc) {
		return
	}
	updated, err := h.Service.Update(c.Request.Context(), c.Param("id"), &loc)
	if err != nil {
		respondError(c, err, "Failed to update location")
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *LocationHandler) DeleteHandler(c *gin.Context) {
	id := c.Param("id")
	if err := h.Service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete location")
		return
	}
	getLogger(c).Info("Deleted location", zap.String("id", id))
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "location deleted"})
}
