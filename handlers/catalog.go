// File: handlers/catalog.go
package handlers

import (
	"net/http"
	"strconv"

	catalogRepo "freightadmin/database/repository/catalog"
	"freightadmin/models"
	"freightadmin/services/catalog"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CrudRoutes holds the five handlers of one REST collection.
type CrudRoutes struct {
	List   gin.HandlerFunc
	Get    gin.HandlerFunc
	Create gin.HandlerFunc
	Update gin.HandlerFunc
	Delete gin.HandlerFunc
}

// CatalogHandler serves one catalog collection.
type CatalogHandler[T any] struct {
	Service catalog.CrudService[T]
	// Noun is used in messages, e.g. "activity".
	Noun string
	// FilterParam is an optional query parameter matched exactly against the
	// document field of the same name, e.g. "activityId".
	FilterParam string
}

func NewCatalogHandler[T any](svc catalog.CrudService[T], noun, filterParam string) *CatalogHandler[T] {
	return &CatalogHandler[T]{Service: svc, Noun: noun, FilterParam: filterParam}
}

// Routes returns the handler set for registration.
func (h *CatalogHandler[T]) Routes() CrudRoutes {
	return CrudRoutes{
		List:   h.ListHandler,
		Get:    h.GetHandler,
		Create: h.CreateHandler,
		Update: h.UpdateHandler,
		Delete: h.DeleteHandler,
	}
}

// ListHandler handles GET /api/<collection>?search=&activeOnly=.
func (h *CatalogHandler[T]) ListHandler(c *gin.Context) {
	filter := catalogRepo.Filter{Search: c.Query("search")}
	filter.ActiveOnly, _ = strconv.ParseBool(c.Query("activeOnly"))
	if h.FilterParam != "" {
		if v := c.Query(h.FilterParam); v != "" {
			filter.Field, filter.Value = h.FilterParam, v
		}
	}

	docs, err := h.Service.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "Failed to list "+h.Noun+" records")
		return
	}
	c.JSON(http.StatusOK, docs)
}

// GetHandler handles GET /api/<collection>/:id.
func (h *CatalogHandler[T]) GetHandler(c *gin.Context) {
	doc, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to fetch "+h.Noun)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// CreateHandler handles POST /api/<collection>.
func (h *CatalogHandler[T]) CreateHandler(c *gin.Context) {
	var doc T
	if !bindJSON(c, &doc) {
		return
	}
	created, err := h.Service.Create(c.Request.Context(), &doc)
	if err != nil {
		respondError(c, err, "Failed to create "+h.Noun)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateHandler handles PUT /api/<collection>/:id.
func (h *CatalogHandler[T]) UpdateHandler(c *gin.Context) {
	var doc T
	if !bindJSON(c, &doc) {
		return
	}
	updated, err := h.Service.Update(c.Request.Context(), c.Param("id"), &doc)
	if err != nil {
		respondError(c, err, "Failed to update "+h.Noun)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteHandler handles DELETE /api/<collection>/:id.
func (h *CatalogHandler[T]) DeleteHandler(c *gin.Context) {
	id := c.Param("id")
	if err := h.Service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete "+h.Noun)
		return
	}
	getLogger(c).Info("Deleted catalog record", zap.String("noun", h.Noun), zap.String("id", id))
	c.JSON(http.StatusOK, gin.H{"success": true, "message": h.Noun + " deleted"})
}

// SubActivityHandler adds the by-method lookup to the sub-activity collection.
type SubActivityHandler struct {
	*CatalogHandler[models.SubActivity]
	Service catalog.SubActivityService
}

func NewSubActivityHandler(svc catalog.SubActivityService) *SubActivityHandler {
	return &SubActivityHandler{
		CatalogHandler: NewCatalogHandler[models.SubActivity](svc, "sub-activity", "activityId"),
		Service:        svc,
	}
}

// ByMethodHandler handles GET /api/sub-activities/by-method/:method.
func (h *SubActivityHandler) ByMethodHandler(c *gin.Context) {
	method, err := models.ParsePricingMethod(c.Param("method"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	options, err := h.Service.ByMethod(c.Request.Context(), method)
	if err != nil {
		getLogger(c).Error("Failed to look up sub-activities", zap.String("method", string(method)), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to load sub-activities"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": options})
}
