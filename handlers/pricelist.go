// File: handlers/pricelist.go
package handlers

import (
	"net/http"

	"freightadmin/models"
	"freightadmin/services/pricelist"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PriceListHandler struct {
	Service pricelist.PriceListService
}

func NewPriceListHandler(svc pricelist.PriceListService) *PriceListHandler {
	return &PriceListHandler{Service: svc}
}

// ListByOwnerHandler handles GET /api/{customers,vendors}/:id/price-lists.
func (h *PriceListHandler) ListByOwnerHandler(ownerType models.OwnerType) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner := models.Owner{OwnerType: ownerType, OwnerID: c.Param("id")}
		lists, err := h.Service.ListByOwner(c.Request.Context(), owner)
		if err != nil {
			respondError(c, err, "Failed to list price lists")
			return
		}
		c.JSON(http.StatusOK, lists)
	}
}

// CreateHandler handles POST /api/{customers,vendors}/:id/price-lists.
func (h *PriceListHandler) CreateHandler(ownerType models.OwnerType) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner := models.Owner{OwnerType: ownerType, OwnerID: c.Param("id")}
		var draft pricelist.Draft
		if !bindJSON(c, &draft) {
			return
		}
		view, err := h.Service.Create(c.Request.Context(), owner, draft)
		if err != nil {
			respondError(c, err, "Failed to create price list")
			return
		}
		c.JSON(http.StatusCreated, view)
	}
}

// GetHandler handles GET /api/price-lists/:id.
func (h *PriceListHandler) GetHandler(c *gin.Context) {
	view, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to fetch price list")
		return
	}
	c.JSON(http.StatusOK, view)
}

// UpdateHeaderHandler handles PUT /api/price-lists/:id.
func (h *PriceListHandler) UpdateHeaderHandler(c *gin.Context) {
	var header models.PriceListHeader
	if !bindJSON(c, &header) {
		return
	}
	view, err := h.Service.UpdateHeader(c.Request.Context(), c.Param("id"), header)
	if err != nil {
		respondError(c, err, "Failed to update price list")
		return
	}
	c.JSON(http.StatusOK, view)
}

// DeleteHandler handles DELETE /api/price-lists/:id.
func (h *PriceListHandler) DeleteHandler(c *gin.Context) {
	id := c.Param("id")
	if err := h.Service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete price list")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "price list deleted"})
}

// AddEntryHandler handles POST /api/price-lists/:id/sub-activities.
func (h *PriceListHandler) AddEntryHandler(c *gin.Context) {
	var entry models.SubActivityPriceEntry
	if !bindJSON(c, &entry) {
		return
	}
	view, err := h.Service.AddEntry(c.Request.Context(), c.Param("id"), entry)
	if err != nil {
		respondError(c, err, "Failed to add sub-activity to price list")
		return
	}
	c.JSON(http.StatusOK, view)
}

// UpdateEntryHandler handles PUT /api/price-lists/:id/sub-activities/:entryId.
func (h *PriceListHandler) UpdateEntryHandler(c *gin.Context) {
	var entry models.SubActivityPriceEntry
	if !bindJSON(c, &entry) {
		return
	}
	view, err := h.Service.UpdateEntry(c.Request.Context(), c.Param("id"), c.Param("entryId"), entry)
	if err != nil {
		respondError(c, err, "Failed to update price list entry")
		return
	}
	c.JSON(http.StatusOK, view)
}

// RemoveEntryHandler handles DELETE /api/price-lists/:id/sub-activities/:entryId.
func (h *PriceListHandler) RemoveEntryHandler(c *gin.Context) {
	id, entryID := c.Param("id"), c.Param("entryId")
	if err := h.Service.RemoveEntry(c.Request.Context(), id, entryID); err != nil {
		respondError(c, err, "Failed to remove price list entry")
		return
	}
	getLogger(c).Info("Removed price entry", zap.String("priceListId", id), zap.String("entryId", entryID))
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "sub-activity removed from price list"})
}
