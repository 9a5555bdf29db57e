package handlers

import (
	"errors"
	"net/http"

	catalogRepo "seatwise/database/repository/catalog"
	"seatwise/middleware"
	"seatwise/services/catalog"
	"seatwise/services/reservation"
	"seatwise/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CatalogHandler exposes provider catalog management and the combined
// unit+status display endpoint.
type CatalogHandler struct {
	Svc    catalog.CatalogService
	Resv   reservation.ReservationService
	Logger *zap.Logger
}

// NewCatalogHandler constructs a CatalogHandler.
func NewCatalogHandler(svc catalog.CatalogService, resv reservation.ReservationService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{Svc: svc, Resv: resv, Logger: logger}
}

// CreateUnit handles POST /api/catalog/units.
func (h *CatalogHandler) CreateUnit(c *gin.Context) {
	var input struct {
		Label     string  `json:"label" binding:"required"`
		UnitPrice float64 `json:"unitPrice"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	unit, err := h.Svc.CreateUnit(c.Request.Context(),
		c.GetString(middleware.ContextProviderID), input.Label, input.UnitPrice)
	if err != nil {
		h.Logger.Error("failed to create unit", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to create unit", err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"unit": unit})
}

// UpdateUnit handles PATCH /api/catalog/units/:unitID.
func (h *CatalogHandler) UpdateUnit(c *gin.Context) {
	var input struct {
		Label     string  `json:"label"`
		UnitPrice float64 `json:"unitPrice"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	unit, err := h.Svc.UpdateUnit(c.Request.Context(),
		c.GetString(middleware.ContextProviderID), c.Param("unitID"),
		input.Label, input.UnitPrice)
	if err != nil {
		h.respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unit": unit})
}

// DeleteUnit handles DELETE /api/catalog/units/:unitID.
func (h *CatalogHandler) DeleteUnit(c *gin.Context) {
	err := h.Svc.DeleteUnit(c.Request.Context(),
		c.GetString(middleware.ContextProviderID), c.Param("unitID"))
	if err != nil {
		h.respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "unit deleted"})
}

// ListUnits handles GET /api/catalog/units for the authenticated provider.
func (h *CatalogHandler) ListUnits(c *gin.Context) {
	units, err := h.Svc.ListUnits(c.Request.Context(), c.GetString(middleware.ContextProviderID))
	if err != nil {
		h.Logger.Error("failed to list units", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to list units", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"units": units})
}

// GetUnitStatuses handles GET /api/catalog/:providerID/status: every unit of
// the provider with its derived availability, the display input for seat
// pickers.
func (h *CatalogHandler) GetUnitStatuses(c *gin.Context) {
	views, err := h.Resv.UnitStatuses(c.Request.Context(), c.Param("providerID"))
	if err != nil {
		var persistence reservation.PersistenceError
		if errors.As(err, &persistence) {
			h.Logger.Error("failed to resolve unit statuses", zap.Error(err))
			utils.JSONError(c, http.StatusBadGateway, "temporary storage problem", "please try again")
			return
		}
		h.Logger.Error("failed to resolve unit statuses", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to resolve unit statuses", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"units": views})
}

func (h *CatalogHandler) respondCatalogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, catalogRepo.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "unit not found", "")
	case errors.Is(err, catalog.ErrNotOwner):
		utils.JSONError(c, http.StatusForbidden, "action blocked", "this unit belongs to another provider")
	case errors.Is(err, catalog.ErrUnitOccupied):
		utils.JSONError(c, http.StatusConflict, "unit is occupied",
			"an active reservation still references this unit")
	default:
		h.Logger.Error("catalog operation failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "catalog operation failed", err.Error())
	}
}
