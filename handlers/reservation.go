package handlers

import (
	"errors"
	"net/http"

	"seatwise/middleware"
	"seatwise/models"
	"seatwise/services/reservation"
	"seatwise/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReservationHandler exposes the reservation request and approval surface.
type ReservationHandler struct {
	Svc    reservation.ReservationService
	Logger *zap.Logger
}

// NewReservationHandler constructs a ReservationHandler.
func NewReservationHandler(svc reservation.ReservationService, logger *zap.Logger) *ReservationHandler {
	return &ReservationHandler{Svc: svc, Logger: logger}
}

// CreateReservation handles POST /api/reservations.
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	var input struct {
		ProviderID    string `json:"providerId" binding:"required"`
		UnitID        string `json:"unitId" binding:"required"`
		ScheduledDate string `json:"scheduledDate"`
		ScheduledSlot string `json:"scheduledSlot"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	req := reservation.CreateRequest{
		ProviderID:    input.ProviderID,
		UnitID:        input.UnitID,
		RequesterID:   c.GetString(middleware.ContextUserID),
		ScheduledDate: input.ScheduledDate,
		ScheduledSlot: input.ScheduledSlot,
	}

	res, err := h.Svc.Create(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"reservation": res})
}

// DecideReservation handles PUT /api/reservations/:id/decision.
func (h *ReservationHandler) DecideReservation(c *gin.Context) {
	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if input.Status != models.StatusApproved && input.Status != models.StatusRejected {
		utils.JSONError(c, http.StatusBadRequest, "invalid decision",
			"status must be approved or rejected")
		return
	}

	res, err := h.Svc.Decide(
		c.Request.Context(),
		c.Param("id"),
		input.Status,
		c.GetString(middleware.ContextProviderID),
	)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservation": res})
}

// GetReservation handles GET /api/reservations/:id for either party.
func (h *ReservationHandler) GetReservation(c *gin.Context) {
	res, lines, err := h.Svc.GetReservation(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	caller := c.GetString(middleware.ContextUserID)
	if caller == "" {
		caller = c.GetString(middleware.ContextProviderID)
	}
	if caller != res.RequesterID && caller != res.ProviderID {
		utils.JSONError(c, http.StatusForbidden, "action blocked",
			"this reservation belongs to someone else")
		return
	}

	c.JSON(http.StatusOK, gin.H{"reservation": res, "lines": lines})
}

// ListMyReservations handles GET /api/reservations/mine.
func (h *ReservationHandler) ListMyReservations(c *gin.Context) {
	out, err := h.Svc.ListForRequester(c.Request.Context(), c.GetString(middleware.ContextUserID))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservations": out})
}

// ListProviderReservations handles GET /api/reservations/incoming.
func (h *ReservationHandler) ListProviderReservations(c *gin.Context) {
	out, err := h.Svc.ListForProvider(c.Request.Context(), c.GetString(middleware.ContextProviderID))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservations": out})
}

// AttachPaymentRef handles PUT /api/reservations/:id/payment-ref. The
// reference comes from the payment collaborator and is stored opaquely.
func (h *ReservationHandler) AttachPaymentRef(c *gin.Context) {
	var input struct {
		PaymentRef string `json:"paymentRef" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	err := h.Svc.AttachPaymentRef(
		c.Request.Context(),
		c.Param("id"),
		c.GetString(middleware.ContextUserID),
		input.PaymentRef,
	)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "payment reference attached"})
}

// respondError maps the service error taxonomy onto HTTP responses. The
// messages keep "someone else took it" distinct from "try again".
func (h *ReservationHandler) respondError(c *gin.Context, err error) {
	var unauthorized reservation.UnauthorizedError
	var unavailable reservation.UnitUnavailableError
	var invalid reservation.InvalidTransitionError
	var notFound reservation.NotFoundError
	var persistence reservation.PersistenceError

	switch {
	case errors.As(err, &unauthorized):
		utils.JSONError(c, http.StatusForbidden, "action blocked", unauthorized.Reason)
	case errors.As(err, &unavailable):
		utils.JSONError(c, http.StatusConflict, "seat already taken",
			"someone else holds this seat; please pick another one")
	case errors.As(err, &invalid):
		utils.JSONError(c, http.StatusConflict, "reservation state is stale",
			"this reservation is already "+invalid.Current+"; refresh and try again")
	case errors.As(err, &notFound):
		utils.JSONError(c, http.StatusNotFound, "reservation not found", err.Error())
	case errors.As(err, &persistence):
		h.Logger.Error("reservation persistence failure", zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "temporary storage problem",
			"nothing was booked; please try again")
	default:
		h.Logger.Error("unexpected reservation error", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "internal error", "")
	}
}
