package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Catalog endpoints
	CreateUnitHandler      gin.HandlerFunc
	UpdateUnitHandler      gin.HandlerFunc
	DeleteUnitHandler      gin.HandlerFunc
	ListUnitsHandler       gin.HandlerFunc
	GetUnitStatusesHandler gin.HandlerFunc

	// Reservation endpoints
	CreateReservationHandler        gin.HandlerFunc
	DecideReservationHandler        gin.HandlerFunc
	GetReservationHandler           gin.HandlerFunc
	ListMyReservationsHandler       gin.HandlerFunc
	ListProviderReservationsHandler gin.HandlerFunc
	AttachPaymentRefHandler         gin.HandlerFunc

	// Event stream endpoints
	StreamEventsHandler gin.HandlerFunc

	// Device endpoints
	UpdateUserPushTokenHandler     gin.HandlerFunc
	UpdateProviderPushTokenHandler gin.HandlerFunc
}
