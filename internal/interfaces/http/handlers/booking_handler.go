package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ledger-chain.backend/internal/domain/entities"
	domainerrors "ledger-chain.backend/internal/domain/errors"
	"ledger-chain.backend/internal/interfaces/http/response"
)

type BookingService interface {
	CreateReservation(ctx context.Context, input *entities.CreateBookingInput) (*entities.Booking, error)
	GetReservation(ctx context.Context, bookingID uuid.UUID) (*entities.Booking, error)
	ConfirmReservation(ctx context.Context, bookingID uuid.UUID, input *entities.ConfirmBookingInput) (*entities.Booking, error)
	CancelReservation(ctx context.Context, bookingID uuid.UUID, input *entities.CancelBookingInput) (*entities.Booking, error)
	CompleteReservation(ctx context.Context, bookingID uuid.UUID) (*entities.Booking, error)
}

// BookingHandler handles reservation endpoints of the booking service
type BookingHandler struct {
	bookingUsecase BookingService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookingUsecase BookingService) *BookingHandler {
	return &BookingHandler{bookingUsecase: bookingUsecase}
}

// CreateBooking reserves a slot and opens the escrow hold
// POST /bookings
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var input entities.CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	booking, err := h.bookingUsecase.CreateReservation(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, booking)
}

// GetBooking gets a booking by ID
// GET /bookings/:id
func (h *BookingHandler) GetBooking(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	booking, err := h.bookingUsecase.GetReservation(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, booking)
}

// ConfirmBooking settles the hold and confirms the booking
// POST /bookings/:id/confirm
func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var input entities.ConfirmBookingInput
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Error(c, domainerrors.BadRequest(err.Error()))
			return
		}
	}

	booking, err := h.bookingUsecase.ConfirmReservation(c.Request.Context(), id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, booking)
}

// CancelBooking releases the hold and cancels the booking
// POST /bookings/:id/cancel
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var input entities.CancelBookingInput
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Error(c, domainerrors.BadRequest(err.Error()))
			return
		}
	}

	booking, err := h.bookingUsecase.CancelReservation(c.Request.Context(), id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, booking)
}

// CompleteBooking marks a confirmed booking as delivered
// POST /bookings/:id/complete
func (h *BookingHandler) CompleteBooking(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	booking, err := h.bookingUsecase.CompleteReservation(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, booking)
}
