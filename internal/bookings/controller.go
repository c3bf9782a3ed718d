package bookings

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"yatra/internal/shared/apperror"
	"yatra/internal/shared/utils/response"
	"yatra/internal/shared/utils/validation"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// BookTrain handles POST /trains/book
func (c *Controller) BookTrain(ctx *gin.Context) {
	var req BookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Validation failed", validation.FieldErrors(err))
		return
	}
	if fieldErrs := req.Validate(); len(fieldErrs) > 0 {
		response.Fail(ctx, http.StatusBadRequest, "Validation failed", fieldErrs)
		return
	}

	resp, err := c.service.BookTrain(ctx.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, apperror.ErrConfirmationFailed):
			// Payment captured, carrier confirmation pending: the booking
			// stays PAID and the caller is told to follow up.
			response.OK(ctx, http.StatusOK,
				"Payment captured, confirmation pending. Our team will follow up with your PNR.", resp)
		case errors.Is(err, apperror.ErrNotAvailable):
			response.Fail(ctx, http.StatusBadRequest, "Train not available for selected date and class", nil)
		case errors.Is(err, apperror.ErrPaymentFailed):
			response.Fail(ctx, http.StatusBadRequest, "Payment failed. Please try again.", nil)
		case errors.Is(err, apperror.ErrDependencyUnavailable):
			response.Fail(ctx, http.StatusBadGateway, "Booking service temporarily unavailable. Please try again.", nil)
		default:
			response.Fail(ctx, http.StatusInternalServerError, "Booking failed. Please try again.", nil)
		}
		return
	}

	response.OK(ctx, http.StatusOK, "Booking confirmed successfully", resp)
}

// GetBooking handles GET /trains/bookings/:bookingId
func (c *Controller) GetBooking(ctx *gin.Context) {
	bookingID, err := uuid.Parse(ctx.Param("bookingId"))
	if err != nil {
		// A malformed identifier can never name a booking.
		response.Fail(ctx, http.StatusNotFound, "Booking not found", nil)
		return
	}

	booking, err := c.service.GetBooking(ctx.Request.Context(), bookingID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			response.Fail(ctx, http.StatusNotFound, "Booking not found", nil)
			return
		}
		response.Fail(ctx, http.StatusInternalServerError, "Failed to get booking details", nil)
		return
	}

	response.OK(ctx, http.StatusOK, "", booking)
}

// ListBookings handles GET /trains/bookings?email=
func (c *Controller) ListBookings(ctx *gin.Context) {
	email := ctx.Query("email")
	if email == "" {
		response.Fail(ctx, http.StatusBadRequest, "email query parameter is required", nil)
		return
	}

	bookings, err := c.service.GetBookingsByEmail(ctx.Request.Context(), email)
	if err != nil {
		response.Fail(ctx, http.StatusInternalServerError, "Failed to list bookings", nil)
		return
	}

	response.OK(ctx, http.StatusOK, "", gin.H{
		"bookings": bookings,
		"count":    len(bookings),
	})
}

// CancelBooking handles POST /trains/bookings/:bookingId/cancel
func (c *Controller) CancelBooking(ctx *gin.Context) {
	bookingID, err := uuid.Parse(ctx.Param("bookingId"))
	if err != nil {
		response.Fail(ctx, http.StatusNotFound, "Booking not found", nil)
		return
	}

	booking, err := c.service.CancelBooking(ctx.Request.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, apperror.ErrNotFound):
			response.Fail(ctx, http.StatusNotFound, "Booking not found", nil)
		case errors.Is(err, apperror.ErrInvalidTransition):
			response.Fail(ctx, http.StatusConflict, "Booking can no longer be cancelled", nil)
		default:
			response.Fail(ctx, http.StatusInternalServerError, "Failed to cancel booking", nil)
		}
		return
	}

	response.OK(ctx, http.StatusOK, "Booking cancelled successfully", booking)
}
