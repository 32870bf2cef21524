package handlers

import (
	"errors"
	"net/http"
	"time"

	"counselconnect/models"
	"counselconnect/services/booking"
	"counselconnect/services/calendar"
	"counselconnect/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the availability/booking engine over HTTP.
type BookingHandler struct {
	Service booking.BookingService
	Logger  *zap.Logger
}

func NewBookingHandler(service booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: service, Logger: logger}
}

// CheckAvailableSlots handles POST /api/booking/check-available-slots.
func (h *BookingHandler) CheckAvailableSlots(c *gin.Context) {
	var input struct {
		Date      string `json:"date" binding:"required"`
		TimeRange string `json:"timeRange" binding:"required"`
		Counselor string `json:"counselor" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	date, err := parseDate(input.Date)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid date", err.Error())
		return
	}

	result, err := h.Service.CheckAvailableSlots(c.Request.Context(), date, input.TimeRange, input.Counselor)
	if err != nil {
		h.respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// BookAppointment handles POST /api/booking/book-appointment.
func (h *BookingHandler) BookAppointment(c *gin.Context) {
	var input struct {
		StartTime time.Time `json:"startTime" binding:"required"`
		EndTime   time.Time `json:"endTime" binding:"required"`
		Counselor string    `json:"counselor" binding:"required"`
		UserEmail string    `json:"userEmail" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	confirmation, err := h.Service.BookAppointment(c.Request.Context(), models.BookingRequest{
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		CounselorID: input.Counselor,
		UserEmail:   input.UserEmail,
	})
	if err != nil {
		h.respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Appointment booked successfully",
		"confirmation": confirmation,
	})
}

// respondBookingError maps engine errors onto HTTP statuses: local
// validation to 400, a lost slot race to 409, collaborator failures to 502.
func (h *BookingHandler) respondBookingError(c *gin.Context, err error) {
	var gone booking.SlotNoLongerAvailableError
	var readErr calendar.ReadError
	var writeErr calendar.WriteError

	switch {
	case booking.IsValidationError(err):
		utils.JSONError(c, http.StatusBadRequest, "validation failed", err.Error())
	case errors.As(err, &gone):
		utils.JSONError(c, http.StatusConflict, "slot no longer available", err.Error())
	case errors.As(err, &readErr):
		utils.JSONError(c, http.StatusBadGateway, "calendar read failed", err.Error())
	case errors.As(err, &writeErr):
		utils.JSONError(c, http.StatusBadGateway, "calendar write failed", err.Error())
	default:
		h.Logger.Error("unexpected booking error", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "booking failed", err.Error())
	}
}

// parseDate accepts either a full RFC3339 timestamp (what the chat widget
// sends) or a bare YYYY-MM-DD date.
func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse(models.DateFormat, raw)
}
