package handlers

import (
	"errors"
	"net/http"

	"counselconnect/models"
	"counselconnect/services/booking"
	"counselconnect/services/notification"
	"counselconnect/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NotifyHandler exposes direct email delivery, bypassing the queue.
type NotifyHandler struct {
	Service notification.NotificationService
	Logger  *zap.Logger
}

func NewNotifyHandler(service notification.NotificationService, logger *zap.Logger) *NotifyHandler {
	return &NotifyHandler{Service: service, Logger: logger}
}

// SendEmail handles POST /api/notify/email.
func (h *NotifyHandler) SendEmail(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if !booking.ValidateEmail(input.Email) {
		utils.JSONError(c, http.StatusBadRequest, "invalid email format", input.Email)
		return
	}

	err := h.Service.SendMail(c.Request.Context(), models.MailPayload{
		To:      []string{input.Email},
		Subject: "Appointment Confirmation",
		Body:    "Your appointment has been confirmed.",
	})
	if err != nil {
		var mailErr notification.MailError
		if errors.As(err, &mailErr) {
			utils.JSONError(c, http.StatusBadGateway, "mail delivery failed", err.Error())
			return
		}
		h.Logger.Error("unexpected mail error", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "mail delivery failed", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Email sent successfully"})
}
