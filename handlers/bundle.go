package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle aggregates every endpoint handler for route registration.
type HandlerBundle struct {
	// Booking endpoints.
	CheckAvailableSlots gin.HandlerFunc
	BookAppointment     gin.HandlerFunc

	// Chat endpoints.
	StartChatSession gin.HandlerFunc
	AdvanceChat      gin.HandlerFunc

	// Notification endpoints.
	SendEmail gin.HandlerFunc

	// Counselor calendar onboarding.
	AuthConsentURL gin.HandlerFunc
	AuthCallback   gin.HandlerFunc
}
