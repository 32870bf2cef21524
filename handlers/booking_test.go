package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"counselconnect/models"
	"counselconnect/services/booking"
	"counselconnect/services/calendar"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubBookingService struct {
	result   *models.AvailabilityResult
	checkErr error
	conf     *models.BookingConfirmation
	bookErr  error
	lastDate time.Time
}

func (s *stubBookingService) CheckAvailableSlots(_ context.Context, date time.Time, _, _ string) (*models.AvailabilityResult, error) {
	s.lastDate = date
	if s.checkErr != nil {
		return nil, s.checkErr
	}
	return s.result, nil
}

func (s *stubBookingService) BookAppointment(_ context.Context, _ models.BookingRequest) (*models.BookingConfirmation, error) {
	if s.bookErr != nil {
		return nil, s.bookErr
	}
	return s.conf, nil
}

func newTestRouter(svc booking.BookingService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewBookingHandler(svc, zap.NewNop())
	r := gin.New()
	r.POST("/check-available-slots", handler.CheckAvailableSlots)
	r.POST("/book-appointment", handler.BookAppointment)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCheckAvailableSlotsEndpoint(t *testing.T) {
	svc := &stubBookingService{result: &models.AvailabilityResult{
		AvailableSlots: []string{"09:00", "09:30"},
		BookedSlots:    []string{"10:00 - 10:30"},
	}}
	r := newTestRouter(svc)

	w := postJSON(t, r, "/check-available-slots", gin.H{
		"date":      "2026-03-09T00:00:00Z",
		"timeRange": "morning",
		"counselor": "counselor1",
	})

	require.Equal(t, http.StatusOK, w.Code)
	var got models.AvailabilityResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, []string{"09:00", "09:30"}, got.AvailableSlots)
	assert.Equal(t, []string{"10:00 - 10:30"}, got.BookedSlots)
}

func TestCheckAvailableSlotsAcceptsBareDate(t *testing.T) {
	svc := &stubBookingService{result: &models.AvailabilityResult{}}
	r := newTestRouter(svc)

	w := postJSON(t, r, "/check-available-slots", gin.H{
		"date":      "2026-03-09",
		"timeRange": "evening",
		"counselor": "counselor1",
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2026, svc.lastDate.Year())
	assert.Equal(t, time.March, svc.lastDate.Month())
}

func TestCheckAvailableSlotsMissingFields(t *testing.T) {
	r := newTestRouter(&stubBookingService{})

	w := postJSON(t, r, "/check-available-slots", gin.H{"date": "2026-03-09"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckAvailableSlotsValidationMapsTo400(t *testing.T) {
	svc := &stubBookingService{checkErr: booking.UnknownTimeRangeLabelError{Label: "midnight"}}
	r := newTestRouter(svc)

	w := postJSON(t, r, "/check-available-slots", gin.H{
		"date":      "2026-03-09",
		"timeRange": "midnight",
		"counselor": "counselor1",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckAvailableSlotsReadErrorMapsTo502(t *testing.T) {
	svc := &stubBookingService{
		checkErr: calendar.ReadError{CounselorID: "counselor1", Cause: errors.New("timeout")},
	}
	r := newTestRouter(svc)

	w := postJSON(t, r, "/check-available-slots", gin.H{
		"date":      "2026-03-09",
		"timeRange": "morning",
		"counselor": "counselor1",
	})

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestBookAppointmentEndpoint(t *testing.T) {
	svc := &stubBookingService{conf: &models.BookingConfirmation{
		EventID:  "evt-7",
		MeetLink: "https://meet.google.com/evt-7",
	}}
	r := newTestRouter(svc)

	w := postJSON(t, r, "/book-appointment", gin.H{
		"startTime": "2026-03-09T09:30:00Z",
		"endTime":   "2026-03-09T10:30:00Z",
		"counselor": "counselor1",
		"userEmail": "a@b.com",
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Appointment booked successfully")
	assert.Contains(t, w.Body.String(), "evt-7")
}

func TestBookAppointmentLostRaceMapsTo409(t *testing.T) {
	svc := &stubBookingService{bookErr: booking.SlotNoLongerAvailableError{CounselorID: "counselor1"}}
	r := newTestRouter(svc)

	w := postJSON(t, r, "/book-appointment", gin.H{
		"startTime": "2026-03-09T09:30:00Z",
		"endTime":   "2026-03-09T10:30:00Z",
		"counselor": "counselor1",
		"userEmail": "a@b.com",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestBookAppointmentInvalidEmailMapsTo400(t *testing.T) {
	svc := &stubBookingService{bookErr: booking.InvalidEmailError{Email: "broken"}}
	r := newTestRouter(svc)

	w := postJSON(t, r, "/book-appointment", gin.H{
		"startTime": "2026-03-09T09:30:00Z",
		"endTime":   "2026-03-09T10:30:00Z",
		"counselor": "counselor1",
		"userEmail": "broken",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
