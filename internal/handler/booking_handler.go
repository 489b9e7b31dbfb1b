package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/recoverycompanion/internal/service"
)

type bookingPayload struct {
	Date string `json:"date"`
	Time string `json:"time"`
	Mode string `json:"mode"`
	Note string `json:"note"`
}

type bookingStatusPayload struct {
	Status string `json:"status"`
}

// CreateBooking 为当前用户预约治疗师
func (a *API) CreateBooking(c *gin.Context) {
	var payload bookingPayload
	if !bindJSON(c, &payload, "invalid booking payload") {
		return
	}

	booking, err := a.bookings.Create(service.BookingInput{
		Username: loadSession(c).Username,
		Date:     payload.Date,
		Time:     payload.Time,
		Mode:     payload.Mode,
		Note:     payload.Note,
	})
	if err != nil {
		handleBookingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// ListMyBookings 返回当前用户的预约
func (a *API) ListMyBookings(c *gin.Context) {
	bookings, err := a.bookings.List(service.BookingFilter{Username: loadSession(c).Username})
	if err != nil {
		handleBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// UpdateBookingStatus 供治疗师修改预约状态
func (a *API) UpdateBookingStatus(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var payload bookingStatusPayload
	if !bindJSON(c, &payload, "invalid status payload") {
		return
	}

	booking, err := a.bookings.UpdateStatus(id, payload.Status)
	if err != nil {
		handleBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

func handleBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrBookingNotFound):
		respondError(c, http.StatusNotFound, "booking not found")
	case errors.Is(err, service.ErrInvalidBooking):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidUsername):
		respondError(c, http.StatusUnauthorized, "please log in first")
	default:
		respondError(c, http.StatusInternalServerError, "please try again")
	}
}
