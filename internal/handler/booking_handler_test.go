package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/recoverycompanion/internal/db"
	"github.com/recoverycompanion/internal/service"
)

func setupBookingRoutes(srv *testServer) {
	user := srv.userGroup()
	user.POST("/api/progress", srv.api.LogProgress)
	user.GET("/api/progress", srv.api.ListProgress)
	user.POST("/api/bookings", srv.api.CreateBooking)
	user.GET("/api/bookings", srv.api.ListMyBookings)

	therapist := srv.therapistGroup()
	therapist.PUT("/api/bookings/:id/status", srv.api.UpdateBookingStatus)
}

func TestProgressEndpoints(t *testing.T) {
	srv := newTestServer(t)
	setupBookingRoutes(srv)
	srv.login("Asha", "english")

	rec := srv.sendJSON(http.MethodPost, "/api/progress", `{"mood":"anxious","craving":9,"usage":1}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var entry db.ProgressLog
	decodeJSON(t, rec, &entry)
	if entry.Risk != service.RiskHigh || entry.Username != "Asha" {
		t.Fatalf("unexpected progress entry: %+v", entry)
	}

	if rec := srv.sendJSON(http.MethodPost, "/api/progress", `{"craving":11}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for out-of-range craving, got %d", rec.Code)
	}

	var list struct {
		Logs []db.ProgressLog `json:"logs"`
	}
	decodeJSON(t, srv.getJSON("/api/progress"), &list)
	if len(list.Logs) != 1 {
		t.Fatalf("expected 1 log, got %d", len(list.Logs))
	}
}

func TestBookingFlow(t *testing.T) {
	srv := newTestServer(t)
	setupBookingRoutes(srv)
	srv.login("Asha", "english")

	rec := srv.sendJSON(http.MethodPost, "/api/bookings", `{"date":"2024-06-20","time":"10:30","mode":"In-person","note":"first visit"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var booking db.Booking
	decodeJSON(t, rec, &booking)
	if booking.Status != service.BookingStatusPending || booking.Reference == "" {
		t.Fatalf("unexpected booking: %+v", booking)
	}

	if rec := srv.sendJSON(http.MethodPost, "/api/bookings", `{"date":"soon"}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad date, got %d", rec.Code)
	}

	statusPath := fmt.Sprintf("/api/bookings/%d/status", booking.ID)
	if rec := srv.sendJSON(http.MethodPut, statusPath, `{"status":"Confirmed"}`); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected users to be locked out of status updates, got %d", rec.Code)
	}

	srv.loginTherapist("counsellor", "s3cret")
	rec = srv.sendJSON(http.MethodPut, statusPath, `{"status":"confirmed"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	decodeJSON(t, rec, &booking)
	if booking.Status != service.BookingStatusConfirmed {
		t.Fatalf("expected confirmed, got %q", booking.Status)
	}

	if rec := srv.sendJSON(http.MethodPut, "/api/bookings/999/status", `{"status":"Cancelled"}`); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown booking, got %d", rec.Code)
	}
	if rec := srv.sendJSON(http.MethodPut, "/api/bookings/abc/status", `{"status":"Cancelled"}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad id, got %d", rec.Code)
	}

	// the user session survives the therapist login on the same cookie
	var mine struct {
		Bookings []db.Booking `json:"bookings"`
	}
	decodeJSON(t, srv.getJSON("/api/bookings"), &mine)
	if len(mine.Bookings) != 1 || mine.Bookings[0].Status != service.BookingStatusConfirmed {
		t.Fatalf("unexpected bookings for user: %+v", mine.Bookings)
	}
}
