package handler

import (
	"encoding/csv"
	"net/http"
	"strings"
	"testing"

	"github.com/recoverycompanion/internal/service"
)

func setupDashboardRoutes(srv *testServer) {
	user := srv.userGroup()
	user.POST("/api/tracker/today", srv.api.MarkToday)

	therapist := srv.therapistGroup()
	therapist.GET("/therapist/dashboard", srv.api.ShowTherapistDashboard)
	therapist.GET("/api/dashboard", srv.api.GetDashboard)
	therapist.GET("/api/dashboard/logins", srv.api.GetLoginCounts)
	therapist.GET("/api/dashboard/patients", srv.api.GetPatientRecords)
	therapist.GET("/api/dashboard/missed", srv.api.GetMissedEntries)
	therapist.GET("/api/export/recovery.csv", srv.api.ExportRecovery)
	therapist.GET("/api/export/bookings.csv", srv.api.ExportBookings)
}

func TestDashboardEndpoints(t *testing.T) {
	srv := newTestServer(t)
	setupDashboardRoutes(srv)
	srv.login("Asha", "english")
	srv.do(http.MethodPost, "/api/tracker/today", nil, "")
	srv.loginTherapist("counsellor", "s3cret")

	var logins struct {
		Counts []service.LoginCount `json:"counts"`
	}
	decodeJSON(t, srv.getJSON("/api/dashboard/logins"), &logins)
	if len(logins.Counts) != 1 || logins.Counts[0].Count != 1 {
		t.Fatalf("unexpected login counts: %+v", logins.Counts)
	}

	var patients struct {
		Patients []service.PatientRecord `json:"patients"`
	}
	decodeJSON(t, srv.getJSON("/api/dashboard/patients?days=3"), &patients)
	if len(patients.Patients) != 1 || len(patients.Patients[0].Days) != 3 || !patients.Patients[0].Days[0].Completed {
		t.Fatalf("unexpected patient records: %+v", patients.Patients)
	}

	var missed struct {
		Missed []service.MissedEntry `json:"missed"`
	}
	decodeJSON(t, srv.getJSON("/api/dashboard/missed"), &missed)
	if len(missed.Missed) != 11 {
		t.Fatalf("expected June 1-11 to be missed, got %d", len(missed.Missed))
	}

	if rec := srv.getJSON("/therapist/dashboard"); rec.Code != http.StatusOK || srv.html.last != "dashboard.html" {
		t.Fatalf("expected dashboard template, got %d %q", rec.Code, srv.html.last)
	}
}

func TestExportRecoveryCSV(t *testing.T) {
	srv := newTestServer(t)
	setupDashboardRoutes(srv)
	srv.login("Asha", "english")
	srv.loginTherapist("counsellor", "s3cret")

	rec := srv.getJSON("/api/export/recovery.csv")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.HasPrefix(rec.Header().Get("Content-Type"), "text/csv") {
		t.Fatalf("expected csv content type, got %q", rec.Header().Get("Content-Type"))
	}
	if !strings.Contains(rec.Header().Get("Content-Disposition"), "recovery.csv") {
		t.Fatalf("unexpected disposition: %q", rec.Header().Get("Content-Disposition"))
	}

	rows, err := csv.NewReader(rec.Body).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse csv: %v", err)
	}
	if len(rows) != 31 || rows[0][0] != "username" {
		t.Fatalf("expected header plus 30 rows, got %d", len(rows))
	}
}

func TestExportBookingsCSVHeaderOnly(t *testing.T) {
	srv := newTestServer(t)
	setupDashboardRoutes(srv)
	srv.loginTherapist("counsellor", "s3cret")

	rec := srv.getJSON("/api/export/bookings.csv")
	rows, err := csv.NewReader(rec.Body).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse csv: %v", err)
	}
	if len(rows) != 1 || rows[0][1] != "reference" {
		t.Fatalf("expected only the header row, got %v", rows)
	}
}
