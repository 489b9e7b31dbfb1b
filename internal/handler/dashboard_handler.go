package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/recoverycompanion/internal/service"
)

// ShowTherapistDashboard 渲染治疗师总览页面
func (a *API) ShowTherapistDashboard(c *gin.Context) {
	overview, err := a.dashboard.Overview(c.Query("user"))
	if err != nil {
		c.Error(err)
		a.renderHTML(c, http.StatusInternalServerError, "dashboard.html", gin.H{
			"title": "Therapist Dashboard",
			"error": "Could not load dashboard data.",
		})
		return
	}
	missed, err := a.dashboard.MissedEntries()
	if err != nil {
		c.Error(err)
	}

	a.renderHTML(c, http.StatusOK, "dashboard.html", gin.H{
		"title":    "Therapist Dashboard",
		"overview": overview,
		"missed":   missed,
		"statuses": []string{service.BookingStatusPending, service.BookingStatusConfirmed, service.BookingStatusCompleted, service.BookingStatusCancelled},
	})
}

// GetDashboard 返回总览数据，?user= 可按用户过滤
func (a *API) GetDashboard(c *gin.Context) {
	overview, err := a.dashboard.Overview(c.Query("user"))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "please try again")
		return
	}
	c.JSON(http.StatusOK, overview)
}

// GetLoginCounts 返回各用户登录次数
func (a *API) GetLoginCounts(c *gin.Context) {
	counts, err := a.dashboard.LoginCounts()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "please try again")
		return
	}
	c.JSON(http.StatusOK, gin.H{"counts": counts})
}

// GetPatientRecords 返回每个用户最近几天的打卡情况
func (a *API) GetPatientRecords(c *gin.Context) {
	days := parsePositiveInt(c.Query("days"), service.DefaultPatientRecordDays)
	records, err := a.dashboard.PatientRecords(days)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "please try again")
		return
	}
	c.JSON(http.StatusOK, gin.H{"patients": records})
}

// GetMissedEntries 返回未完成的历史日期
func (a *API) GetMissedEntries(c *gin.Context) {
	missed, err := a.dashboard.MissedEntries()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "please try again")
		return
	}
	c.JSON(http.StatusOK, gin.H{"missed": missed})
}

// ExportBookings 下载预约 CSV
func (a *API) ExportBookings(c *gin.Context) {
	exportCSV(c, "bookings.csv", a.dashboard.ExportBookingsCSV)
}

// ExportRecovery 下载打卡记录 CSV
func (a *API) ExportRecovery(c *gin.Context) {
	exportCSV(c, "recovery.csv", a.dashboard.ExportDayRecordsCSV)
}

func exportCSV(c *gin.Context, filename string, write func(io.Writer) error) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := write(c.Writer); err != nil {
		c.Error(err)
		if !c.Writer.Written() {
			c.Writer.Header().Del("Content-Disposition")
			c.Writer.Header().Del("Content-Type")
			respondError(c, http.StatusInternalServerError, "export failed")
		}
	}
}
