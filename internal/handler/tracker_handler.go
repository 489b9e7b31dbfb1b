package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/recoverycompanion/internal/content"
	"github.com/recoverycompanion/internal/service"
)

type trackerMarkResponse struct {
	Date       string `json:"date"`
	Motivation string `json:"motivation"`
}

// ShowTracker 渲染打卡页面
func (a *API) ShowTracker(c *gin.Context) {
	sess := loadSession(c)

	overview, err := a.tracker.Overview(sess.Username)
	if err != nil {
		c.Error(err)
		a.renderHTML(c, http.StatusInternalServerError, "tracker.html", gin.H{
			"title": "Recovery Tracker",
			"error": "Could not load your tracker, please try again.",
		})
		return
	}

	a.renderHTML(c, http.StatusOK, "tracker.html", gin.H{
		"title":    "Recovery Tracker",
		"overview": overview,
		"tasks":    content.DailyTasks(),
	})
}

// GetTracker 返回当月概览，可选附带全部历史
func (a *API) GetTracker(c *gin.Context) {
	sess := loadSession(c)

	overview, err := a.tracker.Overview(sess.Username)
	if err != nil {
		handleTrackerError(c, err)
		return
	}

	response := gin.H{
		"overview": overview,
		"tasks":    content.DailyTasks(),
	}
	if overview.TodayRecord != nil {
		response["today_completed"] = overview.TodayRecord.Completed
		response["today_motivation"] = overview.TodayRecord.Motivation
	}
	if c.Query("history") == "1" {
		history, err := a.tracker.History(sess.Username)
		if err != nil {
			handleTrackerError(c, err)
			return
		}
		response["history"] = history
	}
	c.JSON(http.StatusOK, response)
}

// MarkToday 标记今天已完成
func (a *API) MarkToday(c *gin.Context) {
	sess := loadSession(c)

	quote, err := a.markTodayWithRepair(sess.Username)
	if err != nil {
		handleTrackerError(c, err)
		return
	}
	c.JSON(http.StatusOK, trackerMarkResponse{Date: a.tracker.Today(), Motivation: quote})
}

// MarkDay 处理日历格子点击，只接受今天
func (a *API) MarkDay(c *gin.Context) {
	sess := loadSession(c)
	date := c.Param("date")

	quote, err := a.tracker.MarkDay(sess.Username, date)
	if errors.Is(err, service.ErrDayRecordNotFound) {
		quote, err = a.markTodayWithRepair(sess.Username)
	}
	if err != nil {
		handleTrackerError(c, err)
		return
	}
	c.JSON(http.StatusOK, trackerMarkResponse{Date: date, Motivation: quote})
}

// GetTrackerMonth 返回指定月份的完成度与日历
func (a *API) GetTrackerMonth(c *gin.Context) {
	sess := loadSession(c)

	year, month, err := service.ParseMonth(c.Param("month"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "month must look like 2006-01")
		return
	}

	summary, err := a.tracker.MonthlyCompletion(sess.Username, year, month)
	if err != nil {
		handleTrackerError(c, err)
		return
	}
	calendar, err := a.tracker.Calendar(sess.Username, year, month)
	if err != nil {
		handleTrackerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary, "calendar": calendar})
}

// markTodayWithRepair 在当月记录缺失时先初始化再重试一次
func (a *API) markTodayWithRepair(username string) (string, error) {
	quote, err := a.tracker.MarkToday(username)
	if !errors.Is(err, service.ErrDayRecordNotFound) {
		return quote, err
	}

	log.Printf("[tracker] today missing for %s, initializing month", username)
	if err := a.tracker.EnsureMonthInitialized(username); err != nil {
		return "", err
	}
	return a.tracker.MarkToday(username)
}

func handleTrackerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotToday):
		respondError(c, http.StatusConflict, "only today can be marked")
	case errors.Is(err, service.ErrInvalidDate):
		respondError(c, http.StatusBadRequest, "invalid date")
	case errors.Is(err, service.ErrInvalidUsername):
		respondError(c, http.StatusUnauthorized, "please log in first")
	case errors.Is(err, service.ErrDayRecordNotFound):
		respondError(c, http.StatusNotFound, "no record for today")
	default:
		respondError(c, http.StatusInternalServerError, "please try again")
	}
}
