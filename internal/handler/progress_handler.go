package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/recoverycompanion/internal/service"
)

const defaultProgressLimit = 30

type progressPayload struct {
	Mood    string `json:"mood"`
	Craving int    `json:"craving"`
	Usage   int    `json:"usage"`
}

// LogProgress 保存一次自评并返回风险等级
func (a *API) LogProgress(c *gin.Context) {
	var payload progressPayload
	if !bindJSON(c, &payload, "invalid progress payload") {
		return
	}

	entry, err := a.progress.Log(service.ProgressInput{
		Username: loadSession(c).Username,
		Mood:     payload.Mood,
		Craving:  payload.Craving,
		Usage:    payload.Usage,
	})
	if err != nil {
		handleProgressError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// ListProgress 返回当前用户的自评记录
func (a *API) ListProgress(c *gin.Context) {
	limit := parsePositiveInt(c.Query("limit"), defaultProgressLimit)
	logs, err := a.progress.List(loadSession(c).Username, limit)
	if err != nil {
		handleProgressError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs})
}

func handleProgressError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidProgress):
		respondError(c, http.StatusBadRequest, "scores must be between 0 and 10")
	case errors.Is(err, service.ErrInvalidUsername):
		respondError(c, http.StatusUnauthorized, "please log in first")
	default:
		respondError(c, http.StatusInternalServerError, "please try again")
	}
}
