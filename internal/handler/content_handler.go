package handler

import (
	"errors"
	"log"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/recoverycompanion/internal/chat"
	"github.com/recoverycompanion/internal/content"
	"github.com/recoverycompanion/internal/service"
)

const defaultPicksPerCategory = 2

// GetContentCategory 返回某个娱乐分类下的资源
func (a *API) GetContentCategory(c *gin.Context) {
	category := strings.ToLower(strings.TrimSpace(c.Param("category")))
	if !slices.Contains(content.Categories(), category) {
		respondError(c, http.StatusNotFound, "unknown category")
		return
	}

	language := a.requestLanguage(c, loadSession(c))
	c.JSON(http.StatusOK, gin.H{
		"category": category,
		"language": language,
		"items":    content.ByCategory(language, category),
	})
}

// SuggestContent 根据 ?mood 推荐一条资源并记录浏览
func (a *API) SuggestContent(c *gin.Context) {
	sess := loadSession(c)
	suggestion := content.Suggest(a.requestLanguage(c, sess), c.Query("mood"), chat.DisplayName(sess.Username), a.choose)

	a.recordView(service.ContentViewInput{
		Username: sess.Username,
		Kind:     service.ContentKindEntertainment,
		Category: suggestion.Category,
		Emotion:  suggestion.Mood,
		Link:     suggestion.Item.URL,
	})

	c.JSON(http.StatusOK, gin.H{
		"suggestion": suggestion,
		"html":       renderMarkdown(suggestion.Message),
		"moods":      content.Moods,
	})
}

// GetContentPicks 返回各分类的精选资源
func (a *API) GetContentPicks(c *gin.Context) {
	perCategory := parsePositiveInt(c.Query("per_category"), defaultPicksPerCategory)
	c.JSON(http.StatusOK, gin.H{
		"items": content.Picks(a.requestLanguage(c, loadSession(c)), perCategory),
	})
}

// ListAwareness 返回全部科普主题与名言
func (a *API) ListAwareness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"topics": content.AwarenessTopics(),
		"quotes": content.AwarenessQuotes,
	})
}

// GetAwarenessTopic 返回单个科普主题并记录浏览
func (a *API) GetAwarenessTopic(c *gin.Context) {
	topic, err := content.AwarenessTopicByName(c.Param("topic"))
	if err != nil {
		handleContentError(c, err)
		return
	}

	a.recordView(service.ContentViewInput{
		Username: loadSession(c).Username,
		Kind:     service.ContentKindAwareness,
		Category: topic.Name,
	})
	c.JSON(http.StatusOK, topic)
}

// AwarenessCost 估算一年的花费：?amount=100&frequency=daily
func (a *API) AwarenessCost(c *gin.Context) {
	amount, err := strconv.Atoi(strings.TrimSpace(c.Query("amount")))
	if err != nil {
		respondError(c, http.StatusBadRequest, "amount must be a whole number")
		return
	}
	frequency := c.DefaultQuery("frequency", content.SpendDaily)

	yearly, err := content.YearlyCost(amount, frequency)
	if err != nil {
		handleContentError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"amount":    amount,
		"frequency": strings.ToLower(strings.TrimSpace(frequency)),
		"yearly":    yearly,
	})
}

func (a *API) recordView(input service.ContentViewInput) {
	if err := a.contentLog.Record(input); err != nil {
		log.Printf("[content] record view: %v", err)
	}
}

func handleContentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, content.ErrUnknownTopic):
		respondError(c, http.StatusNotFound, "unknown topic")
	case errors.Is(err, content.ErrInvalidSpend):
		respondError(c, http.StatusBadRequest, "amount must be between 10 and 10000 with a daily or weekly frequency")
	default:
		respondError(c, http.StatusInternalServerError, "please try again")
	}
}
