package handler

import (
	"errors"
	"html/template"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/recoverycompanion/internal/chat"
	"github.com/recoverycompanion/internal/db"
	"github.com/recoverycompanion/internal/service"
	"github.com/recoverycompanion/internal/typing"
)

type chatPayload struct {
	Message string `json:"message"`
}

type chatReplyResponse struct {
	Intent chat.Intent   `json:"intent"`
	Text   string        `json:"text"`
	HTML   template.HTML `json:"html"`
	Links  []chat.Link   `json:"links"`
	Mood   typing.Mood   `json:"mood"`
}

type chatTurnResponse struct {
	Sender    string        `json:"sender"`
	Intent    string        `json:"intent,omitempty"`
	Text      string        `json:"text"`
	HTML      template.HTML `json:"html"`
	CreatedAt string        `json:"created_at"`
}

// ShowChat 渲染聊天页面，并附带当前会话最近的消息
func (a *API) ShowChat(c *gin.Context) {
	sess := loadSession(c)
	conversationID := a.ensureConversation(c, sess)
	if err := sessions.Default(c).Save(); err != nil {
		c.Error(err)
	}

	history, err := a.chat.History(conversationID, service.DefaultHistoryLimit)
	if err != nil {
		c.Error(err)
	}

	a.renderHTML(c, http.StatusOK, "chat.html", gin.H{
		"title":   "Recovery Chat",
		"history": toChatTurns(history),
	})
}

// StartTyping 记录用户开始输入的时间，供发送时估计打字节奏
func (a *API) StartTyping(c *gin.Context) {
	started := typing.NewAnalyzer(a.now).RecordStart()

	session := sessions.Default(c)
	session.Set(sessionKeyTypingStart, started.UnixNano())
	if err := session.Save(); err != nil {
		respondError(c, http.StatusInternalServerError, "could not save typing state")
		return
	}
	c.JSON(http.StatusOK, gin.H{"started_at": started.Format(time.RFC3339Nano)})
}

// SendMessage 生成机器人回复
func (a *API) SendMessage(c *gin.Context) {
	var payload chatPayload
	if !bindJSON(c, &payload, "invalid chat message") {
		return
	}
	if strings.TrimSpace(payload.Message) == "" {
		respondError(c, http.StatusBadRequest, "message is required")
		return
	}

	sess := loadSession(c)
	conversationID := a.ensureConversation(c, sess)

	mood := typing.MoodNormal
	if !sess.TypingStarted.IsZero() {
		mood = typing.Resume(sess.TypingStarted, a.now).Analyze(payload.Message)
	}

	session := sessions.Default(c)
	session.Delete(sessionKeyTypingStart)
	if err := session.Save(); err != nil {
		c.Error(err)
	}

	reply, err := a.chat.Send(conversationID, chat.Message{
		Text:     payload.Message,
		Username: sess.Username,
		Language: a.requestLanguage(c, sess),
		Mood:     mood,
	})
	if err != nil {
		// 回复已生成，保存失败只记录日志
		log.Printf("[chat] persist reply for %s: %v", sess.Username, err)
	}

	c.JSON(http.StatusOK, chatReplyResponse{
		Intent: reply.Intent,
		Text:   reply.Text,
		HTML:   renderMarkdown(reply.Text),
		Links:  reply.Links,
		Mood:   mood,
	})
}

// GetChatHistory 返回当前会话最近的消息
func (a *API) GetChatHistory(c *gin.Context) {
	sess := loadSession(c)
	if sess.ConversationID == "" {
		c.JSON(http.StatusOK, gin.H{"messages": []chatTurnResponse{}})
		return
	}

	limit := parsePositiveInt(c.Query("limit"), service.DefaultHistoryLimit)
	history, err := a.chat.History(sess.ConversationID, limit)
	if err != nil {
		handleChatError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": toChatTurns(history)})
}

// ClearChatHistory 清空当前会话并开启新的会话
func (a *API) ClearChatHistory(c *gin.Context) {
	sess := loadSession(c)
	if sess.ConversationID != "" {
		if err := a.chat.Clear(sess.ConversationID); err != nil {
			handleChatError(c, err)
			return
		}
	}

	session := sessions.Default(c)
	session.Set(sessionKeyConversation, a.chat.NewConversation())
	if err := session.Save(); err != nil {
		respondError(c, http.StatusInternalServerError, "could not save session")
		return
	}
	c.Status(http.StatusNoContent)
}

// ensureConversation 在会话缺少会话标识时生成一个，由调用方负责保存
func (a *API) ensureConversation(c *gin.Context, sess sessionContext) string {
	if sess.ConversationID != "" {
		return sess.ConversationID
	}
	conversationID := a.chat.NewConversation()
	sessions.Default(c).Set(sessionKeyConversation, conversationID)
	return conversationID
}

func toChatTurns(messages []db.ChatMessage) []chatTurnResponse {
	turns := make([]chatTurnResponse, 0, len(messages))
	for _, msg := range messages {
		turn := chatTurnResponse{
			Sender:    msg.Sender,
			Intent:    msg.Intent,
			Text:      msg.Text,
			CreatedAt: msg.CreatedAt.Format(time.RFC3339),
		}
		if msg.Sender == service.SenderBot {
			turn.HTML = renderMarkdown(msg.Text)
		} else {
			turn.HTML = template.HTML(template.HTMLEscapeString(msg.Text))
		}
		turns = append(turns, turn)
	}
	return turns
}

func handleChatError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidConversation):
		respondError(c, http.StatusBadRequest, "invalid conversation")
	default:
		respondError(c, http.StatusInternalServerError, "please try again")
	}
}
