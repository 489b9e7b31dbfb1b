package handler

import (
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// SessionName 是 cookie 会话的名称
const SessionName = "recovery_session"

const (
	sessionKeyUsername     = "username"
	sessionKeyLanguage     = "language"
	sessionKeyTherapist    = "therapist"
	sessionKeyConversation = "conversation_id"
	sessionKeyTypingStart  = "typing_started_at"
)

// sessionContext 是每次请求从 cookie 会话中读取的状态快照
type sessionContext struct {
	Username       string
	Language       string
	Therapist      string
	ConversationID string
	TypingStarted  time.Time
}

func loadSession(c *gin.Context) sessionContext {
	session := sessions.Default(c)

	sess := sessionContext{
		Username:       sessionString(session, sessionKeyUsername),
		Language:       sessionString(session, sessionKeyLanguage),
		Therapist:      sessionString(session, sessionKeyTherapist),
		ConversationID: sessionString(session, sessionKeyConversation),
	}
	if raw, ok := session.Get(sessionKeyTypingStart).(int64); ok && raw > 0 {
		sess.TypingStarted = time.Unix(0, raw)
	}
	return sess
}

func sessionString(session sessions.Session, key string) string {
	value, _ := session.Get(key).(string)
	return value
}

// UserRequired 要求会话中存在已登录用户
func UserRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if loadSession(c).Username == "" {
			denyAccess(c, "/login")
			return
		}
		c.Next()
	}
}

// TherapistRequired 要求会话中存在已登录的治疗师
func TherapistRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if loadSession(c).Therapist == "" {
			denyAccess(c, "/therapist/login")
			return
		}
		c.Next()
	}
}

func denyAccess(c *gin.Context, loginPath string) {
	if isAPIRequest(c) {
		respondError(c, http.StatusUnauthorized, "please log in first")
		c.Abort()
		return
	}
	c.Redirect(http.StatusFound, loginPath)
	c.Abort()
}
