package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/recoverycompanion/internal/chat"
	"github.com/recoverycompanion/internal/db"
	"gorm.io/gorm"
)

// 对话中的发送方
const (
	SenderUser = "user"
	SenderBot  = "bot"

	DefaultHistoryLimit = 20
)

// ErrInvalidConversation 在会话标识为空或格式错误时返回
var ErrInvalidConversation = errors.New("invalid conversation id")

// ChatService 调用回复引擎并保存对话记录；记录只用于展示，不参与分类
type ChatService struct {
	db     *gorm.DB
	engine *chat.Engine
	now    func() time.Time
}

// NewChatService 构造 ChatService
func NewChatService(gdb *gorm.DB, engine *chat.Engine, now func() time.Time) *ChatService {
	if now == nil {
		now = time.Now
	}
	return &ChatService{db: gdb, engine: engine, now: now}
}

// NewConversation 生成新的会话标识
func (s *ChatService) NewConversation() string {
	return uuid.NewString()
}

// Send 生成回复并写入用户与机器人两条消息
// 持久化失败时依然返回回复，同时返回错误供调用方记录
func (s *ChatService) Send(conversationID string, msg chat.Message) (chat.Reply, error) {
	reply := s.engine.Reply(msg)
	logChatExchange(msg.Username, string(reply.Intent), msg.Text)

	if _, err := uuid.Parse(conversationID); err != nil {
		return reply, ErrInvalidConversation
	}

	now := s.now()
	turns := []db.ChatMessage{
		{ConversationID: conversationID, Username: msg.Username, Sender: SenderUser, Text: strings.TrimSpace(msg.Text), CreatedAt: now},
		{ConversationID: conversationID, Username: msg.Username, Sender: SenderBot, Intent: string(reply.Intent), Text: reply.Text, CreatedAt: now},
	}
	if err := s.db.Create(&turns).Error; err != nil {
		return reply, fmt.Errorf("save chat turns: %w", err)
	}
	return reply, nil
}

// History 按时间顺序返回最近 limit 条消息
func (s *ChatService) History(conversationID string, limit int) ([]db.ChatMessage, error) {
	if _, err := uuid.Parse(conversationID); err != nil {
		return nil, ErrInvalidConversation
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	var messages []db.ChatMessage
	if err := s.db.Where("conversation_id = ?", conversationID).
		Order("id DESC").
		Limit(limit).
		Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("list chat history: %w", err)
	}

	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// Clear 删除会话的全部消息
func (s *ChatService) Clear(conversationID string) error {
	if _, err := uuid.Parse(conversationID); err != nil {
		return ErrInvalidConversation
	}
	if err := s.db.Where("conversation_id = ?", conversationID).Delete(&db.ChatMessage{}).Error; err != nil {
		return fmt.Errorf("clear chat history: %w", err)
	}
	return nil
}
