package db

import (
	"time"

	"gorm.io/gorm"
)

// ProgressLog 记录一次情绪/渴求/使用自评以及计算出的风险等级
type ProgressLog struct {
	ID       uint   `gorm:"primaryKey"`
	Username string `gorm:"size:64;index;not null"`
	Mood     string
	Craving  int
	Usage    int
	Risk     string    `gorm:"size:16"`
	LoggedAt time.Time `gorm:"index"`
}

// Booking 记录治疗预约，Reference 用于向用户展示的预约编号
type Booking struct {
	gorm.Model
	Reference string `gorm:"size:36;uniqueIndex"`
	Username  string `gorm:"size:64;index;not null"`
	Date      string `gorm:"size:10;not null"`
	Time      string `gorm:"size:5"`
	Mode      string `gorm:"size:16"`
	Note      string
	Status    string `gorm:"size:16;default:Pending"`
}

// ContentView 记录娱乐/科普内容的点击
// Kind 为 entertainment 或 awareness
type ContentView struct {
	ID       uint   `gorm:"primaryKey"`
	Username string `gorm:"size:64;index;not null"`
	Kind     string `gorm:"size:16;index"`
	Category string `gorm:"size:64"`
	Emotion  string `gorm:"size:32"`
	Link     string
	ViewedAt time.Time
}

// ChatMessage 记录一轮对话中的单条消息，ConversationID 为会话级 uuid
type ChatMessage struct {
	ID             uint   `gorm:"primaryKey"`
	ConversationID string `gorm:"size:36;index;not null"`
	Username       string `gorm:"size:64;index"`
	Sender         string `gorm:"size:8"`
	Intent         string `gorm:"size:32"`
	Text           string
	CreatedAt      time.Time
}
