package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/recoverycompanion/internal/db"
	"gorm.io/gorm"
)

// 风险等级
const (
	RiskLow    = "Low"
	RiskMedium = "Medium"
	RiskHigh   = "High"
)

// ErrInvalidProgress 当自评分数超出 0-10 时返回
var ErrInvalidProgress = errors.New("invalid progress score")

// ProgressService 记录情绪/渴求/使用自评
type ProgressService struct {
	db  *gorm.DB
	now func() time.Time
}

// ProgressInput 定义一次自评输入
type ProgressInput struct {
	Username string
	Mood     string
	Craving  int
	Usage    int
}

// NewProgressService 构造 ProgressService
func NewProgressService(gdb *gorm.DB, now func() time.Time) *ProgressService {
	if now == nil {
		now = time.Now
	}
	return &ProgressService{db: gdb, now: now}
}

// RiskLabel 根据渴求与使用分数计算风险等级
func RiskLabel(craving, usage int) string {
	switch {
	case usage >= 6 || craving >= 8:
		return RiskHigh
	case usage >= 3 || craving >= 5:
		return RiskMedium
	default:
		return RiskLow
	}
}

// Log 保存自评并返回风险等级
func (s *ProgressService) Log(input ProgressInput) (*db.ProgressLog, error) {
	username, err := normalizeUsername(input.Username)
	if err != nil {
		return nil, err
	}
	if input.Craving < 0 || input.Craving > 10 || input.Usage < 0 || input.Usage > 10 {
		return nil, fmt.Errorf("%w: craving=%d usage=%d", ErrInvalidProgress, input.Craving, input.Usage)
	}

	entry := db.ProgressLog{
		Username: username,
		Mood:     strings.TrimSpace(input.Mood),
		Craving:  input.Craving,
		Usage:    input.Usage,
		Risk:     RiskLabel(input.Craving, input.Usage),
		LoggedAt: s.now(),
	}
	if err := s.db.Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("log progress: %w", err)
	}
	return &entry, nil
}

// List 返回用户的自评记录，最新的在前
func (s *ProgressService) List(username string, limit int) ([]db.ProgressLog, error) {
	var logs []db.ProgressLog
	query := s.db.Where("username = ?", strings.TrimSpace(username)).Order("logged_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	return logs, nil
}
