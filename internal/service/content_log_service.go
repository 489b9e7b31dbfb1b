package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/recoverycompanion/internal/db"
	"gorm.io/gorm"
)

// 内容点击来源
const (
	ContentKindEntertainment = "entertainment"
	ContentKindAwareness     = "awareness"
)

// ContentLogService 记录娱乐与科普内容的浏览情况
type ContentLogService struct {
	db  *gorm.DB
	now func() time.Time
}

// ContentViewInput 定义一次浏览记录
type ContentViewInput struct {
	Username string
	Kind     string
	Category string
	Emotion  string
	Link     string
}

// NewContentLogService 构造 ContentLogService
func NewContentLogService(gdb *gorm.DB, now func() time.Time) *ContentLogService {
	if now == nil {
		now = time.Now
	}
	return &ContentLogService{db: gdb, now: now}
}

// Record 写入一条浏览记录
func (s *ContentLogService) Record(input ContentViewInput) error {
	username, err := normalizeUsername(input.Username)
	if err != nil {
		return err
	}

	view := db.ContentView{
		Username: username,
		Kind:     strings.TrimSpace(input.Kind),
		Category: strings.TrimSpace(input.Category),
		Emotion:  strings.TrimSpace(input.Emotion),
		Link:     strings.TrimSpace(input.Link),
		ViewedAt: s.now(),
	}
	if err := s.db.Create(&view).Error; err != nil {
		return fmt.Errorf("record content view: %w", err)
	}
	return nil
}

// CategoryCounts 统计某类内容各分类的浏览次数
func (s *ContentLogService) CategoryCounts(kind string) (map[string]int64, error) {
	var rows []struct {
		Category string
		Total    int64
	}
	if err := s.db.Model(&db.ContentView{}).
		Select("category, COUNT(*) AS total").
		Where("kind = ?", kind).
		Group("category").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("count content views: %w", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Category] = row.Total
	}
	return counts, nil
}
