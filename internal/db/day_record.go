package db

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DayRecord 记录用户某一天的康复打卡
// Username + Date 采用唯一索引，保证每人每天至多一行；Date 为 2006-01-02 格式
// Motivation 只在完成打卡时写入
type DayRecord struct {
	gorm.Model
	Username   string `gorm:"size:64;not null;uniqueIndex:idx_day_record_user_date"`
	Date       string `gorm:"size:10;not null;uniqueIndex:idx_day_record_user_date"`
	Completed  bool   `gorm:"not null;default:false"`
	Motivation string
}

// DayRecordStore 是 day_records 表的 gorm 实现
type DayRecordStore struct {
	db *gorm.DB
}

// NewDayRecordStore 构造 DayRecordStore
func NewDayRecordStore(gdb *gorm.DB) *DayRecordStore {
	return &DayRecordStore{db: gdb}
}

// InsertMissing 以单条 INSERT ... ON CONFLICT DO NOTHING 补齐缺失的日期，返回新建行数
func (s *DayRecordStore) InsertMissing(username string, dates []string) (int64, error) {
	if len(dates) == 0 {
		return 0, nil
	}

	records := make([]DayRecord, 0, len(dates))
	for _, date := range dates {
		records = append(records, DayRecord{Username: username, Date: date})
	}

	result := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "username"}, {Name: "date"}},
		DoNothing: true,
	}).Create(&records)
	if result.Error != nil {
		return 0, fmt.Errorf("insert day records: %w", result.Error)
	}

	return result.RowsAffected, nil
}

// Complete 将未完成的记录标记为完成，返回是否真正发生了更新
func (s *DayRecordStore) Complete(username, date, motivation string) (bool, error) {
	result := s.db.Model(&DayRecord{}).
		Where("username = ? AND date = ? AND completed = ?", username, date, false).
		Updates(map[string]any{"completed": true, "motivation": motivation})
	if result.Error != nil {
		return false, fmt.Errorf("complete day record: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Find 按用户名与日期读取记录，不存在时返回 ErrNotFound
func (s *DayRecordStore) Find(username, date string) (*DayRecord, error) {
	var record DayRecord
	if err := s.db.Where("username = ? AND date = ?", username, date).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find day record: %w", err)
	}
	return &record, nil
}

// ListBetween 返回 [start, end] 区间内的记录，按日期升序
func (s *DayRecordStore) ListBetween(username, start, end string) ([]DayRecord, error) {
	var records []DayRecord
	if err := s.db.Where("username = ?", username).
		Where("date BETWEEN ? AND ?", start, end).
		Order("date ASC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list day records: %w", err)
	}
	return records, nil
}

// ListByUser 返回用户的全部记录，按日期升序
func (s *DayRecordStore) ListByUser(username string) ([]DayRecord, error) {
	var records []DayRecord
	if err := s.db.Where("username = ?", username).
		Order("date ASC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list day records: %w", err)
	}
	return records, nil
}
