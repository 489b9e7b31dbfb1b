package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/recoverycompanion/internal/db"
	"gorm.io/gorm"
)

// 仪表盘各列表的默认条数
const (
	dashboardLoginLimit     = 100
	dashboardBookingLimit   = 100
	dashboardDayRecordLimit = 120
	dashboardProgressLimit  = 120

	DefaultPatientRecordDays = 7
)

// DashboardService 汇总治疗师视图所需的用户活动数据
type DashboardService struct {
	db  *gorm.DB
	now func() time.Time
}

// DashboardOverview 为治疗师总览页的数据；Username 非空时只包含该用户
type DashboardOverview struct {
	Username   string           `json:"username,omitempty"`
	Users      []db.User        `json:"users"`
	Logins     []db.LoginEvent  `json:"logins"`
	Bookings   []db.Booking     `json:"bookings"`
	DayRecords []db.DayRecord   `json:"dayRecords"`
	Progress   []db.ProgressLog `json:"progress"`
}

// LoginCount 表示单个用户的登录次数
type LoginCount struct {
	Username string `json:"username"`
	Count    int64  `json:"count"`
}

// PatientDay 为患者记录中的单日状态
type PatientDay struct {
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
}

// PatientRecord 为单个用户最近若干天的打卡情况
type PatientRecord struct {
	Username string       `json:"username"`
	Language string       `json:"language"`
	Days     []PatientDay `json:"days"`
}

// MissedEntry 为今天之前仍未完成的一天
type MissedEntry struct {
	Username   string `json:"username"`
	Date       string `json:"date"`
	Motivation string `json:"motivation"`
}

// NewDashboardService 构造 DashboardService
func NewDashboardService(gdb *gorm.DB, now func() time.Time) *DashboardService {
	if now == nil {
		now = time.Now
	}
	return &DashboardService{db: gdb, now: now}
}

// Overview 返回总览数据
func (s *DashboardService) Overview(username string) (*DashboardOverview, error) {
	filter := strings.TrimSpace(username)
	scoped := func(tx *gorm.DB) *gorm.DB {
		if filter == "" {
			return tx
		}
		return tx.Where("username = ?", filter)
	}

	overview := &DashboardOverview{Username: filter}
	if err := scoped(s.db).Order("username ASC").Find(&overview.Users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	if err := scoped(s.db).Order("id DESC").Limit(dashboardLoginLimit).Find(&overview.Logins).Error; err != nil {
		return nil, fmt.Errorf("list logins: %w", err)
	}
	if err := scoped(s.db).Order("id DESC").Limit(dashboardBookingLimit).Find(&overview.Bookings).Error; err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	if err := scoped(s.db).Order("date DESC").Order("username ASC").Limit(dashboardDayRecordLimit).Find(&overview.DayRecords).Error; err != nil {
		return nil, fmt.Errorf("list day records: %w", err)
	}
	if err := scoped(s.db).Order("logged_at DESC").Limit(dashboardProgressLimit).Find(&overview.Progress).Error; err != nil {
		return nil, fmt.Errorf("list progress logs: %w", err)
	}
	return overview, nil
}

// LoginCounts 按登录次数倒序统计
func (s *DashboardService) LoginCounts() ([]LoginCount, error) {
	var counts []LoginCount
	if err := s.db.Model(&db.LoginEvent{}).
		Select("username, COUNT(*) AS count").
		Group("username").
		Order("count DESC").
		Order("username ASC").
		Scan(&counts).Error; err != nil {
		return nil, fmt.Errorf("count logins: %w", err)
	}
	return counts, nil
}

// PatientRecords 返回每个用户最近 days 条打卡记录（按日期倒序，不晚于今天）
func (s *DashboardService) PatientRecords(days int) ([]PatientRecord, error) {
	if days <= 0 {
		days = DefaultPatientRecordDays
	}
	today := s.now().Format(dateLayout)

	var users []db.User
	if err := s.db.Order("username ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	records := make([]PatientRecord, 0, len(users))
	for _, user := range users {
		var rows []db.DayRecord
		if err := s.db.Where("username = ? AND date <= ?", user.Username, today).
			Order("date DESC").
			Limit(days).
			Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("list day records for %s: %w", user.Username, err)
		}

		record := PatientRecord{Username: user.Username, Language: user.Language, Days: make([]PatientDay, 0, len(rows))}
		for _, row := range rows {
			record.Days = append(record.Days, PatientDay{Date: row.Date, Completed: row.Completed})
		}
		records = append(records, record)
	}
	return records, nil
}

// MissedEntries 列出今天之前未完成的日期
func (s *DashboardService) MissedEntries() ([]MissedEntry, error) {
	today := s.now().Format(dateLayout)

	var rows []db.DayRecord
	if err := s.db.Where("completed = ? AND date < ?", false, today).
		Order("date DESC").
		Order("username ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list missed entries: %w", err)
	}

	entries := make([]MissedEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, MissedEntry{Username: row.Username, Date: row.Date, Motivation: row.Motivation})
	}
	return entries, nil
}

// ExportBookingsCSV 将全部预约写为 CSV
func (s *DashboardService) ExportBookingsCSV(w io.Writer) error {
	var bookings []db.Booking
	if err := s.db.Order("id ASC").Find(&bookings).Error; err != nil {
		return fmt.Errorf("list bookings: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "reference", "username", "date", "time", "mode", "status", "note", "created_at"}); err != nil {
		return fmt.Errorf("write bookings header: %w", err)
	}
	for _, b := range bookings {
		row := []string{
			strconv.FormatUint(uint64(b.ID), 10),
			b.Reference,
			b.Username,
			b.Date,
			b.Time,
			b.Mode,
			b.Status,
			b.Note,
			b.CreatedAt.Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write booking %d: %w", b.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportDayRecordsCSV 将全部打卡记录写为 CSV
func (s *DashboardService) ExportDayRecordsCSV(w io.Writer) error {
	var rows []db.DayRecord
	if err := s.db.Order("username ASC").Order("date ASC").Find(&rows).Error; err != nil {
		return fmt.Errorf("list day records: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"username", "date", "completed", "motivation"}); err != nil {
		return fmt.Errorf("write day records header: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write([]string{r.Username, r.Date, strconv.FormatBool(r.Completed), r.Motivation}); err != nil {
			return fmt.Errorf("write day record %s/%s: %w", r.Username, r.Date, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
