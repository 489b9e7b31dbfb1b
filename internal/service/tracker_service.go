package service

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/recoverycompanion/internal/content"
	"github.com/recoverycompanion/internal/db"
)

var (
	// ErrDayRecordNotFound 在当天记录未初始化时返回，调用方应先初始化本月再重试
	ErrDayRecordNotFound = errors.New("day record not found")
	// ErrNotToday 当尝试标记非今天的日期时返回
	ErrNotToday = errors.New("only today can be marked as done")
	// ErrInvalidDate 当日期/月份格式无法解析时返回
	ErrInvalidDate = errors.New("invalid date")
	// ErrInvalidUsername 当用户名为空时返回
	ErrInvalidUsername = errors.New("username is required")
)

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"

	calendarWeeks = 6
	nudgeDays     = 3
)

// 日历格子的状态
const (
	DayStatusDone    = "done"
	DayStatusToday   = "today"
	DayStatusPending = "pending"
)

// DayRecordStore 抽象 day_records 的持久化，db.DayRecordStore 为 gorm 实现
type DayRecordStore interface {
	InsertMissing(username string, dates []string) (int64, error)
	Complete(username, date, motivation string) (bool, error)
	Find(username, date string) (*db.DayRecord, error)
	ListBetween(username, start, end string) ([]db.DayRecord, error)
	ListByUser(username string) ([]db.DayRecord, error)
}

// TrackerService 负责康复打卡：月初始化、今日打卡、连胜与完成率
// 所有“今天”的判断都基于注入的时钟，连胜只统计当前自然月
type TrackerService struct {
	store  DayRecordStore
	now    func() time.Time
	choose content.Chooser
	quotes []string
}

// MonthSummary 汇总某月的完成情况
type MonthSummary struct {
	Year      int     `json:"year"`
	Month     int     `json:"month"`
	Completed int     `json:"completed"`
	Total     int     `json:"total"`
	Percent   float64 `json:"percent"`
}

// CalendarCell 是六周日历中的一个格子，Blank 表示不属于本月
type CalendarCell struct {
	Blank      bool   `json:"blank"`
	Day        int    `json:"day,omitempty"`
	Date       string `json:"date,omitempty"`
	Status     string `json:"status,omitempty"`
	Motivation string `json:"motivation,omitempty"`
}

// Calendar 以周一为每周第一天，固定 6 行 7 列
type Calendar struct {
	Year  int              `json:"year"`
	Month int              `json:"month"`
	Weeks [][]CalendarCell `json:"weeks"`
}

// TrackerOverview 是打卡页所需的全部数据
type TrackerOverview struct {
	Today       string        `json:"today"`
	TodayRecord *db.DayRecord `json:"-"`
	Summary     MonthSummary  `json:"summary"`
	Streak      int           `json:"streak"`
	Calendar    Calendar      `json:"calendar"`
	Nudge       bool          `json:"nudge"`
}

// NewTrackerService 构造 TrackerService；now/choose 为空时使用系统时间与随机选择
func NewTrackerService(store DayRecordStore, now func() time.Time, choose content.Chooser) *TrackerService {
	if now == nil {
		now = time.Now
	}
	if choose == nil {
		choose = RandomChooser
	}
	return &TrackerService{
		store:  store,
		now:    now,
		choose: choose,
		quotes: content.RecoveryQuotes,
	}
}

// Today 返回当前日期（2006-01-02）
func (s *TrackerService) Today() string {
	return s.now().Format(dateLayout)
}

// EnsureMonthInitialized 为当月每一天补齐记录，已存在的日期保持不变
func (s *TrackerService) EnsureMonthInitialized(username string) error {
	username, err := normalizeUsername(username)
	if err != nil {
		return err
	}

	first := monthStart(s.now())
	days := daysIn(first)
	dates := make([]string, 0, days)
	for i := 0; i < days; i++ {
		dates = append(dates, first.AddDate(0, 0, i).Format(dateLayout))
	}

	created, err := s.store.InsertMissing(username, dates)
	if err != nil {
		return fmt.Errorf("initialize month: %w", err)
	}
	if created > 0 {
		log.Printf("[tracker] initialized %d day(s) of %s for %s", created, first.Format(monthLayout), username)
	}
	return nil
}

// MarkToday 将今天标记为完成并返回随机选取的激励语
// 今天已完成时直接返回已保存的激励语，不会重复写入
func (s *TrackerService) MarkToday(username string) (string, error) {
	username, err := normalizeUsername(username)
	if err != nil {
		return "", err
	}

	today := s.Today()
	record, err := s.store.Find(username, today)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return "", ErrDayRecordNotFound
		}
		return "", fmt.Errorf("load today: %w", err)
	}
	if record.Completed {
		return record.Motivation, nil
	}

	quote := s.quotes[pickIndex(s.choose, len(s.quotes))]
	updated, err := s.store.Complete(username, today, quote)
	if err != nil {
		return "", fmt.Errorf("mark today: %w", err)
	}
	if !updated {
		// 并发请求已先一步完成打卡
		record, err = s.store.Find(username, today)
		if err != nil {
			return "", fmt.Errorf("reload today: %w", err)
		}
		return record.Motivation, nil
	}

	log.Printf("[tracker] %s completed %s", username, today)
	return quote, nil
}

// MarkDay 供日历点击使用：只有今天可以标记，其他日期只读
func (s *TrackerService) MarkDay(username, date string) (string, error) {
	parsed, err := time.ParseInLocation(dateLayout, strings.TrimSpace(date), s.now().Location())
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidDate, date)
	}
	if parsed.Format(dateLayout) != s.Today() {
		return "", ErrNotToday
	}
	return s.MarkToday(username)
}

// MonthlyCompletion 统计指定月份的完成天数与百分比
func (s *TrackerService) MonthlyCompletion(username string, year int, month time.Month) (MonthSummary, error) {
	records, err := s.monthRecords(username, year, month)
	if err != nil {
		return MonthSummary{}, err
	}
	return summarize(records, year, month), nil
}

// CurrentStreak 计算截至今天（含）的连续完成天数，不跨越月份
func (s *TrackerService) CurrentStreak(username string) (int, error) {
	now := s.now()
	records, err := s.monthRecords(username, now.Year(), now.Month())
	if err != nil {
		return 0, err
	}
	return streakEndingAt(records, now), nil
}

// Calendar 返回指定月份的六周日历
func (s *TrackerService) Calendar(username string, year int, month time.Month) (Calendar, error) {
	records, err := s.monthRecords(username, year, month)
	if err != nil {
		return Calendar{}, err
	}
	return buildCalendar(records, year, month, s.Today()), nil
}

// Overview 初始化当月后汇总打卡页所需数据
func (s *TrackerService) Overview(username string) (*TrackerOverview, error) {
	if err := s.EnsureMonthInitialized(username); err != nil {
		return nil, err
	}

	now := s.now()
	records, err := s.monthRecords(username, now.Year(), now.Month())
	if err != nil {
		return nil, err
	}

	today := s.Today()
	overview := &TrackerOverview{
		Today:    today,
		Summary:  summarize(records, now.Year(), now.Month()),
		Streak:   streakEndingAt(records, now),
		Calendar: buildCalendar(records, now.Year(), now.Month(), today),
		Nudge:    needsNudge(records, now),
	}
	for i := range records {
		if records[i].Date == today {
			overview.TodayRecord = &records[i]
			break
		}
	}
	return overview, nil
}

// History 返回用户全部打卡记录
func (s *TrackerService) History(username string) ([]db.DayRecord, error) {
	username, err := normalizeUsername(username)
	if err != nil {
		return nil, err
	}
	records, err := s.store.ListByUser(username)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	return records, nil
}

// ParseMonth 解析 2006-01 格式的月份
func ParseMonth(value string) (int, time.Month, error) {
	parsed, err := time.Parse(monthLayout, strings.TrimSpace(value))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %s", ErrInvalidDate, value)
	}
	return parsed.Year(), parsed.Month(), nil
}

func (s *TrackerService) monthRecords(username string, year int, month time.Month) ([]db.DayRecord, error) {
	username, err := normalizeUsername(username)
	if err != nil {
		return nil, err
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, s.now().Location())
	last := first.AddDate(0, 1, -1)
	records, err := s.store.ListBetween(username, first.Format(dateLayout), last.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("load month: %w", err)
	}
	return records, nil
}

func summarize(records []db.DayRecord, year int, month time.Month) MonthSummary {
	summary := MonthSummary{Year: year, Month: int(month), Total: len(records)}
	for _, r := range records {
		if r.Completed {
			summary.Completed++
		}
	}
	if summary.Total > 0 {
		summary.Percent = float64(summary.Completed) / float64(summary.Total) * 100
	}
	return summary
}

// streakEndingAt 从今天开始逐日回溯，遇到缺失、未完成或跨月即停止
func streakEndingAt(records []db.DayRecord, now time.Time) int {
	completed := completedByDate(records)
	today := normalizeToDate(now)

	streak := 0
	for offset := 0; ; offset++ {
		day := today.AddDate(0, 0, -offset)
		if day.Month() != today.Month() || day.Year() != today.Year() {
			return streak
		}
		if !completed[day.Format(dateLayout)] {
			return streak
		}
		streak++
	}
}

// needsNudge 在今天及之前两天（同月内）均未完成时提醒用户
func needsNudge(records []db.DayRecord, now time.Time) bool {
	today := normalizeToDate(now)
	if today.Day() < nudgeDays {
		return false
	}

	byDate := make(map[string]db.DayRecord, len(records))
	for _, r := range records {
		byDate[r.Date] = r
	}
	for offset := 0; offset < nudgeDays; offset++ {
		record, ok := byDate[today.AddDate(0, 0, -offset).Format(dateLayout)]
		if !ok || record.Completed {
			return false
		}
	}
	return true
}

func buildCalendar(records []db.DayRecord, year int, month time.Month, today string) Calendar {
	byDate := make(map[string]db.DayRecord, len(records))
	for _, r := range records {
		byDate[r.Date] = r
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	days := daysIn(first)
	// 周一为 0
	lead := (int(first.Weekday()) + 6) % 7

	cal := Calendar{Year: year, Month: int(month), Weeks: make([][]CalendarCell, calendarWeeks)}
	for w := 0; w < calendarWeeks; w++ {
		week := make([]CalendarCell, 7)
		for d := 0; d < 7; d++ {
			day := w*7 + d - lead + 1
			if day < 1 || day > days {
				week[d] = CalendarCell{Blank: true}
				continue
			}

			date := first.AddDate(0, 0, day-1).Format(dateLayout)
			cell := CalendarCell{Day: day, Date: date, Status: DayStatusPending}
			if record, ok := byDate[date]; ok && record.Completed {
				cell.Status = DayStatusDone
				cell.Motivation = record.Motivation
			} else if date == today {
				cell.Status = DayStatusToday
			}
			week[d] = cell
		}
		cal.Weeks[w] = week
	}
	return cal
}

func completedByDate(records []db.DayRecord) map[string]bool {
	completed := make(map[string]bool, len(records))
	for _, r := range records {
		if r.Completed {
			completed[r.Date] = true
		}
	}
	return completed
}

func normalizeToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func daysIn(first time.Time) int {
	return first.AddDate(0, 1, -1).Day()
}

func normalizeUsername(username string) (string, error) {
	trimmed := strings.TrimSpace(username)
	if trimmed == "" {
		return "", ErrInvalidUsername
	}
	return trimmed, nil
}
