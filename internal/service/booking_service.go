package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/recoverycompanion/internal/db"
	"gorm.io/gorm"
)

var (
	// ErrBookingNotFound 在预约不存在时返回
	ErrBookingNotFound = errors.New("booking not found")
	// ErrInvalidBooking 当预约字段不合法时返回
	ErrInvalidBooking = errors.New("invalid booking")
)

// 预约方式与状态
const (
	BookingModeOnline   = "Online"
	BookingModeInPerson = "In-person"

	BookingStatusPending   = "Pending"
	BookingStatusConfirmed = "Confirmed"
	BookingStatusCompleted = "Completed"
	BookingStatusCancelled = "Cancelled"
)

var bookingStatuses = []string{BookingStatusPending, BookingStatusConfirmed, BookingStatusCompleted, BookingStatusCancelled}

// BookingService 负责治疗预约的创建、查询与状态流转
type BookingService struct {
	db *gorm.DB
}

// BookingInput 定义用户提交预约时的字段
type BookingInput struct {
	Username string
	Date     string
	Time     string
	Mode     string
	Note     string
}

// BookingFilter 描述预约列表过滤条件
type BookingFilter struct {
	Username string
	Status   string
	Limit    int
}

// NewBookingService 构造 BookingService
func NewBookingService(gdb *gorm.DB) *BookingService {
	return &BookingService{db: gdb}
}

// Create 新建预约，状态默认为 Pending
func (s *BookingService) Create(input BookingInput) (*db.Booking, error) {
	username, err := normalizeUsername(input.Username)
	if err != nil {
		return nil, err
	}

	date := strings.TrimSpace(input.Date)
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, fmt.Errorf("%w: date %q", ErrInvalidBooking, input.Date)
	}

	clock := strings.TrimSpace(input.Time)
	if clock != "" {
		if _, err := time.Parse("15:04", clock); err != nil {
			return nil, fmt.Errorf("%w: time %q", ErrInvalidBooking, input.Time)
		}
	}

	mode, ok := normalizeBookingMode(input.Mode)
	if !ok {
		return nil, fmt.Errorf("%w: mode %q", ErrInvalidBooking, input.Mode)
	}

	booking := db.Booking{
		Reference: uuid.NewString(),
		Username:  username,
		Date:      date,
		Time:      clock,
		Mode:      mode,
		Note:      strings.TrimSpace(input.Note),
		Status:    BookingStatusPending,
	}
	if err := s.db.Create(&booking).Error; err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	return &booking, nil
}

// List 返回预约集合，最新创建的在前
func (s *BookingService) List(filter BookingFilter) ([]db.Booking, error) {
	var bookings []db.Booking

	query := s.db.Model(&db.Booking{})
	if filter.Username != "" {
		query = query.Where("username = ?", strings.TrimSpace(filter.Username))
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	if err := query.Order("id DESC").Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}

// UpdateStatus 修改预约状态
func (s *BookingService) UpdateStatus(id uint, status string) (*db.Booking, error) {
	normalized, ok := normalizeBookingStatus(status)
	if !ok {
		return nil, fmt.Errorf("%w: status %q", ErrInvalidBooking, status)
	}

	var booking db.Booking
	if err := s.db.First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("find booking: %w", err)
	}

	booking.Status = normalized
	if err := s.db.Save(&booking).Error; err != nil {
		return nil, fmt.Errorf("update booking: %w", err)
	}
	return &booking, nil
}

func normalizeBookingMode(mode string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "online":
		return BookingModeOnline, true
	case "in-person", "in person", "inperson":
		return BookingModeInPerson, true
	default:
		return "", false
	}
}

func normalizeBookingStatus(status string) (string, bool) {
	trimmed := strings.TrimSpace(status)
	for _, candidate := range bookingStatuses {
		if strings.EqualFold(candidate, trimmed) {
			return candidate, true
		}
	}
	return "", false
}
