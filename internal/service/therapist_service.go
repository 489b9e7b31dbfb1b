package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/recoverycompanion/internal/db"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ErrInvalidCredentials 在治疗师用户名或密码错误时返回
var ErrInvalidCredentials = errors.New("invalid credentials")

// TherapistService 是治疗师认证的唯一入口
type TherapistService struct {
	db *gorm.DB
}

// NewTherapistService 构造 TherapistService
func NewTherapistService(gdb *gorm.DB) *TherapistService {
	return &TherapistService{db: gdb}
}

// Ensure 按配置创建初始治疗师账号，已存在时不做修改
func (s *TherapistService) Ensure(username, password string) error {
	if err := db.EnsureTherapist(s.db, username, password); err != nil {
		return fmt.Errorf("ensure therapist: %w", err)
	}
	return nil
}

// Authenticate 校验用户名与密码
func (s *TherapistService) Authenticate(username, password string) (*db.Therapist, error) {
	var therapist db.Therapist
	if err := s.db.Where("username = ?", strings.TrimSpace(username)).First(&therapist).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find therapist: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(therapist.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &therapist, nil
}
