package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/recoverycompanion/internal/chat"
	"github.com/recoverycompanion/internal/db"
	"github.com/recoverycompanion/internal/locale"
	"gorm.io/gorm"
)

// ErrUserNotFound 在用户不存在时返回
var ErrUserNotFound = errors.New("user not found")

// UserService 负责用户登录：按用户名创建或更新用户，并记录登录事件
type UserService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewUserService 构造 UserService
func NewUserService(gdb *gorm.DB, now func() time.Time) *UserService {
	if now == nil {
		now = time.Now
	}
	return &UserService{db: gdb, now: now}
}

// Login 规范化用户名（首字母大写），upsert 用户并写入登录记录
func (s *UserService) Login(username, language string) (*db.User, error) {
	if strings.TrimSpace(username) == "" {
		return nil, ErrInvalidUsername
	}
	name := chat.DisplayName(username)
	lang := locale.Resolve(language, locale.LanguageEnglish)
	now := s.now()

	var user db.User
	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("username = ?", name).First(&user).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			user = db.User{Username: name, Language: lang, JoinedAt: now}
			if err := tx.Create(&user).Error; err != nil {
				return fmt.Errorf("create user: %w", err)
			}
		case err != nil:
			return fmt.Errorf("find user: %w", err)
		default:
			if err := tx.Model(&user).Update("language", lang).Error; err != nil {
				return fmt.Errorf("update user language: %w", err)
			}
		}

		if err := tx.Create(&db.LoginEvent{Username: name, LoggedInAt: now}).Error; err != nil {
			return fmt.Errorf("log login: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Get 按用户名读取用户
func (s *UserService) Get(username string) (*db.User, error) {
	var user db.User
	if err := s.db.Where("username = ?", strings.TrimSpace(username)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}
