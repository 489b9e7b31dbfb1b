package db

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// User 定义了康复用户模型，登录仅需用户名与偏好语言
type User struct {
	gorm.Model
	Username string `gorm:"size:64;uniqueIndex;not null"`
	Language string `gorm:"size:16;not null"`
	JoinedAt time.Time
}

// Therapist 定义了治疗师账号，密码以 bcrypt 哈希存储
type Therapist struct {
	gorm.Model
	Username string `gorm:"size:64;uniqueIndex;not null"`
	Password string `gorm:"not null"`
}

// LoginEvent 记录每一次用户登录
type LoginEvent struct {
	ID         uint      `gorm:"primaryKey"`
	Username   string    `gorm:"size:64;index;not null"`
	LoggedInAt time.Time `gorm:"index"`
}

// EnsureTherapist 存在性检查：若提供的用户名与密码均非空且不存在对应账号，则创建一个 bcrypt 哈希的治疗师账号。
func EnsureTherapist(gdb *gorm.DB, username, password string) error {
	trimmedUser := strings.TrimSpace(username)
	trimmedPassword := strings.TrimSpace(password)
	if trimmedUser == "" || trimmedPassword == "" {
		return nil
	}

	if gdb == nil {
		return errors.New("database not initialized")
	}

	var existing Therapist
	if err := gdb.Where("username = ?", trimmedUser).First(&existing).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(trimmedPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		return gdb.Create(&Therapist{Username: trimmedUser, Password: string(hashed)}).Error
	}

	return nil
}
