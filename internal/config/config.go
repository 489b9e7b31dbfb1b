package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/recoverycompanion/internal/locale"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr        string
	Port              string
	DatabasePath      string
	SessionSecret     string
	GinMode           string
	Timezone          string
	DefaultLanguage   string
	TherapistUserName string
	TherapistPassword string
	TemplateGlob      string
}

// Load 从环境变量读取应用配置，并为缺失项提供安全的默认值。
func Load() AppConfig {
	port := getEnv("PORT", "8080")

	return AppConfig{
		ListenAddr:        getEnv("LISTEN_ADDR", fmt.Sprintf(":%s", port)),
		Port:              port,
		DatabasePath:      getEnv("DATABASE_PATH", "data/recovery.db"),
		SessionSecret:     getEnv("SESSION_SECRET", "recovery-dev-secret"),
		GinMode:           getEnv("GIN_MODE", "release"),
		Timezone:          getEnv("TIMEZONE", "Asia/Kolkata"),
		DefaultLanguage:   locale.Resolve(os.Getenv("DEFAULT_LANGUAGE"), locale.LanguageEnglish),
		TherapistUserName: strings.TrimSpace(os.Getenv("THERAPIST_USER_NAME")),
		TherapistPassword: strings.TrimSpace(os.Getenv("THERAPIST_PASSWORD")),
		TemplateGlob:      getEnv("TEMPLATE_GLOB", "web/template/*.html"),
	}
}

// Validate 校验时区与治疗师账号配置
func (c AppConfig) Validate() error {
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("TIMEZONE %q is not a valid location: %w", c.Timezone, err)
	}
	if (c.TherapistUserName == "") != (c.TherapistPassword == "") {
		return errors.New("THERAPIST_USER_NAME and THERAPIST_PASSWORD must be set together")
	}
	return nil
}

// Location 返回配置的时区，无法解析时回退为 UTC
func (c AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, defaultVal string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return defaultVal
}
