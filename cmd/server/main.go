package main

import (
	"errors"
	"io/fs"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/recoverycompanion/internal/config"
	"github.com/recoverycompanion/internal/db"
	"github.com/recoverycompanion/internal/handler"
	"github.com/recoverycompanion/internal/router"
)

func main() {
	// .env 可选，缺失时只使用进程环境变量
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("[config] failed to load .env: %v", err)
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	// 初始化数据库
	gdb, err := db.Open(cfg.DatabasePath, false)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	defer db.Close(gdb)

	api := handler.NewAPI(gdb, handler.Options{
		Location:        cfg.Location(),
		DefaultLanguage: cfg.DefaultLanguage,
	})
	if err := api.Therapists().Ensure(cfg.TherapistUserName, cfg.TherapistPassword); err != nil {
		log.Fatalf("failed to ensure therapist account: %v", err)
	}

	// 设置并运行 Gin 服务器
	r := router.SetupRouter(api, router.Options{
		SessionSecret: cfg.SessionSecret,
		TemplateGlob:  cfg.TemplateGlob,
	})
	log.Printf("[server] listening on %s", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}
