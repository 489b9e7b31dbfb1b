package main

import (
	"fmt"
	"log"
	"time"

	"github.com/recoverycompanion/internal/config"
	"github.com/recoverycompanion/internal/db"
	"github.com/recoverycompanion/internal/service"
	"gorm.io/gorm"
)

const (
	demoTherapistUser     = "counsellor"
	demoTherapistPassword = "therapist123"
)

// demoUser 描述一名演示用户最近几天的打卡与自评
type demoUser struct {
	Name      string
	Language  string
	Completed []int // 距今天的天数，0 表示今天
	Craving   int
	Usage     int
	Booking   *service.BookingInput
}

var demoUsers = []demoUser{
	{Name: "asha", Language: "english", Completed: []int{0, 1, 2, 4}, Craving: 3, Usage: 1,
		Booking: &service.BookingInput{Time: "10:30", Mode: service.BookingModeOnline, Note: "Weekly check-in"}},
	{Name: "ravi", Language: "tamil", Completed: []int{5}, Craving: 8, Usage: 4},
	{Name: "meena", Language: "english", Completed: []int{0, 1}, Craving: 5, Usage: 0,
		Booking: &service.BookingInput{Time: "16:00", Mode: service.BookingModeInPerson}},
}

// 测试数据生成器
func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal("配置无效:", err)
	}

	gdb, err := db.Open(cfg.DatabasePath, false)
	if err != nil {
		log.Fatal("数据库初始化失败:", err)
	}
	defer db.Close(gdb)

	fmt.Println("开始生成测试数据...")
	loc := cfg.Location()
	if err := seed(gdb, func() time.Time { return time.Now().In(loc) }); err != nil {
		log.Fatal("生成测试数据失败:", err)
	}

	fmt.Println("测试数据生成完成！")
	fmt.Printf("治疗师: %s (密码: %s)\n", demoTherapistUser, demoTherapistPassword)
	fmt.Printf("用户: %d 名演示用户\n", len(demoUsers))
}

// seed 写入演示数据；重复执行时用户与打卡记录保持幂等
func seed(gdb *gorm.DB, now func() time.Time) error {
	if err := service.NewTherapistService(gdb).Ensure(demoTherapistUser, demoTherapistPassword); err != nil {
		return err
	}

	users := service.NewUserService(gdb, now)
	store := db.NewDayRecordStore(gdb)
	tracker := service.NewTrackerService(store, now, nil)
	progress := service.NewProgressService(gdb, now)
	bookings := service.NewBookingService(gdb)

	today := now()
	for _, demo := range demoUsers {
		user, err := users.Login(demo.Name, demo.Language)
		if err != nil {
			return fmt.Errorf("login %s: %w", demo.Name, err)
		}
		if err := tracker.EnsureMonthInitialized(user.Username); err != nil {
			return err
		}

		for _, offset := range demo.Completed {
			day := today.AddDate(0, 0, -offset)
			if day.Month() != today.Month() {
				continue
			}
			if _, err := store.Complete(user.Username, day.Format("2006-01-02"), "Seeded check-in 🌱"); err != nil {
				return err
			}
		}

		if _, err := progress.Log(service.ProgressInput{Username: user.Username, Mood: "steady", Craving: demo.Craving, Usage: demo.Usage}); err != nil {
			return err
		}

		if demo.Booking != nil {
			input := *demo.Booking
			input.Username = user.Username
			input.Date = today.AddDate(0, 0, 7).Format("2006-01-02")
			if _, err := bookings.Create(input); err != nil {
				return err
			}
		}
		fmt.Printf("✅ %s 数据已生成\n", user.Username)
	}
	return nil
}
