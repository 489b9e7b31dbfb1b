package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/recoverycompanion/internal/chat"
	"github.com/recoverycompanion/internal/db"
	"github.com/recoverycompanion/internal/locale"
	"github.com/recoverycompanion/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db              *gorm.DB
	users           *service.UserService
	tracker         *service.TrackerService
	chat            *service.ChatService
	contentLog      *service.ContentLogService
	progress        *service.ProgressService
	bookings        *service.BookingService
	therapists      *service.TherapistService
	dashboard       *service.DashboardService
	choose          func(n int) int
	now             func() time.Time
	defaultLanguage string
}

// Options 控制时钟、随机选择与默认语言，零值使用系统时间与随机数
type Options struct {
	Location        *time.Location
	DefaultLanguage string
	Now             func() time.Time
	Chooser         func(n int) int
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, opts Options) *API {
	now := opts.Now
	if now == nil {
		loc := opts.Location
		if loc == nil {
			loc = time.Local
		}
		now = func() time.Time { return time.Now().In(loc) }
	}
	choose := opts.Chooser
	if choose == nil {
		choose = service.RandomChooser
	}

	return &API{
		db:              gdb,
		users:           service.NewUserService(gdb, now),
		tracker:         service.NewTrackerService(db.NewDayRecordStore(gdb), now, choose),
		chat:            service.NewChatService(gdb, chat.NewEngine(choose), now),
		contentLog:      service.NewContentLogService(gdb, now),
		progress:        service.NewProgressService(gdb, now),
		bookings:        service.NewBookingService(gdb),
		therapists:      service.NewTherapistService(gdb),
		dashboard:       service.NewDashboardService(gdb, now),
		choose:          choose,
		now:             now,
		defaultLanguage: locale.Resolve(opts.DefaultLanguage, locale.LanguageEnglish),
	}
}

// DB exposes the underlying gorm instance.
func (a *API) DB() *gorm.DB {
	return a.db
}

// Therapists exposes the therapist service for bootstrap.
func (a *API) Therapists() *service.TherapistService {
	return a.therapists
}

// renderHTML 在模板数据中附加当前会话的用户名与语言
func (a *API) renderHTML(c *gin.Context, status int, template string, data gin.H) {
	sess := loadSession(c)
	pref := locale.PreferenceForLanguage(a.requestLanguage(c, sess))

	payload := gin.H{}
	for key, value := range data {
		payload[key] = value
	}
	if _, exists := payload["username"]; !exists {
		payload["username"] = chat.DisplayName(sess.Username)
	}
	if _, exists := payload["therapist"]; !exists {
		payload["therapist"] = sess.Therapist
	}
	payload["language"] = pref.Language
	payload["htmlLang"] = pref.HTMLLang
	payload["languages"] = locale.Supported()
	payload["year"] = a.now().Year()

	c.HTML(status, template, payload)
}

// Ping 用于健康检查
func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}
