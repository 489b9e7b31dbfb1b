package router

import (
	"fmt"
	"html/template"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/recoverycompanion/internal/handler"
)

// Options 控制会话密钥与模板位置；TemplateGlob 为空时不加载模板
type Options struct {
	SessionSecret string
	TemplateGlob  string
}

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(api *handler.API, opts Options) *gin.Engine {
	r := gin.Default()

	// 配置会话中间件
	store := cookie.NewStore([]byte(opts.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(handler.SessionName, store))
	r.Use(api.LocaleMiddleware())

	if opts.TemplateGlob != "" {
		r.SetFuncMap(templateFuncs())
		r.LoadHTMLGlob(opts.TemplateGlob)
	}

	r.GET("/ping", handler.Ping)
	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/chat")
	})

	r.GET("/login", api.ShowLoginPage)
	r.POST("/login", api.Login)
	r.POST("/logout", api.Logout)

	r.GET("/therapist/login", api.ShowTherapistLogin)
	r.POST("/therapist/login", api.TherapistLogin)

	// 需要用户登录的路由
	user := r.Group("")
	user.Use(handler.UserRequired())
	{
		user.GET("/chat", api.ShowChat)
		user.GET("/tracker", api.ShowTracker)

		userAPI := user.Group("/api")
		{
			userAPI.POST("/chat/typing", api.StartTyping)
			userAPI.POST("/chat", api.SendMessage)
			userAPI.GET("/chat/history", api.GetChatHistory)
			userAPI.DELETE("/chat/history", api.ClearChatHistory)

			userAPI.GET("/tracker", api.GetTracker)
			userAPI.POST("/tracker/today", api.MarkToday)
			userAPI.POST("/tracker/days/:date", api.MarkDay)
			userAPI.GET("/tracker/months/:month", api.GetTrackerMonth)

			userAPI.GET("/content/suggest", api.SuggestContent)
			userAPI.GET("/content/picks", api.GetContentPicks)
			userAPI.GET("/content/:category", api.GetContentCategory)

			userAPI.GET("/awareness", api.ListAwareness)
			userAPI.GET("/awareness/cost", api.AwarenessCost)
			userAPI.GET("/awareness/:topic", api.GetAwarenessTopic)

			userAPI.POST("/progress", api.LogProgress)
			userAPI.GET("/progress", api.ListProgress)

			userAPI.POST("/bookings", api.CreateBooking)
			userAPI.GET("/bookings", api.ListMyBookings)
		}
	}

	// 治疗师路由
	therapist := r.Group("")
	therapist.Use(handler.TherapistRequired())
	{
		therapist.GET("/therapist/dashboard", api.ShowTherapistDashboard)

		therapistAPI := therapist.Group("/api")
		{
			therapistAPI.GET("/dashboard", api.GetDashboard)
			therapistAPI.GET("/dashboard/logins", api.GetLoginCounts)
			therapistAPI.GET("/dashboard/patients", api.GetPatientRecords)
			therapistAPI.GET("/dashboard/missed", api.GetMissedEntries)
			therapistAPI.PUT("/bookings/:id/status", api.UpdateBookingStatus)
			therapistAPI.GET("/export/bookings.csv", api.ExportBookings)
			therapistAPI.GET("/export/recovery.csv", api.ExportRecovery)
		}
	}

	return r
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"percent": func(value float64) string {
			return fmt.Sprintf("%.0f%%", value)
		},
	}
}
