package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/recoverycompanion/internal/locale"
	"github.com/recoverycompanion/internal/service"
)

// ShowLoginPage 渲染用户登录页面
func (a *API) ShowLoginPage(c *gin.Context) {
	a.renderHTML(c, http.StatusOK, "login.html", gin.H{
		"title": "Welcome",
	})
}

// Login 处理用户登录：只需要名字与语言
func (a *API) Login(c *gin.Context) {
	username := c.PostForm("username")
	language := locale.Resolve(c.PostForm("language"), a.defaultLanguage)

	user, err := a.users.Login(username, language)
	if err != nil {
		if errors.Is(err, service.ErrInvalidUsername) {
			a.renderHTML(c, http.StatusBadRequest, "login.html", gin.H{
				"title": "Welcome",
				"error": "Please enter your name to continue.",
			})
			return
		}
		log.Printf("[auth] login failed: %v", err)
		a.renderHTML(c, http.StatusInternalServerError, "login.html", gin.H{
			"title": "Welcome",
			"error": "Something went wrong, please try again.",
		})
		return
	}

	session := sessions.Default(c)
	session.Set(sessionKeyUsername, user.Username)
	session.Set(sessionKeyLanguage, user.Language)
	session.Set(sessionKeyConversation, a.chat.NewConversation())
	session.Delete(sessionKeyTypingStart)
	if err := session.Save(); err != nil {
		a.renderHTML(c, http.StatusInternalServerError, "login.html", gin.H{
			"title": "Welcome",
			"error": "Could not save your session.",
		})
		return
	}

	if err := a.tracker.EnsureMonthInitialized(user.Username); err != nil {
		log.Printf("[auth] initialize tracker for %s: %v", user.Username, err)
	}

	c.Redirect(http.StatusFound, "/chat")
}

// Logout 清空会话，同时退出用户与治疗师身份
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.Redirect(http.StatusFound, "/login")
}

// ShowTherapistLogin 渲染治疗师登录页面
func (a *API) ShowTherapistLogin(c *gin.Context) {
	a.renderHTML(c, http.StatusOK, "therapist_login.html", gin.H{
		"title": "Therapist Login",
	})
}

// TherapistLogin 校验治疗师账号并写入会话
func (a *API) TherapistLogin(c *gin.Context) {
	therapist, err := a.therapists.Authenticate(c.PostForm("username"), c.PostForm("password"))
	if err != nil {
		status := http.StatusUnauthorized
		message := "Invalid credentials."
		if !errors.Is(err, service.ErrInvalidCredentials) {
			log.Printf("[auth] therapist login failed: %v", err)
			status = http.StatusInternalServerError
			message = "Something went wrong, please try again."
		}
		a.renderHTML(c, status, "therapist_login.html", gin.H{
			"title": "Therapist Login",
			"error": message,
		})
		return
	}

	session := sessions.Default(c)
	session.Set(sessionKeyTherapist, therapist.Username)
	if err := session.Save(); err != nil {
		a.renderHTML(c, http.StatusInternalServerError, "therapist_login.html", gin.H{
			"title": "Therapist Login",
			"error": "Could not save your session.",
		})
		return
	}

	c.Redirect(http.StatusFound, "/therapist/dashboard")
}
