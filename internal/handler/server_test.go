package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"github.com/recoverycompanion/internal/db"
)

type stubHTMLRender struct {
	last string
}

type stubHTMLInstance struct {
	name string
	data interface{}
}

func (r *stubHTMLRender) Instance(name string, data interface{}) render.Render {
	r.last = name
	return &stubHTMLInstance{name: name, data: data}
}

func (r *stubHTMLInstance) Render(http.ResponseWriter) error {
	return nil
}

func (r *stubHTMLInstance) WriteContentType(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
}

type testClock struct {
	current time.Time
}

func (c *testClock) Now() time.Time {
	return c.current
}

func (c *testClock) Advance(d time.Duration) {
	c.current = c.current.Add(d)
}

// testServer 构建带会话的 gin 引擎，并在请求之间保留 cookie
type testServer struct {
	t       *testing.T
	api     *API
	engine  *gin.Engine
	html    *stubHTMLRender
	clock   *testClock
	cookies map[string]*http.Cookie
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:handler-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := db.Open(dsn, true)
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close(gdb) })

	clock := &testClock{current: time.Date(2024, 6, 12, 9, 0, 0, 0, time.UTC)}
	api := NewAPI(gdb, Options{Now: clock.Now, Chooser: func(int) int { return 0 }})

	html := &stubHTMLRender{}
	engine := gin.New()
	engine.HTMLRender = html
	engine.Use(sessions.Sessions(SessionName, cookie.NewStore([]byte("test-secret"))))
	engine.POST("/login", api.Login)
	engine.POST("/logout", api.Logout)
	engine.POST("/therapist/login", api.TherapistLogin)

	return &testServer{
		t:       t,
		api:     api,
		engine:  engine,
		html:    html,
		clock:   clock,
		cookies: map[string]*http.Cookie{},
	}
}

func (s *testServer) userGroup() *gin.RouterGroup {
	return s.engine.Group("", UserRequired())
}

func (s *testServer) therapistGroup() *gin.RouterGroup {
	return s.engine.Group("", TherapistRequired())
}

func (s *testServer) do(method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	s.t.Helper()

	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for _, c := range s.cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)

	for _, c := range rec.Result().Cookies() {
		s.cookies[c.Name] = c
	}
	return rec
}

func (s *testServer) getJSON(path string) *httptest.ResponseRecorder {
	return s.do(http.MethodGet, path, nil, "")
}

func (s *testServer) sendJSON(method, path, body string) *httptest.ResponseRecorder {
	return s.do(method, path, strings.NewReader(body), "application/json")
}

func (s *testServer) postForm(path string, values url.Values) *httptest.ResponseRecorder {
	return s.do(http.MethodPost, path, strings.NewReader(values.Encode()), "application/x-www-form-urlencoded")
}

func (s *testServer) login(username, language string) {
	s.t.Helper()
	rec := s.postForm("/login", url.Values{"username": {username}, "language": {language}})
	if rec.Code != http.StatusFound {
		s.t.Fatalf("login failed with status %d", rec.Code)
	}
}

func (s *testServer) loginTherapist(username, password string) {
	s.t.Helper()
	if err := s.api.Therapists().Ensure(username, password); err != nil {
		s.t.Fatalf("failed to ensure therapist: %v", err)
	}
	rec := s.postForm("/therapist/login", url.Values{"username": {username}, "password": {password}})
	if rec.Code != http.StatusFound {
		s.t.Fatalf("therapist login failed with status %d", rec.Code)
	}
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
}
