package e2e

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/recoverycompanion/internal/db"
	"github.com/recoverycompanion/internal/handler"
	"github.com/recoverycompanion/internal/router"
)

const baseURL = "http://example.test"

type e2eSuite struct {
	user      *localClient
	therapist *localClient
}

type localClient struct {
	handler http.Handler
	jar     http.CookieJar
}

func newLocalClient(handler http.Handler) *localClient {
	jar, _ := cookiejar.New(nil)
	return &localClient{handler: handler, jar: jar}
}

func (c *localClient) Do(req *http.Request) (*http.Response, error) {
	for _, cookie := range c.jar.Cookies(req.URL) {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, req)
	resp := w.Result()
	c.jar.SetCookies(req.URL, resp.Cookies())
	return resp, nil
}

func newE2ESuite(t *testing.T) *e2eSuite {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := db.Open(fmt.Sprintf("file:e2e-%d?mode=memory&cache=shared", time.Now().UnixNano()), true)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close(gdb) })

	clock := time.Date(2024, 6, 12, 9, 0, 0, 0, time.UTC)
	api := handler.NewAPI(gdb, handler.Options{
		Now:     func() time.Time { return clock },
		Chooser: func(int) int { return 0 },
	})
	if err := api.Therapists().Ensure("counsellor", "e2e-secret"); err != nil {
		t.Fatalf("failed to seed therapist: %v", err)
	}

	engine := router.SetupRouter(api, router.Options{
		SessionSecret: "test-session-secret",
		TemplateGlob:  "../../web/template/*.html",
	})
	return &e2eSuite{
		user:      newLocalClient(engine),
		therapist: newLocalClient(engine),
	}
}

func (s *e2eSuite) request(t *testing.T, client *localClient, method, path, contentType string, body io.Reader) (int, []byte) {
	t.Helper()
	req, err := http.NewRequest(method, baseURL+path, body)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	return resp.StatusCode, data
}

func (s *e2eSuite) form(t *testing.T, client *localClient, path string, values url.Values) int {
	t.Helper()
	status, _ := s.request(t, client, http.MethodPost, path, "application/x-www-form-urlencoded", strings.NewReader(values.Encode()))
	return status
}

func (s *e2eSuite) call(t *testing.T, client *localClient, method, path, body string, dst interface{}) int {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	status, data := s.request(t, client, method, path, "application/json", reader)
	if dst != nil {
		if err := json.Unmarshal(data, dst); err != nil {
			t.Fatalf("failed to decode %s %s response %q: %v", method, path, data, err)
		}
	}
	return status
}

func TestE2E_RecoveryJourney(t *testing.T) {
	suite := newE2ESuite(t)

	if status := suite.form(t, suite.user, "/login", url.Values{"username": {"asha"}, "language": {"english"}}); status != http.StatusFound {
		t.Fatalf("user login failed: %d", status)
	}

	t.Run("chat", func(t *testing.T) {
		var reply struct {
			Intent string `json:"intent"`
			HTML   string `json:"html"`
		}
		if status := suite.call(t, suite.user, http.MethodPost, "/api/chat", `{"message":"I'm not going to die, I choose life"}`, &reply); status != http.StatusOK {
			t.Fatalf("chat failed: %d", status)
		}
		if reply.Intent != "choosing-life" {
			t.Fatalf("expected choosing-life reply, got %q", reply.Intent)
		}

		var history struct {
			Messages []map[string]any `json:"messages"`
		}
		suite.call(t, suite.user, http.MethodGet, "/api/chat/history", "", &history)
		if len(history.Messages) != 2 {
			t.Fatalf("expected 2 turns, got %d", len(history.Messages))
		}
	})

	t.Run("tracker", func(t *testing.T) {
		var mark struct {
			Motivation string `json:"motivation"`
		}
		if status := suite.call(t, suite.user, http.MethodPost, "/api/tracker/today", "", &mark); status != http.StatusOK {
			t.Fatalf("mark today failed: %d", status)
		}
		if mark.Motivation == "" {
			t.Fatal("expected a motivation quote")
		}
		if status := suite.call(t, suite.user, http.MethodPost, "/api/tracker/days/2024-06-01", "", nil); status != http.StatusConflict {
			t.Fatalf("expected past day to be read-only, got %d", status)
		}
	})

	var bookingID uint
	t.Run("booking", func(t *testing.T) {
		var booking struct {
			ID     uint   `json:"ID"`
			Status string `json:"Status"`
		}
		if status := suite.call(t, suite.user, http.MethodPost, "/api/bookings", `{"date":"2024-06-20","time":"11:00","mode":"online"}`, &booking); status != http.StatusCreated {
			t.Fatalf("booking failed: %d", status)
		}
		bookingID = booking.ID
	})

	t.Run("therapist", func(t *testing.T) {
		if status := suite.call(t, suite.therapist, http.MethodGet, "/api/dashboard", "", nil); status != http.StatusUnauthorized {
			t.Fatalf("expected dashboard to require therapist login, got %d", status)
		}
		if status := suite.form(t, suite.therapist, "/therapist/login", url.Values{"username": {"counsellor"}, "password": {"e2e-secret"}}); status != http.StatusFound {
			t.Fatalf("therapist login failed: %d", status)
		}

		var updated struct {
			Status string `json:"Status"`
		}
		path := fmt.Sprintf("/api/bookings/%d/status", bookingID)
		if status := suite.call(t, suite.therapist, http.MethodPut, path, `{"status":"Completed"}`, &updated); status != http.StatusOK {
			t.Fatalf("status update failed: %d", status)
		}
		if updated.Status != "Completed" {
			t.Fatalf("expected Completed, got %q", updated.Status)
		}

		status, data := suite.request(t, suite.therapist, http.MethodGet, "/api/export/bookings.csv", "", nil)
		if status != http.StatusOK {
			t.Fatalf("export failed: %d", status)
		}
		rows, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
		if err != nil {
			t.Fatalf("invalid csv: %v", err)
		}
		if len(rows) != 2 || rows[1][6] != "Completed" {
			t.Fatalf("unexpected export rows: %v", rows)
		}

		status, _ = suite.request(t, suite.therapist, http.MethodGet, "/therapist/dashboard", "", nil)
		if status != http.StatusOK {
			t.Fatalf("dashboard page failed: %d", status)
		}
	})

	t.Run("logout", func(t *testing.T) {
		if status := suite.form(t, suite.user, "/logout", url.Values{}); status != http.StatusFound {
			t.Fatalf("logout failed: %d", status)
		}
		if status := suite.call(t, suite.user, http.MethodGet, "/api/tracker", "", nil); status != http.StatusUnauthorized {
			t.Fatalf("expected 401 after logout, got %d", status)
		}
	})
}
