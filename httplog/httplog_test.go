package httplog

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

func TestRequestLoggerWritesLine(t *testing.T) {
	e := echo.New()
	var buf bytes.Buffer
	e.Logger.SetOutput(&buf)
	e.Logger.SetLevel(log.INFO)
	Install(e)
	e.GET("/articles", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})
	e.GET("/teapot", func(c echo.Context) error {
		return c.NoContent(http.StatusTeapot)
	})

	for _, target := range []string{"/articles?tag=go", "/teapot"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	}

	out := buf.String()
	for _, want := range []string{"GET /articles?tag=go -> 204", "GET /teapot -> 418"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q: %s", want, out)
		}
	}
}

func TestRequestLoggerRespectsLevel(t *testing.T) {
	e := echo.New()
	var buf bytes.Buffer
	e.Logger.SetOutput(&buf)
	e.Logger.SetLevel(log.WARN)
	Install(e)
	e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if buf.Len() != 0 {
		t.Errorf("request logged above INFO: %s", buf.String())
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name     string
		remote   string
		xff      string
		expected string
	}{
		{"loopback proxy", "127.0.0.1:5000", "203.0.113.5", "203.0.113.5"},
		{"private proxy", "10.0.0.2:5000", "203.0.113.5", "203.0.113.5"},
		{"untrusted peer", "198.51.100.7:5000", "203.0.113.5", "198.51.100.7"},
		{"no header", "198.51.100.7:5000", "", "198.51.100.7"},
	}
	extract := ClientIP()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			if tt.xff != "" {
				req.Header.Set(echo.HeaderXForwardedFor, tt.xff)
			}
			if got := extract(req); got != tt.expected {
				t.Errorf("ClientIP() = %q, want %q", got, tt.expected)
			}
		})
	}
}
