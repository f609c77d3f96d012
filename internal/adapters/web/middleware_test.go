package web

import (
	"bytes"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"trendboard/internal/adapters/auth"
	"trendboard/pkg/log"
	"trendboard/pkg/log/transporters"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func setupTestApp() *fiber.App {
	app := fiber.New()
	app.Use(requestid.New(RequestIDConfig()))
	app.Use(RequestIDToContextMiddleware())
	return app
}

func TestRequestIDToContext_ExtractsIDFromFiber(t *testing.T) {
	app := setupTestApp()

	var capturedRequestID string
	app.Get("/test", func(c *fiber.Ctx) error {
		capturedRequestID = log.RequestIDFromContext(c.UserContext())
		return c.SendString("ok")
	})

	req := httptest.NewRequest("GET", "/test", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	defer resp.Body.Close()

	if capturedRequestID == "" {
		t.Error("request_id should be extracted from Fiber's requestid middleware")
	}

	headerID := resp.Header.Get("X-Request-ID")
	if headerID != capturedRequestID {
		t.Errorf("response header = %q, context = %q, should match", headerID, capturedRequestID)
	}
}

func TestRequestIDToContext_UsesProvidedID(t *testing.T) {
	app := setupTestApp()

	var capturedRequestID string
	app.Get("/test", func(c *fiber.Ctx) error {
		capturedRequestID = log.RequestIDFromContext(c.UserContext())
		return c.SendString("ok")
	})

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("X-Request-ID", "custom-trace-id-123")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	defer resp.Body.Close()

	if capturedRequestID != "custom-trace-id-123" {
		t.Errorf("request_id = %q, want %q", capturedRequestID, "custom-trace-id-123")
	}
}

func TestBearerTokenMiddleware(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "bearer", header: "Bearer session-xyz", want: "session-xyz"},
		{name: "missing", header: "", want: ""},
		{name: "other scheme", header: "Basic Zm9vOmJhcg==", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Use(BearerTokenMiddleware())

			var captured string
			app.Get("/test", func(c *fiber.Ctx) error {
				captured = auth.TokenFromContext(c.UserContext())
				return c.SendString("ok")
			})

			req := httptest.NewRequest("GET", "/test", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			resp.Body.Close()

			if captured != tt.want {
				t.Errorf("token = %q, want %q", captured, tt.want)
			}
		})
	}
}

func captureLogs(t *testing.T) (*bytes.Buffer, *log.Logger) {
	t.Helper()
	var buf bytes.Buffer
	logger := log.New(log.Info, transporters.NewStdoutWithWriter(&buf))
	log.SetDefault(logger)
	t.Cleanup(func() {
		logger.Close()
		log.SetDefault(nil)
	})
	return &buf, logger
}

func loggedApp() *fiber.App {
	app := fiber.New()
	app.Use(requestid.New(RequestIDConfig()))
	app.Use(RequestIDToContextMiddleware())
	app.Use(RequestLoggerMiddleware())
	return app
}

func TestRequestLoggerMiddleware_LogsRequest(t *testing.T) {
	buf, logger := captureLogs(t)

	app := loggedApp()
	app.Get("/test-path", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	req := httptest.NewRequest("GET", "/test-path", nil)
	req.Header.Set("X-Request-ID", "test-req-123")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	// Wait for async log
	logger.Close()

	output := buf.String()
	for _, want := range []string{"request completed", "test-req-123", "/test-path", `"status":200`, `"level":"INFO"`} {
		if !strings.Contains(output, want) {
			t.Errorf("log should contain %s, got: %s", want, output)
		}
	}
}

func TestRequestLoggerMiddleware_LevelByStatus(t *testing.T) {
	tests := []struct {
		name   string
		status int
		level  string
	}{
		{name: "4xx is warn", status: 404, level: `"level":"WARN"`},
		{name: "5xx is error", status: 500, level: `"level":"ERROR"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, logger := captureLogs(t)

			app := loggedApp()
			app.Get("/status", func(c *fiber.Ctx) error {
				return c.Status(tt.status).SendString("nope")
			})

			resp, err := app.Test(httptest.NewRequest("GET", "/status", nil))
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			resp.Body.Close()
			logger.Close()

			if !strings.Contains(buf.String(), tt.level) {
				t.Errorf("log should contain %s, got: %s", tt.level, buf.String())
			}
		})
	}
}

func TestRateLimiter_AllowsBurstThenRejects(t *testing.T) {
	// Arrange
	rl := NewRateLimiter(0.001, 2, time.Minute)
	defer rl.Stop()

	// Act & Assert
	if !rl.Allow("1.1.1.1") || !rl.Allow("1.1.1.1") {
		t.Fatal("first two requests should pass")
	}
	if rl.Allow("1.1.1.1") {
		t.Error("third request should be rejected")
	}
	if !rl.Allow("2.2.2.2") {
		t.Error("another IP has its own budget")
	}
}

func TestRateLimiter_EvictsIdleClients(t *testing.T) {
	rl := NewRateLimiter(1, 1, time.Minute)
	defer rl.Stop()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.Allow("1.1.1.1")
	now = now.Add(30 * time.Second)
	rl.Allow("2.2.2.2")
	now = now.Add(45 * time.Second)
	rl.evictIdle()

	if rl.Size() != 1 {
		t.Errorf("clients: got %d, want 1", rl.Size())
	}
}

func TestRateLimiter_Middleware_Returns429(t *testing.T) {
	_, _ = captureLogs(t)
	rl := NewRateLimiter(0.5, 1, time.Minute)
	defer rl.Stop()

	app := fiber.New()
	app.Get("/limited", rl.Middleware(), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	first, err := app.Test(httptest.NewRequest("GET", "/limited", nil))
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	first.Body.Close()
	second, err := app.Test(httptest.NewRequest("GET", "/limited", nil))
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	defer second.Body.Close()

	if first.StatusCode != 200 {
		t.Errorf("first status: got %d, want 200", first.StatusCode)
	}
	if second.StatusCode != fiber.StatusTooManyRequests {
		t.Errorf("second status: got %d, want 429", second.StatusCode)
	}
	if got := second.Header.Get("Retry-After"); got != "2" {
		t.Errorf("Retry-After: got %q, want 2", got)
	}
}
