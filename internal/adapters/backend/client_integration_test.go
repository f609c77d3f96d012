//go:build integration

package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"trendboard/internal/adapters/auth"
	"trendboard/internal/domain"
	"trendboard/test/fixtures"
)

// WireMockContainer wraps a WireMock instance standing in for the backend.
type WireMockContainer struct {
	testcontainers.Container
	baseURL string
}

func setupWireMock(ctx context.Context) (*WireMockContainer, error) {
	req := testcontainers.ContainerRequest{
		Image:        "wiremock/wiremock:3.9.1",
		ExposedPorts: []string{"8080/tcp"},
		WaitingFor:   wait.ForHTTP("/__admin/mappings").WithPort("8080/tcp").WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get host: %w", err)
	}
	port, err := container.MappedPort(ctx, "8080")
	if err != nil {
		return nil, fmt.Errorf("failed to get port: %w", err)
	}

	return &WireMockContainer{
		Container: container,
		baseURL:   fmt.Sprintf("http://%s:%s", host, port.Port()),
	}, nil
}

// stub registers a mapping that answers method+path with status and body
// when the bearer token matches.
func (w *WireMockContainer) stub(t *testing.T, method, path string, status int, body string) {
	t.Helper()
	mapping := map[string]any{
		"request": map[string]any{
			"method":  method,
			"urlPath": path,
			"headers": map[string]any{
				"Authorization": map[string]any{"equalTo": "Bearer integration-token"},
			},
		},
		"response": map[string]any{
			"status":  status,
			"body":    body,
			"headers": map[string]string{"Content-Type": "application/json"},
		},
	}
	payload, err := json.Marshal(mapping)
	if err != nil {
		t.Fatalf("marshal mapping: %v", err)
	}
	resp, err := http.Post(w.baseURL+"/__admin/mappings", "application/json", strings.NewReader(string(payload)))
	if err != nil {
		t.Fatalf("register mapping: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register mapping: status %d", resp.StatusCode)
	}
}

func TestIntegration_BackendClientAgainstWireMock(t *testing.T) {
	ctx := context.Background()
	wm, err := setupWireMock(ctx)
	if err != nil {
		t.Fatalf("setupWireMock() error = %v", err)
	}
	defer func() { _ = wm.Terminate(ctx) }()

	wm.stub(t, "GET", "/api/twitter", http.StatusOK, fixtures.XTrends())
	wm.stub(t, "GET", "/api/tiktok", http.StatusServiceUnavailable, `{"error":"maintenance"}`)
	wm.stub(t, "POST", "/api/prompt", http.StatusOK, fixtures.Prompt("wm-1", "twitter", "video"))
	wm.stub(t, "GET", "/api/content", http.StatusOK, fixtures.SavedContent())
	wm.stub(t, "PUT", "/api/content", http.StatusNoContent, "")

	client := New(testConfig(wm.baseURL), auth.StaticSource("integration-token"))

	t.Run("trends", func(t *testing.T) {
		trends, err := client.FetchTrends(ctx, domain.PlatformX)
		if err != nil {
			t.Fatalf("FetchTrends() error = %v", err)
		}
		if trends[0].Tag != "#AIMarketing" || trends[0].Relevance != 73 {
			t.Errorf("first trend: got %+v", trends[0])
		}
	})

	t.Run("upstream status", func(t *testing.T) {
		_, err := client.FetchTrends(ctx, domain.PlatformTikTok)
		if !errors.Is(err, domain.ErrUpstreamStatus) {
			t.Errorf("error: got %v, want ErrUpstreamStatus", err)
		}
	})

	t.Run("prompt", func(t *testing.T) {
		rec, err := client.Generate(ctx, domain.PlatformX, []string{"#AIMarketing"})
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		if rec.ID != "wm-1" || rec.ContentType != domain.ContentVideo {
			t.Errorf("recommendation: got %+v", rec)
		}
	})

	t.Run("saved content", func(t *testing.T) {
		items, err := client.SavedContent(ctx)
		if err != nil {
			t.Fatalf("SavedContent() error = %v", err)
		}
		if len(items) != 3 {
			t.Errorf("items: got %d, want 3", len(items))
		}
		if err := client.SetSaved(ctx, items[0].ID, false); err != nil {
			t.Errorf("SetSaved() error = %v", err)
		}
	})

	t.Run("wrong token is rejected", func(t *testing.T) {
		other := New(testConfig(wm.baseURL), auth.StaticSource("someone-else"))
		_, err := other.FetchTrends(ctx, domain.PlatformX)
		var upstream *domain.UpstreamError
		if !errors.As(err, &upstream) || upstream.StatusCode != http.StatusNotFound {
			t.Errorf("error: got %v, want 404 from unmatched stub", err)
		}
	})
}
