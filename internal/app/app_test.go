package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/margin/internal/adapters/api"
	"go.trai.ch/margin/internal/adapters/detector"
	"go.trai.ch/margin/internal/adapters/memory"
	"go.trai.ch/margin/internal/adapters/telemetry"
	"go.trai.ch/margin/internal/app"
	"go.trai.ch/margin/internal/core/domain"
	"go.trai.ch/margin/internal/core/ports/mocks"
	"go.trai.ch/margin/internal/engine/catalog"
	"go.uber.org/mock/gomock"
)

const docsPage = `<!DOCTYPE html>
<html>
<head><title>Docs</title></head>
<body>
  <h1 id="hero">Welcome</h1>
  <div class="card">
    <p>Click to save.</p>
    <button id="save-btn">Save</button>
  </div>
</body>
</html>`

// site serves docs.html through the annotation server with endpoint injection.
type site struct {
	url  string
	repo *memory.Repository
}

func newSite(t *testing.T, endpoint string) *site {
	t.Helper()
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Error(gomock.Any()).AnyTimes()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "docs.html"), []byte(docsPage), 0o600))

	repo := memory.NewRepository()
	_, err := catalog.New(repo).Submit(context.Background(), domain.Annotation{
		URL:      "/docs.html",
		Selector: "#hero",
		Comment:  "too loud",
		Author:   "Al",
		Position: domain.Position{X: 10, Y: 20},
	})
	require.NoError(t, err)

	srv, err := api.New(catalog.New(repo), logger, telemetry.NewTracer(), api.Options{
		Endpoint:  endpoint,
		Inject:    true,
		StaticDir: dir,
	})
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return &site{url: ts.URL, repo: repo}
}

func newApp(t *testing.T) (*app.App, *mocks.MockConfigLoader, *mocks.MockLogger) {
	t.Helper()
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	logger := mocks.NewMockLogger(ctrl)
	return app.New(loader, logger, telemetry.NewTracer()), loader, logger
}

func TestList_DiscoversEndpoint(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	s := newSite(t, "/notes")
	a, _, _ := newApp(t)

	out := new(bytes.Buffer)
	a.WithIO(strings.NewReader(""), out)

	require.NoError(t, a.List(context.Background(), s.url+"/docs.html", app.ListOptions{}))

	text := out.String()
	assert.Contains(t, text, "💬 1 annotation on /docs.html")
	assert.Contains(t, text, "1. #hero (10, 20)")
	assert.Contains(t, text, "too loud")
	assert.Contains(t, text, "by Al")
}

func TestList_JSON(t *testing.T) {
	s := newSite(t, domain.DefaultEndpoint)
	a, _, _ := newApp(t)

	out := new(bytes.Buffer)
	a.WithIO(strings.NewReader(""), out)

	require.NoError(t, a.List(context.Background(), s.url+"/docs.html", app.ListOptions{
		Endpoint: domain.DefaultEndpoint,
		JSON:     true,
	}))

	var got struct {
		Annotations []domain.Annotation `json:"annotations"`
		Count       int                 `json:"count"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, 1, got.Count)
	require.Len(t, got.Annotations, 1)
	assert.Equal(t, "#hero", got.Annotations[0].Selector)
}

func TestList_EmptyPage(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	s := newSite(t, domain.DefaultEndpoint)
	a, _, logger := newApp(t)
	logger.EXPECT().Warn(gomock.Any())

	out := new(bytes.Buffer)
	a.WithIO(strings.NewReader(""), out)

	// missing.html is a 404, so discovery falls back to the default endpoint.
	require.NoError(t, a.List(context.Background(), s.url+"/missing.html", app.ListOptions{}))
	assert.Contains(t, out.String(), "💬 0 annotations on /missing.html")
}

func TestList_InvalidURL(t *testing.T) {
	a, _, _ := newApp(t)

	for _, raw := range []string{"not-a-url", "ftp://example.com/x", "http://"} {
		t.Run(raw, func(t *testing.T) {
			err := a.List(context.Background(), raw, app.ListOptions{Endpoint: "/notes"})
			require.Error(t, err)
			assert.Contains(t, err.Error(), "absolute http(s) URL")
		})
	}
}

func TestList_LoadFailure(t *testing.T) {
	a, _, _ := newApp(t)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	err := a.List(context.Background(), ts.URL+"/docs", app.ListOptions{Endpoint: "/notes"})
	require.ErrorIs(t, err, domain.ErrUnexpectedStatus)
	assert.Contains(t, err.Error(), domain.ErrLoadFailed.Error())
}

func TestBrowse_LinearSession(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	s := newSite(t, "/notes")
	a, _, logger := newApp(t)
	logger.EXPECT().Warn(gomock.Any()).AnyTimes()
	logger.EXPECT().Error(gomock.Any()).AnyTimes()

	script := strings.Join([]string{
		"toggle",
		"click #save-btn 120 340",
		"type author Bo",
		"type comment needs a tooltip",
		"save",
		"quit",
	}, "\n")
	out := new(bytes.Buffer)
	a.WithIO(strings.NewReader(script), out)

	require.NoError(t, a.Browse(context.Background(), s.url+"/docs.html", app.BrowseOptions{OutputMode: "linear"}))

	text := out.String()
	assert.Contains(t, text, "📝 Docs /docs.html")
	assert.Contains(t, text, "[browsing] 💬 1")
	assert.Contains(t, text, "[browsing] 💬 2")

	items, err := s.repo.List(context.Background(), "/docs.html")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "#save-btn", items[1].Selector)
	assert.Equal(t, "needs a tooltip", items[1].Comment)
	assert.Equal(t, "Bo", items[1].Author)
	assert.Equal(t, domain.Position{X: 120, Y: 340}, items[1].Position)
}

func TestBrowse_PageNotFound(t *testing.T) {
	s := newSite(t, domain.DefaultEndpoint)
	a, _, _ := newApp(t)

	err := a.Browse(context.Background(), s.url+"/missing.html", app.BrowseOptions{OutputMode: "linear"})
	require.ErrorIs(t, err, domain.ErrPageFetchFailed)
}

func TestBrowse_TUIRequiresTerminal(t *testing.T) {
	if detector.Interactive() {
		t.Skip("test binary is attached to a terminal")
	}
	s := newSite(t, domain.DefaultEndpoint)
	a, _, _ := newApp(t)

	err := a.Browse(context.Background(), s.url+"/docs.html", app.BrowseOptions{OutputMode: "tui"})
	require.ErrorIs(t, err, domain.ErrNotATerminal)
}

func TestServe(t *testing.T) {
	a, loader, logger := newApp(t)

	cfg := domain.DefaultConfig()
	cfg.Server.Addr = "127.0.0.1:0"
	loader.EXPECT().Load("margin.yaml").Return(cfg, nil)
	logger.EXPECT().Info(gomock.Any()).AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	addrs := make(chan net.Addr, 1)
	done := make(chan error, 1)
	go func() {
		done <- a.Serve(ctx, app.ServeOptions{
			ConfigPath: "margin.yaml",
			OnListen:   func(addr net.Addr) { addrs <- addr },
		})
	}()

	var base string
	select {
	case addr := <-addrs:
		base = "http://" + addr.String() + domain.DefaultEndpoint
	case err := <-done:
		t.Fatalf("serve returned early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not start")
	}

	body := `{"url":"/docs","selector":"p","comment":"typo","author":"Al","position":{"x":1,"y":2}}`
	resp, err := http.Post(base, "application/json", strings.NewReader(body)) //nolint:noctx // test request
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = http.Get(base + "?url=/docs") //nolint:noctx // test request
	require.NoError(t, err)
	var got struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	_ = resp.Body.Close()
	assert.Equal(t, 1, got.Count)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServe_AddrOverrideAndBadStorage(t *testing.T) {
	a, loader, _ := newApp(t)

	cfg := domain.DefaultConfig()
	cfg.Storage.Driver = "mongo"
	loader.EXPECT().Load("").Return(cfg, nil)

	err := a.Serve(context.Background(), app.ServeOptions{Addr: "127.0.0.1:0"})
	require.ErrorIs(t, err, domain.ErrUnknownStorageDriver)
	assert.Equal(t, "127.0.0.1:0", cfg.Server.Addr)
}

func TestOpenRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("memory by default", func(t *testing.T) {
		repo, err := app.OpenRepository(ctx, domain.StorageConfig{})
		require.NoError(t, err)
		assert.IsType(t, &memory.Repository{}, repo)
		require.NoError(t, repo.Close())
	})

	t.Run("sqlite", func(t *testing.T) {
		repo, err := app.OpenRepository(ctx, domain.StorageConfig{
			Driver: domain.DriverSQLite,
			Path:   filepath.Join(t.TempDir(), "margin.db"),
		})
		require.NoError(t, err)
		require.NoError(t, repo.Close())
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, err := app.OpenRepository(ctx, domain.StorageConfig{Driver: "mongo"})
		require.ErrorIs(t, err, domain.ErrUnknownStorageDriver)
	})
}

func TestBrowse_PageFetchDeadline(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}))
	defer ts.Close()

	a, _, _ := newApp(t)
	a.SetFetchTimeout(50 * time.Millisecond)

	err := a.Browse(context.Background(), ts.URL+"/docs", app.BrowseOptions{OutputMode: "linear"})
	require.ErrorIs(t, err, domain.ErrPageFetchFailed)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestList_SlowStorageOutlivesFetchDeadline(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"annotations":[{"id":"a1","url":"/docs","selector":"p","comment":"late","author":"Al","position":{"x":1,"y":2}}],"count":1}`))
	}))
	defer ts.Close()

	a, _, _ := newApp(t)
	a.SetFetchTimeout(50 * time.Millisecond)
	assert.Zero(t, a.HTTPClient().Timeout)

	out := new(bytes.Buffer)
	a.WithIO(strings.NewReader(""), out)

	require.NoError(t, a.List(context.Background(), ts.URL+"/docs", app.ListOptions{Endpoint: "/notes", JSON: true}))
	assert.Contains(t, out.String(), `"count": 1`)
}

func TestPagePath(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"http://site.test", "/"},
		{"http://site.test/", "/"},
		{"http://site.test/docs", "/docs"},
		{"http://site.test/docs%20v2", "/docs%20v2"},
		{"http://site.test/a%2Fb/c", "/a%2Fb/c"},
		{"http://site.test/docs?x=1#top", "/docs"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			u, err := url.Parse(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, app.PagePath(u))
		})
	}
}
