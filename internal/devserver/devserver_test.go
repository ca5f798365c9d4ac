package devserver

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/vcrobe/clickcounter/config"
	"github.com/vcrobe/clickcounter/web"
)

func newTestServer(t *testing.T, opts ...Option) (*Server, string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.wasm"), []byte("\x00asm"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "wasm_exec.js"), []byte("// shim"), 0o644))

	cfg := DefaultConfig()
	cfg.Dir = dir
	s, err := New(cfg, opts...)
	require.NoError(t, err)
	return s, dir
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHandler_ServesPageAndAssets(t *testing.T) {
	// Arrange
	s, _ := newTestServer(t)
	h := s.Handler()

	// Act
	index := get(t, h, "/")
	wasm := get(t, h, "/main.wasm")
	shim := get(t, h, "/wasm_exec.js")
	missing := get(t, h, "/nope.js")

	// Assert
	assert.Equal(t, http.StatusOK, index.Code)
	assert.Equal(t, string(web.Index), index.Body.String())
	assert.Contains(t, index.Header().Get("Content-Type"), "text/html")

	assert.Equal(t, http.StatusOK, wasm.Code)
	assert.Equal(t, "application/wasm", wasm.Header().Get("Content-Type"))
	assert.Equal(t, "\x00asm", wasm.Body.String())

	assert.Equal(t, "// shim", shim.Body.String())
	assert.Equal(t, http.StatusNotFound, missing.Code)
}

func TestHandler_ConfigJS(t *testing.T) {
	s, _ := newTestServer(t)

	rec := get(t, s.Handler(), "/config.js")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.True(t, strings.HasPrefix(body, "window.counterConfig = "))
	data := strings.TrimSuffix(strings.TrimPrefix(body, "window.counterConfig = "), ";\n")
	cfg, err := config.FromJSON([]byte(data))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestHandler_WithIndex(t *testing.T) {
	s, _ := newTestServer(t, WithIndex([]byte("<p>custom</p>")))

	rec := get(t, s.Handler(), "/index.html")

	assert.Equal(t, "<p>custom</p>", rec.Body.String())
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Counter.TriggerID = cfg.Counter.DisplayID

	_, err := New(cfg)

	assert.True(t, errors.Is(err, config.ErrInvalid))
}

func TestLoadConfig(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "counter.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
addr: ":9000"
counter:
  triggerId: plus
  alertOnError: true
`), 0o644))

	// Act
	cfg, err := LoadConfig(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, "dist", cfg.Dir)
	assert.Equal(t, "counter", cfg.Counter.DisplayID)
	assert.Equal(t, "plus", cfg.Counter.TriggerID)
	assert.True(t, cfg.Counter.AlertOnError)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("addr: \"\"\n"), 0o644))
	_, err = LoadConfig(path)
	assert.Error(t, err)
}

func TestCheck(t *testing.T) {
	mounted := config.Default()
	mounted.Mount = "app"

	tests := []struct {
		name   string
		markup string
		cfg    config.Config
		want   []Problem
	}{
		{"stock page", string(web.Index), config.Default(), nil},
		{"missing trigger", `<p id="counter"></p>`, config.Default(),
			[]Problem{{ID: "increment-btn", Count: 0, Want: 1}}},
		{"duplicate display", `<p id="counter"></p><p id="counter"></p><button id="increment-btn"></button>`,
			config.Default(), []Problem{{ID: "counter", Count: 2, Want: 1}}},
		{"mount ok", `<div id="app"></div>`, mounted, nil},
		{"mount with static markup", `<div id="app"></div><p id="counter"></p>`, mounted,
			[]Problem{{ID: "counter", Count: 1, Want: 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Check(strings.NewReader(tt.markup), tt.cfg)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProblem_String(t *testing.T) {
	assert.Equal(t, `no element with id "x"`, Problem{ID: "x", Want: 1}.String())
	assert.Equal(t, `2 elements with id "x", want 1`, Problem{ID: "x", Count: 2, Want: 1}.String())
}

func TestServe_StopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	// Arrange
	s, _ := newTestServer(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- s.Serve(ctx, ln) }()

	// Act
	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	resp, err := client.Get("http://" + ln.Addr().String() + "/")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	cancel()

	// Assert
	assert.Equal(t, string(web.Index), string(body))
	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestRun_ListenError(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Addr = "256.0.0.1:bad"
	s, err := New(cfg)
	require.NoError(t, err)

	err = s.Run(context.Background())

	assert.Error(t, err)
}
