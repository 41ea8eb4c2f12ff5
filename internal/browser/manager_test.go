package browser

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeChrome writes a script that announces a DevTools endpoint served by
// srv and then idles. The endpoint does not speak CDP, so connecting fails
// right after a successful launch.
func fakeChrome(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake Chrome is a shell script")
	}

	host := strings.TrimPrefix(srv.URL, "http://")
	script := fmt.Sprintf("#!/bin/sh\necho 'DevTools listening on ws://%s/devtools/browser/fake' >&2\nexec sleep 30\n", host)

	bin := filepath.Join(t.TempDir(), "fake-chrome")
	require.NoError(t, os.WriteFile(bin, []byte(script), 0o755))
	return bin
}

func devtoolsStub() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/json/version" {
			_, _ = fmt.Fprintf(w, `{"webSocketDebuggerUrl":"ws://%s/devtools/browser/fake"}`, r.Host)
			return
		}
		http.NotFound(w, r)
	}))
}

func TestManagerKeepsUserDataDir(t *testing.T) {
	srv := devtoolsStub()
	defer srv.Close()
	bin := fakeChrome(t, srv)

	profile := filepath.Join(t.TempDir(), ".weban-profile")
	require.NoError(t, os.MkdirAll(profile, 0o755))
	cookies := filepath.Join(profile, "Cookies")
	require.NoError(t, os.WriteFile(cookies, []byte("session"), 0o600))

	m := NewManager(Options{
		ChromePath:  bin,
		Headless:    true,
		UserDataDir: profile,
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	_, err := m.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connect")
	require.NoError(t, m.Close())

	data, err := os.ReadFile(cookies)
	require.NoError(t, err, "login profile must survive the session")
	assert.Equal(t, "session", string(data))
}

func TestManagerClosedRefusesStart(t *testing.T) {
	m := NewManager(Options{RemoteURL: "ws://127.0.0.1:1/devtools/browser/none"})
	require.NoError(t, m.Close())

	_, err := m.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "closed")
}
