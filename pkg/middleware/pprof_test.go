package middleware

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func serveFrom(t *testing.T, h http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil)
	req.RemoteAddr = remoteAddr
	h.ServeHTTP(rec, req)
	return rec
}

func TestIPAllowlist(t *testing.T) {
	tests := []struct {
		name  string
		cidrs []string
		addr  string
		want  int
	}{
		{"loopback allowed", []string{"127.0.0.0/8"}, "127.0.0.1:40001", http.StatusOK},
		{"public address denied", []string{"127.0.0.0/8"}, "203.0.113.7:40001", http.StatusForbidden},
		{"second range matches", []string{"10.0.0.0/8", "172.16.0.0/12"}, "172.20.4.4:40001", http.StatusOK},
		{"outside every range", []string{"10.0.0.0/8", "172.16.0.0/12"}, "198.51.100.9:40001", http.StatusForbidden},
		{"ipv6 loopback", []string{"::1/128"}, "[::1]:40001", http.StatusOK},
		{"bare address without port", []string{"127.0.0.0/8"}, "127.0.0.1", http.StatusOK},
		{"no ranges denies everything", nil, "127.0.0.1:40001", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mw := IPAllowlist(tt.cidrs, discardLogger())
			rec := serveFrom(t, mw(okHandler()), tt.addr)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestIPAllowlist_DeniedResponseIsJSONError(t *testing.T) {
	mw := IPAllowlist([]string{"10.0.0.0/8"}, discardLogger())
	rec := serveFrom(t, mw(okHandler()), "203.0.113.7:40001")

	require.Equal(t, http.StatusForbidden, rec.Code)

	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Contains(t, body, "error")
}

func TestIPAllowlist_MalformedRangeIsIgnored(t *testing.T) {
	// A bad entry must not poison the list; the valid range still admits.
	mw := IPAllowlist([]string{"not-a-cidr", "127.0.0.0/8"}, discardLogger())
	rec := serveFrom(t, mw(okHandler()), "127.0.0.1:40001")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRegisterPprof(t *testing.T) {
	r := chi.NewRouter()
	RegisterPprof(r, []string{"127.0.0.0/8"}, discardLogger())

	t.Run("index served to allowed caller", func(t *testing.T) {
		rec := serveFrom(t, r, "127.0.0.1:40001")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "pprof")
	})

	t.Run("index refused outside allowlist", func(t *testing.T) {
		rec := serveFrom(t, r, "203.0.113.7:40001")
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("cmdline route wired", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/debug/pprof/cmdline", nil)
		req.RemoteAddr = "127.0.0.1:40001"
		r.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
