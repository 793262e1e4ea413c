package server

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer is a log sink safe for the server goroutines.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newTestLogger() (*slog.Logger, *syncBuffer) {
	buf := &syncBuffer{}
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})), buf
}

func TestServer_ServeAndShutdown(t *testing.T) {
	logger, logs := newTestLogger()
	mux := http.NewServeMux()
	mux.HandleFunc("/ping", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, RequestID(r.Context()))
	})

	srv := New(Config{Addr: "127.0.0.1:0"}, mux, logger)
	addr, err := srv.Listen()
	if err != nil {
		t.Fatalf("Listen() error = %v", err)
	}
	if _, err := srv.Listen(); err == nil {
		t.Error("second Listen() should fail")
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx) }()

	req, _ := http.NewRequest(http.MethodGet, "http://"+addr.String()+"/ping", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET /ping error = %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	if string(body) != "req-42" {
		t.Errorf("handler saw request ID %q, want req-42", body)
	}
	if got := resp.Header.Get(RequestIDHeader); got != "req-42" {
		t.Errorf("%s = %q", RequestIDHeader, got)
	}
	if !srv.IsRunning() {
		t.Error("IsRunning() = false while serving")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve() did not return after cancel")
	}
	if srv.IsRunning() {
		t.Error("IsRunning() = true after shutdown")
	}
	if !strings.Contains(logs.String(), "http server stopped") {
		t.Errorf("expected shutdown log, got:\n%s", logs.String())
	}
}

func TestServer_ServeListensLazily(t *testing.T) {
	srv := New(Config{Addr: "127.0.0.1:0"}, http.NotFoundHandler(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := srv.Serve(ctx); err != nil {
		t.Errorf("Serve() error = %v", err)
	}
}

func TestServer_ListenError(t *testing.T) {
	srv := New(Config{Addr: "256.0.0.1:bad"}, http.NotFoundHandler(), nil)
	if _, err := srv.Listen(); err == nil {
		t.Error("expected a listen error")
	}
	if err := srv.Serve(context.Background()); err == nil {
		t.Error("expected Serve to fail without a listener")
	}
}

func TestNew_Defaults(t *testing.T) {
	srv := New(Config{}, http.NotFoundHandler(), nil)
	if srv.config.ReadHeaderTimeout != DefaultReadHeaderTimeout {
		t.Errorf("ReadHeaderTimeout = %v", srv.config.ReadHeaderTimeout)
	}
	if srv.config.ShutdownTimeout != DefaultShutdownTimeout {
		t.Errorf("ShutdownTimeout = %v", srv.config.ShutdownTimeout)
	}
}

func TestServer_HandlerChain(t *testing.T) {
	logger, logs := newTestLogger()
	srv := New(Config{}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}), logger)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/formulas", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if rec.Header().Get(RequestIDHeader) == "" {
		t.Error("expected a generated request ID")
	}
	if strings.Contains(rec.Body.String(), "boom") {
		t.Error("panic value leaked to the client")
	}
	if !strings.Contains(logs.String(), "panic in handler") {
		t.Errorf("expected the panic to be logged, got:\n%s", logs.String())
	}
}
