package svc

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"bnrest/internal/infrastructure/config"
	"bnrest/internal/infrastructure/exchange/binance"
)

func testCredentials(t *testing.T) *binance.Credentials {
	t.Helper()
	creds, err := binance.NewCredentials("key", "secret")
	if err != nil {
		t.Fatalf("credentials: %v", err)
	}
	return creds
}

func TestServiceContextJournalsCalls(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	cfg := config.Default()
	cfg.Binance.BaseURL = srv.URL
	cfg.Journal.SQLite.Enabled = true
	cfg.Journal.SQLite.Path = filepath.Join(t.TempDir(), "calls.db")

	sc, err := New(context.Background(), cfg, testCredentials(t))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer sc.Close()

	ctx, cancel := sc.RequestContext()
	defer cancel()
	if _, err := sc.Market().Ping(ctx); err != nil {
		t.Fatalf("Ping failed: %v", err)
	}
	if _, err := sc.Wallet().AccountStatus(ctx); err != nil {
		t.Fatalf("AccountStatus failed: %v", err)
	}

	reader, err := sc.CallReader()
	if err != nil {
		t.Fatalf("CallReader failed: %v", err)
	}
	calls, err := reader.ListCalls(ctx, 10)
	if err != nil {
		t.Fatalf("ListCalls failed: %v", err)
	}
	if len(calls) != 2 {
		t.Fatalf("expected 2 journaled calls, got %d", len(calls))
	}
	for _, c := range calls {
		if c.StatusCode != http.StatusOK {
			t.Errorf("unexpected record %+v", c)
		}
	}
}

func TestJournalReaderOpensWithoutCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	cfg := config.Default()
	cfg.Binance.BaseURL = srv.URL
	cfg.Journal.SQLite.Enabled = true
	cfg.Journal.SQLite.Path = filepath.Join(t.TempDir(), "calls.db")

	sc, err := New(context.Background(), cfg, testCredentials(t))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, err := sc.Market().Ping(context.Background()); err != nil {
		t.Fatalf("Ping failed: %v", err)
	}
	sc.Close()

	rc, err := NewJournalReader(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewJournalReader failed: %v", err)
	}
	defer rc.Close()

	reader, err := rc.CallReader()
	if err != nil {
		t.Fatalf("CallReader failed: %v", err)
	}
	calls, err := reader.ListCalls(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListCalls failed: %v", err)
	}
	if len(calls) != 1 || calls[0].Path != "/api/v3/ping" {
		t.Errorf("unexpected calls %+v", calls)
	}
}

func TestJournalReaderWithoutQueryableJournal(t *testing.T) {
	cfg := config.Default()
	cfg.Journal.Redis.Enabled = true
	cfg.Journal.Redis.Addr = "127.0.0.1:1"

	rc, err := NewJournalReader(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewJournalReader failed: %v", err)
	}
	defer rc.Close()

	if _, err := rc.CallReader(); !errors.Is(err, ErrNoCallReader) {
		t.Errorf("expected ErrNoCallReader, got %v", err)
	}
}

func TestServiceContextWithoutJournal(t *testing.T) {
	sc, err := New(context.Background(), config.Default(), testCredentials(t))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer sc.Close()

	if sc.Client().BaseURL() != "https://api.binance.com" {
		t.Errorf("unexpected base url %q", sc.Client().BaseURL())
	}
	if _, err := sc.CallReader(); !errors.Is(err, ErrNoCallReader) {
		t.Errorf("expected ErrNoCallReader, got %v", err)
	}
}

func TestServiceContextMissingCredentials(t *testing.T) {
	_, err := New(context.Background(), config.Default(), nil)
	if !errors.Is(err, binance.ErrMissingCredential) {
		t.Fatalf("expected missing credential error, got %v", err)
	}
}

func TestServiceContextStorageFailure(t *testing.T) {
	cfg := config.Default()
	cfg.Journal.Redis.Enabled = true
	cfg.Journal.Redis.Addr = "127.0.0.1:1"

	_, err := New(context.Background(), cfg, testCredentials(t))
	if !errors.Is(err, ErrStorageInitFailed) {
		t.Fatalf("expected storage init error, got %v", err)
	}
}
