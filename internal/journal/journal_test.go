package journal

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/danmuck/eppctl/internal/epp"
	"github.com/danmuck/eppctl/internal/protocol/session"
	"github.com/danmuck/eppctl/internal/testutil/testlog"
)

func openTempStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return store
}

func TestRecordAndList(t *testing.T) {
	testlog.Start(t)
	store := openTempStore(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	if err := store.Record(context.Background(), Entry{
		Registry:   "verisign",
		Verb:       "login",
		ClientTRID: "ABC-1",
		ServerTRID: "SV-1",
		Code:       1000,
		StartedAt:  now,
		Duration:   1500 * time.Microsecond,
	}); err != nil {
		t.Fatalf("record login: %v", err)
	}
	if err := store.Record(context.Background(), Entry{
		Registry:   "verisign",
		Verb:       "check",
		Extension:  "namestoreExt",
		ClientTRID: "ABC-2",
		ServerTRID: "SV-2",
		Code:       2303,
		Message:    "Object does not exist",
		StartedAt:  now.Add(time.Second),
	}); err != nil {
		t.Fatalf("record check: %v", err)
	}

	entries, err := store.List(context.Background(), 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries len = %d, want 2", len(entries))
	}
	if entries[0].Verb != "check" || entries[0].Extension != "namestoreExt" || entries[0].Code != 2303 {
		t.Fatalf("unexpected newest entry %+v", entries[0])
	}
	if entries[1].Duration != 1500*time.Microsecond || !entries[1].StartedAt.Equal(now) {
		t.Fatalf("unexpected oldest entry %+v", entries[1])
	}
}

func TestRecordValidation(t *testing.T) {
	testlog.Start(t)
	store := openTempStore(t)
	if err := store.Record(context.Background(), Entry{Verb: "check"}); err == nil {
		t.Fatal("expected validation error for missing registry")
	}
	if _, err := store.List(context.Background(), 0); err == nil {
		t.Fatal("expected validation error for zero limit")
	}
	if _, err := Open("  "); err == nil {
		t.Fatal("expected error for blank path")
	}
}

func TestObserverRecordsSessionTransactions(t *testing.T) {
	testlog.Start(t)
	store := openTempStore(t)
	observe := store.Observer("bench")

	observe(session.Record{
		Verb:       "info",
		ClientTRID: "ABC-9",
		ServerTRID: "SV-9",
		Code:       epp.CodeObjectDoesNotExist,
		Message:    "Object does not exist",
		StartedAt:  time.Now(),
		Duration:   time.Millisecond,
		Err:        &epp.RegistryError{Code: epp.CodeObjectDoesNotExist, Message: "Object does not exist"},
	})
	observe(session.Record{
		Verb:       "check",
		ClientTRID: "ABC-10",
		StartedAt:  time.Now().Add(time.Second),
		Err:        errors.New("epp: transport failure"),
	})

	entries, err := store.List(context.Background(), 5)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries len = %d, want 2", len(entries))
	}
	if entries[1].Registry != "bench" || entries[1].Code != int(epp.CodeObjectDoesNotExist) || entries[1].Error == "" {
		t.Fatalf("unexpected info entry %+v", entries[1])
	}
	if entries[0].ServerTRID != "" || entries[0].Error != "epp: transport failure" {
		t.Fatalf("unexpected check entry %+v", entries[0])
	}
}
