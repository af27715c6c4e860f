package main

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/net/nettest"

	"github.com/danmuck/eppctl/internal/epp"
	"github.com/danmuck/eppctl/internal/epp/domain"
	"github.com/danmuck/eppctl/internal/protocol/frame"
	"github.com/danmuck/eppctl/internal/testutil/testlog"
)

// probe extracts the verb and clTRID from any command document.
type probe struct {
	Hello   *struct{} `xml:"hello"`
	Command *struct {
		Children []struct {
			XMLName xml.Name
		} `xml:",any"`
		ClientTRID string `xml:"clTRID"`
	} `xml:"command"`
}

// fakeRegistry answers login, domain check, poll and logout on every
// accepted connection until the listener closes.
func fakeRegistry(t *testing.T) net.Listener {
	t.Helper()
	ln, err := nettest.NewLocalListener("tcp")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { _ = ln.Close() })

	greeting, err := epp.EncodeGreeting(epp.Greeting{
		ServerID:   "Fake EPP Registry",
		ServerDate: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		ServiceMenu: epp.ServiceMenu{
			Versions:   []string{"1.0"},
			Languages:  []string{"en"},
			ObjectURIs: epp.DefaultObjectURIs,
		},
	})
	if err != nil {
		t.Fatalf("encode greeting: %v", err)
	}

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go serveConn(conn, greeting)
		}
	}()
	return ln
}

func serveConn(conn net.Conn, greeting string) {
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(10 * time.Second))
	if err := frame.WriteFrame(conn, []byte(greeting)); err != nil {
		return
	}
	for {
		raw, err := frame.ReadFrame(conn, frame.DefaultLimits())
		if err != nil {
			return
		}
		var p probe
		if err := xml.Unmarshal(raw, &p); err != nil {
			return
		}
		if p.Hello != nil {
			if frame.WriteFrame(conn, []byte(greeting)) != nil {
				return
			}
			continue
		}
		if p.Command == nil || len(p.Command.Children) == 0 {
			return
		}
		verb := p.Command.Children[0].XMLName.Local
		reply, err := replyFor(verb, p.Command.ClientTRID)
		if err != nil || frame.WriteFrame(conn, []byte(reply)) != nil {
			return
		}
		if verb == "logout" {
			return
		}
	}
}

func replyFor(verb, clTRID string) (string, error) {
	trID := epp.TransactionID{Client: clTRID, Server: "SV-" + clTRID}
	ok := []epp.Result{{Code: epp.CodeSuccess, Message: "Command completed successfully"}}
	switch verb {
	case "check":
		return epp.EncodeResponse(epp.Response[domain.CheckData, epp.NoExtension]{
			Results: ok,
			Data: &domain.CheckData{Items: []domain.CheckItem{
				{Name: domain.CheckName{Value: "example.com"}, Reason: "In use"},
				{Name: domain.CheckName{Value: "example.net", Available: true}},
			}},
			TransactionID: trID,
		})
	case "poll":
		return epp.EncodeResponse(epp.Response[epp.NoExtension, epp.NoExtension]{
			Results:       []epp.Result{{Code: epp.CodeSuccessNoMessages, Message: "Command completed successfully; no messages"}},
			TransactionID: trID,
		})
	case "logout":
		return epp.EncodeResponse(epp.Response[epp.NoExtension, epp.NoExtension]{
			Results:       []epp.Result{{Code: epp.CodeSuccessEndingSession, Message: "Command completed successfully; ending session"}},
			TransactionID: trID,
		})
	default:
		return epp.EncodeResponse(epp.Response[epp.NoExtension, epp.NoExtension]{Results: ok, TransactionID: trID})
	}
}

func writeConfig(t *testing.T, addr string) string {
	t.Helper()
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		t.Fatalf("split %q: %v", addr, err)
	}
	body := fmt.Sprintf(`
[registry.fake]
host = %q
port = %s
username = "registrar"
password = "secret"
security_mode = "development"

[registry.fake.tls]
enabled = false
`, host, port)
	path := filepath.Join(t.TempDir(), "eppctl.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := newApp(context.Background(), &out).Run(append([]string{name}, args...))
	return out.String(), err
}

func TestCheckCommandJournalsTransactions(t *testing.T) {
	testlog.Start(t)
	ln := fakeRegistry(t)
	cfg := writeConfig(t, ln.Addr().String())
	dir := t.TempDir()
	jpath := filepath.Join(dir, "journal.db")
	metrics := filepath.Join(dir, "eppctl.prom")

	out, err := runApp(t, "--config", cfg, "--journal", jpath, "--metrics-file", metrics, "check", "example.com", "Example.NET.")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !strings.Contains(out, "example.com\tunavailable (In use)") || !strings.Contains(out, "example.net\tavailable") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if _, err := os.Stat(metrics); err != nil {
		t.Fatalf("metrics textfile not written: %v", err)
	}

	out, err = runApp(t, "--config", cfg, "--journal", jpath, "journal")
	if err != nil {
		t.Fatalf("journal: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header and three entries, got:\n%s", out)
	}
	for i, verb := range []string{"logout", "check", "login"} {
		if !strings.Contains(lines[i+1], verb) || !strings.Contains(lines[i+1], "fake") {
			t.Fatalf("line %d: expected %s entry, got %q", i+1, verb, lines[i+1])
		}
	}
}

func TestHelloCommand(t *testing.T) {
	testlog.Start(t)
	ln := fakeRegistry(t)
	cfg := writeConfig(t, ln.Addr().String())

	out, err := runApp(t, "--config", cfg, "hello")
	if err != nil {
		t.Fatalf("hello: %v", err)
	}
	if !strings.Contains(out, "Fake EPP Registry") || !strings.Contains(out, "2026-01-02T03:04:05Z") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestPollEmptyQueue(t *testing.T) {
	testlog.Start(t)
	ln := fakeRegistry(t)
	cfg := writeConfig(t, ln.Addr().String())

	out, err := runApp(t, "--config", cfg, "poll")
	if err != nil {
		t.Fatalf("poll: %v", err)
	}
	if strings.TrimSpace(out) != "no messages" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestArgumentValidation(t *testing.T) {
	testlog.Start(t)
	if _, err := runApp(t, "check"); err == nil {
		t.Fatalf("expected error for check without domains")
	}
	if _, err := runApp(t, "check", "bad domain"); err == nil {
		t.Fatalf("expected error for invalid domain")
	}
	if _, err := runApp(t, "ack"); err == nil {
		t.Fatalf("expected error for ack without id")
	}
	if _, err := runApp(t, "--config", filepath.Join(t.TempDir(), "missing.toml"), "poll"); err == nil {
		t.Fatalf("expected error for missing config")
	}
}
