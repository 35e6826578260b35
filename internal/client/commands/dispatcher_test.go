package commands

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"magazyn/internal/config"
	"magazyn/internal/model"
)

// fakeCmd pozwala sterować błędem zwracanym z Run.
type fakeCmd struct {
	name, usage, desc string
	run               func(ctx context.Context, cfg *config.Config, args []string) error
}

func (f fakeCmd) Name() string        { return f.name }
func (f fakeCmd) Description() string { return f.desc }
func (f fakeCmd) Usage() string       { return f.usage }
func (f fakeCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	return f.run(ctx, cfg, args)
}

// przechwycenie wyjścia na czas testu
func withOutputCapture(t *testing.T, fn func()) string {
	t.Helper()
	old := Out
	var buf bytes.Buffer
	Out = &buf
	defer func() { Out = old }()
	fn()
	return buf.String()
}

func TestDispatcher_HelpAndUnknown(t *testing.T) {
	out := withOutputCapture(t, func() { _ = Dispatch(context.Background(), &config.Config{}, []string{}) })
	if !strings.Contains(out, "magazyn CLI") {
		t.Fatalf("global help expected, got: %s", out)
	}

	out = withOutputCapture(t, func() { _ = Dispatch(context.Background(), &config.Config{}, []string{"help"}) })
	if !strings.Contains(out, "Usage:") {
		t.Fatalf("usage expected")
	}

	if code := Dispatch(context.Background(), &config.Config{}, []string{"help", "assign"}); code != 0 {
		t.Fatalf("expected 0 for help assign, got %d", code)
	}

	out = withOutputCapture(t, func() { _ = Dispatch(context.Background(), &config.Config{}, []string{"help", "nope"}) })
	if !strings.Contains(out, "Unknown command") {
		t.Fatalf("unknown command message expected")
	}

	if code := Dispatch(context.Background(), &config.Config{}, []string{"no-such"}); code != 2 {
		t.Fatalf("expected 2 for unknown command, got %d", code)
	}
}

func TestDispatcher_RunPaths(t *testing.T) {
	cmdOK := fakeCmd{name: "x", usage: "x", run: func(context.Context, *config.Config, []string) error { return nil }}
	RegisterCmd(cmdOK)
	if code := Dispatch(context.Background(), &config.Config{}, []string{"x"}); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}

	cmdUsage := fakeCmd{name: "u", usage: "u <arg>", run: func(context.Context, *config.Config, []string) error { return ErrUsage }}
	RegisterCmd(cmdUsage)
	out := withOutputCapture(t, func() { _ = Dispatch(context.Background(), &config.Config{}, []string{"u"}) })
	if !strings.Contains(out, "Usage: u <arg>") {
		t.Fatalf("usage text expected")
	}

	cmdErr := fakeCmd{name: "e", usage: "e", run: func(context.Context, *config.Config, []string) error { return fmt.Errorf("boom") }}
	RegisterCmd(cmdErr)
	out = withOutputCapture(t, func() { _ = Dispatch(context.Background(), &config.Config{}, []string{"e"}) })
	if !strings.Contains(out, "e error: boom") {
		t.Fatalf("error line expected, got: %s", out)
	}
}

func TestAvailableAndNextCLN_AgainstServer(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/equipment" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":1,"name":"Dell","type":"Komputer","serialNumber":"SN-1","clnNumber":"CLN000004"},
			{"id":2,"name":"HP","type":"Komputer","serialNumber":"SN-2","assignedTo":7}
		]`))
	}))
	defer ts.Close()
	cfg := &config.Config{ServerURL: ts.URL}

	out := withOutputCapture(t, func() {
		if err := (availableCmd{}).Run(context.Background(), cfg, nil); err != nil {
			t.Fatalf("available failed: %v", err)
		}
	})
	if !strings.Contains(out, "Dell") || strings.Contains(out, "HP") {
		t.Fatalf("only unassigned equipment expected, got: %s", out)
	}
	if !strings.Contains(out, "Dostępne: 1 pozycja") {
		t.Fatalf("polish summary expected, got: %s", out)
	}

	out = withOutputCapture(t, func() {
		if err := (nextCLNCmd{}).Run(context.Background(), cfg, nil); err != nil {
			t.Fatalf("nextcln failed: %v", err)
		}
	})
	if !strings.Contains(out, "CLN000005") {
		t.Fatalf("next CLN expected, got: %s", out)
	}

	if err := (availableCmd{}).Run(context.Background(), cfg, []string{"extra"}); err != ErrUsage {
		t.Fatalf("expected ErrUsage, got %v", err)
	}
}

func TestReadImportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sprzet.csv")
	csvData := strings.Join([]string{
		"name,type,serialNumber,clnNumber,inventoryNumber,roomLocation,damaged",
		"Dell XPS,Komputer,SN-1,CLN000010,INV-1,,true",
		"LG 27,Monitor,SN-2,CLN000011,,p. 102,",
		"Logitech,Myszka,SN-3",
	}, "\n")
	if err := os.WriteFile(path, []byte(csvData), 0o644); err != nil {
		t.Fatal(err)
	}

	items, err := readImportFile(path)
	if err != nil {
		t.Fatalf("readImportFile: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}

	if items[0].CLNNumber != "CLN000010" || !items[0].Damaged {
		t.Fatalf("computer row parsed wrong: %+v", items[0])
	}
	// CLN tylko dla komputerów, lokalizacja tylko dla monitorów i drukarek
	if items[1].CLNNumber != "" || items[1].RoomLocation != "p. 102" {
		t.Fatalf("monitor row parsed wrong: %+v", items[1])
	}
	if items[2].Type != model.TypeMouse || items[2].RoomLocation != "" {
		t.Fatalf("short row parsed wrong: %+v", items[2])
	}

	if _, err := readImportFile(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Fatal("missing file must fail")
	}
}
