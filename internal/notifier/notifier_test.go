package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	ps "github.com/mitchellh/go-ps"

	"github.com/julianstephens/zenith/internal/constants"
	"github.com/julianstephens/zenith/internal/models"
)

type mockProcess struct {
	pid        int
	executable string
}

func (m *mockProcess) Pid() int           { return m.pid }
func (m *mockProcess) PPid() int          { return 0 }
func (m *mockProcess) Executable() string { return m.executable }

func TestGetTrayAppConfigDir(t *testing.T) {
	tempDir := t.TempDir()

	oldUserConfigDirFunc := userConfigDirFunc
	defer func() { userConfigDirFunc = oldUserConfigDirFunc }()
	userConfigDirFunc = func() (string, error) {
		return tempDir, nil
	}

	expectedDefault := filepath.Join(tempDir, constants.TrayAppIdentifier)
	dir, err := GetTrayAppConfigDir()
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if dir != expectedDefault {
		t.Errorf("expected %s, got %s", expectedDefault, dir)
	}

	if err := os.MkdirAll(expectedDefault, 0755); err != nil {
		t.Fatal(err)
	}
	customDir := "/custom/zenith/dir"
	settingsJSON := fmt.Sprintf(`{"settings": {"lockfile_dir": "%s"}}`, customDir)
	if err := os.WriteFile(filepath.Join(expectedDefault, "settings.json"), []byte(settingsJSON), 0644); err != nil {
		t.Fatal(err)
	}

	dir, err = GetTrayAppConfigDir()
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if dir != customDir {
		t.Errorf("expected %s, got %s", customDir, dir)
	}
}

func TestParseLockfile(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		wantErr    string
		wantPort   int
		wantPID    int
		wantSecret string
	}{
		{name: "old two-part format", content: "8080|12345", wantErr: "malformed"},
		{name: "garbage", content: "invalid", wantErr: "malformed"},
		{name: "empty secret", content: "8080|12345|", wantErr: "secret"},
		{name: "empty port", content: "|12345|s3cret", wantErr: "port"},
		{name: "port out of range", content: "99999|12345|s3cret", wantErr: "range"},
		{name: "bad pid", content: "8080|abc|s3cret", wantErr: "process ID"},
		{name: "valid", content: "8080|12345|s3cret\n", wantPort: 8080, wantPID: 12345, wantSecret: "s3cret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			endpoint, pid, err := parseLockfile(tt.content)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("error = %v, want it to mention %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if endpoint.port != tt.wantPort || pid != tt.wantPID || endpoint.secret != tt.wantSecret {
				t.Errorf("got port=%d pid=%d secret=%q", endpoint.port, pid, endpoint.secret)
			}
		})
	}
}

func TestFindAndValidateTrayProcess(t *testing.T) {
	oldFindProcessFunc := findProcessFunc
	defer func() { findProcessFunc = oldFindProcessFunc }()

	lockfilePath := filepath.Join(t.TempDir(), constants.NotifierLockfileName)

	if _, err := findAndValidateTrayProcess(lockfilePath); err == nil {
		t.Error("expected error for missing lockfile")
	}

	if err := os.WriteFile(lockfilePath, []byte("8080|12345|testsecret123"), 0644); err != nil {
		t.Fatal(err)
	}

	findProcessFunc = func(pid int) (ps.Process, error) { return nil, nil }
	if _, err := findAndValidateTrayProcess(lockfilePath); err == nil {
		t.Error("expected error for missing process")
	}

	findProcessFunc = func(pid int) (ps.Process, error) {
		return &mockProcess{pid: pid, executable: "other-app"}, nil
	}
	if _, err := findAndValidateTrayProcess(lockfilePath); err == nil {
		t.Error("expected error for wrong executable")
	}

	findProcessFunc = func(pid int) (ps.Process, error) {
		return &mockProcess{pid: pid, executable: constants.TrayExecutablePrefix}, nil
	}
	endpoint, err := findAndValidateTrayProcess(lockfilePath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if endpoint.port != 8080 || endpoint.secret != "testsecret123" {
		t.Errorf("unexpected endpoint %+v", endpoint)
	}
}

func TestPost(t *testing.T) {
	var received WebhookPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if r.Header.Get("X-Zenith-Secret") != "test-secret" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Unauthorized"))
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if received.Text == "fail" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	parts := strings.Split(server.URL, ":")
	port, _ := strconv.Atoi(parts[len(parts)-1])
	n := New()
	ctx := context.Background()

	if err := n.post(ctx, trayEndpoint{port: port, secret: "test-secret"}, WebhookPayload{Title: "Reminder: call", Text: "hello", Kind: "reminder"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if received.Title != "Reminder: call" || received.Kind != "reminder" {
		t.Errorf("server received %+v", received)
	}

	err := n.post(ctx, trayEndpoint{port: port, secret: "wrong-secret"}, WebhookPayload{Text: "hello"})
	if err == nil || !strings.Contains(err.Error(), "401") {
		t.Errorf("expected unauthorized error, got %v", err)
	}

	if err := n.post(ctx, trayEndpoint{port: port, secret: "test-secret"}, WebhookPayload{Text: "fail"}); err == nil {
		t.Error("expected error for server failure")
	}
}

func TestSendWithoutTray(t *testing.T) {
	oldUserConfigDirFunc := userConfigDirFunc
	defer func() { userConfigDirFunc = oldUserConfigDirFunc }()
	dir := t.TempDir()
	userConfigDirFunc = func() (string, error) { return dir, nil }

	err := New().Send(context.Background(), models.Notification{Title: "x"})
	if err == nil || !strings.Contains(err.Error(), "not running") {
		t.Errorf("expected not running error, got %v", err)
	}
}
