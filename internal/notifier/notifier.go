package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/zenith/internal/constants"
	"github.com/julianstephens/zenith/internal/models"
)

var (
	userConfigDirFunc = os.UserConfigDir
	findProcessFunc   = ps.FindProcess
)

// Notifier delivers notifications to the desktop tray app over its local
// webhook.
type Notifier struct {
	client *http.Client
}

type WebhookPayload struct {
	Title      string `json:"title"`
	Text       string `json:"text"`
	Kind       string `json:"kind"`
	DurationMs uint32 `json:"duration_ms"`
}

// trayEndpoint is what the tray app advertises in its lockfile
type trayEndpoint struct {
	port   int
	secret string
}

func New() *Notifier {
	return &Notifier{client: &http.Client{Timeout: 5 * time.Second}}
}

// Send shows n as a desktop notification
func (n *Notifier) Send(ctx context.Context, notif models.Notification) error {
	trayAppConfigPath, err := GetTrayAppConfigDir()
	if err != nil {
		return err
	}

	endpoint, err := findAndValidateTrayProcess(filepath.Join(trayAppConfigPath, constants.NotifierLockfileName))
	if err != nil {
		return err
	}

	payload := WebhookPayload{
		Title:      notif.Title,
		Text:       notif.Message,
		Kind:       string(notif.Kind),
		DurationMs: constants.NotificationDurationMs,
	}
	return n.post(ctx, endpoint, payload)
}

// GetTrayAppConfigDir returns the configuration directory used by the tray application.
func GetTrayAppConfigDir() (string, error) {
	configDir, err := userConfigDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}

	trayConfigDir := filepath.Join(configDir, constants.TrayAppIdentifier)

	// settings.json may point the lockfile somewhere else
	data, err := os.ReadFile(filepath.Join(trayConfigDir, "settings.json"))
	if err != nil {
		return trayConfigDir, nil
	}
	var store struct {
		Settings struct {
			LockfileDir *string `json:"lockfile_dir"`
		} `json:"settings"`
	}
	if err := json.Unmarshal(data, &store); err == nil && store.Settings.LockfileDir != nil && *store.Settings.LockfileDir != "" {
		return *store.Settings.LockfileDir, nil
	}
	return trayConfigDir, nil
}

// parseLockfile reads "port|pid|secret"
func parseLockfile(content string) (trayEndpoint, int, error) {
	parts := strings.Split(strings.TrimSpace(content), "|")
	if len(parts) != 3 {
		return trayEndpoint{}, 0, errors.New("lockfile is malformed")
	}

	if strings.TrimSpace(parts[0]) == "" {
		return trayEndpoint{}, 0, errors.New("port in lockfile is empty")
	}
	port, err := strconv.Atoi(parts[0])
	if err != nil {
		return trayEndpoint{}, 0, errors.New("invalid port number in lockfile")
	}
	if port < 1 || port > 65535 {
		return trayEndpoint{}, 0, fmt.Errorf("port number %d is outside valid range (1-65535)", port)
	}

	pid, err := strconv.Atoi(parts[1])
	if err != nil {
		return trayEndpoint{}, 0, errors.New("invalid process ID in lockfile")
	}

	secret := strings.TrimSpace(parts[2])
	if secret == "" {
		return trayEndpoint{}, 0, errors.New("secret in lockfile is empty")
	}
	return trayEndpoint{port: port, secret: secret}, pid, nil
}

func findAndValidateTrayProcess(lockfilePath string) (trayEndpoint, error) {
	content, err := os.ReadFile(lockfilePath)
	if err != nil {
		return trayEndpoint{}, fmt.Errorf("%s is not running", constants.TrayExecutablePrefix)
	}

	endpoint, pid, err := parseLockfile(string(content))
	if err != nil {
		return trayEndpoint{}, err
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return trayEndpoint{}, fmt.Errorf("%s process not running", constants.TrayExecutablePrefix)
	}
	if !strings.HasPrefix(process.Executable(), constants.TrayExecutablePrefix) {
		return trayEndpoint{}, fmt.Errorf("process with PID %d is not %s (is %s)", pid, constants.TrayExecutablePrefix, process.Executable())
	}

	return endpoint, nil
}

func (n *Notifier) post(ctx context.Context, endpoint trayEndpoint, payload WebhookPayload) error {
	url := fmt.Sprintf("http://127.0.0.1:%d", endpoint.port)

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Zenith-Secret", endpoint.secret)

	res, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
	return fmt.Errorf("notification failed with status %d: %s", res.StatusCode, string(body))
}
