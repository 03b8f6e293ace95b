//go:build windows

package command

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

func shellCommand(line string) (string, []string) {
	return "cmd", []string{"/C", line}
}

// restartService stops and restarts a Windows service with sc, then checks
// the query output for RUNNING. Access denied is the dominant failure mode in
// the field, so it is reported distinctly.
func restartService(name string) (string, error) {
	stopOut, stopErr := runCombined(serviceTimeout, "sc", "stop", name)
	if permissionDenied(stopOut, stopErr) {
		return "", fmt.Errorf("permission denied restarting service %q (run the agent elevated)", name)
	}
	time.Sleep(2 * time.Second)

	startOut, startErr := runCombined(serviceTimeout, "sc", "start", name)
	if permissionDenied(startOut, startErr) {
		return "", fmt.Errorf("permission denied restarting service %q (run the agent elevated)", name)
	}

	queryOut, _ := runCombined(serviceTimeout, "sc", "query", name)
	out := fmt.Sprintf("stop: %s\nstart: %s\nquery: %s", strings.TrimSpace(stopOut), strings.TrimSpace(startOut), strings.TrimSpace(queryOut))
	if !strings.Contains(queryOut, "RUNNING") {
		if startErr != nil {
			return out, fmt.Errorf("service %q not running after restart: %v", name, startErr)
		}
		return out, fmt.Errorf("service %q not running after restart", name)
	}
	return out, nil
}

// launchQuickAssist walks the known launch strategies in order and succeeds
// on the first one that starts.
func launchQuickAssist() (string, error) {
	const appID = `MicrosoftCorporationII.QuickAssist_8wekyb3d8bbwe!App`

	if err := exec.Command("explorer.exe", `shell:AppsFolder\`+appID).Start(); err == nil {
		return "Launched Quick Assist (Store App via AppID)", nil
	}
	if err := exec.Command("explorer.exe", "ms-quickassist:").Start(); err == nil {
		return "Launched Quick Assist via URI", nil
	}
	sys32 := `C:\Windows\System32\quickassist.exe`
	if _, statErr := os.Stat(sys32); statErr == nil {
		if err := exec.Command(sys32).Start(); err == nil {
			return "Launched Quick Assist (System32)", nil
		}
	}
	matches, _ := filepath.Glob(`C:\Program Files\WindowsApps\MicrosoftCorporationII.QuickAssist_*`)
	for _, dir := range matches {
		exe := filepath.Join(dir, "QuickAssist.exe")
		if _, statErr := os.Stat(exe); statErr != nil {
			continue
		}
		if err := exec.Command("explorer.exe", exe).Start(); err == nil {
			return "Launched Quick Assist (Store EXE via explorer)", nil
		}
	}
	return "", fmt.Errorf("failed to launch Quick Assist")
}

func triggerPower(restart bool) (string, error) {
	mode, msg := "/s", "Shutdown triggered"
	if restart {
		mode, msg = "/r", "Restart triggered"
	}
	if err := exec.Command("shutdown", mode, "/t", "5").Start(); err != nil {
		return "", err
	}
	return msg, nil
}
