//go:build !windows

package command

import (
	"fmt"
	"os/exec"
	"strings"
	"time"
)

func shellCommand(line string) (string, []string) {
	return "sh", []string{"-c", line}
}

func restartService(name string) (string, error) {
	stopOut, stopErr := runCombined(serviceTimeout, "systemctl", "stop", name)
	if permissionDenied(stopOut, stopErr) {
		return "", fmt.Errorf("permission denied restarting service %q (run the agent as root)", name)
	}
	time.Sleep(2 * time.Second)

	startOut, startErr := runCombined(serviceTimeout, "systemctl", "start", name)
	if permissionDenied(startOut, startErr) {
		return "", fmt.Errorf("permission denied restarting service %q (run the agent as root)", name)
	}

	queryOut, _ := runCombined(serviceTimeout, "systemctl", "is-active", name)
	out := fmt.Sprintf("stop: %s\nstart: %s\nstatus: %s", strings.TrimSpace(stopOut), strings.TrimSpace(startOut), strings.TrimSpace(queryOut))
	if !strings.Contains(queryOut, "active") || strings.Contains(queryOut, "inactive") {
		if startErr != nil {
			return out, fmt.Errorf("service %q not running after restart: %v", name, startErr)
		}
		return out, fmt.Errorf("service %q not running after restart", name)
	}
	return out, nil
}

// Quick Assist is a Windows application; on other platforms the command
// round-trips into a failed result.
func launchQuickAssist() (string, error) {
	return "", fmt.Errorf("quick assist is only available on windows")
}

func triggerPower(restart bool) (string, error) {
	arg, msg := "-h", "Shutdown triggered"
	if restart {
		arg, msg = "-r", "Restart triggered"
	}
	if err := exec.Command("shutdown", arg, "+1").Start(); err != nil {
		return "", err
	}
	return msg, nil
}
