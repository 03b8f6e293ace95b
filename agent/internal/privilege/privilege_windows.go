//go:build windows

package privilege

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"golang.org/x/sys/windows"
)

// IsElevated checks the process token for admin elevation.
func IsElevated() bool {
	return windows.GetCurrentProcessToken().IsElevated()
}

// AttemptElevate relaunches the current executable with admin rights via
// PowerShell. Returns (relaunched, error); when relaunched is true the
// caller should exit.
func AttemptElevate() (bool, error) {
	exe, err := os.Executable()
	if err != nil {
		return false, err
	}
	if strings.HasSuffix(strings.ToLower(exe), "go.exe") {
		return false, errors.New("cannot elevate in go run mode; build the agent first")
	}
	args := strings.Join(os.Args[1:], ",")
	ps := fmt.Sprintf("Start-Process -FilePath '%s' -ArgumentList '%s' -Verb RunAs", exe, args)
	cmd := exec.Command("powershell", "-NoProfile", "-Command", ps)
	if err := cmd.Start(); err != nil {
		return false, err
	}
	return true, nil
}
