//go:build !windows

package privilege

import (
	"errors"
	"os"
)

func IsElevated() bool { return os.Geteuid() == 0 }

func AttemptElevate() (bool, error) {
	return false, errors.New("elevation is not supported on this platform; run with sudo")
}
