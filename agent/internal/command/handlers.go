package command

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

const (
	shellTimeout   = 60 * time.Second
	serviceTimeout = 30 * time.Second
)

func init() {
	Register("restart_service", restartServiceHandler{})
	Register("run_shell", runShellHandler{})
	Register("cmd", cmdHandler{})
	Register("open_quick_assist", quickAssistHandler{})
	Register("quick_assist", quickAssistHandler{})
	Register("shutdown", powerHandler{restart: false})
	Register("restart", powerHandler{restart: true})
}

// runCombined executes argv with a hard timeout and returns combined
// stdout+stderr. A process ignoring the timeout signal is a known limit.
func runCombined(timeout time.Duration, name string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if ctx.Err() == context.DeadlineExceeded {
		return string(out), fmt.Errorf("timed out after %v", timeout)
	}
	return string(out), err
}

func permissionDenied(out string, err error) bool {
	s := strings.ToLower(out)
	if err != nil {
		s += " " + strings.ToLower(err.Error())
	}
	return strings.Contains(s, "access is denied") ||
		strings.Contains(s, "permission denied") ||
		strings.Contains(s, "operation not permitted")
}

// --- restart_service ---

type restartServiceArg struct {
	Service string `json:"service"`
}

type restartServiceHandler struct{}

func (restartServiceHandler) DecodeArg(env Envelope) (any, error) {
	var a restartServiceArg
	if len(env.Payload) > 0 {
		if err := json.Unmarshal(env.Payload, &a); err != nil {
			return nil, err
		}
	}
	if a.Service == "" {
		return nil, fmt.Errorf("missing service name")
	}
	return a, nil
}

func (restartServiceHandler) Run(arg any) (string, error) {
	a := arg.(restartServiceArg)
	return restartService(a.Service)
}

// --- run_shell / cmd ---

type shellArg struct {
	Cmd string `json:"cmd"`
}

type runShellHandler struct{}

func (runShellHandler) DecodeArg(env Envelope) (any, error) {
	var a shellArg
	if len(env.Payload) > 0 {
		if err := json.Unmarshal(env.Payload, &a); err != nil {
			return nil, err
		}
	}
	if a.Cmd == "" {
		return nil, fmt.Errorf("missing cmd")
	}
	return a, nil
}

func (runShellHandler) Run(arg any) (string, error) {
	return runShell(arg.(shellArg).Cmd)
}

// cmdHandler is the legacy generic form carrying its line at the top level.
type cmdHandler struct{}

func (cmdHandler) DecodeArg(env Envelope) (any, error) {
	line := env.Command
	if line == "" && len(env.Payload) > 0 {
		var a struct {
			Command string `json:"command"`
		}
		if err := json.Unmarshal(env.Payload, &a); err != nil {
			return nil, err
		}
		line = a.Command
	}
	if line == "" {
		return nil, fmt.Errorf("missing command")
	}
	return shellArg{Cmd: line}, nil
}

func (cmdHandler) Run(arg any) (string, error) {
	return runShell(arg.(shellArg).Cmd)
}

func runShell(line string) (string, error) {
	name, args := shellCommand(line)
	return runCombined(shellTimeout, name, args...)
}

// --- quick assist ---

type quickAssistHandler struct{}

func (quickAssistHandler) DecodeArg(env Envelope) (any, error) { return nil, nil }

func (quickAssistHandler) Run(any) (string, error) { return launchQuickAssist() }

// --- shutdown / restart ---

type powerHandler struct{ restart bool }

func (powerHandler) DecodeArg(env Envelope) (any, error) { return nil, nil }

func (h powerHandler) Run(any) (string, error) {
	// fire and forget: the OS action outlives this process, so the result
	// reports "triggered", not completion
	return triggerPower(h.restart)
}
