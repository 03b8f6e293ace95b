package command

import (
	"encoding/json"
	"time"
)

// Envelope is one command as delivered by the relay. The generic "cmd" form
// carries its shell line at the top level instead of in the payload.
type Envelope struct {
	ID      string          `json:"id"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
	Command string          `json:"command,omitempty"`
}

// Result is the structured outcome reported back to the relay. Every
// execution path produces one; nothing is silently dropped.
type Result struct {
	AgentID   string    `json:"agent_id"`
	CommandID string    `json:"command_id"`
	Success   bool      `json:"success"`
	Output    string    `json:"output"`
	Timestamp time.Time `json:"timestamp"`
}

// Handler executes one command type. DecodeArg lets each type define its own
// argument struct; Run performs a single synchronous attempt.
type Handler interface {
	DecodeArg(env Envelope) (any, error)
	Run(arg any) (output string, err error)
}

var registry = map[string]Handler{}

func Register(name string, h Handler) { registry[name] = h }

func Get(name string) (Handler, bool) { h, ok := registry[name]; return h, ok }
