package dto

import "encoding/json"

// Command is the wire form of one queued command. The id is supplied by the
// dispatcher and is not deduplicated by the relay.
type Command struct {
	ID      string          `json:"id"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
	// Command carries the argument of the legacy flat "cmd" form, which
	// predates the payload envelope. Relayed verbatim.
	Command string `json:"command,omitempty"`
}

type EnqueueResponse struct {
	Status  string  `json:"status"`
	Command Command `json:"command"`
}

type CommandsResponse struct {
	Commands []Command `json:"commands"`
}

type CommandResponseRequest struct {
	AgentID   string `json:"agent_id"`
	CommandID string `json:"command_id"`
	Output    string `json:"output"`
	Success   bool   `json:"success"`
}

type CommandResultEntry struct {
	CommandID string `json:"command_id"`
	Success   bool   `json:"success"`
	Output    string `json:"output"`
	CreatedAt int64  `json:"created_at"`
}

type ResultsResponse struct {
	Results []CommandResultEntry `json:"results"`
}

type StatusResponse struct {
	Status string `json:"status"`
}
