package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"sysai-relay/agent/internal/command"
	"sysai-relay/agent/internal/telemetry"
)

// Client talks to the relay HTTP API. Every call carries the shared agent
// bearer token; callers treat failures as transient and move on.
type Client struct {
	relayURL string
	token    string
	agentID  string
	http     *http.Client
}

func New(relayURL, token, agentID string) *Client {
	return &Client{
		relayURL: relayURL,
		token:    token,
		agentID:  agentID,
		http:     &http.Client{Timeout: 15 * time.Second},
	}
}

type metricsPayload struct {
	CPUUsage  float64 `json:"cpu_usage"`
	RAMUsage  float64 `json:"ram_usage"`
	DiskUsage float64 `json:"disk_usage"`
}

type updatePayload struct {
	AgentID    string            `json:"agent_id"`
	Hostname   string            `json:"hostname"`
	Username   string            `json:"username"`
	OS         string            `json:"os"`
	IPAddress  string            `json:"ip_address"`
	Metrics    metricsPayload    `json:"metrics"`
	DeviceInfo map[string]string `json:"device_info"`
}

type commandsResponse struct {
	Commands []command.Envelope `json:"commands"`
}

func (c *Client) do(method, path string, body any, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal: %w", err)
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, c.relayURL+path, rd)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, string(b))
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// Update pushes one telemetry snapshot.
func (c *Client) Update(s telemetry.Snapshot) error {
	return c.do(http.MethodPost, "/api/agent/update", updatePayload{
		AgentID:   c.agentID,
		Hostname:  s.Hostname,
		Username:  s.Username,
		OS:        s.OS,
		IPAddress: s.IPAddress,
		Metrics: metricsPayload{
			CPUUsage:  s.Metrics.CPUUsage,
			RAMUsage:  s.Metrics.RAMUsage,
			DiskUsage: s.Metrics.DiskUsage,
		},
		DeviceInfo: s.DeviceInfo,
	}, nil)
}

// PollCommands drains this agent's queue on the relay. The relay forgets the
// returned commands immediately, so the caller must execute everything it
// gets back.
func (c *Client) PollCommands() ([]command.Envelope, error) {
	var resp commandsResponse
	if err := c.do(http.MethodGet, "/api/agent/commands/"+c.agentID, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Commands, nil
}

// PostResult reports one command outcome, best effort.
func (c *Client) PostResult(res command.Result) error {
	return c.do(http.MethodPost, "/api/agent/command_response", map[string]any{
		"agent_id":   res.AgentID,
		"command_id": res.CommandID,
		"output":     res.Output,
		"success":    res.Success,
	}, nil)
}
