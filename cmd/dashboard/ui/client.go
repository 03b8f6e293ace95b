package ui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// API is the dashboard's relay client. Login stores the operator JWT used on
// every subsequent call.
type API struct {
	BaseURL string
	Token   string
	http    *http.Client
}

func NewAPI() *API {
	return &API{http: &http.Client{Timeout: 10 * time.Second}}
}

type AgentRow struct {
	AgentID   string `json:"agent_id"`
	Hostname  string `json:"hostname"`
	Username  string `json:"username"`
	IPAddress string `json:"ip_address"`
	OS        string `json:"os"`
	Online    bool   `json:"online"`
}

type AgentInfo struct {
	AgentID   string `json:"agent_id"`
	Hostname  string `json:"hostname"`
	Username  string `json:"username"`
	OS        string `json:"os"`
	IPAddress string `json:"ip_address"`
	Metrics   struct {
		CPUUsage  float64 `json:"cpu_usage"`
		RAMUsage  float64 `json:"ram_usage"`
		DiskUsage float64 `json:"disk_usage"`
	} `json:"metrics"`
	DeviceInfo map[string]string `json:"device_info"`
	LastSeen   int64             `json:"last_seen"`
	Online     bool              `json:"online"`
}

type ResultRow struct {
	CommandID string `json:"command_id"`
	Success   bool   `json:"success"`
	Output    string `json:"output"`
	CreatedAt int64  `json:"created_at"`
}

type CommandPayload struct {
	ID      string          `json:"id"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
	Command string          `json:"command,omitempty"`
}

func (a *API) do(method, path string, body any, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, a.BaseURL+path, rd)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if a.Token != "" {
		req.Header.Set("Authorization", "Bearer "+a.Token)
	}
	resp, err := a.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(b))
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func (a *API) Login(baseURL, username, password string) error {
	a.BaseURL = baseURL
	a.Token = ""
	var resp struct {
		Token string `json:"token"`
	}
	err := a.do(http.MethodPost, "/api/login", map[string]string{
		"username": username,
		"password": password,
	}, &resp)
	if err != nil {
		return err
	}
	a.Token = resp.Token
	return nil
}

func (a *API) ListAgents() ([]AgentRow, error) {
	var resp struct {
		Devices []AgentRow `json:"devices"`
	}
	if err := a.do(http.MethodGet, "/api/agent/list", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Devices, nil
}

func (a *API) Info(agentID string) (*AgentInfo, error) {
	var info AgentInfo
	if err := a.do(http.MethodGet, "/api/agent/info/"+agentID, nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (a *API) Results(agentID string) ([]ResultRow, error) {
	var resp struct {
		Results []ResultRow `json:"results"`
	}
	if err := a.do(http.MethodGet, "/api/agent/results/"+agentID, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

func (a *API) SendCommand(agentID string, cmd CommandPayload) error {
	return a.do(http.MethodPost, "/api/agent/send/"+agentID, cmd, nil)
}
