package dto

// Metrics are numeric usage percentages for the primary resources.
type Metrics struct {
	CPUUsage  float64 `json:"cpu_usage"`
	RAMUsage  float64 `json:"ram_usage"`
	DiskUsage float64 `json:"disk_usage"`
}

type AgentUpdateRequest struct {
	AgentID    string            `json:"agent_id"`
	Hostname   string            `json:"hostname"`
	Username   string            `json:"username"`
	OS         string            `json:"os"`
	IPAddress  string            `json:"ip_address"`
	Metrics    Metrics           `json:"metrics"`
	DeviceInfo map[string]string `json:"device_info"`
}

// AgentSummary is one row of the device list; online is derived from
// last_seen at read time.
type AgentSummary struct {
	AgentID   string `json:"agent_id"`
	Hostname  string `json:"hostname"`
	Username  string `json:"username"`
	IPAddress string `json:"ip_address"`
	OS        string `json:"os"`
	Online    bool   `json:"online"`
}

type AgentListResponse struct {
	Devices []AgentSummary `json:"devices"`
}

type AgentInfoResponse struct {
	AgentID    string            `json:"agent_id"`
	Hostname   string            `json:"hostname"`
	Username   string            `json:"username"`
	OS         string            `json:"os"`
	IPAddress  string            `json:"ip_address"`
	Metrics    Metrics           `json:"metrics"`
	DeviceInfo map[string]string `json:"device_info"`
	LastSeen   int64             `json:"last_seen"`
	Online     bool              `json:"online"`
}
