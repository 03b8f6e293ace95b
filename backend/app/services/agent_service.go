package services

import (
	"encoding/json"
	"time"

	"sysai-relay/backend/app/dto"
	"sysai-relay/backend/app/models"
)

// AgentRegistry is the storage capability the agent service needs. Backed by
// gorm in production, by an in-memory fake in tests.
type AgentRegistry interface {
	Upsert(a *models.Agent) error
	FindByAgentID(agentID string) (*models.Agent, error)
	ListAll() ([]models.Agent, error)
	PurgeSilentBefore(cutoff time.Time) (int64, error)
}

type AgentService struct {
	agents AgentRegistry
	window func() time.Duration
	now    func() time.Time
}

func NewAgentService(agents AgentRegistry, window func() time.Duration) *AgentService {
	return &AgentService{agents: agents, window: window, now: time.Now}
}

// Update overwrites the registry record for the pushing agent and stamps
// last_seen. Repeated identical pushes are harmless.
func (s *AgentService) Update(req dto.AgentUpdateRequest) error {
	metrics, _ := json.Marshal(req.Metrics)
	info, _ := json.Marshal(req.DeviceInfo)
	return s.agents.Upsert(&models.Agent{
		AgentID:    req.AgentID,
		Hostname:   req.Hostname,
		Username:   req.Username,
		OS:         req.OS,
		IPAddress:  req.IPAddress,
		Metrics:    string(metrics),
		DeviceInfo: string(info),
		LastSeen:   s.now(),
	})
}

// online: a silence of exactly the presence window already counts as offline.
func (s *AgentService) online(lastSeen time.Time) bool {
	return s.now().Sub(lastSeen) < s.window()
}

func (s *AgentService) List() ([]dto.AgentSummary, error) {
	agents, err := s.agents.ListAll()
	if err != nil {
		return nil, err
	}
	out := make([]dto.AgentSummary, 0, len(agents))
	for _, a := range agents {
		out = append(out, dto.AgentSummary{
			AgentID:   a.AgentID,
			Hostname:  a.Hostname,
			Username:  a.Username,
			IPAddress: a.IPAddress,
			OS:        a.OS,
			Online:    s.online(a.LastSeen),
		})
	}
	return out, nil
}

func (s *AgentService) Info(agentID string) (*dto.AgentInfoResponse, error) {
	a, err := s.agents.FindByAgentID(agentID)
	if err != nil {
		return nil, err
	}
	resp := &dto.AgentInfoResponse{
		AgentID:   a.AgentID,
		Hostname:  a.Hostname,
		Username:  a.Username,
		OS:        a.OS,
		IPAddress: a.IPAddress,
		LastSeen:  a.LastSeen.Unix(),
		Online:    s.online(a.LastSeen),
	}
	_ = json.Unmarshal([]byte(a.Metrics), &resp.Metrics)
	_ = json.Unmarshal([]byte(a.DeviceInfo), &resp.DeviceInfo)
	return resp, nil
}

// PurgeSilent evicts agents that have been silent longer than olderThan.
func (s *AgentService) PurgeSilent(olderThan time.Duration) (int64, error) {
	return s.agents.PurgeSilentBefore(s.now().Add(-olderThan))
}
