package controllers

import (
	"encoding/json"
	"net/http"

	"sysai-relay/backend/app/dto"
	"sysai-relay/backend/app/services"

	"github.com/gorilla/mux"
)

type AgentController struct{ Agents *services.AgentService }

func NewAgentController(agents *services.AgentService) *AgentController {
	return &AgentController{Agents: agents}
}

// Update handles POST /api/agent/update: the agent's periodic telemetry push.
func (c *AgentController) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.AgentUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.AgentID == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if err := c.Agents.Update(req); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(dto.StatusResponse{Status: "ok"})
}

// List handles GET /api/agent/list.
func (c *AgentController) List(w http.ResponseWriter, r *http.Request) {
	devices, err := c.Agents.List()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(dto.AgentListResponse{Devices: devices})
}

// Info handles GET /api/agent/info/{agent_id}.
func (c *AgentController) Info(w http.ResponseWriter, r *http.Request) {
	agentID := mux.Vars(r)["agent_id"]
	info, err := c.Agents.Info(agentID)
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(info)
}
