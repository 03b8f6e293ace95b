package controllers

import (
	"encoding/json"
	"net/http"

	"sysai-relay/backend/app/dto"
	"sysai-relay/backend/app/services"

	"github.com/gorilla/mux"
)

type CommandController struct{ Commands *services.CommandService }

func NewCommandController(commands *services.CommandService) *CommandController {
	return &CommandController{Commands: commands}
}

// Send handles POST /api/agent/send/{agent_id}: the operator-facing dispatch
// call. The target agent does not need to have registered yet.
func (c *CommandController) Send(w http.ResponseWriter, r *http.Request) {
	agentID := mux.Vars(r)["agent_id"]
	var cmd dto.Command
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil || cmd.Type == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if err := c.Commands.Enqueue(agentID, cmd); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(dto.EnqueueResponse{Status: "queued", Command: cmd})
}

// Poll handles GET /api/agent/commands/{agent_id}: returns and clears the
// agent's queue. A command handed out here is gone server-side whether or not
// the agent ever finishes it.
func (c *CommandController) Poll(w http.ResponseWriter, r *http.Request) {
	agentID := mux.Vars(r)["agent_id"]
	cmds, err := c.Commands.Drain(agentID)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(dto.CommandsResponse{Commands: cmds})
}

// Response handles POST /api/agent/command_response.
func (c *CommandController) Response(w http.ResponseWriter, r *http.Request) {
	var req dto.CommandResponseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.AgentID == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if err := c.Commands.RecordResult(req); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(dto.StatusResponse{Status: "received"})
}

// Results handles GET /api/agent/results/{agent_id} for the dashboard.
func (c *CommandController) Results(w http.ResponseWriter, r *http.Request) {
	agentID := mux.Vars(r)["agent_id"]
	results, err := c.Commands.Results(agentID, 50)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(dto.ResultsResponse{Results: results})
}
