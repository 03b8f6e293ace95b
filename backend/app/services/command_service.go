package services

import (
	"sysai-relay/backend/app/dto"
	"sysai-relay/backend/app/models"
	"sysai-relay/backend/global"
)

// CommandQueue is the per-agent FIFO. Drain must atomically return and clear
// the queue for one agent without contending with other agents' queues.
type CommandQueue interface {
	Enqueue(agentID string, cmd dto.Command) error
	Drain(agentID string) ([]dto.Command, error)
}

type ResultStore interface {
	Create(r *models.CommandResult) error
	ListByAgent(agentID string, limit int) ([]models.CommandResult, error)
}

type CommandService struct {
	queue   CommandQueue
	results ResultStore
}

func NewCommandService(queue CommandQueue, results ResultStore) *CommandService {
	return &CommandService{queue: queue, results: results}
}

// Enqueue appends for the target agent. Enqueueing for a never-seen agent id
// is allowed, and command ids are not deduplicated: repeated dispatches with
// the same id all get delivered.
func (s *CommandService) Enqueue(agentID string, cmd dto.Command) error {
	return s.queue.Enqueue(agentID, cmd)
}

func (s *CommandService) Drain(agentID string) ([]dto.Command, error) {
	cmds, err := s.queue.Drain(agentID)
	if err != nil {
		return nil, err
	}
	if cmds == nil {
		cmds = []dto.Command{}
	}
	return cmds, nil
}

// RecordResult stores and logs the report. It deliberately has no effect on
// the queue or the agent record; delivery stays unacknowledged.
func (s *CommandService) RecordResult(req dto.CommandResponseRequest) error {
	global.Logger.Info().
		Str("agent_id", req.AgentID).
		Str("command_id", req.CommandID).
		Bool("success", req.Success).
		Msg("command result")
	return s.results.Create(&models.CommandResult{
		AgentID:   req.AgentID,
		CommandID: req.CommandID,
		Success:   req.Success,
		Output:    req.Output,
	})
}

func (s *CommandService) Results(agentID string, limit int) ([]dto.CommandResultEntry, error) {
	rows, err := s.results.ListByAgent(agentID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CommandResultEntry, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.CommandResultEntry{
			CommandID: r.CommandID,
			Success:   r.Success,
			Output:    r.Output,
			CreatedAt: r.CreatedAt.Unix(),
		})
	}
	return out, nil
}
