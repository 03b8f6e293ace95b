package repo

import (
	"encoding/json"

	"sysai-relay/backend/app/dto"
	"sysai-relay/backend/app/models"

	"gorm.io/gorm"
)

// CommandQueueRepository is the durable per-agent FIFO queue. Enqueue appends;
// Drain returns and deletes everything currently queued for one agent in a
// single transaction, so a racing enqueue lands either in this drain or the
// next, never nowhere.
type CommandQueueRepository struct{ db *gorm.DB }

func NewCommandQueueRepository(db *gorm.DB) *CommandQueueRepository {
	return &CommandQueueRepository{db: db}
}

func (r *CommandQueueRepository) Enqueue(agentID string, cmd dto.Command) error {
	return r.db.Create(&models.QueuedCommand{
		AgentID:   agentID,
		CommandID: cmd.ID,
		Type:      cmd.Type,
		Payload:   string(cmd.Payload),
		Command:   cmd.Command,
	}).Error
}

func (r *CommandQueueRepository) Drain(agentID string) ([]dto.Command, error) {
	var out []dto.Command
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var rows []models.QueuedCommand
		if err := tx.Where("agent_id = ?", agentID).Order("id ASC").Find(&rows).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		ids := make([]uint, 0, len(rows))
		for _, row := range rows {
			ids = append(ids, row.ID)
			out = append(out, dto.Command{
				ID:      row.CommandID,
				Type:    row.Type,
				Payload: json.RawMessage(row.Payload),
				Command: row.Command,
			})
		}
		return tx.Where("id IN ?", ids).Delete(&models.QueuedCommand{}).Error
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
