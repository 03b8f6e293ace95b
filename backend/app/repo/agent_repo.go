package repo

import (
	"time"

	"sysai-relay/backend/app/models"

	"gorm.io/gorm"
)

type AgentRepository struct{ db *gorm.DB }

func NewAgentRepository(db *gorm.DB) *AgentRepository { return &AgentRepository{db: db} }

func (r *AgentRepository) FindByAgentID(agentID string) (*models.Agent, error) {
	var a models.Agent
	if err := r.db.Where("agent_id = ?", agentID).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// Upsert overwrites the mutable fields of the record, creating it on first
// sight of the agent id. Last writer wins.
func (r *AgentRepository) Upsert(a *models.Agent) error {
	var existing models.Agent
	if err := r.db.Where("agent_id = ?", a.AgentID).First(&existing).Error; err == nil {
		a.ID = existing.ID
		a.CreatedAt = existing.CreatedAt
		return r.db.Save(a).Error
	}
	return r.db.Create(a).Error
}

func (r *AgentRepository) ListAll() ([]models.Agent, error) {
	var agents []models.Agent
	if err := r.db.Order("agent_id ASC").Find(&agents).Error; err != nil {
		return nil, err
	}
	return agents, nil
}

// PurgeSilentBefore removes records whose last telemetry push predates the
// cutoff. Only called when registry eviction is enabled.
func (r *AgentRepository) PurgeSilentBefore(cutoff time.Time) (int64, error) {
	res := r.db.Where("last_seen < ?", cutoff).Delete(&models.Agent{})
	return res.RowsAffected, res.Error
}
