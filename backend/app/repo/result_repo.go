package repo

import (
	"sysai-relay/backend/app/models"

	"gorm.io/gorm"
)

type ResultRepository struct{ db *gorm.DB }

func NewResultRepository(db *gorm.DB) *ResultRepository { return &ResultRepository{db: db} }

func (r *ResultRepository) Create(res *models.CommandResult) error {
	return r.db.Create(res).Error
}

// ListByAgent returns the most recent results first.
func (r *ResultRepository) ListByAgent(agentID string, limit int) ([]models.CommandResult, error) {
	q := r.db.Where("agent_id = ?", agentID).Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var out []models.CommandResult
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
