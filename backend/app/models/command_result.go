package models

import "time"

// CommandResult is an agent's report of one command execution. Stored
// verbatim; nothing correlates it back to the drained queue entry.
type CommandResult struct {
	ID        uint   `gorm:"primaryKey"`
	AgentID   string `gorm:"size:191;index"`
	CommandID string `gorm:"size:191"`
	Success   bool
	Output    string `gorm:"type:text"`
	CreatedAt time.Time
}
