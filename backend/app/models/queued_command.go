package models

import "time"

// QueuedCommand is one entry in an agent's FIFO command queue. Rows are
// deleted when the owning agent drains its queue (drain-on-read, no ack).
type QueuedCommand struct {
	ID        uint   `gorm:"primaryKey"`
	AgentID   string `gorm:"size:191;index"`
	CommandID string `gorm:"size:191"`
	Type      string `gorm:"size:64"`
	Payload   string `gorm:"type:text"` // JSON argument, command-type specific
	Command   string `gorm:"type:text"` // legacy flat shell line for type "cmd"
	CreatedAt time.Time
}
