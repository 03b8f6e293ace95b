package models

import "time"

// Agent is the registry record for one monitored machine, keyed by the
// agent-generated id. Mutable fields are overwritten on every telemetry push.
type Agent struct {
	ID         uint   `gorm:"primaryKey"`
	AgentID    string `gorm:"uniqueIndex;size:191;not null"`
	Hostname   string `gorm:"size:255"`
	Username   string `gorm:"size:255"`
	OS         string `gorm:"size:255"`
	IPAddress  string `gorm:"size:64"`
	Metrics    string `gorm:"type:text"` // JSON {cpu_usage,ram_usage,disk_usage}
	DeviceInfo string `gorm:"type:text"` // JSON free-form key/value
	LastSeen   time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
