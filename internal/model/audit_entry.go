package model

import "time"

// AuditEntry records that an analysis completed. Entries arrive through the
// audit queue and are persisted by the audit worker.
type AuditEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Username  string    `gorm:"size:64;not null" json:"username"`
	RecordID  uint      `gorm:"not null" json:"record_id"`
	Filename  string    `gorm:"size:256;not null" json:"filename"`
	Action    string    `gorm:"size:32;not null" json:"action"`
	CreatedAt time.Time `json:"created_at"`
}
