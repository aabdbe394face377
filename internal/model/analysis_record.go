package model

import "time"

// AnalysisRecord is one completed contract analysis. Records are written once
// and never updated or deleted.
type AnalysisRecord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Filename  string    `gorm:"size:256;not null;index" json:"filename"`
	Report    string    `gorm:"type:text;not null" json:"report"`
	CreatedAt time.Time `json:"created_at"`
}
