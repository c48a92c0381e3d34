package models

import (
	"time"
)

// ChangeLog is filled by database triggers on the business tables and
// drained by the change monitor, which broadcasts over the websocket hub.
type ChangeLog struct {
	ID         uint      `gorm:"primaryKey"`
	TableName  string    `gorm:"type:varchar(50);not null;index:idx_table_action"`
	RecordID   int64     `gorm:"not null"`
	ActionType string    `gorm:"type:varchar(10);not null;index:idx_table_action"` // INSERT, UPDATE, DELETE
	ChangedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	Processed  bool      `gorm:"default:false;index:idx_processed"`
}
