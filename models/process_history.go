package models

import (
	"time"
)

// ProcessHistory is append-only: one row per changed field per save of an
// existing process. Rows are never updated or deleted.
type ProcessHistory struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProcessID uint      `gorm:"not null;index" json:"process_id"`
	Field     string    `gorm:"type:varchar(50);not null" json:"field"`
	OldValue  string    `gorm:"type:text;not null" json:"old_value"`
	NewValue  string    `gorm:"type:text;not null" json:"new_value"`
	Actor     string    `gorm:"type:varchar(255)" json:"actor"`
	ChangedAt time.Time `gorm:"not null" json:"changed_at"`
}
