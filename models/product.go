package models

import (
	"time"
)

// Product is a catalog entry (código interno + descrição + NCM padrão).
// Lives in the catalog database.
type Product struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Code        string `gorm:"type:varchar(50);unique;not null" json:"code"`
	Description string `gorm:"type:text;not null" json:"description"`
	NCM         string `gorm:"type:varchar(8)" json:"ncm"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
