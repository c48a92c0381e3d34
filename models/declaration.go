package models

import (
	"time"
)

// Declaration is one imported DI (declaração de importação), parsed from the
// XML issued by Siscomex. A declaration may be linked to the process it was
// materialized into.
type Declaration struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Number        string     `gorm:"type:varchar(20);unique;not null" json:"number"`
	RegisteredAt  *time.Time `json:"registered_at,omitempty"`
	ExchangeRate  float64    `gorm:"type:decimal(12,4);not null;default:0" json:"exchange_rate"`
	TotalValueUSD float64    `gorm:"type:decimal(14,2);not null;default:0" json:"total_value_usd"`
	ProcessID     *uint      `gorm:"index" json:"process_id,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`

	Items []DeclarationItem `gorm:"foreignKey:DeclarationID" json:"items"`
}

// DeclarationItem is one "adição" of the DI.
type DeclarationItem struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	DeclarationID uint        `gorm:"not null;index" json:"declaration_id"`
	Declaration   Declaration `gorm:"foreignKey:DeclarationID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	Addition     int     `gorm:"not null" json:"addition"`
	NCM          string  `gorm:"type:varchar(8)" json:"ncm"`
	Description  string  `gorm:"type:text" json:"description"`
	Quantity     float64 `gorm:"type:decimal(12,2);not null;default:0" json:"quantity"`
	UnitValueUSD float64 `gorm:"type:decimal(14,4);not null;default:0" json:"unit_value_usd"`
	WeightKG     float64 `gorm:"type:decimal(12,4);not null;default:0" json:"weight_kg"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
