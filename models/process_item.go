package models

import (
	"time"
)

type ProcessItem struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	ProcessID uint `gorm:"not null;index" json:"process_id"`
	// Omitting Process field from JSON to avoid recursive nesting
	Process Process `gorm:"foreignKey:ProcessID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	Code    string `gorm:"type:varchar(50)" json:"code"`
	NCM     string `gorm:"type:varchar(8)" json:"ncm"`
	Covered string `gorm:"type:varchar(3);default:'Não'" json:"covered"` // Sim / Não

	Quantity     float64 `gorm:"type:decimal(12,2);not null;default:0" json:"quantity"`
	UnitWeightKG float64 `gorm:"type:decimal(12,4);not null;default:0" json:"unit_weight_kg"`
	UnitValueUSD float64 `gorm:"type:decimal(14,4);not null;default:0" json:"unit_value_usd"`

	// Campos derivados, recalculados a cada save do processo
	TotalValueUSD     float64 `gorm:"type:decimal(14,2);not null;default:0" json:"total_value_usd"`
	FreightShareUSD   float64 `gorm:"type:decimal(14,2);not null;default:0" json:"freight_share_usd"`
	InsuranceShareBRL float64 `gorm:"type:decimal(14,2);not null;default:0" json:"insurance_share_brl"`
	CustomsValueBRL   float64 `gorm:"type:decimal(14,2);not null;default:0" json:"customs_value_brl"` // VLMD
	II                float64 `gorm:"type:decimal(14,2);not null;default:0" json:"ii"`
	IPI               float64 `gorm:"type:decimal(14,2);not null;default:0" json:"ipi"`
	PIS               float64 `gorm:"type:decimal(14,2);not null;default:0" json:"pis"`
	Cofins            float64 `gorm:"type:decimal(14,2);not null;default:0" json:"cofins"`
	Icms              float64 `gorm:"type:decimal(14,2);not null;default:0" json:"icms"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
