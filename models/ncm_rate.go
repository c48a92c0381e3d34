package models

import (
	"time"
)

// NcmRate stores the five ad-valorem percentages for one 8-digit NCM code.
// Lives in the catalog database, maintained independently of processes.
type NcmRate struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Code        string  `gorm:"type:varchar(8);unique;not null" json:"code"`
	Description string  `gorm:"type:text" json:"description"`
	IIRate      float64 `gorm:"type:decimal(7,4);not null;default:0" json:"ii_rate"`
	IPIRate     float64 `gorm:"type:decimal(7,4);not null;default:0" json:"ipi_rate"`
	PISRate     float64 `gorm:"type:decimal(7,4);not null;default:0" json:"pis_rate"`
	CofinsRate  float64 `gorm:"type:decimal(7,4);not null;default:0" json:"cofins_rate"`
	IcmsRate    float64 `gorm:"type:decimal(7,4);not null;default:0" json:"icms_rate"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (NcmRate) TableName() string {
	return "ncm_rates"
}
