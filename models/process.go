package models

import (
	"time"
)

// Status canônico dos processos, na ordem de exibição do follow-up.
const (
	StatusCriado        = "Processo Criado"
	StatusVerificando   = "Verificando"
	StatusEmProducao    = "Em produção"
	StatusPreEmbarque   = "Pré Embarque"
	StatusEmbarcado     = "Embarcado"
	StatusChegadaRecinto = "Chegada Recinto"
	StatusRegistrado    = "Registrado"
	StatusLiberado      = "Liberado"
	StatusAgendado      = "Agendado"
	StatusChegadaPichau = "Chegada Pichau"
	StatusEncerrado     = "Encerrado"
)

// StatusOrder is the canonical display ordering used by listings. It is not
// a transition table: any status value may be written at any time, and
// values outside this list sort after the tail.
var StatusOrder = []string{
	StatusCriado,
	StatusVerificando,
	StatusEmProducao,
	StatusPreEmbarque,
	StatusEmbarcado,
	StatusChegadaRecinto,
	StatusRegistrado,
	StatusLiberado,
	StatusAgendado,
	StatusChegadaPichau,
	StatusEncerrado,
}

// StatusRank returns the display position of a status. Unknown values rank
// after every canonical status.
func StatusRank(status string) int {
	for i, s := range StatusOrder {
		if s == status {
			return i
		}
	}
	return len(StatusOrder)
}

type Process struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Reference string `gorm:"type:varchar(50);unique;not null" json:"reference"`
	Exporter  string `gorm:"type:varchar(255)" json:"exporter"`
	Status    string `gorm:"type:varchar(30);not null;default:'Processo Criado'" json:"status"`
	Archived  bool   `gorm:"not null;default:false" json:"archived"`

	// Estimativas informadas pelo usuário
	ExchangeRate  float64 `gorm:"type:decimal(12,4);not null;default:0" json:"exchange_rate"`
	TotalValueUSD float64 `gorm:"type:decimal(14,2);not null;default:0" json:"total_value_usd"`
	FreightUSD    float64 `gorm:"type:decimal(14,2);not null;default:0" json:"freight_usd"`
	InsuranceBRL  float64 `gorm:"type:decimal(14,2);not null;default:0" json:"insurance_brl"`

	// Estimativa de ICMS digitada manualmente no cabeçalho. Nunca entra na
	// soma dos totais; convive com o ICMS calculado item a item.
	IcmsManualBRL float64 `gorm:"type:decimal(14,2);not null;default:0" json:"icms_manual_brl"`

	// Totais derivados — sempre a soma dos campos correspondentes dos itens,
	// nunca editados diretamente.
	TotalWeightKG    float64 `gorm:"type:decimal(14,3);not null;default:0" json:"total_weight_kg"`
	IITotal          float64 `gorm:"type:decimal(14,2);not null;default:0" json:"ii_total"`
	IPITotal         float64 `gorm:"type:decimal(14,2);not null;default:0" json:"ipi_total"`
	PISTotal         float64 `gorm:"type:decimal(14,2);not null;default:0" json:"pis_total"`
	CofinsTotal      float64 `gorm:"type:decimal(14,2);not null;default:0" json:"cofins_total"`
	IcmsTotal        float64 `gorm:"type:decimal(14,2);not null;default:0" json:"icms_total"`
	TaxEstimateTotal float64 `gorm:"type:decimal(14,2);not null;default:0" json:"tax_estimate_total"`

	ModifiedBy string    `gorm:"type:varchar(255)" json:"modified_by"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`

	Items []ProcessItem `gorm:"foreignKey:ProcessID" json:"items"`
}
