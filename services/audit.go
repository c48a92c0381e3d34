package services

import (
	"strconv"
	"strings"

	"github.com/comex-tools/comex-app/models"
)

// EmptyValue is the sentinel recorded in history instead of a blank string,
// so entries stay readable in the follow-up screen.
const EmptyValue = "Vazio"

// auditFields fixes the order in which header fields are diffed. The
// identity column and the gorm timestamps are not audited.
var auditFields = []string{
	"referencia",
	"exportador",
	"status",
	"arquivado",
	"cambio_estimado",
	"valor_total_usd",
	"frete_usd",
	"seguro_brl",
	"icms_manual_brl",
	"peso_total_kg",
	"ii_total",
	"ipi_total",
	"pis_total",
	"cofins_total",
	"icms_total",
	"estimativa_impostos_total",
}

// Snapshot flattens a process header into the audited string form. Every
// number goes through one canonical formatter so "0" and "0.0" cannot show
// up as a spurious change.
func Snapshot(p models.Process) map[string]string {
	boolStr := "Não"
	if p.Archived {
		boolStr = "Sim"
	}
	return map[string]string{
		"referencia":                p.Reference,
		"exportador":                p.Exporter,
		"status":                    p.Status,
		"arquivado":                 boolStr,
		"cambio_estimado":           formatNumber(p.ExchangeRate),
		"valor_total_usd":           formatNumber(p.TotalValueUSD),
		"frete_usd":                 formatNumber(p.FreightUSD),
		"seguro_brl":                formatNumber(p.InsuranceBRL),
		"icms_manual_brl":           formatNumber(p.IcmsManualBRL),
		"peso_total_kg":             formatNumber(p.TotalWeightKG),
		"ii_total":                  formatNumber(p.IITotal),
		"ipi_total":                 formatNumber(p.IPITotal),
		"pis_total":                 formatNumber(p.PISTotal),
		"cofins_total":              formatNumber(p.CofinsTotal),
		"icms_total":                formatNumber(p.IcmsTotal),
		"estimativa_impostos_total": formatNumber(p.TaxEstimateTotal),
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FieldChange is one audited difference between two snapshots.
type FieldChange struct {
	Field    string
	OldValue string
	NewValue string
}

// RecordChanges diffs two snapshots field by field and returns one entry per
// changed field. Comparison is textual over trimmed values; blank values on
// both sides collapse to the same sentinel and produce no entry.
func RecordChanges(oldSnap, newSnap map[string]string) []FieldChange {
	var changes []FieldChange
	for _, field := range auditFields {
		oldVal := normalizeValue(oldSnap[field])
		newVal := normalizeValue(newSnap[field])
		if oldVal != newVal {
			changes = append(changes, FieldChange{
				Field:    field,
				OldValue: oldVal,
				NewValue: newVal,
			})
		}
	}
	return changes
}

func normalizeValue(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return EmptyValue
	}
	return v
}
