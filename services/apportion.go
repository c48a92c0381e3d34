package services

import (
	"github.com/comex-tools/comex-app/models"
)

// TaxRates holds the five ad-valorem percentages of one NCM code.
// Values are percentages (16 = 16%), matching the ncm_rates table.
type TaxRates struct {
	II     float64
	IPI    float64
	PIS    float64
	Cofins float64
	Icms   float64
}

// ApportionParams are the shipment-level figures shared by every item of a
// process. Totals are the sums across all items, computed by the caller
// before invoking ComputeItemValues per item.
type ApportionParams struct {
	ExchangeRate  float64 // BRL per USD
	TotalValueUSD float64
	TotalWeightKG float64
	FreightUSD    float64
	InsuranceBRL  float64
}

// ratioDenom floors the denominator at 1 so zero process totals degrade to
// the raw item figure instead of a division error.
func ratioDenom(total float64) float64 {
	if total < 1 {
		return 1
	}
	return total
}

// ComputeItemValues fills the derived fields of one item: total value,
// apportioned freight/insurance shares, VLMD and the five tax estimates.
// Pure function; calling it twice with the same inputs yields the same item.
//
// A cascata importa: o IPI incide sobre VLMD + II, não sobre o VLMD puro.
func ComputeItemValues(item models.ProcessItem, p ApportionParams, rates TaxRates) models.ProcessItem {
	itemValueUSD := item.Quantity * item.UnitValueUSD
	itemWeightKG := item.Quantity * item.UnitWeightKG

	valueRatio := itemValueUSD / ratioDenom(p.TotalValueUSD)
	weightRatio := itemWeightKG / ratioDenom(p.TotalWeightKG)

	item.TotalValueUSD = itemValueUSD
	item.FreightShareUSD = p.FreightUSD * valueRatio
	item.InsuranceShareBRL = p.InsuranceBRL * weightRatio

	// VLMD: valor da mercadoria no local de descarga, em BRL
	vlmd := (item.UnitValueUSD*item.Quantity)*p.ExchangeRate +
		item.FreightShareUSD*p.ExchangeRate +
		item.InsuranceShareBRL
	item.CustomsValueBRL = vlmd

	item.II = vlmd * (rates.II / 100)
	item.IPI = (vlmd + item.II) * (rates.IPI / 100)
	item.PIS = vlmd * (rates.PIS / 100)
	item.Cofins = vlmd * (rates.Cofins / 100)
	item.Icms = vlmd * (rates.Icms / 100)

	return item
}

// ProcessTotals sums quantity×unit figures across items. Used to build the
// ApportionParams totals before the per-item pass.
func ProcessTotals(items []models.ProcessItem) (valueUSD, weightKG float64) {
	for _, it := range items {
		valueUSD += it.Quantity * it.UnitValueUSD
		weightKG += it.Quantity * it.UnitWeightKG
	}
	return valueUSD, weightKG
}

// Recompute runs the apportionment over every item of the process and rolls
// the tax fields up into the header totals. rates resolves an NCM code to
// its TaxRates (all-zero when the code is unknown).
//
// TaxEstimateTotal soma os cinco impostos calculados; a estimativa manual de
// ICMS do cabeçalho fica fora da soma de propósito.
func Recompute(proc *models.Process, rates func(code string) TaxRates) {
	totalValue, totalWeight := ProcessTotals(proc.Items)
	proc.TotalValueUSD = totalValue
	proc.TotalWeightKG = totalWeight

	params := ApportionParams{
		ExchangeRate:  proc.ExchangeRate,
		TotalValueUSD: totalValue,
		TotalWeightKG: totalWeight,
		FreightUSD:    proc.FreightUSD,
		InsuranceBRL:  proc.InsuranceBRL,
	}

	proc.IITotal = 0
	proc.IPITotal = 0
	proc.PISTotal = 0
	proc.CofinsTotal = 0
	proc.IcmsTotal = 0

	for i := range proc.Items {
		proc.Items[i] = ComputeItemValues(proc.Items[i], params, rates(proc.Items[i].NCM))
		proc.IITotal += proc.Items[i].II
		proc.IPITotal += proc.Items[i].IPI
		proc.PISTotal += proc.Items[i].PIS
		proc.CofinsTotal += proc.Items[i].Cofins
		proc.IcmsTotal += proc.Items[i].Icms
	}

	proc.TaxEstimateTotal = proc.IITotal + proc.IPITotal + proc.PISTotal +
		proc.CofinsTotal + proc.IcmsTotal
}
