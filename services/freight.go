package services

// Modais suportados pela calculadora de frete.
const (
	ModalAir = "aereo"
	ModalSea = "maritimo"
)

// volumetric conversion factors (kg per m³)
const (
	airVolumetricFactor = 167
	seaVolumetricFactor = 1000
)

// FreightInput carries the figures the COMEX team gets from the forwarder
// quote: gross weight, cubed volume, rate per chargeable kg and the minimum
// charge of the tariff.
type FreightInput struct {
	Modal         string
	GrossWeightKG float64
	VolumeM3      float64
	RatePerKgUSD  float64
	MinChargeUSD  float64
	ExchangeRate  float64 // BRL per USD
}

// FreightResult is the calculator output, with the estimate in both
// currencies at the informed exchange rate.
type FreightResult struct {
	ChargeableWeightKG float64 `json:"chargeable_weight_kg"`
	VolumetricWeightKG float64 `json:"volumetric_weight_kg"`
	FreightUSD         float64 `json:"freight_usd"`
	FreightBRL         float64 `json:"freight_brl"`
}

// CalculateFreight applies the standard chargeable-weight rule: the greater
// of gross weight and volumetric weight pays, floored at the tariff minimum.
func CalculateFreight(in FreightInput) FreightResult {
	factor := float64(airVolumetricFactor)
	if in.Modal == ModalSea {
		factor = seaVolumetricFactor
	}

	volumetric := in.VolumeM3 * factor
	chargeable := in.GrossWeightKG
	if volumetric > chargeable {
		chargeable = volumetric
	}

	freight := chargeable * in.RatePerKgUSD
	if freight < in.MinChargeUSD {
		freight = in.MinChargeUSD
	}

	return FreightResult{
		ChargeableWeightKG: chargeable,
		VolumetricWeightKG: volumetric,
		FreightUSD:         freight,
		FreightBRL:         freight * in.ExchangeRate,
	}
}
