package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFreightUsesGrossWeightWhenHeavier(t *testing.T) {
	result := CalculateFreight(FreightInput{
		Modal:         ModalAir,
		GrossWeightKG: 500,
		VolumeM3:      1, // cubado: 167 kg
		RatePerKgUSD:  2,
		ExchangeRate:  5,
	})

	assert.InDelta(t, 500.0, result.ChargeableWeightKG, 1e-9)
	assert.InDelta(t, 1000.0, result.FreightUSD, 1e-9)
	assert.InDelta(t, 5000.0, result.FreightBRL, 1e-9)
}

func TestFreightUsesVolumetricWeightWhenLight(t *testing.T) {
	result := CalculateFreight(FreightInput{
		Modal:         ModalAir,
		GrossWeightKG: 50,
		VolumeM3:      2, // cubado: 334 kg
		RatePerKgUSD:  3,
	})

	assert.InDelta(t, 334.0, result.VolumetricWeightKG, 1e-9)
	assert.InDelta(t, 334.0, result.ChargeableWeightKG, 1e-9)
	assert.InDelta(t, 1002.0, result.FreightUSD, 1e-9)
}

func TestFreightRespectsMinimumCharge(t *testing.T) {
	result := CalculateFreight(FreightInput{
		Modal:         ModalAir,
		GrossWeightKG: 10,
		RatePerKgUSD:  2,
		MinChargeUSD:  100,
	})

	assert.InDelta(t, 100.0, result.FreightUSD, 1e-9)
}

func TestFreightSeaModalFactor(t *testing.T) {
	result := CalculateFreight(FreightInput{
		Modal:         ModalSea,
		GrossWeightKG: 200,
		VolumeM3:      1.5, // w/m: 1500 kg
		RatePerKgUSD:  0.1,
	})

	assert.InDelta(t, 1500.0, result.ChargeableWeightKG, 1e-9)
	assert.InDelta(t, 150.0, result.FreightUSD, 1e-9)
}
