package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comex-tools/comex-app/services"
	"github.com/comex-tools/comex-app/utils"
)

type FreightController struct{}

func NewFreightController() *FreightController {
	return &FreightController{}
}

// Calculate -> calculadora de frete: peso taxável (maior entre bruto e
// cubado) vezes a tarifa, respeitando o mínimo da cotação.
func (fc *FreightController) Calculate(c *gin.Context) {
	type reqBody struct {
		Modal         string      `json:"modal"` // aereo (default) ou maritimo
		GrossWeightKG interface{} `json:"gross_weight_kg"`
		VolumeM3      interface{} `json:"volume_m3"`
		RatePerKgUSD  interface{} `json:"rate_per_kg_usd"`
		MinChargeUSD  interface{} `json:"min_charge_usd"`
		ExchangeRate  interface{} `json:"exchange_rate"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	modal := body.Modal
	if modal == "" {
		modal = services.ModalAir
	}
	if modal != services.ModalAir && modal != services.ModalSea {
		utils.RespondError(c, http.StatusBadRequest, errors.New("modal inválido: use aereo ou maritimo"))
		return
	}

	result := services.CalculateFreight(services.FreightInput{
		Modal:         modal,
		GrossWeightKG: num(body.GrossWeightKG),
		VolumeM3:      num(body.VolumeM3),
		RatePerKgUSD:  num(body.RatePerKgUSD),
		MinChargeUSD:  num(body.MinChargeUSD),
		ExchangeRate:  num(body.ExchangeRate),
	})

	utils.RespondJSON(c, http.StatusOK, "Freight estimate", result)
}
