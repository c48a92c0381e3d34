package Controllers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/comex-tools/comex-app/controllers"
	"github.com/comex-tools/comex-app/models"
	"github.com/comex-tools/comex-app/utils"
)

func TestNcmRateCRUDAndZeroDefault(t *testing.T) {
	utils.InitLogger()
	_, catalog := setupTestDBs(t)

	gin.SetMode(gin.TestMode)
	router := gin.Default()
	router.Use(fakeAuth(1, "fiscal"))

	ncmCtrl := controllers.NewNcmController(catalog)
	router.POST("/ncm", ncmCtrl.CreateRate)
	router.GET("/ncm/:code", ncmCtrl.GetRateByCode)

	// código precisa ter 8 dígitos
	w := postJSON(t, router, "POST", "/ncm", map[string]interface{}{
		"code": "123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(t, router, "POST", "/ncm", map[string]interface{}{
		"code":        "85171231",
		"description": "Telefones para redes celulares",
		"ii_rate":     16,
		"ipi_rate":    "5",
		"icms_rate":   18,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Data models.NcmRate `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.InDelta(t, 16.0, resp.Data.IIRate, 1e-9)
	assert.InDelta(t, 5.0, resp.Data.IPIRate, 1e-9)

	// NCM sem cadastro responde 200 com alíquotas zeradas
	w = postJSON(t, router, "GET", "/ncm/00000000", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "00000000", resp.Data.Code)
	assert.Zero(t, resp.Data.IIRate)
}

func TestFreightCalculateEndpoint(t *testing.T) {
	utils.InitLogger()

	gin.SetMode(gin.TestMode)
	router := gin.Default()
	router.Use(fakeAuth(1, "comex"))

	freightCtrl := controllers.NewFreightController()
	router.POST("/freight/calculate", freightCtrl.Calculate)

	w := postJSON(t, router, "POST", "/freight/calculate", map[string]interface{}{
		"modal":           "aereo",
		"gross_weight_kg": 50,
		"volume_m3":       2,
		"rate_per_kg_usd": 3,
		"exchange_rate":   "5,00",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			ChargeableWeightKG float64 `json:"chargeable_weight_kg"`
			FreightUSD         float64 `json:"freight_usd"`
			FreightBRL         float64 `json:"freight_brl"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.InDelta(t, 334.0, resp.Data.ChargeableWeightKG, 1e-9)
	assert.InDelta(t, 1002.0, resp.Data.FreightUSD, 1e-9)
	assert.InDelta(t, 5010.0, resp.Data.FreightBRL, 1e-9)

	// modal desconhecido é recusado
	w = postJSON(t, router, "POST", "/freight/calculate", map[string]interface{}{
		"modal": "ferroviario",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
