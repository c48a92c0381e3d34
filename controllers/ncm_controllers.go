package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/comex-tools/comex-app/models"
	"github.com/comex-tools/comex-app/utils"
)

type NcmController struct {
	Catalog *gorm.DB
}

func NewNcmController(catalog *gorm.DB) *NcmController {
	return &NcmController{Catalog: catalog}
}

// GetAllRates
func (nc *NcmController) GetAllRates(c *gin.Context) {
	var rates []models.NcmRate
	if err := nc.Catalog.Order("code").Find(&rates).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "All NCM rates", rates)
}

// GetRateByCode -> alíquotas de um NCM; código sem cadastro volta zerado,
// nunca erro (é assim que o cálculo dos itens degrada).
func (nc *NcmController) GetRateByCode(c *gin.Context) {
	code := c.Param("code")

	var rate models.NcmRate
	if err := nc.Catalog.Where("code = ?", code).First(&rate).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondJSON(c, http.StatusOK, "NCM not registered, zero rates", models.NcmRate{Code: code})
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "NCM rate", rate)
}

// CreateRate
func (nc *NcmController) CreateRate(c *gin.Context) {
	type reqBody struct {
		Code        string      `json:"code" binding:"required,len=8"`
		Description string      `json:"description"`
		IIRate      interface{} `json:"ii_rate"`
		IPIRate     interface{} `json:"ipi_rate"`
		PISRate     interface{} `json:"pis_rate"`
		CofinsRate  interface{} `json:"cofins_rate"`
		IcmsRate    interface{} `json:"icms_rate"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	rate := models.NcmRate{
		Code:        body.Code,
		Description: body.Description,
		IIRate:      num(body.IIRate),
		IPIRate:     num(body.IPIRate),
		PISRate:     num(body.PISRate),
		CofinsRate:  num(body.CofinsRate),
		IcmsRate:    num(body.IcmsRate),
	}

	if err := nc.Catalog.Create(&rate).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "NCM rate created", rate)
}

// UpdateRate
func (nc *NcmController) UpdateRate(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("rate_id"))

	var rate models.NcmRate
	if err := nc.Catalog.First(&rate, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	type reqBody struct {
		Description *string     `json:"description"`
		IIRate      interface{} `json:"ii_rate"`
		IPIRate     interface{} `json:"ipi_rate"`
		PISRate     interface{} `json:"pis_rate"`
		CofinsRate  interface{} `json:"cofins_rate"`
		IcmsRate    interface{} `json:"icms_rate"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if body.Description != nil {
		rate.Description = *body.Description
	}
	if body.IIRate != nil {
		rate.IIRate = num(body.IIRate)
	}
	if body.IPIRate != nil {
		rate.IPIRate = num(body.IPIRate)
	}
	if body.PISRate != nil {
		rate.PISRate = num(body.PISRate)
	}
	if body.CofinsRate != nil {
		rate.CofinsRate = num(body.CofinsRate)
	}
	if body.IcmsRate != nil {
		rate.IcmsRate = num(body.IcmsRate)
	}

	if err := nc.Catalog.Save(&rate).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "NCM rate updated", rate)
}

// DeleteRate
func (nc *NcmController) DeleteRate(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("rate_id"))

	if err := nc.Catalog.Delete(&models.NcmRate{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "NCM rate deleted", nil)
}
