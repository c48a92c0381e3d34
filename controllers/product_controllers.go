package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/comex-tools/comex-app/models"
	"github.com/comex-tools/comex-app/utils"
)

type ProductController struct {
	Catalog *gorm.DB
}

func NewProductController(catalog *gorm.DB) *ProductController {
	return &ProductController{Catalog: catalog}
}

// GetAllProducts -> catálogo completo; ?code= filtra por código interno
func (prc *ProductController) GetAllProducts(c *gin.Context) {
	query := prc.Catalog.Order("code")
	if code := c.Query("code"); code != "" {
		query = query.Where("code = ?", code)
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of products", products)
}

// CreateProduct
func (prc *ProductController) CreateProduct(c *gin.Context) {
	type reqBody struct {
		Code        string `json:"code" binding:"required"`
		Description string `json:"description" binding:"required"`
		NCM         string `json:"ncm"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	product := models.Product{
		Code:        body.Code,
		Description: body.Description,
		NCM:         body.NCM,
	}

	if err := prc.Catalog.Create(&product).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Product created", product)
}

// UpdateProduct
func (prc *ProductController) UpdateProduct(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("product_id"))

	var product models.Product
	if err := prc.Catalog.First(&product, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	type reqBody struct {
		Code        *string `json:"code"`
		Description *string `json:"description"`
		NCM         *string `json:"ncm"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if body.Code != nil {
		product.Code = *body.Code
	}
	if body.Description != nil {
		product.Description = *body.Description
	}
	if body.NCM != nil {
		product.NCM = *body.NCM
	}

	if err := prc.Catalog.Save(&product).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Product updated", product)
}

// DeleteProduct
func (prc *ProductController) DeleteProduct(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("product_id"))

	if err := prc.Catalog.Delete(&models.Product{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Product deleted", nil)
}
