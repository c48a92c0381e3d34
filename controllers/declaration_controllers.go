package controllers

import (
	"encoding/xml"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/comex-tools/comex-app/models"
	"github.com/comex-tools/comex-app/notify"
	"github.com/comex-tools/comex-app/services"
	"github.com/comex-tools/comex-app/utils"
)

type DeclarationController struct {
	DB      *gorm.DB
	Service *services.ProcessService
}

func NewDeclarationController(db *gorm.DB, catalog *gorm.DB) *DeclarationController {
	return &DeclarationController{
		DB:      db,
		Service: services.NewProcessService(db, catalog),
	}
}

// Estrutura do XML da DI (extrato do Siscomex). Só os campos que o
// follow-up consome; o resto do extrato é ignorado pelo decoder.
type diXML struct {
	XMLName      xml.Name       `xml:"ListaDeclaracoes"`
	Declarations []diDeclaracao `xml:"declaracaoImportacao"`
}

type diDeclaracao struct {
	Number       string     `xml:"numeroDI"`
	RegisterDate string     `xml:"dataRegistro"` // AAAAMMDD
	ExchangeRate string     `xml:"taxaCambio"`
	Additions    []diAdicao `xml:"adicao"`
}

type diAdicao struct {
	Number      string `xml:"numeroAdicao"`
	NCM         string `xml:"dadosMercadoriaCodigoNcm"`
	Description string `xml:"descricaoMercadoria"`
	Quantity    string `xml:"quantidade"`
	UnitValue   string `xml:"valorUnitario"`
	NetWeight   string `xml:"pesoLiquido"`
}

// UploadDeclaration -> recebe o XML da DI via multipart, grava a declaração
// e as adições. ?create_process=true materializa um processo novo com os
// itens da DI.
func (dc *DeclarationController) UploadDeclaration(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("arquivo XML não informado"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	defer file.Close()

	var parsed diXML
	if err := xml.NewDecoder(file).Decode(&parsed); err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("XML de DI inválido: "+err.Error()))
		return
	}
	if len(parsed.Declarations) == 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("XML não contém declaração de importação"))
		return
	}

	var saved []models.Declaration
	for _, d := range parsed.Declarations {
		decl, err := dc.saveDeclaration(d)
		if err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}

		if c.Query("create_process") == "true" {
			if err := dc.materializeProcess(decl); err != nil {
				utils.RespondError(c, http.StatusInternalServerError, err)
				return
			}
		}
		saved = append(saved, *decl)
	}

	utils.InfoLogger.Printf("DI upload: %d declaration(s) imported from %s", len(saved), fileHeader.Filename)
	notify.BroadcastStaffNotification("DI importada: " + saved[0].Number)
	utils.RespondJSON(c, http.StatusCreated, "Declarations imported", saved)
}

func (dc *DeclarationController) saveDeclaration(d diDeclaracao) (*models.Declaration, error) {
	decl := models.Declaration{
		Number:       d.Number,
		ExchangeRate: utils.ParseDecimal(d.ExchangeRate),
	}

	if t, err := time.Parse("20060102", d.RegisterDate); err == nil {
		decl.RegisteredAt = &t
	}

	var total float64
	for _, a := range d.Additions {
		addition, _ := strconv.Atoi(a.Number)
		qty := utils.ParseDecimal(a.Quantity)
		unitValue := utils.ParseDecimal(a.UnitValue)
		total += qty * unitValue

		decl.Items = append(decl.Items, models.DeclarationItem{
			Addition:     addition,
			NCM:          a.NCM,
			Description:  a.Description,
			Quantity:     qty,
			UnitValueUSD: unitValue,
			WeightKG:     utils.ParseDecimal(a.NetWeight),
		})
	}
	decl.TotalValueUSD = total

	tx := dc.DB.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	// Reimportar a mesma DI substitui a anterior
	var existing models.Declaration
	if err := tx.Where("number = ?", decl.Number).First(&existing).Error; err == nil {
		if err := tx.Where("declaration_id = ?", existing.ID).Delete(&models.DeclarationItem{}).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
		if err := tx.Delete(&existing).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	items := decl.Items
	decl.Items = nil
	if err := tx.Create(&decl).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	for i := range items {
		items[i].DeclarationID = decl.ID
		if err := tx.Create(&items[i]).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}
	decl.Items = items

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &decl, nil
}

// materializeProcess cria um processo a partir da DI, com a referência
// igual ao número da declaração.
func (dc *DeclarationController) materializeProcess(decl *models.Declaration) error {
	proc := models.Process{
		Reference:    "DI-" + decl.Number,
		Status:       models.StatusRegistrado,
		ExchangeRate: decl.ExchangeRate,
	}

	for _, it := range decl.Items {
		unitWeight := 0.0
		if it.Quantity > 0 {
			unitWeight = it.WeightKG / it.Quantity
		}
		proc.Items = append(proc.Items, models.ProcessItem{
			Code:         "DI-AD" + strconv.Itoa(it.Addition),
			NCM:          it.NCM,
			Covered:      "Não",
			Quantity:     it.Quantity,
			UnitWeightKG: unitWeight,
			UnitValueUSD: it.UnitValueUSD,
		})
	}

	if err := dc.Service.Save(&proc, "importação DI"); err != nil {
		return err
	}

	decl.ProcessID = &proc.ID
	return dc.DB.Model(&models.Declaration{}).
		Where("id = ?", decl.ID).
		Update("process_id", proc.ID).Error
}

// GetAllDeclarations
func (dc *DeclarationController) GetAllDeclarations(c *gin.Context) {
	var decls []models.Declaration
	if err := dc.DB.Preload("Items").Find(&decls).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of declarations", decls)
}

// GetDeclarationByID
func (dc *DeclarationController) GetDeclarationByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("declaration_id"))

	var decl models.Declaration
	if err := dc.DB.Preload("Items").First(&decl, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Declaration detail", decl)
}
