package controllers

import (
	"errors"
	"net/http"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/comex-tools/comex-app/models"
	"github.com/comex-tools/comex-app/notify"
	"github.com/comex-tools/comex-app/services"
	"github.com/comex-tools/comex-app/utils"
)

type ProcessController struct {
	DB      *gorm.DB
	Service *services.ProcessService
}

func NewProcessController(db *gorm.DB, catalog *gorm.DB) *ProcessController {
	return &ProcessController{
		DB:      db,
		Service: services.NewProcessService(db, catalog),
	}
}

// processItemReq aceita os campos numéricos como número ou texto: o form do
// follow-up manda texto, e valor inválido vira zero em vez de bloquear o
// save.
type processItemReq struct {
	Code         string      `json:"code"`
	NCM          string      `json:"ncm"`
	Covered      string      `json:"covered"`
	Quantity     interface{} `json:"quantity"`
	UnitWeightKG interface{} `json:"unit_weight_kg"`
	UnitValueUSD interface{} `json:"unit_value_usd"`
}

type processReq struct {
	Reference     string           `json:"reference"`
	Exporter      string           `json:"exporter"`
	Status        string           `json:"status"`
	ExchangeRate  interface{}      `json:"exchange_rate"`
	FreightUSD    interface{}      `json:"freight_usd"`
	InsuranceBRL  interface{}      `json:"insurance_brl"`
	IcmsManualBRL interface{}      `json:"icms_manual_brl"`
	Items         []processItemReq `json:"items"`
}

// num coerces a loosely-typed JSON value to float64; anything unparseable
// degrades silently to zero.
func num(v interface{}) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case string:
		return utils.ParseDecimal(t)
	default:
		return 0
	}
}

func (req processReq) toModel() models.Process {
	proc := models.Process{
		Reference:     req.Reference,
		Exporter:      req.Exporter,
		Status:        req.Status,
		ExchangeRate:  num(req.ExchangeRate),
		FreightUSD:    num(req.FreightUSD),
		InsuranceBRL:  num(req.InsuranceBRL),
		IcmsManualBRL: num(req.IcmsManualBRL),
	}
	if proc.Status == "" {
		proc.Status = models.StatusCriado
	}
	for _, it := range req.Items {
		covered := it.Covered
		if covered == "" {
			covered = "Não"
		}
		proc.Items = append(proc.Items, models.ProcessItem{
			Code:         it.Code,
			NCM:          it.NCM,
			Covered:      covered,
			Quantity:     num(it.Quantity),
			UnitWeightKG: num(it.UnitWeightKG),
			UnitValueUSD: num(it.UnitValueUSD),
		})
	}
	return proc
}

// actorName resolves the authenticated user to the name recorded in the
// history trail.
func (pc *ProcessController) actorName(c *gin.Context) string {
	userIDInterface, exists := c.Get("user_id")
	if !exists {
		return "sistema"
	}
	userID, ok := userIDInterface.(uint)
	if !ok {
		return "sistema"
	}
	var user models.User
	if err := pc.DB.First(&user, userID).Error; err != nil {
		return "sistema"
	}
	return user.Name
}

// GetAllProcesses -> listagem do follow-up, ordenada pelo status canônico.
// ?archived=true inclui os arquivados.
func (pc *ProcessController) GetAllProcesses(c *gin.Context) {
	query := pc.DB.Preload("Items")
	if c.Query("archived") != "true" {
		query = query.Where("archived = ?", false)
	}

	var processes []models.Process
	if err := query.Find(&processes).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	sort.SliceStable(processes, func(i, j int) bool {
		ri, rj := models.StatusRank(processes[i].Status), models.StatusRank(processes[j].Status)
		if ri != rj {
			return ri < rj
		}
		return processes[i].Reference < processes[j].Reference
	})

	utils.RespondJSON(c, http.StatusOK, "List of processes", processes)
}

// GetProcessByID -> detalhe de um processo com itens
func (pc *ProcessController) GetProcessByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("process_id"))

	proc, err := pc.Service.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrProcessNotFound) {
			utils.RespondError(c, http.StatusNotFound, err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Process detail", proc)
}

// GetProcessByReference -> busca pela referência (chave de negócio)
func (pc *ProcessController) GetProcessByReference(c *gin.Context) {
	ref := c.Param("reference")

	proc, err := pc.Service.GetByReference(ref)
	if err != nil {
		if errors.Is(err, services.ErrProcessNotFound) {
			utils.RespondError(c, http.StatusNotFound, err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Process detail", proc)
}

// CreateProcess -> primeiro save; não gera histórico
func (pc *ProcessController) CreateProcess(c *gin.Context) {
	var req processReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Reference == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("referência é obrigatória"))
		return
	}

	proc := req.toModel()
	if err := pc.Service.Save(&proc, pc.actorName(c)); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Process created: %s", proc.Reference)
	utils.RespondJSON(c, http.StatusCreated, "Process created", proc)
}

// UpdateProcess -> save completo: recálculo, substituição dos itens e
// histórico das diferenças, tudo em uma transação.
func (pc *ProcessController) UpdateProcess(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("process_id"))

	existing, err := pc.Service.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrProcessNotFound) {
			utils.RespondError(c, http.StatusNotFound, err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var req processReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	proc := req.toModel()
	proc.ID = existing.ID
	proc.CreatedAt = existing.CreatedAt
	proc.Archived = existing.Archived
	if proc.Reference == "" {
		proc.Reference = existing.Reference
	}
	// status só muda pelo endpoint próprio; payload sem status mantém o atual
	if req.Status == "" {
		proc.Status = existing.Status
	}

	if err := pc.Service.Save(&proc, pc.actorName(c)); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Process updated", proc)
}

// DeleteProcess -> remove o processo e seus itens (cascade). O histórico é
// append-only e permanece.
func (pc *ProcessController) DeleteProcess(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("process_id"))

	var proc models.Process
	if err := pc.DB.First(&proc, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, services.ErrProcessNotFound)
		return
	}

	tx := pc.DB.Begin()
	if err := tx.Where("process_id = ?", proc.ID).Delete(&models.ProcessItem{}).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if err := tx.Delete(&proc).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if err := tx.Commit().Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Process deleted", nil)
}

// SetStatus -> grava qualquer valor de status (sem máquina de estados) e
// registra a transição no histórico.
func (pc *ProcessController) SetStatus(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("process_id"))

	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	proc, err := pc.Service.SetStatus(uint(id), body.Status, pc.actorName(c))
	if err != nil {
		if errors.Is(err, services.ErrProcessNotFound) {
			utils.RespondError(c, http.StatusNotFound, err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	// notifica o painel imediatamente, sem esperar o ciclo do monitor
	notify.BroadcastStatusUpdate(*proc)

	utils.RespondJSON(c, http.StatusOK, "Status updated", proc)
}

// SetArchived -> liga/desliga o flag de arquivado, independente do status
func (pc *ProcessController) SetArchived(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("process_id"))

	var body struct {
		Archived *bool `json:"archived" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	proc, err := pc.Service.SetArchived(uint(id), *body.Archived, pc.actorName(c))
	if err != nil {
		if errors.Is(err, services.ErrProcessNotFound) {
			utils.RespondError(c, http.StatusNotFound, err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Archive flag updated", proc)
}

// GetHistory -> trilha de alterações do processo, mais recente primeiro
func (pc *ProcessController) GetHistory(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("process_id"))

	entries, err := pc.Service.History(uint(id))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Process history", entries)
}

// GetStatusValues -> valores distintos de status em uso, na ordem canônica
func (pc *ProcessController) GetStatusValues(c *gin.Context) {
	statuses, err := pc.Service.DistinctStatuses()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Status values", statuses)
}

// GetStats -> contagem de processos por status (painel)
func (pc *ProcessController) GetStats(c *gin.Context) {
	type statusCount struct {
		Status string `json:"status"`
		Count  int64  `json:"count"`
	}

	var counts []statusCount
	if err := pc.DB.Model(&models.Process{}).
		Select("status, count(*) as count").
		Where("archived = ?", false).
		Group("status").
		Scan(&counts).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return models.StatusRank(counts[i].Status) < models.StatusRank(counts[j].Status)
	})

	utils.RespondJSON(c, http.StatusOK, "Process stats", counts)
}

// PreviewCompute -> roda o recálculo sem persistir nada; usado pela tela
// para atualizar os campos derivados a cada edição.
func (pc *ProcessController) PreviewCompute(c *gin.Context) {
	var req processReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	proc := req.toModel()
	services.Recompute(&proc, pc.Service.RatesByCode)

	utils.RespondJSON(c, http.StatusOK, "Computed values", proc)
}
