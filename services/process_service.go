package services

import (
	"errors"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/comex-tools/comex-app/models"
)

var ErrProcessNotFound = errors.New("processo não encontrado")

// ProcessService owns the follow-up save flow: recompute, header upsert,
// wholesale item replace and history append run inside one transaction.
type ProcessService struct {
	DB      *gorm.DB // processos, itens, histórico
	Catalog *gorm.DB // ncm_rates, produtos
}

func NewProcessService(db *gorm.DB, catalog *gorm.DB) *ProcessService {
	return &ProcessService{DB: db, Catalog: catalog}
}

// RatesByCode looks one NCM code up in the catalog. Unknown codes come back
// with every rate zeroed; the save never blocks on a missing cadastro.
func (ps *ProcessService) RatesByCode(code string) TaxRates {
	var rate models.NcmRate
	if err := ps.Catalog.Where("code = ?", code).First(&rate).Error; err != nil {
		return TaxRates{}
	}
	return TaxRates{
		II:     rate.IIRate,
		IPI:    rate.IPIRate,
		PIS:    rate.PISRate,
		Cofins: rate.CofinsRate,
		Icms:   rate.IcmsRate,
	}
}

func (ps *ProcessService) GetByID(id uint) (*models.Process, error) {
	var proc models.Process
	if err := ps.DB.Preload("Items").First(&proc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProcessNotFound
		}
		return nil, err
	}
	return &proc, nil
}

func (ps *ProcessService) GetByReference(ref string) (*models.Process, error) {
	var proc models.Process
	if err := ps.DB.Preload("Items").Where("reference = ?", ref).First(&proc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProcessNotFound
		}
		return nil, err
	}
	return &proc, nil
}

// Save recomputes every derived field and persists header, items and history
// as one logical unit. First save of a process produces no history; updates
// append one entry per changed header field.
func (ps *ProcessService) Save(proc *models.Process, actor string) error {
	Recompute(proc, ps.RatesByCode)
	proc.ModifiedBy = actor

	tx := ps.DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	if proc.ID == 0 {
		if err := ps.insertProcess(tx, proc); err != nil {
			tx.Rollback()
			return err
		}
		return tx.Commit().Error
	}

	var old models.Process
	if err := tx.First(&old, proc.ID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProcessNotFound
		}
		return err
	}

	if err := tx.Omit("Items").Save(proc).Error; err != nil {
		tx.Rollback()
		return err
	}

	// Itens são substituídos por inteiro a cada save — não existe update
	// parcial de item.
	if err := tx.Where("process_id = ?", proc.ID).Delete(&models.ProcessItem{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	for i := range proc.Items {
		proc.Items[i].ID = 0
		proc.Items[i].ProcessID = proc.ID
		if err := tx.Create(&proc.Items[i]).Error; err != nil {
			tx.Rollback()
			return err
		}
	}

	changes := RecordChanges(Snapshot(old), Snapshot(*proc))
	now := time.Now()
	for _, ch := range changes {
		entry := models.ProcessHistory{
			ProcessID: proc.ID,
			Field:     ch.Field,
			OldValue:  ch.OldValue,
			NewValue:  ch.NewValue,
			Actor:     actor,
			ChangedAt: now,
		}
		if err := tx.Create(&entry).Error; err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit().Error
}

func (ps *ProcessService) insertProcess(tx *gorm.DB, proc *models.Process) error {
	items := proc.Items
	proc.Items = nil
	if err := tx.Create(proc).Error; err != nil {
		proc.Items = items
		return err
	}
	for i := range items {
		items[i].ID = 0
		items[i].ProcessID = proc.ID
		if err := tx.Create(&items[i]).Error; err != nil {
			proc.Items = items
			return err
		}
	}
	proc.Items = items
	return nil
}

// SetStatus writes any status value — there is no transition guard — and
// appends exactly one history entry for the change.
func (ps *ProcessService) SetStatus(id uint, status, actor string) (*models.Process, error) {
	tx := ps.DB.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	var proc models.Process
	if err := tx.First(&proc, id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProcessNotFound
		}
		return nil, err
	}

	oldStatus := proc.Status
	proc.Status = status
	proc.ModifiedBy = actor
	if err := tx.Save(&proc).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if oldStatus != status {
		entry := models.ProcessHistory{
			ProcessID: proc.ID,
			Field:     "status",
			OldValue:  normalizeValue(oldStatus),
			NewValue:  normalizeValue(status),
			Actor:     actor,
			ChangedAt: time.Now(),
		}
		if err := tx.Create(&entry).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &proc, nil
}

// SetArchived toggles the orthogonal archived flag, independent of status.
func (ps *ProcessService) SetArchived(id uint, archived bool, actor string) (*models.Process, error) {
	tx := ps.DB.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	var proc models.Process
	if err := tx.First(&proc, id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProcessNotFound
		}
		return nil, err
	}

	old := Snapshot(proc)
	proc.Archived = archived
	proc.ModifiedBy = actor
	if err := tx.Save(&proc).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	for _, ch := range RecordChanges(old, Snapshot(proc)) {
		entry := models.ProcessHistory{
			ProcessID: proc.ID,
			Field:     ch.Field,
			OldValue:  ch.OldValue,
			NewValue:  ch.NewValue,
			Actor:     actor,
			ChangedAt: time.Now(),
		}
		if err := tx.Create(&entry).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &proc, nil
}

// History returns the append-only trail of a process, newest first.
func (ps *ProcessService) History(id uint) ([]models.ProcessHistory, error) {
	var entries []models.ProcessHistory
	err := ps.DB.Where("process_id = ?", id).
		Order("changed_at DESC, id DESC").
		Find(&entries).Error
	return entries, err
}

// DistinctStatuses lists every status value present in the table, ordered by
// the canonical display ranking; unknown values land after the tail.
func (ps *ProcessService) DistinctStatuses() ([]string, error) {
	var statuses []string
	if err := ps.DB.Model(&models.Process{}).Distinct("status").Pluck("status", &statuses).Error; err != nil {
		return nil, err
	}
	sort.SliceStable(statuses, func(i, j int) bool {
		ri, rj := models.StatusRank(statuses[i]), models.StatusRank(statuses[j])
		if ri != rj {
			return ri < rj
		}
		return statuses[i] < statuses[j]
	})
	return statuses, nil
}
