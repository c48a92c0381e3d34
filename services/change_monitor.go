package services

import (
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/comex-tools/comex-app/models"
	"github.com/comex-tools/comex-app/notify"
)

// ChangeMonitor drains the change_logs table (filled by database triggers)
// and broadcasts the affected rows over the websocket hub.
type ChangeMonitor struct {
	DB       *gorm.DB
	StopChan chan struct{}
	Interval time.Duration
}

func NewChangeMonitor(db *gorm.DB) *ChangeMonitor {
	return &ChangeMonitor{
		DB:       db,
		StopChan: make(chan struct{}),
		Interval: 1 * time.Second,
	}
}

func (cm *ChangeMonitor) Start() {
	go func() {
		ticker := time.NewTicker(cm.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				cm.checkChanges()
			case <-cm.StopChan:
				return
			}
		}
	}()
}

func (cm *ChangeMonitor) Stop() {
	close(cm.StopChan)
}

func (cm *ChangeMonitor) checkChanges() {
	var changes []models.ChangeLog

	tx := cm.DB.Begin()
	if tx.Error != nil {
		log.Printf("Error starting change-log transaction: %v", tx.Error)
		return
	}

	if err := tx.Where("processed = ?", false).
		Order("changed_at ASC").
		Limit(100).
		Find(&changes).Error; err != nil {
		tx.Rollback()
		log.Printf("Error fetching changes: %v", err)
		return
	}

	for _, change := range changes {
		switch change.TableName {
		case "processes":
			cm.processChange(change)
		case "declarations":
			cm.declarationChange(change)
		}

		if err := tx.Model(&models.ChangeLog{}).
			Where("id = ?", change.ID).
			Update("processed", true).Error; err != nil {
			tx.Rollback()
			log.Printf("Error marking change as processed: %v", err)
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		log.Printf("Error committing change-log transaction: %v", err)
		return
	}

	if len(changes) > 0 {
		log.Printf("Processed %d change-log entries", len(changes))
	}
}

func (cm *ChangeMonitor) processChange(change models.ChangeLog) {
	if change.ActionType == "DELETE" {
		notify.BroadcastProcessDelete(change.RecordID)
		return
	}

	var proc models.Process
	if err := cm.DB.Preload("Items").First(&proc, change.RecordID).Error; err != nil {
		log.Printf("Error fetching process %d: %v", change.RecordID, err)
		return
	}
	notify.BroadcastProcessUpdate(proc)
}

func (cm *ChangeMonitor) declarationChange(change models.ChangeLog) {
	if change.ActionType == "DELETE" {
		return
	}

	var decl models.Declaration
	if err := cm.DB.Preload("Items").First(&decl, change.RecordID).Error; err != nil {
		log.Printf("Error fetching declaration %d: %v", change.RecordID, err)
		return
	}
	notify.BroadcastImportUpdate(decl)
}
