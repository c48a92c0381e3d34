package database

import (
	"strings"

	"gorm.io/gorm"

	"github.com/comex-tools/comex-app/utils"
)

// Triggers feed the change_logs table so the change monitor can broadcast
// row updates without the controllers knowing about the hub. SQLite syntax;
// IF NOT EXISTS keeps startup idempotent.
const triggerSQL = `
CREATE TRIGGER IF NOT EXISTS trg_processes_insert AFTER INSERT ON processes
BEGIN
    INSERT INTO change_logs (table_name, record_id, action_type, changed_at, processed)
    VALUES ('processes', NEW.id, 'INSERT', CURRENT_TIMESTAMP, 0);
END;
--
CREATE TRIGGER IF NOT EXISTS trg_processes_update AFTER UPDATE ON processes
BEGIN
    INSERT INTO change_logs (table_name, record_id, action_type, changed_at, processed)
    VALUES ('processes', NEW.id, 'UPDATE', CURRENT_TIMESTAMP, 0);
END;
--
CREATE TRIGGER IF NOT EXISTS trg_processes_delete AFTER DELETE ON processes
BEGIN
    INSERT INTO change_logs (table_name, record_id, action_type, changed_at, processed)
    VALUES ('processes', OLD.id, 'DELETE', CURRENT_TIMESTAMP, 0);
END;
--
CREATE TRIGGER IF NOT EXISTS trg_declarations_insert AFTER INSERT ON declarations
BEGIN
    INSERT INTO change_logs (table_name, record_id, action_type, changed_at, processed)
    VALUES ('declarations', NEW.id, 'INSERT', CURRENT_TIMESTAMP, 0);
END;
--
CREATE TRIGGER IF NOT EXISTS trg_declarations_update AFTER UPDATE ON declarations
BEGIN
    INSERT INTO change_logs (table_name, record_id, action_type, changed_at, processed)
    VALUES ('declarations', NEW.id, 'UPDATE', CURRENT_TIMESTAMP, 0);
END;
`

func ExecuteTriggers(db *gorm.DB) error {
	for _, stmt := range strings.Split(triggerSQL, "--") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}

		if err := db.Exec(stmt).Error; err != nil {
			utils.ErrorLogger.Printf("Error executing trigger: %v\nStatement: %s", err, stmt)
			continue
		}
	}

	// Verificação: lista os triggers criados
	var names []string
	db.Raw(`SELECT name FROM sqlite_master WHERE type = 'trigger'`).Scan(&names)
	for _, name := range names {
		utils.InfoLogger.Printf("Trigger verified: %s", name)
	}

	return nil
}
