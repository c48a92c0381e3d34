package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/comex-tools/comex-app/models"
)

func TestRecordChangesSingleFieldDiff(t *testing.T) {
	oldSnap := map[string]string{"status": "Processo Criado"}
	newSnap := map[string]string{"status": "Embarcado"}

	changes := RecordChanges(oldSnap, newSnap)

	assert.Len(t, changes, 1)
	assert.Equal(t, "status", changes[0].Field)
	assert.Equal(t, "Processo Criado", changes[0].OldValue)
	assert.Equal(t, "Embarcado", changes[0].NewValue)
}

func TestRecordChangesIdenticalSnapshotsEmitNothing(t *testing.T) {
	proc := models.Process{
		Reference:    "PCH-2024-001",
		Status:       models.StatusEmbarcado,
		ExchangeRate: 5.12,
	}
	snap := Snapshot(proc)

	assert.Empty(t, RecordChanges(snap, Snapshot(proc)))
}

func TestEmptyValuesCollapseToSentinel(t *testing.T) {
	// vazio de um lado, espaço em branco do outro: ambos viram "Vazio",
	// sem entrada espúria no histórico
	oldSnap := map[string]string{"exportador": ""}
	newSnap := map[string]string{"exportador": "   "}

	assert.Empty(t, RecordChanges(oldSnap, newSnap))
}

func TestEmptyToValueRecordsSentinelAsOld(t *testing.T) {
	oldSnap := map[string]string{"exportador": ""}
	newSnap := map[string]string{"exportador": "Shenzhen Eletronics Ltd"}

	changes := RecordChanges(oldSnap, newSnap)

	assert.Len(t, changes, 1)
	assert.Equal(t, EmptyValue, changes[0].OldValue)
	assert.Equal(t, "Shenzhen Eletronics Ltd", changes[0].NewValue)
}

func TestSnapshotNumberFormatIsCanonical(t *testing.T) {
	a := models.Process{ExchangeRate: 5}
	b := models.Process{ExchangeRate: 5.0}

	// o mesmo valor nunca gera representação diferente
	assert.Equal(t, Snapshot(a)["cambio_estimado"], Snapshot(b)["cambio_estimado"])
	assert.Equal(t, "5", Snapshot(a)["cambio_estimado"])
}

func TestSnapshotArchivedFlag(t *testing.T) {
	assert.Equal(t, "Não", Snapshot(models.Process{})["arquivado"])
	assert.Equal(t, "Sim", Snapshot(models.Process{Archived: true})["arquivado"])
}

func TestRecordChangesFollowsFieldOrder(t *testing.T) {
	oldProc := models.Process{Reference: "PCH-1", Status: models.StatusCriado}
	newProc := models.Process{Reference: "PCH-1", Status: models.StatusVerificando, Exporter: "ACME"}

	changes := RecordChanges(Snapshot(oldProc), Snapshot(newProc))

	assert.Len(t, changes, 2)
	// "exportador" vem antes de "status" na ordem fixa de auditoria
	assert.Equal(t, "exportador", changes[0].Field)
	assert.Equal(t, "status", changes[1].Field)
}
