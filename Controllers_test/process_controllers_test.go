package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/comex-tools/comex-app/controllers"
	"github.com/comex-tools/comex-app/models"
	"github.com/comex-tools/comex-app/utils"
)

// setupTestDBs usa SQLite in-memory para os dois bancos
func setupTestDBs(t *testing.T) (*gorm.DB, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Process{},
		&models.ProcessItem{},
		&models.ProcessHistory{},
		&models.Declaration{},
		&models.DeclarationItem{},
	); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	catalog, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect catalog database: %v", err)
	}
	if err := catalog.AutoMigrate(&models.Product{}, &models.NcmRate{}); err != nil {
		t.Fatalf("failed to migrate catalog: %v", err)
	}

	return db, catalog
}

// fakeAuth injeta o usuário autenticado no contexto, sem passar pelo JWT
func fakeAuth(userID uint, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("role", role)
		c.Next()
	}
}

func setupProcessRouter(db *gorm.DB, catalog *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	router.Use(fakeAuth(1, "comex"))

	processCtrl := controllers.NewProcessController(db, catalog)
	router.GET("/processes", processCtrl.GetAllProcesses)
	router.GET("/processes/statuses", processCtrl.GetStatusValues)
	router.GET("/processes/reference/:reference", processCtrl.GetProcessByReference)
	router.GET("/processes/:process_id", processCtrl.GetProcessByID)
	router.GET("/processes/:process_id/history", processCtrl.GetHistory)
	router.POST("/processes", processCtrl.CreateProcess)
	router.POST("/processes/preview", processCtrl.PreviewCompute)
	router.PUT("/processes/:process_id", processCtrl.UpdateProcess)
	router.PATCH("/processes/:process_id/status", processCtrl.SetStatus)
	router.PATCH("/processes/:process_id/archive", processCtrl.SetArchived)
	router.DELETE("/processes/:process_id", processCtrl.DeleteProcess)

	return router
}

func seedTestData(t *testing.T, db *gorm.DB, catalog *gorm.DB) {
	t.Helper()
	assert.NoError(t, db.Create(&models.User{
		Name:     "Maria Comex",
		Email:    "maria@example.com",
		Password: "irrelevant",
		Role:     "comex",
	}).Error)
	assert.NoError(t, catalog.Create(&models.NcmRate{
		Code:       "85171231",
		IIRate:     16,
		IPIRate:    5,
		PISRate:    1.65,
		CofinsRate: 7.6,
		IcmsRate:   18,
	}).Error)
}

func postJSON(t *testing.T, router *gin.Engine, method, url string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	assert.NoError(t, err)

	req, err := http.NewRequest(method, url, bytes.NewBuffer(body))
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateAndUpdateProcessFlow(t *testing.T) {
	utils.InitLogger()
	db, catalog := setupTestDBs(t)
	seedTestData(t, db, catalog)
	router := setupProcessRouter(db, catalog)

	// --- criação: campos numéricos chegam como texto do form ---
	createPayload := map[string]interface{}{
		"reference":     "PCH-2024-010",
		"exporter":      "Shenzhen Eletronics Ltd",
		"exchange_rate": "5,00",
		"freight_usd":   30,
		"insurance_brl": 50,
		"items": []map[string]interface{}{
			{"code": "A", "ncm": "85171231", "quantity": 10, "unit_value_usd": 5, "unit_weight_kg": 2},
			{"code": "B", "ncm": "85171231", "quantity": 5, "unit_value_usd": 20, "unit_weight_kg": 1},
		},
	}
	w := postJSON(t, router, "POST", "/processes", createPayload)
	assert.Equal(t, http.StatusCreated, w.Code)

	var createResp struct {
		Status bool           `json:"status"`
		Data   models.Process `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &createResp))
	assert.True(t, createResp.Status)
	proc := createResp.Data
	assert.NotZero(t, proc.ID)
	assert.InDelta(t, 150.0, proc.TotalValueUSD, 1e-6)
	assert.Len(t, proc.Items, 2)
	assert.InDelta(t, 340.0, proc.Items[0].CustomsValueBRL, 1e-6)
	assert.InDelta(t, 54.4, proc.Items[0].II, 1e-6)
	assert.InDelta(t, 19.72, proc.Items[0].IPI, 1e-6)

	// criação não gera histórico
	w = postJSON(t, router, "GET", "/processes/"+itoa(proc.ID)+"/history", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var histResp struct {
		Data []models.ProcessHistory `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &histResp))
	assert.Empty(t, histResp.Data)

	// --- update completo: muda câmbio e substitui itens ---
	updatePayload := map[string]interface{}{
		"reference":     "PCH-2024-010",
		"exporter":      "Shenzhen Eletronics Ltd",
		"exchange_rate": 6.0,
		"freight_usd":   30,
		"insurance_brl": 50,
		"items": []map[string]interface{}{
			{"code": "A", "ncm": "85171231", "quantity": 10, "unit_value_usd": 5, "unit_weight_kg": 2},
		},
	}
	w = postJSON(t, router, "PUT", "/processes/"+itoa(proc.ID), updatePayload)
	assert.Equal(t, http.StatusOK, w.Code)

	var updateResp struct {
		Data models.Process `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &updateResp))
	assert.InDelta(t, 50.0, updateResp.Data.TotalValueUSD, 1e-6)
	assert.Len(t, updateResp.Data.Items, 1)

	// agora o histórico registra as diferenças, com o ator resolvido
	w = postJSON(t, router, "GET", "/processes/"+itoa(proc.ID)+"/history", nil)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &histResp))
	assert.NotEmpty(t, histResp.Data)
	fields := map[string]bool{}
	for _, e := range histResp.Data {
		assert.Equal(t, "Maria Comex", e.Actor)
		fields[e.Field] = true
	}
	assert.True(t, fields["cambio_estimado"])
	assert.True(t, fields["valor_total_usd"])
}

func TestStatusAndArchiveEndpoints(t *testing.T) {
	utils.InitLogger()
	db, catalog := setupTestDBs(t)
	seedTestData(t, db, catalog)
	router := setupProcessRouter(db, catalog)

	w := postJSON(t, router, "POST", "/processes", map[string]interface{}{
		"reference": "PCH-2024-011",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	var createResp struct {
		Data models.Process `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &createResp))
	id := itoa(createResp.Data.ID)

	// qualquer status é aceito, inclusive fora da enumeração
	w = postJSON(t, router, "PATCH", "/processes/"+id+"/status", map[string]string{
		"status": "Embarcado",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = postJSON(t, router, "PATCH", "/processes/"+id+"/archive", map[string]bool{
		"archived": true,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	// arquivado some da listagem padrão
	w = postJSON(t, router, "GET", "/processes", nil)
	var listResp struct {
		Data []models.Process `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &listResp))
	assert.Empty(t, listResp.Data)

	// ...e aparece com ?archived=true
	w = postJSON(t, router, "GET", "/processes?archived=true", nil)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &listResp))
	assert.Len(t, listResp.Data, 1)
	assert.Equal(t, "Embarcado", listResp.Data[0].Status)
}

func TestGetProcessByReferenceAndNotFound(t *testing.T) {
	utils.InitLogger()
	db, catalog := setupTestDBs(t)
	seedTestData(t, db, catalog)
	router := setupProcessRouter(db, catalog)

	w := postJSON(t, router, "POST", "/processes", map[string]interface{}{
		"reference": "PCH-2024-012",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, router, "GET", "/processes/reference/PCH-2024-012", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = postJSON(t, router, "GET", "/processes/reference/NAO-EXISTE", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = postJSON(t, router, "GET", "/processes/99999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPreviewComputeDoesNotPersist(t *testing.T) {
	utils.InitLogger()
	db, catalog := setupTestDBs(t)
	seedTestData(t, db, catalog)
	router := setupProcessRouter(db, catalog)

	w := postJSON(t, router, "POST", "/processes/preview", map[string]interface{}{
		"reference":     "PREVIEW",
		"exchange_rate": 5.0,
		"items": []map[string]interface{}{
			{"ncm": "85171231", "quantity": 1, "unit_value_usd": 200},
		},
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data models.Process `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.InDelta(t, 1000.0, resp.Data.Items[0].CustomsValueBRL, 1e-6)

	var count int64
	db.Model(&models.Process{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func itoa(id uint) string {
	return strconv.Itoa(int(id))
}
