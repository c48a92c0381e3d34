package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/comex-tools/comex-app/controllers"
	"github.com/comex-tools/comex-app/utils"
)

func setupUserRouter(t *testing.T) *gin.Engine {
	db, _ := setupTestDBs(t)

	gin.SetMode(gin.TestMode)
	router := gin.Default()

	userCtrl := controllers.NewUserController(db)
	router.POST("/register", userCtrl.Register)
	router.POST("/login", userCtrl.Login)

	return router
}

func TestRegisterAndLogin(t *testing.T) {
	utils.InitLogger()
	router := setupUserRouter(t)

	// --- Register ---
	registerPayload := map[string]string{
		"name":     "Maria Comex",
		"email":    "maria@example.com",
		"password": "senha123",
		"role":     "comex",
	}
	payloadBytes, err := json.Marshal(registerPayload)
	assert.NoError(t, err)

	req, err := http.NewRequest("POST", "/register", bytes.NewBuffer(payloadBytes))
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	var registerResponse map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &registerResponse))
	assert.Equal(t, true, registerResponse["status"])
	data := registerResponse["data"].(map[string]interface{})
	assert.NotNil(t, data["user_id"])

	// --- Login ---
	loginPayload := map[string]string{
		"email":    "maria@example.com",
		"password": "senha123",
	}
	payloadBytes, err = json.Marshal(loginPayload)
	assert.NoError(t, err)

	req, err = http.NewRequest("POST", "/login", bytes.NewBuffer(payloadBytes))
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var loginResponse map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &loginResponse))
	assert.Equal(t, true, loginResponse["status"])
	loginData := loginResponse["data"].(map[string]interface{})
	assert.NotEmpty(t, loginData["token"])
	assert.Equal(t, "comex", loginData["user_role"])

	// --- Login com senha errada ---
	badPayload, _ := json.Marshal(map[string]string{
		"email":    "maria@example.com",
		"password": "errada",
	})
	req, _ = http.NewRequest("POST", "/login", bytes.NewBuffer(badPayload))
	req.Header.Set("Content-Type", "application/json")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
