package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/comex-tools/comex-app/config"
	"github.com/comex-tools/comex-app/database"
	"github.com/comex-tools/comex-app/middlewares"
	"github.com/comex-tools/comex-app/models"
	"github.com/comex-tools/comex-app/router"
	"github.com/comex-tools/comex-app/services"
	"github.com/comex-tools/comex-app/utils"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	// Initialize loggers
	utils.InfoLogger = logrus.New()
	utils.ErrorLogger = logrus.New()

	utils.InfoLogger.SetOutput(os.Stdout)
	utils.ErrorLogger.SetOutput(os.Stderr)

	utils.InfoLogger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
		ForceColors:   true,
	})
	utils.ErrorLogger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
		ForceColors:   true,
	})
}

func main() {
	// Banco principal: processos, DI, usuários, histórico
	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	// Banco de catálogo: produtos e alíquotas NCM
	catalog, err := config.InitCatalogDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to catalog database: %v", err)
	}

	// Guarda a conexão principal para os pontos sem injeção
	utils.InitDB(db)

	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db, catalog)

	// Rate limiter geral (50 requests por segundo por IP)
	rateLimiter := middlewares.NewRateLimiter(50, 1)

	// Monitor de mudanças -> broadcast via websocket
	monitor := services.NewChangeMonitor(db)
	monitor.Interval = 500 * time.Millisecond
	monitor.Start()
	defer monitor.Stop()

	// Setup router
	r := router.SetupRouter(db, catalog)
	r.Use(rateLimiter.RateLimit())

	r.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB, catalog *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Process{},
		&models.ProcessItem{},
		&models.ProcessHistory{},
		&models.Declaration{},
		&models.DeclarationItem{},
		&models.ChangeLog{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}

	if err := catalog.AutoMigrate(
		&models.Product{},
		&models.NcmRate{},
	); err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate catalog: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")

	// Triggers que alimentam o change_logs
	if err := database.ExecuteTriggers(db); err != nil {
		utils.ErrorLogger.Printf("Error setting up triggers: %v", err)
	}
}
