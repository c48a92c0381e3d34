package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/comex-tools/comex-app/controllers"
	"github.com/comex-tools/comex-app/middlewares"
)

func SetupRouter(db *gorm.DB, catalog *gorm.DB) *gin.Engine {
	r := gin.Default()

	// Apply security middlewares
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	// Inicialização dos controllers
	userCtrl := controllers.NewUserController(db)
	processCtrl := controllers.NewProcessController(db, catalog)
	ncmCtrl := controllers.NewNcmController(catalog)
	productCtrl := controllers.NewProductController(catalog)
	declCtrl := controllers.NewDeclarationController(db, catalog)
	freightCtrl := controllers.NewFreightController()

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Rate limiter mais rígido para login/register
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/api")
	auth.Use(middlewares.AuthMiddleware())

	auth.GET("/profile", userCtrl.GetProfile)
	auth.GET("/users", userCtrl.GetAllUsers)
	auth.POST("/logout", userCtrl.Logout)

	// PROCESSOS (follow-up)
	auth.GET("/processes", processCtrl.GetAllProcesses)
	auth.GET("/processes/stats", processCtrl.GetStats)
	auth.GET("/processes/statuses", processCtrl.GetStatusValues)
	auth.GET("/processes/reference/:reference", processCtrl.GetProcessByReference)
	auth.GET("/processes/:process_id", processCtrl.GetProcessByID)
	auth.GET("/processes/:process_id/history", processCtrl.GetHistory)
	auth.POST("/processes/preview", processCtrl.PreviewCompute)

	// Mutações exigem perfil comex (admin sempre passa)
	comex := auth.Group("/")
	comex.Use(middlewares.RequireRoles("comex"))
	{
		comex.POST("/processes", processCtrl.CreateProcess)
		comex.PUT("/processes/:process_id", processCtrl.UpdateProcess)
		comex.PATCH("/processes/:process_id/status", processCtrl.SetStatus)
		comex.PATCH("/processes/:process_id/archive", processCtrl.SetArchived)
		comex.DELETE("/processes/:process_id", processCtrl.DeleteProcess)

		// DI (declaração de importação)
		comex.POST("/declarations/upload", declCtrl.UploadDeclaration)
	}

	auth.GET("/declarations", declCtrl.GetAllDeclarations)
	auth.GET("/declarations/:declaration_id", declCtrl.GetDeclarationByID)

	// NCM (cadastro de alíquotas) — manutenção pelo fiscal
	auth.GET("/ncm", ncmCtrl.GetAllRates)
	auth.GET("/ncm/:code", ncmCtrl.GetRateByCode)
	fiscal := auth.Group("/")
	fiscal.Use(middlewares.RequireRoles("fiscal"))
	{
		fiscal.POST("/ncm", ncmCtrl.CreateRate)
		fiscal.PATCH("/ncm/:rate_id", ncmCtrl.UpdateRate)
		fiscal.DELETE("/ncm/:rate_id", ncmCtrl.DeleteRate)
	}

	// PRODUTOS (catálogo)
	auth.GET("/products", productCtrl.GetAllProducts)
	auth.POST("/products", productCtrl.CreateProduct)
	auth.PATCH("/products/:product_id", productCtrl.UpdateProduct)
	auth.DELETE("/products/:product_id", productCtrl.DeleteProduct)

	// CALCULADORA DE FRETE
	auth.POST("/freight/calculate", freightCtrl.Calculate)

	// WebSocket endpoint com autenticação via query param
	wsGroup := r.Group("/ws")
	wsGroup.Use(middlewares.WebSocketAuthMiddleware())
	{
		wsGroup.GET("/follow-up", controllers.NotifyHandler)
	}

	return r
}
