package main

import (
	"log"
	"net/http"
	"time"

	"payroll-app/config"
	"payroll-app/internal/handler"
	"payroll-app/internal/middleware"
	"payroll-app/internal/models"
	"payroll-app/pkg/database"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// 1. Load Configuration
	config.LoadConfig()

	// 2. Connect to Database
	database.Connect()

	// 3. Auto-Migrate Models
	log.Println("Running migrations...")
	err := database.DB.AutoMigrate(
		&models.Employee{},
		&models.PayrollRecord{},
		&models.LoginHistory{},
	)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Migrations completed successfully.")

	// 3a. Seed Root Admin
	database.SeedAdmin()

	// 4. Initialize Router
	if config.AppConfig.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Panic recovered: %v", recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}))

	// CORS Configuration
	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if config.AppConfig.Server.FrontendURL != "" {
		corsCfg.AllowOrigins = []string{config.AppConfig.Server.FrontendURL}
	} else {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	}
	r.Use(cors.New(corsCfg))

	// 5. Setup Routes
	publicHandler := &handler.PublicHandler{}
	authHandler := &handler.AuthHandler{}
	r.GET("/", publicHandler.Index)
	r.GET("/api/health", publicHandler.HealthCheck)
	r.POST("/api/login", authHandler.Login)

	userRoutes := r.Group("/api/user")
	userRoutes.Use(middleware.AuthMiddleware())
	{
		userRoutes.PUT("/password", authHandler.ChangePassword)
	}

	adminHandler := &handler.AdminHandler{}
	payrollHandler := &handler.PayrollHandler{}
	adminRoutes := r.Group("/api/admin")
	adminRoutes.Use(middleware.AuthMiddleware(models.RoleAdmin))
	{
		adminRoutes.GET("/employees", adminHandler.ListEmployees)
		adminRoutes.POST("/employees", adminHandler.CreateEmployee)
		adminRoutes.PUT("/employees/:id", adminHandler.UpdateEmployee)
		adminRoutes.PUT("/employees/:id/role", adminHandler.UpdateEmployeeRole)
		adminRoutes.DELETE("/employees/:id", adminHandler.DeleteEmployee)
		adminRoutes.GET("/login-history", adminHandler.GetLoginHistory)

		adminRoutes.GET("/payroll", payrollHandler.ListPayroll)
		adminRoutes.POST("/payroll", payrollHandler.CreatePayroll)
		adminRoutes.PUT("/payroll/:id", payrollHandler.UpdatePayroll)
		adminRoutes.DELETE("/payroll/:id", payrollHandler.DeletePayroll)
		adminRoutes.GET("/payroll/summary", payrollHandler.PayrollSummary)
		adminRoutes.GET("/payroll/payslip", payrollHandler.Payslip)
	}

	employeeHandler := &handler.EmployeeHandler{}
	employeeRoutes := r.Group("/api/employee")
	employeeRoutes.Use(middleware.AuthMiddleware())
	{
		employeeRoutes.GET("/payroll", employeeHandler.MyPayroll)
		employeeRoutes.GET("/payroll/summary", employeeHandler.MyPayrollSummary)
		employeeRoutes.GET("/payslip", employeeHandler.MyPayslip)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Endpoint not found"})
	})

	// 6. Start Server
	port := config.AppConfig.Server.Port
	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
