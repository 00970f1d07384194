package handler

import (
	"net/http"
	"time"

	"payroll-app/pkg/database"

	"github.com/gin-gonic/gin"
)

type PublicHandler struct{}

func (h *PublicHandler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Haulpay Backend API",
		"status":  "running",
		"endpoints": gin.H{
			"login": "POST /api/login",
			"admin": gin.H{
				"employees": "GET /api/admin/employees",
				"payroll":   "GET /api/admin/payroll",
			},
			"employee": gin.H{
				"payroll": "GET /api/employee/payroll",
			},
		},
	})
}

func (h *PublicHandler) HealthCheck(c *gin.Context) {
	sqlDB, err := database.DB.DB()
	if err == nil {
		err = sqlDB.Ping()
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":   "unhealthy",
			"database": "disconnected",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"database":  "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
