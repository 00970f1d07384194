package handler

import (
	"net/http"

	"payroll-app/internal/models"
	"payroll-app/internal/report"
	"payroll-app/pkg/database"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// EmployeeHandler serves the employee-facing views. Every query is keyed by
// the id decoded from the caller's token; the routes take no employee
// parameter, so reading another employee's data is not expressible.
type EmployeeHandler struct{}

func (h *EmployeeHandler) MyPayroll(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var records []models.PayrollRecord
	if err := database.DB.Where("employee_id = ?", userID).Order("pay_period desc").Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payroll records"})
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h *EmployeeHandler) MyPayrollSummary(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var records []models.PayrollRecord
	if err := database.DB.Where("employee_id = ?", userID).Order("pay_period desc").Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payroll records"})
		return
	}
	c.JSON(http.StatusOK, report.GroupByWeek(records))
}

func (h *EmployeeHandler) MyPayslip(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	// The account may have been deleted after the token was minted.
	var employee models.Employee
	if err := database.DB.First(&employee, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch employee"})
		}
		return
	}

	servePayslip(c, employee)
}
