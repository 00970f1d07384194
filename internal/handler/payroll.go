package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"payroll-app/config"
	"payroll-app/internal/models"
	"payroll-app/internal/payslip"
	"payroll-app/internal/report"
	"payroll-app/pkg/database"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PayrollHandler struct{}

type PayrollRequest struct {
	EmployeeID        uint    `json:"employeeId" binding:"required"`
	BaseSalary        float64 `json:"baseSalary" binding:"required,gt=0"`
	PayPeriod         string  `json:"payPeriod" binding:"required"`
	DistanceAllowance float64 `json:"distanceAllowance" binding:"gte=0"`
	FuelAllowance     float64 `json:"fuelAllowance" binding:"gte=0"`
	MealAllowance     float64 `json:"mealAllowance" binding:"gte=0"`
	OtherAllowance    float64 `json:"otherAllowance" binding:"gte=0"`
	Deductions        float64 `json:"deductions" binding:"gte=0"`
	TripType          string  `json:"tripType"`
	TripDescription   string  `json:"tripDescription"`
}

const payPeriodFormat = "2006-01-02"

func (h *PayrollHandler) ListPayroll(c *gin.Context) {
	query := database.DB.Preload("Employee").
		Joins("JOIN employees ON employees.id = payroll_records.employee_id").
		Order("payroll_records.pay_period desc, employees.last_name")

	if employeeID := c.Query("employeeId"); employeeID != "" {
		query = query.Where("payroll_records.employee_id = ?", employeeID)
	}
	if period := c.Query("period"); period != "" {
		if _, err := time.Parse(payPeriodFormat, period); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid period filter (expected YYYY-MM-DD)"})
			return
		}
		query = query.Where("payroll_records.pay_period = ?", period)
	}

	var records []models.PayrollRecord
	if err := query.Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payroll records"})
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h *PayrollHandler) CreatePayroll(c *gin.Context) {
	var req PayrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Employee ID, base salary and pay period are required"})
		return
	}

	payPeriod, err := time.Parse(payPeriodFormat, req.PayPeriod)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pay period date (expected YYYY-MM-DD)"})
		return
	}

	var count int64
	database.DB.Model(&models.Employee{}).Where("id = ?", req.EmployeeID).Count(&count)
	if count == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
		return
	}

	record := models.PayrollRecord{
		EmployeeID:        req.EmployeeID,
		BaseSalary:        req.BaseSalary,
		DistanceAllowance: req.DistanceAllowance,
		FuelAllowance:     req.FuelAllowance,
		MealAllowance:     req.MealAllowance,
		OtherAllowance:    req.OtherAllowance,
		Deductions:        req.Deductions,
		PayPeriod:         payPeriod,
		TripType:          req.TripType,
		TripDescription:   req.TripDescription,
	}
	record.ComputeNet()

	if err := database.DB.Create(&record).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create payroll record"})
		return
	}

	database.DB.Preload("Employee").First(&record, record.ID)
	c.JSON(http.StatusCreated, record)
}

func (h *PayrollHandler) UpdatePayroll(c *gin.Context) {
	record, ok := h.findRecord(c)
	if !ok {
		return
	}

	// The owning employee is fixed at creation; only the amounts and trip
	// metadata are editable.
	var req struct {
		BaseSalary        float64 `json:"baseSalary" binding:"required,gt=0"`
		PayPeriod         string  `json:"payPeriod" binding:"required"`
		DistanceAllowance float64 `json:"distanceAllowance" binding:"gte=0"`
		FuelAllowance     float64 `json:"fuelAllowance" binding:"gte=0"`
		MealAllowance     float64 `json:"mealAllowance" binding:"gte=0"`
		OtherAllowance    float64 `json:"otherAllowance" binding:"gte=0"`
		Deductions        float64 `json:"deductions" binding:"gte=0"`
		TripType          string  `json:"tripType"`
		TripDescription   string  `json:"tripDescription"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Base salary and pay period are required"})
		return
	}

	payPeriod, err := time.Parse(payPeriodFormat, req.PayPeriod)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pay period date (expected YYYY-MM-DD)"})
		return
	}

	record.BaseSalary = req.BaseSalary
	record.DistanceAllowance = req.DistanceAllowance
	record.FuelAllowance = req.FuelAllowance
	record.MealAllowance = req.MealAllowance
	record.OtherAllowance = req.OtherAllowance
	record.Deductions = req.Deductions
	record.PayPeriod = payPeriod
	record.TripType = req.TripType
	record.TripDescription = req.TripDescription
	record.ComputeNet()

	if err := database.DB.Save(&record).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update payroll record"})
		return
	}

	database.DB.Preload("Employee").First(&record, record.ID)
	c.JSON(http.StatusOK, record)
}

func (h *PayrollHandler) DeletePayroll(c *gin.Context) {
	record, ok := h.findRecord(c)
	if !ok {
		return
	}
	if err := database.DB.Delete(&record).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete payroll record"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payroll record deleted successfully"})
}

// PayrollSummary groups all (or one employee's) records by employee and
// ISO week with running totals.
func (h *PayrollHandler) PayrollSummary(c *gin.Context) {
	query := database.DB.Preload("Employee").Order("pay_period desc")
	if employeeID := c.Query("employeeId"); employeeID != "" {
		query = query.Where("employee_id = ?", employeeID)
	}

	var records []models.PayrollRecord
	if err := query.Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payroll records"})
		return
	}
	c.JSON(http.StatusOK, report.GroupByEmployee(records))
}

// Payslip renders one employee's one-week summary as a PDF.
func (h *PayrollHandler) Payslip(c *gin.Context) {
	employeeID, err := strconv.ParseUint(c.Query("employeeId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Valid employeeId query parameter required"})
		return
	}

	var employee models.Employee
	if err := database.DB.First(&employee, uint(employeeID)).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch employee"})
		}
		return
	}

	servePayslip(c, employee)
}

func (h *PayrollHandler) findRecord(c *gin.Context) (models.PayrollRecord, bool) {
	var record models.PayrollRecord

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payroll record id"})
		return record, false
	}

	if err := database.DB.First(&record, uint(id)).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Payroll record not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payroll record"})
		}
		return record, false
	}
	return record, true
}

// servePayslip loads the employee's records for the requested week and
// streams the rendered PDF. Shared by the admin and employee endpoints.
func servePayslip(c *gin.Context, employee models.Employee) {
	week := c.Query("week")
	if !report.ValidWeekKey(week) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Valid week query parameter required (e.g. 2024-W05)"})
		return
	}

	var records []models.PayrollRecord
	if err := database.DB.Where("employee_id = ?", employee.ID).Order("pay_period asc").Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payroll records"})
		return
	}

	weekRecords := report.FilterWeek(records, week)
	if len(weekRecords) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No payroll records for the requested week"})
		return
	}

	summary := report.GroupByWeek(weekRecords)[0]
	data, err := payslip.Render(payslip.Payslip{
		Company: payslip.Company{
			Name:    config.AppConfig.Defaults.CompanyName,
			Address: config.AppConfig.Defaults.CompanyAddress,
			Phone:   config.AppConfig.Defaults.CompanyPhone,
		},
		Employee: employee,
		Week:     summary,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate payslip"})
		return
	}

	filename := fmt.Sprintf("payslip-%d-%s.pdf", employee.ID, week)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}
