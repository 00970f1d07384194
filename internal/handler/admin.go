package handler

import (
	"net/http"
	"strconv"

	"payroll-app/config"
	"payroll-app/internal/models"
	"payroll-app/internal/utils"
	"payroll-app/pkg/database"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AdminHandler struct{}

type CreateEmployeeRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Role      string `json:"role"`
}

func (h *AdminHandler) CreateEmployee(c *gin.Context) {
	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email, password, first name and last name are required"})
		return
	}

	if req.Role == "" {
		req.Role = models.RoleEmployee
	}
	if !models.ValidRole(req.Role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Valid role required (admin or employee)"})
		return
	}

	var count int64
	database.DB.Model(&models.Employee{}).Where("email = ?", req.Email).Count(&count)
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Employee with this email already exists"})
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	employee := models.Employee{
		Email:        req.Email,
		PasswordHash: hashedPassword,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         req.Role,
	}
	if err := database.DB.Create(&employee).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create employee"})
		return
	}

	c.JSON(http.StatusCreated, employee)
}

func (h *AdminHandler) ListEmployees(c *gin.Context) {
	var employees []models.Employee
	if err := database.DB.Order("created_at desc").Find(&employees).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch employees"})
		return
	}
	c.JSON(http.StatusOK, employees)
}

func (h *AdminHandler) UpdateEmployee(c *gin.Context) {
	employee, ok := h.findEmployee(c)
	if !ok {
		return
	}
	if isRootAdmin(employee) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Root admin account cannot be modified"})
		return
	}

	var req struct {
		Email     string `json:"email" binding:"required,email"`
		FirstName string `json:"firstName" binding:"required"`
		LastName  string `json:"lastName" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email, first name and last name are required"})
		return
	}

	employee.Email = req.Email
	employee.FirstName = req.FirstName
	employee.LastName = req.LastName
	if err := database.DB.Save(&employee).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update employee"})
		return
	}
	c.JSON(http.StatusOK, employee)
}

func (h *AdminHandler) UpdateEmployeeRole(c *gin.Context) {
	employee, ok := h.findEmployee(c)
	if !ok {
		return
	}

	var req struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || !models.ValidRole(req.Role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Valid role required (admin or employee)"})
		return
	}

	if employee.ID == c.MustGet("userID").(uint) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot change your own role"})
		return
	}
	if isRootAdmin(employee) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Root admin role cannot be changed"})
		return
	}

	employee.Role = req.Role
	if err := database.DB.Save(&employee).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update role"})
		return
	}
	c.JSON(http.StatusOK, employee)
}

func (h *AdminHandler) DeleteEmployee(c *gin.Context) {
	employee, ok := h.findEmployee(c)
	if !ok {
		return
	}

	if employee.ID == c.MustGet("userID").(uint) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete your own account"})
		return
	}
	if isRootAdmin(employee) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Root admin account cannot be deleted"})
		return
	}

	if err := database.DB.Delete(&employee).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete employee"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Employee deleted successfully"})
}

func (h *AdminHandler) GetLoginHistory(c *gin.Context) {
	var history []models.LoginHistory
	if err := database.DB.Preload("Employee").Order("login_time desc").Limit(100).Find(&history).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch login history"})
		return
	}
	c.JSON(http.StatusOK, history)
}

// findEmployee loads the employee addressed by the :id param, replying
// 400/404 itself when the id is malformed or unknown.
func (h *AdminHandler) findEmployee(c *gin.Context) (models.Employee, bool) {
	var employee models.Employee

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid employee id"})
		return employee, false
	}

	if err := database.DB.First(&employee, uint(id)).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch employee"})
		}
		return employee, false
	}
	return employee, true
}

// The root admin is matched by the configured email, not by id, so the
// protection survives re-seeding into a fresh database.
func isRootAdmin(e models.Employee) bool {
	return e.Email == config.AppConfig.Defaults.AdminEmail
}
