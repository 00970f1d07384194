package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"payroll-app/config"
	"payroll-app/internal/models"
	"payroll-app/internal/utils"
	"payroll-app/pkg/database"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const rootAdminEmail = "root@haulpay.local"

func setupTest(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	config.AppConfig = &config.Config{
		Server: config.ServerConfig{
			JWTSecret:          "test-secret",
			JWTExpirationHours: 1,
		},
		Defaults: config.DefaultsConfig{
			AdminEmail: rootAdminEmail,
		},
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.Employee{}, &models.PayrollRecord{}, &models.LoginHistory{}); err != nil {
		t.Fatalf("migration failed: %v", err)
	}
	database.DB = db
}

// asUser injects the identity the auth middleware would have decoded from a
// valid token; the middleware itself is covered in its own package.
func asUser(id uint, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", id)
		c.Set("role", role)
		c.Next()
	}
}

func createEmployee(t *testing.T, email, password, role string) models.Employee {
	t.Helper()
	hash, err := utils.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	emp := models.Employee{
		Email:        email,
		PasswordHash: hash,
		FirstName:    "Test",
		LastName:     "User",
		Role:         role,
	}
	if err := database.DB.Create(&emp).Error; err != nil {
		t.Fatalf("failed to create employee: %v", err)
	}
	return emp
}

func jsonRequest(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			panic(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func adminRouter(callerID uint) *gin.Engine {
	r := gin.New()
	adminHandler := &AdminHandler{}
	grp := r.Group("/api/admin")
	grp.Use(asUser(callerID, models.RoleAdmin))
	{
		grp.PUT("/employees/:id", adminHandler.UpdateEmployee)
		grp.PUT("/employees/:id/role", adminHandler.UpdateEmployeeRole)
		grp.DELETE("/employees/:id", adminHandler.DeleteEmployee)
	}
	return r
}

func employeeCount(t *testing.T) int64 {
	t.Helper()
	var count int64
	database.DB.Model(&models.Employee{}).Count(&count)
	return count
}

func TestLogin_UniformFailureMessage(t *testing.T) {
	setupTest(t)
	createEmployee(t, "driver@example.com", "right-password", models.RoleEmployee)

	r := gin.New()
	authHandler := &AuthHandler{}
	r.POST("/api/login", authHandler.Login)

	unknown := jsonRequest(r, http.MethodPost, "/api/login", gin.H{
		"email":    "nobody@example.com",
		"password": "whatever-pass",
	})
	wrongPassword := jsonRequest(r, http.MethodPost, "/api/login", gin.H{
		"email":    "driver@example.com",
		"password": "wrong-password",
	})

	if unknown.Code != http.StatusBadRequest {
		t.Errorf("unknown email: expected 400, got %d", unknown.Code)
	}
	if wrongPassword.Code != http.StatusBadRequest {
		t.Errorf("wrong password: expected 400, got %d", wrongPassword.Code)
	}

	// Identical body either way, so callers cannot tell which part failed
	if unknown.Body.String() != wrongPassword.Body.String() {
		t.Errorf("failure bodies differ: %q vs %q", unknown.Body.String(), wrongPassword.Body.String())
	}
	if !bytes.Contains(unknown.Body.Bytes(), []byte("Invalid credentials")) {
		t.Errorf("unexpected failure body: %s", unknown.Body.String())
	}
}

func TestDeleteEmployee_Protections(t *testing.T) {
	setupTest(t)
	admin := createEmployee(t, "admin@example.com", "pw123456", models.RoleAdmin)
	root := createEmployee(t, rootAdminEmail, "pw123456", models.RoleAdmin)
	worker := createEmployee(t, "driver@example.com", "pw123456", models.RoleEmployee)

	r := adminRouter(admin.ID)
	before := employeeCount(t)

	// Admin deleting their own account
	w := jsonRequest(r, http.MethodDelete, fmt.Sprintf("/api/admin/employees/%d", admin.ID), nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("self delete: expected 400, got %d", w.Code)
	}

	// Root admin is exempt from deletion
	w = jsonRequest(r, http.MethodDelete, fmt.Sprintf("/api/admin/employees/%d", root.ID), nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("root admin delete: expected 400, got %d", w.Code)
	}

	if got := employeeCount(t); got != before {
		t.Errorf("rejected deletes changed state: %d employees, want %d", got, before)
	}

	// Unknown id
	w = jsonRequest(r, http.MethodDelete, "/api/admin/employees/9999", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown id: expected 404, got %d", w.Code)
	}

	// An ordinary employee can be deleted
	w = jsonRequest(r, http.MethodDelete, fmt.Sprintf("/api/admin/employees/%d", worker.ID), nil)
	if w.Code != http.StatusOK {
		t.Errorf("worker delete: expected 200, got %d", w.Code)
	}
	if got := employeeCount(t); got != before-1 {
		t.Errorf("expected %d employees after delete, got %d", before-1, got)
	}
}

func TestUpdateEmployeeRole_Protections(t *testing.T) {
	setupTest(t)
	admin := createEmployee(t, "admin@example.com", "pw123456", models.RoleAdmin)
	root := createEmployee(t, rootAdminEmail, "pw123456", models.RoleAdmin)
	worker := createEmployee(t, "driver@example.com", "pw123456", models.RoleEmployee)

	r := adminRouter(admin.ID)
	promote := gin.H{"role": models.RoleAdmin}

	// Admin changing their own role
	w := jsonRequest(r, http.MethodPut, fmt.Sprintf("/api/admin/employees/%d/role", admin.ID), gin.H{"role": models.RoleEmployee})
	if w.Code != http.StatusBadRequest {
		t.Errorf("own role change: expected 400, got %d", w.Code)
	}
	var check models.Employee
	database.DB.First(&check, admin.ID)
	if check.Role != models.RoleAdmin {
		t.Errorf("own role changed to %q despite rejection", check.Role)
	}

	// Root admin role is fixed
	w = jsonRequest(r, http.MethodPut, fmt.Sprintf("/api/admin/employees/%d/role", root.ID), gin.H{"role": models.RoleEmployee})
	if w.Code != http.StatusBadRequest {
		t.Errorf("root admin role change: expected 400, got %d", w.Code)
	}
	database.DB.First(&check, root.ID)
	if check.Role != models.RoleAdmin {
		t.Errorf("root admin role changed to %q despite rejection", check.Role)
	}

	// Role value outside admin|employee
	w = jsonRequest(r, http.MethodPut, fmt.Sprintf("/api/admin/employees/%d/role", worker.ID), gin.H{"role": "superuser"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("invalid role value: expected 400, got %d", w.Code)
	}

	// Ordinary promotion succeeds
	w = jsonRequest(r, http.MethodPut, fmt.Sprintf("/api/admin/employees/%d/role", worker.ID), promote)
	if w.Code != http.StatusOK {
		t.Errorf("worker promotion: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	database.DB.First(&check, worker.ID)
	if check.Role != models.RoleAdmin {
		t.Errorf("expected worker role admin, got %q", check.Role)
	}
}

func TestUpdateEmployee_RootAdminExempt(t *testing.T) {
	setupTest(t)
	admin := createEmployee(t, "admin@example.com", "pw123456", models.RoleAdmin)
	root := createEmployee(t, rootAdminEmail, "pw123456", models.RoleAdmin)

	r := adminRouter(admin.ID)

	w := jsonRequest(r, http.MethodPut, fmt.Sprintf("/api/admin/employees/%d", root.ID), gin.H{
		"email":     "renamed@example.com",
		"firstName": "New",
		"lastName":  "Name",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("root admin edit: expected 400, got %d", w.Code)
	}

	var check models.Employee
	database.DB.First(&check, root.ID)
	if check.Email != rootAdminEmail {
		t.Errorf("root admin email changed to %q despite rejection", check.Email)
	}
}

func TestMyPayslip_UnknownEmployee(t *testing.T) {
	setupTest(t)

	r := gin.New()
	employeeHandler := &EmployeeHandler{}
	r.GET("/api/employee/payslip", asUser(999, models.RoleEmployee), employeeHandler.MyPayslip)

	w := jsonRequest(r, http.MethodGet, "/api/employee/payslip?week=2024-W01", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("deleted account: expected 404, got %d: %s", w.Code, w.Body.String())
	}
}
