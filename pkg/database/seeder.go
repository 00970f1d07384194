package database

import (
	"log"

	"payroll-app/config"
	"payroll-app/internal/models"
	"payroll-app/internal/utils"

	"gorm.io/gorm"
)

// SeedAdmin creates the root admin account from ADMIN_EMAIL/ADMIN_PASSWORD
// when it does not exist yet. The root admin is exempt from deletion and
// role changes, so this account is always available.
func SeedAdmin() {
	email := config.AppConfig.Defaults.AdminEmail
	password := config.AppConfig.Defaults.AdminPassword
	if password == "" {
		password = "changeme"
		log.Println("Warning: ADMIN_PASSWORD not set, seeding root admin with default password")
	}

	var admin models.Employee
	err := DB.Where("email = ?", email).First(&admin).Error
	if err == nil {
		return
	}
	if err != gorm.ErrRecordNotFound {
		log.Printf("Failed to look up root admin: %v", err)
		return
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		log.Printf("Failed to hash root admin password: %v", err)
		return
	}

	admin = models.Employee{
		Email:        email,
		PasswordHash: hashedPassword,
		FirstName:    "Root",
		LastName:     "Admin",
		Role:         models.RoleAdmin,
	}
	if err := DB.Create(&admin).Error; err != nil {
		log.Printf("Failed to seed root admin: %v", err)
	} else {
		log.Println("Root admin seeded successfully.")
	}
}
