package models

import (
	"time"
)

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

type Employee struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"size:150;unique;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	FirstName    string    `gorm:"size:100;not null" json:"firstName"`
	LastName     string    `gorm:"size:100;not null" json:"lastName"`
	Role         string    `gorm:"size:20;not null;default:'employee'" json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// FullName is used for payroll listings and payslip headers.
func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// ValidRole reports whether r is one of the two accepted role values.
func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleEmployee
}

type LoginHistory struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	EmployeeID uint      `json:"employeeId"`
	Employee   Employee  `gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE" json:"employee"`
	LoginTime  time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"loginTime"`
	IPAddress  string    `gorm:"size:45" json:"ipAddress"`
}
