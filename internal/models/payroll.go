package models

import (
	"time"
)

type PayrollRecord struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	EmployeeID        uint      `gorm:"not null;index" json:"employeeId"`
	Employee          Employee  `gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE" json:"employee"`
	BaseSalary        float64   `gorm:"type:decimal(10,2);not null" json:"baseSalary"`
	DistanceAllowance float64   `gorm:"type:decimal(10,2);default:0.00" json:"distanceAllowance"`
	FuelAllowance     float64   `gorm:"type:decimal(10,2);default:0.00" json:"fuelAllowance"`
	MealAllowance     float64   `gorm:"type:decimal(10,2);default:0.00" json:"mealAllowance"`
	OtherAllowance    float64   `gorm:"type:decimal(10,2);default:0.00" json:"otherAllowance"`
	Deductions        float64   `gorm:"type:decimal(10,2);default:0.00" json:"deductions"`
	NetSalary         float64   `gorm:"type:decimal(10,2);not null" json:"netSalary"`
	PayPeriod         time.Time `gorm:"type:date;not null;index" json:"payPeriod"`
	TripType          string    `gorm:"size:50" json:"tripType"`
	TripDescription   string    `gorm:"type:text" json:"tripDescription"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func (p *PayrollRecord) TotalAllowances() float64 {
	return p.DistanceAllowance + p.FuelAllowance + p.MealAllowance + p.OtherAllowance
}

// ComputeNet derives the net salary from the submitted components. It is
// called on every create and update; a client-supplied net is never stored.
func (p *PayrollRecord) ComputeNet() {
	p.NetSalary = p.BaseSalary + p.TotalAllowances() - p.Deductions
}
