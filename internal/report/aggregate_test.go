package report

import (
	"reflect"
	"testing"
	"time"

	"payroll-app/internal/models"
)

func record(employeeID uint, day time.Time, base, deductions float64) models.PayrollRecord {
	rec := models.PayrollRecord{
		EmployeeID: employeeID,
		Employee: models.Employee{
			ID:        employeeID,
			FirstName: "Test",
			LastName:  "Driver",
			Email:     "driver@example.com",
		},
		BaseSalary: base,
		Deductions: deductions,
		PayPeriod:  day,
	}
	rec.ComputeNet()
	return rec
}

func TestGroupByWeek_SameWeekBucket(t *testing.T) {
	// 2024-01-01 (Mon) and 2024-01-07 (Sun) share a week; 2024-01-08 (Mon)
	// starts the next one.
	records := []models.PayrollRecord{
		record(1, date(2024, time.January, 1), 1000.00, 0),
		record(1, date(2024, time.January, 7), 500.50, 0),
		record(1, date(2024, time.January, 8), 200.00, 0),
	}

	weeks := GroupByWeek(records)
	if len(weeks) != 2 {
		t.Fatalf("expected 2 week buckets, got %d", len(weeks))
	}

	// Newest week first
	if weeks[0].Week != "2024-W02" || weeks[1].Week != "2024-W01" {
		t.Fatalf("unexpected week order: %q, %q", weeks[0].Week, weeks[1].Week)
	}

	w1 := weeks[1]
	if len(w1.Records) != 2 {
		t.Errorf("expected 2 records in 2024-W01, got %d", len(w1.Records))
	}
	if w1.Totals.Net != 1500.50 {
		t.Errorf("expected week net 1500.50, got %v", w1.Totals.Net)
	}
	if !w1.WeekStart.Equal(date(2024, time.January, 1)) || !w1.WeekEnd.Equal(date(2024, time.January, 7)) {
		t.Errorf("unexpected week range: %s - %s",
			w1.WeekStart.Format("2006-01-02"), w1.WeekEnd.Format("2006-01-02"))
	}
}

func TestGroupByWeek_Totals(t *testing.T) {
	rec := models.PayrollRecord{
		EmployeeID:        1,
		BaseSalary:        1000.00,
		DistanceAllowance: 10.25,
		FuelAllowance:     20.50,
		MealAllowance:     15.75,
		OtherAllowance:    3.50,
		Deductions:        50.00,
		PayPeriod:         date(2024, time.February, 5),
	}
	rec.ComputeNet()

	weeks := GroupByWeek([]models.PayrollRecord{rec})
	if len(weeks) != 1 {
		t.Fatalf("expected 1 week bucket, got %d", len(weeks))
	}
	got := weeks[0].Totals
	if got.Earnings != 1050.00 {
		t.Errorf("expected earnings 1050.00, got %v", got.Earnings)
	}
	if got.Deductions != 50.00 {
		t.Errorf("expected deductions 50.00, got %v", got.Deductions)
	}
	if got.Net != 1000.00 {
		t.Errorf("expected net 1000.00, got %v", got.Net)
	}
}

func TestGroupByEmployee_OrderAndGrandTotals(t *testing.T) {
	records := []models.PayrollRecord{
		record(7, date(2024, time.January, 2), 800.00, 0),
		record(3, date(2024, time.January, 3), 1000.00, 0),
		record(7, date(2024, time.January, 10), 500.50, 0),
	}

	employees := GroupByEmployee(records)
	if len(employees) != 2 {
		t.Fatalf("expected 2 employee buckets, got %d", len(employees))
	}

	// First-encountered input order, not sorted by id
	if employees[0].EmployeeID != 7 || employees[1].EmployeeID != 3 {
		t.Fatalf("unexpected employee order: %d, %d", employees[0].EmployeeID, employees[1].EmployeeID)
	}

	emp := employees[0]
	if len(emp.Weeks) != 2 {
		t.Fatalf("expected 2 weeks for employee 7, got %d", len(emp.Weeks))
	}

	// Grand total equals the sum of the per-week totals
	var weekNetSum float64
	for _, w := range emp.Weeks {
		weekNetSum += w.Totals.Net
	}
	if emp.Totals.Net != weekNetSum {
		t.Errorf("grand total %v != sum of week totals %v", emp.Totals.Net, weekNetSum)
	}
	if emp.Totals.Net != 1300.50 {
		t.Errorf("expected grand total 1300.50, got %v", emp.Totals.Net)
	}
}

func TestGroupByEmployee_Idempotent(t *testing.T) {
	records := []models.PayrollRecord{
		record(1, date(2024, time.January, 1), 1000.00, 100.00),
		record(2, date(2024, time.January, 5), 750.25, 0),
		record(1, date(2024, time.January, 8), 500.50, 25.50),
	}

	first := GroupByEmployee(records)
	second := GroupByEmployee(records)
	if !reflect.DeepEqual(first, second) {
		t.Error("repeated aggregation over the same snapshot produced different output")
	}
}

func TestGroupByWeek_Empty(t *testing.T) {
	if weeks := GroupByWeek(nil); len(weeks) != 0 {
		t.Errorf("expected no buckets for empty input, got %d", len(weeks))
	}
}

func TestFilterWeek(t *testing.T) {
	records := []models.PayrollRecord{
		record(1, date(2024, time.January, 1), 1000.00, 0),
		record(1, date(2024, time.January, 8), 500.00, 0),
	}

	got := FilterWeek(records, "2024-W01")
	if len(got) != 1 || !got[0].PayPeriod.Equal(date(2024, time.January, 1)) {
		t.Errorf("FilterWeek returned wrong records: %+v", got)
	}
	if got := FilterWeek(records, "2024-W09"); len(got) != 0 {
		t.Errorf("expected no records for empty week, got %d", len(got))
	}
}
