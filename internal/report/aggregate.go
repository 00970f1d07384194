// Package report groups payroll records by employee and by ISO calendar
// week and computes running totals. All functions are pure: the same input
// snapshot always produces the same grouping and totals.
package report

import (
	"sort"
	"time"

	"payroll-app/internal/models"
)

type Totals struct {
	Earnings   float64 `json:"earnings"`
	Deductions float64 `json:"deductions"`
	Net        float64 `json:"net"`
}

type WeeklySummary struct {
	Week      string                 `json:"week"`
	WeekStart time.Time              `json:"weekStart"`
	WeekEnd   time.Time              `json:"weekEnd"`
	Records   []models.PayrollRecord `json:"records"`
	Totals    Totals                 `json:"totals"`
}

type EmployeeSummary struct {
	EmployeeID uint            `json:"employeeId"`
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	Weeks      []WeeklySummary `json:"weeks"`
	Totals     Totals          `json:"totals"`
}

func (t *Totals) add(rec models.PayrollRecord) {
	t.Earnings += rec.BaseSalary + rec.TotalAllowances()
	t.Deductions += rec.Deductions
	t.Net += rec.NetSalary
}

// GroupByWeek partitions records into ISO-week buckets, newest week first.
func GroupByWeek(records []models.PayrollRecord) []WeeklySummary {
	buckets := make(map[string]*WeeklySummary)
	for _, rec := range records {
		key := WeekKey(rec.PayPeriod)
		b, ok := buckets[key]
		if !ok {
			start, end := WeekRange(rec.PayPeriod)
			b = &WeeklySummary{Week: key, WeekStart: start, WeekEnd: end}
			buckets[key] = b
		}
		b.Records = append(b.Records, rec)
		b.Totals.add(rec)
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))

	out := make([]WeeklySummary, 0, len(keys))
	for _, k := range keys {
		out = append(out, *buckets[k])
	}
	return out
}

// GroupByEmployee buckets records per employee, in the order each employee
// is first encountered in the input, with weekly sub-buckets and grand
// totals. The grand totals equal the sum of the per-week totals.
func GroupByEmployee(records []models.PayrollRecord) []EmployeeSummary {
	grouped := make(map[uint][]models.PayrollRecord)
	var order []uint
	for _, rec := range records {
		if _, ok := grouped[rec.EmployeeID]; !ok {
			order = append(order, rec.EmployeeID)
		}
		grouped[rec.EmployeeID] = append(grouped[rec.EmployeeID], rec)
	}

	out := make([]EmployeeSummary, 0, len(order))
	for _, id := range order {
		recs := grouped[id]
		summary := EmployeeSummary{
			EmployeeID: id,
			Name:       recs[0].Employee.FullName(),
			Email:      recs[0].Employee.Email,
			Weeks:      GroupByWeek(recs),
		}
		for _, w := range summary.Weeks {
			summary.Totals.Earnings += w.Totals.Earnings
			summary.Totals.Deductions += w.Totals.Deductions
			summary.Totals.Net += w.Totals.Net
		}
		out = append(out, summary)
	}
	return out
}

// FilterWeek returns the records whose pay period falls in the given week.
func FilterWeek(records []models.PayrollRecord, weekKey string) []models.PayrollRecord {
	var out []models.PayrollRecord
	for _, rec := range records {
		if WeekKey(rec.PayPeriod) == weekKey {
			out = append(out, rec)
		}
	}
	return out
}
