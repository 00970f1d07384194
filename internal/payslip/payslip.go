// Package payslip renders a one-week payroll summary for a single employee
// as a downloadable PDF document.
package payslip

import (
	"bytes"
	"fmt"

	"payroll-app/internal/models"
	"payroll-app/internal/report"

	"github.com/go-pdf/fpdf"
)

type Company struct {
	Name    string
	Address string
	Phone   string
}

type Payslip struct {
	Company  Company
	Employee models.Employee
	Week     report.WeeklySummary
}

const dateFormat = "Jan 02, 2006"

// Render builds the PDF. Currency values are rounded to two decimal places
// here, at display time only; the underlying totals are never rounded.
func Render(p Payslip) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Payslip %s - %s", p.Week.Week, p.Employee.FullName()), false)
	pdf.AddPage()

	// Company header
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 8, companyName(p.Company), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	if p.Company.Address != "" {
		pdf.CellFormat(0, 5, p.Company.Address, "", 1, "C", false, 0, "")
	}
	if p.Company.Phone != "" {
		pdf.CellFormat(0, 5, p.Company.Phone, "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, "PAYSLIP", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	// Employee and period block
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(95, 6, "Employee: "+p.Employee.FullName(), "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 6, "Week: "+p.Week.Week, "", 1, "R", false, 0, "")
	pdf.CellFormat(95, 6, "Email: "+p.Employee.Email, "", 0, "L", false, 0, "")
	period := fmt.Sprintf("%s - %s", p.Week.WeekStart.Format(dateFormat), p.Week.WeekEnd.Format(dateFormat))
	pdf.CellFormat(95, 6, "Period: "+period, "", 1, "R", false, 0, "")
	pdf.Ln(4)

	// Records table
	headers := []string{"Date", "Trip", "Base", "Allowances", "Deductions", "Net"}
	widths := []float64{28, 52, 26, 28, 28, 28}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(235, 235, 235)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, rec := range p.Week.Records {
		trip := rec.TripType
		if trip == "" {
			trip = "-"
		}
		pdf.CellFormat(widths[0], 7, rec.PayPeriod.Format("2006-01-02"), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[1], 7, trip, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 7, money(rec.BaseSalary), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 7, money(rec.TotalAllowances()), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 7, money(rec.Deductions), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[5], 7, money(rec.NetSalary), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	// Totals row
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(widths[0]+widths[1], 7, "Totals", "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[2], 7, "", "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[3], 7, money(p.Week.Totals.Earnings), "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[4], 7, money(p.Week.Totals.Deductions), "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[5], 7, money(p.Week.Totals.Net), "1", 0, "R", false, 0, "")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 8, "Net Pay: "+money(p.Week.Totals.Net), "", 1, "R", false, 0, "")

	pdf.SetY(-20)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(0, 5, "This is a computer-generated document and does not require a signature.", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func companyName(c Company) string {
	if c.Name == "" {
		return "Haulpay"
	}
	return c.Name
}

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}
