package export

import (
	"fmt"
	"io"

	"facultyroom/internal/models"

	"github.com/xuri/excelize/v2"
)

var reportHeaders = []string{
	"Day", "Period", "Student", "Roll Number", "Department",
	"Purpose", "Email", "Status", "Requested At",
}

// WriteWeekReport writes one week's bookings as an .xlsx workbook.
func WriteWeekReport(w io.Writer, week int, bookings []*models.Booking) error {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := fmt.Sprintf("Week %d", week)
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("error creating sheet: %w", err)
	}
	f.SetActiveSheet(index)

	_ = f.SetCellValue(sheetName, "A1", fmt.Sprintf("Faculty room bookings — ISO week %d", week))

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})

	for col, header := range reportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 2)
		_ = f.SetCellValue(sheetName, cell, header)
		_ = f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for i, b := range bookings {
		row := i + 3
		values := []any{
			b.Day, b.Period, b.StudentName, b.RollNumber, b.Department,
			b.Purpose, b.Email, b.Status, b.BookingTime.Format("2006-01-02 15:04"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			_ = f.SetCellValue(sheetName, cell, v)
		}
	}

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	lastCol, _ := excelize.CoordinatesToCellName(len(reportHeaders), 1)
	_ = f.MergeCell(sheetName, "A1", lastCol)
	_ = f.SetCellStyle(sheetName, "A1", "A1", titleStyle)

	_ = f.SetColWidth(sheetName, "A", "I", 18)
	_ = f.DeleteSheet("Sheet1")

	if err := f.Write(w); err != nil {
		return fmt.Errorf("error writing workbook: %w", err)
	}
	return nil
}
