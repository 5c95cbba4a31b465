package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"mobilewash/internal/format"
	"mobilewash/internal/models"

	"github.com/xuri/excelize/v2"
)

var headers = []string{
	"ID", "Customer", "Email", "Phone", "Package", "Price",
	"Date", "Time", "Address", "Status", "Notes", "Created",
}

// Bookings writes the booking list to an Excel file under dir and returns
// the file path. The directory is created when missing.
func Bookings(dir string, bookings []*models.Booking) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("error creating export directory: %v", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Bookings"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return "", fmt.Errorf("error creating sheet: %v", err)
	}
	f.SetActiveSheet(index)

	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = f.SetCellValue(sheetName, cell, header)
	}

	for row, b := range bookings {
		values := []interface{}{
			b.ID,
			b.CustomerName,
			b.CustomerEmail,
			b.CustomerPhone,
			b.ServicePackage.Name,
			format.Price(b.ServicePackage.Price),
			b.Date.Format("2006-01-02"),
			format.Slot(b.TimeSlot),
			b.Address,
			string(b.Status),
			b.Notes,
			b.CreatedAt.Format(time.RFC3339),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			_ = f.SetCellValue(sheetName, cell, v)
		}
	}

	_ = f.SetColWidth(sheetName, "A", "A", 38)
	_ = f.SetColWidth(sheetName, "B", "L", 20)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	lastHeaderCell, _ := excelize.CoordinatesToCellName(len(headers), 1)
	_ = f.SetCellStyle(sheetName, "A1", lastHeaderCell, headerStyle)

	_ = f.DeleteSheet("Sheet1")

	fileName := fmt.Sprintf("bookings_%s.xlsx", time.Now().Format("2006-01-02_150405"))
	filePath := filepath.Join(dir, fileName)

	if err := f.SaveAs(filePath); err != nil {
		return "", fmt.Errorf("error saving file: %v", err)
	}

	return filePath, nil
}
