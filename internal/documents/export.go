package documents

import (
	"fmt"
	"io"
	"time"

	"innkeeper/internal/pkg/errs"
	"innkeeper/internal/usecase/queries"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Reservations"

// ReservationExporter writes the back-office reservation spreadsheet.
type ReservationExporter struct {
	currency string
}

func NewReservationExporter(currency string) *ReservationExporter {
	return &ReservationExporter{currency: currency}
}

func (e *ReservationExporter) WriteXLSX(w io.Writer, from, to time.Time, views []*queries.ReservationView) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(exportSheet)
	if err != nil {
		return errs.Wrap(err, "failed to create export sheet")
	}
	f.SetActiveSheet(index)

	_ = f.SetCellValue(exportSheet, "A1", fmt.Sprintf("Reservations %s - %s",
		from.Format("2006-01-02"), to.Format("2006-01-02")))
	_ = f.MergeCell(exportSheet, "A1", "J1")

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	_ = f.SetCellStyle(exportSheet, "A1", "A1", titleStyle)

	headers := []string{
		"Reference", "Room", "Status", "Arrival", "Departure",
		"Nights", "Total", "Guest", "Email", "Phone",
	}
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		_ = f.SetCellValue(exportSheet, cell, header)
		_ = f.SetCellStyle(exportSheet, cell, cell, headerStyle)
	}

	for i, v := range views {
		row := i + 3
		_ = f.SetCellValue(exportSheet, fmt.Sprintf("A%d", row), v.Reference)
		_ = f.SetCellValue(exportSheet, fmt.Sprintf("B%d", row), v.RoomNumber)
		_ = f.SetCellValue(exportSheet, fmt.Sprintf("C%d", row), v.Status)
		_ = f.SetCellValue(exportSheet, fmt.Sprintf("D%d", row), v.Arrival.Format("2006-01-02"))
		_ = f.SetCellValue(exportSheet, fmt.Sprintf("E%d", row), v.Departure.Format("2006-01-02"))
		_ = f.SetCellValue(exportSheet, fmt.Sprintf("F%d", row), v.Nights)
		_ = f.SetCellValue(exportSheet, fmt.Sprintf("G%d", row), FormatMoney(v.TotalCents, e.currency))
		_ = f.SetCellValue(exportSheet, fmt.Sprintf("H%d", row), v.GuestName)
		_ = f.SetCellValue(exportSheet, fmt.Sprintf("I%d", row), v.GuestEmail)
		_ = f.SetCellValue(exportSheet, fmt.Sprintf("J%d", row), v.GuestPhone)
	}

	_ = f.SetColWidth(exportSheet, "A", "A", 14)
	_ = f.SetColWidth(exportSheet, "B", "C", 12)
	_ = f.SetColWidth(exportSheet, "D", "E", 12)
	_ = f.SetColWidth(exportSheet, "F", "F", 8)
	_ = f.SetColWidth(exportSheet, "G", "G", 14)
	_ = f.SetColWidth(exportSheet, "H", "J", 22)

	_ = f.DeleteSheet("Sheet1")

	if err := f.Write(w); err != nil {
		return errs.Wrap(err, "failed to write export file")
	}
	return nil
}
