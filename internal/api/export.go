package api

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"
)

// handleExport streams the full booking list as an xlsx workbook. A copy is
// kept on disk when an exports path is configured.
func (s *HTTPServer) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	bookings, err := s.svc.ListBookings(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("export: list bookings failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Bookings"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		s.logger.Error().Err(err).Msg("export: create sheet failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	headers := []string{"ID", "Name", "Email", "Phone", "Date", "Time", "Service", "Status", "Created At"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheetName, cell, h)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	lastHeader, _ := excelize.CoordinatesToCellName(len(headers), 1)
	_ = f.SetCellStyle(sheetName, "A1", lastHeader, headerStyle)

	for i, b := range bookings {
		row := i + 2
		values := []any{
			b.ID, b.Name, b.Email, b.Phone, b.Date, b.Time, b.Service, b.Status,
			b.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			_ = f.SetCellValue(sheetName, cell, v)
		}
	}

	_ = f.SetColWidth(sheetName, "A", "A", 8)
	_ = f.SetColWidth(sheetName, "B", "D", 22)
	_ = f.SetColWidth(sheetName, "E", "H", 14)
	_ = f.SetColWidth(sheetName, "I", "I", 20)

	fileName := fmt.Sprintf("bookings_%s.xlsx", time.Now().Format("2006-01-02"))
	if s.exports.Path != "" {
		if err := os.MkdirAll(s.exports.Path, 0o755); err == nil {
			filePath := filepath.Join(s.exports.Path, fileName)
			if err := f.SaveAs(filePath); err != nil {
				s.logger.Warn().Err(err).Str("file_path", filePath).Msg("export: save copy failed")
			} else {
				s.logger.Info().Str("file_path", filePath).Msg("Excel file created")
			}
		}
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	if err := f.Write(w); err != nil {
		s.logger.Error().Err(err).Msg("export: write response failed")
	}
}
