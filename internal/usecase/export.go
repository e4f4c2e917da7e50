package usecase

import (
	"bytes"
	"context"
	"fmt"
	"go-talentmatch-backend/pkg/apperror"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

var exportHeaders = []string{
	"CANDIDATE", "EMAIL", "JOB", "COMPANY", "STATUS",
	"MATCH SCORE", "APPLIED AT", "UPDATED AT", "NOTES",
}

// ExportForEmployer renders all of the employer's applications as an XLSX
// workbook, newest first, one row per application.
func (uc *applicationUsecase) ExportForEmployer(ctx context.Context, employerID string) ([]byte, string, error) {
	apps, err := uc.appRepo.ListByEmployer(ctx, employerID)
	if err != nil {
		return nil, "", apperror.Internal(err)
	}

	f := excelize.NewFile()
	sheetName := "Applications"
	f.SetSheetName("Sheet1", sheetName)

	for i, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1E3A5F"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	endCell, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
	f.SetCellStyle(sheetName, "A1", endCell, headerStyle)

	for rowIdx, app := range apps {
		values := []any{
			deref(app.CandidateName),
			deref(app.CandidateEmail),
			deref(app.JobTitle),
			deref(app.JobCompany),
			strings.ToUpper(app.Status),
			scoreCell(app.MatchScore),
			app.AppliedAt.Format("2006-01-02 15:04"),
			app.UpdatedAt.Format("2006-01-02 15:04"),
			app.EmployerNotes,
		}
		for colIdx, value := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	for i := range exportHeaders {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, colName, colName, 20)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", apperror.Internal(fmt.Errorf("failed to write Excel file: %w", err))
	}

	filename := fmt.Sprintf("applications_export_%s.xlsx", time.Now().Format("20060102_150405"))
	return buf.Bytes(), filename, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func scoreCell(score *int) any {
	if score == nil {
		return ""
	}
	return *score
}
