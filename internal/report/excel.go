package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ExcelExporter writes the team listing as a workbook with a Dashboard
// sheet and one Issues sheet.
type ExcelExporter struct {
	OutputPath string
}

func NewExcelExporter(outputPath string) *ExcelExporter {
	return &ExcelExporter{OutputPath: outputPath}
}

func (e *ExcelExporter) Export(l *TeamListing) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := e.createDashboardSheet(f, l); err != nil {
		return fmt.Errorf("failed to create dashboard: %w", err)
	}
	if err := e.createIssuesSheet(f, l); err != nil {
		return fmt.Errorf("failed to create issues sheet: %w", err)
	}

	_ = f.DeleteSheet("Sheet1")

	if err := f.SaveAs(e.OutputPath); err != nil {
		return fmt.Errorf("failed to save excel file: %w", err)
	}
	return nil
}

func (e *ExcelExporter) createDashboardSheet(f *excelize.File, l *TeamListing) error {
	const sheet = "Dashboard"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)

	stats := l.Stats()
	rows := [][]any{
		{"Sprint", l.SprintName},
		{"Total issues", stats.TotalIssues},
		{"Total story points", stats.TotalPoints},
		{},
		{"Status", "Count"},
	}
	for _, sc := range stats.StatusCounts {
		rows = append(rows, []any{sc.Status, sc.Count})
	}

	for r, row := range rows {
		for c, val := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *ExcelExporter) createIssuesSheet(f *excelize.File, l *TeamListing) error {
	const sheet = "Issues"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	rows := [][]any{{"Assignee", "Key", "Summary", "Status", "Points"}}
	for _, group := range l.Groups() {
		for _, issue := range group.Issues {
			points := any("")
			if issue.Points != nil {
				points = *issue.Points
			}
			rows = append(rows, []any{group.Name, issue.Key, issue.Summary, issue.Status, points})
		}
	}

	for r, row := range rows {
		for c, val := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				return err
			}
		}
	}
	return nil
}
