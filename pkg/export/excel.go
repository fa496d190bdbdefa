package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/construction_qa/internal/models"
)

// IssueExportHeader 问题导出表头
var IssueExportHeader = []string{
	"Project",
	"Unit",
	"Title",
	"Status",
	"Priority",
	"Category",
	"Type",
	"Item",
	"Location",
	"Assigned Team",
	"Assigned User",
	"Due Date",
	"Created At",
	"Updated At",
}

const issueSheetName = "Issues"

// GenerateIssueExport 生成问题清单 Excel 文件
// issues 为空时只生成表头
func GenerateIssueExport(issues []models.Issue) ([]byte, error) {
	f := excelize.NewFile()
	// 注意：此处不 defer Close()，WriteTo 需要文件保持打开

	index, err := f.NewSheet(issueSheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	// 删除默认的 Sheet1
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	// 表头样式
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range IssueExportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(issueSheetName, cell, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(issueSheetName, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
	}

	for row, issue := range issues {
		values := []interface{}{
			issue.ProjectName,
			deref(issue.UnitNumber),
			issue.Title,
			string(issue.Status),
			string(issue.Priority),
			deref(issue.Category),
			deref(issue.IssueType),
			deref(issue.IssueItem),
			deref(issue.Location),
			deref(issue.AssignedTeam),
			deref(issue.AssignedUser),
			formatDate(issue.DueDate),
			issue.CreatedAt.Format("2006-01-02 15:04"),
			issue.UpdatedAt.Format("2006-01-02 15:04"),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to convert coordinates: %w", err)
			}
			if err := f.SetCellValue(issueSheetName, cell, value); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set cell %s: %w", cell, err)
			}
		}
	}

	// 列宽按内容宽度设置
	columnWidths := []float64{20, 12, 36, 12, 10, 15, 15, 18, 18, 20, 20, 14, 18, 18}
	for i, width := range columnWidths {
		colName, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to resolve column name: %w", err)
		}
		if err := f.SetColWidth(issueSheetName, colName, colName, width); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write excel: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
