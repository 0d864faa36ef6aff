package services

import (
	"context"
	"fmt"

	"campbook/internal/domain/models"
	"campbook/internal/utils"

	"github.com/xuri/excelize/v2"
)

const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportService renders order and customer lists as .xlsx workbooks.
type ExportService struct {
	Orders    OrderService
	Customers CustomerStore
	RequestID string
}

type sheetColumn struct {
	title string
	width float64
	money bool
}

func (s ExportService) OrdersWorkbook(ctx context.Context, f models.OrderFilter) ([]byte, string, error) {
	orders, err := s.Orders.Export(ctx, f)
	if err != nil {
		return nil, "", err
	}

	cols := []sheetColumn{
		{"Order No", 20, false}, {"Visit Date", 12, false}, {"Customer", 20, false}, {"Phone", 16, false},
		{"Status", 12, false}, {"Payment", 10, false}, {"Adults", 8, false}, {"Children", 8, false},
		{"Total", 12, true}, {"Discount", 12, true}, {"Paid", 12, true}, {"Source", 10, false}, {"Created At", 20, false},
	}
	rows := make([][]any, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, []any{
			o.OrderNo, o.VisitDate, o.CustomerName, o.CustomerPhone,
			o.Status, o.PaymentStatus, o.AdultCount, o.ChildCount,
			o.TotalAmount, o.Discount, o.PaidAmount, o.Source, utils.FormatDateTime(o.CreatedAt),
		})
	}

	buf, err := buildSheet("Orders", cols, rows)
	if err != nil {
		return nil, "", err
	}
	name := fmt.Sprintf("orders_%s.xlsx", utils.Now().Format("20060102_150405"))
	utils.LogEvent(s.RequestID, "export", "orders", fmt.Sprintf("rows=%d", len(rows)))
	return buf, name, nil
}

func (s ExportService) CustomersWorkbook(ctx context.Context, f models.CustomerFilter) ([]byte, string, error) {
	customers, err := s.Customers.All(ctx, f)
	if err != nil {
		return nil, "", err
	}

	cols := []sheetColumn{
		{"Name", 20, false}, {"Phone", 16, false}, {"WeChat", 16, false}, {"Email", 24, false},
		{"Gender", 8, false}, {"Source", 10, false}, {"Tags", 20, false}, {"Notes", 30, false}, {"Created At", 20, false},
	}
	rows := make([][]any, 0, len(customers))
	for _, c := range customers {
		rows = append(rows, []any{
			c.Name, c.Phone, c.Wechat, c.Email, c.Gender, c.Source, c.Tags, c.Notes, utils.FormatDateTime(c.CreatedAt),
		})
	}

	buf, err := buildSheet("Customers", cols, rows)
	if err != nil {
		return nil, "", err
	}
	name := fmt.Sprintf("customers_%s.xlsx", utils.Now().Format("20060102_150405"))
	utils.LogEvent(s.RequestID, "export", "customers", fmt.Sprintf("rows=%d", len(rows)))
	return buf, name, nil
}

// buildSheet writes a single sheet with a bold header row. Money columns hold cents and
// are written as decimal amounts.
func buildSheet(sheet string, cols []sheetColumn, rows [][]any) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return nil, fmt.Errorf("money style: %w", err)
	}

	for i, c := range cols {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, c.title); err != nil {
			return nil, err
		}
		colName, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheet, colName, colName, c.width); err != nil {
			return nil, err
		}
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(cols), 1)
	if err := f.SetCellStyle(sheet, "A1", lastHeader, header); err != nil {
		return nil, err
	}

	for r, row := range rows {
		for i, v := range row {
			cell, _ := excelize.CoordinatesToCellName(i+1, r+2)
			if i < len(cols) && cols[i].money {
				if cents, ok := v.(int64); ok {
					v = float64(cents) / 100
				}
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}
	for i, c := range cols {
		if !c.money || len(rows) == 0 {
			continue
		}
		first, _ := excelize.CoordinatesToCellName(i+1, 2)
		last, _ := excelize.CoordinatesToCellName(i+1, len(rows)+1)
		if err := f.SetCellStyle(sheet, first, last, money); err != nil {
			return nil, err
		}
	}
	if err := f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
