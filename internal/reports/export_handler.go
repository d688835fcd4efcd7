package reports

import (
	"fmt"
	"time"

	"lojistik-backend/internal/database"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

// GET /api/reports/summary/export
// Özet raporu .xlsx dosyası olarak indirir
func ExportSummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		now, err := parseMonthParam(c)
		if err != nil {
			return err
		}

		summary, err := buildSummary(database.DB, now)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Rapor hesaplanamadı")
		}

		f := excelize.NewFile()
		defer f.Close()

		sheet := "Ozet"
		f.SetSheetName(f.GetSheetName(0), sheet)

		// Aylık satış/gider tablosu
		f.SetCellValue(sheet, "A1", "Ay")
		f.SetCellValue(sheet, "B1", "Satış")
		f.SetCellValue(sheet, "C1", "Gider")
		f.SetCellValue(sheet, "D1", "Net")
		for i, m := range summary.Monthly {
			row := i + 2
			f.SetCellValue(sheet, fmt.Sprintf("A%d", row), m.Month)
			f.SetCellValue(sheet, fmt.Sprintf("B%d", row), m.Sales)
			f.SetCellValue(sheet, fmt.Sprintf("C%d", row), m.Expenses)
			f.SetCellValue(sheet, fmt.Sprintf("D%d", row), m.Sales-m.Expenses)
		}

		// En çok satan ürünler
		base := len(summary.Monthly) + 3
		f.SetCellValue(sheet, fmt.Sprintf("A%d", base), "Ürün")
		f.SetCellValue(sheet, fmt.Sprintf("B%d", base), "Adet")
		for i, p := range summary.TopProducts {
			row := base + i + 1
			f.SetCellValue(sheet, fmt.Sprintf("A%d", row), p.ProductName)
			f.SetCellValue(sheet, fmt.Sprintf("B%d", row), p.Quantity)
		}

		// En çok satış yapılan güzergahlar
		base += len(summary.TopProducts) + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", base), "Güzergah")
		f.SetCellValue(sheet, fmt.Sprintf("B%d", base), "Satış Sayısı")
		for i, r := range summary.TopRoutes {
			row := base + i + 1
			f.SetCellValue(sheet, fmt.Sprintf("A%d", row), r.RouteName)
			f.SetCellValue(sheet, fmt.Sprintf("B%d", row), r.SaleCount)
		}

		// Teslimat durumları
		base += len(summary.TopRoutes) + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", base), "Bekleyen Teslimat")
		f.SetCellValue(sheet, fmt.Sprintf("B%d", base), summary.Deliveries.Pending)
		f.SetCellValue(sheet, fmt.Sprintf("A%d", base+1), "Teslim Edilen")
		f.SetCellValue(sheet, fmt.Sprintf("B%d", base+1), summary.Deliveries.Delivered)
		f.SetCellValue(sheet, fmt.Sprintf("A%d", base+2), "İade")
		f.SetCellValue(sheet, fmt.Sprintf("B%d", base+2), summary.Deliveries.Returned)

		buf, err := f.WriteToBuffer()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Excel dosyası oluşturulamadı")
		}

		filename := fmt.Sprintf("ozet-rapor-%s.xlsx", time.Now().Format("2006-01-02"))
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
		return c.Send(buf.Bytes())
	}
}
