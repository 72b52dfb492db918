package pdf

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"fleet-dashboard-service/internal/model"
)

// Generator renders the one-page dashboard summary. It needs a UTF-8 TTF
// font with CJK glyphs; the core PDF fonts cannot draw the labels.
type Generator struct {
	fontName string
	font     []byte
}

func NewGenerator(fontPath string) (*Generator, error) {
	if strings.TrimSpace(fontPath) == "" {
		return nil, fmt.Errorf("font path is empty")
	}
	font, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	if len(font) == 0 {
		return nil, fmt.Errorf("font data is empty")
	}
	return &Generator{fontName: "Dashboard", font: font}, nil
}

func (g *Generator) Generate(result model.DashboardResult) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddUTF8FontFromBytes(g.fontName, "", g.font)
	pdf.AddUTF8FontFromBytes(g.fontName, "B", g.font)
	pdf.AddPage()

	pdf.SetFont(g.fontName, "B", 14)
	pdf.CellFormat(0, 10, fmt.Sprintf("車隊每日營運報表 %s", result.Date.Format(model.DateLayout)), "", 1, "C", false, 0, "")
	pdf.Ln(2)

	kpi := result.KPI
	section(pdf, g.fontName, "營運指標")
	widths := []float64{45, 45, 45, 45, 45, 42}
	drawTableRow(pdf, g.fontName, []string{"總出車數", "總行駛里程", "總碳排放", "總ETC費用", "平均成本", "酒測通過率"}, widths, true)
	drawTableRow(pdf, g.fontName, []string{
		fmt.Sprintf("%d", kpi.TotalDepartures),
		formatAmount(kpi.TotalMileage),
		formatAmount(kpi.TotalCarbon),
		formatAmount(kpi.TotalEtc),
		formatAmount(kpi.AverageCost),
		result.Alcohol.CenterLabel,
	}, widths, false)
	pdf.Ln(4)

	section(pdf, g.fontName, "時段出回車")
	hourWidths := []float64{30, 30, 30}
	drawTableRow(pdf, g.fontName, []string{"時段", "出車數", "回車數"}, hourWidths, true)
	for _, bucket := range result.Hourly {
		drawTableRow(pdf, g.fontName, []string{
			fmt.Sprintf("%d", bucket.Hour),
			fmt.Sprintf("%d", bucket.DepartureCount),
			fmt.Sprintf("%d", bucket.ReturnCount),
		}, hourWidths, false)
	}
	pdf.Ln(4)

	section(pdf, g.fontName, "成本效益排行")
	rankWidths := []float64{40, 40, 35, 35, 35}
	drawTableRow(pdf, g.fontName, []string{"車牌", "司機", "成本效益比", "行駛里程", "ETC費用"}, rankWidths, true)
	for _, vehicle := range result.Ranking {
		drawTableRow(pdf, g.fontName, []string{
			vehicle.LicensePlate,
			safeValue(vehicle.Driver),
			formatAmount(vehicle.Ratio),
			formatOptional(vehicle.Mileage),
			formatOptional(vehicle.EtcFee),
		}, rankWidths, false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func section(pdf *gofpdf.Fpdf, fontName, title string) {
	pdf.SetFont(fontName, "B", 12)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
}

func drawTableRow(pdf *gofpdf.Fpdf, fontName string, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(fontName, style, 10)
	for i, col := range cols {
		align := "R"
		if header {
			align = "C"
		}
		pdf.CellFormat(widths[i], 7, col, "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}

func safeValue(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

func formatAmount(value float64) string {
	return fmt.Sprintf("%.2f", value)
}

func formatOptional(value *float64) string {
	if value == nil {
		return "-"
	}
	return formatAmount(*value)
}
