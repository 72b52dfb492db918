package excel

import (
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"

	"fleet-dashboard-service/internal/model"
)

const (
	summarySheet = "摘要"
	hourlySheet  = "時段統計"
	rankingSheet = "成本效益排行"
	detailSheet  = "明細"
)

var detailHeaders = []string{"車牌", "司機", "行駛里程", "ETC費用", "碳排放"}

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) Generate(result model.DashboardResult) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	g.writeSummary(file, result)

	for _, sheet := range []string{hourlySheet, rankingSheet, detailSheet} {
		if _, err := file.NewSheet(sheet); err != nil {
			return nil, fmt.Errorf("create sheet %s: %w", sheet, err)
		}
	}
	g.writeHourly(file, result.Hourly)
	g.writeRanking(file, result.Ranking)
	g.writeDetail(file, result.Trips)

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeSummary(file *excelize.File, result model.DashboardResult) {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(summarySheet, cell, value)
	}

	kpi := result.KPI
	set("A1", "作業日期")
	set("B1", result.Date.Format(model.DateLayout))
	set("A2", "總出車數")
	set("B2", kpi.TotalDepartures)
	set("A3", "總行駛里程")
	set("B3", round2(kpi.TotalMileage))
	set("A4", "總碳排放")
	set("B4", round2(kpi.TotalCarbon))
	set("A5", "總ETC費用")
	set("B5", round2(kpi.TotalEtc))
	set("A6", "平均成本")
	set("B6", round2(kpi.AverageCost))

	set("A8", "出車時數(分)")
	set("B8", kpi.Durations.Dispatch)
	set("A9", "發動時數(分)")
	set("B9", kpi.Durations.EngineOn)
	set("A10", "怠停時數(分)")
	set("B10", kpi.Durations.Idle)
	set("A11", "開車時數(分)")
	set("B11", kpi.Durations.Driving)
	set("A12", "停留時數(分)")
	set("B12", kpi.Durations.Stop)

	alcohol := result.Alcohol
	set("A14", "酒測通過")
	set("B14", alcohol.PassCount)
	set("A15", "酒測未通過")
	set("B15", alcohol.FailCount)
	set("A16", "酒測通過率")
	set("B16", alcohol.CenterLabel)

	_ = file.SetColWidth(summarySheet, "A", "A", 18)
	_ = file.SetColWidth(summarySheet, "B", "B", 16)
}

func (g *Generator) writeHourly(file *excelize.File, buckets []model.HourlyBucket) {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(hourlySheet, cell, value)
	}

	set("A1", "時段")
	set("B1", "出車數")
	set("C1", "回車數")
	for i, bucket := range buckets {
		row := i + 2
		set(fmt.Sprintf("A%d", row), bucket.Hour)
		set(fmt.Sprintf("B%d", row), bucket.DepartureCount)
		set(fmt.Sprintf("C%d", row), bucket.ReturnCount)
	}

	_ = file.SetColWidth(hourlySheet, "A", "C", 12)
}

func (g *Generator) writeRanking(file *excelize.File, ranking []model.VehicleEfficiency) {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(rankingSheet, cell, value)
	}

	set("A1", "車牌")
	set("B1", "司機")
	set("C1", "成本效益比")
	set("D1", "行駛里程")
	set("E1", "ETC費用")
	for i, vehicle := range ranking {
		row := i + 2
		set(fmt.Sprintf("A%d", row), vehicle.LicensePlate)
		set(fmt.Sprintf("B%d", row), vehicle.Driver)
		set(fmt.Sprintf("C%d", row), round2(vehicle.Ratio))
		set(fmt.Sprintf("D%d", row), optional(vehicle.Mileage))
		set(fmt.Sprintf("E%d", row), optional(vehicle.EtcFee))
	}

	_ = file.SetColWidth(rankingSheet, "A", "B", 14)
	_ = file.SetColWidth(rankingSheet, "C", "E", 12)
}

func (g *Generator) writeDetail(file *excelize.File, trips []model.TripDetail) {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(detailSheet, cell, value)
	}

	for i, header := range detailHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		set(cell, header)
	}
	for i, trip := range trips {
		row := i + 2
		set(fmt.Sprintf("A%d", row), trip.LicensePlate)
		set(fmt.Sprintf("B%d", row), trip.Driver)
		set(fmt.Sprintf("C%d", row), optional(trip.Mileage))
		set(fmt.Sprintf("D%d", row), optional(trip.EtcFee))
		set(fmt.Sprintf("E%d", row), optional(trip.CarbonEmission))
	}

	_ = file.SetColWidth(detailSheet, "A", "B", 14)
	_ = file.SetColWidth(detailSheet, "C", "E", 12)
}

// optional leaves the cell blank for a missing value.
func optional(v *float64) interface{} {
	if v == nil {
		return ""
	}
	return *v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
