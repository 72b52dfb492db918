// Package metrics turns raw trip and alcohol-test records into the daily
// dashboard and resolves chart clicks back to trip rows.
package metrics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"fleet-dashboard-service/internal/model"
)

const (
	alcoholPassLabel = "通過"
	alcoholFailLabel = "未通過"
)

// ComputeDashboard builds the dashboard for one operation date. It is a pure
// function of its inputs; date must not be zero.
func ComputeDashboard(trips []model.TripRecord, alcohol []model.AlcoholRecord, date time.Time) *model.DashboardResult {
	filtered := filterTrips(trips, date)

	result := &model.DashboardResult{
		Date:       model.DateOnly(date),
		KPI:        summarize(filtered),
		Hourly:     bucketByHour(filtered),
		Ranking:    rankByEfficiency(filtered),
		Alcohol:    summarizeAlcohol(alcohol, date),
		Trips:      detailRows(filtered),
		Dispatches: project(filtered, model.DirectionDispatch),
		Returns:    project(filtered, model.DirectionReturn),
	}
	return result
}

func filterTrips(trips []model.TripRecord, date time.Time) []model.TripRecord {
	result := make([]model.TripRecord, 0, len(trips))
	for _, trip := range trips {
		if !model.IsValidPlate(trip.LicensePlate) {
			continue
		}
		if !model.SameDay(trip.OperationDate, date) {
			continue
		}
		result = append(result, trip)
	}
	return result
}

func summarize(trips []model.TripRecord) model.KPISummary {
	var kpi model.KPISummary
	kpi.TotalDepartures = len(trips)

	totalCost := 0.0
	for _, trip := range trips {
		kpi.TotalMileage += valueOrZero(trip.Mileage)
		kpi.TotalCarbon += valueOrZero(trip.CarbonEmission)
		kpi.TotalEtc += valueOrZero(trip.EtcFee)
		kpi.Durations = kpi.Durations.Add(trip.Durations())
		totalCost += trip.TotalCost()
	}
	if len(trips) > 0 {
		kpi.AverageCost = clamp(totalCost / float64(len(trips)))
	}
	return kpi
}

// bucketByHour counts dispatch and return hours independently and merges the
// two counts on hour. Trips whose time cannot be parsed are left out of the
// side they failed on.
func bucketByHour(trips []model.TripRecord) []model.HourlyBucket {
	departures := make(map[int]int)
	returns := make(map[int]int)
	for _, trip := range trips {
		if hour, ok := trip.DispatchHour(); ok {
			departures[hour]++
		}
		if hour, ok := trip.ReturnHour(); ok {
			returns[hour]++
		}
	}

	hours := make([]int, 0, len(departures)+len(returns))
	for hour := range departures {
		hours = append(hours, hour)
	}
	for hour := range returns {
		if _, seen := departures[hour]; !seen {
			hours = append(hours, hour)
		}
	}
	sort.Ints(hours)

	result := make([]model.HourlyBucket, 0, len(hours))
	for _, hour := range hours {
		result = append(result, model.HourlyBucket{
			Hour:           hour,
			DepartureCount: departures[hour],
			ReturnCount:    returns[hour],
		})
	}
	return result
}

// rankByEfficiency keeps trips with a positive ratio, highest first. Equal
// ratios keep their input order.
func rankByEfficiency(trips []model.TripRecord) []model.VehicleEfficiency {
	result := make([]model.VehicleEfficiency, 0, len(trips))
	for _, trip := range trips {
		ratio := trip.CostEfficiencyRatio()
		if ratio <= 0 {
			continue
		}
		result = append(result, model.VehicleEfficiency{
			LicensePlate: trip.LicensePlate,
			Driver:       trip.Driver,
			Ratio:        ratio,
			Mileage:      trip.Mileage,
			EtcFee:       trip.EtcFee,
		})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Ratio > result[j].Ratio
	})
	return result
}

func summarizeAlcohol(records []model.AlcoholRecord, date time.Time) model.AlcoholSummary {
	var summary model.AlcoholSummary
	for _, record := range records {
		if !model.SameDay(record.Timestamp, date) {
			continue
		}
		if record.Passed() {
			summary.PassCount++
		} else {
			summary.FailCount++
		}
	}

	if total := summary.PassCount + summary.FailCount; total > 0 {
		summary.PassRate = roundTo(float64(summary.PassCount)/float64(total)*100, 1)
	}
	summary.CenterLabel = fmt.Sprintf("%.0f%%", summary.PassRate)
	summary.Slices = []model.ProportionSlice{
		{Name: alcoholPassLabel, Value: summary.PassCount},
		{Name: alcoholFailLabel, Value: summary.FailCount},
	}
	return summary
}

func detailRows(trips []model.TripRecord) []model.TripDetail {
	result := make([]model.TripDetail, 0, len(trips))
	for _, trip := range trips {
		result = append(result, model.TripDetail{
			LicensePlate:        trip.LicensePlate,
			Driver:              trip.Driver,
			DispatchTime:        trip.DispatchTime,
			ReturnTime:          trip.ReturnTime,
			Mileage:             trip.Mileage,
			EtcFee:              trip.EtcFee,
			CarbonEmission:      trip.CarbonEmission,
			TotalCost:           trip.TotalCost(),
			CostEfficiencyRatio: trip.CostEfficiencyRatio(),
			Durations:           trip.Durations(),
		})
	}
	return result
}

func project(trips []model.TripRecord, direction model.Direction) []model.HourProjection {
	result := make([]model.HourProjection, 0, len(trips))
	for _, trip := range trips {
		p := model.HourProjection{
			LicensePlate: trip.LicensePlate,
			Driver:       trip.Driver,
		}
		if direction == model.DirectionDispatch {
			p.Time = trip.DispatchTime
			p.Hour, p.HasHour = trip.DispatchHour()
		} else {
			p.Time = trip.ReturnTime
			p.Hour, p.HasHour = trip.ReturnHour()
		}
		result = append(result, p)
	}
	return result
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func clamp(value float64) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	return value
}

func roundTo(value float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(value*scale) / scale
}
