package model

import "time"

type DashboardResult struct {
	Date    time.Time           `json:"date"`
	KPI     KPISummary          `json:"kpi"`
	Hourly  []HourlyBucket      `json:"hourly"`
	Ranking []VehicleEfficiency `json:"ranking"`
	Alcohol AlcoholSummary      `json:"alcohol"`
	Trips   []TripDetail        `json:"trips"`

	// Raw per-direction projections kept for chart drill-down.
	Dispatches []HourProjection `json:"-"`
	Returns    []HourProjection `json:"-"`
}

type KPISummary struct {
	TotalDepartures int             `json:"total_departures"`
	TotalMileage    float64         `json:"total_mileage"`
	TotalCarbon     float64         `json:"total_carbon"`
	TotalEtc        float64         `json:"total_etc"`
	AverageCost     float64         `json:"average_cost"`
	Durations       DurationMinutes `json:"durations"`
}

type HourlyBucket struct {
	Hour           int `json:"hour"`
	DepartureCount int `json:"departure_count"`
	ReturnCount    int `json:"return_count"`
}

type VehicleEfficiency struct {
	LicensePlate string   `json:"license_plate"`
	Driver       string   `json:"driver"`
	Ratio        float64  `json:"ratio"`
	Mileage      *float64 `json:"mileage"`
	EtcFee       *float64 `json:"etc_fee"`
}

type AlcoholSummary struct {
	PassCount   int               `json:"pass_count"`
	FailCount   int               `json:"fail_count"`
	PassRate    float64           `json:"pass_rate"`
	CenterLabel string            `json:"center_label"`
	Slices      []ProportionSlice `json:"slices"`
}

type ProportionSlice struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// TripDetail is one row of the raw detail table.
type TripDetail struct {
	LicensePlate        string          `json:"license_plate"`
	Driver              string          `json:"driver"`
	DispatchTime        string          `json:"dispatch_time"`
	ReturnTime          string          `json:"return_time"`
	Mileage             *float64        `json:"mileage"`
	EtcFee              *float64        `json:"etc_fee"`
	CarbonEmission      *float64        `json:"carbon_emission"`
	TotalCost           float64         `json:"total_cost"`
	CostEfficiencyRatio float64         `json:"cost_efficiency_ratio"`
	Durations           DurationMinutes `json:"durations"`
}

// HourProjection is the slice of a trip needed to answer a drill-down for
// one direction. HasHour is false when the time text could not be parsed.
type HourProjection struct {
	LicensePlate string
	Driver       string
	Time         string
	Hour         int
	HasHour      bool
}

// DetailRow is a drill-down row. Exactly one of the time fields is set,
// depending on the direction that was resolved.
type DetailRow struct {
	LicensePlate string  `json:"license_plate"`
	Driver       string  `json:"driver"`
	DispatchTime *string `json:"dispatch_time,omitempty"`
	ReturnTime   *string `json:"return_time,omitempty"`
}
