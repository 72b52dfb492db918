package model

import (
	"math"
	"regexp"
	"time"

	"fleet-dashboard-service/internal/timeparse"
)

var validPlatePattern = regexp.MustCompile(`^[A-Z]{3}-\d{4}$`)

// IsValidPlate reports whether plate looks like "BTA-0375". Summary rows
// ("總計", "TOTAL ...") never match.
func IsValidPlate(plate string) bool {
	return validPlatePattern.MatchString(plate)
}

// TripRecord is one vehicle trip of the daily performance report.
type TripRecord struct {
	LicensePlate  string
	OperationDate time.Time
	Driver        string
	DispatchTime  string
	ReturnTime    string

	Mileage        *float64
	VehicleCost    *float64
	LaborCost      *float64
	EtcFee         *float64
	CarbonEmission *float64

	DispatchDuration string
	EngineOnDuration string
	IdleDuration     string
	DrivingDuration  string
	StopDuration     string
}

func (t TripRecord) TotalCost() float64 {
	return valueOrZero(t.VehicleCost) + valueOrZero(t.LaborCost)
}

// CostEfficiencyRatio is mileage per ETC fee. It is 0 unless the fee is
// positive and the mileage is present, and never NaN or infinite.
func (t TripRecord) CostEfficiencyRatio() float64 {
	if t.EtcFee == nil || *t.EtcFee <= 0 || t.Mileage == nil {
		return 0
	}
	ratio := *t.Mileage / *t.EtcFee
	if math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return 0
	}
	return ratio
}

func (t TripRecord) DispatchHour() (int, bool) {
	return timeparse.ParseHourOfDay(t.DispatchTime)
}

func (t TripRecord) ReturnHour() (int, bool) {
	return timeparse.ParseHourOfDay(t.ReturnTime)
}

func (t TripRecord) Durations() DurationMinutes {
	return DurationMinutes{
		Dispatch: timeparse.ParseDurationMinutes(t.DispatchDuration),
		EngineOn: timeparse.ParseDurationMinutes(t.EngineOnDuration),
		Idle:     timeparse.ParseDurationMinutes(t.IdleDuration),
		Driving:  timeparse.ParseDurationMinutes(t.DrivingDuration),
		Stop:     timeparse.ParseDurationMinutes(t.StopDuration),
	}
}

type DurationMinutes struct {
	Dispatch int `json:"dispatch_minutes"`
	EngineOn int `json:"engine_on_minutes"`
	Idle     int `json:"idle_minutes"`
	Driving  int `json:"driving_minutes"`
	Stop     int `json:"stop_minutes"`
}

func (d DurationMinutes) Add(other DurationMinutes) DurationMinutes {
	return DurationMinutes{
		Dispatch: d.Dispatch + other.Dispatch,
		EngineOn: d.EngineOn + other.EngineOn,
		Idle:     d.Idle + other.Idle,
		Driving:  d.Driving + other.Driving,
		Stop:     d.Stop + other.Stop,
	}
}

// AlcoholRecord is one breath-alcohol test. A test with a missing measured
// or threshold value is kept and counts as failed.
type AlcoholRecord struct {
	Timestamp      time.Time
	MeasuredValue  *float64
	ThresholdValue *float64
}

func (a AlcoholRecord) Passed() bool {
	if a.MeasuredValue == nil || a.ThresholdValue == nil {
		return false
	}
	return *a.MeasuredValue < *a.ThresholdValue
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
