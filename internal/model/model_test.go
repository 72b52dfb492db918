package model

import (
	"testing"
	"time"
)

func ptr(v float64) *float64 {
	return &v
}

func TestIsValidPlate(t *testing.T) {
	tests := []struct {
		plate    string
		expected bool
	}{
		{"BTA-0375", true},
		{"KAA-1234", true},
		{"總計", false},
		{"TOTAL", false},
		{"bta-0375", false},
		{"BT-0375", false},
		{"BTA-375", false},
		{" BTA-0375", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsValidPlate(tt.plate); got != tt.expected {
			t.Errorf("IsValidPlate(%q) = %v, expected %v", tt.plate, got, tt.expected)
		}
	}
}

func TestTotalCost(t *testing.T) {
	tests := []struct {
		name     string
		trip     TripRecord
		expected float64
	}{
		{"both", TripRecord{VehicleCost: ptr(500), LaborCost: ptr(300)}, 800},
		{"vehicle only", TripRecord{VehicleCost: ptr(500)}, 500},
		{"none", TripRecord{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.trip.TotalCost(); got != tt.expected {
				t.Errorf("TotalCost() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestAlcoholRecordPassed(t *testing.T) {
	tests := []struct {
		name     string
		record   AlcoholRecord
		expected bool
	}{
		{"below threshold", AlcoholRecord{MeasuredValue: ptr(0.05), ThresholdValue: ptr(0.15)}, true},
		{"at threshold", AlcoholRecord{MeasuredValue: ptr(0.15), ThresholdValue: ptr(0.15)}, false},
		{"above threshold", AlcoholRecord{MeasuredValue: ptr(0.2), ThresholdValue: ptr(0.15)}, false},
		{"missing measurement", AlcoholRecord{ThresholdValue: ptr(0.15)}, false},
		{"missing threshold", AlcoholRecord{MeasuredValue: ptr(0)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.record.Passed(); got != tt.expected {
				t.Errorf("Passed() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestDurations(t *testing.T) {
	trip := TripRecord{
		DispatchDuration: "8時30分",
		EngineOnDuration: "45分",
		IdleDuration:     "",
		DrivingDuration:  "2時15分",
		StopDuration:     "n/a",
	}

	got := trip.Durations()
	expected := DurationMinutes{Dispatch: 510, EngineOn: 45, Idle: 0, Driving: 135, Stop: 0}
	if got != expected {
		t.Errorf("Durations() = %+v, expected %+v", got, expected)
	}

	sum := got.Add(DurationMinutes{Idle: 5, Stop: 10})
	if sum.Idle != 5 || sum.Stop != 10 || sum.Dispatch != 510 {
		t.Errorf("Add() = %+v", sum)
	}
}

func TestDateOnly(t *testing.T) {
	taipei := time.FixedZone("CST", 8*3600)
	got := DateOnly(time.Date(2025, 3, 22, 23, 30, 0, 0, taipei))
	if !got.Equal(time.Date(2025, 3, 22, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("DateOnly() = %v, expected 2025-03-22 UTC", got)
	}
	if !DateOnly(time.Time{}).IsZero() {
		t.Errorf("DateOnly(zero) should stay zero")
	}
}

func TestSameDay(t *testing.T) {
	day := time.Date(2025, 3, 22, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name     string
		other    time.Time
		expected bool
	}{
		{"same instant", day, true},
		{"late same day", day.Add(23*time.Hour + 59*time.Minute), true},
		{"next day", day.AddDate(0, 0, 1), false},
		{"zero", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SameDay(day, tt.other); got != tt.expected {
				t.Errorf("SameDay(%v, %v) = %v, expected %v", day, tt.other, got, tt.expected)
			}
		})
	}
}

func TestDrillDownModal(t *testing.T) {
	var m DrillDownModal
	m = m.Normalize()
	if m.IsOpen() || m.State != ModalClosed {
		t.Fatalf("initial state = %q, expected CLOSED", m.State)
	}

	rows := []DetailRow{{LicensePlate: "BTA-0375"}}
	m = m.Open(DirectionDispatch, 9, rows)
	if !m.IsOpen() || m.Title != "時段 9點 - 出車詳細資料" || len(m.Rows) != 1 {
		t.Errorf("Open() = %+v", m)
	}

	m = m.Open(DirectionReturn, 0, nil)
	if !m.IsOpen() || m.Title != "時段 0點 - 回車詳細資料" {
		t.Errorf("re-Open() = %+v", m)
	}
	if m.Rows == nil || len(m.Rows) != 0 {
		t.Errorf("Open with nil rows = %v, expected empty", m.Rows)
	}

	m = m.Close()
	if m.IsOpen() || m.Title != "" || m.Direction != "" || len(m.Rows) != 0 {
		t.Errorf("Close() = %+v, expected cleared", m)
	}
}

func TestNewDateOptions(t *testing.T) {
	day := time.Date(2025, 3, 22, 0, 0, 0, 0, time.UTC)

	options := NewDateOptions([]time.Time{day, day.AddDate(0, 0, 1)}, day, true)
	if len(options.Dates) != 2 || options.Dates[1] != "2025-03-23" || options.Default != "2025-03-22" {
		t.Errorf("NewDateOptions() = %+v", options)
	}

	empty := NewDateOptions(nil, time.Time{}, false)
	if empty.Dates == nil || empty.Default != "" {
		t.Errorf("empty options = %+v", empty)
	}
}
