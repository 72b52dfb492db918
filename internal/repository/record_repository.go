package repository

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"fleet-dashboard-service/internal/model"
)

const summaryRowMarker = "總計"

// tripRow maps the performance daily report (績效日報表).
type tripRow struct {
	LicensePlate     looseText   `gorm:"column:車牌"`
	OperationDate    sourceDate  `gorm:"column:作業日期"`
	Driver           looseText   `gorm:"column:司機"`
	DispatchTime     looseText   `gorm:"column:出車時間"`
	ReturnTime       looseText   `gorm:"column:回車時間"`
	Mileage          looseNumber `gorm:"column:行駛里程"`
	VehicleCost      looseNumber `gorm:"column:車輛成本"`
	LaborCost        looseNumber `gorm:"column:人力成本"`
	EtcFee           looseNumber `gorm:"column:ETC費用"`
	CarbonEmission   looseNumber `gorm:"column:碳排放"`
	DispatchDuration looseText   `gorm:"column:出車時數"`
	EngineOnDuration looseText   `gorm:"column:發動時數"`
	IdleDuration     looseText   `gorm:"column:怠停時數"`
	DrivingDuration  looseText   `gorm:"column:開車時數"`
	StopDuration     looseText   `gorm:"column:停留時數"`
}

// alcoholRow maps the alcohol test log (酒測紀錄).
type alcoholRow struct {
	Timestamp      sourceTime  `gorm:"column:時間"`
	MeasuredValue  looseNumber `gorm:"column:酒測值"`
	ThresholdValue looseNumber `gorm:"column:臨界值"`
}

type RecordRepository struct {
	db           *gorm.DB
	tripTable    string
	alcoholTable string
}

func NewRecordRepository(db *gorm.DB, tripTable, alcoholTable string) *RecordRepository {
	return &RecordRepository{db: db, tripTable: tripTable, alcoholTable: alcoholTable}
}

// FetchTripRecords returns every row of the report except the summary rows.
func (r *RecordRepository) FetchTripRecords(ctx context.Context) ([]model.TripRecord, error) {
	if !r.tableAvailable(ctx, r.tripTable) {
		return []model.TripRecord{}, nil
	}

	var rows []tripRow
	err := r.db.WithContext(ctx).
		Table(r.tripTable).
		Where("車牌 IS NULL OR 車牌 NOT LIKE ?", "%"+summaryRowMarker+"%").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", r.tripTable, err)
	}

	return toTripRecords(rows), nil
}

func (r *RecordRepository) FetchAlcoholRecords(ctx context.Context) ([]model.AlcoholRecord, error) {
	if !r.tableAvailable(ctx, r.alcoholTable) {
		return []model.AlcoholRecord{}, nil
	}

	var rows []alcoholRow
	if err := r.db.WithContext(ctx).Table(r.alcoholTable).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("fetch %s: %w", r.alcoholTable, err)
	}

	return toAlcoholRecords(rows), nil
}

// OperationDates lists the distinct operation dates, oldest first.
func (r *RecordRepository) OperationDates(ctx context.Context) ([]time.Time, error) {
	if !r.tableAvailable(ctx, r.tripTable) {
		return []time.Time{}, nil
	}

	var raw []sourceDate
	err := r.db.WithContext(ctx).
		Table(r.tripTable).
		Where("作業日期 IS NOT NULL").
		Distinct("作業日期").
		Pluck("作業日期", &raw).Error
	if err != nil {
		return nil, fmt.Errorf("list operation dates: %w", err)
	}

	return distinctDates(raw), nil
}

// DefaultOperationDate is the date of the first report row, the initial
// selection of the date picker.
func (r *RecordRepository) DefaultOperationDate(ctx context.Context) (time.Time, bool, error) {
	if !r.tableAvailable(ctx, r.tripTable) {
		return time.Time{}, false, nil
	}

	var raw []sourceDate
	err := r.db.WithContext(ctx).
		Table(r.tripTable).
		Limit(1).
		Pluck("作業日期", &raw).Error
	if err != nil {
		return time.Time{}, false, fmt.Errorf("first operation date: %w", err)
	}
	if len(raw) == 0 || !raw[0].Valid {
		return time.Time{}, false, nil
	}
	return model.DateOnly(raw[0].Time()), true, nil
}

func (r *RecordRepository) tableAvailable(ctx context.Context, name string) bool {
	return r.db.WithContext(ctx).Migrator().HasTable(name)
}

func toTripRecords(rows []tripRow) []model.TripRecord {
	result := make([]model.TripRecord, 0, len(rows))
	for _, row := range rows {
		record := model.TripRecord{
			LicensePlate:     row.LicensePlate.String(),
			Driver:           row.Driver.String(),
			DispatchTime:     row.DispatchTime.String(),
			ReturnTime:       row.ReturnTime.String(),
			Mileage:          row.Mileage.Value,
			VehicleCost:      row.VehicleCost.Value,
			LaborCost:        row.LaborCost.Value,
			EtcFee:           row.EtcFee.Value,
			CarbonEmission:   row.CarbonEmission.Value,
			DispatchDuration: row.DispatchDuration.String(),
			EngineOnDuration: row.EngineOnDuration.String(),
			IdleDuration:     row.IdleDuration.String(),
			DrivingDuration:  row.DrivingDuration.String(),
			StopDuration:     row.StopDuration.String(),
		}
		if row.OperationDate.Valid {
			record.OperationDate = model.DateOnly(row.OperationDate.Time())
		}
		result = append(result, record)
	}
	return result
}

// toAlcoholRecords drops tests without a usable timestamp; they cannot be
// assigned to a day.
func toAlcoholRecords(rows []alcoholRow) []model.AlcoholRecord {
	result := make([]model.AlcoholRecord, 0, len(rows))
	for _, row := range rows {
		if !row.Timestamp.Valid {
			continue
		}
		result = append(result, model.AlcoholRecord{
			Timestamp:      row.Timestamp.Time,
			MeasuredValue:  row.MeasuredValue.Value,
			ThresholdValue: row.ThresholdValue.Value,
		})
	}
	return result
}

func distinctDates(raw []sourceDate) []time.Time {
	seen := make(map[time.Time]struct{}, len(raw))
	result := make([]time.Time, 0, len(raw))
	for _, d := range raw {
		if !d.Valid {
			continue
		}
		day := model.DateOnly(d.Time())
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		result = append(result, day)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Before(result[j])
	})
	return result
}
