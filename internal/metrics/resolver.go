package metrics

import "fleet-dashboard-service/internal/model"

// ResolveDetail returns the trips of bundle that left (Dispatch) or came back
// (Return) during hour. It never returns nil; a missing bundle or an hour
// without trips gives an empty slice.
func ResolveDetail(bundle *model.DashboardResult, direction model.Direction, hour int) []model.DetailRow {
	rows := []model.DetailRow{}
	if bundle == nil {
		return rows
	}

	source := bundle.Returns
	if direction == model.DirectionDispatch {
		source = bundle.Dispatches
	}

	for _, p := range source {
		if !p.HasHour || p.Hour != hour {
			continue
		}
		row := model.DetailRow{
			LicensePlate: p.LicensePlate,
			Driver:       p.Driver,
		}
		timeText := p.Time
		if direction == model.DirectionDispatch {
			row.DispatchTime = &timeText
		} else {
			row.ReturnTime = &timeText
		}
		rows = append(rows, row)
	}
	return rows
}
