package model

type Direction string

const (
	DirectionDispatch Direction = "DISPATCH"
	DirectionReturn   Direction = "RETURN"
)

// DirectionFromSeries maps a clicked series of the two-series hourly chart to
// a direction. Series 0 is dispatch; every other index is return.
func DirectionFromSeries(index int) Direction {
	if index == 0 {
		return DirectionDispatch
	}
	return DirectionReturn
}

// Label is the short Chinese caption used in titles and exports.
func (d Direction) Label() string {
	if d == DirectionDispatch {
		return "出車"
	}
	return "回車"
}
