package stats

import "time"

// MinBarPercent keeps empty days visible on the weekly chart.
const MinBarPercent = 4.0

// Bar is one weekday column of the weekly chart.
type Bar struct {
	Weekday       time.Weekday `json:"weekday"`
	Ml            float64      `json:"ml"`
	HeightPercent float64      `json:"heightPercent"`
}

// Bars normalizes per-weekday volumes to chart heights relative to the
// largest day. A week without drinks gets MinBarPercent everywhere.
func Bars(daily [7]float64) [7]Bar {
	var largest float64
	for _, ml := range daily {
		largest = max(largest, ml)
	}

	var bars [7]Bar
	for i, ml := range daily {
		height := MinBarPercent
		if largest > 0 {
			height = max(ml/largest*100, MinBarPercent)
		}
		bars[i] = Bar{Weekday: time.Weekday(i), Ml: ml, HeightPercent: height}
	}
	return bars
}
