package weather

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Coordinates is a latitude/longitude pair in degrees.
type Coordinates struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lon float64 `json:"lon" yaml:"lon"`
}

// HistoricalWeather is the record of daily weather at one place. Days may be
// missing.
type HistoricalWeather struct {
	Name        string
	Coordinates Coordinates

	records map[time.Time]DailyWeather
}

// NewHistoricalWeather returns an empty history.
func NewHistoricalWeather(name string, c Coordinates) *HistoricalWeather {
	return &HistoricalWeather{Name: name, Coordinates: c, records: make(map[time.Time]DailyWeather)}
}

// day truncates t to its calendar date in UTC.
func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// AddWeather records w for the date of d. An existing record is kept.
func (h *HistoricalWeather) AddWeather(d time.Time, w DailyWeather) {
	k := day(d)
	if _, ok := h.records[k]; ok {
		return
	}
	h.records[k] = w
}

// RetrieveWeather returns the weather recorded on the date of d.
func (h *HistoricalWeather) RetrieveWeather(d time.Time) (DailyWeather, bool) {
	w, ok := h.records[day(d)]
	return w, ok
}

// Len is the number of recorded days.
func (h *HistoricalWeather) Len() int { return len(h.records) }

// Days returns the recorded dates in chronological order.
func (h *HistoricalWeather) Days() []time.Time {
	out := make([]time.Time, 0, len(h.records))
	for d := range h.records {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// RecordHigh is the highest temperature seen on month m, day d in any year.
// ok is false when that calendar day was never recorded.
func (h *HistoricalWeather) RecordHigh(m time.Month, d int) (high float64, ok bool) {
	var highs []float64
	for k, w := range h.records {
		if k.Month() == m && k.Day() == d {
			highs = append(highs, w.HighTemp)
		}
	}
	if len(highs) == 0 {
		return 0, false
	}
	return floats.Max(highs), true
}

// MonthlyAverage returns, per month, the mean low temperature over every
// recorded day of that month in any year. Months without data are absent.
func (h *HistoricalWeather) MonthlyAverage() map[time.Month]float64 {
	lows := make(map[time.Month][]float64)
	for k, w := range h.records {
		lows[k.Month()] = append(lows[k.Month()], w.LowTemp)
	}
	out := make(map[time.Month]float64, len(lows))
	for m, vals := range lows {
		out[m] = stat.Mean(vals, nil)
	}
	return out
}

// MonthName returns the three letter label used in reports (Jan..Dec).
func MonthName(m time.Month) string { return m.String()[:3] }

// ContiguousPrecipitation finds the longest run of consecutive recorded days
// that had precipitation. The earliest run wins ties. ok is false when
// nothing was recorded.
func (h *HistoricalWeather) ContiguousPrecipitation() (start time.Time, days int, ok bool) {
	dates := h.Days()
	if len(dates) == 0 {
		return time.Time{}, 0, false
	}
	start = dates[0]
	for _, d := range dates {
		n := 0
		for {
			w, found := h.records[d.AddDate(0, 0, n)]
			if !found || !w.hadPrecipitation() {
				break
			}
			n++
		}
		if n > days {
			start, days = d, n
		}
	}
	return start, days, true
}

// PercentageSnowfall is snowfall / (snowfall + rainfall) over all recorded
// days, ignoring trace values. ok is false when both totals are zero.
func (h *HistoricalWeather) PercentageSnowfall() (float64, bool) {
	var snow, rain []float64
	for _, w := range h.records {
		if w.Snowfall != Trace {
			snow = append(snow, w.Snowfall)
		}
		if w.Rainfall != Trace {
			rain = append(rain, w.Rainfall)
		}
	}
	s, r := floats.Sum(snow), floats.Sum(rain)
	if s+r == 0 {
		return 0, false
	}
	return s / (s + r), true
}

func (h *HistoricalWeather) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%v, %v):\n", h.Name, h.Coordinates.Lat, h.Coordinates.Lon)
	for _, d := range h.Days() {
		fmt.Fprintf(&b, "%s: %s\n", d.Format(time.DateOnly), h.records[d])
	}
	return b.String()
}
