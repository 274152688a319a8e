package weather

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func dw(avg, low, high, precip, rain, snow float64) DailyWeather {
	return DailyWeather{AvgTemp: avg, LowTemp: low, HighTemp: high, Precipitation: precip, Rainfall: rain, Snowfall: snow}
}

var toronto = Coordinates{Lat: 43.6529, Lon: -79.3849}

func TestDailyWeatherValidate(t *testing.T) {
	assert.NoError(t, dw(13, 9, 20, 5, 0, 0).Validate())
	assert.NoError(t, dw(0, 0, 0, Trace, Trace, Trace).Validate())
	assert.Error(t, dw(13, 9, 20, -2, 0, 0).Validate())
	assert.Error(t, dw(8, 9, 20, 0, 0, 0).Validate())
	assert.Equal(t, "Average: 13 Low: 9 High: 20 Precipitation: 5 Snow: 0 Rain: 0", dw(13, 9, 20, 5, 0, 0).String())
}

func TestAddWeatherKeepsFirstRecord(t *testing.T) {
	h := NewHistoricalWeather("Toronto", toronto)
	h.AddWeather(date(2020, 7, 13), dw(13, 9, 20, 5, 0, 0))
	h.AddWeather(time.Date(2020, 7, 13, 18, 30, 0, 0, time.UTC), dw(30, 25, 35, 0, 0, 0))

	w, ok := h.RetrieveWeather(date(2020, 7, 13))
	require.True(t, ok)
	assert.Equal(t, 13.0, w.AvgTemp)
	assert.Equal(t, 1, h.Len())

	_, ok = h.RetrieveWeather(date(2020, 7, 14))
	assert.False(t, ok)
}

func TestRecordHigh(t *testing.T) {
	h := NewHistoricalWeather("Toronto", toronto)
	h.AddWeather(date(2020, 6, 8), dw(13, 10, 40, 0, 0, 0))
	h.AddWeather(date(2019, 6, 8), dw(13, 10, 30, 0, 0, 0))
	h.AddWeather(date(2019, 6, 9), dw(13, 10, 50, 0, 0, 0))

	high, ok := h.RecordHigh(time.June, 8)
	require.True(t, ok)
	assert.Equal(t, 40.0, high)

	_, ok = h.RecordHigh(time.December, 25)
	assert.False(t, ok)
}

func TestMonthlyAverage(t *testing.T) {
	h := NewHistoricalWeather("Toronto", toronto)
	h.AddWeather(date(2019, 1, 1), dw(13, 11, 30, 0, 0, 0))
	h.AddWeather(date(2019, 1, 2), dw(13, 10, 30, 0, 0, 0))
	h.AddWeather(date(2020, 1, 18), dw(13, 0, 30, 0, 0, 0))
	h.AddWeather(date(2019, 2, 1), dw(13, 11, 30, 0, 0, 0))

	avg := h.MonthlyAverage()
	assert.Equal(t, 7.0, avg[time.January])
	assert.Equal(t, 11.0, avg[time.February])
	_, ok := avg[time.March]
	assert.False(t, ok)
	assert.Equal(t, "Mar", MonthName(time.March))
}

func TestContiguousPrecipitation(t *testing.T) {
	h := NewHistoricalWeather("Toronto", toronto)
	start := date(2021, 3, 1)
	h.AddWeather(start, dw(0, 0, 0, 1, 0, 0))
	h.AddWeather(start.AddDate(0, 0, 1), dw(0, 0, 0, 2, 0, 0))
	h.AddWeather(start.AddDate(0, 0, 2), dw(0, 0, 0, 0, 0, 0))
	h.AddWeather(start.AddDate(0, 0, 3), dw(0, 0, 0, 1, 0, 0))

	got, n, ok := h.ContiguousPrecipitation()
	require.True(t, ok)
	assert.Equal(t, start, got)
	assert.Equal(t, 2, n)
}

func TestContiguousPrecipitationCountsTraceAndNeedsConsecutiveDays(t *testing.T) {
	h := NewHistoricalWeather("Toronto", toronto)
	h.AddWeather(date(2021, 7, 3), dw(0, 0, 0, 4, 0, 0))
	h.AddWeather(date(2021, 7, 5), dw(0, 0, 0, Trace, 0, 0))
	h.AddWeather(date(2021, 7, 6), dw(0, 0, 0, 1, 0, 0))

	got, n, ok := h.ContiguousPrecipitation()
	require.True(t, ok)
	assert.Equal(t, date(2021, 7, 5), got)
	assert.Equal(t, 2, n)

	_, _, ok = NewHistoricalWeather("empty", toronto).ContiguousPrecipitation()
	assert.False(t, ok)
}

func TestPercentageSnowfall(t *testing.T) {
	h := NewHistoricalWeather("Toronto", toronto)
	h.AddWeather(date(2020, 5, 1), dw(0, 0, 0, 1, 0, 1))
	h.AddWeather(date(2020, 5, 2), dw(0, 0, 0, 3, 3, 0))
	h.AddWeather(date(2020, 5, 3), dw(0, 0, 0, Trace, Trace, Trace))

	pct, ok := h.PercentageSnowfall()
	require.True(t, ok)
	assert.Equal(t, 0.25, pct)

	dry := NewHistoricalWeather("dry", toronto)
	dry.AddWeather(date(2020, 5, 1), dw(0, 0, 0, 0, 0, 0))
	_, ok = dry.PercentageSnowfall()
	assert.False(t, ok)
}

func TestCountry(t *testing.T) {
	c := NewCountry("Canada")
	yyz := NewHistoricalWeather("YYZ", toronto)
	yyz.AddWeather(date(2020, 7, 12), dw(13, 9, 20, 5, 2, 3))
	yow := NewHistoricalWeather("YOW", Coordinates{Lat: 45.42, Lon: -75.69})
	yow.AddWeather(date(2020, 7, 12), dw(13, 9, 20, 5, 4, 1))
	c.AddHistory(yyz)
	c.AddHistory(yow)
	c.AddHistory(NewHistoricalWeather("YYZ", toronto))

	got, ok := c.RetrieveHistory("YYZ")
	require.True(t, ok)
	assert.Same(t, yyz, got)
	assert.Equal(t, []string{"YYZ", "YOW"}, c.Locations())

	name, pct, ok := c.SnowiestLocation()
	require.True(t, ok)
	assert.Equal(t, "YYZ", name)
	assert.InDelta(t, 0.6, pct, 1e-9)
}

func TestSnowiestLocationTieAndEmpty(t *testing.T) {
	c := NewCountry("Canada")
	_, _, ok := c.SnowiestLocation()
	assert.False(t, ok)

	a := NewHistoricalWeather("A", toronto)
	a.AddWeather(date(2020, 1, 1), dw(0, 0, 0, 2, 1, 1))
	b := NewHistoricalWeather("B", toronto)
	b.AddWeather(date(2020, 1, 1), dw(0, 0, 0, 4, 2, 2))
	c.AddHistory(a)
	c.AddHistory(b)

	name, pct, ok := c.SnowiestLocation()
	require.True(t, ok)
	assert.Equal(t, "B", name)
	assert.Equal(t, 0.5, pct)
}

func TestHistoricalWeatherString(t *testing.T) {
	h := NewHistoricalWeather("Toronto", Coordinates{Lat: 43.6, Lon: -79.63})
	h.AddWeather(date(2020, 7, 13), dw(13, 9, 20, 5, 0, 0))
	assert.Equal(t, "Toronto (43.6, -79.63):\n2020-07-13: Average: 13 Low: 9 High: 20 Precipitation: 5 Snow: 0 Rain: 0\n", h.String())
}
