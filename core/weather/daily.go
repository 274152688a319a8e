package weather

import "fmt"

// Trace marks a precipitation value where only trace amounts were observed.
const Trace = -1.0

// DailyWeather holds the observations for a single day. Temperatures are in
// Celsius, precipitation and rainfall in mm, snowfall in cm.
type DailyWeather struct {
	AvgTemp       float64 `json:"avg_temp" yaml:"avg_temp"`
	LowTemp       float64 `json:"low_temp" yaml:"low_temp"`
	HighTemp      float64 `json:"high_temp" yaml:"high_temp"`
	Precipitation float64 `json:"precipitation" yaml:"precipitation"`
	Rainfall      float64 `json:"rainfall" yaml:"rainfall"`
	Snowfall      float64 `json:"snowfall" yaml:"snowfall"`
}

// Validate checks that amounts are >= Trace and that low <= avg <= high.
func (w DailyWeather) Validate() error {
	for name, v := range map[string]float64{
		"precipitation": w.Precipitation,
		"rainfall":      w.Rainfall,
		"snowfall":      w.Snowfall,
	} {
		if v < Trace {
			return fmt.Errorf("%s must be >= %v, got %v", name, Trace, v)
		}
	}
	if w.LowTemp > w.AvgTemp || w.AvgTemp > w.HighTemp {
		return fmt.Errorf("temperatures out of order: low %v avg %v high %v", w.LowTemp, w.AvgTemp, w.HighTemp)
	}
	return nil
}

func (w DailyWeather) String() string {
	return fmt.Sprintf("Average: %v Low: %v High: %v Precipitation: %v Snow: %v Rain: %v",
		w.AvgTemp, w.LowTemp, w.HighTemp, w.Precipitation, w.Snowfall, w.Rainfall)
}

// hadPrecipitation counts trace amounts as precipitation.
func (w DailyWeather) hadPrecipitation() bool { return w.Precipitation != 0 }
