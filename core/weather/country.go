package weather

// Country groups location histories by name.
type Country struct {
	Name string

	histories map[string]*HistoricalWeather
	order     []string
}

// NewCountry returns a country without locations.
func NewCountry(name string) *Country {
	return &Country{Name: name, histories: make(map[string]*HistoricalWeather)}
}

// AddHistory adds hw under hw.Name. A location already present is kept.
func (c *Country) AddHistory(hw *HistoricalWeather) {
	if _, ok := c.histories[hw.Name]; ok {
		return
	}
	c.histories[hw.Name] = hw
	c.order = append(c.order, hw.Name)
}

// RetrieveHistory looks a location up by name.
func (c *Country) RetrieveHistory(name string) (*HistoricalWeather, bool) {
	hw, ok := c.histories[name]
	return hw, ok
}

// Locations returns location names in the order they were added.
func (c *Country) Locations() []string {
	return append([]string(nil), c.order...)
}

// SnowiestLocation returns the location with the highest snowfall share.
// On ties the location added last wins. Locations without any rain or snow
// are skipped; ok is false when no location qualifies.
func (c *Country) SnowiestLocation() (name string, pct float64, ok bool) {
	for _, n := range c.order {
		p, has := c.histories[n].PercentageSnowfall()
		if !has {
			continue
		}
		if !ok || p >= pct {
			name, pct, ok = n, p, true
		}
	}
	return name, pct, ok
}
