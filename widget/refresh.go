package widget

import (
	"github.com/fhsmendes/weather-widget/models"
)

// StartAutoRefresh replaces the refresh timer with a new one that re-fetches
// current conditions for the last city every refresh interval.
func (c *Controller) StartAutoRefresh() {
	if c.session.RefreshTimer != nil {
		c.session.RefreshTimer.Stop()
	}
	c.session.RefreshTimer = c.clock.Every(c.refreshInterval, c.refresh)
}

// refresh never shows errors and never touches the forecast. It does not
// take a new generation, so a foreground request started meanwhile wins.
func (c *Controller) refresh() {
	city := c.session.LastCity
	if city == "" {
		return
	}
	unit := c.session.Unit
	gen := c.session.weatherGen

	c.fetchCurrent(city, unit, func(cw models.CurrentWeather, err error) {
		if gen != c.session.weatherGen {
			c.logger.Debug("dropping stale refresh response", "city", city, "generation", gen)
			return
		}
		if err != nil {
			c.logger.Warn("auto-refresh failed", "city", city, "unit", unit, "err", err)
			return
		}
		c.session.Current = &cw
		c.displayWeather(cw, unit)
	})
}
