package widget

import (
	"github.com/fhsmendes/weather-widget/chart"
	"github.com/fhsmendes/weather-widget/models"
)

// Session is the state owned by one controller. LastCity is empty until a
// city has been submitted; Chart and RefreshTimer are nil when nothing is
// live.
type Session struct {
	Unit         models.Unit
	LastCity     string
	Chart        chart.Chart
	RefreshTimer Timer
	Current      *models.CurrentWeather

	// Current-conditions requests share weatherGen, forecast requests use
	// forecastGen. Only a completion carrying the latest value may render.
	weatherGen  uint64
	forecastGen uint64

	pendingSubmits int
	idleLabel      string
	bannerTimer    Timer
}

type Snapshot struct {
	Unit        models.Unit `json:"unit"`
	LastCity    string      `json:"last_city,omitempty"`
	CurrentCity string      `json:"current_city,omitempty"`
	ChartLive   bool        `json:"chart_live"`
	RefreshLive bool        `json:"refresh_live"`
	Loading     bool        `json:"loading"`
	DarkMode    bool        `json:"dark_mode"`
}
